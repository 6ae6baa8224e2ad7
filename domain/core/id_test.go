package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDUniqueness(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, id.IsEmpty())
		require.False(t, seen[id], "duplicate ID generated: %s", id)
		seen[id] = true
	}
}

func TestNewIDFormat(t *testing.T) {
	id := NewID()
	// UUID string form: 36 characters with hyphens at fixed positions.
	require.Len(t, id.String(), 36)
	for _, pos := range []int{8, 13, 18, 23} {
		assert.Equal(t, byte('-'), id.String()[pos])
	}
}

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()
	assert.NotEmpty(t, a.String())
	assert.NotEqual(t, a, b)
}

func TestParseIndicatorID(t *testing.T) {
	id, err := ParseIndicatorID("mom-5d")
	require.NoError(t, err)
	assert.Equal(t, "mom-5d", id.String())

	_, err = ParseIndicatorID("")
	assert.Error(t, err)

	_, err = ParseIndicatorID("   ")
	assert.Error(t, err)
}
