package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// RunID identifies a single validation pipeline run.
	RunID ID
	// IndicatorID is the caller-supplied opaque identity of a candidate signal.
	IndicatorID ID
)

// NewRunID creates a fresh run identifier
func NewRunID() RunID {
	return RunID(NewID())
}

// String conversions for domain IDs
func (id RunID) String() string       { return ID(id).String() }
func (id IndicatorID) String() string { return ID(id).String() }

// ParseIndicatorID parses a string into IndicatorID
func ParseIndicatorID(s string) (IndicatorID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("indicator ID cannot be empty")
	}
	return IndicatorID(s), nil
}
