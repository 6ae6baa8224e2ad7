package gates

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"sigval/domain/validation"
	"sigval/internal/numerics"
)

// vifPerfectFitEps: an R² this close to 1 means the candidate is an exact
// linear combination of the existing indicators.
const vifPerfectFitEps = 1e-10

// VIFResult is the variance-inflation check of a candidate against a set of
// existing indicators.
type VIFResult struct {
	VIF      float64 `json:"vif"`
	RSquared float64 `json:"r_squared"`
	N        int     `json:"n"`
	Passed   bool    `json:"passed"`
}

// ComputeVIF regresses the candidate on all existing indicators over the
// complete cases (rows where every series is finite) and returns
// VIF = 1/(1-R²). Zero existing indicators always yields VIF 1.0 and a pass.
// Too few complete cases (n < max(k+10, minObservations)) yields +Inf and a
// fail, as does an exact linear fit.
func ComputeVIF(candidate []float64, existing map[string][]float64, maxVIF float64, minObservations int) VIFResult {
	if len(existing) == 0 {
		return VIFResult{VIF: 1.0, Passed: true}
	}

	names := sortedNames(existing)
	k := len(names)

	// Complete cases only: candidate and every existing indicator finite.
	limit := len(candidate)
	for _, name := range names {
		if len(existing[name]) < limit {
			limit = len(existing[name])
		}
	}
	var (
		rows [][]float64
		y    []float64
	)
	for i := 0; i < limit; i++ {
		if !finite(candidate[i]) {
			continue
		}
		row := make([]float64, k)
		ok := true
		for j, name := range names {
			v := existing[name][i]
			if !finite(v) {
				ok = false
				break
			}
			row[j] = v
		}
		if !ok {
			continue
		}
		rows = append(rows, row)
		y = append(y, candidate[i])
	}

	minN := k + 10
	if minObservations > minN {
		minN = minObservations
	}
	if len(rows) < minN {
		return VIFResult{VIF: math.Inf(1), N: len(rows)}
	}

	_, r2 := numerics.LinearRegression(rows, y)
	res := VIFResult{RSquared: r2, N: len(rows)}
	if r2 >= 1-vifPerfectFitEps {
		res.VIF = math.Inf(1)
		return res
	}
	res.VIF = 1 / (1 - r2)
	res.Passed = res.VIF < maxVIF
	return res
}

// RunOrthogonalityGate measures the redundancy of a candidate against the
// already-deployed indicator set: a pairwise correlation screen plus a
// variance-inflation check. With no existing indicators the gate passes
// trivially.
func RunOrthogonalityGate(candidate []float64, existing map[string][]float64, th validation.Thresholds) validation.OrthogonalityResult {
	res := validation.OrthogonalityResult{
		Outcome: validation.Outcome{N: len(candidate)},
		VIF:     1.0,
	}

	// Pairwise correlation screen.
	correlationsAcceptable := true
	for _, name := range sortedNames(existing) {
		series := existing[name]
		n := len(candidate)
		if len(series) < n {
			n = len(series)
		}
		r, valid := numerics.PearsonCorrelation(candidate[:n], series[:n])
		abs := math.Abs(r)
		c := validation.IndicatorCorrelation{
			Indicator:    name,
			Correlation:  r,
			N:            valid,
			IsAcceptable: abs < th.MaxCorrelation && valid >= th.MinObservations,
			IsWarning:    abs >= th.CorrelationWarning && abs < th.MaxCorrelation,
		}
		if !c.IsAcceptable {
			correlationsAcceptable = false
		}
		res.Correlations = append(res.Correlations, c)
	}
	sort.SliceStable(res.Correlations, func(i, j int) bool {
		return math.Abs(res.Correlations[i].Correlation) > math.Abs(res.Correlations[j].Correlation)
	})
	if len(res.Correlations) > 0 {
		res.MostCorrelatedWith = res.Correlations[0].Indicator
		res.MaxAbsCorrelation = math.Abs(res.Correlations[0].Correlation)
	}
	res.CorrelationsAcceptable = correlationsAcceptable

	// VIF needs at least two existing indicators to say more than the
	// pairwise screen already does.
	res.VIFAcceptable = true
	if len(existing) >= 2 {
		vif := ComputeVIF(candidate, existing, th.MaxVIF, th.MinObservations)
		res.VIF = vif.VIF
		res.VIFAcceptable = vif.Passed
	}

	res.IsOrthogonal = res.CorrelationsAcceptable && res.VIFAcceptable
	res.Passed = res.IsOrthogonal
	if res.Passed {
		res.Status = validation.StatusPass
		return res
	}

	res.Status = validation.StatusFail
	var reasons []string
	if !res.CorrelationsAcceptable {
		top := res.Correlations[0]
		for _, c := range res.Correlations {
			if !c.IsAcceptable {
				top = c
				break
			}
		}
		if top.N < th.MinObservations {
			reasons = append(reasons, fmt.Sprintf("only %d overlapping observations with %s (%d required)",
				top.N, top.Indicator, th.MinObservations))
		} else {
			reasons = append(reasons, fmt.Sprintf("correlation with %s is %.3f (|corr| limit %.2f)",
				top.Indicator, top.Correlation, th.MaxCorrelation))
		}
	}
	if !res.VIFAcceptable {
		reasons = append(reasons, fmt.Sprintf("VIF %.2f at or above limit %.2f", res.VIF, th.MaxVIF))
	}
	res.Reason = strings.Join(reasons, "; ")
	return res
}

// Orthogonalize residualizes the candidate against a single existing series:
// the result is the candidate minus its regression fit on the series.
func Orthogonalize(candidate, against []float64) []float64 {
	n := len(candidate)
	if len(against) < n {
		n = len(against)
	}
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = []float64{against[i]}
	}
	coef, _ := numerics.LinearRegression(rows, candidate[:n])

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = candidate[i] - numerics.Predict(coef, rows[i])
	}
	return out
}

// OrthogonalizeMultiple residualizes the candidate against every existing
// indicator at once via a single multivariate regression.
func OrthogonalizeMultiple(candidate []float64, existing map[string][]float64) []float64 {
	if len(existing) == 0 {
		out := make([]float64, len(candidate))
		copy(out, candidate)
		return out
	}

	names := sortedNames(existing)
	n := len(candidate)
	for _, name := range names {
		if len(existing[name]) < n {
			n = len(existing[name])
		}
	}

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, len(names))
		for j, name := range names {
			row[j] = existing[name][i]
		}
		rows[i] = row
	}
	coef, _ := numerics.LinearRegression(rows, candidate[:n])

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = candidate[i] - numerics.Predict(coef, rows[i])
	}
	return out
}

// OrthogonalityRank scores one candidate's independence from the existing
// set; higher is more orthogonal.
type OrthogonalityRank struct {
	Indicator         string  `json:"indicator"`
	Score             float64 `json:"score"`
	MaxAbsCorrelation float64 `json:"max_abs_correlation"`
	VIF               float64 `json:"vif"`
}

// RankByOrthogonality scores each candidate against the existing indicator
// set and sorts descending. The score averages the correlation headroom
// (1 - |max corr|) and the inverse VIF capped at 1.
func RankByOrthogonality(candidates map[string][]float64, existing map[string][]float64, th validation.Thresholds) []OrthogonalityRank {
	ranks := make([]OrthogonalityRank, 0, len(candidates))
	for _, name := range sortedNames(candidates) {
		series := candidates[name]

		var maxAbs float64
		for _, ex := range sortedNames(existing) {
			exSeries := existing[ex]
			n := len(series)
			if len(exSeries) < n {
				n = len(exSeries)
			}
			r, _ := numerics.PearsonCorrelation(series[:n], exSeries[:n])
			if a := math.Abs(r); a > maxAbs {
				maxAbs = a
			}
		}

		vif := ComputeVIF(series, existing, th.MaxVIF, th.MinObservations)
		invVIF := 1.0
		if vif.VIF > 1 {
			invVIF = 1 / vif.VIF
		}

		ranks = append(ranks, OrthogonalityRank{
			Indicator:         name,
			Score:             ((1 - maxAbs) + invVIF) / 2,
			MaxAbsCorrelation: maxAbs,
			VIF:               vif.VIF,
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Score > ranks[j].Score })
	return ranks
}

// CorrelationMatrix computes the pairwise correlation matrix across a whole
// indicator set. It returns the indicator names in matrix order and the
// symmetric matrix itself.
func CorrelationMatrix(indicators map[string][]float64) ([]string, *mat.SymDense) {
	names := sortedNames(indicators)
	n := len(names)
	if n == 0 {
		return nil, nil
	}

	m := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		m.SetSym(i, i, 1)
		for j := i + 1; j < n; j++ {
			a, b := indicators[names[i]], indicators[names[j]]
			limit := len(a)
			if len(b) < limit {
				limit = len(b)
			}
			r, _ := numerics.PearsonCorrelation(a[:limit], b[:limit])
			m.SetSym(i, j, r)
		}
	}
	return names, m
}

// AllVIFs computes each indicator's VIF against the rest of the set.
func AllVIFs(indicators map[string][]float64, maxVIF float64, minObservations int) map[string]float64 {
	out := make(map[string]float64, len(indicators))
	for _, name := range sortedNames(indicators) {
		rest := make(map[string][]float64, len(indicators)-1)
		for other, series := range indicators {
			if other != name {
				rest[other] = series
			}
		}
		out[name] = ComputeVIF(indicators[name], rest, maxVIF, minObservations).VIF
	}
	return out
}

func sortedNames(m map[string][]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
