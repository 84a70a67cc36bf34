package predict

import (
	"fmt"
	"math"
	"sort"
)

// ScorelineMatrix holds P(home=i, away=j) for goal counts 0..K per side.
// After construction it sums to 1.0 within floating tolerance.
type ScorelineMatrix [][]float64

// minMatrixMass guards renormalization against degenerate rates
const minMatrixMass = 1e-12

// PoissonMatrix builds the truncated independent-Poisson joint distribution
// for the given rates, normalized over the 0..maxGoals square
func PoissonMatrix(lambdaHome, lambdaAway float64, maxGoals int) (ScorelineMatrix, error) {
	if lambdaHome <= 0 || lambdaAway <= 0 ||
		math.IsNaN(lambdaHome) || math.IsNaN(lambdaAway) ||
		math.IsInf(lambdaHome, 0) || math.IsInf(lambdaAway, 0) {
		return nil, fmt.Errorf("%w: expected goals must be positive finite, got %f/%f",
			ErrInvalidRecord, lambdaHome, lambdaAway)
	}
	if maxGoals < 1 {
		return nil, fmt.Errorf("%w: goal cutoff must be at least 1, got %d", ErrInvalidRecord, maxGoals)
	}

	homePMF := poissonPMF(lambdaHome, maxGoals)
	awayPMF := poissonPMF(lambdaAway, maxGoals)

	matrix := make(ScorelineMatrix, maxGoals+1)
	for i := range matrix {
		matrix[i] = make([]float64, maxGoals+1)
		for j := range matrix[i] {
			matrix[i][j] = homePMF[i] * awayPMF[j]
		}
	}
	matrix.normalize()
	return matrix, nil
}

// poissonPMF returns P(X=k) for k in 0..maxGoals, computed iteratively
func poissonPMF(lambda float64, maxGoals int) []float64 {
	pmf := make([]float64, maxGoals+1)
	pmf[0] = math.Exp(-lambda)
	for k := 1; k <= maxGoals; k++ {
		pmf[k] = pmf[k-1] * lambda / float64(k)
	}
	return pmf
}

// ApplyDixonColes adjusts the four low-score cells by the tau factors and
// renormalizes. With rho == 0 the matrix is returned unchanged. If the
// adjusted mass collapses (degenerate rates) the unadjusted matrix is kept.
func (m ScorelineMatrix) ApplyDixonColes(lambdaHome, lambdaAway, rho float64) ScorelineMatrix {
	corrected := m.clone()
	if rho == 0 || len(m) < 2 {
		return corrected
	}

	corrected[0][0] *= tau(0, 0, lambdaHome, lambdaAway, rho)
	corrected[1][0] *= tau(1, 0, lambdaHome, lambdaAway, rho)
	corrected[0][1] *= tau(0, 1, lambdaHome, lambdaAway, rho)
	corrected[1][1] *= tau(1, 1, lambdaHome, lambdaAway, rho)

	for i := range corrected {
		for j := range corrected[i] {
			if corrected[i][j] < 0 {
				corrected[i][j] = 0
			}
		}
	}

	if corrected.Sum() < minMatrixMass {
		return m.clone()
	}
	corrected.normalize()
	return corrected
}

// tau computes the low-score dependence factor. Positive rho inflates 0-0
// and 1-1 relative to independence and deflates 1-0/0-1 to conserve mass.
func tau(homeGoals, awayGoals int, lambdaHome, lambdaAway, rho float64) float64 {
	switch {
	case homeGoals == 0 && awayGoals == 0:
		return 1 + lambdaHome*lambdaAway*rho
	case homeGoals == 1 && awayGoals == 0:
		return 1 - lambdaAway*rho
	case homeGoals == 0 && awayGoals == 1:
		return 1 - lambdaHome*rho
	case homeGoals == 1 && awayGoals == 1:
		return 1 + rho
	}
	return 1.0
}

// Sum returns the total probability mass
func (m ScorelineMatrix) Sum() float64 {
	total := 0.0
	for i := range m {
		for j := range m[i] {
			total += m[i][j]
		}
	}
	return total
}

// Outcomes sums the matrix triangles into win/draw/loss probabilities
func (m ScorelineMatrix) Outcomes() (homeWin, draw, awayWin float64) {
	for i := range m {
		for j := range m[i] {
			switch {
			case i > j:
				homeWin += m[i][j]
			case i == j:
				draw += m[i][j]
			default:
				awayWin += m[i][j]
			}
		}
	}
	return homeWin, draw, awayWin
}

// UnderProbability returns P(total goals <= threshold)
func (m ScorelineMatrix) UnderProbability(threshold float64) float64 {
	prob := 0.0
	for i := range m {
		for j := range m[i] {
			if float64(i+j) < threshold {
				prob += m[i][j]
			}
		}
	}
	return prob
}

// Ranked returns every scoreline ordered by probability descending.
// Ties break on lower total goals first, then home goals before away.
func (m ScorelineMatrix) Ranked() []Scoreline {
	scorelines := make([]Scoreline, 0, len(m)*len(m))
	for i := range m {
		for j := range m[i] {
			scorelines = append(scorelines, Scoreline{HomeGoals: i, AwayGoals: j, Probability: m[i][j]})
		}
	}
	RankScorelines(scorelines)
	return scorelines
}

// RankScorelines sorts scorelines in place by probability descending with
// the deterministic tie-break: lower total goals, then lexicographic
// home-before-away order
func RankScorelines(scorelines []Scoreline) {
	sort.SliceStable(scorelines, func(a, b int) bool {
		sa, sb := scorelines[a], scorelines[b]
		if sa.Probability != sb.Probability {
			return sa.Probability > sb.Probability
		}
		totalA, totalB := sa.HomeGoals+sa.AwayGoals, sb.HomeGoals+sb.AwayGoals
		if totalA != totalB {
			return totalA < totalB
		}
		if sa.HomeGoals != sb.HomeGoals {
			return sa.HomeGoals < sb.HomeGoals
		}
		return sa.AwayGoals < sb.AwayGoals
	})
}

// MostLikely returns the highest-probability scoreline
func (m ScorelineMatrix) MostLikely() Scoreline {
	best := Scoreline{Probability: -1}
	for i := range m {
		for j := range m[i] {
			if m[i][j] > best.Probability {
				best = Scoreline{HomeGoals: i, AwayGoals: j, Probability: m[i][j]}
			}
		}
	}
	return best
}

func (m ScorelineMatrix) clone() ScorelineMatrix {
	out := make(ScorelineMatrix, len(m))
	for i := range m {
		out[i] = make([]float64, len(m[i]))
		copy(out[i], m[i])
	}
	return out
}

func (m ScorelineMatrix) normalize() {
	total := m.Sum()
	if total < minMatrixMass {
		return
	}
	for i := range m {
		for j := range m[i] {
			m[i][j] /= total
		}
	}
}
