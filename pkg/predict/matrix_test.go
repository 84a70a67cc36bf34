package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoissonMatrixSumsToOne(t *testing.T) {
	cases := []struct {
		lambdaHome, lambdaAway float64
		maxGoals               int
	}{
		{1.5, 1.1, 5},
		{1.5, 1.1, 10},
		{0.2, 0.2, 6},
		{4.5, 4.5, 10},
		{2.7, 0.8, 8},
	}

	for _, tc := range cases {
		matrix, err := PoissonMatrix(tc.lambdaHome, tc.lambdaAway, tc.maxGoals)
		require.NoError(t, err)
		require.Len(t, matrix, tc.maxGoals+1)
		assert.InDelta(t, 1.0, matrix.Sum(), 1e-6,
			"matrix mass for lambda %f/%f cutoff %d", tc.lambdaHome, tc.lambdaAway, tc.maxGoals)
	}
}

func TestPoissonMatrixRejectsDegenerateRates(t *testing.T) {
	for _, bad := range []struct{ home, away float64 }{
		{0, 1.0},
		{-1.0, 1.0},
		{1.0, 0},
	} {
		_, err := PoissonMatrix(bad.home, bad.away, 10)
		assert.ErrorIs(t, err, ErrInvalidRecord)
	}

	_, err := PoissonMatrix(1.5, 1.1, 0)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestOutcomesSumToOne(t *testing.T) {
	matrix, err := PoissonMatrix(1.8, 1.2, 10)
	require.NoError(t, err)

	home, draw, away := matrix.Outcomes()
	assert.InDelta(t, 1.0, home+draw+away, 1e-9)
	for _, p := range []float64{home, draw, away} {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
	// A clearly stronger home side should be the favourite
	assert.Greater(t, home, away)
}

func TestDixonColesZeroRhoIsIdentity(t *testing.T) {
	matrix, err := PoissonMatrix(1.5, 1.1, 10)
	require.NoError(t, err)

	corrected := matrix.ApplyDixonColes(1.5, 1.1, 0)
	for i := range matrix {
		for j := range matrix[i] {
			assert.Equal(t, matrix[i][j], corrected[i][j], "cell %d-%d changed with rho=0", i, j)
		}
	}

	// The result is a private copy, not an alias
	corrected[0][0] = 0.99
	assert.NotEqual(t, 0.99, matrix[0][0])
}

func TestDixonColesPositiveRhoInflatesLowDraws(t *testing.T) {
	matrix, err := PoissonMatrix(1.5, 1.1, 10)
	require.NoError(t, err)

	corrected := matrix.ApplyDixonColes(1.5, 1.1, 0.05)

	assert.Greater(t, corrected[0][0], matrix[0][0], "0-0 should gain mass")
	assert.Greater(t, corrected[1][1], matrix[1][1], "1-1 should gain mass")
	assert.Less(t, corrected[1][0], matrix[1][0], "1-0 should lose mass")
	assert.Less(t, corrected[0][1], matrix[0][1], "0-1 should lose mass")

	assert.InDelta(t, 1.0, corrected.Sum(), 1e-9, "corrected matrix must stay normalized")

	// Untouched cells keep their relative ordering
	assert.InDelta(t, matrix[3][2]/matrix[2][3], corrected[3][2]/corrected[2][3], 1e-9)
}

func TestRankScorelinesTieBreak(t *testing.T) {
	scorelines := []Scoreline{
		{HomeGoals: 1, AwayGoals: 1, Probability: 0.09},
		{HomeGoals: 0, AwayGoals: 0, Probability: 0.10},
		{HomeGoals: 1, AwayGoals: 0, Probability: 0.10},
	}
	RankScorelines(scorelines)

	// Equal probabilities: fewer total goals first, so 0-0 precedes 1-0
	assert.Equal(t, Scoreline{HomeGoals: 0, AwayGoals: 0, Probability: 0.10}, scorelines[0])
	assert.Equal(t, Scoreline{HomeGoals: 1, AwayGoals: 0, Probability: 0.10}, scorelines[1])
	assert.Equal(t, Scoreline{HomeGoals: 1, AwayGoals: 1, Probability: 0.09}, scorelines[2])
}

func TestRankScorelinesHomeBeforeAwayOnEqualTotals(t *testing.T) {
	scorelines := []Scoreline{
		{HomeGoals: 0, AwayGoals: 2, Probability: 0.05},
		{HomeGoals: 2, AwayGoals: 0, Probability: 0.05},
		{HomeGoals: 1, AwayGoals: 1, Probability: 0.05},
	}
	RankScorelines(scorelines)

	assert.Equal(t, 0, scorelines[0].HomeGoals)
	assert.Equal(t, 1, scorelines[1].HomeGoals)
	assert.Equal(t, 2, scorelines[2].HomeGoals)
}

func TestMostLikelyScoreline(t *testing.T) {
	matrix, err := PoissonMatrix(0.5, 0.5, 10)
	require.NoError(t, err)

	best := matrix.MostLikely()
	assert.Equal(t, 0, best.HomeGoals)
	assert.Equal(t, 0, best.AwayGoals)
	assert.Greater(t, best.Probability, 0.3)
}

func TestUnderProbability(t *testing.T) {
	matrix, err := PoissonMatrix(1.5, 1.1, 10)
	require.NoError(t, err)

	under := matrix.UnderProbability(3.5)
	assert.Greater(t, under, 0.0)
	assert.Less(t, under, 1.0)

	// Threshold 0.5 keeps only the 0-0 cell
	assert.InDelta(t, matrix[0][0], matrix.UnderProbability(0.5), 1e-12)

	// A threshold above the cutoff covers everything
	assert.InDelta(t, 1.0, matrix.UnderProbability(100.0), 1e-9)
}
