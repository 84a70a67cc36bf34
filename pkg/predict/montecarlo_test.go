package predict

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateMatrixDeterministicBySeed(t *testing.T) {
	matrix, err := PoissonMatrix(1.5, 1.1, 10)
	require.NoError(t, err)

	first, err := NewSimulator(nil, 42).SimulateMatrix(matrix)
	require.NoError(t, err)
	second, err := NewSimulator(nil, 42).SimulateMatrix(matrix)
	require.NoError(t, err)

	assert.Equal(t, first.HomeWins, second.HomeWins)
	assert.Equal(t, first.Draws, second.Draws)
	assert.Equal(t, first.AwayWins, second.AwayWins)
	assert.Equal(t, first.ScoreCounts, second.ScoreCounts)

	other, err := NewSimulator(nil, 43).SimulateMatrix(matrix)
	require.NoError(t, err)
	assert.NotEqual(t, first.ScoreCounts, other.ScoreCounts, "different seeds should give different tallies")
}

func TestSimulateMatrixConvergesToAnalytic(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Simulations = 50000

	matrix, err := PoissonMatrix(1.5, 1.1, cfg.MaxGoals)
	require.NoError(t, err)
	corrected := matrix.ApplyDixonColes(1.5, 1.1, 0.1)

	sim, err := NewSimulator(cfg, 7).SimulateMatrix(corrected)
	require.NoError(t, err)

	home, draw, away := corrected.Outcomes()
	assert.InDelta(t, home, sim.HomeWinProbability, 0.01)
	assert.InDelta(t, draw, sim.DrawProbability, 0.01)
	assert.InDelta(t, away, sim.AwayWinProbability, 0.01)
	assert.InDelta(t, corrected.UnderProbability(3.5), sim.Under3p5Probability, 0.01)

	assert.Equal(t, cfg.Simulations, sim.HomeWins+sim.Draws+sim.AwayWins)
	assert.InDelta(t, 1.0, sim.HomeWinProbability+sim.DrawProbability+sim.AwayWinProbability, 1e-9)
}

func TestSimulateMatrixRejectsEmptyInput(t *testing.T) {
	_, err := NewSimulator(nil, 1).SimulateMatrix(ScorelineMatrix{})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	dead := ScorelineMatrix{{0, 0}, {0, 0}}
	_, err = NewSimulator(nil, 1).SimulateMatrix(dead)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestSimulateRatesMatchesMatrixSampling(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Simulations = 50000

	sim, err := NewSimulator(cfg, 11).SimulateRates(1.5, 1.1, 0.1)
	require.NoError(t, err)

	matrix, err := PoissonMatrix(1.5, 1.1, cfg.MaxGoals)
	require.NoError(t, err)
	corrected := matrix.ApplyDixonColes(1.5, 1.1, 0.1)
	home, draw, away := corrected.Outcomes()

	// Rejection sampling over the raw rates should land close to the
	// truncated analytic distribution
	assert.InDelta(t, home, sim.HomeWinProbability, 0.015)
	assert.InDelta(t, draw, sim.DrawProbability, 0.015)
	assert.InDelta(t, away, sim.AwayWinProbability, 0.015)
}

func TestSimulateRatesRejectsBadRates(t *testing.T) {
	_, err := NewSimulator(nil, 1).SimulateRates(0, 1.1, 0.05)
	assert.ErrorIs(t, err, ErrInvalidRecord)
	_, err = NewSimulator(nil, 1).SimulateRates(1.5, -2.0, 0.05)
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestPoissonSampleMean(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for _, lambda := range []float64{0.8, 2.0, 35.0} {
		total := 0
		n := 20000
		for i := 0; i < n; i++ {
			total += poissonSample(lambda, rng)
		}
		mean := float64(total) / float64(n)
		assert.InDelta(t, lambda, mean, lambda*0.05+0.05, "sample mean for lambda %f", lambda)
	}
}

func TestScorelineFrequencyBounds(t *testing.T) {
	matrix, err := PoissonMatrix(1.5, 1.1, 10)
	require.NoError(t, err)

	sim, err := NewSimulator(nil, 5).SimulateMatrix(matrix)
	require.NoError(t, err)

	assert.Greater(t, sim.ScorelineFrequency(1, 1), 0.0)
	assert.Equal(t, 0.0, sim.ScorelineFrequency(-1, 0))
	assert.Equal(t, 0.0, sim.ScorelineFrequency(0, 99))
}
