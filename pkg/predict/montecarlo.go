package predict

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// The simulator cross-checks the analytic matrix by sampling whole matches.
// Its randomness source is an explicit seeded generator, so identical seeds
// and inputs reproduce identical tallies bit for bit.

// SimulationResult tabulates one Monte Carlo run
type SimulationResult struct {
	Samples int `json:"samples"`

	HomeWins int `json:"homeWins"`
	Draws    int `json:"draws"`
	AwayWins int `json:"awayWins"`

	HomeWinProbability float64 `json:"homeWinProbability"`
	DrawProbability    float64 `json:"drawProbability"`
	AwayWinProbability float64 `json:"awayWinProbability"`

	Under3p5Probability float64 `json:"under3p5Probability"`
	Over3p5Probability  float64 `json:"over3p5Probability"`

	// ScoreCounts[i][j] counts sampled (home=i, away=j) results
	ScoreCounts [][]int `json:"-"`

	// Binomial standard errors on the outcome frequencies
	HomeWinStdErr float64 `json:"homeWinStdErr"`
	DrawStdErr    float64 `json:"drawStdErr"`
	AwayWinStdErr float64 `json:"awayWinStdErr"`

	under int
}

// OutcomeStdErr is the mean standard error across the three outcomes,
// used as the confidence signal
func (r *SimulationResult) OutcomeStdErr() float64 {
	return (r.HomeWinStdErr + r.DrawStdErr + r.AwayWinStdErr) / 3.0
}

// ScorelineFrequency returns the sampled frequency of an exact score
func (r *SimulationResult) ScorelineFrequency(homeGoals, awayGoals int) float64 {
	if homeGoals < 0 || homeGoals >= len(r.ScoreCounts) || awayGoals < 0 || awayGoals >= len(r.ScoreCounts[homeGoals]) {
		return 0
	}
	return float64(r.ScoreCounts[homeGoals][awayGoals]) / float64(r.Samples)
}

// Simulator draws simulated matches from a scoreline distribution
type Simulator struct {
	cfg *EngineConfig
	rng *rand.Rand
}

// NewSimulator creates a simulator with an explicit seed. The global
// configuration is used when cfg is nil.
func NewSimulator(cfg *EngineConfig, seed int64) *Simulator {
	if cfg == nil {
		cfg = Config
	}
	return &Simulator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// SimulateMatrix draws categorical samples directly from the corrected
// scoreline matrix
func (s *Simulator) SimulateMatrix(matrix ScorelineMatrix) (*SimulationResult, error) {
	if len(matrix) == 0 {
		return nil, fmt.Errorf("%w: empty scoreline matrix", ErrInvalidRecord)
	}

	size := len(matrix)
	cumulative := make([]float64, 0, size*size)
	running := 0.0
	for i := range matrix {
		for j := range matrix[i] {
			running += matrix[i][j]
			cumulative = append(cumulative, running)
		}
	}
	if running < minMatrixMass {
		return nil, fmt.Errorf("%w: scoreline matrix carries no probability mass", ErrInvalidRecord)
	}

	result := newSimulationResult(s.cfg.Simulations, size)
	for n := 0; n < s.cfg.Simulations; n++ {
		r := s.rng.Float64() * running
		idx := sort.SearchFloat64s(cumulative, r)
		if idx >= len(cumulative) {
			idx = len(cumulative) - 1
		}
		result.record(idx/size, idx%size, s.cfg.Over3p5Threshold)
	}
	result.finalize()
	return result, nil
}

// SimulateRates draws correlated Poisson score pairs from the raw rates,
// applying the same low-score dependence rule by rejection. Slower than
// matrix sampling but independent of the goal cutoff, which makes it a
// useful cross-check and an extension point for further stochastic factors.
func (s *Simulator) SimulateRates(lambdaHome, lambdaAway, rho float64) (*SimulationResult, error) {
	if lambdaHome <= 0 || lambdaAway <= 0 {
		return nil, fmt.Errorf("%w: expected goals must be positive, got %f/%f",
			ErrInvalidRecord, lambdaHome, lambdaAway)
	}

	// Upper bound on tau across the four adjusted cells
	tauMax := 1.0
	for _, t := range []float64{
		tau(0, 0, lambdaHome, lambdaAway, rho),
		tau(1, 0, lambdaHome, lambdaAway, rho),
		tau(0, 1, lambdaHome, lambdaAway, rho),
		tau(1, 1, lambdaHome, lambdaAway, rho),
	} {
		if t > tauMax {
			tauMax = t
		}
	}

	size := s.cfg.MaxGoals + 1
	result := newSimulationResult(s.cfg.Simulations, size)
	for n := 0; n < s.cfg.Simulations; n++ {
		var homeGoals, awayGoals int
		for {
			homeGoals = poissonSample(lambdaHome, s.rng)
			awayGoals = poissonSample(lambdaAway, s.rng)
			t := tau(homeGoals, awayGoals, lambdaHome, lambdaAway, rho)
			if t <= 0 {
				continue
			}
			if s.rng.Float64()*tauMax <= t {
				break
			}
		}
		result.record(homeGoals, awayGoals, s.cfg.Over3p5Threshold)
	}
	result.finalize()
	return result, nil
}

// poissonSample draws one Poisson variate. Knuth's algorithm for small
// rates, normal approximation beyond.
func poissonSample(lambda float64, rng *rand.Rand) int {
	if lambda < 30 {
		limit := math.Exp(-lambda)
		k := 0
		p := 1.0
		for p > limit {
			k++
			p *= rng.Float64()
		}
		return k - 1
	}
	sample := int(math.Round(lambda + math.Sqrt(lambda)*rng.NormFloat64()))
	if sample < 0 {
		sample = 0
	}
	return sample
}

func newSimulationResult(samples, size int) *SimulationResult {
	counts := make([][]int, size)
	for i := range counts {
		counts[i] = make([]int, size)
	}
	return &SimulationResult{Samples: samples, ScoreCounts: counts}
}

func (r *SimulationResult) record(homeGoals, awayGoals int, overThreshold float64) {
	switch {
	case homeGoals > awayGoals:
		r.HomeWins++
	case homeGoals == awayGoals:
		r.Draws++
	default:
		r.AwayWins++
	}
	if float64(homeGoals+awayGoals) < overThreshold {
		r.under++
	}
	if homeGoals < len(r.ScoreCounts) && awayGoals < len(r.ScoreCounts[homeGoals]) {
		r.ScoreCounts[homeGoals][awayGoals]++
	}
}

func (r *SimulationResult) finalize() {
	n := float64(r.Samples)
	r.HomeWinProbability = float64(r.HomeWins) / n
	r.DrawProbability = float64(r.Draws) / n
	r.AwayWinProbability = float64(r.AwayWins) / n
	r.Under3p5Probability = float64(r.under) / n
	r.Over3p5Probability = 1.0 - r.Under3p5Probability

	r.HomeWinStdErr = binomialStdErr(r.HomeWinProbability, n)
	r.DrawStdErr = binomialStdErr(r.DrawProbability, n)
	r.AwayWinStdErr = binomialStdErr(r.AwayWinProbability, n)
}

func binomialStdErr(p, n float64) float64 {
	return math.Sqrt(p * (1.0 - p) / n)
}
