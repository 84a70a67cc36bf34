package predict

import "fmt"

// EngineConfig contains all configurable parameters that influence prediction outcomes
// This centralizes all magic numbers and constants for easy adjustment
type EngineConfig struct {
	// === FEATURE WEIGHTS ===

	// The five factor weights must sum to 1.0. Season and recent form carry
	// sub-splits which must sum to their parent weight.
	SeasonWeight       float64 // Season performance weight (default: 0.40)
	SeasonRecordWeight float64 // Win/draw/loss record sub-weight (default: 0.25)
	GoalDiffWeight     float64 // Goal difference per match sub-weight (default: 0.15)

	RecentFormWeight    float64 // Recent form weight (default: 0.25)
	RecentResultsWeight float64 // Result-weighted recent window sub-weight (default: 0.15)
	TrendWeight         float64 // Recent-half vs earlier-half trend sub-weight (default: 0.10)

	VenueWeight          float64 // Home/away split performance weight (default: 0.15)
	HeadToHeadWeight     float64 // Head-to-head history weight (default: 0.10)
	LeagueStrengthWeight float64 // League strength factor weight (default: 0.10)

	// === RATE ESTIMATION ===

	HomeAdvantage float64 // Home goal expectancy multiplier (default: 1.15)
	FormInfluence float64 // How strongly the form score perturbs raw strengths (default: 0.3)

	LambdaFloor float64 // Minimum expected goals per team (default: 0.2)
	LambdaCap   float64 // Maximum expected goals per team (default: 4.5)

	// Fallback league average goals per match when no league context exists
	DefaultLeagueAvgGoals float64 // (default: 2.7)

	// === DIXON-COLES CORRECTION ===

	// Correlation parameter for low-scoring games. Positive values inflate
	// the 0-0 and 1-1 cells and deflate 1-0/0-1.
	DixonColesRho float64 // (default: 0.03, range: -0.1 to 0.1)

	// === SCORELINE MATRIX ===

	MaxGoals int // Goal cutoff K; the matrix covers 0..K goals per side (default: 10)

	// === MONTE CARLO SIMULATION ===

	Simulations  int // Number of simulated matches per fixture (default: 10000)
	RecentWindow int // Number of recent fixtures considered for form (default: 10)

	// === REPORT ASSEMBLY ===

	AnalyticWeight float64 // Share of the analytic matrix in merged outcome probabilities (default: 0.5)
	TopScorelines  int     // Number of ranked scorelines retained on the report (default: 5)

	Over3p5Threshold float64 // Total goals threshold for the over/under market (default: 3.5)

	// Confidence scoring
	ConfidenceFloor  float64 // Lowest reportable confidence (default: 25.0)
	ConfidenceCeil   float64 // Highest reportable confidence (default: 95.0)
	StdErrPenalty    float64 // Confidence penalty per unit of simulation standard error (default: 10.0)
	NeutralFormScore float64 // Form score assigned when no data exists (default: 0.5)
}

// DefaultEngineConfig returns the default configuration with all standard values
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		// === FEATURE WEIGHTS ===
		SeasonWeight:       0.40,
		SeasonRecordWeight: 0.25,
		GoalDiffWeight:     0.15,

		RecentFormWeight:    0.25,
		RecentResultsWeight: 0.15,
		TrendWeight:         0.10,

		VenueWeight:          0.15,
		HeadToHeadWeight:     0.10,
		LeagueStrengthWeight: 0.10,

		// === RATE ESTIMATION ===
		HomeAdvantage: 1.15,
		FormInfluence: 0.3,

		LambdaFloor: 0.2,
		LambdaCap:   4.5,

		DefaultLeagueAvgGoals: 2.7,

		// === DIXON-COLES CORRECTION ===
		DixonColesRho: 0.03,

		// === SCORELINE MATRIX ===
		MaxGoals: 10,

		// === MONTE CARLO SIMULATION ===
		Simulations:  10000,
		RecentWindow: 10,

		// === REPORT ASSEMBLY ===
		AnalyticWeight:   0.5,
		TopScorelines:    5,
		Over3p5Threshold: 3.5,

		ConfidenceFloor:  25.0,
		ConfidenceCeil:   95.0,
		StdErrPenalty:    10.0,
		NeutralFormScore: 0.5,
	}
}

// Global configuration instance
var Config *EngineConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultEngineConfig()
}

// UpdateConfig replaces the global configuration after validating it
func UpdateConfig(newConfig *EngineConfig) error {
	if err := ValidateConfig(newConfig); err != nil {
		return err
	}
	Config = newConfig
	return nil
}

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *EngineConfig) error {
	const tolerance = 1e-9

	weightSum := config.SeasonWeight + config.RecentFormWeight +
		config.VenueWeight + config.HeadToHeadWeight + config.LeagueStrengthWeight
	if weightSum < 1.0-tolerance || weightSum > 1.0+tolerance {
		return fmt.Errorf("feature weights must sum to 1.0, got: %f", weightSum)
	}

	seasonSplit := config.SeasonRecordWeight + config.GoalDiffWeight
	if seasonSplit < config.SeasonWeight-tolerance || seasonSplit > config.SeasonWeight+tolerance {
		return fmt.Errorf("season sub-weights must sum to SeasonWeight, got: %f", seasonSplit)
	}

	recentSplit := config.RecentResultsWeight + config.TrendWeight
	if recentSplit < config.RecentFormWeight-tolerance || recentSplit > config.RecentFormWeight+tolerance {
		return fmt.Errorf("recent form sub-weights must sum to RecentFormWeight, got: %f", recentSplit)
	}

	if config.HomeAdvantage <= 1.0 {
		return fmt.Errorf("HomeAdvantage must be greater than 1.0, got: %f", config.HomeAdvantage)
	}

	if config.FormInfluence < 0.0 || config.FormInfluence > 1.0 {
		return fmt.Errorf("FormInfluence must be between 0.0 and 1.0, got: %f", config.FormInfluence)
	}

	if config.DixonColesRho < -0.1 || config.DixonColesRho > 0.1 {
		return fmt.Errorf("DixonColesRho should be between -0.1 and 0.1, got: %f", config.DixonColesRho)
	}

	if config.MaxGoals < 5 {
		return fmt.Errorf("MaxGoals should be at least 5 to capture realistic scores, got: %d", config.MaxGoals)
	}

	if config.Simulations < 1000 {
		return fmt.Errorf("Simulations should be at least 1000 for accuracy, got: %d", config.Simulations)
	}

	if config.RecentWindow < 2 {
		return fmt.Errorf("RecentWindow should be at least 2, got: %d", config.RecentWindow)
	}

	if config.LambdaFloor <= 0.0 || config.LambdaFloor >= config.LambdaCap {
		return fmt.Errorf("LambdaFloor must be positive and below LambdaCap, got: %f", config.LambdaFloor)
	}

	if config.AnalyticWeight < 0.0 || config.AnalyticWeight > 1.0 {
		return fmt.Errorf("AnalyticWeight must be between 0.0 and 1.0, got: %f", config.AnalyticWeight)
	}

	if config.ConfidenceFloor < 0.0 || config.ConfidenceFloor >= config.ConfidenceCeil || config.ConfidenceCeil > 100.0 {
		return fmt.Errorf("confidence bounds must satisfy 0 <= floor < ceil <= 100, got: %f..%f", config.ConfidenceFloor, config.ConfidenceCeil)
	}

	return nil
}

// GetDixonColesRho returns the Dixon-Coles correlation parameter
func GetDixonColesRho() float64 {
	return Config.DixonColesRho
}
