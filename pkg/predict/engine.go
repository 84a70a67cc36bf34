package predict

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sabriduruk/football-prediction/internal/logger"
)

// Predictor runs the full prediction pipeline for fixtures:
// provider -> form scores -> expected goals -> corrected scoreline matrix
// -> Monte Carlo simulation -> report.
//
// A Predictor only reads immutable inputs and allocates private working
// memory per prediction, so concurrent predictions need no locking.
type Predictor struct {
	provider StatisticsProvider
	cfg      *EngineConfig
	seed     int64
}

// NewPredictor creates a predictor around a statistics provider.
// A nil cfg uses the global configuration. The seed makes every
// simulation reproducible.
func NewPredictor(provider StatisticsProvider, cfg *EngineConfig, seed int64) (*Predictor, error) {
	if provider == nil {
		return nil, fmt.Errorf("must pass a statistics provider")
	}
	if cfg == nil {
		cfg = Config
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return &Predictor{provider: provider, cfg: cfg, seed: seed}, nil
}

// Predict produces a report for one fixture. Missing provider data degrades
// to league-average neutrals; contract violations in supplied records are
// the only user-visible failures.
func (p *Predictor) Predict(fixture Fixture) (*PredictionReport, error) {
	homeRec := p.lookupTeam(fixture.HomeID)
	awayRec := p.lookupTeam(fixture.AwayID)
	league := p.lookupLeague(fixture.LeagueID)
	h2h := p.lookupHeadToHead(fixture.HomeID, fixture.AwayID)

	// The provider's display names stand in when the fixture carries only IDs
	if fixture.HomeName == "" {
		fixture.HomeName = homeRec.Name
	}
	if fixture.AwayName == "" {
		fixture.AwayName = awayRec.Name
	}

	homeForm, err := FormScore(p.cfg, homeRec, h2h, league, VenueHome)
	if err != nil {
		return nil, fmt.Errorf("home team %s: %w", fixture.HomeID, err)
	}
	awayForm, err := FormScore(p.cfg, awayRec, h2h, league, VenueAway)
	if err != nil {
		return nil, fmt.Errorf("away team %s: %w", fixture.AwayID, err)
	}

	rates := EstimateRates(p.cfg, homeRec, awayRec, homeForm, awayForm, league)

	independent, err := PoissonMatrix(rates.Home, rates.Away, p.cfg.MaxGoals)
	if err != nil {
		return nil, err
	}
	corrected := independent.ApplyDixonColes(rates.Home, rates.Away, p.cfg.DixonColesRho)

	sim, err := NewSimulator(p.cfg, p.seed).SimulateMatrix(corrected)
	if err != nil {
		return nil, err
	}

	report := BuildReport(p.cfg, fixture, rates, corrected, sim)
	logger.Debug("Predicted", report.HomeTeam, "vs", report.AwayTeam,
		"xG", rates.Home, rates.Away, "confidence", report.Confidence)
	return report, nil
}

// PredictBatch predicts independent fixtures in parallel. Reports keep the
// order of the input fixtures; the first error aborts the batch result.
func (p *Predictor) PredictBatch(fixtures []Fixture) ([]*PredictionReport, error) {
	reports := make([]*PredictionReport, len(fixtures))
	errs := make([]error, len(fixtures))

	var wg sync.WaitGroup
	for i, fixture := range fixtures {
		wg.Add(1)
		go func(i int, fixture Fixture) {
			defer wg.Done()
			reports[i], errs[i] = p.Predict(fixture)
		}(i, fixture)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}

// lookupTeam substitutes a neutral record when the provider has no data
func (p *Predictor) lookupTeam(teamID string) *TeamRecord {
	rec, err := p.provider.TeamRecord(teamID)
	if err != nil || rec == nil {
		if err != nil && !errors.Is(err, ErrNoData) {
			logger.Warn("Provider failed for team, using neutral record", teamID, err)
		}
		return neutralTeamRecord(teamID)
	}
	return rec
}

// lookupLeague substitutes the default league context when missing
func (p *Predictor) lookupLeague(leagueID string) *LeagueContext {
	league, err := p.provider.LeagueContext(leagueID)
	if err != nil || league == nil {
		if err != nil && !errors.Is(err, ErrNoData) {
			logger.Warn("Provider failed for league, using default context", leagueID, err)
		}
		return neutralLeagueContext(p.cfg, leagueID)
	}
	if league.AvgGoalsPerMatch <= 0 {
		fallback := neutralLeagueContext(p.cfg, leagueID)
		fallback.Strength = league.Strength
		return fallback
	}
	return league
}

// lookupHeadToHead treats any failure as an empty (neutral) history
func (p *Predictor) lookupHeadToHead(homeID, awayID string) *HeadToHeadRecord {
	h2h, err := p.provider.HeadToHead(homeID, awayID)
	if err != nil || h2h == nil {
		return &HeadToHeadRecord{}
	}
	return h2h
}
