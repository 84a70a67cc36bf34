package predict

// Report assembly merges the analytic matrix with the simulation tallies.
// Merge rule: outcome and goals-band probabilities are the weighted average
// of the two sources (AnalyticWeight, default an even split), renormalized;
// exact scorelines are ranked from the analytic matrix alone since it has
// no sampling noise.

// BuildReport assembles the final immutable prediction report
func BuildReport(cfg *EngineConfig, fixture Fixture, rates ExpectedGoals, matrix ScorelineMatrix, sim *SimulationResult) *PredictionReport {
	analyticHome, analyticDraw, analyticAway := matrix.Outcomes()

	w := cfg.AnalyticWeight
	home := w*analyticHome + (1-w)*sim.HomeWinProbability
	draw := w*analyticDraw + (1-w)*sim.DrawProbability
	away := w*analyticAway + (1-w)*sim.AwayWinProbability

	// Renormalize so the three outcomes sum to exactly 1.0
	total := home + draw + away
	if total > 0 {
		home /= total
		draw /= total
		away /= total
	}

	analyticUnder := matrix.UnderProbability(cfg.Over3p5Threshold)
	under := w*analyticUnder + (1-w)*sim.Under3p5Probability

	ranked := matrix.Ranked()
	top := cfg.TopScorelines
	if top > len(ranked) {
		top = len(ranked)
	}
	scorelines := make([]Scoreline, top)
	copy(scorelines, ranked[:top])

	homeName := fixture.HomeName
	if homeName == "" {
		homeName = fixture.HomeID
	}
	awayName := fixture.AwayName
	if awayName == "" {
		awayName = fixture.AwayID
	}

	return &PredictionReport{
		HomeTeam: homeName,
		AwayTeam: awayName,

		ExpectedHomeGoals: rates.Home,
		ExpectedAwayGoals: rates.Away,

		HomeWinProbability: home,
		DrawProbability:    draw,
		AwayWinProbability: away,

		Under3p5Probability: under,
		Over3p5Probability:  1.0 - under,

		MostLikelyScore: matrix.MostLikely(),
		Scorelines:      scorelines,

		Confidence: confidenceScore(cfg, home, draw, away, sim.OutcomeStdErr()),

		SimulatedSamples: sim.Samples,
		OutcomeStdErr:    sim.OutcomeStdErr(),
	}
}

// confidenceScore maps the favourite's margin over an even three-way split
// and the simulation noise into [floor, ceil]. Monotone: a clearer favourite
// raises confidence, a noisier simulation lowers it.
func confidenceScore(cfg *EngineConfig, home, draw, away, stdErr float64) float64 {
	best := home
	if draw > best {
		best = draw
	}
	if away > best {
		best = away
	}

	edge := clamp((best-1.0/3.0)/(2.0/3.0), 0.0, 1.0)
	noise := clamp(1.0-cfg.StdErrPenalty*stdErr, 0.0, 1.0)

	span := cfg.ConfidenceCeil - cfg.ConfidenceFloor
	return cfg.ConfidenceFloor + span*edge*noise
}
