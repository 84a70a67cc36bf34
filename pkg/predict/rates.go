package predict

import "math"

// Rate estimation turns season averages and form scores into the expected
// goals pair (lambda_home, lambda_away) for one fixture.
//
// Each side's lambda is the product of its attack strength, the opposing
// defense weakness, the league per-team average and (home side only) the
// home advantage multiplier. The form score perturbs the raw strengths
// multiplicatively so recency shifts the estimate without discarding the
// season-long signal.

// Strengths derives the four venue-specific multipliers for a team.
// 1.0 means league average; missing averages fall back to 1.0 rather
// than producing an error.
func Strengths(rec *TeamRecord, league *LeagueContext) StrengthRating {
	perTeam := leaguePerTeamAvg(league)

	rating := StrengthRating{
		AttackHome:  1.0,
		AttackAway:  1.0,
		DefenseHome: 1.0,
		DefenseAway: 1.0,
	}
	if rec == nil || perTeam <= 0 {
		return rating
	}

	if rec.HomePlayed > 0 {
		rating.AttackHome = float64(rec.HomeGoalsFor) / float64(rec.HomePlayed) / perTeam
		rating.DefenseHome = float64(rec.HomeGoalsAgainst) / float64(rec.HomePlayed) / perTeam
	}
	if rec.AwayPlayed > 0 {
		rating.AttackAway = float64(rec.AwayGoalsFor) / float64(rec.AwayPlayed) / perTeam
		rating.DefenseAway = float64(rec.AwayGoalsAgainst) / float64(rec.AwayPlayed) / perTeam
	}
	return rating
}

// EstimateRates computes the expected goals pair for a fixture.
// The result is always strictly positive and finite.
func EstimateRates(cfg *EngineConfig, home, away *TeamRecord, homeForm, awayForm float64, league *LeagueContext) ExpectedGoals {
	perTeam := leaguePerTeamAvg(league)
	if perTeam <= 0 {
		perTeam = cfg.DefaultLeagueAvgGoals / 2.0
	}

	homeStrengths := Strengths(home, league)
	awayStrengths := Strengths(away, league)

	homeBoost := formFactor(cfg, homeForm)
	awayBoost := formFactor(cfg, awayForm)

	// Good form lifts a side's attack and tightens its defense
	homeAttack := homeStrengths.AttackHome * homeBoost
	awayAttack := awayStrengths.AttackAway * awayBoost
	homeDefense := homeStrengths.DefenseHome * (2.0 - homeBoost)
	awayDefense := awayStrengths.DefenseAway * (2.0 - awayBoost)

	lambdaHome := homeAttack * awayDefense * perTeam * cfg.HomeAdvantage
	lambdaAway := awayAttack * homeDefense * perTeam

	return ExpectedGoals{
		Home: sanitizeLambda(cfg, lambdaHome, perTeam*cfg.HomeAdvantage),
		Away: sanitizeLambda(cfg, lambdaAway, perTeam),
	}
}

// formFactor converts a [0,1] form score to a multiplier around 1.0
func formFactor(cfg *EngineConfig, form float64) float64 {
	return 1.0 + cfg.FormInfluence*(2.0*clamp(form, 0.0, 1.0)-1.0)
}

// sanitizeLambda clamps a rate into the configured bounds and substitutes
// the league-average fallback for degenerate values
func sanitizeLambda(cfg *EngineConfig, lambda, fallback float64) float64 {
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) || lambda <= 0 {
		lambda = fallback
	}
	return clamp(lambda, cfg.LambdaFloor, cfg.LambdaCap)
}

func leaguePerTeamAvg(league *LeagueContext) float64 {
	if league == nil {
		return 0
	}
	return league.AvgGoalsPerMatch / 2.0
}
