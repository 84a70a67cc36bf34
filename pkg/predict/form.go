package predict

import "fmt"

// Form scoring combines five weighted factors into a single bounded score.
// Every sub-score is a pure function of an immutable TeamRecord, normalized
// to [0,1] (trend to [-1,1]) before its fixed weight is applied, so no single
// factor can dominate beyond its declared share.

// FormScore produces a form score in [0,1] for one team ahead of a fixture.
// 0.5 is neutral (league average). A team with no recorded matches scores
// exactly the neutral value, and an empty head-to-head history contributes
// its weight at the neutral midpoint.
func FormScore(cfg *EngineConfig, rec *TeamRecord, h2h *HeadToHeadRecord, league *LeagueContext, venue Venue) (float64, error) {
	if rec == nil {
		return 0, fmt.Errorf("%w: nil team record", ErrInvalidRecord)
	}
	if err := rec.Validate(); err != nil {
		return 0, err
	}

	record := seasonRecordScore(rec)
	goalDiff := goalDiffScore(rec)
	results := recentResultsScore(rec, cfg.RecentWindow)
	trend := trendScore(rec, cfg.RecentWindow)
	split := venueScore(rec, venue)
	history := headToHeadScore(rec.TeamID, h2h)
	strength := leagueStrengthScore(league)

	score := cfg.SeasonRecordWeight*record +
		cfg.GoalDiffWeight*goalDiff +
		cfg.RecentResultsWeight*results +
		cfg.TrendWeight*(0.5+trend/2.0) +
		cfg.VenueWeight*split +
		cfg.HeadToHeadWeight*history +
		cfg.LeagueStrengthWeight*strength

	return clamp(score, 0.0, 1.0), nil
}

// seasonRecordScore is the points fraction of the full season record
func seasonRecordScore(rec *TeamRecord) float64 {
	if rec.Played == 0 {
		return 0.5
	}
	return float64(rec.Points()) / float64(3*rec.Played)
}

// goalDiffScore maps goal difference per match into [0,1].
// +-3 goals per match saturates the scale.
func goalDiffScore(rec *TeamRecord) float64 {
	if rec.Played == 0 {
		return 0.5
	}
	perMatch := float64(rec.GoalsFor()-rec.GoalsAgainst()) / float64(rec.Played)
	return clamp(0.5+perMatch/6.0, 0.0, 1.0)
}

// recentResultsScore weights the last N results with linear recency decay.
// Recent holds fixtures newest first.
func recentResultsScore(rec *TeamRecord, window int) float64 {
	results := recentWindow(rec, window)
	if len(results) == 0 {
		return 0.5
	}

	var weighted, totalWeight float64
	for i, fr := range results {
		weight := float64(len(results) - i)
		weighted += weight * float64(resultPoints(fr))
		totalWeight += weight
	}
	return weighted / (3.0 * totalWeight)
}

// trendScore compares points-per-game in the most recent half of the window
// against the earlier half. Directional: [-1,1], 0 is flat.
func trendScore(rec *TeamRecord, window int) float64 {
	results := recentWindow(rec, window)
	if len(results) < 2 {
		return 0.0
	}

	half := len(results) / 2
	recentPPG := pointsPerGame(results[:half])
	earlierPPG := pointsPerGame(results[half:])
	return clamp((recentPPG-earlierPPG)/3.0, -1.0, 1.0)
}

// venueScore measures goal difference per game at the venue the team will
// occupy in this fixture
func venueScore(rec *TeamRecord, venue Venue) float64 {
	var played, goalsFor, goalsAgainst int
	if venue == VenueHome {
		played, goalsFor, goalsAgainst = rec.HomePlayed, rec.HomeGoalsFor, rec.HomeGoalsAgainst
	} else {
		played, goalsFor, goalsAgainst = rec.AwayPlayed, rec.AwayGoalsFor, rec.AwayGoalsAgainst
	}
	if played == 0 {
		return 0.5
	}
	perMatch := float64(goalsFor-goalsAgainst) / float64(played)
	return clamp(0.5+perMatch/4.0, 0.0, 1.0)
}

// headToHeadScore is the points fraction this team took from past meetings
// with the specific opponent
func headToHeadScore(teamID string, h2h *HeadToHeadRecord) float64 {
	if h2h == nil || len(h2h.Fixtures) == 0 {
		return 0.5
	}

	var points int
	for _, fx := range h2h.Fixtures {
		var goalsFor, goalsAgainst int
		switch teamID {
		case fx.HomeID:
			goalsFor, goalsAgainst = fx.HomeGoals, fx.AwayGoals
		case fx.AwayID:
			goalsFor, goalsAgainst = fx.AwayGoals, fx.HomeGoals
		default:
			continue
		}
		if goalsFor > goalsAgainst {
			points += 3
		} else if goalsFor == goalsAgainst {
			points += 1
		}
	}
	return float64(points) / float64(3*len(h2h.Fixtures))
}

// leagueStrengthScore maps the league strength multiplier into [0,1],
// neutral at 1.0
func leagueStrengthScore(league *LeagueContext) float64 {
	if league == nil || league.Strength <= 0 {
		return 0.5
	}
	return clamp(league.Strength/2.0, 0.0, 1.0)
}

// recentWindow returns at most window recent results, newest first
func recentWindow(rec *TeamRecord, window int) []FixtureResult {
	if len(rec.Recent) <= window {
		return rec.Recent
	}
	return rec.Recent[:window]
}

// resultPoints scores one result 3/1/0
func resultPoints(fr FixtureResult) int {
	if fr.GoalsFor > fr.GoalsAgainst {
		return 3
	}
	if fr.GoalsFor == fr.GoalsAgainst {
		return 1
	}
	return 0
}

func pointsPerGame(results []FixtureResult) float64 {
	if len(results) == 0 {
		return 0.0
	}
	var points int
	for _, fr := range results {
		points += resultPoints(fr)
	}
	return float64(points) / float64(len(results))
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
