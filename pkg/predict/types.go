package predict

import (
	"fmt"
	"time"
)

// Venue indicates where a fixture was played from a team's perspective
type Venue string

const (
	VenueHome Venue = "H"
	VenueAway Venue = "A"
)

// FixtureResult is a single past result from one team's perspective
type FixtureResult struct {
	OpponentID   string    `json:"opponentId"`
	Venue        Venue     `json:"venue"`
	GoalsFor     int       `json:"goalsFor"`
	GoalsAgainst int       `json:"goalsAgainst"`
	Date         time.Time `json:"date"`
}

// TeamRecord is the per-team season aggregate supplied by the StatisticsProvider.
// Recent holds the last N fixture results ordered newest first.
type TeamRecord struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`

	Played int `json:"played"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`

	HomePlayed       int `json:"homePlayed"`
	AwayPlayed       int `json:"awayPlayed"`
	HomeGoalsFor     int `json:"homeGoalsFor"`
	HomeGoalsAgainst int `json:"homeGoalsAgainst"`
	AwayGoalsFor     int `json:"awayGoalsFor"`
	AwayGoalsAgainst int `json:"awayGoalsAgainst"`

	Recent []FixtureResult `json:"recent,omitempty"`
}

// Validate rejects records that violate the data contract.
// A zero-value record is valid and treated as "no data yet".
func (r *TeamRecord) Validate() error {
	if r.Played < 0 || r.Wins < 0 || r.Draws < 0 || r.Losses < 0 {
		return fmt.Errorf("%w: negative match counts for team %s", ErrInvalidRecord, r.TeamID)
	}
	if r.Wins+r.Draws+r.Losses != r.Played {
		return fmt.Errorf("%w: wins+draws+losses (%d) != played (%d) for team %s",
			ErrInvalidRecord, r.Wins+r.Draws+r.Losses, r.Played, r.TeamID)
	}
	if r.HomeGoalsFor < 0 || r.HomeGoalsAgainst < 0 || r.AwayGoalsFor < 0 || r.AwayGoalsAgainst < 0 {
		return fmt.Errorf("%w: negative goal tallies for team %s", ErrInvalidRecord, r.TeamID)
	}
	if r.HomePlayed < 0 || r.AwayPlayed < 0 || r.HomePlayed+r.AwayPlayed != r.Played {
		return fmt.Errorf("%w: home+away played (%d) != played (%d) for team %s",
			ErrInvalidRecord, r.HomePlayed+r.AwayPlayed, r.Played, r.TeamID)
	}
	for i, fr := range r.Recent {
		if fr.GoalsFor < 0 || fr.GoalsAgainst < 0 {
			return fmt.Errorf("%w: negative goals in recent fixture %d for team %s", ErrInvalidRecord, i, r.TeamID)
		}
		// Newest first: dates must not increase as we walk backwards in time
		if i > 0 && !r.Recent[i-1].Date.IsZero() && !fr.Date.IsZero() && fr.Date.After(r.Recent[i-1].Date) {
			return fmt.Errorf("%w: recent fixtures out of order for team %s", ErrInvalidRecord, r.TeamID)
		}
	}
	return nil
}

// Points returns league points for the season record (3/1/0 scheme)
func (r *TeamRecord) Points() int {
	return 3*r.Wins + r.Draws
}

// GoalsFor returns total goals scored across both venues
func (r *TeamRecord) GoalsFor() int {
	return r.HomeGoalsFor + r.AwayGoalsFor
}

// GoalsAgainst returns total goals conceded across both venues
func (r *TeamRecord) GoalsAgainst() int {
	return r.HomeGoalsAgainst + r.AwayGoalsAgainst
}

// HeadToHeadFixture is one historical meeting between the two fixture teams
type HeadToHeadFixture struct {
	HomeID    string    `json:"homeId"`
	AwayID    string    `json:"awayId"`
	HomeGoals int       `json:"homeGoals"`
	AwayGoals int       `json:"awayGoals"`
	Date      time.Time `json:"date"`
}

// HeadToHeadRecord is the ordered history between two specific teams.
// An empty record is valid and treated as a neutral signal.
type HeadToHeadRecord struct {
	Fixtures []HeadToHeadFixture `json:"fixtures,omitempty"`
}

// LeagueContext scales cross-league comparisons. Strength is a multiplier
// around 1.0 expressing the league's standard relative to the reference league.
type LeagueContext struct {
	LeagueID         string  `json:"leagueId"`
	AvgGoalsPerMatch float64 `json:"avgGoalsPerMatch"`
	Strength         float64 `json:"strength"`
}

// StrengthRating holds the four venue-specific multipliers around 1.0
// (1.0 = league average), derived fresh per prediction request
type StrengthRating struct {
	AttackHome  float64 `json:"attackHome"`
	AttackAway  float64 `json:"attackAway"`
	DefenseHome float64 `json:"defenseHome"`
	DefenseAway float64 `json:"defenseAway"`
}

// ExpectedGoals is the (lambda_home, lambda_away) pair for a fixture
type ExpectedGoals struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Scoreline is an exact score with its probability
type Scoreline struct {
	HomeGoals   int     `json:"homeGoals"`
	AwayGoals   int     `json:"awayGoals"`
	Probability float64 `json:"probability"`
}

// Fixture identifies one match to predict
type Fixture struct {
	HomeID   string `json:"homeId"`
	AwayID   string `json:"awayId"`
	HomeName string `json:"homeName,omitempty"`
	AwayName string `json:"awayName,omitempty"`
	LeagueID string `json:"leagueId"`
}

// PredictionReport is the final immutable output of one prediction request.
// All fields are plain primitives so the report serializes cleanly.
type PredictionReport struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`

	ExpectedHomeGoals float64 `json:"expectedHomeGoals"`
	ExpectedAwayGoals float64 `json:"expectedAwayGoals"`

	HomeWinProbability float64 `json:"homeWinProbability"`
	DrawProbability    float64 `json:"drawProbability"`
	AwayWinProbability float64 `json:"awayWinProbability"`

	Under3p5Probability float64 `json:"under3p5Probability"`
	Over3p5Probability  float64 `json:"over3p5Probability"`

	MostLikelyScore Scoreline   `json:"mostLikelyScore"`
	Scorelines      []Scoreline `json:"scorelines"`

	Confidence float64 `json:"confidence"`

	SimulatedSamples int     `json:"simulatedSamples"`
	OutcomeStdErr    float64 `json:"outcomeStdErr"`
}

// FavouriteOutcome returns "H", "D" or "A" for the most probable outcome
func (p *PredictionReport) FavouriteOutcome() string {
	if p.HomeWinProbability >= p.DrawProbability && p.HomeWinProbability >= p.AwayWinProbability {
		return "H"
	}
	if p.AwayWinProbability >= p.DrawProbability {
		return "A"
	}
	return "D"
}

// BestBetScore combines the strongest outcome probability with the strongest
// goals-band probability into a single ranking figure for a batch of fixtures
func (p *PredictionReport) BestBetScore() float64 {
	best := p.HomeWinProbability
	if p.DrawProbability > best {
		best = p.DrawProbability
	}
	if p.AwayWinProbability > best {
		best = p.AwayWinProbability
	}
	goals := p.Under3p5Probability
	if p.Over3p5Probability > goals {
		goals = p.Over3p5Probability
	}
	return best * goals * 100.0
}
