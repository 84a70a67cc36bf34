package store

import (
	"fmt"
	"time"

	"github.com/sabriduruk/football-prediction/internal/logger"
	"github.com/sabriduruk/football-prediction/pkg/predict"
)

// Provider serves the prediction engine from the SQLite store.
// It implements predict.StatisticsProvider for one league season.
type Provider struct {
	store    *Store
	leagueID string
	season   string

	// RecentLimit caps the recent fixtures attached to a team record.
	// Zero means the engine's configured window.
	RecentLimit int
}

// NewProvider creates a provider scoped to one league season
func NewProvider(store *Store, leagueID, season string) *Provider {
	return &Provider{store: store, leagueID: leagueID, season: season}
}

// TeamRecord loads the aggregated season record plus recent played fixtures
func (p *Provider) TeamRecord(teamID string) (*predict.TeamRecord, error) {
	rows, err := p.store.FindWhere(&TeamSeasonRow{},
		"team_id = ? AND league_id = ? AND season = ?", teamID, p.leagueID, p.season)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("team %s in %s/%s: %w", teamID, p.leagueID, p.season, predict.ErrNoData)
	}

	row := rows[0].(*TeamSeasonRow)
	rec := &predict.TeamRecord{
		TeamID: row.TeamID,
		Name:   row.Name,

		Played: row.Played,
		Wins:   row.Wins,
		Draws:  row.Draws,
		Losses: row.Losses,

		HomePlayed:       row.HomePlayed,
		AwayPlayed:       row.AwayPlayed,
		HomeGoalsFor:     row.HomeGoalsFor,
		HomeGoalsAgainst: row.HomeGoalsAgainst,
		AwayGoalsFor:     row.AwayGoalsFor,
		AwayGoalsAgainst: row.AwayGoalsAgainst,
	}

	recent, err := p.recentResults(teamID)
	if err != nil {
		return nil, err
	}
	rec.Recent = recent
	return rec, nil
}

// HeadToHead returns the stored meetings between the pair, newest first.
// No stored meetings is an empty history, not an error.
func (p *Provider) HeadToHead(homeID, awayID string) (*predict.HeadToHeadRecord, error) {
	rows, err := p.store.FindWhere(&FixtureRow{},
		"((home_id = ? AND away_id = ?) OR (home_id = ? AND away_id = ?)) AND home_goals >= 0 ORDER BY date DESC",
		homeID, awayID, awayID, homeID)
	if err != nil {
		return nil, err
	}

	h2h := &predict.HeadToHeadRecord{}
	for _, r := range rows {
		row := r.(*FixtureRow)
		h2h.Fixtures = append(h2h.Fixtures, predict.HeadToHeadFixture{
			HomeID:    row.HomeID,
			AwayID:    row.AwayID,
			HomeGoals: row.HomeGoals,
			AwayGoals: row.AwayGoals,
			Date:      parseDate(row.Date),
		})
	}
	return h2h, nil
}

// LeagueContext loads the scoring context for the provider's league
func (p *Provider) LeagueContext(leagueID string) (*predict.LeagueContext, error) {
	rows, err := p.store.FindWhere(&LeagueRow{}, "league_id = ?", leagueID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("league %s: %w", leagueID, predict.ErrNoData)
	}

	row := rows[0].(*LeagueRow)
	strength := row.Strength
	if strength <= 0 {
		strength = 1.0
	}
	return &predict.LeagueContext{
		LeagueID:         row.LeagueID,
		AvgGoalsPerMatch: row.AvgGoalsPerMatch,
		Strength:         strength,
	}, nil
}

// recentResults returns the team's last played fixtures newest first
func (p *Provider) recentResults(teamID string) ([]predict.FixtureResult, error) {
	limit := p.RecentLimit
	if limit <= 0 {
		limit = predict.Config.RecentWindow
	}

	rows, err := p.store.FindWhere(&FixtureRow{},
		"(home_id = ? OR away_id = ?) AND league_id = ? AND season = ? AND home_goals >= 0 ORDER BY date DESC LIMIT ?",
		teamID, teamID, p.leagueID, p.season, limit)
	if err != nil {
		return nil, err
	}

	var results []predict.FixtureResult
	for _, r := range rows {
		row := r.(*FixtureRow)
		result := predict.FixtureResult{Date: parseDate(row.Date)}
		if row.HomeID == teamID {
			result.OpponentID = row.AwayID
			result.Venue = predict.VenueHome
			result.GoalsFor = row.HomeGoals
			result.GoalsAgainst = row.AwayGoals
		} else {
			result.OpponentID = row.HomeID
			result.Venue = predict.VenueAway
			result.GoalsFor = row.AwayGoals
			result.GoalsAgainst = row.HomeGoals
		}
		results = append(results, result)
	}
	return results, nil
}

// RebuildAggregates recomputes every team's season row and the league's
// average goals per match from the stored played fixtures. Call after
// importing new results.
func (s *Store) RebuildAggregates(leagueID, season string) error {
	rows, err := s.FindWhere(&FixtureRow{},
		"league_id = ? AND season = ? AND home_goals >= 0", leagueID, season)
	if err != nil {
		return err
	}

	teams := make(map[string]*TeamSeasonRow)
	totalGoals := 0
	played := 0

	teamFor := func(id, name string) *TeamSeasonRow {
		t, ok := teams[id]
		if !ok {
			t = &TeamSeasonRow{TeamID: id, LeagueID: leagueID, Season: season, Name: name}
			teams[id] = t
		}
		if t.Name == "" {
			t.Name = name
		}
		return t
	}

	for _, r := range rows {
		fx := r.(*FixtureRow)
		home := teamFor(fx.HomeID, fx.HomeName)
		away := teamFor(fx.AwayID, fx.AwayName)

		home.Played++
		home.HomePlayed++
		home.HomeGoalsFor += fx.HomeGoals
		home.HomeGoalsAgainst += fx.AwayGoals

		away.Played++
		away.AwayPlayed++
		away.AwayGoalsFor += fx.AwayGoals
		away.AwayGoalsAgainst += fx.HomeGoals

		switch {
		case fx.HomeGoals > fx.AwayGoals:
			home.Wins++
			away.Losses++
		case fx.HomeGoals < fx.AwayGoals:
			away.Wins++
			home.Losses++
		default:
			home.Draws++
			away.Draws++
		}

		totalGoals += fx.HomeGoals + fx.AwayGoals
		played++
	}

	records := make([]Record, 0, len(teams))
	for _, t := range teams {
		records = append(records, t)
	}
	if err := s.BulkSave(records); err != nil {
		return err
	}

	league := &LeagueRow{LeagueID: leagueID}
	if err := s.FindByKey(league, league.PrimaryKey()); err != nil {
		league = &LeagueRow{LeagueID: leagueID, Season: season, Strength: 1.0}
	}
	league.Season = season
	if played > 0 {
		league.AvgGoalsPerMatch = float64(totalGoals) / float64(played)
	}
	if err := s.Save(league); err != nil {
		return err
	}

	logger.Info("Rebuilt aggregates", leagueID, season, "teams", len(teams), "fixtures", played)
	return nil
}

func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
