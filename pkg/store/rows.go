package store

// Dates are stored as ISO text (yyyy-mm-dd) so lexical ordering in SQL
// matches chronological ordering.
const dateLayout = "2006-01-02"

// TeamSeasonRow is one team's aggregated season record within a league
type TeamSeasonRow struct {
	TeamID   string `json:"teamId" column:"team_id" dbtype:"TEXT NOT NULL" primary:"true"`
	LeagueID string `json:"leagueId" column:"league_id" dbtype:"TEXT NOT NULL" primary:"true" index:"true"`
	Season   string `json:"season" column:"season" dbtype:"TEXT NOT NULL" primary:"true"`

	Name string `json:"name" column:"name" dbtype:"TEXT"`

	Played int `json:"played" column:"played" dbtype:"INTEGER DEFAULT 0"`
	Wins   int `json:"wins" column:"wins" dbtype:"INTEGER DEFAULT 0"`
	Draws  int `json:"draws" column:"draws" dbtype:"INTEGER DEFAULT 0"`
	Losses int `json:"losses" column:"losses" dbtype:"INTEGER DEFAULT 0"`

	HomePlayed       int `json:"homePlayed" column:"home_played" dbtype:"INTEGER DEFAULT 0"`
	AwayPlayed       int `json:"awayPlayed" column:"away_played" dbtype:"INTEGER DEFAULT 0"`
	HomeGoalsFor     int `json:"homeGoalsFor" column:"home_goals_for" dbtype:"INTEGER DEFAULT 0"`
	HomeGoalsAgainst int `json:"homeGoalsAgainst" column:"home_goals_against" dbtype:"INTEGER DEFAULT 0"`
	AwayGoalsFor     int `json:"awayGoalsFor" column:"away_goals_for" dbtype:"INTEGER DEFAULT 0"`
	AwayGoalsAgainst int `json:"awayGoalsAgainst" column:"away_goals_against" dbtype:"INTEGER DEFAULT 0"`
}

func (t *TeamSeasonRow) TableName() string {
	return "team_seasons"
}

func (t *TeamSeasonRow) PrimaryKey() map[string]any {
	return map[string]any{
		"team_id":   t.TeamID,
		"league_id": t.LeagueID,
		"season":    t.Season,
	}
}

// FixtureRow is one stored fixture. Unplayed fixtures carry -1 goals.
type FixtureRow struct {
	ID       string `json:"id" column:"id" dbtype:"TEXT NOT NULL" primary:"true"`
	LeagueID string `json:"leagueId" column:"league_id" dbtype:"TEXT NOT NULL" index:"true"`
	Season   string `json:"season" column:"season" dbtype:"TEXT NOT NULL" index:"true"`
	Date     string `json:"date" column:"date" dbtype:"TEXT NOT NULL" index:"true"`

	HomeID   string `json:"homeId" column:"home_id" dbtype:"TEXT NOT NULL" index:"true"`
	AwayID   string `json:"awayId" column:"away_id" dbtype:"TEXT NOT NULL" index:"true"`
	HomeName string `json:"homeName" column:"home_name" dbtype:"TEXT"`
	AwayName string `json:"awayName" column:"away_name" dbtype:"TEXT"`

	HomeGoals int `json:"homeGoals" column:"home_goals" dbtype:"INTEGER DEFAULT -1"`
	AwayGoals int `json:"awayGoals" column:"away_goals" dbtype:"INTEGER DEFAULT -1"`
}

func (f *FixtureRow) TableName() string {
	return "fixtures"
}

func (f *FixtureRow) PrimaryKey() map[string]any {
	return map[string]any{"id": f.ID}
}

// Played reports whether the fixture has a recorded final score
func (f *FixtureRow) Played() bool {
	return f.HomeGoals >= 0 && f.AwayGoals >= 0
}

// LeagueRow holds per-league scoring context
type LeagueRow struct {
	LeagueID         string  `json:"leagueId" column:"league_id" dbtype:"TEXT NOT NULL" primary:"true"`
	Name             string  `json:"name" column:"name" dbtype:"TEXT"`
	Season           string  `json:"season" column:"season" dbtype:"TEXT"`
	AvgGoalsPerMatch float64 `json:"avgGoalsPerMatch" column:"avg_goals_per_match" dbtype:"REAL DEFAULT 0"`
	Strength         float64 `json:"strength" column:"strength" dbtype:"REAL DEFAULT 1.0"`
}

func (l *LeagueRow) TableName() string {
	return "leagues"
}

func (l *LeagueRow) PrimaryKey() map[string]any {
	return map[string]any{"league_id": l.LeagueID}
}
