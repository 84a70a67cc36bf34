package predict

import "errors"

// ErrNoData is the defined "no data" sentinel for provider lookups.
// The engine recovers from it with league-average substitution.
var ErrNoData = errors.New("no data available")

// ErrInvalidRecord marks a contract violation by the data source,
// rejected at the engine boundary rather than recovered
var ErrInvalidRecord = errors.New("invalid record")

// StatisticsProvider supplies historical data to the engine. Implementations
// must return ErrNoData (never panic) for unknown teams or leagues; an empty
// HeadToHeadRecord is not an error.
type StatisticsProvider interface {
	TeamRecord(teamID string) (*TeamRecord, error)
	HeadToHead(homeID, awayID string) (*HeadToHeadRecord, error)
	LeagueContext(leagueID string) (*LeagueContext, error)
}

// neutralTeamRecord is substituted when a team is unknown to the provider
func neutralTeamRecord(teamID string) *TeamRecord {
	return &TeamRecord{TeamID: teamID, Name: teamID}
}

// neutralLeagueContext is substituted when a league is unknown to the provider
func neutralLeagueContext(cfg *EngineConfig, leagueID string) *LeagueContext {
	return &LeagueContext{
		LeagueID:         leagueID,
		AvgGoalsPerMatch: cfg.DefaultLeagueAvgGoals,
		Strength:         1.0,
	}
}

// StaticProvider serves fixed in-memory data. Useful for deterministic tests
// and for callers that assemble records themselves.
type StaticProvider struct {
	Teams   map[string]*TeamRecord
	H2H     map[string]*HeadToHeadRecord
	Leagues map[string]*LeagueContext
}

// NewStaticProvider returns an empty provider ready to be populated
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		Teams:   make(map[string]*TeamRecord),
		H2H:     make(map[string]*HeadToHeadRecord),
		Leagues: make(map[string]*LeagueContext),
	}
}

func (p *StaticProvider) TeamRecord(teamID string) (*TeamRecord, error) {
	if rec, ok := p.Teams[teamID]; ok {
		return rec, nil
	}
	return nil, ErrNoData
}

func (p *StaticProvider) HeadToHead(homeID, awayID string) (*HeadToHeadRecord, error) {
	if rec, ok := p.H2H[homeID+"|"+awayID]; ok {
		return rec, nil
	}
	// An unknown pairing is simply an empty history
	return &HeadToHeadRecord{}, nil
}

func (p *StaticProvider) LeagueContext(leagueID string) (*LeagueContext, error) {
	if lc, ok := p.Leagues[leagueID]; ok {
		return lc, nil
	}
	return nil, ErrNoData
}

// AddHeadToHead registers a shared history for both orderings of the pair
func (p *StaticProvider) AddHeadToHead(homeID, awayID string, rec *HeadToHeadRecord) {
	p.H2H[homeID+"|"+awayID] = rec
	p.H2H[awayID+"|"+homeID] = rec
}
