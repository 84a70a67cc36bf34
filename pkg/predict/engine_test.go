package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider() *StaticProvider {
	provider := NewStaticProvider()
	provider.Teams["city"] = strongRecord()
	provider.Teams["rovers"] = weakRecord()
	provider.Leagues["47"] = testLeague()
	provider.AddHeadToHead("city", "rovers", &HeadToHeadRecord{Fixtures: []HeadToHeadFixture{
		{HomeID: "city", AwayID: "rovers", HomeGoals: 3, AwayGoals: 0},
		{HomeID: "rovers", AwayID: "city", HomeGoals: 1, AwayGoals: 1},
	}})
	return provider
}

func TestPredictFullPipeline(t *testing.T) {
	predictor, err := NewPredictor(testProvider(), nil, 42)
	require.NoError(t, err)

	report, err := predictor.Predict(Fixture{HomeID: "city", AwayID: "rovers", LeagueID: "47"})
	require.NoError(t, err)

	assert.Equal(t, "City", report.HomeTeam)
	assert.Equal(t, "Rovers", report.AwayTeam)

	assert.InDelta(t, 1.0, report.HomeWinProbability+report.DrawProbability+report.AwayWinProbability, 1e-9)
	assert.InDelta(t, 1.0, report.Under3p5Probability+report.Over3p5Probability, 1e-9)

	// A strong home side against a weak visitor must be the favourite
	assert.Equal(t, "H", report.FavouriteOutcome())
	assert.Greater(t, report.ExpectedHomeGoals, report.ExpectedAwayGoals)

	assert.Len(t, report.Scorelines, Config.TopScorelines)
	assert.Greater(t, report.MostLikelyScore.Probability, 0.0)
	assert.Equal(t, report.Scorelines[0], report.MostLikelyScore)

	assert.GreaterOrEqual(t, report.Confidence, Config.ConfidenceFloor)
	assert.LessOrEqual(t, report.Confidence, Config.ConfidenceCeil)

	assert.Equal(t, Config.Simulations, report.SimulatedSamples)
	assert.Greater(t, report.OutcomeStdErr, 0.0)
}

func TestPredictDeterministicBySeed(t *testing.T) {
	fixture := Fixture{HomeID: "city", AwayID: "rovers", LeagueID: "47"}

	first, err := mustPredictor(t, 99).Predict(fixture)
	require.NoError(t, err)
	second, err := mustPredictor(t, 99).Predict(fixture)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical seeds and inputs must reproduce the report")
}

func mustPredictor(t *testing.T, seed int64) *Predictor {
	t.Helper()
	predictor, err := NewPredictor(testProvider(), nil, seed)
	require.NoError(t, err)
	return predictor
}

func TestPredictFillsNamesFromProvider(t *testing.T) {
	predictor := mustPredictor(t, 1)

	// Fixture carries only identifiers; the stored display names surface
	report, err := predictor.Predict(Fixture{HomeID: "city", AwayID: "rovers", LeagueID: "47"})
	require.NoError(t, err)
	assert.Equal(t, "City", report.HomeTeam)
	assert.Equal(t, "Rovers", report.AwayTeam)

	// Names supplied on the fixture take precedence over the provider's
	report, err = predictor.Predict(Fixture{
		HomeID: "city", AwayID: "rovers", LeagueID: "47",
		HomeName: "Manchester City", AwayName: "Blackburn Rovers",
	})
	require.NoError(t, err)
	assert.Equal(t, "Manchester City", report.HomeTeam)
	assert.Equal(t, "Blackburn Rovers", report.AwayTeam)
}

func TestPredictUnknownTeamsDegradeToLeagueAverage(t *testing.T) {
	predictor := mustPredictor(t, 1)

	report, err := predictor.Predict(Fixture{HomeID: "ghost-h", AwayID: "ghost-a", LeagueID: "47"})
	require.NoError(t, err)

	perTeam := testLeague().AvgGoalsPerMatch / 2.0
	assert.InDelta(t, perTeam*Config.HomeAdvantage, report.ExpectedHomeGoals, 1e-9)
	assert.InDelta(t, perTeam, report.ExpectedAwayGoals, 1e-9)

	// Identifier stands in for the missing display name
	assert.Equal(t, "ghost-h", report.HomeTeam)
}

func TestPredictUnknownLeagueUsesDefaultContext(t *testing.T) {
	predictor := mustPredictor(t, 1)

	report, err := predictor.Predict(Fixture{HomeID: "ghost-h", AwayID: "ghost-a", LeagueID: "nowhere"})
	require.NoError(t, err)

	perTeam := Config.DefaultLeagueAvgGoals / 2.0
	assert.InDelta(t, perTeam*Config.HomeAdvantage, report.ExpectedHomeGoals, 1e-9)
	assert.InDelta(t, perTeam, report.ExpectedAwayGoals, 1e-9)
}

func TestPredictRejectsInvalidProviderRecord(t *testing.T) {
	provider := testProvider()
	provider.Teams["broken"] = &TeamRecord{TeamID: "broken", Played: 5, Wins: 9}

	predictor, err := NewPredictor(provider, nil, 1)
	require.NoError(t, err)

	_, err = predictor.Predict(Fixture{HomeID: "broken", AwayID: "rovers", LeagueID: "47"})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestPredictBatchKeepsOrder(t *testing.T) {
	predictor := mustPredictor(t, 7)

	fixtures := []Fixture{
		{HomeID: "city", AwayID: "rovers", LeagueID: "47"},
		{HomeID: "rovers", AwayID: "city", LeagueID: "47"},
		{HomeID: "ghost-h", AwayID: "ghost-a", LeagueID: "47"},
	}
	reports, err := predictor.PredictBatch(fixtures)
	require.NoError(t, err)
	require.Len(t, reports, 3)

	assert.Equal(t, "City", reports[0].HomeTeam)
	assert.Equal(t, "Rovers", reports[1].HomeTeam)
	assert.Equal(t, "ghost-h", reports[2].HomeTeam)
}

func TestPredictBatchPropagatesErrors(t *testing.T) {
	provider := testProvider()
	provider.Teams["broken"] = &TeamRecord{TeamID: "broken", Played: 5, Wins: 9}
	predictor, err := NewPredictor(provider, nil, 1)
	require.NoError(t, err)

	_, err = predictor.PredictBatch([]Fixture{
		{HomeID: "city", AwayID: "rovers", LeagueID: "47"},
		{HomeID: "broken", AwayID: "city", LeagueID: "47"},
	})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestNewPredictorValidatesInputs(t *testing.T) {
	_, err := NewPredictor(nil, nil, 1)
	assert.Error(t, err)

	bad := DefaultEngineConfig()
	bad.SeasonWeight = 0.9
	_, err = NewPredictor(testProvider(), bad, 1)
	assert.Error(t, err)
}

func TestBestBetScoreRanking(t *testing.T) {
	certain := &PredictionReport{
		HomeWinProbability: 0.7, DrawProbability: 0.2, AwayWinProbability: 0.1,
		Under3p5Probability: 0.8, Over3p5Probability: 0.2,
	}
	coinFlip := &PredictionReport{
		HomeWinProbability: 0.35, DrawProbability: 0.30, AwayWinProbability: 0.35,
		Under3p5Probability: 0.5, Over3p5Probability: 0.5,
	}
	assert.Greater(t, certain.BestBetScore(), coinFlip.BestBetScore())
	assert.InDelta(t, 56.0, certain.BestBetScore(), 1e-9)
}
