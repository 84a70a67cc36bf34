package predict

// Back-testing helpers: compare reports against played fixtures to measure
// how the model would have done.

// PredictionAccuracy holds accuracy metrics for a single predicted match
type PredictionAccuracy struct {
	HomeTeam string
	AwayTeam string

	ActualHomeGoals    int
	ActualAwayGoals    int
	PredictedHomeGoals int
	PredictedAwayGoals int

	ExactScoreCorrect   bool
	ResultCorrect       bool
	GoalDifferenceError int
	TotalGoalsError     int
}

// AggregateAccuracy holds aggregate prediction accuracy statistics
type AggregateAccuracy struct {
	TotalMatches           int
	ExactScoreAccuracy     float64 // Percentage
	ResultAccuracy         float64 // Percentage
	AverageGoalDiffError   float64
	AverageTotalGoalsError float64
}

// EvaluateReport compares one report with the actual result.
// Returns nil when the actual score is unknown.
func EvaluateReport(report *PredictionReport, actualHomeGoals, actualAwayGoals int) *PredictionAccuracy {
	if report == nil || actualHomeGoals < 0 || actualAwayGoals < 0 {
		return nil
	}

	predicted := report.MostLikelyScore
	accuracy := &PredictionAccuracy{
		HomeTeam:           report.HomeTeam,
		AwayTeam:           report.AwayTeam,
		ActualHomeGoals:    actualHomeGoals,
		ActualAwayGoals:    actualAwayGoals,
		PredictedHomeGoals: predicted.HomeGoals,
		PredictedAwayGoals: predicted.AwayGoals,
	}

	accuracy.ExactScoreCorrect = actualHomeGoals == predicted.HomeGoals &&
		actualAwayGoals == predicted.AwayGoals

	accuracy.ResultCorrect = matchResult(actualHomeGoals, actualAwayGoals) == report.FavouriteOutcome()

	actualDiff := actualHomeGoals - actualAwayGoals
	predictedDiff := predicted.HomeGoals - predicted.AwayGoals
	accuracy.GoalDifferenceError = absInt(actualDiff - predictedDiff)

	actualTotal := actualHomeGoals + actualAwayGoals
	predictedTotal := predicted.HomeGoals + predicted.AwayGoals
	accuracy.TotalGoalsError = absInt(actualTotal - predictedTotal)

	return accuracy
}

// AggregateAccuracies folds per-match accuracies into aggregate statistics.
// Returns nil for an empty input.
func AggregateAccuracies(accuracies []*PredictionAccuracy) *AggregateAccuracy {
	var valid []*PredictionAccuracy
	for _, acc := range accuracies {
		if acc != nil {
			valid = append(valid, acc)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	aggregate := &AggregateAccuracy{TotalMatches: len(valid)}

	var exactCount, resultCount, goalDiffError, totalGoalsError int
	for _, acc := range valid {
		if acc.ExactScoreCorrect {
			exactCount++
		}
		if acc.ResultCorrect {
			resultCount++
		}
		goalDiffError += acc.GoalDifferenceError
		totalGoalsError += acc.TotalGoalsError
	}

	n := float64(aggregate.TotalMatches)
	aggregate.ExactScoreAccuracy = float64(exactCount) / n * 100
	aggregate.ResultAccuracy = float64(resultCount) / n * 100
	aggregate.AverageGoalDiffError = float64(goalDiffError) / n
	aggregate.AverageTotalGoalsError = float64(totalGoalsError) / n

	return aggregate
}

// matchResult returns "H" for home win, "D" for draw, "A" for away win
func matchResult(homeGoals, awayGoals int) string {
	if homeGoals > awayGoals {
		return "H"
	}
	if homeGoals < awayGoals {
		return "A"
	}
	return "D"
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
