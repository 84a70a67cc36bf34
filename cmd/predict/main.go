package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/sabriduruk/football-prediction/internal/logger"
	"github.com/sabriduruk/football-prediction/pkg/predict"
	"github.com/sabriduruk/football-prediction/pkg/store"
)

const usage = `Usage: predict <command> [flags]

Commands:
  import    import a saved results HTML snapshot into the database
  match     predict a single fixture
  fixtures  predict all stored unplayed fixtures, ranked by best bet score
  backtest  evaluate prediction accuracy against played fixtures
`

func main() {
	logger.SetShowDateTime(true)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "import":
		err = runImport(os.Args[2:])
	case "match":
		err = runMatch(os.Args[2:])
	case "fixtures":
		err = runFixtures(os.Args[2:])
	case "backtest":
		err = runBacktest(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("Command failed:", err)
		os.Exit(1)
	}
}

// commonFlags registers the flags shared by every subcommand
func commonFlags(fs *flag.FlagSet) (dbPath, leagueID, season *string) {
	dbPath = fs.String("db", "football.db", "path to the statistics database")
	leagueID = fs.String("league", "", "league identifier")
	season = fs.String("season", "", "season label, e.g. 2025/2026")
	return
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath, leagueID, season := commonFlags(fs)
	file := fs.String("file", "", "saved results HTML snapshot")
	fs.Parse(args)

	if *file == "" || *leagueID == "" || *season == "" {
		return fmt.Errorf("import requires -file, -league and -season")
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	s, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	count, err := s.ImportResultsHTML(f, *leagueID, *season)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d fixtures into %s\n", count, *dbPath)
	return nil
}

func runMatch(args []string) error {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	dbPath, leagueID, season := commonFlags(fs)
	home := fs.String("home", "", "home team identifier")
	away := fs.String("away", "", "away team identifier")
	seed := fs.Int64("seed", 1, "simulation seed")
	asJSON := fs.Bool("json", false, "emit the full report as JSON")
	fs.Parse(args)

	if *home == "" || *away == "" || *leagueID == "" || *season == "" {
		return fmt.Errorf("match requires -home, -away, -league and -season")
	}

	s, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	predictor, err := predict.NewPredictor(store.NewProvider(s, *leagueID, *season), nil, *seed)
	if err != nil {
		return err
	}

	report, err := predictor.Predict(predict.Fixture{
		HomeID:   *home,
		AwayID:   *away,
		LeagueID: *leagueID,
	})
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(report)
	return nil
}

func runFixtures(args []string) error {
	fs := flag.NewFlagSet("fixtures", flag.ExitOnError)
	dbPath, leagueID, season := commonFlags(fs)
	seed := fs.Int64("seed", 1, "simulation seed")
	fs.Parse(args)

	if *leagueID == "" || *season == "" {
		return fmt.Errorf("fixtures requires -league and -season")
	}

	s, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	rows, err := s.FindWhere(&store.FixtureRow{},
		"league_id = ? AND season = ? AND home_goals < 0 ORDER BY date", *leagueID, *season)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No unplayed fixtures stored")
		return nil
	}

	fixtures := make([]predict.Fixture, len(rows))
	for i, r := range rows {
		fx := r.(*store.FixtureRow)
		fixtures[i] = predict.Fixture{
			HomeID:   fx.HomeID,
			AwayID:   fx.AwayID,
			HomeName: fx.HomeName,
			AwayName: fx.AwayName,
			LeagueID: *leagueID,
		}
	}

	predictor, err := predict.NewPredictor(store.NewProvider(s, *leagueID, *season), nil, *seed)
	if err != nil {
		return err
	}
	reports, err := predictor.PredictBatch(fixtures)
	if err != nil {
		return err
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].BestBetScore() > reports[j].BestBetScore()
	})

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATCH\t1\tX\t2\tO3.5\tSCORE\tCONF\tBET")
	for _, r := range reports {
		fmt.Fprintf(w, "%s v %s\t%.0f%%\t%.0f%%\t%.0f%%\t%.0f%%\t%d-%d\t%.0f\t%.1f\n",
			r.HomeTeam, r.AwayTeam,
			r.HomeWinProbability*100, r.DrawProbability*100, r.AwayWinProbability*100,
			r.Over3p5Probability*100,
			r.MostLikelyScore.HomeGoals, r.MostLikelyScore.AwayGoals,
			r.Confidence, r.BestBetScore())
	}
	return w.Flush()
}

func runBacktest(args []string) error {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	dbPath, leagueID, season := commonFlags(fs)
	seed := fs.Int64("seed", 1, "simulation seed")
	fs.Parse(args)

	if *leagueID == "" || *season == "" {
		return fmt.Errorf("backtest requires -league and -season")
	}

	s, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	rows, err := s.FindWhere(&store.FixtureRow{},
		"league_id = ? AND season = ? AND home_goals >= 0 ORDER BY date", *leagueID, *season)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No played fixtures stored")
		return nil
	}

	predictor, err := predict.NewPredictor(store.NewProvider(s, *leagueID, *season), nil, *seed)
	if err != nil {
		return err
	}

	var accuracies []*predict.PredictionAccuracy
	for _, r := range rows {
		fx := r.(*store.FixtureRow)
		report, err := predictor.Predict(predict.Fixture{
			HomeID:   fx.HomeID,
			AwayID:   fx.AwayID,
			HomeName: fx.HomeName,
			AwayName: fx.AwayName,
			LeagueID: *leagueID,
		})
		if err != nil {
			return err
		}
		accuracies = append(accuracies, predict.EvaluateReport(report, fx.HomeGoals, fx.AwayGoals))
	}

	aggregate := predict.AggregateAccuracies(accuracies)
	if aggregate == nil {
		fmt.Println("Nothing to evaluate")
		return nil
	}

	fmt.Printf("Matches evaluated:    %d\n", aggregate.TotalMatches)
	fmt.Printf("Exact score accuracy: %.1f%%\n", aggregate.ExactScoreAccuracy)
	fmt.Printf("Result accuracy:      %.1f%%\n", aggregate.ResultAccuracy)
	fmt.Printf("Avg goal diff error:  %.2f\n", aggregate.AverageGoalDiffError)
	fmt.Printf("Avg total goal error: %.2f\n", aggregate.AverageTotalGoalsError)
	return nil
}

func printReport(r *predict.PredictionReport) {
	fmt.Printf("%s v %s\n", r.HomeTeam, r.AwayTeam)
	fmt.Printf("  Expected goals:  %.2f - %.2f\n", r.ExpectedHomeGoals, r.ExpectedAwayGoals)
	fmt.Printf("  Home/Draw/Away:  %.1f%% / %.1f%% / %.1f%%\n",
		r.HomeWinProbability*100, r.DrawProbability*100, r.AwayWinProbability*100)
	fmt.Printf("  Over 3.5 goals:  %.1f%%\n", r.Over3p5Probability*100)
	fmt.Printf("  Most likely:     %d-%d\n", r.MostLikelyScore.HomeGoals, r.MostLikelyScore.AwayGoals)
	fmt.Printf("  Confidence:      %.0f\n", r.Confidence)
	fmt.Println("  Top scorelines:")
	for _, s := range r.Scorelines {
		fmt.Printf("    %d-%d  %.1f%%\n", s.HomeGoals, s.AwayGoals, s.Probability*100)
	}
}
