package store

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sabriduruk/football-prediction/internal/logger"
)

// Importer for saved results pages. The importer only reads local HTML
// snapshots; it never fetches anything over the network.
//
// Expected markup is a results table where each row carries the cells
// date, home team, score, away team:
//
//	<tr><td>2025-08-16</td><td>Arsenal</td><td>2 - 1</td><td>Chelsea</td></tr>
//
// Rows without a parseable score are kept as unplayed fixtures.

var (
	scorePattern = regexp.MustCompile(`^\s*(\d+)\s*[-:\x{2013}]\s*(\d+)\s*$`)
	slugPattern  = regexp.MustCompile(`[^a-z0-9]+`)
)

var dateLayouts = []string{dateLayout, "02/01/2006", "02.01.2006", "Jan 2 2006", "2 Jan 2006"}

// ParseResultsHTML parses a saved results page into fixture rows
func ParseResultsHTML(r io.Reader, leagueID, season string) ([]*FixtureRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	var fixtures []*FixtureRow
	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		date, ok := parseCellDate(cells.Eq(0).Text())
		if !ok {
			return
		}
		homeName := strings.TrimSpace(cells.Eq(1).Text())
		awayName := strings.TrimSpace(cells.Eq(3).Text())
		if homeName == "" || awayName == "" {
			return
		}

		fixture := &FixtureRow{
			LeagueID:  leagueID,
			Season:    season,
			Date:      date,
			HomeID:    teamSlug(homeName),
			AwayID:    teamSlug(awayName),
			HomeName:  homeName,
			AwayName:  awayName,
			HomeGoals: -1,
			AwayGoals: -1,
		}
		fixture.ID = fmt.Sprintf("%s-%s-%s-%s", leagueID, date, fixture.HomeID, fixture.AwayID)

		if m := scorePattern.FindStringSubmatch(cells.Eq(2).Text()); m != nil {
			fixture.HomeGoals, _ = strconv.Atoi(m[1])
			fixture.AwayGoals, _ = strconv.Atoi(m[2])
		}
		fixtures = append(fixtures, fixture)
	})

	if len(fixtures) == 0 {
		return nil, fmt.Errorf("no fixture rows found in document")
	}
	return fixtures, nil
}

// ImportResultsHTML parses a saved results page, stores its fixtures and
// rebuilds the league aggregates. Returns the number of fixtures stored.
func (s *Store) ImportResultsHTML(r io.Reader, leagueID, season string) (int, error) {
	fixtures, err := ParseResultsHTML(r, leagueID, season)
	if err != nil {
		return 0, err
	}

	records := make([]Record, len(fixtures))
	for i, fx := range fixtures {
		records[i] = fx
	}
	if err := s.BulkSave(records); err != nil {
		return 0, fmt.Errorf("failed to store imported fixtures: %w", err)
	}

	if err := s.RebuildAggregates(leagueID, season); err != nil {
		return 0, err
	}

	logger.Info("Imported fixtures", leagueID, season, "count", len(fixtures))
	return len(fixtures), nil
}

// parseCellDate normalizes a table cell date to the stored ISO layout
func parseCellDate(text string) (string, bool) {
	text = strings.TrimSpace(text)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format(dateLayout), true
		}
	}
	return "", false
}

// teamSlug derives a stable team identifier from a display name
func teamSlug(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
