package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"cocktail-popularity/models"
	"cocktail-popularity/utils"
)

type ReportService struct {
	logger *utils.Logger
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// Coverage is the share of scraped entries that matched a local recipe, in percent.
func Coverage(r *models.RunReport) float64 {
	if r == nil || r.ScrapedEntries == 0 {
		return 0
	}
	return round2(float64(r.Matched) * 100 / float64(r.ScrapedEntries))
}

// Summary is the closing line of a run.
func Summary(r *models.RunReport) string {
	return fmt.Sprintf("Created %s with %d matched cocktails.", r.OutputPath, r.Matched)
}

// Print renders the run overview and the unmatched entries as tables.
func (s *ReportService) Print(w io.Writer, r *models.RunReport) {
	overview := table.NewWriter()
	overview.SetOutputMirror(w)
	overview.SetTitle("Cocktail popularity")
	overview.AppendRows([]table.Row{
		{"Recipes loaded", r.RecipesLoaded},
		{"Index keys", r.IndexKeys},
		{"Scraped entries", r.ScrapedEntries},
		{"Matched", r.Matched},
		{"Matched via override", r.OverrideMatches},
		{"Unmatched", len(r.Unmatched)},
		{"Coverage", fmt.Sprintf("%.2f%%", Coverage(r))},
	})
	overview.SetStyle(table.StyleRounded)
	overview.Render()

	if len(r.Unmatched) > 0 {
		unmatched := table.NewWriter()
		unmatched.SetOutputMirror(w)
		unmatched.AppendHeader(table.Row{"Rank", "Name", "Closest local name", "Similarity"})
		for _, u := range r.Unmatched {
			similarity := ""
			if u.Suggestion != "" {
				similarity = fmt.Sprintf("%.2f", u.Similarity)
			}
			unmatched.AppendRow(table.Row{u.Rank, truncate(u.Name, 40), u.Suggestion, similarity})
		}
		unmatched.SetStyle(table.StyleRounded)
		unmatched.Render()
	}

	fmt.Fprintf(w, "\n%s\n", Summary(r))
	if r.Matched == 0 {
		s.logger.Warn("[report] No scraped cocktail matched a local recipe")
	}
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max-3])) + "..."
}
