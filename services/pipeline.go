package services

import (
	"context"
	"fmt"

	"cocktail-popularity/models"
	"cocktail-popularity/utils"
)

// RecipeSource yields the local recipe records.
type RecipeSource interface {
	Load(ctx context.Context) ([]models.Recipe, error)
}

// RankingSource yields the external ranking in ascending rank order.
type RankingSource interface {
	Scrape(ctx context.Context) ([]models.RankingEntry, error)
}

// PopularityWriter persists the matched popularity entries.
type PopularityWriter interface {
	Write(entries []models.PopularityEntry) error
}

// Pipeline runs load → index → scrape → match → write.
// Nothing is written unless every earlier stage succeeded.
type Pipeline struct {
	Recipes  RecipeSource
	Rankings RankingSource
	Matcher  *Matcher
	Writer   PopularityWriter
	Logger   *utils.Logger
}

// Run executes the pipeline once and returns the matched entries with a report.
func (p *Pipeline) Run(ctx context.Context) ([]models.PopularityEntry, *models.RunReport, error) {
	recipes, err := p.Recipes.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load recipes: %w", err)
	}
	index := p.Matcher.BuildIndex(recipes)
	p.Logger.Debug("[pipeline] Name index holds %d keys", len(index))

	rankings, err := p.Rankings.Scrape(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("scrape rankings: %w", err)
	}

	result := p.Matcher.Match(index, rankings)

	if err := p.Writer.Write(result.Entries); err != nil {
		return nil, nil, fmt.Errorf("write popularity: %w", err)
	}

	report := &models.RunReport{
		RecipesLoaded:   len(recipes),
		IndexKeys:       len(index),
		ScrapedEntries:  len(rankings),
		Matched:         len(result.Entries),
		OverrideMatches: result.OverrideMatches,
		Unmatched:       result.Unmatched,
	}
	return result.Entries, report, nil
}
