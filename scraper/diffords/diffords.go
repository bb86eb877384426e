package diffords

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cocktail-popularity/models"
	"cocktail-popularity/utils"
)

// Scraper collects the Difford's Guide top-100 ranking across its pages.
type Scraper struct {
	fetcher     TextFetcher
	pages       []string
	rateLimitMs int
	logger      *utils.Logger
}

// New creates a Scraper reading the given pages, in order, through fetcher.
func New(fetcher TextFetcher, pages []string, rateLimitMs int, logger *utils.Logger) *Scraper {
	return &Scraper{
		fetcher:     fetcher,
		pages:       pages,
		rateLimitMs: rateLimitMs,
		logger:      logger,
	}
}

// Fetch returns the ranking entries found on a single page.
func (s *Scraper) Fetch(ctx context.Context, url string) ([]models.RankingEntry, error) {
	text, err := s.fetcher.FetchText(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseRankings(text), nil
}

// Scrape fetches every page and merges the entries by rank; a later
// occurrence of a rank replaces an earlier one. Any page failure aborts
// the whole scrape.
func (s *Scraper) Scrape(ctx context.Context) ([]models.RankingEntry, error) {
	byRank := make(map[int]string)

	for i, url := range s.pages {
		if i > 0 && s.rateLimitMs > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(s.rateLimitMs) * time.Millisecond):
			}
		}

		s.logger.Info("Scraping %s", url)
		entries, err := s.Fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("diffords: page %s: %w", url, err)
		}
		if len(entries) == 0 {
			s.logger.Warn("[diffords] No ranked entries found on %s", url)
		}

		for _, e := range entries {
			if prev, dup := byRank[e.Rank]; dup && prev != e.Name {
				s.logger.Debug("[diffords] Rank %d: %q replaced by %q", e.Rank, prev, e.Name)
			}
			byRank[e.Rank] = e.Name
		}
	}

	ranks := make([]int, 0, len(byRank))
	for r := range byRank {
		ranks = append(ranks, r)
	}
	sort.Ints(ranks)

	result := make([]models.RankingEntry, 0, len(ranks))
	for _, r := range ranks {
		result = append(result, models.RankingEntry{Rank: r, Name: byRank[r]})
	}

	s.logger.Info("[diffords] Scrape complete — %d ranked entries", len(result))
	return result, nil
}
