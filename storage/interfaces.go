package storage

import "cocktail-popularity/models"

// RankingWriter is the interface for persisting the scraped, unmatched ranking.
type RankingWriter interface {
	WriteRaw(entries []models.RankingEntry) error
	Close() error
}

var _ RankingWriter = (*CSVWriter)(nil)
