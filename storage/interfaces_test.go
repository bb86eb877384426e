package storage_test

import (
	"cocktail-popularity/services"
	"cocktail-popularity/storage"
)

// Both popularity sinks plug into the pipeline.
var (
	_ services.PopularityWriter = (*storage.JSONWriter)(nil)
	_ services.PopularityWriter = (*storage.PostgresWriter)(nil)
)
