package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"cocktail-popularity/config"
	"cocktail-popularity/models"
	"cocktail-popularity/scraper/diffords"
	"cocktail-popularity/services"
	"cocktail-popularity/storage"
	"cocktail-popularity/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerTo(os.Stdout, utils.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("=== Cocktail popularity build starting ===")
	logger.Info("Config — recipes: %s | output: %s | pages: %d | fetch: %s",
		cfg.RecipesDir, cfg.PopularityJSON, len(cfg.PageURLs), cfg.FetchMode)

	matcherCfg, err := config.ReadMatcherConfig(cfg.MatcherConfig)
	if err != nil {
		return err
	}
	logger.Debug("Matcher — %d manual overrides | %d stop words",
		len(matcherCfg.ManualOverrides), len(matcherCfg.StopWords))

	var fetcher diffords.TextFetcher
	switch cfg.FetchMode {
	case config.FetchModeBrowser:
		browser := diffords.NewBrowserFetcher(ctx, cfg.UserAgent, cfg.ChromeBin, logger)
		defer browser.Close()
		fetcher = browser
	case config.FetchModeHTTP:
		fetcher = diffords.NewHTTPFetcher(cfg.UserAgent)
	}

	scraper := diffords.New(fetcher, cfg.PageURLs, cfg.RateLimitMs, logger)
	rankings := &rawRankingTap{source: scraper, path: cfg.RawRankingsCSV, logger: logger}

	pipeline := &services.Pipeline{
		Recipes:  storage.NewRecipeLoader(cfg.RecipesDir, filepath.Base(cfg.PopularityJSON), logger),
		Rankings: rankings,
		Matcher: services.NewMatcher(
			services.NewNormalizer(matcherCfg.StopWords),
			matcherCfg.ManualOverrides,
			logger,
		),
		Writer: storage.NewJSONWriter(cfg.PopularityJSON),
		Logger: logger,
	}

	entries, report, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}
	report.OutputPath = cfg.PopularityJSON

	services.NewReportService(logger).Print(os.Stdout, report)

	if cfg.PostgresDSN != "" {
		if err := writePostgres(ctx, cfg.PostgresDSN, entries); err != nil {
			return err
		}
		logger.Info("Popularity entries stored in PostgreSQL (table: cocktail_popularity)")
	}

	if rankings.err != nil {
		return fmt.Errorf("raw rankings %s: %w", cfg.RawRankingsCSV, rankings.err)
	}
	return nil
}

func writePostgres(ctx context.Context, dsn string, entries []models.PopularityEntry) error {
	pgWriter, err := storage.NewPostgresWriter(ctx, dsn)
	if err != nil {
		return err
	}
	defer pgWriter.Close()
	return pgWriter.WriteContext(ctx, entries)
}

// rawRankingTap saves the scraped ranking to CSV, when configured, as soon
// as the scrape succeeds. A CSV failure is logged and kept in err; the
// entries still flow on so the popularity file gets written.
type rawRankingTap struct {
	source services.RankingSource
	path   string
	logger *utils.Logger
	err    error
}

func (t *rawRankingTap) Scrape(ctx context.Context) ([]models.RankingEntry, error) {
	entries, err := t.source.Scrape(ctx)
	if err != nil || t.path == "" {
		return entries, err
	}

	if err := writeRawRankings(t.path, entries); err != nil {
		t.logger.Error("CSV write failed: %v", err)
		t.err = err
		return entries, nil
	}
	t.logger.Info("Raw rankings saved to %s", t.path)
	return entries, nil
}

func writeRawRankings(path string, entries []models.RankingEntry) error {
	var raw storage.RankingWriter
	raw, err := storage.NewCSVWriter(path, models.SourceDiffordsTop100)
	if err != nil {
		return err
	}
	if err := raw.WriteRaw(entries); err != nil {
		_ = raw.Close()
		return err
	}
	return raw.Close()
}
