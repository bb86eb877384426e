package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"RECIPES_DIR", "POPULARITY_JSON", "RAW_RANKINGS_CSV", "USER_AGENT", "FETCH_MODE", "RATE_LIMIT_MS", "POSTGRES_DSN"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.RecipesDir != "." {
		t.Errorf("RecipesDir: got %q, want %q", cfg.RecipesDir, ".")
	}
	if cfg.PopularityJSON != "cocktail_popularity.json" {
		t.Errorf("PopularityJSON: got %q", cfg.PopularityJSON)
	}
	if cfg.UserAgent != "Mozilla/5.0" {
		t.Errorf("UserAgent: got %q", cfg.UserAgent)
	}
	if cfg.FetchMode != FetchModeHTTP {
		t.Errorf("FetchMode: got %q, want %q", cfg.FetchMode, FetchModeHTTP)
	}
	if len(cfg.PageURLs) != 5 {
		t.Errorf("PageURLs: got %d, want 5", len(cfg.PageURLs))
	}
	if cfg.RawRankingsCSV != "" || cfg.PostgresDSN != "" {
		t.Error("optional sinks should be disabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RECIPES_DIR", "/data/recipes")
	t.Setenv("FETCH_MODE", "Browser")
	t.Setenv("RATE_LIMIT_MS", "250")

	cfg := Load()

	if cfg.RecipesDir != "/data/recipes" {
		t.Errorf("RecipesDir: got %q", cfg.RecipesDir)
	}
	if cfg.FetchMode != FetchModeBrowser {
		t.Errorf("FetchMode: got %q, want %q", cfg.FetchMode, FetchModeBrowser)
	}
	if cfg.RateLimitMs != 250 {
		t.Errorf("RateLimitMs: got %d, want 250", cfg.RateLimitMs)
	}
}

func TestGetEnvIntFallback(t *testing.T) {
	t.Setenv("RATE_LIMIT_MS", "soon")
	if got := getEnvInt("RATE_LIMIT_MS", 7); got != 7 {
		t.Errorf("getEnvInt with invalid value: got %d, want 7", got)
	}
}

func TestValidateFetchMode(t *testing.T) {
	for _, mode := range []string{FetchModeHTTP, FetchModeBrowser} {
		if err := (&Config{FetchMode: mode}).Validate(); err != nil {
			t.Errorf("mode %q: unexpected error %v", mode, err)
		}
	}

	t.Setenv("FETCH_MODE", "Chrome")
	cfg := Load()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("mode %q should be rejected", cfg.FetchMode)
	}
}
