package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DiffordsTop100Pages are the five 20-rank slices of Difford's Guide top 100.
var DiffordsTop100Pages = []string{
	"https://www.diffordsguide.com/g/1127/worlds-top-100-cocktails/1-20",
	"https://www.diffordsguide.com/g/1127/worlds-top-100-cocktails/21-40",
	"https://www.diffordsguide.com/g/1127/worlds-top-100-cocktails/41-60",
	"https://www.diffordsguide.com/g/1127/worlds-top-100-cocktails/61-80",
	"https://www.diffordsguide.com/g/1127/worlds-top-100-cocktails/81-100",
}

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	RecipesDir     string
	PopularityJSON string
	RawRankingsCSV string

	PageURLs    []string
	UserAgent   string
	FetchMode   string
	RateLimitMs int
	ChromeBin   string

	PostgresDSN string

	MatcherConfig string
	LogLevel      string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		RecipesDir:     getEnv("RECIPES_DIR", "."),
		PopularityJSON: getEnv("POPULARITY_JSON", "cocktail_popularity.json"),
		RawRankingsCSV: getEnv("RAW_RANKINGS_CSV", ""),

		PageURLs:    append([]string(nil), DiffordsTop100Pages...),
		UserAgent:   getEnv("USER_AGENT", "Mozilla/5.0"),
		FetchMode:   strings.ToLower(getEnv("FETCH_MODE", FetchModeHTTP)),
		RateLimitMs: getEnvInt("RATE_LIMIT_MS", 0),
		ChromeBin:   getEnv("CHROME_BIN", ""),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		MatcherConfig: getEnv("MATCHER_CONFIG", "matcher.json5"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// Validate rejects settings Load passes through unchecked.
func (c *Config) Validate() error {
	switch c.FetchMode {
	case FetchModeHTTP, FetchModeBrowser:
	default:
		return fmt.Errorf("config: FETCH_MODE %q is not one of %q, %q", c.FetchMode, FetchModeHTTP, FetchModeBrowser)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
