package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// DefaultStopWords are dropped from names before matching.
var DefaultStopWords = []string{"the", "a", "an", "classic", "original", "cocktail"}

// MatcherConfig holds the hand-maintained matching tables.
type MatcherConfig struct {
	// ManualOverrides maps an external display name, exactly as scraped,
	// to a name that resolves in the local index.
	ManualOverrides map[string]string `json:"manual_overrides"`
	StopWords       []string          `json:"stop_words"`
}

// DefaultMatcherConfig returns the built-in tables.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		ManualOverrides: map[string]string{},
		StopWords:       append([]string(nil), DefaultStopWords...),
	}
}

// ReadMatcherConfig reads the matcher tables from a JSON5 file, merged with
// its <name>.local.<ext> sibling when present. Missing files are not an error;
// whatever is absent falls back to the defaults. manual_overrides entries are
// added key by key; a stop_words list, even an empty one, replaces the current list.
func ReadMatcherConfig(name string) (MatcherConfig, error) {
	out := DefaultMatcherConfig()

	for _, path := range []string{name, localPath(name)} {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return out, fmt.Errorf("matcher config: read %q: %w", path, err)
		}
		if len(data) == 0 {
			continue
		}

		var override MatcherConfig
		if err := json5.Unmarshal(data, &override); err != nil {
			return out, fmt.Errorf("matcher config: parse %q: %w", path, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, fmt.Errorf("matcher config: merge %q: %w", path, err)
		}
		// mergo skips empty slices; "stop_words": [] still means none.
		if override.StopWords != nil {
			out.StopWords = override.StopWords
		}
	}

	return out, nil
}

func localPath(name string) string {
	dir := filepath.Dir(name)
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	prefix := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, prefix+".local"+ext)
}
