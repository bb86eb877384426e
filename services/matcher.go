package services

import (
	"sort"

	"github.com/antzucaro/matchr"

	"cocktail-popularity/models"
	"cocktail-popularity/utils"
)

// NameIndex maps a normalized name or id to a recipe id.
type NameIndex map[string]string

// MatchResult is the outcome of joining the external ranking to the local index.
type MatchResult struct {
	Entries         []models.PopularityEntry
	Unmatched       []models.UnmatchedEntry
	OverrideMatches int
}

// Matcher joins scraped ranking entries to local recipe ids.
type Matcher struct {
	normalizer *Normalizer
	overrides  map[string]string
	logger     *utils.Logger
}

// NewMatcher creates a Matcher. overrides maps an external display name,
// exactly as scraped, to an alternate name tried when the direct lookup misses.
func NewMatcher(normalizer *Normalizer, overrides map[string]string, logger *utils.Logger) *Matcher {
	if overrides == nil {
		overrides = map[string]string{}
	}
	return &Matcher{normalizer: normalizer, overrides: overrides, logger: logger}
}

// BuildIndex indexes every recipe under its normalized name and normalized id.
// A later recipe overwrites an earlier one on key collision.
func (m *Matcher) BuildIndex(recipes []models.Recipe) NameIndex {
	index := make(NameIndex, len(recipes)*2)
	for _, r := range recipes {
		for _, key := range []string{m.normalizer.Normalize(r.Name), m.normalizer.Normalize(r.ID)} {
			if key == "" {
				continue
			}
			if prev, ok := index[key]; ok && prev != r.ID {
				m.logger.Debug("[matcher] Key %q: %s overwritten by %s", key, prev, r.ID)
			}
			index[key] = r.ID
		}
	}
	return index
}

// Match resolves each ranking entry, in the given order, against the index.
// Unresolved entries are reported and skipped; popularity ranks are dense
// over the resolved entries only.
func (m *Matcher) Match(index NameIndex, rankings []models.RankingEntry) *MatchResult {
	result := &MatchResult{}
	var matched []models.PopularityEntry

	for _, entry := range rankings {
		norm := m.normalizer.Normalize(entry.Name)
		id, ok := lookup(index, norm)

		if !ok {
			if alt, has := m.overrides[entry.Name]; has {
				id, ok = lookup(index, m.normalizer.Normalize(alt))
				if ok {
					result.OverrideMatches++
				}
			}
		}

		if !ok {
			suggestion, score := Suggest(index, norm)
			if suggestion != "" {
				m.logger.Warn("NO MATCH: %d. %s (closest: %q, %.2f)", entry.Rank, entry.Name, suggestion, score)
			} else {
				m.logger.Warn("NO MATCH: %d. %s", entry.Rank, entry.Name)
			}
			result.Unmatched = append(result.Unmatched, models.UnmatchedEntry{
				Rank:       entry.Rank,
				Name:       entry.Name,
				Suggestion: suggestion,
				Similarity: score,
			})
			continue
		}

		matched = append(matched, models.PopularityEntry{
			ID:           id,
			ExternalRank: entry.Rank,
			Name:         entry.Name,
			Source:       models.SourceDiffordsTop100,
		})
	}

	result.Entries = AssignPopularityRanks(matched)
	return result
}

// AssignPopularityRanks numbers the entries 1..N in slice order.
// It returns a new slice and leaves the input untouched.
func AssignPopularityRanks(entries []models.PopularityEntry) []models.PopularityEntry {
	ranked := make([]models.PopularityEntry, len(entries))
	for i, e := range entries {
		e.PopularityRank = i + 1
		ranked[i] = e
	}
	return ranked
}

func lookup(index NameIndex, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	id, ok := index[key]
	return id, ok && id != ""
}

// minSuggestionScore is the Jaro-Winkler similarity below which no hint is given.
const minSuggestionScore = 0.8

// Suggest returns the index key most similar to name, or "" when nothing
// scores at least minSuggestionScore. Ties go to the lexically smallest key.
func Suggest(index NameIndex, name string) (string, float64) {
	if name == "" || len(index) == 0 {
		return "", 0
	}

	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var best string
	var bestScore float64
	for _, k := range keys {
		score := matchr.JaroWinkler(name, k, false)
		if score > bestScore {
			best, bestScore = k, score
		}
	}

	if bestScore < minSuggestionScore {
		return "", 0
	}
	return best, bestScore
}
