package services

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cocktail-popularity/models"
	"cocktail-popularity/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, slog.LevelDebug) }

func newTestMatcher(overrides map[string]string) *Matcher {
	return NewMatcher(newTestNormalizer(), overrides, newTestLogger())
}

func sampleRecipes() []models.Recipe {
	return []models.Recipe{
		{ID: "old-fashioned", Name: "Old Fashioned"},
		{ID: "daiquiri", Name: "Daiquiri"},
	}
}

func TestMatchEndToEnd(t *testing.T) {
	m := newTestMatcher(nil)
	index := m.BuildIndex(sampleRecipes())

	result := m.Match(index, []models.RankingEntry{
		{Rank: 3, Name: "Old Fashioned"},
		{Rank: 9, Name: "Mystery Drink"},
		{Rank: 12, Name: "Daiquiri"},
	})

	want := []models.PopularityEntry{
		{ID: "old-fashioned", PopularityRank: 1, ExternalRank: 3, Name: "Old Fashioned", Source: "diffords_top100"},
		{ID: "daiquiri", PopularityRank: 2, ExternalRank: 12, Name: "Daiquiri", Source: "diffords_top100"},
	}
	if diff := cmp.Diff(want, result.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}

	if len(result.Unmatched) != 1 || result.Unmatched[0].Rank != 9 || result.Unmatched[0].Name != "Mystery Drink" {
		t.Errorf("unmatched: got %+v, want rank 9 Mystery Drink", result.Unmatched)
	}
	if result.OverrideMatches != 0 {
		t.Errorf("OverrideMatches: got %d, want 0", result.OverrideMatches)
	}
}

func TestMatchKeepsExternalName(t *testing.T) {
	m := newTestMatcher(nil)
	index := m.BuildIndex([]models.Recipe{{ID: "whiskey-sour", Name: "Whiskey Sour"}})

	result := m.Match(index, []models.RankingEntry{{Rank: 5, Name: "The Whisky Sour"}})

	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	if got := result.Entries[0]; got.ID != "whiskey-sour" || got.Name != "The Whisky Sour" {
		t.Errorf("entry: got %+v, want id whiskey-sour with external name", got)
	}
}

func TestMatchByRecipeID(t *testing.T) {
	m := newTestMatcher(nil)
	index := m.BuildIndex([]models.Recipe{{ID: "espresso_martini", Name: "Coffee Vodka Shake"}})

	result := m.Match(index, []models.RankingEntry{{Rank: 2, Name: "Espresso Martini"}})

	if len(result.Entries) != 1 || result.Entries[0].ID != "espresso_martini" {
		t.Errorf("expected a match through the normalized id, got %+v", result.Entries)
	}
}

func TestMatchManualOverride(t *testing.T) {
	overrides := map[string]string{"Vodka Espresso": "Espresso Martini"}
	m := newTestMatcher(overrides)
	index := m.BuildIndex([]models.Recipe{
		{ID: "espresso-martini", Name: "Espresso Martini"},
		{ID: "negroni", Name: "Negroni"},
	})

	result := m.Match(index, []models.RankingEntry{
		{Rank: 1, Name: "Negroni"},
		{Rank: 4, Name: "Vodka Espresso"},
	})

	want := []models.PopularityEntry{
		{ID: "negroni", PopularityRank: 1, ExternalRank: 1, Name: "Negroni", Source: "diffords_top100"},
		{ID: "espresso-martini", PopularityRank: 2, ExternalRank: 4, Name: "Vodka Espresso", Source: "diffords_top100"},
	}
	if diff := cmp.Diff(want, result.Entries); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if result.OverrideMatches != 1 {
		t.Errorf("OverrideMatches: got %d, want 1", result.OverrideMatches)
	}
}

func TestMatchOverrideKeyIsExactDisplayName(t *testing.T) {
	m := newTestMatcher(map[string]string{"Vodka Espresso": "Espresso Martini"})
	index := m.BuildIndex([]models.Recipe{{ID: "espresso-martini", Name: "Espresso Martini"}})

	result := m.Match(index, []models.RankingEntry{{Rank: 4, Name: "vodka espresso"}})

	if len(result.Entries) != 0 {
		t.Errorf("override keys are case sensitive, got %+v", result.Entries)
	}
}

func TestBuildIndexLastWriteWins(t *testing.T) {
	m := newTestMatcher(nil)
	index := m.BuildIndex([]models.Recipe{
		{ID: "margarita-1", Name: "Margarita"},
		{ID: "margarita-2", Name: "The Margarita"},
	})

	if got := index["margarita"]; got != "margarita-2" {
		t.Errorf("index[margarita]: got %q, want margarita-2", got)
	}
	if got := index["margarita 1"]; got != "margarita-1" {
		t.Errorf("index[margarita 1]: got %q, want margarita-1", got)
	}
}

func TestBuildIndexSkipsEmptyKeys(t *testing.T) {
	m := newTestMatcher(nil)
	index := m.BuildIndex([]models.Recipe{{ID: "the-classic", Name: "The Classic"}})

	if _, ok := index[""]; ok {
		t.Error("empty normalized key should not be indexed")
	}

	result := m.Match(index, []models.RankingEntry{{Rank: 7, Name: "The Original"}})
	if len(result.Entries) != 0 {
		t.Errorf("a name normalizing to empty must not match, got %+v", result.Entries)
	}
}

func TestMatchEmptyInputs(t *testing.T) {
	m := newTestMatcher(nil)
	result := m.Match(m.BuildIndex(nil), nil)

	if len(result.Entries) != 0 || len(result.Unmatched) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestAssignPopularityRanks(t *testing.T) {
	in := []models.PopularityEntry{
		{ID: "a", ExternalRank: 10},
		{ID: "b", ExternalRank: 20},
		{ID: "c", ExternalRank: 55},
	}

	out := AssignPopularityRanks(in)
	again := AssignPopularityRanks(out)

	for i, e := range out {
		if e.PopularityRank != i+1 {
			t.Errorf("entry %d: got rank %d, want %d", i, e.PopularityRank, i+1)
		}
	}
	if in[0].PopularityRank != 0 {
		t.Error("input slice should not be modified")
	}
	if diff := cmp.Diff(out, again); diff != "" {
		t.Errorf("re-ranking changed entries (-first +second):\n%s", diff)
	}
}

func TestSuggest(t *testing.T) {
	index := NameIndex{
		"old fashioned": "old-fashioned",
		"daiquiri":      "daiquiri",
	}

	got, score := Suggest(index, "old fashion")
	if got != "old fashioned" {
		t.Errorf("Suggest: got %q, want %q", got, "old fashioned")
	}
	if score < minSuggestionScore || score > 1 {
		t.Errorf("Suggest score: got %.2f, want in [%.2f, 1]", score, minSuggestionScore)
	}

	if got, _ := Suggest(index, "zzz"); got != "" {
		t.Errorf("Suggest for unrelated name: got %q, want empty", got)
	}
	if got, _ := Suggest(nil, "daiquiri"); got != "" {
		t.Errorf("Suggest on empty index: got %q, want empty", got)
	}
}
