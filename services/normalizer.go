package services

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// tokenRegexp captures runs of lowercase ASCII letters and digits.
	tokenRegexp = regexp.MustCompile(`[a-z0-9]+`)

	nameReplacer = strings.NewReplacer(
		"_", " ",
		"&", " and ",
	)
)

// Normalizer canonicalises cocktail names and recipe ids into a
// space-joined token string used as a join key.
type Normalizer struct {
	stopWords map[string]struct{}
}

// NewNormalizer creates a Normalizer dropping the given stop words.
func NewNormalizer(stopWords []string) *Normalizer {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &Normalizer{stopWords: set}
}

// Normalize maps a raw name to its canonical form.
// Examples:
//
//	"The Classic Daiquiri" → "daiquiri"
//	"old_fashioned"        → "old fashioned"
//	"Whisky Sour"          → "whiskey sour"
//	"Gin & Tonic"          → "gin and tonic"
//	"Piña Colada"          → "pina colada"
func (n *Normalizer) Normalize(name string) string {
	name = foldDiacritics(strings.ToLower(name))
	name = nameReplacer.Replace(name)
	name = strings.ReplaceAll(name, "whisky", "whiskey")

	tokens := tokenRegexp.FindAllString(name, -1)
	kept := tokens[:0]
	for _, t := range tokens {
		if _, stop := n.stopWords[t]; stop {
			continue
		}
		kept = append(kept, t)
	}

	return strings.TrimSpace(strings.Join(kept, " "))
}

// foldDiacritics strips combining marks so "piña" and "pina" compare equal.
// Plain [a-z0-9] tokenizing would split "piña" into "pi" and "a"; folding
// first departs from that for accented names only. ASCII names are unaffected.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
