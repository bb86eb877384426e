package diffords

import (
	"regexp"
	"strconv"
	"strings"

	"cocktail-popularity/models"
)

const (
	minRank = 1
	maxRank = 100
)

// rankRegexp captures "<rank>. <name> -" as rendered in the top-100 list text.
// Separators may be any Unicode space, since pages often use &nbsp; there.
var rankRegexp = regexp.MustCompile(`(\d+)\.[\s\p{Z}\x{85}]+(.+?)[\s\p{Z}\x{85}]+-`)

// ParseRankings extracts ranking entries from page text, in order of
// appearance. Ranks outside 1..100 are discarded.
func ParseRankings(text string) []models.RankingEntry {
	var entries []models.RankingEntry
	for _, m := range rankRegexp.FindAllStringSubmatch(text, -1) {
		rank, err := strconv.Atoi(m[1])
		if err != nil || rank < minRank || rank > maxRank {
			continue
		}
		entries = append(entries, models.RankingEntry{
			Rank: rank,
			Name: strings.TrimSpace(m[2]),
		})
	}
	return entries
}
