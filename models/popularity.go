package models

// SourceDiffordsTop100 tags every popularity entry built from Difford's Guide.
const SourceDiffordsTop100 = "diffords_top100"

// RankingEntry is one scraped position of the external top-100 list.
type RankingEntry struct {
	Rank int
	Name string
}

// PopularityEntry is one row of the output file.
// ExternalRank keeps the site's rank, so gaps appear where entries were unmatched.
type PopularityEntry struct {
	ID             string `json:"id"`
	PopularityRank int    `json:"popularity_rank"`
	ExternalRank   int    `json:"external_rank"`
	Name           string `json:"name"`
	Source         string `json:"source"`
}

// UnmatchedEntry is a scraped entry with no local recipe, plus the closest
// index key as a hint for writing a manual override.
type UnmatchedEntry struct {
	Rank       int
	Name       string
	Suggestion string
	Similarity float64
}

// RunReport holds the summary of a single run.
type RunReport struct {
	RecipesLoaded   int
	IndexKeys       int
	ScrapedEntries  int
	Matched         int
	OverrideMatches int
	Unmatched       []UnmatchedEntry
	OutputPath      string
}
