package models

// Recipe is one local recipe record, stored as its own JSON file.
// Only ID and Name take part in matching; the rest is carried as-is.
type Recipe struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Base        string       `json:"base,omitempty"`
	Style       string       `json:"style,omitempty"`
	Flavor      []string     `json:"flavor,omitempty"`
	ABV         float64      `json:"abv,omitempty"`
	Ice         string       `json:"ice,omitempty"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Steps       []string     `json:"steps,omitempty"`
	Glass       string       `json:"glass,omitempty"`
	Garnish     []string     `json:"garnish,omitempty"`
}

type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}
