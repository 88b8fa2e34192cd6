package catalog

import "strings"

// Filter narrows the catalog. Zero-valued fields do not constrain.
// Genres match if the game carries any of them; all other fields are
// combined with AND.
type Filter struct {
	Genres           []Genre  `json:"genres,omitempty"`
	SupportedPlayers int      `json:"supportedPlayers,omitempty"`
	Duration         Duration `json:"duration,omitempty"`
	SearchText       string   `json:"searchText,omitempty"`
}

// IsEmpty reports whether the filter constrains nothing.
func (f Filter) IsEmpty() bool {
	return len(f.Genres) == 0 && f.SupportedPlayers <= 0 && f.Duration == "" && strings.TrimSpace(f.SearchText) == ""
}

// Matches reports whether a single game passes the filter.
func (f Filter) Matches(g Game) bool {
	if len(f.Genres) > 0 {
		matched := false
		for _, want := range f.Genres {
			if g.HasGenre(want) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if f.SupportedPlayers > 0 && !g.Supports(f.SupportedPlayers) {
		return false
	}

	if f.Duration != "" && !f.Duration.Matches(g.PlayTime) {
		return false
	}

	if needle := strings.ToLower(strings.TrimSpace(f.SearchText)); needle != "" && !g.mentions(needle) {
		return false
	}

	return true
}

// Apply returns the games that pass the filter, in input order. The input
// slice is never modified.
func Apply(games []Game, f Filter) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if f.Matches(g) {
			out = append(out, g)
		}
	}
	return out
}
