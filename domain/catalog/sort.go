package catalog

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortOrder selects how the catalog is ordered.
type SortOrder string

const (
	SortTitleAsc    SortOrder = "title-asc"
	SortTitleDesc   SortOrder = "title-desc"
	SortRatingAsc   SortOrder = "rating-asc"
	SortRatingDesc  SortOrder = "rating-desc"
	SortPlayersAsc  SortOrder = "players-asc"
	SortPlayersDesc SortOrder = "players-desc"
)

// DefaultSortOrder is used when no order has been chosen.
const DefaultSortOrder = SortTitleAsc

// AllSortOrders lists every supported order.
var AllSortOrders = []SortOrder{
	SortTitleAsc, SortTitleDesc, SortRatingAsc, SortRatingDesc, SortPlayersAsc, SortPlayersDesc,
}

// ParseSortOrder resolves a wire value such as "rating-desc".
func ParseSortOrder(s string) (SortOrder, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, o := range AllSortOrders {
		if string(o) == s {
			return o, true
		}
	}
	return "", false
}

// SortBy returns a sorted copy of games. Sorting is stable, so games that
// compare equal keep their relative input order. An unknown order returns
// the games in input order.
func SortBy(games []Game, order SortOrder) []Game {
	out := slices.Clone(games)
	if out == nil {
		out = []Game{}
	}

	switch order {
	case SortTitleAsc, SortTitleDesc:
		// a Collator keeps internal buffers, so one per call
		c := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b Game) int {
			if order == SortTitleDesc {
				return c.CompareString(b.Title, a.Title)
			}
			return c.CompareString(a.Title, b.Title)
		})
	case SortRatingAsc:
		slices.SortStableFunc(out, func(a, b Game) int {
			return cmp.Compare(a.RatingOrZero(), b.RatingOrZero())
		})
	case SortRatingDesc:
		slices.SortStableFunc(out, func(a, b Game) int {
			return cmp.Compare(b.RatingOrZero(), a.RatingOrZero())
		})
	case SortPlayersAsc:
		slices.SortStableFunc(out, func(a, b Game) int {
			return cmp.Compare(a.MaxPlayers, b.MaxPlayers)
		})
	case SortPlayersDesc:
		slices.SortStableFunc(out, func(a, b Game) int {
			return cmp.Compare(b.MaxPlayers, a.MaxPlayers)
		})
	}

	return out
}
