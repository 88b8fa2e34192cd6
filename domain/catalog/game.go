// Package catalog holds the board game catalog model together with the
// genre and duration classifiers and the filter/sort engine used to browse it.
package catalog

import "strings"

// Record is a catalog entry as stored in the catalog resource.
type Record struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Genre       string   `json:"genre"`
	MinPlayers  int      `json:"minPlayers" validate:"gte=1"`
	MaxPlayers  int      `json:"maxPlayers" validate:"gtefield=MinPlayers"`
	PlayTime    string   `json:"playTime"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	BGGRating   *float64 `json:"bggRating,omitempty"`
}

// Game is a classified catalog entry. Games are immutable once loaded.
type Game struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Genres      []Genre  `json:"genres"`
	RawGenre    string   `json:"genre"`
	MinPlayers  int      `json:"minPlayers"`
	MaxPlayers  int      `json:"maxPlayers"`
	PlayTime    string   `json:"playTime"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Rating      *float64 `json:"bggRating,omitempty"`
}

// NewGame classifies a record into a Game.
func NewGame(r Record) Game {
	return Game{
		ID:          r.ID,
		Title:       r.Title,
		Genres:      ClassifyGenres(r.Genre),
		RawGenre:    r.Genre,
		MinPlayers:  r.MinPlayers,
		MaxPlayers:  r.MaxPlayers,
		PlayTime:    r.PlayTime,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Rating:      r.BGGRating,
	}
}

// NewGames classifies every record, keeping the input order.
func NewGames(records []Record) []Game {
	games := make([]Game, 0, len(records))
	for _, r := range records {
		games = append(games, NewGame(r))
	}
	return games
}

// HasGenre reports whether the game carries tag g.
func (g Game) HasGenre(tag Genre) bool {
	for _, own := range g.Genres {
		if own == tag {
			return true
		}
	}
	return false
}

// Supports reports whether the game can be played by n players.
func (g Game) Supports(n int) bool {
	return g.MinPlayers <= n && n <= g.MaxPlayers
}

// Duration returns the play-time bucket of the game.
func (g Game) Duration() (Duration, bool) {
	return ClassifyDuration(g.PlayTime)
}

// RatingOrZero returns the external rating, treating a missing one as 0.
func (g Game) RatingOrZero() float64 {
	if g.Rating == nil {
		return 0
	}
	return *g.Rating
}

func (g Game) mentions(needle string) bool {
	return strings.Contains(strings.ToLower(g.Title), needle) ||
		strings.Contains(strings.ToLower(g.Description), needle)
}

// FindByID returns the game with the given id.
func FindByID(games []Game, id string) (Game, bool) {
	for _, g := range games {
		if g.ID == id {
			return g, true
		}
	}
	return Game{}, false
}
