package queries

import (
	"github.com/20q2/golgari-game-day/application/stats"
	"github.com/20q2/golgari-game-day/domain/catalog"
)

// ListGamesQuery filters and sorts the catalog
type ListGamesQuery struct {
	Filter catalog.Filter
	Sort   catalog.SortOrder
}

// Validate validates the query
func (q ListGamesQuery) Validate() error {
	return validate(q)
}

// GamesResult is a filtered, sorted catalog view
type GamesResult struct {
	Games []catalog.Game `json:"games"`
	Total int            `json:"total"`
}

// GetGameQuery loads a single game
type GetGameQuery struct {
	GameID string `validate:"required,max=100"`
}

// Validate validates the query
func (q GetGameQuery) Validate() error {
	return validate(q)
}

// GameStatsQuery computes the statistics of one game
type GameStatsQuery struct {
	GameID        string `validate:"required,max=100"`
	CurrentUserID string `validate:"max=100"`
}

// Validate validates the query
func (q GameStatsQuery) Validate() error {
	return validate(q)
}

// CacheKey implements bus.Cacheable
func (q GameStatsQuery) CacheKey() string { return q.GameID + "|" + q.CurrentUserID }

// AllGameStatsQuery computes statistics for every game with feedback
type AllGameStatsQuery struct {
	CurrentUserID string `validate:"max=100"`
}

// Validate validates the query
func (q AllGameStatsQuery) Validate() error {
	return validate(q)
}

// CacheKey implements bus.Cacheable
func (q AllGameStatsQuery) CacheKey() string { return q.CurrentUserID }

// AllGameStatsResult lists per-game statistics
type AllGameStatsResult struct {
	Games []stats.GameStats `json:"games"`
	Total int               `json:"total"`
}

// UserStatsQuery computes per-user statistics
type UserStatsQuery struct{}

// Validate validates the query
func (q UserStatsQuery) Validate() error { return nil }

// CacheKey implements bus.Cacheable
func (q UserStatsQuery) CacheKey() string { return "all" }

// UserStatsResult lists per-user statistics
type UserStatsResult struct {
	Users []stats.UserStats `json:"users"`
	Total int               `json:"total"`
}

// GlobalStatsQuery computes the club-wide summary
type GlobalStatsQuery struct{}

// Validate validates the query
func (q GlobalStatsQuery) Validate() error { return nil }

// CacheKey implements bus.Cacheable
func (q GlobalStatsQuery) CacheKey() string { return "all" }

// ListGenresQuery lists the genre tags used by the catalog
type ListGenresQuery struct{}

// Validate validates the query
func (q ListGenresQuery) Validate() error { return nil }

// GenresResult lists genre tags in canonical order
type GenresResult struct {
	Genres []catalog.Genre `json:"genres"`
}
