// Package stats derives per-game, per-user and global statistics from a
// feedback snapshot. Everything here is pure: the snapshot is never modified.
package stats

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/20q2/golgari-game-day/domain/feedback"
)

// UnknownUsername is reported for users whose records carry no name.
const UnknownUsername = "Unknown User"

// DefaultTopN bounds the ranked lists in GlobalStats.
const DefaultTopN = 10

// GameStats summarises the feedback for one game.
type GameStats struct {
	GameID               string             `json:"gameId"`
	TotalComments        int                `json:"totalComments"`
	AverageRating        *float64           `json:"averageRating"`
	TotalRatings         int                `json:"totalRatings"`
	TotalLikes           int                `json:"totalLikes"`
	IsLikedByCurrentUser bool               `json:"isLikedByCurrentUser"`
	Comments             []feedback.Comment `json:"comments"`
	Ratings              []feedback.Rating  `json:"ratings"`
	Likes                []feedback.Like    `json:"likes"`
}

// UserStats summarises one user's activity.
type UserStats struct {
	UserID             string    `json:"userId"`
	Username           string    `json:"username"`
	TotalComments      int       `json:"totalComments"`
	TotalRatings       int       `json:"totalRatings"`
	AverageRatingGiven *float64  `json:"averageRatingGiven"`
	GamesCommentedOn   []string  `json:"gamesCommentedOn"`
	GamesRated         []string  `json:"gamesRated"`
	LastActivity       time.Time `json:"lastActivity"`
}

// Activity is the number of comments and ratings a user has left.
func (u UserStats) Activity() int {
	return u.TotalComments + u.TotalRatings
}

// GlobalStats summarises all feedback.
type GlobalStats struct {
	TotalUsers         int         `json:"totalUsers"`
	TotalComments      int         `json:"totalComments"`
	TotalRatings       int         `json:"totalRatings"`
	MostActiveUsers    []UserStats `json:"mostActiveUsers"`
	MostCommentedGames []GameStats `json:"mostCommentedGames"`
	HighestRatedGames  []GameStats `json:"highestRatedGames"`
	LastUpdated        time.Time   `json:"lastUpdated"`
}

// Aggregator computes statistics relative to the current user.
type Aggregator struct {
	currentUserID string
	topN          int
	now           func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithTopN sets the size of the ranked lists.
func WithTopN(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.topN = n
		}
	}
}

// WithClock overrides the clock used for LastUpdated.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an Aggregator for currentUserID, which may be empty.
func New(currentUserID string, opts ...Option) *Aggregator {
	a := &Aggregator{
		currentUserID: currentUserID,
		topN:          DefaultTopN,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ForGame computes statistics for a single game. A game without feedback
// yields zero counts and a nil average.
func (a *Aggregator) ForGame(s feedback.Snapshot, gameID string) GameStats {
	gs := GameStats{
		GameID:   gameID,
		Comments: []feedback.Comment{},
		Ratings:  []feedback.Rating{},
		Likes:    []feedback.Like{},
	}

	for _, c := range s.Comments {
		if c.GameID == gameID {
			gs.Comments = append(gs.Comments, c)
		}
	}

	values := make([]float64, 0)
	for _, r := range s.Ratings {
		if r.GameID == gameID {
			gs.Ratings = append(gs.Ratings, r)
			values = append(values, r.Rating)
		}
	}

	for _, l := range s.Likes {
		if l.GameID == gameID {
			gs.Likes = append(gs.Likes, l)
			if a.currentUserID != "" && l.UserID == a.currentUserID {
				gs.IsLikedByCurrentUser = true
			}
		}
	}

	gs.TotalComments = len(gs.Comments)
	gs.TotalRatings = len(gs.Ratings)
	gs.TotalLikes = len(gs.Likes)
	gs.AverageRating = Mean(values)
	return gs
}

// ForAllGames computes statistics for every game that has any feedback,
// in the order games first appear across comments, ratings and likes.
func (a *Aggregator) ForAllGames(s feedback.Snapshot) []GameStats {
	var order []string
	seen := make(map[string]bool)
	note := func(id string) {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	for _, c := range s.Comments {
		note(c.GameID)
	}
	for _, r := range s.Ratings {
		note(r.GameID)
	}
	for _, l := range s.Likes {
		note(l.GameID)
	}

	out := make([]GameStats, 0, len(order))
	for _, id := range order {
		out = append(out, a.ForGame(s, id))
	}
	return out
}

// ForUsers computes statistics for every user who commented or rated. The
// username and last activity come from the user's most recent record.
func (a *Aggregator) ForUsers(s feedback.Snapshot) []UserStats {
	type acc struct {
		stats     UserStats
		seen      bool
		ratings   []float64
		commented map[string]bool
		rated     map[string]bool
	}

	var order []string
	users := make(map[string]*acc)
	get := func(userID string) *acc {
		u, ok := users[userID]
		if !ok {
			u = &acc{
				stats: UserStats{
					UserID:           userID,
					GamesCommentedOn: []string{},
					GamesRated:       []string{},
				},
				commented: make(map[string]bool),
				rated:     make(map[string]bool),
			}
			users[userID] = u
			order = append(order, userID)
		}
		return u
	}
	touch := func(u *acc, name string, at time.Time) {
		if !u.seen || at.After(u.stats.LastActivity) {
			u.seen = true
			u.stats.LastActivity = at
			u.stats.Username = name
		}
	}

	for _, c := range s.Comments {
		u := get(c.UserID)
		u.stats.TotalComments++
		if !u.commented[c.GameID] {
			u.commented[c.GameID] = true
			u.stats.GamesCommentedOn = append(u.stats.GamesCommentedOn, c.GameID)
		}
		touch(u, c.Username, c.Timestamp)
	}

	for _, r := range s.Ratings {
		u := get(r.UserID)
		u.stats.TotalRatings++
		u.ratings = append(u.ratings, r.Rating)
		if !u.rated[r.GameID] {
			u.rated[r.GameID] = true
			u.stats.GamesRated = append(u.stats.GamesRated, r.GameID)
		}
		touch(u, r.Username, r.Timestamp)
	}

	out := make([]UserStats, 0, len(order))
	for _, id := range order {
		u := users[id]
		u.stats.AverageRatingGiven = Mean(u.ratings)
		if u.stats.Username == "" {
			u.stats.Username = UnknownUsername
		}
		out = append(out, u.stats)
	}
	return out
}

// Global computes the club-wide summary with bounded ranked lists.
func (a *Aggregator) Global(s feedback.Snapshot) GlobalStats {
	users := a.ForUsers(s)
	games := a.ForAllGames(s)

	active := slices.Clone(users)
	slices.SortStableFunc(active, func(x, y UserStats) int {
		return cmp.Compare(y.Activity(), x.Activity())
	})

	commented := slices.DeleteFunc(slices.Clone(games), func(g GameStats) bool {
		return g.TotalComments == 0
	})
	slices.SortStableFunc(commented, func(x, y GameStats) int {
		return cmp.Compare(y.TotalComments, x.TotalComments)
	})

	rated := slices.DeleteFunc(slices.Clone(games), func(g GameStats) bool {
		return g.AverageRating == nil
	})
	slices.SortStableFunc(rated, func(x, y GameStats) int {
		return cmp.Compare(*y.AverageRating, *x.AverageRating)
	})

	return GlobalStats{
		TotalUsers:         len(users),
		TotalComments:      len(s.Comments),
		TotalRatings:       len(s.Ratings),
		MostActiveUsers:    head(active, a.topN),
		MostCommentedGames: head(commented, a.topN),
		HighestRatedGames:  head(rated, a.topN),
		LastUpdated:        a.now(),
	}
}

// Mean returns the arithmetic mean rounded to one decimal place, or nil
// for no values.
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := math.Round(sum/float64(len(values))*10) / 10
	return &m
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
