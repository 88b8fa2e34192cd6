package queries

import (
	"time"

	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/pkg/utils"
)

// ListCommentsQuery lists the comments on a game
type ListCommentsQuery struct {
	GameID string `validate:"required,max=100"`
}

// Validate validates the query
func (q ListCommentsQuery) Validate() error {
	return validate(q)
}

// CommentsResult lists a game's comments, newest first
type CommentsResult struct {
	Comments []feedback.Comment `json:"comments"`
}

// GetRatingsQuery summarises the ratings of a game
type GetRatingsQuery struct {
	GameID string `validate:"required,max=100"`
}

// Validate validates the query
func (q GetRatingsQuery) Validate() error {
	return validate(q)
}

// RatingsResult carries a game's ratings with their mean
type RatingsResult struct {
	AverageRating *float64          `json:"averageRating"`
	TotalRatings  int               `json:"totalRatings"`
	Ratings       []feedback.Rating `json:"ratings"`
}

// GetLikesQuery lists the likes on a game. CurrentUserID may be empty.
type GetLikesQuery struct {
	GameID        string `validate:"required,max=100"`
	CurrentUserID string `validate:"max=100"`
}

// Validate validates the query
func (q GetLikesQuery) Validate() error {
	return validate(q)
}

// LikesResult carries a game's likes
type LikesResult struct {
	TotalLikes           int             `json:"totalLikes"`
	IsLikedByCurrentUser bool            `json:"isLikedByCurrentUser"`
	Likes                []feedback.Like `json:"likes"`
}

// AllCommentsQuery reads every comment in the table
type AllCommentsQuery struct{}

// Validate validates the query
func (q AllCommentsQuery) Validate() error { return nil }

// CacheKey implements bus.Cacheable
func (q AllCommentsQuery) CacheKey() string { return "all" }

// AllCommentsResult is the bulk comment listing
type AllCommentsResult struct {
	Comments      []feedback.Comment `json:"comments"`
	TotalComments int                `json:"totalComments"`
	LastUpdated   time.Time          `json:"lastUpdated"`
}

// AllRatingsQuery reads every rating in the table
type AllRatingsQuery struct{}

// Validate validates the query
func (q AllRatingsQuery) Validate() error { return nil }

// CacheKey implements bus.Cacheable
func (q AllRatingsQuery) CacheKey() string { return "all" }

// AllRatingsResult is the bulk rating listing
type AllRatingsResult struct {
	Ratings      []feedback.Rating `json:"ratings"`
	TotalRatings int               `json:"totalRatings"`
	LastUpdated  time.Time         `json:"lastUpdated"`
}

// AllLikesQuery reads every like; likes of CurrentUserID are flagged
type AllLikesQuery struct {
	CurrentUserID string `validate:"max=100"`
}

// Validate validates the query
func (q AllLikesQuery) Validate() error {
	return validate(q)
}

// CacheKey implements bus.Cacheable
func (q AllLikesQuery) CacheKey() string { return q.CurrentUserID }

// AllLikesResult is the bulk like listing
type AllLikesResult struct {
	Likes       []feedback.Like `json:"likes"`
	TotalLikes  int             `json:"totalLikes"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// UserActivityQuery reads everything one user has written
type UserActivityQuery struct {
	UserID string `validate:"required,max=100"`
}

// Validate validates the query
func (q UserActivityQuery) Validate() error {
	return validate(q)
}

// UserActivityResult is a user's history, newest first
type UserActivityResult struct {
	UserID   string             `json:"userId"`
	Comments []feedback.Comment `json:"comments"`
	Ratings  []feedback.Rating  `json:"ratings"`
	Likes    []feedback.Like    `json:"likes"`
}

func validate(q interface{}) error {
	if err := utils.ValidateStruct(q); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return nil
}
