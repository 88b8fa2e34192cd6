// Package feedback models the community data attached to games: comments,
// ratings and likes.
package feedback

import (
	"fmt"
	"strings"
	"time"
)

// Rating bounds, inclusive.
const (
	MinRating = 1.0
	MaxRating = 10.0
)

// Kind names the record type stored for each entity.
type Kind string

const (
	KindComment Kind = "comment"
	KindRating  Kind = "rating"
	KindLike    Kind = "like"
)

// Comment is free text left on a game, optionally with a rating.
type Comment struct {
	CommentID string    `json:"commentId"`
	GameID    string    `json:"gameId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	Rating    *float64  `json:"rating,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Rating is a user's score for a game. Only one rating per user and game
// is live at a time.
type Rating struct {
	GameID    string    `json:"gameId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Rating    float64   `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// Like records that a user likes a game.
type Like struct {
	GameID        string    `json:"gameId"`
	UserID        string    `json:"userId"`
	Username      string    `json:"username"`
	Timestamp     time.Time `json:"timestamp"`
	IsCurrentUser bool      `json:"isCurrentUser,omitempty"`
}

// ValidateRating checks a score against the allowed range.
func ValidateRating(v float64) error {
	if v < MinRating || v > MaxRating {
		return fmt.Errorf("rating must be between %g and %g", MinRating, MaxRating)
	}
	return nil
}

// ValidateComment checks the comment text against a length limit.
func ValidateComment(text string, maxLength int) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("comment must not be empty")
	}
	if maxLength > 0 && len([]rune(text)) > maxLength {
		return fmt.Errorf("comment must be at most %d characters", maxLength)
	}
	return nil
}
