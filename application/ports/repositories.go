package ports

import (
	"context"
	"time"

	"github.com/20q2/golgari-game-day/domain/catalog"
	"github.com/20q2/golgari-game-day/domain/events"
	"github.com/20q2/golgari-game-day/domain/feedback"
)

// FeedbackRepository defines the interface for comment, rating and like persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type FeedbackRepository interface {
	// SaveComment persists a new comment
	SaveComment(ctx context.Context, comment feedback.Comment) error

	// UpdateComment changes the text and rating of an existing comment.
	// Returns a NOT_FOUND error when the comment does not exist.
	UpdateComment(ctx context.Context, gameID, commentID, text string, rating *float64) error

	// DeleteComment removes a comment; deleting a missing comment is not an error
	DeleteComment(ctx context.Context, gameID, commentID string) error

	// ListComments returns a game's comments, newest first
	ListComments(ctx context.Context, gameID string) ([]feedback.Comment, error)

	// SaveRating stores a rating, replacing the user's previous rating for the game
	SaveRating(ctx context.Context, rating feedback.Rating) error

	// ListRatings returns a game's ratings
	ListRatings(ctx context.Context, gameID string) ([]feedback.Rating, error)

	// GetLike returns the like of a user on a game, or nil when there is none
	GetLike(ctx context.Context, gameID, userID string) (*feedback.Like, error)

	// AddLike stores a like. Returns a CONFLICT error when it already exists.
	AddLike(ctx context.Context, like feedback.Like) error

	// RemoveLike deletes a like. Returns a CONFLICT error when it does not exist.
	RemoveLike(ctx context.Context, gameID, userID string) error

	// ListLikes returns a game's likes
	ListLikes(ctx context.Context, gameID string) ([]feedback.Like, error)

	// AllComments, AllRatings and AllLikes read every record of one kind
	AllComments(ctx context.Context) ([]feedback.Comment, error)
	AllRatings(ctx context.Context) ([]feedback.Rating, error)
	AllLikes(ctx context.Context) ([]feedback.Like, error)

	// UserActivity returns everything a single user has written, newest first
	UserActivity(ctx context.Context, userID string) (feedback.Snapshot, error)
}

// Catalog provides read access to the game catalog
type Catalog interface {
	// Games returns all games in catalog order
	Games() []catalog.Game

	// Find returns a game by id
	Find(id string) (catalog.Game, bool)
}

// EventBus defines the interface for publishing domain events
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Metrics records operational measurements
type Metrics interface {
	// RecordOperation records a dispatched command or query
	RecordOperation(kind, name string, duration time.Duration, err error)

	// RecordHTTPRequest records a served HTTP request
	RecordHTTPRequest(method, route string, status int, duration time.Duration)

	// RecordFeedback counts a stored comment, rating or like change
	RecordFeedback(kind feedback.Kind)
}

// FeedbackAPI is the client-side view of the game day HTTP API
type FeedbackAPI interface {
	AllComments(ctx context.Context) ([]feedback.Comment, error)
	AllRatings(ctx context.Context) ([]feedback.Rating, error)
	AllLikes(ctx context.Context, currentUserID string) ([]feedback.Like, error)

	// AddComment stores a comment and returns the id the server assigned
	AddComment(ctx context.Context, comment feedback.Comment) (string, error)

	SubmitRating(ctx context.Context, rating feedback.Rating) error

	// ToggleLike flips the user's like and reports whether the game is now liked
	ToggleLike(ctx context.Context, gameID, userID, username string) (bool, error)
}
