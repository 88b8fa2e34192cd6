package events

import "time"

// Source identifies this service on the event bus
const Source = "golgari.gameday"

// Event types
const (
	TypeCommentAdded    = "comment.added"
	TypeCommentUpdated  = "comment.updated"
	TypeCommentDeleted  = "comment.deleted"
	TypeRatingSubmitted = "rating.submitted"
	TypeLikeToggled     = "like.toggled"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields. The aggregate is the game the
// feedback belongs to.
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

func newBase(gameID, eventType string, at time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: gameID,
		EventType:   eventType,
		Timestamp:   at,
		Version:     1,
	}
}

// CommentAdded is raised when a comment is stored
type CommentAdded struct {
	BaseEvent
	CommentID string   `json:"comment_id"`
	UserID    string   `json:"user_id"`
	Rating    *float64 `json:"rating,omitempty"`
}

// NewCommentAdded creates a CommentAdded event
func NewCommentAdded(gameID, commentID, userID string, rating *float64, at time.Time) CommentAdded {
	return CommentAdded{
		BaseEvent: newBase(gameID, TypeCommentAdded, at),
		CommentID: commentID,
		UserID:    userID,
		Rating:    rating,
	}
}

// CommentUpdated is raised when a comment's text or rating changes
type CommentUpdated struct {
	BaseEvent
	CommentID string `json:"comment_id"`
}

// NewCommentUpdated creates a CommentUpdated event
func NewCommentUpdated(gameID, commentID string, at time.Time) CommentUpdated {
	return CommentUpdated{
		BaseEvent: newBase(gameID, TypeCommentUpdated, at),
		CommentID: commentID,
	}
}

// CommentDeleted is raised when a comment is removed
type CommentDeleted struct {
	BaseEvent
	CommentID string `json:"comment_id"`
}

// NewCommentDeleted creates a CommentDeleted event
func NewCommentDeleted(gameID, commentID string, at time.Time) CommentDeleted {
	return CommentDeleted{
		BaseEvent: newBase(gameID, TypeCommentDeleted, at),
		CommentID: commentID,
	}
}

// RatingSubmitted is raised when a user rates a game
type RatingSubmitted struct {
	BaseEvent
	UserID string  `json:"user_id"`
	Rating float64 `json:"rating"`
}

// NewRatingSubmitted creates a RatingSubmitted event
func NewRatingSubmitted(gameID, userID string, rating float64, at time.Time) RatingSubmitted {
	return RatingSubmitted{
		BaseEvent: newBase(gameID, TypeRatingSubmitted, at),
		UserID:    userID,
		Rating:    rating,
	}
}

// LikeToggled is raised when a user likes or unlikes a game
type LikeToggled struct {
	BaseEvent
	UserID string `json:"user_id"`
	Liked  bool   `json:"liked"`
}

// NewLikeToggled creates a LikeToggled event
func NewLikeToggled(gameID, userID string, liked bool, at time.Time) LikeToggled {
	return LikeToggled{
		BaseEvent: newBase(gameID, TypeLikeToggled, at),
		UserID:    userID,
		Liked:     liked,
	}
}
