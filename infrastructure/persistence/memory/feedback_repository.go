// Package memory keeps feedback in process memory. It backs local runs
// without AWS and the HTTP tests.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/pkg/errors"
)

// FeedbackRepository implements ports.FeedbackRepository in memory
type FeedbackRepository struct {
	mu       sync.RWMutex
	comments []feedback.Comment
	ratings  []feedback.Rating
	likes    []feedback.Like
}

var _ ports.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates an empty repository
func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{}
}

// SaveComment stores a comment
func (r *FeedbackRepository) SaveComment(_ context.Context, c feedback.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.comments = append(r.comments, c)
	return nil
}

// UpdateComment changes a comment's text and rating
func (r *FeedbackRepository) UpdateComment(_ context.Context, gameID, commentID, text string, rating *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.comments, func(c feedback.Comment) bool {
		return c.GameID == gameID && c.CommentID == commentID
	})
	if i < 0 {
		return errors.NewNotFoundError("comment")
	}

	r.comments[i].Comment = text
	r.comments[i].Rating = rating
	return nil
}

// DeleteComment removes a comment if present
func (r *FeedbackRepository) DeleteComment(_ context.Context, gameID, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.comments = slices.DeleteFunc(r.comments, func(c feedback.Comment) bool {
		return c.GameID == gameID && c.CommentID == commentID
	})
	return nil
}

// ListComments returns a game's comments, newest first
func (r *FeedbackRepository) ListComments(_ context.Context, gameID string) ([]feedback.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := filter(r.comments, func(c feedback.Comment) bool { return c.GameID == gameID })
	slices.Reverse(out)
	return out, nil
}

// SaveRating stores a rating, replacing the user's previous one for the game
func (r *FeedbackRepository) SaveRating(_ context.Context, rt feedback.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ratings = slices.DeleteFunc(r.ratings, func(x feedback.Rating) bool {
		return x.GameID == rt.GameID && x.UserID == rt.UserID
	})
	r.ratings = append(r.ratings, rt)
	return nil
}

// ListRatings returns a game's ratings
func (r *FeedbackRepository) ListRatings(_ context.Context, gameID string) ([]feedback.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return filter(r.ratings, func(x feedback.Rating) bool { return x.GameID == gameID }), nil
}

// GetLike returns a user's like on a game, or nil
func (r *FeedbackRepository) GetLike(_ context.Context, gameID, userID string) (*feedback.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.likeIndex(gameID, userID)
	if i < 0 {
		return nil, nil
	}
	l := r.likes[i]
	return &l, nil
}

// AddLike stores a like unless it exists
func (r *FeedbackRepository) AddLike(_ context.Context, l feedback.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.likeIndex(l.GameID, l.UserID) >= 0 {
		return errors.NewConflictError("game is already liked")
	}
	r.likes = append(r.likes, l)
	return nil
}

// RemoveLike deletes an existing like
func (r *FeedbackRepository) RemoveLike(_ context.Context, gameID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.likeIndex(gameID, userID)
	if i < 0 {
		return errors.NewConflictError("game is not liked")
	}
	r.likes = slices.Delete(r.likes, i, i+1)
	return nil
}

// ListLikes returns a game's likes
func (r *FeedbackRepository) ListLikes(_ context.Context, gameID string) ([]feedback.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return filter(r.likes, func(l feedback.Like) bool { return l.GameID == gameID }), nil
}

// AllComments returns every comment
func (r *FeedbackRepository) AllComments(_ context.Context) ([]feedback.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneOrEmpty(r.comments), nil
}

// AllRatings returns every rating
func (r *FeedbackRepository) AllRatings(_ context.Context) ([]feedback.Rating, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneOrEmpty(r.ratings), nil
}

// AllLikes returns every like
func (r *FeedbackRepository) AllLikes(_ context.Context) ([]feedback.Like, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneOrEmpty(r.likes), nil
}

// UserActivity returns a user's records, newest first
func (r *FeedbackRepository) UserActivity(_ context.Context, userID string) (feedback.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := feedback.Snapshot{
		Comments: filter(r.comments, func(c feedback.Comment) bool { return c.UserID == userID }),
		Ratings:  filter(r.ratings, func(x feedback.Rating) bool { return x.UserID == userID }),
		Likes:    filter(r.likes, func(l feedback.Like) bool { return l.UserID == userID }),
	}
	slices.Reverse(s.Comments)
	slices.Reverse(s.Ratings)
	slices.Reverse(s.Likes)
	return s, nil
}

func (r *FeedbackRepository) likeIndex(gameID, userID string) int {
	return slices.IndexFunc(r.likes, func(l feedback.Like) bool {
		return l.GameID == gameID && l.UserID == userID
	})
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func cloneOrEmpty[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
