package handlers

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/application/queries"
	"github.com/20q2/golgari-game-day/application/stats"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/pkg/utils"
	"go.uber.org/zap"
)

// FeedbackQueryHandler answers the per-game and bulk feedback queries
type FeedbackQueryHandler struct {
	repo   ports.FeedbackRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewFeedbackQueryHandler creates a new feedback query handler
func NewFeedbackQueryHandler(repo ports.FeedbackRepository, logger *zap.Logger) *FeedbackQueryHandler {
	return &FeedbackQueryHandler{
		repo:   repo,
		logger: logger,
		now:    utils.NowUTC,
	}
}

// ListComments returns a game's comments, newest first
func (h *FeedbackQueryHandler) ListComments(ctx context.Context, q queries.ListCommentsQuery) (*queries.CommentsResult, error) {
	comments, err := h.repo.ListComments(ctx, q.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return &queries.CommentsResult{Comments: newestFirst(comments, commentTime)}, nil
}

// GetRatings returns a game's ratings and their mean
func (h *FeedbackQueryHandler) GetRatings(ctx context.Context, q queries.GetRatingsQuery) (*queries.RatingsResult, error) {
	ratings, err := h.repo.ListRatings(ctx, q.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	if ratings == nil {
		ratings = []feedback.Rating{}
	}

	values := make([]float64, 0, len(ratings))
	for _, r := range ratings {
		values = append(values, r.Rating)
	}

	return &queries.RatingsResult{
		AverageRating: stats.Mean(values),
		TotalRatings:  len(ratings),
		Ratings:       ratings,
	}, nil
}

// GetLikes returns a game's likes
func (h *FeedbackQueryHandler) GetLikes(ctx context.Context, q queries.GetLikesQuery) (*queries.LikesResult, error) {
	likes, err := h.repo.ListLikes(ctx, q.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	if likes == nil {
		likes = []feedback.Like{}
	}

	liked := q.CurrentUserID != "" && slices.ContainsFunc(likes, func(l feedback.Like) bool {
		return l.UserID == q.CurrentUserID
	})

	return &queries.LikesResult{
		TotalLikes:           len(likes),
		IsLikedByCurrentUser: liked,
		Likes:                likes,
	}, nil
}

// AllComments returns every comment, newest first
func (h *FeedbackQueryHandler) AllComments(ctx context.Context, _ queries.AllCommentsQuery) (*queries.AllCommentsResult, error) {
	comments, err := h.repo.AllComments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	comments = newestFirst(comments, commentTime)

	h.logger.Debug("Read all comments", zap.Int("count", len(comments)))

	return &queries.AllCommentsResult{
		Comments:      comments,
		TotalComments: len(comments),
		LastUpdated:   h.now(),
	}, nil
}

// AllRatings returns every rating, newest first
func (h *FeedbackQueryHandler) AllRatings(ctx context.Context, _ queries.AllRatingsQuery) (*queries.AllRatingsResult, error) {
	ratings, err := h.repo.AllRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}
	ratings = newestFirst(ratings, ratingTime)

	return &queries.AllRatingsResult{
		Ratings:      ratings,
		TotalRatings: len(ratings),
		LastUpdated:  h.now(),
	}, nil
}

// AllLikes returns every like, newest first, flagging the current user's
func (h *FeedbackQueryHandler) AllLikes(ctx context.Context, q queries.AllLikesQuery) (*queries.AllLikesResult, error) {
	likes, err := h.repo.AllLikes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read likes: %w", err)
	}
	likes = newestFirst(likes, likeTime)
	for i := range likes {
		likes[i].IsCurrentUser = q.CurrentUserID != "" && likes[i].UserID == q.CurrentUserID
	}

	return &queries.AllLikesResult{
		Likes:       likes,
		TotalLikes:  len(likes),
		LastUpdated: h.now(),
	}, nil
}

// UserActivity returns a user's history
func (h *FeedbackQueryHandler) UserActivity(ctx context.Context, q queries.UserActivityQuery) (*queries.UserActivityResult, error) {
	s, err := h.repo.UserActivity(ctx, q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read user activity: %w", err)
	}

	return &queries.UserActivityResult{
		UserID:   q.UserID,
		Comments: newestFirst(s.Comments, commentTime),
		Ratings:  newestFirst(s.Ratings, ratingTime),
		Likes:    newestFirst(s.Likes, likeTime),
	}, nil
}

func commentTime(c feedback.Comment) time.Time { return c.Timestamp }
func ratingTime(r feedback.Rating) time.Time   { return r.Timestamp }
func likeTime(l feedback.Like) time.Time       { return l.Timestamp }

// newestFirst returns a sorted copy; ties keep their input order.
func newestFirst[T any](items []T, at func(T) time.Time) []T {
	out := slices.Clone(items)
	if out == nil {
		out = []T{}
	}
	slices.SortStableFunc(out, func(a, b T) int {
		return at(b).Compare(at(a))
	})
	return out
}
