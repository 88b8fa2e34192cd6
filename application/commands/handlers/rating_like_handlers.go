package handlers

import (
	"context"
	"fmt"

	"github.com/20q2/golgari-game-day/application/commands"
	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/domain/config"
	"github.com/20q2/golgari-game-day/domain/events"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/pkg/utils"
	"go.uber.org/zap"
)

// SubmitRatingHandler handles rating submissions
type SubmitRatingHandler struct {
	repo     ports.FeedbackRepository
	eventBus ports.EventBus
	metrics  ports.Metrics
	limits   *config.DomainConfig
	logger   *zap.Logger
}

// NewSubmitRatingHandler creates a new submit rating handler
func NewSubmitRatingHandler(
	repo ports.FeedbackRepository,
	eventBus ports.EventBus,
	metrics ports.Metrics,
	limits *config.DomainConfig,
	logger *zap.Logger,
) *SubmitRatingHandler {
	return &SubmitRatingHandler{
		repo:     repo,
		eventBus: eventBus,
		metrics:  metrics,
		limits:   limits,
		logger:   logger,
	}
}

// Handle executes the submit rating command
func (h *SubmitRatingHandler) Handle(ctx context.Context, cmd commands.SubmitRatingCommand) (*commands.MessageResult, error) {
	if err := feedback.ValidateRating(*cmd.Rating); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if len([]rune(cmd.Username)) > h.limits.MaxUsernameLength {
		return nil, errors.NewValidationError(fmt.Sprintf("username must be at most %d characters", h.limits.MaxUsernameLength))
	}

	rating := feedback.Rating{
		GameID:    cmd.GameID,
		UserID:    cmd.UserID,
		Username:  cmd.Username,
		Rating:    *cmd.Rating,
		Timestamp: utils.NowUTC(),
	}

	if err := h.repo.SaveRating(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}
	h.metrics.RecordFeedback(feedback.KindRating)

	publish(ctx, h.eventBus, h.logger, events.NewRatingSubmitted(rating.GameID, rating.UserID, rating.Rating, rating.Timestamp))

	return &commands.MessageResult{Message: "Rating added successfully"}, nil
}

// ToggleLikeHandler likes or unlikes a game
type ToggleLikeHandler struct {
	repo     ports.FeedbackRepository
	eventBus ports.EventBus
	metrics  ports.Metrics
	logger   *zap.Logger
}

// NewToggleLikeHandler creates a new toggle like handler
func NewToggleLikeHandler(
	repo ports.FeedbackRepository,
	eventBus ports.EventBus,
	metrics ports.Metrics,
	logger *zap.Logger,
) *ToggleLikeHandler {
	return &ToggleLikeHandler{
		repo:     repo,
		eventBus: eventBus,
		metrics:  metrics,
		logger:   logger,
	}
}

// Handle executes the toggle like command
func (h *ToggleLikeHandler) Handle(ctx context.Context, cmd commands.ToggleLikeCommand) (*commands.ToggleLikeResult, error) {
	existing, err := h.repo.GetLike(ctx, cmd.GameID, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read like: %w", err)
	}

	now := utils.NowUTC()
	result := &commands.ToggleLikeResult{}

	if existing != nil {
		if err := h.repo.RemoveLike(ctx, cmd.GameID, cmd.UserID); err != nil {
			return nil, fmt.Errorf("failed to remove like: %w", err)
		}
		result.Message = "Like removed successfully"
		result.IsLiked = false
	} else {
		like := feedback.Like{
			GameID:    cmd.GameID,
			UserID:    cmd.UserID,
			Username:  cmd.Username,
			Timestamp: now,
		}
		if err := h.repo.AddLike(ctx, like); err != nil {
			return nil, fmt.Errorf("failed to add like: %w", err)
		}
		result.Message = "Like added successfully"
		result.IsLiked = true
	}
	h.metrics.RecordFeedback(feedback.KindLike)

	publish(ctx, h.eventBus, h.logger, events.NewLikeToggled(cmd.GameID, cmd.UserID, result.IsLiked, now))

	return result, nil
}
