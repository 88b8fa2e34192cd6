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

// AddCommentHandler handles comment creation
type AddCommentHandler struct {
	repo     ports.FeedbackRepository
	eventBus ports.EventBus
	metrics  ports.Metrics
	limits   *config.DomainConfig
	logger   *zap.Logger
}

// NewAddCommentHandler creates a new add comment handler
func NewAddCommentHandler(
	repo ports.FeedbackRepository,
	eventBus ports.EventBus,
	metrics ports.Metrics,
	limits *config.DomainConfig,
	logger *zap.Logger,
) *AddCommentHandler {
	return &AddCommentHandler{
		repo:     repo,
		eventBus: eventBus,
		metrics:  metrics,
		limits:   limits,
		logger:   logger,
	}
}

// Handle executes the add comment command
func (h *AddCommentHandler) Handle(ctx context.Context, cmd commands.AddCommentCommand) (*commands.AddCommentResult, error) {
	if err := checkText(cmd.Comment, cmd.Username, h.limits); err != nil {
		return nil, err
	}

	comment := feedback.Comment{
		CommentID: cmd.CommentID,
		GameID:    cmd.GameID,
		UserID:    cmd.UserID,
		Username:  cmd.Username,
		Comment:   cmd.Comment,
		Rating:    cmd.Rating,
		Timestamp: utils.NowUTC(),
	}

	if err := h.repo.SaveComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	h.metrics.RecordFeedback(feedback.KindComment)

	publish(ctx, h.eventBus, h.logger, events.NewCommentAdded(comment.GameID, comment.CommentID, comment.UserID, comment.Rating, comment.Timestamp))

	return &commands.AddCommentResult{
		Message:   "Comment added successfully",
		CommentID: comment.CommentID,
	}, nil
}

// UpdateCommentHandler handles comment edits
type UpdateCommentHandler struct {
	repo     ports.FeedbackRepository
	eventBus ports.EventBus
	limits   *config.DomainConfig
	logger   *zap.Logger
}

// NewUpdateCommentHandler creates a new update comment handler
func NewUpdateCommentHandler(
	repo ports.FeedbackRepository,
	eventBus ports.EventBus,
	limits *config.DomainConfig,
	logger *zap.Logger,
) *UpdateCommentHandler {
	return &UpdateCommentHandler{
		repo:     repo,
		eventBus: eventBus,
		limits:   limits,
		logger:   logger,
	}
}

// Handle executes the update comment command
func (h *UpdateCommentHandler) Handle(ctx context.Context, cmd commands.UpdateCommentCommand) (*commands.MessageResult, error) {
	if err := feedback.ValidateComment(cmd.Comment, h.limits.MaxCommentLength); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := h.repo.UpdateComment(ctx, cmd.GameID, cmd.CommentID, cmd.Comment, cmd.Rating); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	publish(ctx, h.eventBus, h.logger, events.NewCommentUpdated(cmd.GameID, cmd.CommentID, utils.NowUTC()))

	return &commands.MessageResult{Message: "Comment updated successfully"}, nil
}

// DeleteCommentHandler handles comment removal
type DeleteCommentHandler struct {
	repo     ports.FeedbackRepository
	eventBus ports.EventBus
	logger   *zap.Logger
}

// NewDeleteCommentHandler creates a new delete comment handler
func NewDeleteCommentHandler(repo ports.FeedbackRepository, eventBus ports.EventBus, logger *zap.Logger) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Handle executes the delete comment command
func (h *DeleteCommentHandler) Handle(ctx context.Context, cmd commands.DeleteCommentCommand) (*commands.MessageResult, error) {
	if err := h.repo.DeleteComment(ctx, cmd.GameID, cmd.CommentID); err != nil {
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	publish(ctx, h.eventBus, h.logger, events.NewCommentDeleted(cmd.GameID, cmd.CommentID, utils.NowUTC()))

	return &commands.MessageResult{Message: "Comment deleted successfully"}, nil
}

func checkText(comment, username string, limits *config.DomainConfig) error {
	if err := feedback.ValidateComment(comment, limits.MaxCommentLength); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if len([]rune(username)) > limits.MaxUsernameLength {
		return errors.NewValidationError(fmt.Sprintf("username must be at most %d characters", limits.MaxUsernameLength))
	}
	return nil
}

// publish sends an event after a successful write. A failure here does not
// undo the write, so it is logged rather than returned.
func publish(ctx context.Context, bus ports.EventBus, logger *zap.Logger, event events.DomainEvent) {
	if err := bus.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.String("gameID", event.GetAggregateID()),
			zap.Error(err),
		)
	}
}
