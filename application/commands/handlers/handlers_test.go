package handlers

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/20q2/golgari-game-day/application/commands"
	"github.com/20q2/golgari-game-day/domain/config"
	"github.com/20q2/golgari-game-day/domain/events"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ptr(v float64) *float64 { return &v }

func TestAddCommentHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := new(mocks.MockFeedbackRepository)
	bus := new(mocks.MockEventBus)
	metrics := new(mocks.MockMetrics)
	handler := NewAddCommentHandler(repo, bus, metrics, config.DefaultDomainConfig(), zap.NewNop())

	cmd := commands.AddCommentCommand{
		CommentID: "c-1",
		GameID:    "wingspan",
		UserID:    "user-abc123def",
		Username:  "DiceRoller42",
		Comment:   "Gorgeous card art",
		Rating:    ptr(9),
	}

	repo.On("SaveComment", ctx, mock.MatchedBy(func(c feedback.Comment) bool {
		return c.CommentID == "c-1" && c.GameID == "wingspan" && c.Comment == "Gorgeous card art" &&
			c.Rating != nil && *c.Rating == 9 && !c.Timestamp.IsZero()
	})).Return(nil)
	metrics.On("RecordFeedback", feedback.KindComment).Return()
	bus.On("Publish", ctx, mock.MatchedBy(func(e events.DomainEvent) bool {
		return e.GetEventType() == events.TypeCommentAdded && e.GetAggregateID() == "wingspan"
	})).Return(nil)

	// Act
	result, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "c-1", result.CommentID)
	assert.Equal(t, "Comment added successfully", result.Message)
	repo.AssertExpectations(t)
	bus.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestAddCommentHandler_Handle_TooLong(t *testing.T) {
	// Arrange
	limits := config.DefaultDomainConfig()
	limits.MaxCommentLength = 5
	repo := new(mocks.MockFeedbackRepository)
	handler := NewAddCommentHandler(repo, new(mocks.MockEventBus), new(mocks.MockMetrics), limits, zap.NewNop())

	// Act
	_, err := handler.Handle(context.Background(), commands.AddCommentCommand{
		CommentID: "c-1", GameID: "azul", UserID: "user-1", Username: "x", Comment: "far too long",
	})

	// Assert
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	repo.AssertNotCalled(t, "SaveComment", mock.Anything, mock.Anything)
}

func TestAddCommentHandler_Handle_PublishFailureIsNotFatal(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := new(mocks.MockFeedbackRepository)
	bus := new(mocks.MockEventBus)
	metrics := new(mocks.MockMetrics)
	handler := NewAddCommentHandler(repo, bus, metrics, config.DefaultDomainConfig(), zap.NewNop())

	repo.On("SaveComment", ctx, mock.Anything).Return(nil)
	metrics.On("RecordFeedback", feedback.KindComment).Return()
	bus.On("Publish", ctx, mock.Anything).Return(stderrors.New("bus down"))

	// Act
	result, err := handler.Handle(ctx, commands.AddCommentCommand{
		CommentID: "c-2", GameID: "azul", UserID: "user-1", Username: "x", Comment: "ok",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "c-2", result.CommentID)
}

func TestAddCommentHandler_Handle_RepositoryError(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := new(mocks.MockFeedbackRepository)
	bus := new(mocks.MockEventBus)
	handler := NewAddCommentHandler(repo, bus, new(mocks.MockMetrics), config.DefaultDomainConfig(), zap.NewNop())

	repo.On("SaveComment", ctx, mock.Anything).Return(errors.NewDatabaseError("PutItem", stderrors.New("boom")))

	// Act
	result, err := handler.Handle(ctx, commands.AddCommentCommand{
		CommentID: "c-3", GameID: "azul", UserID: "user-1", Username: "x", Comment: "ok",
	})

	// Assert
	assert.Nil(t, result)
	assert.True(t, errors.IsType(err, errors.ErrorTypeDatabase))
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestUpdateCommentHandler_Handle_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := new(mocks.MockFeedbackRepository)
	handler := NewUpdateCommentHandler(repo, new(mocks.MockEventBus), config.DefaultDomainConfig(), zap.NewNop())

	repo.On("UpdateComment", ctx, "azul", "missing", "new text", (*float64)(nil)).Return(errors.NewNotFoundError("comment"))

	// Act
	_, err := handler.Handle(ctx, commands.UpdateCommentCommand{GameID: "azul", CommentID: "missing", Comment: "new text"})

	// Assert
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteCommentHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := new(mocks.MockFeedbackRepository)
	bus := new(mocks.MockEventBus)
	handler := NewDeleteCommentHandler(repo, bus, zap.NewNop())

	repo.On("DeleteComment", ctx, "azul", "c-1").Return(nil)
	bus.On("Publish", ctx, mock.MatchedBy(func(e events.DomainEvent) bool {
		return e.GetEventType() == events.TypeCommentDeleted
	})).Return(nil)

	// Act
	result, err := handler.Handle(ctx, commands.DeleteCommentCommand{GameID: "azul", CommentID: "c-1"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Comment deleted successfully", result.Message)
	repo.AssertExpectations(t)
}

func TestSubmitRatingHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := new(mocks.MockFeedbackRepository)
	bus := new(mocks.MockEventBus)
	metrics := new(mocks.MockMetrics)
	handler := NewSubmitRatingHandler(repo, bus, metrics, config.DefaultDomainConfig(), zap.NewNop())

	repo.On("SaveRating", ctx, mock.MatchedBy(func(r feedback.Rating) bool {
		return r.GameID == "azul" && r.UserID == "user-1" && r.Rating == 7.5
	})).Return(nil)
	metrics.On("RecordFeedback", feedback.KindRating).Return()
	bus.On("Publish", ctx, mock.Anything).Return(nil)

	// Act
	result, err := handler.Handle(ctx, commands.SubmitRatingCommand{GameID: "azul", UserID: "user-1", Username: "x", Rating: ptr(7.5)})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Rating added successfully", result.Message)
	repo.AssertExpectations(t)
}

func TestSubmitRatingHandler_Handle_UsernameTooLong(t *testing.T) {
	// Arrange
	repo := new(mocks.MockFeedbackRepository)
	handler := NewSubmitRatingHandler(repo, new(mocks.MockEventBus), new(mocks.MockMetrics), config.DefaultDomainConfig(), zap.NewNop())

	// Act
	_, err := handler.Handle(context.Background(), commands.SubmitRatingCommand{
		GameID: "azul", UserID: "user-1", Username: strings.Repeat("n", 51), Rating: ptr(5),
	})

	// Assert
	assert.True(t, errors.IsValidation(err))
}

func TestToggleLikeHandler_Handle(t *testing.T) {
	tests := []struct {
		name      string
		existing  *feedback.Like
		setup     func(repo *mocks.MockFeedbackRepository)
		wantLiked bool
	}{
		{
			name:     "adds when absent",
			existing: nil,
			setup: func(repo *mocks.MockFeedbackRepository) {
				repo.On("AddLike", mock.Anything, mock.MatchedBy(func(l feedback.Like) bool {
					return l.GameID == "azul" && l.UserID == "user-1"
				})).Return(nil)
			},
			wantLiked: true,
		},
		{
			name:     "removes when present",
			existing: &feedback.Like{GameID: "azul", UserID: "user-1"},
			setup: func(repo *mocks.MockFeedbackRepository) {
				repo.On("RemoveLike", mock.Anything, "azul", "user-1").Return(nil)
			},
			wantLiked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			repo := new(mocks.MockFeedbackRepository)
			bus := new(mocks.MockEventBus)
			metrics := new(mocks.MockMetrics)
			handler := NewToggleLikeHandler(repo, bus, metrics, zap.NewNop())

			repo.On("GetLike", ctx, "azul", "user-1").Return(tt.existing, nil)
			tt.setup(repo)
			metrics.On("RecordFeedback", feedback.KindLike).Return()
			bus.On("Publish", ctx, mock.MatchedBy(func(e events.DomainEvent) bool {
				toggled, ok := e.(events.LikeToggled)
				return ok && toggled.Liked == tt.wantLiked
			})).Return(nil)

			// Act
			result, err := handler.Handle(ctx, commands.ToggleLikeCommand{GameID: "azul", UserID: "user-1", Username: "x"})

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantLiked, result.IsLiked)
			repo.AssertExpectations(t)
			bus.AssertExpectations(t)
		})
	}
}

func TestToggleLikeHandler_Handle_Conflict(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := new(mocks.MockFeedbackRepository)
	handler := NewToggleLikeHandler(repo, new(mocks.MockEventBus), new(mocks.MockMetrics), zap.NewNop())

	repo.On("GetLike", ctx, "azul", "user-1").Return(nil, nil)
	repo.On("AddLike", ctx, mock.Anything).Return(errors.NewConflictError("like changed concurrently"))

	// Act
	_, err := handler.Handle(ctx, commands.ToggleLikeCommand{GameID: "azul", UserID: "user-1", Username: "x"})

	// Assert
	assert.True(t, errors.IsConflict(err))
}
