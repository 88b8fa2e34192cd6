package memory

import (
	"context"
	"testing"
	"time"

	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

func TestFeedbackRepository_Comments(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewFeedbackRepository()
	require.NoError(t, repo.SaveComment(ctx, feedback.Comment{CommentID: "c-1", GameID: "azul", UserID: "user-a", Comment: "first", Timestamp: t0}))
	require.NoError(t, repo.SaveComment(ctx, feedback.Comment{CommentID: "c-2", GameID: "azul", UserID: "user-b", Comment: "second", Timestamp: t0.Add(time.Minute)}))
	require.NoError(t, repo.SaveComment(ctx, feedback.Comment{CommentID: "c-3", GameID: "wingspan", UserID: "user-a", Comment: "other", Timestamp: t0}))

	// Act
	comments, err := repo.ListComments(ctx, "azul")

	// Assert
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c-2", comments[0].CommentID)

	require.NoError(t, repo.UpdateComment(ctx, "azul", "c-1", "edited", nil))
	assert.True(t, errors.IsNotFound(repo.UpdateComment(ctx, "azul", "missing", "x", nil)))

	require.NoError(t, repo.DeleteComment(ctx, "azul", "c-2"))
	all, _ := repo.AllComments(ctx)
	assert.Len(t, all, 2)
	assert.Equal(t, "edited", all[0].Comment)
}

func TestFeedbackRepository_SaveRating_Replaces(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()

	require.NoError(t, repo.SaveRating(ctx, feedback.Rating{GameID: "azul", UserID: "user-a", Rating: 6}))
	require.NoError(t, repo.SaveRating(ctx, feedback.Rating{GameID: "azul", UserID: "user-a", Rating: 9}))
	require.NoError(t, repo.SaveRating(ctx, feedback.Rating{GameID: "azul", UserID: "user-b", Rating: 4}))

	ratings, err := repo.ListRatings(ctx, "azul")
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	assert.Equal(t, 9.0, ratings[0].Rating)
}

func TestFeedbackRepository_Likes(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()
	like := feedback.Like{GameID: "azul", UserID: "user-a", Timestamp: t0}

	require.NoError(t, repo.AddLike(ctx, like))
	assert.True(t, errors.IsConflict(repo.AddLike(ctx, like)))

	got, err := repo.GetLike(ctx, "azul", "user-a")
	require.NoError(t, err)
	assert.NotNil(t, got)

	require.NoError(t, repo.RemoveLike(ctx, "azul", "user-a"))
	assert.True(t, errors.IsConflict(repo.RemoveLike(ctx, "azul", "user-a")))

	got, err = repo.GetLike(ctx, "azul", "user-a")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFeedbackRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()
	require.NoError(t, repo.AddLike(ctx, feedback.Like{GameID: "azul", UserID: "user-a"}))

	likes, _ := repo.AllLikes(ctx)
	likes[0].IsCurrentUser = true

	again, _ := repo.AllLikes(ctx)
	assert.False(t, again[0].IsCurrentUser)
}

func TestFeedbackRepository_UserActivity(t *testing.T) {
	ctx := context.Background()
	repo := NewFeedbackRepository()
	require.NoError(t, repo.SaveComment(ctx, feedback.Comment{CommentID: "c-1", GameID: "azul", UserID: "user-a"}))
	require.NoError(t, repo.SaveRating(ctx, feedback.Rating{GameID: "azul", UserID: "user-b", Rating: 5}))
	require.NoError(t, repo.AddLike(ctx, feedback.Like{GameID: "wingspan", UserID: "user-a"}))

	s, err := repo.UserActivity(ctx, "user-a")

	require.NoError(t, err)
	assert.Len(t, s.Comments, 1)
	assert.Empty(t, s.Ratings)
	assert.NotNil(t, s.Ratings)
	assert.Len(t, s.Likes, 1)
}
