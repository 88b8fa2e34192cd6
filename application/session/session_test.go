package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/20q2/golgari-game-day/application/stats"
	"github.com/20q2/golgari-game-day/domain/catalog"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/domain/identity"
	apperrors "github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	me      = identity.Identity{UserID: "user-me1234567", Username: "DiceRoller42"}
	fixedAt = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)
)

func ptr(v float64) *float64 { return &v }

func testGames() []catalog.Game {
	return catalog.NewGames([]catalog.Record{
		{ID: "wingspan", Title: "Wingspan", Genre: "Card Drafting/Engine Building", MinPlayers: 1, MaxPlayers: 5, PlayTime: "40-70 min", BGGRating: ptr(8.1)},
		{ID: "codenames", Title: "Codenames", Genre: "Party/Word Game", MinPlayers: 2, MaxPlayers: 8, PlayTime: "15 min"},
		{ID: "azul", Title: "Azul", Genre: "Abstract", MinPlayers: 2, MaxPlayers: 4, PlayTime: "30-45 min", BGGRating: ptr(7.8)},
	})
}

func ids(games []catalog.Game) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func newSession(t *testing.T, api *mocks.MockFeedbackAPI) *Session {
	t.Helper()
	s := New(me, api, testGames(), zap.NewNop(), WithClock(func() time.Time { return fixedAt }))
	t.Cleanup(s.Close)
	return s
}

func TestSession_GamesView(t *testing.T) {
	s := newSession(t, &mocks.MockFeedbackAPI{})

	var pushes [][]string
	unsubscribe := s.SubscribeGames(func(g []catalog.Game) { pushes = append(pushes, ids(g)) })
	defer unsubscribe()

	assert.Equal(t, []string{"azul", "codenames", "wingspan"}, ids(s.Games()))

	s.SetSort(catalog.SortRatingDesc)
	assert.Equal(t, []string{"wingspan", "azul", "codenames"}, ids(s.Games()))

	s.SetFilter(catalog.Filter{SupportedPlayers: 6})
	assert.Equal(t, []string{"codenames"}, ids(s.Games()))

	require.Len(t, pushes, 3)
	assert.Equal(t, []string{"codenames"}, pushes[2])
}

func TestSession_GameIgnoresFilter(t *testing.T) {
	s := newSession(t, &mocks.MockFeedbackAPI{})
	s.SetFilter(catalog.Filter{SupportedPlayers: 8})

	g, ok := s.Game("azul")

	assert.True(t, ok)
	assert.Equal(t, "Azul", g.Title)
	_, ok = s.Game("missing")
	assert.False(t, ok)
}

func TestSession_LoadAll(t *testing.T) {
	// Arrange
	api := &mocks.MockFeedbackAPI{}
	api.On("AllComments", mock.Anything).Return([]feedback.Comment{{CommentID: "c1", GameID: "azul", UserID: "user-a", Comment: "fun"}}, nil)
	api.On("AllRatings", mock.Anything).Return([]feedback.Rating{{GameID: "azul", UserID: "user-a", Rating: 8}}, nil)
	api.On("AllLikes", mock.Anything, me.UserID).Return([]feedback.Like{{GameID: "azul", UserID: me.UserID}}, nil)
	s := newSession(t, api)

	// Act
	err := s.LoadAll(context.Background())

	// Assert
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Len(t, snap.Comments, 1)
	assert.Len(t, snap.Ratings, 1)
	assert.Len(t, snap.Likes, 1)
	assert.True(t, s.GameStats("azul").IsLikedByCurrentUser)
	api.AssertExpectations(t)
}

func TestSession_LoadAll_IsAllOrNothing(t *testing.T) {
	api := &mocks.MockFeedbackAPI{}
	api.On("AllComments", mock.Anything).Return([]feedback.Comment{{CommentID: "c1", GameID: "azul"}}, nil).Maybe()
	api.On("AllRatings", mock.Anything).Return(nil, apperrors.NewNetworkError("Network error", errors.New("refused")))
	api.On("AllLikes", mock.Anything, me.UserID).Return([]feedback.Like{}, nil).Maybe()
	s := newSession(t, api)

	err := s.LoadAll(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
	assert.Empty(t, s.Snapshot().Comments)
}

func TestSession_AddComment(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		wantUsername string
	}{
		{name: "explicit name", username: "Meeple Queen", wantUsername: "Meeple Queen"},
		{name: "blank name falls back", username: "   ", wantUsername: me.Username},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mocks.MockFeedbackAPI{}
			api.On("AddComment", mock.Anything, mock.MatchedBy(func(c feedback.Comment) bool {
				return c.Username == tt.wantUsername && c.UserID == me.UserID && c.Comment == "great game"
			})).Return("new-id", nil)
			s := newSession(t, api)

			c, err := s.AddComment(context.Background(), "wingspan", tt.username, "  great game ", ptr(9))

			require.NoError(t, err)
			assert.Equal(t, "new-id", c.CommentID)
			assert.Equal(t, fixedAt, c.Timestamp)
			require.Len(t, s.Snapshot().Comments, 1)
			assert.Equal(t, c, s.Snapshot().Comments[0])
			api.AssertExpectations(t)
		})
	}
}

func TestSession_AddComment_Invalid(t *testing.T) {
	api := &mocks.MockFeedbackAPI{}
	s := newSession(t, api)

	_, err := s.AddComment(context.Background(), "wingspan", "", "  ", nil)
	assert.True(t, apperrors.IsValidation(err))

	_, err = s.AddComment(context.Background(), "wingspan", "", "ok", ptr(11))
	assert.True(t, apperrors.IsValidation(err))

	api.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything)
}

func TestSession_AddComment_ServerErrorLeavesCache(t *testing.T) {
	api := &mocks.MockFeedbackAPI{}
	api.On("AddComment", mock.Anything, mock.Anything).Return("", apperrors.NewInternalError("boom"))
	s := newSession(t, api)

	_, err := s.AddComment(context.Background(), "wingspan", "", "text", nil)

	assert.Error(t, err)
	assert.Empty(t, s.Snapshot().Comments)
}

func TestSession_AddRating_ReplacesOwnRating(t *testing.T) {
	api := &mocks.MockFeedbackAPI{}
	api.On("SubmitRating", mock.Anything, mock.Anything).Return(nil)
	s := newSession(t, api)

	require.NoError(t, s.AddRating(context.Background(), "azul", 6))
	require.NoError(t, s.AddRating(context.Background(), "azul", 9))

	ratings := s.Snapshot().Ratings
	require.Len(t, ratings, 1)
	assert.Equal(t, 9.0, ratings[0].Rating)
	assert.Equal(t, ptr(9), s.GameStats("azul").AverageRating)
}

func TestSession_AddRating_OutOfRange(t *testing.T) {
	api := &mocks.MockFeedbackAPI{}
	s := newSession(t, api)

	err := s.AddRating(context.Background(), "azul", 0.5)

	assert.True(t, apperrors.IsValidation(err))
	api.AssertNotCalled(t, "SubmitRating", mock.Anything, mock.Anything)
}

func TestSession_ToggleLike(t *testing.T) {
	api := &mocks.MockFeedbackAPI{}
	api.On("ToggleLike", mock.Anything, "azul", me.UserID, me.Username).Return(true, nil).Once()
	api.On("ToggleLike", mock.Anything, "azul", me.UserID, me.Username).Return(false, nil).Once()
	s := newSession(t, api)

	liked, err := s.ToggleLike(context.Background(), "azul")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, s.Snapshot().IsLiked("azul", me.UserID))

	liked, err = s.ToggleLike(context.Background(), "azul")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.False(t, s.Snapshot().IsLiked("azul", me.UserID))
}

func TestSession_SubscribeStats(t *testing.T) {
	api := &mocks.MockFeedbackAPI{}
	api.On("SubmitRating", mock.Anything, mock.Anything).Return(nil)
	s := newSession(t, api)

	var got []stats.GlobalStats
	unsubscribe := s.SubscribeStats(func(g stats.GlobalStats) { got = append(got, g) })

	require.NoError(t, s.AddRating(context.Background(), "wingspan", 8))
	unsubscribe()
	require.NoError(t, s.AddRating(context.Background(), "azul", 7))

	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].TotalRatings)
	assert.Equal(t, 1, got[1].TotalRatings)
	assert.Equal(t, 2, s.GlobalStats().TotalRatings)
	assert.Len(t, s.AllGameStats(), 2)
	require.Len(t, s.UserStats(), 1)
	assert.Equal(t, me.UserID, s.UserStats()[0].UserID)
}
