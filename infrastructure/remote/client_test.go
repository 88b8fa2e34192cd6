package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/20q2/golgari-game-day/domain/feedback"
	apperrors "github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", time.Second, zap.NewNop())
}

func TestClient_AllComments(t *testing.T) {
	// Arrange
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/all-comments", r.URL.Path)
		_, _ = w.Write([]byte(`{"comments":[{"commentId":"c1","gameId":"azul","userId":"user-a","username":"A","comment":"nice","timestamp":"2025-01-02T03:04:05Z"}],"totalComments":1,"lastUpdated":"2025-01-02T03:04:05Z"}`))
	})

	// Act
	comments, err := c.AllComments(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].CommentID)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), comments[0].Timestamp.UTC())
}

func TestClient_AllLikesSendsUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/all-likes", r.URL.Path)
		assert.Equal(t, "user-me", r.URL.Query().Get("userId"))
		_, _ = w.Write([]byte(`{"likes":[{"gameId":"azul","userId":"user-me","username":"Me","timestamp":"2025-01-02T03:04:05Z","isCurrentUser":true}],"totalLikes":1}`))
	})

	likes, err := c.AllLikes(context.Background(), "user-me")

	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.True(t, likes[0].IsCurrentUser)
}

func TestClient_AddComment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/comments/wingspan", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "user-a", body["userId"])
		assert.Equal(t, "great", body["comment"])
		assert.Equal(t, 9.0, body["rating"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Comment added successfully","commentId":"abc"}`))
	})
	rating := 9.0

	id, err := c.AddComment(context.Background(), feedback.Comment{
		GameID: "wingspan", UserID: "user-a", Username: "A", Comment: "great", Rating: &rating,
	})

	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

func TestClient_SubmitRatingAndToggleLike(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ratings/azul":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"message":"Rating added successfully"}`))
		case "/likes/azul":
			_, _ = w.Write([]byte(`{"message":"Like added successfully","isLiked":true}`))
		default:
			http.NotFound(w, r)
		}
	})

	err := c.SubmitRating(context.Background(), feedback.Rating{GameID: "azul", UserID: "user-a", Username: "A", Rating: 7})
	require.NoError(t, err)

	liked, err := c.ToggleLike(context.Background(), "azul", "user-a", "A")
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantType    apperrors.ErrorType
		wantMessage string
	}{
		{name: "message field", status: http.StatusBadRequest, body: `{"error":true,"type":"VALIDATION","message":"rating must be at most 10"}`, wantType: apperrors.ErrorTypeValidation, wantMessage: "rating must be at most 10"},
		{name: "error string", status: http.StatusNotFound, body: `{"error":"Game not found"}`, wantType: apperrors.ErrorTypeNotFound, wantMessage: "Game not found"},
		{name: "no body", status: http.StatusInternalServerError, body: ``, wantType: apperrors.ErrorTypeInternal, wantMessage: "Internal Server Error"},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `not json`, wantType: apperrors.ErrorTypeRateLimit, wantMessage: "Too Many Requests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.AllRatings(context.Background())

			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
			assert.Equal(t, tt.wantMessage, appErr.Message)
			assert.Equal(t, tt.status, appErr.HTTPStatus)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := NewClient(url, time.Second, zap.NewNop())

	_, err := c.AllComments(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
}
