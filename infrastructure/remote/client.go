// Package remote is the HTTP client the CLI uses to talk to the game day API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/20q2/golgari-game-day/application/commands"
	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/application/queries"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"go.uber.org/zap"
)

// DefaultTimeout bounds every request when no timeout is configured
const DefaultTimeout = 15 * time.Second

const networkErrorMessage = "Network error: cannot reach the game day API"

// Client implements ports.FeedbackAPI over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ ports.FeedbackAPI = (*Client)(nil)

type commentRequest struct {
	UserID   string   `json:"userId"`
	Username string   `json:"username"`
	Comment  string   `json:"comment"`
	Rating   *float64 `json:"rating,omitempty"`
}

type ratingRequest struct {
	UserID   string  `json:"userId"`
	Username string  `json:"username"`
	Rating   float64 `json:"rating"`
}

type likeRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// AllComments fetches every comment
func (c *Client) AllComments(ctx context.Context) ([]feedback.Comment, error) {
	var res queries.AllCommentsResult
	if err := c.do(ctx, http.MethodGet, "/all-comments", nil, &res); err != nil {
		return nil, err
	}
	return res.Comments, nil
}

// AllRatings fetches every rating
func (c *Client) AllRatings(ctx context.Context) ([]feedback.Rating, error) {
	var res queries.AllRatingsResult
	if err := c.do(ctx, http.MethodGet, "/all-ratings", nil, &res); err != nil {
		return nil, err
	}
	return res.Ratings, nil
}

// AllLikes fetches every like, flagged for currentUserID
func (c *Client) AllLikes(ctx context.Context, currentUserID string) ([]feedback.Like, error) {
	path := "/all-likes"
	if currentUserID != "" {
		path += "?" + url.Values{"userId": {currentUserID}}.Encode()
	}

	var res queries.AllLikesResult
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Likes, nil
}

// AddComment posts a comment and returns the id the server assigned
func (c *Client) AddComment(ctx context.Context, comment feedback.Comment) (string, error) {
	body := commentRequest{
		UserID:   comment.UserID,
		Username: comment.Username,
		Comment:  comment.Comment,
		Rating:   comment.Rating,
	}

	var res commands.AddCommentResult
	if err := c.do(ctx, http.MethodPost, "/comments/"+url.PathEscape(comment.GameID), body, &res); err != nil {
		return "", err
	}
	return res.CommentID, nil
}

// SubmitRating posts a rating
func (c *Client) SubmitRating(ctx context.Context, rating feedback.Rating) error {
	body := ratingRequest{
		UserID:   rating.UserID,
		Username: rating.Username,
		Rating:   rating.Rating,
	}
	return c.do(ctx, http.MethodPost, "/ratings/"+url.PathEscape(rating.GameID), body, nil)
}

// ToggleLike flips the user's like on a game
func (c *Client) ToggleLike(ctx context.Context, gameID, userID, username string) (bool, error) {
	body := likeRequest{UserID: userID, Username: username}

	var res commands.ToggleLikeResult
	if err := c.do(ctx, http.MethodPost, "/likes/"+url.PathEscape(gameID), body, &res); err != nil {
		return false, err
	}
	return res.IsLiked, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return errors.NewNetworkError(networkErrorMessage, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewNetworkError(networkErrorMessage, err)
	}

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.FromStatus(resp.StatusCode, errorMessage(data))
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.NewExternalError("game day API", fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// errorMessage pulls a human readable message out of an error body
func errorMessage(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if msg, ok := payload["message"].(string); ok && msg != "" {
		return msg
	}
	if msg, ok := payload["error"].(string); ok {
		return msg
	}
	return ""
}
