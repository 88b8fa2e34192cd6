package handlers

import (
	"net/http"

	"github.com/20q2/golgari-game-day/application/commands"
	"github.com/20q2/golgari-game-day/application/commands/bus"
	"github.com/20q2/golgari-game-day/application/queries"
	querybus "github.com/20q2/golgari-game-day/application/queries/bus"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedbackHandler serves comments, ratings and likes
type FeedbackHandler struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *errors.ErrorHandler,
	logger *zap.Logger,
) *FeedbackHandler {
	return &FeedbackHandler{
		commandBus:   commandBus,
		queryBus:     queryBus,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// AddCommentRequest is the body of POST /comments/{gameId}
type AddCommentRequest struct {
	UserID   string   `json:"userId" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Comment  string   `json:"comment" validate:"required"`
	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,gte=1,lte=10"`
}

// UpdateCommentRequest is the body of PUT /comments/{gameId}/{commentId}
type UpdateCommentRequest struct {
	Comment string   `json:"comment" validate:"required"`
	Rating  *float64 `json:"rating,omitempty" validate:"omitempty,gte=1,lte=10"`
}

// SubmitRatingRequest is the body of POST /ratings/{gameId}
type SubmitRatingRequest struct {
	UserID   string   `json:"userId" validate:"required"`
	Username string   `json:"username" validate:"required"`
	Rating   *float64 `json:"rating" validate:"required,gte=1,lte=10"`
}

// ToggleLikeRequest is the body of POST /likes/{gameId}
type ToggleLikeRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Username string `json:"username" validate:"required"`
}

// ListComments handles GET /comments/{gameId}
func (h *FeedbackHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	h.ask(w, r, queries.ListCommentsQuery{GameID: gameID})
}

// AddComment handles POST /comments/{gameId}
func (h *FeedbackHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var req AddCommentRequest
	if err := decodeBody(r, &req); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.send(w, r, http.StatusCreated, commands.AddCommentCommand{
		CommentID: uuid.NewString(),
		GameID:    gameID,
		UserID:    req.UserID,
		Username:  req.Username,
		Comment:   req.Comment,
		Rating:    req.Rating,
	})
}

// UpdateComment handles PUT /comments/{gameId}/{commentId}
func (h *FeedbackHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	commentID, err := pathParam(r, "commentId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var req UpdateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.send(w, r, http.StatusOK, commands.UpdateCommentCommand{
		GameID:    gameID,
		CommentID: commentID,
		Comment:   req.Comment,
		Rating:    req.Rating,
	})
}

// DeleteComment handles DELETE /comments/{gameId}/{commentId}
func (h *FeedbackHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	commentID, err := pathParam(r, "commentId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.send(w, r, http.StatusOK, commands.DeleteCommentCommand{GameID: gameID, CommentID: commentID})
}

// GetRatings handles GET /ratings/{gameId}
func (h *FeedbackHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	h.ask(w, r, queries.GetRatingsQuery{GameID: gameID})
}

// SubmitRating handles POST /ratings/{gameId}
func (h *FeedbackHandler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var req SubmitRatingRequest
	if err := decodeBody(r, &req); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.send(w, r, http.StatusCreated, commands.SubmitRatingCommand{
		GameID:   gameID,
		UserID:   req.UserID,
		Username: req.Username,
		Rating:   req.Rating,
	})
}

// GetLikes handles GET /likes/{gameId}?userId=
func (h *FeedbackHandler) GetLikes(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	h.ask(w, r, queries.GetLikesQuery{GameID: gameID, CurrentUserID: r.URL.Query().Get("userId")})
}

// ToggleLike handles POST /likes/{gameId}
func (h *FeedbackHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	var req ToggleLikeRequest
	if err := decodeBody(r, &req); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.send(w, r, http.StatusOK, commands.ToggleLikeCommand{
		GameID:   gameID,
		UserID:   req.UserID,
		Username: req.Username,
	})
}

// AllComments handles GET /all-comments
func (h *FeedbackHandler) AllComments(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.AllCommentsQuery{})
}

// AllRatings handles GET /all-ratings
func (h *FeedbackHandler) AllRatings(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.AllRatingsQuery{})
}

// AllLikes handles GET /all-likes?userId=
func (h *FeedbackHandler) AllLikes(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.AllLikesQuery{CurrentUserID: r.URL.Query().Get("userId")})
}

// UserActivity handles GET /users/{userId}/activity
func (h *FeedbackHandler) UserActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := pathParam(r, "userId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	h.ask(w, r, queries.UserActivityQuery{UserID: userID})
}

func (h *FeedbackHandler) send(w http.ResponseWriter, r *http.Request, status int, cmd bus.Command) {
	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, status, result)
}

func (h *FeedbackHandler) ask(w http.ResponseWriter, r *http.Request, q querybus.Query) {
	result, err := h.queryBus.Ask(r.Context(), q)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
