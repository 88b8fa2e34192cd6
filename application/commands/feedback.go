package commands

import (
	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/pkg/utils"
)

// AddCommentCommand stores a new comment on a game
type AddCommentCommand struct {
	CommentID string   `validate:"required"`
	GameID    string   `validate:"required,max=100"`
	UserID    string   `validate:"required,max=100"`
	Username  string   `validate:"required"`
	Comment   string   `validate:"required"`
	Rating    *float64 `validate:"omitempty,gte=1,lte=10"`
}

// Validate validates the command
func (c AddCommentCommand) Validate() error {
	return validate(c)
}

// UpdateCommentCommand changes the text and rating of a comment
type UpdateCommentCommand struct {
	GameID    string   `validate:"required"`
	CommentID string   `validate:"required"`
	Comment   string   `validate:"required"`
	Rating    *float64 `validate:"omitempty,gte=1,lte=10"`
}

// Validate validates the command
func (c UpdateCommentCommand) Validate() error {
	return validate(c)
}

// DeleteCommentCommand removes a comment
type DeleteCommentCommand struct {
	GameID    string `validate:"required"`
	CommentID string `validate:"required"`
}

// Validate validates the command
func (c DeleteCommentCommand) Validate() error {
	return validate(c)
}

// SubmitRatingCommand records a user's rating, replacing any earlier one
type SubmitRatingCommand struct {
	GameID   string   `validate:"required,max=100"`
	UserID   string   `validate:"required,max=100"`
	Username string   `validate:"required"`
	Rating   *float64 `validate:"required,gte=1,lte=10"`
}

// Validate validates the command
func (c SubmitRatingCommand) Validate() error {
	return validate(c)
}

// ToggleLikeCommand likes a game, or unlikes it when already liked
type ToggleLikeCommand struct {
	GameID   string `validate:"required,max=100"`
	UserID   string `validate:"required,max=100"`
	Username string `validate:"required"`
}

// Validate validates the command
func (c ToggleLikeCommand) Validate() error {
	return validate(c)
}

// AddCommentResult is returned after a comment is stored
type AddCommentResult struct {
	Message   string `json:"message"`
	CommentID string `json:"commentId"`
}

// ToggleLikeResult reports the like state after a toggle
type ToggleLikeResult struct {
	Message string `json:"message"`
	IsLiked bool   `json:"isLiked"`
}

// MessageResult is returned by commands with nothing else to report
type MessageResult struct {
	Message string `json:"message"`
}

func validate(cmd interface{}) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return nil
}
