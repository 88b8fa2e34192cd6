package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppError_Chain(t *testing.T) {
	base := NewNotFoundError("comment")
	wrapped := fmt.Errorf("command handler failed: %w", base)

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
	assert.Equal(t, base, GetAppError(wrapped))
	assert.Equal(t, "NOT_FOUND: comment not found", base.Error())
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status  int
		message string
		want    ErrorType
		wantMsg string
	}{
		{http.StatusBadRequest, "rating must be at most 10", ErrorTypeValidation, "rating must be at most 10"},
		{http.StatusNotFound, "", ErrorTypeNotFound, "Not Found"},
		{http.StatusConflict, "", ErrorTypeConflict, "Conflict"},
		{http.StatusTooManyRequests, "", ErrorTypeRateLimit, "Too Many Requests"},
		{http.StatusInternalServerError, "", ErrorTypeInternal, "Internal Server Error"},
		{http.StatusTeapot, "", ErrorTypeInternal, "I'm a teapot"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromStatus(tt.status, tt.message)
			assert.Equal(t, tt.want, err.Type)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, tt.status, err.HTTPStatus)
		})
	}
}

func TestErrorHandler_Handle_AppError(t *testing.T) {
	// Arrange
	h := NewErrorHandler(zap.NewNop(), false)
	req := httptest.NewRequest(http.MethodPost, "/ratings/azul", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()

	// Act
	h.Handle(rec, req, fmt.Errorf("wrapped: %w", NewValidationError("rating must be at most 10")))

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Error)
	assert.Equal(t, "VALIDATION", body.Type)
	assert.Equal(t, "rating must be at most 10", body.Message)
	assert.Equal(t, "req-1", body.RequestID)
	assert.Nil(t, body.Details)
}

func TestErrorHandler_Handle_PlainErrorIsHidden(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/all-comments", nil), fmt.Errorf("secret detail"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestErrorHandler_Handle_DebugIncludesDetail(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), true)
	rec := httptest.NewRecorder()

	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/all-comments", nil), fmt.Errorf("secret detail"))

	assert.Contains(t, rec.Body.String(), "secret detail")
}

func TestErrorHandler_Middleware_RecoversPanics(t *testing.T) {
	h := NewErrorHandler(zap.NewNop(), false)
	handler := h.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL")
}
