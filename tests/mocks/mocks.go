// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"github.com/20q2/golgari-game-day/domain/events"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/stretchr/testify/mock"
)

// MockFeedbackRepository mocks ports.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) SaveComment(ctx context.Context, comment feedback.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockFeedbackRepository) UpdateComment(ctx context.Context, gameID, commentID, text string, rating *float64) error {
	args := m.Called(ctx, gameID, commentID, text, rating)
	return args.Error(0)
}

func (m *MockFeedbackRepository) DeleteComment(ctx context.Context, gameID, commentID string) error {
	args := m.Called(ctx, gameID, commentID)
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListComments(ctx context.Context, gameID string) ([]feedback.Comment, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Comment), args.Error(1)
}

func (m *MockFeedbackRepository) SaveRating(ctx context.Context, rating feedback.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListRatings(ctx context.Context, gameID string) ([]feedback.Rating, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Rating), args.Error(1)
}

func (m *MockFeedbackRepository) GetLike(ctx context.Context, gameID, userID string) (*feedback.Like, error) {
	args := m.Called(ctx, gameID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feedback.Like), args.Error(1)
}

func (m *MockFeedbackRepository) AddLike(ctx context.Context, like feedback.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockFeedbackRepository) RemoveLike(ctx context.Context, gameID, userID string) error {
	args := m.Called(ctx, gameID, userID)
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListLikes(ctx context.Context, gameID string) ([]feedback.Like, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Like), args.Error(1)
}

func (m *MockFeedbackRepository) AllComments(ctx context.Context) ([]feedback.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Comment), args.Error(1)
}

func (m *MockFeedbackRepository) AllRatings(ctx context.Context) ([]feedback.Rating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Rating), args.Error(1)
}

func (m *MockFeedbackRepository) AllLikes(ctx context.Context) ([]feedback.Like, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Like), args.Error(1)
}

func (m *MockFeedbackRepository) UserActivity(ctx context.Context, userID string) (feedback.Snapshot, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(feedback.Snapshot), args.Error(1)
}

// MockEventBus mocks ports.EventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventBus) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	args := m.Called(ctx, domainEvents)
	return args.Error(0)
}

// MockMetrics mocks ports.Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordOperation(kind, name string, duration time.Duration, err error) {
	m.Called(kind, name, duration, err)
}

func (m *MockMetrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.Called(method, route, status, duration)
}

func (m *MockMetrics) RecordFeedback(kind feedback.Kind) {
	m.Called(kind)
}

// MockFeedbackAPI mocks ports.FeedbackAPI
type MockFeedbackAPI struct {
	mock.Mock
}

func (m *MockFeedbackAPI) AllComments(ctx context.Context) ([]feedback.Comment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Comment), args.Error(1)
}

func (m *MockFeedbackAPI) AllRatings(ctx context.Context) ([]feedback.Rating, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Rating), args.Error(1)
}

func (m *MockFeedbackAPI) AllLikes(ctx context.Context, currentUserID string) ([]feedback.Like, error) {
	args := m.Called(ctx, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feedback.Like), args.Error(1)
}

func (m *MockFeedbackAPI) AddComment(ctx context.Context, comment feedback.Comment) (string, error) {
	args := m.Called(ctx, comment)
	return args.String(0), args.Error(1)
}

func (m *MockFeedbackAPI) SubmitRating(ctx context.Context, rating feedback.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *MockFeedbackAPI) ToggleLike(ctx context.Context, gameID, userID, username string) (bool, error) {
	args := m.Called(ctx, gameID, userID, username)
	return args.Bool(0), args.Error(1)
}
