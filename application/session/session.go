// Package session keeps a client's local copy of the catalog and community
// feedback, and pushes filtered views and statistics to subscribers.
package session

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/application/state"
	"github.com/20q2/golgari-game-day/application/stats"
	"github.com/20q2/golgari-game-day/domain/catalog"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/domain/identity"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// View is the filter and sort order applied to the catalog
type View struct {
	Filter catalog.Filter
	Sort   catalog.SortOrder
}

// Session is one user's client state
type Session struct {
	id     identity.Identity
	api    ports.FeedbackAPI
	logger *zap.Logger
	now    func() time.Time
	topN   int

	games    *state.Store[[]catalog.Game]
	view     *state.Store[View]
	visible  *state.Store[[]catalog.Game]
	feedback *state.Store[feedback.Snapshot]
	stopView func()
}

// Option configures a Session
type Option func(*Session)

// WithClock overrides the time source used for locally cached records
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithTopN bounds the ranked lists in GlobalStats
func WithTopN(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.topN = n
		}
	}
}

// New creates a session for id over the given catalog. Call Close when done.
func New(id identity.Identity, api ports.FeedbackAPI, games []catalog.Game, logger *zap.Logger, opts ...Option) *Session {
	s := &Session{
		id:       id,
		api:      api,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		topN:     stats.DefaultTopN,
		games:    state.NewStore(slices.Clone(games)),
		view:     state.NewStore(View{Sort: catalog.DefaultSortOrder}),
		visible:  state.NewStore[[]catalog.Game](nil),
		feedback: state.NewStore(feedback.Snapshot{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.stopView = state.Derive(s.view, s.games, s.visible, func(v View, games []catalog.Game) []catalog.Game {
		return catalog.SortBy(catalog.Apply(games, v.Filter), v.Sort)
	})
	return s
}

// Close stops recomputing the filtered view
func (s *Session) Close() {
	s.stopView()
}

// Identity is the user the session acts as
func (s *Session) Identity() identity.Identity {
	return s.id
}

// LoadAll fetches comments, ratings and likes concurrently. The cached
// snapshot is replaced only when all three succeed.
func (s *Session) LoadAll(ctx context.Context) error {
	var snap feedback.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		comments, err := s.api.AllComments(gctx)
		if err != nil {
			return fmt.Errorf("failed to load comments: %w", err)
		}
		snap.Comments = comments
		return nil
	})
	g.Go(func() error {
		ratings, err := s.api.AllRatings(gctx)
		if err != nil {
			return fmt.Errorf("failed to load ratings: %w", err)
		}
		snap.Ratings = ratings
		return nil
	})
	g.Go(func() error {
		likes, err := s.api.AllLikes(gctx, s.id.UserID)
		if err != nil {
			return fmt.Errorf("failed to load likes: %w", err)
		}
		snap.Likes = likes
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.feedback.Set(snap)
	s.logger.Debug("Loaded feedback",
		zap.Int("comments", len(snap.Comments)),
		zap.Int("ratings", len(snap.Ratings)),
		zap.Int("likes", len(snap.Likes)),
	)
	return nil
}

// Snapshot returns the cached feedback
func (s *Session) Snapshot() feedback.Snapshot {
	return s.feedback.Get()
}

// SetFilter replaces the catalog filter
func (s *Session) SetFilter(f catalog.Filter) {
	s.view.Update(func(v View) View {
		v.Filter = f
		return v
	})
}

// SetSort replaces the catalog sort order
func (s *Session) SetSort(order catalog.SortOrder) {
	s.view.Update(func(v View) View {
		v.Sort = order
		return v
	})
}

// Games returns the filtered and sorted catalog
func (s *Session) Games() []catalog.Game {
	return s.visible.Get()
}

// SubscribeGames calls fn with the filtered catalog now and after every change
func (s *Session) SubscribeGames(fn func([]catalog.Game)) (unsubscribe func()) {
	return s.visible.Subscribe(fn)
}

// CatalogSize is the number of games before filtering
func (s *Session) CatalogSize() int {
	return len(s.games.Get())
}

// Game looks a game up in the full, unfiltered catalog
func (s *Session) Game(id string) (catalog.Game, bool) {
	return catalog.FindByID(s.games.Get(), id)
}

// AddComment posts a comment. A blank username falls back to the
// identity's name.
func (s *Session) AddComment(ctx context.Context, gameID, username, text string, rating *float64) (feedback.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return feedback.Comment{}, errors.NewValidationError("comment is required")
	}
	if rating != nil {
		if err := feedback.ValidateRating(*rating); err != nil {
			return feedback.Comment{}, errors.NewValidationError(err.Error())
		}
	}

	c := feedback.Comment{
		GameID:   gameID,
		UserID:   s.id.UserID,
		Username: s.id.DisplayName(username),
		Comment:  text,
		Rating:   rating,
	}
	commentID, err := s.api.AddComment(ctx, c)
	if err != nil {
		return feedback.Comment{}, err
	}

	c.CommentID = commentID
	c.Timestamp = s.now()
	s.feedback.Update(func(snap feedback.Snapshot) feedback.Snapshot {
		return snap.WithComment(c)
	})
	return c, nil
}

// AddRating submits the user's rating for a game, replacing any earlier one
func (s *Session) AddRating(ctx context.Context, gameID string, value float64) error {
	if err := feedback.ValidateRating(value); err != nil {
		return errors.NewValidationError(err.Error())
	}

	r := feedback.Rating{
		GameID:   gameID,
		UserID:   s.id.UserID,
		Username: s.id.Username,
		Rating:   value,
	}
	if err := s.api.SubmitRating(ctx, r); err != nil {
		return err
	}

	r.Timestamp = s.now()
	s.feedback.Update(func(snap feedback.Snapshot) feedback.Snapshot {
		return snap.WithRating(r)
	})
	return nil
}

// ToggleLike likes or unlikes a game and reports the new state
func (s *Session) ToggleLike(ctx context.Context, gameID string) (bool, error) {
	liked, err := s.api.ToggleLike(ctx, gameID, s.id.UserID, s.id.Username)
	if err != nil {
		return false, err
	}

	s.feedback.Update(func(snap feedback.Snapshot) feedback.Snapshot {
		if !liked {
			return snap.WithoutLike(gameID, s.id.UserID)
		}
		return snap.WithLike(feedback.Like{
			GameID:        gameID,
			UserID:        s.id.UserID,
			Username:      s.id.Username,
			Timestamp:     s.now(),
			IsCurrentUser: true,
		})
	})
	return liked, nil
}

func (s *Session) aggregator() *stats.Aggregator {
	return stats.New(s.id.UserID, stats.WithTopN(s.topN), stats.WithClock(s.now))
}

// GameStats summarises the cached feedback for one game
func (s *Session) GameStats(gameID string) stats.GameStats {
	return s.aggregator().ForGame(s.feedback.Get(), gameID)
}

// AllGameStats summarises every game with feedback
func (s *Session) AllGameStats() []stats.GameStats {
	return s.aggregator().ForAllGames(s.feedback.Get())
}

// UserStats summarises every user who commented or rated
func (s *Session) UserStats() []stats.UserStats {
	return s.aggregator().ForUsers(s.feedback.Get())
}

// GlobalStats summarises all cached feedback
func (s *Session) GlobalStats() stats.GlobalStats {
	return s.aggregator().Global(s.feedback.Get())
}

// SubscribeStats calls fn with fresh global statistics now and whenever the
// cached feedback changes
func (s *Session) SubscribeStats(fn func(stats.GlobalStats)) (unsubscribe func()) {
	return s.feedback.Subscribe(func(snap feedback.Snapshot) {
		fn(s.aggregator().Global(snap))
	})
}
