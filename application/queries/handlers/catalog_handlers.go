package handlers

import (
	"context"
	"fmt"

	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/application/queries"
	"github.com/20q2/golgari-game-day/application/stats"
	"github.com/20q2/golgari-game-day/domain/catalog"
	"github.com/20q2/golgari-game-day/domain/config"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CatalogQueryHandler serves the game catalog
type CatalogQueryHandler struct {
	catalog ports.Catalog
}

// NewCatalogQueryHandler creates a new catalog query handler
func NewCatalogQueryHandler(c ports.Catalog) *CatalogQueryHandler {
	return &CatalogQueryHandler{catalog: c}
}

// ListGames filters then sorts the catalog
func (h *CatalogQueryHandler) ListGames(_ context.Context, q queries.ListGamesQuery) (*queries.GamesResult, error) {
	order := q.Sort
	if order == "" {
		order = catalog.DefaultSortOrder
	}
	games := catalog.SortBy(catalog.Apply(h.catalog.Games(), q.Filter), order)
	return &queries.GamesResult{Games: games, Total: len(games)}, nil
}

// GetGame loads a game by id
func (h *CatalogQueryHandler) GetGame(_ context.Context, q queries.GetGameQuery) (*catalog.Game, error) {
	game, ok := h.catalog.Find(q.GameID)
	if !ok {
		return nil, errors.NewNotFoundError("game")
	}
	return &game, nil
}

// ListGenres lists the genres present in the catalog
func (h *CatalogQueryHandler) ListGenres(_ context.Context, _ queries.ListGenresQuery) (*queries.GenresResult, error) {
	return &queries.GenresResult{Genres: catalog.GenresIn(h.catalog.Games())}, nil
}

// StatsQueryHandler aggregates statistics over a full read of the feedback
type StatsQueryHandler struct {
	repo    ports.FeedbackRepository
	catalog ports.Catalog
	limits  *config.DomainConfig
	logger  *zap.Logger
}

// NewStatsQueryHandler creates a new stats query handler
func NewStatsQueryHandler(
	repo ports.FeedbackRepository,
	c ports.Catalog,
	limits *config.DomainConfig,
	logger *zap.Logger,
) *StatsQueryHandler {
	return &StatsQueryHandler{
		repo:    repo,
		catalog: c,
		limits:  limits,
		logger:  logger,
	}
}

// GameStats computes one game's statistics
func (h *StatsQueryHandler) GameStats(ctx context.Context, q queries.GameStatsQuery) (*stats.GameStats, error) {
	if _, ok := h.catalog.Find(q.GameID); !ok {
		return nil, errors.NewNotFoundError("game")
	}

	s, err := h.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	gs := h.aggregator(q.CurrentUserID).ForGame(s, q.GameID)
	return &gs, nil
}

// AllGameStats computes statistics for every game with feedback
func (h *StatsQueryHandler) AllGameStats(ctx context.Context, q queries.AllGameStatsQuery) (*queries.AllGameStatsResult, error) {
	s, err := h.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	games := h.aggregator(q.CurrentUserID).ForAllGames(s)
	return &queries.AllGameStatsResult{Games: games, Total: len(games)}, nil
}

// UserStats computes per-user statistics
func (h *StatsQueryHandler) UserStats(ctx context.Context, _ queries.UserStatsQuery) (*queries.UserStatsResult, error) {
	s, err := h.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	users := h.aggregator("").ForUsers(s)
	return &queries.UserStatsResult{Users: users, Total: len(users)}, nil
}

// GlobalStats computes the club-wide summary
func (h *StatsQueryHandler) GlobalStats(ctx context.Context, _ queries.GlobalStatsQuery) (*stats.GlobalStats, error) {
	s, err := h.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	g := h.aggregator("").Global(s)
	return &g, nil
}

func (h *StatsQueryHandler) aggregator(currentUserID string) *stats.Aggregator {
	return stats.New(currentUserID, stats.WithTopN(h.limits.TopListSize))
}

// snapshot reads the three collections concurrently.
func (h *StatsQueryHandler) snapshot(ctx context.Context) (feedback.Snapshot, error) {
	var s feedback.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		comments, err := h.repo.AllComments(gctx)
		if err != nil {
			return fmt.Errorf("failed to read comments: %w", err)
		}
		s.Comments = comments
		return nil
	})
	g.Go(func() error {
		ratings, err := h.repo.AllRatings(gctx)
		if err != nil {
			return fmt.Errorf("failed to read ratings: %w", err)
		}
		s.Ratings = ratings
		return nil
	})
	g.Go(func() error {
		likes, err := h.repo.AllLikes(gctx)
		if err != nil {
			return fmt.Errorf("failed to read likes: %w", err)
		}
		s.Likes = likes
		return nil
	})

	if err := g.Wait(); err != nil {
		return feedback.Snapshot{}, err
	}

	h.logger.Debug("Loaded feedback snapshot",
		zap.Int("comments", len(s.Comments)),
		zap.Int("ratings", len(s.Ratings)),
		zap.Int("likes", len(s.Likes)),
	)
	return s, nil
}
