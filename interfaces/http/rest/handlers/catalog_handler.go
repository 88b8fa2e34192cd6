package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/20q2/golgari-game-day/application/queries"
	querybus "github.com/20q2/golgari-game-day/application/queries/bus"
	"github.com/20q2/golgari-game-day/domain/catalog"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"go.uber.org/zap"
)

// CatalogHandler serves the game catalog and statistics
type CatalogHandler struct {
	queryBus     *querybus.QueryBus
	errorHandler *errors.ErrorHandler
	logger       *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(queryBus *querybus.QueryBus, errorHandler *errors.ErrorHandler, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		queryBus:     queryBus,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// ListGames handles GET /games?genre=&players=&duration=&search=&sort=
func (h *CatalogHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	q, err := ParseListGames(r.URL.Query())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	h.ask(w, r, q)
}

// GetGame handles GET /games/{gameId}
func (h *CatalogHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	h.ask(w, r, queries.GetGameQuery{GameID: gameID})
}

// ListGenres handles GET /genres
func (h *CatalogHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListGenresQuery{})
}

// AllGameStats handles GET /stats/games?userId=
func (h *CatalogHandler) AllGameStats(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.AllGameStatsQuery{CurrentUserID: r.URL.Query().Get("userId")})
}

// GameStats handles GET /stats/games/{gameId}?userId=
func (h *CatalogHandler) GameStats(w http.ResponseWriter, r *http.Request) {
	gameID, err := pathParam(r, "gameId")
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	h.ask(w, r, queries.GameStatsQuery{GameID: gameID, CurrentUserID: r.URL.Query().Get("userId")})
}

// UserStats handles GET /stats/users
func (h *CatalogHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.UserStatsQuery{})
}

// GlobalStats handles GET /stats/global
func (h *CatalogHandler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GlobalStatsQuery{})
}

func (h *CatalogHandler) ask(w http.ResponseWriter, r *http.Request, q querybus.Query) {
	result, err := h.queryBus.Ask(r.Context(), q)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// ParseListGames builds a catalog query from URL parameters. Genres may be
// repeated or comma separated.
func ParseListGames(values url.Values) (queries.ListGamesQuery, error) {
	var q queries.ListGamesQuery

	for _, raw := range values["genre"] {
		for _, name := range strings.Split(raw, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			g, ok := catalog.ParseGenre(name)
			if !ok {
				return q, errors.NewValidationError(fmt.Sprintf("unknown genre %q", name))
			}
			q.Filter.Genres = append(q.Filter.Genres, g)
		}
	}

	if raw := values.Get("players"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return q, errors.NewValidationError("players must be a positive number")
		}
		q.Filter.SupportedPlayers = n
	}

	if raw := values.Get("duration"); raw != "" {
		d, ok := catalog.ParseDuration(raw)
		if !ok {
			return q, errors.NewValidationError(fmt.Sprintf("unknown duration %q", raw))
		}
		q.Filter.Duration = d
	}

	q.Filter.SearchText = values.Get("search")

	if raw := values.Get("sort"); raw != "" {
		order, ok := catalog.ParseSortOrder(raw)
		if !ok {
			return q, errors.NewValidationError(fmt.Sprintf("unknown sort order %q", raw))
		}
		q.Sort = order
	}

	return q, nil
}
