// Package catalog loads the static game catalog, either the copy embedded in
// the binary or a JSON file supplied at deploy time.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/20q2/golgari-game-day/application/ports"
	domain "github.com/20q2/golgari-game-day/domain/catalog"
	"github.com/20q2/golgari-game-day/pkg/utils"
	"go.uber.org/zap"
)

//go:embed games.json
var embedded []byte

// Catalog is an immutable, classified game list
type Catalog struct {
	games []domain.Game
}

var _ ports.Catalog = (*Catalog)(nil)

// Load reads the catalog from path, or the embedded catalog when path is empty
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	data := embedded
	source := "embedded"
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		data = b
		source = path
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", source, err)
	}

	logger.Info("Loaded game catalog",
		zap.String("source", source),
		zap.Int("games", len(c.games)),
	)
	return c, nil
}

// Parse decodes and validates catalog JSON
func Parse(data []byte) (*Catalog, error) {
	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if err := utils.ValidateStruct(r); err != nil {
			return nil, fmt.Errorf("game %d (%q): %w", i, r.ID, err)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate game id %q", r.ID)
		}
		seen[r.ID] = true
	}

	return New(domain.NewGames(records)), nil
}

// New wraps already classified games
func New(games []domain.Game) *Catalog {
	return &Catalog{games: slices.Clone(games)}
}

// Games returns the games in catalog order
func (c *Catalog) Games() []domain.Game {
	return slices.Clone(c.games)
}

// Find returns the game with the given id
func (c *Catalog) Find(id string) (domain.Game, bool) {
	return domain.FindByID(c.games, id)
}

// Genres lists the genre tags in use, in canonical order
func (c *Catalog) Genres() []domain.Genre {
	return domain.GenresIn(c.games)
}
