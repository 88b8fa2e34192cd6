package catalog

import (
	"os"
	"path/filepath"
	"testing"

	domain "github.com/20q2/golgari-game-day/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_Embedded(t *testing.T) {
	// Act
	c, err := Load("", zap.NewNop())

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, c.Games())

	wingspan, ok := c.Find("wingspan")
	require.True(t, ok)
	assert.Equal(t, []domain.Genre{domain.GenreCardDrafting, domain.GenreEngineBuilding}, wingspan.Genres)
	d, ok := wingspan.Duration()
	require.True(t, ok)
	assert.Equal(t, domain.DurationLong, d)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id":"azul","title":"Azul","genre":"Abstract","minPlayers":2,"maxPlayers":4,"playTime":"30-45 min","description":"tiles"}
	]`), 0o600))

	c, err := Load(path, zap.NewNop())

	require.NoError(t, err)
	assert.Len(t, c.Games(), 1)
	assert.Equal(t, []domain.Genre{domain.GenreAbstract}, c.Genres())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	assert.ErrorContains(t, err, "failed to read catalog")
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "malformed", json: `{`, want: "failed to decode catalog"},
		{name: "missing title", json: `[{"id":"x","minPlayers":1,"maxPlayers":2}]`, want: "title is required"},
		{name: "inverted player range", json: `[{"id":"x","title":"X","minPlayers":4,"maxPlayers":2}]`, want: "game 0"},
		{
			name: "duplicate id",
			json: `[{"id":"x","title":"X","minPlayers":1,"maxPlayers":2},{"id":"x","title":"Y","minPlayers":1,"maxPlayers":2}]`,
			want: "duplicate game id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestCatalog_GamesIsACopy(t *testing.T) {
	c, err := Load("", zap.NewNop())
	require.NoError(t, err)

	games := c.Games()
	games[0].Title = "changed"

	assert.NotEqual(t, "changed", c.Games()[0].Title)
}
