package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(v float64) *float64 { return &v }

func testGames() []Game {
	return NewGames([]Record{
		{ID: "wingspan", Title: "Wingspan", Genre: "Card Drafting/Engine Building", MinPlayers: 1, MaxPlayers: 5, PlayTime: "40-70 min", Description: "Attract birds to your wildlife preserves.", BGGRating: rating(8.1)},
		{ID: "codenames", Title: "Codenames", Genre: "Party/Word Game", MinPlayers: 2, MaxPlayers: 8, PlayTime: "15 min", Description: "Give one-word clues to find your agents."},
		{ID: "pandemic", Title: "Pandemic", Genre: "Cooperative", MinPlayers: 2, MaxPlayers: 4, PlayTime: "45 min", Description: "Work together to cure diseases.", BGGRating: rating(7.6)},
		{ID: "twilight-imperium", Title: "Twilight Imperium", Genre: "Area Control/War", MinPlayers: 3, MaxPlayers: 6, PlayTime: "240-480 min", Description: "Galactic conquest and politics.", BGGRating: rating(8.6)},
		{ID: "azul", Title: "Azul", Genre: "Abstract", MinPlayers: 2, MaxPlayers: 4, PlayTime: "30-45 min", Description: "Tile-laying for the king's palace.", BGGRating: rating(7.8)},
	})
}

func ids(games []Game) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func TestWingspanScenario(t *testing.T) {
	games := testGames()
	wingspan, ok := FindByID(games, "wingspan")
	require.True(t, ok)

	assert.ElementsMatch(t, []Genre{GenreCardDrafting, GenreEngineBuilding}, wingspan.Genres)
	d, ok := wingspan.Duration()
	require.True(t, ok)
	assert.Equal(t, DurationLong, d)

	assert.Contains(t, ids(Apply(games, Filter{SupportedPlayers: 5})), "wingspan")
	assert.NotContains(t, ids(Apply(games, Filter{SupportedPlayers: 6})), "wingspan")
}

func TestApply(t *testing.T) {
	games := testGames()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter keeps everything in order", Filter{}, []string{"wingspan", "codenames", "pandemic", "twilight-imperium", "azul"}},
		{"genres are ORed", Filter{Genres: []Genre{GenreParty, GenreAbstract}}, []string{"codenames", "azul"}},
		{"players lower bound inclusive", Filter{SupportedPlayers: 1}, []string{"wingspan"}},
		{"players upper bound inclusive", Filter{SupportedPlayers: 6}, []string{"codenames", "twilight-imperium"}},
		{"duration", Filter{Duration: DurationMedium}, []string{"pandemic", "azul"}},
		{"duration epic", Filter{Duration: DurationEpic}, []string{"twilight-imperium"}},
		{"search title case-insensitive", Filter{SearchText: "PANDEMIC"}, []string{"pandemic"}},
		{"search description", Filter{SearchText: "birds"}, []string{"wingspan"}},
		{"search ANDs with genre", Filter{Genres: []Genre{GenreParty}, SearchText: "birds"}, []string{}},
		{"all predicates", Filter{Genres: []Genre{GenreCooperative, GenreAbstract}, SupportedPlayers: 4, Duration: DurationMedium, SearchText: "tile"}, []string{"azul"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(games, tt.filter)))
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	games := testGames()
	before := ids(games)

	_ = Apply(games, Filter{Genres: []Genre{GenreParty}})

	assert.Equal(t, before, ids(games))
}

func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.True(t, Filter{SearchText: "   "}.IsEmpty())
	assert.False(t, Filter{SupportedPlayers: 3}.IsEmpty())
}
