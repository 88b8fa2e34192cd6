package catalog

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortBy(t *testing.T) {
	games := testGames()

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortTitleAsc, []string{"azul", "codenames", "pandemic", "twilight-imperium", "wingspan"}},
		{SortTitleDesc, []string{"wingspan", "twilight-imperium", "pandemic", "codenames", "azul"}},
		// codenames has no rating and sorts as 0
		{SortRatingAsc, []string{"codenames", "pandemic", "azul", "wingspan", "twilight-imperium"}},
		{SortRatingDesc, []string{"twilight-imperium", "wingspan", "azul", "pandemic", "codenames"}},
		// pandemic and azul tie at 4 and keep input order
		{SortPlayersAsc, []string{"pandemic", "azul", "wingspan", "twilight-imperium", "codenames"}},
		{SortPlayersDesc, []string{"codenames", "twilight-imperium", "wingspan", "pandemic", "azul"}},
		{SortOrder("bogus"), []string{"wingspan", "codenames", "pandemic", "twilight-imperium", "azul"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortBy(games, tt.order)))
		})
	}
}

func TestSortBy_TitleDescReversesTitleAsc(t *testing.T) {
	games := testGames()

	asc := ids(SortBy(games, SortTitleAsc))
	desc := ids(SortBy(SortBy(games, SortTitleAsc), SortTitleDesc))
	slices.Reverse(desc)

	assert.Equal(t, asc, desc)
}

func TestSortBy_DoesNotMutateInput(t *testing.T) {
	games := testGames()
	before := ids(games)

	_ = SortBy(games, SortRatingDesc)

	assert.Equal(t, before, ids(games))
}

func TestSortBy_Empty(t *testing.T) {
	assert.Empty(t, SortBy(nil, SortTitleAsc))
}

func TestParseSortOrder(t *testing.T) {
	o, ok := ParseSortOrder("Rating-Desc")
	assert.True(t, ok)
	assert.Equal(t, SortRatingDesc, o)

	_, ok = ParseSortOrder("newest")
	assert.False(t, ok)
}
