package catalog

import "strings"

// Genre is a canonical genre tag. The value is the display name.
type Genre string

const (
	GenreStrategy        Genre = "Strategy"
	GenreParty           Genre = "Party"
	GenreCooperative     Genre = "Cooperative"
	GenreCardGame        Genre = "Card Game"
	GenreDeckBuilding    Genre = "Deck Building"
	GenreEuro            Genre = "Euro"
	GenreThematic        Genre = "Thematic"
	GenreAbstract        Genre = "Abstract"
	GenreFamily          Genre = "Family"
	GenreWarGame         Genre = "War Game"
	GenreDrinking        Genre = "Drinking"
	GenreEngineBuilding  Genre = "Engine Building"
	GenreDexterity       Genre = "Dexterity"
	GenreSocialDeduction Genre = "Social Deduction"
	GenreBluffing        Genre = "Bluffing"
	GenreMemory          Genre = "Memory"
	GenreAdventure       Genre = "Adventure"
	GenreHorror          Genre = "Horror"
	GenreAreaControl     Genre = "Area Control"
	GenreRPG             Genre = "RPG"
	GenreCardDrafting    Genre = "Card Drafting"
	GenreMiniatures      Genre = "Miniatures"
	GenreLegacy          Genre = "Legacy"
	GenreNegotiation     Genre = "Negotiation"
	GenreRouteBuilding   Genre = "Route Building"
	GenreSetCollection   Genre = "Set Collection"
	GenrePushYourLuck    Genre = "Push Your Luck"
	GenreAsymmetric      Genre = "Asymmetric"
)

// DefaultGenre is assigned to phrases no rule recognises.
const DefaultGenre = GenreStrategy

// AllGenres lists every tag in display order.
var AllGenres = []Genre{
	GenreStrategy, GenreParty, GenreCooperative, GenreCardGame, GenreDeckBuilding,
	GenreEuro, GenreThematic, GenreAbstract, GenreFamily, GenreWarGame,
	GenreDrinking, GenreEngineBuilding, GenreDexterity, GenreSocialDeduction,
	GenreBluffing, GenreMemory, GenreAdventure, GenreHorror, GenreAreaControl,
	GenreRPG, GenreCardDrafting, GenreMiniatures, GenreLegacy, GenreNegotiation,
	GenreRouteBuilding, GenreSetCollection, GenrePushYourLuck, GenreAsymmetric,
}

// String returns the display name
func (g Genre) String() string { return string(g) }

// ParseGenre resolves a display name case-insensitively.
func ParseGenre(s string) (Genre, bool) {
	s = strings.TrimSpace(s)
	for _, g := range AllGenres {
		if strings.EqualFold(string(g), s) {
			return g, true
		}
	}
	return "", false
}

type genreRule struct {
	substrings []string
	genre      Genre
}

// genreRules is evaluated top to bottom; the first rule with a matching
// substring decides the tag for a phrase. Specific mechanics precede the
// broad families they would otherwise fall into ("card drafting" before "card").
var genreRules = []genreRule{
	{[]string{"card drafting"}, GenreCardDrafting},
	{[]string{"set-collection", "set collection"}, GenreSetCollection},
	{[]string{"route-building", "route building"}, GenreRouteBuilding},
	{[]string{"push-your-luck", "push your luck"}, GenrePushYourLuck},
	{[]string{"engine-building", "engine building"}, GenreEngineBuilding},
	{[]string{"social deduction", "hidden role"}, GenreSocialDeduction},
	{[]string{"area control", "territory"}, GenreAreaControl},
	{[]string{"rpg"}, GenreRPG},
	{[]string{"miniatures", "arena combat"}, GenreMiniatures},
	{[]string{"legacy", "campaign"}, GenreLegacy},
	{[]string{"negotiation"}, GenreNegotiation},
	{[]string{"deck-builder", "deck-building", "deck builder", "deck building"}, GenreDeckBuilding},
	{[]string{"dungeon crawl", "adventure"}, GenreAdventure},
	{[]string{"dexterity", "action"}, GenreDexterity},
	{[]string{"drinking"}, GenreDrinking},
	{[]string{"horror"}, GenreHorror},
	{[]string{"memory"}, GenreMemory},
	{[]string{"bluffing"}, GenreBluffing},
	{[]string{"strategy"}, GenreStrategy},
	{[]string{"party", "word game"}, GenreParty},
	{[]string{"cooperative", "co-op", "boss-battler"}, GenreCooperative},
	{[]string{"card", "drafting", "loot-driven", "civilization building", "dice", "tableau", "risk-management", "strategic card game"}, GenreCardGame},
	{[]string{"euro"}, GenreEuro},
	{[]string{"thematic", "fantasy", "steampunk", "electronic"}, GenreThematic},
	{[]string{"abstract", "puzzle", "tile-drafting", "map-building"}, GenreAbstract},
	{[]string{"family", "garden"}, GenreFamily},
	{[]string{"asymmetric"}, GenreAsymmetric},
	{[]string{"war", "one-vs-many"}, GenreWarGame},
}

var hyphenNormalizer = strings.NewReplacer("‐", "-", "‑", "-")

// ClassifyGenres maps a free-text genre description to canonical tags.
// Phrases are separated by "/". The result is never empty and holds no
// duplicates; tags appear in the order their phrases appear.
func ClassifyGenres(raw string) []Genre {
	var tags []Genre
	seen := make(map[Genre]bool)

	for _, part := range strings.Split(raw, "/") {
		phrase := strings.ToLower(strings.TrimSpace(hyphenNormalizer.Replace(part)))
		if phrase == "" {
			continue
		}
		g := classifyPhrase(phrase)
		if !seen[g] {
			seen[g] = true
			tags = append(tags, g)
		}
	}

	if len(tags) == 0 {
		return []Genre{DefaultGenre}
	}
	return tags
}

func classifyPhrase(phrase string) Genre {
	for _, rule := range genreRules {
		for _, sub := range rule.substrings {
			if strings.Contains(phrase, sub) {
				return rule.genre
			}
		}
	}
	return DefaultGenre
}

// GenresIn lists the tags carried by any of games, in AllGenres order.
func GenresIn(games []Game) []Genre {
	used := make(map[Genre]bool)
	for _, g := range games {
		for _, tag := range g.Genres {
			used[tag] = true
		}
	}

	out := make([]Genre, 0, len(used))
	for _, tag := range AllGenres {
		if used[tag] {
			out = append(out, tag)
		}
	}
	return out
}
