package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/20q2/golgari-game-day/application/session"
	"github.com/20q2/golgari-game-day/domain/catalog"
	domainidentity "github.com/20q2/golgari-game-day/domain/identity"
	"github.com/20q2/golgari-game-day/pkg/errors"

	"go.uber.org/zap"
)

const usage = `usage: gameday <command> [flags] [args]

commands:
  games   [-genre g1,g2] [-players n] [-duration d] [-search text] [-sort order]
  game    <game-id>
  comment [-rating n] [-name display-name] <game-id> <text...>
  rate    <game-id> <1-10>
  like    <game-id>
  stats   [-users]
  whoami  [-name new-name]
`

// identityStore persists the local identity
type identityStore interface {
	Save(id domainidentity.Identity) error
}

type cli struct {
	out     io.Writer
	store   identityStore
	session *session.Session
	logger  *zap.Logger
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.out, usage)
		return errors.NewValidationError("a command is required")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "games":
		return c.games(rest)
	case "game":
		return c.game(ctx, rest)
	case "comment":
		return c.comment(ctx, rest)
	case "rate":
		return c.rate(ctx, rest)
	case "like":
		return c.like(ctx, rest)
	case "stats":
		return c.stats(ctx, rest)
	case "whoami":
		return c.whoami(rest)
	case "help", "-h", "--help":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		fmt.Fprint(c.out, usage)
		return errors.NewValidationError(fmt.Sprintf("unknown command %q", cmd))
	}
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.out)
	return fs
}

func (c *cli) games(args []string) error {
	fs := c.flags("games")
	genres := fs.String("genre", "", "comma separated genres")
	players := fs.Int("players", 0, "player count the game must support")
	duration := fs.String("duration", "", "short, medium, long or epic")
	search := fs.String("search", "", "text to look for in title or description")
	sortOrder := fs.String("sort", string(catalog.DefaultSortOrder), "sort order")
	if err := fs.Parse(args); err != nil {
		return errors.NewValidationError(err.Error())
	}

	var filter catalog.Filter
	for _, name := range strings.Split(*genres, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		g, ok := catalog.ParseGenre(name)
		if !ok {
			return errors.NewValidationError(fmt.Sprintf("unknown genre %q", name))
		}
		filter.Genres = append(filter.Genres, g)
	}
	if *players < 0 {
		return errors.NewValidationError("players must not be negative")
	}
	filter.SupportedPlayers = *players
	if *duration != "" {
		d, ok := catalog.ParseDuration(*duration)
		if !ok {
			return errors.NewValidationError(fmt.Sprintf("unknown duration %q", *duration))
		}
		filter.Duration = d
	}
	filter.SearchText = *search

	order, ok := catalog.ParseSortOrder(*sortOrder)
	if !ok {
		return errors.NewValidationError(fmt.Sprintf("unknown sort order %q", *sortOrder))
	}

	c.session.SetFilter(filter)
	c.session.SetSort(order)
	games := c.session.Games()

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPLAYERS\tTIME\tBGG\tGENRES")
	for _, g := range games {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			g.ID, g.Title, playerRange(g), g.PlayTime, formatRating(g.Rating), joinGenres(g.Genres))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d of %d games\n", len(games), c.session.CatalogSize())
	return nil
}

func (c *cli) game(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: gameday game <game-id>")
	}
	g, ok := c.session.Game(args[0])
	if !ok {
		return errors.NewNotFoundError("game")
	}
	c.loadFeedback(ctx)

	st := c.session.GameStats(g.ID)
	fmt.Fprintf(c.out, "%s (%s)\n", g.Title, g.ID)
	fmt.Fprintf(c.out, "  Genres:   %s\n", joinGenres(g.Genres))
	fmt.Fprintf(c.out, "  Players:  %s\n", playerRange(g))
	if d, ok := catalog.ClassifyDuration(g.PlayTime); ok {
		fmt.Fprintf(c.out, "  Time:     %s (%s)\n", g.PlayTime, d.Label())
	} else {
		fmt.Fprintf(c.out, "  Time:     %s\n", g.PlayTime)
	}
	fmt.Fprintf(c.out, "  BGG:      %s\n", formatRating(g.Rating))
	fmt.Fprintf(c.out, "  Club:     %s from %d ratings, %d likes", formatRating(st.AverageRating), st.TotalRatings, st.TotalLikes)
	if st.IsLikedByCurrentUser {
		fmt.Fprint(c.out, " (you like this)")
	}
	fmt.Fprintln(c.out)
	if g.Description != "" {
		fmt.Fprintf(c.out, "\n%s\n", g.Description)
	}

	if len(st.Comments) == 0 {
		fmt.Fprintln(c.out, "\nNo comments yet.")
		return nil
	}
	fmt.Fprintf(c.out, "\nComments (%d):\n", st.TotalComments)
	for _, cm := range st.Comments {
		fmt.Fprintf(c.out, "  [%s] %s", cm.Timestamp.Local().Format("2006-01-02 15:04"), cm.Username)
		if cm.Rating != nil {
			fmt.Fprintf(c.out, " (%s/10)", formatRating(cm.Rating))
		}
		fmt.Fprintf(c.out, ": %s\n", cm.Comment)
	}
	return nil
}

func (c *cli) comment(ctx context.Context, args []string) error {
	fs := c.flags("comment")
	rating := fs.Float64("rating", 0, "optional rating from 1 to 10")
	name := fs.String("name", "", "display name for this comment")
	if err := fs.Parse(args); err != nil {
		return errors.NewValidationError(err.Error())
	}
	if fs.NArg() < 2 {
		return errors.NewValidationError("usage: gameday comment [-rating n] [-name display-name] <game-id> <text...>")
	}

	gameID := fs.Arg(0)
	if _, ok := c.session.Game(gameID); !ok {
		return errors.NewNotFoundError("game")
	}

	var r *float64
	if *rating != 0 {
		r = rating
	}
	cm, err := c.session.AddComment(ctx, gameID, *name, strings.Join(fs.Args()[1:], " "), r)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Comment %s added as %s\n", cm.CommentID, cm.Username)
	return nil
}

func (c *cli) rate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewValidationError("usage: gameday rate <game-id> <1-10>")
	}
	if _, ok := c.session.Game(args[0]); !ok {
		return errors.NewNotFoundError("game")
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errors.NewValidationError("rating must be a number between 1 and 10")
	}

	if err := c.session.AddRating(ctx, args[0], value); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Rated %s %s/10\n", args[0], formatRating(&value))
	return nil
}

func (c *cli) like(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: gameday like <game-id>")
	}
	if _, ok := c.session.Game(args[0]); !ok {
		return errors.NewNotFoundError("game")
	}

	liked, err := c.session.ToggleLike(ctx, args[0])
	if err != nil {
		return err
	}
	if liked {
		fmt.Fprintf(c.out, "Liked %s\n", args[0])
	} else {
		fmt.Fprintf(c.out, "Unliked %s\n", args[0])
	}
	return nil
}

func (c *cli) stats(ctx context.Context, args []string) error {
	fs := c.flags("stats")
	users := fs.Bool("users", false, "list every user's activity")
	if err := fs.Parse(args); err != nil {
		return errors.NewValidationError(err.Error())
	}
	c.loadFeedback(ctx)

	if *users {
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "USER\tCOMMENTS\tRATINGS\tAVG GIVEN\tLAST ACTIVE")
		for _, u := range c.session.UserStats() {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n",
				u.Username, u.TotalComments, u.TotalRatings, formatRating(u.AverageRatingGiven),
				u.LastActivity.Local().Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	}

	g := c.session.GlobalStats()
	fmt.Fprintf(c.out, "%d users, %d comments, %d ratings\n", g.TotalUsers, g.TotalComments, g.TotalRatings)

	fmt.Fprintln(c.out, "\nMost active:")
	for i, u := range g.MostActiveUsers {
		fmt.Fprintf(c.out, "  %2d. %s (%d)\n", i+1, u.Username, u.Activity())
	}
	fmt.Fprintln(c.out, "\nMost discussed:")
	for i, st := range g.MostCommentedGames {
		fmt.Fprintf(c.out, "  %2d. %s (%d comments)\n", i+1, c.title(st.GameID), st.TotalComments)
	}
	fmt.Fprintln(c.out, "\nHighest rated:")
	for i, st := range g.HighestRatedGames {
		fmt.Fprintf(c.out, "  %2d. %s (%s from %d)\n", i+1, c.title(st.GameID), formatRating(st.AverageRating), st.TotalRatings)
	}
	return nil
}

func (c *cli) whoami(args []string) error {
	fs := c.flags("whoami")
	name := fs.String("name", "", "change your display name")
	if err := fs.Parse(args); err != nil {
		return errors.NewValidationError(err.Error())
	}

	id := c.session.Identity()
	if n := strings.TrimSpace(*name); n != "" {
		id.Username = n
		if err := c.store.Save(id); err != nil {
			return err
		}
	}
	fmt.Fprintf(c.out, "%s (%s)\n", id.Username, id.UserID)
	return nil
}

// loadFeedback refreshes the session cache. A failed load leaves whatever
// the cache already holds so local catalog data still renders.
func (c *cli) loadFeedback(ctx context.Context) {
	if err := c.session.LoadAll(ctx); err != nil {
		c.logger.Warn("Failed to load feedback", zap.Error(err))
		fmt.Fprintln(c.out, "Feedback unavailable, showing cached data only.")
	}
}

func (c *cli) title(gameID string) string {
	if g, ok := c.session.Game(gameID); ok {
		return g.Title
	}
	return gameID
}

func playerRange(g catalog.Game) string {
	if g.MinPlayers == g.MaxPlayers {
		return strconv.Itoa(g.MinPlayers)
	}
	return fmt.Sprintf("%d-%d", g.MinPlayers, g.MaxPlayers)
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}

func joinGenres(genres []catalog.Genre) string {
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}
