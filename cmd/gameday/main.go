// Command gameday is a terminal client for the game day API. It keeps a
// local pseudo-identity and talks to the backend over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/20q2/golgari-game-day/application/session"
	"github.com/20q2/golgari-game-day/infrastructure/catalog"
	"github.com/20q2/golgari-game-day/infrastructure/config"
	"github.com/20q2/golgari-game-day/infrastructure/di"
	"github.com/20q2/golgari-game-day/infrastructure/identity"
	"github.com/20q2/golgari-game-day/infrastructure/remote"
	"github.com/20q2/golgari-game-day/pkg/errors"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	// Keep the terminal quiet unless asked otherwise
	if os.Getenv("LOG_LEVEL") == "" {
		cfg.LogLevel = "warn"
	}

	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	store, err := identity.NewFileStore(cfg.IdentityPath, logger)
	if err != nil {
		return fail(err)
	}
	id, err := store.LoadOrCreate()
	if err != nil {
		return fail(err)
	}

	gameCatalog, err := catalog.Load(cfg.CatalogPath, logger)
	if err != nil {
		return fail(err)
	}

	client := remote.NewClient(cfg.APIBaseURL, cfg.ClientTimeout, logger)
	s := session.New(id, client, gameCatalog.Games(), logger)
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := &cli{out: os.Stdout, store: store, session: s, logger: logger}
	if err := c.run(ctx, os.Args[1:]); err != nil {
		logger.Debug("Command failed", zap.Error(err))
		return fail(err)
	}
	return 0
}

func fail(err error) int {
	if appErr := errors.GetAppError(err); appErr != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", appErr.Message)
	} else {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return 1
}
