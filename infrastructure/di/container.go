package di

import (
	"context"
	"net/http"

	"github.com/20q2/golgari-game-day/application/commands/bus"
	"github.com/20q2/golgari-game-day/application/ports"
	querybus "github.com/20q2/golgari-game-day/application/queries/bus"
	"github.com/20q2/golgari-game-day/infrastructure/cache"
	"github.com/20q2/golgari-game-day/infrastructure/config"
	"github.com/20q2/golgari-game-day/pkg/observability"
	"github.com/20q2/golgari-game-day/pkg/ratelimit"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	Repository  ports.FeedbackRepository
	Catalog     ports.Catalog
	EventBus    ports.EventBus
	Metrics     ports.Metrics
	CloudWatch  *observability.CloudWatchMetrics
	Cache       *cache.InMemoryCache
	RateLimiter ratelimit.Limiter
	CommandBus  *bus.CommandBus
	QueryBus    *querybus.QueryBus
	Handler     http.Handler
}

// FlushMetrics sends buffered CloudWatch metrics, if any
func (c *Container) FlushMetrics(ctx context.Context) {
	if c.CloudWatch == nil {
		return
	}
	if err := c.CloudWatch.Flush(ctx); err != nil {
		c.Logger.Warn("Failed to flush metrics", zap.Error(err))
	}
}

// Close stops background workers and flushes the logger
func (c *Container) Close() {
	if c.Cache != nil {
		c.Cache.Close()
	}
	if closer, ok := c.RateLimiter.(interface{ Close() }); ok {
		closer.Close()
	}
	_ = c.Logger.Sync()
}
