package di

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/20q2/golgari-game-day/application/commands"
	"github.com/20q2/golgari-game-day/application/commands/bus"
	cmdhandlers "github.com/20q2/golgari-game-day/application/commands/handlers"
	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/application/queries"
	querybus "github.com/20q2/golgari-game-day/application/queries/bus"
	queryhandlers "github.com/20q2/golgari-game-day/application/queries/handlers"
	domainconfig "github.com/20q2/golgari-game-day/domain/config"
	"github.com/20q2/golgari-game-day/infrastructure/cache"
	"github.com/20q2/golgari-game-day/infrastructure/catalog"
	"github.com/20q2/golgari-game-day/infrastructure/config"
	"github.com/20q2/golgari-game-day/infrastructure/messaging/eventbridge"
	"github.com/20q2/golgari-game-day/infrastructure/persistence/dynamodb"
	"github.com/20q2/golgari-game-day/infrastructure/persistence/memory"
	"github.com/20q2/golgari-game-day/interfaces/http/rest"
	"github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/pkg/observability"
	"github.com/20q2/golgari-game-day/pkg/ratelimit"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "golgari-game-day"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zcfg.Build()
}

// ProvideDomainConfig selects the business limits for the environment
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	limits := domainconfig.LoadDomainConfig(cfg.Environment)
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	return limits, nil
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config, tracer *observability.Tracer) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	tracer.InstrumentAWS(&awsCfg)
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideFeedbackRepository selects the storage backend
func ProvideFeedbackRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	limits *domainconfig.DomainConfig,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.FeedbackRepository {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage; feedback is lost on restart")
		return memory.NewFeedbackRepository()
	}
	return dynamodb.NewFeedbackRepository(client, dynamodb.Config{
		TableName:     cfg.DynamoDBTable,
		UserIndexName: cfg.UserIndexName,
		PageSize:      limits.MaxItemsPerScan,
	}, tracer, logger)
}

// ProvideCatalog loads the game catalog
func ProvideCatalog(cfg *config.Config, logger *zap.Logger) (ports.Catalog, error) {
	c, err := catalog.Load(cfg.CatalogPath, logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ProvideEventBus creates an event bus; without a bus name events are only logged
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	if cfg.EventBusName == "" {
		return eventbridge.NewNoopEventBus(logger)
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideCollector creates the Prometheus collector for long-running servers
func ProvideCollector(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics || cfg.IsLambda {
		return nil
	}
	return observability.NewCollector("gameday")
}

// ProvideCloudWatchMetrics creates the buffered CloudWatch publisher for Lambda
func ProvideCloudWatchMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.CloudWatchMetrics {
	if !cfg.EnableMetrics || !cfg.IsLambda {
		return nil
	}
	return observability.NewCloudWatchMetrics(fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment), client, logger)
}

// ProvideMetrics picks the active metrics sink
func ProvideMetrics(collector *observability.Collector, cw *observability.CloudWatchMetrics) ports.Metrics {
	switch {
	case cw != nil:
		return cw
	case collector != nil:
		return collector
	default:
		return observability.NoopMetrics{}
	}
}

// ProvideInMemoryCache creates the query result cache
func ProvideInMemoryCache() *cache.InMemoryCache {
	return cache.NewInMemoryCache(time.Minute)
}

// ProvideRateLimiter creates the write limiter; nil disables limiting.
// Lambda instances share a DynamoDB counter, servers keep buckets in memory.
func ProvideRateLimiter(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) ratelimit.Limiter {
	if cfg.RateLimitPerMinute <= 0 {
		return nil
	}
	if cfg.IsLambda && cfg.Storage == config.StorageDynamoDB {
		return ratelimit.NewWindowLimiter(client, cfg.DynamoDBTable, cfg.RateLimitPerMinute, time.Minute, logger)
	}
	return ratelimit.PerMinute(cfg.RateLimitPerMinute)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	repo ports.FeedbackRepository,
	eventBus ports.EventBus,
	metrics ports.Metrics,
	queryCache *cache.InMemoryCache,
	limits *domainconfig.DomainConfig,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
		bus.InvalidationMiddleware(queryCache),
	)

	addComment := cmdhandlers.NewAddCommentHandler(repo, eventBus, metrics, limits, logger)
	updateComment := cmdhandlers.NewUpdateCommentHandler(repo, eventBus, limits, logger)
	deleteComment := cmdhandlers.NewDeleteCommentHandler(repo, eventBus, logger)
	submitRating := cmdhandlers.NewSubmitRatingHandler(repo, eventBus, metrics, limits, logger)
	toggleLike := cmdhandlers.NewToggleLikeHandler(repo, eventBus, metrics, logger)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{commands.AddCommentCommand{}, bus.Typed(addComment.Handle)},
		{commands.UpdateCommentCommand{}, bus.Typed(updateComment.Handle)},
		{commands.DeleteCommentCommand{}, bus.Typed(deleteComment.Handle)},
		{commands.SubmitRatingCommand{}, bus.Typed(submitRating.Handle)},
		{commands.ToggleLikeCommand{}, bus.Typed(toggleLike.Handle)},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, reg.handler); err != nil {
			return nil, fmt.Errorf("failed to register command handler: %w", err)
		}
	}

	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(
	repo ports.FeedbackRepository,
	gameCatalog ports.Catalog,
	metrics ports.Metrics,
	queryCache *cache.InMemoryCache,
	cfg *config.Config,
	limits *domainconfig.DomainConfig,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.MetricsMiddleware(metrics),
		querybus.CachingMiddleware(queryCache, cfg.CacheTTLSeconds),
	)

	feedbackQueries := queryhandlers.NewFeedbackQueryHandler(repo, logger)
	catalogQueries := queryhandlers.NewCatalogQueryHandler(gameCatalog)
	statsQueries := queryhandlers.NewStatsQueryHandler(repo, gameCatalog, limits, logger)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.ListCommentsQuery{}, querybus.Typed(feedbackQueries.ListComments)},
		{queries.GetRatingsQuery{}, querybus.Typed(feedbackQueries.GetRatings)},
		{queries.GetLikesQuery{}, querybus.Typed(feedbackQueries.GetLikes)},
		{queries.AllCommentsQuery{}, querybus.Typed(feedbackQueries.AllComments)},
		{queries.AllRatingsQuery{}, querybus.Typed(feedbackQueries.AllRatings)},
		{queries.AllLikesQuery{}, querybus.Typed(feedbackQueries.AllLikes)},
		{queries.UserActivityQuery{}, querybus.Typed(feedbackQueries.UserActivity)},
		{queries.ListGamesQuery{}, querybus.Typed(catalogQueries.ListGames)},
		{queries.GetGameQuery{}, querybus.Typed(catalogQueries.GetGame)},
		{queries.ListGenresQuery{}, querybus.Typed(catalogQueries.ListGenres)},
		{queries.GameStatsQuery{}, querybus.Typed(statsQueries.GameStats)},
		{queries.AllGameStatsQuery{}, querybus.Typed(statsQueries.AllGameStats)},
		{queries.UserStatsQuery{}, querybus.Typed(statsQueries.UserStats)},
		{queries.GlobalStatsQuery{}, querybus.Typed(statsQueries.GlobalStats)},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, fmt.Errorf("failed to register query handler: %w", err)
		}
	}

	return queryBus, nil
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *errors.ErrorHandler {
	return errors.NewErrorHandler(logger, cfg.Debug && !cfg.IsProduction())
}

// ProvideRouter builds the HTTP handler
func ProvideRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *errors.ErrorHandler,
	metrics ports.Metrics,
	collector *observability.Collector,
	limiter ratelimit.Limiter,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	opts := rest.Options{
		EnableCORS:         cfg.EnableCORS,
		AllowedOrigins:     cfg.AllowedOrigins,
		Limiter:            limiter,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}
	if collector != nil {
		opts.MetricsHandler = collector.Handler()
	}
	return rest.NewRouter(commandBus, queryBus, errorHandler, metrics, opts, logger).Setup()
}
