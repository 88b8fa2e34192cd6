//go:build integration

// Package integration drives the full stack against DynamoDB Local. Run with
// DYNAMODB_ENDPOINT=http://localhost:8000 go test -tags integration ./tests/integration/...
package integration

import (
	"context"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/20q2/golgari-game-day/application/session"
	"github.com/20q2/golgari-game-day/domain/identity"
	"github.com/20q2/golgari-game-day/infrastructure/config"
	"github.com/20q2/golgari-game-day/infrastructure/di"
	"github.com/20q2/golgari-game-day/infrastructure/remote"
	"github.com/20q2/golgari-game-day/pkg/ratelimit"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTable(t *testing.T) *config.Config {
	t.Helper()

	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if endpoint == "" {
		t.Skip("DYNAMODB_ENDPOINT not set")
	}
	if os.Getenv("AWS_ACCESS_KEY_ID") == "" {
		t.Setenv("AWS_ACCESS_KEY_ID", "local")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "local")
	}

	cfg := config.Default()
	cfg.Storage = config.StorageDynamoDB
	cfg.DynamoDBEndpoint = endpoint
	cfg.DynamoDBTable = "game-day-it-" + uuid.NewString()[:8]
	cfg.RateLimitPerMinute = 0
	cfg.CacheTTLSeconds = 0

	ctx := context.Background()
	awsCfg, err := di.ProvideAWSConfig(ctx, cfg, di.ProvideTracer(cfg))
	require.NoError(t, err)
	client := di.ProvideDynamoDBClient(awsCfg, cfg)

	_, err = client.CreateTable(ctx, &awsdynamodb.CreateTableInput{
		TableName:   aws.String(cfg.DynamoDBTable),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("userId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("timestamp"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{{
			IndexName: aws.String(cfg.UserIndexName),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("userId"), KeyType: types.KeyTypeHash},
				{AttributeName: aws.String("timestamp"), KeyType: types.KeyTypeRange},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}},
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = client.DeleteTable(context.Background(), &awsdynamodb.DeleteTableInput{TableName: aws.String(cfg.DynamoDBTable)})
	})
	return cfg
}

func TestFeedbackFlow(t *testing.T) {
	cfg := setupTable(t)
	ctx := context.Background()

	container, err := di.InitializeContainer(ctx, cfg)
	require.NoError(t, err)
	defer container.Close()

	srv := httptest.NewServer(container.Handler)
	defer srv.Close()

	games := container.Catalog.Games()
	api := remote.NewClient(srv.URL, 5*time.Second, zap.NewNop())
	ana := identity.Identity{UserID: "user-ana000001", Username: "Ana"}
	bo := identity.Identity{UserID: "user-bo0000001", Username: "Bo"}

	anaSession := session.New(ana, api, games, zap.NewNop())
	defer anaSession.Close()

	t.Run("writes", func(t *testing.T) {
		rating := 8.0
		_, err := anaSession.AddComment(ctx, "wingspan", "", "Beautiful engine builder", &rating)
		require.NoError(t, err)
		require.NoError(t, anaSession.AddRating(ctx, "wingspan", 6))
		require.NoError(t, anaSession.AddRating(ctx, "wingspan", 9))

		liked, err := anaSession.ToggleLike(ctx, "azul")
		require.NoError(t, err)
		assert.True(t, liked)
	})

	t.Run("another user reads everything back", func(t *testing.T) {
		boSession := session.New(bo, api, games, zap.NewNop())
		defer boSession.Close()

		require.NoError(t, boSession.LoadAll(ctx))

		st := boSession.GameStats("wingspan")
		assert.Equal(t, 1, st.TotalComments)
		assert.Equal(t, 1, st.TotalRatings)
		require.NotNil(t, st.AverageRating)
		assert.Equal(t, 9.0, *st.AverageRating)

		azul := boSession.GameStats("azul")
		assert.Equal(t, 1, azul.TotalLikes)
		assert.False(t, azul.IsLikedByCurrentUser)

		global := boSession.GlobalStats()
		assert.Equal(t, 1, global.TotalUsers)
	})

	t.Run("unlike", func(t *testing.T) {
		liked, err := anaSession.ToggleLike(ctx, "azul")
		require.NoError(t, err)
		assert.False(t, liked)

		likes, err := api.AllLikes(ctx, ana.UserID)
		require.NoError(t, err)
		assert.Empty(t, likes)
	})

	t.Run("user activity", func(t *testing.T) {
		activity, err := container.Repository.UserActivity(ctx, ana.UserID)
		require.NoError(t, err)
		assert.Len(t, activity.Comments, 1)
		assert.Len(t, activity.Ratings, 1)
	})
}

func TestWindowLimiterSharedCounter(t *testing.T) {
	cfg := setupTable(t)
	ctx := context.Background()

	awsCfg, err := di.ProvideAWSConfig(ctx, cfg, di.ProvideTracer(cfg))
	require.NoError(t, err)
	client := di.ProvideDynamoDBClient(awsCfg, cfg)

	// Two limiters stand in for two Lambda instances
	first := ratelimit.NewWindowLimiter(client, cfg.DynamoDBTable, 2, time.Hour, zap.NewNop())
	second := ratelimit.NewWindowLimiter(client, cfg.DynamoDBTable, 2, time.Hour, zap.NewNop())

	ok, err := first.Allow(ctx, "10.1.1.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = second.Allow(ctx, "10.1.1.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = first.Allow(ctx, "10.1.1.1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Counter items never show up as feedback
	limits, err := di.ProvideDomainConfig(cfg)
	require.NoError(t, err)
	repo := di.ProvideFeedbackRepository(client, cfg, limits, di.ProvideTracer(cfg), zap.NewNop())
	comments, err := repo.AllComments(ctx)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
