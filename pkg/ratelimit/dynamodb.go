package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

const (
	windowKeyPrefix = "RATELIMIT#"
	windowSortKey   = "WINDOW"
	windowItemType  = "ratelimit"
)

// WindowStore is the subset of the DynamoDB client the window limiter uses
type WindowStore interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// WindowLimiter counts requests per fixed window in DynamoDB so that every
// Lambda instance draws from the same budget. Counter items expire through
// the table's ttl attribute an hour after their window closes.
type WindowLimiter struct {
	client    WindowStore
	tableName string
	limit     int
	window    time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

var _ Limiter = (*WindowLimiter)(nil)

// NewWindowLimiter allows limit requests per key in each window
func NewWindowLimiter(client WindowStore, tableName string, limit int, window time.Duration, logger *zap.Logger) *WindowLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &WindowLimiter{
		client:    client,
		tableName: tableName,
		limit:     limit,
		window:    window,
		now:       time.Now,
		logger:    logger,
	}
}

// Allow atomically increments the key's counter for the current window.
// Storage failures let the request through.
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	pk, windowEnd := l.windowKey(key)

	update := expression.Add(expression.Name("count"), expression.Value(1)).
		Set(expression.Name("type"), expression.Value(windowItemType)).
		Set(expression.Name("ttl"), expression.Value(windowEnd.Add(time.Hour).Unix()))
	cond := expression.AttributeNotExists(expression.Name("count")).
		Or(expression.Name("count").LessThan(expression.Value(l.limit)))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return false, fmt.Errorf("failed to build expression: %w", err)
	}

	_, err = l.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(l.tableName),
		Key:                       windowItemKey(pk),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return false, nil
		}
		l.logger.Warn("Rate limiter unavailable, allowing request",
			zap.String("key", key),
			zap.Error(err),
		)
		return true, nil
	}
	return true, nil
}

// Reset clears the key's counter for the current window
func (l *WindowLimiter) Reset(ctx context.Context, key string) error {
	pk, _ := l.windowKey(key)
	_, err := l.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(l.tableName),
		Key:       windowItemKey(pk),
	})
	if err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}

func (l *WindowLimiter) windowKey(key string) (string, time.Time) {
	start := l.now().Truncate(l.window)
	return fmt.Sprintf("%s%s#%d", windowKeyPrefix, key, start.Unix()), start.Add(l.window)
}

func windowItemKey(pk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: pk},
		"sk": &types.AttributeValueMemberS{Value: windowSortKey},
	}
}
