// Package dynamodb stores comments, ratings and likes in a single DynamoDB
// table. Every record of a game shares the partition key GAME#<gameId>; the
// sort key prefix tells the record types apart and a user index keyed on
// userId and timestamp serves per-user history.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/domain/feedback"
	apperrors "github.com/20q2/golgari-game-day/pkg/errors"
	"github.com/20q2/golgari-game-day/pkg/observability"
	"github.com/20q2/golgari-game-day/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"
)

// Key prefixes
const (
	gamePrefix    = "GAME#"
	commentPrefix = "COMMENT#"
	ratingPrefix  = "RATING#"
	likePrefix    = "LIKE#"
)

// DynamoDBAPI is the subset of the DynamoDB client the repository uses
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Config names the table and index the repository works against
type Config struct {
	TableName     string
	UserIndexName string
	PageSize      int32
}

// FeedbackRepository implements ports.FeedbackRepository on DynamoDB
type FeedbackRepository struct {
	client DynamoDBAPI
	cfg    Config
	tracer *observability.Tracer
	logger *zap.Logger
}

var _ ports.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new FeedbackRepository. tracer may be nil.
func NewFeedbackRepository(client DynamoDBAPI, cfg Config, tracer *observability.Tracer, logger *zap.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}
}

// item is the stored shape of every record type
type item struct {
	PK        string   `dynamodbav:"pk"`
	SK        string   `dynamodbav:"sk"`
	Type      string   `dynamodbav:"type"`
	UserID    string   `dynamodbav:"userId"`
	Username  string   `dynamodbav:"username"`
	Comment   string   `dynamodbav:"comment,omitempty"`
	Rating    *float64 `dynamodbav:"rating,omitempty"`
	Timestamp string   `dynamodbav:"timestamp"`
}

func gameKey(gameID string) string { return gamePrefix + gameID }

func key(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: pk},
		"sk": &types.AttributeValueMemberS{Value: sk},
	}
}

// SaveComment persists a new comment
func (r *FeedbackRepository) SaveComment(ctx context.Context, c feedback.Comment) error {
	return r.trace(ctx, "SaveComment", func(ctx context.Context) error {
		return r.put(ctx, "PutItem", item{
			PK:        gameKey(c.GameID),
			SK:        commentPrefix + c.CommentID,
			Type:      string(feedback.KindComment),
			UserID:    c.UserID,
			Username:  c.Username,
			Comment:   c.Comment,
			Rating:    c.Rating,
			Timestamp: utils.FormatTimestamp(c.Timestamp),
		}, nil)
	})
}

// UpdateComment rewrites a comment's text and rating. A nil rating removes it.
func (r *FeedbackRepository) UpdateComment(ctx context.Context, gameID, commentID, text string, rating *float64) error {
	return r.trace(ctx, "UpdateComment", func(ctx context.Context) error {
		update := expression.Set(expression.Name("comment"), expression.Value(text))
		if rating != nil {
			update = update.Set(expression.Name("rating"), expression.Value(*rating))
		} else {
			update = update.Remove(expression.Name("rating"))
		}

		expr, err := expression.NewBuilder().
			WithUpdate(update).
			WithCondition(expression.AttributeExists(expression.Name("pk"))).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build expression: %w", err)
		}

		_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(r.cfg.TableName),
			Key:                       key(gameKey(gameID), commentPrefix+commentID),
			UpdateExpression:          expr.Update(),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		if isConditionFailure(err) {
			return apperrors.NewNotFoundError("comment")
		}
		if err != nil {
			return r.dbError("UpdateItem", err)
		}
		return nil
	})
}

// DeleteComment removes a comment
func (r *FeedbackRepository) DeleteComment(ctx context.Context, gameID, commentID string) error {
	return r.trace(ctx, "DeleteComment", func(ctx context.Context) error {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.cfg.TableName),
			Key:       key(gameKey(gameID), commentPrefix+commentID),
		})
		if err != nil {
			return r.dbError("DeleteItem", err)
		}
		return nil
	})
}

// ListComments returns a game's comments
func (r *FeedbackRepository) ListComments(ctx context.Context, gameID string) ([]feedback.Comment, error) {
	var comments []feedback.Comment
	err := r.trace(ctx, "ListComments", func(ctx context.Context) error {
		items, err := r.queryGame(ctx, gameID, commentPrefix)
		if err != nil {
			return err
		}
		comments = mapItems(items, r.toComment)
		return nil
	})
	return comments, err
}

// SaveRating stores a rating under the user's sort key, replacing any earlier one
func (r *FeedbackRepository) SaveRating(ctx context.Context, rt feedback.Rating) error {
	return r.trace(ctx, "SaveRating", func(ctx context.Context) error {
		value := rt.Rating
		return r.put(ctx, "PutItem", item{
			PK:        gameKey(rt.GameID),
			SK:        ratingPrefix + rt.UserID,
			Type:      string(feedback.KindRating),
			UserID:    rt.UserID,
			Username:  rt.Username,
			Rating:    &value,
			Timestamp: utils.FormatTimestamp(rt.Timestamp),
		}, nil)
	})
}

// ListRatings returns a game's ratings
func (r *FeedbackRepository) ListRatings(ctx context.Context, gameID string) ([]feedback.Rating, error) {
	var ratings []feedback.Rating
	err := r.trace(ctx, "ListRatings", func(ctx context.Context) error {
		items, err := r.queryGame(ctx, gameID, ratingPrefix)
		if err != nil {
			return err
		}
		ratings = mapItems(items, r.toRating)
		return nil
	})
	return ratings, err
}

// GetLike returns a user's like on a game, or nil
func (r *FeedbackRepository) GetLike(ctx context.Context, gameID, userID string) (*feedback.Like, error) {
	var like *feedback.Like
	err := r.trace(ctx, "GetLike", func(ctx context.Context) error {
		out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName:      aws.String(r.cfg.TableName),
			Key:            key(gameKey(gameID), likePrefix+userID),
			ConsistentRead: aws.Bool(true),
		})
		if err != nil {
			return r.dbError("GetItem", err)
		}
		if len(out.Item) == 0 {
			return nil
		}

		var it item
		if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
			return fmt.Errorf("failed to unmarshal like: %w", err)
		}
		l := r.toLike(it)
		like = &l
		return nil
	})
	return like, err
}

// AddLike stores a like unless one already exists
func (r *FeedbackRepository) AddLike(ctx context.Context, l feedback.Like) error {
	return r.trace(ctx, "AddLike", func(ctx context.Context) error {
		cond := expression.AttributeNotExists(expression.Name("pk"))
		err := r.put(ctx, "PutItem", item{
			PK:        gameKey(l.GameID),
			SK:        likePrefix + l.UserID,
			Type:      string(feedback.KindLike),
			UserID:    l.UserID,
			Username:  l.Username,
			Timestamp: utils.FormatTimestamp(l.Timestamp),
		}, &cond)
		if isConditionFailure(err) {
			return apperrors.NewConflictError("game is already liked")
		}
		return err
	})
}

// RemoveLike deletes an existing like
func (r *FeedbackRepository) RemoveLike(ctx context.Context, gameID, userID string) error {
	return r.trace(ctx, "RemoveLike", func(ctx context.Context) error {
		expr, err := expression.NewBuilder().
			WithCondition(expression.AttributeExists(expression.Name("pk"))).
			Build()
		if err != nil {
			return fmt.Errorf("failed to build expression: %w", err)
		}

		_, err = r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName:                aws.String(r.cfg.TableName),
			Key:                      key(gameKey(gameID), likePrefix+userID),
			ConditionExpression:      expr.Condition(),
			ExpressionAttributeNames: expr.Names(),
		})
		if isConditionFailure(err) {
			return apperrors.NewConflictError("game is not liked")
		}
		if err != nil {
			return r.dbError("DeleteItem", err)
		}
		return nil
	})
}

// ListLikes returns a game's likes
func (r *FeedbackRepository) ListLikes(ctx context.Context, gameID string) ([]feedback.Like, error) {
	var likes []feedback.Like
	err := r.trace(ctx, "ListLikes", func(ctx context.Context) error {
		items, err := r.queryGame(ctx, gameID, likePrefix)
		if err != nil {
			return err
		}
		likes = mapItems(items, r.toLike)
		return nil
	})
	return likes, err
}

// AllComments scans every comment in the table
func (r *FeedbackRepository) AllComments(ctx context.Context) ([]feedback.Comment, error) {
	var comments []feedback.Comment
	err := r.trace(ctx, "AllComments", func(ctx context.Context) error {
		items, err := r.scanKind(ctx, feedback.KindComment)
		if err != nil {
			return err
		}
		comments = mapItems(items, r.toComment)
		return nil
	})
	return comments, err
}

// AllRatings scans every rating in the table
func (r *FeedbackRepository) AllRatings(ctx context.Context) ([]feedback.Rating, error) {
	var ratings []feedback.Rating
	err := r.trace(ctx, "AllRatings", func(ctx context.Context) error {
		items, err := r.scanKind(ctx, feedback.KindRating)
		if err != nil {
			return err
		}
		ratings = mapItems(items, r.toRating)
		return nil
	})
	return ratings, err
}

// AllLikes scans every like in the table
func (r *FeedbackRepository) AllLikes(ctx context.Context) ([]feedback.Like, error) {
	var likes []feedback.Like
	err := r.trace(ctx, "AllLikes", func(ctx context.Context) error {
		items, err := r.scanKind(ctx, feedback.KindLike)
		if err != nil {
			return err
		}
		likes = mapItems(items, r.toLike)
		return nil
	})
	return likes, err
}

// UserActivity reads a user's records through the user index, newest first
func (r *FeedbackRepository) UserActivity(ctx context.Context, userID string) (feedback.Snapshot, error) {
	var s feedback.Snapshot
	err := r.trace(ctx, "UserActivity", func(ctx context.Context) error {
		keyCond := expression.Key("userId").Equal(expression.Value(userID))
		expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
		if err != nil {
			return fmt.Errorf("failed to build expression: %w", err)
		}

		items, err := r.query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.cfg.TableName),
			IndexName:                 aws.String(r.cfg.UserIndexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false),
		})
		if err != nil {
			return err
		}

		s = feedback.Snapshot{
			Comments: []feedback.Comment{},
			Ratings:  []feedback.Rating{},
			Likes:    []feedback.Like{},
		}
		for _, it := range items {
			switch feedback.Kind(it.Type) {
			case feedback.KindComment:
				s.Comments = append(s.Comments, r.toComment(it))
			case feedback.KindRating:
				s.Ratings = append(s.Ratings, r.toRating(it))
			case feedback.KindLike:
				s.Likes = append(s.Likes, r.toLike(it))
			}
		}
		return nil
	})
	return s, err
}

func (r *FeedbackRepository) put(ctx context.Context, op string, it item, cond *expression.ConditionBuilder) error {
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", it.Type, err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.cfg.TableName),
		Item:      av,
	}
	if cond != nil {
		expr, err := expression.NewBuilder().WithCondition(*cond).Build()
		if err != nil {
			return fmt.Errorf("failed to build expression: %w", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		if isConditionFailure(err) {
			return err
		}
		return r.dbError(op, err)
	}

	r.logger.Debug("Stored item",
		zap.String("pk", it.PK),
		zap.String("sk", it.SK),
		zap.String("type", it.Type),
	)
	return nil
}

func (r *FeedbackRepository) queryGame(ctx context.Context, gameID, prefix string) ([]item, error) {
	keyCond := expression.Key("pk").Equal(expression.Value(gameKey(gameID))).
		And(expression.Key("sk").BeginsWith(prefix))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	return r.query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.cfg.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	})
}

func (r *FeedbackRepository) query(ctx context.Context, input *dynamodb.QueryInput) ([]item, error) {
	if r.cfg.PageSize > 0 {
		input.Limit = aws.Int32(r.cfg.PageSize)
	}

	var items []item
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, r.dbError("Query", err)
		}

		var batch []item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		items = append(items, batch...)
	}
	return items, nil
}

func (r *FeedbackRepository) scanKind(ctx context.Context, kind feedback.Kind) ([]item, error) {
	filter := expression.Name("type").Equal(expression.Value(string(kind)))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.cfg.TableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if r.cfg.PageSize > 0 {
		input.Limit = aws.Int32(r.cfg.PageSize)
	}

	var items []item
	pages := 0
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, r.dbError("Scan", err)
		}
		pages++

		var batch []item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		items = append(items, batch...)
	}

	r.logger.Debug("Scanned table",
		zap.String("type", string(kind)),
		zap.Int("items", len(items)),
		zap.Int("pages", pages),
	)
	return items, nil
}

func (r *FeedbackRepository) toComment(it item) feedback.Comment {
	return feedback.Comment{
		CommentID: strings.TrimPrefix(it.SK, commentPrefix),
		GameID:    strings.TrimPrefix(it.PK, gamePrefix),
		UserID:    it.UserID,
		Username:  it.Username,
		Comment:   it.Comment,
		Rating:    it.Rating,
		Timestamp: r.parseTime(it),
	}
}

func (r *FeedbackRepository) toRating(it item) feedback.Rating {
	rt := feedback.Rating{
		GameID:    strings.TrimPrefix(it.PK, gamePrefix),
		UserID:    it.UserID,
		Username:  it.Username,
		Timestamp: r.parseTime(it),
	}
	if it.Rating != nil {
		rt.Rating = *it.Rating
	}
	return rt
}

func (r *FeedbackRepository) toLike(it item) feedback.Like {
	return feedback.Like{
		GameID:    strings.TrimPrefix(it.PK, gamePrefix),
		UserID:    it.UserID,
		Username:  it.Username,
		Timestamp: r.parseTime(it),
	}
}

func (r *FeedbackRepository) parseTime(it item) time.Time {
	t, err := utils.ParseTimestamp(it.Timestamp)
	if err != nil {
		r.logger.Warn("Unreadable timestamp",
			zap.String("pk", it.PK),
			zap.String("sk", it.SK),
			zap.String("timestamp", it.Timestamp),
		)
	}
	return t
}

func (r *FeedbackRepository) trace(ctx context.Context, op string, fn func(context.Context) error) error {
	return r.tracer.TraceFunction(ctx, "dynamodb."+op, fn)
}

// dbError wraps a DynamoDB failure, logging the service error code when present
func (r *FeedbackRepository) dbError(op string, err error) error {
	fields := []zap.Field{
		zap.String("operation", op),
		zap.String("table", r.cfg.TableName),
		zap.Error(err),
	}

	var ae smithy.APIError
	if errors.As(err, &ae) {
		fields = append(fields, zap.String("error_code", ae.ErrorCode()))
	}

	r.logger.Error("DynamoDB operation failed", fields...)
	return apperrors.NewDatabaseError(op, err)
}

func isConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func mapItems[T any](items []item, fn func(item) T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
