package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/20q2/golgari-game-day/domain/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEventBridge struct {
	inputs []*eventbridge.PutEventsInput
	out    *eventbridge.PutEventsOutput
	err    error
}

func (f *fakeEventBridge) PutEvents(_ context.Context, in *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil {
		return f.out, nil
	}
	return &eventbridge.PutEventsOutput{}, nil
}

var at = time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC)

func TestPublisher_Publish_Entry(t *testing.T) {
	// Arrange
	f := &fakeEventBridge{}
	p := NewPublisher(f, "game-day-bus", zap.NewNop())

	// Act
	err := p.Publish(context.Background(), events.NewLikeToggled("azul", "user-a", true, at))

	// Assert
	require.NoError(t, err)
	require.Len(t, f.inputs, 1)
	entry := f.inputs[0].Entries[0]
	assert.Equal(t, "game-day-bus", aws.ToString(entry.EventBusName))
	assert.Equal(t, events.Source, aws.ToString(entry.Source))
	assert.Equal(t, events.TypeLikeToggled, aws.ToString(entry.DetailType))
	assert.Equal(t, []string{"game:azul"}, entry.Resources)

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, "azul", detail["aggregate_id"])
}

func TestPublisher_PublishBatch_ChunksByTen(t *testing.T) {
	f := &fakeEventBridge{}
	p := NewPublisher(f, "bus", zap.NewNop())

	batch := make([]events.DomainEvent, 23)
	for i := range batch {
		batch[i] = events.NewCommentDeleted("azul", "c", at)
	}

	require.NoError(t, p.PublishBatch(context.Background(), batch))

	require.Len(t, f.inputs, 3)
	assert.Len(t, f.inputs[0].Entries, 10)
	assert.Len(t, f.inputs[2].Entries, 3)
}

func TestPublisher_Errors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeEventBridge
		want string
	}{
		{
			name: "transport error",
			fake: &fakeEventBridge{err: errors.New("no route")},
			want: "failed to publish events to EventBridge",
		},
		{
			name: "failed entries",
			fake: &fakeEventBridge{out: &eventbridge.PutEventsOutput{
				FailedEntryCount: 1,
				Entries:          []types.PutEventsResultEntry{{ErrorCode: aws.String("InternalFailure")}},
			}},
			want: "1 events failed to publish",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPublisher(tt.fake, "bus", zap.NewNop())

			err := p.Publish(context.Background(), events.NewRatingSubmitted("azul", "user-a", 8, at))

			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestPublisher_EmptyBatch(t *testing.T) {
	f := &fakeEventBridge{}
	p := NewPublisher(f, "bus", zap.NewNop())

	require.NoError(t, p.PublishBatch(context.Background(), nil))
	assert.Empty(t, f.inputs)
}

func TestNoopEventBus(t *testing.T) {
	b := NewNoopEventBus(zap.NewNop())
	assert.NoError(t, b.Publish(context.Background(), events.NewCommentAdded("azul", "c", "u", nil, at)))
}
