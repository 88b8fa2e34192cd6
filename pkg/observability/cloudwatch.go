package observability

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/20q2/golgari-game-day/application/ports"
	"github.com/20q2/golgari-game-day/domain/feedback"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// maxDatumsPerPut is the PutMetricData batch size
const maxDatumsPerPut = 20

// CloudWatchAPI is the subset of the CloudWatch client used for metrics
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// CloudWatchMetrics buffers measurements in memory and sends them on Flush.
// A Lambda invocation records freely and flushes once before returning.
type CloudWatchMetrics struct {
	namespace string
	client    CloudWatchAPI
	logger    *zap.Logger
	now       func() time.Time

	mu     sync.Mutex
	buffer []types.MetricDatum
}

var _ ports.Metrics = (*CloudWatchMetrics)(nil)

// NewCloudWatchMetrics creates a buffered publisher for namespace
func NewCloudWatchMetrics(namespace string, client CloudWatchAPI, logger *zap.Logger) *CloudWatchMetrics {
	return &CloudWatchMetrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordOperation records latency and count for a command or query
func (m *CloudWatchMetrics) RecordOperation(kind, name string, duration time.Duration, err error) {
	dims := []types.Dimension{
		{Name: aws.String("Kind"), Value: aws.String(kind)},
		{Name: aws.String("Name"), Value: aws.String(name)},
		{Name: aws.String("Status"), Value: aws.String(statusLabel(err))},
	}
	m.add(
		m.datum("OperationLatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dims),
		m.datum("OperationCount", 1, types.StandardUnitCount, dims),
	)
}

// RecordHTTPRequest records latency for a served request
func (m *CloudWatchMetrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	dims := []types.Dimension{
		{Name: aws.String("Method"), Value: aws.String(method)},
		{Name: aws.String("Route"), Value: aws.String(route)},
		{Name: aws.String("Status"), Value: aws.String(strconv.Itoa(status))},
	}
	m.add(m.datum("RequestLatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dims))
}

// RecordFeedback counts a stored comment, rating or like change
func (m *CloudWatchMetrics) RecordFeedback(kind feedback.Kind) {
	dims := []types.Dimension{
		{Name: aws.String("Kind"), Value: aws.String(string(kind))},
	}
	m.add(m.datum("FeedbackRecorded", 1, types.StandardUnitCount, dims))
}

// Pending returns the number of buffered datums
func (m *CloudWatchMetrics) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffer)
}

// Flush sends every buffered datum. Datums from failed batches are dropped
// and the first error is returned.
func (m *CloudWatchMetrics) Flush(ctx context.Context) error {
	m.mu.Lock()
	pending := m.buffer
	m.buffer = nil
	m.mu.Unlock()

	var firstErr error
	for start := 0; start < len(pending); start += maxDatumsPerPut {
		end := min(start+maxDatumsPerPut, len(pending))

		_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
			Namespace:  aws.String(m.namespace),
			MetricData: pending[start:end],
		})
		if err != nil {
			m.logger.Warn("Failed to send metrics",
				zap.String("namespace", m.namespace),
				zap.Int("count", end-start),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to put metric data: %w", err)
			}
		}
	}
	return firstErr
}

func (m *CloudWatchMetrics) datum(name string, value float64, unit types.StandardUnit, dims []types.Dimension) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Dimensions: dims,
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(m.now()),
	}
}

func (m *CloudWatchMetrics) add(datums ...types.MetricDatum) {
	m.mu.Lock()
	m.buffer = append(m.buffer, datums...)
	m.mu.Unlock()
}
