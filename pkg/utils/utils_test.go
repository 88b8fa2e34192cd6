package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	UserID string   `validate:"required"`
	Rating *float64 `validate:"omitempty,gte=1,lte=10"`
	Kind   string   `validate:"omitempty,oneof=comment rating like"`
}

func TestValidateStruct(t *testing.T) {
	eleven := 11.0
	five := 5.0

	assert.NoError(t, ValidateStruct(sample{UserID: "user-1", Rating: &five}))
	assert.NoError(t, ValidateStruct(sample{UserID: "user-1"}))

	err := ValidateStruct(sample{Rating: &eleven, Kind: "vote"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "userID is required")
	assert.Contains(t, err.Error(), "rating must be at most 10")
	assert.Contains(t, err.Error(), "kind must be one of: comment rating like")
}

func TestTimestampRoundTrip(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 678_000_000, time.UTC)

	s := FormatTimestamp(ts)
	assert.Equal(t, "2025-01-02T03:04:05.678Z", s)

	parsed, err := ParseTimestamp(s)
	require.NoError(t, err)
	assert.True(t, ts.Equal(parsed))
}

func TestFormatTimestamp_SortsLexically(t *testing.T) {
	earlier := FormatTimestamp(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	later := FormatTimestamp(time.Date(2025, 1, 2, 3, 4, 5, 100_000_000, time.UTC))

	assert.Less(t, earlier, later)
}

func TestNowUTC(t *testing.T) {
	now := NowUTC()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Millisecond))
}

func TestParseTimestamp_Zoneless(t *testing.T) {
	parsed, err := ParseTimestamp("2025-01-02T03:04:05.123456")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 1, 2, 3, 4, 5, 123_456_000, time.UTC).Equal(parsed))

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}
