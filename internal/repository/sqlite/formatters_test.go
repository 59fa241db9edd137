package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "UTC time",
			input:    time.Date(2026, 1, 15, 10, 30, 45, 0, time.UTC),
			expected: "2026-01-15T10:30:45Z",
		},
		{
			name:     "time with offset",
			input:    time.Date(2026, 6, 15, 14, 30, 0, 0, time.FixedZone("BST", 3600)),
			expected: "2026-06-15T14:30:00+01:00",
		},
		{
			name:     "nanoseconds are dropped",
			input:    time.Date(2026, 3, 10, 9, 15, 30, 123456789, time.UTC),
			expected: "2026-03-10T09:15:30Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	ts := time.Date(2026, 1, 15, 10, 30, 45, 0, time.UTC)
	assert.Equal(t, "2026-01-15T10:30:45Z", FormatTimePtrForDB(&ts))
}

func TestParseTimeFromDB(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "RFC3339",
			input:    "2026-01-15T10:30:45Z",
			expected: time.Date(2026, 1, 15, 10, 30, 45, 0, time.UTC),
		},
		{
			name:     "RFC3339 with fractional seconds",
			input:    "2026-03-10T09:15:30.123456789Z",
			expected: time.Date(2026, 3, 10, 9, 15, 30, 123456789, time.UTC),
		},
		{
			name:     "Go default string with monotonic suffix",
			input:    "2026-01-15 10:30:45.5 +0000 UTC m=+0.001",
			expected: time.Date(2026, 1, 15, 10, 30, 45, 500000000, time.UTC),
		},
		{
			name:     "datetime without zone",
			input:    "2026-01-15 10:30:45",
			expected: time.Date(2026, 1, 15, 10, 30, 45, 0, time.UTC),
		},
		{
			name:     "date only",
			input:    "2026-02-01",
			expected: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:        "empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "invalid month",
			input:       "2026-13-45T10:30:45Z",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTimeFromDB(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				assert.True(t, result.IsZero())
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result), "got %v", result)
		})
	}
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	original := time.Date(2026, 1, 15, 10, 30, 45, 0, time.UTC)

	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}

func TestParseNullTime(t *testing.T) {
	got, err := parseNullTime(sql.NullString{})
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseNullTime(sql.NullString{String: "2026-01-15T10:30:45Z", Valid: true})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 15, got.Day())

	_, err = parseNullTime(sql.NullString{String: "garbage", Valid: true})
	assert.Error(t, err)
}

func TestNullableInt64(t *testing.T) {
	assert.Nil(t, nullableInt64(nil))
	v := int64(300)
	assert.Equal(t, int64(300), nullableInt64(&v))
}
