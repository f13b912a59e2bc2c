package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{
			name:     "zero",
			input:    0,
			expected: "0",
		},
		{
			name:     "small number",
			input:    42,
			expected: "42",
		},
		{
			name:     "hundreds",
			input:    999,
			expected: "999",
		},
		{
			name:     "exactly 1000",
			input:    1000,
			expected: "1.0K",
		},
		{
			name:     "thousands",
			input:    1500,
			expected: "1.5K",
		},
		{
			name:     "tens of thousands",
			input:    25000,
			expected: "25.0K",
		},
		{
			name:     "hundreds of thousands",
			input:    999999,
			expected: "1000.0K",
		},
		{
			name:     "exactly 1 million",
			input:    1000000,
			expected: "1.0M",
		},
		{
			name:     "millions",
			input:    2500000,
			expected: "2.5M",
		},
		{
			name:     "tens of millions",
			input:    50000000,
			expected: "50.0M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatNumber(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "zero duration",
			input:    0 * time.Minute,
			expected: "0m",
		},
		{
			name:     "minutes only",
			input:    5 * time.Minute,
			expected: "5m",
		},
		{
			name:     "30 minutes",
			input:    30 * time.Minute,
			expected: "30m",
		},
		{
			name:     "59 minutes",
			input:    59 * time.Minute,
			expected: "59m",
		},
		{
			name:     "exactly 1 hour",
			input:    60 * time.Minute,
			expected: "1h 0m",
		},
		{
			name:     "1 hour 30 minutes",
			input:    90 * time.Minute,
			expected: "1h 30m",
		},
		{
			name:     "2 hours 15 minutes",
			input:    135 * time.Minute,
			expected: "2h 15m",
		},
		{
			name:     "24 hours",
			input:    24 * time.Hour,
			expected: "24h 0m",
		},
		{
			name:     "25 hours 45 minutes",
			input:    25*time.Hour + 45*time.Minute,
			expected: "25h 45m",
		},
		{
			name:     "seconds get rounded down",
			input:    1*time.Hour + 30*time.Minute + 45*time.Second,
			expected: "1h 30m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatDuration(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatNumberBoundaries(t *testing.T) {
	// Test boundary conditions
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{
			name:     "999 (just below K threshold)",
			input:    999,
			expected: "999",
		},
		{
			name:     "1000 (at K threshold)",
			input:    1000,
			expected: "1.0K",
		},
		{
			name:     "999999 (just below M threshold)",
			input:    999999,
			expected: "1000.0K",
		},
		{
			name:     "1000000 (at M threshold)",
			input:    1000000,
			expected: "1.0M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatNumber(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatDurationEdgeCases(t *testing.T) {
	// Test edge cases for duration formatting
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "negative duration",
			input:    -30 * time.Minute,
			expected: "-30m",
		},
		{
			name:     "very long duration",
			input:    100 * time.Hour,
			expected: "100h 0m",
		},
		{
			name:     "nanoseconds only",
			input:    500 * time.Nanosecond,
			expected: "0m",
		},
		{
			name:     "59 seconds",
			input:    59 * time.Second,
			expected: "0m",
		},
		{
			name:     "60 seconds",
			input:    60 * time.Second,
			expected: "1m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatDuration(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2019, 2, 5, 14, 53, 7, 0, time.UTC)

	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"zero", time.Time{}, "never"},
		{"seconds", now.Add(-30 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-90 * time.Minute), "1h 30m ago"},
		{"days", now.Add(-72 * time.Hour), "3d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatAge(tt.input, now))
		})
	}
}
