package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "67%", FormatRate(2.0/3.0))
	assert.Equal(t, "35%", FormatRate(0.35))
	assert.Equal(t, "0%", FormatRate(0))
	assert.Equal(t, "100%", FormatRate(1))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "2.5/5", FormatScore(2.5, 5))
	assert.Equal(t, "4.0/5", FormatScore(4, 5))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 trade", Pluralize(1, "trade"))
	assert.Equal(t, "0 trades", Pluralize(0, "trade"))
	assert.Equal(t, "20 trades", Pluralize(20, "trade"))
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"fits", "short", 10, "short"},
		{"ascii", "the quick brown fox", 10, "the qui..."},
		{"tiny limit", "abcdef", 2, "ab"},
		{"multi-byte", "héllo wörld again", 10, "héllo w..."},
		{"box drawing", "──────────", 5, "──..."},
		{"multi-byte fits", "wörld", 5, "wörld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.in, tt.maxLen)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
			assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.maxLen)
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "wö   ", PadRight("wö", 5))
	assert.Equal(t, "toolong", PadRight("toolong", 3))
}
