// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// FormatRate formats a 0-1 ratio as a whole percentage, e.g. 0.666 -> "67%".
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(rate*100))
}

// FormatScore formats a discipline-style score out of max, e.g. "4.2/5".
func FormatScore(score float64, max int) string {
	return fmt.Sprintf("%.1f/%d", score, max)
}

// Pluralize returns word with an "s" appended unless n is 1.
func Pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// TruncateString truncates a string to maxLen characters, ending in "..."
// when there is room for it.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// PadRight pads a string to the right to length characters.
func PadRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
