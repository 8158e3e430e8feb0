package cli

import (
	"fmt"
	"time"

	"seqtrader/internal/journal"
	"seqtrader/internal/sequence"
	"seqtrader/pkg/utils"
)

// FormatBucket formats a bucket as "67% (2/3)".
func FormatBucket(b journal.Bucket) string {
	if b.Total == 0 {
		return "-"
	}
	return fmt.Sprintf("%s (%d/%d)", utils.FormatRate(b.Rate()), b.Wins, b.Total)
}

// FormatWinRate formats the overall win rate, or "-" before anything settles.
func FormatWinRate(t journal.Totals) string {
	rate, ok := t.WinRate()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%s (%d/%d)", utils.FormatRate(rate), t.Wins, t.Settled)
}

// FormatDiscipline formats the average discipline score.
func FormatDiscipline(agg journal.Aggregates) string {
	avg, ok := agg.Discipline()
	if !ok {
		return "-"
	}
	return utils.FormatScore(avg, 5)
}

// FormatDimensionName turns a dimension key into a heading.
func FormatDimensionName(name string) string {
	switch name {
	case journal.DimensionSession:
		return "Session"
	case journal.DimensionHTFZone:
		return "HTF Zone"
	case journal.DimensionEmotion:
		return "Emotional State"
	case journal.DimensionPattern:
		return "Pattern"
	}
	return name
}

// FormatDate formats a date for display. The zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}

// Label colours a classification: green when tradeable, yellow for a
// wait state and red when unclear.
func (o *Output) Label(label sequence.Label) string {
	switch {
	case label.Tradeable():
		return o.Green(string(label))
	case label == sequence.LabelUnclear:
		return o.Red(string(label))
	default:
		return o.Yellow(string(label))
	}
}

// Tone colours an insight marker.
func (o *Output) Tone(tone journal.Tone) string {
	if tone == journal.TonePositive {
		return o.Green("+")
	}
	return o.Yellow("!")
}

// Rate colours a dimension bucket the way the insight engine judges it:
// green for a strength, red for a caution, dim below the sample gate.
func (o *Output) Rate(dimension string, b journal.Bucket, th journal.Thresholds) string {
	text := FormatBucket(b)
	if b.Total < th.MinBucket {
		return o.DimText(text)
	}
	tone, ok := th.Assess(dimension, b)
	switch {
	case !ok:
		return text
	case tone == journal.TonePositive:
		return o.Green(text)
	}
	return o.Red(text)
}

// PlanRate colours the plan-adherence bucket green when it earns an insight.
func (o *Output) PlanRate(b journal.Bucket, th journal.Thresholds) string {
	text := FormatBucket(b)
	if b.Total > 0 && b.Rate() >= th.PlanPositive {
		return o.Green(text)
	}
	return text
}
