package cli

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"seqtrader/internal/journal"
)

// bucketGen generates non-empty buckets with 0 <= Wins <= Total.
func bucketGen() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 500),
		gen.Float64Range(0, 1),
	).Map(func(vals []interface{}) journal.Bucket {
		total := vals[0].(int)
		wins := int(vals[1].(float64) * float64(total))
		return journal.Bucket{Key: "k", Wins: wins, Total: total}
	})
}

func TestProperty_FormatBucket(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("shows wins over total", prop.ForAll(
		func(b journal.Bucket) bool {
			return strings.HasSuffix(FormatBucket(b), fmt.Sprintf("(%d/%d)", b.Wins, b.Total))
		},
		bucketGen(),
	))

	properties.Property("percentage is a whole number between 0 and 100", prop.ForAll(
		func(b journal.Bucket) bool {
			pct := strings.SplitN(FormatBucket(b), "%", 2)[0]
			n, err := strconv.Atoi(pct)
			return err == nil && n >= 0 && n <= 100
		},
		bucketGen(),
	))

	properties.Property("all wins reads 100%", prop.ForAll(
		func(total int) bool {
			return strings.HasPrefix(FormatBucket(journal.Bucket{Wins: total, Total: total}), "100% ")
		},
		gen.IntRange(1, 1000),
	))

	properties.TestingRun(t)
}

func TestProperty_StripANSI(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	colored := &Output{colorEnabled: true}

	properties.Property("painted text strips back to the original", prop.ForAll(
		func(s string) bool {
			painted := colored.paint(s, color.FgGreen, color.Bold)
			return stripANSI(painted) == s && visibleLen(painted) == visibleLen(s)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatBucket(journal.Bucket{}); got != "-" {
		t.Errorf("empty bucket: got %q", got)
	}
	if got := FormatWinRate(journal.Totals{}); got != "-" {
		t.Errorf("no settled trades: got %q", got)
	}
	if got := FormatWinRate(journal.Totals{Settled: 3, Wins: 2}); got != "67% (2/3)" {
		t.Errorf("win rate: got %q", got)
	}
	if got := FormatDiscipline(journal.Aggregates{AverageDiscipline: 4.25, DisciplineSamples: 4}); got != "4.2/5" && got != "4.3/5" {
		t.Errorf("discipline: got %q", got)
	}
	if got := FormatDimensionName(journal.DimensionHTFZone); got != "HTF Zone" {
		t.Errorf("dimension name: got %q", got)
	}
}
