package journal

import (
	"fmt"

	"github.com/rs/zerolog"

	"seqtrader/internal/models"
	"seqtrader/pkg/utils"
)

// Tone says whether an insight encourages or warns.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneCaution  Tone = "caution"
)

// Insight categories. Dimension insights reuse the dimension names.
const (
	CategoryDiscipline = "discipline"
	CategoryPlan       = "plan"
)

// Insight is one generated observation.
type Insight struct {
	Category string `json:"category"`
	Tone     Tone   `json:"tone"`
	Text     string `json:"text"`
}

// Thresholds gate insight generation. Rates are 0-1 ratios, inclusive.
type Thresholds struct {
	MinSettled       int
	MinBucket        int
	Positive         float64
	Caution          float64
	EmotionCaution   float64
	StrongDiscipline float64
	WeakDiscipline   float64
	PlanPositive     float64
	// Desirable emotional states never receive a caution insight.
	Desirable []models.EmotionalState
}

// DefaultThresholds returns the standard gates.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinSettled:       3,
		MinBucket:        2,
		Positive:         0.70,
		Caution:          0.40,
		EmotionCaution:   0.35,
		StrongDiscipline: 4.0,
		WeakDiscipline:   2.5,
		PlanPositive:     0.70,
		Desirable:        append([]models.EmotionalState(nil), models.DesirableEmotions...),
	}
}

// IsDesirable reports whether an emotional-state bucket key is exempt from
// caution insights.
func (t Thresholds) IsDesirable(key string) bool {
	return models.EmotionalState(key).Desirable(t.Desirable)
}

// Generator turns aggregates into insights. It is immutable and safe for
// concurrent use.
type Generator struct {
	thresholds Thresholds
	logger     zerolog.Logger
}

// NewGenerator creates a generator with the given thresholds.
func NewGenerator(thresholds Thresholds, logger zerolog.Logger) *Generator {
	return &Generator{
		thresholds: thresholds,
		logger:     logger,
	}
}

// GenerateInsights returns insight texts using the default thresholds.
func GenerateInsights(agg Aggregates, recordCount int) []string {
	return Texts(NewGenerator(DefaultThresholds(), zerolog.Nop()).Generate(agg, recordCount))
}

// Texts extracts the text of each insight, preserving order.
func Texts(insights []Insight) []string {
	out := make([]string, len(insights))
	for i, in := range insights {
		out[i] = in.Text
	}
	return out
}

// Generate returns insights in a fixed order: session, zone and emotional
// state buckets (each in first-seen order), then discipline and plan
// adherence. It returns an empty slice below the sample floor.
func (g *Generator) Generate(agg Aggregates, recordCount int) []Insight {
	t := g.thresholds
	insights := []Insight{}

	if agg.Totals.Settled < t.MinSettled || recordCount < t.MinSettled {
		g.logger.Debug().
			Int("settled", agg.Totals.Settled).
			Int("records", recordCount).
			Int("min_settled", t.MinSettled).
			Msg("Too few settled trades for insights")
		return insights
	}

	for _, name := range []string{DimensionSession, DimensionHTFZone, DimensionEmotion} {
		dim, ok := agg.Dimension(name)
		if !ok {
			continue
		}
		for _, b := range dim.Buckets {
			if in, ok := g.bucketInsight(name, b); ok {
				insights = append(insights, in)
			}
		}
	}

	if avg, ok := agg.Discipline(); ok {
		if avg >= t.StrongDiscipline {
			insights = append(insights, Insight{
				Category: CategoryDiscipline,
				Tone:     TonePositive,
				Text:     fmt.Sprintf("Strong discipline: your average score is %s.", utils.FormatScore(avg, 5)),
			})
		}
		if avg <= t.WeakDiscipline {
			insights = append(insights, Insight{
				Category: CategoryDiscipline,
				Tone:     ToneCaution,
				Text:     fmt.Sprintf("Discipline is slipping: your average score is %s. Review your rules before the next trade.", utils.FormatScore(avg, 5)),
			})
		}
	}

	if p := agg.PlanAdherence; p != nil && p.Total > 0 && p.Rate() >= t.PlanPositive {
		insights = append(insights, Insight{
			Category: CategoryPlan,
			Tone:     TonePositive,
			Text: fmt.Sprintf("Plan adherence pays off: you win %s of trades when you follow your plan (%s).",
				utils.FormatRate(p.Rate()), utils.Pluralize(p.Total, "trade")),
		})
	}

	g.logger.Debug().
		Int("settled", agg.Totals.Settled).
		Int("insights", len(insights)).
		Msg("Insights generated")

	return insights
}

// Assess returns the tone a bucket of the given dimension earns. Buckets
// below MinBucket, pattern buckets and desirable emotional states in the
// caution band earn none.
func (t Thresholds) Assess(dimension string, b Bucket) (Tone, bool) {
	switch dimension {
	case DimensionSession, DimensionHTFZone, DimensionEmotion:
	default:
		return "", false
	}
	if b.Total < t.MinBucket {
		return "", false
	}

	rate := b.Rate()
	if rate >= t.Positive {
		return TonePositive, true
	}

	limit := t.Caution
	if dimension == DimensionEmotion {
		if t.IsDesirable(b.Key) {
			return "", false
		}
		limit = t.EmotionCaution
	}
	if rate <= limit {
		return ToneCaution, true
	}
	return "", false
}

func (g *Generator) bucketInsight(dimension string, b Bucket) (Insight, bool) {
	tone, ok := g.thresholds.Assess(dimension, b)
	if !ok {
		return Insight{}, false
	}

	pct := utils.FormatRate(b.Rate())
	n := utils.Pluralize(b.Total, "trade")

	var text string
	switch {
	case tone == TonePositive && dimension == DimensionSession:
		text = fmt.Sprintf("Session %s is working: you win %s of trades there (%s).", b.Key, pct, n)
	case tone == TonePositive && dimension == DimensionHTFZone:
		text = fmt.Sprintf("Trades in the %s zone win %s of the time (%s).", b.Key, pct, n)
	case tone == TonePositive:
		text = fmt.Sprintf("Trading while %s wins %s of the time (%s).", b.Key, pct, n)
	case dimension == DimensionSession:
		text = fmt.Sprintf("Session %s is costing you: only %s of trades there win (%s). Consider sitting it out.", b.Key, pct, n)
	case dimension == DimensionHTFZone:
		text = fmt.Sprintf("Trades in the %s zone win only %s (%s). Be pickier about zone selection.", b.Key, pct, n)
	default:
		text = fmt.Sprintf("Trading while %s wins only %s (%s). Step away when you notice it.", b.Key, pct, n)
	}
	return Insight{Category: dimension, Tone: tone, Text: text}, true
}
