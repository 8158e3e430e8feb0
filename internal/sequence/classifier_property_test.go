package sequence

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"seqtrader/internal/models"
)

// answerSetGen draws one value per question, including the advisory narrative.
func answerSetGen() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, len(models.PriorSwingQualities)-1),
		gen.IntRange(0, len(models.OpenPositions)-1),
		gen.IntRange(0, len(models.CandleLifecycles)-1),
		gen.IntRange(0, len(models.ConfirmationSources)-1),
		gen.IntRange(0, len(models.HTFNarratives)-1),
	).Map(func(v []interface{}) models.AnswerSet {
		return models.AnswerSet{
			PriorSwing:   models.PriorSwingQualities[v[0].(int)],
			Position:     models.OpenPositions[v[1].(int)],
			Lifecycle:    models.CandleLifecycles[v[2].(int)],
			Confirmation: models.ConfirmationSources[v[3].(int)],
			Narrative:    models.HTFNarratives[v[4].(int)],
		}
	})
}

func isKnownLabel(l Label) bool {
	for _, known := range Labels {
		if l == known {
			return true
		}
	}
	return false
}

// Property: every combination of the four decision fields maps to exactly
// one label from the closed set.
func TestProperty_ClassificationIsTotal(t *testing.T) {
	for _, s := range AllAnswerSets() {
		var label Label
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Classify panicked for %+v: %v", s, r)
				}
			}()
			label = Classify(s)
		}()
		if !isKnownLabel(label) {
			t.Errorf("Classify(%+v) = %q, not a known label", s, label)
		}
	}
}

// Property: the produced label is always the label of the first rule whose
// predicate matches, and later matching rules never override it.
func TestProperty_FirstMatchWins(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("label equals first matching rule", prop.ForAll(
		func(a models.AnswerSet) bool {
			want := LabelUnclear
			for _, r := range Rules() {
				if r.Match(a) {
					want = r.Label
					break
				}
			}
			return Classify(a) == want
		},
		answerSetGen(),
	))

	properties.Property("classification is deterministic", prop.ForAll(
		func(a models.AnswerSet) bool {
			first := Classify(a)
			for i := 0; i < 5; i++ {
				if Classify(a) != first {
					return false
				}
			}
			return true
		},
		answerSetGen(),
	))

	properties.Property("narrative never changes the label", prop.ForAll(
		func(a models.AnswerSet) bool {
			without := a
			without.Narrative = ""
			return Classify(a) == Classify(without)
		},
		answerSetGen(),
	))

	properties.Property("tradeable labels only come from tradeable rules", prop.ForAll(
		func(a models.AnswerSet) bool {
			label, rule := NewClassifier(zerolog.Nop()).ClassifyTrace(a)
			if !label.Tradeable() {
				return true
			}
			for _, r := range Rules()[:3] {
				if r.Name == rule {
					return true
				}
			}
			return false
		},
		answerSetGen(),
	))

	properties.TestingRun(t)
}
