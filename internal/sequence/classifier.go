// Package sequence classifies a completed wizard run into a trade sequence
// or a "do not trade yet" state.
package sequence

import (
	"github.com/rs/zerolog"

	"seqtrader/internal/models"
)

// Label is the classification outcome.
type Label string

const (
	LabelContinuation       Label = "continuation"
	LabelReversal           Label = "reversal"
	LabelAligned            Label = "aligned"
	LabelWaitNoConfirmation Label = "wait_no_confirmation"
	LabelWaitDoNotChase     Label = "wait_do_not_chase"
	LabelWaitWeakStructure  Label = "wait_weak_structure"
	LabelUnclear            Label = "unclear"
)

// Labels lists every label in rule order.
var Labels = []Label{
	LabelContinuation,
	LabelReversal,
	LabelAligned,
	LabelWaitNoConfirmation,
	LabelWaitDoNotChase,
	LabelWaitWeakStructure,
	LabelUnclear,
}

// Rule pairs a predicate with the label it produces.
type Rule struct {
	Name  string
	Label Label
	Match func(models.AnswerSet) bool
}

// defaultRules is evaluated top-down; the first match wins. The tradeable
// rules come first and are narrow. The wait rules are broad and overlap the
// tradeable ones, so their position must not change.
var defaultRules = []Rule{
	{
		Name:  "clean-swing-inside-open",
		Label: LabelContinuation,
		Match: func(a models.AnswerSet) bool {
			return a.PriorSwing == models.SwingClean &&
				a.Position == models.OpenInsideSwing &&
				(a.Confirmation == models.ConfirmInherited || a.Lifecycle == models.LifecycleJustOpened)
		},
	},
	{
		Name:  "fresh-reversal-at-swing",
		Label: LabelReversal,
		Match: func(a models.AnswerSet) bool {
			return (a.PriorSwing == models.SwingNone || a.Position == models.OpenNoReference) &&
				(a.Lifecycle == models.LifecycleFormingSwing || a.Lifecycle == models.LifecyclePostSwing) &&
				a.Confirmation == models.ConfirmFreshReversal
		},
	},
	{
		Name:  "retrace-realigned",
		Label: LabelAligned,
		Match: func(a models.AnswerSet) bool {
			return a.Lifecycle == models.LifecycleExpandedRetracing &&
				a.Confirmation == models.ConfirmRealigned
		},
	},
	{
		Name:  "no-confirmation",
		Label: LabelWaitNoConfirmation,
		Match: func(a models.AnswerSet) bool {
			return a.Confirmation == models.ConfirmNone || a.Confirmation == models.ConfirmForming
		},
	},
	{
		Name:  "expanded-chase",
		Label: LabelWaitDoNotChase,
		Match: func(a models.AnswerSet) bool {
			return a.Lifecycle == models.LifecycleExpanded && a.Confirmation != models.ConfirmRealigned
		},
	},
	{
		Name:  "weak-structure",
		Label: LabelWaitWeakStructure,
		Match: func(a models.AnswerSet) bool {
			return a.PriorSwing == models.SwingWeak
		},
	},
}

// FallbackRule is the name reported when no rule matched.
const FallbackRule = "fallback"

// Rules returns a copy of the default rule list in evaluation order.
// The unclear fallback is implicit and not part of the list.
func Rules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}

// Classifier evaluates an ordered rule list. It is immutable and safe for
// concurrent use.
type Classifier struct {
	rules  []Rule
	logger zerolog.Logger
}

// NewClassifier creates a classifier over the default rules.
func NewClassifier(logger zerolog.Logger) *Classifier {
	return &Classifier{
		rules:  defaultRules,
		logger: logger,
	}
}

// NewClassifierWithRules creates a classifier over a custom rule list.
func NewClassifierWithRules(rules []Rule, logger zerolog.Logger) *Classifier {
	own := make([]Rule, len(rules))
	copy(own, rules)
	return &Classifier{
		rules:  own,
		logger: logger,
	}
}

// Classify returns the label of the first matching rule, or LabelUnclear.
func (c *Classifier) Classify(answers models.AnswerSet) Label {
	label, _ := c.ClassifyTrace(answers)
	return label
}

// ClassifyTrace is Classify plus the name of the rule that fired.
func (c *Classifier) ClassifyTrace(answers models.AnswerSet) (Label, string) {
	label, rule := evaluate(c.rules, answers)
	c.logger.Debug().
		Str("event", "classification").
		Str("prior_swing", string(answers.PriorSwing)).
		Str("position", string(answers.Position)).
		Str("lifecycle", string(answers.Lifecycle)).
		Str("confirmation", string(answers.Confirmation)).
		Str("rule", rule).
		Str("label", string(label)).
		Msg("Answers classified")
	return label, rule
}

// Classify runs the default rules without logging.
func Classify(answers models.AnswerSet) Label {
	label, _ := evaluate(defaultRules, answers)
	return label
}

func evaluate(rules []Rule, answers models.AnswerSet) (Label, string) {
	for _, r := range rules {
		if r.Match(answers) {
			return r.Label, r.Name
		}
	}
	return LabelUnclear, FallbackRule
}

// AllAnswerSets enumerates every combination of the four decision fields,
// 3x3x5x5 = 225 sets, with the advisory narrative left empty.
func AllAnswerSets() []models.AnswerSet {
	sets := make([]models.AnswerSet, 0,
		len(models.PriorSwingQualities)*len(models.OpenPositions)*
			len(models.CandleLifecycles)*len(models.ConfirmationSources))
	for _, q := range models.PriorSwingQualities {
		for _, p := range models.OpenPositions {
			for _, l := range models.CandleLifecycles {
				for _, c := range models.ConfirmationSources {
					sets = append(sets, models.AnswerSet{
						PriorSwing:   q,
						Position:     p,
						Lifecycle:    l,
						Confirmation: c,
					})
				}
			}
		}
	}
	return sets
}
