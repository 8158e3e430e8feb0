// Package models provides the fact model shared by the sequence classifier
// and the journal analytics engine.
package models

import (
	"strings"

	apperrors "seqtrader/internal/errors"
)

// PriorSwingQuality describes the structure left by the previous candle's swing.
type PriorSwingQuality string

const (
	SwingClean PriorSwingQuality = "clean"
	SwingWeak  PriorSwingQuality = "weak"
	SwingNone  PriorSwingQuality = "none"
)

// OpenPosition describes where the current candle opened relative to that swing.
type OpenPosition string

const (
	OpenInsideSwing   OpenPosition = "insideSwing"
	OpenAwayFromSwing OpenPosition = "awayFromSwing"
	OpenNoReference   OpenPosition = "noReference"
)

// CandleLifecycle is the current stage of the active higher-timeframe candle.
type CandleLifecycle string

const (
	LifecycleJustOpened        CandleLifecycle = "justOpened"
	LifecycleFormingSwing      CandleLifecycle = "formingSwing"
	LifecyclePostSwing         CandleLifecycle = "postSwing"
	LifecycleExpanded          CandleLifecycle = "expanded"
	LifecycleExpandedRetracing CandleLifecycle = "expandedRetracing"
)

// ConfirmationSource is where the lower-timeframe confirmation comes from.
type ConfirmationSource string

const (
	ConfirmFreshReversal ConfirmationSource = "freshReversal"
	ConfirmInherited     ConfirmationSource = "inherited"
	ConfirmRealigned     ConfirmationSource = "realigned"
	ConfirmForming       ConfirmationSource = "forming"
	ConfirmNone          ConfirmationSource = "none"
)

// HTFNarrative is the higher-timeframe story. Advisory only.
type HTFNarrative string

const (
	NarrativeBullish HTFNarrative = "bullish"
	NarrativeBearish HTFNarrative = "bearish"
	NarrativeRanging HTFNarrative = "ranging"
	NarrativeUnclear HTFNarrative = "unclear"
)

// Enumerations in wizard question order.
var (
	PriorSwingQualities = []PriorSwingQuality{SwingClean, SwingWeak, SwingNone}
	OpenPositions       = []OpenPosition{OpenInsideSwing, OpenAwayFromSwing, OpenNoReference}
	CandleLifecycles    = []CandleLifecycle{
		LifecycleJustOpened, LifecycleFormingSwing, LifecyclePostSwing,
		LifecycleExpanded, LifecycleExpandedRetracing,
	}
	ConfirmationSources = []ConfirmationSource{
		ConfirmFreshReversal, ConfirmInherited, ConfirmRealigned,
		ConfirmForming, ConfirmNone,
	}
	HTFNarratives = []HTFNarrative{NarrativeBullish, NarrativeBearish, NarrativeRanging, NarrativeUnclear}
)

// AnswerSet holds one wizard run: five answers in question order.
// The wizard guarantees every decision field is populated before classification.
type AnswerSet struct {
	PriorSwing   PriorSwingQuality  `json:"prior_swing_quality"`
	Position     OpenPosition       `json:"current_open_position"`
	Lifecycle    CandleLifecycle    `json:"candle_lifecycle_state"`
	Confirmation ConfirmationSource `json:"confirmation_source"`
	Narrative    HTFNarrative       `json:"htf_narrative,omitempty"`
}

// Valid reports whether every decision field holds a known value.
// The narrative is optional.
func (a AnswerSet) Valid() bool {
	return a.PriorSwing.Valid() && a.Position.Valid() && a.Lifecycle.Valid() &&
		a.Confirmation.Valid() && (a.Narrative == "" || a.Narrative.Valid())
}

func (q PriorSwingQuality) Valid() bool  { return contains(PriorSwingQualities, q) }
func (p OpenPosition) Valid() bool       { return contains(OpenPositions, p) }
func (c CandleLifecycle) Valid() bool    { return contains(CandleLifecycles, c) }
func (c ConfirmationSource) Valid() bool { return contains(ConfirmationSources, c) }
func (n HTFNarrative) Valid() bool       { return contains(HTFNarratives, n) }

// ParsePriorSwingQuality parses a wizard answer, case-insensitively.
func ParsePriorSwingQuality(s string) (PriorSwingQuality, error) {
	return parseAnswer("prior_swing_quality", s, PriorSwingQualities)
}

// ParseOpenPosition parses a wizard answer, case-insensitively.
func ParseOpenPosition(s string) (OpenPosition, error) {
	return parseAnswer("current_open_position", s, OpenPositions)
}

// ParseCandleLifecycle parses a wizard answer, case-insensitively.
func ParseCandleLifecycle(s string) (CandleLifecycle, error) {
	return parseAnswer("candle_lifecycle_state", s, CandleLifecycles)
}

// ParseConfirmationSource parses a wizard answer, case-insensitively.
func ParseConfirmationSource(s string) (ConfirmationSource, error) {
	return parseAnswer("confirmation_source", s, ConfirmationSources)
}

// ParseHTFNarrative parses the advisory answer. Empty input is allowed.
func ParseHTFNarrative(s string) (HTFNarrative, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return parseAnswer("htf_narrative", s, HTFNarratives)
}

func parseAnswer[T ~string](field, s string, allowed []T) (T, error) {
	s = strings.TrimSpace(s)
	for _, v := range allowed {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	var zero T
	return zero, apperrors.NewAnswerError(field, s, "must be one of "+join(allowed))
}

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
