package models

import (
	"strings"
	"time"
)

// Outcome is the result of a logged trade.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLoss      Outcome = "loss"
	OutcomeBreakeven Outcome = "breakeven"
	OutcomePending   Outcome = "pending"
)

// Settled reports whether the outcome counts toward rates.
func (o Outcome) Settled() bool {
	return o != OutcomePending
}

// SessionPhase is one of the named intraday windows.
type SessionPhase string

const (
	SessionH1      SessionPhase = "H1"
	SessionH2      SessionPhase = "H2"
	SessionH3      SessionPhase = "H3"
	SessionH4      SessionPhase = "H4"
	SessionOutside SessionPhase = "outside"
)

// HTFZone is the higher-timeframe price zone the trade was taken in.
type HTFZone string

const (
	ZonePremium     HTFZone = "premium"
	ZoneDiscount    HTFZone = "discount"
	ZoneEquilibrium HTFZone = "equilibrium"
)

// PlanAdherence records whether the trade followed the written plan.
type PlanAdherence string

const (
	PlanYes     PlanAdherence = "yes"
	PlanPartial PlanAdherence = "partial"
	PlanNo      PlanAdherence = "no"
)

// EmotionalState is an open set: the constants below are known values,
// anything else is still a valid state.
type EmotionalState string

const (
	EmotionCalm    EmotionalState = "calm"
	EmotionFocused EmotionalState = "focused"
	EmotionAnxious EmotionalState = "anxious"
	EmotionFOMO    EmotionalState = "fomo"
	EmotionRevenge EmotionalState = "revenge"
	EmotionNeutral EmotionalState = "neutral"
)

var knownEmotions = []EmotionalState{
	EmotionCalm, EmotionFocused, EmotionAnxious, EmotionFOMO, EmotionRevenge, EmotionNeutral,
}

// Known reports whether the state is one of the predefined values.
func (e EmotionalState) Known() bool { return contains(knownEmotions, e) }

// DesirableEmotions are the states exempt from caution insights by default.
var DesirableEmotions = []EmotionalState{EmotionCalm, EmotionFocused}

// Desirable reports whether the state is a known value listed in set.
// Other values are never desirable.
func (e EmotionalState) Desirable(set []EmotionalState) bool {
	return e.Known() && contains(set, e)
}

// Pattern is the confirmation pattern label. Open set, like EmotionalState.
type Pattern string

const (
	PatternC2   Pattern = "C2"
	PatternC3   Pattern = "C3"
	PatternSMT  Pattern = "SMT"
	PatternNone Pattern = "none"
)

var knownPatterns = []Pattern{PatternC2, PatternC3, PatternSMT, PatternNone}

// Known reports whether the pattern is one of the predefined values.
func (p Pattern) Known() bool { return contains(knownPatterns, p) }

// NormalizeEmotion lower-cases and trims a free-form emotional state.
func NormalizeEmotion(s string) EmotionalState {
	return EmotionalState(strings.ToLower(strings.TrimSpace(s)))
}

// NormalizePattern maps known patterns to their canonical spelling and
// trims anything else.
func NormalizePattern(s string) Pattern {
	s = strings.TrimSpace(s)
	for _, p := range knownPatterns {
		if strings.EqualFold(string(p), s) {
			return p
		}
	}
	return Pattern(s)
}

// TradeRecord is one journal entry. Records are values and are never
// mutated after logging; a pending outcome is replaced by logging a new record.
type TradeRecord struct {
	ID               string         `json:"id"`
	LoggedAt         time.Time      `json:"logged_at"`
	Outcome          Outcome        `json:"outcome"`
	SessionPhase     SessionPhase   `json:"session_phase"`
	HTFZone          HTFZone        `json:"htf_zone"`
	EmotionalState   EmotionalState `json:"emotional_state"`
	PatternConfirmed Pattern        `json:"pattern_confirmed"`
	DisciplineScore  int            `json:"discipline_score"` // 1-5
	FollowedPlan     PlanAdherence  `json:"followed_plan"`
}
