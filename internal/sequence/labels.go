package sequence

// Description is the display text a wizard shows for a label.
type Description struct {
	Label     Label  `json:"label"`
	Title     string `json:"title"`
	Tradeable bool   `json:"tradeable"`
	Summary   string `json:"summary"`
}

var descriptions = map[Label]Description{
	LabelContinuation: {
		Title:     "Continuation Sequence",
		Tradeable: true,
		Summary:   "Price opened inside a clean prior swing and confirmation carries over. Trade in the direction of the existing swing.",
	},
	LabelReversal: {
		Title:     "Reversal Sequence",
		Tradeable: true,
		Summary:   "No usable reference swing and a fresh reversal is printing at the swing. Trade the new direction once confirmed.",
	},
	LabelAligned: {
		Title:     "Aligned Sequence",
		Tradeable: true,
		Summary:   "The candle expanded and is retracing, and the lower timeframe has realigned with it. Trade the pullback in the expansion direction.",
	},
	LabelWaitNoConfirmation: {
		Title:   "Wait: No Confirmation",
		Summary: "There is no confirmation yet, or it is still forming. Wait for it to complete before acting.",
	},
	LabelWaitDoNotChase: {
		Title:   "Wait: Do Not Chase",
		Summary: "The candle has already expanded. Entering now means chasing; wait for a retracement that realigns.",
	},
	LabelWaitWeakStructure: {
		Title:   "Wait: Weak Structure",
		Summary: "The prior swing is weak. Let structure develop before committing to a sequence.",
	},
	LabelUnclear: {
		Title:   "Unclear",
		Summary: "The answers do not describe a recognised sequence. Stand aside and reassess on the next candle.",
	},
}

// Describe returns the display text for a label. Unknown labels describe as unclear.
func Describe(label Label) Description {
	d, ok := descriptions[label]
	if !ok {
		d = descriptions[LabelUnclear]
		label = LabelUnclear
	}
	d.Label = label
	return d
}

// Tradeable reports whether the label names a sequence that can be traded now.
func (l Label) Tradeable() bool {
	return Describe(l).Tradeable
}
