// Package journal computes win-rate statistics over a trade log and turns
// them into short coaching insights.
package journal

import (
	"seqtrader/internal/models"
)

// Dimension names, in report order.
const (
	DimensionSession = "session"
	DimensionHTFZone = "htf_zone"
	DimensionEmotion = "emotional_state"
	DimensionPattern = "pattern"
)

// DimensionNames lists the aggregated dimensions in report order.
var DimensionNames = []string{DimensionSession, DimensionHTFZone, DimensionEmotion, DimensionPattern}

// Bucket is a win tally for one value of one dimension.
// Buckets in an Aggregates value always have Total > 0.
type Bucket struct {
	Key   string `json:"key"`
	Wins  int    `json:"wins"`
	Total int    `json:"total"`
}

// Rate returns Wins/Total, or 0 for an empty bucket.
func (b Bucket) Rate() float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Wins) / float64(b.Total)
}

// Dimension holds the buckets of one dimension in first-seen order.
type Dimension struct {
	Name    string   `json:"name"`
	Buckets []Bucket `json:"buckets"`
}

// Bucket looks up a bucket by key.
func (d Dimension) Bucket(key string) (Bucket, bool) {
	for _, b := range d.Buckets {
		if b.Key == key {
			return b, true
		}
	}
	return Bucket{}, false
}

// Totals are overall counts. Settled excludes pending records.
type Totals struct {
	Records    int `json:"records"`
	Settled    int `json:"settled"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Breakevens int `json:"breakevens"`
	Pending    int `json:"pending"`
}

// WinRate returns Wins/Settled; ok is false when nothing has settled.
func (t Totals) WinRate() (float64, bool) {
	if t.Settled == 0 {
		return 0, false
	}
	return float64(t.Wins) / float64(t.Settled), true
}

// Aggregates is everything derived from one trade log.
type Aggregates struct {
	Totals     Totals      `json:"totals"`
	Dimensions []Dimension `json:"dimensions"`
	// PlanAdherence is nil when no settled record followed the plan.
	PlanAdherence     *Bucket `json:"plan_adherence,omitempty"`
	AverageDiscipline float64 `json:"average_discipline"`
	DisciplineSamples int     `json:"discipline_samples"`
}

// Dimension looks up a dimension by name.
func (a Aggregates) Dimension(name string) (Dimension, bool) {
	for _, d := range a.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// Discipline returns the mean discipline score over all records, pending
// included; ok is false for an empty log.
func (a Aggregates) Discipline() (float64, bool) {
	if a.DisciplineSamples == 0 {
		return 0, false
	}
	return a.AverageDiscipline, true
}

// tally accumulates buckets in first-seen key order.
type tally struct {
	index map[string]int
	rows  []Bucket
}

func newTally() *tally {
	return &tally{index: make(map[string]int)}
}

func (t *tally) add(key string, win bool) {
	i, ok := t.index[key]
	if !ok {
		i = len(t.rows)
		t.index[key] = i
		t.rows = append(t.rows, Bucket{Key: key})
	}
	t.rows[i].Total++
	if win {
		t.rows[i].Wins++
	}
}

func (t *tally) buckets() []Bucket {
	out := make([]Bucket, 0, len(t.rows))
	for _, b := range t.rows {
		if b.Total > 0 {
			out = append(out, b)
		}
	}
	return out
}

// Aggregate computes all statistics for records. It keeps no state between
// calls and does not modify records.
func Aggregate(records []models.TradeRecord) Aggregates {
	var (
		totals     Totals
		plan       Bucket
		discipline int
	)

	dims := map[string]*tally{
		DimensionSession: newTally(),
		DimensionHTFZone: newTally(),
		DimensionEmotion: newTally(),
		DimensionPattern: newTally(),
	}

	for _, r := range records {
		totals.Records++
		discipline += r.DisciplineScore

		if !r.Outcome.Settled() {
			totals.Pending++
			continue
		}

		win := r.Outcome == models.OutcomeWin
		totals.Settled++
		switch r.Outcome {
		case models.OutcomeWin:
			totals.Wins++
		case models.OutcomeLoss:
			totals.Losses++
		case models.OutcomeBreakeven:
			totals.Breakevens++
		}

		dims[DimensionSession].add(string(r.SessionPhase), win)
		dims[DimensionHTFZone].add(string(r.HTFZone), win)
		dims[DimensionEmotion].add(string(r.EmotionalState), win)
		dims[DimensionPattern].add(string(r.PatternConfirmed), win)

		if r.FollowedPlan == models.PlanYes {
			plan.Total++
			if win {
				plan.Wins++
			}
		}
	}

	agg := Aggregates{
		Totals:     totals,
		Dimensions: make([]Dimension, 0, len(DimensionNames)),
	}
	for _, name := range DimensionNames {
		agg.Dimensions = append(agg.Dimensions, Dimension{
			Name:    name,
			Buckets: dims[name].buckets(),
		})
	}

	if plan.Total > 0 {
		plan.Key = string(models.PlanYes)
		agg.PlanAdherence = &plan
	}

	if totals.Records > 0 {
		agg.DisciplineSamples = totals.Records
		agg.AverageDiscipline = float64(discipline) / float64(totals.Records)
	}

	return agg
}
