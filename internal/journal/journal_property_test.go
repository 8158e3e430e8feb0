package journal

import (
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"seqtrader/internal/models"
)

var (
	outcomes  = []models.Outcome{models.OutcomeWin, models.OutcomeLoss, models.OutcomeBreakeven, models.OutcomePending}
	sessions  = []models.SessionPhase{models.SessionH1, models.SessionH2, models.SessionH3, models.SessionH4, models.SessionOutside}
	zones     = []models.HTFZone{models.ZonePremium, models.ZoneDiscount, models.ZoneEquilibrium}
	emotions  = []string{"calm", "focused", "anxious", "fomo", "revenge", "neutral", "bored"}
	patterns  = []string{"C2", "C3", "SMT", "none", "CISD"}
	adherence = []models.PlanAdherence{models.PlanYes, models.PlanPartial, models.PlanNo}
)

// recordGen generates trade records with a mix of known and novel open values.
func recordGen() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, len(outcomes)-1),
		gen.IntRange(0, len(sessions)-1),
		gen.IntRange(0, len(zones)-1),
		gen.IntRange(0, len(emotions)-1),
		gen.IntRange(0, len(patterns)-1),
		gen.IntRange(1, 5),
		gen.IntRange(0, len(adherence)-1),
	).Map(func(v []interface{}) models.TradeRecord {
		return models.TradeRecord{
			Outcome:          outcomes[v[0].(int)],
			SessionPhase:     sessions[v[1].(int)],
			HTFZone:          zones[v[2].(int)],
			EmotionalState:   models.EmotionalState(emotions[v[3].(int)]),
			PatternConfirmed: models.Pattern(patterns[v[4].(int)]),
			DisciplineScore:  v[5].(int),
			FollowedPlan:     adherence[v[6].(int)],
		}
	})
}

func TestProperty_AggregateInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("every bucket has 0 <= wins <= total and total > 0", prop.ForAll(
		func(records []models.TradeRecord) bool {
			agg := Aggregate(records)
			for _, d := range agg.Dimensions {
				for _, b := range d.Buckets {
					if b.Total <= 0 || b.Wins < 0 || b.Wins > b.Total {
						return false
					}
				}
			}
			if p := agg.PlanAdherence; p != nil && (p.Total <= 0 || p.Wins > p.Total) {
				return false
			}
			return true
		},
		gen.SliceOf(recordGen()),
	))

	properties.Property("each dimension partitions the settled records", prop.ForAll(
		func(records []models.TradeRecord) bool {
			agg := Aggregate(records)
			for _, d := range agg.Dimensions {
				var wins, total int
				for _, b := range d.Buckets {
					wins += b.Wins
					total += b.Total
				}
				if total != agg.Totals.Settled || wins != agg.Totals.Wins {
					return false
				}
			}
			return agg.Totals.Settled+agg.Totals.Pending == len(records)
		},
		gen.SliceOf(recordGen()),
	))

	properties.Property("bucket keys are unique per dimension", prop.ForAll(
		func(records []models.TradeRecord) bool {
			for _, d := range Aggregate(records).Dimensions {
				seen := make(map[string]bool)
				for _, b := range d.Buckets {
					if seen[b.Key] {
						return false
					}
					seen[b.Key] = true
				}
			}
			return true
		},
		gen.SliceOf(recordGen()),
	))

	properties.Property("aggregate and insights are idempotent", prop.ForAll(
		func(records []models.TradeRecord) bool {
			a1 := Aggregate(records)
			a2 := Aggregate(records)
			if !reflect.DeepEqual(a1, a2) {
				return false
			}
			return reflect.DeepEqual(GenerateInsights(a1, len(records)), GenerateInsights(a2, len(records)))
		},
		gen.SliceOf(recordGen()),
	))

	properties.Property("no insights below three settled records", prop.ForAll(
		func(records []models.TradeRecord) bool {
			agg := Aggregate(records)
			if agg.Totals.Settled >= 3 {
				return true
			}
			return len(GenerateInsights(agg, len(records))) == 0
		},
		gen.SliceOfN(4, recordGen()),
	))

	properties.TestingRun(t)
}
