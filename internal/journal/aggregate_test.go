package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seqtrader/internal/models"
)

func TestAggregate_PendingExcludedFromBucket(t *testing.T) {
	records := []models.TradeRecord{
		rec(models.OutcomeWin, models.SessionH2),
		rec(models.OutcomeLoss, models.SessionH2),
		rec(models.OutcomePending, models.SessionH2),
	}

	agg := Aggregate(records)

	session, ok := agg.Dimension(DimensionSession)
	require.True(t, ok)
	h2, ok := session.Bucket("H2")
	require.True(t, ok)
	assert.Equal(t, 1, h2.Wins)
	assert.Equal(t, 2, h2.Total)
	assert.InDelta(t, 0.50, h2.Rate(), 1e-9)

	assert.Equal(t, 3, agg.Totals.Records)
	assert.Equal(t, 2, agg.Totals.Settled)
	assert.Equal(t, 1, agg.Totals.Pending)
}

func TestAggregate_PendingOnlyValueHasNoBucket(t *testing.T) {
	records := []models.TradeRecord{
		rec(models.OutcomeWin, models.SessionH1),
		rec(models.OutcomePending, models.SessionH4),
		rec(models.OutcomePending, models.SessionH4),
	}

	agg := Aggregate(records)
	session, _ := agg.Dimension(DimensionSession)

	_, ok := session.Bucket("H4")
	assert.False(t, ok)
	require.Len(t, session.Buckets, 1)
	assert.Equal(t, "H1", session.Buckets[0].Key)

	for _, d := range agg.Dimensions {
		for _, b := range d.Buckets {
			assert.Positive(t, b.Total, "%s/%s", d.Name, b.Key)
		}
	}
}

func TestAggregate_SampleJournal(t *testing.T) {
	agg := Aggregate(sampleJournal())

	assert.Equal(t, Totals{Records: 6, Settled: 5, Wins: 3, Losses: 2, Pending: 1}, agg.Totals)
	rate, ok := agg.Totals.WinRate()
	require.True(t, ok)
	assert.InDelta(t, 0.6, rate, 1e-9)

	want := map[string][]Bucket{
		DimensionSession: {{Key: "H2", Wins: 3, Total: 3}, {Key: "H3", Wins: 0, Total: 2}},
		DimensionHTFZone: {{Key: "discount", Wins: 3, Total: 3}, {Key: "premium", Wins: 0, Total: 2}},
		DimensionEmotion: {{Key: "calm", Wins: 2, Total: 2}, {Key: "fomo", Wins: 0, Total: 2}, {Key: "focused", Wins: 1, Total: 1}},
		DimensionPattern: {{Key: "C2", Wins: 2, Total: 2}, {Key: "C3", Wins: 1, Total: 1}, {Key: "none", Wins: 0, Total: 1}, {Key: "SMT", Wins: 0, Total: 1}},
	}

	require.Len(t, agg.Dimensions, len(DimensionNames))
	for i, name := range DimensionNames {
		assert.Equal(t, name, agg.Dimensions[i].Name)
		assert.Equal(t, want[name], agg.Dimensions[i].Buckets, name)
	}

	require.NotNil(t, agg.PlanAdherence)
	assert.Equal(t, 3, agg.PlanAdherence.Wins)
	assert.Equal(t, 3, agg.PlanAdherence.Total)

	avg, ok := agg.Discipline()
	require.True(t, ok)
	assert.InDelta(t, 3.5, avg, 1e-9)
	assert.Equal(t, 6, agg.DisciplineSamples)
}

func TestAggregate_NovelValuesGetOwnBucket(t *testing.T) {
	records := []models.TradeRecord{
		build(models.OutcomeWin, models.SessionH1, withEmotion("euphoric"), withPattern("CISD")),
		build(models.OutcomeLoss, models.SessionH1, withEmotion("euphoric"), withPattern("CISD")),
	}

	agg := Aggregate(records)

	emotion, _ := agg.Dimension(DimensionEmotion)
	b, ok := emotion.Bucket("euphoric")
	require.True(t, ok)
	assert.Equal(t, Bucket{Key: "euphoric", Wins: 1, Total: 2}, b)

	pattern, _ := agg.Dimension(DimensionPattern)
	_, ok = pattern.Bucket("CISD")
	assert.True(t, ok)
}

func TestAggregate_BreakevenCountsAsSettledNotWin(t *testing.T) {
	records := []models.TradeRecord{
		rec(models.OutcomeBreakeven, models.SessionH1),
		rec(models.OutcomeWin, models.SessionH1),
	}

	agg := Aggregate(records)
	assert.Equal(t, 2, agg.Totals.Settled)
	assert.Equal(t, 1, agg.Totals.Breakevens)

	session, _ := agg.Dimension(DimensionSession)
	b, _ := session.Bucket("H1")
	assert.Equal(t, Bucket{Key: "H1", Wins: 1, Total: 2}, b)
}

func TestAggregate_PlanAdherenceOmitted(t *testing.T) {
	t.Run("no followed-plan records", func(t *testing.T) {
		agg := Aggregate([]models.TradeRecord{
			build(models.OutcomeWin, models.SessionH1, withPlan(models.PlanNo)),
			build(models.OutcomeLoss, models.SessionH1, withPlan(models.PlanPartial)),
		})
		assert.Nil(t, agg.PlanAdherence)
	})

	t.Run("followed-plan records all pending", func(t *testing.T) {
		agg := Aggregate([]models.TradeRecord{
			build(models.OutcomePending, models.SessionH1, withPlan(models.PlanYes)),
			build(models.OutcomeWin, models.SessionH1, withPlan(models.PlanNo)),
		})
		assert.Nil(t, agg.PlanAdherence)
	})
}

func TestAggregate_DisciplineIncludesPending(t *testing.T) {
	agg := Aggregate([]models.TradeRecord{
		build(models.OutcomeWin, models.SessionH1, withDiscipline(5)),
		build(models.OutcomePending, models.SessionH1, withDiscipline(1)),
	})

	avg, ok := agg.Discipline()
	require.True(t, ok)
	assert.InDelta(t, 3.0, avg, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)

	_, ok := agg.Totals.WinRate()
	assert.False(t, ok)
	_, ok = agg.Discipline()
	assert.False(t, ok)
	assert.Nil(t, agg.PlanAdherence)
	require.Len(t, agg.Dimensions, len(DimensionNames))
	for _, d := range agg.Dimensions {
		assert.Empty(t, d.Buckets)
	}
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	records := sampleJournal()
	before := make([]models.TradeRecord, len(records))
	copy(before, records)

	Aggregate(records)
	assert.Equal(t, before, records)
}
