package journal

import (
	"fmt"

	"seqtrader/internal/models"
)

// rec builds a settled-or-pending record with neutral defaults for the
// fields a test does not care about.
func rec(outcome models.Outcome, session models.SessionPhase) models.TradeRecord {
	return models.TradeRecord{
		Outcome:          outcome,
		SessionPhase:     session,
		HTFZone:          models.ZoneEquilibrium,
		EmotionalState:   models.EmotionNeutral,
		PatternConfirmed: models.PatternNone,
		DisciplineScore:  3,
		FollowedPlan:     models.PlanPartial,
	}
}

type recOpt func(*models.TradeRecord)

func withZone(z models.HTFZone) recOpt {
	return func(r *models.TradeRecord) { r.HTFZone = z }
}

func withEmotion(e string) recOpt {
	return func(r *models.TradeRecord) { r.EmotionalState = models.EmotionalState(e) }
}

func withPattern(p string) recOpt {
	return func(r *models.TradeRecord) { r.PatternConfirmed = models.Pattern(p) }
}

func withDiscipline(d int) recOpt {
	return func(r *models.TradeRecord) { r.DisciplineScore = d }
}

func withPlan(p models.PlanAdherence) recOpt {
	return func(r *models.TradeRecord) { r.FollowedPlan = p }
}

func build(outcome models.Outcome, session models.SessionPhase, opts ...recOpt) models.TradeRecord {
	r := rec(outcome, session)
	for _, o := range opts {
		o(&r)
	}
	return r
}

// sampleJournal is a mixed log used by several tests.
func sampleJournal() []models.TradeRecord {
	records := []models.TradeRecord{
		build(models.OutcomeWin, models.SessionH2, withZone(models.ZoneDiscount), withEmotion("calm"), withPattern("C2"), withDiscipline(5), withPlan(models.PlanYes)),
		build(models.OutcomeWin, models.SessionH2, withZone(models.ZoneDiscount), withEmotion("calm"), withPattern("C3"), withDiscipline(4), withPlan(models.PlanYes)),
		build(models.OutcomeLoss, models.SessionH3, withZone(models.ZonePremium), withEmotion("fomo"), withPattern("none"), withDiscipline(2), withPlan(models.PlanNo)),
		build(models.OutcomeLoss, models.SessionH3, withZone(models.ZonePremium), withEmotion("fomo"), withPattern("SMT"), withDiscipline(2), withPlan(models.PlanNo)),
		build(models.OutcomeWin, models.SessionH2, withZone(models.ZoneDiscount), withEmotion("focused"), withPattern("C2"), withDiscipline(5), withPlan(models.PlanYes)),
		build(models.OutcomePending, models.SessionH4, withZone(models.ZoneEquilibrium), withEmotion("bored"), withPattern("C2"), withDiscipline(3), withPlan(models.PlanYes)),
	}
	for i := range records {
		records[i].ID = fmt.Sprintf("T%03d", i+1)
	}
	return records
}
