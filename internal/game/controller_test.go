package game

import (
	"errors"
	"testing"
	"time"
)

type recordingSaver struct {
	saves []Record
	err   error
}

func (s *recordingSaver) Save(r Record) error {
	if s.err != nil {
		return s.err
	}
	s.saves = append(s.saves, r)
	return nil
}

func newTestController(rec Record, saver Saver) *Controller {
	clock := NewFakeClock(testNow)
	return NewController(rec, saver, clock, testRNG(7), nil)
}

// answerRound answers every question in the current round, always correctly
// or always wrongly, driving the delayed advance by hand.
func answerRound(t *testing.T, c *Controller, correctly bool) {
	t.Helper()
	_, total := c.RoundProgress()
	for i := 0; i < total; i++ {
		q, ok := c.Question()
		if !ok {
			t.Fatalf("no question at step %d", i)
		}
		selected := q.Answer
		if !correctly {
			for _, opt := range q.Options {
				if opt != q.Answer {
					selected = opt
					break
				}
			}
		}
		fb, ok := c.SubmitAnswer(selected)
		if !ok {
			t.Fatalf("submit rejected at step %d", i)
		}
		if fb.Correct != correctly {
			t.Fatalf("feedback correct=%v want %v", fb.Correct, correctly)
		}
		if !c.AdvanceRound(fb.Token) {
			t.Fatalf("advance rejected at step %d", i)
		}
	}
}

func TestControllerFirstGradeScenario(t *testing.T) {
	// Ten straight correct answers on grade 1: +100 education from answers,
	// +50 from the grade bonus, 100 HC, 50 rubles, one year older.
	c := newTestController(NewRecord(), &recordingSaver{})
	c.StartGame()
	answerRound(t, c, true)

	rec, phase := c.Snapshot()
	if phase != PhasePlaying {
		t.Fatalf("phase=%s want playing", phase)
	}
	if rec.Grade != 2 || rec.Age != 8 {
		t.Fatalf("grade/age=%d/%d want 2/8", rec.Grade, rec.Age)
	}
	if rec.Education != 150 {
		t.Fatalf("education=%d want 150", rec.Education)
	}
	if rec.HCCoins != 100 {
		t.Fatalf("hc=%d want 100", rec.HCCoins)
	}
	if rec.Rubles != StartRubles+50 {
		t.Fatalf("rubles=%d want %d", rec.Rubles, StartRubles+50)
	}
	if rec.CurrentTask != "Complete grade 2" {
		t.Fatalf("task=%q", rec.CurrentTask)
	}
	if _, ok := c.Question(); !ok {
		t.Fatal("expected a fresh question for the new grade")
	}
}

func TestControllerGradeNineToCareer(t *testing.T) {
	rec := NewRecord()
	rec.Grade = 9
	rec.Age = 15
	c := newTestController(rec, &recordingSaver{})
	c.StartGame()
	answerRound(t, c, false)

	got, phase := c.Snapshot()
	if phase != PhaseCareer {
		t.Fatalf("phase=%s want career", phase)
	}
	if got.Grade != 9 {
		t.Fatalf("grade=%d, the career boundary must not advance it", got.Grade)
	}
	if _, ok := c.Question(); ok {
		t.Fatal("no question should be active on the career screen")
	}

	got, phase = c.ChooseCareer(CareerWarehouse)
	if phase != PhaseLife {
		t.Fatalf("phase=%s want life", phase)
	}
	if got.Career != CareerWarehouse || got.Money != 30_000 {
		t.Fatalf("career=%q money=%d", got.Career, got.Money)
	}
}

func TestControllerContinueStudies(t *testing.T) {
	rec := NewRecord()
	rec.Grade = 9
	c := newTestController(rec, &recordingSaver{})
	c.StartGame()
	answerRound(t, c, true)

	got, phase := c.ContinueStudies()
	if phase != PhasePlaying {
		t.Fatalf("phase=%s want playing", phase)
	}
	if got.Grade != 10 {
		t.Fatalf("grade=%d want 10", got.Grade)
	}
	if _, ok := c.Question(); !ok {
		t.Fatal("expected a grade 10 question")
	}
}

func TestControllerGradeElevenToLife(t *testing.T) {
	rec := NewRecord()
	rec.Grade = 11
	rec.Age = 17
	c := newTestController(rec, &recordingSaver{})
	c.StartGame()
	answerRound(t, c, true)

	_, phase := c.Snapshot()
	if phase != PhaseLife {
		t.Fatalf("phase=%s want life", phase)
	}
}

func TestControllerCareerActionsGated(t *testing.T) {
	c := newTestController(NewRecord(), &recordingSaver{})
	c.StartGame()

	before, _ := c.Snapshot()
	got, phase := c.ChooseCareer(CareerManager)
	if phase != PhasePlaying || got != before {
		t.Fatal("career choice outside the career phase must be a no-op")
	}
	got, phase = c.ContinueStudies()
	if phase != PhasePlaying || got != before {
		t.Fatal("continue studies outside the career phase must be a no-op")
	}
}

func TestControllerStaleAdvanceIgnored(t *testing.T) {
	c := newTestController(NewRecord(), &recordingSaver{})
	c.StartGame()

	q, _ := c.Question()
	fb, ok := c.SubmitAnswer(q.Answer)
	if !ok {
		t.Fatal("submit rejected")
	}

	// Player bails before the feedback timer fires.
	c.ExitGame()
	if c.AdvanceRound(fb.Token) {
		t.Fatal("a stale feedback timer must not advance the game")
	}
	if _, phase := c.Snapshot(); phase != PhaseMenu {
		t.Fatalf("phase changed by stale advance")
	}

	// Restarting issues a new generation; the old token stays dead.
	c.StartGame()
	if c.AdvanceRound(fb.Token) {
		t.Fatal("old token must stay dead after a restart")
	}
}

func TestControllerDoubleSubmitRejected(t *testing.T) {
	c := newTestController(NewRecord(), &recordingSaver{})
	c.StartGame()

	q, _ := c.Question()
	if _, ok := c.SubmitAnswer(q.Answer); !ok {
		t.Fatal("first submit rejected")
	}
	if _, ok := c.SubmitAnswer(q.Answer); ok {
		t.Fatal("submit during feedback must be rejected")
	}
}

func TestControllerPremiumRoundLength(t *testing.T) {
	rec := NewRecord()
	rec.HasPremium = true
	rec.PremiumExpiry = testNow.Add(time.Hour).UnixMilli()
	c := newTestController(rec, &recordingSaver{})
	c.StartGame()

	if _, total := c.RoundProgress(); total != 5 {
		t.Fatalf("premium round length=%d want 5", total)
	}
}

func TestControllerSaveGating(t *testing.T) {
	saver := &recordingSaver{}
	c := newTestController(NewRecord(), saver)
	c.StartGame()

	q, _ := c.Question()
	fb, _ := c.SubmitAnswer(q.Answer)
	if len(saver.saves) != 0 {
		t.Fatalf("a pristine grade-1 life must not be persisted, got %d saves", len(saver.saves))
	}

	c.AdvanceRound(fb.Token)
	answerRound(t, c, true)
	if len(saver.saves) == 0 {
		t.Fatal("expected saves once the player has progress")
	}
	last := saver.saves[len(saver.saves)-1]
	if last.Grade != 2 {
		t.Fatalf("last save grade=%d want 2", last.Grade)
	}
}

func TestControllerSaveFailureSwallowed(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	rec := NewRecord()
	rec.HCCoins = 700
	c := newTestController(rec, saver)

	if !c.BuyPremium() {
		t.Fatal("purchase must succeed even when saving fails")
	}
	got, _ := c.Snapshot()
	if got.HCCoins != 200 {
		t.Fatalf("hc=%d want 200", got.HCCoins)
	}
}

func TestControllerShopRoundTrip(t *testing.T) {
	rec := NewRecord()
	rec.Career = CareerCourier
	c := newTestController(rec, &recordingSaver{})

	if _, phase := c.OpenShop(); phase != PhaseShop {
		t.Fatalf("open: phase=%s", phase)
	}
	if _, phase := c.CloseShop(); phase != PhaseMenu {
		t.Fatalf("close from menu origin: phase=%s", phase)
	}
}

func TestControllerBuyPremiumAndUpgrades(t *testing.T) {
	rec := NewRecord()
	rec.HCCoins = 400
	c := newTestController(rec, &recordingSaver{})

	if c.BuyPremium() {
		t.Fatal("premium must reject below 500 HC")
	}
	if !c.BuyUpgrade(UpgradeHCBonus) {
		t.Fatal("hc bonus purchase rejected")
	}
	if c.BuyUpgrade(UpgradeHCBonus) {
		t.Fatal("repeat purchase must reject")
	}
	got, _ := c.Snapshot()
	if got.HCCoins != 100 || !got.Upgrades.HCBonus {
		t.Fatalf("hc=%d owned=%v", got.HCCoins, got.Upgrades.HCBonus)
	}
}

func TestControllerAIHelperRevealsAnswer(t *testing.T) {
	rec := NewRecord()
	rec.Education = 40
	rec.Upgrades.AIHelper = true
	c := newTestController(rec, &recordingSaver{})
	c.StartGame()

	q, _ := c.Question()
	answer, ok := c.UseAIHelper()
	if !ok {
		t.Fatal("helper rejected")
	}
	if answer != q.Answer {
		t.Fatalf("revealed %d want %d", answer, q.Answer)
	}
	got, _ := c.Snapshot()
	if got.Education != 20 {
		t.Fatalf("education=%d want 20", got.Education)
	}

	// Outside a round there is nothing to reveal.
	c.ExitGame()
	if _, ok := c.UseAIHelper(); ok {
		t.Fatal("helper must reject without an active question")
	}
}

func TestControllerResetLife(t *testing.T) {
	rec := NewRecord()
	rec.Grade = 11
	rec.Age = 18
	rec.HCCoins = 900
	rec.Career = CareerManager
	c := newTestController(rec, &recordingSaver{})

	got, phase := c.ResetLife()
	if phase != PhaseMenu {
		t.Fatalf("phase=%s want menu", phase)
	}
	if got.Grade != 1 || got.Age != 7 || got.Career != CareerNone {
		t.Fatalf("reset record: %+v", got)
	}
	if got.HCCoins != 900 {
		t.Fatalf("hc=%d must survive reset", got.HCCoins)
	}
}
