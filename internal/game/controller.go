package game

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Phase is the UI-facing screen the game is on. It is never persisted.
type Phase string

const (
	PhaseMenu    Phase = "menu"
	PhasePlaying Phase = "playing"
	PhaseCareer  Phase = "career"
	PhaseLife    Phase = "life"
	PhaseShop    Phase = "shop"
)

// FeedbackDelay is how long answer feedback stays on screen before the
// round advances.
const FeedbackDelay = 1500 * time.Millisecond

// Saver persists the player record. Implemented by store.Store; failures are
// logged by the controller and never interrupt play.
type Saver interface {
	Save(Record) error
}

// Feedback is the immediate result of a submitted answer. Token identifies
// the round generation it belongs to: AdvanceRound ignores stale tokens so a
// feedback timer from an abandoned round cannot touch the game.
type Feedback struct {
	Correct bool
	Answer  int
	Token   int
}

// Controller owns the single current record and phase and translates
// external actions into mutations. All actions are synchronous; the mutex
// only serializes callers, there is no internal concurrency.
type Controller struct {
	mu    sync.Mutex
	log   *slog.Logger
	clock Clock
	rng   *rand.Rand
	saver Saver

	rec       Record
	phase     Phase
	prevPhase Phase

	question      *Question
	questionsDone int
	pending       *Feedback
	roundGen      int
}

// NewController wires the core around a restored (or fresh) record.
func NewController(rec Record, saver Saver, clock Clock, rng *rand.Rand, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		log:   logger,
		clock: clock,
		rng:   rng,
		saver: saver,
		rec:   rec,
		phase: PhaseMenu,
	}
}

// Snapshot returns the current record and phase for rendering.
func (c *Controller) Snapshot() (Record, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rec, c.phase
}

// Question returns the active question, if a round is underway.
func (c *Controller) Question() (Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.question == nil {
		return Question{}, false
	}
	return *c.question, true
}

// RoundProgress reports questions answered and the round length.
func (c *Controller) RoundProgress() (done, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.questionsDone, QuestionsPerGrade(c.rec.HasPremium)
}

// StartGame enters the schooling loop with a fresh round for the current
// grade.
func (c *Controller) StartGame() (Record, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhasePlaying
	c.beginRound()
	return c.rec, c.phase
}

// ExitGame abandons the round and returns to the menu. Bumping the round
// generation invalidates any feedback timer still in flight.
func (c *Controller) ExitGame() (Record, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseMenu
	c.roundGen++
	c.question = nil
	c.pending = nil
	return c.rec, c.phase
}

// SubmitAnswer scores the selection against the active question. The stat
// effects land immediately; the round itself advances only when the caller
// fires AdvanceRound with the returned token after the feedback delay.
func (c *Controller) SubmitAnswer(selected int) (Feedback, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.question == nil || c.pending != nil {
		return Feedback{}, false
	}
	rec, correct := ApplyAnswer(c.rec, *c.question, selected)
	c.rec = rec
	c.questionsDone++
	c.pending = &Feedback{Correct: correct, Answer: c.question.Answer, Token: c.roundGen}
	c.persist()
	return *c.pending, true
}

// AdvanceRound moves past the feedback card: next question, or grade
// completion once the round is done. A stale token is a no-op.
func (c *Controller) AdvanceRound(token int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil || token != c.roundGen {
		return false
	}
	c.pending = nil
	if c.questionsDone < QuestionsPerGrade(c.rec.HasPremium) {
		q := GenerateQuestion(c.rng, c.rec.Grade, c.rec.HasPremium)
		c.question = &q
		return true
	}

	rec, outcome := CompleteGrade(c.rec)
	c.rec = rec
	switch outcome {
	case OutcomeCareerChoice:
		c.phase = PhaseCareer
		c.question = nil
	case OutcomeSchoolDone:
		c.phase = PhaseLife
		c.question = nil
	default:
		c.beginRound()
	}
	c.persist()
	return true
}

// ChooseCareer picks a job from the career screen and enters adult life.
func (c *Controller) ChooseCareer(career Career) (Record, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseCareer {
		return c.rec, c.phase
	}
	rec, ok := ChooseCareer(c.rec, career)
	if !ok {
		return c.rec, c.phase
	}
	c.rec = rec
	c.phase = PhaseLife
	c.persist()
	return c.rec, c.phase
}

// ContinueStudies skips the career choice and goes straight into grade 10.
func (c *Controller) ContinueStudies() (Record, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseCareer {
		return c.rec, c.phase
	}
	c.rec = ContinueStudies(c.rec)
	c.phase = PhasePlaying
	c.beginRound()
	c.persist()
	return c.rec, c.phase
}

// UseAIHelper reveals the current answer for 20 education, when the upgrade
// is owned and there is a question to reveal.
func (c *Controller) UseAIHelper() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.question == nil {
		return 0, false
	}
	rec, ok := UseAIHelper(c.rec)
	if !ok {
		return 0, false
	}
	c.rec = rec
	c.persist()
	return c.question.Answer, true
}

// BuyHouse attempts the house milestone.
func (c *Controller) BuyHouse() bool {
	return c.apply(BuyHouse)
}

// FindPartner attempts the partner milestone.
func (c *Controller) FindPartner() bool {
	return c.apply(FindPartner)
}

func (c *Controller) apply(op func(Record) (Record, bool)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := op(c.rec)
	if !ok {
		return false
	}
	c.rec = rec
	c.persist()
	return true
}

// BuyPremium purchases a week of the premium subscription.
func (c *Controller) BuyPremium() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, err := BuyPremium(c.rec, c.clock.Now())
	if err != nil {
		return false
	}
	c.rec = rec
	c.persist()
	return true
}

// BuyUpgrade purchases a permanent upgrade from the shop catalog.
func (c *Controller) BuyUpgrade(id UpgradeID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, err := BuyUpgrade(c.rec, id)
	if err != nil {
		return false
	}
	c.rec = rec
	c.persist()
	return true
}

// PremiumDaysLeft is the remaining subscription time for display.
func (c *Controller) PremiumDaysLeft() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return DaysRemaining(c.rec, c.clock.Now())
}

// ResetLife starts over, keeping currencies, premium and upgrades.
func (c *Controller) ResetLife() (Record, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = c.rec.ResetLife()
	c.phase = PhaseMenu
	c.roundGen++
	c.question = nil
	c.pending = nil
	c.persist()
	return c.rec, c.phase
}

// OpenShop shows the shop, remembering where it was opened from.
func (c *Controller) OpenShop() (Record, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != PhaseShop {
		c.prevPhase = c.phase
		c.phase = PhaseShop
	}
	return c.rec, c.phase
}

// CloseShop returns to the phase the shop was opened from.
func (c *Controller) CloseShop() (Record, Phase) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseShop {
		c.phase = c.prevPhase
		if c.phase == "" {
			c.phase = PhaseMenu
		}
	}
	return c.rec, c.phase
}

func (c *Controller) beginRound() {
	c.questionsDone = 0
	c.roundGen++
	c.pending = nil
	q := GenerateQuestion(c.rng, c.rec.Grade, c.rec.HasPremium)
	c.question = &q
}

// persist writes the record if the player has made measurable progress.
// Storage failures are logged and swallowed; play continues in memory.
func (c *Controller) persist() {
	if c.saver == nil || !c.rec.HasProgress() {
		return
	}
	if err := c.saver.Save(c.rec); err != nil {
		c.log.Warn("save failed, continuing in memory", "error", err)
	}
}
