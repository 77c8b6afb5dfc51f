// Package game drives one game's play loop: screens, questions,
// answers, level completion and the safety timers around them. It is a
// plain state machine; the TUI feeds it selections and clock ticks and
// renders whatever state it exposes.
package game

import (
	"time"

	"github.com/rahulnair/neuroplay/internal/adaptive"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/robux"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
)

// InactivityTimeout pauses a running session when no answer or input
// arrives for this long.
const InactivityTimeout = 2 * time.Minute

// FeedbackDebounce guards DismissFeedback against the tap that opened
// the feedback also closing it.
const FeedbackDebounce = 300 * time.Millisecond

// Screen is the controller's current view.
type Screen string

const (
	ScreenWelcome       Screen = "welcome"
	ScreenGame          Screen = "game"
	ScreenLevelComplete Screen = "levelComplete"
	ScreenBreak         Screen = "break"
)

// Feedback is shown after every answer until dismissed.
type Feedback struct {
	Correct     bool
	TimedOut    bool
	Explanation string
	Prompt      string // mediated prompt on correct answers
	shownAt     time.Time
	complete    bool // dismissing moves to the level-complete screen
}

// Session is one run at a level. Every answer is kept, right or wrong;
// the level is complete once enough of them are correct.
type Session struct {
	Level         int
	StartTime     time.Time
	Answers       []adaptive.Answer
	CorrectCount  int
	CurrentStreak int
	BestStreak    int
}

// Controller is the state machine for a single game. It is driven from
// one goroutine; the services it calls synchronize themselves.
type Controller struct {
	kv    storage.KV
	clock *sessionclock.Clock
	robux *robux.Timer
	stats *stats.Service
	src   sessionclock.Source
	g     levels.Game

	screen  Screen
	level   int
	session *Session
	statsID string

	question      levels.Question
	choices       []string
	questionStart time.Time
	deadline      time.Time // zero when the question is untimed
	hintsUsed     int

	feedback     *Feedback
	processing   bool
	paused       bool
	lastActivity time.Time
	inactivity   time.Duration
	returnTo     Screen // where the break screen goes back to
}

// New builds a controller for one game, resuming at the saved level.
func New(kv storage.KV, clock *sessionclock.Clock, rt *robux.Timer, st *stats.Service, g levels.Game, src sessionclock.Source) *Controller {
	if src == nil {
		src = sessionclock.SystemSource{}
	}
	progress := storage.GetProgress(kv, g.Name())
	return &Controller{
		kv:         kv,
		clock:      clock,
		robux:      rt,
		stats:      st,
		src:        src,
		g:          g,
		screen:     ScreenWelcome,
		level:      clampLevel(progress.CurrentLevel, g.MaxLevel()),
		inactivity: InactivityTimeout,
	}
}

// SetInactivityTimeout overrides how long idle play runs before the
// session pauses. Non-positive values are ignored.
func (c *Controller) SetInactivityTimeout(d time.Duration) {
	if d > 0 {
		c.inactivity = d
	}
}

func (c *Controller) Game() levels.Game          { return c.g }
func (c *Controller) Screen() Screen             { return c.screen }
func (c *Controller) Level() int                 { return c.level }
func (c *Controller) Session() *Session          { return c.session }
func (c *Controller) Question() levels.Question  { return c.question }
func (c *Controller) Choices() []string          { return c.choices }
func (c *Controller) Feedback() *Feedback        { return c.feedback }
func (c *Controller) Paused() bool               { return c.paused }
func (c *Controller) HintsUsed() int             { return c.hintsUsed }
func (c *Controller) LevelConfig() levels.LevelConfig {
	return c.g.Level(c.level)
}

// HasContinue reports whether saved progress exists for this game.
func (c *Controller) HasContinue() bool {
	p := storage.GetProgress(c.kv, c.g.Name())
	return p.CurrentLevel > 1 || p.TotalQuestions > 0
}

// Scaffolds returns the aids earned by struggling in this session.
func (c *Controller) Scaffolds() []adaptive.Scaffold {
	if c.session == nil || len(c.session.Answers) < 5 {
		return nil
	}
	return adaptive.ScaffoldsFor(adaptive.SessionAccuracy(c.session.Answers))
}

// TimeRemaining returns how long is left on the current question, or
// zero when it is untimed.
func (c *Controller) TimeRemaining() time.Duration {
	if c.deadline.IsZero() || c.feedback != nil {
		return 0
	}
	left := c.deadline.Sub(c.src.Now())
	if left < 0 {
		return 0
	}
	return left
}

// StartSession begins a run at the given level (0 means the saved
// level). It starts the global clock, the robux timer and a statistics
// session, then deals the first question.
func (c *Controller) StartSession(level int) {
	if level <= 0 {
		level = c.level
	}
	c.level = clampLevel(level, c.g.MaxLevel())

	now := c.src.Now()
	c.session = &Session{Level: c.level, StartTime: now}
	c.screen = ScreenGame
	c.paused = false
	c.processing = false
	c.feedback = nil
	c.lastActivity = now

	c.clock.StartSession()
	c.robux.Start(c.g.Name())
	c.statsID = c.stats.CreateSession(c.g.Name(), c.level)

	c.nextQuestion()
}

// ContinueGame resumes from the saved level.
func (c *Controller) ContinueGame() {
	p := storage.GetProgress(c.kv, c.g.Name())
	c.StartSession(p.CurrentLevel)
}

func (c *Controller) nextQuestion() {
	cfg := c.g.Level(c.level)
	c.question = c.g.Generate(cfg)
	c.choices = c.g.Choices(c.question, cfg)
	c.questionStart = c.src.Now()
	c.hintsUsed = 0
	c.deadline = time.Time{}

	if cfg.TimeAllowed > 0 {
		limit := cfg.TimeAllowed
		if c.session != nil {
			recent := c.session.Answers
			if len(recent) > 5 {
				recent = recent[len(recent)-5:]
			}
			limit = adaptive.AdjustTimeLimit(cfg.TimeAllowed, recent)
		}
		c.deadline = c.questionStart.Add(limit)
	}
}

// SelectAnswer grades a choice. The answer is recorded before the
// completion check so the final answer always counts.
func (c *Controller) SelectAnswer(choice string) {
	c.processAnswer(choice, false)
}

// Timeout counts an expired question as incorrect.
func (c *Controller) Timeout() {
	c.processAnswer("", true)
}

func (c *Controller) processAnswer(choice string, timedOut bool) {
	if c.screen != ScreenGame || c.processing || c.paused || c.session == nil {
		return
	}
	c.processing = true
	c.RecordActivity()

	now := c.src.Now()
	correct := !timedOut && choice == c.question.Answer
	responseTime := now.Sub(c.questionStart)
	cfg := c.g.Level(c.level)

	ans := adaptive.Answer{
		Correct:      correct,
		ResponseTime: responseTime,
		Level:        c.level,
		Timestamp:    now,
	}
	c.session.Answers = append(c.session.Answers, ans)
	if correct {
		c.session.CorrectCount++
		c.session.CurrentStreak++
		if c.session.CurrentStreak > c.session.BestStreak {
			c.session.BestStreak = c.session.CurrentStreak
		}
	} else {
		c.session.CurrentStreak = 0
	}

	c.stats.AddAnswer(c.statsID, correct, responseTime, c.level)
	storage.RecordErrorPattern(c.kv, c.g.Name(), c.level, c.question.Shape, correct)

	fb := &Feedback{
		Correct:  correct,
		TimedOut: timedOut,
		shownAt:  now,
	}
	if correct {
		fb.Explanation = c.question.Explanation
		if n := len(cfg.MediatedPrompts); n > 0 {
			fb.Prompt = cfg.MediatedPrompts[len(c.session.Answers)%n]
		}
		// Completion is checked only after the answer is recorded.
		fb.complete = c.session.CorrectCount >= cfg.QuestionsRequired
	} else {
		fb.Explanation = "The correct answer is " + c.question.Answer
	}
	c.feedback = fb
	c.deadline = time.Time{}
}

// DismissFeedback closes the answer feedback and moves on: to the next
// question, a retry of the same question, or the level-complete screen.
// Calling it twice, or with no feedback showing, does nothing.
func (c *Controller) DismissFeedback() {
	if c.feedback == nil {
		return
	}
	if c.src.Now().Sub(c.feedback.shownAt) < FeedbackDebounce {
		return
	}
	fb := c.feedback
	c.feedback = nil
	c.processing = false
	c.RecordActivity()

	if fb.complete {
		c.completeLevel()
		return
	}
	// Right or wrong, a fresh question keeps the pace up; repeating a
	// missed question invites memorizing the choice positions.
	c.nextQuestion()
}

// completeLevel closes the run and shows the summary screen.
func (c *Controller) completeLevel() {
	s := c.session
	if s == nil {
		return
	}

	c.stats.EndSession(c.statsID, c.robux.Earned(), stats.EndCompletion)
	c.statsID = ""

	now := c.src.Now()
	accuracy := adaptive.SessionAccuracy(s.Answers)
	duration := now.Sub(s.StartTime)

	p := storage.GetProgress(c.kv, c.g.Name())
	p.TotalCorrect += s.CorrectCount
	p.TotalQuestions += len(s.Answers)
	p.TotalPlayTime += int(duration / time.Second)
	p.SessionsCount++
	p.CurrentLevel = c.level
	p.LevelAccuracies[c.level] = accuracy
	p.LastPlayed = &now
	storage.SaveProgress(c.kv, c.g.Name(), p)

	storage.AddSession(c.kv, c.g.Name(), storage.LevelSession{
		Level:             c.level,
		Accuracy:          accuracy,
		Duration:          duration,
		QuestionsAnswered: len(s.Answers),
		BestStreak:        s.BestStreak,
		Timestamp:         now,
	})

	c.screen = ScreenLevelComplete
}

// Recommendation evaluates the finished session for the summary screen.
func (c *Controller) Recommendation() adaptive.Recommendation {
	if c.session == nil {
		return adaptive.Recommendation{Action: adaptive.ActionContinue, NextLevel: c.level}
	}
	return adaptive.RecommendedAction(c.session.Answers, c.level)
}

// AdvanceLevel acts on the finished run's recommendation: the level
// progresses only when the engine says advance, otherwise the same
// level restarts. At the top level it also restarts the same level.
func (c *Controller) AdvanceLevel() {
	if c.Recommendation().Action != adaptive.ActionAdvance {
		c.StartSession(c.level)
		return
	}
	next := c.level
	if c.level < c.maxLevel() {
		next = c.level + 1
		p := storage.GetProgress(c.kv, c.g.Name())
		p.MarkCompleted(c.level)
		p.CurrentLevel = next
		storage.SaveProgress(c.kv, c.g.Name(), p)
	}
	c.StartSession(next)
}

// RepeatLevel restarts the current level.
func (c *Controller) RepeatLevel() {
	c.StartSession(c.level)
}

func (c *Controller) maxLevel() int {
	if c.g.MaxLevel() < adaptive.MaxLevel {
		return c.g.MaxLevel()
	}
	return adaptive.MaxLevel
}

// EndSession abandons any run in progress and returns to the welcome
// screen. Safe to call when nothing is running.
func (c *Controller) EndSession(reason stats.EndReason) {
	if c.statsID != "" {
		c.stats.EndSession(c.statsID, c.robux.Earned(), reason)
		c.statsID = ""
	}
	c.robux.Stop()
	if c.paused {
		c.clock.Resume()
		c.paused = false
	}
	c.session = nil
	c.feedback = nil
	c.processing = false
	c.deadline = time.Time{}
	c.screen = ScreenWelcome
}

// GoHome saves the level position and leaves the game.
func (c *Controller) GoHome() {
	now := c.src.Now()
	p := storage.GetProgress(c.kv, c.g.Name())
	p.CurrentLevel = c.level
	p.LastPlayed = &now
	storage.SaveProgress(c.kv, c.g.Name(), p)
	c.EndSession(stats.EndNavigation)
}

// RecordActivity marks the player as present and resumes a session
// paused for inactivity.
func (c *Controller) RecordActivity() {
	c.lastActivity = c.src.Now()
	c.clock.RecordActivity()
	if !c.paused {
		return
	}
	c.paused = false
	c.clock.Resume()
	// A fresh statistics session picks up where the paused one left off.
	if c.statsID == "" && c.session != nil {
		c.statsID = c.stats.CreateSession(c.g.Name(), c.level)
	}
}

// Tick drives the time-based transitions: question timeout, inactivity
// pause, robux accrual and the break reminder. The play screen calls it
// about once a second.
func (c *Controller) Tick() {
	now := c.src.Now()

	// Robux keep accruing on the level-complete screen; deciding what to
	// play next is still play time.
	if (c.screen == ScreenGame || c.screen == ScreenLevelComplete) && !c.paused {
		c.robux.Poll()
	}

	if c.screen == ScreenGame && !c.paused {
		if !c.deadline.IsZero() && c.feedback == nil && !now.Before(c.deadline) {
			c.Timeout()
			return
		}

		if now.Sub(c.lastActivity) > c.inactivity {
			c.pauseForInactivity()
			return
		}

		if c.stats.BreakDue() {
			c.returnTo = c.screen
			c.screen = ScreenBreak
		}
	}
}

func (c *Controller) pauseForInactivity() {
	c.paused = true
	c.clock.Pause()
	if c.statsID != "" {
		c.stats.EndSession(c.statsID, c.robux.Earned(), stats.EndPause)
		c.statsID = ""
	}
}

// TakeBreak accepts the break reminder: the run ends and play stops.
func (c *Controller) TakeBreak() {
	c.EndSession(stats.EndBreakModal)
}

// KeepPlaying declines the break reminder and resets its stopwatch.
func (c *Controller) KeepPlaying() {
	c.stats.ResetContinuousPlay()
	c.RecordActivity()
	if c.returnTo != "" {
		c.screen = c.returnTo
		c.returnTo = ""
	} else {
		c.screen = ScreenGame
	}
}

// Hint returns the next hint for the current level, advancing the
// hint index.
func (c *Controller) Hint() string {
	cfg := c.g.Level(c.level)
	h := levels.Hint(cfg, c.hintsUsed)
	c.hintsUsed++
	c.RecordActivity()
	return h
}

func clampLevel(level, max int) int {
	if level < 1 {
		return 1
	}
	if level > max {
		return max
	}
	return level
}
