package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulnair/neuroplay/internal/adaptive"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/robux"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
)

type fakeSource struct {
	now time.Time
}

func (f *fakeSource) Now() time.Time { return f.now }

func (f *fakeSource) advance(d time.Duration) { f.now = f.now.Add(d) }

// stubGame deals an endless run of numbered questions with a known
// answer, so tests can choose to be right or wrong.
type stubGame struct {
	timeAllowed time.Duration
	required    int
	maxLevel    int
	dealt       int
}

func (s *stubGame) Name() string  { return "stub" }
func (s *stubGame) Title() string { return "Stub" }
func (s *stubGame) MaxLevel() int {
	if s.maxLevel == 0 {
		return 12
	}
	return s.maxLevel
}

func (s *stubGame) Level(id int) levels.LevelConfig {
	return levels.LevelConfig{
		ID:                id,
		Name:              fmt.Sprintf("Level %d", id),
		QuestionsRequired: s.required,
		TimeAllowed:       s.timeAllowed,
		Hints:             []string{"first hint", "second hint"},
		MediatedPrompts:   []string{"nice"},
	}
}

func (s *stubGame) Generate(cfg levels.LevelConfig) levels.Question {
	s.dealt++
	return levels.Question{
		Prompt:      fmt.Sprintf("question %d", s.dealt),
		Answer:      "yes",
		Explanation: "because",
		Shape:       "stub-shape",
	}
}

func (s *stubGame) Choices(q levels.Question, cfg levels.LevelConfig) []string {
	return []string{"yes", "no", "maybe", "never"}
}

type fixture struct {
	kv    *storage.MemoryKV
	src   *fakeSource
	clock *sessionclock.Clock
	stats *stats.Service
	game  *stubGame
	c     *Controller
}

func newFixture(t *testing.T, g *stubGame) *fixture {
	t.Helper()
	kv := storage.NewMemoryKV()
	src := &fakeSource{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	clock := sessionclock.New(kv, src)
	rt := robux.NewTimer(kv, clock)
	st := stats.NewService(kv, src, []string{g.Name()})
	return &fixture{
		kv:    kv,
		src:   src,
		clock: clock,
		stats: st,
		game:  g,
		c:     New(kv, clock, rt, st, g, src),
	}
}

// answer grades one choice and dismisses the feedback.
func (f *fixture) answer(choice string) {
	f.c.SelectAnswer(choice)
	f.src.advance(2 * time.Second)
	f.c.DismissFeedback()
}

func TestStartSession(t *testing.T) {
	f := newFixture(t, &stubGame{required: 3})
	c := f.c

	assert.Equal(t, ScreenWelcome, c.Screen())
	assert.Equal(t, 1, c.Level())

	c.StartSession(0)

	assert.Equal(t, ScreenGame, c.Screen())
	require.NotNil(t, c.Session())
	assert.True(t, f.clock.IsActive())
	assert.Equal(t, "question 1", c.Question().Prompt)
	assert.Len(t, c.Choices(), 4)
}

func TestAnswerFlow(t *testing.T) {
	f := newFixture(t, &stubGame{required: 3})
	c := f.c
	c.StartSession(0)

	c.SelectAnswer("yes")
	fb := c.Feedback()
	require.NotNil(t, fb)
	assert.True(t, fb.Correct)
	assert.Equal(t, "because", fb.Explanation)
	assert.Equal(t, "nice", fb.Prompt)
	assert.Equal(t, 1, c.Session().CurrentStreak)

	// A second selection while feedback is up is ignored.
	c.SelectAnswer("yes")
	assert.Len(t, c.Session().Answers, 1)

	f.src.advance(2 * time.Second)
	c.DismissFeedback()
	assert.Nil(t, c.Feedback())
	assert.Equal(t, "question 2", c.Question().Prompt)

	c.SelectAnswer("no")
	fb = c.Feedback()
	require.NotNil(t, fb)
	assert.False(t, fb.Correct)
	assert.Contains(t, fb.Explanation, "yes")
	assert.Equal(t, 0, c.Session().CurrentStreak)
	assert.Equal(t, 1, c.Session().BestStreak)
	assert.Len(t, c.Session().Answers, 2)
}

func TestFeedbackDebounce(t *testing.T) {
	f := newFixture(t, &stubGame{required: 3})
	c := f.c
	c.StartSession(0)

	c.SelectAnswer("yes")
	c.DismissFeedback() // same instant as the answer
	assert.NotNil(t, c.Feedback(), "feedback dismissed by the tap that opened it")

	f.src.advance(time.Second)
	c.DismissFeedback()
	assert.Nil(t, c.Feedback())

	// Dismissing again is a no-op.
	c.DismissFeedback()
	assert.Equal(t, ScreenGame, c.Screen())
}

func TestLevelCompletion(t *testing.T) {
	f := newFixture(t, &stubGame{required: 3})
	c := f.c
	c.StartSession(0)

	f.answer("yes")
	f.answer("no") // a miss does not reset correct progress
	f.answer("yes")

	// Third correct answer completes the level; it is recorded first.
	c.SelectAnswer("yes")
	f.src.advance(2 * time.Second)
	c.DismissFeedback()

	assert.Equal(t, ScreenLevelComplete, c.Screen())
	require.NotNil(t, c.Session())
	assert.Len(t, c.Session().Answers, 4)
	assert.Equal(t, 3, c.Session().CorrectCount)

	p := storage.GetProgress(f.kv, "stub")
	assert.Equal(t, 3, p.TotalCorrect)
	assert.Equal(t, 4, p.TotalQuestions)
	assert.Equal(t, 1, p.SessionsCount)
	assert.InDelta(t, 0.75, p.LevelAccuracies[1], 0.001)

	light := storage.GetSessions(f.kv, "stub")
	require.Len(t, light, 1)
	assert.Equal(t, 1, light[0].Level)
	assert.Equal(t, 4, light[0].QuestionsAnswered)

	recent := f.stats.RecentSessions("stub", 1)
	require.Len(t, recent, 1)
	assert.Equal(t, stats.EndCompletion, recent[0].EndedBy)
}

func TestAdvanceAndRepeatLevel(t *testing.T) {
	f := newFixture(t, &stubGame{required: 10})
	c := f.c
	c.StartSession(0)
	for i := 0; i < 10; i++ {
		f.answer("yes")
	}
	require.Equal(t, ScreenLevelComplete, c.Screen())
	require.Equal(t, adaptive.ActionAdvance, c.Recommendation().Action)

	c.AdvanceLevel()
	assert.Equal(t, 2, c.Level())
	assert.Equal(t, ScreenGame, c.Screen())

	p := storage.GetProgress(f.kv, "stub")
	assert.Equal(t, 2, p.CurrentLevel)
	assert.Contains(t, p.LevelsCompleted, 1)

	f.answer("yes")
	c.RepeatLevel()
	assert.Equal(t, 2, c.Level())
}

func TestNextRepeatsLevelWhenNotReadyToAdvance(t *testing.T) {
	f := newFixture(t, &stubGame{required: 2})
	c := f.c
	c.StartSession(1)
	// Two correct out of five leaves the player short of the advance bar.
	for i := 0; i < 3; i++ {
		f.answer("no")
	}
	f.answer("yes")
	f.answer("yes")
	require.Equal(t, ScreenLevelComplete, c.Screen())
	require.Equal(t, adaptive.ActionSimplify, c.Recommendation().Action)

	c.AdvanceLevel()
	assert.Equal(t, 1, c.Level())
	assert.Equal(t, ScreenGame, c.Screen())
	assert.NotContains(t, storage.GetProgress(f.kv, "stub").LevelsCompleted, 1)
}

func TestAdvanceAtMaxLevelStaysPut(t *testing.T) {
	f := newFixture(t, &stubGame{required: 10, maxLevel: 2})
	c := f.c
	c.StartSession(2)

	for i := 0; i < 10; i++ {
		f.answer("yes")
	}
	require.Equal(t, adaptive.ActionAdvance, c.Recommendation().Action)
	c.AdvanceLevel()

	assert.Equal(t, 2, c.Level())
	assert.Equal(t, ScreenGame, c.Screen())
}

func TestQuestionTimeout(t *testing.T) {
	f := newFixture(t, &stubGame{required: 3, timeAllowed: 10 * time.Second})
	c := f.c
	c.StartSession(0)

	assert.Greater(t, c.TimeRemaining(), time.Duration(0))

	f.src.advance(11 * time.Second)
	c.Tick()

	fb := c.Feedback()
	require.NotNil(t, fb)
	assert.True(t, fb.TimedOut)
	assert.False(t, fb.Correct)
	assert.Len(t, c.Session().Answers, 1)
}

func TestInactivityPauseAndResume(t *testing.T) {
	f := newFixture(t, &stubGame{required: 10})
	c := f.c
	c.StartSession(0)
	f.answer("yes")

	f.src.advance(InactivityTimeout + time.Second)
	c.Tick()

	assert.True(t, c.Paused())
	assert.True(t, f.clock.IsPaused())

	recent := f.stats.RecentSessions("stub", 1)
	require.Len(t, recent, 1)
	assert.Equal(t, stats.EndPause, recent[0].EndedBy)

	// Answers are ignored while paused.
	c.SelectAnswer("yes")
	assert.Len(t, c.Session().Answers, 1)

	c.RecordActivity()
	assert.False(t, c.Paused())
	assert.False(t, f.clock.IsPaused())

	// Play continues against a fresh statistics session.
	c.SelectAnswer("yes")
	assert.Len(t, c.Session().Answers, 2)
}

func TestBreakReminder(t *testing.T) {
	f := newFixture(t, &stubGame{required: 100})
	c := f.c
	c.StartSession(0)

	f.src.advance(stats.BreakThreshold + time.Minute)
	c.RecordActivity()
	c.Tick()

	assert.Equal(t, ScreenBreak, c.Screen())

	c.KeepPlaying()
	assert.Equal(t, ScreenGame, c.Screen())
	assert.False(t, f.stats.BreakDue())

	f.src.advance(stats.BreakThreshold + time.Minute)
	c.RecordActivity()
	c.Tick()
	require.Equal(t, ScreenBreak, c.Screen())

	c.TakeBreak()
	assert.Equal(t, ScreenWelcome, c.Screen())
	assert.Nil(t, c.Session())

	recent := f.stats.RecentSessions("stub", 1)
	require.Len(t, recent, 1)
	assert.Equal(t, stats.EndBreakModal, recent[0].EndedBy)
}

func TestGoHomeSavesLevel(t *testing.T) {
	f := newFixture(t, &stubGame{required: 1})
	c := f.c
	c.StartSession(3)
	c.GoHome()

	assert.Equal(t, ScreenWelcome, c.Screen())
	p := storage.GetProgress(f.kv, "stub")
	assert.Equal(t, 3, p.CurrentLevel)

	recent := f.stats.RecentSessions("stub", 1)
	require.Len(t, recent, 1)
	assert.Equal(t, stats.EndNavigation, recent[0].EndedBy)
}

func TestEndSessionIdempotent(t *testing.T) {
	f := newFixture(t, &stubGame{required: 1})
	c := f.c
	c.StartSession(0)

	c.EndSession(stats.EndNavigation)
	c.EndSession(stats.EndNavigation)

	assert.Equal(t, ScreenWelcome, c.Screen())
	assert.Len(t, f.stats.RecentSessions("stub", 10), 1)
}

func TestRobuxAccrueDuringPlay(t *testing.T) {
	f := newFixture(t, &stubGame{required: 100})
	c := f.c
	c.StartSession(0)

	f.src.advance(3 * time.Minute)
	c.RecordActivity()
	c.Tick()

	assert.Equal(t, 3, storage.GetRobuxCount(f.kv))
}

func TestHasContinue(t *testing.T) {
	f := newFixture(t, &stubGame{required: 1})
	assert.False(t, f.c.HasContinue())

	f.c.StartSession(0)
	f.answer("yes")
	f.c.AdvanceLevel()
	f.c.GoHome()

	assert.True(t, f.c.HasContinue())
}

func TestHintsCycle(t *testing.T) {
	f := newFixture(t, &stubGame{required: 3})
	c := f.c
	c.StartSession(0)

	assert.Equal(t, "first hint", c.Hint())
	assert.Equal(t, "second hint", c.Hint())
	assert.Equal(t, "second hint", c.Hint())
	assert.Equal(t, 3, c.HintsUsed())
}

func TestScaffoldsAppearWhenStruggling(t *testing.T) {
	f := newFixture(t, &stubGame{required: 100})
	c := f.c
	c.StartSession(0)

	assert.Empty(t, c.Scaffolds())

	f.answer("yes")
	f.answer("no")
	f.answer("no")
	f.answer("no")
	f.answer("no")

	assert.Contains(t, c.Scaffolds(), adaptive.ScaffoldShowNumbers)
	assert.Contains(t, c.Scaffolds(), adaptive.ScaffoldShowHints)
}