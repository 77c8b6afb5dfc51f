package play

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulnair/neuroplay/internal/config"
	"github.com/rahulnair/neuroplay/internal/game"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/robux"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testPlayScreen(t *testing.T) *PlayScreen {
	t.Helper()
	kv := storage.NewMemoryKV()
	clock := sessionclock.New(kv, sessionclock.SystemSource{})
	timer := robux.NewTimer(kv, clock)
	statsSvc := stats.NewService(kv, sessionclock.SystemSource{}, levels.Names())
	cfg := config.Config{InactivityTimeout: 2 * time.Minute, BreakThreshold: 20 * time.Minute, RobuxPerMinute: 1}

	// Settings default to text input; force multiple choice so key
	// presses select answers directly.
	s := storage.DefaultSettings()
	s.InputMethod = "multiple-choice"
	storage.SaveSettings(kv, "app", s)

	return New(kv, clock, timer, statsSvc, cfg, levels.ByName("multiply"))
}

func TestStartsOnWelcome(t *testing.T) {
	p := testPlayScreen(t)
	assert.Equal(t, game.ScreenWelcome, p.ctrl.Screen())
	assert.Contains(t, p.View(80, 20), "Press Enter to start")
}

func TestEnterStartsGame(t *testing.T) {
	p := testPlayScreen(t)

	next, _ := p.Update(specialKey(tea.KeyEnter))
	p = next.(*PlayScreen)

	assert.Equal(t, game.ScreenGame, p.ctrl.Screen())
	require.NotEmpty(t, p.ctrl.Question().Prompt)
	assert.Contains(t, p.View(80, 20), p.ctrl.Question().Prompt)
}

func TestNumberKeySubmitsAnswer(t *testing.T) {
	p := testPlayScreen(t)
	next, _ := p.Update(specialKey(tea.KeyEnter))
	p = next.(*PlayScreen)

	next, _ = p.Update(keyPress('1'))
	p = next.(*PlayScreen)

	require.NotNil(t, p.ctrl.Feedback())
	require.NotNil(t, p.ctrl.Session())
	assert.Len(t, p.ctrl.Session().Answers, 1)
}

func TestFeedbackDismissDealsFreshQuestion(t *testing.T) {
	p := testPlayScreen(t)
	next, _ := p.Update(specialKey(tea.KeyEnter))
	p = next.(*PlayScreen)
	first := p.ctrl.Question().Prompt

	next, _ = p.Update(keyPress('1'))
	p = next.(*PlayScreen)
	require.NotNil(t, p.ctrl.Feedback())

	// Dismissal is debounced so a double tap cannot skip feedback.
	time.Sleep(game.FeedbackDebounce + 50*time.Millisecond)
	next, _ = p.Update(keyPress('x'))
	p = next.(*PlayScreen)

	assert.Nil(t, p.ctrl.Feedback())
	assert.NotEqual(t, first, p.ctrl.Question().Prompt)
}

func TestEscShowsQuitConfirm(t *testing.T) {
	p := testPlayScreen(t)
	next, _ := p.Update(specialKey(tea.KeyEnter))
	p = next.(*PlayScreen)

	next, _ = p.Update(specialKey(tea.KeyEscape))
	p = next.(*PlayScreen)

	assert.True(t, p.showingQuitConfirm)
	assert.Contains(t, p.View(80, 20), "Leave the game?")

	// N cancels.
	next, _ = p.Update(keyPress('n'))
	p = next.(*PlayScreen)
	assert.False(t, p.showingQuitConfirm)
	assert.Equal(t, game.ScreenGame, p.ctrl.Screen())
}

func TestQuitConfirmSavesAndLeaves(t *testing.T) {
	p := testPlayScreen(t)
	next, _ := p.Update(specialKey(tea.KeyEnter))
	p = next.(*PlayScreen)

	next, _ = p.Update(specialKey(tea.KeyEscape))
	p = next.(*PlayScreen)
	next, cmd := p.Update(keyPress('y'))
	p = next.(*PlayScreen)

	require.NotNil(t, cmd)
	assert.Equal(t, leaveMsg{}, cmd())
	assert.Equal(t, game.ScreenWelcome, p.ctrl.Screen())
}

func TestTabShowsHint(t *testing.T) {
	p := testPlayScreen(t)
	next, _ := p.Update(specialKey(tea.KeyEnter))
	p = next.(*PlayScreen)

	next, _ = p.Update(specialKey(tea.KeyTab))
	p = next.(*PlayScreen)

	assert.NotEmpty(t, p.hint)
	assert.Contains(t, p.View(80, 20), "Hint:")
}
