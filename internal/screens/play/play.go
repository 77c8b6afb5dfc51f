// Package play hosts the active game screen. All gameplay rules live in
// the game controller; this screen translates key presses and ticks
// into controller calls and renders whatever state comes back.
package play

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/rahulnair/neuroplay/internal/adaptive"
	"github.com/rahulnair/neuroplay/internal/config"
	"github.com/rahulnair/neuroplay/internal/game"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/robux"
	"github.com/rahulnair/neuroplay/internal/router"
	"github.com/rahulnair/neuroplay/internal/screen"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/rahulnair/neuroplay/internal/ui/components"
	"github.com/rahulnair/neuroplay/internal/ui/layout"
)

// PlayScreen implements screen.Screen for one game.
type PlayScreen struct {
	ctrl     *game.Controller
	settings storage.Settings

	mc                 components.MultiChoice
	input              components.TextInput
	typed              bool   // text-entry input method
	mcFor              string // prompt the current mc was built for
	hint               string
	showingQuitConfirm bool
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a play screen for the given game.
func New(kv storage.KV, clock *sessionclock.Clock, timer *robux.Timer, statsSvc *stats.Service, cfg config.Config, g levels.Game) *PlayScreen {
	ctrl := game.New(kv, clock, timer, statsSvc, g, sessionclock.SystemSource{})
	ctrl.SetInactivityTimeout(cfg.InactivityTimeout)

	settings := storage.GetSettings(kv, "app")
	return &PlayScreen{
		ctrl:     ctrl,
		settings: settings,
		typed:    settings.InputMethod == "text",
		input:    components.NewTextInput("Type your answer...", false, 12),
	}
}

func (p *PlayScreen) Init() tea.Cmd {
	return tickCmd()
}

func (p *PlayScreen) Title() string {
	return p.ctrl.Game().Title()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	if p.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave game"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch p.ctrl.Screen() {
	case game.ScreenWelcome:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Start"}}
		if p.ctrl.HasContinue() {
			hints = append(hints, layout.KeyHint{Key: "N", Description: "Start over"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	case game.ScreenGame:
		if p.ctrl.Feedback() != nil {
			return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
		}
		if p.ctrl.Paused() {
			return []layout.KeyHint{{Key: "any key", Description: "Resume"}}
		}
		if p.typed {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Submit"},
				{Key: "Tab", Description: "Hint"},
				{Key: "Esc", Description: "Quit"},
			}
		}
		return []layout.KeyHint{
			{Key: "1-5", Description: "Answer"},
			{Key: "Tab", Description: "Hint"},
			{Key: "Esc", Description: "Quit"},
		}
	case game.ScreenLevelComplete:
		next := "Play again"
		if p.ctrl.Recommendation().Action == adaptive.ActionAdvance {
			next = "Next level"
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: next},
			{Key: "R", Description: "Replay level"},
			{Key: "Esc", Description: "Home"},
		}
	case game.ScreenBreak:
		return []layout.KeyHint{
			{Key: "B", Description: "Take a break"},
			{Key: "K", Description: "Keep playing"},
		}
	}
	return nil
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		p.ctrl.Tick()
		p.syncQuestion()
		return p, tickCmd()

	case leaveMsg:
		return p, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	if p.typed && p.ctrl.Screen() == game.ScreenGame && p.ctrl.Feedback() == nil && !p.ctrl.Paused() {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.showingQuitConfirm {
		switch key {
		case "y", "Y", "enter":
			p.ctrl.GoHome()
			return p, func() tea.Msg { return leaveMsg{} }
		default:
			p.showingQuitConfirm = false
		}
		return p, nil
	}

	switch p.ctrl.Screen() {
	case game.ScreenWelcome:
		return p.handleWelcomeKey(key)
	case game.ScreenGame:
		return p.handleGameKey(msg, key)
	case game.ScreenLevelComplete:
		return p.handleCompleteKey(key)
	case game.ScreenBreak:
		return p.handleBreakKey(key)
	}
	return p, nil
}

func (p *PlayScreen) handleWelcomeKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "enter", "space":
		if p.ctrl.HasContinue() {
			p.ctrl.ContinueGame()
		} else {
			p.ctrl.StartSession(1)
		}
		p.syncQuestion()
		return p, p.maybeFocusInput()
	case "n", "N":
		p.ctrl.StartSession(1)
		p.syncQuestion()
		return p, p.maybeFocusInput()
	case "esc":
		return p, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return p, nil
}

func (p *PlayScreen) maybeFocusInput() tea.Cmd {
	if p.typed {
		return p.input.Init()
	}
	return nil
}

func (p *PlayScreen) handleGameKey(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	if p.ctrl.Feedback() != nil {
		p.ctrl.DismissFeedback()
		p.hint = ""
		p.syncQuestion()
		if p.ctrl.Screen() == game.ScreenGame {
			return p, p.maybeFocusInput()
		}
		return p, nil
	}

	if p.ctrl.Paused() {
		p.ctrl.RecordActivity()
		return p, nil
	}

	switch key {
	case "esc":
		p.showingQuitConfirm = true
		return p, nil
	case "tab":
		p.hint = p.ctrl.Hint()
		return p, nil
	}

	if p.typed {
		if key == "enter" {
			answer := strings.TrimSpace(p.input.Value())
			if answer == "" {
				return p, nil
			}
			p.ctrl.SelectAnswer(answer)
			p.input = components.NewTextInput("Type your answer...", false, 12)
			return p, nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		p.ctrl.RecordActivity()
		return p, cmd
	}

	p.mc, _ = p.mc.Update(msg)
	p.ctrl.RecordActivity()
	if p.mc.Submitted {
		p.ctrl.SelectAnswer(p.mc.Chosen())
	}
	return p, nil
}

func (p *PlayScreen) handleCompleteKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "enter", "space":
		p.ctrl.AdvanceLevel()
		p.syncQuestion()
		return p, p.maybeFocusInput()
	case "r", "R":
		p.ctrl.RepeatLevel()
		p.syncQuestion()
		return p, p.maybeFocusInput()
	case "esc", "q":
		p.ctrl.GoHome()
		return p, func() tea.Msg { return leaveMsg{} }
	}
	return p, nil
}

func (p *PlayScreen) handleBreakKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "b", "B", "enter":
		p.ctrl.TakeBreak()
		return p, func() tea.Msg { return leaveMsg{} }
	case "k", "K":
		p.ctrl.KeepPlaying()
		return p, nil
	}
	return p, nil
}

// syncQuestion rebuilds the choice selector whenever the controller has
// dealt a new question (after a dismissal, timeout or level change).
func (p *PlayScreen) syncQuestion() {
	if p.ctrl.Screen() != game.ScreenGame {
		return
	}
	q := p.ctrl.Question()
	if q.Prompt == "" || q.Prompt == p.mcFor {
		return
	}
	choices := p.ctrl.Choices()
	correct := 0
	for i, c := range choices {
		if c == q.Answer {
			correct = i
			break
		}
	}
	p.mc = components.NewMultiChoice(q.Prompt, choices, correct)
	p.mcFor = q.Prompt
	p.hint = ""
}

// HandlesEsc tells the root model not to pop this screen on esc; the
// quit confirmation decides when to leave.
func (p *PlayScreen) HandlesEsc() bool {
	return true
}
