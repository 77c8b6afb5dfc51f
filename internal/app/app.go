// Package app wires the services into the Bubble Tea program and owns
// the outer frame: header with robux and the session clock, footer
// with key hints, and the screen router in between.
package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulnair/neuroplay/internal/config"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/robux"
	"github.com/rahulnair/neuroplay/internal/router"
	"github.com/rahulnair/neuroplay/internal/screen"
	"github.com/rahulnair/neuroplay/internal/screens/home"
	"github.com/rahulnair/neuroplay/internal/screens/play"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/rahulnair/neuroplay/internal/ui/layout"
	"github.com/rahulnair/neuroplay/internal/ui/theme"
)

// Deps is everything the UI needs, built once in cmd and shared by all
// screens.
type Deps struct {
	KV     storage.KV
	Clock  *sessionclock.Clock
	Robux  *robux.Timer
	Stats  *stats.Service
	Config config.Config

	// StartGame, when set, opens that game directly instead of waiting
	// on the home menu.
	StartGame string
}

// headerTickMsg refreshes the robux and clock readouts in the header.
type headerTickMsg time.Time

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps Deps) AppModel {
	homeScreen := home.New(deps.KV, deps.Clock, deps.Robux, deps.Stats, deps.Config)
	return AppModel{
		deps:   deps,
		router: router.New(homeScreen),
	}
}

func headerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return headerTickMsg(t)
	})
}

func (m AppModel) Init() tea.Cmd {
	if g := levels.ByName(m.deps.StartGame); g != nil {
		d := m.deps
		return tea.Batch(headerTick(), func() tea.Msg {
			return router.PushScreenMsg{Screen: play.New(d.KV, d.Clock, d.Robux, d.Stats, d.Config, g)}
		})
	}
	return headerTick()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerTickMsg:
		// Rendering reads the clock and robux count directly; the tick
		// just forces a repaint once a second.
		return m, headerTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				// The play screen consumes esc for its own quit
				// confirmation; every other screen just pops.
				if h, ok := m.router.Active().(screen.EscHandler); !ok || !h.HandlesEsc() {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title,
		storage.GetRobuxCount(m.deps.KV),
		m.deps.Clock.FormattedElapsed(),
		m.width)

	footerHints := m.footerHints(active)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	theme.Apply(storage.GetSettings(deps.KV, "app").Theme)

	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
