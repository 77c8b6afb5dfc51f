// Package home is the main menu: pick a game, open the dashboard or
// settings, or quit.
package home

import (
	tea "charm.land/bubbletea/v2"

	"github.com/rahulnair/neuroplay/internal/config"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/robux"
	"github.com/rahulnair/neuroplay/internal/router"
	"github.com/rahulnair/neuroplay/internal/screen"
	"github.com/rahulnair/neuroplay/internal/screens/dashboard"
	"github.com/rahulnair/neuroplay/internal/screens/play"
	"github.com/rahulnair/neuroplay/internal/screens/settings"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/rahulnair/neuroplay/internal/ui/components"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	kv       storage.KV
	statsSvc *stats.Service
	menu     components.Menu
	labels   []string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(kv storage.KV, clock *sessionclock.Clock, timer *robux.Timer, statsSvc *stats.Service, cfg config.Config) *HomeScreen {
	games := levels.All()

	labels := make([]string, 0, len(games)+3)
	items := make([]components.MenuItem, 0, len(games)+3)
	for _, g := range games {
		g := g
		labels = append(labels, g.Title())
		items = append(items, components.MenuItem{
			Label: g.Title(),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: play.New(kv, clock, timer, statsSvc, cfg, g)}
				}
			},
		})
	}

	labels = append(labels, "DASHBOARD", "SETTINGS", "QUIT")
	items = append(items,
		components.MenuItem{Label: "DASHBOARD", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: dashboard.New(kv, clock, statsSvc)}
			}
		}},
		components.MenuItem{Label: "SETTINGS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(kv)}
			}
		}},
		components.MenuItem{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return &HomeScreen{
		kv:       kv,
		statsSvc: statsSvc,
		menu:     components.NewMenu(items),
		labels:   labels,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}
