// Package settings is the preferences editor. Changes persist
// immediately; theme switches repaint the whole app.
package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulnair/neuroplay/internal/screen"
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/rahulnair/neuroplay/internal/ui/layout"
	"github.com/rahulnair/neuroplay/internal/ui/theme"
)

// settingsGame is the storage namespace for app-wide preferences.
const settingsGame = "app"

// option is one editable row. Cycling calls apply with the next value.
type option struct {
	label  string
	values []string
	get    func(s storage.Settings) string
	set    func(s *storage.Settings, v string)
}

// SettingsScreen implements screen.Screen.
type SettingsScreen struct {
	kv       storage.KV
	current  storage.Settings
	options  []option
	selected int
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings screen.
func New(kv storage.KV) *SettingsScreen {
	return &SettingsScreen{
		kv:      kv,
		current: storage.GetSettings(kv, settingsGame),
		options: []option{
			{
				label:  "Theme",
				values: theme.Names(),
				get:    func(s storage.Settings) string { return s.Theme },
				set:    func(s *storage.Settings, v string) { s.Theme = v },
			},
			{
				label:  "Answer input",
				values: []string{"text", "multiple-choice"},
				get:    func(s storage.Settings) string { return s.InputMethod },
				set:    func(s *storage.Settings, v string) { s.InputMethod = v },
			},
			{
				label:  "Show question timer",
				values: []string{"on", "off"},
				get:    func(s storage.Settings) string { return onOff(s.ShowTimer) },
				set:    func(s *storage.Settings, v string) { s.ShowTimer = v == "on" },
			},
			{
				label:  "High contrast",
				values: []string{"off", "on"},
				get:    func(s storage.Settings) string { return onOff(s.HighContrast) },
				set:    func(s *storage.Settings, v string) { s.HighContrast = v == "on" },
			},
			{
				label:  "Text size",
				values: []string{"normal", "large"},
				get:    func(s storage.Settings) string { return s.FontSize },
				set:    func(s *storage.Settings, v string) { s.FontSize = v },
			},
			{
				label:  "Questions per level",
				values: []string{"5", "10", "15"},
				get:    func(s storage.Settings) string { return fmt.Sprintf("%d", s.QuestionsPerLevel) },
				set: func(s *storage.Settings, v string) {
					fmt.Sscanf(v, "%d", &s.QuestionsPerLevel)
				},
			},
		},
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "←→/Enter", Description: "Change"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.options)-1 {
			s.selected++
		}
	case "right", "l", "enter", "space":
		s.cycle(1)
	case "left", "h":
		s.cycle(-1)
	}
	return s, nil
}

// cycle moves the selected option to its next (or previous) value and
// saves immediately.
func (s *SettingsScreen) cycle(dir int) {
	opt := s.options[s.selected]
	cur := opt.get(s.current)
	idx := 0
	for i, v := range opt.values {
		if v == cur {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(opt.values)) % len(opt.values)
	opt.set(&s.current, opt.values[idx])
	storage.SaveSettings(s.kv, settingsGame, s.current)

	if opt.label == "Theme" {
		theme.Apply(s.current.Theme)
	}
}

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Settings"))
	b.WriteString("\n\n")

	for i, opt := range s.options {
		cur := opt.get(s.current)
		prefix := "    "
		if i == s.selected {
			prefix = "  ▸ "
		}
		line := fmt.Sprintf("%s%-24s ◂ %s ▸", prefix, opt.label, cur)
		if i == s.selected {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		} else {
			b.WriteString(theme.Body.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("    Changes are saved right away."))
	return b.String()
}
