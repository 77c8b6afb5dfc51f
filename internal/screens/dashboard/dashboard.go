// Package dashboard shows the parent-facing statistics view. The
// session clock is frozen while it is open so reviewing progress never
// counts as play time.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rahulnair/neuroplay/internal/adaptive"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/screen"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/rahulnair/neuroplay/internal/ui/components"
	"github.com/rahulnair/neuroplay/internal/ui/layout"
	"github.com/rahulnair/neuroplay/internal/ui/theme"
)

// DashboardScreen implements screen.Screen.
type DashboardScreen struct {
	kv       storage.KV
	clock    *sessionclock.Clock
	statsSvc *stats.Service

	games    []levels.Game
	selected int
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.Closer = (*DashboardScreen)(nil)

// New creates the dashboard over every registered game.
func New(kv storage.KV, clock *sessionclock.Clock, statsSvc *stats.Service) *DashboardScreen {
	return &DashboardScreen{
		kv:       kv,
		clock:    clock,
		statsSvc: statsSvc,
		games:    levels.All(),
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	d.clock.Freeze()
	return nil
}

// Close resumes the session clock when the dashboard is popped.
func (d *DashboardScreen) Close() {
	d.clock.Unfreeze()
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Switch game"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}
	switch kmsg.String() {
	case "left", "h":
		if d.selected > 0 {
			d.selected--
		}
	case "right", "l":
		if d.selected < len(d.games)-1 {
			d.selected++
		}
	}
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	g := d.games[d.selected]
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(d.renderTotals(width))
	b.WriteString("\n")
	b.WriteString(d.renderGameTabs(width))
	b.WriteString("\n\n")
	b.WriteString(d.renderGameDetail(g, width))
	return b.String()
}

func (d *DashboardScreen) renderTotals(width int) string {
	all := d.statsSvc.AllGameStats()
	robuxCount := storage.GetRobuxCount(d.kv)

	parts := []string{
		fmt.Sprintf("◆ %d robux", robuxCount),
		fmt.Sprintf("✓ %d correct", all.Totals.TotalCorrect),
		fmt.Sprintf("▶ %d sessions", all.Totals.TotalSessions),
		fmt.Sprintf("⏱ %s played", sessionclock.FormatElapsed(time.Duration(all.Totals.TotalPlayTimeSec)*time.Second)),
	}
	line := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render("  " + strings.Join(parts, "    "))
	return line
}

func (d *DashboardScreen) renderGameTabs(width int) string {
	var tabs []string
	for i, g := range d.games {
		label := " " + g.Title() + " "
		if i == d.selected {
			tabs = append(tabs, theme.Selected.Render("["+label+"]"))
		} else {
			tabs = append(tabs, theme.Unselected.Render(" "+label+" "))
		}
	}
	return "  " + strings.Join(tabs, " ")
}

func (d *DashboardScreen) renderGameDetail(g levels.Game, width int) string {
	name := g.Name()
	progress := storage.GetProgress(d.kv, name)
	sessions := storage.GetSessions(d.kv, name)
	weak := storage.WeakAreas(d.kv, name)
	report := adaptive.GenerateProgressReport(progress, sessions, weak)
	gameStats := d.statsSvc.Stats(name)

	var b strings.Builder

	// One cell per level, so the bar doubles as a level map.
	bar := components.NewLevelBar(
		"  Levels", progress.CurrentLevel-1, g.MaxLevel(), min(width-8, 60))
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Accuracy", fmt.Sprintf("%d%%", report.OverallAccuracy)},
		{"Sessions completed", fmt.Sprintf("%d", report.SessionsCompleted)},
		{"Play time", sessionclock.FormatElapsed(time.Duration(report.TotalPlayTime) * time.Second)},
		{"Robux earned", fmt.Sprintf("%d", gameStats.Progress.TotalRobuxEarned)},
		{"Trend", trendLabel(report.Trend)},
	}
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(22).Render(row[0]))
		b.WriteString(theme.Body.Render(row[1]))
		b.WriteString("\n")
	}

	if len(report.AreasForImprovement) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("  Needs practice:"))
		b.WriteString("\n")
		for _, a := range report.AreasForImprovement {
			b.WriteString(fmt.Sprintf("    Level %d — %d%%\n", a.Level, a.Accuracy))
		}
	}

	if len(report.SpecificDifficulties) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("  Tricky questions:"))
		b.WriteString("\n")
		for i, diff := range report.SpecificDifficulties {
			if i >= 3 {
				break
			}
			b.WriteString(fmt.Sprintf("    %s (level %d) — missed %d%% of the time\n",
				diff.Shape, diff.Level, diff.ErrorRate))
		}
	}

	recent := d.statsSvc.RecentSessions(name, 3)
	if len(recent) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("  Recent sessions:"))
		b.WriteString("\n")
		for _, rec := range recent {
			total := rec.CorrectAnswers + rec.IncorrectAnswers
			b.WriteString(fmt.Sprintf("    %s  level %d  %d/%d correct  %s\n",
				rec.Date, rec.Level, rec.CorrectAnswers, total,
				sessionclock.FormatElapsed(time.Duration(rec.DurationSec)*time.Second)))
		}
	}

	return b.String()
}

func trendLabel(t adaptive.Trend) string {
	switch t {
	case adaptive.TrendImproving:
		return "Improving ↑"
	case adaptive.TrendDeclining:
		return "Needs attention ↓"
	case adaptive.TrendStable:
		return "Steady →"
	default:
		return "Not enough data yet"
	}
}
