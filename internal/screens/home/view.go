package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/rahulnair/neuroplay/internal/ui/theme"
)

const titleFull = ` ╔╗╔ ╔═╗ ╦ ╦ ╦═╗ ╔═╗ ╔═╗ ╦   ╔═╗ ╦ ╦
 ║║║ ║╣  ║ ║ ╠╦╝ ║ ║ ╠═╝ ║   ╠═╣ ╚╦╝
 ╝╚╝ ╚═╝ ╚═╝ ╩╚═ ╚═╝ ╩   ╩═╝ ╩ ╩  ╩`

const titleCompact = "N · E · U · R · O · P · L · A · Y"

func (h *HomeScreen) View(width, height int) string {
	// Stats are re-read every frame so they stay fresh after a game or
	// the dashboard is popped off the stack.
	robuxCount := storage.GetRobuxCount(h.kv)
	all := h.statsSvc.AllGameStats()

	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		variant := MascotIdle
		if h.statsSvc.BreakDue() {
			variant = MascotSleepy
		} else if h.playedToday() {
			variant = MascotCelebrating
		}
		sections = append(sections, renderMascotBox(variant, cw))
	}

	sections = append(sections, renderStatsBar(
		robuxCount, all.Totals.TotalCorrect,
		time.Duration(all.Totals.TotalPlayTimeSec)*time.Second, cw, compact))

	if compact {
		sections = append(sections, renderMenuCompact(h.labels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.labels, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")
	return renderCabinetFrame(content, width, height)
}

// playedToday reports whether any game has a finished session dated
// today. It drives the celebrating mascot.
func (h *HomeScreen) playedToday() bool {
	today := time.Now().Format("2006-01-02")
	for _, g := range levels.Names() {
		if len(h.statsSvc.SessionsByDate(g, today)) > 0 {
			return true
		}
	}
	return false
}

// contentWidth returns the uniform inner width used for all sections
// so the boxes line up.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(titleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(titleFull))
}

// renderStatsBar renders the totals in a bordered box matching content width.
func renderStatsBar(robuxCount, correct int, playTime time.Duration, cw int, compact bool) string {
	robuxStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	correctStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	timeStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var statLine string
	if compact {
		statLine = fmt.Sprintf("%s %s %s",
			robuxStyle.Render(fmt.Sprintf("◆%d", robuxCount)),
			correctStyle.Render(fmt.Sprintf("✓%d", correct)),
			timeStyle.Render("⏱"+sessionclock.FormatElapsed(playTime)),
		)
	} else {
		statLine = fmt.Sprintf("%s  %s  %s",
			robuxStyle.Render(fmt.Sprintf("◆ %d ROBUX", robuxCount)),
			correctStyle.Render(fmt.Sprintf("✓ %d CORRECT", correct)),
			timeStyle.Render("⏱ "+sessionclock.FormatElapsed(playTime)+" PLAYED"),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(statLine)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Accent).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMenuCompact renders menu items as simple text lines for very
// small terminals where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderCabinetFrame wraps content in a double-border frame, centering
// vertically and horizontally within the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
