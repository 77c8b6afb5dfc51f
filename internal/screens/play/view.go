package play

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/rahulnair/neuroplay/internal/adaptive"
	"github.com/rahulnair/neuroplay/internal/game"
	"github.com/rahulnair/neuroplay/internal/ui/theme"
)

func (p *PlayScreen) View(width, height int) string {
	if p.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	switch p.ctrl.Screen() {
	case game.ScreenWelcome:
		return p.renderWelcome(width)
	case game.ScreenGame:
		if p.ctrl.Paused() {
			return renderPaused(width)
		}
		if fb := p.ctrl.Feedback(); fb != nil {
			return p.renderFeedback(fb, width)
		}
		return p.renderQuestion(width)
	case game.ScreenLevelComplete:
		return p.renderLevelComplete(width)
	case game.ScreenBreak:
		return renderBreak(width)
	}
	return ""
}

func (p *PlayScreen) renderWelcome(width int) string {
	g := p.ctrl.Game()
	cfg := p.ctrl.LevelConfig()

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Width(width).Render(g.Title()))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("Level %d of %d — %s", p.ctrl.Level(), g.MaxLevel(), cfg.Name)))
	b.WriteString("\n\n")

	if p.ctrl.HasContinue() {
		b.WriteString(centered(width, theme.Body.Render("Press Enter to continue where you left off.")))
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint.Render("Press N to start over from level 1.")))
	} else {
		b.WriteString(centered(width, theme.Body.Render("Press Enter to start!")))
	}
	return b.String()
}

func (p *PlayScreen) renderQuestion(width int) string {
	cfg := p.ctrl.LevelConfig()
	sess := p.ctrl.Session()

	var b strings.Builder

	// Status line: level name, score, streak, countdown.
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Level %d: %s", p.ctrl.Level(), cfg.Name))

	var rightParts []string
	if sess != nil {
		rightParts = append(rightParts, fmt.Sprintf("✓ %d/%d", sess.CorrectCount, cfg.QuestionsRequired))
		if sess.CurrentStreak >= 2 {
			rightParts = append(rightParts, fmt.Sprintf("🔥 %d", sess.CurrentStreak))
		}
	}
	if p.settings.ShowTimer {
		if remain := p.ctrl.TimeRemaining(); remain > 0 {
			rightParts = append(rightParts, fmt.Sprintf("⏳ %ds", int(remain/time.Second)))
		}
	}
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(strings.Join(rightParts, "   "))

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if p.typed {
		q := p.ctrl.Question()
		b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Prompt)))
		b.WriteString("\n\n")
		b.WriteString(centered(width, "Answer: "+p.input.View()))
	} else {
		b.WriteString(p.mc.View())
	}

	if p.hint != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint.Render("Hint: "+p.hint)))
	}

	// Scaffolds earned by struggling.
	for _, sc := range p.ctrl.Scaffolds() {
		if sc == adaptive.ScaffoldShowHints && p.hint == "" {
			b.WriteString("\n")
			b.WriteString(centered(width, theme.Hint.Render("Stuck? Press Tab for a hint.")))
		}
	}

	return b.String()
}

func (p *PlayScreen) renderFeedback(fb *game.Feedback, width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	switch {
	case fb.Correct:
		b.WriteString(centered(width, theme.Correct.Render("✓ "+fb.Prompt)))
	case fb.TimedOut:
		b.WriteString(centered(width, theme.Incorrect.Render("⌛ Time's up!")))
	default:
		b.WriteString(centered(width, theme.Incorrect.Render("✗ Not quite.")))
	}

	if !fb.Correct && fb.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(centered(width, theme.Body.Render(fb.Explanation)))
	}

	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Press any key to continue")))
	return b.String()
}

func (p *PlayScreen) renderLevelComplete(width int) string {
	sess := p.ctrl.Session()
	rec := p.ctrl.Recommendation()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("⭐ Level Complete! ⭐"))
	b.WriteString("\n\n")

	if sess != nil {
		accuracy := adaptive.SessionAccuracy(sess.Answers)
		b.WriteString(centered(width, theme.Body.Render(
			fmt.Sprintf("%d correct out of %d answers (%d%%)",
				sess.CorrectCount, len(sess.Answers), int(accuracy*100)))))
		b.WriteString("\n")
		if sess.BestStreak >= 3 {
			b.WriteString(centered(width, theme.Body.Render(
				fmt.Sprintf("Best streak: %d in a row!", sess.BestStreak))))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch rec.Action {
	case adaptive.ActionAdvance:
		b.WriteString(centered(width, theme.Correct.Render("You're ready for the next level!")))
	case adaptive.ActionSimplify:
		b.WriteString(centered(width, theme.Body.Render("Let's practice this one a bit more.")))
	default:
		b.WriteString(centered(width, theme.Body.Render("Nice work — keep it going!")))
	}
	if rec.Reason != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Hint.Render(rec.Reason)))
	}
	return b.String()
}

func renderPaused(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, theme.Title.Render("Paused")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Body.Render("The session clock stopped while you were away.")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Hint.Render("Press any key to jump back in.")))
	return b.String()
}

func renderBreak(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Title.Render("🌟 Time for a break?")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Body.Render("You've been playing for a while. Rest your eyes,")))
	b.WriteString("\n")
	b.WriteString(centered(width, theme.Body.Render("stretch, grab some water — the game will wait.")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("B to take a break, K to keep playing")))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, theme.Title.Render("Leave the game?")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Body.Render("Your level and progress are saved.")))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint.Render("Y to leave, N to keep playing")))
	return b.String()
}

func centered(width int, s string) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}
