package home

import (
	"charm.land/lipgloss/v2"

	"github.com/rahulnair/neuroplay/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // default
	MascotCelebrating                      // played today
	MascotSleepy                           // break is due
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ⏰×÷ │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ⏰×÷ │
└─╥═╥─┘
  ╚═╝`

const mascotSleepy = `┌─────┐
│ ─ ─ │ z
│  ▽  │  z
│ ⏰×÷ │
└─────┘`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Accent
	case MascotSleepy:
		art = mascotSleepy
		fg = theme.TextDim
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
