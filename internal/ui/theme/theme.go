// Package theme holds the shared palette and text styles. The palette
// can be swapped at startup to match the player's saved theme.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is one named color scheme.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	BgDark    color.Color
	BgCard    color.Color
	Border    color.Color
}

// Named palettes — kid-friendly, bright but not garish. Ocean is the
// default.
var palettes = map[string]Palette{
	"ocean": {
		Primary:   lipgloss.Color("#0EA5E9"), // Sky Blue
		Secondary: lipgloss.Color("#14B8A6"), // Teal
		Accent:    lipgloss.Color("#FACC15"), // Sand Yellow
		Success:   lipgloss.Color("#22C55E"), // Green
		Error:     lipgloss.Color("#F43F5E"), // Rose
		Text:      lipgloss.Color("#F8FAFC"), // White
		TextDim:   lipgloss.Color("#94A3B8"), // Slate
		BgDark:    lipgloss.Color("#0C1A2E"), // Deep Sea
		BgCard:    lipgloss.Color("#16324F"), // Mid Sea
		Border:    lipgloss.Color("#2C4A6E"), // Shelf
	},
	"space": {
		Primary:   lipgloss.Color("#8B5CF6"), // Vivid Purple
		Secondary: lipgloss.Color("#6366F1"), // Indigo
		Accent:    lipgloss.Color("#F97316"), // Rocket Orange
		Success:   lipgloss.Color("#22C55E"),
		Error:     lipgloss.Color("#F43F5E"),
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		BgDark:    lipgloss.Color("#0F172A"),
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
	},
	"forest": {
		Primary:   lipgloss.Color("#16A34A"), // Leaf Green
		Secondary: lipgloss.Color("#65A30D"), // Moss
		Accent:    lipgloss.Color("#EAB308"), // Sunlight
		Success:   lipgloss.Color("#22C55E"),
		Error:     lipgloss.Color("#F43F5E"),
		Text:      lipgloss.Color("#F7FEE7"),
		TextDim:   lipgloss.Color("#A3A3A3"),
		BgDark:    lipgloss.Color("#14261A"),
		BgCard:    lipgloss.Color("#1F3A29"),
		Border:    lipgloss.Color("#35573E"),
	},
}

// Current palette colors, referenced by every style below.
var (
	Primary   = palettes["ocean"].Primary
	Secondary = palettes["ocean"].Secondary
	Accent    = palettes["ocean"].Accent
	Success   = palettes["ocean"].Success
	Error     = palettes["ocean"].Error
	Text      = palettes["ocean"].Text
	TextDim   = palettes["ocean"].TextDim
	BgDark    = palettes["ocean"].BgDark
	BgCard    = palettes["ocean"].BgCard
	Border    = palettes["ocean"].Border
)

// Apply switches to a named palette and rebuilds the styles. Unknown
// names fall back to ocean.
func Apply(name string) {
	p, ok := palettes[name]
	if !ok {
		p = palettes["ocean"]
	}
	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	BgDark = p.BgDark
	BgCard = p.BgCard
	Border = p.Border
	rebuild()
}

// Names lists the available palettes with the default first.
func Names() []string {
	return []string{"ocean", "space", "forest"}
}

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

func rebuild() {
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Text).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}

func init() {
	rebuild()
}
