package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors one theme is drawn with.
type Palette struct {
	Name            string
	Base            string
	Surface         string
	Surface2        string
	TextPrimary     string
	TextSecondary   string
	Border          string
	AccentPrimary   string
	AccentSecondary string
	AccentHover     string
	Error           string
}

var palettes = map[string]Palette{
	"dark": {
		Name:            "dark",
		Base:            "#101014",
		Surface:         "#1B1B1F",
		Surface2:        "#2C2C32",
		TextPrimary:     "#F0F0F5",
		TextSecondary:   "#A0A0B0",
		Border:          "#3A3A40",
		AccentPrimary:   "#8A5CF5",
		AccentSecondary: "#3B82F6",
		AccentHover:     "#A07CF8",
		Error:           "#F87171",
	},
	"light": {
		Name:            "light",
		Base:            "#F8F9FA",
		Surface:         "#FFFFFF",
		Surface2:        "#F1F5F9",
		TextPrimary:     "#1E293B",
		TextSecondary:   "#64748B",
		Border:          "#E2E8F0",
		AccentPrimary:   "#4F46E5",
		AccentSecondary: "#0EA5E9",
		AccentHover:     "#6366F1",
		Error:           "#DC2626",
	},
}

// PaletteFor returns the named palette, or the dark one for unknown names.
func PaletteFor(name string) Palette {
	if p, ok := palettes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return palettes["dark"]
}

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	Palette Palette

	Header   lipgloss.Style
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Panel    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Current  lipgloss.Style
}

func NewStyles(theme string) Styles {
	p := PaletteFor(theme)
	return Styles{
		Palette:  p,
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentPrimary)),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.TextPrimary)),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextPrimary)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextSecondary)),
		Panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(p.Border)).Padding(0, 1),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.AccentSecondary)),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Error)),
		Footer:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.TextSecondary)),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentHover)),
		Done:     lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color(p.TextSecondary)),
		Current:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentSecondary)),
	}
}

// Swatch renders a block in a category color. Invalid colors fall back to
// the muted text color.
func (s Styles) Swatch(color string) string {
	if !isHexColor(color) {
		color = s.Palette.TextSecondary
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("▌")
}

// HeatColor returns the cell color for a heatmap level from 0 to 4.
func (s Styles) HeatColor(level int) string {
	if level <= 0 {
		return s.Palette.Border
	}
	if level > 4 {
		level = 4
	}
	return blendHex(s.Palette.Surface2, s.Palette.AccentSecondary, 0.25+float64(level)*0.1875)
}

func isHexColor(c string) bool {
	if len(c) != 7 || c[0] != '#' {
		return false
	}
	_, err := strconv.ParseUint(c[1:], 16, 32)
	return err == nil
}

func blendHex(from, to string, t float64) string {
	if !isHexColor(from) || !isHexColor(to) {
		return to
	}
	a, _ := strconv.ParseUint(from[1:], 16, 32)
	b, _ := strconv.ParseUint(to[1:], 16, 32)
	mix := func(shift uint) uint64 {
		x := float64((a >> shift) & 0xFF)
		y := float64((b >> shift) & 0xFF)
		return uint64(x + (y-x)*t + 0.5)
	}
	return fmt.Sprintf("#%02X%02X%02X", mix(16), mix(8), mix(0))
}
