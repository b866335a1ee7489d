package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/genba/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorBg     = lipgloss.Color("#282828")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Bar fills keyed by palette name. Each project color has a base shade for
// the project bar, a -dark border shade and a -light shade for its tasks.
var barColors = map[string]lipgloss.Color{
	"teal": "#2c9c8f", "teal-dark": "#1d6b62", "teal-light": "#7fcbc1",
	"orange": "#e07b39", "orange-dark": "#a85522", "orange-light": "#f2b184",
	"red": "#cc3d3d", "red-dark": "#8f2626", "red-light": "#ec8d8d",
	"yellow": "#d9a520", "yellow-dark": "#9c7512", "yellow-light": "#f0d27a",
	"indigo": "#5a5fc8", "indigo-dark": "#3a3e8f", "indigo-light": "#a3a6ec",
	"purple": "#9a4fc4", "purple-dark": "#6b318c", "purple-light": "#cfa2e8",
	"pink": "#d1508f", "pink-dark": "#953463", "pink-light": "#efa2c7",
	"blue": "#3b82c4", "blue-dark": "#25598c", "blue-light": "#93c0ea",
}

// BarColor resolves a palette name to a terminal color. Hex values pass
// through; anything else falls back to the dim color.
func BarColor(name string) lipgloss.Color {
	if c, ok := barColors[name]; ok {
		return c
	}
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name)
	}
	return ColorDim
}

// BarStyle is the filled style for a bar of the given palette color.
func BarStyle(name string) lipgloss.Style {
	return lipgloss.NewStyle().Background(BarColor(name)).Foreground(ColorBg)
}

// Swatch renders a short colored sample followed by the color name.
func Swatch(name string) string {
	if name == "" {
		return Dim("--")
	}
	return BarStyle(name).Render("  ") + " " + name
}

// NotificationLine renders a notification for a status bar.
func NotificationLine(n domain.Notification) string {
	if n.Level == domain.NotifyError {
		return StyleRed.Render("✖ " + n.Message)
	}
	return StyleGreen.Render("✔ " + n.Message)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
