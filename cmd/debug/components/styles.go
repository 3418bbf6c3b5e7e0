package components

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/worldgen/internal/biome"
)

// Color definitions
var (
	// Primary colors
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#04B575")
	DangerColor    = lipgloss.Color("#F25D94")

	// Grayscale
	LightGray = lipgloss.Color("#D9D9D9")
	Gray      = lipgloss.Color("#8B8B8B")
	DarkGray  = lipgloss.Color("#383838")
)

// Base styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Align(lipgloss.Center).
			Padding(1, 2)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 1)

	// Border styles
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Gray).
			Padding(1)

	// Menu styles
	MenuItemStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 2)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)

	// Info panel styles
	InfoPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(1).
			Width(34)

	// Status bar style
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(DarkGray).
			Padding(0, 1)

	// Table styles
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	// Help styles
	HelpStyle = lipgloss.NewStyle().
			Foreground(Gray).
			Italic(true).
			Padding(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(DangerColor).
			Bold(true)

	// Grid styles (for map visualization)
	GridCellStyle = lipgloss.NewStyle().
			Width(2).
			Height(1)

	GridSelectedCellStyle = lipgloss.NewStyle().
				Width(2).
				Height(1).
				Background(lipgloss.Color("#FAFAFA")).
				Foreground(lipgloss.Color("#000000"))
)

const (
	EmptySymbol  = "  "
	CursorSymbol = "><"
	BarSymbol    = "█"
)

// BiomeColor returns the terminal color for b.
func BiomeColor(b biome.Biome) lipgloss.Color {
	return lipgloss.Color(b.Color().Hex())
}

// PixelColor returns the terminal color for an image pixel.
func PixelColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

// Swatch renders a two-cell block filled with c.
func Swatch(c lipgloss.Color) string {
	return GridCellStyle.Background(c).Render(EmptySymbol)
}

// Bar renders a horizontal bar of width cells in c.
func Bar(width int, c lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Foreground(c).Render(strings.Repeat(BarSymbol, width))
}

