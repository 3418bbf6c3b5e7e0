package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/VoidMesh/worldgen/cmd/debug/components"
	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/world"
)

// LegendModel lists every biome with its color and cell count.
type LegendModel struct {
	histogram map[biome.Biome]int
	cells     int
	width     int
	height    int
}

// NewLegendModel creates a legend for wd.
func NewLegendModel(wd *world.World) LegendModel {
	var m LegendModel
	m.SetWorld(wd)
	return m
}

// Init initializes the legend
func (m LegendModel) Init() tea.Cmd {
	return nil
}

// SetWorld recounts biomes for wd.
func (m *LegendModel) SetWorld(wd *world.World) {
	m.histogram = wd.Histogram()
	m.cells = wd.Resolution() * wd.Resolution()
}

// Update handles legend messages
func (m LegendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the legend
func (m LegendModel) View() string {
	var s strings.Builder

	title := components.TitleStyle.Render("Biome Legend")
	s.WriteString(title + "\n\n")

	var rows []string
	rows = append(rows, components.TableHeaderStyle.Render(fmt.Sprintf("%-4s %-3s %-28s %-8s %8s %7s", "", "ID", "Name", "Color", "Cells", "Share")))
	for _, b := range biome.All() {
		count := m.histogram[b]
		share := 0.0
		if m.cells > 0 {
			share = 100 * float64(count) / float64(m.cells)
		}
		line := fmt.Sprintf("%-3d %-28s %-8s %8d %6.2f%%", uint8(b), b, b.Color().Hex(), count, share)
		rows = append(rows, components.Swatch(components.BiomeColor(b))+" "+components.TableCellStyle.Render(line))
	}
	s.WriteString(components.BorderStyle.Render(strings.Join(rows, "\n")) + "\n\n")

	statusBar := components.StatusBarStyle.Width(m.width).Render("'q' to go back • Tab for next view")
	s.WriteString(statusBar)

	return s.String()
}

// SetSize updates the legend size
func (m *LegendModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
