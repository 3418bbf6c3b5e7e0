package models

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/worldgen/cmd/debug/components"
	"github.com/VoidMesh/worldgen/internal/biome"
	"github.com/VoidMesh/worldgen/internal/world"
)

// maxBarWidth is the width of the most common biome's bar.
const maxBarWidth = 40

// OverviewModel shows the generation parameters and a biome histogram
type OverviewModel struct {
	world  *world.World
	width  int
	height int
}

// NewOverviewModel creates a new overview model
func NewOverviewModel(wd *world.World) OverviewModel {
	return OverviewModel{world: wd}
}

// Init initializes the overview
func (m OverviewModel) Init() tea.Cmd {
	return nil
}

// SetWorld replaces the summarized world.
func (m *OverviewModel) SetWorld(wd *world.World) {
	m.world = wd
}

// Update handles overview messages
func (m OverviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the overview
func (m OverviewModel) View() string {
	var s strings.Builder

	title := components.TitleStyle.Render("World Overview")
	s.WriteString(title + "\n\n")

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		components.InfoPanelStyle.Render(m.renderParameters()),
		components.BorderStyle.Render(m.renderHistogram()),
	)
	s.WriteString(content + "\n\n")

	statusBar := components.StatusBarStyle.Width(m.width).Render("'q' to go back • Tab for next view")
	s.WriteString(statusBar)

	return s.String()
}

func (m OverviewModel) renderParameters() string {
	cfg := m.world.Config()
	lo, hi := m.world.Elevation().MinMax()

	var b strings.Builder
	b.WriteString(components.SubtitleStyle.Render("Parameters") + "\n")
	b.WriteString(fmt.Sprintf("Seed:        %d\n", cfg.Seed))
	b.WriteString(fmt.Sprintf("Resolution:  %d\n", cfg.Resolution))
	b.WriteString(fmt.Sprintf("Algorithm:   %s\n", cfg.Algorithm))
	b.WriteString(fmt.Sprintf("Frequency:   %g\n", cfg.BaseFrequency))
	b.WriteString(fmt.Sprintf("Elev. exp:   %g\n", cfg.ElevationExponent))
	b.WriteString(fmt.Sprintf("Moist. exp:  %g\n", cfg.MoistureExponent))
	for i, o := range cfg.Octaves {
		b.WriteString(fmt.Sprintf("Octave %d:    %g x %g\n", i+1, o.Weight, o.Frequency))
	}
	if cfg.OceanClamp.Enabled {
		b.WriteString(fmt.Sprintf("Ocean clamp: %g\n", cfg.OceanClamp.Level))
	} else {
		b.WriteString("Ocean clamp: off\n")
	}

	b.WriteString("\n" + components.SubtitleStyle.Render("Result") + "\n")
	b.WriteString(fmt.Sprintf("Elevation:   %.3f..%.3f\n", lo, hi))
	b.WriteString(fmt.Sprintf("Took:        %s\n", m.world.Duration()))
	b.WriteString(fmt.Sprintf("Fingerprint: %016x\n", m.world.Fingerprint()))
	return b.String()
}

func (m OverviewModel) renderHistogram() string {
	hist := m.world.Histogram()
	ids := make([]biome.Biome, 0, len(hist))
	peak := 0
	for id, n := range hist {
		ids = append(ids, id)
		peak = max(peak, n)
	}
	sort.Slice(ids, func(i, j int) bool {
		if hist[ids[i]] != hist[ids[j]] {
			return hist[ids[i]] > hist[ids[j]]
		}
		return ids[i] < ids[j]
	})

	var b strings.Builder
	b.WriteString(components.SubtitleStyle.Render("Biome Histogram") + "\n")
	for _, id := range ids {
		width := hist[id] * maxBarWidth / peak
		if width == 0 {
			width = 1
		}
		b.WriteString(fmt.Sprintf("%-26s %7d ", id, hist[id]))
		b.WriteString(components.Bar(width, components.BiomeColor(id)) + "\n")
	}
	return b.String()
}

// SetSize updates the overview size
func (m *OverviewModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
