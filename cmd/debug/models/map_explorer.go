package models

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/worldgen/cmd/debug/components"
	"github.com/VoidMesh/worldgen/internal/raster"
	"github.com/VoidMesh/worldgen/internal/world"
)

// Resolution bounds for the +/- keys.
const (
	minExplorerResolution = 16
	maxExplorerResolution = 2048
)

// MapExplorerModel shows a scrollable window of world cells with a cursor.
type MapExplorerModel struct {
	world *world.World
	mode  raster.Mode
	// image caches the rendering of world in mode.
	image *image.NRGBA

	// Cursor in world cells, window origin in world cells.
	cursorX int
	cursorY int
	originX int
	originY int
	width   int
	height  int

	status string
}

// NewMapExplorerModel creates a map explorer centered on wd.
func NewMapExplorerModel(wd *world.World) MapExplorerModel {
	m := MapExplorerModel{mode: raster.ModeBiome}
	m.SetWorld(wd)
	m.cursorX = wd.Resolution() / 2
	m.cursorY = wd.Resolution() / 2
	return m
}

// Init initializes the map explorer
func (m MapExplorerModel) Init() tea.Cmd {
	return nil
}

// SetWorld replaces the displayed world, keeping the cursor inside it.
func (m *MapExplorerModel) SetWorld(wd *world.World) {
	m.world = wd
	m.image, _ = raster.Render(wd, m.mode)
	m.cursorX = clamp(m.cursorX, 0, wd.Resolution()-1)
	m.cursorY = clamp(m.cursorY, 0, wd.Resolution()-1)
	m.follow()
}

// SetStatus sets the status bar message.
func (m *MapExplorerModel) SetStatus(status string) {
	m.status = status
}

// Update handles map explorer messages
func (m MapExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	res := m.world.Resolution()
	cols, rows := m.windowSize()

	switch keyMsg.String() {
	// Cursor movement
	case "up", "k":
		m.cursorY--
	case "down", "j":
		m.cursorY++
	case "left", "h":
		m.cursorX--
	case "right", "l":
		m.cursorX++

	// Page movement
	case "shift+up", "K":
		m.cursorY -= rows
	case "shift+down", "J":
		m.cursorY += rows
	case "shift+left", "H":
		m.cursorX -= cols
	case "shift+right", "L":
		m.cursorX += cols

	// Regeneration
	case "n":
		return m, m.regenerate(m.world.Seed()+1, res)
	case "N":
		return m, m.regenerate(m.world.Seed()-1, res)
	case "+", "=":
		if res*2 <= maxExplorerResolution {
			return m, m.regenerate(m.world.Seed(), res*2)
		}
		m.status = fmt.Sprintf("Resolution capped at %d", maxExplorerResolution)
	case "-", "_":
		if res/2 >= minExplorerResolution {
			return m, m.regenerate(m.world.Seed(), res/2)
		}
		m.status = fmt.Sprintf("Resolution floor is %d", minExplorerResolution)
	case "r":
		return m, m.regenerate(m.world.Seed(), res)

	case "m":
		m.mode = nextMode(m.mode)
		m.image, _ = raster.Render(m.world, m.mode)
	}

	m.cursorX = clamp(m.cursorX, 0, res-1)
	m.cursorY = clamp(m.cursorY, 0, res-1)
	m.follow()
	return m, nil
}

func (m MapExplorerModel) regenerate(seed int64, resolution int) tea.Cmd {
	cfg := m.world.Config()
	cfg.Seed = seed
	cfg.Resolution = resolution
	return func() tea.Msg {
		return RegenerateMsg{Config: cfg}
	}
}

// View renders the map explorer
func (m MapExplorerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	title := components.TitleStyle.Render(fmt.Sprintf("Map Explorer - seed %d, %dx%d", m.world.Seed(), m.world.Resolution(), m.world.Resolution()))
	s.WriteString(title + "\n")

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderGrid(),
		m.renderInfoPanel(),
	)
	s.WriteString(mainContent + "\n")
	s.WriteString(m.renderStatusBar())

	return s.String()
}

// renderGrid renders the visible window of cells
func (m MapExplorerModel) renderGrid() string {
	if m.image == nil {
		return components.BorderStyle.Render("No data")
	}

	cols, rows := m.windowSize()
	res := m.world.Resolution()

	var gridRows []string
	for y := m.originY; y < m.originY+rows && y < res; y++ {
		var row strings.Builder
		for x := m.originX; x < m.originX+cols && x < res; x++ {
			if x == m.cursorX && y == m.cursorY {
				row.WriteString(components.GridSelectedCellStyle.Render(components.CursorSymbol))
				continue
			}
			row.WriteString(components.Swatch(components.PixelColor(m.image.NRGBAAt(x, y))))
		}
		gridRows = append(gridRows, row.String())
	}

	return components.BorderStyle.Padding(0).Render(strings.Join(gridRows, "\n"))
}

// renderInfoPanel renders the cursor readout
func (m MapExplorerModel) renderInfoPanel() string {
	var info strings.Builder

	info.WriteString(components.SubtitleStyle.Render("Cell") + "\n")
	cell, err := m.world.Cell(m.cursorX, m.cursorY)
	if err != nil {
		info.WriteString(components.ErrorStyle.Render(err.Error()) + "\n")
	} else {
		info.WriteString(fmt.Sprintf("Position:  (%d, %d)\n", cell.X, cell.Y))
		info.WriteString(fmt.Sprintf("Elevation: %.4f\n", cell.Elevation))
		info.WriteString(fmt.Sprintf("Moisture:  %.4f\n", cell.Moisture))
		info.WriteString(fmt.Sprintf("Biome:     %s %s\n", components.Swatch(components.BiomeColor(cell.Biome)), cell.Biome))
	}

	info.WriteString("\n" + components.SubtitleStyle.Render("World") + "\n")
	info.WriteString(fmt.Sprintf("Seed:       %d\n", m.world.Seed()))
	info.WriteString(fmt.Sprintf("Resolution: %d\n", m.world.Resolution()))
	info.WriteString(fmt.Sprintf("Algorithm:  %s\n", m.world.Algorithm()))
	info.WriteString(fmt.Sprintf("Mode:       %s\n", m.mode))

	info.WriteString("\n" + components.SubtitleStyle.Render("Controls") + "\n")
	info.WriteString("Arrows: Move  Shift: Page\n")
	info.WriteString("n/N: Next/prev seed\n")
	info.WriteString("+/-: Resolution  r: Redo\n")
	info.WriteString("m: Mode  q: Back\n")

	return components.InfoPanelStyle.Render(info.String())
}

// renderStatusBar renders the status bar
func (m MapExplorerModel) renderStatusBar() string {
	status := []string{
		fmt.Sprintf("Window: (%d, %d)", m.originX, m.originY),
		fmt.Sprintf("Fingerprint: %016x", m.world.Fingerprint()),
	}
	if m.status != "" {
		status = append(status, m.status)
	}
	return components.StatusBarStyle.Width(m.width).Render(strings.Join(status, " • "))
}

// SetSize updates the map explorer size
func (m *MapExplorerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.follow()
}

// windowSize is the number of cells visible along each axis.
func (m MapExplorerModel) windowSize() (cols, rows int) {
	panel := lipgloss.Width(components.InfoPanelStyle.Render(""))
	cols = (m.width - panel - 2) / 2
	rows = m.height - 8
	return max(cols, 1), max(rows, 1)
}

// follow scrolls the window so the cursor stays visible.
func (m *MapExplorerModel) follow() {
	if m.world == nil {
		return
	}
	cols, rows := m.windowSize()
	res := m.world.Resolution()

	if m.cursorX < m.originX {
		m.originX = m.cursorX
	} else if m.cursorX >= m.originX+cols {
		m.originX = m.cursorX - cols + 1
	}
	if m.cursorY < m.originY {
		m.originY = m.cursorY
	} else if m.cursorY >= m.originY+rows {
		m.originY = m.cursorY - rows + 1
	}

	m.originX = clamp(m.originX, 0, max(res-cols, 0))
	m.originY = clamp(m.originY, 0, max(res-rows, 0))
}

func nextMode(mode raster.Mode) raster.Mode {
	modes := raster.Modes()
	for i, candidate := range modes {
		if candidate == mode {
			return modes[(i+1)%len(modes)]
		}
	}
	return raster.ModeBiome
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
