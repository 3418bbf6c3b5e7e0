package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/VoidMesh/worldgen/cmd/debug/components"
	"github.com/VoidMesh/worldgen/internal/world"
)

// MenuEntry is one selectable view on the start screen.
type MenuEntry struct {
	Title   string
	Summary string
	View    ViewType
}

var menuEntries = []MenuEntry{
	{Title: "Map Explorer", Summary: "browse cells, reseed and resize", View: MapExplorerView},
	{Title: "Biome Legend", Summary: "colors and cell counts per biome", View: LegendView},
	{Title: "World Overview", Summary: "parameters and biome histogram", View: OverviewView},
}

// MenuModel is the start screen. Besides the view list it shows which world
// is loaded, since every other view reads from it.
type MenuModel struct {
	preset string
	world  *world.World
	cursor int
	width  int
	height int
}

// NewMenuModel creates the start screen for a world generated from preset.
func NewMenuModel(preset string, wd *world.World) MenuModel {
	if preset == "" {
		preset = world.DefaultPreset
	}
	return MenuModel{preset: preset, world: wd}
}

// Init initializes the menu
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update moves the cursor and emits a SwitchViewMsg on selection.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k":
		m.cursor = (m.cursor + len(menuEntries) - 1) % len(menuEntries)
	case "down", "j":
		m.cursor = (m.cursor + 1) % len(menuEntries)
	case "enter", " ":
		return m, m.selectCmd()
	default:
		if len(s) == 1 && s[0] >= '1' && int(s[0]-'1') < len(menuEntries) {
			m.cursor = int(s[0] - '1')
			return m, m.selectCmd()
		}
	}
	return m, nil
}

func (m MenuModel) selectCmd() tea.Cmd {
	view := menuEntries[m.cursor].View
	return func() tea.Msg { return NewSwitchViewMsg(view) }
}

// View renders the menu
func (m MenuModel) View() string {
	var s strings.Builder
	s.WriteString(components.TitleStyle.Render("Worldgen Debug Tool") + "\n\n")

	items := make([]string, len(menuEntries))
	for i, e := range menuEntries {
		style := components.MenuItemStyle
		if i == m.cursor {
			style = components.SelectedMenuItemStyle
		}
		items[i] = style.Render(fmt.Sprintf("%d. %-16s %s", i+1, e.Title, e.Summary))
	}
	s.WriteString(components.BorderStyle.Width(60).Render(strings.Join(items, "\n")) + "\n\n")

	s.WriteString(components.StatusBarStyle.Render(m.footer()) + "\n")
	s.WriteString(components.HelpStyle.Render("↑/↓ or j/k to move • enter or 1-3 to open • ? help • q quit"))

	content := s.String()
	if w := lipgloss.Width(content); m.width > w {
		content = lipgloss.NewStyle().PaddingLeft((m.width - w) / 2).Render(content)
	}
	return content
}

// footer summarises the loaded world on one line.
func (m MenuModel) footer() string {
	if m.world == nil {
		return "preset " + m.preset + " • no world loaded"
	}
	return fmt.Sprintf("preset %s • seed %d • %dx%d • %s • %016x",
		m.preset, m.world.Seed(), m.world.Resolution(), m.world.Resolution(),
		m.world.Algorithm(), m.world.Fingerprint())
}

// SetWorld replaces the world shown in the footer.
func (m *MenuModel) SetWorld(wd *world.World) {
	m.world = wd
}

// SetSize updates the menu size
func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
