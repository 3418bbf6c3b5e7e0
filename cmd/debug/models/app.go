package models

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/VoidMesh/worldgen/internal/logging"
	"github.com/VoidMesh/worldgen/internal/world"
)

// ViewType represents the different views in the debug tool
type ViewType int

const (
	MenuView ViewType = iota
	MapExplorerView
	LegendView
	OverviewView

	viewCount
)

// App is the main application model
type App struct {
	// Current state
	world       *world.World
	generating  bool
	currentView ViewType
	width       int
	height      int

	// View models
	menu     MenuModel
	explorer MapExplorerModel
	legend   LegendModel
	overview OverviewModel

	// UI state
	showHelp bool
}

// NewApp creates a new application instance around a world already generated
// from the named preset.
func NewApp(wd *world.World, preset, startView string) *App {
	app := &App{
		world:       wd,
		currentView: MenuView,
	}

	// Initialize view models
	app.menu = NewMenuModel(preset, wd)
	app.explorer = NewMapExplorerModel(wd)
	app.legend = NewLegendModel(wd)
	app.overview = NewOverviewModel(wd)

	// Set starting view based on parameter
	switch startView {
	case "explorer", "map":
		app.currentView = MapExplorerView
	case "legend":
		app.currentView = LegendView
	case "overview":
		app.currentView = OverviewView
	default:
		app.currentView = MenuView
	}

	return app
}

// Init initializes the application
func (m *App) Init() tea.Cmd {
	log.Debug("Initializing debug tool", "seed", m.world.Seed(), "resolution", m.world.Resolution())
	return nil
}

// Update handles messages and updates the application state
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Update all view models with new size
		m.menu.SetSize(msg.Width, msg.Height)
		m.explorer.SetSize(msg.Width, msg.Height)
		m.legend.SetSize(msg.Width, msg.Height)
		m.overview.SetSize(msg.Width, msg.Height)

		return m, nil

	case tea.KeyMsg:
		// Global key bindings
		switch msg.String() {
		case "ctrl+c", "q":
			if m.currentView == MenuView || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			// If not in menu, go back to menu instead of quitting
			m.currentView = MenuView
			return m, nil

		case "?":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			m.currentView = (m.currentView + 1) % viewCount
			return m, nil
		}

	case SwitchViewMsg:
		m.currentView = msg.View
		return m, nil

	case RegenerateMsg:
		if m.generating {
			return m, nil
		}
		m.generating = true
		m.explorer.SetStatus("Generating...")
		return m, m.generateCmd(msg.Config)

	case WorldGeneratedMsg:
		m.generating = false
		m.setWorld(msg.World)
		m.explorer.SetStatus("Generated in " + msg.World.Duration().Round(time.Millisecond).String())
		return m, nil

	case worldErrorMsg:
		m.generating = false
		m.explorer.SetStatus("Error: " + string(msg))
		return m, nil
	}

	// Handle help view
	if m.showHelp {
		return m, nil
	}

	// Route message to current view
	switch m.currentView {
	case MenuView:
		newModel, cmd := m.menu.Update(msg)
		m.menu = newModel.(MenuModel)
		return m, cmd
	case MapExplorerView:
		newModel, cmd := m.explorer.Update(msg)
		m.explorer = newModel.(MapExplorerModel)
		return m, cmd
	case LegendView:
		newModel, cmd := m.legend.Update(msg)
		m.legend = newModel.(LegendModel)
		return m, cmd
	case OverviewView:
		newModel, cmd := m.overview.Update(msg)
		m.overview = newModel.(OverviewModel)
		return m, cmd
	}

	return m, nil
}

// View renders the application
func (m *App) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.currentView {
	case MenuView:
		return m.menu.View()
	case MapExplorerView:
		return m.explorer.View()
	case LegendView:
		return m.legend.View()
	case OverviewView:
		return m.overview.View()
	}

	return "Unknown view"
}

// setWorld swaps the displayed world in every view.
func (m *App) setWorld(wd *world.World) {
	m.world = wd
	m.menu.SetWorld(wd)
	m.explorer.SetWorld(wd)
	m.legend.SetWorld(wd)
	m.overview.SetWorld(wd)
}

// generateCmd builds a fresh world off the UI goroutine. The displayed world
// is never mutated, so views keep rendering it until the new one arrives.
func (m *App) generateCmd(cfg world.Config) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		wd, err := world.New(ctx, cfg, logging.NewDefaultLoggerWrapper())
		if err != nil {
			return worldErrorMsg(err.Error())
		}
		return WorldGeneratedMsg{World: wd}
	}
}

// renderHelp renders the help screen
func (m *App) renderHelp() string {
	help := `
+- Worldgen Debug Tool - Help ---------------------------+
|                                                        |
| Global Keys:                                           |
|   q            Quit (from menu) / Back to menu         |
|   Ctrl+C       Quit                                    |
|   ?            Toggle this help                        |
|   Tab          Cycle through views                     |
|   1-3          Select view (from menu)                 |
|                                                        |
| Views:                                                 |
|   1. Map Explorer  - Browse cells, reseed, resize      |
|   2. Biome Legend  - Colors and cell counts            |
|   3. Overview      - Parameters and histogram          |
|                                                        |
| Map Explorer:                                          |
|   Arrow keys   Move cursor                             |
|   Shift+Arrow  Pan one screen                          |
|   n / N        Next / previous seed                    |
|   + / -        Double / halve resolution               |
|   m            Cycle biome, elevation, moisture        |
|                                                        |
| Press ? again to close this help                       |
+--------------------------------------------------------+
`
	return help
}

// SwitchViewMsg is a message to switch views
type SwitchViewMsg struct {
	View ViewType
}

// NewSwitchViewMsg creates a new switch view message
func NewSwitchViewMsg(view ViewType) SwitchViewMsg {
	return SwitchViewMsg{View: view}
}

// RegenerateMsg asks the app to build a world from Config.
type RegenerateMsg struct {
	Config world.Config
}

// WorldGeneratedMsg carries a freshly generated world.
type WorldGeneratedMsg struct {
	World *world.World
}

type worldErrorMsg string
