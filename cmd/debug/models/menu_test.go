package models

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenu_FooterDescribesWorld(t *testing.T) {
	wd := testWorld(t, 16)
	m := NewMenuModel("canvas", wd)

	footer := m.footer()
	assert.Contains(t, footer, "preset canvas")
	assert.Contains(t, footer, "seed 7")
	assert.Contains(t, footer, "16x16")
	assert.Contains(t, footer, string(wd.Algorithm()))
	assert.Contains(t, footer, fmt.Sprintf("%016x", wd.Fingerprint()))
	assert.Contains(t, m.View(), "preset canvas")

	m.SetWorld(testWorld(t, 8))
	assert.Contains(t, m.footer(), "8x8")
}

func TestMenu_FooterDefaults(t *testing.T) {
	m := NewMenuModel("", nil)
	assert.Equal(t, "preset default • no world loaded", m.footer())
}

func TestMenu_CursorWraps(t *testing.T) {
	m := NewMenuModel("default", nil)

	next, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m = next.(MenuModel)
	assert.Equal(t, len(menuEntries)-1, m.cursor)

	next, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m = next.(MenuModel)
	assert.Equal(t, 0, m.cursor)
}

func TestMenu_NumberSelectsView(t *testing.T) {
	m := NewMenuModel("default", nil)

	next, cmd := m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, next.(MenuModel).cursor)

	msg, ok := cmd().(SwitchViewMsg)
	require.True(t, ok)
	assert.Equal(t, LegendView, msg.View)

	_, cmd = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	assert.Nil(t, cmd)
}
