package pager

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func content(n int) string {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "\x1b[01;34mentry-%02d\x1b[0m\n", i)
	}
	return b.String()
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	return next.(Model)
}

func TestNewSplitsLines(t *testing.T) {
	m := New("/tmp", content(3))
	assert.Len(t, m.Lines, 3)
	assert.False(t, m.Ready)
	assert.Contains(t, m.View(), "Loading")
}

func TestWindowSize(t *testing.T) {
	m := sized(t, New("/tmp", content(30)))
	require.True(t, m.Ready)
	assert.Equal(t, 10, m.Viewport.Height)
	assert.Equal(t, 40, m.Viewport.Width)
	assert.Contains(t, m.View(), "entry-00")
	assert.NotContains(t, m.View(), "entry-29")
}

func TestQuit(t *testing.T) {
	m := sized(t, New("/tmp", content(3)))
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(k)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestSearch(t *testing.T) {
	m := sized(t, New("/tmp", content(30)))
	m = press(t, m, runes("/"))
	require.True(t, m.InputMode)

	m = press(t, m, runes("ENTRY-2"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.InputMode)
	assert.Equal(t, "ENTRY-2", m.Query)
	assert.Equal(t, []int{20, 21, 22, 23, 24, 25, 26, 27, 28, 29}, m.Matches)
	assert.Equal(t, 20, m.Viewport.YOffset)
	assert.Contains(t, m.View(), "match 1 of 10")

	m = press(t, m, runes("N"))
	assert.Equal(t, 9, m.MatchIdx)
	m = press(t, m, runes("n"))
	assert.Equal(t, 0, m.MatchIdx)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.Query)
	assert.Empty(t, m.Matches)
}

func TestSearchIgnoresEscapes(t *testing.T) {
	m := sized(t, New("/tmp", content(3)))
	m.search("34m")
	assert.Empty(t, m.Matches)
	assert.Contains(t, m.View(), `no match for "34m"`)
}

func TestSearchCancelled(t *testing.T) {
	m := sized(t, New("/tmp", content(3)))
	m = press(t, m, runes("/"), runes("x"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.InputMode)
	assert.Empty(t, m.Query)
}

func TestHelpToggle(t *testing.T) {
	m := sized(t, New("/tmp", content(3)))
	m = press(t, m, runes("?"))
	require.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "next / previous match")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.ShowHelp)
}
