// Package pager shows a rendered listing in a scrollable, searchable view.
package pager

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the pager state.
type Model struct {
	// Data
	Title string
	Lines []string

	// UI State
	WindowSize tea.WindowSizeMsg
	Ready      bool
	ShowHelp   bool

	// Search State
	InputMode   bool
	InputBuffer textinput.Model
	Query       string
	Matches     []int // line numbers containing Query
	MatchIdx    int

	// Components
	Viewport viewport.Model
}

// New returns a pager over content.
func New(title, content string) Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search..."
	ti.CharLimit = 80
	ti.Width = 30

	return Model{
		Title:       title,
		Lines:       strings.Split(strings.TrimRight(content, "\n"), "\n"),
		InputBuffer: ti,
		Viewport:    viewport.New(0, 0),
	}
}

// Run shows content until the user quits.
func Run(title, content string) error {
	_, err := tea.NewProgram(New(title, content), tea.WithAltScreen()).Run()
	return err
}
