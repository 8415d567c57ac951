package pager

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"xlsd/internal/width"
)

// chrome is the number of lines taken by the title and the footer.
const chrome = 2

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.Viewport.Width = msg.Width
		m.Viewport.Height = max(msg.Height-chrome, 1)
		if !m.Ready {
			m.Viewport.SetContent(strings.Join(m.Lines, "\n"))
			m.Ready = true
		}
		return m, nil

	case tea.KeyMsg:
		if m.InputMode {
			switch msg.Type {
			case tea.KeyEnter:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.search(m.InputBuffer.Value())
				return m, nil
			case tea.KeyEsc:
				m.InputMode = false
				m.InputBuffer.Blur()
				m.InputBuffer.SetValue("")
				return m, nil
			}
			m.InputBuffer, cmd = m.InputBuffer.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "?":
			m.ShowHelp = !m.ShowHelp
			return m, nil
		case "esc":
			if m.ShowHelp {
				m.ShowHelp = false
				return m, nil
			}
			m.search("")
			return m, nil
		case "/":
			m.InputMode = true
			m.InputBuffer.SetValue("")
			focus := m.InputBuffer.Focus()
			return m, tea.Batch(focus, textinput.Blink)
		case "n":
			m.jump(1)
			return m, nil
		case "N":
			m.jump(-1)
			return m, nil
		}
	}

	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// search records the lines whose visible text contains query, ignoring case,
// and scrolls to the first one.
func (m *Model) search(query string) {
	m.Query = query
	m.Matches = nil
	m.MatchIdx = 0
	if query == "" {
		return
	}
	needle := strings.ToLower(query)
	for i, line := range m.Lines {
		if strings.Contains(strings.ToLower(width.Strip(line)), needle) {
			m.Matches = append(m.Matches, i)
		}
	}
	if len(m.Matches) > 0 {
		m.Viewport.SetYOffset(m.Matches[0])
	}
}

// jump moves to the next (delta 1) or previous (delta -1) match, wrapping.
func (m *Model) jump(delta int) {
	if len(m.Matches) == 0 {
		return
	}
	m.MatchIdx = (m.MatchIdx + delta + len(m.Matches)) % len(m.Matches)
	m.Viewport.SetYOffset(m.Matches[m.MatchIdx])
}
