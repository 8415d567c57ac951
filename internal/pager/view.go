package pager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.Ready {
		return "\n  Loading..."
	}
	if m.ShowHelp {
		return m.renderHelpDialog()
	}
	return titleStyle.Render(m.Title) + "\n" + m.Viewport.View() + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.InputMode {
		return m.InputBuffer.View()
	}
	status := fmt.Sprintf("%d/%d", min(m.Viewport.YOffset+m.Viewport.Height, len(m.Lines)), len(m.Lines))
	if m.Query != "" {
		if len(m.Matches) == 0 {
			status += " · " + matchStyle.Render(fmt.Sprintf("no match for %q", m.Query))
		} else {
			status += " · " + matchStyle.Render(fmt.Sprintf("match %d of %d", m.MatchIdx+1, len(m.Matches)))
		}
	}
	return footerStyle.Render(status + " · / search · ? help · q quit")
}

func (m Model) renderHelpDialog() string {
	keys := [][2]string{
		{"↑/k ↓/j", "scroll"},
		{"pgup/pgdn", "page"},
		{"/", "search"},
		{"n / N", "next / previous match"},
		{"esc", "clear search"},
		{"q", "quit"},
	}
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-10s %s", k[0], k[1])
	}
	return lipgloss.Place(m.WindowSize.Width, m.WindowSize.Height,
		lipgloss.Center, lipgloss.Center,
		helpStyle.Render(b.String()),
	)
}
