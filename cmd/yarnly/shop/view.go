package shop

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"yarnly/cmd/yarnly/ui"
)

// View renders the full frame: header, active page (or popup), footer.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.header())
	sb.WriteString("\n")

	if m.popup != nil {
		body := m.popup.View()
		if m.width > 0 && m.height > 3 {
			body = lipgloss.Place(m.width, m.height-3, lipgloss.Center, lipgloss.Center, body)
		}
		sb.WriteString(body)
	} else {
		switch m.screen {
		case ui.ScreenLogin:
			sb.WriteString(m.login.View())
		case ui.ScreenSignUp:
			sb.WriteString(m.signup.View())
		default:
			sb.WriteString(m.dashboard.View())
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.footer())
	return sb.String()
}

func (m Model) header() string {
	title := m.styles.Header.Render(" Yarnly ")
	status := m.styles.Muted.Render("browsing as guest")
	if m.loggedIn {
		status = m.styles.Success.Render("signed in")
	}
	return title + "  " + status
}

func (m Model) footer() string {
	hints := []string{"ctrl+c quit"}
	if m.loggedIn {
		hints = append(hints, "ctrl+d log out")
	} else {
		hints = append(hints, "ctrl+l log in")
	}
	if m.popup == nil && m.screen == ui.ScreenDashboard {
		hints = append(hints, "tab category", "↑/↓ browse", "enter add to cart", "ctrl+w heart")
	}
	return m.styles.Footer.Render(strings.Join(hints, " · "))
}
