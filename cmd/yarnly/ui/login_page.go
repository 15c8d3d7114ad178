package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoginPageModel defines the state of the login form.
type LoginPageModel struct {
	width  int
	height int

	email    textinput.Model
	password textinput.Model
	focus    int

	state  FormState
	errMsg string

	styles Styles
}

// NewLoginPageModel creates a new login page.
func NewLoginPageModel(styles Styles) LoginPageModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 100
	email.Width = 36
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 100
	password.Width = 36
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return LoginPageModel{
		email:    email,
		password: password,
		styles:   styles,
	}
}

// SetSize updates the page dimensions.
func (m *LoginPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// State reports the current form lifecycle state.
func (m LoginPageModel) State() FormState { return m.state }

// SetError moves the form out of Submitting and shows the message.
func (m *LoginPageModel) SetError(msg string) {
	m.state = FormError
	m.errMsg = msg
}

// SetSuccess marks the submission as accepted.
func (m *LoginPageModel) SetSuccess() {
	m.state = FormSuccess
	m.errMsg = ""
}

// Reset returns the form to a blank idle state.
func (m *LoginPageModel) Reset() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.focus = 0
	m.email.Focus()
	m.password.Blur()
	m.state = FormIdle
	m.errMsg = ""
}

// Update handles messages.
func (m LoginPageModel) Update(msg tea.Msg) (LoginPageModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.email.Focus()
				m.password.Blur()
			} else {
				m.email.Blur()
				m.password.Focus()
			}
			return m, nil
		case "enter":
			// A submission already in flight wins; re-entry is ignored.
			if m.state == FormSubmitting {
				return m, nil
			}
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			if email == "" || password == "" {
				m.SetError("all fields are required")
				return m, nil
			}
			m.state = FormSubmitting
			m.errMsg = ""
			return m, func() tea.Msg {
				return LoginSubmitMsg{Email: email, Password: password}
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View renders the page.
func (m LoginPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Log in to Yarnly"))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.Label.Render("Email"))
	sb.WriteString(m.fieldStyle(0).Render(m.email.View()))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Label.Render("Password"))
	sb.WriteString(m.fieldStyle(1).Render(m.password.View()))
	sb.WriteString("\n\n")

	switch m.state {
	case FormSubmitting:
		sb.WriteString(m.styles.Info.Render("Signing in..."))
	case FormError:
		sb.WriteString(m.styles.Error.Render(m.errMsg))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("enter submit · ctrl+s sign up · esc back"))

	return m.styles.Content.Render(sb.String())
}

func (m LoginPageModel) fieldStyle(idx int) lipgloss.Style {
	if m.focus == idx {
		return m.styles.FieldFocus
	}
	return m.styles.FieldBlur
}
