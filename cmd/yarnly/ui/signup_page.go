package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"yarnly/internal/auth"
)

// SignUpPageModel defines the state of the account creation form.
type SignUpPageModel struct {
	width  int
	height int

	fields []textinput.Model
	labels []string
	focus  int

	state  FormState
	errMsg string

	styles Styles
}

const (
	signupFieldName = iota
	signupFieldEmail
	signupFieldPhone
	signupFieldPassword
	signupFieldCount
)

// NewSignUpPageModel creates a new signup page.
func NewSignUpPageModel(styles Styles) SignUpPageModel {
	labels := []string{"Name", "Email", "Phone", "Password"}
	placeholders := []string{"your name", "you@example.com", "phone number", "password"}

	fields := make([]textinput.Model, signupFieldCount)
	for i := range fields {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 100
		ti.Width = 36
		fields[i] = ti
	}
	fields[signupFieldPassword].EchoMode = textinput.EchoPassword
	fields[signupFieldPassword].EchoCharacter = '•'
	fields[signupFieldName].Focus()

	return SignUpPageModel{
		fields: fields,
		labels: labels,
		styles: styles,
	}
}

// SetSize updates the page dimensions.
func (m *SignUpPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// State reports the current form lifecycle state.
func (m SignUpPageModel) State() FormState { return m.state }

// SetError moves the form out of Submitting and shows the message.
func (m *SignUpPageModel) SetError(msg string) {
	m.state = FormError
	m.errMsg = msg
}

// SetSuccess marks the account as created.
func (m *SignUpPageModel) SetSuccess() {
	m.state = FormSuccess
	m.errMsg = ""
}

// Reset returns the form to a blank idle state.
func (m *SignUpPageModel) Reset() {
	for i := range m.fields {
		m.fields[i].SetValue("")
		m.fields[i].Blur()
	}
	m.focus = signupFieldName
	m.fields[signupFieldName].Focus()
	m.state = FormIdle
	m.errMsg = ""
}

func (m *SignUpPageModel) setFocus(idx int) {
	m.focus = idx
	for i := range m.fields {
		if i == idx {
			m.fields[i].Focus()
		} else {
			m.fields[i].Blur()
		}
	}
}

// Request assembles the signup payload from the current field values.
func (m SignUpPageModel) Request() auth.SignUpRequest {
	return auth.SignUpRequest{
		UserName:  strings.TrimSpace(m.fields[signupFieldName].Value()),
		UserEmail: strings.TrimSpace(m.fields[signupFieldEmail].Value()),
		Phone:     strings.TrimSpace(m.fields[signupFieldPhone].Value()),
		Password:  m.fields[signupFieldPassword].Value(),
	}
}

// Update handles messages.
func (m SignUpPageModel) Update(msg tea.Msg) (SignUpPageModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % signupFieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + signupFieldCount - 1) % signupFieldCount)
			return m, nil
		case "enter":
			if m.state == FormSubmitting {
				return m, nil
			}
			req := m.Request()
			if err := req.Validate(); err != nil {
				m.SetError(err.Error())
				return m, nil
			}
			m.state = FormSubmitting
			m.errMsg = ""
			return m, func() tea.Msg {
				return SignUpSubmitMsg{Request: req}
			}
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	for i := range m.fields {
		m.fields[i], cmd = m.fields[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the page.
func (m SignUpPageModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Create your Yarnly account"))
	sb.WriteString("\n\n")

	for i, field := range m.fields {
		sb.WriteString(m.styles.Label.Render(m.labels[i]))
		sb.WriteString(m.fieldStyle(i).Render(field.View()))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch m.state {
	case FormSubmitting:
		sb.WriteString(m.styles.Info.Render("Creating account..."))
	case FormError:
		sb.WriteString(m.styles.Error.Render(m.errMsg))
	case FormSuccess:
		sb.WriteString(m.styles.Success.Render("Account created. Log in to continue."))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("enter submit · ctrl+s log in · esc back"))

	return m.styles.Content.Render(sb.String())
}

func (m SignUpPageModel) fieldStyle(idx int) lipgloss.Style {
	if m.focus == idx {
		return m.styles.FieldFocus
	}
	return m.styles.FieldBlur
}
