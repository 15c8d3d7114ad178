package shop

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"yarnly/cmd/yarnly/ui"
	"yarnly/internal/auth"
)

// fetchCatalog loads the product list off the event loop. The result carries
// the fetch generation so superseded responses can be discarded.
func (m Model) fetchCatalog(seq int) tea.Cmd {
	fetcher, timeout := m.fetcher, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ui.CatalogMsg{Seq: seq, Products: fetcher.FetchAll(ctx)}
	}
}

func (m Model) submitLogin(email, password string) tea.Cmd {
	svc, timeout := m.authSvc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ui.LoginResultMsg{Err: svc.Login(ctx, email, password)}
	}
}

func (m Model) submitSignUp(req auth.SignUpRequest) tea.Cmd {
	svc, timeout := m.authSvc, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ui.SignUpResultMsg{Err: svc.SignUp(ctx, req)}
	}
}
