// Package shop implements the root bubbletea model for the Yarnly terminal
// storefront. It owns screen navigation, the network commands, and the
// add-to-cart popup; the individual pages live in the ui package.
package shop

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"yarnly/cmd/yarnly/ui"
	"yarnly/internal/auth"
	"yarnly/internal/cart"
	"yarnly/internal/catalog"
	"yarnly/internal/logging"
)

// Model is the top-level storefront model.
type Model struct {
	width  int
	height int

	styles  ui.Styles
	authSvc *auth.Service
	fetcher *catalog.Fetcher
	timeout time.Duration
	logger  *zap.Logger

	screen    ui.Screen
	dashboard ui.DashboardPageModel
	login     ui.LoginPageModel
	signup    ui.SignUpPageModel
	popup     *ui.CartPopupModel

	// fetchSeq is the generation of the most recent catalog fetch. Results
	// tagged with an older generation are stale and dropped.
	fetchSeq int

	loggedIn bool
}

// New assembles the storefront model.
func New(authSvc *auth.Service, fetcher *catalog.Fetcher, timeout time.Duration) Model {
	styles := ui.DefaultStyles()
	return Model{
		styles:    styles,
		authSvc:   authSvc,
		fetcher:   fetcher,
		timeout:   timeout,
		logger:    logging.Named("shop"),
		screen:    ui.ScreenDashboard,
		dashboard: ui.NewDashboardPageModel(styles),
		login:     ui.NewLoginPageModel(styles),
		signup:    ui.NewSignUpPageModel(styles),
		fetchSeq:  1,
		loggedIn:  authSvc.LoggedIn(),
	}
}

// Init kicks off the initial catalog fetch.
func (m Model) Init() tea.Cmd {
	return m.fetchCatalog(m.fetchSeq)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		pageH := msg.Height - 3 // header and footer
		m.dashboard.SetSize(msg.Width, pageH)
		m.login.SetSize(msg.Width, pageH)
		m.signup.SetSize(msg.Width, pageH)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ui.LoginSubmitMsg:
		return m, m.submitLogin(msg.Email, msg.Password)

	case ui.LoginResultMsg:
		if msg.Err != nil {
			m.login.SetError(userFacing(msg.Err))
			return m, nil
		}
		m.login.SetSuccess()
		m.loggedIn = true
		return m.gotoDashboard()

	case ui.SignUpSubmitMsg:
		return m, m.submitSignUp(msg.Request)

	case ui.SignUpResultMsg:
		if msg.Err != nil {
			m.signup.SetError(userFacing(msg.Err))
			return m, nil
		}
		// Signup never authenticates; the new account logs in explicitly.
		m.signup.SetSuccess()
		m.screen = ui.ScreenLogin
		m.login.Reset()
		return m, nil

	case ui.CatalogMsg:
		if msg.Seq != m.fetchSeq {
			m.logger.Debug("dropping stale catalog result",
				zap.Int("seq", msg.Seq), zap.Int("current", m.fetchSeq))
			return m, nil
		}
		m.dashboard.SetCatalog(msg.Products)
		return m, nil

	case ui.OpenCartMsg:
		sel, err := cart.NewSelection(msg.Product)
		if err != nil {
			return m, nil
		}
		popup := ui.NewCartPopupModel(sel, m.styles)
		m.popup = &popup
		return m, nil

	case ui.CartConfirmedMsg:
		m.logger.Info("added to cart",
			zap.String("product", msg.Selection.Product.Name),
			zap.Int("quantity", msg.Selection.Quantity))
		m.popup = nil
		return m, nil

	case ui.CartCancelledMsg:
		m.popup = nil
		return m, nil
	}

	return m.routeToPage(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+l":
		if m.loggedIn || m.screen == ui.ScreenLogin || m.popup != nil {
			break
		}
		m.screen = ui.ScreenLogin
		m.login.Reset()
		return m, nil

	case "ctrl+d":
		if !m.loggedIn || m.popup != nil {
			break
		}
		if err := m.authSvc.Logout(); err != nil {
			m.logger.Warn("logout failed", zap.Error(err))
		}
		m.loggedIn = false
		// Back to browsing as a guest, in the same pass.
		return m.gotoDashboard()

	case "ctrl+s":
		switch m.screen {
		case ui.ScreenLogin:
			m.screen = ui.ScreenSignUp
			m.signup.Reset()
			return m, nil
		case ui.ScreenSignUp:
			m.screen = ui.ScreenLogin
			m.login.Reset()
			return m, nil
		}

	case "esc":
		if m.popup != nil {
			break // the popup handles its own dismissal
		}
		if m.screen != ui.ScreenDashboard {
			return m.gotoDashboard()
		}
	}

	return m.routeToPage(msg)
}

// routeToPage forwards a message to the popup if one is open, otherwise to
// the active page.
func (m Model) routeToPage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.popup != nil {
		popup, cmd := m.popup.Update(msg)
		m.popup = &popup
		return m, cmd
	}
	switch m.screen {
	case ui.ScreenLogin:
		m.login, cmd = m.login.Update(msg)
	case ui.ScreenSignUp:
		m.signup, cmd = m.signup.Update(msg)
	default:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

// gotoDashboard activates the dashboard with fresh filter state and starts a
// new catalog fetch generation.
func (m Model) gotoDashboard() (tea.Model, tea.Cmd) {
	m.screen = ui.ScreenDashboard
	m.popup = nil
	m.dashboard.Activate()
	m.fetchSeq++
	return m, m.fetchCatalog(m.fetchSeq)
}

// userFacing collapses an auth error to the message shown in the form.
// Anything that is not a credential or validation problem stays generic;
// the detail is already logged.
func userFacing(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, auth.ErrMissingFields):
		return "All fields are required"
	default:
		return "Something went wrong. Please try again."
	}
}
