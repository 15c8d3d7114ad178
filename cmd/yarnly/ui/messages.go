package ui

import (
	"yarnly/internal/auth"
	"yarnly/internal/cart"
	"yarnly/internal/catalog"
)

// Screen identifies which page is currently active.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenLogin
	ScreenSignUp
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenSignUp:
		return "signup"
	default:
		return "dashboard"
	}
}

// CatalogMsg carries a fetched product list. Seq is the fetch generation it
// belongs to; results from superseded fetches are dropped.
type CatalogMsg struct {
	Seq      int
	Products []catalog.Product
}

// LoginSubmitMsg is emitted by the login page when the user submits the form.
type LoginSubmitMsg struct {
	Email    string
	Password string
}

// SignUpSubmitMsg is emitted by the signup page on submit.
type SignUpSubmitMsg struct {
	Request auth.SignUpRequest
}

// LoginResultMsg reports the outcome of an in-flight login.
type LoginResultMsg struct {
	Err error
}

// SignUpResultMsg reports the outcome of an in-flight signup.
type SignUpResultMsg struct {
	Err error
}

// OpenCartMsg asks the root model to open the add-to-cart popup.
type OpenCartMsg struct {
	Product catalog.Product
}

// CartConfirmedMsg is emitted when the popup's add action is confirmed.
type CartConfirmedMsg struct {
	Selection cart.Selection
}

// CartCancelledMsg is emitted when the popup is dismissed.
type CartCancelledMsg struct{}
