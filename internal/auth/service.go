// Package auth implements the login, signup, and logout flows against the
// Yarnly auth endpoints. Server-side failure detail never reaches the user:
// credential failures collapse to ErrInvalidCredentials and the real reason
// is logged.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"yarnly/internal/api"
	"yarnly/internal/logging"
	"yarnly/internal/session"
)

var (
	// ErrInvalidCredentials is the only credential failure the UI shows.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMissingFields means a required field was empty. Blocked before any
	// request is sent.
	ErrMissingFields = errors.New("all fields are required")
)

// SignUpRequest is the JSON body for the signup endpoint.
type SignUpRequest struct {
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

// Validate enforces the required-field rule at the input layer.
func (r SignUpRequest) Validate() error {
	if r.UserName == "" || r.UserEmail == "" || r.Password == "" || r.Phone == "" {
		return ErrMissingFields
	}
	return nil
}

// tokenResponse is the relevant part of the token endpoint's reply.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Service wires the API client and session store together for auth flows.
type Service struct {
	client   *api.Client
	sessions session.Store
	logger   *zap.Logger
}

func NewService(client *api.Client, sessions session.Store) *Service {
	return &Service{
		client:   client,
		sessions: sessions,
		logger:   logging.Named("auth"),
	}
}

// SignUp registers a new account. It deliberately does not authenticate:
// the caller is sent back to the login flow afterwards.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.client.Post(ctx, "/auth/signup", req, nil, api.Options{}); err != nil {
		s.logger.Warn("signup failed", zap.String("email", req.UserEmail), zap.Error(err))
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.IsClient() {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("signup request failed: %w", err)
	}

	s.logger.Info("account created", zap.String("email", req.UserEmail))
	return nil
}

// Login exchanges credentials for a token and persists it. The token
// endpoint speaks OAuth2 password-grant conventions, so the credentials go
// form-encoded under the field names "username" and "password".
func (s *Service) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrMissingFields
	}

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tok tokenResponse
	err := s.client.Post(ctx, "/auth/token", form, &tok, api.Options{FormEncoded: true})
	if err != nil {
		s.logger.Warn("login failed", zap.String("email", email), zap.Error(err))
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.IsClient() {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("login request failed: %w", err)
	}
	if tok.AccessToken == "" {
		s.logger.Warn("token endpoint returned no access_token", zap.String("email", email))
		return ErrInvalidCredentials
	}

	if err := s.sessions.SetToken(tok.AccessToken); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	s.logger.Info("logged in", zap.String("email", email))
	return nil
}

// Logout clears the stored session.
func (s *Service) Logout() error {
	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// LoggedIn reports whether a session token is currently held.
func (s *Service) LoggedIn() bool {
	_, ok := s.sessions.Token()
	return ok
}
