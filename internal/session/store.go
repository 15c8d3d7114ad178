// Package session holds the single authentication token for the Yarnly
// client. The token is opaque: nothing here validates, refreshes, or expires
// it. Presence of a token is the only signal the UI uses to gate affordances.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"yarnly/internal/logging"
)

// tokenKey is the single named entry in durable storage. Matches the key the
// web client keeps in localStorage.
const tokenKey = "access_token"

// Store is the session capability injected into every component that needs
// to know whether a session exists. At most one token is held at a time.
type Store interface {
	// Token returns the current token, or false when logged out.
	Token() (string, bool)
	// SetToken persists the token for the rest of the process lifetime and
	// across restarts.
	SetToken(token string) error
	// Clear removes the token.
	Clear() error
}

// FileStore persists the token as a one-entry JSON file in the state dir.
// If storage is unreadable the client degrades to "always logged out".
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger *zap.Logger
}

// NewFileStore creates a store backed by dir/session.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		path:   filepath.Join(dir, "session.json"),
		logger: logging.Named("session"),
	}
}

func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("session storage unreadable, treating as logged out", zap.Error(err))
		}
		return "", false
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("session file corrupt, treating as logged out", zap.Error(err))
		return "", false
	}

	token, ok := entries[tokenKey]
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(map[string]string{tokenKey: token}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	// 0600: the token is a credential.
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Memory is an in-process Store for tests and ephemeral runs.
type Memory struct {
	mu    sync.Mutex
	token string
}

func (m *Memory) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *Memory) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
