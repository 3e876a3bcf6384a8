package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ngocminh-dev/tcms-api/internal/models"
)

// State is one immutable snapshot of the admin session. IsAuthenticated is
// derived from the token and never stored independently.
type State struct {
	Token    string      `json:"token"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// IsAuthenticated reports whether the snapshot holds a live session.
func (s State) IsAuthenticated() bool {
	return s.Token != ""
}

// Store holds the session between commands, persisted as a JSON file so the
// session survives process restarts. There is exactly one writer at a time
// (login or logout); readers always observe a fully committed snapshot.
type Store struct {
	mu    sync.RWMutex
	path  string
	state State
}

// NewStore creates an in-memory store without persistence. Used by tests and
// by callers that manage persistence themselves.
func NewStore() *Store {
	return &Store{}
}

// Open loads the store backed by the given file. A missing file yields an
// empty, unauthenticated session rather than an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var state State
	if err := json.Unmarshal(buf, &state); err != nil {
		return nil, fmt.Errorf("decode session file %s: %w", path, err)
	}
	s.state = state
	return s, nil
}

// Current returns the session snapshot.
func (s *Store) Current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Login replaces the session with the authenticated identity. All fields are
// set together so a reader can never observe a half-written session.
func (s *Store) Login(token, username string, role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{Token: token, Username: username, Role: role}
	return s.persist()
}

// Logout clears the session. Calling it on an already empty store is a no-op
// that still succeeds.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	return s.persist()
}

func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	buf, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	// Session files carry the bearer token; keep them owner-only.
	if err := os.WriteFile(s.path, buf, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "tcmsadm", "session.json"), nil
}
