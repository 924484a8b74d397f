package client

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// TokenStore holds the bearer credential between runs and tells interested
// observers when the signed-in identity changes.
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
	// Subscribe registers fn to run on every token change, including Clear,
	// with the new value ("" after Clear).
	Subscribe(fn func(token string))
}

// FileTokenStore persists the token in a file under the user config dir,
// filling the role the browser client gave localStorage.
type FileTokenStore struct {
	mu          sync.Mutex
	path        string
	token       string
	subscribers []func(string)
}

// NewFileTokenStore loads any previously saved token from path. An empty
// path defaults to <user-config-dir>/quizbit/token.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "quizbit", "token")
	}

	store := &FileTokenStore{path: path}
	if raw, err := os.ReadFile(path); err == nil {
		store.token = strings.TrimSpace(string(raw))
	}
	return store, nil
}

func (s *FileTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *FileTokenStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err == nil {
		if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
			log.Warn().Err(err).Str("path", s.path).Msg("Could not persist token")
		}
	}
	subscribers := append([]func(string){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(token)
	}
}

func (s *FileTokenStore) Clear() {
	s.mu.Lock()
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", s.path).Msg("Could not remove token file")
	}
	subscribers := append([]func(string){}, s.subscribers...)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn("")
	}
}

func (s *FileTokenStore) Subscribe(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// MemoryTokenStore is a TokenStore without persistence, for tests and
// throwaway sessions.
type MemoryTokenStore struct {
	mu          sync.Mutex
	token       string
	subscribers []func(string)
}

func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	subscribers := append([]func(string){}, s.subscribers...)
	s.mu.Unlock()
	for _, fn := range subscribers {
		fn(token)
	}
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	s.token = ""
	subscribers := append([]func(string){}, s.subscribers...)
	s.mu.Unlock()
	for _, fn := range subscribers {
		fn("")
	}
}

func (s *MemoryTokenStore) Subscribe(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}
