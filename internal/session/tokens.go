package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// storedTokens is the on-disk credentials file shape.
type storedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FileTokenStore persists the token pair as a 0600 JSON file under the
// config directory. It implements domain.TokenStore.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

// NewFileTokenStore creates a store backed by the given file path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Tokens reads the stored pair; a missing or unreadable file means no
// session.
func (s *FileTokenStore) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", ""
	}
	var stored storedTokens
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", ""
	}
	return stored.AccessToken, stored.RefreshToken
}

// Save replaces the stored pair.
func (s *FileTokenStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}
	data, err := json.Marshal(storedTokens{AccessToken: access, RefreshToken: refresh})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes the credentials file.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps tokens in memory only.
type MemoryTokenStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

// NewMemoryTokenStore creates an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh
}

func (s *MemoryTokenStore) Save(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access, s.refresh = access, refresh
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	return s.Save("", "")
}
