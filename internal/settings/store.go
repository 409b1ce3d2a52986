// Package settings persists window layout, theme and engine preferences.
package settings

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
)

// Store is the keyed settings file. The application creates one and passes it
// to whoever needs it.
type Store struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
}

// DefaultPath returns DOCKSHELL_SETTINGS, or settings.json under the user
// config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv("DOCKSHELL_SETTINGS"); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("locate config dir: %w", err)
		}
	}
	return filepath.Join(dir, "dockshell", "settings.json"), nil
}

// Open reads path if it exists. A missing file yields an empty store; a file
// that does not parse is an error.
func Open(path string) (*Store, error) {
	s := NewEmpty(path)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err := s.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return s, nil
}

// NewEmpty returns a store bound to path without reading it.
func NewEmpty(path string) *Store {
	return &Store{path: path, v: newViper(path)}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	return v
}

// Path is the backing file.
func (s *Store) Path() string {
	return s.path
}

// Contains reports whether key has a value.
func (s *Store) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.IsSet(key)
}

func (s *Store) Bool(key string, def bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.v.IsSet(key) {
		return def
	}
	return s.v.GetBool(key)
}

func (s *Store) String(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.v.IsSet(key) {
		return def
	}
	return s.v.GetString(key)
}

func (s *Store) Int(key string, def int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.v.IsSet(key) {
		return def
	}
	return s.v.GetInt(key)
}

// Bytes returns a binary value, or nil when the key is missing or not valid
// base64.
func (s *Store) Bytes(key string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.v.IsSet(key) {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(s.v.GetString(key))
	if err != nil || len(b) == 0 {
		return nil
	}
	return b
}

// Set stores a value in memory. Call Sync to write it out.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.v.Set(key, value)
	s.mu.Unlock()
}

// SetBytes stores a binary value base64-encoded. Nil removes nothing; it
// stores an empty string, which Bytes reads back as nil.
func (s *Store) SetBytes(key string, b []byte) {
	s.Set(key, base64.StdEncoding.EncodeToString(b))
}

// Keys lists every stored key, lower-cased and dot-separated.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.AllKeys()
}

// Sync writes the store to its file as JSON, creating the directory if
// needed. The file is always JSON whatever its extension; viper's own writer
// picks the format from the extension.
func (s *Store) Sync() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := json.MarshalIndent(s.v.AllSettings(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Clear deletes the settings file and forgets every value.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v = newViper(s.path)
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove settings: %w", err)
	}
	return nil
}
