package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adriagisbert/stayloom/pkg/domain"
)

// fileState is the on-disk shape: the "user" key holds the session, the
// "data" key the secondary profile cache.
type fileState struct {
	User domain.Session `json:"user"`
	Data Profile        `json:"data"`
}

// FileStore persists the session to a JSON file so it survives across runs
// of the client. Malformed or unreadable content is treated as logged out,
// never as an error — corrupt local state must not crash navigation.
type FileStore struct {
	path string
	mem  *MemoryStore
}

// DefaultPath returns ~/.stayloom/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".stayloom", "session.json"), nil
}

// NewFile creates a file-backed store at path, loading whatever valid state
// the file already holds.
func NewFile(path string) *FileStore {
	fs := &FileStore{path: path, mem: NewMemory()}
	fs.load()
	return fs
}

// load reads the file into the hot copy. Any failure leaves the store empty.
func (f *FileStore) load() {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return
	}
	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return
	}
	f.mem.Set(state.User)        //nolint:errcheck // memory set cannot fail
	f.mem.SetProfile(state.Data) //nolint:errcheck
}

// flush writes the full state to disk in one atomic rename so a concurrent
// reader never sees a half-written session.
func (f *FileStore) flush() error {
	s, _ := f.mem.Get()
	p, _ := f.mem.Profile()
	data, err := json.Marshal(fileState{User: s, Data: p})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Get returns the current session or absent.
func (f *FileStore) Get() (domain.Session, bool) {
	return f.mem.Get()
}

// Set replaces the session wholesale and persists it.
func (f *FileStore) Set(s domain.Session) error {
	if err := f.mem.Set(s); err != nil {
		return err
	}
	return f.flush()
}

// Clear removes the session and deletes the file.
func (f *FileStore) Clear() error {
	if err := f.mem.Clear(); err != nil {
		return err
	}
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Profile returns the cached name/surname pair.
func (f *FileStore) Profile() (Profile, bool) {
	return f.mem.Profile()
}

// SetProfile replaces the cached profile and persists it.
func (f *FileStore) SetProfile(p Profile) error {
	if err := f.mem.SetProfile(p); err != nil {
		return err
	}
	return f.flush()
}

// Token implements client.TokenSource.
func (f *FileStore) Token() string {
	return f.mem.Token()
}
