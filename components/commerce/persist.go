package commerce

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// SessionKey is the fixed storage key identifying the persisted state blob.
const SessionKey = "dashboard-store"

// PersistedSession is the durable projection of the store: the only fields
// that survive a restart. Orders and filters always reinitialize.
type PersistedSession struct {
	LoggedIn         bool  `json:"loggedIn"`
	User             *User `json:"user"`
	Theme            Theme `json:"theme"`
	SidebarCollapsed bool  `json:"sidebarCollapsed"`
}

// SessionStore is the persistence boundary for the session subset. Load
// reports ok=false when no record exists; a decode failure is returned as an
// error and treated by the store as "no persisted state".
type SessionStore interface {
	Load() (record PersistedSession, ok bool, err error)
	Save(record PersistedSession) error
}

// toPersisted projects the store onto its durable subset. Kept separate from
// the store so the projection can be tested independently of the full shape.
func toPersisted(s *Store) PersistedSession {
	record := PersistedSession{
		LoggedIn:         s.loggedIn,
		Theme:            s.theme,
		SidebarCollapsed: s.sidebarCollapsed,
	}
	if s.user != nil {
		user := *s.user
		record.User = &user
	}
	return record
}

// applyPersisted merges a restored record into a freshly-defaulted store.
func applyPersisted(s *Store, record PersistedSession) {
	s.loggedIn = record.LoggedIn
	s.sidebarCollapsed = record.SidebarCollapsed
	if record.Theme.Valid() {
		s.theme = record.Theme
	}
	if record.User != nil {
		user := *record.User
		s.user = &user
	} else {
		s.loggedIn = false
	}
}

// MemorySessionStore keeps the session record in process memory. Used by
// tests and as the default when no file path is configured.
type MemorySessionStore struct {
	mu     sync.Mutex
	record PersistedSession
	saved  bool
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{}
}

// Load returns the last saved record, if any.
func (m *MemorySessionStore) Load() (PersistedSession, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record, m.saved, nil
}

// Save retains the record for subsequent loads.
func (m *MemorySessionStore) Save(record PersistedSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record = record
	m.saved = true
	return nil
}

// FileSessionStore persists the session record as JSON under a fixed file
// derived from SessionKey. Writes go through a temp file + rename so a crash
// mid-write never leaves a torn record.
type FileSessionStore struct {
	mu   sync.Mutex
	path string
}

// NewFileSessionStore builds a file-backed store rooted at dir.
func NewFileSessionStore(dir string) *FileSessionStore {
	return &FileSessionStore{path: filepath.Join(dir, SessionKey+".json")}
}

// Path returns the backing file location.
func (f *FileSessionStore) Path() string { return f.path }

// Load reads and decodes the session file. A missing file is ok=false with no
// error; a corrupt file is returned as an error so callers fall back to
// defaults without crashing startup.
func (f *FileSessionStore) Load() (PersistedSession, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return PersistedSession{}, false, nil
		}
		return PersistedSession{}, false, fmt.Errorf("commerce: read session %s: %w", f.path, err)
	}
	var record PersistedSession
	if err := json.Unmarshal(data, &record); err != nil {
		return PersistedSession{}, false, fmt.Errorf("commerce: decode session %s: %w", f.path, err)
	}
	return record, true, nil
}

// Save encodes and durably writes the session record.
func (f *FileSessionStore) Save(record PersistedSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("commerce: encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("commerce: mkdir %s: %w", filepath.Dir(f.path), err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("commerce: write session %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("commerce: replace session %s: %w", f.path, err)
	}
	return nil
}
