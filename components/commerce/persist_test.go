package commerce

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPersistedProjectionRoundTrip(t *testing.T) {
	user := User{Name: "A", Email: "a@b.com", Role: RoleAdmin}
	s := &Store{
		loggedIn:         true,
		user:             &user,
		theme:            ThemeDark,
		sidebarCollapsed: true,
		filters:          Filters{Search: "never persisted"},
	}

	record := toPersisted(s)
	if !record.LoggedIn || record.User == nil || record.User.Email != "a@b.com" ||
		record.Theme != ThemeDark || !record.SidebarCollapsed {
		t.Fatalf("unexpected projection %+v", record)
	}

	restored := &Store{theme: ThemeDark, filters: DefaultFilters()}
	applyPersisted(restored, record)
	if !restored.loggedIn || restored.user == nil || restored.user.Name != "A" {
		t.Fatalf("unexpected restore %+v", restored)
	}
	if restored.filters != DefaultFilters() {
		t.Fatalf("restore must not touch filters, got %+v", restored.filters)
	}
	// The projection copies the user; mutating one side must not leak.
	record.User.Name = "changed"
	if restored.user.Name != "A" {
		t.Fatalf("restored user aliases the record")
	}
}

func TestApplyPersistedLoggedInWithoutUserFallsBack(t *testing.T) {
	s := &Store{theme: ThemeDark}
	applyPersisted(s, PersistedSession{LoggedIn: true, User: nil, Theme: ThemeLight})
	if s.loggedIn {
		t.Fatalf("logged-in record without a user must restore as logged out")
	}
	if s.theme != ThemeLight {
		t.Fatalf("expected theme restored, got %s", s.theme)
	}
}

func TestFileSessionStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileSessionStore(dir)

	if _, ok, err := store.Load(); ok || err != nil {
		t.Fatalf("fresh store must load empty: ok=%v err=%v", ok, err)
	}

	user := User{Name: "A", Email: "a@b.com", Role: RoleAdmin}
	saved := PersistedSession{LoggedIn: true, User: &user, Theme: ThemeDark, SidebarCollapsed: true}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := NewFileSessionStore(dir).Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if !loaded.LoggedIn || loaded.User == nil || *loaded.User != user ||
		loaded.Theme != ThemeDark || !loaded.SidebarCollapsed {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestFileSessionStoreCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	store := NewFileSessionStore(dir)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	if _, _, err := store.Load(); err == nil {
		t.Fatalf("expected decode error for corrupt file")
	}

	// The store construction path treats that error as "no persisted state".
	s := seededStore(t, StoreOptions{Sessions: store})
	snap := s.Snapshot()
	if snap.LoggedIn || snap.Theme != ThemeDark {
		t.Fatalf("expected defaults after corrupt session, got %+v", snap)
	}
}

func TestFileSessionStorePathUsesFixedKey(t *testing.T) {
	store := NewFileSessionStore("/tmp/state")
	if got, want := store.Path(), filepath.Join("/tmp/state", SessionKey+".json"); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
