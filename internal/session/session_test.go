package session

import (
	"os"
	"path/filepath"
	"testing"

	"tickets-cli/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStoreAt(t.TempDir())
}

func TestLoadMissingReturnsNil(t *testing.T) {
	s := testStore(t)
	sess, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	user := model.User{ID: 55, DisplayName: "Berna", RoleID: 7, Active: true}
	if err := s.Save("tok-abc", user, map[string]int{"SOPORTE": 32}); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess == nil {
		t.Fatalf("expected session")
	}
	if sess.Token != "tok-abc" || sess.User != user || sess.RoleMap["SOPORTE"] != 32 {
		t.Fatalf("bad round trip: %+v", sess)
	}
}

func TestSaveRejectsHalfSession(t *testing.T) {
	s := testStore(t)
	if err := s.Save("", model.User{ID: 1}, nil); err == nil {
		t.Fatalf("expected error for empty token")
	}
	if err := s.Save("tok", model.User{}, nil); err == nil {
		t.Fatalf("expected error for empty user")
	}
}

func TestLoadCorruptFileClearsAndReturnsNil(t *testing.T) {
	s := testStore(t)
	path := filepath.Join(s.dir, "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	sess, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session for corrupt file")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected corrupt file removed")
	}
}

func TestLoadHalfSessionTreatedAsAbsent(t *testing.T) {
	s := testStore(t)
	path := filepath.Join(s.dir, "session.json")

	// Token without user.
	if err := os.WriteFile(path, []byte(`{"token": "tok-abc"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if sess, _ := s.Load(); sess != nil {
		t.Fatalf("expected nil for token-only session")
	}

	// User without token.
	if err := os.WriteFile(path, []byte(`{"user": {"iIdUser": 5, "sUser": "x", "iIdRol": 7}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if sess, _ := s.Load(); sess != nil {
		t.Fatalf("expected nil for user-only session")
	}
}

func TestClearAndStale(t *testing.T) {
	s := testStore(t)
	user := model.User{ID: 1, DisplayName: "x", RoleID: 7}
	if err := s.Save("tok", user, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.MarkStale()
	if !s.Stale() {
		t.Fatalf("expected stale")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if s.Stale() {
		t.Fatalf("expected stale reset after clear")
	}
	if sess, _ := s.Load(); sess != nil {
		t.Fatalf("expected nil after clear")
	}
	// Clearing an already-empty store is fine.
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestSaveResetsStale(t *testing.T) {
	s := testStore(t)
	s.MarkStale()
	if err := s.Save("tok", model.User{ID: 2, RoleID: 7}, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.Stale() {
		t.Fatalf("expected stale reset after save")
	}
}

func TestWatchFiresOnSaveAndClear(t *testing.T) {
	s := testStore(t)
	fired := 0
	s.Watch(func() { fired++ })
	if err := s.Save("tok", model.User{ID: 2, RoleID: 7}, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if fired != 2 {
		t.Fatalf("expected 2 notifications, got %d", fired)
	}
}

func TestBuildRoleMap(t *testing.T) {
	m := BuildRoleMap([]model.Role{
		{ID: 32, Name: "Soporte", Active: true},
		{ID: 25, Name: "JEFE SISTEMAS", Active: true},
		{ID: 0, Name: "ghost"},
		{ID: 9, Name: "  "},
	})
	if len(m) != 2 {
		t.Fatalf("expected 2 entries, got %v", m)
	}
	if m["SOPORTE"] != 32 || m["JEFE SISTEMAS"] != 25 {
		t.Fatalf("bad map: %v", m)
	}
}

func TestBuildRoleMapEmptyOnNoCatalog(t *testing.T) {
	if m := BuildRoleMap(nil); len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}
}

func TestExpiredNonJWTAssumedLive(t *testing.T) {
	if Expired("opaque-token") {
		t.Fatalf("expected opaque token treated as live")
	}
}
