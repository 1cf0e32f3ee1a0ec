package route

import (
	"testing"

	"tickets-cli/internal/model"
	"tickets-cli/internal/session"
)

func storeWith(t *testing.T, roleID int, roleMap map[string]int) *session.Store {
	t.Helper()
	s := session.NewStoreAt(t.TempDir())
	user := model.User{ID: 7, DisplayName: "u", RoleID: roleID, Active: true}
	if err := s.Save("tok", user, roleMap); err != nil {
		t.Fatalf("save: %v", err)
	}
	return s
}

func TestLoginRouteAlwaysAllowed(t *testing.T) {
	g := NewGuard(session.NewStoreAt(t.TempDir()))
	if res := g.Evaluate("/login"); res.Decision != Allow {
		t.Fatalf("expected login allowed, got %v", res)
	}
}

func TestNoSessionRedirectsToLogin(t *testing.T) {
	g := NewGuard(session.NewStoreAt(t.TempDir()))
	res := g.Evaluate("/tickets")
	if res.Decision != RedirectLogin || res.Target != LoginPath {
		t.Fatalf("expected redirect to login, got %+v", res)
	}
}

func TestStaleSessionClearedAndRedirected(t *testing.T) {
	s := storeWith(t, 32, map[string]int{"SOPORTE": 32})
	s.MarkStale()
	g := NewGuard(s)
	if res := g.Evaluate("/tickets"); res.Decision != RedirectLogin {
		t.Fatalf("expected stale session to redirect, got %+v", res)
	}
	// The rejected session must be gone.
	if sess, _ := s.Load(); sess != nil {
		t.Fatalf("expected stale session cleared")
	}
}

func TestUnrestrictedRouteAllowsAnyAuthenticated(t *testing.T) {
	g := NewGuard(storeWith(t, 7, nil))
	for _, path := range []string{"/tickets", "/tickets/42", "/my-tasks", "/my-tasks/7", "/settings"} {
		if res := g.Evaluate(path); res.Decision != Allow {
			t.Fatalf("expected %s allowed for standard role, got %+v", path, res)
		}
	}
}

func TestRestrictedRouteStandardRoleRedirectsSafe(t *testing.T) {
	// Scenario: role id 7 requests a route requiring SOPORTE with
	// rolesMap = {"SOPORTE": 32}. Expect the safe view, not login.
	g := NewGuard(storeWith(t, 7, map[string]int{"SOPORTE": 32}))
	res := g.Evaluate("/")
	if res.Decision != RedirectSafe || res.Target != "/my-tasks" {
		t.Fatalf("expected redirect to /my-tasks, got %+v", res)
	}
}

func TestRestrictedRouteSupportRoleAllowed(t *testing.T) {
	g := NewGuard(storeWith(t, 32, map[string]int{"SOPORTE": 32}))
	for _, path := range []string{"/", "/users", "/users/new", "/reports"} {
		if res := g.Evaluate(path); res.Decision != Allow {
			t.Fatalf("expected %s allowed for support, got %+v", path, res)
		}
	}
}

func TestRestrictedRouteFailsClosedWithoutRoleMap(t *testing.T) {
	// Catalog fetch failed at login: numeric role would qualify, but named
	// restrictions must deny.
	g := NewGuard(storeWith(t, 32, map[string]int{}))
	if res := g.Evaluate("/users"); res.Decision != RedirectSafe {
		t.Fatalf("expected fail-closed redirect, got %+v", res)
	}
}

func TestRedirectIsIdempotent(t *testing.T) {
	g := NewGuard(storeWith(t, 7, map[string]int{"SOPORTE": 32}))
	first := g.Evaluate("/users")
	second := g.Evaluate("/users")
	if first != second {
		t.Fatalf("expected identical results, got %+v then %+v", first, second)
	}
}

func TestUnknownPathRedirectsToLogin(t *testing.T) {
	g := NewGuard(storeWith(t, 32, map[string]int{"SOPORTE": 32}))
	if res := g.Evaluate("/no-such-view"); res.Decision != RedirectLogin {
		t.Fatalf("expected wildcard redirect to login, got %+v", res)
	}
}

func TestLookup(t *testing.T) {
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{"/tickets", "/tickets", true},
		{"/tickets/42", "/tickets/:id", true},
		{"/tickets/new", "/tickets/new", true}, // literal wins over :id
		{"/my-tasks/assigned", "/my-tasks/assigned", true},
		{"/my-tasks/99", "/my-tasks/:id", true},
		{"tickets", "/tickets", true},
		{"/tickets/", "/tickets", true},
		{"/nope", "", false},
	}
	for _, tc := range cases {
		r, ok := Lookup(tc.path)
		if ok != tc.ok {
			t.Fatalf("Lookup(%q): expected ok=%v", tc.path, tc.ok)
		}
		if ok && r.Path != tc.want {
			t.Fatalf("Lookup(%q): expected %q, got %q", tc.path, tc.want, r.Path)
		}
	}
}
