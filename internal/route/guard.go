package route

import (
	"tickets-cli/internal/policy"
	"tickets-cli/internal/session"
)

// Decision is the terminal state of one navigation attempt.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectSafe
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	case RedirectSafe:
		return "redirect-safe"
	default:
		return "unknown"
	}
}

const (
	LoginPath = "/login"
	// SafePath is where under-privileged (but authenticated) users land
	// instead of an error page.
	SafePath = "/my-tasks"
)

// Result pairs the decision with the path to render.
type Result struct {
	Decision Decision
	Target   string
}

// Guard gates every navigation. It holds no per-navigation state: each
// Evaluate call re-reads the session so role changes (or a logout elsewhere)
// take effect on the next route change.
type Guard struct {
	sessions *session.Store
}

func NewGuard(s *session.Store) *Guard {
	return &Guard{sessions: s}
}

// Evaluate runs the guard state machine for one navigation attempt.
//
// Unauthenticated (no session, stale token, expired token, half session)
// redirects to login after clearing whatever was persisted. Authenticated
// sessions pass unrestricted routes directly; role-restricted routes go
// through policy.CanAccessRoute and fall back to the safe view on denial.
func (g *Guard) Evaluate(path string) Result {
	if normalize(path) == LoginPath {
		return Result{Decision: Allow, Target: LoginPath}
	}

	sess, err := g.sessions.Load()
	if err != nil || sess == nil || g.sessions.Stale() || session.Expired(sess.Token) {
		// A rejected session is also removed from disk.
		_ = g.sessions.Clear()
		return Result{Decision: RedirectLogin, Target: LoginPath}
	}

	r, ok := Lookup(path)
	if !ok {
		// Unknown paths behave like the SPA's wildcard: back to login.
		return Result{Decision: RedirectLogin, Target: LoginPath}
	}
	if len(r.AllowedRoles) == 0 {
		return Result{Decision: Allow, Target: r.Path}
	}
	if policy.CanAccessRoute(sess.User.RoleID, r.AllowedRoles, sess.RoleMap) {
		return Result{Decision: Allow, Target: r.Path}
	}
	return Result{Decision: RedirectSafe, Target: SafePath}
}
