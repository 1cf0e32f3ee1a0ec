package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tickets-cli/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the persisted authenticated identity. Token and User are always
// written together; a file holding one without the other is treated as
// invalid and cleared on load.
type Session struct {
	Token   string         `json:"token"`
	User    model.User     `json:"user"`
	RoleMap map[string]int `json:"roleMap,omitempty"`
	SavedAt time.Time      `json:"savedAt"`
}

// Store owns the session file and is the single source of truth for "who is
// logged in". It also carries the stale flag the API layer sets on a 401; the
// route guard consumes that flag on its next evaluation.
type Store struct {
	dir string

	mu       sync.Mutex
	stale    bool
	watchers []func()
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.tickets).
	if v := strings.TrimSpace(os.Getenv("TICKETS_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tickets"), nil
}

func NewStore() (*Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// NewStoreAt builds a store rooted at an explicit directory (fixtures/tests).
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, "session.json")
}

// Load reads the persisted session. Absence and corruption both return
// (nil, nil): a corrupt or half-written file is removed rather than surfaced,
// so callers only ever see a fully-populated session or none at all.
func (s *Store) Load() (*Session, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		_ = os.Remove(s.path())
		return nil, nil
	}
	if strings.TrimSpace(sess.Token) == "" || sess.User.ID == 0 {
		// Token xor user: never trust a half-session.
		_ = os.Remove(s.path())
		return nil, nil
	}
	return &sess, nil
}

// Save persists token, user and role map in a single atomic write.
func (s *Store) Save(token string, user model.User, roleMap map[string]int) error {
	if strings.TrimSpace(token) == "" || user.ID == 0 {
		return errors.New("session: token and user must both be set")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	sess := Session{Token: token, User: user, RoleMap: roleMap, SavedAt: time.Now().UTC()}
	b, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := atomicWriteFile(s.dir, "session.json.*.tmp", s.path(), b, 0o600); err != nil {
		return err
	}
	s.mu.Lock()
	s.stale = false
	s.mu.Unlock()
	s.notify()
	return nil
}

// Clear removes the session file (logout, or defensive cleanup on an
// inconsistent session).
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	s.mu.Lock()
	s.stale = false
	s.mu.Unlock()
	s.notify()
	return nil
}

// Watch registers an observer fired after every Save and Clear.
func (s *Store) Watch(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watchers = append(s.watchers, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	ws := make([]func(), len(s.watchers))
	copy(ws, s.watchers)
	s.mu.Unlock()
	for _, fn := range ws {
		fn()
	}
}

// MarkStale records that the API rejected the token (401). The guard treats a
// stale session as missing on its next evaluation.
func (s *Store) MarkStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

func (s *Store) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

// BuildRoleMap folds a roles catalog into a case-insensitive name -> id map.
// Keys are upper-cased; lookups go through policy.ResolveRole.
func BuildRoleMap(roles []model.Role) map[string]int {
	m := make(map[string]int, len(roles))
	for _, r := range roles {
		name := strings.ToUpper(strings.TrimSpace(r.Name))
		if name == "" || r.ID == 0 {
			continue
		}
		m[name] = r.ID
	}
	return m
}

// Expired peeks at the bearer token's exp claim without verifying the
// signature (the server stays authoritative; this only avoids presenting a
// token we already know is dead). Tokens that are not JWTs or carry no exp
// claim are assumed live.
func Expired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
