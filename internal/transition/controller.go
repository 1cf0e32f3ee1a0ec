package transition

import (
	"context"
	"errors"
	"sync"
	"time"

	"tickets-cli/internal/model"
)

// State of one staged field (status or assignee) on a detail view.
type State int

const (
	// Viewing: candidate equals the last server-confirmed value.
	Viewing State = iota
	// PendingChange: the user staged a different candidate; a confirm
	// affordance is visible.
	PendingChange
	// Committing: a confirm is in flight; duplicate confirms are ignored.
	Committing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case PendingChange:
		return "pending"
	case Committing:
		return "committing"
	default:
		return "unknown"
	}
}

// DefaultCommitTimeout bounds a commit that the server never answers; on
// expiry the controller reverts to PendingChange with the candidate intact.
const DefaultCommitTimeout = 15 * time.Second

var ErrCommitInFlight = errors.New("commit already in flight")
var ErrNothingToCommit = errors.New("no pending change to commit")

// Controller tracks the committed/candidate pair for one field of one entity
// detail view. Each view owns its controllers; there is no cross-view
// sharing. The zero value is not usable; construct with New.
type Controller struct {
	mu        sync.Mutex
	state     State
	committed int
	candidate int
}

func New(committed int) *Controller {
	return &Controller{state: Viewing, committed: committed, candidate: committed}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Committed is the last value confirmed as persisted by the API.
func (c *Controller) Committed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed
}

// Candidate is the value the user is currently considering.
func (c *Controller) Candidate() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.candidate
}

// Stage records a new candidate. Picking the committed value again abandons
// the pending change. Staging is ignored while a commit is in flight.
func (c *Controller) Stage(v int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Committing {
		return
	}
	c.candidate = v
	if v == c.committed {
		c.state = Viewing
	} else {
		c.state = PendingChange
	}
}

// Abandon drops the pending change and restores the committed value.
func (c *Controller) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Committing {
		return
	}
	c.candidate = c.committed
	c.state = Viewing
}

// Commit confirms the pending candidate by running fn under a bounded
// context. On success the candidate becomes the committed value; on failure
// the controller returns to PendingChange with the candidate preserved so the
// user can retry or abandon. The previously committed value is never
// clobbered by a failed commit.
func (c *Controller) Commit(ctx context.Context, fn func(ctx context.Context, candidate int) error) error {
	c.mu.Lock()
	switch c.state {
	case Committing:
		c.mu.Unlock()
		return ErrCommitInFlight
	case Viewing:
		c.mu.Unlock()
		return ErrNothingToCommit
	}
	c.state = Committing
	candidate := c.candidate
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, DefaultCommitTimeout)
	defer cancel()
	err := fn(ctx, candidate)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = PendingChange
		return err
	}
	c.committed = candidate
	c.candidate = candidate
	c.state = Viewing
	return nil
}

// Reconcile applies a freshly polled server value. It only lands while the
// controller is Viewing: a PendingChange or Committing field belongs to the
// user until committed or abandoned, and stale server data must not clobber
// it. Returns true when the local value was updated.
func (c *Controller) Reconcile(server int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Viewing {
		return false
	}
	if server == c.committed {
		return false
	}
	c.committed = server
	c.candidate = server
	return true
}

// CompletionDate implements the completion-timestamp rule: non-nil now iff
// the committed status is a terminal-success value, nil otherwise.
func CompletionDate(s model.StatusID) *time.Time {
	if !s.TerminalSuccess() {
		return nil
	}
	now := time.Now().UTC()
	return &now
}
