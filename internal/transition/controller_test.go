package transition

import (
	"context"
	"errors"
	"testing"

	"tickets-cli/internal/model"
)

func TestStageAndAbandon(t *testing.T) {
	c := New(int(model.StatusOpen))
	if c.State() != Viewing {
		t.Fatalf("expected Viewing initially")
	}

	c.Stage(int(model.StatusResolved))
	if c.State() != PendingChange || c.Candidate() != int(model.StatusResolved) {
		t.Fatalf("expected PendingChange with candidate resolved, got %v/%d", c.State(), c.Candidate())
	}
	if c.Committed() != int(model.StatusOpen) {
		t.Fatalf("staging must not touch the committed value")
	}

	// Re-picking the committed value abandons the change.
	c.Stage(int(model.StatusOpen))
	if c.State() != Viewing {
		t.Fatalf("expected Viewing after staging committed value")
	}

	c.Stage(int(model.StatusCancelled))
	c.Abandon()
	if c.State() != Viewing || c.Candidate() != int(model.StatusOpen) {
		t.Fatalf("expected abandon to restore committed value")
	}
}

func TestCommitSuccess(t *testing.T) {
	c := New(int(model.StatusOpen))
	c.Stage(int(model.StatusResolved))

	var got int
	err := c.Commit(context.Background(), func(_ context.Context, candidate int) error {
		got = candidate
		return nil
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got != int(model.StatusResolved) {
		t.Fatalf("expected commit fn to receive candidate, got %d", got)
	}
	if c.State() != Viewing || c.Committed() != int(model.StatusResolved) {
		t.Fatalf("expected committed=resolved after success, got %v/%d", c.State(), c.Committed())
	}
}

func TestCommitFailurePreservesCommittedAndCandidate(t *testing.T) {
	c := New(int(model.StatusOpen))
	c.Stage(int(model.StatusResolved))

	commitErr := errors.New("boom")
	err := c.Commit(context.Background(), func(context.Context, int) error { return commitErr })
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error surfaced, got %v", err)
	}
	// Never show a status that was not actually persisted.
	if c.Committed() != int(model.StatusOpen) {
		t.Fatalf("failed commit must not change committed value")
	}
	// Candidate preserved for retry.
	if c.State() != PendingChange || c.Candidate() != int(model.StatusResolved) {
		t.Fatalf("expected PendingChange with candidate intact, got %v/%d", c.State(), c.Candidate())
	}
}

func TestCommitWithNothingPendingOrInFlight(t *testing.T) {
	c := New(int(model.StatusOpen))
	if err := c.Commit(context.Background(), nil); !errors.Is(err, ErrNothingToCommit) {
		t.Fatalf("expected ErrNothingToCommit, got %v", err)
	}

	c.Stage(int(model.StatusResolved))
	inFirst := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- c.Commit(context.Background(), func(context.Context, int) error {
			close(inFirst)
			<-release
			return nil
		})
	}()
	<-inFirst

	// Duplicate confirm while committing is ignored.
	if err := c.Commit(context.Background(), nil); !errors.Is(err, ErrCommitInFlight) {
		t.Fatalf("expected ErrCommitInFlight, got %v", err)
	}
	// Staging while committing is ignored too.
	c.Stage(int(model.StatusCancelled))
	if c.Candidate() != int(model.StatusResolved) {
		t.Fatalf("expected stage ignored while committing")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first commit: %v", err)
	}
}

func TestReconcileOnlyWhileViewing(t *testing.T) {
	c := New(int(model.StatusOpen))

	// Viewing: server value lands.
	if !c.Reconcile(int(model.StatusInProgress)) {
		t.Fatalf("expected reconcile to apply while viewing")
	}
	if c.Committed() != int(model.StatusInProgress) || c.Candidate() != int(model.StatusInProgress) {
		t.Fatalf("expected committed and candidate updated together")
	}

	// Same value: no-op.
	if c.Reconcile(int(model.StatusInProgress)) {
		t.Fatalf("expected no-op for unchanged server value")
	}

	// PendingChange: local intent wins.
	c.Stage(int(model.StatusResolved))
	if c.Reconcile(int(model.StatusCancelled)) {
		t.Fatalf("expected reconcile refused while pending")
	}
	if c.Candidate() != int(model.StatusResolved) || c.Committed() != int(model.StatusInProgress) {
		t.Fatalf("poll tick clobbered a pending change")
	}
}

func TestReconcileDuringCommitThenCommitWins(t *testing.T) {
	// Scenario: a poll tick reporting the stale pre-commit value arrives
	// while the commit is in flight; the final displayed value must be the
	// committed candidate.
	c := New(int(model.StatusOpen))
	c.Stage(int(model.StatusResolved))

	err := c.Commit(context.Background(), func(context.Context, int) error {
		if c.Reconcile(int(model.StatusOpen)) {
			t.Fatalf("expected reconcile refused while committing")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if c.Committed() != int(model.StatusResolved) {
		t.Fatalf("expected committed candidate to win, got %d", c.Committed())
	}
}

func TestCompletionDateRule(t *testing.T) {
	for _, s := range []model.StatusID{model.StatusCompleted, model.StatusResolved} {
		if CompletionDate(s) == nil {
			t.Fatalf("expected completion date for %v", s)
		}
	}
	for _, s := range []model.StatusID{model.StatusPending, model.StatusOpen, model.StatusInProgress, model.StatusCancelled} {
		if CompletionDate(s) != nil {
			t.Fatalf("expected nil completion date for %v", s)
		}
	}
}

func catalog() []model.Status {
	return []model.Status{
		{ID: model.StatusPending, Name: "Pending", Active: true},
		{ID: model.StatusOpen, Name: "Open", Active: true},
		{ID: model.StatusInProgress, Name: "In Process", Active: true},
		{ID: model.StatusCompleted, Name: "Completed", Active: true},
		{ID: model.StatusResolved, Name: "Resolved", Active: true},
		{ID: model.StatusCancelled, Name: "Cancelled", Active: true},
	}
}

func TestSelectableTicketExcludesCompleted(t *testing.T) {
	got := Selectable(EntityTicket, catalog())
	for _, s := range got {
		if s.ID == model.StatusCompleted {
			t.Fatalf("ticket picker must never offer Completed")
		}
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 selectable ticket statuses, got %d", len(got))
	}
}

func TestSelectableTaskSubset(t *testing.T) {
	got := Selectable(EntityTask, catalog())
	want := map[model.StatusID]bool{
		model.StatusPending:    true,
		model.StatusInProgress: true,
		model.StatusCompleted:  true,
		model.StatusCancelled:  true,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d selectable task statuses, got %d", len(want), len(got))
	}
	for _, s := range got {
		if !want[s.ID] {
			t.Fatalf("unexpected selectable task status %v", s.ID)
		}
	}
}

func TestSelectableDropsInactive(t *testing.T) {
	cat := catalog()
	cat[1].Active = false // Open
	got := Selectable(EntityTicket, cat)
	for _, s := range got {
		if s.ID == model.StatusOpen {
			t.Fatalf("inactive catalog entries must be dropped")
		}
	}
}
