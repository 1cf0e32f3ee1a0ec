package cli

import (
	"testing"
	"time"

	"tickets-cli/internal/model"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"101", 101, true},
		{"1", 1, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, err := parseID("ticket", c.in)
		if c.wantOK {
			if err != nil {
				t.Errorf("parseID(%q): unexpected error %v", c.in, err)
			}
			if got != c.want {
				t.Errorf("parseID(%q) = %d, want %d", c.in, got, c.want)
			}
			continue
		}
		if err == nil {
			t.Errorf("parseID(%q): expected error", c.in)
		}
	}
}

func TestTicketChanged(t *testing.T) {
	base := model.Ticket{ID: 1, Status: model.StatusOpen, AssignedUserID: 5, Description: "x", Active: true}

	if ticketChanged(base, base) {
		t.Error("identical tickets reported as changed")
	}

	moved := base
	moved.Status = model.StatusInProgress
	if !ticketChanged(base, moved) {
		t.Error("status change not detected")
	}

	reassigned := base
	reassigned.AssignedUserID = 9
	if !ticketChanged(base, reassigned) {
		t.Error("assignment change not detected")
	}

	now := time.Now().UTC()
	completed := base
	completed.CompletedAt = &now
	if !ticketChanged(base, completed) {
		t.Error("completion timestamp change not detected")
	}

	sameInstant := now
	also := base
	also.CompletedAt = &sameInstant
	if ticketChanged(completed, also) {
		t.Error("equal completion timestamps reported as changed")
	}
}

func TestErrorMessages(t *testing.T) {
	if got := errNotFound("ticket", 7).Error(); got != "ticket not found: 7" {
		t.Errorf("got %q", got)
	}
	if got := errPermission("assign ticket", "not allowed").Error(); got != "permission denied: assign ticket (not allowed)" {
		t.Errorf("got %q", got)
	}
}
