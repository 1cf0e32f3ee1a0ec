package model

import (
	"encoding/json"
	"testing"
)

func TestUserAliasFolding(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want User
	}{
		{
			"modern spelling",
			`{"iIdUser": 55, "sUser": "berna", "iIdRol": 7}`,
			User{ID: 55, DisplayName: "berna", RoleID: 7, Active: true},
		},
		{
			"legacy ild spelling",
			`{"ildUser": 55, "employeeName": "Berna G", "ildRol": 7}`,
			User{ID: 55, DisplayName: "Berna G", RoleID: 7, Active: true},
		},
		{
			"role id as string",
			`{"idUser": 3, "userName": "ana", "idRole": "32"}`,
			User{ID: 3, DisplayName: "ana", RoleID: 32, Active: true},
		},
		{
			"employee name preferred over login",
			`{"iIdUser": 9, "sUser": "dmartinez", "employeeName": "Dani Martinez", "iIdRol": 32}`,
			User{ID: 9, DisplayName: "Dani Martinez", RoleID: 32, Active: true},
		},
	}
	for _, tc := range cases {
		var got User
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}

// A user record we serialized ourselves (the session file) must decode back
// losslessly through the alias decoder, inactive flag included.
func TestUserCanonicalRoundTrip(t *testing.T) {
	cases := []User{
		{ID: 55, DisplayName: "Berna G", RoleID: 7, Active: true},
		{ID: 28, DisplayName: "Dani Martinez", RoleID: 32, Active: false},
	}
	for _, want := range cases {
		b, err := json.Marshal(want)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got User
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got != want {
			t.Fatalf("round trip lost data: wrote %+v, read %+v", want, got)
		}
	}
}

func TestTicketDecode(t *testing.T) {
	in := `{
		"iIdTask": 101,
		"sName": "Printer down",
		"sDescription": "The 3rd floor printer is offline",
		"iIdTaskType": 2,
		"iIdStatus": 2,
		"statusName": "Open",
		"branchId": 4,
		"departmentId": 9,
		"iIdUserRaisedTask": 12,
		"userRaisedName": "Ana",
		"iIdUserTaskAssigned": 55,
		"dDateUserCreate": "2026-02-10T09:30:00",
		"dTaskCompletionDate": null,
		"bActive": true
	}`
	var got Ticket
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 101 || got.Status != StatusOpen || got.AssignedUserID != 55 {
		t.Fatalf("bad decode: %+v", got)
	}
	if got.CreatedAt == nil || got.CreatedAt.Hour() != 9 {
		t.Fatalf("expected createdAt parsed as UTC, got %v", got.CreatedAt)
	}
	if got.CompletedAt != nil {
		t.Fatalf("expected nil completedAt, got %v", got.CompletedAt)
	}
}

func TestTicketDecodeLegacyBranchAliases(t *testing.T) {
	in := `{"iIdTask": 7, "sDescription": "x", "iIdBranch": 3, "iIdDepartment": 8, "iIdStatus": 1}`
	var got Ticket
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BranchID != 3 || got.DepartmentID != 8 {
		t.Fatalf("expected branch/department from legacy aliases, got %+v", got)
	}
}

func TestTaskKindTagging(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want TaskKind
	}{
		{"no assignee", `{"iIdTask": 1, "iIdUserRaisedTask": 5, "iIdStatus": 1}`, TaskPersonal},
		{"self assigned", `{"iIdTask": 2, "iIdUserRaisedTask": 5, "iIdUserTaskAssigned": 5, "iIdStatus": 1}`, TaskPersonal},
		{"delegated", `{"iIdTask": 3, "iIdUserRaisedTask": 5, "iIdUserTaskAssigned": 9, "iIdStatus": 1}`, TaskAssigned},
		{"delegated via alias", `{"iIdTask": 4, "iIdUserCreate": 5, "assignedUserId": 9, "iIdStatus": 1}`, TaskAssigned},
	}
	for _, tc := range cases {
		var got Task
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got.Kind != tc.want {
			t.Fatalf("%s: expected kind %q, got %q", tc.name, tc.want, got.Kind)
		}
	}
}

func TestCommentDecode(t *testing.T) {
	in := `{"ildComment": 44, "ildTask": 101, "sComment": "on it", "ildUser": 55, "dDateCreate": "2026-02-10T10:00:00Z"}`
	var got Comment
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 44 || got.TicketID != 101 || got.AuthorID != 55 || got.Body != "on it" {
		t.Fatalf("bad decode: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt parsed")
	}
}

func TestTerminalSuccess(t *testing.T) {
	for _, s := range []StatusID{StatusPending, StatusOpen, StatusInProgress, StatusCancelled} {
		if s.TerminalSuccess() {
			t.Fatalf("expected %v not terminal-success", s)
		}
	}
	for _, s := range []StatusID{StatusCompleted, StatusResolved} {
		if !s.TerminalSuccess() {
			t.Fatalf("expected %v terminal-success", s)
		}
	}
}
