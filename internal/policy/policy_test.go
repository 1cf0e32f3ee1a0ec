package policy

import (
	"testing"

	"tickets-cli/internal/model"
)

func TestIsPrivilegedClosedWorld(t *testing.T) {
	for _, id := range []int{RoleAdmin, RoleJefeSistemas, RoleSistemas, RoleSoporte} {
		if !IsPrivileged(id) {
			t.Fatalf("expected role %d privileged", id)
		}
	}
	// No implicit escalation via unknown ids; 33 is support but not privileged.
	for _, id := range []int{0, -1, 2, 7, 26, 33, 99, 1000} {
		if IsPrivileged(id) {
			t.Fatalf("expected role %d not privileged", id)
		}
	}
}

func TestIsSupportRole(t *testing.T) {
	if !IsSupportRole(RolePracticanteSistemas) {
		t.Fatalf("expected practicante in support team")
	}
	if IsSupportRole(7) {
		t.Fatalf("expected role 7 not support")
	}
}

func TestCanAccessRouteEmptyAllowedSetGrantsAll(t *testing.T) {
	if !CanAccessRoute(7, nil, nil) {
		t.Fatalf("expected empty allowed set to grant access")
	}
	if !CanAccessRoute(7, []string{}, map[string]int{}) {
		t.Fatalf("expected empty allowed set to grant access")
	}
}

func TestCanAccessRouteFailsClosedOnEmptyRoleMap(t *testing.T) {
	// Catalog never loaded: every role id must be denied.
	for _, id := range []int{RoleAdmin, RoleSoporte, 7, 0} {
		if CanAccessRoute(id, []string{"SOPORTE"}, map[string]int{}) {
			t.Fatalf("expected deny for role %d with empty role map", id)
		}
	}
}

func TestCanAccessRouteResolvesNames(t *testing.T) {
	roleMap := map[string]int{"SOPORTE": 32, "DIRECCION GENERAL": 2}
	cases := []struct {
		roleID  int
		allowed []string
		want    bool
	}{
		{32, []string{"SOPORTE"}, true},
		{32, []string{"soporte"}, true}, // case-insensitive lookup
		{2, []string{"SOPORTE", "DIRECCION GENERAL"}, true},
		{7, []string{"SOPORTE", "DIRECCION GENERAL"}, false},
		{7, []string{"NO SUCH ROLE"}, false}, // unresolvable names fail closed
	}
	for _, tc := range cases {
		if got := CanAccessRoute(tc.roleID, tc.allowed, roleMap); got != tc.want {
			t.Fatalf("CanAccessRoute(%d, %v): expected %v, got %v", tc.roleID, tc.allowed, tc.want, got)
		}
	}
}

func TestCanEditTaskStatus(t *testing.T) {
	personal := model.Task{ID: 1, Kind: model.TaskPersonal, CreatedByID: 5}
	assigned := model.Task{ID: 2, Kind: model.TaskAssigned, CreatedByID: 5, AssignedUserID: 9}

	if !CanEditTaskStatus(personal, 5) {
		t.Fatalf("expected creator to edit personal task status")
	}
	if CanEditTaskStatus(personal, 9) {
		t.Fatalf("expected non-creator blocked on personal task")
	}
	if !CanEditTaskStatus(assigned, 9) {
		t.Fatalf("expected assignee to edit assigned task status")
	}
	if CanEditTaskStatus(assigned, 5) {
		t.Fatalf("expected creator blocked once task is delegated")
	}
	if CanEditTaskStatus(personal, 0) {
		t.Fatalf("expected zero user id always blocked")
	}
}

func TestCanEditTicketStatus(t *testing.T) {
	untriaged := model.Ticket{ID: 1, RaisedByID: 12}
	assigned := model.Ticket{ID: 2, RaisedByID: 12, AssignedUserID: 55}

	if !CanEditTicketStatus(untriaged, 12) {
		t.Fatalf("expected raiser to edit untriaged ticket")
	}
	if !CanEditTicketStatus(assigned, 55) {
		t.Fatalf("expected assignee to edit assigned ticket")
	}
	if CanEditTicketStatus(assigned, 12) {
		t.Fatalf("expected raiser blocked once assigned elsewhere")
	}
}

func TestCanEditContentCreatorOnlyUntilDelegated(t *testing.T) {
	personal := model.Task{ID: 1, Kind: model.TaskPersonal, CreatedByID: 5}
	delegated := model.Task{ID: 2, Kind: model.TaskAssigned, CreatedByID: 5, AssignedUserID: 9}

	if !CanEditTaskContent(personal, 5) {
		t.Fatalf("expected creator content edit on personal task")
	}
	if CanEditTaskContent(delegated, 5) {
		t.Fatalf("expected content edit disallowed after delegation")
	}
	if CanEditTaskContent(delegated, 9) {
		t.Fatalf("expected assignee cannot edit content")
	}
}

func TestCanAssignRequiresBothChecks(t *testing.T) {
	cfg := Config{AssignAllowList: []int{28, 33}}

	if !cfg.CanAssign(28, RoleSoporte) {
		t.Fatalf("expected allow-listed support user to assign")
	}
	// Support role alone is insufficient.
	if cfg.CanAssign(99, RoleSoporte) {
		t.Fatalf("expected non-listed support user denied")
	}
	// Allow-list membership alone is insufficient.
	if cfg.CanAssign(28, 7) {
		t.Fatalf("expected listed user with standard role denied")
	}
}

func TestDefaultConfigEnvOverride(t *testing.T) {
	t.Setenv("TICKETS_ASSIGN_USERS", "4, 11,bogus,0")
	cfg := DefaultConfig()
	if len(cfg.AssignAllowList) != 2 || cfg.AssignAllowList[0] != 4 || cfg.AssignAllowList[1] != 11 {
		t.Fatalf("bad allow-list from env: %v", cfg.AssignAllowList)
	}

	t.Setenv("TICKETS_ASSIGN_USERS", "")
	cfg = DefaultConfig()
	if len(cfg.AssignAllowList) == 0 {
		t.Fatalf("expected default allow-list")
	}
}
