package policy

import (
	"os"
	"strconv"
	"strings"

	"tickets-cli/internal/model"
)

// Role ids from the deployed catalog. Membership is closed-world: any id not
// listed here is a standard employee (fail-closed for elevated capabilities,
// fail-open for basic authenticated access).
const (
	RoleAdmin               = 1
	RoleJefeSistemas        = 25
	RoleSistemas            = 31
	RoleSoporte             = 32
	RolePracticanteSistemas = 33
)

var privilegedRoles = map[int]bool{
	RoleAdmin:        true,
	RoleJefeSistemas: true,
	RoleSistemas:     true,
	RoleSoporte:      true,
}

// Roles that can see all tickets, not just their own.
var supportTeamRoles = map[int]bool{
	RoleAdmin:               true,
	RoleJefeSistemas:        true,
	RoleSistemas:            true,
	RoleSoporte:             true,
	RolePracticanteSistemas: true,
}

// IsPrivileged reports elevated/administrative visibility.
func IsPrivileged(roleID int) bool {
	return privilegedRoles[roleID]
}

// IsSupportRole reports membership in the ticket-triage team.
func IsSupportRole(roleID int) bool {
	return supportTeamRoles[roleID]
}

// CanAccessRoute resolves the allowed role names through the session's role
// map and checks membership. An empty allowed set means any authenticated
// session may pass. If none of the required names resolve (the roles catalog
// never loaded), the check fails closed.
func CanAccessRoute(roleID int, allowedRoleNames []string, roleMap map[string]int) bool {
	if len(allowedRoleNames) == 0 {
		return true
	}
	for _, name := range allowedRoleNames {
		id, ok := roleMap[strings.ToUpper(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		if id == roleID {
			return true
		}
	}
	return false
}

// CanEditTaskStatus: the creator for personal tasks, the current assignee for
// delegated ones. Nobody else, regardless of role.
func CanEditTaskStatus(t model.Task, actingUserID int) bool {
	if actingUserID == 0 {
		return false
	}
	switch t.Kind {
	case model.TaskAssigned:
		return actingUserID == t.AssignedUserID
	default:
		return actingUserID == t.CreatedByID
	}
}

// CanEditTicketStatus: untriaged tickets behave like personal entities (the
// raiser may move them); once assigned, only the current assignee may.
func CanEditTicketStatus(t model.Ticket, actingUserID int) bool {
	if actingUserID == 0 {
		return false
	}
	if t.AssignedUserID == 0 || t.AssignedUserID == t.RaisedByID {
		return actingUserID == t.RaisedByID
	}
	return actingUserID == t.AssignedUserID
}

// CanEditTaskContent: title/description edits are creator-only and stop being
// available once the task has been delegated to someone else.
func CanEditTaskContent(t model.Task, actingUserID int) bool {
	return t.Kind == model.TaskPersonal && actingUserID != 0 && actingUserID == t.CreatedByID
}

// CanEditTicketContent mirrors the task rule for tickets.
func CanEditTicketContent(t model.Ticket, actingUserID int) bool {
	if t.AssignedUserID != 0 && t.AssignedUserID != t.RaisedByID {
		return false
	}
	return actingUserID != 0 && actingUserID == t.RaisedByID
}

// Config carries the pieces of policy that are deployment configuration
// rather than code: today only the triage allow-list.
type Config struct {
	// AssignAllowList is the set of user ids that may reassign tickets.
	// Role alone is not sufficient; both checks must hold.
	AssignAllowList []int
}

// DefaultConfig seeds the allow-list from TICKETS_ASSIGN_USERS (comma
// separated user ids), falling back to the ids the deployed product uses.
func DefaultConfig() Config {
	if s := os.Getenv("TICKETS_ASSIGN_USERS"); strings.TrimSpace(s) != "" {
		var ids []int
		for _, part := range strings.Split(s, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil && n > 0 {
				ids = append(ids, n)
			}
		}
		return Config{AssignAllowList: ids}
	}
	return Config{AssignAllowList: []int{28, 33}}
}

// CanAssign: reassigning a ticket requires a support role AND membership in
// the configured allow-list.
func (c Config) CanAssign(actingUserID, roleID int) bool {
	if !IsSupportRole(roleID) {
		return false
	}
	for _, id := range c.AssignAllowList {
		if id == actingUserID {
			return true
		}
	}
	return false
}
