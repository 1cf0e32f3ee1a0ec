package model

import "time"

// StatusID is the server-side status enum shared by tickets and tasks.
type StatusID int

const (
	StatusPending    StatusID = 1
	StatusOpen       StatusID = 2
	StatusInProgress StatusID = 3
	StatusCompleted  StatusID = 4
	StatusResolved   StatusID = 5
	StatusCancelled  StatusID = 6
)

// TerminalSuccess reports whether the status is a successful end state.
// The completion timestamp is set iff the committed status is one of these.
func (s StatusID) TerminalSuccess() bool {
	return s == StatusCompleted || s == StatusResolved
}

func (s StatusID) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusOpen:
		return "open"
	case StatusInProgress:
		return "in-progress"
	case StatusCompleted:
		return "completed"
	case StatusResolved:
		return "resolved"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// User is the canonical identity record. The wire shape carries several
// historical spellings for the same fields; decoding folds them in wire.go and
// downstream code reads only this struct.
type User struct {
	ID          int    `json:"id"`
	DisplayName string `json:"displayName"`
	RoleID      int    `json:"roleId"`
	Active      bool   `json:"active"`
}

type Role struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type Branch struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type Department struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type Status struct {
	ID     StatusID `json:"id"`
	Name   string   `json:"name"`
	Active bool     `json:"active"`
}

type TaskType struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Ticket mirrors a server-owned ticket. AssignedUserID is 0 while the ticket
// has not been triaged to anyone.
type Ticket struct {
	ID             int        `json:"id"`
	Title          string     `json:"title,omitempty"`
	Description    string     `json:"description"`
	TypeID         int        `json:"typeId"`
	Status         StatusID   `json:"status"`
	StatusName     string     `json:"statusName,omitempty"`
	BranchID       int        `json:"branchId"`
	BranchName     string     `json:"branchName,omitempty"`
	DepartmentID   int        `json:"departmentId"`
	DepartmentName string     `json:"departmentName,omitempty"`
	RaisedByID     int        `json:"raisedById"`
	RaisedByName   string     `json:"raisedByName,omitempty"`
	AssignedUserID int        `json:"assignedUserId,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	Active         bool       `json:"active"`
}

// TaskKind tags the personal-vs-delegated variants explicitly so permission
// code can switch on the tag instead of null-checking an optional assignee.
type TaskKind string

const (
	TaskPersonal TaskKind = "personal"
	TaskAssigned TaskKind = "assigned"
)

// Task mirrors a server-owned personal or delegated task.
type Task struct {
	ID             int        `json:"id"`
	Kind           TaskKind   `json:"kind"`
	Title          string     `json:"title,omitempty"`
	Description    string     `json:"description"`
	TypeID         int        `json:"typeId"`
	Status         StatusID   `json:"status"`
	CreatedByID    int        `json:"createdById"`
	AssignedUserID int        `json:"assignedUserId,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	Active         bool       `json:"active"`
}

// KindOf computes the union tag: a task is delegated when it carries an
// assignee distinct from its creator.
func KindOf(createdBy, assignee int) TaskKind {
	if assignee != 0 && assignee != createdBy {
		return TaskAssigned
	}
	return TaskPersonal
}

type Comment struct {
	ID         int       `json:"id"`
	TicketID   int       `json:"ticketId"`
	AuthorID   int       `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

type FileInfo struct {
	ID       int    `json:"id"`
	TicketID int    `json:"ticketId"`
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
}
