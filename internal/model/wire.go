package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// The remote API grew several spellings for the same field over time
// (iIdUser/ildUser/idUser, iIdRol/ildRol/idRole, sUser/employeeName/userName,
// iIdUserTaskAssigned/assignedUserId, ...). Each record type decodes through a
// wire struct that carries every known alias and folds them into the canonical
// shape right here, so nothing past this file ever sees an alias.

// wireInt tolerates numbers that arrive as JSON strings.
type wireInt int

func (w *wireInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "null" {
		*w = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*w = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		// Not an integer at all; treat as absent rather than failing the
		// whole payload.
		*w = 0
		return nil
	}
	*w = wireInt(n)
	return nil
}

// parseWireTime accepts the timestamp shapes the API emits: RFC3339, and
// RFC3339 without a zone suffix (interpreted as UTC, matching the server).
func parseWireTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t
	}
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		t = t.UTC()
		return &t
	}
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		t = t.UTC()
		return &t
	}
	return nil
}

func firstInt(vals ...wireInt) int {
	for _, v := range vals {
		if v != 0 {
			return int(v)
		}
	}
	return 0
}

func firstString(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// wireUser lists the API spellings plus the canonical tags User marshals
// with, so a record we wrote ourselves (the session file) decodes back
// losslessly through the same path.
type wireUser struct {
	IIDUser      wireInt `json:"iIdUser"`
	ILDUser      wireInt `json:"ildUser"`
	IDUser       wireInt `json:"idUser"`
	ID           wireInt `json:"id"`
	SUser        string  `json:"sUser"`
	EmployeeName string  `json:"employeeName"`
	UserName     string  `json:"userName"`
	DisplayName  string  `json:"displayName"`
	IIDRol       wireInt `json:"iIdRol"`
	ILDRol       wireInt `json:"ildRol"`
	IDRole       wireInt `json:"idRole"`
	RoleID       wireInt `json:"roleId"`
	BActive      *bool   `json:"bActive"`
	Active       *bool   `json:"active"`
}

func (u *User) UnmarshalJSON(b []byte) error {
	var w wireUser
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	u.ID = firstInt(w.IIDUser, w.ILDUser, w.IDUser, w.ID)
	u.DisplayName = firstString(w.EmployeeName, w.SUser, w.UserName, w.DisplayName)
	u.RoleID = firstInt(w.IIDRol, w.ILDRol, w.IDRole, w.RoleID)
	u.Active = true
	if w.BActive != nil {
		u.Active = *w.BActive
	} else if w.Active != nil {
		u.Active = *w.Active
	}
	return nil
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var w struct {
		IIDRol  wireInt `json:"iIdRol"`
		ILDRol  wireInt `json:"ildRol"`
		SRol    string  `json:"sRol"`
		BActive *bool   `json:"bActive"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	r.ID = firstInt(w.IIDRol, w.ILDRol)
	r.Name = strings.TrimSpace(w.SRol)
	r.Active = w.BActive == nil || *w.BActive
	return nil
}

func (br *Branch) UnmarshalJSON(b []byte) error {
	var w struct {
		IIDBranch wireInt `json:"iIdBranch"`
		SBranch   string  `json:"sBranch"`
		BActive   *bool   `json:"bActive"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	br.ID = int(w.IIDBranch)
	br.Name = strings.TrimSpace(w.SBranch)
	br.Active = w.BActive == nil || *w.BActive
	return nil
}

func (d *Department) UnmarshalJSON(b []byte) error {
	var w struct {
		IIDDepartment wireInt `json:"iIdDepartment"`
		SDepartment   string  `json:"sDepartment"`
		BActive       *bool   `json:"bActive"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	d.ID = int(w.IIDDepartment)
	d.Name = strings.TrimSpace(w.SDepartment)
	d.Active = w.BActive == nil || *w.BActive
	return nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var w struct {
		IIDStatus wireInt `json:"iIdStatus"`
		SStatus   string  `json:"sStatus"`
		BActive   *bool   `json:"bActive"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	s.ID = StatusID(w.IIDStatus)
	s.Name = strings.TrimSpace(w.SStatus)
	s.Active = w.BActive == nil || *w.BActive
	return nil
}

func (t *TaskType) UnmarshalJSON(b []byte) error {
	var w struct {
		IIDTaskType wireInt `json:"iIdTaskType"`
		STaskType   string  `json:"sTaskType"`
		BActive     *bool   `json:"bActive"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t.ID = int(w.IIDTaskType)
	t.Name = strings.TrimSpace(w.STaskType)
	t.Active = w.BActive == nil || *w.BActive
	return nil
}

type wireTicket struct {
	IIDTask             wireInt `json:"iIdTask"`
	SName               string  `json:"sName"`
	SDescription        string  `json:"sDescription"`
	IIDTaskType         wireInt `json:"iIdTaskType"`
	IIDStatus           wireInt `json:"iIdStatus"`
	StatusName          string  `json:"statusName"`
	BranchID            wireInt `json:"branchId"`
	IIDBranch           wireInt `json:"iIdBranch"`
	BranchName          string  `json:"branchName"`
	DepartmentID        wireInt `json:"departmentId"`
	IIDDepartment       wireInt `json:"iIdDepartment"`
	DepartmentName      string  `json:"departmentName"`
	IIDUserRaisedTask   wireInt `json:"iIdUserRaisedTask"`
	UserRaisedName      string  `json:"userRaisedName"`
	IIDUserTaskAssigned wireInt `json:"iIdUserTaskAssigned"`
	AssignedUserID      wireInt `json:"assignedUserId"`
	DTaskStartDate      string  `json:"dTaskStartDate"`
	DDateUserCreate     string  `json:"dDateUserCreate"`
	DTaskCompletionDate string  `json:"dTaskCompletionDate"`
	BActive             *bool   `json:"bActive"`
}

func (t *Ticket) UnmarshalJSON(b []byte) error {
	var w wireTicket
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t.ID = int(w.IIDTask)
	t.Title = strings.TrimSpace(w.SName)
	t.Description = w.SDescription
	t.TypeID = int(w.IIDTaskType)
	t.Status = StatusID(w.IIDStatus)
	t.StatusName = strings.TrimSpace(w.StatusName)
	t.BranchID = firstInt(w.BranchID, w.IIDBranch)
	t.BranchName = strings.TrimSpace(w.BranchName)
	t.DepartmentID = firstInt(w.DepartmentID, w.IIDDepartment)
	t.DepartmentName = strings.TrimSpace(w.DepartmentName)
	t.RaisedByID = int(w.IIDUserRaisedTask)
	t.RaisedByName = strings.TrimSpace(w.UserRaisedName)
	t.AssignedUserID = firstInt(w.IIDUserTaskAssigned, w.AssignedUserID)
	t.StartDate = parseWireTime(w.DTaskStartDate)
	t.CreatedAt = parseWireTime(w.DDateUserCreate)
	t.CompletedAt = parseWireTime(w.DTaskCompletionDate)
	t.Active = w.BActive == nil || *w.BActive
	return nil
}

type wireTask struct {
	IIDTask             wireInt `json:"iIdTask"`
	SName               string  `json:"sName"`
	SDescription        string  `json:"sDescription"`
	IIDTaskType         wireInt `json:"iIdTaskType"`
	IIDStatus           wireInt `json:"iIdStatus"`
	IIDUserRaisedTask   wireInt `json:"iIdUserRaisedTask"`
	IIDUserCreate       wireInt `json:"iIdUserCreate"`
	IIDUserTaskAssigned wireInt `json:"iIdUserTaskAssigned"`
	AssignedUserID      wireInt `json:"assignedUserId"`
	DTaskStartDate      string  `json:"dTaskStartDate"`
	DDateUserCreate     string  `json:"dDateUserCreate"`
	DTaskCompletionDate string  `json:"dTaskCompletionDate"`
	BActive             *bool   `json:"bActive"`
}

func (t *Task) UnmarshalJSON(b []byte) error {
	var w wireTask
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	t.ID = int(w.IIDTask)
	t.Title = strings.TrimSpace(w.SName)
	t.Description = w.SDescription
	t.TypeID = int(w.IIDTaskType)
	t.Status = StatusID(w.IIDStatus)
	t.CreatedByID = firstInt(w.IIDUserRaisedTask, w.IIDUserCreate)
	t.AssignedUserID = firstInt(w.IIDUserTaskAssigned, w.AssignedUserID)
	t.StartDate = parseWireTime(w.DTaskStartDate)
	t.CreatedAt = parseWireTime(w.DDateUserCreate)
	t.CompletedAt = parseWireTime(w.DTaskCompletionDate)
	t.Active = w.BActive == nil || *w.BActive
	t.Kind = KindOf(t.CreatedByID, t.AssignedUserID)
	return nil
}

type wireComment struct {
	ILDComment   wireInt `json:"ildComment"`
	IIDComment   wireInt `json:"iIdComment"`
	ILDTask      wireInt `json:"ildTask"`
	IIDTask      wireInt `json:"iIdTask"`
	SComment     string  `json:"sComment"`
	ILDUser      wireInt `json:"ildUser"`
	IIDUser      wireInt `json:"iIdUser"`
	SUser        string  `json:"sUser"`
	UserName     string  `json:"userName"`
	EmployeeName string  `json:"employeeName"`
	DDateCreate  string  `json:"dDateCreate"`
}

func (c *Comment) UnmarshalJSON(b []byte) error {
	var w wireComment
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	c.ID = firstInt(w.ILDComment, w.IIDComment)
	c.TicketID = firstInt(w.ILDTask, w.IIDTask)
	c.AuthorID = firstInt(w.ILDUser, w.IIDUser)
	c.AuthorName = firstString(w.SUser, w.UserName, w.EmployeeName)
	c.Body = w.SComment
	if ts := parseWireTime(w.DDateCreate); ts != nil {
		c.CreatedAt = *ts
	}
	return nil
}

func (f *FileInfo) UnmarshalJSON(b []byte) error {
	var w struct {
		IIDFile   wireInt `json:"iIdFile"`
		ILDFile   wireInt `json:"ildFile"`
		IIDTask   wireInt `json:"iIdTask"`
		SFileName string  `json:"sFileName"`
		SName     string  `json:"sName"`
		SURL      string  `json:"sUrl"`
		URL       string  `json:"url"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	f.ID = firstInt(w.IIDFile, w.ILDFile)
	f.TicketID = int(w.IIDTask)
	f.Name = firstString(w.SFileName, w.SName)
	f.URL = firstString(w.SURL, w.URL)
	return nil
}
