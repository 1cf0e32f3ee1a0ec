package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tickets-cli/internal/model"
)

type CreateTaskInput struct {
	Title       string         `json:"sName"`
	Description string         `json:"sDescription"`
	TypeID      int            `json:"iIdTaskType"`
	Status      model.StatusID `json:"iIdStatus"`
	StartDate   time.Time      `json:"dTaskStartDate"`
}

type UpdateTaskInput struct {
	Description    string         `json:"sDescription"`
	Status         model.StatusID `json:"iIdStatus"`
	CompletionDate *time.Time     `json:"dTaskCompletionDate"`
	Active         bool           `json:"bActive"`
}

type CreateAssignedTaskInput struct {
	Title          string         `json:"sName"`
	Description    string         `json:"sDescription"`
	TypeID         int            `json:"iIdTaskType"`
	Status         model.StatusID `json:"iIdStatus"`
	StartDate      time.Time      `json:"dTaskStartDate"`
	AssignedUserID int            `json:"iIdUserTaskAssigned"`
}

type assignedStatusInput struct {
	TaskID         int            `json:"iIdTask"`
	Status         model.StatusID `json:"iIdStatus"`
	CompletionDate *time.Time     `json:"dTaskCompletionDate"`
}

func (c *Client) PersonalTasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	err := c.doJSON(ctx, http.MethodGet, "tasks/personal", nil, &out)
	return out, err
}

func (c *Client) CreatePersonalTask(ctx context.Context, in CreateTaskInput) (model.Task, error) {
	var out model.Task
	err := c.doJSON(ctx, http.MethodPost, "tasks/personal", in, &out)
	return out, err
}

func (c *Client) UpdatePersonalTask(ctx context.Context, id int, in UpdateTaskInput) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("tasks/personal/%d", id), in, nil)
}

func (c *Client) DeletePersonalTask(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("tasks/personal/%d", id), nil, nil)
}

// AssignedToMe lists tasks delegated to the authenticated user.
func (c *Client) AssignedToMe(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	err := c.doJSON(ctx, http.MethodGet, "tasks/assigned/assigned-to-me", nil, &out)
	return out, err
}

// AssignedByMe lists tasks the authenticated user delegated to others.
func (c *Client) AssignedByMe(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	err := c.doJSON(ctx, http.MethodGet, "tasks/assigned/assigned-by-me", nil, &out)
	return out, err
}

func (c *Client) CreateAssignedTask(ctx context.Context, in CreateAssignedTaskInput) (model.Task, error) {
	var out model.Task
	err := c.doJSON(ctx, http.MethodPost, "tasks/assigned", in, &out)
	return out, err
}

// UpdateAssignedTaskStatus moves a delegated task; only the assignee may call
// this (the server enforces it, the UI pre-checks via policy).
func (c *Client) UpdateAssignedTaskStatus(ctx context.Context, taskID int, status model.StatusID, completion *time.Time) error {
	in := assignedStatusInput{TaskID: taskID, Status: status, CompletionDate: completion}
	return c.doJSON(ctx, http.MethodPatch, "tasks/assigned/status", in, nil)
}
