package api

import (
	"context"
	"net/http"

	"tickets-cli/internal/model"
)

// Catalog reads. Callers degrade gracefully on failure: dropdowns render
// empty rather than crashing, and login proceeds without a roles map.

func (c *Client) Roles(ctx context.Context) ([]model.Role, error) {
	var out []model.Role
	err := c.doJSON(ctx, http.MethodGet, "general/roles", nil, &out)
	return out, err
}

func (c *Client) Branches(ctx context.Context) ([]model.Branch, error) {
	var out []model.Branch
	err := c.doJSON(ctx, http.MethodGet, "general/branches", nil, &out)
	return out, err
}

func (c *Client) Departments(ctx context.Context) ([]model.Department, error) {
	var out []model.Department
	err := c.doJSON(ctx, http.MethodGet, "general/departments", nil, &out)
	return out, err
}

func (c *Client) Statuses(ctx context.Context) ([]model.Status, error) {
	var out []model.Status
	err := c.doJSON(ctx, http.MethodGet, "general/status", nil, &out)
	return out, err
}

func (c *Client) TaskTypes(ctx context.Context) ([]model.TaskType, error) {
	var out []model.TaskType
	err := c.doJSON(ctx, http.MethodGet, "general/task-types", nil, &out)
	return out, err
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.doJSON(ctx, http.MethodGet, "general/users", nil, &out)
	return out, err
}

// SupportUsers lists the triage team members a ticket can be assigned to.
func (c *Client) SupportUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.doJSON(ctx, http.MethodGet, "general/support-users", nil, &out)
	return out, err
}
