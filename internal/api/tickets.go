package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"tickets-cli/internal/model"
)

// CreateTicketInput is the wire shape for POST tickets.
type CreateTicketInput struct {
	Title        string         `json:"sName"`
	Description  string         `json:"sDescription"`
	TypeID       int            `json:"iIdTaskType"`
	Status       model.StatusID `json:"iIdStatus"`
	BranchID     int            `json:"iIdBranch"`
	DepartmentID int            `json:"iIdDepartment"`
	StartDate    time.Time      `json:"dTaskStartDate"`
}

// UpdateTicketInput is the wire shape for PUT tickets/{id}. The server
// expects the full record back, so callers populate every field from the
// mirrored ticket plus their change.
type UpdateTicketInput struct {
	Title          string         `json:"sName"`
	Description    string         `json:"sDescription"`
	Status         model.StatusID `json:"iIdStatus"`
	BranchID       int            `json:"iIdBranch"`
	DepartmentID   int            `json:"iIdDepartment"`
	CompletionDate *time.Time     `json:"dTaskCompletionDate"`
	Active         bool           `json:"bActive"`
}

func (c *Client) Tickets(ctx context.Context) ([]model.Ticket, error) {
	var out []model.Ticket
	err := c.doJSON(ctx, http.MethodGet, "tickets", nil, &out)
	return out, err
}

func (c *Client) Ticket(ctx context.Context, id int) (model.Ticket, error) {
	var out model.Ticket
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("tickets/%d", id), nil, &out)
	return out, err
}

func (c *Client) CreateTicket(ctx context.Context, in CreateTicketInput) (model.Ticket, error) {
	var out model.Ticket
	err := c.doJSON(ctx, http.MethodPost, "tickets", in, &out)
	return out, err
}

func (c *Client) UpdateTicket(ctx context.Context, id int, in UpdateTicketInput) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("tickets/%d", id), in, nil)
}

// AssignTicket reassigns a ticket to a support user.
func (c *Client) AssignTicket(ctx context.Context, id, targetUserID int) error {
	body := map[string]int{"iIdUserTarget": targetUserID}
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("tickets/%d/assign", id), body, nil)
}
