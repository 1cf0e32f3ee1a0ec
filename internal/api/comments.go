package api

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"tickets-cli/internal/model"
)

// Comments returns the thread for a ticket/task id, oldest first.
func (c *Client) Comments(ctx context.Context, ticketID int) ([]model.Comment, error) {
	var out []model.Comment
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("TicketComments/%d", ticketID), nil, &out); err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type addCommentInput struct {
	// Both id spellings are sent; older API builds read the ild* ones.
	TicketID  int    `json:"iIdTask"`
	TicketID2 int    `json:"ildTask"`
	Body      string `json:"sComment"`
	AuthorID  int    `json:"iIdUser"`
	AuthorID2 int    `json:"ildUser"`
}

func (c *Client) AddComment(ctx context.Context, ticketID, authorID int, body string) error {
	in := addCommentInput{
		TicketID:  ticketID,
		TicketID2: ticketID,
		Body:      body,
		AuthorID:  authorID,
		AuthorID2: authorID,
	}
	return c.doJSON(ctx, http.MethodPost, "TicketComments", in, nil)
}
