package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"tickets-cli/internal/model"
)

func (c *Client) Files(ctx context.Context, ticketID int) ([]model.FileInfo, error) {
	var out []model.FileInfo
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("task-files/%d", ticketID), nil, &out)
	return out, err
}

// UploadFile attaches a file to a ticket. The backend expects a multipart
// form with the part named "File".
func (c *Client) UploadFile(ctx context.Context, ticketID int, name string, r io.Reader) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("File", filepath.Base(name))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/task-files/%d", c.base, ticketID), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, nil)
}
