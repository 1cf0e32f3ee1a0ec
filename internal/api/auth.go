package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tickets-cli/internal/model"
)

type loginRequest struct {
	User string `json:"sUser"`
	Pass string `json:"sPass"`
}

// Login authenticates and returns the bearer token plus the canonical user
// record from the same response body. The token is also installed on the
// client for subsequent calls.
func (c *Client) Login(ctx context.Context, user, pass string) (string, model.User, error) {
	req := loginRequest{User: user, Pass: pass}

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "users/login", req, &raw); err != nil {
		return "", model.User{}, err
	}

	var tok struct {
		SToken string `json:"sToken"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(raw, &tok); err != nil {
		return "", model.User{}, err
	}
	token := strings.TrimSpace(tok.SToken)
	if token == "" {
		token = strings.TrimSpace(tok.Token)
	}
	if token == "" {
		return "", model.User{}, errors.New("api: login response carried no token")
	}

	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return "", model.User{}, err
	}
	if u.ID == 0 {
		return "", model.User{}, errors.New("api: login response carried no user id")
	}

	c.SetToken(token)
	return token, u, nil
}
