package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/hostelhub/hostelctl/internal/record"
)

const roleAdmin = "admin"

type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}

func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Role, roleAdmin)
}

type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Me returns the user behind the current token.
func (c *Client) Me(ctx context.Context) (User, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return User{}, err
	}

	r, err := decodeRecord(body)
	if err != nil {
		return User{}, err
	}

	// Some deployments wrap the profile as {"user": {...}}.
	if nested, ok := r["user"].(map[string]any); ok {
		r = nested
	}

	return userFromRecord(r), nil
}

// RequireAdmin fails with ErrForbidden unless the current user is an admin.
func (c *Client) RequireAdmin(ctx context.Context) (User, error) {
	user, err := c.Me(ctx)
	if err != nil {
		return User{}, err
	}

	if !user.IsAdmin() {
		return user, ErrForbidden
	}

	return user, nil
}

// Login exchanges credentials for a session token and keeps it on the client.
// The token is read from the body when present, otherwise from the session cookie.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, User, error) {
	if err := c.validatePayload(creds); err != nil {
		return "", User{}, err
	}

	resp, err := c.send(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return "", User{}, err
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return "", User{}, err
	}

	var payload struct {
		Token string        `json:"token"`
		User  record.Record `json:"user"`
	}
	if len(body) > 0 {
		if err = json.Unmarshal(body, &payload); err != nil {
			return "", User{}, fmt.Errorf("failed to decode login response: %w", err)
		}
	}

	token := payload.Token
	if token == "" {
		for _, cookie := range resp.Cookies() {
			if cookie.Name == c.cookieName {
				token = cookie.Value
				break
			}
		}
	}

	if token == "" {
		return "", User{}, errors.New("login response carried no session token")
	}

	c.SetToken(token)

	return token, userFromRecord(payload.User), nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil)
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return err
	}

	c.SetToken("")
	return nil
}

func userFromRecord(r record.Record) User {
	var u User
	u.ID, _ = r.ID()
	u.Name, _ = r.String("name")
	u.Email, _ = r.String("email")
	u.Role, _ = r.String("role")
	return u
}
