// Package api is a thin HTTP client for the authd server API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Session holds the result of a successful login. The token is presented as
// a bearer credential on subsequent requests.
type Session struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Session returns the current login session, or nil when logged out.
func (c *Client) Session() *Session {
	return c.session
}

// Register creates an account and returns its identifier.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var out struct {
		UserID string `json:"userId"`
	}
	_, err := c.do(ctx, http.MethodPost, "/api/v1/user",
		map[string]string{"username": username, "password": password}, &out, "")
	if err != nil {
		return "", err
	}
	return out.UserID, nil
}

// Login authenticates and remembers the session for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var out struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/login",
		map[string]string{"username": username, "password": password}, &out, "")
	if err != nil {
		return nil, err
	}

	session := &Session{UserID: out.UserID, Token: out.Token}
	if v := resp.Header.Get("X-Expires-After"); v != "" {
		if expires, err := time.Parse(time.RFC3339, v); err == nil {
			session.ExpiresAt = expires
		}
	}

	c.session = session
	return session, nil
}

// Logout forgets the current session.
func (c *Client) Logout() {
	c.session = nil
}

// Me returns the account id the current session belongs to.
func (c *Client) Me(ctx context.Context) (string, error) {
	if c.session == nil {
		return "", fmt.Errorf("not logged in")
	}
	var out struct {
		UserID string `json:"userId"`
	}
	_, err := c.do(ctx, http.MethodGet, "/api/v1/me", nil, &out, c.session.Token)
	if err != nil {
		return "", err
	}
	return out.UserID, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any, token string) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error.Type == "" {
			return nil, fmt.Errorf("server returned %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s: %s", apiErr.Error.Type, apiErr.Error.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, err
		}
	}

	return resp, nil
}
