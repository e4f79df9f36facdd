// Package api is a thin JSON client for the Authgate HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akorchagin/authgate/internal/common"
)

const requestTimeout = 10 * time.Second

// User is the account view returned by the backend.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client calls the backend over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a Client for the given base URL, e.g.
// "http://127.0.0.1:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Register creates an account and returns the initial bearer secret.
func (c *Client) Register(ctx context.Context, email string, password string) (string, error) {
	return c.postCredentials(ctx, "/api/v1/auth/register", email, password)
}

// Login exchanges credentials for a new bearer secret.
func (c *Client) Login(ctx context.Context, email string, password string) (string, error) {
	return c.postCredentials(ctx, "/api/v1/auth/login", email, password)
}

// Logout revokes the given bearer secret on the server.
func (c *Client) Logout(ctx context.Context, secret string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/v1/auth/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	return nil
}

// CurrentUser fetches the account the secret resolves to.
func (c *Client) CurrentUser(ctx context.Context, secret string) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/v1/user/", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.apiError(resp)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &u, nil
}

func (c *Client) postCredentials(ctx context.Context, path string, email string, password string) (string, error) {
	body, err := json.Marshal(&credentialsRequest{Email: email, Password: password})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.apiError(resp)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return tr.Token, nil
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return req, nil
}

// apiError translates an error response into a sentinel from the common
// package so callers can branch with errors.Is.
func (c *Client) apiError(resp *http.Response) error {
	var er errorResponse
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
		msg = er.Error
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrorValidation
	case http.StatusUnauthorized:
		sentinel = common.ErrorUnauthorized
	case http.StatusConflict:
		sentinel = common.ErrorConflict
	default:
		sentinel = common.ErrorInternal
	}
	return fmt.Errorf("%s: %w", msg, sentinel)
}
