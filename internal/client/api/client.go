// Package api is a typed HTTP client for the cadastral lookup service,
// used by the command-line client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/cadastr/internal/common"
	"github.com/dmitrijs2005/cadastr/internal/server/models"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken attaches a bearer token to all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if err := json.Unmarshal(raw, &e); err == nil && e.Detail != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Detail)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, "application/json", bytes.NewReader(body), out)
}

// Ping checks service liveness.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var m messageResponse
	if err := c.do(ctx, http.MethodGet, "/ping", "", nil, &m); err != nil {
		return "", err
	}
	return m.Message, nil
}

// Register creates an account and returns the server acknowledgment.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}

	var m messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/register", payload, &m); err != nil {
		return "", err
	}
	return m.Message, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}

	var t tokenResponse
	err := c.do(ctx, http.MethodPost, "/login", "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()), &t)
	if err != nil {
		return "", err
	}
	return t.AccessToken, nil
}

// Me returns the account behind the configured token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", "", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Query forwards a lookup and returns the stored log record.
func (c *Client) Query(ctx context.Context, cadastralNumber string, latitude, longitude float64) (*models.QueryLog, error) {
	payload := map[string]any{
		"cadastral_number": cadastralNumber,
		"latitude":         latitude,
		"longitude":        longitude,
	}

	var log models.QueryLog
	if err := c.doJSON(ctx, http.MethodPost, "/query", payload, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// History lists logged queries, optionally filtered by cadastral number.
func (c *Client) History(ctx context.Context, cadastralNumber string) ([]models.QueryLog, error) {
	path := "/history"
	if cadastralNumber != "" {
		path += "?cadastral_number=" + url.QueryEscape(cadastralNumber)
	}

	var logs []models.QueryLog
	if err := c.do(ctx, http.MethodGet, path, "", nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
