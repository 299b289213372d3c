package persist

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
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Client talks to a persistence Server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Save stores values for username and returns the server's message.
func (c *Client) Save(ctx context.Context, username string, values []int) (string, error) {
	if values == nil {
		values = []int{}
	}
	body, err := json.Marshal(saveRequest{Username: Username(username), Array: values})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/save_array", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp saveResponse
	if err := c.do(req, "save", &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Load returns the array saved for username. An empty result means
// nothing was saved.
func (c *Client) Load(ctx context.Context, username string) ([]int, error) {
	u := c.BaseURL + "/load_array/" + url.PathEscape(Username(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var resp loadResponse
	if err := c.do(req, "load", &resp); err != nil {
		return nil, err
	}
	return resp.Array, nil
}

// Users lists usernames with a saved array.
func (c *Client) Users(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/users", nil)
	if err != nil {
		return nil, err
	}

	var resp usersResponse
	if err := c.do(req, "users", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// Local serves Save and Load straight from a Store without HTTP.
type Local struct {
	Store Store
}

func (l Local) Save(ctx context.Context, username string, values []int) (string, error) {
	if values == nil {
		values = []int{}
	}
	if err := l.Store.Put(ctx, Username(username), values); err != nil {
		return "", err
	}
	return SavedMessage, nil
}

func (l Local) Load(ctx context.Context, username string) ([]int, error) {
	return l.Store.Get(ctx, Username(username))
}
