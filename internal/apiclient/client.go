// Package apiclient issues authenticated HTTP requests against the tdo
// server and normalizes every failure into a small error taxonomy before
// it reaches the rest of the client.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the bearer credential for outgoing requests.
// The session package implements it.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource holding a fixed credential, used by tests
// and one-shot commands.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client is the HTTP client for the tdo server.
type Client struct {
	BaseURL string
	Tokens  TokenSource
	HTTP    *http.Client

	// OnUnauthorized fires once per 401 response, before the normalized
	// error is returned. The CLI uses it to clear the stored credential
	// and point the user back at login.
	OnUnauthorized func()
}

// New creates a client for the given server URL.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Tokens:  tokens,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// apiError is the structured error body returned by the server.
type apiError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields,omitempty"`
	} `json:"error"`
}

// do executes an authenticated JSON request.
func (c *Client) do(method, path string, body, result any) error {
	return c.request(method, path, body, result, true)
}

// doNoAuth executes an unauthenticated JSON request (login, register).
func (c *Client) doNoAuth(method, path string, body, result any) error {
	return c.request(method, path, body, result, false)
}

func (c *Client) request(method, path string, body, result any, auth bool) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, result, auth)
}

// postForm executes a form-encoded POST; the login endpoint requires it.
func (c *Client) postForm(path string, form url.Values, result any) error {
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.send(req, result, false)
}

func (c *Client) send(req *http.Request, result any, auth bool) error {
	if auth && c.Tokens != nil {
		if tok := c.Tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode >= 400 {
		return c.normalize(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// normalize maps an HTTP failure onto the error taxonomy. A 401 also
// fires the OnUnauthorized hook: expired credentials are a cross-cutting
// concern, not specific to any one call.
func (c *Client) normalize(status int, body []byte) error {
	var ae apiError
	haveBody := json.Unmarshal(body, &ae) == nil && ae.Error.Code != ""

	switch status {
	case http.StatusUnauthorized:
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		if haveBody {
			return fmt.Errorf("%w: %s", ErrUnauthorized, ae.Error.Message)
		}
		return ErrUnauthorized
	case http.StatusForbidden:
		if haveBody {
			return fmt.Errorf("%w: %s", ErrForbidden, ae.Error.Message)
		}
		return ErrForbidden
	case http.StatusNotFound:
		if haveBody {
			return fmt.Errorf("%w: %s", ErrNotFound, ae.Error.Message)
		}
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if haveBody && len(ae.Error.Fields) > 0 {
			return &ValidationError{Fields: ae.Error.Fields}
		}
		if haveBody {
			return &ValidationError{Fields: map[string]string{"request": ae.Error.Message}}
		}
	}
	return &UnknownError{Status: status, Body: string(body)}
}
