package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tdo/internal/models"
	"tdo/internal/serverdb"
)

// TestHarness wraps a full Server with a real HTTP listener for integration tests.
type TestHarness struct {
	t       *testing.T
	Server  *Server
	Store   *serverdb.ServerDB
	BaseURL string
	client  *http.Client
	httpSrv *httptest.Server
}

// newTestHarness creates a TestHarness with a real HTTP server on a random port.
func newTestHarness(t *testing.T, opts ...func(*Config)) *TestHarness {
	t.Helper()

	store, err := serverdb.Open(":memory:")
	if err != nil {
		t.Fatalf("open server db: %v", err)
	}

	cfg := Config{
		ListenAddr:  ":0",
		JWTSecret:   "test-secret",
		AllowSignup: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := NewServer(cfg, store)
	if err != nil {
		t.Fatalf("create server: %v", err)
	}

	httpSrv := httptest.NewServer(srv.routes())

	h := &TestHarness{
		t:       t,
		Server:  srv,
		Store:   store,
		BaseURL: httpSrv.URL,
		client:  &http.Client{},
		httpSrv: httpSrv,
	}

	t.Cleanup(func() {
		httpSrv.Close()
		store.Close()
	})

	return h
}

// Do sends a JSON HTTP request and returns the response. Caller must
// close resp.Body unless using ReadJSON or AssertStatus.
func (h *TestHarness) Do(method, path, token string, body any) *http.Response {
	h.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			h.t.Fatalf("marshal request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, h.BaseURL+path, &buf)
	if err != nil {
		h.t.Fatalf("create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.t.Fatalf("do request %s %s: %v", method, path, err)
	}
	return resp
}

// PostForm sends a form-encoded POST, as the login endpoint expects.
func (h *TestHarness) PostForm(path string, values url.Values) *http.Response {
	h.t.Helper()
	resp, err := h.client.Post(h.BaseURL+path, "application/x-www-form-urlencoded",
		strings.NewReader(values.Encode()))
	if err != nil {
		h.t.Fatalf("post form %s: %v", path, err)
	}
	return resp
}

// ReadJSON decodes the response body into out and closes it.
func (h *TestHarness) ReadJSON(resp *http.Response, out any) {
	h.t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		h.t.Fatalf("decode response: %v", err)
	}
}

// AssertStatus checks the response status code and closes the body.
func (h *TestHarness) AssertStatus(resp *http.Response, want int) {
	h.t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		h.t.Fatalf("status = %d, want %d; body: %s", resp.StatusCode, want, body)
	}
	resp.Body.Close()
}

// Register creates a user through the API and returns its id.
func (h *TestHarness) Register(username, password string) string {
	h.t.Helper()
	resp := h.Do("POST", "/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@test.com",
		"password": password,
	})
	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		h.t.Fatalf("register %s: status %d, body %s", username, resp.StatusCode, body)
	}
	var u models.User
	h.ReadJSON(resp, &u)
	return u.ID
}

// Login authenticates through the API and returns the bearer token.
func (h *TestHarness) Login(username, password string) string {
	h.t.Helper()
	resp := h.PostForm("/auth/login", url.Values{
		"username": {username},
		"password": {password},
	})
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		h.t.Fatalf("login %s: status %d, body %s", username, resp.StatusCode, body)
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	h.ReadJSON(resp, &tok)
	return tok.AccessToken
}

// Signup registers and logs in, returning the bearer token.
func (h *TestHarness) Signup(username string) string {
	h.t.Helper()
	h.Register(username, "password123")
	return h.Login(username, "password123")
}
