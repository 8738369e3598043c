package api

import (
	"net/http"
	"net/url"
	"testing"

	"tdo/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	h := newTestHarness(t)
	h.Register("alice", "password123")

	token := h.Login("alice", "password123")
	if token == "" {
		t.Fatal("empty access token")
	}

	resp := h.Do("GET", "/auth/me", token, nil)
	var me models.User
	h.ReadJSON(resp, &me)
	if me.Username != "alice" {
		t.Errorf("me.Username = %q", me.Username)
	}
	if me.Email != "alice@test.com" {
		t.Errorf("me.Email = %q", me.Email)
	}
}

func TestRegisterValidation(t *testing.T) {
	h := newTestHarness(t)

	resp := h.Do("POST", "/auth/register", "", map[string]string{
		"username": "",
		"email":    "not-an-email",
		"password": "short",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body ErrorResponse
	h.ReadJSON(resp, &body)
	for _, field := range []string{"username", "email", "password"} {
		if body.Error.Fields[field] == "" {
			t.Errorf("missing field error for %q: %+v", field, body.Error.Fields)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h := newTestHarness(t)
	h.Register("bob", "password123")

	resp := h.Do("POST", "/auth/register", "", map[string]string{
		"username": "bob",
		"email":    "other@test.com",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body ErrorResponse
	h.ReadJSON(resp, &body)
	if body.Error.Fields["username"] == "" {
		t.Errorf("expected username field error: %+v", body.Error)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := newTestHarness(t)
	h.Register("carol", "password123")

	resp := h.PostForm("/auth/login", url.Values{
		"username": {"carol"},
		"password": {"wrong"},
	})
	h.AssertStatus(resp, http.StatusUnauthorized)

	resp = h.PostForm("/auth/login", url.Values{
		"username": {"nobody"},
		"password": {"password123"},
	})
	h.AssertStatus(resp, http.StatusUnauthorized)
}

func TestSignupDisabled(t *testing.T) {
	h := newTestHarness(t, func(cfg *Config) { cfg.AllowSignup = false })

	resp := h.Do("POST", "/auth/register", "", map[string]string{
		"username": "dave",
		"email":    "dave@test.com",
		"password": "password123",
	})
	h.AssertStatus(resp, http.StatusForbidden)
}

func TestRequireAuth(t *testing.T) {
	h := newTestHarness(t)

	resp := h.Do("GET", "/tasks/", "", nil)
	h.AssertStatus(resp, http.StatusUnauthorized)

	resp = h.Do("GET", "/tasks/", "garbage-token", nil)
	h.AssertStatus(resp, http.StatusUnauthorized)
}

func TestTokenRoundTrip(t *testing.T) {
	h := newTestHarness(t)
	uid := h.Register("erin", "password123")
	token := h.Login("erin", "password123")

	got, err := h.Server.verifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if got != uid {
		t.Errorf("subject = %q, want %q", got, uid)
	}
}
