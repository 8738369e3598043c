package apiclient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tdo/internal/models"
)

func errorBody(code, message string, fields map[string]string) string {
	body := map[string]any{"error": map[string]any{"code": code, "message": message}}
	if fields != nil {
		body["error"].(map[string]any)["fields"] = fields
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestNormalize_Taxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   errorBody("unauthorized", "token expired", nil),
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnauthorized) {
					t.Errorf("want ErrUnauthorized, got %v", err)
				}
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   errorBody("forbidden", "not your task", nil),
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrForbidden) {
					t.Errorf("want ErrForbidden, got %v", err)
				}
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   errorBody("not_found", "task not found", nil),
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrNotFound) {
					t.Errorf("want ErrNotFound, got %v", err)
				}
			},
		},
		{
			name:   "validation with fields",
			status: http.StatusBadRequest,
			body:   errorBody("validation", "invalid input", map[string]string{"title": "title is required"}),
			check: func(t *testing.T, err error) {
				ve, ok := IsValidation(err)
				if !ok {
					t.Fatalf("want ValidationError, got %v", err)
				}
				if ve.Fields["title"] != "title is required" {
					t.Errorf("field message lost: %v", ve.Fields)
				}
			},
		},
		{
			name:   "unknown",
			status: http.StatusBadGateway,
			body:   "upstream exploded",
			check: func(t *testing.T, err error) {
				var ue *UnknownError
				if !errors.As(err, &ue) {
					t.Fatalf("want UnknownError, got %v", err)
				}
				if ue.Status != http.StatusBadGateway {
					t.Errorf("status = %d", ue.Status)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, StaticToken("tok"))
			_, err := c.ListTasks("")
			if err == nil {
				t.Fatal("expected error")
			}
			tt.check(t, err)
		})
	}
}

func TestUnauthorizedFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(errorBody("unauthorized", "expired", nil)))
	}))
	defer srv.Close()

	fired := 0
	c := New(srv.URL, StaticToken("stale"))
	c.OnUnauthorized = func() { fired++ }

	if _, err := c.ListTasks(""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if fired != 1 {
		t.Errorf("OnUnauthorized fired %d times, want 1", fired)
	}
}

func TestNetworkErrorNormalized(t *testing.T) {
	// Closed server: transport failure, not an HTTP status.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, StaticToken(""))
	_, err := c.ListTasks("")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("want ErrNetwork, got %v", err)
	}
}

func TestUpdateTask_LabelsOnlyRouting(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(models.Task{ID: "t1", LabelIDs: []string{"l1"}})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))

	if _, err := c.UpdateTask("t1", &models.TaskPatch{LabelIDs: []string{"l1"}}); err != nil {
		t.Fatalf("labels-only update: %v", err)
	}
	if gotMethod != "PUT" || gotPath != "/tasks/t1/labels" {
		t.Errorf("labels-only patch hit %s %s, want PUT /tasks/t1/labels", gotMethod, gotPath)
	}

	title := "Renamed"
	if _, err := c.UpdateTask("t1", &models.TaskPatch{Title: &title, LabelIDs: []string{"l1"}}); err != nil {
		t.Fatalf("mixed update: %v", err)
	}
	if gotMethod != "PATCH" || gotPath != "/tasks/t1" {
		t.Errorf("mixed patch hit %s %s, want PATCH /tasks/t1", gotMethod, gotPath)
	}
}

func TestCreateLabel_BadColorNeverHitsNetwork(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	_, err := c.CreateLabel(&models.LabelCreate{Name: "Work", Color: "#ff00"})
	if _, ok := IsValidation(err); !ok {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if requests != 0 {
		t.Errorf("malformed color reached the server (%d requests)", requests)
	}
}

func TestCreateTask_MissingFieldsRejectedLocally(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	_, err := c.CreateTask(&models.TaskCreate{})
	ve, ok := IsValidation(err)
	if !ok {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if _, hasTitle := ve.Fields["title"]; !hasTitle {
		t.Error("missing title message")
	}
	if _, hasDeadline := ve.Fields["deadline"]; !hasDeadline {
		t.Error("missing deadline message")
	}
	if requests != 0 {
		t.Errorf("invalid create reached the server (%d requests)", requests)
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Task{})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("secret-token"))
	if _, err := c.ListTasks("u1"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestLogin_FormEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		r.ParseForm()
		if r.PostFormValue("username") != "alice" || r.PostFormValue("password") != "s3cret" {
			t.Errorf("form = %v", r.PostForm)
		}
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok", TokenType: "bearer"})
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	resp, err := c.Login("alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken != "tok" {
		t.Errorf("access token = %q", resp.AccessToken)
	}
}
