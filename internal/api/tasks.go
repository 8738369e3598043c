package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"tdo/internal/models"
	"tdo/internal/serverdb"
)

// loadOwnedTask fetches the task and checks ownership. It writes the
// error response itself and returns nil when the caller should stop.
func (s *Server) loadOwnedTask(w http.ResponseWriter, r *http.Request) *models.Task {
	task, err := s.store.GetTask(r.PathValue("id"))
	if err != nil {
		logFor(r.Context()).Error("load task", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to load task")
		return nil
	}
	if task == nil {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "task not found")
		return nil
	}
	if task.UserID != getUserFromContext(r.Context()).UserID {
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "not your task")
		return nil
	}
	return task
}

// handleListTasks handles GET /tasks/. Only the caller's own tasks are
// returned.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasksByUser(getUserFromContext(r.Context()).UserID)
	if err != nil {
		logFor(r.Context()).Error("list tasks", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// handleListUserTasks handles GET /tasks/user/{userID}. The path id must
// match the authenticated user; there is no cross-user listing.
func (s *Server) handleListUserTasks(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID != getUserFromContext(r.Context()).UserID {
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "not your tasks")
		return
	}
	tasks, err := s.store.ListTasksByUser(userID)
	if err != nil {
		logFor(r.Context()).Error("list user tasks", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// handleCreateTask handles POST /tasks/.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid json body")
		return
	}
	if fields := models.ValidateTaskCreate(&in); fields != nil {
		writeValidationError(w, fields)
		return
	}

	user := getUserFromContext(r.Context())
	task, err := s.store.CreateTask(user.UserID, in)
	if err != nil {
		if errors.Is(err, serverdb.ErrUnknownLabel) {
			writeValidationError(w, models.FieldErrors{"label_ids": "unknown label id"})
			return
		}
		logFor(r.Context()).Error("create task", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to create task")
		return
	}

	logFor(r.Context()).Info("task created", "task", task.ID)
	writeJSON(w, http.StatusCreated, task)
}

// handleGetTask handles GET /tasks/{id}.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task := s.loadOwnedTask(w, r)
	if task == nil {
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// handleUpdateTask handles PATCH /tasks/{id}.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	task := s.loadOwnedTask(w, r)
	if task == nil {
		return
	}

	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid json body")
		return
	}
	if fields := models.ValidateTaskPatch(&patch); fields != nil {
		writeValidationError(w, fields)
		return
	}

	updated, err := s.store.UpdateTask(task.ID, patch)
	if err != nil {
		if errors.Is(err, serverdb.ErrUnknownLabel) {
			writeValidationError(w, models.FieldErrors{"label_ids": "unknown label id"})
			return
		}
		logFor(r.Context()).Error("update task", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to update task")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// labelsBody is the JSON body for PUT /tasks/{id}/labels.
type labelsBody struct {
	LabelIDs []string `json:"label_ids"`
}

// handleSetTaskLabels handles PUT /tasks/{id}/labels, replacing the
// task's label set wholesale.
func (s *Server) handleSetTaskLabels(w http.ResponseWriter, r *http.Request) {
	task := s.loadOwnedTask(w, r)
	if task == nil {
		return
	}

	var body labelsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid json body")
		return
	}
	if body.LabelIDs == nil {
		body.LabelIDs = []string{}
	}

	updated, err := s.store.SetTaskLabels(task.ID, body.LabelIDs)
	if err != nil {
		if errors.Is(err, serverdb.ErrUnknownLabel) {
			writeValidationError(w, models.FieldErrors{"label_ids": "unknown label id"})
			return
		}
		logFor(r.Context()).Error("set task labels", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to set labels")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleToggleTask handles PATCH /tasks/{id}/toggle.
func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	task := s.loadOwnedTask(w, r)
	if task == nil {
		return
	}

	updated, err := s.store.ToggleTask(task.ID)
	if err != nil {
		logFor(r.Context()).Error("toggle task", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to toggle task")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteTask handles DELETE /tasks/{id}.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task := s.loadOwnedTask(w, r)
	if task == nil {
		return
	}

	if _, err := s.store.DeleteTask(task.ID); err != nil {
		logFor(r.Context()).Error("delete task", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to delete task")
		return
	}
	logFor(r.Context()).Info("task deleted", "task", task.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": task.ID})
}
