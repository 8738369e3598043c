package api

import (
	"encoding/json"
	"net/http"

	"tdo/internal/models"
)

// loadOwnedLabel fetches the label and checks ownership. It writes the
// error response itself and returns nil when the caller should stop.
func (s *Server) loadOwnedLabel(w http.ResponseWriter, r *http.Request) *models.Label {
	label, err := s.store.GetLabel(r.PathValue("id"))
	if err != nil {
		logFor(r.Context()).Error("load label", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to load label")
		return nil
	}
	if label == nil {
		writeError(w, http.StatusNotFound, ErrCodeNotFound, "label not found")
		return nil
	}
	if label.UserID != getUserFromContext(r.Context()).UserID {
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "not your label")
		return nil
	}
	return label
}

// handleListLabels handles GET /labels/. Only the caller's own labels
// are returned.
func (s *Server) handleListLabels(w http.ResponseWriter, r *http.Request) {
	labels, err := s.store.ListLabelsByUser(getUserFromContext(r.Context()).UserID)
	if err != nil {
		logFor(r.Context()).Error("list labels", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list labels")
		return
	}
	if labels == nil {
		labels = []*models.Label{}
	}
	writeJSON(w, http.StatusOK, labels)
}

// handleListUserLabels handles GET /labels/user/{userID}. The path id
// must match the authenticated user.
func (s *Server) handleListUserLabels(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	if userID != getUserFromContext(r.Context()).UserID {
		writeError(w, http.StatusForbidden, ErrCodeForbidden, "not your labels")
		return
	}
	labels, err := s.store.ListLabelsByUser(userID)
	if err != nil {
		logFor(r.Context()).Error("list user labels", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to list labels")
		return
	}
	if labels == nil {
		labels = []*models.Label{}
	}
	writeJSON(w, http.StatusOK, labels)
}

// handleCreateLabel handles POST /labels/.
func (s *Server) handleCreateLabel(w http.ResponseWriter, r *http.Request) {
	var in models.LabelCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid json body")
		return
	}
	if fields := models.ValidateLabelCreate(&in); fields != nil {
		writeValidationError(w, fields)
		return
	}

	user := getUserFromContext(r.Context())
	label, err := s.store.CreateLabel(user.UserID, in)
	if err != nil {
		logFor(r.Context()).Error("create label", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to create label")
		return
	}

	logFor(r.Context()).Info("label created", "label", label.ID)
	writeJSON(w, http.StatusCreated, label)
}

// handleGetLabel handles GET /labels/{id}.
func (s *Server) handleGetLabel(w http.ResponseWriter, r *http.Request) {
	label := s.loadOwnedLabel(w, r)
	if label == nil {
		return
	}
	writeJSON(w, http.StatusOK, label)
}

// handleUpdateLabel handles PATCH /labels/{id}.
func (s *Server) handleUpdateLabel(w http.ResponseWriter, r *http.Request) {
	label := s.loadOwnedLabel(w, r)
	if label == nil {
		return
	}

	var patch models.LabelPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid json body")
		return
	}
	if fields := models.ValidateLabelPatch(&patch); fields != nil {
		writeValidationError(w, fields)
		return
	}

	updated, err := s.store.UpdateLabel(label.ID, patch)
	if err != nil {
		logFor(r.Context()).Error("update label", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to update label")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteLabel handles DELETE /labels/{id}.
func (s *Server) handleDeleteLabel(w http.ResponseWriter, r *http.Request) {
	label := s.loadOwnedLabel(w, r)
	if label == nil {
		return
	}

	if _, err := s.store.DeleteLabel(label.ID); err != nil {
		logFor(r.Context()).Error("delete label", "err", err)
		writeError(w, http.StatusInternalServerError, ErrCodeInternal, "failed to delete label")
		return
	}
	logFor(r.Context()).Info("label deleted", "label", label.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": label.ID})
}
