package apiclient

import (
	"fmt"

	"tdo/internal/models"
)

// ListTasks fetches the caller's tasks. With a userID it uses the
// per-user route; without one it falls back to the plain listing (both
// variants exist in deployments of the server).
func (c *Client) ListTasks(userID string) ([]models.Task, error) {
	path := "/tasks/"
	if userID != "" {
		path = "/tasks/user/" + userID
	}
	var tasks []models.Task
	if err := c.do("GET", path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(id string) (*models.Task, error) {
	var task models.Task
	if err := c.do("GET", "/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask validates the input locally, then creates the task.
// The server assigns the id and normalizes defaulted fields; the
// returned object is what belongs in the collection store.
func (c *Client) CreateTask(in *models.TaskCreate) (*models.Task, error) {
	if fe := models.ValidateTaskCreate(in); fe != nil {
		return nil, &ValidationError{Fields: fe}
	}
	var task models.Task
	if err := c.do("POST", "/tasks/", in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// labelsBody is the body for the labels-specific update endpoint.
type labelsBody struct {
	LabelIDs []string `json:"label_ids"`
}

// UpdateTask applies a partial update. A patch touching only label_ids
// is routed through PUT /tasks/{id}/labels; the backend expects label
// membership changes on that endpoint rather than the general update.
func (c *Client) UpdateTask(id string, patch *models.TaskPatch) (*models.Task, error) {
	if fe := models.ValidateTaskPatch(patch); fe != nil {
		return nil, &ValidationError{Fields: fe}
	}
	var task models.Task
	if patch.LabelsOnly() {
		body := labelsBody{LabelIDs: patch.LabelIDs}
		if err := c.do("PUT", fmt.Sprintf("/tasks/%s/labels", id), body, &task); err != nil {
			return nil, err
		}
		return &task, nil
	}
	if err := c.do("PATCH", "/tasks/"+id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task. Local state must stay untouched until this
// resolves; a Forbidden result suggests the local list is stale.
func (c *Client) DeleteTask(id string) error {
	return c.do("DELETE", "/tasks/"+id, nil, nil)
}

// ToggleTask flips completion server-side and returns the updated task.
// The caller replaces its local copy with the returned object; the
// boolean is never flipped locally without confirmation.
func (c *Client) ToggleTask(id string) (*models.Task, error) {
	var task models.Task
	if err := c.do("PATCH", fmt.Sprintf("/tasks/%s/toggle", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
