package serverdb

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tdo/internal/models"
)

// ErrUnknownLabel is returned when a label assignment references a
// label that does not exist or belongs to another user.
var ErrUnknownLabel = errors.New("unknown label")

// CreateTask inserts a new task for the given user and returns it.
func (db *ServerDB) CreateTask(userID string, in models.TaskCreate) (*models.Task, error) {
	now := nowRFC3339()
	t := &models.Task{
		ID:          NewID(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    models.NormalizePriority(string(in.Priority)),
		Deadline:    in.Deadline,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO tasks (id, title, description, priority, deadline, is_completed, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Priority, t.Deadline, t.UserID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	if len(in.LabelIDs) > 0 {
		if err := setTaskLabelsTx(tx, t.ID, userID, in.LabelIDs); err != nil {
			return nil, err
		}
		t.LabelIDs = in.LabelIDs
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return t, nil
}

// GetTask returns the task with the given ID, or nil if not found.
func (db *ServerDB) GetTask(id string) (*models.Task, error) {
	t, err := db.scanTask(db.conn.QueryRow(
		`SELECT id, title, description, priority, deadline, is_completed, completed_at, user_id, created_at, updated_at
		 FROM tasks WHERE id = ?`, id,
	))
	if err != nil || t == nil {
		return t, err
	}
	if t.LabelIDs, err = db.taskLabelIDs(t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// ListTasksByUser returns the given user's tasks, ordered by creation time.
func (db *ServerDB) ListTasksByUser(userID string) ([]*models.Task, error) {
	return db.queryTasks(
		`SELECT id, title, description, priority, deadline, is_completed, completed_at, user_id, created_at, updated_at
		 FROM tasks WHERE user_id = ? ORDER BY created_at, id`, userID,
	)
}

// UpdateTask applies the non-nil fields of patch to the task and
// returns the updated row. Returns nil if the task does not exist.
func (db *ServerDB) UpdateTask(id string, patch models.TaskPatch) (*models.Task, error) {
	current, err := db.GetTask(id)
	if err != nil || current == nil {
		return current, err
	}

	if patch.Title != nil {
		current.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.Priority != nil {
		current.Priority = models.NormalizePriority(string(*patch.Priority))
	}
	if patch.Deadline != nil {
		current.Deadline = *patch.Deadline
	}
	current.UpdatedAt = nowRFC3339()

	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`UPDATE tasks SET title = ?, description = ?, priority = ?, deadline = ?, updated_at = ? WHERE id = ?`,
		current.Title, current.Description, current.Priority, current.Deadline, current.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	if patch.LabelIDs != nil {
		if err := setTaskLabelsTx(tx, id, current.UserID, patch.LabelIDs); err != nil {
			return nil, err
		}
		current.LabelIDs = patch.LabelIDs
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return current, nil
}

// SetTaskLabels replaces the task's label assignments and returns the
// updated task. Returns nil if the task does not exist.
func (db *ServerDB) SetTaskLabels(id string, labelIDs []string) (*models.Task, error) {
	return db.UpdateTask(id, models.TaskPatch{LabelIDs: labelIDs})
}

// ToggleTask flips the task's completion state, stamping or clearing
// completed_at. Returns nil if the task does not exist.
func (db *ServerDB) ToggleTask(id string) (*models.Task, error) {
	current, err := db.GetTask(id)
	if err != nil || current == nil {
		return current, err
	}

	now := nowRFC3339()
	current.IsCompleted = !current.IsCompleted
	current.UpdatedAt = now
	if current.IsCompleted {
		current.CompletedAt = &now
	} else {
		current.CompletedAt = nil
	}

	_, err = db.conn.Exec(
		`UPDATE tasks SET is_completed = ?, completed_at = ?, updated_at = ? WHERE id = ?`,
		current.IsCompleted, current.CompletedAt, current.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle task: %w", err)
	}
	return current, nil
}

// DeleteTask removes a task and its label assignments. Returns false
// if no task had the given ID.
func (db *ServerDB) DeleteTask(id string) (bool, error) {
	res, err := db.conn.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func setTaskLabelsTx(tx *sql.Tx, taskID, userID string, labelIDs []string) error {
	if _, err := tx.Exec(`DELETE FROM task_labels WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("clear task labels: %w", err)
	}
	for _, labelID := range labelIDs {
		var owner string
		err := tx.QueryRow(`SELECT user_id FROM labels WHERE id = ?`, labelID).Scan(&owner)
		if err == sql.ErrNoRows || (err == nil && owner != userID) {
			return fmt.Errorf("%w: %s", ErrUnknownLabel, labelID)
		}
		if err != nil {
			return fmt.Errorf("check label: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO task_labels (task_id, label_id) VALUES (?, ?)`, taskID, labelID,
		); err != nil {
			return fmt.Errorf("assign label: %w", err)
		}
	}
	return nil
}

func (db *ServerDB) taskLabelIDs(taskID string) ([]string, error) {
	rows, err := db.conn.Query(
		`SELECT label_id FROM task_labels WHERE task_id = ? ORDER BY label_id`, taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("task labels: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan label id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (db *ServerDB) queryTasks(query string, args ...interface{}) ([]*models.Task, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		t, err := scanTaskRows(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: iterate: %w", err)
	}

	for _, t := range tasks {
		if t.LabelIDs, err = db.taskLabelIDs(t.ID); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func (db *ServerDB) scanTask(row *sql.Row) (*models.Task, error) {
	t := &models.Task{}
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Deadline,
		&t.IsCompleted, &t.CompletedAt, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func scanTaskRows(rows *sql.Rows) (*models.Task, error) {
	t := &models.Task{}
	err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Deadline,
		&t.IsCompleted, &t.CompletedAt, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return t, nil
}
