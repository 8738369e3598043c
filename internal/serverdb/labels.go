package serverdb

import (
	"database/sql"
	"fmt"
	"strings"

	"tdo/internal/models"
)

// CreateLabel inserts a new label for the given user and returns it.
// An empty color falls back to the default.
func (db *ServerDB) CreateLabel(userID string, in models.LabelCreate) (*models.Label, error) {
	color := in.Color
	if color == "" {
		color = models.DefaultLabelColor
	}

	now := nowRFC3339()
	l := &models.Label{
		ID:          NewID(),
		Name:        strings.TrimSpace(in.Name),
		Color:       color,
		Description: in.Description,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := db.conn.Exec(
		`INSERT INTO labels (id, name, color, description, user_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Color, l.Description, l.UserID, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert label: %w", err)
	}
	return l, nil
}

// GetLabel returns the label with the given ID, or nil if not found.
func (db *ServerDB) GetLabel(id string) (*models.Label, error) {
	l := &models.Label{}
	err := db.conn.QueryRow(
		`SELECT id, name, color, description, user_id, created_at, updated_at FROM labels WHERE id = ?`, id,
	).Scan(&l.ID, &l.Name, &l.Color, &l.Description, &l.UserID, &l.CreatedAt, &l.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get label: %w", err)
	}
	return l, nil
}

// ListLabelsByUser returns the given user's labels, ordered by name.
func (db *ServerDB) ListLabelsByUser(userID string) ([]*models.Label, error) {
	return db.queryLabels(
		`SELECT id, name, color, description, user_id, created_at, updated_at FROM labels WHERE user_id = ? ORDER BY name, id`,
		userID,
	)
}

// UpdateLabel applies the non-nil fields of patch to the label and
// returns the updated row. Returns nil if the label does not exist.
func (db *ServerDB) UpdateLabel(id string, patch models.LabelPatch) (*models.Label, error) {
	current, err := db.GetLabel(id)
	if err != nil || current == nil {
		return current, err
	}

	if patch.Name != nil {
		current.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Color != nil {
		current.Color = *patch.Color
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	current.UpdatedAt = nowRFC3339()

	_, err = db.conn.Exec(
		`UPDATE labels SET name = ?, color = ?, description = ?, updated_at = ? WHERE id = ?`,
		current.Name, current.Color, current.Description, current.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update label: %w", err)
	}
	return current, nil
}

// DeleteLabel removes a label and its task assignments. Returns false
// if no label had the given ID.
func (db *ServerDB) DeleteLabel(id string) (bool, error) {
	res, err := db.conn.Exec(`DELETE FROM labels WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete label: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (db *ServerDB) queryLabels(query string, args ...interface{}) ([]*models.Label, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	defer rows.Close()

	var labels []*models.Label
	for rows.Next() {
		l := &models.Label{}
		if err := rows.Scan(&l.ID, &l.Name, &l.Color, &l.Description, &l.UserID, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list labels: iterate: %w", err)
	}
	return labels, nil
}
