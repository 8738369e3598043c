package apiclient

import "tdo/internal/models"

// ListLabels fetches all of the caller's labels.
func (c *Client) ListLabels() ([]models.Label, error) {
	var labels []models.Label
	if err := c.do("GET", "/labels/", nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// UserLabels fetches labels for a specific user id.
func (c *Client) UserLabels(userID string) ([]models.Label, error) {
	var labels []models.Label
	if err := c.do("GET", "/labels/user/"+userID, nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// GetLabel fetches a single label by id.
func (c *Client) GetLabel(id string) (*models.Label, error) {
	var label models.Label
	if err := c.do("GET", "/labels/"+id, nil, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// CreateLabel validates the input locally (including the hex color
// check) before any network call, then creates the label.
func (c *Client) CreateLabel(in *models.LabelCreate) (*models.Label, error) {
	if fe := models.ValidateLabelCreate(in); fe != nil {
		return nil, &ValidationError{Fields: fe}
	}
	var label models.Label
	if err := c.do("POST", "/labels/", in, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// UpdateLabel applies a partial update to a label.
func (c *Client) UpdateLabel(id string, patch *models.LabelPatch) (*models.Label, error) {
	if fe := models.ValidateLabelPatch(patch); fe != nil {
		return nil, &ValidationError{Fields: fe}
	}
	var label models.Label
	if err := c.do("PATCH", "/labels/"+id, patch, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// DeleteLabel deletes a label. Tasks referencing it keep the dangling id;
// renderers skip unresolved label ids.
func (c *Client) DeleteLabel(id string) error {
	return c.do("DELETE", "/labels/"+id, nil, nil)
}
