package keep

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/keepclone/keep.go/pkg/models"
)

const maxLabelNameLen = 50

// CreateLabelRequest is the input for label creation.
type CreateLabelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Validate checks the request without issuing it.
func (r *CreateLabelRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return validationError("label name is required")
	}
	if len(name) > maxLabelNameLen {
		return validationError("label name cannot exceed %d characters", maxLabelNameLen)
	}
	if !models.ValidColor(r.Color) {
		return validationError("invalid color %q", r.Color)
	}
	return nil
}

// UpdateLabelRequest is a partial label update: nil fields are left unchanged.
type UpdateLabelRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// Validate checks the provided fields without issuing the request.
func (r *UpdateLabelRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return validationError("label name cannot be empty")
		}
		if len(name) > maxLabelNameLen {
			return validationError("label name cannot exceed %d characters", maxLabelNameLen)
		}
	}
	if r.Color != nil && !models.ValidColor(*r.Color) {
		return validationError("invalid color %q", *r.Color)
	}
	return nil
}

// attachLabelRequest is the body for attaching a label to a note.
type attachLabelRequest struct {
	LabelID string `json:"label_id"`
}

// ListLabels returns all of the caller's labels.
func (c *Client) ListLabels(ctx context.Context) ([]*models.Label, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/labels", nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Label
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateLabel creates a label and returns the server-assigned record.
func (c *Client) CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/labels", req)
	if err != nil {
		return nil, err
	}

	var result models.Label
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLabel fetches one label by id.
func (c *Client) GetLabel(ctx context.Context, id string) (*models.Label, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/labels/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Label
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateLabel applies a partial update and returns the post-update record.
func (c *Client) UpdateLabel(ctx context.Context, id string, req UpdateLabelRequest) (*models.Label, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPut, "/labels/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var result models.Label
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteLabel deletes a label. Notes carrying the label keep existing; only
// the association is removed server-side.
func (c *Client) DeleteLabel(ctx context.Context, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/labels/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return decode(resp, nil, false)
}

// ListNotesByLabel returns the notes carrying the given label.
func (c *Client) ListNotesByLabel(ctx context.Context, labelID string) ([]*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/labels/%s/notes", url.PathEscape(labelID)), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Note
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return result, nil
}

// AttachLabel attaches an existing label to a note.
func (c *Client) AttachLabel(ctx context.Context, noteID, labelID string) error {
	if labelID == "" {
		return validationError("label id is required")
	}

	path := fmt.Sprintf("/notes/%s/labels", url.PathEscape(noteID))
	resp, err := c.doRequest(ctx, http.MethodPost, path, attachLabelRequest{LabelID: labelID})
	if err != nil {
		return err
	}
	return decode(resp, nil, false)
}

// DetachLabel removes a label from a note.
func (c *Client) DetachLabel(ctx context.Context, noteID, labelID string) error {
	path := fmt.Sprintf("/notes/%s/labels/%s", url.PathEscape(noteID), url.PathEscape(labelID))
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return decode(resp, nil, false)
}
