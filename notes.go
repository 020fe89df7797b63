package keep

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/keepclone/keep.go/pkg/models"
)

// Input length limits enforced at the client boundary, mirroring the server.
const (
	maxTitleLen   = 255
	maxContentLen = 10000
	maxQueryLen   = 100
	maxSearchLim  = 100
)

// CreateNoteRequest is the input for note creation. At least one of Title and
// Content must be non-blank after trimming.
type CreateNoteRequest struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	Color    string `json:"color,omitempty"`
	IsPinned *bool  `json:"is_pinned,omitempty"`
}

// Validate checks the request without issuing it.
func (r *CreateNoteRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.Content) == "" {
		return validationError("either title or content must be provided")
	}
	if len(r.Title) > maxTitleLen {
		return validationError("title must be less than %d characters", maxTitleLen)
	}
	if len(r.Content) > maxContentLen {
		return validationError("content must be less than %d characters", maxContentLen)
	}
	if !models.ValidColor(r.Color) {
		return validationError("invalid color %q", r.Color)
	}
	return nil
}

// UpdateNoteRequest is a partial update: nil fields are left unchanged by the
// server.
type UpdateNoteRequest struct {
	Title      *string `json:"title,omitempty"`
	Content    *string `json:"content,omitempty"`
	Color      *string `json:"color,omitempty"`
	IsPinned   *bool   `json:"is_pinned,omitempty"`
	IsArchived *bool   `json:"is_archived,omitempty"`
	Position   *int    `json:"position,omitempty"`
}

// Validate checks the provided fields without issuing the request.
func (r *UpdateNoteRequest) Validate() error {
	if r.Title != nil && len(*r.Title) > maxTitleLen {
		return validationError("title must be less than %d characters", maxTitleLen)
	}
	if r.Content != nil && len(*r.Content) > maxContentLen {
		return validationError("content must be less than %d characters", maxContentLen)
	}
	if r.Color != nil && !models.ValidColor(*r.Color) {
		return validationError("invalid color %q", *r.Color)
	}
	if r.Position != nil && *r.Position < 0 {
		return validationError("position must be non-negative")
	}
	return nil
}

// colorUpdateRequest is the body of the color PATCH endpoint.
type colorUpdateRequest struct {
	Color string `json:"color"`
}

// ListNotesOptions selects which flagged notes a listing includes. The zero
// value lists active notes only.
type ListNotesOptions struct {
	IncludeArchived bool
	IncludeDeleted  bool
}

// ListNotes returns the caller's notes in server order, filtered by opts.
func (c *Client) ListNotes(ctx context.Context, opts ListNotesOptions) ([]*models.Note, error) {
	params := url.Values{}
	if opts.IncludeArchived {
		params.Set("archived", "true")
	}
	if opts.IncludeDeleted {
		params.Set("deleted", "true")
	}
	path := "/notes"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Note
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateNote creates a note. The returned record carries the server-assigned
// id and timestamps and is the copy callers should keep.
func (c *Client) CreateNote(ctx context.Context, req CreateNoteRequest) (*models.Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/notes", req)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetNote fetches one note by id. Absent or unowned ids surface as
// [ErrNotFound].
func (c *Client) GetNote(ctx context.Context, id string) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateNote applies a partial update and returns the full post-update record.
func (c *Client) UpdateNote(ctx context.Context, id string, req UpdateNoteRequest) (*models.Note, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteNote deletes a note. Soft deletion (permanent=false) keeps the note
// retrievable from the trash listing; permanent deletion is unrecoverable.
func (c *Client) DeleteNote(ctx context.Context, id string, permanent bool) error {
	path := "/notes/" + url.PathEscape(id)
	if permanent {
		path += "?permanent=true"
	}

	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return decode(resp, nil, false)
}

// TogglePin flips the pinned flag server-side, avoiding the read-modify-write
// race of fetching and updating in two calls.
func (c *Client) TogglePin(ctx context.Context, id string) (*models.Note, error) {
	return c.patchNote(ctx, id, "pin", nil)
}

// ToggleArchive flips the archived flag server-side.
func (c *Client) ToggleArchive(ctx context.Context, id string) (*models.Note, error) {
	return c.patchNote(ctx, id, "archive", nil)
}

// SetNoteColor sets the note color to a palette token or hex value.
func (c *Client) SetNoteColor(ctx context.Context, id, color string) (*models.Note, error) {
	if !models.ValidColor(color) {
		return nil, validationError("invalid color %q", color)
	}
	return c.patchNote(ctx, id, "color", colorUpdateRequest{Color: color})
}

func (c *Client) patchNote(ctx context.Context, id, action string, body any) (*models.Note, error) {
	path := fmt.Sprintf("/notes/%s/%s", url.PathEscape(id), action)
	resp, err := c.doRequest(ctx, http.MethodPatch, path, body)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchNotes runs a text search over titles and contents. Pagination is
// offset-based: the server skips page*limit records.
func (c *Client) SearchNotes(ctx context.Context, query string, limit, page int) ([]*models.Note, error) {
	if len(query) > maxQueryLen {
		return nil, validationError("search query must be less than %d characters", maxQueryLen)
	}
	if limit < 0 || limit > maxSearchLim {
		return nil, validationError("limit must be between 0 and %d", maxSearchLim)
	}
	if page < 0 {
		return nil, validationError("page must be non-negative")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("page", strconv.Itoa(page))

	resp, err := c.doRequest(ctx, http.MethodGet, "/notes/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Note
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return result, nil
}

// ListPinnedNotes returns the pinned active notes, filtered server-side.
func (c *Client) ListPinnedNotes(ctx context.Context) ([]*models.Note, error) {
	return c.listNotesAt(ctx, "/notes/pinned")
}

// ListArchivedNotes returns the archived notes, filtered server-side.
func (c *Client) ListArchivedNotes(ctx context.Context) ([]*models.Note, error) {
	return c.listNotesAt(ctx, "/notes/archived")
}

func (c *Client) listNotesAt(ctx context.Context, path string) ([]*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result []*models.Note
	if err := decode(resp, &result, false); err != nil {
		return nil, err
	}
	return result, nil
}
