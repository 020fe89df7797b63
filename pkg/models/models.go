// Package models defines the entities exchanged with the notes API.
//
// All entities are plain JSON documents. The server is the source of truth:
// identifiers and timestamps are assigned server-side, and every mutating
// call returns the full post-mutation record which callers are expected to
// use in place of any locally constructed copy.
package models

import (
	"encoding/json"
	"time"
)

// Note is a single sticky note.
//
// The three flags are independent; a note can be pinned and archived at the
// same time. View partitioning is derived from the flags: archived or deleted
// notes never count as active, regardless of IsPinned.
type Note struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Color      string    `json:"color"`
	IsPinned   bool      `json:"is_pinned"`
	IsArchived bool      `json:"is_archived"`
	IsDeleted  bool      `json:"is_deleted"`
	// Position is reserved for manual drag-reordering. Display order within
	// a view partition follows working-set order, not Position.
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Labels      []Label      `json:"labels,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Active reports whether the note belongs to the active view.
func (n *Note) Active() bool {
	return !n.IsArchived && !n.IsDeleted
}

// Label is a user-owned tag. Labels are many-to-many with notes and outlive
// any single note they are attached to.
type Label struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attachment is a file bound to exactly one note. The server cascades
// attachment deletion when the owning note is permanently deleted.
type Attachment struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

// WebSocketMessage is the envelope the server broadcasts to realtime
// subscribers. Declared for wire compatibility; this client does not
// subscribe.
type WebSocketMessage struct {
	Type    string          `json:"type"`
	UserID  string          `json:"user_id,omitempty"`
	Payload json.RawMessage `json:"payload"`
}

// Auth providers recognized by the API.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// User is the authenticated account record. The password never crosses the
// wire in responses.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Avatar     string    `json:"avatar,omitempty"`
	Provider   string    `json:"provider"`
	ProviderID string    `json:"provider_id,omitempty"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
