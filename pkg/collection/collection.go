// Package collection holds the client's working set of notes and exposes
// derived, read-only views plus optimistic mutation operations.
//
// The collection is the single owner of its in-memory records. Mutations are
// applied locally first, then confirmed by the remote call: the server's
// response replaces the optimistic copy, and a failed call restores the
// snapshot taken before the edit, so the visible list never diverges from the
// last known-good server state for longer than one in-flight request.
//
// Mutations on the same note are serialized through a per-id lock, so calls
// issued in sequence resolve in issuance order (last writer wins) and a late
// response can never resurrect a stale value. Mutations on different notes
// proceed independently.
package collection

import (
	"context"
	"strings"
	"sync"

	keep "github.com/keepclone/keep.go"
	"github.com/keepclone/keep.go/pkg/models"
)

// NotesAPI is the effect layer the collection drives. *keep.Client satisfies
// it; tests substitute a double.
type NotesAPI interface {
	ListNotes(ctx context.Context, opts keep.ListNotesOptions) ([]*models.Note, error)
	CreateNote(ctx context.Context, req keep.CreateNoteRequest) (*models.Note, error)
	UpdateNote(ctx context.Context, id string, req keep.UpdateNoteRequest) (*models.Note, error)
	DeleteNote(ctx context.Context, id string, permanent bool) error
	TogglePin(ctx context.Context, id string) (*models.Note, error)
	ToggleArchive(ctx context.Context, id string) (*models.Note, error)
	SetNoteColor(ctx context.Context, id, color string) (*models.Note, error)
}

// Collection is the in-memory, ordered working set of notes. Order is
// most-recent-first: Refresh keeps server order, Create prepends.
type Collection struct {
	api NotesAPI

	mu    sync.RWMutex
	notes []*models.Note

	seqMu sync.Mutex
	seq   map[string]*sync.Mutex
}

// New creates an empty collection over the given API.
func New(api NotesAPI) *Collection {
	return &Collection{
		api: api,
		seq: make(map[string]*sync.Mutex),
	}
}

// noteLock returns the per-id mutex serializing mutations of one note.
func (c *Collection) noteLock(id string) *sync.Mutex {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	l, ok := c.seq[id]
	if !ok {
		l = &sync.Mutex{}
		c.seq[id] = l
	}
	return l
}

// Refresh replaces the working set with the server's current listing,
// including archived and trashed notes so every derived view is populated.
func (c *Collection) Refresh(ctx context.Context) error {
	notes, err := c.api.ListNotes(ctx, keep.ListNotesOptions{
		IncludeArchived: true,
		IncludeDeleted:  true,
	})
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.notes = notes
	c.mu.Unlock()
	return nil
}

// Len returns the number of notes in the working set, all flags included.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.notes)
}

// Get returns a copy of the note with the given id.
func (c *Collection) Get(id string) (*models.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, n := range c.notes {
		if n.ID == id {
			cp := *n
			return &cp, true
		}
	}
	return nil, false
}

// filter returns copies of the notes matching match, preserving working-set
// order.
func (c *Collection) filter(match func(*models.Note) bool) []*models.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []*models.Note
	for _, n := range c.notes {
		if match(n) {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out
}

// Notes returns the whole working set in order.
func (c *Collection) Notes() []*models.Note {
	return c.filter(func(*models.Note) bool { return true })
}

// Active returns the notes that are neither archived nor trashed.
func (c *Collection) Active() []*models.Note {
	return c.filter((*models.Note).Active)
}

// Pinned returns the pinned subset of the active notes.
func (c *Collection) Pinned() []*models.Note {
	return c.filter(func(n *models.Note) bool { return n.Active() && n.IsPinned })
}

// Unpinned returns the unpinned subset of the active notes.
func (c *Collection) Unpinned() []*models.Note {
	return c.filter(func(n *models.Note) bool { return n.Active() && !n.IsPinned })
}

// Archived returns the archived, non-trashed notes.
func (c *Collection) Archived() []*models.Note {
	return c.filter(func(n *models.Note) bool { return n.IsArchived && !n.IsDeleted })
}

// Trashed returns the soft-deleted notes.
func (c *Collection) Trashed() []*models.Note {
	return c.filter(func(n *models.Note) bool { return n.IsDeleted })
}

// Create validates and creates a note, prepending the server's authoritative
// record to the working set. A blank request (no title, no content after
// trimming) is rejected locally with keep.ErrValidation and issues no
// request. No optimistic draft is kept; the server copy is the first and
// only record inserted.
func (c *Collection) Create(ctx context.Context, req keep.CreateNoteRequest) (*models.Note, error) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		return nil, keep.ErrValidation
	}

	note, err := c.api.CreateNote(ctx, req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.notes = append([]*models.Note{note}, c.notes...)
	c.mu.Unlock()

	cp := *note
	return &cp, nil
}

// snapshot returns the index and a copy of the note with the given id, or
// ok=false. Caller must hold c.mu.
func (c *Collection) snapshotLocked(id string) (int, models.Note, bool) {
	for i, n := range c.notes {
		if n.ID == id {
			return i, *n, true
		}
	}
	return 0, models.Note{}, false
}

// restore puts prior back in place of the note with the given id, if it is
// still present. Used to roll back a failed optimistic edit.
func (c *Collection) restore(prior models.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.notes {
		if n.ID == prior.ID {
			cp := prior
			c.notes[i] = &cp
			return
		}
	}
}

// replace swaps in the server's confirmed copy for the note with the same id.
func (c *Collection) replace(note *models.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.notes {
		if n.ID == note.ID {
			c.notes[i] = note
			return
		}
	}
}

// Update replaces the record matching note.ID with the given value (full
// replace, not merge) and issues a partial update carrying only the fields
// that changed versus the prior record. The server's response replaces the
// optimistic copy; on failure the prior record is restored and the typed
// error returned.
func (c *Collection) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	unlock := c.lockNote(note.ID)
	defer unlock()

	c.mu.Lock()
	i, prior, ok := c.snapshotLocked(note.ID)
	if !ok {
		c.mu.Unlock()
		return nil, keep.ErrNotFound
	}
	optimistic := *note
	c.notes[i] = &optimistic
	c.mu.Unlock()

	req := diffRequest(&prior, note)
	confirmed, err := c.api.UpdateNote(ctx, note.ID, req)
	if err != nil {
		c.restore(prior)
		return nil, err
	}

	c.replace(confirmed)
	cp := *confirmed
	return &cp, nil
}

// diffRequest builds the partial update covering the fields that differ
// between prior and next.
func diffRequest(prior, next *models.Note) keep.UpdateNoteRequest {
	var req keep.UpdateNoteRequest
	if next.Title != prior.Title {
		req.Title = &next.Title
	}
	if next.Content != prior.Content {
		req.Content = &next.Content
	}
	if next.Color != prior.Color {
		req.Color = &next.Color
	}
	if next.IsPinned != prior.IsPinned {
		req.IsPinned = &next.IsPinned
	}
	if next.IsArchived != prior.IsArchived {
		req.IsArchived = &next.IsArchived
	}
	if next.Position != prior.Position {
		req.Position = &next.Position
	}
	return req
}

// Delete removes a note. Soft deletion (permanent=false, the default mode)
// marks the record trashed locally so it leaves the active partitions but
// stays visible in Trashed; permanent deletion drops the record entirely.
// A failed remote call restores the pre-call state.
func (c *Collection) Delete(ctx context.Context, id string, permanent bool) error {
	unlock := c.lockNote(id)
	defer unlock()

	c.mu.Lock()
	i, prior, ok := c.snapshotLocked(id)
	if !ok {
		c.mu.Unlock()
		return keep.ErrNotFound
	}
	if permanent {
		c.notes = append(c.notes[:i], c.notes[i+1:]...)
	} else {
		trashed := prior
		trashed.IsDeleted = true
		c.notes[i] = &trashed
	}
	c.mu.Unlock()

	if err := c.api.DeleteNote(ctx, id, permanent); err != nil {
		if permanent {
			c.reinsert(i, prior)
		} else {
			c.restore(prior)
		}
		return err
	}
	return nil
}

// reinsert puts a permanently-removed note back at its old index after a
// failed delete.
func (c *Collection) reinsert(i int, prior models.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i > len(c.notes) {
		i = len(c.notes)
	}
	cp := prior
	c.notes = append(c.notes[:i], append([]*models.Note{&cp}, c.notes[i:]...)...)
}

// TogglePin flips the pinned flag: optimistically in place, then confirmed
// through the server-side toggle endpoint.
func (c *Collection) TogglePin(ctx context.Context, id string) (*models.Note, error) {
	return c.toggle(ctx, id,
		func(n *models.Note) { n.IsPinned = !n.IsPinned },
		c.api.TogglePin,
	)
}

// ToggleArchive flips the archived flag, same pattern as TogglePin. Two
// sequential awaited calls restore the original value.
func (c *Collection) ToggleArchive(ctx context.Context, id string) (*models.Note, error) {
	return c.toggle(ctx, id,
		func(n *models.Note) { n.IsArchived = !n.IsArchived },
		c.api.ToggleArchive,
	)
}

func (c *Collection) toggle(ctx context.Context, id string, flip func(*models.Note), call func(context.Context, string) (*models.Note, error)) (*models.Note, error) {
	unlock := c.lockNote(id)
	defer unlock()

	c.mu.Lock()
	i, prior, ok := c.snapshotLocked(id)
	if !ok {
		c.mu.Unlock()
		return nil, keep.ErrNotFound
	}
	optimistic := prior
	flip(&optimistic)
	c.notes[i] = &optimistic
	c.mu.Unlock()

	confirmed, err := call(ctx, id)
	if err != nil {
		c.restore(prior)
		return nil, err
	}

	c.replace(confirmed)
	cp := *confirmed
	return &cp, nil
}

// SetColor sets the note color to a palette token or hex value, rejecting
// unknown tokens locally without issuing a request.
func (c *Collection) SetColor(ctx context.Context, id, color string) (*models.Note, error) {
	if !models.ValidColor(color) {
		return nil, keep.ErrValidation
	}

	unlock := c.lockNote(id)
	defer unlock()

	c.mu.Lock()
	i, prior, ok := c.snapshotLocked(id)
	if !ok {
		c.mu.Unlock()
		return nil, keep.ErrNotFound
	}
	optimistic := prior
	optimistic.Color = color
	c.notes[i] = &optimistic
	c.mu.Unlock()

	confirmed, err := c.api.SetNoteColor(ctx, id, color)
	if err != nil {
		c.restore(prior)
		return nil, err
	}

	c.replace(confirmed)
	cp := *confirmed
	return &cp, nil
}

// lockNote acquires the per-id lock and returns its release func.
func (c *Collection) lockNote(id string) func() {
	l := c.noteLock(id)
	l.Lock()
	return l.Unlock
}
