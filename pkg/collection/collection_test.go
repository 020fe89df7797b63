package collection_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keep "github.com/keepclone/keep.go"
	"github.com/keepclone/keep.go/pkg/collection"
	"github.com/keepclone/keep.go/pkg/models"
)

// The real client must satisfy the effect layer the collection drives.
var _ collection.NotesAPI = (*keep.Client)(nil)

// stubAPI is an in-memory NotesAPI double. Per-method errors can be injected
// and every mutating call is counted, so tests can assert both that rollback
// happened and that rejected inputs never reached the wire.
type stubAPI struct {
	mu    sync.Mutex
	notes map[string]*models.Note
	next  int

	calls map[string]int
	fail  map[string]error
}

func newStubAPI() *stubAPI {
	return &stubAPI{
		notes: make(map[string]*models.Note),
		calls: make(map[string]int),
		fail:  make(map[string]error),
	}
}

// failWith makes every subsequent call to method return err.
func (s *stubAPI) failWith(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[method] = err
}

func (s *stubAPI) callCount(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// enter counts the call and returns the injected error, if any.
func (s *stubAPI) enter(method string) error {
	s.calls[method]++
	return s.fail[method]
}

func (s *stubAPI) seed(n models.Note) *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	if n.ID == "" {
		n.ID = fmt.Sprintf("note-%d", s.next)
	}
	cp := n
	s.notes[cp.ID] = &cp
	return &cp
}

func (s *stubAPI) ListNotes(_ context.Context, opts keep.ListNotesOptions) ([]*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("ListNotes"); err != nil {
		return nil, err
	}
	var out []*models.Note
	for _, n := range s.notes {
		if n.IsArchived && !opts.IncludeArchived {
			continue
		}
		if n.IsDeleted && !opts.IncludeDeleted {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubAPI) CreateNote(_ context.Context, req keep.CreateNoteRequest) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("CreateNote"); err != nil {
		return nil, err
	}
	s.next++
	n := &models.Note{
		ID:      fmt.Sprintf("note-%d", s.next),
		Title:   req.Title,
		Content: req.Content,
		Color:   models.DefaultColor,
	}
	if req.Color != "" {
		n.Color = req.Color
	}
	if req.IsPinned != nil {
		n.IsPinned = *req.IsPinned
	}
	s.notes[n.ID] = n
	cp := *n
	return &cp, nil
}

func (s *stubAPI) UpdateNote(_ context.Context, id string, req keep.UpdateNoteRequest) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("UpdateNote"); err != nil {
		return nil, err
	}
	n, ok := s.notes[id]
	if !ok {
		return nil, keep.ErrNotFound
	}
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.Color != nil {
		n.Color = *req.Color
	}
	if req.IsPinned != nil {
		n.IsPinned = *req.IsPinned
	}
	if req.IsArchived != nil {
		n.IsArchived = *req.IsArchived
	}
	if req.Position != nil {
		n.Position = *req.Position
	}
	cp := *n
	return &cp, nil
}

func (s *stubAPI) DeleteNote(_ context.Context, id string, permanent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("DeleteNote"); err != nil {
		return err
	}
	n, ok := s.notes[id]
	if !ok {
		return keep.ErrNotFound
	}
	if permanent {
		delete(s.notes, id)
	} else {
		n.IsDeleted = true
	}
	return nil
}

func (s *stubAPI) patch(method, id string, flip func(*models.Note)) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter(method); err != nil {
		return nil, err
	}
	n, ok := s.notes[id]
	if !ok {
		return nil, keep.ErrNotFound
	}
	flip(n)
	cp := *n
	return &cp, nil
}

func (s *stubAPI) TogglePin(_ context.Context, id string) (*models.Note, error) {
	return s.patch("TogglePin", id, func(n *models.Note) { n.IsPinned = !n.IsPinned })
}

func (s *stubAPI) ToggleArchive(_ context.Context, id string) (*models.Note, error) {
	return s.patch("ToggleArchive", id, func(n *models.Note) { n.IsArchived = !n.IsArchived })
}

func (s *stubAPI) SetNoteColor(_ context.Context, id, color string) (*models.Note, error) {
	return s.patch("SetNoteColor", id, func(n *models.Note) { n.Color = color })
}

func ids(notes []*models.Note) []string {
	out := []string{}
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestRefreshPopulatesAllViews(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "active", Title: "a"})
	api.seed(models.Note{ID: "pinned", Title: "p", IsPinned: true})
	api.seed(models.Note{ID: "shelved", Title: "s", IsArchived: true})
	api.seed(models.Note{ID: "binned", Title: "t", IsDeleted: true})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	assert.Equal(t, 4, c.Len())
	assert.ElementsMatch(t, []string{"active", "pinned"}, ids(c.Active()))
	assert.ElementsMatch(t, []string{"pinned"}, ids(c.Pinned()))
	assert.ElementsMatch(t, []string{"active"}, ids(c.Unpinned()))
	assert.ElementsMatch(t, []string{"shelved"}, ids(c.Archived()))
	assert.ElementsMatch(t, []string{"binned"}, ids(c.Trashed()))
}

func TestCreatePrepends(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "older", Title: "old"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	created, err := c.Create(context.Background(), keep.CreateNoteRequest{Title: "new"})
	require.NoError(t, err)

	notes := c.Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, created.ID, notes[0].ID)
	assert.Equal(t, "older", notes[1].ID)
}

func TestCreateBlankIssuesNoRequest(t *testing.T) {
	api := newStubAPI()
	c := collection.New(api)

	_, err := c.Create(context.Background(), keep.CreateNoteRequest{Title: "   ", Content: "\n"})
	require.Error(t, err)
	assert.ErrorIs(t, err, keep.ErrValidation)
	assert.Equal(t, 0, api.callCount("CreateNote"))
	assert.Equal(t, 0, c.Len())
}

func TestUpdateSendsOnlyChangedFields(t *testing.T) {
	api := newStubAPI()
	seeded := api.seed(models.Note{ID: "n1", Title: "before", Content: "same"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	edited := *seeded
	edited.Title = "after"
	updated, err := c.Update(context.Background(), &edited)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "same", updated.Content)

	got, ok := c.Get("n1")
	require.True(t, ok)
	assert.Equal(t, "after", got.Title)
}

func TestUpdateRollsBackOnServerError(t *testing.T) {
	api := newStubAPI()
	seeded := api.seed(models.Note{ID: "n1", Title: "truth"})
	api.failWith("UpdateNote", &keep.Error{Kind: keep.KindServer, Status: 500, Message: "boom"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	edited := *seeded
	edited.Title = "doomed edit"
	_, err := c.Update(context.Background(), &edited)
	require.Error(t, err)
	assert.ErrorIs(t, err, keep.ErrServer)

	// The optimistic value is gone; the last known-good copy is back.
	got, ok := c.Get("n1")
	require.True(t, ok)
	assert.Equal(t, "truth", got.Title)
}

func TestUpdateUnknownID(t *testing.T) {
	api := newStubAPI()
	c := collection.New(api)

	_, err := c.Update(context.Background(), &models.Note{ID: "ghost", Title: "x"})
	assert.ErrorIs(t, err, keep.ErrNotFound)
	assert.Equal(t, 0, api.callCount("UpdateNote"))
}

func TestSoftDeleteMovesToTrash(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "n1", Title: "bin me"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.Delete(context.Background(), "n1", false))

	assert.Empty(t, c.Active())
	require.Len(t, c.Trashed(), 1)
	assert.Equal(t, "n1", c.Trashed()[0].ID)
	assert.Equal(t, 1, c.Len())
}

func TestPermanentDeleteRemoves(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "n1"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	require.NoError(t, c.Delete(context.Background(), "n1", true))
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("n1")
	assert.False(t, ok)
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "n1", Title: "still here"})
	api.failWith("DeleteNote", &keep.Error{Kind: keep.KindNetwork, Message: "offline"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	err := c.Delete(context.Background(), "n1", false)
	assert.ErrorIs(t, err, keep.ErrNetwork)
	require.Len(t, c.Active(), 1)
	assert.Empty(t, c.Trashed())

	err = c.Delete(context.Background(), "n1", true)
	assert.ErrorIs(t, err, keep.ErrNetwork)
	assert.Equal(t, 1, c.Len())
}

func TestTogglePinMovesBetweenViews(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "n1", Title: "a"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	require.Empty(t, c.Pinned())
	require.Len(t, c.Unpinned(), 1)

	note, err := c.TogglePin(context.Background(), "n1")
	require.NoError(t, err)
	assert.True(t, note.IsPinned)

	assert.Equal(t, []string{"n1"}, ids(c.Pinned()))
	assert.Empty(t, c.Unpinned())
}

func TestToggleArchiveTwiceRestores(t *testing.T) {
	api := newStubAPI()
	seeded := api.seed(models.Note{ID: "n1", Title: "boomerang"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	_, err := c.ToggleArchive(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, ids(c.Archived()))

	_, err = c.ToggleArchive(context.Background(), "n1")
	require.NoError(t, err)
	assert.Empty(t, c.Archived())

	got, ok := c.Get("n1")
	require.True(t, ok)
	assert.Equal(t, seeded.IsArchived, got.IsArchived)
	assert.Equal(t, 2, api.callCount("ToggleArchive"))
}

func TestToggleRollsBackOnFailure(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "n1"})
	api.failWith("TogglePin", &keep.Error{Kind: keep.KindServer, Status: 502, Message: "bad gateway"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	_, err := c.TogglePin(context.Background(), "n1")
	require.Error(t, err)
	got, ok := c.Get("n1")
	require.True(t, ok)
	assert.False(t, got.IsPinned)
}

func TestSetColorRoundTrip(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "n1", Color: models.DefaultColor})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	note, err := c.SetColor(context.Background(), "n1", "teal")
	require.NoError(t, err)
	assert.Equal(t, "teal", note.Color)

	got, ok := c.Get("n1")
	require.True(t, ok)
	assert.Equal(t, "teal", got.Color)
}

func TestSetColorRejectsUnknownToken(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "n1", Color: models.DefaultColor})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	_, err := c.SetColor(context.Background(), "n1", "mauve-ish")
	assert.ErrorIs(t, err, keep.ErrValidation)
	assert.Equal(t, 0, api.callCount("SetNoteColor"))

	got, _ := c.Get("n1")
	assert.Equal(t, models.DefaultColor, got.Color)
}

func TestViewsReturnCopies(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "n1", Title: "immutable"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	c.Notes()[0].Title = "scribbled on"
	got, _ := c.Get("n1")
	assert.Equal(t, "immutable", got.Title)
}

func TestConcurrentTogglesSerialize(t *testing.T) {
	api := newStubAPI()
	api.seed(models.Note{ID: "n1"})

	c := collection.New(api)
	require.NoError(t, c.Refresh(context.Background()))

	// An even number of pin toggles across goroutines must land back on
	// unpinned once all calls have resolved.
	const rounds = 10
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.TogglePin(context.Background(), "n1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, ok := c.Get("n1")
	require.True(t, ok)
	assert.False(t, got.IsPinned)
	assert.Equal(t, rounds, api.callCount("TogglePin"))
}
