package keep_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keep "github.com/keepclone/keep.go"
)

func TestLabelCRUD(t *testing.T) {
	c, _, user := newTestClient(t)
	ctx := context.Background()

	label, err := c.CreateLabel(ctx, keep.CreateLabelRequest{Name: "work", Color: "blue"})
	require.NoError(t, err)
	assert.NotEmpty(t, label.ID)
	assert.Equal(t, user.ID, label.UserID)
	assert.Equal(t, "work", label.Name)
	assert.Equal(t, "blue", label.Color)

	got, err := c.GetLabel(ctx, label.ID)
	require.NoError(t, err)
	assert.Equal(t, label.ID, got.ID)

	name := "office"
	updated, err := c.UpdateLabel(ctx, label.ID, keep.UpdateLabelRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "office", updated.Name)
	assert.Equal(t, "blue", updated.Color)

	all, err := c.ListLabels(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "office", all[0].Name)

	require.NoError(t, c.DeleteLabel(ctx, label.ID))
	_, err = c.GetLabel(ctx, label.ID)
	assert.ErrorIs(t, err, keep.ErrNotFound)
}

func TestCreateLabelValidation(t *testing.T) {
	c, _, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.CreateLabel(ctx, keep.CreateLabelRequest{Name: "  "})
	assert.ErrorIs(t, err, keep.ErrValidation)

	_, err = c.CreateLabel(ctx, keep.CreateLabelRequest{Name: strings.Repeat("x", 51)})
	assert.ErrorIs(t, err, keep.ErrValidation)

	_, err = c.CreateLabel(ctx, keep.CreateLabelRequest{Name: "ok", Color: "nope"})
	assert.ErrorIs(t, err, keep.ErrValidation)
}

func TestAttachAndDetachLabel(t *testing.T) {
	c, _, _ := newTestClient(t)
	ctx := context.Background()

	note, err := c.CreateNote(ctx, keep.CreateNoteRequest{Title: "tagged"})
	require.NoError(t, err)
	label, err := c.CreateLabel(ctx, keep.CreateLabelRequest{Name: "todo"})
	require.NoError(t, err)

	require.NoError(t, c.AttachLabel(ctx, note.ID, label.ID))

	got, err := c.GetNote(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, got.Labels, 1)
	assert.Equal(t, "todo", got.Labels[0].Name)

	byLabel, err := c.ListNotesByLabel(ctx, label.ID)
	require.NoError(t, err)
	require.Len(t, byLabel, 1)
	assert.Equal(t, note.ID, byLabel[0].ID)

	require.NoError(t, c.DetachLabel(ctx, note.ID, label.ID))
	got, err = c.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Labels)
}

func TestAttachLabelErrors(t *testing.T) {
	c, _, _ := newTestClient(t)
	ctx := context.Background()

	note, err := c.CreateNote(ctx, keep.CreateNoteRequest{Title: "plain"})
	require.NoError(t, err)

	err = c.AttachLabel(ctx, note.ID, "")
	assert.ErrorIs(t, err, keep.ErrValidation)

	err = c.AttachLabel(ctx, note.ID, "no-such-label")
	assert.ErrorIs(t, err, keep.ErrValidation)

	err = c.AttachLabel(ctx, "no-such-note", "no-such-label")
	assert.ErrorIs(t, err, keep.ErrNotFound)
}

func TestDeleteLabelKeepsNotes(t *testing.T) {
	c, _, _ := newTestClient(t)
	ctx := context.Background()

	note, err := c.CreateNote(ctx, keep.CreateNoteRequest{Title: "survivor"})
	require.NoError(t, err)
	label, err := c.CreateLabel(ctx, keep.CreateLabelRequest{Name: "ephemeral"})
	require.NoError(t, err)
	require.NoError(t, c.AttachLabel(ctx, note.ID, label.ID))

	require.NoError(t, c.DeleteLabel(ctx, label.ID))

	got, err := c.GetNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Labels)
	assert.Equal(t, "survivor", got.Title)
}
