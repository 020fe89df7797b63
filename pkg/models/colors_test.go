package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keepclone/keep.go/pkg/models"
)

func TestValidColor(t *testing.T) {
	valid := []string{"", "#fff", "#FFFFFF", "#a1b2c3", "red", "TEAL", "Grey"}
	for _, c := range valid {
		assert.True(t, models.ValidColor(c), "expected %q to be valid", c)
	}

	invalid := []string{"#ffff", "#12345g", "fff", "crimson", "# fff", "red "}
	for _, c := range invalid {
		assert.False(t, models.ValidColor(c), "expected %q to be invalid", c)
	}
}

func TestNoteActive(t *testing.T) {
	assert.True(t, (&models.Note{}).Active())
	assert.True(t, (&models.Note{IsPinned: true}).Active())
	assert.False(t, (&models.Note{IsArchived: true}).Active())
	assert.False(t, (&models.Note{IsDeleted: true}).Active())
	assert.False(t, (&models.Note{IsArchived: true, IsDeleted: true}).Active())
}
