package collection_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/keepclone/keep.go/pkg/collection"
	"github.com/keepclone/keep.go/pkg/models"
)

type flagset struct {
	pinned   bool
	archived bool
	deleted  bool
}

func genFlags() gopter.Gen {
	return gopter.CombineGens(gen.Bool(), gen.Bool(), gen.Bool()).
		Map(func(vals []interface{}) flagset {
			return flagset{
				pinned:   vals[0].(bool),
				archived: vals[1].(bool),
				deleted:  vals[2].(bool),
			}
		})
}

// refreshed builds a collection over notes with the given flags and loads it.
func refreshed(t *testing.T, flags []flagset) *collection.Collection {
	t.Helper()
	api := newStubAPI()
	for i, f := range flags {
		api.seed(models.Note{
			ID:         fmt.Sprintf("note-%d", i),
			Title:      fmt.Sprintf("title %d", i),
			IsPinned:   f.pinned,
			IsArchived: f.archived,
			IsDeleted:  f.deleted,
		})
	}
	c := collection.New(api)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	return c
}

func idSet(notes []*models.Note) map[string]bool {
	set := make(map[string]bool, len(notes))
	for _, n := range notes {
		set[n.ID] = true
	}
	return set
}

func TestViewPartitionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("pinned and unpinned partition the active notes", prop.ForAll(
		func(flags []flagset) bool {
			c := refreshed(t, flags)
			active := idSet(c.Active())
			pinned := idSet(c.Pinned())
			unpinned := idSet(c.Unpinned())

			if len(pinned)+len(unpinned) != len(active) {
				return false
			}
			for id := range pinned {
				if !active[id] || unpinned[id] {
					return false
				}
			}
			for id := range unpinned {
				if !active[id] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genFlags()),
	))

	properties.Property("trashed notes appear in no other view", prop.ForAll(
		func(flags []flagset) bool {
			c := refreshed(t, flags)
			active := idSet(c.Active())
			archived := idSet(c.Archived())
			for _, n := range c.Trashed() {
				if active[n.ID] || archived[n.ID] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genFlags()),
	))

	properties.Property("archived notes are never active", prop.ForAll(
		func(flags []flagset) bool {
			c := refreshed(t, flags)
			active := idSet(c.Active())
			for _, n := range c.Archived() {
				if active[n.ID] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genFlags()),
	))

	properties.Property("every note lands in exactly one of active, archived, trashed", prop.ForAll(
		func(flags []flagset) bool {
			c := refreshed(t, flags)
			total := len(c.Active()) + len(c.Archived()) + len(c.Trashed())
			return total == c.Len() && c.Len() == len(flags)
		},
		gen.SliceOf(genFlags()),
	))

	properties.TestingRun(t)
}

func TestColorValidationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	hexDigit := gen.OneConstOf(
		"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
		"a", "b", "c", "d", "e", "f", "A", "B", "C", "D", "E", "F",
	)

	genHex6 := gopter.CombineGens(hexDigit, hexDigit, hexDigit, hexDigit, hexDigit, hexDigit).
		Map(func(vals []interface{}) string {
			s := "#"
			for _, v := range vals {
				s += v.(string)
			}
			return s
		})

	properties.Property("every six-digit hex value is a valid color", prop.ForAll(
		func(color string) bool { return models.ValidColor(color) },
		genHex6,
	))

	properties.Property("every palette token is a valid color", prop.ForAll(
		func(color string) bool { return models.ValidColor(color) },
		gen.OneConstOf(anyStrings(models.PaletteColors())...),
	))

	properties.TestingRun(t)
}

func anyStrings(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
