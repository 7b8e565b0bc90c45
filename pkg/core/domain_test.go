package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/journal/pkg/core"
)

func TestFolderRef(t *testing.T) {
	t.Run("Zero Value Is Root", func(t *testing.T) {
		var ref core.FolderRef
		assert.True(t, ref.IsRoot())
		assert.Equal(t, core.Root, ref)
		id, ok := ref.ID()
		assert.False(t, ok)
		assert.Empty(t, id)
		assert.Equal(t, "root", ref.String())
	})

	t.Run("InFolder Empty Is Root", func(t *testing.T) {
		assert.Equal(t, core.Root, core.InFolder(""))
	})

	t.Run("InFolder Carries ID", func(t *testing.T) {
		ref := core.InFolder("f1")
		id, ok := ref.ID()
		assert.True(t, ok)
		assert.Equal(t, "f1", id)
		assert.False(t, ref.IsRoot())
		assert.Equal(t, ref, core.Folder{ID: "f1"}.Ref())
	})
}

func TestEntryPatch_Apply(t *testing.T) {
	title := "New"
	folder := core.InFolder("f1")
	e := core.Entry{ID: "1", Title: "Old", Content: "body", Tags: []string{"a"}, Color: core.DefaultColor}

	core.EntryPatch{Title: &title, Folder: &folder}.Apply(&e)

	assert.Equal(t, "New", e.Title)
	assert.Equal(t, "body", e.Content)
	assert.Equal(t, []string{"a"}, e.Tags)
	assert.Equal(t, folder, e.Folder)

	core.EntryPatch{SetTags: true}.Apply(&e)
	assert.Empty(t, e.Tags)
}

func TestEntry_Clone(t *testing.T) {
	e := core.Entry{Tags: []string{"a"}, Images: []core.Image{{ID: "i1"}}}
	c := e.Clone()
	c.Tags[0] = "b"
	c.Images[0].ID = "i2"

	assert.Equal(t, "a", e.Tags[0])
	assert.Equal(t, "i1", e.Images[0].ID)
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"trims and dedupes", []string{" work ", "work", "health"}, []string{"work", "health"}},
		{"drops empty", []string{"", "  "}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, core.NormalizeTags(tc.in))
		})
	}
}
