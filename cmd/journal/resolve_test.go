package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/journal/pkg/core"
)

func TestFindEntry(t *testing.T) {
	entries := []core.Entry{{ID: "0196aa-1"}, {ID: "0196aa-2"}, {ID: "0196bb-1"}}

	e, err := findEntry(entries, "0196aa-2")
	require.NoError(t, err)
	assert.Equal(t, "0196aa-2", e.ID)

	e, err = findEntry(entries, "0196bb")
	require.NoError(t, err)
	assert.Equal(t, "0196bb-1", e.ID)

	_, err = findEntry(entries, "0196aa")
	assert.Error(t, err)

	_, err = findEntry(entries, "zz")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestFindFolder(t *testing.T) {
	folders := []core.Folder{{ID: "f1", Name: "Work"}, {ID: "f2", Name: "Home"}, {ID: "f3", Name: "Home"}}

	ref, err := findFolder(folders, "root")
	require.NoError(t, err)
	assert.True(t, ref.IsRoot())

	ref, err = findFolder(folders, "Work")
	require.NoError(t, err)
	assert.Equal(t, core.InFolder("f1"), ref)

	ref, err = findFolder(folders, "f3")
	require.NoError(t, err)
	assert.Equal(t, core.InFolder("f3"), ref)

	_, err = findFolder(folders, "Home")
	assert.Error(t, err)
	_, err = findFolder(folders, "Nope")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.Equal(t, "Work", folderName(folders, core.InFolder("f1")))
	assert.Empty(t, folderName(folders, core.Root))
}
