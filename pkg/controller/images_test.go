package controller_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/journal/pkg/core"
)

const pixel = "data:image/png;base64,iVBORw0KGgo="

func TestImages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, sampleEntries()...)
	f.ctrl.Load(ctx)

	img, ok := f.ctrl.AddImage(ctx, pixel, "pixel.png")
	require.True(t, ok)
	assert.NotEmpty(t, img.ID)

	sel, _ := f.ctrl.Selected()
	require.Len(t, sel.Images, 1)
	assert.Equal(t, img.ID, sel.Images[0].ID)
	require.Len(t, f.stored(t, "e1").Images, 1)
	assert.Zero(t, f.sched.count(), "images are written at once")

	t.Run("Insert Reference", func(t *testing.T) {
		require.NoError(t, f.ctrl.InsertImageReference(img.ID))
		d, _ := f.ctrl.Draft()
		assert.Equal(t, "one![pixel.png]("+pixel+")\n", d.Content)
		assert.Equal(t, 1, f.sched.count(), "the reference is a normal debounced edit")

		err := f.ctrl.InsertImageReference("missing")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("Pending Draft Does Not Drop Images", func(t *testing.T) {
		f.sched.fireActive()
		assert.Len(t, f.stored(t, "e1").Images, 1)
	})

	t.Run("Remove", func(t *testing.T) {
		require.True(t, f.ctrl.RemoveImage(ctx, img.ID))
		assert.False(t, f.ctrl.RemoveImage(ctx, img.ID))

		sel, _ := f.ctrl.Selected()
		assert.Empty(t, sel.Images)
		assert.Empty(t, f.stored(t, "e1").Images)
	})
}
