package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageListMove(t *testing.T) {
	list := ImageList{"a", "b", "c", "d"}

	moved, err := list.Move(2, 0)
	require.NoError(t, err)
	assert.Equal(t, ImageList{"c", "a", "b", "d"}, moved)
	assert.Equal(t, ImageList{"a", "b", "c", "d"}, list, "input is not mutated")

	moved, err = list.Move(0, 3)
	require.NoError(t, err)
	assert.Equal(t, ImageList{"b", "c", "d", "a"}, moved)

	_, err = list.Move(4, 0)
	assert.Error(t, err)
}

func TestImageListAddRemoveCover(t *testing.T) {
	list := ImageList{}.Add(" https://x/a.jpg ").Add("   ").Add("https://x/b.jpg")
	assert.Equal(t, ImageList{"https://x/a.jpg", "https://x/b.jpg"}, list)
	assert.Equal(t, "https://x/a.jpg", list.Cover())

	list, err := list.Remove(0)
	require.NoError(t, err)
	assert.Equal(t, ImageList{"https://x/b.jpg"}, list)
	assert.Equal(t, "https://x/b.jpg", list.Cover())

	_, err = list.Remove(5)
	assert.Error(t, err)
	assert.Equal(t, "", ImageList{}.Cover())
}
