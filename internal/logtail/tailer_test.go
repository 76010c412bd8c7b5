package logtail

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendFile(t *testing.T, path, text string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(text)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestTailer_GrowthIsReturnedExactlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	pieces := []string{"alpha\n", "be", "ta\ngamma", "", "\ndelta\n", "ε\n"}

	tl := NewTailer(path, nil)
	var got strings.Builder
	var want strings.Builder
	for _, p := range pieces {
		appendFile(t, path, p)
		want.WriteString(p)

		chunk, err := tl.Poll()
		require.NoError(t, err)
		assert.False(t, chunk.Reset)
		got.WriteString(chunk.Text)

		// A second poll with no growth returns nothing.
		again, err := tl.Poll()
		require.NoError(t, err)
		assert.True(t, again.Empty())
	}

	assert.Equal(t, want.String(), got.String())
	assert.Equal(t, int64(len(want.String())), tl.Offset())
}

func TestTailer_ChunkBoundsTrackOffsets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	appendFile(t, path, "12345")

	tl := NewTailer(path, nil)
	c, err := tl.Poll()
	require.NoError(t, err)
	assert.Equal(t, Chunk{Base: 0, End: 5, Text: "12345"}, c)

	appendFile(t, path, "678")
	c, err = tl.Poll()
	require.NoError(t, err)
	assert.Equal(t, Chunk{Base: 5, End: 8, Text: "678"}, c)
}

func TestTailer_TruncationResetsToZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	appendFile(t, path, "old session line one\nold session line two\n")

	tl := NewTailer(path, nil)
	_, err := tl.Poll()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("new\n"), 0644))

	c, err := tl.Poll()
	require.NoError(t, err)
	assert.True(t, c.Reset)
	assert.Equal(t, int64(0), c.Base)
	assert.Equal(t, "new\n", c.Text)
	assert.Equal(t, int64(4), tl.Offset())
}

func TestTailer_TruncatedToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	appendFile(t, path, "something\n")

	tl := NewTailer(path, nil)
	_, err := tl.Poll()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, nil, 0644))
	c, err := tl.Poll()
	require.NoError(t, err)
	assert.True(t, c.Reset)
	assert.True(t, c.Empty())
	assert.Equal(t, int64(0), tl.Offset())
}

func TestTailer_MissingFileLeavesOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	appendFile(t, path, "abc\n")

	tl := NewTailer(path, nil)
	_, err := tl.Poll()
	require.NoError(t, err)
	require.Equal(t, int64(4), tl.Offset())

	require.NoError(t, os.Remove(path))
	_, err = tl.Poll()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int64(4), tl.Offset())
}

func TestTailer_SeekEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "EE.log")
	appendFile(t, path, "history we do not want\n")

	tl := NewTailer(path, nil)
	require.NoError(t, tl.SeekEnd())

	appendFile(t, path, "fresh\n")
	c, err := tl.Poll()
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", c.Text)

	missing := NewTailer(filepath.Join(t.TempDir(), "nope.log"), nil)
	assert.True(t, errors.Is(missing.SeekEnd(), ErrNotFound))
	assert.Equal(t, int64(0), missing.Offset())
}
