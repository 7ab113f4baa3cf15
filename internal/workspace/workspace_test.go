package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contour-compositor/internal/errs"
)

// stubWorkspace lays out <root>/<name>/{visualization/davis,masks} with the
// given filenames. File contents are irrelevant to resolution.
func stubWorkspace(t *testing.T, name string, visualizations, masks []string) string {
	t.Helper()

	root := t.TempDir()
	visDir := filepath.Join(root, name, "visualization", "davis")
	maskDir := filepath.Join(root, name, "masks")
	require.NoError(t, os.MkdirAll(visDir, 0o755))
	require.NoError(t, os.MkdirAll(maskDir, 0o755))

	for _, f := range visualizations {
		require.NoError(t, os.WriteFile(filepath.Join(visDir, f), []byte("img"), 0o644))
	}
	for _, f := range masks {
		require.NoError(t, os.WriteFile(filepath.Join(maskDir, f), []byte("img"), 0o644))
	}

	return root
}

func TestResolvePairsByFrameIndex(t *testing.T) {
	root := stubWorkspace(t, "clip",
		[]string{"00002.jpg", "00000.jpg", "00001.jpg"},
		[]string{"frame_1.png", "frame_0.png", "frame_2.png"},
	)

	ws, err := Resolve(root, "/videos/clip.mp4", DefaultLayout())
	require.NoError(t, err)

	assert.Equal(t, "clip", ws.Name)
	require.Len(t, ws.Pairs, 3)
	for i, pair := range ws.Pairs {
		assert.Equal(t, i, pair.Index)
		assert.Contains(t, pair.Visualization, "0000")
		assert.Contains(t, pair.Mask, "frame_")
	}
}

func TestResolveOrdersNumericallyNotLexically(t *testing.T) {
	root := stubWorkspace(t, "clip",
		[]string{"2.jpg", "10.jpg", "1.jpg"},
		[]string{"2.png", "10.png", "1.png"},
	)

	ws, err := Resolve(root, "clip.mp4", DefaultLayout())
	require.NoError(t, err)

	indices := []int{ws.Pairs[0].Index, ws.Pairs[1].Index, ws.Pairs[2].Index}
	assert.Equal(t, []int{1, 2, 10}, indices)
}

func TestResolveMissingWorkspace(t *testing.T) {
	root := t.TempDir()

	_, err := Resolve(root, "nope.mp4", DefaultLayout())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Configuration))
}

func TestResolveMissingMaskFolder(t *testing.T) {
	root := stubWorkspace(t, "clip", []string{"00000.jpg"}, nil)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "clip", "masks")))

	_, err := Resolve(root, "clip.mp4", DefaultLayout())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Configuration))
}

func TestResolveCountMismatch(t *testing.T) {
	visualizations := make([]string, 10)
	masks := make([]string, 9)
	for i := range visualizations {
		visualizations[i] = fmt.Sprintf("%05d.jpg", i)
	}
	for i := range masks {
		masks[i] = fmt.Sprintf("%05d.png", i)
	}

	root := stubWorkspace(t, "clip", visualizations, masks)

	_, err := Resolve(root, "clip.mp4", DefaultLayout())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Configuration))
	assert.Contains(t, err.Error(), "10")
	assert.Contains(t, err.Error(), "9")
}

func TestResolveUnmatchedIndex(t *testing.T) {
	// Equal counts, but mask indices are shifted so frame 2 has no partner.
	root := stubWorkspace(t, "clip",
		[]string{"00000.jpg", "00001.jpg", "00002.jpg"},
		[]string{"00000.png", "00001.png", "00003.png"},
	)

	_, err := Resolve(root, "clip.mp4", DefaultLayout())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Configuration))
	assert.Contains(t, err.Error(), "no mask for frame index 2")
}

func TestResolveEmptyWorkspace(t *testing.T) {
	root := stubWorkspace(t, "clip", nil, nil)

	_, err := Resolve(root, "clip.mp4", DefaultLayout())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Configuration))
}

func TestResolveDuplicateIndex(t *testing.T) {
	root := stubWorkspace(t, "clip",
		[]string{"frame_1.jpg", "img_1.jpg"},
		[]string{"1.png", "2.png"},
	)

	_, err := Resolve(root, "clip.mp4", DefaultLayout())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Configuration))
	assert.Contains(t, err.Error(), "duplicate frame index")
}

func TestResolveRejectsUnindexedFilename(t *testing.T) {
	root := stubWorkspace(t, "clip",
		[]string{"cover.jpg"},
		[]string{"00000.png"},
	)

	_, err := Resolve(root, "clip.mp4", DefaultLayout())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.Configuration))
}

func TestResolveIgnoresNonImageFiles(t *testing.T) {
	root := stubWorkspace(t, "clip",
		[]string{"00000.jpg", "notes.txt"},
		[]string{"00000.png", ".DS_Store"},
	)

	ws, err := Resolve(root, "clip.mp4", DefaultLayout())
	require.NoError(t, err)
	assert.Len(t, ws.Pairs, 1)
}

func TestResolveIsRestartable(t *testing.T) {
	root := stubWorkspace(t, "clip",
		[]string{"00000.jpg", "00001.jpg"},
		[]string{"00000.png", "00001.png"},
	)

	ws, err := Resolve(root, "clip.mp4", DefaultLayout())
	require.NoError(t, err)

	first := make([]int, 0, len(ws.Pairs))
	for _, p := range ws.Pairs {
		first = append(first, p.Index)
	}
	second := make([]int, 0, len(ws.Pairs))
	for _, p := range ws.Pairs {
		second = append(second, p.Index)
	}
	assert.Equal(t, first, second)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "clip", BaseName("/videos/clip.mp4"))
	assert.Equal(t, "clip.tar", BaseName("clip.tar.mp4"))
	assert.Equal(t, "clip", BaseName("clip"))
}
