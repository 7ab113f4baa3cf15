package contour

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"contour-compositor/internal/errs"
	"contour-compositor/internal/opencv/safe"
)

// maskWithSquare builds a binary mask with one filled square region.
func maskWithSquare(t *testing.T, rows, cols, channels int) *safe.Mat {
	t.Helper()

	matType := gocv.MatTypeCV8UC1
	if channels == 3 {
		matType = gocv.MatTypeCV8UC3
	}

	mat := gocv.NewMatWithSize(rows, cols, matType)
	gocv.Rectangle(&mat, image.Rect(8, 8, 24, 24), color.RGBA{R: 255, G: 255, B: 255}, -1)

	sm, err := safe.Take(mat)
	require.NoError(t, err)
	t.Cleanup(sm.Close)
	return sm
}

func TestExtractPreservesDimensions(t *testing.T) {
	mask := maskWithSquare(t, 48, 64, 1)

	edges, err := DefaultExtractor().Extract(mask)
	require.NoError(t, err)
	defer edges.Close()

	assert.Equal(t, 48, edges.Rows())
	assert.Equal(t, 64, edges.Cols())
	assert.Equal(t, 1, edges.Channels())
}

func TestExtractFindsRegionBoundary(t *testing.T) {
	mask := maskWithSquare(t, 48, 64, 1)

	edges, err := DefaultExtractor().Extract(mask)
	require.NoError(t, err)
	defer edges.Close()

	edgesMat := edges.GetMat()
	assert.Greater(t, gocv.CountNonZero(edgesMat), 0, "square boundary should produce edge pixels")
}

func TestExtractIsDeterministic(t *testing.T) {
	mask := maskWithSquare(t, 48, 64, 1)
	extractor := DefaultExtractor()

	first, err := extractor.Extract(mask)
	require.NoError(t, err)
	defer first.Close()

	second, err := extractor.Extract(mask)
	require.NoError(t, err)
	defer second.Close()

	firstMat := first.GetMat()
	secondMat := second.GetMat()

	firstBytes, err := firstMat.DataPtrUint8()
	require.NoError(t, err)
	secondBytes, err := secondMat.DataPtrUint8()
	require.NoError(t, err)

	assert.Equal(t, firstBytes, secondBytes)
}

func TestExtractAcceptsColorMask(t *testing.T) {
	mask := maskWithSquare(t, 48, 64, 3)

	edges, err := DefaultExtractor().Extract(mask)
	require.NoError(t, err)
	defer edges.Close()

	assert.Equal(t, 1, edges.Channels())
	edgesMat := edges.GetMat()
	assert.Greater(t, gocv.CountNonZero(edgesMat), 0)
}

func TestExtractBlankMaskYieldsNoEdges(t *testing.T) {
	blank, err := safe.NewMat(32, 32, gocv.MatTypeCV8UC1)
	require.NoError(t, err)
	defer blank.Close()

	edges, err := DefaultExtractor().Extract(blank)
	require.NoError(t, err)
	defer edges.Close()

	edgesMat := edges.GetMat()
	assert.Equal(t, 0, gocv.CountNonZero(edgesMat))
}

func TestExtractRejectsNilMask(t *testing.T) {
	_, err := DefaultExtractor().Extract(nil)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.ImageDecode))
}
