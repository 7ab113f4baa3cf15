package contour

import (
	"gocv.io/x/gocv"

	"contour-compositor/internal/errs"
	"contour-compositor/internal/opencv/safe"
)

// Extractor turns one mask image into a binary contour image using Canny edge
// detection. The same mask always yields the same contour: the operation has
// no state and no randomness.
type Extractor struct {
	lowThreshold  float32
	highThreshold float32
}

// Default thresholds mirror the original tool: every gradient above the floor
// counts, which traces the full region boundary of a binary mask.
const (
	DefaultLowThreshold  = 1
	DefaultHighThreshold = 256
)

func NewExtractor(lowThreshold, highThreshold float64) *Extractor {
	return &Extractor{
		lowThreshold:  float32(lowThreshold),
		highThreshold: float32(highThreshold),
	}
}

func DefaultExtractor() *Extractor {
	return NewExtractor(DefaultLowThreshold, DefaultHighThreshold)
}

// Extract returns a single-channel contour image with the mask's spatial
// dimensions. Multi-channel masks are reduced to grayscale first.
func (e *Extractor) Extract(mask *safe.Mat) (*safe.Mat, error) {
	if mask == nil || mask.Empty() {
		return nil, errs.New(errs.ImageDecode, "mask image is empty")
	}

	gray, err := toGrayscale(mask)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	edges, err := safe.NewMat(mask.Rows(), mask.Cols(), gocv.MatTypeCV8UC1)
	if err != nil {
		return nil, errs.Wrap(errs.ImageDecode, err, "contour buffer allocation failed")
	}

	grayMat := gray.GetMat()
	edgesMat := edges.GetMat()
	gocv.Canny(grayMat, &edgesMat, e.lowThreshold, e.highThreshold)

	return edges, nil
}

func toGrayscale(src *safe.Mat) (*safe.Mat, error) {
	if src.Channels() == 1 {
		return src.Clone()
	}

	dst, err := safe.NewMat(src.Rows(), src.Cols(), gocv.MatTypeCV8UC1)
	if err != nil {
		return nil, errs.Wrap(errs.ImageDecode, err, "grayscale buffer allocation failed")
	}

	srcMat := src.GetMat()
	dstMat := dst.GetMat()

	switch src.Channels() {
	case 3:
		gocv.CvtColor(srcMat, &dstMat, gocv.ColorBGRToGray)
	case 4:
		tempBGR := gocv.NewMat()
		defer tempBGR.Close()
		gocv.CvtColor(srcMat, &tempBGR, gocv.ColorBGRAToBGR)
		gocv.CvtColor(tempBGR, &dstMat, gocv.ColorBGRToGray)
	default:
		dst.Close()
		return nil, errs.Newf(errs.ImageDecode, "unsupported channel count %d for mask", src.Channels())
	}

	return dst, nil
}
