package contour

import (
	"image"

	"gocv.io/x/gocv"

	"contour-compositor/internal/errs"
	"contour-compositor/internal/opencv/safe"
)

// Overlay paints contour pixels onto a visualization frame in a fixed
// highlight color. Thickness widens the line by dilating the contour before
// painting; 1 keeps it as detected.
type Overlay struct {
	blue      uint8
	green     uint8
	red       uint8
	thickness int
}

func NewOverlay(blue, green, red uint8, thickness int) *Overlay {
	if thickness < 1 {
		thickness = 1
	}
	return &Overlay{blue: blue, green: green, red: red, thickness: thickness}
}

func DefaultOverlay() *Overlay {
	return NewOverlay(255, 255, 255, 1)
}

// Composite returns a new frame equal to the visualization except where the
// contour is on. Inputs are never mutated and never resized: a dimension
// mismatch between frame and contour is a fatal error.
func (o *Overlay) Composite(frame, contour *safe.Mat) (*safe.Mat, error) {
	if frame == nil || frame.Empty() {
		return nil, errs.New(errs.ImageDecode, "visualization frame is empty")
	}
	if contour == nil || contour.Empty() {
		return nil, errs.New(errs.ImageDecode, "contour image is empty")
	}
	if frame.Rows() != contour.Rows() || frame.Cols() != contour.Cols() {
		return nil, errs.Newf(errs.DimensionMismatch,
			"frame is %dx%d but contour is %dx%d",
			frame.Cols(), frame.Rows(), contour.Cols(), contour.Rows())
	}

	mask, err := o.widen(contour)
	if err != nil {
		return nil, err
	}
	defer mask.Close()

	out, err := frame.Clone()
	if err != nil {
		return nil, errs.Wrap(errs.DimensionMismatch, err, "frame clone failed")
	}

	highlight := gocv.NewMatWithSizeFromScalar(
		gocv.NewScalar(float64(o.blue), float64(o.green), float64(o.red), 0),
		frame.Rows(), frame.Cols(), frame.Type())
	defer highlight.Close()

	outMat := out.GetMat()
	highlight.CopyToWithMask(&outMat, mask.GetMat())

	return out, nil
}

// widen dilates the contour with a square kernel when thickness exceeds one.
func (o *Overlay) widen(contour *safe.Mat) (*safe.Mat, error) {
	if o.thickness <= 1 {
		return contour.Clone()
	}

	dilated, err := safe.NewMat(contour.Rows(), contour.Cols(), gocv.MatTypeCV8UC1)
	if err != nil {
		return nil, errs.Wrap(errs.DimensionMismatch, err, "dilation buffer allocation failed")
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(o.thickness, o.thickness))
	defer kernel.Close()

	contourMat := contour.GetMat()
	dilatedMat := dilated.GetMat()
	gocv.Dilate(contourMat, &dilatedMat, kernel)

	return dilated, nil
}
