package safe

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"gocv.io/x/gocv"
)

// Mat owns a gocv.Mat and guarantees the native buffer is released exactly
// once, with a finalizer as last-resort cleanup. The pipeline is strictly
// sequential, so no locking is carried here.
type Mat struct {
	mat     gocv.Mat
	isValid int32
}

func NewMat(rows, cols int, matType gocv.MatType) (*Mat, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid dimensions: %dx%d", cols, rows)
	}

	mat := gocv.NewMatWithSize(rows, cols, matType)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("failed to create Mat with size %dx%d", cols, rows)
	}

	return wrap(mat), nil
}

// NewMatFromMat clones the source so the wrapper owns its own buffer.
func NewMatFromMat(srcMat gocv.Mat) (*Mat, error) {
	if srcMat.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}

	cloned := srcMat.Clone()
	if cloned.Empty() {
		cloned.Close()
		return nil, fmt.Errorf("failed to clone Mat")
	}

	return wrap(cloned), nil
}

// Take wraps an existing gocv.Mat, transferring ownership without a copy.
// The caller must not close the source afterwards.
func Take(srcMat gocv.Mat) (*Mat, error) {
	if srcMat.Empty() {
		return nil, fmt.Errorf("source Mat is empty")
	}
	return wrap(srcMat), nil
}

// ReadImage decodes an image file into an owned Mat. An empty result means
// the file was missing or not a parseable raster.
func ReadImage(path string, flags gocv.IMReadFlag) (*Mat, error) {
	mat := gocv.IMRead(path, flags)
	if mat.Empty() {
		return nil, fmt.Errorf("failed to decode image %s", path)
	}
	return wrap(mat), nil
}

func wrap(mat gocv.Mat) *Mat {
	sm := &Mat{mat: mat, isValid: 1}
	runtime.SetFinalizer(sm, (*Mat).finalize)
	return sm
}

func (sm *Mat) IsValid() bool {
	return atomic.LoadInt32(&sm.isValid) == 1
}

func (sm *Mat) Empty() bool {
	if !sm.IsValid() {
		return true
	}
	return sm.mat.Empty()
}

func (sm *Mat) Rows() int {
	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Rows()
}

func (sm *Mat) Cols() int {
	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Cols()
}

func (sm *Mat) Channels() int {
	if !sm.IsValid() {
		return 0
	}
	return sm.mat.Channels()
}

func (sm *Mat) Type() gocv.MatType {
	if !sm.IsValid() {
		return gocv.MatTypeCV8UC1
	}
	return sm.mat.Type()
}

func (sm *Mat) Clone() (*Mat, error) {
	if !sm.IsValid() {
		return nil, fmt.Errorf("cannot clone invalid Mat")
	}
	return NewMatFromMat(sm.mat)
}

// GetMat exposes the underlying gocv.Mat for OpenCV calls. The wrapper keeps
// ownership; callers must not close it.
func (sm *Mat) GetMat() gocv.Mat {
	return sm.mat
}

func (sm *Mat) Close() {
	if atomic.CompareAndSwapInt32(&sm.isValid, 1, 0) {
		if !sm.mat.Empty() {
			sm.mat.Close()
		}
		runtime.SetFinalizer(sm, nil)
	}
}

func (sm *Mat) finalize() {
	if atomic.LoadInt32(&sm.isValid) == 1 {
		sm.Close()
	}
}
