package video

import (
	"strings"

	"gocv.io/x/gocv"

	"contour-compositor/internal/errs"
	"contour-compositor/internal/logger"
	"contour-compositor/internal/opencv/safe"
)

type writerState int

const (
	stateUnopened writerState = iota
	stateOpen
	stateClosed
)

// Writer appends composited frames to a single output video. The underlying
// encoder is created lazily from the first frame's dimensions, every later
// frame must match them, and Close finalizes the file exactly once. Once
// closed the writer never reopens.
type Writer struct {
	path   string
	fps    float64
	fourcc string
	log    logger.Logger

	state  writerState
	width  int
	height int
	frames int
	vw     *gocv.VideoWriter
}

func NewWriter(path string, fps float64, fourcc string, log logger.Logger) (*Writer, error) {
	if fps <= 0 {
		return nil, errs.Newf(errs.Encoding, "frame rate must be positive, got %v", fps)
	}
	if len(fourcc) != 4 {
		return nil, errs.Newf(errs.Encoding, "fourcc must be 4 characters, got %q", fourcc)
	}

	return &Writer{path: path, fps: fps, fourcc: fourcc, log: log}, nil
}

// Append writes one frame. The first append establishes the output dimensions
// and opens the encoder; appending after Close is a lifecycle violation.
func (w *Writer) Append(frame *safe.Mat) error {
	if w.state == stateClosed {
		return errs.New(errs.Lifecycle, "append after writer finalized").WithPath(w.path)
	}
	if frame == nil || frame.Empty() {
		return errs.New(errs.Encoding, "cannot append empty frame").WithPath(w.path).WithIndex(w.frames)
	}

	if w.state == stateUnopened {
		if err := w.open(frame.Cols(), frame.Rows()); err != nil {
			return err
		}
	}

	if frame.Cols() != w.width || frame.Rows() != w.height {
		return errs.Newf(errs.Encoding,
			"frame is %dx%d but output video is %dx%d",
			frame.Cols(), frame.Rows(), w.width, w.height).
			WithPath(w.path).WithIndex(w.frames)
	}

	if err := w.vw.Write(frame.GetMat()); err != nil {
		return errs.Wrap(errs.Encoding, err, "frame append failed").
			WithPath(w.path).WithIndex(w.frames)
	}

	w.frames++
	return nil
}

func (w *Writer) open(width, height int) error {
	vw, err := gocv.VideoWriterFile(w.path, w.fourcc, w.fps, width, height, true)
	if err != nil {
		return errs.Wrap(errs.Encoding, err, "video writer creation failed").WithPath(w.path)
	}
	if !vw.IsOpened() {
		vw.Close()
		return errs.Newf(errs.Encoding, "video writer rejected codec %q", w.fourcc).WithPath(w.path)
	}

	w.vw = vw
	w.width = width
	w.height = height
	w.state = stateOpen

	w.log.Info("VideoWriter", "output opened", map[string]interface{}{
		"path":   w.path,
		"fps":    w.fps,
		"fourcc": w.fourcc,
		"width":  width,
		"height": height,
	})

	return nil
}

// Close flushes and releases the encoder. It runs on every exit path and is
// safe to call more than once; only the first call does work.
func (w *Writer) Close() error {
	if w.state == stateClosed {
		return nil
	}

	prev := w.state
	w.state = stateClosed

	if prev != stateOpen {
		return nil
	}

	err := w.vw.Close()
	w.vw = nil
	if err != nil {
		return errs.Wrap(errs.Encoding, err, "finalizing output video failed").WithPath(w.path)
	}

	w.log.Info("VideoWriter", "output finalized", map[string]interface{}{
		"path":   w.path,
		"frames": w.frames,
	})

	return nil
}

// Opened reports whether any frame has been appended yet.
func (w *Writer) Opened() bool {
	return w.state == stateOpen
}

func (w *Writer) FrameCount() int {
	return w.frames
}

func (w *Writer) Path() string {
	return w.path
}

// ExtensionFor picks the container extension that matches a fourcc. The
// mapping follows what OpenCV's backends accept in practice.
func ExtensionFor(fourcc string) string {
	switch strings.ToUpper(fourcc) {
	case "MJPG", "XVID", "DIVX":
		return ".avi"
	default:
		return ".mp4"
	}
}
