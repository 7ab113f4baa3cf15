package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"contour-compositor/internal/config"
	"contour-compositor/internal/contour"
	"contour-compositor/internal/errs"
	"contour-compositor/internal/logger"
	"contour-compositor/internal/opencv/safe"
	"contour-compositor/internal/video"
	"contour-compositor/internal/workspace"
)

// Progress is emitted after each completed frame. Index is 1-based so the
// final event reads (Total, Total).
type Progress struct {
	Index int
	Total int
}

// Request carries the per-run inputs collected by the shell. OnProgress may
// be nil; when set it is called synchronously between frames.
type Request struct {
	VideoPath  string
	OutputDir  string
	FPS        float64
	OnProgress func(Progress)
}

// Result describes a completed run.
type Result struct {
	OutputPath string
	Frames     int
	Width      int
	Height     int
}

// Coordinator drives the contouring pipeline: resolve workspace, then per
// frame pair extract the mask's contour, composite it onto the visualization
// and append to the output video. Frames are processed strictly one at a
// time in ascending index order.
type Coordinator struct {
	cfg       *config.Config
	log       logger.Logger
	extractor *contour.Extractor
	overlay   *contour.Overlay
}

func NewCoordinator(cfg *config.Config, log logger.Logger) (*Coordinator, error) {
	b, g, r, err := cfg.ParseOverlayColor()
	if err != nil {
		return nil, errs.Wrap(errs.Configuration, err, "invalid overlay color")
	}

	return &Coordinator{
		cfg:       cfg,
		log:       log,
		extractor: contour.NewExtractor(cfg.CannyLowThreshold, cfg.CannyHighThreshold),
		overlay:   contour.NewOverlay(b, g, r, cfg.OverlayThickness),
	}, nil
}

// Run executes one full contouring run. Any error aborts the run, the output
// writer is finalized on every exit path, and a partial output file is
// removed so a failed or cancelled run leaves nothing ambiguous on disk.
func (c *Coordinator) Run(ctx context.Context, req Request) (*Result, error) {
	if req.VideoPath == "" {
		return nil, errs.New(errs.Configuration, "no input video selected")
	}
	if req.OutputDir == "" {
		return nil, errs.New(errs.Configuration, "no output directory selected")
	}
	if req.FPS <= 0 {
		return nil, errs.Newf(errs.Configuration, "frame rate must be positive, got %v", req.FPS)
	}

	layout := workspace.Layout{
		VisualizationDir: filepath.FromSlash(c.cfg.VisualizationDir),
		MaskDir:          filepath.FromSlash(c.cfg.MaskDir),
	}
	ws, err := workspace.Resolve(c.cfg.WorkspaceRoot, req.VideoPath, layout)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, errs.Wrap(errs.Configuration, err, "cannot create output directory").WithPath(req.OutputDir)
	}

	outputPath := filepath.Join(req.OutputDir,
		c.cfg.OutputPrefix+ws.Name+video.ExtensionFor(c.cfg.FourCC))

	writer, err := video.NewWriter(outputPath, req.FPS, c.cfg.FourCC, c.log)
	if err != nil {
		return nil, err
	}

	c.log.Info("Pipeline", "run started", map[string]interface{}{
		"workspace": ws.Dir,
		"frames":    len(ws.Pairs),
		"fps":       req.FPS,
		"output":    outputPath,
	})

	result, runErr := c.processPairs(ctx, ws, writer, req.OnProgress)

	closeErr := writer.Close()
	if runErr == nil {
		runErr = closeErr
	}

	if runErr != nil {
		c.discardPartialOutput(writer)
		c.log.Error("Pipeline", runErr, map[string]interface{}{
			"frames_written": writer.FrameCount(),
			"output":         outputPath,
		})
		return nil, runErr
	}

	c.log.Info("Pipeline", "run completed", map[string]interface{}{
		"frames": result.Frames,
		"output": result.OutputPath,
	})

	return result, nil
}

func (c *Coordinator) processPairs(ctx context.Context, ws *workspace.Workspace, writer *video.Writer, onProgress func(Progress)) (*Result, error) {
	total := len(ws.Pairs)
	var width, height int

	for i, pair := range ws.Pairs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		frame, err := c.compositeFrame(pair)
		if err != nil {
			return nil, err
		}

		width = frame.Cols()
		height = frame.Rows()

		err = writer.Append(frame)
		frame.Close()
		if err != nil {
			return nil, err
		}

		if onProgress != nil {
			onProgress(Progress{Index: i + 1, Total: total})
		}
	}

	return &Result{
		OutputPath: writer.Path(),
		Frames:     writer.FrameCount(),
		Width:      width,
		Height:     height,
	}, nil
}

// compositeFrame produces one output frame from a pair: decode both images,
// extract the mask's contour, paint it onto the visualization.
func (c *Coordinator) compositeFrame(pair workspace.FramePair) (*safe.Mat, error) {
	vis, err := safe.ReadImage(pair.Visualization, gocv.IMReadColor)
	if err != nil {
		return nil, errs.Wrap(errs.ImageDecode, err, "unreadable visualization frame").
			WithPath(pair.Visualization).WithIndex(pair.Index)
	}
	defer vis.Close()

	mask, err := safe.ReadImage(pair.Mask, gocv.IMReadColor)
	if err != nil {
		return nil, errs.Wrap(errs.ImageDecode, err, "unreadable mask").
			WithPath(pair.Mask).WithIndex(pair.Index)
	}
	defer mask.Close()

	edges, err := c.extractor.Extract(mask)
	if err != nil {
		return nil, attachFrame(err, pair.Mask, pair.Index)
	}
	defer edges.Close()

	composited, err := c.overlay.Composite(vis, edges)
	if err != nil {
		return nil, attachFrame(err, pair.Visualization, pair.Index)
	}

	return composited, nil
}

// discardPartialOutput removes the half-written file after an aborted run.
// Nothing exists on disk unless the writer actually opened.
func (c *Coordinator) discardPartialOutput(writer *video.Writer) {
	if err := os.Remove(writer.Path()); err != nil && !os.IsNotExist(err) {
		c.log.Warning("Pipeline", "could not remove partial output", map[string]interface{}{
			"path":  writer.Path(),
			"error": err.Error(),
		})
	}
}

// attachFrame adds file and index context to typed errors bubbling out of the
// extract and composite stages.
func attachFrame(err error, path string, index int) error {
	var pe *errs.Error
	if errors.As(err, &pe) {
		if pe.Path == "" {
			pe.Path = path
		}
		if pe.Index < 0 {
			pe.Index = index
		}
	}
	return err
}
