package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"contour-compositor/internal/config"
	"contour-compositor/internal/gui"
	"contour-compositor/internal/logger"
	"contour-compositor/internal/pipeline"
)

// Handlers reacts to GUI events and drives pipeline runs. At most one run is
// in flight at a time; processing happens on a goroutine and all UI updates
// go through fyne.Do.
type Handlers struct {
	cfg         *config.Config
	log         logger.Logger
	coordinator *pipeline.Coordinator
	guiManager  *gui.Manager
	parentCtx   context.Context

	mu        sync.Mutex
	videoPath string
	outputDir string
	cancelRun context.CancelFunc
	runDone   chan struct{}
}

func NewHandlers(cfg *config.Config, log logger.Logger, coordinator *pipeline.Coordinator, guiManager *gui.Manager, parentCtx context.Context) *Handlers {
	return &Handlers{
		cfg:         cfg,
		log:         log,
		coordinator: coordinator,
		guiManager:  guiManager,
		parentCtx:   parentCtx,
	}
}

func (h *Handlers) HandleBrowseVideo() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			h.guiManager.ShowError("Select Input Video", err)
			return
		}
		if reader == nil {
			return
		}

		path := reader.URI().Path()
		reader.Close()

		h.mu.Lock()
		h.videoPath = path
		h.mu.Unlock()

		h.guiManager.SetInputVideo(filepath.Base(path))
		h.guiManager.AppendLog("Input video selected: " + path)
		h.log.Info("Handlers", "input video selected", map[string]interface{}{"path": path})
	}, h.guiManager.GetWindow())

	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".mp4"}))
	fileDialog.Show()
}

func (h *Handlers) HandleBrowseOutput() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			h.guiManager.ShowError("Select Output Directory", err)
			return
		}
		if uri == nil {
			return
		}

		path := uri.Path()

		h.mu.Lock()
		h.outputDir = path
		h.mu.Unlock()

		h.guiManager.SetOutputDir(path)
		h.guiManager.AppendLog("Output directory selected: " + path)
		h.log.Info("Handlers", "output directory selected", map[string]interface{}{"path": path})
	}, h.guiManager.GetWindow())
}

func (h *Handlers) HandleProcess() {
	h.mu.Lock()
	if h.cancelRun != nil {
		h.mu.Unlock()
		return
	}
	videoPath := h.videoPath
	outputDir := h.outputDir
	h.mu.Unlock()

	if videoPath == "" {
		dialog.ShowInformation("No Input Video", "Please select an input video file.", h.guiManager.GetWindow())
		return
	}
	if outputDir == "" {
		dialog.ShowInformation("No Output Directory", "Please select an output directory.", h.guiManager.GetWindow())
		return
	}

	fps := h.parseFPS()

	ctx, cancel := context.WithCancel(h.parentCtx)
	done := make(chan struct{})

	h.mu.Lock()
	h.cancelRun = cancel
	h.runDone = done
	h.mu.Unlock()

	h.guiManager.SetProcessing(true)
	h.guiManager.UpdateStatus("Processing...")
	h.guiManager.AppendLog(fmt.Sprintf("[%s] Processing started...", filepath.Base(videoPath)))

	go h.runPipeline(ctx, cancel, done, pipeline.Request{
		VideoPath: videoPath,
		OutputDir: outputDir,
		FPS:       fps,
	})
}

func (h *Handlers) runPipeline(ctx context.Context, cancel context.CancelFunc, done chan struct{}, req pipeline.Request) {
	defer close(done)
	defer cancel()

	req.OnProgress = func(p pipeline.Progress) {
		fyne.Do(func() {
			h.guiManager.UpdateProgress(p.Index, p.Total)
		})
	}

	result, err := h.coordinator.Run(ctx, req)

	h.mu.Lock()
	h.cancelRun = nil
	h.runDone = nil
	h.mu.Unlock()

	fyne.Do(func() {
		h.guiManager.SetProcessing(false)

		switch {
		case errors.Is(err, context.Canceled):
			h.guiManager.ResetProgress()
			h.guiManager.UpdateStatus("Cancelled")
			h.guiManager.AppendLog("Processing cancelled; partial output removed.")
		case err != nil:
			h.guiManager.UpdateStatus("Processing failed")
			h.guiManager.AppendLog("Error: " + err.Error())
			h.guiManager.ShowError("Processing Error", err)
		default:
			h.guiManager.UpdateStatus("Completed")
			h.guiManager.AppendLog(fmt.Sprintf("Video saved at: %s (%d frames)", result.OutputPath, result.Frames))
		}
	})
}

func (h *Handlers) HandleCancel() {
	h.mu.Lock()
	cancel := h.cancelRun
	h.mu.Unlock()

	if cancel != nil {
		h.guiManager.AppendLog("Cancelling...")
		cancel()
	}
}

// parseFPS reads the FPS entry, falling back to the configured default when
// the value is not a positive number. The fallback is logged, matching the
// tool's historical behavior.
func (h *Handlers) parseFPS() float64 {
	text := h.guiManager.FPSText()
	fps, err := strconv.ParseFloat(text, 64)
	if err != nil || fps <= 0 {
		h.guiManager.AppendLog(fmt.Sprintf("FPS value %q is invalid. Using default FPS = %v.", text, h.cfg.DefaultFPS))
		return h.cfg.DefaultFPS
	}
	return fps
}

// Shutdown cancels a run in flight and waits for its writer to finalize so
// no partial file survives an app exit.
func (h *Handlers) Shutdown() {
	h.mu.Lock()
	cancel := h.cancelRun
	done := h.runDone
	h.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
