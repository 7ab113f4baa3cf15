package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"contour-compositor/internal/config"
	"contour-compositor/internal/logger"
	"contour-compositor/internal/pipeline"
)

// contour-batch runs the contouring pipeline without the GUI, for scripted
// use and for exercising the pipeline end to end.
func main() {
	os.Exit(run())
}

func run() int {
	var videoPath string
	var outputDir string
	var fps float64
	var workspaceRoot string

	flag.StringVar(&videoPath, "video", "", "Path to the source video (used to locate its workspace)")
	flag.StringVar(&outputDir, "output", "", "Directory for the contoured output video")
	flag.Float64Var(&fps, "fps", 0, "Output frame rate (defaults to the configured rate)")
	flag.StringVar(&workspaceRoot, "workspace-root", "", "Override the workspace root directory")
	flag.Parse()

	if videoPath == "" || outputDir == "" {
		fmt.Fprintln(os.Stderr, "Usage: contour-batch -video <file.mp4> -output <dir> [-fps N] [-workspace-root <dir>]")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration failed: %v\n", err)
		return 1
	}
	if workspaceRoot != "" {
		cfg.WorkspaceRoot = workspaceRoot
	}
	if fps <= 0 {
		fps = cfg.DefaultFPS
	}

	appLogger := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))

	coordinator, err := pipeline.NewCoordinator(cfg, appLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeline setup failed: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := coordinator.Run(ctx, pipeline.Request{
		VideoPath: videoPath,
		OutputDir: outputDir,
		FPS:       fps,
		OnProgress: func(p pipeline.Progress) {
			fmt.Printf("\rframe %d/%d", p.Index, p.Total)
		},
	})
	fmt.Println()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "cancelled; partial output removed")
			return 130
		}
		fmt.Fprintf(os.Stderr, "processing failed: %v\n", err)
		return 1
	}

	fmt.Printf("wrote %s (%d frames, %dx%d)\n", result.OutputPath, result.Frames, result.Width, result.Height)
	return 0
}
