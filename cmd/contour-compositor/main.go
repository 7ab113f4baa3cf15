package main

import (
	"log"

	"contour-compositor/internal/app"
	"contour-compositor/internal/config"
	"contour-compositor/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration failed: %v", err)
	}

	appLogger := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))

	application, err := app.NewApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("application initialization failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application execution failed: %v", err)
	}
}
