package app

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"contour-compositor/internal/config"
	"contour-compositor/internal/gui"
	"contour-compositor/internal/logger"
	"contour-compositor/internal/pipeline"
	"contour-compositor/internal/shutdown"
)

const (
	AppName    = "Contour Compositor"
	AppID      = "com.videoprocessing.contourcompositor"
	AppVersion = "1.0.0"

	windowWidth  = 640
	windowHeight = 480
)

type Application struct {
	fyneApp     fyne.App
	window      fyne.Window
	cfg         *config.Config
	log         logger.Logger
	guiManager  *gui.Manager
	coordinator *pipeline.Coordinator
	shutdownMgr *shutdown.Manager
	handlers    *Handlers
}

func NewApplication(cfg *config.Config, log logger.Logger) (*Application, error) {
	fyneApp := app.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":        AppVersion,
		"workspace_root": cfg.WorkspaceRoot,
	})

	coordinator, err := pipeline.NewCoordinator(cfg, log)
	if err != nil {
		return nil, err
	}

	guiManager := gui.NewManager(window, log)
	shutdownMgr := shutdown.NewManager(log)

	application := &Application{
		fyneApp:     fyneApp,
		window:      window,
		cfg:         cfg,
		log:         log,
		guiManager:  guiManager,
		coordinator: coordinator,
		shutdownMgr: shutdownMgr,
	}

	application.handlers = NewHandlers(cfg, log, coordinator, guiManager, shutdownMgr.Context())
	application.setupHandlers()
	shutdownMgr.Register(application.handlers)

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupHandlers() {
	a.guiManager.SetBrowseVideoHandler(a.handlers.HandleBrowseVideo)
	a.guiManager.SetBrowseOutputHandler(a.handlers.HandleBrowseOutput)
	a.guiManager.SetProcessHandler(a.handlers.HandleProcess)
	a.guiManager.SetCancelHandler(a.handlers.HandleCancel)
	a.guiManager.SetCloseHandler(a.requestClose)
}

func (a *Application) requestClose() {
	a.log.Info("Application", "shutdown requested", nil)
	a.shutdownMgr.Shutdown()
	a.window.Close()
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(a.requestClose)
	a.shutdownMgr.Listen()

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.log.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	return nil
}
