package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"contour-compositor/internal/gui/components"
	"contour-compositor/internal/logger"
)

// Manager owns the window content and exposes handler hooks for the app
// layer. It knows nothing about the pipeline; the app wires the two together.
type Manager struct {
	window fyne.Window
	log    logger.Logger

	controls  *components.Controls
	statusBar *components.StatusBar
	logView   *components.LogView
}

func NewManager(window fyne.Window, log logger.Logger) *Manager {
	m := &Manager{
		window:    window,
		log:       log,
		controls:  components.NewControls(),
		statusBar: components.NewStatusBar(),
		logView:   components.NewLogView(),
	}

	log.Info("GUIManager", "initialized", nil)
	return m
}

func (m *Manager) GetMainContainer() *fyne.Container {
	return container.NewVBox(
		m.controls.GetContainer(),
		m.statusBar.GetContainer(),
		m.logView.GetContainer(),
	)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

func (m *Manager) SetBrowseVideoHandler(handler func())  { m.controls.SetBrowseVideoHandler(handler) }
func (m *Manager) SetBrowseOutputHandler(handler func()) { m.controls.SetBrowseOutputHandler(handler) }
func (m *Manager) SetProcessHandler(handler func())      { m.controls.SetProcessHandler(handler) }
func (m *Manager) SetCancelHandler(handler func())       { m.controls.SetCancelHandler(handler) }
func (m *Manager) SetCloseHandler(handler func())        { m.controls.SetCloseHandler(handler) }

func (m *Manager) SetInputVideo(name string) { m.controls.SetInputVideo(name) }
func (m *Manager) SetOutputDir(path string)  { m.controls.SetOutputDir(path) }
func (m *Manager) FPSText() string           { return m.controls.FPSText() }

func (m *Manager) SetProcessing(active bool) { m.controls.SetProcessing(active) }

func (m *Manager) UpdateProgress(index, total int) { m.statusBar.SetProgress(index, total) }
func (m *Manager) UpdateStatus(status string)      { m.statusBar.SetStatus(status) }
func (m *Manager) ResetProgress()                  { m.statusBar.Reset() }

func (m *Manager) AppendLog(message string) {
	m.logView.Append(message)
}

func (m *Manager) ShowError(title string, err error) {
	m.log.Error("GUIManager", err, map[string]interface{}{"dialog": title})
	dialog.ShowError(err, m.window)
}
