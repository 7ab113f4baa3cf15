package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	progressBar *widget.ProgressBar
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel("Ready")
	progressBar := widget.NewProgressBar()

	return &StatusBar{
		container:   container.NewVBox(statusLabel, progressBar),
		statusLabel: statusLabel,
		progressBar: progressBar,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

// SetProgress shows frame index out of total as a fraction.
func (sb *StatusBar) SetProgress(index, total int) {
	if total <= 0 {
		sb.progressBar.SetValue(0)
		return
	}
	sb.progressBar.SetValue(float64(index) / float64(total))
	sb.statusLabel.SetText(fmt.Sprintf("Frame %d of %d", index, total))
}

func (sb *StatusBar) Reset() {
	sb.progressBar.SetValue(0)
	sb.statusLabel.SetText("Ready")
}
