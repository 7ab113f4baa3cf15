package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Controls groups the run inputs: input video, output directory, frame rate
// and the action buttons.
type Controls struct {
	container *fyne.Container

	inputVideoLabel *widget.Label
	outputDirLabel  *widget.Label
	fpsEntry        *widget.Entry

	browseVideoButton  *widget.Button
	browseOutputButton *widget.Button
	processButton      *widget.Button
	cancelButton       *widget.Button
	closeButton        *widget.Button
}

func NewControls() *Controls {
	c := &Controls{
		inputVideoLabel: widget.NewLabel("None"),
		outputDirLabel:  widget.NewLabel("None"),
		fpsEntry:        widget.NewEntry(),
	}

	c.fpsEntry.SetText("30")

	c.browseVideoButton = widget.NewButton("Browse...", nil)
	c.browseOutputButton = widget.NewButton("Browse...", nil)
	c.processButton = widget.NewButton("Process Video", nil)
	c.cancelButton = widget.NewButton("Cancel", nil)
	c.closeButton = widget.NewButton("Close", nil)

	c.cancelButton.Disable()

	inputRow := container.NewHBox(
		widget.NewLabel("Input Video:"),
		c.inputVideoLabel,
		c.browseVideoButton,
	)
	outputRow := container.NewHBox(
		widget.NewLabel("Output Directory:"),
		c.outputDirLabel,
		c.browseOutputButton,
	)
	fpsRow := container.NewHBox(
		widget.NewLabel("FPS:"),
		c.fpsEntry,
	)
	buttonRow := container.NewHBox(
		c.processButton,
		c.cancelButton,
		c.closeButton,
	)

	c.container = container.NewVBox(inputRow, outputRow, fpsRow, buttonRow)
	return c
}

func (c *Controls) GetContainer() *fyne.Container {
	return c.container
}

func (c *Controls) SetBrowseVideoHandler(handler func())  { c.browseVideoButton.OnTapped = handler }
func (c *Controls) SetBrowseOutputHandler(handler func()) { c.browseOutputButton.OnTapped = handler }
func (c *Controls) SetProcessHandler(handler func())      { c.processButton.OnTapped = handler }
func (c *Controls) SetCancelHandler(handler func())       { c.cancelButton.OnTapped = handler }
func (c *Controls) SetCloseHandler(handler func())        { c.closeButton.OnTapped = handler }

func (c *Controls) SetInputVideo(name string) {
	c.inputVideoLabel.SetText(name)
}

func (c *Controls) SetOutputDir(path string) {
	c.outputDirLabel.SetText(path)
}

func (c *Controls) FPSText() string {
	return c.fpsEntry.Text
}

// SetProcessing flips the buttons between idle and in-flight states so a run
// cannot be started twice or its inputs changed mid-run.
func (c *Controls) SetProcessing(active bool) {
	if active {
		c.processButton.Disable()
		c.browseVideoButton.Disable()
		c.browseOutputButton.Disable()
		c.fpsEntry.Disable()
		c.cancelButton.Enable()
	} else {
		c.processButton.Enable()
		c.browseVideoButton.Enable()
		c.browseOutputButton.Enable()
		c.fpsEntry.Enable()
		c.cancelButton.Disable()
	}
}
