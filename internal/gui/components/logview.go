package components

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const maxLogLines = 200

// LogView is the scrolling message pane at the bottom of the window.
type LogView struct {
	scroll *container.Scroll
	label  *widget.Label
	lines  []string
}

func NewLogView() *LogView {
	label := widget.NewLabel("")
	label.Wrapping = fyne.TextWrapWord

	scroll := container.NewVScroll(label)
	scroll.SetMinSize(fyne.NewSize(560, 160))

	return &LogView{scroll: scroll, label: label}
}

func (lv *LogView) GetContainer() fyne.CanvasObject {
	return lv.scroll
}

// Append adds one message and scrolls to the newest entry. Old lines are
// dropped past maxLogLines to keep the widget bounded.
func (lv *LogView) Append(message string) {
	lv.lines = append(lv.lines, message)
	if len(lv.lines) > maxLogLines {
		lv.lines = lv.lines[len(lv.lines)-maxLogLines:]
	}

	lv.label.SetText(strings.Join(lv.lines, "\n"))
	lv.scroll.ScrollToBottom()
}
