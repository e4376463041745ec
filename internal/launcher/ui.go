package launcher

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Window is the launcher's single window: one button per registered tool.
type Window struct {
	window    fyne.Window
	launcher  *Launcher
	statusBar *widget.Label
}

func NewWindow(window fyne.Window, l *Launcher) *Window {
	w := &Window{
		window:    window,
		launcher:  l,
		statusBar: widget.NewLabel("Ready"),
	}
	w.buildLayout()
	return w
}

func (w *Window) buildLayout() {
	title := widget.NewRichTextFromMarkdown("## Workflow Toolbox")
	subtitle := widget.NewLabel("Start the desktop tools shipped with this toolbox.")

	buttons := container.NewVBox()
	for _, tool := range Tools() {
		tool := tool
		btn := widget.NewButton(tool.Name, func() {
			w.startTool(tool)
		})
		btn.Importance = widget.HighImportance
		buttons.Add(btn)
	}

	content := container.NewBorder(
		container.NewVBox(title, subtitle, widget.NewSeparator()),
		w.statusBar,
		nil, nil,
		container.NewPadded(buttons),
	)
	w.window.SetContent(content)
	w.window.Resize(fyne.NewSize(420, 300))
}

// startTool spawns the tool off the event loop. A failed start surfaces as
// an error dialog; the launcher window itself never goes down with it.
func (w *Window) startTool(tool Tool) {
	w.statusBar.SetText("Starting " + tool.Name + "...")

	go func() {
		err := w.launcher.Start(tool)
		fyne.Do(func() {
			if err != nil {
				w.launcher.log.Error("launcher", err, map[string]interface{}{
					"tool": tool.Name,
				})
				dialog.ShowError(err, w.window)
				w.statusBar.SetText("Ready")
				return
			}
			w.statusBar.SetText(tool.Name + " started")
		})
	}()
}
