package tracker

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/atotto/clipboard"

	"workflow-toolbox/internal/logger"
)

// Window is the daily tracker form: one entry per calendar date.
type Window struct {
	window  fyne.Window
	service *Service
	log     logger.Logger

	current *Entry

	dateLabel     *widget.Label
	noteEntry     *widget.Entry
	statusSelect  *widget.Select
	progressSlide *widget.Slider
	progressLabel *widget.Label
	statusBar     *widget.Label
}

func NewWindow(window fyne.Window, service *Service, log logger.Logger) *Window {
	w := &Window{
		window:  window,
		service: service,
		log:     log,
	}
	w.buildLayout()
	w.loadDate(Today())

	if err := service.StartRollover(func() {
		fyne.Do(func() {
			w.loadDate(Today())
		})
	}); err != nil {
		log.Warning("tracker", "rollover scheduler unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}
	window.SetOnClosed(service.StopRollover)

	return w
}

func (w *Window) buildLayout() {
	w.dateLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	prevBtn := widget.NewButton("<", func() { w.shiftDate(-1) })
	nextBtn := widget.NewButton(">", func() { w.shiftDate(1) })
	todayBtn := widget.NewButton("Today", func() { w.loadDate(Today()) })
	dateRow := container.NewBorder(nil, nil, prevBtn, container.NewHBox(nextBtn, todayBtn), w.dateLabel)

	w.noteEntry = widget.NewMultiLineEntry()
	w.noteEntry.SetPlaceHolder("What happened today?")
	w.noteEntry.Wrapping = fyne.TextWrapWord

	labels := make([]string, 0, len(Statuses()))
	for _, s := range Statuses() {
		labels = append(labels, s.Label())
	}
	w.statusSelect = widget.NewSelect(labels, nil)

	w.progressSlide = widget.NewSlider(0, 100)
	w.progressSlide.Step = 5
	w.progressLabel = widget.NewLabel("0%")
	w.progressSlide.OnChanged = func(v float64) {
		w.progressLabel.SetText(fmt.Sprintf("%d%%", int(v)))
	}
	progressRow := container.NewBorder(nil, nil, widget.NewLabel("Progress"), w.progressLabel, w.progressSlide)

	saveBtn := widget.NewButton("Save", w.handleSave)
	saveBtn.Importance = widget.HighImportance
	copyBtn := widget.NewButton("Copy note", w.handleCopyNote)
	buttonRow := container.NewHBox(saveBtn, copyBtn)

	w.statusBar = widget.NewLabel("Ready")

	form := container.NewVBox(
		dateRow,
		widget.NewSeparator(),
		widget.NewLabel("Status"),
		w.statusSelect,
		progressRow,
		buttonRow,
	)

	content := container.NewBorder(
		form,
		w.statusBar,
		nil, nil,
		w.noteEntry,
	)
	w.window.SetContent(content)
	w.window.Resize(fyne.NewSize(480, 420))
}

// loadDate replaces the form contents with the entry for date. Unsaved
// edits on the previous date are dropped, matching the single-form model.
func (w *Window) loadDate(date string) {
	entry, err := w.service.LoadOrCreate(context.Background(), date)
	if err != nil {
		w.log.Error("tracker", err, map[string]interface{}{"date": date})
		dialog.ShowError(err, w.window)
		return
	}

	w.current = entry
	w.dateLabel.SetText(entry.Date)
	w.noteEntry.SetText(entry.Note)
	w.statusSelect.SetSelected(entry.Status.Label())
	w.progressSlide.SetValue(float64(entry.Progress))
	w.progressLabel.SetText(fmt.Sprintf("%d%%", entry.Progress))
	w.statusBar.SetText("Loaded " + entry.Date)
}

func (w *Window) shiftDate(days int) {
	date, err := ShiftDate(w.current.Date, days)
	if err != nil {
		dialog.ShowError(err, w.window)
		return
	}
	w.loadDate(date)
}

// handleSave persists the form. On failure the form keeps its state so the
// user can retry.
func (w *Window) handleSave() {
	w.current.Note = w.noteEntry.Text
	w.current.Status = StatusFromLabel(w.statusSelect.Selected)
	w.current.Progress = ClampProgress(int(w.progressSlide.Value))

	entry := *w.current
	w.statusBar.SetText("Saving...")

	go func() {
		err := w.service.Save(context.Background(), &entry)
		fyne.Do(func() {
			if err != nil {
				w.log.Error("tracker", err, map[string]interface{}{"date": entry.Date})
				dialog.ShowError(err, w.window)
				w.statusBar.SetText("Save failed")
				return
			}
			// The user may have navigated to another date while the save
			// was in flight; only adopt the ID if the form still shows
			// the saved date.
			if w.current.Date == entry.Date {
				w.current.ID = entry.ID
			}
			w.statusBar.SetText("Saved " + entry.Date)
		})
	}()
}

func (w *Window) handleCopyNote() {
	if err := clipboard.WriteAll(w.noteEntry.Text); err != nil {
		dialog.ShowError(fmt.Errorf("copy note: %w", err), w.window)
		return
	}
	w.statusBar.SetText("Note copied")
}
