package automator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"workflow-toolbox/internal/config"
	"workflow-toolbox/internal/logger"
)

// Window is the image automator's single window: settings on the left,
// activity log and preview on the right.
type Window struct {
	window       fyne.Window
	processor    *Processor
	log          logger.Logger
	settingsPath string

	cancelRun context.CancelFunc

	inputEntry   *widget.Entry
	baseEntry    *widget.Entry
	qualitySlide *widget.Slider
	qualityLabel *widget.Label
	formatRadio  *widget.RadioGroup
	mode43Select *widget.Select
	presetSelect *widget.Select

	squareCheck    *widget.Check
	check43        *widget.Check
	enhanceCheck   *widget.Check
	smartCropCheck *widget.Check
	noUpscaleCheck *widget.Check
	skipCheck      *widget.Check

	startBtn   *widget.Button
	cancelBtn  *widget.Button
	previewBtn *widget.Button

	progressBar  *widget.ProgressBar
	statusLabel  *widget.Label
	logLines     []string
	logLabel     *widget.Label
	previewInfo  *widget.Label
	previewStrip *fyne.Container
}

func NewWindow(window fyne.Window, processor *Processor, log logger.Logger, settingsPath string) *Window {
	w := &Window{
		window:       window,
		processor:    processor,
		log:          log,
		settingsPath: settingsPath,
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		log.Warning("automator", "settings unreadable, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
	}

	w.buildLayout()
	w.applySettings(settings)
	return w
}

func (w *Window) buildLayout() {
	w.inputEntry = widget.NewEntry()
	w.inputEntry.SetPlaceHolder("Input folder")
	browseBtn := widget.NewButton("Browse...", w.handleBrowse)
	inputRow := container.NewBorder(nil, nil, widget.NewLabel("Input"), browseBtn, w.inputEntry)

	w.baseEntry = widget.NewEntry()
	w.baseEntry.Validator = func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 400 || n > 4000 {
			return fmt.Errorf("base size must be 400-4000")
		}
		return nil
	}

	w.qualityLabel = widget.NewLabel("80")
	w.qualitySlide = widget.NewSlider(70, 100)
	w.qualitySlide.OnChanged = func(v float64) {
		w.qualityLabel.SetText(strconv.Itoa(int(v)))
	}
	qualityRow := container.NewBorder(nil, nil, widget.NewLabel("JPEG quality"), w.qualityLabel, w.qualitySlide)

	w.formatRadio = widget.NewRadioGroup([]string{"JPG", "PNG"}, nil)
	w.formatRadio.Horizontal = true

	w.mode43Select = widget.NewSelect([]string{"Auto", "Landscape"}, nil)
	w.presetSelect = widget.NewSelect([]string{"Standard", "Adoption"}, nil)

	w.squareCheck = widget.NewCheck("1:1 export", nil)
	w.check43 = widget.NewCheck("4:3 export", nil)
	w.enhanceCheck = widget.NewCheck("Enhance (contrast, color, sharpness)", nil)
	w.smartCropCheck = widget.NewCheck("Smart crop", nil)
	w.noUpscaleCheck = widget.NewCheck("Never upscale", nil)
	w.skipCheck = widget.NewCheck("Skip existing outputs", nil)

	w.startBtn = widget.NewButton("Start", w.handleStart)
	w.startBtn.Importance = widget.HighImportance
	w.previewBtn = widget.NewButton("Preview", w.handlePreview)
	w.cancelBtn = widget.NewButton("Cancel", w.handleCancel)
	w.cancelBtn.Disable()
	buttonRow := container.NewHBox(w.startBtn, w.previewBtn, w.cancelBtn)

	settingsPanel := container.NewVBox(
		inputRow,
		widget.NewSeparator(),
		container.NewBorder(nil, nil, widget.NewLabel("Base size (1:1)"), nil, w.baseEntry),
		qualityRow,
		container.NewBorder(nil, nil, widget.NewLabel("Format"), nil, w.formatRadio),
		container.NewBorder(nil, nil, widget.NewLabel("4:3 mode"), nil, w.mode43Select),
		container.NewBorder(nil, nil, widget.NewLabel("Preset"), nil, w.presetSelect),
		widget.NewSeparator(),
		w.squareCheck,
		w.check43,
		w.enhanceCheck,
		w.smartCropCheck,
		w.noUpscaleCheck,
		w.skipCheck,
		widget.NewSeparator(),
		buttonRow,
	)

	w.progressBar = widget.NewProgressBar()
	w.progressBar.Hide()
	w.statusLabel = widget.NewLabel("Ready")

	w.logLabel = widget.NewLabel("")
	w.logLabel.Wrapping = fyne.TextWrapWord
	logScroll := container.NewVScroll(w.logLabel)
	logScroll.SetMinSize(fyne.NewSize(420, 260))

	w.previewInfo = widget.NewLabel("Pick an input folder and press Preview.")
	w.previewStrip = container.NewHBox()

	activityPanel := container.NewBorder(
		container.NewVBox(widget.NewRichTextFromMarkdown("**Activity**"), w.progressBar),
		container.NewVBox(widget.NewSeparator(), w.previewInfo, w.previewStrip),
		nil, nil,
		logScroll,
	)

	split := container.NewHSplit(container.NewPadded(settingsPanel), container.NewPadded(activityPanel))
	split.SetOffset(0.42)

	content := container.NewBorder(nil, w.statusLabel, nil, nil, split)
	w.window.SetContent(content)
	w.window.Resize(fyne.NewSize(980, 640))
}

func (w *Window) applySettings(s config.Settings) {
	w.inputEntry.SetText(s.InputDir)
	w.baseEntry.SetText(strconv.Itoa(s.BaseSize))
	w.qualitySlide.SetValue(float64(s.Quality))
	w.qualityLabel.SetText(strconv.Itoa(s.Quality))

	if s.Format == "png" {
		w.formatRadio.SetSelected("PNG")
	} else {
		w.formatRadio.SetSelected("JPG")
	}
	if s.Mode43 == "landscape" {
		w.mode43Select.SetSelected("Landscape")
	} else {
		w.mode43Select.SetSelected("Auto")
	}
	if s.Preset == "standard" {
		w.presetSelect.SetSelected("Standard")
	} else {
		w.presetSelect.SetSelected("Adoption")
	}

	w.squareCheck.SetChecked(s.ExportSquare)
	w.check43.SetChecked(s.Export43)
	w.enhanceCheck.SetChecked(s.Enhance)
	w.smartCropCheck.SetChecked(s.SmartCrop)
	w.noUpscaleCheck.SetChecked(s.NoUpscale)
	w.skipCheck.SetChecked(s.SkipExisting)
}

// currentSettings reads the form back into a Settings value.
func (w *Window) currentSettings() (config.Settings, error) {
	base, err := strconv.Atoi(strings.TrimSpace(w.baseEntry.Text))
	if err != nil || base < 400 || base > 4000 {
		return config.Settings{}, fmt.Errorf("base size must be between 400 and 4000")
	}

	s := config.Settings{
		BaseSize:     base,
		Quality:      int(w.qualitySlide.Value),
		Format:       "jpg",
		Mode43:       "auto",
		Preset:       "adoption",
		ExportSquare: w.squareCheck.Checked,
		Export43:     w.check43.Checked,
		Enhance:      w.enhanceCheck.Checked,
		SmartCrop:    w.smartCropCheck.Checked,
		NoUpscale:    w.noUpscaleCheck.Checked,
		SkipExisting: w.skipCheck.Checked,
		InputDir:     strings.TrimSpace(w.inputEntry.Text),
	}
	if w.formatRadio.Selected == "PNG" {
		s.Format = "png"
	}
	if w.mode43Select.Selected == "Landscape" {
		s.Mode43 = "landscape"
	}
	if w.presetSelect.Selected == "Standard" {
		s.Preset = "standard"
	}
	return s, nil
}

func (w *Window) handleBrowse() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, w.window)
			return
		}
		if uri == nil {
			return
		}
		w.inputEntry.SetText(uri.Path())
	}, w.window)
}

func (w *Window) handleStart() {
	settings, err := w.currentSettings()
	if err != nil {
		dialog.ShowError(err, w.window)
		return
	}
	if settings.InputDir == "" {
		dialog.ShowError(fmt.Errorf("pick an input folder first"), w.window)
		return
	}
	if !settings.ExportSquare && !settings.Export43 {
		dialog.ShowError(fmt.Errorf("enable at least one export format"), w.window)
		return
	}

	if err := config.SaveSettings(w.settingsPath, settings); err != nil {
		w.log.Warning("automator", "settings not saved", map[string]interface{}{
			"error": err.Error(),
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancelRun = cancel

	w.startBtn.Disable()
	w.previewBtn.Disable()
	w.cancelBtn.Enable()
	w.progressBar.SetValue(0)
	w.progressBar.Show()
	w.statusLabel.SetText("Processing...")
	w.clearLog()

	callbacks := Callbacks{
		Progress: func(done, total int, file string) {
			fyne.Do(func() {
				w.progressBar.SetValue(float64(done) / float64(total))
				w.statusLabel.SetText(fmt.Sprintf("%d / %d  %s", done, total, file))
			})
		},
		Log: func(line string) {
			fyne.Do(func() {
				w.appendLog(line)
			})
		},
	}

	go func() {
		result, err := w.processor.Run(ctx, settings.InputDir, settings, callbacks)
		cancel()

		fyne.Do(func() {
			w.cancelRun = nil
			w.startBtn.Enable()
			w.previewBtn.Enable()
			w.cancelBtn.Disable()
			w.progressBar.Hide()

			if err != nil {
				w.log.Error("automator", err, nil)
				dialog.ShowError(err, w.window)
				w.statusLabel.SetText("Ready")
				return
			}

			if result.Canceled {
				w.statusLabel.SetText("Canceled")
			} else {
				w.statusLabel.SetText(fmt.Sprintf("Done: %d ok, %d failed, %d skipped", result.Processed, result.Failed, result.Skipped))
			}
		})
	}()
}

func (w *Window) handleCancel() {
	if w.cancelRun != nil {
		w.cancelRun()
		w.appendLog("Cancel requested...")
	}
}

func (w *Window) handlePreview() {
	settings, err := w.currentSettings()
	if err != nil {
		dialog.ShowError(err, w.window)
		return
	}
	if settings.InputDir == "" {
		dialog.ShowError(fmt.Errorf("pick an input folder first"), w.window)
		return
	}

	w.previewBtn.Disable()
	w.statusLabel.SetText("Rendering preview...")

	go func() {
		name, previews, err := w.processor.Preview(settings.InputDir, settings)

		fyne.Do(func() {
			w.previewBtn.Enable()
			w.statusLabel.SetText("Ready")

			if err != nil {
				w.log.Error("automator", err, nil)
				dialog.ShowError(err, w.window)
				return
			}

			w.previewStrip.RemoveAll()
			for _, p := range previews {
				img := canvas.NewImageFromImage(p.Image)
				img.FillMode = canvas.ImageFillContain
				img.SetMinSize(fyne.NewSize(200, 160))
				w.previewStrip.Add(container.NewVBox(widget.NewLabel(p.Tag), img))
			}
			w.previewInfo.SetText("Sample: " + name)
			w.previewStrip.Refresh()
		})
	}()
}

func (w *Window) appendLog(line string) {
	w.logLines = append(w.logLines, line)
	w.logLabel.SetText(strings.Join(w.logLines, "\n"))
}

func (w *Window) clearLog() {
	w.logLines = nil
	w.logLabel.SetText("")
}
