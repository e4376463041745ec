package automator

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"workflow-toolbox/internal/config"
	"workflow-toolbox/internal/logger"
)

const (
	outputDirName    = "Optimized"
	squareDirName    = "Square"
	landscapeDirName = "Landscape"
)

// Callbacks deliver batch feedback to the UI. All of them may be nil.
// They are invoked from the worker goroutine; the UI layer wraps them in
// fyne.Do.
type Callbacks struct {
	Progress func(done, total int, file string)
	Log      func(line string)
}

func (cb Callbacks) progress(done, total int, file string) {
	if cb.Progress != nil {
		cb.Progress(done, total, file)
	}
}

func (cb Callbacks) logf(format string, args ...interface{}) {
	if cb.Log != nil {
		cb.Log(fmt.Sprintf(format, args...))
	}
}

// Result summarizes one batch run.
type Result struct {
	Total     int
	Processed int
	Failed    int
	Skipped   int // outputs skipped because they already existed
	Canceled  bool
	OutputDir string
}

// Processor runs image batches.
type Processor struct {
	log logger.Logger
}

func NewProcessor(log logger.Logger) *Processor {
	return &Processor{log: log}
}

// Run processes every image under inputDir according to the settings.
// A file that cannot be read or decoded is reported and skipped; it never
// stops the rest of the batch. Cancellation is honored between files.
func (p *Processor) Run(ctx context.Context, inputDir string, s config.Settings, cb Callbacks) (Result, error) {
	if !s.ExportSquare && !s.Export43 {
		return Result{}, fmt.Errorf("no export format enabled")
	}

	outputRoot := filepath.Join(inputDir, outputDirName)

	files, err := p.listInputs(inputDir, outputRoot)
	if err != nil {
		return Result{}, err
	}
	if len(files) == 0 {
		return Result{}, fmt.Errorf("no images found in %q", inputDir)
	}

	result := Result{Total: len(files), OutputDir: outputRoot}
	cb.logf("Found %d images", len(files))

	opts := PresetOptions(s.Preset)

	for idx, file := range files {
		if ctx.Err() != nil {
			result.Canceled = true
			cb.logf("Canceled after %d of %d files", idx, len(files))
			break
		}

		skipped, err := p.processFile(idx+1, file, outputRoot, s, opts)
		result.Skipped += skipped
		if err != nil {
			result.Failed++
			cb.logf("[skip] %s: %v", filepath.Base(file), err)
			p.log.Warning("automator", "file skipped", map[string]interface{}{
				"file":  file,
				"error": err.Error(),
			})
		} else {
			result.Processed++
		}

		cb.progress(idx+1, len(files), filepath.Base(file))
	}

	cb.logf("Done: %d ok, %d failed, %d outputs skipped", result.Processed, result.Failed, result.Skipped)
	p.log.Info("automator", "batch finished", map[string]interface{}{
		"total":     result.Total,
		"processed": result.Processed,
		"failed":    result.Failed,
		"skipped":   result.Skipped,
		"canceled":  result.Canceled,
	})
	return result, nil
}

// listInputs scans the input tree, excluding outputs from earlier runs.
func (p *Processor) listInputs(inputDir, outputRoot string) ([]string, error) {
	all, err := ListImages(inputDir)
	if err != nil {
		return nil, err
	}
	prefix := outputRoot + string(filepath.Separator)
	files := all[:0]
	for _, f := range all {
		if !strings.HasPrefix(f, prefix) {
			files = append(files, f)
		}
	}
	return files, nil
}

// processFile produces all enabled exports for one source image. Returns
// the number of outputs skipped because they already existed.
func (p *Processor) processFile(index int, file, outputRoot string, s config.Settings, opts EnhanceOptions) (int, error) {
	src, err := DecodeFile(file)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	working := src.Mat.Clone()
	if s.Enhance {
		enhanced := Enhance(working, opts)
		working.Close()
		working = enhanced
	}
	defer working.Close()

	skipped := 0

	if s.ExportSquare {
		outDir := filepath.Join(outputRoot, squareDirName)
		outName := OutputName(index, file, "1x1")
		n, err := p.exportRatio(working, 1.0, s.BaseSize, s.BaseSize, outDir, outName, s)
		if err != nil {
			return skipped, err
		}
		skipped += n
	}

	if s.Export43 {
		aspect := Aspect43(working.Cols(), working.Rows(), s.Mode43)
		w, h := dims43(s.BaseSize, aspect)
		outDir := filepath.Join(outputRoot, landscapeDirName)
		outName := OutputName(index, file, "4x3")
		n, err := p.exportRatio(working, aspect, w, h, outDir, outName, s)
		if err != nil {
			return skipped, err
		}
		skipped += n
	}

	return skipped, nil
}

// exportRatio crops, resizes and saves one target ratio. Returns 1 when
// the output already existed and skip-existing is on.
func (p *Processor) exportRatio(mat gocv.Mat, aspect float64, targetW, targetH int, outDir, outName string, s config.Settings) (int, error) {
	if s.SkipExisting && outputExists(outDir, outName) {
		return 1, nil
	}

	rect, err := cropRect(mat, aspect, s.SmartCrop)
	if err != nil {
		return 0, err
	}

	cropped, err := CropMat(mat, rect)
	if err != nil {
		return 0, err
	}
	defer cropped.Close()

	resized := ResizeExact(cropped, targetW, targetH, s.NoUpscale)
	defer resized.Close()

	path := filepath.Join(outDir, outName+OutputExt(s.Format))
	return 0, SaveMat(resized, path, s.Quality)
}

func cropRect(mat gocv.Mat, aspect float64, smart bool) (image.Rectangle, error) {
	if smart {
		return SmartCropRect(mat, aspect)
	}
	return CenterCropRect(mat.Cols(), mat.Rows(), aspect), nil
}

// outputExists checks for the output under either supported encoding so a
// format switch does not duplicate earlier exports.
func outputExists(dir, name string) bool {
	for _, ext := range []string{".jpg", ".png"} {
		if _, err := os.Stat(filepath.Join(dir, name+ext)); err == nil {
			return true
		}
	}
	return false
}

// dims43 derives exact 4:3 output dimensions from the square base size.
func dims43(base int, aspect float64) (int, int) {
	long := int(math.Round(float64(base) * 4.0 / 3.0))
	if aspect >= 1 {
		return long, base
	}
	return base, long
}

// PreviewImage holds one rendered preview crop.
type PreviewImage struct {
	Tag   string
	Image image.Image
}

// Preview processes the first image under inputDir in memory with the
// given settings and returns the enabled crops, downscaled for display.
func (p *Processor) Preview(inputDir string, s config.Settings) (string, []PreviewImage, error) {
	outputRoot := filepath.Join(inputDir, outputDirName)
	files, err := p.listInputs(inputDir, outputRoot)
	if err != nil {
		return "", nil, err
	}
	if len(files) == 0 {
		return "", nil, fmt.Errorf("no images found in %q", inputDir)
	}

	file := files[0]
	src, err := DecodeFile(file)
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	working := src.Mat.Clone()
	if s.Enhance {
		enhanced := Enhance(working, PresetOptions(s.Preset))
		working.Close()
		working = enhanced
	}
	defer working.Close()

	var previews []PreviewImage

	if s.ExportSquare {
		img, err := p.previewCrop(working, 1.0, 240, 240, s.SmartCrop)
		if err != nil {
			return "", nil, err
		}
		previews = append(previews, PreviewImage{Tag: "1:1", Image: img})
	}

	if s.Export43 {
		aspect := Aspect43(working.Cols(), working.Rows(), s.Mode43)
		w, h := 320, 240
		if aspect < 1 {
			w, h = 240, 320
		}
		img, err := p.previewCrop(working, aspect, w, h, s.SmartCrop)
		if err != nil {
			return "", nil, err
		}
		previews = append(previews, PreviewImage{Tag: "4:3", Image: img})
	}

	return filepath.Base(file), previews, nil
}

func (p *Processor) previewCrop(mat gocv.Mat, aspect float64, w, h int, smart bool) (image.Image, error) {
	rect, err := cropRect(mat, aspect, smart)
	if err != nil {
		return nil, err
	}

	cropped, err := CropMat(mat, rect)
	if err != nil {
		return nil, err
	}
	defer cropped.Close()

	thumb := ResizeExact(cropped, w, h, false)
	defer thumb.Close()

	return MatToImage(thumb)
}
