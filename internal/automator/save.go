package automator

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// OutputExt maps a format name to its file extension.
func OutputExt(format string) string {
	if format == "png" {
		return ".png"
	}
	return ".jpg"
}

// SaveMat encodes a BGR mat to path as JPEG or PNG depending on the path
// extension. The write is atomic: a temp file in the target directory is
// renamed into place on success, so a failed save leaves no partial output.
func SaveMat(mat gocv.Mat, path string, quality int) error {
	img, err := MatToImage(mat)
	if err != nil {
		return err
	}
	return SaveImage(img, path, quality)
}

// SaveImage writes an image.Image the same way SaveMat does.
func SaveImage(img image.Image, path string, quality int) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".automator-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpPath := tmp.Name()

	err = encode(tmp, img, filepath.Ext(path), quality)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("encode %q: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize %q: %w", path, err)
	}
	return nil
}

func encode(f *os.File, img image.Image, ext string, quality int) error {
	switch ext {
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		if quality < 1 || quality > 100 {
			quality = 80
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		return fmt.Errorf("unsupported output extension %q", ext)
	}
}
