package automator

import (
	"bytes"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	// Register decoders for every extension the scanner accepts. The
	// standard library only covers jpeg/png/gif on its own.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// SourceImage is one decoded input ready for processing.
type SourceImage struct {
	Mat    gocv.Mat
	Width  int
	Height int
	Format string
}

func (s *SourceImage) Close() {
	s.Mat.Close()
}

// DecodeFile reads and decodes a source image into a BGR Mat. The header
// is checked with the registered Go decoders first so an unsupported or
// corrupt file fails with a useful error instead of an opaque OpenCV one.
func DecodeFile(path string) (*SourceImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image %q: %w", path, err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("decode %q: empty image", path)
	}

	return &SourceImage{
		Mat:    mat,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}

// MatToImage converts a BGR Mat to an image.Image for encoding or display.
func MatToImage(mat gocv.Mat) (image.Image, error) {
	if mat.Empty() {
		return nil, fmt.Errorf("mat is empty")
	}
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("mat to image: %w", err)
	}
	return img, nil
}
