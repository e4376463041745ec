package automator

import (
	"crypto/md5"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// imageExts is the set of raster formats the automator accepts.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// ListImages walks inputDir recursively and returns all image files in a
// stable order. Output directories from earlier runs are not skipped here;
// the caller points the walk at the raw input tree.
func ListImages(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if imageExts[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", inputDir, err)
	}
	sort.Strings(files)
	return files, nil
}

var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

const maxStemLen = 30

// SafeName sanitizes a filename stem and appends a short hash of the
// original so truncated names stay unique.
func SafeName(stem string) string {
	cleaned := unsafeChars.ReplaceAllString(stem, "")
	cleaned = strings.Trim(cleaned, " .")
	if cleaned == "" {
		cleaned = "image"
	}
	if len(cleaned) > maxStemLen {
		cleaned = cleaned[:maxStemLen]
	}
	cleaned = strings.TrimRight(cleaned, " ._-")

	sum := md5.Sum([]byte(stem))
	return fmt.Sprintf("%s_%x", cleaned, sum[:3])
}

// OutputName builds the output filename (without extension) for the n-th
// file of a batch and a ratio tag like "1x1" or "4x3".
func OutputName(index int, sourcePath, ratioTag string) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return fmt.Sprintf("%04d_%s_%s", index, SafeName(stem), ratioTag)
}
