package automator

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// FitAspect returns the largest w x h crop size matching targetAspect that
// fits inside an srcW x srcH image.
func FitAspect(srcW, srcH int, targetAspect float64) (int, int) {
	if srcW < 2 || srcH < 2 {
		return srcW, srcH
	}

	current := float64(srcW) / float64(srcH)
	var w, h int
	if current >= targetAspect {
		h = srcH
		w = int(math.Round(float64(srcH) * targetAspect))
	} else {
		w = srcW
		h = int(math.Round(float64(srcW) / targetAspect))
	}

	w = clampInt(w, 2, srcW)
	h = clampInt(h, 2, srcH)
	return w, h
}

// CenterCropRect returns the centered crop rectangle for targetAspect.
func CenterCropRect(srcW, srcH int, targetAspect float64) image.Rectangle {
	w, h := FitAspect(srcW, srcH, targetAspect)
	x0 := (srcW - w) / 2
	y0 := (srcH - h) / 2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// Aspect43 picks the 4:3 target aspect. In "landscape" mode it is always
// 4/3; in "auto" mode portrait sources get 3/4 instead.
func Aspect43(srcW, srcH int, mode string) float64 {
	if mode == "landscape" || srcW >= srcH {
		return 4.0 / 3.0
	}
	return 3.0 / 4.0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// smartCropMaxSide bounds the working resolution of the energy search.
const smartCropMaxSide = 360

// smartCropGrid is the number of candidate positions per axis.
const smartCropGrid = 18

// SmartCropRect finds the crop window of targetAspect with the highest
// edge energy, with a slight bias toward the image center. Falls back to
// the centered rect when the search degenerates.
func SmartCropRect(mat gocv.Mat, targetAspect float64) (image.Rectangle, error) {
	srcW := mat.Cols()
	srcH := mat.Rows()
	if srcW < 2 || srcH < 2 {
		return image.Rect(0, 0, srcW, srcH), nil
	}

	cropW, cropH := FitAspect(srcW, srcH, targetAspect)
	if cropW >= srcW && cropH >= srcH {
		return image.Rect(0, 0, srcW, srcH), nil
	}

	// Work on a downscaled grayscale copy.
	scale := math.Min(1.0, float64(smartCropMaxSide)/float64(max(srcW, srcH)))
	sw := max(2, int(math.Round(float64(srcW)*scale)))
	sh := max(2, int(math.Round(float64(srcH)*scale)))

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(gray, &small, image.Pt(sw, sh), 0, 0, gocv.InterpolationArea)

	energy, err := edgeEnergy(small)
	if err != nil {
		return CenterCropRect(srcW, srcH, targetAspect), nil
	}
	defer energy.Close()

	sum := gocv.NewMat()
	sqsum := gocv.NewMat()
	tilted := gocv.NewMat()
	defer sum.Close()
	defer sqsum.Close()
	defer tilted.Close()
	gocv.Integral(energy, &sum, &sqsum, &tilted)

	cw := clampInt(int(math.Round(float64(cropW)*scale)), 2, sw)
	ch := clampInt(int(math.Round(float64(cropH)*scale)), 2, sh)
	if cw == sw && ch == sh {
		return CenterCropRect(srcW, srcH, targetAspect), nil
	}

	xs := gridPositions(sw - cw)
	ys := gridPositions(sh - ch)

	cx := float64(sw-cw) / 2
	cy := float64(sh-ch) / 2

	bestScore := math.Inf(-1)
	bestX, bestY := 0, 0
	for _, y0 := range ys {
		for _, x0 := range xs {
			score := rectSum(sum, x0, y0, cw, ch)
			dist := math.Hypot(float64(x0)-cx, float64(y0)-cy)
			score -= dist * 0.12
			if score > bestScore {
				bestScore = score
				bestX, bestY = x0, y0
			}
		}
	}

	x0 := clampInt(int(math.Round(float64(bestX)/scale)), 0, srcW-cropW)
	y0 := clampInt(int(math.Round(float64(bestY)/scale)), 0, srcH-cropH)
	return image.Rect(x0, y0, x0+cropW, y0+cropH), nil
}

// edgeEnergy returns the 8-bit Sobel gradient magnitude of a grayscale Mat.
func edgeEnergy(gray gocv.Mat) (gocv.Mat, error) {
	gradX := gocv.NewMat()
	gradY := gocv.NewMat()
	defer gradX.Close()
	defer gradY.Close()

	gocv.Sobel(gray, &gradX, gocv.MatTypeCV16S, 1, 0, 3, 1, 0, gocv.BorderDefault)
	gocv.Sobel(gray, &gradY, gocv.MatTypeCV16S, 0, 1, 3, 1, 0, gocv.BorderDefault)

	absX := gocv.NewMat()
	absY := gocv.NewMat()
	defer absX.Close()
	defer absY.Close()
	gocv.ConvertScaleAbs(gradX, &absX, 1, 0)
	gocv.ConvertScaleAbs(gradY, &absY, 1, 0)

	energy := gocv.NewMat()
	gocv.AddWeighted(absX, 0.5, absY, 0.5, 0, &energy)
	if energy.Empty() {
		energy.Close()
		return gocv.NewMat(), fmt.Errorf("edge energy computation produced empty mat")
	}
	return energy, nil
}

// rectSum reads a window sum from an integral image (size (h+1)x(w+1)).
func rectSum(sum gocv.Mat, x, y, w, h int) float64 {
	a := sum.GetDoubleAt(y+h, x+w)
	b := sum.GetDoubleAt(y, x+w)
	c := sum.GetDoubleAt(y+h, x)
	d := sum.GetDoubleAt(y, x)
	return a - b - c + d
}

// gridPositions spreads candidate offsets evenly across [0, span].
func gridPositions(span int) []int {
	if span <= 0 {
		return []int{0}
	}
	positions := make([]int, 0, smartCropGrid)
	for i := 0; i < smartCropGrid; i++ {
		positions = append(positions, int(math.Round(float64(i)*float64(span)/float64(smartCropGrid-1))))
	}
	return positions
}

// CropMat extracts rect from mat as an owned copy.
func CropMat(mat gocv.Mat, rect image.Rectangle) (gocv.Mat, error) {
	bounds := image.Rect(0, 0, mat.Cols(), mat.Rows())
	rect = rect.Intersect(bounds)
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return gocv.NewMat(), fmt.Errorf("invalid crop rect %v for %dx%d image", rect, mat.Cols(), mat.Rows())
	}

	region := mat.Region(rect)
	defer region.Close()
	return region.Clone(), nil
}

// ResizeExact scales mat to exactly w x h, using area interpolation when
// shrinking and cubic when growing. With noUpscale set, a source smaller
// than the target in either dimension is returned unscaled.
func ResizeExact(mat gocv.Mat, w, h int, noUpscale bool) gocv.Mat {
	if noUpscale && (mat.Cols() < w || mat.Rows() < h) {
		return mat.Clone()
	}

	interp := gocv.InterpolationArea
	if w > mat.Cols() || h > mat.Rows() {
		interp = gocv.InterpolationCubic
	}

	dst := gocv.NewMat()
	gocv.Resize(mat, &dst, image.Pt(w, h), 0, 0, interp)
	return dst
}
