package automator

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// EnhanceOptions are multiplicative adjustment factors; 1.0 is a no-op.
type EnhanceOptions struct {
	Color      float64
	Contrast   float64
	Brightness float64
	Sharpness  float64
}

// Preset names map to fixed enhancement factors. The adoption preset is a
// clear, friendly look for pet adoption listings; standard stays close to
// neutral.
func PresetOptions(preset string) EnhanceOptions {
	if preset == "adoption" {
		return EnhanceOptions{Color: 1.12, Contrast: 1.08, Brightness: 1.06, Sharpness: 1.05}
	}
	return EnhanceOptions{Color: 1.04, Contrast: 1.02, Brightness: 1.02, Sharpness: 1.00}
}

// Enhance applies auto-contrast, saturation, contrast, brightness and an
// unsharp mask to a BGR mat. The result is a new mat owned by the caller.
func Enhance(src gocv.Mat, opts EnhanceOptions) gocv.Mat {
	stretched := autoContrast(src)

	saturated := scaleSaturation(stretched, opts.Color)
	stretched.Close()

	adjusted := scaleContrastBrightness(saturated, opts.Contrast, opts.Brightness)
	saturated.Close()

	sharpened := unsharpMask(adjusted, opts.Sharpness)
	adjusted.Close()

	return sharpened
}

// autoContrast linearly stretches intensity so the darkest and brightest
// pixels span the full range. Flat images are returned unchanged.
func autoContrast(src gocv.Mat) gocv.Mat {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	minVal, maxVal, _, _ := gocv.MinMaxLoc(gray)
	if float64(maxVal)-float64(minVal) < 1 {
		return src.Clone()
	}

	alpha := 255.0 / (float64(maxVal) - float64(minVal))
	beta := -float64(minVal) * alpha

	dst := gocv.NewMat()
	gocv.ConvertScaleAbs(src, &dst, alpha, beta)
	return dst
}

// scaleSaturation multiplies the HSV saturation channel by factor.
func scaleSaturation(src gocv.Mat, factor float64) gocv.Mat {
	if math.Abs(factor-1.0) < 1e-3 {
		return src.Clone()
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)

	channels := gocv.Split(hsv)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()

	scaled := gocv.NewMat()
	defer scaled.Close()
	gocv.ConvertScaleAbs(channels[1], &scaled, factor, 0)

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge([]gocv.Mat{channels[0], scaled, channels[2]}, &merged)

	dst := gocv.NewMat()
	gocv.CvtColor(merged, &dst, gocv.ColorHSVToBGR)
	return dst
}

// scaleContrastBrightness applies contrast around the image mean followed
// by a brightness multiply, folded into one linear transform.
func scaleContrastBrightness(src gocv.Mat, contrast, brightness float64) gocv.Mat {
	if math.Abs(contrast-1.0) < 1e-3 && math.Abs(brightness-1.0) < 1e-3 {
		return src.Clone()
	}

	mean := src.Mean()
	gray := 0.299*mean.Val3 + 0.587*mean.Val2 + 0.114*mean.Val1

	alpha := contrast * brightness
	beta := gray * (1 - contrast) * brightness

	dst := gocv.NewMat()
	gocv.ConvertScaleAbs(src, &dst, alpha, beta)
	return dst
}

// unsharpMask sharpens by subtracting a Gaussian blur: a fixed 125% mask
// at radius 1.1, shifted up or down by the sharpness factor.
func unsharpMask(src gocv.Mat, sharpness float64) gocv.Mat {
	amount := 1.25 + (sharpness - 1.0)
	if amount <= 0 {
		return src.Clone()
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(src, &blurred, image.Pt(0, 0), 1.1, 1.1, gocv.BorderDefault)

	dst := gocv.NewMat()
	gocv.AddWeighted(src, 1+amount, blurred, -amount, 0, &dst)
	return dst
}
