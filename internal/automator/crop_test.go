package automator

import (
	"image"
	"testing"
)

func TestFitAspect(t *testing.T) {
	tests := []struct {
		name   string
		srcW   int
		srcH   int
		aspect float64
		wantW  int
		wantH  int
	}{
		{name: "wide source to square", srcW: 4000, srcH: 3000, aspect: 1.0, wantW: 3000, wantH: 3000},
		{name: "tall source to square", srcW: 3000, srcH: 4000, aspect: 1.0, wantW: 3000, wantH: 3000},
		{name: "already square", srcW: 1000, srcH: 1000, aspect: 1.0, wantW: 1000, wantH: 1000},
		{name: "wide source to 4:3", srcW: 4000, srcH: 3000, aspect: 4.0 / 3.0, wantW: 4000, wantH: 3000},
		{name: "ultrawide source to 4:3", srcW: 6000, srcH: 3000, aspect: 4.0 / 3.0, wantW: 4000, wantH: 3000},
		{name: "tall source to 3:4", srcW: 3000, srcH: 6000, aspect: 3.0 / 4.0, wantW: 3000, wantH: 4000},
		{name: "tiny source untouched", srcW: 1, srcH: 1, aspect: 1.0, wantW: 1, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitAspect(tt.srcW, tt.srcH, tt.aspect)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitAspect(%d, %d, %.3f) = %dx%d, want %dx%d",
					tt.srcW, tt.srcH, tt.aspect, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCenterCropRect(t *testing.T) {
	// 4000x3000 at 1:1 crops to a centered 3000x3000.
	got := CenterCropRect(4000, 3000, 1.0)
	want := image.Rect(500, 0, 3500, 3000)
	if got != want {
		t.Errorf("CenterCropRect(4000, 3000, 1.0) = %v, want %v", got, want)
	}

	got = CenterCropRect(3000, 4000, 1.0)
	want = image.Rect(0, 500, 3000, 3500)
	if got != want {
		t.Errorf("CenterCropRect(3000, 4000, 1.0) = %v, want %v", got, want)
	}
}

func TestAspect43(t *testing.T) {
	tests := []struct {
		name string
		srcW int
		srcH int
		mode string
		want float64
	}{
		{name: "landscape source auto", srcW: 400, srcH: 300, mode: "auto", want: 4.0 / 3.0},
		{name: "portrait source auto", srcW: 300, srcH: 400, mode: "auto", want: 3.0 / 4.0},
		{name: "portrait source forced landscape", srcW: 300, srcH: 400, mode: "landscape", want: 4.0 / 3.0},
		{name: "square source auto", srcW: 300, srcH: 300, mode: "auto", want: 4.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aspect43(tt.srcW, tt.srcH, tt.mode); got != tt.want {
				t.Errorf("Aspect43(%d, %d, %q) = %f, want %f", tt.srcW, tt.srcH, tt.mode, got, tt.want)
			}
		})
	}
}

func TestGridPositions(t *testing.T) {
	zero := gridPositions(0)
	if len(zero) != 1 || zero[0] != 0 {
		t.Errorf("gridPositions(0) = %v, want [0]", zero)
	}

	spread := gridPositions(170)
	if len(spread) != smartCropGrid {
		t.Fatalf("gridPositions(170) has %d positions, want %d", len(spread), smartCropGrid)
	}
	if spread[0] != 0 || spread[len(spread)-1] != 170 {
		t.Errorf("gridPositions(170) should span [0, 170], got first=%d last=%d", spread[0], spread[len(spread)-1])
	}
	for i := 1; i < len(spread); i++ {
		if spread[i] < spread[i-1] {
			t.Errorf("gridPositions not monotonic at %d: %v", i, spread)
		}
	}
}

func TestDims43(t *testing.T) {
	w, h := dims43(1080, 4.0/3.0)
	if w != 1440 || h != 1080 {
		t.Errorf("dims43 landscape = %dx%d, want 1440x1080", w, h)
	}

	w, h = dims43(1080, 3.0/4.0)
	if w != 1080 || h != 1440 {
		t.Errorf("dims43 portrait = %dx%d, want 1080x1440", w, h)
	}
}
