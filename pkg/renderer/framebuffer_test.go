package renderer

import (
	"math"
	"testing"

	"github.com/lumeray/lumeray/pkg/core"
)

func TestPixelStats_MeanColor(t *testing.T) {
	ps := &PixelStats{}
	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))

	mean := ps.Color()
	if mean.Subtract(core.NewVec3(0.5, 0.5, 0)).Length() > 1e-9 {
		t.Errorf("Expected mean (0.5,0.5,0), got %v", mean)
	}
	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
}

func TestPixelStats_EmptyPixel(t *testing.T) {
	ps := &PixelStats{}
	if ps.Color() != (core.Vec3{}) {
		t.Error("Expected black for unsampled pixel")
	}
	if ps.Variance() != 0 {
		t.Error("Expected zero variance for unsampled pixel")
	}
}

func TestPixelStats_Variance(t *testing.T) {
	// Identical samples have zero variance
	constant := &PixelStats{}
	for i := 0; i < 10; i++ {
		constant.AddSample(core.NewVec3(0.5, 0.5, 0.5))
	}
	if constant.Variance() > 1e-12 {
		t.Errorf("Expected zero variance for constant samples, got %g", constant.Variance())
	}

	// Alternating black and white has luminance variance 0.25
	noisy := &PixelStats{}
	for i := 0; i < 10; i++ {
		if i%2 == 0 {
			noisy.AddSample(core.NewVec3(1, 1, 1))
		} else {
			noisy.AddSample(core.Vec3{})
		}
	}
	if math.Abs(noisy.Variance()-0.25) > 1e-9 {
		t.Errorf("Expected variance 0.25, got %f", noisy.Variance())
	}
}

func TestFramebuffer_PixelAccess(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	if fb.Width() != 4 || fb.Height() != 3 {
		t.Fatalf("Expected 4x3 framebuffer, got %dx%d", fb.Width(), fb.Height())
	}

	fb.Pixel(2, 1).AddSample(core.NewVec3(1, 0, 0))
	if fb.Color(2, 1) != core.NewVec3(1, 0, 0) {
		t.Error("Expected written pixel to read back")
	}
	if fb.Color(1, 2) != (core.Vec3{}) {
		t.Error("Expected untouched pixel to stay black")
	}
}

func TestFramebuffer_ToImage(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Pixel(0, 0).AddSample(core.NewVec3(1, 0, 0))
	fb.Pixel(1, 0).AddSample(core.NewVec3(0.25, 0.25, 0.25))

	img := fb.ToImage(2.0)
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("Unexpected image bounds: %v", img.Bounds())
	}

	red := img.RGBAAt(0, 0)
	if red.R != 255 || red.G != 0 || red.B != 0 || red.A != 255 {
		t.Errorf("Expected pure red, got %v", red)
	}

	// Gamma 2.0 maps 0.25 to 0.5, so 128 after rounding
	gray := img.RGBAAt(1, 0)
	if gray.R != 128 || gray.G != 128 || gray.B != 128 {
		t.Errorf("Expected mid gray after gamma, got %v", gray)
	}
}

func TestFramebuffer_ToImageClampsHDR(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Pixel(0, 0).AddSample(core.NewVec3(10, 10, 10))

	c := fb.ToImage(2.0).RGBAAt(0, 0)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("Expected clamped white, got %v", c)
	}
}
