package renderer

import (
	"image"
	"image/color"

	"github.com/lumeray/lumeray/pkg/core"
)

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Vec3 // Accumulated linear radiance
	LuminanceAccum   float64   // Luminance accumulator for convergence checks
	LuminanceSqAccum float64   // Luminance squared for variance estimates
	SampleCount      int       // Number of samples taken
}

// AddSample adds a new radiance sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// Color returns the current mean radiance for this pixel
func (ps *PixelStats) Color() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// Variance returns the luminance variance of the samples taken so far
func (ps *PixelStats) Variance() float64 {
	if ps.SampleCount == 0 {
		return 0
	}
	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := meanSq - mean*mean
	if variance < 0 {
		return 0
	}
	return variance
}

// Framebuffer accumulates per-pixel radiance and sample counts in linear
// color space. The render scheduler assigns each tile's rectangle to
// exactly one worker, so pixel access needs no locking.
type Framebuffer struct {
	width, height int
	pixels        []PixelStats
}

// NewFramebuffer creates a framebuffer of the given dimensions
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]PixelStats, width*height),
	}
}

// Width returns the framebuffer width in pixels
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the framebuffer height in pixels
func (fb *Framebuffer) Height() int { return fb.height }

// Pixel returns the stats accumulator for pixel (x, y)
func (fb *Framebuffer) Pixel(x, y int) *PixelStats {
	return &fb.pixels[y*fb.width+x]
}

// Color returns the mean radiance of pixel (x, y)
func (fb *Framebuffer) Color(x, y int) core.Vec3 {
	return fb.Pixel(x, y).Color()
}

// ToImage converts accumulated radiance to an 8-bit RGBA image with the
// given gamma. This is the output boundary: everything upstream stays in
// linear space.
func (fb *Framebuffer) ToImage(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.Color(x, y).Clamp(0, 1).GammaCorrect(gamma)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(c.X*255.0 + 0.5),
				G: uint8(c.Y*255.0 + 0.5),
				B: uint8(c.Z*255.0 + 0.5),
				A: 255,
			})
		}
	}
	return img
}
