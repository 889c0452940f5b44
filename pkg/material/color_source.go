package material

import (
	"math"

	"github.com/lumeray/lumeray/pkg/core"
)

// ColorSource provides a color for a surface point, allowing materials to
// be either solid-colored or textured
type ColorSource interface {
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor is a ColorSource that returns a constant color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the constant color
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerColor alternates two colors in a 3D checker pattern
type CheckerColor struct {
	Scale  float64 // World-space size of one checker cell
	Color1 core.Vec3
	Color2 core.Vec3
}

// NewCheckerColor creates a checker pattern color source
func NewCheckerColor(scale float64, color1, color2 core.Vec3) *CheckerColor {
	return &CheckerColor{Scale: scale, Color1: color1, Color2: color2}
}

// Evaluate returns one of the two colors based on the world position
func (c *CheckerColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	inv := 1.0 / c.Scale
	sum := int(math.Floor(point.X*inv)) + int(math.Floor(point.Y*inv)) + int(math.Floor(point.Z*inv))
	if sum%2 == 0 {
		return c.Color1
	}
	return c.Color2
}
