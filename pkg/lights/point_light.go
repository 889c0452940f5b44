package lights

import (
	"github.com/lumeray/lumeray/pkg/core"
)

// PointLight is a delta light emitting uniformly from a single point.
// Intensity is radiant intensity; received radiance falls off with the
// squared distance.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Type returns the light category
func (p *PointLight) Type() core.LightType {
	return core.LightTypePoint
}

// Sample returns the single possible direction to the light. Delta lights
// sample with PDF 1; the emission already folds in the 1/r² falloff.
func (p *PointLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) (core.LightSample, bool) {
	toLight := p.Position.Subtract(point)
	distanceSquared := toLight.LengthSquared()
	if distanceSquared == 0 {
		return core.LightSample{}, false
	}
	distance := toLight.Length()
	direction := toLight.Multiply(1.0 / distance)

	return core.LightSample{
		Point:     p.Position,
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  distance,
		Emission:  p.Intensity.Multiply(1.0 / distanceSquared),
		PDF:       1.0,
	}, true
}

// PDF returns zero: BSDF sampling can never hit a point light
func (p *PointLight) PDF(point core.Vec3, normal core.Vec3, direction core.Vec3) float64 {
	return 0
}

// Emit returns zero; point lights have no surface for rays to hit
func (p *PointLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}
