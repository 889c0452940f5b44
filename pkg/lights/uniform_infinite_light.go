package lights

import (
	"math"

	"github.com/lumeray/lumeray/pkg/core"
)

// UniformInfiniteLight surrounds the scene with constant radiance arriving
// from every direction, like an overcast sky
type UniformInfiniteLight struct {
	Emission core.Vec3
}

// NewUniformInfiniteLight creates a new uniform environment light
func NewUniformInfiniteLight(emission core.Vec3) *UniformInfiniteLight {
	return &UniformInfiniteLight{Emission: emission}
}

// Type returns the light category
func (u *UniformInfiniteLight) Type() core.LightType {
	return core.LightTypeInfinite
}

// Sample draws a cosine-weighted direction in the visible hemisphere; for
// constant emission that is the optimal importance-sampling distribution
func (u *UniformInfiniteLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) (core.LightSample, bool) {
	direction := core.SampleCosineHemisphere(normal, sample)
	cosTheta := direction.Dot(normal)
	if cosTheta <= 0 {
		return core.LightSample{}, false
	}

	return core.LightSample{
		Point:     point.Add(direction.Multiply(1e12)),
		Normal:    direction.Negate(),
		Direction: direction,
		Distance:  math.Inf(1),
		Emission:  u.Emission,
		PDF:       cosTheta / math.Pi,
	}, true
}

// PDF returns the cosine-weighted density for the given direction
func (u *UniformInfiniteLight) PDF(point core.Vec3, normal core.Vec3, direction core.Vec3) float64 {
	cosTheta := direction.Dot(normal)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

// Emit returns the constant radiance for any escaping ray
func (u *UniformInfiniteLight) Emit(ray core.Ray) core.Vec3 {
	return u.Emission
}
