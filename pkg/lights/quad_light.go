package lights

import (
	"math"

	"github.com/lumeray/lumeray/pkg/core"
	"github.com/lumeray/lumeray/pkg/geometry"
)

// QuadLight is an area light backed by an emissive quad. The quad itself
// should also be added to the scene's shapes so BSDF-sampled rays can hit
// it; this wrapper provides the direct-lighting sampling strategy.
type QuadLight struct {
	Quad     *geometry.Quad
	Emission core.Vec3
}

// NewQuadLight creates an area light over the given quad geometry
func NewQuadLight(quad *geometry.Quad, emission core.Vec3) *QuadLight {
	return &QuadLight{Quad: quad, Emission: emission}
}

// Type returns the light category
func (q *QuadLight) Type() core.LightType {
	return core.LightTypeArea
}

// Sample picks a uniform point on the quad and converts the area density
// to a solid-angle density at the shading point
func (q *QuadLight) Sample(point core.Vec3, normal core.Vec3, sample core.Vec2) (core.LightSample, bool) {
	lightPoint := q.Quad.PointAt(sample.X, sample.Y)

	toLight := lightPoint.Subtract(point)
	distanceSquared := toLight.LengthSquared()
	if distanceSquared == 0 {
		return core.LightSample{}, false
	}
	distance := math.Sqrt(distanceSquared)
	direction := toLight.Multiply(1.0 / distance)

	// Emission is one-sided: the sample contributes only if the shading
	// point lies on the emitting side of the quad
	cosLight := direction.Negate().Dot(q.Quad.Normal)
	if cosLight <= 0 {
		return core.LightSample{}, false
	}

	// Solid-angle PDF: r² / (cosθ · area)
	pdf := distanceSquared / (cosLight * q.Quad.Area())

	return core.LightSample{
		Point:     lightPoint,
		Normal:    q.Quad.Normal,
		Direction: direction,
		Distance:  distance,
		Emission:  q.Emission,
		PDF:       pdf,
	}, true
}

// PDF returns the solid-angle density of sampling the given direction,
// found by intersecting the quad along it
func (q *QuadLight) PDF(point core.Vec3, normal core.Vec3, direction core.Vec3) float64 {
	ray := core.NewRay(point, direction)
	hit, ok := q.Quad.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		return 0
	}

	cosLight := direction.Negate().Dot(q.Quad.Normal)
	if cosLight <= 0 {
		return 0
	}

	distanceSquared := hit.Point.Subtract(point).LengthSquared()
	return distanceSquared / (cosLight * q.Quad.Area())
}

// Emit returns zero here; rays that hit the quad shape get emission from
// its emissive material instead
func (q *QuadLight) Emit(ray core.Ray) core.Vec3 {
	return core.Vec3{}
}
