package geometry

import (
	"fmt"
	"math"

	"github.com/lumeray/lumeray/pkg/core"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner   core.Vec3     // One corner of the quad
	U        core.Vec3     // First edge vector
	V        core.Vec3     // Second edge vector
	Normal   core.Vec3     // Unit normal (computed from U × V)
	Material core.Material // Material of the quad
	d        float64       // Plane equation constant: normal · corner
	w        core.Vec3     // Cached vector for barycentric coordinates
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, material core.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	q := &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: material,
		d:        normal.Dot(corner),
	}
	if denom := normal.Dot(cross); denom != 0 {
		q.w = normal.Multiply(1.0 / denom)
	}
	return q
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}

// PointAt returns the point at parametric coordinates (a, b) in [0,1]²
func (q *Quad) PointAt(a, b float64) core.Vec3 {
	return q.Corner.Add(q.U.Multiply(a)).Add(q.V.Multiply(b))
}

// Hit tests if a ray intersects with the quad
func (q *Quad) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(q.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-12 {
		return nil, false
	}

	t := (q.d - ray.Origin.Dot(q.Normal)) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	// Check the hit point lies within the quad via barycentric coordinates
	hitPoint := ray.At(t)
	hitVector := hitPoint.Subtract(q.Corner)
	alpha := q.w.Dot(hitVector.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(hitVector))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	hit := &core.HitRecord{
		T:        t,
		Point:    hitPoint,
		UV:       core.NewVec2(alpha, beta),
		Material: q.Material,
	}
	hit.SetFaceNormal(ray, q.Normal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this quad, padded
// slightly so axis-aligned quads don't produce a zero-thickness slab
func (q *Quad) BoundingBox() core.AABB {
	box := core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
	return box.Expand(1e-8)
}

// Validate reports degenerate quad configurations
func (q *Quad) Validate() error {
	if !q.Corner.IsFinite() || !q.U.IsFinite() || !q.V.IsFinite() {
		return fmt.Errorf("quad has non-finite geometry")
	}
	if q.U.Cross(q.V).LengthSquared() < 1e-24 {
		return fmt.Errorf("quad edge vectors are parallel or zero")
	}
	return nil
}
