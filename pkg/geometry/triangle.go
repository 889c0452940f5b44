package geometry

import (
	"fmt"

	"github.com/lumeray/lumeray/pkg/core"
)

// Triangle represents a triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   core.Material
	normal     core.Vec3 // Geometric normal from winding order
}

// NewTriangle creates a new triangle with counter-clockwise winding
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)
	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		normal:   edge1.Cross(edge2).Normalize(),
	}
}

// Hit tests ray-triangle intersection using the Möller-Trumbore algorithm
func (tr *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray parallel to the triangle plane
	if a > -1e-12 && a < 1e-12 {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(tr.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	t := f * edge2.Dot(q)
	if t < tMin || t > tMax {
		return nil, false
	}

	hit := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2(u, v),
		Material: tr.Material,
	}
	hit.SetFaceNormal(ray, tr.normal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle,
// padded slightly so axis-aligned triangles don't produce a zero-thickness
// slab
func (tr *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(tr.V0, tr.V1, tr.V2).Expand(1e-8)
}

// Validate reports degenerate triangle configurations
func (tr *Triangle) Validate() error {
	if !tr.V0.IsFinite() || !tr.V1.IsFinite() || !tr.V2.IsFinite() {
		return fmt.Errorf("triangle has non-finite vertices")
	}
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)
	if edge1.Cross(edge2).LengthSquared() < 1e-24 {
		return fmt.Errorf("triangle vertices are collinear")
	}
	return nil
}
