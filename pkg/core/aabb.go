package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// axis extracts the min, max, origin and direction components for one axis.
func (aabb AABB) axis(ray Ray, axis int) (min, max, origin, direction float64) {
	switch axis {
	case 0:
		return aabb.Min.X, aabb.Max.X, ray.Origin.X, ray.Direction.X
	case 1:
		return aabb.Min.Y, aabb.Max.Y, ray.Origin.Y, ray.Direction.Y
	default:
		return aabb.Min.Z, aabb.Max.Z, ray.Origin.Z, ray.Direction.Z
	}
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	_, hit := aabb.HitInterval(ray, tMin, tMax)
	return hit
}

// HitInterval performs the slab test and returns the entry distance of the
// ray into the box (clamped to tMin). The entry distance lets BVH traversal
// visit the nearer child first and prune subtrees behind the best known hit.
func (aabb AABB) HitInterval(ray Ray, tMin, tMax float64) (float64, bool) {
	for axis := 0; axis < 3; axis++ {
		min, max, origin, direction := aabb.axis(ray, axis)

		// Rays nearly parallel to a slab face need special handling:
		// dividing by a near-zero direction component produces huge or NaN
		// intersection distances, so test containment directly instead
		if math.Abs(direction) < 1e-12 {
			if origin < min || origin > max {
				return 0, false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection

		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return 0, false
		}
	}

	return tMin, true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Contains reports whether the other AABB lies fully inside this one
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Max.X >= other.Max.X &&
		aabb.Min.Y <= other.Min.Y && aabb.Max.Y >= other.Max.Y &&
		aabb.Min.Z <= other.Min.Z && aabb.Max.Z >= other.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties resolve in X, Y, Z order so BVH builds are reproducible.
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X >= size.Y && size.X >= size.Z {
		return 0
	}
	if size.Y >= size.Z {
		return 1
	}
	return 2
}

// IsValid returns true if this is a valid AABB (min <= max for all axes,
// all bounds finite)
func (aabb AABB) IsValid() bool {
	return aabb.Min.IsFinite() && aabb.Max.IsFinite() &&
		aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// IsDegenerate reports whether the box has collapsed to a single point.
// Flat boxes (zero extent along one axis) are fine: axis-aligned quads and
// triangles produce them
func (aabb AABB) IsDegenerate() bool {
	size := aabb.Size()
	return size.X == 0 && size.Y == 0 && size.Z == 0
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
