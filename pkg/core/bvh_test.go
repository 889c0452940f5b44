package core

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

// testSphere is a minimal sphere implementation for exercising the tree
// without depending on the geometry package
type testSphere struct {
	center Vec3
	radius float64
}

func (s *testSphere) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	oc := ray.Origin.Subtract(s.center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.radius*s.radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hit := &HitRecord{T: root, Point: ray.At(root)}
	hit.SetFaceNormal(ray, hit.Point.Subtract(s.center).Multiply(1/s.radius))
	return hit, true
}

func (s *testSphere) BoundingBox() AABB {
	r := NewVec3(s.radius, s.radius, s.radius)
	return NewAABB(s.center.Subtract(r), s.center.Add(r))
}

// invalidShape reports a broken bounding box, like a shape built from NaN
// coordinates
type invalidShape struct{ box AABB }

func (s *invalidShape) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) { return nil, false }
func (s *invalidShape) BoundingBox() AABB                                  { return s.box }

func randomSpheres(n int, seed int64) []Shape {
	rng := rand.New(rand.NewSource(seed))
	shapes := make([]Shape, n)
	for i := range shapes {
		shapes[i] = &testSphere{
			center: NewVec3(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10),
			radius: rng.Float64()*0.9 + 0.1,
		}
	}
	return shapes
}

// hitLinear is the reference implementation: exhaustive search over all
// shapes for the nearest hit
func hitLinear(shapes []Shape, ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	var closest *HitRecord
	closestSoFar := tMax
	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closest = hit
		}
	}
	return closest, closest != nil
}

func TestBVH_MatchesLinearSearch(t *testing.T) {
	shapes := randomSpheres(200, 42)
	bvh := NewBVH(shapes)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		origin := NewVec3(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20)
		direction := NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Normalize()
		ray := NewRay(origin, direction)

		bvhHit, bvhOk := bvh.Hit(ray, 0.001, MaxHitDistance)
		linHit, linOk := hitLinear(shapes, ray, 0.001, MaxHitDistance)

		if bvhOk != linOk {
			t.Fatalf("Ray %d: BVH hit=%t but linear search hit=%t", i, bvhOk, linOk)
		}
		if bvhOk && math.Abs(bvhHit.T-linHit.T) > 1e-9 {
			t.Fatalf("Ray %d: BVH t=%f but linear search t=%f", i, bvhHit.T, linHit.T)
		}
	}
}

func TestBVH_HitAnyMatchesHit(t *testing.T) {
	shapes := randomSpheres(100, 3)
	bvh := NewBVH(shapes)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 300; i++ {
		origin := NewVec3(rng.Float64()*40-20, rng.Float64()*40-20, rng.Float64()*40-20)
		direction := NewVec3(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1).Normalize()
		ray := NewRay(origin, direction)

		_, hitOk := bvh.Hit(ray, 0.001, MaxHitDistance)
		if anyOk := bvh.HitAny(ray, 0.001, MaxHitDistance); anyOk != hitOk {
			t.Fatalf("Ray %d: HitAny=%t disagrees with Hit=%t", i, anyOk, hitOk)
		}
	}
}

func TestBVH_HitAnyRespectsRange(t *testing.T) {
	shapes := []Shape{&testSphere{center: NewVec3(0, 0, -10), radius: 1}}
	bvh := NewBVH(shapes)
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1))

	if !bvh.HitAny(ray, 0.001, 20) {
		t.Error("Expected occluder inside range to be found")
	}
	// The occluder sits beyond the range limit, as when a light is closer
	// than the blocking shape
	if bvh.HitAny(ray, 0.001, 5) {
		t.Error("Expected occluder beyond tMax to be ignored")
	}
}

func TestBVH_ChildBoundsContainedInParent(t *testing.T) {
	shapes := randomSpheres(100, 99)
	bvh := NewBVH(shapes)

	var check func(node *BVHNode) error
	check = func(node *BVHNode) error {
		if node.Shapes != nil {
			for _, shape := range node.Shapes {
				if !node.BoundingBox.Contains(shape.BoundingBox()) {
					return fmt.Errorf("leaf box %v does not contain shape box %v", node.BoundingBox, shape.BoundingBox())
				}
			}
			return nil
		}
		if !node.BoundingBox.Contains(node.Left.BoundingBox) {
			return fmt.Errorf("parent %v does not contain left child %v", node.BoundingBox, node.Left.BoundingBox)
		}
		if !node.BoundingBox.Contains(node.Right.BoundingBox) {
			return fmt.Errorf("parent %v does not contain right child %v", node.BoundingBox, node.Right.BoundingBox)
		}
		if err := check(node.Left); err != nil {
			return err
		}
		return check(node.Right)
	}

	if err := check(bvh.Root); err != nil {
		t.Error(err)
	}
}

func TestBVH_ExcludesDegenerateShapes(t *testing.T) {
	shapes := []Shape{
		&testSphere{center: NewVec3(0, 0, 0), radius: 1},
		&invalidShape{box: NewAABB(NewVec3(math.NaN(), 0, 0), NewVec3(1, 1, 1))},
		&invalidShape{box: NewAABB(NewVec3(1, 1, 1), NewVec3(0, 0, 0))}, // inverted
		&invalidShape{box: NewAABB(NewVec3(2, 2, 2), NewVec3(2, 2, 2))}, // point
	}

	bvh := NewBVH(shapes)
	if bvh.Excluded != 3 {
		t.Errorf("Expected 3 excluded shapes, got %d", bvh.Excluded)
	}
	if bvh.ShapeCount() != 1 {
		t.Errorf("Expected 1 shape in tree, got %d", bvh.ShapeCount())
	}

	// The surviving sphere still renders
	ray := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1))
	if _, ok := bvh.Hit(ray, 0.001, MaxHitDistance); !ok {
		t.Error("Expected valid shape to remain hittable")
	}
}

func TestBVH_EmptyAndAllDegenerate(t *testing.T) {
	empty := NewBVH(nil)
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1))
	if _, ok := empty.Hit(ray, 0.001, MaxHitDistance); ok {
		t.Error("Expected empty BVH to never hit")
	}
	if empty.HitAny(ray, 0.001, MaxHitDistance) {
		t.Error("Expected empty BVH HitAny to be false")
	}

	allBad := NewBVH([]Shape{&invalidShape{box: AABB{Min: NewVec3(1, 0, 0), Max: NewVec3(0, 0, 0)}}})
	if _, ok := allBad.Hit(ray, 0.001, MaxHitDistance); ok {
		t.Error("Expected BVH of only degenerate shapes to never hit")
	}
}

func TestBVH_DeterministicBuild(t *testing.T) {
	shapes := randomSpheres(64, 5)
	a := NewBVH(shapes)

	// Same input in the same order must give structurally identical trees
	b := NewBVH(randomSpheres(64, 5))

	var compare func(x, y *BVHNode) bool
	compare = func(x, y *BVHNode) bool {
		if (x == nil) != (y == nil) {
			return false
		}
		if x == nil {
			return true
		}
		if x.BoundingBox != y.BoundingBox || len(x.Shapes) != len(y.Shapes) {
			return false
		}
		return compare(x.Left, y.Left) && compare(x.Right, y.Right)
	}

	if !compare(a.Root, b.Root) {
		t.Error("Expected identical trees from identical input")
	}
}

func TestBVH_LeafThresholdBoundary(t *testing.T) {
	shapes := randomSpheres(leafThreshold, 21)
	stats := NewBVH(shapes).getStats()
	if stats.totalNodes != 1 || stats.leafNodes != 1 {
		t.Errorf("Expected single leaf for %d shapes, got %d nodes (%d leaves)",
			leafThreshold, stats.totalNodes, stats.leafNodes)
	}

	shapes = randomSpheres(leafThreshold+1, 21)
	stats = NewBVH(shapes).getStats()
	if stats.totalNodes < 3 {
		t.Errorf("Expected split above leaf threshold, got %d nodes", stats.totalNodes)
	}
	if stats.totalShapes != leafThreshold+1 {
		t.Errorf("Expected %d shapes stored, got %d", leafThreshold+1, stats.totalShapes)
	}
}
