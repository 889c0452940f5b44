package core

import (
	"math"
	"sort"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Shapes stored in leaf nodes (nil for interior nodes)
}

// BVH represents an immutable Bounding Volume Hierarchy for fast
// ray-object intersection. Built once before rendering and never mutated,
// so all workers may traverse it concurrently without coordination.
type BVH struct {
	Root     *BVHNode
	Center   Vec3    // Center of the scene bounds
	Radius   float64 // Radius of the scene bounding sphere
	Excluded int     // Number of degenerate shapes dropped at build time
}

// Leaf threshold: nodes with this many or fewer shapes become leaves and
// fall back to linear search
const leafThreshold = 4

// NewBVH constructs a BVH from a slice of shapes. Shapes with degenerate
// geometry or invalid bounding boxes are excluded from the tree rather than
// allowed to cause traversal failures later.
func NewBVH(shapes []Shape) *BVH {
	valid := make([]Shape, 0, len(shapes))
	for _, shape := range shapes {
		if isDegenerate(shape) {
			continue
		}
		valid = append(valid, shape)
	}

	bvh := &BVH{Excluded: len(shapes) - len(valid)}
	if len(valid) == 0 {
		return bvh
	}

	bvh.Root = buildBVH(valid)
	bvh.Center = bvh.Root.BoundingBox.Center()
	bvh.Radius = bvh.Root.BoundingBox.Size().Length() * 0.5
	return bvh
}

// isDegenerate reports whether a shape must be excluded from the tree
func isDegenerate(shape Shape) bool {
	if validator, ok := shape.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return true
		}
	}
	box := shape.BoundingBox()
	return !box.IsValid() || box.IsDegenerate()
}

// buildBVH recursively builds the tree using a median split along the
// longest axis of the node bounds. The slice passed in is owned by the
// build and may be reordered.
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for i := 1; i < len(shapes); i++ {
		boundingBox = boundingBox.Union(shapes[i].BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      shapes,
		}
	}

	axis := boundingBox.LongestAxis()
	sortShapesByAxis(shapes, axis)

	mid := len(shapes) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(shapes[:mid]),
		Right:       buildBVH(shapes[mid:]),
	}
}

// sortShapesByAxis sorts shapes by their bounding box center along the
// specified axis. SliceStable keeps builds reproducible when centers tie.
func sortShapesByAxis(shapes []Shape, axis int) {
	sort.SliceStable(shapes, func(i, j int) bool {
		centerI := shapes[i].BoundingBox().Center()
		centerJ := shapes[j].BoundingBox().Center()

		switch axis {
		case 0:
			return centerI.X < centerJ.X
		case 1:
			return centerI.Y < centerJ.Y
		default:
			return centerI.Z < centerJ.Z
		}
	})
}

// Hit returns the nearest intersection of the ray with any shape in the BVH
func (bvh *BVH) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return hitNode(bvh.Root, ray, tMin, tMax)
}

// hitNode recursively tests ray intersection, visiting the nearer child
// first and pruning the farther child when its box entry distance lies
// beyond the best hit found so far
func hitNode(node *BVHNode, ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if _, hit := node.BoundingBox.HitInterval(ray, tMin, tMax); !hit {
		return nil, false
	}

	if node.Shapes != nil {
		var closestHit *HitRecord
		hitAnything := false
		closestSoFar := tMax

		for _, shape := range node.Shapes {
			if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
				hitAnything = true
				closestSoFar = hit.T
				closestHit = hit
			}
		}

		return closestHit, hitAnything
	}

	first, second := node.Left, node.Right
	firstT, firstHit := first.BoundingBox.HitInterval(ray, tMin, tMax)
	secondT, secondHit := second.BoundingBox.HitInterval(ray, tMin, tMax)
	if secondHit && (!firstHit || secondT < firstT) {
		first, second = second, first
		firstT, secondT = secondT, firstT
		firstHit, secondHit = secondHit, firstHit
	}

	var closestHit *HitRecord
	hitAnything := false
	closestSoFar := tMax

	if firstHit {
		if hit, isHit := hitNode(first, ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	// The far child only needs visiting if the ray enters its box before
	// the current best hit
	if secondHit && secondT < closestSoFar {
		if hit, isHit := hitNode(second, ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// HitAny reports whether the ray hits anything in [tMin, tMax]. This is the
// shadow-ray fast path: it terminates on the first hit found without
// searching for the nearest one.
func (bvh *BVH) HitAny(ray Ray, tMin, tMax float64) bool {
	if bvh.Root == nil {
		return false
	}
	return hitAnyNode(bvh.Root, ray, tMin, tMax)
}

func hitAnyNode(node *BVHNode, ray Ray, tMin, tMax float64) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}

	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if _, isHit := shape.Hit(ray, tMin, tMax); isHit {
				return true
			}
		}
		return false
	}

	return hitAnyNode(node.Left, ray, tMin, tMax) || hitAnyNode(node.Right, ray, tMin, tMax)
}

// ShapeCount returns the number of shapes stored in the tree
func (bvh *BVH) ShapeCount() int {
	return bvh.getStats().totalShapes
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes  int
	leafNodes   int
	maxDepth    int
	avgDepth    float64
	totalShapes int
}

// getStats returns statistics about the BVH structure
func (bvh *BVH) getStats() bvhStats {
	stats := bvhStats{}
	if bvh.Root == nil {
		return stats
	}

	collectStats(bvh.Root, 0, &stats)
	if stats.leafNodes > 0 {
		stats.avgDepth = stats.avgDepth / float64(stats.leafNodes)
	}
	return stats
}

func collectStats(node *BVHNode, depth int, stats *bvhStats) {
	stats.totalNodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	if node.Shapes != nil {
		stats.leafNodes++
		stats.totalShapes += len(node.Shapes)
		stats.avgDepth += float64(depth)
		return
	}

	collectStats(node.Left, depth+1, stats)
	collectStats(node.Right, depth+1, stats)
}

// MaxHitDistance is the default far plane for primary rays
const MaxHitDistance = math.MaxFloat64
