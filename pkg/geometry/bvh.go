package geometry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	// ErrEmptyBVH is returned when a BVH is requested over no objects
	ErrEmptyBVH = errors.New("bvh: no objects")
	// ErrNoBoundingBox is returned when an object without finite bounds is added to a BVH
	ErrNoBoundingBox = errors.New("bvh: object has no bounding box")
	// ErrDegenerateSplit is returned when a split does not strictly shrink both halves
	ErrDegenerateSplit = errors.New("bvh: split does not partition objects")
)

// BVHNode is one node of a Bounding Volume Hierarchy. Children are either further
// nodes or the primitives themselves; a node built over a single primitive has both
// children pointing at it.
type BVHNode struct {
	Left        core.Hittable
	Right       core.Hittable
	Box         core.AABB
	singleChild bool // Left and Right alias the same primitive
}

// splitFunc divides a sorted object slice into the two child sequences
type splitFunc func(objects []core.Hittable) (left, right []core.Hittable)

// midpointSplit halves the sequence at len/2
func midpointSplit(objects []core.Hittable) ([]core.Hittable, []core.Hittable) {
	mid := len(objects) / 2
	return objects[:mid], objects[mid:]
}

// NewBVH constructs a BVH over objects. The split axis at every level is drawn from random.
// The caller's slice is never reordered.
func NewBVH(objects []core.Hittable, random *rand.Rand) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	for i, object := range objects {
		if _, ok := object.BoundingBox(); !ok {
			return nil, fmt.Errorf("%w: object %d (%T)", ErrNoBoundingBox, i, object)
		}
	}

	// Make a copy of the objects slice to avoid modifying the original
	objectsCopy := make([]core.Hittable, len(objects))
	copy(objectsCopy, objects)

	return buildBVH(objectsCopy, random, midpointSplit)
}

// buildBVH recursively builds the tree: random axis, sort by box minimum, split, recurse
func buildBVH(objects []core.Hittable, random *rand.Rand, split splitFunc) (*BVHNode, error) {
	if len(objects) == 0 {
		return nil, ErrEmptyBVH
	}

	if len(objects) == 1 {
		box, _ := objects[0].BoundingBox()
		return &BVHNode{
			Left:        objects[0],
			Right:       objects[0],
			Box:         box,
			singleChild: true,
		}, nil
	}

	axis := random.Intn(3)
	sortByBoxMin(objects, axis)

	leftObjects, rightObjects := split(objects)
	if len(leftObjects) == 0 || len(rightObjects) == 0 ||
		len(leftObjects)+len(rightObjects) != len(objects) {
		return nil, fmt.Errorf("%w: %d objects split into %d and %d",
			ErrDegenerateSplit, len(objects), len(leftObjects), len(rightObjects))
	}

	left, err := buildChild(leftObjects, random, split)
	if err != nil {
		return nil, err
	}
	right, err := buildChild(rightObjects, random, split)
	if err != nil {
		return nil, err
	}

	leftBox, _ := left.BoundingBox()
	rightBox, _ := right.BoundingBox()

	return &BVHNode{
		Left:  left,
		Right: right,
		Box:   leftBox.Union(rightBox),
	}, nil
}

// buildChild places a lone primitive directly under its parent instead of wrapping it
// in a node whose children would both alias it
func buildChild(objects []core.Hittable, random *rand.Rand, split splitFunc) (core.Hittable, error) {
	if len(objects) == 1 {
		return objects[0], nil
	}
	return buildBVH(objects, random, split)
}

// sortByBoxMin sorts objects by the minimum corner of their bounding box on axis
func sortByBoxMin(objects []core.Hittable, axis int) {
	sort.SliceStable(objects, func(i, j int) bool {
		boxI, _ := objects[i].BoundingBox()
		boxJ, _ := objects[j].BoundingBox()
		return boxI.Min.Get(axis) < boxJ.Min.Get(axis)
	})
}

// Hit tests the node's box first, then both children, and returns the closer hit
func (n *BVHNode) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if !n.Box.Hit(ray, tMin, tMax) {
		return nil, false
	}

	hitLeft, isHitLeft := n.Left.Hit(ray, tMin, tMax)
	if n.singleChild {
		return hitLeft, isHitLeft
	}

	// The right subtree only needs to beat the left hit
	if isHitLeft {
		tMax = hitLeft.T
	}

	if hitRight, isHitRight := n.Right.Hit(ray, tMin, tMax); isHitRight {
		return hitRight, true
	}

	return hitLeft, isHitLeft
}

// BoundingBox returns the union of the children's boxes
func (n *BVHNode) BoundingBox() (core.AABB, bool) {
	return n.Box, true
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes   int // Interior nodes
	Primitives   int // Primitive references reachable from the root
	MaxDepth     int
	AvgLeafDepth float64
}

// Stats walks the tree and collects structural statistics
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{}
	n.collectStats(0, &stats)

	// Calculate average depth after collecting all data
	if stats.Primitives > 0 {
		stats.AvgLeafDepth = stats.AvgLeafDepth / float64(stats.Primitives)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (n *BVHNode) collectStats(depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	children := []core.Hittable{n.Left, n.Right}
	if n.singleChild {
		children = children[:1]
	}

	for _, child := range children {
		if node, ok := child.(*BVHNode); ok {
			node.collectStats(depth+1, stats)
			continue
		}
		stats.Primitives++
		stats.AvgLeafDepth += float64(depth + 1) // Accumulate depth for average calculation
		if depth+1 > stats.MaxDepth {
			stats.MaxDepth = depth + 1
		}
	}
}
