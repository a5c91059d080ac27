package layout

import (
	"container/heap"
)

// DefaultNodeCapacity is the number of points a quadtree leaf holds before it splits
const DefaultNodeCapacity = 8

// Point is an indexed position, such as the origin of line Index
type Point struct {
	X     int
	Y     int
	Index int
}

// Rect is an inclusive integer rectangle
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// QuadTree is a static point index supporting constrained nearest
// neighbour queries.
type QuadTree struct {
	root *quadNode
	size int
}

type quadNode struct {
	bounds   Rect
	points   []Point     // set on leaves only
	children []*quadNode // nil on leaves; empty quadrants are omitted
}

// NewQuadTree builds an index over points
func NewQuadTree(points []Point, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = DefaultNodeCapacity
	}
	if len(points) == 0 {
		return &QuadTree{}
	}

	bounds := Rect{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, p := range points[1:] {
		bounds.MinX = min(bounds.MinX, p.X)
		bounds.MinY = min(bounds.MinY, p.Y)
		bounds.MaxX = max(bounds.MaxX, p.X)
		bounds.MaxY = max(bounds.MaxY, p.Y)
	}

	owned := make([]Point, len(points))
	copy(owned, points)

	return &QuadTree{
		root: build(bounds, owned, capacity),
		size: len(points),
	}
}

// Len returns the number of indexed points
func (qt *QuadTree) Len() int {
	return qt.size
}

func build(bounds Rect, points []Point, capacity int) *quadNode {
	node := &quadNode{bounds: bounds}

	// a node covering a single position cannot be split further
	if len(points) <= capacity || (bounds.MinX == bounds.MaxX && bounds.MinY == bounds.MaxY) {
		node.points = points
		return node
	}

	xMid := bounds.MinX + (bounds.MaxX-bounds.MinX)/2
	yMid := bounds.MinY + (bounds.MaxY-bounds.MinY)/2

	quadrants := [4]Rect{
		{MinX: bounds.MinX, MinY: bounds.MinY, MaxX: xMid, MaxY: yMid},         // Top-Left
		{MinX: xMid + 1, MinY: bounds.MinY, MaxX: bounds.MaxX, MaxY: yMid},     // Top-Right
		{MinX: bounds.MinX, MinY: yMid + 1, MaxX: xMid, MaxY: bounds.MaxY},     // Bottom-Left
		{MinX: xMid + 1, MinY: yMid + 1, MaxX: bounds.MaxX, MaxY: bounds.MaxY}, // Bottom-Right
	}

	var split [4][]Point
	for _, p := range points {
		q := 0
		if p.X > xMid {
			q++
		}
		if p.Y > yMid {
			q += 2
		}
		split[q] = append(split[q], p)
	}

	for q, quadrantPoints := range split {
		if len(quadrantPoints) == 0 {
			continue
		}
		node.children = append(node.children, build(quadrants[q], quadrantPoints, capacity))
	}

	return node
}

// Nearest returns the point closest to (x, y) among those accepted by the
// filter, along with its squared Euclidean distance. Equally distant
// points are resolved in favor of the smaller Index. ok is false when no
// point is accepted.
func (qt *QuadTree) Nearest(x, y int, accept func(Point) bool) (nearest Point, distSq int64, ok bool) {
	if qt.root == nil {
		return Point{}, 0, false
	}

	queue := &searchQueue{{node: qt.root, distSq: rectDistSq(qt.root.bounds, x, y)}}

	for queue.Len() > 0 {
		entry := heap.Pop(queue).(searchEntry)

		if entry.node == nil {
			if accept == nil || accept(entry.point) {
				return entry.point, entry.distSq, true
			}
			continue
		}

		for _, p := range entry.node.points {
			heap.Push(queue, searchEntry{point: p, distSq: pointDistSq(p, x, y)})
		}
		for _, child := range entry.node.children {
			heap.Push(queue, searchEntry{node: child, distSq: rectDistSq(child.bounds, x, y)})
		}
	}

	return Point{}, 0, false
}

func pointDistSq(p Point, x, y int) int64 {
	dx := int64(p.X - x)
	dy := int64(p.Y - y)
	return dx*dx + dy*dy
}

// rectDistSq is the squared distance from (x, y) to the closest point of r
func rectDistSq(r Rect, x, y int) int64 {
	dx := int64(max(r.MinX-x, 0, x-r.MaxX))
	dy := int64(max(r.MinY-y, 0, y-r.MaxY))
	return dx*dx + dy*dy
}

// searchEntry is either a node to expand or a candidate point (node == nil)
type searchEntry struct {
	node   *quadNode
	point  Point
	distSq int64
}

// searchQueue orders entries by distance. At equal distance nodes come
// first, so every point at that distance is queued before one is accepted,
// and points come in Index order.
type searchQueue []searchEntry

func (q searchQueue) Len() int { return len(q) }

func (q searchQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.distSq != b.distSq {
		return a.distSq < b.distSq
	}
	if (a.node == nil) != (b.node == nil) {
		return a.node != nil
	}
	return a.node == nil && a.point.Index < b.point.Index
}

func (q searchQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *searchQueue) Push(x any) { *q = append(*q, x.(searchEntry)) }

func (q *searchQueue) Pop() any {
	old := *q
	n := len(old)
	entry := old[n-1]
	*q = old[:n-1]
	return entry
}
