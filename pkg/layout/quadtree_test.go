package layout

import (
	"math/rand"
	"testing"
)

func TestQuadTree_Empty(t *testing.T) {
	tree := NewQuadTree(nil, DefaultNodeCapacity)
	if tree.Len() != 0 {
		t.Errorf("Expected an empty tree, got %d points", tree.Len())
	}
	if _, _, ok := tree.Nearest(0, 0, nil); ok {
		t.Errorf("Expected no nearest point in an empty tree")
	}
}

func TestQuadTree_Nearest(t *testing.T) {
	tree := NewQuadTree([]Point{
		{X: 0, Y: 0, Index: 0},
		{X: 10, Y: 0, Index: 1},
		{X: 0, Y: 10, Index: 2},
	}, 1)

	p, distSq, ok := tree.Nearest(9, 1, nil)
	if !ok || p.Index != 1 || distSq != 2 {
		t.Errorf("Expected point 1 at distance 2, got %+v at %d (ok=%v)", p, distSq, ok)
	}

	p, _, ok = tree.Nearest(9, 1, func(p Point) bool { return p.Index != 1 })
	if !ok || p.Index != 0 {
		t.Errorf("Expected filtered search to return point 0, got %+v", p)
	}

	if _, _, ok = tree.Nearest(9, 1, func(Point) bool { return false }); ok {
		t.Errorf("Expected no point when the filter rejects everything")
	}
}

func TestQuadTree_TiesPreferSmallerIndex(t *testing.T) {
	tree := NewQuadTree([]Point{
		{X: 0, Y: 5, Index: 3},
		{X: 100, Y: 100, Index: 0},
		{X: 5, Y: 0, Index: 1},
		{X: -5, Y: 0, Index: 2},
	}, 1)

	p, distSq, ok := tree.Nearest(0, 0, nil)
	if !ok || p.Index != 1 || distSq != 25 {
		t.Errorf("Expected point 1 at distance 25, got %+v at %d", p, distSq)
	}
}

func TestQuadTree_CoincidentPoints(t *testing.T) {
	points := make([]Point, 20)
	for i := range points {
		points[i] = Point{X: 5, Y: 5, Index: 19 - i}
	}
	tree := NewQuadTree(points, 2)

	p, _, ok := tree.Nearest(0, 0, nil)
	if !ok || p.Index != 0 {
		t.Errorf("Expected point 0, got %+v", p)
	}
}

func TestQuadTree_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	points := make([]Point, 300)
	for i := range points {
		points[i] = Point{X: rng.Intn(200), Y: rng.Intn(200), Index: i}
	}
	tree := NewQuadTree(points, 4)
	accept := func(p Point) bool { return p.Index%3 != 0 }

	for q := 0; q < 200; q++ {
		x, y := rng.Intn(240)-20, rng.Intn(240)-20

		want := -1
		var wantDistSq int64
		for _, p := range points {
			if !accept(p) {
				continue
			}
			d := pointDistSq(p, x, y)
			if want == -1 || d < wantDistSq || (d == wantDistSq && p.Index < want) {
				want, wantDistSq = p.Index, d
			}
		}

		got, distSq, ok := tree.Nearest(x, y, accept)
		if !ok || got.Index != want || distSq != wantDistSq {
			t.Fatalf("Query (%d, %d): expected point %d at %d, got %d at %d", x, y, want, wantDistSq, got.Index, distSq)
		}
	}
}
