package layout

// Link connects every unclassified line to the nearest classified line that
// starts above and to the left of it (x and y both less or equal), which
// models an indented or wrapped line continuing the column line before it.
//
// It returns, per line, the index of the previous and next line of its
// chain, or NoLink. A classified line can continue into one unclassified
// line only. When several lines pick the same classified line the closest
// one keeps the link; at equal distance the first in line order does. A line
// that loses its claim stays unlinked.
func Link(xs, ys []int, columnIndex []int) (previous, next []int) {
	n := len(xs)
	previous = make([]int, n)
	next = make([]int, n)
	for i := range previous {
		previous[i] = NoLink
		next[i] = NoLink
	}

	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: xs[i], Y: ys[i], Index: i}
	}
	tree := NewQuadTree(points, DefaultNodeCapacity)

	claimDistSq := make([]int64, n)

	for i := 0; i < n; i++ {
		if columnIndex[i] != NoColumn {
			continue
		}

		x, y := xs[i], ys[i]
		neighbor, distSq, ok := tree.Nearest(x, y, func(p Point) bool {
			return p.Index != i &&
				columnIndex[p.Index] != NoColumn &&
				p.X <= x && p.Y <= y
		})
		if !ok {
			continue
		}

		j := neighbor.Index
		if claimant := next[j]; claimant != NoLink {
			if distSq >= claimDistSq[j] {
				continue
			}
			previous[claimant] = NoLink
		}

		next[j] = i
		previous[i] = j
		claimDistSq[j] = distSq
	}

	return previous, next
}
