package layout

import (
	"slices"
	"sort"
)

// DetectColumns finds the x positions of the page's columns from the x
// origins of its lines. It returns nil when the page has too few lines for
// the configured column count, or when fewer distinct positions than
// columns exist.
//
// The origins are split into cfg.ClusterCount() clusters. The
// cfg.ColumnCount most populous clusters become columns, each anchored at
// its most frequent x. Anchors are ordered by cluster population, largest
// first, unless cfg.SortColumns asks for left to right order.
func DetectColumns(xs []int, cfg Config) []int {
	if len(xs) < cfg.ColumnCount*cfg.MinLinesPerColumn || cfg.ClusterCount() >= len(xs) {
		return nil
	}

	clusters, err := Ckmeans(xs, cfg.ClusterCount())
	if err != nil || len(clusters) < cfg.ColumnCount {
		return nil
	}

	// clusters arrive left to right, so equally populated clusters stay
	// in that order
	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i]) > len(clusters[j])
	})

	anchors := make([]int, cfg.ColumnCount)
	for i := range anchors {
		anchors[i] = Mode(clusters[i])
	}

	if cfg.SortColumns {
		slices.Sort(anchors)
	}

	return anchors
}

// Classify assigns every x origin to the first anchor within width pixels
// of it. Anchor order decides overlaps. Unmatched origins get NoColumn.
func Classify(xs []int, anchors []int, width int) []int {
	columnIndex := make([]int, len(xs))
	for i, x := range xs {
		columnIndex[i] = NoColumn
		for c, anchor := range anchors {
			if x >= anchor-width && x <= anchor+width {
				columnIndex[i] = c
				break
			}
		}
	}
	return columnIndex
}

// CountLinesPerColumn counts the classified lines of every populated column,
// ordered by column index. The layout is trusted when exactly
// cfg.ColumnCount columns are populated and each holds more than
// cfg.MinLinesPerColumn lines.
func CountLinesPerColumn(columnIndex []int, cfg Config) (counts []int, trusted bool) {
	byColumn := make(map[int]int)
	for _, c := range columnIndex {
		if c != NoColumn {
			byColumn[c]++
		}
	}

	columns := make([]int, 0, len(byColumn))
	for c := range byColumn {
		columns = append(columns, c)
	}
	slices.Sort(columns)

	counts = make([]int, len(columns))
	trusted = len(columns) == cfg.ColumnCount
	for i, c := range columns {
		counts[i] = byColumn[c]
		if counts[i] <= cfg.MinLinesPerColumn {
			trusted = false
		}
	}

	return counts, trusted
}
