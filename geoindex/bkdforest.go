package geoindex

import "fmt"

// BKDForest partitions a point sequence into one or more disjoint
// longitude bands and builds a static KDB tree over each. Queries are
// dispatched to every tree in the forest and their results concatenated;
// no deduplication is needed because the trees' slices never overlap.
type BKDForest struct {
	trees []*KDBTree
}

// NewBKDForest bulk-builds a BKD forest over points. maxDocsPerLeaf must be
// at least 2. points is sorted in place by longitude exactly once; each
// tree in the forest is then built over a disjoint, already-sorted slice
// and skips re-sorting by longitude.
func NewBKDForest(points []Point, maxDocsPerLeaf int) (*BKDForest, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("geoindex: cannot build a BKD forest over zero points")
	}
	if maxDocsPerLeaf < 2 {
		return nil, fmt.Errorf("geoindex: maxDocsPerLeaf must be >= 2, got %d", maxDocsPerLeaf)
	}

	sortByLongitude(points)

	var trees []*KDBTree
	cursor := 0
	for cursor < len(points) {
		remaining := len(points) - cursor
		take := nextTreeSize(remaining, maxDocsPerLeaf)

		tree, err := NewKDBTree(points[cursor:cursor+take], maxDocsPerLeaf, true)
		if err != nil {
			return nil, fmt.Errorf("geoindex: building tree over slice [%d,%d): %w", cursor, cursor+take, err)
		}
		trees = append(trees, tree)
		cursor += take
	}

	return &BKDForest{trees: trees}, nil
}

// nextTreeSize returns how many points the next KDB tree carved out of the
// front of a remaining run of length remaining should take: the whole run
// if it fits in a single leaf, otherwise a "full" tree with half as many
// leaves as the smallest power-of-two-leaf tree that could hold all of
// remaining (always fewer points than remaining).
func nextTreeSize(remaining, maxDocsPerLeaf int) int {
	if remaining <= maxDocsPerLeaf {
		return remaining
	}
	level := 2
	for (1<<(level-1))*maxDocsPerLeaf < remaining {
		level++
	}
	return (1 << (level - 2)) * maxDocsPerLeaf
}

// Trees returns the forest's KDB trees in longitude order, primarily for
// tests and diagnostics.
func (f *BKDForest) Trees() []*KDBTree {
	return f.trees
}

// Contains appends every point in the forest that lies inside query to
// collector, dispatching to each tree in turn.
func (f *BKDForest) Contains(query BBox, collector Collector) {
	for _, tree := range f.trees {
		tree.Contains(query, collector)
	}
}
