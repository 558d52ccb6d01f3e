package geoindex

// Collector receives points matched by a query. Implementations must not
// retain interior mutable state shared across concurrent calls into a
// single tree; each call to Contains should be given its own Collector.
type Collector interface {
	Collect(p Point)
}

// Tree is the single capability shared by *KDBTree and *BKDForest: answer a
// bounding-box containment query by feeding every matching point to the
// given collector.
type Tree interface {
	Contains(query BBox, collector Collector)
}

// SliceCollector is a Collector that appends every matched point to an
// in-memory slice, in whatever order the tree visits them.
type SliceCollector struct {
	Points []Point
}

// Collect appends p to the collector's Points slice.
func (c *SliceCollector) Collect(p Point) {
	c.Points = append(c.Points, p)
}
