package tile

import "math"

// maxDistance is the length of the RGB cube diagonal, used to normalise the
// Euclidean color distance into [0, 1].
var maxDistance = math.Sqrt(3 * 255 * 255)

// Classifier maps pixel colors to tile types against a fixed color table.
// Lookups are exact first; when a tolerance is set, a near miss is resolved
// to the closest table entry within range, ties going to the entry added to
// the table first. Anything else becomes the fallback type and is tallied.
//
// A Classifier is not safe for concurrent use because of the tally; give
// each worker its own and merge the tallies afterwards.
type Classifier struct {
	table     *ColorTable
	tolerance float64
	fallback  TypeID
	unmatched map[ColorKey]int
}

// NewClassifier returns a classifier over table. The tolerance is a
// percentage in [0, 100]; values outside that range are clamped. A zero
// tolerance disables near matching entirely.
func NewClassifier(table *ColorTable, tolerance int) *Classifier {
	if tolerance < 0 {
		tolerance = 0
	}
	if tolerance > 100 {
		tolerance = 100
	}
	return &Classifier{
		table:     table,
		tolerance: float64(tolerance) / 100,
		fallback:  DefaultFallback,
		unmatched: make(map[ColorKey]int),
	}
}

// SetFallback overrides the tile type substituted when no match is found.
func (c *Classifier) SetFallback(id TypeID) {
	c.fallback = id
}

// Classify returns the tile type for a color. It never fails; a color with
// no match yields the fallback type and bumps that color's unmatched count.
func (c *Classifier) Classify(k ColorKey) TypeID {
	if id, ok := c.table.Lookup(k); ok {
		return id
	}

	if c.tolerance > 0 {
		if id, ok := c.nearest(k); ok {
			return id
		}
	}

	c.unmatched[k]++
	return c.fallback
}

// nearest finds the table entry closest to k within the tolerance threshold.
// Iteration follows table insertion order and only a strictly smaller
// distance displaces the current best, so the first entry wins ties.
func (c *Classifier) nearest(k ColorKey) (TypeID, bool) {
	var (
		best  TypeID
		found bool
	)
	bestDist := math.Inf(1)
	for _, e := range c.table.Keys() {
		d := distance(k, e)
		if d <= c.tolerance && d < bestDist {
			best, bestDist = c.table.ids[e], d
			found = true
		}
	}
	return best, found
}

// distance is the Euclidean distance between two colors in RGB space,
// normalised to [0, 1] over the 0-255 channel range.
func distance(a, b ColorKey) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr+dg*dg+db*db) / maxDistance
}

// Unmatched returns the tally of colors that fell back, keyed by color with
// the number of pixels that carried it.
func (c *Classifier) Unmatched() map[ColorKey]int {
	return c.unmatched
}

// merge folds another classifier's tally into this one.
func (c *Classifier) merge(o *Classifier) {
	for k, n := range o.unmatched {
		c.unmatched[k] += n
	}
}
