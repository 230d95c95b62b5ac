/*
Package rle implements the run-length encoding used for tile data inside a
WorldBox save document.

Each grid row is stored as two parallel arrays: run indices, which are
ordinals into a catalog of the distinct tile types seen in the grid, and run
lengths. The catalog is ordered by first encounter during a row-major scan
of the grid; that ordering is part of the format because the run indices
reference catalog positions, not tile names.
*/
package rle

import (
	"fmt"

	"github.com/bodgit/worldbox/tile"
)

// Catalog is the ordered set of distinct tile types in a grid. Ordinals are
// assigned in first-encounter order and referenced by every encoded row.
type Catalog struct {
	ids     []tile.TypeID
	ordinal map[tile.TypeID]int
}

// NewCatalog scans g in row-major order and returns the catalog of its
// distinct tile types.
func NewCatalog(g *tile.Grid) *Catalog {
	c := &Catalog{
		ordinal: make(map[tile.TypeID]int),
	}
	for _, row := range g.Cells {
		for _, id := range row {
			c.add(id)
		}
	}
	return c
}

// CatalogFromIDs rebuilds a catalog from an already ordered tile type list,
// such as the tileMap array of a decoded save document.
func CatalogFromIDs(ids []tile.TypeID) *Catalog {
	c := &Catalog{
		ordinal: make(map[tile.TypeID]int),
	}
	for _, id := range ids {
		c.add(id)
	}
	return c
}

func (c *Catalog) add(id tile.TypeID) int {
	if n, ok := c.ordinal[id]; ok {
		return n
	}
	n := len(c.ids)
	c.ids = append(c.ids, id)
	c.ordinal[id] = n
	return n
}

// Ordinal returns the catalog position of a tile type.
func (c *Catalog) Ordinal(id tile.TypeID) (int, bool) {
	n, ok := c.ordinal[id]
	return n, ok
}

// Len returns the number of distinct tile types.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// IDs returns the tile types in catalog order. The caller must not modify
// the returned slice.
func (c *Catalog) IDs() []tile.TypeID {
	return c.ids
}

// Row is one run-length encoded grid row. Indices and Lengths are always the
// same length, every length is at least one and no two consecutive runs
// share an index.
type Row struct {
	Indices []int
	Lengths []int
}

// EncodeRow compresses one row of tile types into maximal runs.
func EncodeRow(cells []tile.TypeID, c *Catalog) (Row, error) {
	var r Row
	if len(cells) == 0 {
		return r, nil
	}

	cur := cells[0]
	length := 1
	flush := func() error {
		n, ok := c.Ordinal(cur)
		if !ok {
			return fmt.Errorf("rle: tile type %q not in catalog", cur)
		}
		r.Indices = append(r.Indices, n)
		r.Lengths = append(r.Lengths, length)
		return nil
	}

	for _, id := range cells[1:] {
		if id == cur {
			length++
			continue
		}
		if err := flush(); err != nil {
			return Row{}, err
		}
		cur, length = id, 1
	}
	if err := flush(); err != nil {
		return Row{}, err
	}

	return r, nil
}

// Encode compresses a whole grid, one Row per grid row top to bottom.
func Encode(g *tile.Grid, c *Catalog) ([]Row, error) {
	rows := make([]Row, g.Height)
	for y, cells := range g.Cells {
		r, err := EncodeRow(cells, c)
		if err != nil {
			return nil, err
		}
		rows[y] = r
	}
	return rows, nil
}

// DecodeRow expands an encoded row back into tile types.
func DecodeRow(r Row, c *Catalog) ([]tile.TypeID, error) {
	if len(r.Indices) != len(r.Lengths) {
		return nil, fmt.Errorf("rle: %d indices but %d lengths", len(r.Indices), len(r.Lengths))
	}

	var cells []tile.TypeID
	for i, n := range r.Indices {
		if n < 0 || n >= c.Len() {
			return nil, fmt.Errorf("rle: run index %d out of range", n)
		}
		if r.Lengths[i] < 1 {
			return nil, fmt.Errorf("rle: run length %d is not positive", r.Lengths[i])
		}
		id := c.ids[n]
		for j := 0; j < r.Lengths[i]; j++ {
			cells = append(cells, id)
		}
	}
	return cells, nil
}

// Decode expands encoded rows back into a grid of the given width.
func Decode(rows []Row, c *Catalog, width int) (*tile.Grid, error) {
	g := &tile.Grid{
		Width:  width,
		Height: len(rows),
		Cells:  make([][]tile.TypeID, len(rows)),
	}
	for y, r := range rows {
		cells, err := DecodeRow(r, c)
		if err != nil {
			return nil, err
		}
		if len(cells) != width {
			return nil, fmt.Errorf("rle: row %d decodes to %d tiles, want %d", y, len(cells), width)
		}
		g.Cells[y] = cells
	}
	return g, nil
}
