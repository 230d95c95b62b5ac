/*
Package preview renders a classified tile grid back into a PNG so the result
of color matching can be inspected before the save is loaded into the game.

Each tile type is drawn with the first color mapped to it in the color
table; tile types with no table entry (typically the fallback type) are
drawn black. PNG palettes hold at most 256 colors, so oversized palettes are
reduced with a median cut quantizer first.
*/
package preview

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/bodgit/worldbox/tile"
)

const maxPaletteSize = 256

// colorFor builds the reverse mapping from tile type to display color. The
// first table entry for a type wins, matching classification tie-breaks.
func colorFor(t *tile.ColorTable) map[tile.TypeID]color.RGBA {
	m := make(map[tile.TypeID]color.RGBA)
	for _, k := range t.Keys() {
		id, _ := t.Lookup(k)
		if _, ok := m[id]; !ok {
			m[id] = color.RGBA{k.R, k.G, k.B, 0xff}
		}
	}
	return m
}

// Encode writes g to w as a PNG, one pixel per tile.
func Encode(w io.Writer, g *tile.Grid, t *tile.ColorTable) error {
	colors := colorFor(t)

	m := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y, row := range g.Cells {
		for x, id := range row {
			c, ok := colors[id]
			if !ok {
				c = color.RGBA{A: 0xff}
			}
			m.SetRGBA(x, y, c)
		}
	}

	// Palette in table order so identical inputs produce identical bytes.
	palette := make(color.Palette, 0, len(colors)+1)
	palette = append(palette, color.RGBA{A: 0xff})
	seen := make(map[tile.TypeID]bool)
	for _, k := range t.Keys() {
		id, _ := t.Lookup(k)
		if !seen[id] {
			seen[id] = true
			palette = append(palette, colors[id])
		}
	}

	if len(palette) > maxPaletteSize {
		q := quantize.MedianCutQuantizer{}
		palette = q.Quantize(make(color.Palette, 0, maxPaletteSize), m)
	}

	pm := image.NewPaletted(m.Bounds(), palette)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			pm.Set(x, y, m.RGBAAt(x, y))
		}
	}

	return png.Encode(w, pm)
}
