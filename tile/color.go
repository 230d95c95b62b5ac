package tile

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var errBadColor = errors.New("tile: color must be six hexadecimal digits")

// ColorKey is a 24-bit RGB value. Alpha is always discarded before a key is
// formed so two pixels that differ only in transparency compare equal.
type ColorKey struct {
	R, G, B uint8
}

// ColorKeyOf truncates an image/color value to its 24-bit RGB key. The
// value is un-premultiplied first so alpha never bleeds into the channels.
func ColorKeyOf(c color.Color) ColorKey {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ColorKey{n.R, n.G, n.B}
}

// ParseColorKey parses a six digit hexadecimal "RRGGBB" string, with or
// without a leading '#'.
func ParseColorKey(s string) (ColorKey, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return ColorKey{}, errBadColor
	}
	v, err := strconv.ParseUint(s, 16, 24)
	if err != nil {
		return ColorKey{}, errBadColor
	}
	return ColorKey{uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
}

// String returns the canonical uppercase "RRGGBB" form.
func (k ColorKey) String() string {
	return fmt.Sprintf("%02X%02X%02X", k.R, k.G, k.B)
}

// RGBA implements the color.Color interface with full opacity.
func (k ColorKey) RGBA() (r, g, b, a uint32) {
	return color.RGBA{k.R, k.G, k.B, 0xff}.RGBA()
}

// ColorTable maps colors to tile types. Insertion order is preserved because
// tolerance matching breaks ties in favour of the earliest entry, so two
// tables with the same entries in a different order are not interchangeable.
type ColorTable struct {
	keys []ColorKey
	ids  map[ColorKey]TypeID
}

// NewColorTable returns an empty table.
func NewColorTable() *ColorTable {
	return &ColorTable{
		ids: make(map[ColorKey]TypeID),
	}
}

// Add maps a color to a tile type. Adding a color twice keeps its original
// position but updates the tile type.
func (t *ColorTable) Add(k ColorKey, id TypeID) {
	if _, ok := t.ids[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.ids[k] = id
}

// Lookup returns the tile type for an exact color match.
func (t *ColorTable) Lookup(k ColorKey) (TypeID, bool) {
	id, ok := t.ids[k]
	return id, ok
}

// Len returns the number of distinct colors in the table.
func (t *ColorTable) Len() int {
	return len(t.keys)
}

// Keys returns the colors in insertion order. The caller must not modify the
// returned slice.
func (t *ColorTable) Keys() []ColorKey {
	return t.keys
}
