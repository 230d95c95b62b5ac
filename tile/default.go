package tile

// defaultEntries is the built-in color mapping used when no table is
// supplied. Order matters: tolerance ties resolve to the earliest entry.
var defaultEntries = []struct {
	color string
	id    TypeID
}{
	{"000080", "deep_ocean"},
	{"0000FF", "close_ocean"},
	{"D2B48C", "sand"},
	{"8B4513", "soil_low"},
	{"A0522D", "soil_high"},
	{"00FF00", "grass_low"},
	{"008000", "grass_high"},
	{"808080", "hills"},
	{"404040", "mountains"},
	{"FFFFFF", "snow"},
	{"FF4500", "lava"},
	{"ADD8E6", "ice"},
}

// DefaultTable returns a fresh copy of the built-in color table.
func DefaultTable() *ColorTable {
	t := NewColorTable()
	for _, e := range defaultEntries {
		k, err := ParseColorKey(e.color)
		if err != nil {
			panic("tile: bad built-in color " + e.color)
		}
		t.Add(k, e.id)
	}
	return t
}
