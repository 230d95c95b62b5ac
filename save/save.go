/*
Package save implements the WorldBox save document and its compressed
on-disk encoding.

A save is a JSON document, zlib compressed in one piece, conventionally
written with a .wbox extension. Spatial extents are stored in zones, where
one zone is 64 tiles on a side, and tile data is stored run-length encoded
against a tile type catalog (see the rle package). The game's parser
requires every entity collection to be present even when empty, so the
document always carries them.
*/
package save

import (
	"fmt"

	"github.com/bodgit/worldbox/rle"
	"github.com/bodgit/worldbox/tile"
)

// Version is the save format version written into every document.
const Version = 12

// Extension is the conventional file extension for a compressed save.
const Extension = ".wbox"

// secondsPerMonth converts the stats worldTime, expressed in months, into
// the seconds stored in the document. The multiplier is part of the save
// format; it is not a real-world unit conversion.
const secondsPerMonth = 5 * 60

// Default camera placement for a freshly generated map.
const (
	defaultCameraZoom = 30.0
)

// Stats is the caller supplied map statistics. The zero value is valid.
type Stats struct {
	PlayerName    string
	Population    int
	Deaths        int
	CreaturesBorn int
	// WorldTime is the age of the world in months.
	WorldTime int
}

// MapStats is the mapStats sub-record of the document.
type MapStats struct {
	Name          string `json:"name"`
	Population    int    `json:"population"`
	Deaths        int    `json:"deaths"`
	CreaturesBorn int    `json:"creaturesBorn"`
	// WorldTime is stored in seconds.
	WorldTime int64 `json:"worldTime"`
}

// Vec2 is a camera position in tile coordinates.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// collection is an entity list the converter never populates but the game's
// parser still expects to find.
type collection []struct{}

// Document is the versioned save record. Field order is fixed; the game
// reads the document by name but reference output is compared byte for byte
// in tests.
type Document struct {
	SaveVersion int      `json:"saveVersion"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	CameraPos   Vec2     `json:"cameraPos"`
	CameraZoom  float64  `json:"cameraZoom"`
	MapStats    MapStats `json:"mapStats"`

	TileMap     []tile.TypeID `json:"tileMap"`
	TileArray   [][]int       `json:"tileArray"`
	TileAmounts [][]int       `json:"tileAmounts"`

	Actors    collection `json:"actors"`
	Buildings collection `json:"buildings"`
	Cities    collection `json:"cities"`
	Kingdoms  collection `json:"kingdoms"`
	Cultures  collection `json:"cultures"`
	Clans     collection `json:"clans"`
	Wars      collection `json:"wars"`
	Alliances collection `json:"alliances"`
	Plots     collection `json:"plots"`
	Relations collection `json:"relations"`
}

// Build assembles a document from encoded tile data. tileWidth and
// tileHeight are the grid dimensions in tiles and must both be exact
// multiples of the zone size.
func Build(tileWidth, tileHeight int, catalog *rle.Catalog, rows []rle.Row, stats Stats) (*Document, error) {
	if tileWidth <= 0 || tileWidth%tile.BlockSize != 0 {
		return nil, fmt.Errorf("save: width %d is not a positive multiple of %d", tileWidth, tile.BlockSize)
	}
	if tileHeight <= 0 || tileHeight%tile.BlockSize != 0 {
		return nil, fmt.Errorf("save: height %d is not a positive multiple of %d", tileHeight, tile.BlockSize)
	}
	if len(rows) != tileHeight {
		return nil, fmt.Errorf("save: %d encoded rows for a height of %d tiles", len(rows), tileHeight)
	}

	d := &Document{
		SaveVersion: Version,
		Width:       tileWidth / tile.BlockSize,
		Height:      tileHeight / tile.BlockSize,
		CameraPos: Vec2{
			X: float64(tileWidth) / 2,
			Y: float64(tileHeight) / 2,
		},
		CameraZoom: defaultCameraZoom,
		MapStats: MapStats{
			Name:          stats.PlayerName,
			Population:    stats.Population,
			Deaths:        stats.Deaths,
			CreaturesBorn: stats.CreaturesBorn,
			WorldTime:     int64(stats.WorldTime) * secondsPerMonth,
		},
		TileMap:     catalog.IDs(),
		TileArray:   make([][]int, len(rows)),
		TileAmounts: make([][]int, len(rows)),

		Actors:    collection{},
		Buildings: collection{},
		Cities:    collection{},
		Kingdoms:  collection{},
		Cultures:  collection{},
		Clans:     collection{},
		Wars:      collection{},
		Alliances: collection{},
		Plots:     collection{},
		Relations: collection{},
	}

	for y, r := range rows {
		d.TileArray[y] = r.Indices
		d.TileAmounts[y] = r.Lengths
	}

	return d, nil
}
