package save

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/worldbox/rle"
	"github.com/bodgit/worldbox/tile"
)

func testGrid(w, h int) (*tile.Grid, *rle.Catalog, []rle.Row) {
	rows := make([][]tile.TypeID, h)
	for y := range rows {
		rows[y] = make([]tile.TypeID, w)
		for x := range rows[y] {
			rows[y][x] = "sand"
		}
	}
	g := &tile.Grid{Width: w, Height: h, Cells: rows}
	c := rle.NewCatalog(g)
	encoded, err := rle.Encode(g, c)
	if err != nil {
		panic(err)
	}
	return g, c, encoded
}

func TestBuildZoneConversion(t *testing.T) {
	_, c, rows := testGrid(128, 192)

	d, err := Build(128, 192, c, rows, Stats{})
	require.NoError(t, err)

	assert.Equal(t, 2, d.Width)
	assert.Equal(t, 3, d.Height)
	assert.Equal(t, Version, d.SaveVersion)
}

func TestBuildValidatesDimensions(t *testing.T) {
	_, c, rows := testGrid(64, 64)

	for _, d := range []struct{ w, h int }{
		{100, 64},
		{64, 100},
		{0, 64},
		{64, 0},
		{-64, 64},
	} {
		_, err := Build(d.w, d.h, c, rows, Stats{})
		assert.Error(t, err, "%dx%d", d.w, d.h)
	}

	// Row count must match the height
	_, err := Build(64, 128, c, rows, Stats{})
	assert.Error(t, err)
}

func TestBuildWorldTime(t *testing.T) {
	_, c, rows := testGrid(64, 64)

	d, err := Build(64, 64, c, rows, Stats{WorldTime: 7})
	require.NoError(t, err)

	// Seven months at the fixed 300 seconds per month
	assert.Equal(t, int64(2100), d.MapStats.WorldTime)
}

func TestBuildMapStats(t *testing.T) {
	_, c, rows := testGrid(64, 64)

	d, err := Build(64, 64, c, rows, Stats{
		PlayerName:    "godling",
		Population:    120,
		Deaths:        7,
		CreaturesBorn: 300,
	})
	require.NoError(t, err)

	assert.Equal(t, "godling", d.MapStats.Name)
	assert.Equal(t, 120, d.MapStats.Population)
	assert.Equal(t, 7, d.MapStats.Deaths)
	assert.Equal(t, 300, d.MapStats.CreaturesBorn)
	assert.Equal(t, int64(0), d.MapStats.WorldTime)
}

func TestBuildCameraDefaults(t *testing.T) {
	_, c, rows := testGrid(128, 64)

	d, err := Build(128, 64, c, rows, Stats{})
	require.NoError(t, err)

	assert.Equal(t, Vec2{X: 64, Y: 32}, d.CameraPos)
	assert.Equal(t, defaultCameraZoom, d.CameraZoom)
}

func TestBuildTileData(t *testing.T) {
	_, c, rows := testGrid(64, 64)

	d, err := Build(64, 64, c, rows, Stats{})
	require.NoError(t, err)

	assert.Equal(t, []tile.TypeID{"sand"}, d.TileMap)
	require.Len(t, d.TileArray, 64)
	require.Len(t, d.TileAmounts, 64)
	for y := range d.TileArray {
		assert.Equal(t, []int{0}, d.TileArray[y])
		assert.Equal(t, []int{64}, d.TileAmounts[y])
	}
}

func TestEmptyCollectionsPresent(t *testing.T) {
	_, c, rows := testGrid(64, 64)

	d, err := Build(64, 64, c, rows, Stats{})
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &m))

	// The game's parser requires these even though they are never
	// populated by the converter.
	for _, field := range []string{
		"actors", "buildings", "cities", "kingdoms", "cultures",
		"clans", "wars", "alliances", "plots", "relations",
	} {
		require.Contains(t, m, field)
		assert.Equal(t, "[]", string(m[field]), field)
	}
}
