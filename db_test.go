package worldbox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/worldbox/tile"
)

const testCSV = `color,tile
000080,deep_ocean
ABCDEF,sand
00FF00,grass_low
`

func TestReadColorTable(t *testing.T) {
	table, err := ReadColorTable(strings.NewReader(testCSV))
	require.NoError(t, err)

	require.Equal(t, 3, table.Len())

	// Header row is skipped, entry order is preserved
	assert.Equal(t, "000080", table.Keys()[0].String())
	assert.Equal(t, "ABCDEF", table.Keys()[1].String())

	id, ok := table.Lookup(tile.ColorKey{R: 0xab, G: 0xcd, B: 0xef})
	require.True(t, ok)
	assert.Equal(t, tile.TypeID("sand"), id)
}

func TestReadColorTableNoHeader(t *testing.T) {
	table, err := ReadColorTable(strings.NewReader("112233,soil_low\n445566,soil_high\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestReadColorTableErrors(t *testing.T) {
	// A bad color anywhere past the first row is an error
	_, err := ReadColorTable(strings.NewReader("112233,soil_low\nnot-a-color,x\n"))
	assert.Error(t, err)

	// A missing tile type is an error
	_, err = ReadColorTable(strings.NewReader("112233, \n"))
	assert.Error(t, err)

	// Wrong field count
	_, err = ReadColorTable(strings.NewReader("112233,soil_low,extra\n"))
	assert.Error(t, err)
}

func TestPaletteDB(t *testing.T) {
	dir := t.TempDir()

	db, err := NewPaletteDB(filepath.Join(dir, "palettes.db"))
	require.NoError(t, err)
	defer db.Close()

	csv := filepath.Join(dir, "terrain.csv")
	require.NoError(t, os.WriteFile(csv, []byte(testCSV), 0644))

	require.NoError(t, db.ImportCSV("terrain", csv))

	table, err := db.Table("terrain")
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, "000080", table.Keys()[0].String())
	assert.Equal(t, "00FF00", table.Keys()[2].String())

	names, err := db.Palettes()
	require.NoError(t, err)
	assert.Equal(t, []string{"terrain"}, names)

	_, err = db.Table("missing")
	assert.ErrorIs(t, err, ErrNoPalette)
}

func TestPaletteDBReimport(t *testing.T) {
	dir := t.TempDir()

	db, err := NewPaletteDB(filepath.Join(dir, "palettes.db"))
	require.NoError(t, err)
	defer db.Close()

	csv := filepath.Join(dir, "terrain.csv")
	require.NoError(t, os.WriteFile(csv, []byte(testCSV), 0644))
	require.NoError(t, db.ImportCSV("terrain", csv))

	// Importing again under the same name replaces the entries
	require.NoError(t, os.WriteFile(csv, []byte("FFFFFF,snow\n"), 0644))
	require.NoError(t, db.ImportCSV("terrain", csv))

	table, err := db.Table("terrain")
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "FFFFFF", table.Keys()[0].String())
}
