package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *ColorTable {
	table := NewColorTable()
	table.Add(ColorKey{0x00, 0x00, 0x00}, "deep_ocean")
	table.Add(ColorKey{0xab, 0xcd, 0xef}, "sand")
	table.Add(ColorKey{0xff, 0xff, 0xff}, "snow")
	return table
}

func TestClassifyExact(t *testing.T) {
	c := NewClassifier(testTable(), 0)

	assert.Equal(t, TypeID("sand"), c.Classify(ColorKey{0xab, 0xcd, 0xef}))
	assert.Equal(t, TypeID("deep_ocean"), c.Classify(ColorKey{0x00, 0x00, 0x00}))
	assert.Empty(t, c.Unmatched())
}

func TestClassifyExactBeatsTolerance(t *testing.T) {
	table := NewColorTable()
	table.Add(ColorKey{0x00, 0x00, 0x00}, "deep_ocean")
	table.Add(ColorKey{0x00, 0x00, 0x01}, "close_ocean")

	// Even at maximum tolerance an exact match must never be overridden
	// by a nearby entry added earlier.
	c := NewClassifier(table, 100)
	assert.Equal(t, TypeID("close_ocean"), c.Classify(ColorKey{0x00, 0x00, 0x01}))
}

func TestClassifyTolerance(t *testing.T) {
	c := NewClassifier(testTable(), 10)

	// (10, 10, 10) is ~3.9% away from black, well within 10%
	assert.Equal(t, TypeID("deep_ocean"), c.Classify(ColorKey{0x0a, 0x0a, 0x0a}))

	// (128, 128, 128) is ~29% away from both black and white
	assert.Equal(t, DefaultFallback, c.Classify(ColorKey{0x80, 0x80, 0x80}))
	assert.Equal(t, map[ColorKey]int{{0x80, 0x80, 0x80}: 1}, c.Unmatched())
}

func TestClassifyToleranceTieBreak(t *testing.T) {
	table := NewColorTable()
	table.Add(ColorKey{0x00, 0x00, 0x00}, "first")
	table.Add(ColorKey{0x00, 0x00, 0x28}, "second")

	// (0, 0, 20) is equidistant from both entries; the earlier one wins
	c := NewClassifier(table, 50)
	assert.Equal(t, TypeID("first"), c.Classify(ColorKey{0x00, 0x00, 0x14}))
}

func TestClassifyDeterminism(t *testing.T) {
	c := NewClassifier(testTable(), 25)

	want := c.Classify(ColorKey{0x10, 0x20, 0x30})
	for i := 0; i < 100; i++ {
		require.Equal(t, want, c.Classify(ColorKey{0x10, 0x20, 0x30}))
	}
}

func TestClassifyFallbackTally(t *testing.T) {
	c := NewClassifier(testTable(), 0)

	assert.Equal(t, DefaultFallback, c.Classify(ColorKey{0x12, 0x34, 0x56}))
	assert.Equal(t, map[ColorKey]int{{0x12, 0x34, 0x56}: 1}, c.Unmatched())

	c.Classify(ColorKey{0x12, 0x34, 0x56})
	c.Classify(ColorKey{0x65, 0x43, 0x21})
	assert.Equal(t, map[ColorKey]int{
		{0x12, 0x34, 0x56}: 2,
		{0x65, 0x43, 0x21}: 1,
	}, c.Unmatched())
}

func TestClassifyCustomFallback(t *testing.T) {
	c := NewClassifier(testTable(), 0)
	c.SetFallback("grass_low")

	assert.Equal(t, TypeID("grass_low"), c.Classify(ColorKey{0x12, 0x34, 0x56}))
}

func TestClassifyToleranceClamped(t *testing.T) {
	// Negative behaves as zero
	c := NewClassifier(testTable(), -5)
	assert.Equal(t, DefaultFallback, c.Classify(ColorKey{0x01, 0x00, 0x00}))

	// Above 100 behaves as 100, which matches everything somewhere
	c = NewClassifier(testTable(), 200)
	assert.Equal(t, TypeID("deep_ocean"), c.Classify(ColorKey{0x40, 0x40, 0x40}))
}
