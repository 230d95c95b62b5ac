/*
Package tile implements the classification of raster pixels into WorldBox
tile types.

A world map is a dense grid of tile type identifiers, 64 tiles to a zone in
each direction. Source images are cropped, never scaled, so that both
dimensions are exact multiples of 64; anything past the last whole zone on
the right and bottom edges is discarded. Each pixel is then matched against
a color table, either exactly on its 24-bit RGB value or within a caller
supplied tolerance, and pixels that match nothing fall back to a default
tile type.
*/
package tile

// BlockSize is the width and height, in tiles, of one WorldBox zone. Grid
// dimensions are always exact multiples of it.
const BlockSize = 64

// DefaultFallback is the tile type substituted for any pixel whose color has
// no exact or tolerant match in the color table.
const DefaultFallback = TypeID("soil_low")

// TypeID names a terrain or material category understood by the game.
type TypeID string
