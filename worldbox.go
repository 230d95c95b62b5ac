/*
Package worldbox converts raster images into compressed WorldBox save
documents.
*/
package worldbox

import "log"

// WorldBox ties together an optional palette database and a logger for the
// higher level file and directory operations.
type WorldBox struct {
	db     *PaletteDB
	logger *log.Logger
}

// New returns a WorldBox using the given palette database, which may be nil
// when only the built-in or file-based color tables are needed.
func New(db *PaletteDB, logger *log.Logger) *WorldBox {
	return &WorldBox{
		db:     db,
		logger: logger,
	}
}
