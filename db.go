package worldbox

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bodgit/worldbox/tile"
)

// ErrNoPalette is returned when a named palette does not exist in the
// database.
var ErrNoPalette = errors.New("worldbox: no such palette")

// PaletteDB stores named color tables in a SQLite database so that palettes
// imported once can be reused across conversions.
type PaletteDB struct {
	db *sql.DB
}

// NewPaletteDB opens, creating if necessary, a palette database.
func NewPaletteDB(file string) (*PaletteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS palette (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS entry (palette_id INTEGER NOT NULL, position INTEGER NOT NULL, color TEXT NOT NULL, tile TEXT NOT NULL, UNIQUE(palette_id, color), FOREIGN KEY(palette_id) REFERENCES palette(id))"); err != nil {
		return nil, err
	}

	return &PaletteDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *PaletteDB) Close() error {
	return db.db.Close()
}

// ImportCSV loads a palette from a CSV file of color,tile rows and stores it
// under the given name, replacing any palette already stored there. A header
// row is skipped if the first cell does not parse as a color. Row order is
// preserved because it decides tolerance matching tie-breaks.
func (db *PaletteDB) ImportCSV(name, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := ReadColorTable(f)
	if err != nil {
		return err
	}

	id, err := db.addPalette(name)
	if err != nil {
		return err
	}

	if _, err := db.db.Exec("DELETE FROM entry WHERE palette_id = ?", id); err != nil {
		return err
	}

	for i, k := range t.Keys() {
		tid, _ := t.Lookup(k)
		if _, err := db.db.Exec("INSERT INTO entry (palette_id, position, color, tile) VALUES (?, ?, ?, ?)", id, i, k.String(), string(tid)); err != nil {
			return err
		}
	}

	return nil
}

// Table returns the named palette as a color table.
func (db *PaletteDB) Table(name string) (*tile.ColorTable, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM palette WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		return nil, ErrNoPalette
	case nil:
	default:
		return nil, err
	}

	rows, err := db.db.Query("SELECT color, tile FROM entry WHERE palette_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := tile.NewColorTable()
	for rows.Next() {
		var c, tid string
		if err := rows.Scan(&c, &tid); err != nil {
			return nil, err
		}
		k, err := tile.ParseColorKey(c)
		if err != nil {
			return nil, err
		}
		t.Add(k, tile.TypeID(tid))
	}

	return t, rows.Err()
}

// Palettes returns the names of every stored palette.
func (db *PaletteDB) Palettes() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM palette ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

func (db *PaletteDB) addPalette(name string) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM palette WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO palette (name) VALUES (?)", name)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// ReadColorTable parses color,tile CSV records from r into a color table. A
// leading header row is tolerated and skipped.
func ReadColorTable(r io.Reader) (*tile.ColorTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	t := tile.NewColorTable()
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		k, err := tile.ParseColorKey(rec[0])
		if err != nil {
			if first {
				// Header row
				first = false
				continue
			}
			return nil, fmt.Errorf("worldbox: bad color %q", rec[0])
		}
		first = false

		id := tile.TypeID(strings.TrimSpace(rec[1]))
		if id == "" {
			return nil, fmt.Errorf("worldbox: no tile type for color %q", rec[0])
		}
		t.Add(k, id)
	}

	return t, nil
}
