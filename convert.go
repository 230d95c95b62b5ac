package worldbox

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"

	"github.com/bodgit/worldbox/rle"
	"github.com/bodgit/worldbox/save"
	"github.com/bodgit/worldbox/tile"
)

// ErrEmptyTable is returned when conversion is attempted without any color
// table entries.
var ErrEmptyTable = errors.New("worldbox: color table is empty")

// Options control a single conversion. The zero value converts with the
// default settings: no tolerance, the built-in fallback type and serial
// classification.
type Options struct {
	// Tolerance is the color matching tolerance percentage, 0-100.
	Tolerance int

	// Fallback overrides the tile type used for unmatched colors.
	Fallback tile.TypeID

	// Stats populates the mapStats record of the save document.
	Stats save.Stats

	// Workers and Progress are passed through to grid construction.
	Workers  int
	Progress tile.ProgressFunc
}

// UnmatchedColor is one entry of the unmatched color report.
type UnmatchedColor struct {
	Color tile.ColorKey
	Count int
}

// Report carries the diagnostics of a conversion. None of it affects the
// produced save document.
type Report struct {
	// Source image dimensions in pixels and the grid dimensions actually
	// used after cropping to whole zones.
	SourceWidth  int
	SourceHeight int
	GridWidth    int
	GridHeight   int

	// Unmatched tallies pixels whose color had no table match, per color.
	Unmatched map[tile.ColorKey]int
}

// Cropped reports whether any source rows or columns were discarded.
func (r *Report) Cropped() bool {
	return r.SourceWidth != r.GridWidth || r.SourceHeight != r.GridHeight
}

// TopUnmatched returns up to n unmatched colors ordered by descending pixel
// count, ties broken by color value for stable output.
func (r *Report) TopUnmatched(n int) []UnmatchedColor {
	out := make([]UnmatchedColor, 0, len(r.Unmatched))
	for k, c := range r.Unmatched {
		out = append(out, UnmatchedColor{k, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Color.String() < out[j].Color.String()
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Convert classifies m against table and returns the compressed save
// document together with a diagnostic report. The returned Grid is the
// classified tile grid, exposed for preview rendering; it is already
// embedded in the document and need not be retained otherwise.
func Convert(m image.Image, table *tile.ColorTable, opts Options) ([]byte, *tile.Grid, *Report, error) {
	if table == nil || table.Len() == 0 {
		return nil, nil, nil, ErrEmptyTable
	}

	g, unmatched, err := tile.BuildGrid(m, table, opts.Tolerance, tile.BuildOptions{
		Workers:  opts.Workers,
		Progress: opts.Progress,
		Fallback: opts.Fallback,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	catalog := rle.NewCatalog(g)
	rows, err := rle.Encode(g, catalog)
	if err != nil {
		return nil, nil, nil, err
	}

	d, err := save.Build(g.Width, g.Height, catalog, rows, opts.Stats)
	if err != nil {
		return nil, nil, nil, err
	}

	b, err := d.EncodeBytes()
	if err != nil {
		return nil, nil, nil, err
	}

	report := &Report{
		SourceWidth:  m.Bounds().Dx(),
		SourceHeight: m.Bounds().Dy(),
		GridWidth:    g.Width,
		GridHeight:   g.Height,
		Unmatched:    unmatched,
	}

	return b, g, report, nil
}

// ConvertFile decodes the image at in, converts it and writes the
// compressed save document to out. Crop and unmatched color diagnostics go
// to the logger.
func (w *WorldBox) ConvertFile(in, out string, table *tile.ColorTable, opts Options) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return err
	}

	b, _, report, err := Convert(m, table, opts)
	if err != nil {
		return err
	}

	w.logReport(in, report)

	return os.WriteFile(out, b, 0644)
}

func (w *WorldBox) logReport(name string, report *Report) {
	if report.Cropped() {
		w.logger.Printf("\"%s\": cropped %dx%d to %dx%d\n", name,
			report.SourceWidth, report.SourceHeight, report.GridWidth, report.GridHeight)
	}
	for _, u := range report.TopUnmatched(10) {
		w.logger.Printf("\"%s\": no match for color \"%s\" (%d pixels)\n", name, u.Color, u.Count)
	}
}
