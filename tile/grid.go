package tile

import (
	"errors"
	"image"
	"runtime"
	"sync"
)

// ErrTooSmall is returned when an image has less than one whole zone in
// either dimension after cropping.
var ErrTooSmall = errors.New("tile: image is smaller than one 64x64 zone")

// Grid is a dense map of tile types, indexed [row][col] with row 0 at the
// top of the source image. Both dimensions are exact multiples of BlockSize.
type Grid struct {
	Width  int
	Height int
	Cells  [][]TypeID
}

// Row returns one row of the grid.
func (g *Grid) Row(y int) []TypeID {
	return g.Cells[y]
}

// ProgressFunc receives coarse progress notifications while a grid is being
// built. done never decreases and the final call is always done == total.
// Advisory only; it has no effect on the produced grid.
type ProgressFunc func(done, total int)

// BuildOptions control grid construction.
type BuildOptions struct {
	// Workers is the number of classification goroutines. Zero means one
	// per CPU. Pixel classification is independent per pixel so this only
	// affects speed, never output.
	Workers int

	// Progress, if non-nil, is invoked as rows complete.
	Progress ProgressFunc

	// Fallback overrides DefaultFallback as the tile type for unmatched
	// colors.
	Fallback TypeID
}

// BuildGrid classifies every pixel of m into a tile grid. The image is
// cropped from the bottom and right to whole multiples of BlockSize before
// classification; the caller is told nothing about the crop beyond the
// resulting grid dimensions. The returned tally maps each unmatched color to
// the number of pixels that carried it.
func BuildGrid(m image.Image, table *ColorTable, tolerance int, opts BuildOptions) (*Grid, map[ColorKey]int, error) {
	b := m.Bounds()

	w := b.Dx() / BlockSize * BlockSize
	h := b.Dy() / BlockSize * BlockSize
	if w == 0 || h == 0 {
		return nil, nil, ErrTooSmall
	}

	g := &Grid{
		Width:  w,
		Height: h,
		Cells:  make([][]TypeID, h),
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > h {
		workers = h
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		done     int
		tallies  = make([]*Classifier, workers)
		rows     = make(chan int)
		total    = w * h
		progress = opts.Progress
	)

	for i := 0; i < workers; i++ {
		c := NewClassifier(table, tolerance)
		if opts.Fallback != "" {
			c.SetFallback(opts.Fallback)
		}
		tallies[i] = c
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				row := make([]TypeID, w)
				for x := 0; x < w; x++ {
					row[x] = c.Classify(ColorKeyOf(m.At(b.Min.X+x, b.Min.Y+y)))
				}
				// Written into place by index so the grid stays in
				// row-major order whatever the completion order.
				g.Cells[y] = row

				if progress != nil {
					mu.Lock()
					done += w
					progress(done, total)
					mu.Unlock()
				}
			}
		}()
	}

	for y := 0; y < h; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	// Each worker kept its own tally; fold them together now.
	unmatched := tallies[0]
	for _, c := range tallies[1:] {
		unmatched.merge(c)
	}

	return g, unmatched.Unmatched(), nil
}
