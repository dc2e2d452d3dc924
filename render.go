package main

import (
	"fmt"
	"log"

	"gopkg.in/tomb.v2"
)

// band is a run of whole rows of the full raster. Pixels is a view into the
// shared pixel buffer and is written only by the goroutine rendering it.
type band struct {
	Top, Rows int
	Pixels    []uint8

	// Corners of the band in the complex plane, for progress reporting.
	// Pixels are mapped against the full raster, not between these.
	UpperLeft, LowerRight complex128
}

// render fills pixels with the escape-time image of the viewport spanned by
// upperLeft and lowerRight. pixels must hold exactly bounds.Width*bounds.Height
// bytes in row-major order.
func render(pixels []uint8, bounds Bounds, upperLeft, lowerRight complex128) {
	renderRows(pixels, bounds, 0, bounds.Height, upperLeft, lowerRight)
}

// renderRows renders rows [top, top+rows) of the raster into pixels, which
// holds only those rows. Points are mapped against the whole raster so the
// output does not depend on how the image was cut into bands.
func renderRows(pixels []uint8, bounds Bounds, top, rows int, upperLeft, lowerRight complex128) {
	if len(pixels) != bounds.Width*rows {
		panic(fmt.Sprintf("render: buffer holds %d bytes, want %dx%d", len(pixels), bounds.Width, rows))
	}
	for row := range rows {
		line := pixels[row*bounds.Width : (row+1)*bounds.Width]
		for column := range line {
			point := pixelToPoint(bounds, column, top+row, upperLeft, lowerRight)
			line[column] = intensity(escapeTime(point, escapeLimit))
		}
	}
}

// splitBands cuts pixels into at most workers bands of whole rows. Every band
// but the last has the same height; the last one takes what is left.
func splitBands(pixels []uint8, bounds Bounds, upperLeft, lowerRight complex128, workers int) []band {
	if len(pixels) != bounds.Width*bounds.Height {
		panic(fmt.Sprintf("split: buffer holds %d bytes, want %dx%d", len(pixels), bounds.Width, bounds.Height))
	}
	if workers > bounds.Height {
		workers = bounds.Height
	}
	if workers < 1 {
		workers = 1
	}

	rowsPerBand := (bounds.Height + workers - 1) / workers

	bands := make([]band, 0, workers)
	for top := 0; top < bounds.Height; top += rowsPerBand {
		rows := min(rowsPerBand, bounds.Height-top)
		lo, hi := top*bounds.Width, (top+rows)*bounds.Width
		bands = append(bands, band{
			Top:        top,
			Rows:       rows,
			Pixels:     pixels[lo:hi:hi],
			UpperLeft:  pixelToPoint(bounds, 0, top, upperLeft, lowerRight),
			LowerRight: pixelToPoint(bounds, bounds.Width, top+rows, upperLeft, lowerRight),
		})
	}
	return bands
}

// renderParallel renders the whole raster, one goroutine per band, and
// returns the row-major pixel buffer and the number of bands once every band
// is done.
func renderParallel(bounds Bounds, upperLeft, lowerRight complex128, workers int, verbose bool) ([]uint8, int) {
	pixels := make([]uint8, bounds.Width*bounds.Height)
	if len(pixels) == 0 {
		return pixels, 0
	}

	bands := splitBands(pixels, bounds, upperLeft, lowerRight, workers)
	if verbose {
		log.Printf("bands: %d, rows per band: %d, last band rows: %d",
			len(bands), bands[0].Rows, bands[len(bands)-1].Rows)
	}

	// The parent goroutine keeps the tomb alive until every band is started.
	var t tomb.Tomb
	t.Go(func() error {
		for _, b := range bands {
			t.Go(func() error {
				renderRows(b.Pixels, bounds, b.Top, b.Rows, upperLeft, lowerRight)
				if verbose {
					log.Printf("band rows %d-%d done (%v to %v)", b.Top, b.Top+b.Rows-1, b.UpperLeft, b.LowerRight)
				}
				return nil
			})
		}
		return nil
	})
	// Band goroutines never fail.
	_ = t.Wait()

	return pixels, len(bands)
}
