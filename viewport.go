package main

// Bounds is the pixel size of a raster.
type Bounds struct {
	Width, Height int
}

// pixelToPoint maps pixel (column, row) of a raster with the given bounds onto
// the rectangle of the complex plane spanned by upperLeft and lowerRight.
// Pixels outside the raster extrapolate linearly.
func pixelToPoint(bounds Bounds, column, row int, upperLeft, lowerRight complex128) complex128 {
	width := real(lowerRight) - real(upperLeft)
	height := imag(upperLeft) - imag(lowerRight)
	return complex(
		real(upperLeft)+float64(column)*width/float64(bounds.Width),
		imag(upperLeft)-float64(row)*height/float64(bounds.Height),
	)
}
