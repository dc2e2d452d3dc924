package main

// escapeLimit is the iteration cap used for every rendered pixel.
const escapeLimit = 255

// escapeTime iterates z = z*z + c from z = 0 and reports the index of the
// first iteration whose result lies outside radius 2. If no iteration in
// [0, limit) escapes, it returns (limit, false) and c is taken to be in the
// Mandelbrot set.
func escapeTime(c complex128, limit int) (int, bool) {
	z := complex(0, 0)
	for i := range limit {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > 4 {
			return i, true
		}
	}
	return limit, false
}

// intensity converts an escape count into a gray level: points in the set
// are black, points that escape quickly are near white.
func intensity(i int, escaped bool) uint8 {
	if !escaped {
		return 0
	}
	if i > 255 {
		i = 255
	}
	return uint8(255 - i)
}
