package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parsePair splits s at the first sep and parses both sides with parse.
// ok is false when sep is missing or either side does not parse.
func parsePair[T any](s string, sep byte, parse func(string) (T, error)) (left, right T, ok bool) {
	l, r, found := strings.Cut(s, string(sep))
	if !found {
		return left, right, false
	}
	left, err := parse(l)
	if err != nil {
		return left, right, false
	}
	right, err = parse(r)
	if err != nil {
		return left, right, false
	}
	return left, right, true
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// parseBounds parses "<width>x<height>" with both sides positive.
func parseBounds(s string) (Bounds, error) {
	w, h, ok := parsePair(s, 'x', strconv.Atoi)
	if !ok {
		return Bounds{}, fmt.Errorf("image dimensions %q: want <width>x<height>", s)
	}
	if w <= 0 || h <= 0 {
		return Bounds{}, fmt.Errorf("image dimensions %q: width and height must be positive", s)
	}
	// Image headers store 32-bit sizes; the pixel buffer needs w*h to fit in an int.
	if uint64(w) > math.MaxUint32 || uint64(h) > math.MaxUint32 {
		return Bounds{}, fmt.Errorf("image dimensions %q: width and height must not exceed %d", s, uint64(math.MaxUint32))
	}
	if w > math.MaxInt/h {
		return Bounds{}, fmt.Errorf("image dimensions %q: too many pixels", s)
	}
	return Bounds{Width: w, Height: h}, nil
}

// parseComplex parses "<re>,<im>".
func parseComplex(s string) (complex128, error) {
	re, im, ok := parsePair(s, ',', parseFloat)
	if !ok {
		return 0, fmt.Errorf("point %q: want <re>,<im>", s)
	}
	return complex(re, im), nil
}
