package main

import (
	"bytes"
	"testing"
)

func TestRenderKnownPixels(t *testing.T) {
	bounds := Bounds{Width: 3, Height: 3}
	pixels := make([]uint8, 9)
	render(pixels, bounds, complex(-1, 1), complex(1, -1))

	// (-1+i) escapes at iteration 2; (-1/3+i/3) is in the set.
	if pixels[0] != 253 {
		t.Fatalf("pixel (0,0)=%d, want 253", pixels[0])
	}
	if pixels[4] != 0 {
		t.Fatalf("pixel (1,1)=%d, want 0", pixels[4])
	}
}

func TestRenderPanicsOnSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for short buffer")
		}
	}()
	render(make([]uint8, 11), Bounds{Width: 4, Height: 3}, complex(-2, 1), complex(1, -1))
}

func TestSplitBandsCoversAllRows(t *testing.T) {
	ul, lr := complex(-2.0, 1.5), complex(1.0, -1.5)
	for height := 1; height <= 40; height++ {
		for workers := 0; workers <= 12; workers++ {
			bounds := Bounds{Width: 3, Height: height}
			pixels := make([]uint8, bounds.Width*bounds.Height)
			bands := splitBands(pixels, bounds, ul, lr, workers)

			if len(bands) == 0 || len(bands) > max(workers, 1) {
				t.Fatalf("h=%d workers=%d: %d bands", height, workers, len(bands))
			}
			next := 0
			for i, b := range bands {
				if b.Top != next {
					t.Fatalf("h=%d workers=%d: band %d starts at %d, want %d", height, workers, i, b.Top, next)
				}
				if b.Rows <= 0 {
					t.Fatalf("h=%d workers=%d: band %d is empty", height, workers, i)
				}
				if i < len(bands)-1 && b.Rows != bands[0].Rows {
					t.Fatalf("h=%d workers=%d: band %d has %d rows, want %d", height, workers, i, b.Rows, bands[0].Rows)
				}
				if len(b.Pixels) != b.Rows*bounds.Width {
					t.Fatalf("h=%d workers=%d: band %d holds %d bytes", height, workers, i, len(b.Pixels))
				}
				if &b.Pixels[0] != &pixels[b.Top*bounds.Width] {
					t.Fatalf("h=%d workers=%d: band %d does not alias the pixel buffer", height, workers, i)
				}
				next += b.Rows
			}
			if next != height {
				t.Fatalf("h=%d workers=%d: bands cover %d rows", height, workers, next)
			}
		}
	}
}

func TestSplitBandsCorners(t *testing.T) {
	bounds := Bounds{Width: 100, Height: 100}
	ul, lr := complex(-1.0, 1.0), complex(1.0, -1.0)
	bands := splitBands(make([]uint8, 100*100), bounds, ul, lr, 2)
	if len(bands) != 2 {
		t.Fatalf("bands=%d, want 2", len(bands))
	}
	if bands[0].UpperLeft != ul || bands[0].LowerRight != complex(1, 0) {
		t.Fatalf("first band corners=%v..%v", bands[0].UpperLeft, bands[0].LowerRight)
	}
	if bands[1].UpperLeft != complex(-1, 0) || bands[1].LowerRight != lr {
		t.Fatalf("second band corners=%v..%v", bands[1].UpperLeft, bands[1].LowerRight)
	}
}

func TestRenderParallelBandCount(t *testing.T) {
	tests := []struct {
		height, workers, want int
	}{
		{height: 3, workers: 8, want: 3},
		{height: 10, workers: 8, want: 5},
		{height: 16, workers: 8, want: 8},
		{height: 17, workers: 8, want: 6},
		{height: 5, workers: 1, want: 1},
	}
	for _, tc := range tests {
		_, got := renderParallel(Bounds{Width: 2, Height: tc.height}, complex(-2, 1), complex(1, -1), tc.workers, false)
		if got != tc.want {
			t.Fatalf("height=%d workers=%d: bands=%d, want %d", tc.height, tc.workers, got, tc.want)
		}
	}
}

func TestRenderParallelMatchesSequential(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		ul, lr complex128
	}{
		{name: "full set", bounds: Bounds{Width: 64, Height: 48}, ul: complex(-2.0, 1.2), lr: complex(0.6, -1.2)},
		{name: "seahorse valley", bounds: Bounds{Width: 37, Height: 29}, ul: complex(-0.8, 0.15), lr: complex(-0.7, 0.05)},
		{name: "single row", bounds: Bounds{Width: 50, Height: 1}, ul: complex(-2, 0), lr: complex(1, -0.1)},
		{name: "single column", bounds: Bounds{Width: 1, Height: 33}, ul: complex(-0.75, 1), lr: complex(-0.74, -1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			want := make([]uint8, tc.bounds.Width*tc.bounds.Height)
			render(want, tc.bounds, tc.ul, tc.lr)

			for _, workers := range []int{1, 2, 3, 7, 8, 64} {
				got, bands := renderParallel(tc.bounds, tc.ul, tc.lr, workers, false)
				if !bytes.Equal(got, want) {
					t.Fatalf("workers=%d: output differs from sequential render", workers)
				}
				if bands < 1 || bands > min(workers, tc.bounds.Height) {
					t.Fatalf("workers=%d height=%d: bands=%d", workers, tc.bounds.Height, bands)
				}
			}
		})
	}
}
