package main

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"
)

// grayImage wraps a row-major pixel buffer as an image without copying.
func grayImage(pixels []uint8, bounds Bounds) *image.Gray {
	return &image.Gray{
		Pix:    pixels,
		Stride: bounds.Width,
		Rect:   image.Rect(0, 0, bounds.Width, bounds.Height),
	}
}

// encodeImage writes img in the format implied by the extension of name.
// Unknown extensions get PNG.
func encodeImage(w io.Writer, name string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".qoi":
		return qoi.Encode(w, img)
	case ".mbz":
		return Encode(w, img)
	default:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	}
}

// writeImage encodes pixels into dir/filename and returns the file size.
// The image goes to a temporary file first, so a failed write never leaves
// a partial file under the final name.
func writeImage(dir, filename string, pixels []uint8, bounds Bounds) (int64, error) {
	outPath := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), "."+filepath.Base(outPath)+"-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	if err := encodeImage(tmp, filename, grayImage(pixels, bounds)); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("encode %s: %w", filename, err)
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return 0, err
	}
	return info.Size(), nil
}
