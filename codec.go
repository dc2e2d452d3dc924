package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/klauspost/compress/zstd"
)

// MBZ is a lossless container for 8-bit grayscale rasters:
//
//	magic(4) + width(uint32) + height(uint32) + zstd frame of width*height bytes
//
// Rows are stored top to bottom without padding.

const (
	magicMBZ = "MBZ1"
)

var (
	ErrInvalidMagic = errors.New("mbz: invalid magic")
	ErrTruncated    = errors.New("mbz: truncated pixel data")
)

func init() {
	image.RegisterFormat("mbz", magicMBZ, Decode, DecodeConfig)
}

// Encode writes img as an MBZ stream. Non-gray images are converted with
// color.GrayModel.
func Encode(w io.Writer, img image.Image) error {
	gray := toGray(img)
	width, height := gray.Rect.Dx(), gray.Rect.Dy()

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(magicMBZ); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(width)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.BigEndian, uint32(height)); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	for y := range height {
		off := y * gray.Stride
		if _, err := enc.Write(gray.Pix[off : off+width]); err != nil {
			enc.Close()
			return err
		}
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return bw.Flush()
}

// DecodeConfig reads only the MBZ header.
func DecodeConfig(r io.Reader) (image.Config, error) {
	width, height, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.GrayModel, Width: width, Height: height}, nil
}

// Decode reads an MBZ stream produced by Encode.
func Decode(r io.Reader) (image.Image, error) {
	width, height, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	img := image.NewGray(image.Rect(0, 0, width, height))
	if _, err := io.ReadFull(dec, img.Pix); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncated
		}
		return nil, err
	}
	return img, nil
}

func readHeader(r io.Reader) (width, height int, err error) {
	magic := make([]byte, len(magicMBZ))
	if _, err := io.ReadFull(r, magic); err != nil {
		return 0, 0, err
	}
	if string(magic) != magicMBZ {
		return 0, 0, ErrInvalidMagic
	}

	var w32, h32 uint32
	if err := binary.Read(r, binary.BigEndian, &w32); err != nil {
		return 0, 0, err
	}
	if err := binary.Read(r, binary.BigEndian, &h32); err != nil {
		return 0, 0, err
	}
	if w32 == 0 || h32 == 0 || uint64(w32)*uint64(h32) > 1<<32 {
		return 0, 0, fmt.Errorf("mbz: bad dimensions %dx%d", w32, h32)
	}
	return int(w32), int(h32), nil
}

// toGray returns img as *image.Gray, converting only when needed.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetGray(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
		}
	}
	return dst
}
