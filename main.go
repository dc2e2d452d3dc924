package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/profile"
)

func main() {
	if len(os.Args) != 5 {
		fmt.Fprint(os.Stderr, "Usage:\n  mandelbrot FILE PIXELS UPPERLEFT LOWERRIGHT\n")
		fmt.Fprintf(os.Stderr, "Example:\n  %s mandelbrot.png 1000x1000 -2.0,3.0 2.0,-3.0\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	conf, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}

	if err := run(conf, os.Args[1], os.Args[2], os.Args[3], os.Args[4]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(conf config, filename, pixels, upperLeft, lowerRight string) error {
	bounds, err := parseBounds(pixels)
	if err != nil {
		return fmt.Errorf("parsing image dimensions: %w", err)
	}
	ul, err := parseComplex(upperLeft)
	if err != nil {
		return fmt.Errorf("parsing upper left point: %w", err)
	}
	lr, err := parseComplex(lowerRight)
	if err != nil {
		return fmt.Errorf("parsing lower right point: %w", err)
	}

	if mode := profileMode(conf.Profile); mode != nil {
		defer profile.Start(mode, profile.ProfilePath(conf.OutputDir), profile.Quiet).Stop()
	}

	start := time.Now()
	buf, bands := renderParallel(bounds, ul, lr, conf.Workers, conf.Verbose)
	elapsed := time.Since(start)

	size, err := writeImage(conf.OutputDir, filename, buf, bounds)
	if err != nil {
		return fmt.Errorf("writing image: %w", err)
	}

	fmt.Printf("%s (%dx%d, %s)\n",
		filepath.Join(conf.OutputDir, filename),
		bounds.Width,
		bounds.Height,
		formatSize(size),
	)
	fmt.Printf("bands=%d, time=%s\n", bands, elapsed)
	return nil
}

// profileMode maps the profile config key onto a pkg/profile mode.
func profileMode(name string) func(*profile.Profile) {
	switch name {
	case "cpu":
		return profile.CPUProfile
	case "mem":
		return profile.MemProfile
	case "trace":
		return profile.TraceProfile
	}
	return nil
}

func formatSize(size int64) string {
	if size < 1024*1024 {
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	}
	return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
}
