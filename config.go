package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	envPrefix         = "MANDELBROT_"
	envConfigFile     = envPrefix + "CONFIG"
	defaultConfigFile = "mandelbrot.toml"
)

type config struct {
	Workers   int    `koanf:"workers"`
	OutputDir string `koanf:"output_dir"`
	Verbose   bool   `koanf:"verbose"`
	Profile   string `koanf:"profile"`
}

// loadConfig layers defaults, an optional TOML file and MANDELBROT_*
// environment variables, in that order.
func loadConfig() (config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"workers":    8,
		"output_dir": "assets",
		"verbose":    false,
		"profile":    "",
	}, "."), nil); err != nil {
		return config{}, err
	}

	path, explicit := os.LookupEnv(envConfigFile)
	if !explicit {
		path = defaultConfigFile
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		// The default file is optional; an explicitly named one is not.
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return config{}, err
	}

	var conf config
	if err := k.Unmarshal("", &conf); err != nil {
		return config{}, fmt.Errorf("parse config: %w", err)
	}
	if conf.Workers < 1 {
		return config{}, fmt.Errorf("workers must be at least 1, got %d", conf.Workers)
	}
	switch conf.Profile {
	case "", "cpu", "mem", "trace":
	default:
		return config{}, fmt.Errorf("unknown profile %q (want cpu, mem or trace)", conf.Profile)
	}
	return conf, nil
}
