package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/townmi/qrencode"
)

// config holds every setting of the tool. Values come from defaults, then the
// YAML file named by --config, then explicitly set flags.
type config struct {
	Level    string `yaml:"level"`
	Version  int    `yaml:"version"`
	Mask     *int   `yaml:"mask"`
	PNG      string `yaml:"png"`
	Size     int    `yaml:"size"`
	Small    bool   `yaml:"small"`
	Invert   bool   `yaml:"invert"`
	NoBorder bool   `yaml:"no_border"`
	Verbose  bool   `yaml:"verbose"`
}

func defaultConfig() *config {
	return &config{
		Level: "H",
		Size:  256,
	}
}

// loadConfig reads a YAML config file over cfg. Unknown keys are an error.
func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	return nil
}

// applyFlags overrides cfg with the flags set on the command line.
func (cfg *config) applyFlags(c *cli.Context) {
	if c.IsSet("level") {
		cfg.Level = c.String("level")
	}
	if c.IsSet("version") {
		cfg.Version = c.Int("version")
	}
	if c.IsSet("mask") {
		m := c.Int("mask")
		cfg.Mask = &m
	}
	if c.IsSet("png") {
		cfg.PNG = c.String("png")
	}
	if c.IsSet("size") {
		cfg.Size = c.Int("size")
	}
	if c.IsSet("small") {
		cfg.Small = c.Bool("small")
	}
	if c.IsSet("invert") {
		cfg.Invert = c.Bool("invert")
	}
	if c.IsSet("no-border") {
		cfg.NoBorder = c.Bool("no-border")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
}

// encoderOptions converts cfg into a level and encoder options.
func (cfg *config) encoderOptions(logger *log.Logger) (qrencode.Level, []qrencode.Option, error) {
	level, err := qrencode.ParseLevel(cfg.Level)
	if err != nil {
		return 0, nil, err
	}

	opts := []qrencode.Option{qrencode.WithLogger(logger)}
	if cfg.Version != 0 {
		opts = append(opts, qrencode.WithVersion(cfg.Version))
	}
	if cfg.Mask != nil {
		opts = append(opts, qrencode.WithMask(*cfg.Mask))
	}

	return level, opts, nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "qrcode",
	})
}
