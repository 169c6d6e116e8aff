package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Generation settings, read from an optional yaml file and then overridden
// by command line flags or plugin parameters.
type Config struct {
	OutDir      string `yaml:"out_dir"`      // Directory the declarations are written to
	IndexFile   string `yaml:"index_file"`   // Contract and instance interfaces
	HeadersFile string `yaml:"headers_file"` // Truffle.Artifacts augmentation
	LogLevel    string `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		OutDir:      "types/truffle-contracts",
		IndexFile:   "index.d.ts",
		HeadersFile: "merge.d.ts",
		LogLevel:    "info",
	}
}

// loadConfig returns the defaults, overlaid with the yaml file at path if
// path is not empty. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

// set updates the output setting called key, using the names of the yaml
// keys. log_level is left out: by the time parameters arrive the logger
// already exists.
func (c *Config) set(key, value string) error {
	switch key {
	case "out_dir":
		c.OutDir = value
	case "index_file":
		c.IndexFile = value
	case "headers_file":
		c.HeadersFile = value
	default:
		return fmt.Errorf("unknown parameter '%s'", key)
	}
	return nil
}

// applyParameter applies a protoc style parameter string: comma separated
// key=value pairs.
func (c *Config) applyParameter(parameter string) error {
	for _, param := range strings.Split(parameter, ",") {
		param = strings.TrimSpace(param)
		if param == "" {
			continue
		}
		key, value, ok := strings.Cut(param, "=")
		if !ok {
			return fmt.Errorf("invalid parameter '%s', expected key=value", param)
		}
		if err := c.set(key, value); err != nil {
			return err
		}
	}

	return c.validate()
}

func (c *Config) validate() error {
	if c.IndexFile == "" || c.HeadersFile == "" {
		return fmt.Errorf("index_file and headers_file must not be empty")
	}
	if c.IndexFile == c.HeadersFile {
		return fmt.Errorf("index_file and headers_file must differ, both are '%s'", c.IndexFile)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func parseLevel(level string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return lvl, fmt.Errorf("invalid log_level '%s'", level)
	}
	return lvl, nil
}

// newLogger builds a console logger on stderr. Stdout is reserved for the
// plugin response.
func newLogger(level string, w zapcore.WriteSyncer) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(w), zap.NewAtomicLevelAt(lvl))
	return zap.New(core), nil
}
