// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads pdict configuration from a YAML file and environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	errNoDictionary = errors.New("no dictionary configured")
	errBadCapacity  = errors.New("invalid history capacity")
	errBadBlobSize  = errors.New("invalid max blob size")
	errBadLogFormat = errors.New("invalid log format")
)

// Config is the root configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	History    HistoryConfig    `yaml:"history"`
	Log        LogConfig        `yaml:"log"`
}

// DictionaryConfig selects the dictionary files and how they are read.
type DictionaryConfig struct {
	Info        string `yaml:"info"          env:"PDICT_INFO"`
	Index       string `yaml:"index"         env:"PDICT_INDEX"`
	Data        string `yaml:"data"          env:"PDICT_DATA"`
	HTML        bool   `yaml:"html"          env:"PDICT_HTML"`
	MaxBlobSize int    `yaml:"max_blob_size" env:"PDICT_MAX_BLOB_SIZE" env-default:"1048576"`
	Mmap        bool   `yaml:"mmap"          env:"PDICT_MMAP"`
}

// HistoryConfig holds lookup history settings. An empty path disables the
// history.
type HistoryConfig struct {
	Path     string `yaml:"path"     env:"PDICT_HISTORY"`
	Capacity int    `yaml:"capacity" env:"PDICT_HISTORY_CAPACITY" env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"PDICT_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"PDICT_LOG_FORMAT" env-default:"text"`
}

// Load reads the configuration. If path is not empty the YAML file at path
// is read first. Environment variables override file values and defaults
// fill in the rest.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration after command line overrides have been
// applied.
func (c *Config) Validate() error {
	d := c.Dictionary
	if d.Info == "" && (d.Index == "" || d.Data == "") {
		return fmt.Errorf("%w: set dictionary.info or both dictionary.index and dictionary.data", errNoDictionary)
	}
	if d.MaxBlobSize < 0 {
		return fmt.Errorf("%w: %d", errBadBlobSize, d.MaxBlobSize)
	}
	if c.History.Capacity <= 0 {
		return fmt.Errorf("%w: %d", errBadCapacity, c.History.Capacity)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: %q", errBadLogFormat, c.Log.Format)
	}
	return nil
}

// NewLogger returns a logger writing to w as configured. The format is
// "text" or "json" and the level is one of debug, info, warn or error.
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel parses a log level name. Unknown names are treated as warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
