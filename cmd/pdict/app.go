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

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-pocketdict"
	"github.com/ianlewis/go-pocketdict/history"
	"github.com/ianlewis/go-pocketdict/internal/config"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeNotFound is the exit code when no definition was found.
	ExitCodeNotFound

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrPdict is a parent error for all command errors.
var ErrPdict = errors.New("pdict")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrPdict)

// ErrNotFound indicates that a lookup did not find a definition. The
// message has already been shown.
var ErrNotFound = fmt.Errorf("%w: not found", ErrPdict)

// ErrConfig is a configuration error.
var ErrConfig = fmt.Errorf("%w: configuration", ErrPdict)

var copyrightNames = []string{
	"2021 Google LLC",
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't want that.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// loadConfig loads the configuration file and environment and applies
// command line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	if c.IsSet("info") {
		cfg.Dictionary.Info = c.String("info")
	}
	if c.IsSet("index") {
		cfg.Dictionary.Index = c.String("index")
	}
	if c.IsSet("data") {
		cfg.Dictionary.Data = c.String("data")
	}
	if c.IsSet("html") {
		cfg.Dictionary.HTML = c.Bool("html")
	}
	if c.IsSet("mmap") {
		cfg.Dictionary.Mmap = c.Bool("mmap")
	}
	if c.IsSet("history") {
		cfg.History.Path = c.String("history")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	d := &cfg.Dictionary
	if d.Info == "" && d.Index == "" && d.Data == "" {
		d.Info = findDictionary(dictLocations())
	}
	if cfg.History.Path == "" && !c.Bool("no-history") {
		cfg.History.Path = historyLocation()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return cfg, nil
}

// findDictionary returns the .ifo path of the first dictionary found in
// dirs, or an empty string.
func findDictionary(dirs []string) string {
	for _, dir := range dirs {
		dicts, _ := pocketdict.OpenAll(dir, nil)
		if len(dicts) > 0 {
			return dicts[0].IfoPath()
		}
	}
	return ""
}

func newLogger(c *cli.Context, cfg *config.Config) *slog.Logger {
	return config.NewLogger(cfg.Log, c.App.ErrWriter)
}

// openDictionary opens the configured dictionary.
func openDictionary(c *cli.Context) (*pocketdict.Dictionary, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	logger := newLogger(c, cfg)

	opts := &pocketdict.Options{
		HTML:        cfg.Dictionary.HTML,
		MaxBlobSize: cfg.Dictionary.MaxBlobSize,
		Mmap:        cfg.Dictionary.Mmap,
		Logger:      logger,
	}
	if cfg.History.Path != "" {
		opts.History = history.Open(cfg.History.Path, &history.Options{
			Capacity: cfg.History.Capacity,
			Logger:   logger,
		})
	}

	if cfg.Dictionary.Info != "" {
		d, err := pocketdict.Open(cfg.Dictionary.Info, opts)
		if err != nil {
			return nil, fmt.Errorf("opening dictionary: %w", err)
		}
		return d, nil
	}
	return pocketdict.New(cfg.Dictionary.Index, cfg.Dictionary.Data, opts), nil
}

// printResult writes the result of a lookup.
func printResult(c *cli.Context, res pocketdict.Result) error {
	text := res.Text
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if _, err := fmt.Fprint(c.App.Writer, text); err != nil {
		return fmt.Errorf("%w: %w", ErrPdict, err)
	}
	if !res.Found {
		return ErrNotFound
	}
	return nil
}

func newPdictApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Look up words in a PocketDict dictionary.",
		Description: strings.Join([]string{
			"PocketDict dictionary utility written in Go.",
			"http://github.com/ianlewis/go-pocketdict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from YAML `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"PDICT_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "info",
				Usage: "use the dictionary described by the .ifo `FILE`",
			},
			&cli.StringFlag{
				Name:  "index",
				Usage: "read the index from `FILE`",
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "read definitions from `FILE`",
			},
			&cli.StringFlag{
				Name:  "history",
				Usage: "save lookup history to `FILE`",
			},
			&cli.BoolFlag{
				Name:               "no-history",
				Usage:              "do not save lookup history",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "html",
				Usage:              "render HTML definitions as text",
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "mmap",
				Usage:              "memory map the index",
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (debug, info, warn, error)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			lookupCommand,
			randomCommand,
			historyCommand,
			infoCommand,
			listCommand,
		},
	}
}
