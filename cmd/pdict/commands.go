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
	"fmt"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-pocketdict"
)

var lookupCommand = &cli.Command{
	Name:      "lookup",
	Usage:     "look up a word",
	ArgsUsage: "WORD",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: missing word", ErrFlagParse)
		}

		d, err := openDictionary(c)
		if err != nil {
			return err
		}
		return printResult(c, d.Lookup(strings.Join(c.Args().Slice(), " ")))
	},
}

var randomCommand = &cli.Command{
	Name:  "random",
	Usage: "look up a random word",
	Action: func(c *cli.Context) error {
		if c.NArg() != 0 {
			return fmt.Errorf("%w: unexpected arguments", ErrFlagParse)
		}

		d, err := openDictionary(c)
		if err != nil {
			return err
		}
		return printResult(c, d.Random())
	},
}

var historyCommand = &cli.Command{
	Name:  "history",
	Usage: "list recently found words",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "select",
			Usage:   "look up the `N`th word in the history",
			Aliases: []string{"s"},
		},
	},
	Action: func(c *cli.Context) error {
		d, err := openDictionary(c)
		if err != nil {
			return err
		}

		words := d.History()
		if c.IsSet("select") {
			n := c.Int("select")
			if n < 1 || n > len(words) {
				return fmt.Errorf("%w: no history entry %d", ErrFlagParse, n)
			}
			return printResult(c, d.Lookup(words[n-1]))
		}

		tbl := table.New("#", "Word").WithWriter(c.App.Writer)
		for i, w := range words {
			tbl.AddRow(i+1, w)
		}
		tbl.Print()
		return nil
	},
}

var infoCommand = &cli.Command{
	Name:  "info",
	Usage: "show information about the dictionary",
	Action: func(c *cli.Context) error {
		d, err := openDictionary(c)
		if err != nil {
			return err
		}

		tbl := table.New("Field", "Value").WithWriter(c.App.Writer)
		if d.IfoPath() != "" {
			tbl.AddRow("Name", d.Bookname())
			tbl.AddRow("Author", d.Author())
			tbl.AddRow("Email", d.Email())
			tbl.AddRow("Website", d.Website())
			tbl.AddRow("Description", d.Description())
			tbl.AddRow("Date", d.Date())
			tbl.AddRow("Word Count", d.WordCount())
			tbl.AddRow("Version", d.Version())
			tbl.AddRow("Info", d.IfoPath())
		}
		tbl.AddRow("Index", d.IdxPath())
		tbl.AddRow("Data", d.DictPath())
		tbl.Print()
		return nil
	},
}

var listCommand = &cli.Command{
	Name:      "list",
	Usage:     "list dictionaries",
	ArgsUsage: "[DIR]...",
	Description: strings.Join([]string{
		"List all dictionaries in the given directories.",
		"The default dictionary locations are used if no directory is given.",
	}, "\n"),
	Action: func(c *cli.Context) error {
		dirs := c.Args().Slice()
		if len(dirs) == 0 {
			dirs = dictLocations()
		}

		var dicts []*pocketdict.Dictionary
		var errs []error
		for _, dir := range dirs {
			openDicts, openErrs := pocketdict.OpenAll(dir, nil)
			dicts = append(dicts, openDicts...)
			errs = append(errs, openErrs...)
		}
		for _, err := range errs {
			fmt.Fprintln(c.App.ErrWriter, err)
		}

		tbl := table.New("Name", "Author", "Word Count", "Path").WithWriter(c.App.Writer)
		for _, d := range dicts {
			tbl.AddRow(d.Bookname(), d.Author(), d.WordCount(), d.IfoPath())
		}
		tbl.Print()

		// Missing default locations are not an error.
		if len(errs) > 0 && c.NArg() > 0 {
			return fmt.Errorf("%w: %d dictionaries could not be opened", ErrPdict, len(errs))
		}
		return nil
	},
}
