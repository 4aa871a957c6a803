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

package pocketdict

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ianlewis/go-pocketdict/dict"
	"github.com/ianlewis/go-pocketdict/history"
	"github.com/ianlewis/go-pocketdict/idx"
	"github.com/ianlewis/go-pocketdict/ifo"
	"github.com/ianlewis/go-pocketdict/internal/folding"
)

// Messages displayed in place of a definition when a lookup fails.
const (
	MsgNotFound    = "Word not found"
	MsgEmpty       = "Dictionary is empty"
	MsgUnavailable = "Word not found (dictionary unavailable)"
	MsgTooLarge    = "Definition too large to display"
)

const (
	ifoMagic   = "PocketDict's dict ifo file"
	ifoVersion = "1.0.0"
)

var (
	errBadExtension = errors.New("bad extension")
	errBadVersion   = errors.New("invalid version")
	errBadIfoValue  = errors.New("invalid ifo value")
	errNoBookname   = errors.New("missing bookname")
	errNoIdx        = errors.New("no index found")
	errNoDict       = errors.New("no data file found")
)

// Options are options for a Dictionary.
type Options struct {
	// History records words that were found. Lookups are not recorded if
	// History is nil.
	History *history.Store

	// HTML converts definitions from HTML to plain text.
	HTML bool

	// MaxBlobSize is the size in bytes of the largest definition that will
	// be read. Zero means no limit.
	MaxBlobSize int

	// Mmap maps the index into memory during each operation.
	Mmap bool

	// Rand returns the random source for a random lookup. Defaults to a
	// source seeded from the current time at each call.
	Rand func() idx.Rand

	// Logger receives diagnostics. Defaults to a logger that discards
	// output.
	Logger *slog.Logger
}

// Result is the outcome of a lookup as shown to the user.
type Result struct {
	// Found is true if a definition was found.
	Found bool

	// Text is the formatted definition, or a message if no definition
	// was found.
	Text string
}

// Dictionary is a dictionary backed by an index file and a data file. Files
// are opened for each operation and closed before it returns.
type Dictionary struct {
	idxPath  string
	dictPath string
	opts     Options
	logger   *slog.Logger

	// Metadata from the .ifo file, if any.
	ifoPath     string
	version     string
	bookname    string
	wordcount   int64
	idxfilesize int64
	author      string
	email       string
	website     string
	description string
	date        string
}

// New returns a Dictionary reading the index at idxPath and definitions at
// dictPath.
func New(idxPath, dictPath string, options *Options) *Dictionary {
	d := &Dictionary{
		idxPath:  idxPath,
		dictPath: dictPath,
	}
	if options != nil {
		d.opts = *options
	}
	d.logger = d.opts.Logger
	if d.logger == nil {
		d.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d
}

// OpenAll opens all dictionaries under a directory. This function will return
// all successfully opened dictionaries along with any errors that occurred.
func OpenAll(path string, options *Options) ([]*Dictionary, []error) {
	var dicts []*Dictionary
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !info.IsDir() && strings.EqualFold(filepath.Ext(info.Name()), ".ifo") {
			d, err := Open(path, options)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			dicts = append(dicts, d)
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return dicts, errs
}

// Open opens a Dictionary from the given .ifo file path. The index and data
// files are found next to it by extension.
func Open(path string, options *Options) (*Dictionary, error) {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".ifo") {
		return nil, fmt.Errorf("%w: %v", errBadExtension, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	info, err := ifo.New(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	if info.Magic() != ifoMagic {
		return nil, fmt.Errorf("%q: %w", path, ifo.ErrBadMagic)
	}

	base := strings.TrimSuffix(path, ext)
	idxPath := findFile(base, ".idx", ".IDX")
	if idxPath == "" {
		return nil, fmt.Errorf("%q: %w", path, errNoIdx)
	}
	dictPath := findFile(base, ".dict.dz", ".dict", ".DICT", ".DICT.dz", ".DICT.DZ")
	if dictPath == "" {
		return nil, fmt.Errorf("%q: %w", path, errNoDict)
	}

	d := New(idxPath, dictPath, options)
	d.ifoPath = path

	d.version = info.Value("version")
	if d.version != ifoVersion {
		return nil, fmt.Errorf("%w: %v", errBadVersion, d.version)
	}

	d.bookname = info.Value("bookname")
	if d.bookname == "" {
		return nil, errNoBookname
	}

	if d.wordcount, err = parseCount(info, "wordcount"); err != nil {
		return nil, err
	}
	if d.idxfilesize, err = parseCount(info, "idxfilesize"); err != nil {
		return nil, err
	}

	d.author = info.Value("author")
	d.email = info.Value("email")
	d.website = info.Value("website")
	d.description = info.Value("description")
	d.date = info.Value("date")

	return d, nil
}

// parseCount parses an optional non-negative integer value.
func parseCount(info *ifo.Ifo, key string) (int64, error) {
	v := info.Value(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", errBadIfoValue, key, v)
	}
	return n, nil
}

func findFile(base string, exts ...string) string {
	for _, ext := range exts {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext
		}
	}
	return ""
}

// Bookname returns the dictionary name.
func (d *Dictionary) Bookname() string {
	return d.bookname
}

// Description returns the dictionary description.
func (d *Dictionary) Description() string {
	return d.description
}

// Author returns the dictionary author.
func (d *Dictionary) Author() string {
	return d.author
}

// Email returns the dictionary contact email.
func (d *Dictionary) Email() string {
	return d.email
}

// Website returns the dictionary website url.
func (d *Dictionary) Website() string {
	return d.website
}

// Date returns the dictionary build date.
func (d *Dictionary) Date() string {
	return d.date
}

// WordCount returns the word count recorded in the .ifo file.
func (d *Dictionary) WordCount() int64 {
	return d.wordcount
}

// Version returns the dictionary format version.
func (d *Dictionary) Version() string {
	return d.version
}

// IfoPath returns the path of the .ifo file, if the dictionary has one.
func (d *Dictionary) IfoPath() string {
	return d.ifoPath
}

// IdxPath returns the path of the index file.
func (d *Dictionary) IdxPath() string {
	return d.idxPath
}

// DictPath returns the path of the data file.
func (d *Dictionary) DictPath() string {
	return d.dictPath
}

func (d *Dictionary) openIdx() (*idx.Index, error) {
	//nolint:wrapcheck // errors are wrapped by idx.
	return idx.Open(d.idxPath, &idx.Options{Mmap: d.opts.Mmap})
}

// entry reads the definition for r.
func (d *Dictionary) entry(r *idx.Record) (_ *Entry, err error) {
	data, err := dict.Open(d.dictPath, &dict.Options{MaxSize: d.opts.MaxBlobSize})
	if err != nil {
		return nil, err //nolint:wrapcheck // errors are wrapped by dict.
	}
	defer func() {
		err = errors.Join(err, data.Close())
	}()

	b, err := data.Definition(r)
	if err != nil {
		return nil, err //nolint:wrapcheck // errors are wrapped by dict.
	}
	return &Entry{
		word: r.Word,
		data: b,
		html: d.opts.HTML,
	}, nil
}

// Search returns the entry for word. Surrounding whitespace in word is
// ignored. Internal whitespace runs match a single space, and if that finds
// nothing word is searched for with only the surrounding whitespace removed.
// The error matches idx.ErrNotFound if the word is not in the dictionary.
func (d *Dictionary) Search(word string) (_ *Entry, err error) {
	query, err := folding.Query(word)
	if err != nil {
		return nil, err //nolint:wrapcheck // error is wrapped by folding.
	}
	trimmed := strings.TrimSpace(word)
	if query == "" && trimmed == "" {
		return nil, idx.ErrNotFound
	}

	index, err := d.openIdx()
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, index.Close())
	}()

	var r *idx.Record
	err = idx.ErrNotFound
	if query != "" {
		r, err = index.Find(query)
	}
	if errors.Is(err, idx.ErrNotFound) && trimmed != query {
		r, err = index.Find(trimmed)
	}
	if err != nil {
		return nil, err //nolint:wrapcheck // errors are wrapped by idx.
	}
	return d.entry(r)
}

// RandomEntry returns an entry selected uniformly at random. The error
// matches idx.ErrEmptyIndex if the dictionary has no words. If the .ifo file
// records the index size and it matches, its word count is used in place of
// counting the index and must be accurate for the selection to be uniform.
func (d *Dictionary) RandomEntry() (_ *Entry, err error) {
	index, err := d.openIdx()
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, index.Close())
	}()

	var rnd idx.Rand
	if d.opts.Rand != nil {
		rnd = d.opts.Rand()
	}

	// The .ifo word count is only trusted if the index has the size the
	// .ifo file says it has. A word count below the real count then limits
	// selection to the first wordcount records.
	var count int64
	if d.wordcount > 0 && d.idxfilesize == index.Size() {
		count = d.wordcount
	}

	r, err := index.Random(rnd, count)
	if err != nil {
		return nil, err //nolint:wrapcheck // errors are wrapped by idx.
	}
	return d.entry(r)
}

// Lookup looks up word and records it in the history if found.
func (d *Dictionary) Lookup(word string) Result {
	e, err := d.Search(word)
	if err != nil {
		return d.failure("lookup", err, "word", word)
	}
	return d.found(e)
}

// Random looks up a random word and records it in the history.
func (d *Dictionary) Random() Result {
	e, err := d.RandomEntry()
	if err != nil {
		return d.failure("random lookup", err)
	}
	return d.found(e)
}

// History returns the recently found words, most recent first.
func (d *Dictionary) History() []string {
	if d.opts.History == nil {
		return nil
	}
	return d.opts.History.List()
}

func (d *Dictionary) found(e *Entry) Result {
	if h := d.opts.History; h != nil {
		if err := h.Record(e.Title()); err != nil {
			d.logger.Warn("saving history", "error", err)
		}
	}
	return Result{
		Found: true,
		Text:  e.String(),
	}
}

// failure converts err into a message for display.
func (d *Dictionary) failure(op string, err error, args ...any) Result {
	msg := MsgUnavailable
	level := slog.LevelError
	switch {
	case errors.Is(err, idx.ErrEmptyIndex):
		msg, level = MsgEmpty, slog.LevelDebug
	case errors.Is(err, dict.ErrBlobTooLarge):
		msg, level = MsgTooLarge, slog.LevelWarn
	case errors.Is(err, idx.ErrBoundary), errors.Is(err, dict.ErrTruncatedRead):
		// Malformed dictionary files.
		msg, level = MsgNotFound, slog.LevelWarn
	case errors.Is(err, idx.ErrNotFound):
		msg, level = MsgNotFound, slog.LevelDebug
	}
	d.logger.Log(context.Background(), level, op, append(args, "error", err)...)

	return Result{
		Found: false,
		Text:  msg,
	}
}
