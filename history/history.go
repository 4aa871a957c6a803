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

// Package history implements a small, persisted list of recently looked up
// words.
//
// The list holds at most a fixed number of words, most recent first, with no
// two words equal under ASCII case folding. It is stored as a text file with
// one word per line and the whole file is rewritten after every change.
package history

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ianlewis/go-pocketdict/internal/folding"
)

const (
	// DefaultCapacity is the default maximum number of words kept.
	DefaultCapacity = 10

	// MaxWordLen is the maximum size of a word in bytes. Longer words are
	// truncated.
	MaxWordLen = 49
)

// Options are options for a Store.
type Options struct {
	// Capacity is the maximum number of words kept. Defaults to
	// DefaultCapacity.
	Capacity int

	// Logger receives warnings about unreadable history files. Defaults to
	// a logger that discards output.
	Logger *slog.Logger
}

// Store is a most recently used list of words backed by a file. It is safe
// for concurrent use.
type Store struct {
	path     string
	capacity int
	logger   *slog.Logger

	mu    sync.Mutex
	words []string
}

// Open returns a Store for the history file at path and loads its words. A
// missing or unreadable file results in an empty history.
func Open(path string, options *Options) *Store {
	s := &Store{
		path:     path,
		capacity: DefaultCapacity,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if options != nil {
		if options.Capacity > 0 {
			s.capacity = options.Capacity
		}
		if options.Logger != nil {
			s.logger = options.Logger
		}
	}

	words, err := Load(path, s.capacity)
	if err != nil {
		s.logger.Warn("ignoring history file", "path", path, "error", err)
		words = nil
	}
	s.words = words
	return s
}

// Load reads up to capacity words from the history file at path in file
// order. Blank lines are skipped and later case insensitive duplicates are
// dropped. A missing file is an empty history.
func Load(path string, capacity int) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	return read(f, capacity)
}

func read(r io.Reader, capacity int) ([]string, error) {
	var words []string
	s := bufio.NewScanner(r)
	for len(words) < capacity && s.Scan() {
		w := normalize(s.Text())
		if w == "" || contains(words, w) {
			continue
		}
		words = append(words, w)
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	return words, nil
}

// normalize trims w and truncates it to MaxWordLen bytes on a rune
// boundary.
func normalize(w string) string {
	w = strings.TrimSpace(w)
	if len(w) <= MaxWordLen {
		return w
	}
	i := MaxWordLen
	for i > 0 && !utf8.RuneStart(w[i]) {
		i--
	}
	return strings.TrimSpace(w[:i])
}

func index(words []string, w string) int {
	return slices.IndexFunc(words, func(v string) bool {
		return folding.EqualASCII(v, w)
	})
}

func contains(words []string, w string) bool {
	return index(words, w) >= 0
}

// Record moves word to the front of the history, inserting it if it is not
// present and dropping the oldest word when the history is full. The history
// file is then rewritten. The in memory history is updated even when
// writing the file fails.
func (s *Store) Record(word string) error {
	word = normalize(word)
	if word == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := index(s.words, word); i >= 0 {
		s.words = slices.Delete(s.words, i, i+1)
	}
	s.words = slices.Insert(s.words, 0, word)
	if len(s.words) > s.capacity {
		s.words = s.words[:s.capacity]
	}

	return s.save()
}

// List returns the words in the history, most recent first.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.words)
}

// Save rewrites the history file with the current words.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, word := range s.words {
		_, _ = w.WriteString(word)
		_ = w.WriteByte('\n')
	}
	// Flush reports any error from the writes above.
	err = w.Flush()
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
