// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ifo implements reading .ifo dictionary info files.
//
// An .ifo file starts with a magic line followed by "key=value" lines. The
// first key must be "version".
package ifo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var keyRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// ErrBadMagic indicates that the magic line does not name the expected file
// format.
var ErrBadMagic = errors.New("bad magic data")

var (
	errMissingVersion = errors.New("missing version")
	errInvalidKey     = errors.New("invalid key")
	errInvalidLine    = errors.New("invalid line")
)

// Ifo is the dictionary metadata.
type Ifo struct {
	magic    string
	metadata map[string]string
}

// New returns a new dictionary info object read from r.
func New(r io.Reader) (*Ifo, error) {
	s := bufio.NewScanner(r)

	i := &Ifo{
		metadata: map[string]string{},
	}
	if s.Scan() {
		i.magic = strings.TrimSpace(s.Text())
	}

	n := 0
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errInvalidLine, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !keyRegex.MatchString(key) {
			return nil, fmt.Errorf("%w: %q", errInvalidKey, key)
		}
		if n == 0 && key != "version" {
			return nil, errMissingVersion
		}

		i.metadata[key] = value
		n++
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading ifo: %w", err)
	}
	if n == 0 {
		return nil, errMissingVersion
	}

	return i, nil
}

// Magic returns the magic line.
func (i *Ifo) Magic() string {
	return i.magic
}

// Value returns the value for key or an empty string.
func (i *Ifo) Value(key string) string {
	return i.metadata[key]
}
