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

package idx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// Options are options for opening an .idx file.
type Options struct {
	// Mmap maps the index file into memory while it is open instead of
	// reading it with file reads. It is ignored on platforms without mmap.
	Mmap bool
}

// DefaultOptions is the default options for an Index.
var DefaultOptions = &Options{}

// Index is a handle on an .idx file. An Index holds no decoded records; every
// operation reads the records it needs from the underlying reader.
type Index struct {
	r     io.ReaderAt
	size  int64
	close func() error
}

// New returns an Index reading size bytes of index data from r.
func New(r io.ReaderAt, size int64) *Index {
	return &Index{
		r:    r,
		size: size,
	}
}

// Open opens the .idx file at path. The Index must be closed with Close.
func Open(path string, options *Options) (*Index, error) {
	if options == nil {
		options = DefaultOptions
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening index: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading index size: %w", err)
	}

	idx := &Index{
		r:     f,
		size:  info.Size(),
		close: f.Close,
	}

	if options.Mmap {
		data, unmap, err := mmapFile(f, idx.size)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if unmap != nil {
			idx.r = bytes.NewReader(data)
			idx.close = func() error {
				return errors.Join(unmap(), f.Close())
			}
		}
	}

	return idx, nil
}

// Size returns the size of the index in bytes.
func (idx *Index) Size() int64 {
	return idx.size
}

// Close releases the underlying file, if any.
func (idx *Index) Close() error {
	if idx.close == nil {
		return nil
	}
	if err := idx.close(); err != nil {
		return fmt.Errorf("closing index: %w", err)
	}
	return nil
}
