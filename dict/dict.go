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

// Package dict implements reading data files.
//
// A data file is a concatenation of definitions with no separators. Each
// definition is addressed by the offset and size stored in its index record.
// Data files ending in ".dz" are read with the dictzip format, which allows
// random access into gzip compressed data.
package dict

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-pocketdict/idx"
)

var (
	// ErrTruncatedRead indicates that the data file ended before the end of
	// a definition.
	ErrTruncatedRead = errors.New("truncated definition")

	// ErrBlobTooLarge indicates that a definition is larger than the
	// configured maximum size.
	ErrBlobTooLarge = errors.New("definition too large")
)

// Options are options for reading a data file.
type Options struct {
	// MaxSize is the size in bytes of the largest definition that will be
	// read. Zero means no limit.
	MaxSize int
}

// DefaultOptions is the default options for a Dict.
var DefaultOptions = &Options{}

// Dict is a handle on a data file.
type Dict struct {
	r       io.ReaderAt
	closers []io.Closer
	maxSize int
}

// New returns a new Dict reading definitions from r.
func New(r io.ReaderAt, options *Options) *Dict {
	if options == nil {
		options = DefaultOptions
	}
	return &Dict{
		r:       r,
		maxSize: options.MaxSize,
	}
}

// Open opens the data file at path. Paths with a ".dz" extension are read as
// dictzip files. The Dict must be closed with Close.
func Open(path string, options *Options) (*Dict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening data file: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) != ".dz" {
		d := New(f, options)
		d.closers = []io.Closer{f}
		return d, nil
	}

	z, err := dictzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("reading dictzip header: %w", err)
	}
	d := New(z, options)
	d.closers = []io.Closer{z, f}
	return d, nil
}

// ReadBlob reads size bytes of definition data starting at offset.
func (d *Dict) ReadBlob(offset int64, size int) ([]byte, error) {
	if d.maxSize > 0 && size > d.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBlobTooLarge, size)
	}

	b := make([]byte, size)
	// NOTE: ReadAt may return io.EOF along with a full read at the end of
	// the file.
	n, err := d.r.ReadAt(b, offset)
	if n == size {
		return b, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: read %d of %d bytes at offset %d", ErrTruncatedRead, n, size, offset)
	}
	return nil, fmt.Errorf("reading definition: %w", err)
}

// Definition reads the definition for the given index record.
func (d *Dict) Definition(r *idx.Record) ([]byte, error) {
	return d.ReadBlob(int64(r.Offset), int(r.Size))
}

// Close closes the data file.
func (d *Dict) Close() error {
	var errs []error
	for _, c := range d.closers {
		// The dictzip reader may close the underlying file itself.
		if err := c.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("closing data file: %w", err)
	}
	return nil
}
