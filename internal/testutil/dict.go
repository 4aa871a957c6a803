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

package testutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-pocketdict/idx"
)

// Entry is a word and its raw definition.
type Entry struct {
	Word       string
	Definition string
}

// MakeDict lays out the definitions of entries back to back and returns the
// data file along with the index records pointing into it. The records are
// sorted into index order.
func MakeDict(entries []Entry) ([]byte, []*idx.Record) {
	b := []byte{}
	records := make([]*idx.Record, 0, len(entries))
	for _, e := range entries {
		if len(b) > math.MaxUint32 || len(e.Definition) > math.MaxUint16 {
			panic(fmt.Sprintf("definition of %q out of range", e.Word))
		}
		//nolint:gosec // bounds checked above.
		records = append(records, &idx.Record{
			Word:   e.Word,
			Offset: uint32(len(b)),
			Size:   uint16(len(e.Definition)),
		})
		b = append(b, e.Definition...)
	}
	SortRecords(records)
	return b, records
}

// MakeDictOptions are options for MakeTempDict.
type MakeDictOptions struct {
	// DictZip indicates that the data file should be compressed with
	// DictZip.
	DictZip bool

	// Ifo is the contents of the .ifo file. No .ifo file is written when
	// Ifo is empty. "{{wordcount}}" and "{{idxfilesize}}" are replaced
	// with the actual values.
	Ifo string

	// Index overrides the encoded index. Used to write malformed indexes.
	Index func(b []byte) []byte
}

// TempDict holds the paths of a dictionary written by MakeTempDict.
type TempDict struct {
	Dir      string
	IfoPath  string
	IdxPath  string
	DictPath string
}

// MakeTempDict writes a dictionary with the given entries to a temporary
// directory. The directory is removed when the test finishes.
func MakeTempDict(t *testing.T, entries []Entry, opts *MakeDictOptions) *TempDict {
	t.Helper()
	if opts == nil {
		opts = &MakeDictOptions{}
	}

	dir := t.TempDir()
	base := filepath.Join(dir, "dictionary")
	d := &TempDict{
		Dir:      dir,
		IfoPath:  base + ".ifo",
		IdxPath:  base + ".idx",
		DictPath: base + ".dict",
	}

	data, records := MakeDict(entries)
	index := MakeIndex(records)
	if opts.Index != nil {
		index = opts.Index(index)
	}
	if err := os.WriteFile(d.IdxPath, index, 0o600); err != nil {
		t.Fatal(err)
	}

	if opts.DictZip {
		d.DictPath += ".dz"
		writeDictZip(t, d.DictPath, data)
	} else if err := os.WriteFile(d.DictPath, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if opts.Ifo != "" {
		ifo := strings.NewReplacer(
			"{{wordcount}}", fmt.Sprint(len(records)),
			"{{idxfilesize}}", fmt.Sprint(len(index)),
		).Replace(opts.Ifo)
		if err := os.WriteFile(d.IfoPath, []byte(ifo), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	return d
}

func writeDictZip(t *testing.T, path string, data []byte) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}
}
