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
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ianlewis/go-pocketdict/internal/folding"
)

// ErrNotFound indicates that a word is not in the index.
var ErrNotFound = errors.New("word not found")

// Find returns the record whose key equals word under ASCII case folding.
// The caller is expected to have trimmed word.
//
// If the word is not present the error is ErrNotFound. A malformed record
// met during the search also ends it with ErrNotFound; that error
// additionally matches ErrBoundary. Any other error is an I/O failure.
func (idx *Index) Find(word string) (*Record, error) {
	return idx.find(word, nil)
}

// find implements Find. visit, when not nil, is called with the offset of
// every pivot record that is decoded.
func (idx *Index) find(word string, visit func(pivot int64)) (*Record, error) {
	low, high := int64(0), idx.size
	for low < high {
		mid := low + (high-low)/2

		pivot, err := idx.pivot(low, mid)
		if err != nil {
			return nil, searchErr(err)
		}
		if visit != nil {
			visit(pivot)
		}

		r, err := ReadRecord(idx.r, pivot)
		if err != nil {
			return nil, searchErr(err)
		}
		end := pivot + r.Len()
		if end > high {
			return nil, searchErr(fmt.Errorf("%w: record at %d overlaps %d", ErrBoundary, pivot, high))
		}

		switch c := folding.CompareASCII(word, r.Word); {
		case c == 0:
			return r, nil
		case c < 0:
			high = pivot
		default:
			low = end
		}
	}
	return nil, ErrNotFound
}

// pivot returns the start of the record straddling mid. low must be a record
// boundary. Records are walked forward from low by their key length until
// the next step would pass mid.
func (idx *Index) pivot(low, mid int64) (int64, error) {
	if low == mid {
		return low, nil
	}

	br := bufio.NewReaderSize(io.NewSectionReader(idx.r, low, idx.size-low), scanBufferSize)
	pivot := low
	for pivot < mid {
		keyLen, err := readKeyLen(br)
		if err != nil {
			return 0, err
		}
		next := pivot + RecordLen(keyLen)
		if next > mid {
			break
		}
		if _, err := br.Discard(int(next - pivot - keyLenSize)); err != nil {
			return 0, boundaryErr(err)
		}
		pivot = next
	}
	return pivot, nil
}

func searchErr(err error) error {
	if errors.Is(err, ErrBoundary) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("searching index: %w", err)
}
