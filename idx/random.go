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
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"
)

// ErrEmptyIndex indicates that the index has no records.
var ErrEmptyIndex = errors.New("empty index")

var errOutOfRange = fmt.Errorf("%w: record out of range", ErrBoundary)

// Rand is a source of random numbers. [*rand.Rand] satisfies Rand.
type Rand interface {
	// Int64N returns a number in [0, n).
	Int64N(n int64) int64
}

// NewRand returns a Rand seeded from the current time.
func NewRand() Rand {
	now := time.Now()
	//nolint:gosec // selection only needs to differ between runs.
	return rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
}

func (idx *Index) scanner() *Scanner {
	return NewScanner(io.NewSectionReader(idx.r, 0, idx.size))
}

// Count returns the number of records in the index. Scanning stops at the
// first malformed record; only the records before it are counted.
func (idx *Index) Count() (int64, error) {
	s := idx.scanner()
	for s.Scan() {
	}
	if err := s.Err(); err != nil && !errors.Is(err, ErrBoundary) {
		return 0, err
	}
	return s.Count(), nil
}

// Nth returns the nth record of the index, counting from zero.
func (idx *Index) Nth(n int64) (*Record, error) {
	s := idx.scanner()
	for s.Scan() {
		if s.Count() > n {
			return s.Record(), nil
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %d", errOutOfRange, n)
}

// Random returns a record selected uniformly at random using rnd. If rnd is
// nil a time seeded source is used.
//
// count is the number of records in the index if it is known in advance. If
// count is not positive, or turns out to be larger than the index, the
// records are counted with a full scan first. A count smaller than the
// number of records is not detected: only the first count records can be
// selected, so callers must pass a hint they trust or zero.
func (idx *Index) Random(rnd Rand, count int64) (*Record, error) {
	if rnd == nil {
		rnd = NewRand()
	}

	if count > 0 {
		r, err := idx.Nth(rnd.Int64N(count))
		if !errors.Is(err, ErrBoundary) {
			return r, err
		}
	}

	count, err := idx.Count()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyIndex
	}
	return idx.Nth(rnd.Int64N(count))
}
