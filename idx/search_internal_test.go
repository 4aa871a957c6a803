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
	"fmt"
	"math/bits"
	"testing"
)

// TestIndex_find_pivots checks that a search over uniformly sized records
// decodes at most one pivot record per halving of the index.
func TestIndex_find_pivots(t *testing.T) {
	t.Parallel()

	const n = 1024

	var b []byte
	var words []string
	for i := range n {
		w := fmt.Sprintf("word%06d", i)
		words = append(words, w)

		var err error
		b, err = AppendRecord(b, &Record{Word: w})
		if err != nil {
			t.Fatalf("AppendRecord: %v", err)
		}
	}
	index := New(bytes.NewReader(b), int64(len(b)))

	limit := bits.Len(n) + 1
	for _, q := range append(words, "word", "word999999", "word000100x") {
		pivots := 0
		_, _ = index.find(q, func(int64) {
			pivots++
		})
		if pivots > limit {
			t.Fatalf("find(%q) decoded %d pivots, want at most %d", q, pivots, limit)
		}
	}
}

// TestIndex_pivot tests that pivot returns the record straddling mid.
func TestIndex_pivot(t *testing.T) {
	t.Parallel()

	// Records at offsets 0, 9 and 18, 9 bytes each.
	var b []byte
	for _, w := range []string{"a", "b", "c"} {
		b, _ = AppendRecord(b, &Record{Word: w})
	}
	index := New(bytes.NewReader(b), int64(len(b)))

	tests := []struct {
		low, mid int64
		expected int64
	}{
		{low: 0, mid: 0, expected: 0},
		{low: 0, mid: 4, expected: 0},
		{low: 0, mid: 8, expected: 0},
		{low: 0, mid: 9, expected: 9},
		{low: 0, mid: 13, expected: 9},
		{low: 0, mid: 18, expected: 18},
		{low: 9, mid: 26, expected: 18},
	}

	for _, test := range tests {
		got, err := index.pivot(test.low, test.mid)
		if err != nil {
			t.Fatalf("pivot(%d, %d): %v", test.low, test.mid, err)
		}
		if got != test.expected {
			t.Fatalf("pivot(%d, %d) = %d, want %d", test.low, test.mid, got, test.expected)
		}
	}
}
