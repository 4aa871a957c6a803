// Copyright 2024 Google LLC
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
	"slices"

	"github.com/ianlewis/go-pocketdict/idx"
	"github.com/ianlewis/go-pocketdict/internal/folding"
)

// MakeIndex makes a test index given a list of records. Records are encoded
// in the order given.
func MakeIndex(records []*idx.Record) []byte {
	b := []byte{}
	for _, r := range records {
		var err error
		b, err = idx.AppendRecord(b, r)
		if err != nil {
			panic(fmt.Sprintf("encoding record %q: %v", r.Word, err))
		}
	}
	return b
}

// SortRecords sorts records into index order.
func SortRecords(records []*idx.Record) {
	slices.SortStableFunc(records, func(a, b *idx.Record) int {
		return folding.CompareASCII(a.Word, b.Word)
	})
}

// Words returns the records for the given words, sorted into index order.
// Each record's offset is its position in words and its size is the length
// of the word.
func Words(words ...string) []*idx.Record {
	records := make([]*idx.Record, 0, len(words))
	for i, w := range words {
		records = append(records, &idx.Record{
			Word: w,
			//nolint:gosec // test code.
			Offset: uint32(i),
			//nolint:gosec // test code.
			Size: uint16(len(w)),
		})
	}
	SortRecords(records)
	return records
}
