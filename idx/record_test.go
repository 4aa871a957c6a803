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

package idx_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-pocketdict/idx"
)

func TestAppendRecord(t *testing.T) {
	t.Parallel()

	b, err := idx.AppendRecord([]byte{0xff}, &idx.Record{
		Word:   "cat",
		Offset: 0x01020304,
		Size:   0x0506,
	})
	if err != nil {
		t.Fatalf("AppendRecord: %v", err)
	}

	expected := []byte{0xff, 3, 0, 'c', 'a', 't', 4, 3, 2, 1, 6, 5}
	if diff := cmp.Diff(expected, b); diff != "" {
		t.Fatalf("AppendRecord (-want, +got):\n%s", diff)
	}

	if diff := cmp.Diff(int64(11), idx.RecordLen(3)); diff != "" {
		t.Fatalf("RecordLen (-want, +got):\n%s", diff)
	}
}

func TestAppendRecord_keyTooLong(t *testing.T) {
	t.Parallel()

	_, err := idx.AppendRecord(nil, &idx.Record{
		Word: strings.Repeat("a", idx.MaxKeyLen+1),
	})
	if diff := cmp.Diff(idx.ErrBoundary, err, cmpopts.EquateErrors()); diff != "" {
		t.Fatalf("AppendRecord (-want, +got):\n%s", diff)
	}
}

func TestReadRecord(t *testing.T) {
	t.Parallel()

	longKey := strings.Repeat("k", idx.MaxKeyLen)

	tests := []struct {
		name string
		data []byte
		off  int64

		expected *idx.Record
		err      error
	}{
		{
			name:     "first",
			data:     []byte{1, 0, 'a', 9, 0, 0, 0, 2, 0, 2, 0, 'b', 'c', 1, 0, 0, 0, 3, 0},
			off:      0,
			expected: &idx.Record{Word: "a", Offset: 9, Size: 2},
		},
		{
			name:     "second",
			data:     []byte{1, 0, 'a', 9, 0, 0, 0, 2, 0, 2, 0, 'b', 'c', 1, 0, 0, 0, 3, 0},
			off:      9,
			expected: &idx.Record{Word: "bc", Offset: 1, Size: 3},
		},
		{
			name:     "max key",
			data:     append(append([]byte{idx.MaxKeyLen, 0}, longKey...), 0, 0, 0, 0, 7, 0),
			expected: &idx.Record{Word: longKey, Size: 7},
		},
		{
			name: "key too long",
			data: append(append([]byte{idx.MaxKeyLen + 1, 0}, longKey...), 'k', 0, 0, 0, 0, 7, 0),
			err:  idx.ErrBoundary,
		},
		{
			name: "truncated key length",
			data: []byte{1},
			err:  idx.ErrBoundary,
		},
		{
			name: "truncated size",
			data: []byte{1, 0, 'a', 9, 0, 0, 0, 2},
			err:  idx.ErrBoundary,
		},
		{
			name: "past end",
			data: []byte{1, 0, 'a', 9, 0, 0, 0, 2, 0},
			off:  9,
			err:  idx.ErrBoundary,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			r, err := idx.ReadRecord(bytes.NewReader(test.data), test.off)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("ReadRecord error (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.expected, r); diff != "" {
				t.Fatalf("ReadRecord (-want, +got):\n%s", diff)
			}
		})
	}
}
