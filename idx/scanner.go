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

package idx

import (
	"bufio"
	"fmt"
	"io"
)

// scanBufferSize is the read buffer size used for sequential scans.
const scanBufferSize = 4096

// Scanner scans an index from start to end one record at a time. Records are
// only split by their key length; the fields of a record are decoded on
// demand by the Record method.
type Scanner struct {
	s *bufio.Scanner

	// pos is the offset of the current record and last its size.
	pos  int64
	last int64

	n int64
}

// NewScanner returns a new index scanner that scans the records in r from
// start to end.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{
		s: bufio.NewScanner(bufio.NewReaderSize(r, scanBufferSize)),
	}
	s.s.Buffer(make([]byte, 0, scanBufferSize), scanBufferSize)
	s.s.Split(splitRecord)
	return s
}

// Scan advances the scanner to the next record. It returns false if the scan
// stops either by reaching the end of the index or an error. A truncated
// final record or an oversized key stops the scan with an ErrBoundary error.
func (s *Scanner) Scan() bool {
	s.pos += s.last
	s.last = 0
	if !s.s.Scan() {
		return false
	}
	s.last = int64(len(s.s.Bytes()))
	s.n++
	return true
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if err := s.s.Err(); err != nil {
		return fmt.Errorf("scanning index: %w", err)
	}
	return nil
}

// Offset returns the byte offset of the current record in the index.
func (s *Scanner) Offset() int64 {
	return s.pos
}

// Count returns the number of records scanned so far.
func (s *Scanner) Count() int64 {
	return s.n
}

// Record decodes the current record.
func (s *Scanner) Record() *Record {
	b := s.s.Bytes()
	return decodeBody(b[keyLenSize:], len(b)-recordOverhead)
}

// splitRecord splits an index record in the index file.
func splitRecord(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if len(data) >= keyLenSize {
		keyLen, err := checkKeyLen(byteOrder.Uint16(data))
		if err != nil {
			return 0, nil, err
		}
		//nolint:gosec // bounded by MaxKeyLen.
		tokenSize := int(RecordLen(keyLen))
		if len(data) >= tokenSize {
			return tokenSize, data[:tokenSize], nil
		}
	}

	if atEOF {
		return 0, nil, fmt.Errorf("%w: %d trailing bytes", ErrBoundary, len(data))
	}

	// Request more data.
	return 0, nil, nil
}
