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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxKeyLen is the maximum size of a record key in bytes. Records declaring a
// longer key are rejected rather than truncated.
const MaxKeyLen = 49

const (
	keyLenSize = 2
	offsetSize = 4
	sizeSize   = 2

	// recordOverhead is the size of a record's fixed width fields.
	recordOverhead = keyLenSize + offsetSize + sizeSize

	// MaxRecordLen is the size of the largest valid record.
	MaxRecordLen = recordOverhead + MaxKeyLen
)

// ErrBoundary indicates that a record could not be decoded because it runs
// past the end of the index or declares a key longer than MaxKeyLen.
var ErrBoundary = errors.New("invalid index record")

var errKeyTooLong = fmt.Errorf("%w: key too long", ErrBoundary)

var byteOrder = binary.LittleEndian

// Record is an .idx file entry.
type Record struct {
	// Word is the key as stored in the index.
	Word string

	// Offset is the offset of the definition in the data file.
	Offset uint32

	// Size is the size of the definition in the data file.
	Size uint16
}

// RecordLen returns the encoded size of a record with a key of keyLen bytes.
func RecordLen(keyLen int) int64 {
	return int64(recordOverhead + keyLen)
}

// Len returns the encoded size of the record.
func (r *Record) Len() int64 {
	return RecordLen(len(r.Word))
}

// AppendRecord appends the encoded record to b.
func AppendRecord(b []byte, r *Record) ([]byte, error) {
	if len(r.Word) > MaxKeyLen {
		return b, fmt.Errorf("%w: %q", errKeyTooLong, r.Word)
	}
	//nolint:gosec // bounded by MaxKeyLen above.
	b = byteOrder.AppendUint16(b, uint16(len(r.Word)))
	b = append(b, r.Word...)
	b = byteOrder.AppendUint32(b, r.Offset)
	b = byteOrder.AppendUint16(b, r.Size)
	return b, nil
}

// checkKeyLen validates a decoded key length.
func checkKeyLen(n uint16) (int, error) {
	if n > MaxKeyLen {
		return 0, fmt.Errorf("%w: %d bytes", errKeyTooLong, n)
	}
	return int(n), nil
}

// readKeyLen reads the key length field from r.
func readKeyLen(r io.Reader) (int, error) {
	var b [keyLenSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, boundaryErr(err)
	}
	return checkKeyLen(byteOrder.Uint16(b[:]))
}

// ReadRecord decodes the record that starts at off in r. Any read that runs
// short of the record is reported as ErrBoundary.
func ReadRecord(r io.ReaderAt, off int64) (*Record, error) {
	var b [MaxRecordLen]byte

	if err := readFullAt(r, b[:keyLenSize], off); err != nil {
		return nil, err
	}
	keyLen, err := checkKeyLen(byteOrder.Uint16(b[:keyLenSize]))
	if err != nil {
		return nil, err
	}

	rest := b[keyLenSize : RecordLen(keyLen)]
	if err := readFullAt(r, rest, off+keyLenSize); err != nil {
		return nil, err
	}
	return decodeBody(rest, keyLen), nil
}

// decodeBody decodes the fields following the key length.
func decodeBody(b []byte, keyLen int) *Record {
	return &Record{
		Word:   string(b[:keyLen]),
		Offset: byteOrder.Uint32(b[keyLen:]),
		Size:   byteOrder.Uint16(b[keyLen+offsetSize:]),
	}
}

// readFullAt fills b from r at off. A ReaderAt may return io.EOF alongside a
// full read at the end of its input so only short reads are errors.
func readFullAt(r io.ReaderAt, b []byte, off int64) error {
	n, err := r.ReadAt(b, off)
	if n == len(b) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return boundaryErr(err)
}

// boundaryErr classifies a short read as ErrBoundary. Other errors are
// returned unchanged.
func boundaryErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrBoundary, err)
	}
	return err
}
