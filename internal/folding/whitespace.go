// Copyright 2025 Ian Lewis
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

package folding

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// WhitespaceFolder normalizes user entered queries. It drops whitespace and
// control characters from the beginning and end of the input and replaces
// every internal run of them with a single ASCII space. Other bytes,
// including invalid UTF-8, are copied unchanged.
//
// Control characters are folded because text entry widgets commonly hand
// over fixed size, zero padded buffers.
type WhitespaceFolder struct {
	// started is true after the first printable rune.
	started bool

	// pending is true while inside an internal whitespace run.
	pending bool
}

var _ transform.Transformer = (*WhitespaceFolder)(nil)

func isFoldable(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if isFoldable(r) {
			nSrc += size
			if w.started {
				w.pending = true
			}
			continue
		}

		// Runes are copied as encoded so invalid bytes pass through
		// unchanged.
		need := size
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
		w.started = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}

// Query returns q with whitespace folded by a [WhitespaceFolder].
func Query(q string) (string, error) {
	folded, _, err := transform.String(&WhitespaceFolder{}, q)
	if err != nil {
		return "", fmt.Errorf("folding query %q: %w", q, err)
	}
	return folded, nil
}
