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

package pocketdict

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/k3a/html2text"
)

// Entry is a dictionary entry.
type Entry struct {
	word string
	data []byte
	html bool
}

// Title returns the entry's title as stored in the index.
func (e *Entry) Title() string {
	return e.word
}

// Data returns the entry's raw definition.
func (e *Entry) Data() []byte {
	return e.data
}

// String returns the entry formatted for display. See [Format].
func (e *Entry) String() string {
	return format(e.word, e.data, e.html)
}

// Format formats the definition of word for display.
//
// If the definition starts with a bracketed phonetic transcription the first
// line is the word, a space and the transcription. Otherwise the first line
// is the word alone. The rest of the definition is split on ';' and the non
// empty senses are listed one per line as "1. sense". If there are no
// senses the rest of the definition is written unchanged.
func Format(word string, data []byte) string {
	return format(word, data, false)
}

// format implements Format. If html is true the definition after the
// phonetic transcription is converted from HTML to plain text before it is
// split into senses, so entity terminators are not taken as separators.
func format(word string, data []byte, html bool) string {
	var b strings.Builder
	rest := string(data)

	b.WriteString(word)
	if strings.HasPrefix(rest, "[") {
		if i := strings.IndexByte(rest, ']'); i >= 0 {
			b.WriteByte(' ')
			b.WriteString(rest[:i+1])
			rest = strings.TrimLeftFunc(rest[i+1:], unicode.IsSpace)
		}
	}
	b.WriteByte('\n')

	if html {
		rest = html2text.HTML2Text(rest)
	}

	n := 0
	if strings.Contains(rest, ";") {
		for _, sense := range strings.Split(rest, ";") {
			sense = strings.TrimSpace(sense)
			if sense == "" {
				continue
			}
			n++
			fmt.Fprintf(&b, "%d. %s\n", n, sense)
		}
	}

	if n == 0 {
		b.WriteString(rest)
	}

	return b.String()
}
