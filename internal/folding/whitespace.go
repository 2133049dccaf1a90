// Copyright 2025 Keith Nytati
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
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// WhitespaceFolder collapses whitespace in extracted page titles. Titles
// pulled out of HTML or Markdown frequently span line breaks and carry
// indentation; the folder trims leading and trailing whitespace and
// replaces every internal whitespace run with a single ASCII space.
type WhitespaceFolder struct {
	// seenText is set once the first non-whitespace rune has been emitted.
	seenText bool

	// pendingSpace is set while consuming an internal whitespace run.
	pendingSpace bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(c) {
			nSrc += size
			// Leading whitespace is dropped. Internal whitespace is held
			// back until the next non-whitespace rune so that trailing
			// whitespace is never emitted.
			if w.seenText {
				w.pendingSpace = true
			}
			continue
		}

		if w.pendingSpace {
			if nDst+1 > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = ' '
			nDst++
			w.pendingSpace = false
		}

		// NOTE: c may be utf8.RuneError with size 1; RuneLen(c) is the
		// encoded length, which differs in that case.
		if nDst+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], c)
		nSrc += size
		w.seenText = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}
