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

// Package folding provides text folding transformers used to normalize
// index terms, search queries, and extracted page titles.
package folding

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TermFolder returns a transformer that folds text into the normalized
// form stored in the term tables: Unicode decomposition, combining mark
// removal, and case folding. The same folder is applied when indexing
// and when parsing queries so that both sides agree on term identity.
func TermFolder() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		cases.Fold(),
	)
}

// Fold returns the folded form of s using TermFolder. Transform errors
// cannot occur for valid UTF-8 input; invalid bytes are replaced with
// utf8.RuneError by the normalizer.
func Fold(s string) string {
	folded, _, err := transform.String(TermFolder(), s)
	if err != nil {
		return s
	}
	return folded
}

// TitleFolder returns a transformer that normalizes extracted page
// titles by collapsing whitespace. Case is preserved; titles are folded
// into terms separately when the title term table is built.
func TitleFolder() transform.Transformer {
	return &WhitespaceFolder{}
}

// FoldTitle returns the whitespace-folded form of s using TitleFolder.
func FoldTitle(s string) string {
	folded, _, err := transform.String(TitleFolder(), s)
	if err != nil {
		return s
	}
	return folded
}
