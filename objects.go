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

package searchindex

import (
	"strings"
	"unicode"

	"github.com/keithnytati/go-searchindex/internal/folding"
	"github.com/keithnytati/go-searchindex/internal/index"
)

// objectRef is one searchable entry of the object inventory. Every
// object is findable by its bare name and, when prefixed, by its
// dotted qualified name as well.
type objectRef struct {
	// folded is the folded lookup key.
	folded string

	// display is the qualified name reported in results.
	display string

	entry ObjectEntry
}

// String implements fmt.Stringer for index sorting and lookup.
func (o objectRef) String() string {
	return o.folded
}

// newObjectIndex flattens the object inventory into a sorted index.
func newObjectIndex(data *Data) *index.Index[objectRef] {
	var entries []objectRef
	for prefix, objects := range data.Objects {
		for name, entry := range objects {
			qualified := name
			if prefix != "" {
				qualified = prefix + "." + name
			}
			entries = append(entries, objectRef{
				folded:  folding.Fold(name),
				display: qualified,
				entry:   entry,
			})
			if prefix != "" {
				entries = append(entries, objectRef{
					folded:  folding.Fold(qualified),
					display: qualified,
					entry:   entry,
				})
			}
		}
	}
	return index.NewIndex(entries, strings.Compare)
}

// queryWords folds the raw query and splits it on whitespace, trimming
// punctuation from word edges. Unlike analyzed tokens, the words keep
// interior dots and underscores, the way object names are written.
// Repeated words are dropped.
func queryWords(query string) []string {
	var words []string
	seen := map[string]struct{}{}
	for _, word := range strings.Fields(folding.Fold(query)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
		})
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	return words
}
