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

// Package analysis implements the text analysis pipeline shared by the
// index builder and the query side: folding, word splitting, stop word
// removal, and Porter stemming. Both sides must run the identical
// pipeline or query terms will not meet the terms stored in the index.
package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	porterstemmer "github.com/blevesearch/go-porterstemmer"

	"github.com/keithnytati/go-searchindex/internal/folding"
)

// Token is a single analyzed word.
type Token struct {
	// Term is the normalized term as stored in the term tables: folded
	// and stemmed.
	Term string

	// Folded is the folded but unstemmed surface form. Prefix matching
	// uses it because users type surface forms, not stems.
	Folded string
}

// Options configure an Analyzer.
type Options struct {
	// MinTermLength is the minimum rune length of a term. Shorter words
	// are dropped.
	MinTermLength int

	// ExtraStopWords are added to the default stop word list.
	ExtraStopWords []string

	// KeepWords are removed from the default stop word list.
	KeepWords []string
}

// DefaultOptions is the default options for an Analyzer.
var DefaultOptions = &Options{
	MinTermLength: 2,
}

// Analyzer analyzes text into normalized index terms.
type Analyzer struct {
	minLen    int
	stopWords map[string]struct{}
}

// New returns a new Analyzer.
func New(options *Options) *Analyzer {
	if options == nil {
		options = DefaultOptions
	}

	minLen := options.MinTermLength
	if minLen <= 0 {
		minLen = DefaultOptions.MinTermLength
	}

	stopWords := make(map[string]struct{}, len(defaultStopWords)+len(options.ExtraStopWords))
	for w := range defaultStopWords {
		stopWords[w] = struct{}{}
	}
	for _, w := range options.ExtraStopWords {
		stopWords[folding.Fold(w)] = struct{}{}
	}
	for _, w := range options.KeepWords {
		delete(stopWords, folding.Fold(w))
	}

	return &Analyzer{
		minLen:    minLen,
		stopWords: stopWords,
	}
}

// Tokens analyzes text and returns its tokens in order of appearance.
// Repeated words produce repeated tokens.
func (a *Analyzer) Tokens(text string) []Token {
	folded := folding.Fold(text)
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]Token, 0, len(words))
	for _, word := range words {
		token, ok := a.token(word)
		if !ok {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// Terms analyzes text and returns the normalized terms in order of
// appearance.
func (a *Analyzer) Terms(text string) []string {
	tokens := a.Tokens(text)
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		terms = append(terms, t.Term)
	}
	return terms
}

// Term runs a single word through the pipeline. It returns false when
// the word is dropped (too short or a stop word).
func (a *Analyzer) Term(word string) (string, bool) {
	token, ok := a.token(folding.Fold(word))
	if !ok {
		return "", false
	}
	return token.Term, true
}

// IsStopWord reports whether the folded form of word is on the stop
// word list.
func (a *Analyzer) IsStopWord(word string) bool {
	_, ok := a.stopWords[folding.Fold(word)]
	return ok
}

// token filters and stems an already-folded word.
func (a *Analyzer) token(folded string) (Token, bool) {
	if utf8.RuneCountInString(folded) < a.minLen {
		return Token{}, false
	}
	if _, ok := a.stopWords[folded]; ok {
		return Token{}, false
	}

	// Stemming can collapse a word below the minimum length ("ties"
	// stems to "ti"). Fall back to the surface form so the term stays
	// findable.
	term := porterstemmer.StemString(folded)
	if utf8.RuneCountInString(term) < a.minLen {
		term = folded
	}

	return Token{Term: term, Folded: folded}, true
}
