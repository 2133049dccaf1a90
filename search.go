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
	"cmp"
	"slices"
	"strings"

	"github.com/keithnytati/go-searchindex/internal/analysis"
	"github.com/keithnytati/go-searchindex/internal/index"
)

// Scores assigned to the ways a query term can match a page. A term's
// score on a page is the highest-scoring way it matches; a page's
// score is the sum over all query terms.
const (
	scoreTitleExact  = 15
	scoreTitlePrefix = 7
	scoreTermExact   = 5
	scoreTermPrefix  = 2
)

// objectScore returns the score an object match contributes based on
// the object's priority. Hidden objects score negative so that pages
// matched only through them are dropped.
func objectScore(priority int) int {
	switch {
	case priority <= 0:
		return 15
	case priority == 1:
		return 5
	default:
		return -5
	}
}

// SearchOptions are options for Index.Search.
type SearchOptions struct {
	// Limit caps the number of returned results. Zero means no limit.
	Limit int

	// Analyzer normalizes the query. It must be configured the same
	// way as the analyzer the index was built with. If nil, the
	// default analysis options are used.
	Analyzer *analysis.Analyzer
}

// Result is a single search hit.
type Result struct {
	// Page is the page identifier.
	Page string `json:"page"`

	// Score ranks the hit. Higher scores sort first.
	Score int `json:"score"`

	// Matched are the index terms and object names the query matched
	// on this page, sorted bytewise.
	Matched []string `json:"matched"`
}

// Search runs a query against the index with the semantics of the
// documentation viewer's search widget.
//
// The query is normalized with the same analysis pipeline the builder
// uses. A page is a term match when every significant query term
// matches it, exactly or as a prefix of an indexed term; title hits
// score higher than body hits and exact hits higher than prefix hits.
// Independently, whitespace-separated query words are matched against
// the object inventory by bare name and dotted qualified name, and
// each hit scores the object's page by its priority. Pages whose total
// score is not positive are dropped.
//
// Results are ordered by score descending, then page identifier
// ascending.
func (idx *Index) Search(query string, options *SearchOptions) []*Result {
	if options == nil {
		options = &SearchOptions{}
	}
	analyzer := options.Analyzer
	if analyzer == nil {
		analyzer = analysis.New(nil)
	}

	idx.buildQueryIndexes()

	var (
		scores  = map[int]int{}
		hits    = map[int]int{}
		matched = map[int]map[string]struct{}{}
	)
	record := func(ref int, term string) {
		if terms, ok := matched[ref]; ok {
			terms[term] = struct{}{}
		} else {
			matched[ref] = map[string]struct{}{term: {}}
		}
	}

	tokens := dedupeTokens(analyzer.Tokens(query))
	for _, token := range tokens {
		// Best score per page for this token.
		contrib := map[int]int{}
		add := func(ref, score int, term string) {
			if s, ok := contrib[ref]; !ok || score > s {
				contrib[ref] = score
			}
			record(ref, term)
		}

		if p, ok := idx.data.TitleTerms[token.Term]; ok {
			for _, ref := range p.Refs() {
				add(ref, scoreTitleExact, token.Term)
			}
		}
		for _, entry := range idx.titleIdx.PrefixSearch(token.Folded) {
			for _, ref := range entry.refs {
				add(ref, scoreTitlePrefix, entry.term)
			}
		}
		if p, ok := idx.data.Terms[token.Term]; ok {
			for _, ref := range p.Refs() {
				add(ref, scoreTermExact, token.Term)
			}
		}
		for _, entry := range idx.termIdx.PrefixSearch(token.Folded) {
			for _, ref := range entry.refs {
				add(ref, scoreTermPrefix, entry.term)
			}
		}

		for ref, score := range contrib {
			scores[ref] += score
			hits[ref]++
		}
	}

	// Pages must match every term.
	for ref, n := range hits {
		if n != len(tokens) {
			delete(scores, ref)
		}
	}

	// Object hits are an independent result stream: an object match is
	// a direct navigation target and bypasses the every-term rule.
	for _, word := range queryWords(query) {
		for _, obj := range idx.objectIdx.Search(word) {
			scores[obj.entry.PageRef] += objectScore(obj.entry.Priority)
			record(obj.entry.PageRef, obj.display)
		}
	}

	results := make([]*Result, 0, len(scores))
	for ref, score := range scores {
		if score <= 0 {
			continue
		}
		results = append(results, &Result{
			Page:    idx.data.Filenames[ref],
			Score:   score,
			Matched: sortedKeys(matched[ref]),
		})
	}

	slices.SortFunc(results, func(a, b *Result) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		return strings.Compare(a.Page, b.Page)
	})

	if options.Limit > 0 && len(results) > options.Limit {
		results = results[:options.Limit]
	}
	return results
}

// indexedTerm is one term table entry mirrored into a sorted index for
// prefix lookup.
type indexedTerm struct {
	term string
	refs []int
}

// String implements fmt.Stringer for index sorting and lookup.
func (t indexedTerm) String() string {
	return t.term
}

// buildQueryIndexes mirrors the term tables and the object inventory
// into sorted indexes on first use.
func (idx *Index) buildQueryIndexes() {
	idx.once.Do(func() {
		idx.termIdx = newTermIndex(idx.data.Terms)
		idx.titleIdx = newTermIndex(idx.data.TitleTerms)
		idx.objectIdx = newObjectIndex(idx.data)
	})
}

func newTermIndex(table TermTable) *index.Index[indexedTerm] {
	entries := make([]indexedTerm, 0, len(table))
	for term, postings := range table {
		entries = append(entries, indexedTerm{
			term: term,
			refs: postings.Refs(),
		})
	}
	return index.NewIndex(entries, strings.Compare)
}

// dedupeTokens drops repeated query tokens. Repeating a word in a
// query does not double its weight.
func dedupeTokens(tokens []analysis.Token) []analysis.Token {
	seen := make(map[analysis.Token]struct{}, len(tokens))
	deduped := make([]analysis.Token, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		deduped = append(deduped, token)
	}
	return deduped
}
