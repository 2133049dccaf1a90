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

// Package index implements a generic sorted array index with exact and
// prefix lookup. The search index stores its term tables as maps; query
// evaluation needs ordered access for prefix ("partial") matching, so
// the tables are mirrored into this structure when an index is opened.
package index

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Index is a generic sorted array index.
type Index[V fmt.Stringer] struct {
	index []V

	cmp func(string, string) int
}

// NewIndex creates an index from the given slice and comparison function.
// cmp(a, b) should return a negative number when a < b, a positive number
// when a > b and zero when a == b or a and b are incomparable in the
// sense of a strict weak ordering.
func NewIndex[V fmt.Stringer](index []V, cmp func(string, string) int) *Index[V] {
	sorted := make([]V, len(index))
	copy(sorted, index)
	slices.SortFunc(sorted, func(a, b V) int {
		return cmp(a.String(), b.String())
	})

	return &Index[V]{
		index: sorted,
		cmp:   cmp,
	}
}

// Search performs a binary search over the index and returns entries
// matching the query exactly.
func (idx *Index[V]) Search(query string) []V {
	i, found := sort.Find(len(idx.index), func(i int) int {
		return idx.cmp(query, idx.index[i].String())
	})

	if !found {
		return nil
	}

	j := i
	for ; j < len(idx.index) && idx.cmp(query, idx.index[j].String()) == 0; j++ {
	}
	return idx.index[i:j]
}

// PrefixSearch returns the run of entries whose value begins with the
// given prefix. Entries equal to the prefix itself are excluded so that
// exact and partial matches can be scored separately. PrefixSearch
// requires an index built with [strings.Compare]; folded comparison
// functions do not preserve prefix runs in general.
func (idx *Index[V]) PrefixSearch(prefix string) []V {
	if prefix == "" {
		return nil
	}

	i := sort.Search(len(idx.index), func(i int) bool {
		return idx.index[i].String() >= prefix
	})

	j := i
	for ; j < len(idx.index) && strings.HasPrefix(idx.index[j].String(), prefix); j++ {
	}

	// Skip over exact matches at the head of the run.
	for i < j && idx.index[i].String() == prefix {
		i++
	}

	if i == j {
		return nil
	}
	return idx.index[i:j]
}

// Len returns the number of entries in the index.
func (idx *Index[V]) Len() int {
	return len(idx.index)
}

// At returns the entry at position i in sorted order.
func (idx *Index[V]) At(i int) V {
	return idx.index[i]
}
