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
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/keithnytati/go-searchindex/internal/analysis"
	"github.com/keithnytati/go-searchindex/internal/folding"
)

// ErrInvalid indicates decoded data that violates the format's
// structural invariants. All errors returned by Validate unwrap to it.
var ErrInvalid = errors.New("invalid search index")

// Validate checks the structural invariants of the format: every ref
// points inside the filenames list, filenames contains no duplicates,
// term keys are non-empty, the environment version is non-negative,
// and object entries reference existing type indices. All violations
// are reported, joined into one error.
func Validate(data *Data) error {
	var errs []error

	if data.EnvVersion < 0 {
		errs = append(errs, fmt.Errorf("%w: envversion is negative: %d", ErrInvalid, data.EnvVersion))
	}

	seen := make(map[string]int, len(data.Filenames))
	for i, name := range data.Filenames {
		if j, ok := seen[name]; ok {
			errs = append(errs, fmt.Errorf("%w: filenames[%d] duplicates filenames[%d]: %q", ErrInvalid, i, j, name))
			continue
		}
		seen[name] = i
	}

	for _, table := range []struct {
		name  string
		terms TermTable
	}{
		{"terms", data.Terms},
		{"titleterms", data.TitleTerms},
	} {
		for _, term := range table.terms.Terms() {
			if term == "" {
				errs = append(errs, fmt.Errorf("%w: %s has an empty term key", ErrInvalid, table.name))
			}
			for _, ref := range table.terms[term].Refs() {
				if ref < 0 || ref >= len(data.Filenames) {
					errs = append(errs, fmt.Errorf("%w: %s[%q] ref %d out of range [0,%d)",
						ErrInvalid, table.name, term, ref, len(data.Filenames)))
				}
			}
		}
	}

	for _, prefix := range sortedKeys(data.Objects) {
		objects := data.Objects[prefix]
		for _, name := range sortedKeys(objects) {
			entry := objects[name]
			if entry.PageRef < 0 || entry.PageRef >= len(data.Filenames) {
				errs = append(errs, fmt.Errorf("%w: objects[%q][%q] page ref %d out of range [0,%d)",
					ErrInvalid, prefix, name, entry.PageRef, len(data.Filenames)))
			}
			if _, ok := data.ObjTypes[entry.TypeRef]; !ok {
				errs = append(errs, fmt.Errorf("%w: objects[%q][%q] type %d not in objtypes",
					ErrInvalid, prefix, name, entry.TypeRef))
			}
			if _, ok := data.ObjNames[entry.TypeRef]; !ok {
				errs = append(errs, fmt.Errorf("%w: objects[%q][%q] type %d not in objnames",
					ErrInvalid, prefix, name, entry.TypeRef))
			}
		}
	}

	return errors.Join(errs...)
}

// Problem is a strict-mode finding reported by Lint. Problems flag data
// that is well-formed but that the generator would never produce; they
// are advisory.
type Problem struct {
	// Code identifies the finding class.
	Code string

	// Table is the top-level field the finding is about.
	Table string

	// Key is the offending key within the table.
	Key string

	// Message describes the finding.
	Message string
}

// String returns a one-line description of the problem.
func (p Problem) String() string {
	return fmt.Sprintf("%s: %s[%q]: %s", p.Code, p.Table, p.Key, p.Message)
}

// Lint codes reported for data the generator would never produce.
const (
	// LintSingleElementList flags postings encoded as a one-element
	// list instead of a bare integer.
	LintSingleElementList = "single-element-list"

	// LintUnsortedRefs flags a posting list whose refs are not in
	// ascending order.
	LintUnsortedRefs = "unsorted-refs"

	// LintDuplicateRefs flags a posting list containing the same ref
	// twice.
	LintDuplicateRefs = "duplicate-refs"

	// LintUnnormalizedTerm flags a term key that is not in folded form.
	LintUnnormalizedTerm = "unnormalized-term"

	// LintStopWordTerm flags a term key on the stop word list.
	LintStopWordTerm = "stop-word-term"

	// LintTitleOnlyTerm flags a title term referencing a page whose
	// body terms never mention it. The generator indexes title text
	// into the body table as well.
	LintTitleOnlyTerm = "title-only-term"
)

// Lint reports findings beyond the hard invariants checked by Validate.
// The data is assumed to already pass Validate.
func Lint(data *Data) []Problem {
	var problems []Problem

	analyzer := analysis.New(nil)

	for _, table := range []struct {
		name  string
		terms TermTable
	}{
		{"terms", data.Terms},
		{"titleterms", data.TitleTerms},
	} {
		for _, term := range table.terms.Terms() {
			postings := table.terms[term]
			refs := postings.Refs()

			if !postings.Scalar() && postings.Len() == 1 {
				problems = append(problems, Problem{
					Code:    LintSingleElementList,
					Table:   table.name,
					Key:     term,
					Message: "single ref encoded as a list instead of a bare integer",
				})
			}
			if !slices.IsSorted(refs) {
				problems = append(problems, Problem{
					Code:    LintUnsortedRefs,
					Table:   table.name,
					Key:     term,
					Message: "refs are not in ascending order",
				})
			}
			if hasDuplicates(refs) {
				problems = append(problems, Problem{
					Code:    LintDuplicateRefs,
					Table:   table.name,
					Key:     term,
					Message: "refs contain duplicates",
				})
			}
			if term != folding.Fold(term) {
				problems = append(problems, Problem{
					Code:    LintUnnormalizedTerm,
					Table:   table.name,
					Key:     term,
					Message: fmt.Sprintf("term is not in folded form %q", folding.Fold(term)),
				})
			}
			if analyzer.IsStopWord(term) {
				problems = append(problems, Problem{
					Code:    LintStopWordTerm,
					Table:   table.name,
					Key:     term,
					Message: "term is a stop word",
				})
			}
		}
	}

	for _, term := range data.TitleTerms.Terms() {
		bodyRefs := data.Terms[term].Refs()
		for _, ref := range data.TitleTerms[term].Refs() {
			if ref < 0 || ref >= len(data.Filenames) {
				continue
			}
			if !slices.Contains(bodyRefs, ref) {
				problems = append(problems, Problem{
					Code:    LintTitleOnlyTerm,
					Table:   "titleterms",
					Key:     term,
					Message: fmt.Sprintf("page %q has the term in its title but not in its body terms", data.Filenames[ref]),
				})
			}
		}
	}

	return problems
}

func hasDuplicates(refs []int) bool {
	seen := make(map[int]struct{}, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			return true
		}
		seen[ref] = struct{}{}
	}
	return false
}

// sortedKeys returns the string keys of m sorted bytewise.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
