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

package searchindex_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keithnytati/go-searchindex"
	"github.com/keithnytati/go-searchindex/internal/testutil"
)

// TestValidate tests Validate.
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data *searchindex.Data

		// expectedMessages are substrings that must each appear in the
		// returned error. Empty means the data is valid.
		expectedMessages []string
	}{
		{
			name: "valid",
			data: testutil.ManualData(),
		},
		{
			name: "valid empty",
			data: &searchindex.Data{},
		},
		{
			name: "negative envversion",
			data: &searchindex.Data{
				EnvVersion: -1,
			},

			expectedMessages: []string{"envversion is negative: -1"},
		},
		{
			name: "duplicate filenames",
			data: &searchindex.Data{
				Filenames: []string{"a", "b", "a"},
			},

			expectedMessages: []string{`filenames[2] duplicates filenames[0]: "a"`},
		},
		{
			name: "empty term key",
			data: &searchindex.Data{
				Filenames: []string{"a"},
				Terms: searchindex.TermTable{
					"": searchindex.NewPostings(0),
				},
			},

			expectedMessages: []string{"terms has an empty term key"},
		},
		{
			name: "ref out of range",
			data: &searchindex.Data{
				Filenames: []string{"a", "b"},
				Terms: searchindex.TermTable{
					"x": searchindex.ListPostings(0, 2),
				},
			},

			expectedMessages: []string{`terms["x"] ref 2 out of range [0,2)`},
		},
		{
			name: "negative ref",
			data: &searchindex.Data{
				Filenames: []string{"a"},
				TitleTerms: searchindex.TermTable{
					"x": searchindex.NewPostings(-1),
				},
			},

			expectedMessages: []string{`titleterms["x"] ref -1 out of range [0,1)`},
		},
		{
			name: "object page ref out of range",
			data: &searchindex.Data{
				Filenames: []string{"a"},
				Objects: searchindex.ObjectTable{
					"auxi": {
						"assay": {PageRef: 3, TypeRef: 0},
					},
				},
				ObjNames: map[int]searchindex.ObjName{
					0: {Domain: "py", Type: "module", Label: "Python module"},
				},
				ObjTypes: map[int]string{0: "py:module"},
			},

			expectedMessages: []string{`objects["auxi"]["assay"] page ref 3 out of range [0,1)`},
		},
		{
			name: "object type unknown",
			data: &searchindex.Data{
				Filenames: []string{"a"},
				Objects: searchindex.ObjectTable{
					"": {
						"assay": {PageRef: 0, TypeRef: 7},
					},
				},
			},

			expectedMessages: []string{
				`objects[""]["assay"] type 7 not in objtypes`,
				`objects[""]["assay"] type 7 not in objnames`,
			},
		},
		{
			name: "multiple violations reported together",
			data: &searchindex.Data{
				EnvVersion: -3,
				Filenames:  []string{"a", "a"},
				Terms: searchindex.TermTable{
					"x": searchindex.NewPostings(5),
				},
			},

			expectedMessages: []string{
				"envversion is negative: -3",
				`filenames[1] duplicates filenames[0]: "a"`,
				`terms["x"] ref 5 out of range [0,2)`,
			},
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			err := searchindex.Validate(test.data)
			if len(test.expectedMessages) == 0 {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Validate: expected error, got nil")
			}
			if !errors.Is(err, searchindex.ErrInvalid) {
				t.Fatalf("Validate: error %v is not ErrInvalid", err)
			}
			for _, want := range test.expectedMessages {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate: error %q does not contain %q", err, want)
				}
			}
		})
	}
}

// TestLint tests Lint.
func TestLint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data *searchindex.Data

		expected []searchindex.Problem
	}{
		{
			name: "clean",
			data: testutil.ManualData(),
		},
		{
			name: "findings",
			data: &searchindex.Data{
				Filenames: []string{"a", "b"},
				Terms: searchindex.TermTable{
					"Mass": searchindex.ListPostings(1),
					"the":  searchindex.NewPostings(0),
					"x":    searchindex.ListPostings(1, 0),
					"y":    searchindex.ListPostings(0, 0, 1),
				},
				TitleTerms: searchindex.TermTable{
					"z": searchindex.NewPostings(1),
				},
			},

			expected: []searchindex.Problem{
				{
					Code:    searchindex.LintSingleElementList,
					Table:   "terms",
					Key:     "Mass",
					Message: "single ref encoded as a list instead of a bare integer",
				},
				{
					Code:    searchindex.LintUnnormalizedTerm,
					Table:   "terms",
					Key:     "Mass",
					Message: `term is not in folded form "mass"`,
				},
				{
					Code:    searchindex.LintStopWordTerm,
					Table:   "terms",
					Key:     "the",
					Message: "term is a stop word",
				},
				{
					Code:    searchindex.LintUnsortedRefs,
					Table:   "terms",
					Key:     "x",
					Message: "refs are not in ascending order",
				},
				{
					Code:    searchindex.LintDuplicateRefs,
					Table:   "terms",
					Key:     "y",
					Message: "refs contain duplicates",
				},
				{
					Code:    searchindex.LintTitleOnlyTerm,
					Table:   "titleterms",
					Key:     "z",
					Message: `page "b" has the term in its title but not in its body terms`,
				},
			},
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			problems := searchindex.Lint(test.data)
			if diff := cmp.Diff(test.expected, problems); diff != "" {
				t.Fatalf("Lint (-want, +got):\n%s", diff)
			}
		})
	}
}
