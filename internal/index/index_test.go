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

package index

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type String string

func (s String) String() string {
	return string(s)
}

func TestIndex_string(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    []String
		query    string
		expected []String
	}{
		{
			name:     "single result",
			index:    []String{"mole", "mass", "molar", "mass"},
			query:    "mole",
			expected: []String{"mole"},
		},
		{
			name:     "multiple results",
			index:    []String{"mole", "mass", "molar", "mass"},
			query:    "mass",
			expected: []String{"mass", "mass"},
		},
		{
			name:     "no results",
			index:    []String{"mole", "mass", "molar", "mass"},
			query:    "enthalpy",
			expected: nil,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index := NewIndex(test.index, strings.Compare)

			if diff := cmp.Diff(test.expected, index.Search(test.query)); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_PrefixSearch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    []String
		prefix   string
		expected []String
	}{
		{
			name:     "empty prefix",
			index:    []String{"mole", "molar", "mass"},
			prefix:   "",
			expected: nil,
		},
		{
			name:     "prefix run",
			index:    []String{"stoichiometry", "stoichiometric", "steam", "mass"},
			prefix:   "stoichiometr",
			expected: []String{"stoichiometric", "stoichiometry"},
		},
		{
			name:     "exact match excluded",
			index:    []String{"mol", "molar", "mole", "mass"},
			prefix:   "mol",
			expected: []String{"molar", "mole"},
		},
		{
			name:     "only exact match",
			index:    []String{"mol", "mass"},
			prefix:   "mol",
			expected: nil,
		},
		{
			name:     "no match",
			index:    []String{"mole", "molar", "mass"},
			prefix:   "thermo",
			expected: nil,
		},
		{
			name:     "prefix past end",
			index:    []String{"mass", "mole"},
			prefix:   "z",
			expected: nil,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index := NewIndex(test.index, strings.Compare)

			if diff := cmp.Diff(test.expected, index.PrefixSearch(test.prefix)); diff != "" {
				t.Fatalf("PrefixSearch (-want, +got):\n%s", diff)
			}
		})
	}
}
