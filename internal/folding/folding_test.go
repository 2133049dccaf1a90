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

package folding_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keithnytati/go-searchindex/internal/folding"
)

// TestFold tests term folding.
func TestFold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string

		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "lowercase unchanged",
			input:    "stoichiometry",
			expected: "stoichiometry",
		},
		{
			name:     "case folded",
			input:    "Thermochemistry",
			expected: "thermochemistry",
		},
		{
			name:     "diacritics removed",
			input:    "Enthalpieänderung",
			expected: "enthalpieanderung",
		},
		{
			name:     "sharp s folded",
			input:    "Stoffgröße",
			expected: "stoffgrosse",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, folding.Fold(test.input)); diff != "" {
				t.Fatalf("Fold (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestFoldTitle tests whitespace folding of extracted titles.
func TestFoldTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string

		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "already folded",
			input:    "Thermochemical Calculations",
			expected: "Thermochemical Calculations",
		},
		{
			name:     "leading and trailing whitespace",
			input:    "  Stoichiometry Tool\n",
			expected: "Stoichiometry Tool",
		},
		{
			name:     "internal run collapsed",
			input:    "auxi \n\t user   manual",
			expected: "auxi user manual",
		},
		{
			name:     "whitespace only",
			input:    " \n\t ",
			expected: "",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, folding.FoldTitle(test.input)); diff != "" {
				t.Fatalf("FoldTitle (-want, +got):\n%s", diff)
			}
		})
	}
}
