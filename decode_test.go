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
)

// sampleJSON is a canonically encoded index exercising every field,
// including both postings forms.
const sampleJSON = `{"envversion":42,"filenames":["api/stoichiometry","guide/intro"],` +
	`"objects":{"auxi":{"molar_mass":[0,1,1,"mm"]}},` +
	`"objnames":{"1":["py","function","Python function"]},` +
	`"objtypes":{"1":"py:function"},` +
	`"terms":{"mass":[0,1],"molar":0},` +
	`"titleterms":{"mass":0}}`

func sampleData() *searchindex.Data {
	return &searchindex.Data{
		EnvVersion: 42,
		Filenames:  []string{"api/stoichiometry", "guide/intro"},
		Terms: searchindex.TermTable{
			"mass":  searchindex.ListPostings(0, 1),
			"molar": searchindex.NewPostings(0),
		},
		TitleTerms: searchindex.TermTable{
			"mass": searchindex.NewPostings(0),
		},
		Objects: searchindex.ObjectTable{
			"auxi": {
				"molar_mass": {PageRef: 0, TypeRef: 1, Priority: 1, Anchor: "mm"},
			},
		},
		ObjNames: map[int]searchindex.ObjName{
			1: {Domain: "py", Type: "function", Label: "Python function"},
		},
		ObjTypes: map[int]string{
			1: "py:function",
		},
	}
}

// TestDecode tests Decode.
func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string

		expected       *searchindex.Data
		expectedFormat searchindex.Format
	}{
		{
			name:  "json",
			input: sampleJSON,

			expected:       sampleData(),
			expectedFormat: searchindex.FormatJSON,
		},
		{
			name:  "json trailing newline",
			input: sampleJSON + "\n",

			expected:       sampleData(),
			expectedFormat: searchindex.FormatJSON,
		},
		{
			name:  "js",
			input: "Search.setIndex(" + sampleJSON + ")",

			expected:       sampleData(),
			expectedFormat: searchindex.FormatJS,
		},
		{
			name:  "js with semicolon",
			input: "Search.setIndex(" + sampleJSON + ");\n",

			expected:       sampleData(),
			expectedFormat: searchindex.FormatJS,
		},
		{
			name:  "surrounding whitespace",
			input: "\n  " + sampleJSON + "  \n",

			expected:       sampleData(),
			expectedFormat: searchindex.FormatJSON,
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			data, format, err := searchindex.Decode(strings.NewReader(test.input))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}

			if got, want := format, test.expectedFormat; got != want {
				t.Errorf("Decode format: got %v, want %v", got, want)
			}
			if diff := cmp.Diff(test.expected, data); diff != "" {
				t.Fatalf("Decode (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestDecode_malformed tests that Decode classifies parse failures as
// ErrMalformed.
func TestDecode_malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "not json",
			input: "hello",
		},
		{
			name:  "array payload",
			input: `[1,2,3]`,
		},
		{
			name: "unknown field",
			input: `{"envversion":1,"filenames":[],"objects":{},"objnames":{},"objtypes":{},` +
				`"terms":{},"titleterms":{},"docnames":[]}`,
		},
		{
			name: "missing field",
			input: `{"envversion":1,"filenames":[],"objects":{},"objnames":{},"objtypes":{},` +
				`"terms":{}}`,
		},
		{
			name: "null field",
			input: `{"envversion":1,"filenames":[],"objects":{},"objnames":{},"objtypes":{},` +
				`"terms":null,"titleterms":{}}`,
		},
		{
			name: "envversion string",
			input: `{"envversion":"1","filenames":[],"objects":{},"objnames":{},"objtypes":{},` +
				`"terms":{},"titleterms":{}}`,
		},
		{
			name: "postings string",
			input: `{"envversion":1,"filenames":["a"],"objects":{},"objnames":{},"objtypes":{},` +
				`"terms":{"x":"a"},"titleterms":{}}`,
		},
		{
			name: "postings fractional ref",
			input: `{"envversion":1,"filenames":["a"],"objects":{},"objnames":{},"objtypes":{},` +
				`"terms":{"x":1.5},"titleterms":{}}`,
		},
		{
			name: "postings null",
			input: `{"envversion":1,"filenames":["a"],"objects":{},"objnames":{},"objtypes":{},` +
				`"terms":{"x":null},"titleterms":{}}`,
		},
		{
			name: "postings list element string",
			input: `{"envversion":1,"filenames":["a"],"objects":{},"objnames":{},"objtypes":{},` +
				`"terms":{"x":[0,"a"]},"titleterms":{}}`,
		},
		{
			name: "object entry wrong arity",
			input: `{"envversion":1,"filenames":["a"],"objects":{"":{"x":[0,0,0]}},` +
				`"objnames":{"0":["py","module","Python module"]},"objtypes":{"0":"py:module"},` +
				`"terms":{},"titleterms":{}}`,
		},
		{
			name: "object name wrong arity",
			input: `{"envversion":1,"filenames":["a"],"objects":{},` +
				`"objnames":{"0":["py","module"]},"objtypes":{"0":"py:module"},` +
				`"terms":{},"titleterms":{}}`,
		},
		{
			name: "objtypes non-integer key",
			input: `{"envversion":1,"filenames":[],"objects":{},"objnames":{},` +
				`"objtypes":{"module":"py:module"},"terms":{},"titleterms":{}}`,
		},
		{
			name:  "unterminated js",
			input: `Search.setIndex({"envversion":1}`,
		},
		{
			name:  "trailing garbage",
			input: sampleJSON + " extra",
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := searchindex.Decode(strings.NewReader(test.input))
			if err == nil {
				t.Fatalf("Decode: expected error, got nil")
			}
			if !errors.Is(err, searchindex.ErrMalformed) {
				t.Fatalf("Decode: error %v is not ErrMalformed", err)
			}
		})
	}
}
