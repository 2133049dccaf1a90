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

// Package testutil provides shared test fixtures.
package testutil

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keithnytati/go-searchindex"
)

// ManualData returns a small but complete search index modeled on a
// process-chemistry manual: pages, body and title terms, and an object
// inventory. The data is canonical and passes validation.
func ManualData() *searchindex.Data {
	return &searchindex.Data{
		EnvVersion: 42,
		Filenames: []string{
			"api/stoichiometry",
			"api/thermochemistry",
			"examples/heat-balance",
			"guide/getting-started",
			"index",
			"reference/units",
		},
		Terms: searchindex.TermTable{
			"auxi":            searchindex.NewPostings(3, 4),
			"balanc":          searchindex.NewPostings(2),
			"convers":         searchindex.NewPostings(5),
			"enthalpi":        searchindex.NewPostings(1, 2),
			"get":             searchindex.NewPostings(3),
			"heat":            searchindex.NewPostings(2),
			"mass":            searchindex.NewPostings(0, 2, 5),
			"molar":           searchindex.NewPostings(0, 5),
			"reaction":        searchindex.NewPostings(0, 1, 2),
			"start":           searchindex.NewPostings(3),
			"stoichiometri":   searchindex.NewPostings(0, 3),
			"thermochemistri": searchindex.NewPostings(1),
			"unit":            searchindex.NewPostings(5),
		},
		TitleTerms: searchindex.TermTable{
			"auxi":            searchindex.NewPostings(4),
			"balanc":          searchindex.NewPostings(2),
			"get":             searchindex.NewPostings(3),
			"heat":            searchindex.NewPostings(2),
			"start":           searchindex.NewPostings(3),
			"stoichiometri":   searchindex.NewPostings(0),
			"thermochemistri": searchindex.NewPostings(1),
			"unit":            searchindex.NewPostings(5),
		},
		Objects: searchindex.ObjectTable{
			"": {
				"auxi": {PageRef: 4, TypeRef: 0, Priority: 0, Anchor: ""},
			},
			"auxi.stoichiometry": {
				"amount":          {PageRef: 0, TypeRef: 1, Priority: 1, Anchor: "auxi.stoichiometry.amount"},
				"deprecated_calc": {PageRef: 0, TypeRef: 1, Priority: 2, Anchor: "auxi.stoichiometry.deprecated_calc"},
				"molar_mass":      {PageRef: 0, TypeRef: 1, Priority: 1, Anchor: "auxi.stoichiometry.molar_mass"},
			},
		},
		ObjNames: map[int]searchindex.ObjName{
			0: {Domain: "py", Type: "module", Label: "Python module"},
			1: {Domain: "py", Type: "function", Label: "Python function"},
		},
		ObjTypes: map[int]string{
			0: "py:module",
			1: "py:function",
		},
	}
}

// MakeIndex builds a queryable index from data by running it through
// an encode/decode cycle.
func MakeIndex(t *testing.T, data *searchindex.Data) *searchindex.Index {
	t.Helper()

	var buf bytes.Buffer
	if err := searchindex.Encode(&buf, data, searchindex.FormatJSON); err != nil {
		t.Fatalf("searchindex.Encode: %v", err)
	}

	idx, err := searchindex.New(&buf)
	if err != nil {
		t.Fatalf("searchindex.New: %v", err)
	}
	return idx
}

// WriteIndex encodes data in the given format into dir/name and
// returns the file's path. Names ending in .gz are gzip-compressed.
func WriteIndex(t *testing.T, dir, name string, data *searchindex.Data, format searchindex.Format) string {
	t.Helper()

	var buf bytes.Buffer
	if err := searchindex.Encode(&buf, data, format); err != nil {
		t.Fatalf("searchindex.Encode: %v", err)
	}

	b := buf.Bytes()
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		var compressed bytes.Buffer
		zw := gzip.NewWriter(&compressed)
		if _, err := zw.Write(b); err != nil {
			t.Fatalf("gzip.Write: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("gzip.Close: %v", err)
		}
		b = compressed.Bytes()
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0o600); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	return path
}
