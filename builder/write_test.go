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

package builder_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/keithnytati/go-searchindex"
	"github.com/keithnytati/go-searchindex/builder"
	"github.com/keithnytati/go-searchindex/internal/testutil"
)

// TestWriteFile tests that written indexes can be read back in every
// format, compressed and not.
func TestWriteFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file   string
		format searchindex.Format
	}{
		{
			file:   "searchindex.json",
			format: searchindex.FormatJSON,
		},
		{
			file:   "searchindex.js",
			format: searchindex.FormatJS,
		},
		{
			file:   "searchindex.json.gz",
			format: searchindex.FormatJSON,
		},
		{
			file:   "searchindex.js.gz",
			format: searchindex.FormatJS,
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.file, func(t *testing.T) {
			t.Parallel()

			data := testutil.ManualData()
			path := filepath.Join(t.TempDir(), test.file)
			if err := builder.WriteFile(path, data, test.format); err != nil {
				t.Fatalf("builder.WriteFile: %v", err)
			}

			idx, err := searchindex.Open(path)
			if err != nil {
				t.Fatalf("searchindex.Open: %v", err)
			}
			if got := idx.Format(); got != test.format {
				t.Errorf("Index.Format: got %v, want %v", got, test.format)
			}
			if diff := cmp.Diff(data, idx.Data()); diff != "" {
				t.Errorf("Index.Data (-want, +got):\n%s", diff)
			}
		})
	}
}

// TestWriteFile_replace tests that writing over an existing index
// replaces it without leaving temporary files behind.
func TestWriteFile_replace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "searchindex.js")

	first := testutil.ManualData()
	if err := builder.WriteFile(path, first, searchindex.FormatJS); err != nil {
		t.Fatalf("builder.WriteFile: %v", err)
	}

	second := testutil.ManualData()
	second.EnvVersion = first.EnvVersion + 1
	if err := builder.WriteFile(path, second, searchindex.FormatJS); err != nil {
		t.Fatalf("builder.WriteFile: %v", err)
	}

	idx, err := searchindex.Open(path)
	if err != nil {
		t.Fatalf("searchindex.Open: %v", err)
	}
	if got := idx.EnvVersion(); got != second.EnvVersion {
		t.Errorf("Index.EnvVersion: got %d, want %d", got, second.EnvVersion)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("os.ReadDir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp") {
			t.Errorf("leftover temporary file %q", entry.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("os.ReadDir: got %d entries, want 1", len(entries))
	}
}

// TestWriteFile_createsDirectory tests that missing output directories
// are created.
func TestWriteFile_createsDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "html", "searchindex.js")
	if err := builder.WriteFile(path, testutil.ManualData(), searchindex.FormatJS); err != nil {
		t.Fatalf("builder.WriteFile: %v", err)
	}

	if _, err := searchindex.Open(path); err != nil {
		t.Fatalf("searchindex.Open: %v", err)
	}
}
