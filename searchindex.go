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
	"compress/gzip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/keithnytati/go-searchindex/internal/index"
)

// Index is a loaded, validated search index ready for queries. It is
// immutable and safe for concurrent use.
type Index struct {
	data   *Data
	format Format
	path   string

	once      sync.Once
	termIdx   *index.Index[indexedTerm]
	titleIdx  *index.Index[indexedTerm]
	objectIdx *index.Index[objectRef]
}

// OpenAll opens all search index files under a directory. Files using
// the generator's conventional names searchindex.js and
// searchindex.json, optionally gzip-compressed, are recognized. All
// successfully opened indexes are returned along with any errors that
// occurred.
func OpenAll(path string) ([]*Index, []error) {
	var indexes []*Index
	var errs []error
	if err := filepath.WalkDir(path, func(path string, info fs.DirEntry, err error) error {
		// Walking the file path will ignore errors.
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !info.IsDir() && isIndexFilename(info.Name()) {
			idx, err := Open(path)
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			indexes = append(indexes, idx)
		}
		return nil
	}); err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	return indexes, errs
}

// isIndexFilename reports whether name is a conventional search index
// file name.
func isIndexFilename(name string) bool {
	name = strings.ToLower(name)
	name = strings.TrimSuffix(name, ".gz")
	return name == "searchindex.js" || name == "searchindex.json"
}

// Open opens the search index file at path. Files with a .gz extension
// are gzip-decompressed. The index is validated before it is returned.
func Open(path string) (*Index, error) {
	data, format, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return &Index{
		data:   data,
		format: format,
		path:   path,
	}, nil
}

// DecodeFile reads the search index file at path without validating it.
// Files with a .gz extension are gzip-decompressed.
func DecodeFile(path string) (*Data, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, FormatJSON, fmt.Errorf("error opening %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.ToLower(filepath.Ext(path)) == ".gz" {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, FormatJSON, fmt.Errorf("error opening %q: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	data, format, err := Decode(r)
	if err != nil {
		return nil, format, fmt.Errorf("error reading %q: %w", path, err)
	}
	return data, format, nil
}

// New reads a search index from r and validates it.
func New(r io.Reader) (*Index, error) {
	data, format, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return &Index{
		data:   data,
		format: format,
	}, nil
}

// EnvVersion returns the version tag of the tool that generated the
// index.
func (idx *Index) EnvVersion() int {
	return idx.data.EnvVersion
}

// PageCount returns the number of indexed pages.
func (idx *Index) PageCount() int {
	return len(idx.data.Filenames)
}

// TermCount returns the number of distinct body terms.
func (idx *Index) TermCount() int {
	return len(idx.data.Terms)
}

// TitleTermCount returns the number of distinct title terms.
func (idx *Index) TitleTermCount() int {
	return len(idx.data.TitleTerms)
}

// ObjectCount returns the number of entries in the object inventory.
func (idx *Index) ObjectCount() int {
	return idx.data.Objects.Len()
}

// Pages returns the page identifiers in index order. The returned
// slice is shared and must not be modified.
func (idx *Index) Pages() []string {
	return idx.data.Filenames
}

// Format returns the framing the index was decoded from.
func (idx *Index) Format() Format {
	return idx.format
}

// Path returns the file path the index was opened from. It is empty
// for indexes read from a plain reader.
func (idx *Index) Path() string {
	return idx.path
}

// Data returns the decoded index data. The data is shared and must be
// treated as read-only.
func (idx *Index) Data() *Data {
	return idx.data
}

// Lookup resolves an exact, already-normalized term to the identifiers
// of the pages containing it, in either their body or their title.
// Identifiers are returned in index order without duplicates.
func (idx *Index) Lookup(term string) []string {
	refs := slices.Clone(idx.data.Terms[term].Refs())
	refs = append(refs, idx.data.TitleTerms[term].Refs()...)
	slices.Sort(refs)
	refs = slices.Compact(refs)

	if len(refs) == 0 {
		return nil
	}
	pages := make([]string, 0, len(refs))
	for _, ref := range refs {
		pages = append(pages, idx.data.Filenames[ref])
	}
	return pages
}
