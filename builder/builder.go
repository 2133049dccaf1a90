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

// Package builder generates documentation search indexes from a source
// tree of HTML, Markdown, and plain text pages. Pages are parsed
// concurrently and merged into the term tables in one atomic generation
// step; the output is always in canonical encoding form and always
// passes validation.
package builder

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/keithnytati/go-searchindex"
	"github.com/keithnytati/go-searchindex/internal/analysis"
)

// DefaultEnvVersion is the format/version tag stamped into generated
// indexes when Options does not name one.
const DefaultEnvVersion = 42

// ErrSource is a parent error for all problems found in the
// documentation source tree or the object manifest.
var ErrSource = errors.New("invalid documentation source")

// Options configure a build.
type Options struct {
	// Root is the documentation source directory. Required.
	Root string

	// Excludes are path.Match patterns tested against each source
	// file's slash-separated path relative to Root. Matching files are
	// skipped. A "*" does not cross path separators.
	Excludes []string

	// ManifestPath is the path to a YAML object manifest describing the
	// API object inventory. Empty means no objects.
	ManifestPath string

	// EnvVersion is stamped into the generated index. Zero or negative
	// means DefaultEnvVersion.
	EnvVersion int

	// Workers bounds the number of pages parsed concurrently. Zero or
	// negative means one worker per CPU.
	Workers int

	// Analysis configures the text analysis pipeline. If nil, the
	// default analysis options are used.
	Analysis *analysis.Options
}

// Stats describe one completed build.
type Stats struct {
	// Pages is the number of pages indexed.
	Pages int

	// Terms is the number of distinct body terms.
	Terms int

	// TitleTerms is the number of distinct title terms.
	TitleTerms int

	// Objects is the number of API objects compiled from the manifest.
	Objects int

	// Skipped is the number of files passed over during discovery
	// because of their extension or an exclude pattern.
	Skipped int

	// Elapsed is the wall-clock build duration.
	Elapsed time.Duration
}

// Build walks the source tree under options.Root, parses every
// recognized page, and assembles a search index. Page identifiers are
// the slash-separated paths relative to the root with the file
// extension stripped; two source files mapping to the same identifier
// are an error. The filenames list is sorted lexicographically and the
// output is identical for any worker count.
func Build(ctx context.Context, options *Options) (*searchindex.Data, *Stats, error) {
	start := time.Now()

	if options == nil || options.Root == "" {
		return nil, nil, errors.New("no root directory")
	}

	pages, skipped, err := discoverPages(options.Root, options.Excludes)
	if err != nil {
		return nil, nil, err
	}

	slices.SortFunc(pages, func(a, b pageFile) int {
		return strings.Compare(a.id, b.id)
	})
	for i := 1; i < len(pages); i++ {
		if pages[i].id == pages[i-1].id {
			return nil, nil, fmt.Errorf("%w: %q and %q both map to page %q",
				ErrSource, pages[i-1].path, pages[i].path, pages[i].id)
		}
	}

	analyzer := analysis.New(options.Analysis)

	// Each worker writes only its own slot, so the merged tables do not
	// depend on scheduling.
	docs := make([]pageDoc, len(pages))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workerCount(options.Workers))
	for i, p := range pages {
		i, p := i, p
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			title, body, err := parsePage(p.path, p.ext)
			if err != nil {
				return fmt.Errorf("page %q: %w", p.id, err)
			}
			docs[i] = pageDoc{
				terms:      analyzer.Terms(title + "\n" + body),
				titleTerms: analyzer.Terms(title),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	filenames := make([]string, len(pages))
	termRefs := map[string][]int{}
	titleRefs := map[string][]int{}
	for i, p := range pages {
		filenames[i] = p.id
		for _, term := range docs[i].terms {
			termRefs[term] = append(termRefs[term], i)
		}
		for _, term := range docs[i].titleTerms {
			titleRefs[term] = append(titleRefs[term], i)
		}
	}

	data := &searchindex.Data{
		EnvVersion: envVersion(options.EnvVersion),
		Filenames:  filenames,
		Terms:      newTermTable(termRefs),
		TitleTerms: newTermTable(titleRefs),
		Objects:    searchindex.ObjectTable{},
		ObjNames:   map[int]searchindex.ObjName{},
		ObjTypes:   map[int]string{},
	}

	if options.ManifestPath != "" {
		manifest, err := LoadManifest(options.ManifestPath)
		if err != nil {
			return nil, nil, err
		}
		refs := make(map[string]int, len(filenames))
		for i, id := range filenames {
			refs[id] = i
		}
		if err := compileObjects(data, manifest, refs); err != nil {
			return nil, nil, err
		}
	}

	if err := searchindex.Validate(data); err != nil {
		return nil, nil, err
	}

	stats := &Stats{
		Pages:      len(filenames),
		Terms:      len(data.Terms),
		TitleTerms: len(data.TitleTerms),
		Objects:    data.Objects.Len(),
		Skipped:    skipped,
		Elapsed:    time.Since(start),
	}
	return data, stats, nil
}

// newTermTable converts per-term ref lists into canonical postings.
func newTermTable(refs map[string][]int) searchindex.TermTable {
	table := make(searchindex.TermTable, len(refs))
	for term, r := range refs {
		table[term] = searchindex.NewPostings(r...)
	}
	return table
}

func envVersion(v int) int {
	if v <= 0 {
		return DefaultEnvVersion
	}
	return v
}

func workerCount(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}
