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
	"bytes"
	"fmt"
	"testing"

	"github.com/keithnytati/go-searchindex"
	"github.com/keithnytati/go-searchindex/internal/analysis"
)

// benchWords is a sample of manual vocabulary used to fill benchmark
// pages.
var benchWords = []string{
	"enthalpy", "heat", "balance", "thermochemistry", "stoichiometry",
	"entropy", "compound", "phase", "assay", "reaction", "mass", "molar",
	"units", "conversion", "temperature", "pressure", "stream",
	"material", "energy", "process", "model", "simulate", "calculate",
	"install", "tutorial", "example", "reference", "function", "class",
	"module", "chemistry", "engineering", "mixture", "element",
	"periodic", "capacity", "transfer", "report", "figure", "slag",
}

var benchSink []*searchindex.Result

// benchIndex builds an index over pages of recycled vocabulary. Terms
// go through the same analysis as queries do, so benchmark queries hit.
func benchIndex(b *testing.B, pages int) *searchindex.Index {
	b.Helper()

	analyzer := analysis.New(nil)
	data := &searchindex.Data{
		EnvVersion: 1,
		Filenames:  make([]string, pages),
		Terms:      searchindex.TermTable{},
		TitleTerms: searchindex.TermTable{},
		Objects:    searchindex.ObjectTable{},
		ObjNames:   map[int]searchindex.ObjName{0: {Domain: "py", Type: "function", Label: "Python function"}},
		ObjTypes:   map[int]string{0: "py:function"},
	}

	termRefs := map[string][]int{}
	titleRefs := map[string][]int{}
	for i := range data.Filenames {
		data.Filenames[i] = fmt.Sprintf("section%02d/page%04d", i%16, i)

		title := benchWords[i%len(benchWords)] + " " + benchWords[(i+7)%len(benchWords)]
		var body bytes.Buffer
		body.WriteString(title)
		for j := 0; j < 12; j++ {
			body.WriteString(" ")
			body.WriteString(benchWords[(i+j*3)%len(benchWords)])
		}

		for _, term := range analyzer.Terms(title) {
			titleRefs[term] = append(titleRefs[term], i)
		}
		for _, term := range analyzer.Terms(body.String()) {
			termRefs[term] = append(termRefs[term], i)
		}
	}
	for term, refs := range termRefs {
		data.Terms[term] = searchindex.NewPostings(refs...)
	}
	for term, refs := range titleRefs {
		data.TitleTerms[term] = searchindex.NewPostings(refs...)
	}

	calcs := map[string]searchindex.ObjectEntry{}
	for i, word := range benchWords {
		calcs[word+"_calc"] = searchindex.ObjectEntry{
			PageRef:  i % pages,
			TypeRef:  0,
			Priority: i % 3,
			Anchor:   "auxi.calc." + word + "_calc",
		}
	}
	data.Objects["auxi.calc"] = calcs

	var buf bytes.Buffer
	if err := searchindex.Encode(&buf, data, searchindex.FormatJSON); err != nil {
		b.Fatalf("searchindex.Encode: %v", err)
	}
	idx, err := searchindex.New(&buf)
	if err != nil {
		b.Fatalf("searchindex.New: %v", err)
	}
	return idx
}

func BenchmarkIndex_Search(b *testing.B) {
	queries := []struct {
		name  string
		query string
	}{
		{name: "single term", query: "enthalpy"},
		{name: "two terms", query: "heat balance"},
		{name: "prefix", query: "thermo"},
		{name: "object name", query: "enthalpy_calc"},
		{name: "no match", query: "xylophone"},
	}

	for _, pages := range []int{100, 1000, 10000} {
		idx := benchIndex(b, pages)

		for _, query := range queries {
			query := query

			b.Run(fmt.Sprintf("pages=%d/%s", pages, query.name), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					benchSink = idx.Search(query.query, nil)
				}
			})
		}
	}
}

// BenchmarkIndex_SearchParallel exercises concurrent readers sharing
// one index.
func BenchmarkIndex_SearchParallel(b *testing.B) {
	idx := benchIndex(b, 1000)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			benchSink = idx.Search("heat balance", nil)
		}
	})
}
