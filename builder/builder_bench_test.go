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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/keithnytati/go-searchindex/builder"
)

var benchVocab = []string{
	"enthalpy", "heat", "balance", "thermochemistry", "stoichiometry",
	"compound", "phase", "assay", "reaction", "mass", "molar", "units",
	"conversion", "temperature", "pressure", "stream", "material",
	"energy", "process", "model", "simulate", "calculate", "mixture",
	"element", "capacity", "transfer",
}

// benchTree writes a documentation tree of generated Markdown pages.
func benchTree(b *testing.B, pages int) string {
	b.Helper()

	root := b.TempDir()
	for i := 0; i < pages; i++ {
		dir := filepath.Join(root, fmt.Sprintf("section%02d", i%8))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.Fatalf("os.MkdirAll: %v", err)
		}

		var page bytes.Buffer
		fmt.Fprintf(&page, "# %s %s\n\n",
			benchVocab[i%len(benchVocab)], benchVocab[(i+5)%len(benchVocab)])
		for j := 0; j < 8; j++ {
			fmt.Fprintf(&page, "The %s of the %s depends on the %s.\n",
				benchVocab[(i+j)%len(benchVocab)],
				benchVocab[(i+j*3)%len(benchVocab)],
				benchVocab[(i+j*7)%len(benchVocab)])
		}

		path := filepath.Join(dir, fmt.Sprintf("page%04d.md", i))
		if err := os.WriteFile(path, page.Bytes(), 0o600); err != nil {
			b.Fatalf("os.WriteFile: %v", err)
		}
	}
	return root
}

func BenchmarkBuild(b *testing.B) {
	for _, pages := range []int{16, 128, 512} {
		pages := pages

		b.Run(fmt.Sprintf("pages=%d", pages), func(b *testing.B) {
			root := benchTree(b, pages)
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := builder.Build(ctx, &builder.Options{Root: root}); err != nil {
					b.Fatalf("builder.Build: %v", err)
				}
			}
		})
	}
}

func BenchmarkBuild_workers(b *testing.B) {
	root := benchTree(b, 256)
	ctx := context.Background()

	for _, workers := range []int{1, 2, 4, 8} {
		workers := workers

		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				options := &builder.Options{Root: root, Workers: workers}
				if _, _, err := builder.Build(ctx, options); err != nil {
					b.Fatalf("builder.Build: %v", err)
				}
			}
		})
	}
}
