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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/keithnytati/go-searchindex"
)

// openIndexes opens each path as a search index file, or as a directory
// searched recursively for index files. All successfully opened indexes
// are returned along with the errors encountered.
func openIndexes(paths []string) ([]*searchindex.Index, []error) {
	var indexes []*searchindex.Index
	var errs []error

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		if info.IsDir() {
			found, foundErrs := searchindex.OpenAll(path)
			indexes = append(indexes, found...)
			errs = append(errs, foundErrs...)
			continue
		}

		idx, err := searchindex.Open(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		indexes = append(indexes, idx)
	}

	return indexes, errs
}

var inspectCommand = &cli.Command{
	Name:      "inspect",
	Usage:     "Print search index metadata",
	ArgsUsage: "[PATH...]",
	Description: strings.Join([]string{
		"Print metadata for search index files.",
		"Each PATH is an index file, or a directory searched recursively",
		"for searchindex.js and searchindex.json files (optionally",
		"gzip-compressed). PATH defaults to the current directory.",
	}, "\n"),
	Action: func(c *cli.Context) error {
		paths := c.Args().Slice()
		if len(paths) == 0 {
			paths = []string{"."}
		}

		indexes, errs := openIndexes(paths)
		for _, err := range errs {
			fmt.Fprintln(c.App.ErrWriter, err)
		}

		tbl := table.New("File", "Format", "Env", "Pages", "Terms", "Title Terms", "Objects").
			WithWriter(c.App.Writer)
		for _, idx := range indexes {
			tbl.AddRow(
				idx.Path(),
				idx.Format(),
				idx.EnvVersion(),
				idx.PageCount(),
				idx.TermCount(),
				idx.TitleTermCount(),
				idx.ObjectCount(),
			)
		}
		tbl.Print()

		if len(errs) > 0 {
			return fmt.Errorf("%w: %d of %d paths failed", ErrSxutil, len(errs), len(paths))
		}
		return nil
	},
}
