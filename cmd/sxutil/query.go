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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/keithnytati/go-searchindex"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "Search an index",
	ArgsUsage: "FILE QUERY",
	Description: strings.Join([]string{
		"Search the index FILE with the given query and print the matching",
		"pages, best first. Title hits rank above body hits and exact term",
		"hits above prefix hits.",
	}, "\n"),
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Usage:   "return at most `N` results (0 means no limit)",
			Aliases: []string{"n"},
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "print results as JSON",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			check(cli.ShowSubcommandHelp(c))
			return fmt.Errorf("%w: expected FILE QUERY arguments", ErrFlagParse)
		}
		path := c.Args().Get(0)
		query := c.Args().Get(1)

		idx, err := searchindex.Open(path)
		if err != nil {
			return err
		}

		results := idx.Search(query, &searchindex.SearchOptions{
			Limit: c.Int("limit"),
		})

		if c.Bool("json") {
			enc := json.NewEncoder(c.App.Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				return fmt.Errorf("%w: encoding results: %w", ErrSxutil, err)
			}
			return nil
		}

		tbl := table.New("Rank", "Page", "Score", "Matched").
			WithWriter(c.App.Writer)
		for i, result := range results {
			tbl.AddRow(i+1, result.Page, result.Score, strings.Join(result.Matched, " "))
		}
		tbl.Print()

		return nil
	},
}
