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
	"slices"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/keithnytati/go-searchindex"
)

var termsCommand = &cli.Command{
	Name:      "terms",
	Usage:     "List index terms",
	ArgsUsage: "FILE [PREFIX]",
	Description: strings.Join([]string{
		"List the terms stored in the index FILE with the number of pages",
		"each occurs on, in the body and in page titles. A PREFIX argument",
		"restricts the listing to terms beginning with it.",
	}, "\n"),
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 || c.NArg() > 2 {
			check(cli.ShowSubcommandHelp(c))
			return fmt.Errorf("%w: expected FILE [PREFIX] arguments", ErrFlagParse)
		}
		path := c.Args().Get(0)
		prefix := c.Args().Get(1)

		idx, err := searchindex.Open(path)
		if err != nil {
			return err
		}
		data := idx.Data()

		terms := data.Terms.Terms()
		for _, term := range data.TitleTerms.Terms() {
			if _, ok := data.Terms[term]; !ok {
				terms = append(terms, term)
			}
		}
		slices.Sort(terms)

		tbl := table.New("Term", "Pages", "Title Pages").
			WithWriter(c.App.Writer)
		for _, term := range terms {
			if !strings.HasPrefix(term, prefix) {
				continue
			}
			tbl.AddRow(term, data.Terms[term].Len(), data.TitleTerms[term].Len())
		}
		tbl.Print()

		return nil
	},
}
