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
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/keithnytati/go-searchindex"
)

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "Check search index files",
	ArgsUsage: "FILE...",
	Description: strings.Join([]string{
		"Check that each FILE parses and satisfies the format's structural",
		"invariants: refs in range, no duplicate filenames, non-empty term",
		"keys, and object entries referencing known type indices.",
		"With --strict, additionally report data the generator would never",
		"produce, such as non-canonical postings or unnormalized terms.",
	}, "\n"),
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "also report non-canonical but well-formed data",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			check(cli.ShowSubcommandHelp(c))
			return fmt.Errorf("%w: expected FILE arguments", ErrFlagParse)
		}

		invalid := 0
		for _, path := range c.Args().Slice() {
			data, _, err := searchindex.DecodeFile(path)
			if err != nil {
				fmt.Fprintln(c.App.ErrWriter, err)
				invalid++
				continue
			}

			if err := searchindex.Validate(data); err != nil {
				for _, line := range strings.Split(err.Error(), "\n") {
					fmt.Fprintf(c.App.ErrWriter, "%s: %s\n", path, line)
				}
				invalid++
				continue
			}

			if c.Bool("strict") {
				for _, problem := range searchindex.Lint(data) {
					fmt.Fprintf(c.App.Writer, "%s: %s\n", path, problem)
				}
			}
			fmt.Fprintf(c.App.Writer, "%s: ok\n", path)
		}

		if invalid > 0 {
			return fmt.Errorf("%w: %d of %d files invalid", ErrInvalidIndex, invalid, c.NArg())
		}
		return nil
	},
}
