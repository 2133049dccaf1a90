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
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/keithnytati/go-searchindex"
	"github.com/keithnytati/go-searchindex/builder"
	"github.com/keithnytati/go-searchindex/internal/analysis"
	"github.com/keithnytati/go-searchindex/internal/config"
)

var buildCommand = &cli.Command{
	Name:      "build",
	Usage:     "Generate a search index from a documentation tree",
	ArgsUsage: "SRC OUT",
	Description: strings.Join([]string{
		"Walk the documentation tree under SRC, index every HTML, Markdown,",
		"and plain text page, and write the search index to OUT. The output",
		"framing follows the OUT extension unless --format is given, and",
		"paths ending in .gz are gzip-compressed.",
		"Command line flags override values from the --config file.",
	}, "\n"),
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "output framing, js or json (default: by OUT extension)",
		},
		&cli.StringFlag{
			Name:  "objects",
			Usage: "YAML object manifest describing the API inventory",
		},
		&cli.IntFlag{
			Name:  "env-version",
			Usage: "version tag stamped into the index",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "concurrent page parsers (default: one per CPU)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "path pattern to skip during discovery (repeatable)",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 2 {
			check(cli.ShowSubcommandHelp(c))
			return fmt.Errorf("%w: expected SRC OUT arguments", ErrFlagParse)
		}
		src := c.Args().Get(0)
		out := c.Args().Get(1)

		cfg, err := config.Load(c.String("config"))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSxutil, err)
		}

		format, err := outputFormat(c, out)
		if err != nil {
			return err
		}

		options := &builder.Options{
			Root:         src,
			Excludes:     cfg.Build.Excludes,
			ManifestPath: cfg.Build.Manifest,
			EnvVersion:   cfg.Build.EnvVersion,
			Workers:      cfg.Build.Workers,
			Analysis:     analysisOptions(&cfg.Build),
		}
		if c.IsSet("objects") {
			options.ManifestPath = c.String("objects")
		}
		if c.IsSet("env-version") {
			options.EnvVersion = c.Int("env-version")
		}
		if c.IsSet("workers") {
			options.Workers = c.Int("workers")
		}
		options.Excludes = append(options.Excludes, c.StringSlice("exclude")...)

		data, stats, err := builder.Build(c.Context, options)
		if err != nil {
			return err
		}
		if err := builder.WriteFile(out, data, format); err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer,
			"wrote %s: %d pages, %d terms, %d title terms, %d objects (%d files skipped) in %s\n",
			out, stats.Pages, stats.Terms, stats.TitleTerms, stats.Objects,
			stats.Skipped, stats.Elapsed.Round(time.Millisecond))
		return nil
	},
}

// outputFormat resolves the output framing from the --format flag or,
// when absent, from the output file name.
func outputFormat(c *cli.Context, out string) (searchindex.Format, error) {
	if c.IsSet("format") {
		format, err := searchindex.ParseFormat(c.String("format"))
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrFlagParse, err)
		}
		return format, nil
	}

	name := strings.ToLower(filepath.Base(out))
	name = strings.TrimSuffix(name, ".gz")
	if strings.HasSuffix(name, ".json") {
		return searchindex.FormatJSON, nil
	}
	return searchindex.FormatJS, nil
}

// analysisOptions maps the build config onto analyzer options. It
// returns nil when the config leaves every analyzer knob at its
// default, so the builder uses its own defaults.
func analysisOptions(cfg *config.BuildConfig) *analysis.Options {
	if cfg.MinTermLength == 0 && len(cfg.StopWords) == 0 && len(cfg.KeepWords) == 0 {
		return nil
	}
	return &analysis.Options{
		MinTermLength:  cfg.MinTermLength,
		ExtraStopWords: cfg.StopWords,
		KeepWords:      cfg.KeepWords,
	}
}
