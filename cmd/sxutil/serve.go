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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/keithnytati/go-searchindex"
	"github.com/keithnytati/go-searchindex/internal/config"
	"github.com/keithnytati/go-searchindex/internal/server"
)

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "Serve search queries over HTTP",
	ArgsUsage: "FILE",
	Description: strings.Join([]string{
		"Load the search index at FILE and answer queries over HTTP until",
		"interrupted. The server exposes GET /api/v1/search?q=QUERY,",
		"GET /api/v1/index, GET /healthz, and Prometheus metrics on",
		"GET /metrics. Logs are written to standard error.",
	}, "\n"),
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Aliases: []string{"a"},
			Usage:   "listen address (overrides the config file)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			check(cli.ShowSubcommandHelp(c))
			return fmt.Errorf("%w: expected FILE argument", ErrFlagParse)
		}

		cfg, err := config.Load(c.String("config"))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSxutil, err)
		}
		if c.IsSet("addr") {
			cfg.Serve.Addr = c.String("addr")
		}

		logger := newLogger(cfg.Logging)

		idx, err := searchindex.Open(c.Args().Get(0))
		if err != nil {
			return err
		}
		logger.Info("index loaded",
			slog.String("path", idx.Path()),
			slog.Int("pages", idx.PageCount()),
			slog.Int("terms", idx.TermCount()),
		)

		// The query analyzer must run the same pipeline the index was
		// built with, so it reads the same build section of the config.
		handler := server.New(idx, &server.Options{
			DefaultLimit: cfg.Serve.DefaultLimit,
			MaxLimit:     cfg.Serve.MaxLimit,
			Analysis:     analysisOptions(&cfg.Build),
			Logger:       logger,
		})

		httpServer := &http.Server{
			Addr:         cfg.Serve.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.Serve.ReadTimeout,
			WriteTimeout: cfg.Serve.WriteTimeout,
		}

		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			logger.Info("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Serve.ShutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("server shutdown error", slog.String("error", err.Error()))
			}
		}()

		logger.Info("search server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%w: %v", ErrSxutil, err)
		}
		logger.Info("search server stopped")
		return nil
	},
}

// newLogger builds the serve command's structured logger from the
// logging config. Logs go to standard error so piped command output
// stays clean.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}
	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
