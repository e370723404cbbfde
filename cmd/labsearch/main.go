// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
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
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/poiesic/labsearch"
	"github.com/poiesic/labsearch/config"
	"github.com/poiesic/labsearch/core"
	"github.com/poiesic/labsearch/httpapi"
	"github.com/poiesic/labsearch/search"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "labsearch",
		Usage:     "Search a catalog of medical laboratory analyses",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "Delimited source, a file path or an http(s) URL",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB snapshot directory",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Collation language (BCP 47 tag)",
			},
			&cli.StringFlag{
				Name:  "taxonomy",
				Usage: "Path to a YAML category taxonomy",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:            "search",
				Usage:           "List analyses whose name or code matches TERM",
				ArgsUsage:       "TERM",
				Action:          searchCommand,
				HideHelpCommand: true,
			},
			{
				Name:            "ranked",
				Usage:           "Multi-word search over code, name and description",
				ArgsUsage:       "QUERY...",
				Action:          rankedCommand,
				HideHelpCommand: true,
			},
			{
				Name:            "suggest",
				Usage:           "Autocomplete analysis names",
				ArgsUsage:       "PREFIX",
				Action:          suggestCommand,
				HideHelpCommand: true,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of suggestions (default from config)",
					},
					&cli.IntFlag{
						Name:  "move",
						Usage: "Move the highlight N times down (negative: up)",
					},
				},
			},
			{
				Name:            "categories",
				Usage:           "List analyses grouped by category",
				Action:          categoriesCommand,
				HideHelpCommand: true,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "preview",
						Usage: "Analyses shown per category (default from config)",
					},
				},
			},
			{
				Name:            "stats",
				Usage:           "Show catalog size and the largest categories",
				Action:          statsCommand,
				HideHelpCommand: true,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of categories to show (0 for all)",
						Value: 4,
					},
				},
			},
			{
				Name:            "import",
				Usage:           "Store delimited files as the catalog snapshot (requires --db)",
				ArgsUsage:       "FILE...",
				Action:          importCommand,
				HideHelpCommand: true,
			},
			{
				Name:            "serve",
				Usage:           "Serve the catalog over HTTP",
				Action:          serveCommand,
				HideHelpCommand: true,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address (default from config)",
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

// loadConfig reads --config when given and overlays the global flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}
	if c.IsSet("data") {
		cfg.DataLocation = c.String("data")
	}
	if c.IsSet("db") {
		cfg.StorePath = c.String("db")
	}
	if c.IsSet("lang") {
		cfg.Language = c.String("lang")
	}
	if c.IsSet("taxonomy") {
		cfg.TaxonomyPath = c.String("taxonomy")
	}
	return cfg, cfg.Validate()
}

func openCatalog(c *cli.Context) (*labsearch.Catalog, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return labsearch.Open(c.Context, cfg)
}

func searchCommand(c *cli.Context) error {
	term := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(term) == "" {
		return fmt.Errorf("search term is required")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	idx := catalog.Index()
	results, err := idx.Search(term)
	if err != nil {
		return err
	}
	out := c.App.Writer
	if len(results) == 0 {
		fmt.Fprintf(out, "No analyses match %q.\n", term)
		if near := idx.Fuzzy(term, 3); len(near) > 0 {
			fmt.Fprintf(out, "Did you mean: %s?\n", joinNames(near))
		}
		return nil
	}
	printResults(out, results, catalog.Config().ResultLimit)
	return nil
}

func rankedCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	results := catalog.Index().RankedSearch(query)
	if len(results) == 0 {
		fmt.Fprintf(c.App.Writer, "No analyses match %q.\n", query)
		return nil
	}
	printResults(c.App.Writer, results, catalog.Config().ResultLimit)
	return nil
}

func suggestCommand(c *cli.Context) error {
	prefix := strings.Join(c.Args().Slice(), " ")

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	limit := catalog.Config().SuggestLimit
	if c.IsSet("limit") {
		limit = c.Int("limit")
	}
	if len([]rune(strings.TrimSpace(prefix))) < search.MinSuggestLength {
		fmt.Fprintf(c.App.Writer, "Type at least %d characters.\n", search.MinSuggestLength)
		return nil
	}

	suggestions := catalog.Index().Suggest(prefix, limit)
	if len(suggestions) == 0 {
		fmt.Fprintln(c.App.Writer, "No suggestions.")
		return nil
	}
	cursor := search.NewCursor(len(suggestions))
	moveCursor(cursor, c.Int("move"))
	selected, highlighted := cursor.Selected()

	for i, a := range suggestions {
		marker := "  "
		if highlighted && i == selected {
			marker = "> "
		}
		fmt.Fprintf(c.App.Writer, "%s%s (%s)\n", marker, a.Name, a.DisplayPrice())
	}
	return nil
}

func moveCursor(cursor *search.Cursor, moves int) {
	for ; moves > 0; moves-- {
		cursor.Next()
	}
	for ; moves < 0; moves++ {
		cursor.Prev()
	}
}

func categoriesCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	preview := catalog.Config().GroupPreview
	if c.IsSet("preview") {
		preview = c.Int("preview")
	}

	out := c.App.Writer
	for _, group := range catalog.Index().Groups() {
		fmt.Fprintf(out, "%s (%d)\n", group.Category, len(group.Records))
		shown := group.Records
		if preview > 0 && len(shown) > preview {
			shown = shown[:preview]
		}
		for _, a := range shown {
			fmt.Fprintf(out, "  %s  %s\n", a.Name, a.DisplayPrice())
		}
		if more := len(group.Records) - len(shown); more > 0 {
			fmt.Fprintf(out, "  +%d more\n", more)
		}
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	idx := catalog.Index()
	origin := catalog.Origin()
	out := c.App.Writer
	fmt.Fprintf(out, "Analyses: %d\n", idx.Len())
	fmt.Fprintf(out, "Categories: %d\n", len(idx.Groups()))
	switch {
	case origin.FromSnapshot:
		fmt.Fprintf(out, "Source: snapshot of %s (imported %s)\n", origin.Source,
			time.UnixMicro(origin.Snapshot.ImportedAt).UTC().Format(time.RFC3339))
	case origin.FromFallback:
		fmt.Fprintf(out, "Source: built-in list (%v)\n", origin.Err)
	default:
		fmt.Fprintf(out, "Source: %s\n", origin.Source)
	}
	if dropped := idx.Dropped(); len(dropped) > 0 {
		fmt.Fprintf(out, "Dropped: %d\n", len(dropped))
	}
	for _, cc := range idx.TopCategories(c.Int("top")) {
		fmt.Fprintf(out, "  %-28s %d\n", cc.Category, cc.Count)
	}
	return nil
}

func importCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	report, err := catalog.Import(c.Context, c.App.ErrWriter, c.Args().Slice()...)
	if err != nil {
		if errors.Is(err, labsearch.ErrNoStore) {
			return fmt.Errorf("%w: pass --db", err)
		}
		return err
	}

	out := c.App.Writer
	for _, f := range report.Files {
		fmt.Fprintf(out, "%s: %d records, %d rejected\n", f.Path, f.Records, f.Rejected)
	}
	fmt.Fprintf(out, "Imported %d records (fingerprint %016x).\n",
		report.Info.Count, uint64(report.Info.Fingerprint))
	return nil
}

func serveCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	cfg := catalog.Config()
	addr := cfg.ListenAddr
	if c.IsSet("addr") {
		addr = c.String("addr")
	}

	handler, err := httpapi.NewRouter(catalog,
		httpapi.WithLogger(slog.Default()),
		httpapi.WithSuggestLimit(max(cfg.SuggestLimit, 1)),
		httpapi.WithAllowedOrigins(cfg.AllowedOrigins...),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr, "analyses", catalog.Index().Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func printResults(out io.Writer, results []core.Analysis, limit int) {
	shown := results
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, a := range shown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Code, a.Name, a.DisplayPrice(), a.Category)
	}
	tw.Flush()

	if len(shown) < len(results) {
		fmt.Fprintf(out, "Showing first %d of %d results.\n", len(shown), len(results))
	}
}

func joinNames(records []core.Analysis) string {
	names := make([]string, len(records))
	for i, a := range records {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}
