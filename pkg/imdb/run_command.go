package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/config"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/export"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/importer"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/logger"
	"github.com/spf13/cobra"
)

type runOptions struct {
	listsDir string
	title    string
	years    string
	genres   []string
	ratings  string
	noFilter bool
	outDir   string
	format   string
	dialect  string
}

func newRunCommand(configPath *string) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Parse the lists, filter the merged movies and export them",
		Long: "Parse genres, keywords, ratings and plots in that order, merge them by\n" +
			"\"Title (Year)\", apply the filter and export the matching movies.\n" +
			"Flags override the configuration file. A list that cannot be read is\n" +
			"reported and skipped; the command then exits non-zero after exporting.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, created, err := config.LoadOrCreate(*configPath)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.ErrOrStderr(), "Config file not found. Created %s with defaults.\n", *configPath)
			}
			applyRunFlags(cmd, cfg, &opts)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger.InitLogger(cfg.General.Logger())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			im, err := importer.New(cfg)
			if err != nil {
				return err
			}
			res, err := im.Run(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary(res))

			files, err := export.Export(cfg.Output.Dir, export.Options{
				Format:  cfg.Output.Format,
				Dialect: cfg.Output.Dialect,
			}, res.Filtered)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(out, "Wrote %s\n", f)
			}

			if failed := res.Failed(); len(failed) > 0 {
				return fmt.Errorf("lists not imported (%s): %w", strings.Join(failed, ", "), res.Err())
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.listsDir, "lists", "", "Directory containing the list files")
	f.StringVar(&opts.title, "title", "", "Keep titles containing this text (case-insensitive)")
	f.StringVar(&opts.years, "years", "", "Inclusive year range, e.g. 1970-2012")
	f.StringSliceVar(&opts.genres, "genres", nil, "Keep titles having any of these genres")
	f.StringVar(&opts.ratings, "ratings", "", "Inclusive rating range, e.g. 5.0-10.0")
	f.BoolVar(&opts.noFilter, "no-filter", false, "Ignore all configured filter clauses")
	f.StringVarP(&opts.outDir, "out", "o", "", "Output directory")
	f.StringVarP(&opts.format, "format", "f", "", "Output format: sql, json or none")
	f.StringVar(&opts.dialect, "dialect", "", "SQL dialect: mysql or sqlite")
	return cmd
}

// applyRunFlags overlays the flags that were set explicitly.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, opts *runOptions) {
	f := cmd.Flags()
	if f.Changed("lists") {
		cfg.Lists.Dir = opts.listsDir
	}
	if opts.noFilter {
		cfg.Filter = config.FilterConfig{}
	}
	if f.Changed("title") {
		cfg.Filter.Title = opts.title
	}
	if f.Changed("years") {
		cfg.Filter.Years = opts.years
	}
	if f.Changed("genres") {
		cfg.Filter.Genres = opts.genres
	}
	if f.Changed("ratings") {
		cfg.Filter.Ratings = opts.ratings
	}
	if f.Changed("out") {
		cfg.Output.Dir = opts.outDir
	}
	if f.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if f.Changed("dialect") {
		cfg.Output.Dialect = opts.dialect
	}
}
