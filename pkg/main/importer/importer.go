// Package importer runs the list parsers over their files in a fixed order,
// merges them into one registry and applies the configured filter.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/apperrors"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/config"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/imdblist"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/logger"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/movies"
	"github.com/google/uuid"
)

// Source pairs a list file with its parser.
type Source struct {
	Path   string
	Parser imdblist.Parser
}

// SourceReport is the outcome of one source. Err is set when the file could
// not be opened or read; the records it contributed up to that point stay.
type SourceReport struct {
	Name    string
	Path    string
	Stats   imdblist.Stats
	Elapsed time.Duration
	Err     error
}

// Result is a completed (or cancelled) import.
type Result struct {
	RunID    string
	Movies   *movies.Registry
	Filtered *movies.Registry
	Criteria movies.Criteria
	Sources  []SourceReport
	Elapsed  time.Duration
}

// Err joins the per-source failures, nil when every list was read.
func (r *Result) Err() error {
	var errs []error
	for _, s := range r.Sources {
		if s.Err != nil {
			errs = append(errs, s.Err)
		}
	}
	return errors.Join(errs...)
}

// Failed returns the names of the sources that failed.
func (r *Result) Failed() []string {
	var names []string
	for _, s := range r.Sources {
		if s.Err != nil {
			names = append(names, s.Name)
		}
	}
	return names
}

// Importer owns the sources and filter criteria of one run configuration.
type Importer struct {
	sources  []Source
	criteria movies.Criteria
}

// New builds an importer for the lists and filter in cfg.
func New(cfg *config.Config) (*Importer, error) {
	crit, err := cfg.Criteria()
	if err != nil {
		return nil, err
	}
	excl := cfg.Lists.Exclusion()
	l := cfg.Lists
	return NewWithSources([]Source{
		{Path: l.Resolve(l.Genres), Parser: imdblist.NewGenreParser(l.Genres.Preamble, excl)},
		{Path: l.Resolve(l.Keywords), Parser: imdblist.NewKeywordParser(l.Keywords.Preamble, excl)},
		{Path: l.Resolve(l.Ratings), Parser: imdblist.NewRatingParser(l.Ratings.Preamble, excl)},
		{Path: l.Resolve(l.Plots), Parser: imdblist.NewPlotParser(l.Plots.Preamble, excl)},
	}, crit), nil
}

// NewWithSources builds an importer over explicit sources, run in the given
// order.
func NewWithSources(sources []Source, crit movies.Criteria) *Importer {
	return &Importer{sources: sources, criteria: crit}
}

// Sources returns the sources in run order: genres, keywords, ratings, plots.
func (im *Importer) Sources() []Source {
	return im.sources
}

// Criteria returns the filter criteria applied after parsing.
func (im *Importer) Criteria() movies.Criteria {
	return im.criteria
}

// Run parses every source into a fresh registry and filters it. A source
// that fails is recorded in its report and the run continues; only
// cancellation of ctx makes Run return an error, together with the partial
// result.
func (im *Importer) Run(ctx context.Context) (*Result, error) {
	res := &Result{
		RunID:    uuid.NewString(),
		Movies:   movies.NewRegistry(),
		Criteria: im.criteria,
		Sources:  make([]SourceReport, 0, len(im.sources)),
	}

	prev := *logger.GetLogger()
	logger.SetLogger(prev.With().Str(logger.StrRunID, res.RunID).Logger())
	defer logger.SetLogger(prev)

	logger.Logtype(logger.StatusInfo, 0).
		Int("sources", len(im.sources)).
		Str("criteria", im.criteria.String()).
		Msg("Starting IMDb list import")

	totalstartTime := time.Now()
	for _, src := range im.sources {
		if err := ctx.Err(); err != nil {
			res.Elapsed = time.Since(totalstartTime)
			return res, err
		}
		report := im.runSource(ctx, src, res.Movies)
		res.Sources = append(res.Sources, report)
		if isCancel(report.Err) {
			res.Elapsed = time.Since(totalstartTime)
			return res, report.Err
		}
	}

	startTime := time.Now()
	res.Filtered = movies.Filter(res.Movies, im.criteria)
	timefilter := time.Since(startTime)
	res.Elapsed = time.Since(totalstartTime)

	logv := logger.Logtype(logger.StatusInfo, 0)
	for _, s := range res.Sources {
		logv = logv.Str("Process "+s.Name, s.Elapsed.String())
	}
	logv.Str("Filter", timefilter.String()).
		Str("Total Time", res.Elapsed.String()).
		Msg("IMDb List Import Times")

	logger.Logtype(logger.StatusInfo, 0).
		Int(logger.StrMovies, res.Movies.Len()).
		Int(logger.StrFiltered, res.Filtered.Len()).
		Strs("failed", res.Failed()).
		Msg("IMDb list import completed")
	return res, nil
}

func (im *Importer) runSource(ctx context.Context, src Source, reg *movies.Registry) (report SourceReport) {
	report = SourceReport{Name: src.Parser.Name(), Path: src.Path}
	startTime := time.Now()
	defer func() { report.Elapsed = time.Since(startTime) }()

	file, err := os.Open(src.Path)
	if err != nil {
		report.Err = apperrors.WrapWithMessageFor(
			apperrors.ErrClassFileSystem,
			"open_list",
			"failed to open list",
			src.Path,
			fmt.Errorf("%w: %w", apperrors.ErrMissingInputFile, err),
		).WithContext(logger.StrParser, report.Name)
		apperrors.LogClassifiedError(logger.Logtype(logger.StatusError, 0), report.Err).
			Str(logger.StrFile, src.Path).
			Msg("Skipping list, its attributes will be missing")
		return report
	}
	defer file.Close()

	logger.Logtype(logger.StatusInfo, 0).
		Str(logger.StrParser, report.Name).
		Str(logger.StrFile, src.Path).
		Msg("Processing list")

	report.Stats, err = src.Parser.Parse(ctx, file, reg)
	if err != nil {
		report.Err = err
		if !isCancel(err) {
			report.Err = apperrors.Wrap(apperrors.ErrClassImport, "import_list", err).
				WithContext(logger.StrParser, report.Name)
			apperrors.LogClassifiedError(logger.Logtype(logger.StatusError, 0), report.Err).
				Str(logger.StrFile, src.Path).
				Int("rows_read", report.Stats.Lines).
				Msg("List aborted, keeping records read so far")
		}
	}

	logger.Logtype(logger.StatusInfo, 0).
		Str(logger.StrParser, report.Name).
		Int("lines", report.Stats.Lines).
		Int("applied", report.Stats.Applied).
		Int("excluded", report.Stats.Excluded).
		Int("malformed", report.Stats.Malformed).
		Bool("terminated", report.Stats.Terminated).
		Msg("List processed")
	return report
}

func isCancel(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
