// Package imdblist parses the plain-text IMDb list dumps (genres, keywords,
// ratings, plots) into a shared movies.Registry.
package imdblist

import (
	"context"
	"io"
	"time"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/apperrors"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/logger"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/movies"
)

// Parser consumes one list format and merges it into a registry.
type Parser interface {
	Name() string
	Parse(ctx context.Context, r io.Reader, reg *movies.Registry) (Stats, error)
}

// Stats counts what a parser did with the lines of its file.
type Stats struct {
	Lines     int
	Preamble  int
	Excluded  int
	Applied   int
	Malformed int
	Ignored   int
	// Terminated is set when the data section ended on a terminator line
	// rather than at end of input.
	Terminated bool
}

type lineResult int

const (
	lineApplied lineResult = iota
	lineMalformed
	lineExcluded
	lineIgnored
)

const (
	ctxCheckEvery     = 4096
	progressLineEvery = 200000
)

// parseLines drives the shared read/classify loop and hands data lines to handle.
func parseLines(
	ctx context.Context,
	name string,
	r io.Reader,
	cls Classifier,
	handle func(line string) lineResult,
) (Stats, error) {
	var st Stats
	lr := NewLineReader(r)
	startTime := time.Now()
	lastReportTime := startTime

	for {
		if st.Lines%ctxCheckEvery == 0 {
			select {
			case <-ctx.Done():
				return st, ctx.Err()
			default:
			}
		}

		line, err := lr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return st, apperrors.Wrap(apperrors.ErrClassParsing, "read_list", err).
				WithContext(logger.StrParser, name).
				WithContext(logger.StrLine, lr.LineNo()+1)
		}
		st.Lines++

		switch cls.Classify(st.Lines-1, line) {
		case LinePreamble:
			st.Preamble++
			continue
		case LineTerminator:
			st.Terminated = true
			return st, nil
		case LineExcluded:
			st.Excluded++
			continue
		}

		switch handle(line) {
		case lineApplied:
			st.Applied++
		case lineMalformed:
			st.Malformed++
			logger.Logtype(logger.StatusDebug, 0).
				Str(logger.StrParser, name).
				Int(logger.StrLine, lr.LineNo()).
				Err(apperrors.ErrMalformedLine).
				Msg("Skipping line")
		case lineExcluded:
			st.Excluded++
		case lineIgnored:
			st.Ignored++
		}

		if st.Lines%progressLineEvery == 0 || time.Since(lastReportTime) > 30*time.Second {
			logger.Logtype(logger.StatusInfo, 0).
				Str(logger.StrParser, name).
				Int("rows_read", st.Lines).
				Int("rows_applied", st.Applied).
				Int("errors", st.Malformed).
				Str(logger.StrElapsed, time.Since(startTime).Round(time.Millisecond).String()).
				Msg("Processing list progress")
			lastReportTime = time.Now()
		}
	}
	return st, nil
}
