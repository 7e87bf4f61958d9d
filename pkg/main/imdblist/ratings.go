package imdblist

import (
	"context"
	"io"
	"strconv"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/movies"
)

// RatingParser reads ratings.list:
//
//	<distribution> <votes> <rating>  <title> (<year>)
//
// The three leading fields are whitespace separated; the name begins two
// bytes after the rating.
type RatingParser struct {
	cls       Classifier
	exclusion Exclusion
}

// NewRatingParser returns the ratings.list parser. Exclusion applies to the
// extracted name, not the raw line.
func NewRatingParser(preamble int, excl Exclusion) *RatingParser {
	return &RatingParser{
		cls:       Classifier{Preamble: preamble, Terminate: true},
		exclusion: excl,
	}
}

// Name implements Parser.
func (p *RatingParser) Name() string {
	return "ratings"
}

// Parse implements Parser.
func (p *RatingParser) Parse(ctx context.Context, r io.Reader, reg *movies.Registry) (Stats, error) {
	return parseLines(ctx, p.Name(), r, p.cls, func(line string) lineResult {
		votes, rating, name, ok := splitRatingLine(line)
		if !ok {
			return lineMalformed
		}
		if p.exclusion.Excluded(name) {
			return lineExcluded
		}
		title, year, ok := movies.SplitName(name)
		if !ok {
			return lineMalformed
		}
		rec := reg.Entry(movies.BuildID(title, year))
		rec.Votes = parseVotes(votes)
		rec.Rating = parseRating(rating)
		return lineApplied
	})
}

// splitRatingLine extracts the votes and rating tokens and the name. The
// distribution token is read only to be skipped.
func splitRatingLine(line string) (votes, rating, name string, ok bool) {
	var fields [3]string
	pos := 0
	for i := range fields {
		for pos < len(line) && isSpace(line[pos]) {
			pos++
		}
		start := pos
		for pos < len(line) && !isSpace(line[pos]) {
			pos++
		}
		if start == pos {
			return "", "", "", false
		}
		fields[i] = line[start:pos]
	}
	pos += 2
	if pos >= len(line) {
		return "", "", "", false
	}
	return fields[1], fields[2], line[pos:], true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}

func parseVotes(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func parseRating(s string) float32 {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0
	}
	return float32(v)
}
