package imdblist

import (
	"context"
	"io"
	"strings"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/movies"
)

// TagListParser reads the "<title> (<year>)<tabs><tag>" layout shared by
// genres.list and keywords.list.
type TagListParser struct {
	name  string
	cls   Classifier
	apply func(rec *movies.MovieRecord, title, year, tag string)
}

// NewGenreParser returns the genres.list parser. It is the only parser that
// sets Title and Year.
func NewGenreParser(preamble int, excl Exclusion) *TagListParser {
	return &TagListParser{
		name: "genres",
		cls:  Classifier{Preamble: preamble, Terminate: true, Exclusion: excl},
		apply: func(rec *movies.MovieRecord, title, year, tag string) {
			rec.Title = title
			rec.Year = movies.ParseYear(year)
			rec.Genres = append(rec.Genres, tag)
		},
	}
}

// NewKeywordParser returns the keywords.list parser. Records it creates for
// titles missing from the genre list keep an empty title and year.
func NewKeywordParser(preamble int, excl Exclusion) *TagListParser {
	return &TagListParser{
		name: "keywords",
		cls:  Classifier{Preamble: preamble, Terminate: true, Exclusion: excl},
		apply: func(rec *movies.MovieRecord, _, _, tag string) {
			rec.Keywords = append(rec.Keywords, tag)
		},
	}
}

// Name implements Parser.
func (p *TagListParser) Name() string {
	return p.name
}

// Parse implements Parser.
func (p *TagListParser) Parse(ctx context.Context, r io.Reader, reg *movies.Registry) (Stats, error) {
	return parseLines(ctx, p.name, r, p.cls, func(line string) lineResult {
		title, year, ok := movies.SplitName(line)
		if !ok {
			return lineMalformed
		}
		tab := strings.LastIndexByte(line, '\t')
		if tab < 0 {
			return lineMalformed
		}
		p.apply(reg.Entry(movies.BuildID(title, year)), title, year, line[tab+1:])
		return lineApplied
	})
}
