package imdblist

import (
	"context"
	"io"
	"strings"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/movies"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/pool"
)

// plotState is the position of the plot.list reader inside an entry.
type plotState int

const (
	// plotIdle: no entry open, PL and BY lines are ignored.
	plotIdle plotState = iota
	// plotEntry: an MV line named an accepted movie, buffer empty.
	plotEntry
	// plotCollecting: PL text is being appended to the buffer.
	plotCollecting
)

// Transitions:
//
//	any        --MV accepted-->   plotEntry (buffer cleared)
//	any        --MV rejected-->   plotIdle
//	entry      --PL-->            plotCollecting
//	collecting --PL-->            plotCollecting
//	entry      --BY-->            plotEntry (empty plot stored)
//	collecting --BY-->            plotEntry (buffer stored, name kept)
//	idle       --PL/BY-->         plotIdle

const (
	markerMovie  = "MV:"
	markerPlot   = "PL:"
	markerAuthor = "BY:"
	// payloadOffset skips the marker and its separating space.
	payloadOffset = 4
)

var plotBuffers = pool.NewPool(4, 1, nil, func(b *strings.Builder) bool {
	if b.Cap() > 1<<20 {
		return true
	}
	b.Reset()
	return false
})

// PlotParser reads plot.list. Entries look like
//
//	MV: <title> (<year>)
//	PL: <plot text>
//	PL: <plot text>
//	BY: <author>
//
// Each BY line stores the text collected since the previous flush, so the
// last summary of a movie wins. Text not followed by BY is discarded.
type PlotParser struct {
	cls       Classifier
	exclusion Exclusion
}

// NewPlotParser returns the plot.list parser. The list has no terminator.
func NewPlotParser(preamble int, excl Exclusion) *PlotParser {
	return &PlotParser{
		cls:       Classifier{Preamble: preamble},
		exclusion: excl,
	}
}

// Name implements Parser.
func (p *PlotParser) Name() string {
	return "plots"
}

// Parse implements Parser.
func (p *PlotParser) Parse(ctx context.Context, r io.Reader, reg *movies.Registry) (Stats, error) {
	m := plotMachine{
		reg:       reg,
		exclusion: p.exclusion,
		buf:       plotBuffers.Get(),
	}
	defer plotBuffers.Put(m.buf)
	return parseLines(ctx, p.Name(), r, p.cls, m.step)
}

type plotMachine struct {
	state     plotState
	id        string
	buf       *strings.Builder
	reg       *movies.Registry
	exclusion Exclusion
}

func (m *plotMachine) step(line string) lineResult {
	switch {
	case strings.HasPrefix(line, markerMovie):
		return m.open(payload(line))
	case strings.HasPrefix(line, markerPlot):
		if m.state == plotIdle {
			return lineIgnored
		}
		m.buf.WriteString(payload(line))
		m.state = plotCollecting
		return lineApplied
	case strings.HasPrefix(line, markerAuthor):
		if m.state == plotIdle {
			return lineIgnored
		}
		m.reg.Entry(m.id).Plot = m.buf.String()
		m.buf.Reset()
		m.state = plotEntry
		return lineApplied
	}
	return lineIgnored
}

func (m *plotMachine) open(name string) lineResult {
	m.buf.Reset()
	m.state = plotIdle
	m.id = ""
	if m.exclusion.Excluded(name) {
		return lineExcluded
	}
	title, year, ok := movies.SplitName(name)
	if !ok {
		return lineMalformed
	}
	m.id = movies.BuildID(title, year)
	m.state = plotEntry
	return lineApplied
}

func payload(line string) string {
	if len(line) <= payloadOffset {
		return ""
	}
	return line[payloadOffset:]
}
