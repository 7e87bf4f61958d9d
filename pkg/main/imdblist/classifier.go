package imdblist

import "strings"

// Header lengths of the 2012 list dumps. They change with every upstream
// revision and are only defaults for configuration.
const (
	DefaultGenrePreamble   = 379
	DefaultKeywordPreamble = 52833
	DefaultRatingPreamble  = 296
	DefaultPlotPreamble    = 0

	DefaultVideoGameMarker = "(VG)"
)

// DefaultSeriesPrefixes mark episodic titles: IMDb quotes series names.
var DefaultSeriesPrefixes = []string{`"`, `'`}

// LineClass is the classification of one raw list line.
type LineClass int

const (
	LineData LineClass = iota
	LinePreamble
	LineTerminator
	LineExcluded
)

func (c LineClass) String() string {
	switch c {
	case LineData:
		return "data"
	case LinePreamble:
		return "preamble"
	case LineTerminator:
		return "terminator"
	case LineExcluded:
		return "excluded"
	}
	return "unknown"
}

// Exclusion drops series and video game entries by prefix and substring
// tests on the identifying text.
type Exclusion struct {
	SeriesPrefixes  []string
	VideoGameMarker string
}

// DefaultExclusion returns the rules for the upstream dumps.
func DefaultExclusion() Exclusion {
	return Exclusion{
		SeriesPrefixes:  append([]string(nil), DefaultSeriesPrefixes...),
		VideoGameMarker: DefaultVideoGameMarker,
	}
}

// Excluded reports whether text names a series or a video game.
func (e Exclusion) Excluded(text string) bool {
	for _, prefix := range e.SeriesPrefixes {
		if prefix != "" && strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return e.VideoGameMarker != "" && strings.Contains(text, e.VideoGameMarker)
}

// Classifier decides what a line of one list format is.
type Classifier struct {
	// Preamble is the number of leading lines discarded unconditionally.
	Preamble int
	// Terminate stops the data section at the first line shorter than two bytes.
	Terminate bool
	// Exclusion is applied to the whole line. Formats that exclude on an
	// extracted field leave it empty and check in their line handler.
	Exclusion Exclusion
}

// Classify classifies the line with the given 0-based index.
func (c Classifier) Classify(index int, line string) LineClass {
	if index < c.Preamble {
		return LinePreamble
	}
	if c.Terminate && len(line) < 2 {
		return LineTerminator
	}
	if c.Exclusion.Excluded(line) {
		return LineExcluded
	}
	return LineData
}
