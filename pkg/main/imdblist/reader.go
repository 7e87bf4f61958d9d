package imdblist

import (
	"bufio"
	"io"
	"strings"
)

// LineReader yields the lines of a list file without the trailing '\n'.
// Unlike bufio.Scanner it has no line length limit; keyword and plot dumps
// contain lines far beyond the scanner's default token size. Carriage returns
// are kept, the upstream files are '\n' terminated.
type LineReader struct {
	rd     *bufio.Reader
	lineno int
}

// NewLineReader wraps r with a 1 MiB read buffer.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{rd: bufio.NewReaderSize(r, 1<<20)}
}

// Next returns the next line. It returns io.EOF once the input is exhausted;
// a final line without newline is returned first with a nil error.
func (l *LineReader) Next() (string, error) {
	line, err := l.rd.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			l.lineno++
			return line, nil
		}
		return "", err
	}
	l.lineno++
	return strings.TrimSuffix(line, "\n"), nil
}

// LineNo returns the 1-based number of the line last returned by Next.
func (l *LineReader) LineNo() int {
	return l.lineno
}
