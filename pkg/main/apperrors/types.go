package apperrors

import (
	"bytes"
	"errors"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/pool"
)

// ErrorClass represents the category of an error.
type ErrorClass string

const (
	// ErrClassConfig represents configuration-related errors.
	ErrClassConfig ErrorClass = "CONFIG"
	// ErrClassValidation represents validation-related errors.
	ErrClassValidation ErrorClass = "VALIDATION"
	// ErrClassFileSystem represents filesystem-related errors.
	ErrClassFileSystem ErrorClass = "FILESYSTEM"
	// ErrClassParsing represents parsing-related errors.
	ErrClassParsing ErrorClass = "PARSING"
	// ErrClassImport represents a list that failed part way through an import.
	ErrClassImport ErrorClass = "IMPORT"
	// ErrClassExport represents export-related errors.
	ErrClassExport ErrorClass = "EXPORT"
	// ErrClassUnknown represents unknown or unclassified errors.
	ErrClassUnknown ErrorClass = "UNKNOWN"
)

var (
	// ErrMissingInputFile marks a list file that could not be opened. The
	// list's whole attribute class is absent from the merged result.
	ErrMissingInputFile = errors.New("missing input file")
	// ErrMalformedLine marks a data line without the delimiter needed to
	// locate its fields. The line is skipped.
	ErrMalformedLine = errors.New("malformed line")
	// ErrInvalidRange marks a range expression that does not parse.
	ErrInvalidRange = errors.New("invalid range")
	// ErrOutputLocked is returned when another run holds the output directory.
	ErrOutputLocked = errors.New("output directory locked by another run")
)

// ClassifiedError wraps an error with classification metadata.
type ClassifiedError struct {
	// Class represents the category of the error
	Class ErrorClass
	// Operation describes the operation that failed
	Operation string
	// Message describes the failed operation in more detail
	Message string
	// MessageFor identifies the entity the operation failed on, usually a file.
	MessageFor string
	// Err is the underlying error
	Err error
	// Context provides additional context about the error
	Context map[string]any
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	bld := errorBuilder.Get()
	defer errorBuilder.Put(bld)

	bld.WriteRune('[')
	bld.WriteString(string(e.Class))
	bld.WriteRune(']')

	if e.Operation != "" {
		bld.WriteRune(' ')
		bld.WriteString(e.Operation)
	}

	if e.Message != "" {
		bld.WriteRune(' ')
		bld.WriteString(e.Message)
	}

	if e.MessageFor != "" {
		bld.WriteString(" for: ")
		bld.WriteString(e.MessageFor)
	}

	if e.Err != nil {
		bld.WriteString(" Error: ")
		bld.WriteString(e.Err.Error())
	}
	return bld.String()
}

// Unwrap returns the wrapped error for errors.Is/As compatibility.
func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

var errorBuilder = pool.NewPool(50, 5, func(b *bytes.Buffer) {
	b.Grow(256)
}, func(b *bytes.Buffer) bool {
	b.Reset()
	return b.Cap() > 4096
})
