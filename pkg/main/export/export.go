// Package export writes a filtered registry to disk as SQL dumps or JSON.
package export

import (
	"io"
	"os"
	"path/filepath"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/apperrors"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/logger"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/movies"
	"github.com/gofrs/flock"
)

const (
	FormatSQL  = "sql"
	FormatJSON = "json"
	FormatNone = "none"

	// LockFile guards an output directory against concurrent runs.
	LockFile = ".imdblists.lock"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatSQL, FormatJSON, FormatNone}

// Options selects the output format and, for SQL, the dialect.
type Options struct {
	Format  string
	Dialect string
}

// Export writes reg into dir and returns the written file paths. Files are
// written to a temporary name and renamed into place. It fails with
// apperrors.ErrOutputLocked when another run holds the directory lock.
func Export(dir string, opts Options, reg *movies.Registry) ([]string, error) {
	if opts.Format == FormatNone {
		return nil, nil
	}

	type target struct {
		name  string
		write func(io.Writer) error
	}
	var targets []target
	switch opts.Format {
	case FormatSQL:
		w := SQLWriter{Dialect: opts.Dialect}
		targets = []target{
			{"movies.sql", func(out io.Writer) error { return w.WriteMovies(out, reg) }},
			{"genres.sql", func(out io.Writer) error { return w.WriteGenres(out, reg) }},
			{"keywords.sql", func(out io.Writer) error { return w.WriteKeywords(out, reg) }},
		}
	case FormatJSON:
		targets = []target{
			{"movies.json", func(out io.Writer) error { return WriteJSON(out, reg) }},
		}
	default:
		return nil, apperrors.Newf(apperrors.ErrClassExport, "export", "unknown format %q", opts.Format)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.WrapWithMessageFor(apperrors.ErrClassFileSystem, "export", "failed to create output directory", dir, err)
	}

	lock := flock.New(filepath.Join(dir, LockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, apperrors.WrapWithMessageFor(apperrors.ErrClassFileSystem, "lock_output", "failed to acquire lock", dir, err)
	}
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrClassExport, "lock_output", apperrors.ErrOutputLocked).
			WithContext(logger.StrDir, dir)
	}
	defer lock.Unlock()

	written := make([]string, 0, len(targets))
	for _, t := range targets {
		path := filepath.Join(dir, t.name)
		if err := writeFile(path, t.write); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	logger.Logtype(logger.StatusInfo, 0).
		Str(logger.StrFormat, opts.Format).
		Str(logger.StrDir, dir).
		Int(logger.StrMovies, reg.Len()).
		Int("files", len(written)).
		Msg("Export finished")
	return written, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return apperrors.WrapWithMessageFor(apperrors.ErrClassFileSystem, "write_output", "failed to create file", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return apperrors.WrapWithMessageFor(apperrors.ErrClassExport, "write_output", "failed to write", path, err)
	}
	if err := tmp.Close(); err != nil {
		return apperrors.WrapWithMessageFor(apperrors.ErrClassFileSystem, "write_output", "failed to close", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return apperrors.WrapWithMessageFor(apperrors.ErrClassFileSystem, "write_output", "failed to rename", path, err)
	}
	return nil
}
