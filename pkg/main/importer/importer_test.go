package importer

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/apperrors"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/config"
	"github.com/google/uuid"
)

var fixtures = map[string][]string{
	"genres.list": {
		"GENRES LIST",
		"Plan 9 from Outer Space (1959)\tHorror",
		"Plan 9 from Outer Space (1959)\tSci-Fi",
		"Alien (1979)\tHorror",
		"Alien (1979)\tSci-Fi",
		"The Room (2003)\tDrama",
		"\"Star Trek\" (1966)\tSci-Fi",
		"",
	},
	"keywords.list": {
		"KEYWORDS LIST",
		"Alien (1979)\tspace",
		"Lost Reel (1985)\tnoir",
		"",
	},
	"ratings.list": {
		"RATINGS",
		"      0000123456   45  7.2  Plan 9 from Outer Space (1959)",
		"      0000001222  500  8.4  Alien (1979)",
		"      0000123456   90  3.6  The Room (2003)",
		"",
	},
	"plot.list": {
		"MV: Alien (1979)",
		"PL: In space no one ",
		"PL: can hear you scream.",
		"BY: someone",
	},
}

func writeFixtures(t *testing.T, skip ...string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for name, content := range fixtures {
		if contains(skip, name) {
			continue
		}
		if err := os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(content, "\n")+"\n"), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
	cfg := config.Default()
	cfg.Lists.Dir = dir
	cfg.Lists.Genres.Preamble = 1
	cfg.Lists.Keywords.Preamble = 1
	cfg.Lists.Ratings.Preamble = 1
	cfg.Lists.Plots.Preamble = 0
	return &cfg
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestSourcesOrder(t *testing.T) {
	im, err := New(writeFixtures(t))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	var names []string
	for _, s := range im.Sources() {
		names = append(names, s.Parser.Name())
	}
	want := []string{"genres", "keywords", "ratings", "plots"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
	if filepath.Base(im.Sources()[3].Path) != "plot.list" {
		t.Errorf("expected plot.list, got %s", im.Sources()[3].Path)
	}
}

func TestRun(t *testing.T) {
	im, err := New(writeFixtures(t))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	res, err := im.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if res.Err() != nil {
		t.Errorf("expected no source errors, got %v", res.Err())
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("expected uuid run id, got %q", res.RunID)
	}
	if res.Movies.Len() != 4 {
		t.Errorf("expected 4 merged records, got %v", res.Movies.IDs())
	}

	alien, ok := res.Movies.Get("Alien (1979)")
	if !ok {
		t.Fatal("expected Alien record")
	}
	if alien.Title != "Alien" || alien.Year != 1979 || alien.Votes != 500 || alien.Rating != float32(8.4) {
		t.Errorf("unexpected merged record %+v", alien)
	}
	if alien.Plot != "In space no one can hear you scream." {
		t.Errorf("unexpected plot %q", alien.Plot)
	}
	if !reflect.DeepEqual(alien.Keywords, []string{"space"}) {
		t.Errorf("unexpected keywords %v", alien.Keywords)
	}

	// default filter: 1970-2012, rating 5.0-10.0
	if !reflect.DeepEqual(res.Filtered.IDs(), []string{"Alien (1979)"}) {
		t.Errorf("expected only Alien to pass the default filter, got %v", res.Filtered.IDs())
	}
	if len(res.Sources) != 4 {
		t.Fatalf("expected 4 reports, got %d", len(res.Sources))
	}
	if st := res.Sources[0].Stats; st.Applied != 5 || st.Excluded != 1 || !st.Terminated {
		t.Errorf("unexpected genre stats %+v", st)
	}
}

func TestRunMissingFile(t *testing.T) {
	cfg := writeFixtures(t, "plot.list")
	cfg.Filter = config.FilterConfig{}
	im, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	res, err := im.Run(context.Background())
	if err != nil {
		t.Fatalf("expected missing file not to abort the run, got %v", err)
	}
	if !reflect.DeepEqual(res.Failed(), []string{"plots"}) {
		t.Errorf("expected plots to fail, got %v", res.Failed())
	}
	if !errors.Is(res.Err(), apperrors.ErrMissingInputFile) {
		t.Errorf("expected ErrMissingInputFile, got %v", res.Err())
	}
	if !errors.Is(res.Err(), fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist in chain, got %v", res.Err())
	}
	alien, _ := res.Movies.Get("Alien (1979)")
	if alien.Plot != "" || alien.Votes != 500 {
		t.Errorf("expected other attributes without plot, got %+v", alien)
	}
	if res.Filtered.Len() != res.Movies.Len() {
		t.Errorf("expected empty criteria to keep every record, got %d of %d", res.Filtered.Len(), res.Movies.Len())
	}
}

func TestRunUnreadableList(t *testing.T) {
	cfg := writeFixtures(t, "ratings.list")
	cfg.Filter = config.FilterConfig{}
	if err := os.Mkdir(filepath.Join(cfg.Lists.Dir, "ratings.list"), 0o755); err != nil {
		t.Fatal(err)
	}
	im, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	res, err := im.Run(context.Background())
	if err != nil {
		t.Fatalf("expected read failure not to abort the run, got %v", err)
	}
	if !reflect.DeepEqual(res.Failed(), []string{"ratings"}) {
		t.Fatalf("expected ratings to fail, got %v", res.Failed())
	}
	rep := res.Sources[2]
	if class := apperrors.GetClass(rep.Err); class != apperrors.ErrClassImport {
		t.Errorf("expected %s, got %s", apperrors.ErrClassImport, class)
	}
	if parser := apperrors.GetContext(rep.Err)["parser"]; parser != "ratings" {
		t.Errorf("expected parser context ratings, got %v", parser)
	}
	if errors.Is(rep.Err, apperrors.ErrMissingInputFile) {
		t.Errorf("expected a read failure, not a missing file: %v", rep.Err)
	}
	alien, _ := res.Movies.Get("Alien (1979)")
	if alien.Plot == "" || alien.Votes != 0 {
		t.Errorf("expected plots to be merged without ratings, got %+v", alien)
	}
}

func TestRunCancelled(t *testing.T) {
	im, err := New(writeFixtures(t))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := im.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if res == nil || res.Filtered != nil {
		t.Errorf("expected partial result without filter stage, got %+v", res)
	}
}

func TestNewInvalidCriteria(t *testing.T) {
	cfg := config.Default()
	cfg.Filter.Years = "soon"
	if _, err := New(&cfg); !errors.Is(err, apperrors.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}
