package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/apperrors"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/imdblist"
	"github.com/pelletier/go-toml/v2"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Lists.Genres.Preamble != 379 || cfg.Lists.Keywords.Preamble != 52833 ||
		cfg.Lists.Ratings.Preamble != 296 || cfg.Lists.Plots.Preamble != 0 {
		t.Errorf("unexpected preambles %+v", cfg.Lists)
	}
	if cfg.Output.Format != "sql" || cfg.Output.Dialect != "mysql" {
		t.Errorf("unexpected output defaults %+v", cfg.Output)
	}
}

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "imdblists.toml")
	cfg, created, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !created {
		t.Error("expected config file to be created")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file on disk: %v", err)
	}
	def := Default()
	if cfg.General != def.General || cfg.Output != def.Output || cfg.Lists.Plots != def.Lists.Plots {
		t.Errorf("expected defaults, got %+v", *cfg)
	}
	if cfg.Filter.Years != "1970-2012" || cfg.Filter.Ratings != "5.0-10.0" || len(cfg.Filter.Genres) != 0 {
		t.Errorf("expected default filter, got %+v", cfg.Filter)
	}

	_, created, err = Load(path)
	if err != nil || created {
		t.Errorf("expected second load to read the existing file, got created=%v err=%v", created, err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imdblists.toml")
	content := `
[general]
log_level = "debug"

[lists]
dir = "/data/imdb"

[lists.plots]
path = "plots.txt"
preamble = 15

[filter]
title = "space"
years = "1950-1960"
genres = ["Horror"]
ratings = ""

[output]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, created, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if created {
		t.Error("expected existing file to be used")
	}
	if cfg.General.LogLevel != "debug" || cfg.General.LogColorize != "auto" {
		t.Errorf("expected overrides merged over defaults, got %+v", cfg.General)
	}
	if cfg.Lists.Plots.Preamble != 15 || cfg.Lists.Genres.Preamble != 379 {
		t.Errorf("unexpected list settings %+v", cfg.Lists)
	}
	if got := cfg.Lists.Resolve(cfg.Lists.Plots); got != filepath.Join("/data/imdb", "plots.txt") {
		t.Errorf("expected resolved plot path, got %s", got)
	}
	if cfg.Output.Format != "json" || cfg.Output.Dialect != "mysql" {
		t.Errorf("unexpected output %+v", cfg.Output)
	}

	crit, err := cfg.Criteria()
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if crit.Title == nil || *crit.Title != "space" {
		t.Errorf("expected title clause, got %v", crit.Title)
	}
	if crit.Years == nil || crit.Years.From != 1950 || crit.Years.To != 1960 {
		t.Errorf("expected years clause, got %v", crit.Years)
	}
	if !reflect.DeepEqual(crit.Genres, []string{"Horror"}) {
		t.Errorf("expected genre clause, got %v", crit.Genres)
	}
	if crit.Ratings != nil {
		t.Errorf("expected empty ratings to leave the clause out, got %v", crit.Ratings)
	}
}

func TestLoadOrCreateSkipsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imdblists.toml")
	if err := os.WriteFile(path, []byte("[output]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); err == nil {
		t.Fatal("expected Load to validate")
	}
	cfg, created, err := LoadOrCreate(path)
	if err != nil || created {
		t.Fatalf("expected existing file to load unvalidated, got created=%v err=%v", created, err)
	}
	cfg.Output.Format = "json"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected override to validate, got %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "imdblists.toml")
	if err := os.WriteFile(path, []byte("[filter]\nyear = \"1999\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if apperrors.GetClass(err) != apperrors.ErrClassConfig {
		t.Errorf("expected config error, got %v", err)
	}
	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		t.Errorf("expected StrictMissingError in chain, got %T", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.General.LogLevel = "loud" }, "general.log_level"},
		{"colorize", func(c *Config) { c.General.LogColorize = "rainbow" }, "general.log_colorize"},
		{"negative preamble", func(c *Config) { c.Lists.Ratings.Preamble = -1 }, "lists.ratings.preamble"},
		{"missing path", func(c *Config) { c.Lists.Keywords.Path = "" }, "lists.keywords.path"},
		{"empty marker", func(c *Config) { c.Lists.VideoGameMarker = "" }, "video_game_marker"},
		{"format", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"dialect", func(c *Config) { c.Output.Dialect = "oracle" }, "output.dialect"},
		{"ratings", func(c *Config) { c.Filter.Ratings = "10-5" }, "invalid range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}

	t.Run("joined", func(t *testing.T) {
		cfg := Default()
		cfg.Output.Format = "xml"
		cfg.Filter.Years = "abc"
		err := cfg.Validate()
		if !errors.Is(err, apperrors.ErrInvalidRange) || !strings.Contains(err.Error(), "output.format") {
			t.Errorf("expected both errors, got %v", err)
		}
	})
}

func TestWriteCfgRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.toml")
	cfg := Default()
	cfg.Filter.Genres = []string{"Horror", "Sci-Fi"}
	cfg.Lists.SeriesPrefixes = []string{`"`}
	if err := WriteCfg(path, &cfg); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "[lists.genres]") {
		t.Errorf("expected nested list tables, got:\n%s", raw)
	}
	got, err := Readconfigtoml(path)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !reflect.DeepEqual(got.Filter.Genres, cfg.Filter.Genres) {
		t.Errorf("expected genres %v, got %v", cfg.Filter.Genres, got.Filter.Genres)
	}
}

func TestAccessors(t *testing.T) {
	cfg := Default()
	if lc := cfg.General.Logger(); lc.LogLevel != "info" || lc.LogFileCount != 5 {
		t.Errorf("unexpected logger config %+v", lc)
	}
	excl := cfg.Lists.Exclusion()
	if !reflect.DeepEqual(excl, imdblist.DefaultExclusion()) {
		t.Errorf("expected default exclusion, got %+v", excl)
	}
	cfg.Lists.Dir = "/lists"
	abs := ListFileConfig{Path: "/abs/genres.list"}
	if got := cfg.Lists.Resolve(abs); got != "/abs/genres.list" {
		t.Errorf("expected absolute path untouched, got %s", got)
	}
}
