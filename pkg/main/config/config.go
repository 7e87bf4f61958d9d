package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/apperrors"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/imdblist"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/logger"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/movies"
	"github.com/pelletier/go-toml/v2"
)

// Configfile is the location used when no path is given.
var Configfile = "./config/imdblists.toml"

// GeneralConfig holds the logger settings.
type GeneralConfig struct {
	LogLevel      string `toml:"log_level" comment:"debug | info | warning | error"`
	LogFile       string `toml:"log_file"`
	LogFileSize   int    `toml:"log_file_size"`
	LogFileCount  uint8  `toml:"log_file_count"`
	LogCompress   bool   `toml:"log_compress"`
	LogColorize   string `toml:"log_colorize" comment:"auto | true | false"`
	TimeFormat    string `toml:"time_format"`
	TimeZone      string `toml:"time_zone"`
	LogToFileOnly bool   `toml:"log_to_file_only"`
}

// ListFileConfig locates one list file and the length of its header.
type ListFileConfig struct {
	Path     string `toml:"path"`
	Preamble int    `toml:"preamble"`
}

// ListsConfig describes the four input lists. Relative paths are resolved
// against Dir.
type ListsConfig struct {
	Dir             string         `toml:"dir"`
	SeriesPrefixes  []string       `toml:"series_prefixes"`
	VideoGameMarker string         `toml:"video_game_marker"`
	Genres          ListFileConfig `toml:"genres"`
	Keywords        ListFileConfig `toml:"keywords"`
	Ratings         ListFileConfig `toml:"ratings"`
	Plots           ListFileConfig `toml:"plots"`
}

// FilterConfig holds the filter clauses. Empty values leave a clause out.
type FilterConfig struct {
	Title   string   `toml:"title" comment:"case-insensitive substring"`
	Years   string   `toml:"years" comment:"inclusive, e.g. 1970-2012"`
	Genres  []string `toml:"genres"`
	Ratings string   `toml:"ratings" comment:"inclusive, e.g. 5.0-10.0; excludes titles without votes"`
}

// OutputConfig selects where and how the filtered result is written.
type OutputConfig struct {
	Dir     string `toml:"dir"`
	Format  string `toml:"format" comment:"sql | json | none"`
	Dialect string `toml:"dialect" comment:"mysql | sqlite"`
}

// Config is the full imdblists configuration file.
type Config struct {
	General GeneralConfig `toml:"general"`
	Lists   ListsConfig   `toml:"lists"`
	Filter  FilterConfig  `toml:"filter"`
	Output  OutputConfig  `toml:"output"`
}

// Load reads, validates and returns the configuration at path. A missing file
// is created with the defaults; created reports that case.
func Load(path string) (cfg *Config, created bool, err error) {
	cfg, created, err = LoadOrCreate(path)
	if err != nil {
		return nil, created, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, created, err
	}
	return cfg, created, nil
}

// LoadOrCreate is Load without validation, for callers that overlay further
// settings before validating.
func LoadOrCreate(path string) (cfg *Config, created bool, err error) {
	if path == "" {
		path = Configfile
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		def := Default()
		if err := WriteCfg(path, &def); err != nil {
			return nil, false, err
		}
		created = true
	}

	cfg, err = Readconfigtoml(path)
	if err != nil {
		return nil, created, err
	}
	return cfg, created, nil
}

// Readconfigtoml decodes the file at path on top of the defaults. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
func Readconfigtoml(path string) (*Config, error) {
	content, err := os.Open(path)
	if err != nil {
		return nil, apperrors.WrapWithMessageFor(apperrors.ErrClassConfig, "read_config", "failed to open config file", path, err)
	}
	defer content.Close()

	cfg := Default()
	if err := toml.NewDecoder(content).DisallowUnknownFields().Decode(&cfg); err != nil {
		return nil, apperrors.WrapWithMessageFor(apperrors.ErrClassConfig, "read_config", "failed to decode TOML config", path, err)
	}
	return &cfg, nil
}

// WriteCfg marshals cfg to TOML and writes it to path, creating the parent
// directory.
func WriteCfg(path string, cfg *Config) error {
	cnt, err := toml.Marshal(cfg)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrClassConfig, "write_config", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.WrapWithMessageFor(apperrors.ErrClassFileSystem, "write_config", "failed to create config directory", path, err)
	}
	if err := os.WriteFile(path, cnt, 0o644); err != nil {
		return apperrors.WrapWithMessageFor(apperrors.ErrClassFileSystem, "write_config", "failed to write config file", path, err)
	}
	return nil
}

// Logger converts the general section into logger settings.
func (g GeneralConfig) Logger() logger.Config {
	return logger.Config{
		LogLevel:      g.LogLevel,
		LogFile:       g.LogFile,
		LogFileSize:   g.LogFileSize,
		LogFileCount:  g.LogFileCount,
		LogCompress:   g.LogCompress,
		LogColorize:   g.LogColorize,
		TimeFormat:    g.TimeFormat,
		TimeZone:      g.TimeZone,
		LogToFileOnly: g.LogToFileOnly,
	}
}

// Exclusion returns the series and video game rules.
func (l ListsConfig) Exclusion() imdblist.Exclusion {
	return imdblist.Exclusion{
		SeriesPrefixes:  l.SeriesPrefixes,
		VideoGameMarker: l.VideoGameMarker,
	}
}

// Resolve returns the path of a list file, joined with Dir when relative.
func (l ListsConfig) Resolve(f ListFileConfig) string {
	if filepath.IsAbs(f.Path) || l.Dir == "" {
		return f.Path
	}
	return filepath.Join(l.Dir, f.Path)
}

// Criteria builds the filter criteria. An empty genre list is treated as an
// absent clause.
func (c *Config) Criteria() (movies.Criteria, error) {
	var crit movies.Criteria
	if c.Filter.Title != "" {
		title := c.Filter.Title
		crit.Title = &title
	}
	if c.Filter.Years != "" {
		years, err := movies.ParseYearRange(c.Filter.Years)
		if err != nil {
			return movies.Criteria{}, err
		}
		crit.Years = &years
	}
	if len(c.Filter.Genres) > 0 {
		crit.Genres = append([]string(nil), c.Filter.Genres...)
	}
	if c.Filter.Ratings != "" {
		ratings, err := movies.ParseRatingRange(c.Filter.Ratings)
		if err != nil {
			return movies.Criteria{}, err
		}
		crit.Ratings = &ratings
	}
	return crit, nil
}
