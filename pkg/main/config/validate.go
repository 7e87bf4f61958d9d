package config

import (
	"errors"
	"slices"
	"strings"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/apperrors"
	"github.com/Kellerman81/go_imdb_lists/pkg/main/export"
)

var (
	validLevels   = []string{"debug", "info", "warn", "warning", "error"}
	validColorize = []string{"auto", "true", "false"}
)

// Validate reports every invalid setting, joined.
func (c *Config) Validate() error {
	var errs []error
	errs = append(errs, c.validateGeneral()...)
	errs = append(errs, c.validateLists()...)
	errs = append(errs, c.validateFilter()...)
	errs = append(errs, c.validateOutput()...)
	return errors.Join(errs...)
}

func (c *Config) validateGeneral() []error {
	var errs []error
	if !slices.Contains(validLevels, strings.ToLower(c.General.LogLevel)) {
		errs = append(errs, invalid("general.log_level", c.General.LogLevel))
	}
	if !slices.Contains(validColorize, strings.ToLower(c.General.LogColorize)) {
		errs = append(errs, invalid("general.log_colorize", c.General.LogColorize))
	}
	if c.General.LogFileSize < 0 {
		errs = append(errs, apperrors.New(apperrors.ErrClassConfig, "validate", "general.log_file_size must not be negative"))
	}
	return errs
}

func (c *Config) validateLists() []error {
	var errs []error
	if c.Lists.VideoGameMarker == "" {
		errs = append(errs, apperrors.New(apperrors.ErrClassConfig, "validate", "lists.video_game_marker must be set"))
	}
	files := []struct {
		name string
		f    ListFileConfig
	}{
		{"genres", c.Lists.Genres},
		{"keywords", c.Lists.Keywords},
		{"ratings", c.Lists.Ratings},
		{"plots", c.Lists.Plots},
	}
	for _, lf := range files {
		if lf.f.Path == "" {
			errs = append(errs, apperrors.Newf(apperrors.ErrClassConfig, "validate", "lists.%s.path must be set", lf.name))
		}
		if lf.f.Preamble < 0 {
			errs = append(errs, apperrors.Newf(apperrors.ErrClassConfig, "validate", "lists.%s.preamble must not be negative", lf.name))
		}
	}
	return errs
}

func (c *Config) validateFilter() []error {
	if _, err := c.Criteria(); err != nil {
		return []error{err}
	}
	return nil
}

func (c *Config) validateOutput() []error {
	var errs []error
	if !slices.Contains(export.Formats, c.Output.Format) {
		errs = append(errs, invalid("output.format", c.Output.Format))
	}
	if !slices.Contains(export.Dialects, c.Output.Dialect) {
		errs = append(errs, invalid("output.dialect", c.Output.Dialect))
	}
	if c.Output.Format != export.FormatNone && c.Output.Dir == "" {
		errs = append(errs, apperrors.New(apperrors.ErrClassConfig, "validate", "output.dir must be set"))
	}
	return errs
}

func invalid(key, value string) error {
	return apperrors.Newf(apperrors.ErrClassConfig, "validate", "invalid value %q for %s", value, key)
}
