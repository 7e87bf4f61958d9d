package config

import "github.com/Kellerman81/go_imdb_lists/pkg/main/imdblist"

// Default returns the configuration for the 2012 list dumps, filtering to
// feature films from 1970 to 2012 rated 5.0 or better.
func Default() Config {
	return Config{
		General: GeneralConfig{
			LogLevel:     "info",
			LogFile:      "./logs/imdblists.log",
			LogFileSize:  10,
			LogFileCount: 5,
			LogColorize:  "auto",
			TimeFormat:   "rfc3339",
		},
		Lists: ListsConfig{
			Dir:             ".",
			SeriesPrefixes:  append([]string(nil), imdblist.DefaultSeriesPrefixes...),
			VideoGameMarker: imdblist.DefaultVideoGameMarker,
			Genres:          ListFileConfig{Path: "genres.list", Preamble: imdblist.DefaultGenrePreamble},
			Keywords:        ListFileConfig{Path: "keywords.list", Preamble: imdblist.DefaultKeywordPreamble},
			Ratings:         ListFileConfig{Path: "ratings.list", Preamble: imdblist.DefaultRatingPreamble},
			Plots:           ListFileConfig{Path: "plot.list", Preamble: imdblist.DefaultPlotPreamble},
		},
		Filter: FilterConfig{
			Years:   "1970-2012",
			Ratings: "5.0-10.0",
		},
		Output: OutputConfig{
			Dir:     ".",
			Format:  "sql",
			Dialect: "mysql",
		},
	}
}
