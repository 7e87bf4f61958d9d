package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config defines the configuration options for the logger
type Config struct {
	// LogLevel sets the minimum enabled logging level. Valid levels are
	// "debug", "info", "warning" and "error".
	LogLevel string

	// LogFile is the path of the rotated log file. Empty disables file output.
	LogFile string

	// LogFileSize is the maximum size in megabytes of the log file before it gets
	// rotated. It defaults to 10 megabytes.
	LogFileSize int

	// LogFileCount is the maximum number of old log files to retain.
	// The default is 5.
	LogFileCount uint8

	// LogCompress determines if the rotated log files should be compressed
	// using gzip. The default is false.
	LogCompress bool

	// LogColorize is "true", "false" or "auto". Auto colours console output
	// only when stdout is a terminal.
	LogColorize string

	// TimeFormat sets the format for timestamp in logs. Valid formats are
	// "rfc3339", "iso8601", etc. The default is RFC3339.
	TimeFormat string

	// TimeZone sets the time zone to use for timestamps in logs.
	// The default is to use the local time zone.
	TimeZone string

	// LogToFileOnly disables logging to stdout.
	LogToFileOnly bool
}

const (
	StatusInfo    = "info"
	StatusDebug   = "debug"
	StatusWarning = "warn"
	StatusError   = "error"
	StatusFatal   = "fatal"

	StrDebug    = "debug"
	StrFile     = "file"
	StrParser   = "parser"
	StrRunID    = "run_id"
	StrLine     = "line"
	StrMovies   = "movies"
	StrFiltered = "filtered"
	StrElapsed  = "elapsed"
	StrFormat   = "format"
	StrDir      = "dir"
)

var (
	log        = zerolog.New(os.Stdout).With().Timestamp().Logger()
	timeFormat = time.RFC3339Nano
	timeZone   = *time.Local
)

// InitLogger initializes the global logger based on the provided Config.
// It sets the log level, output format, rotation options, etc.
func InitLogger(config Config) {
	if config.LogFileSize == 0 {
		config.LogFileSize = 10
	}
	if config.LogFileCount == 0 {
		config.LogFileCount = 5
	}
	switch config.TimeFormat {
	case "rfc3339", "":
		timeFormat = time.RFC3339Nano
	case "iso8601":
		timeFormat = "2006-01-02T15:04:05.000Z0700"
	case "rfc1123":
		timeFormat = time.RFC1123
	case "rfc822":
		timeFormat = time.RFC822
	case "rfc850":
		timeFormat = time.RFC850
	default:
		timeFormat = config.TimeFormat
	}
	zerolog.TimeFieldFormat = timeFormat

	if config.TimeZone != "" {
		if strings.EqualFold(config.TimeZone, "local") {
			timeZone = *time.Local
		} else if strings.EqualFold(config.TimeZone, "utc") {
			timeZone = *time.UTC
		} else if loc, err := time.LoadLocation(config.TimeZone); err == nil {
			timeZone = *loc
		}
	}
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(&timeZone)
	}

	var dbug bool
	level := zerolog.InfoLevel
	switch {
	case strings.EqualFold(config.LogLevel, StrDebug):
		level = zerolog.DebugLevel
		dbug = true
	case strings.EqualFold(config.LogLevel, "warning"), strings.EqualFold(config.LogLevel, "warn"):
		level = zerolog.WarnLevel
	case strings.EqualFold(config.LogLevel, "error"):
		level = zerolog.ErrorLevel
	}

	var writers []io.Writer
	if !config.LogToFileOnly {
		if Colorize(config.LogColorize, os.Stdout.Fd()) {
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timeFormat})
		} else {
			writers = append(writers, os.Stdout)
		}
	}
	if config.LogFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    config.LogFileSize, // megabytes
			MaxBackups: int(config.LogFileCount),
			MaxAge:     28, // days
			Compress:   config.LogCompress,
		})
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	logctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp()
	if dbug {
		log = logctx.Caller().Logger()
	} else {
		log = logctx.Logger()
	}
}

// Colorize resolves a colour mode. "auto" asks the terminal behind fd.
func Colorize(mode string, fd uintptr) bool {
	switch strings.ToLower(mode) {
	case "true", "yes", "1":
		return true
	case "auto":
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	default:
		return false
	}
}

// Logtype returns a log event for the given level. Unknown levels log at info.
// skip is added to the caller frame skip so helpers can report their caller.
func Logtype(typev string, skip int) *zerolog.Event {
	var logv *zerolog.Event
	switch typev {
	case StatusInfo:
		logv = log.Info()
	case StatusDebug:
		logv = log.Debug()
	case StatusError:
		logv = log.Error()
	case StatusFatal:
		logv = log.Fatal()
	case StatusWarning, "warning":
		logv = log.Warn()
	default:
		logv = log.Info()
	}
	if skip > 0 {
		logv = logv.CallerSkipFrame(skip)
	}
	return logv
}

// LogDynamicany logs a message with dynamic key/value fields. Keys must be
// strings; an error value is logged under the standard error field and does
// not consume a key.
func LogDynamicany(typev string, msg string, fields ...any) {
	logv := Logtype(typev, 1)

	var n string
	for i := range fields {
		if err, ok := fields[i].(error); ok {
			logv.Err(err)
			n = ""
			continue
		}
		if n == "" {
			if key, ok := fields[i].(string); ok {
				n = key
			}
			continue
		}
		switch tt := fields[i].(type) {
		case string:
			logv.Str(n, tt)
		case int:
			logv.Int(n, tt)
		case int64:
			logv.Int64(n, tt)
		case float32:
			logv.Float32(n, tt)
		case float64:
			logv.Float64(n, tt)
		case bool:
			logv.Bool(n, tt)
		case time.Duration:
			logv.Str(n, tt.Round(time.Millisecond).String())
		case []string:
			logv.Strs(n, tt)
		default:
			logv.Any(n, tt)
		}
		n = ""
	}
	logv.Msg(msg)
}

// GetLogger returns the global zerolog logger instance.
func GetLogger() *zerolog.Logger {
	return &log
}

// SetLogger replaces the global logger. Used by tests to capture output.
func SetLogger(l zerolog.Logger) {
	log = l
}
