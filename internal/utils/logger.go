package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// LogLevel represents the level of logging verbosity
type LogLevel int

const (
	// LevelQuiet suppresses all output except errors
	LevelQuiet LogLevel = iota
	// LevelNormal shows standard generation progress
	LevelNormal
	// LevelVerbose shows provider attempts and parser decisions
	LevelVerbose
	// LevelDebug shows all debugging information
	LevelDebug
)

var (
	// CurrentLogLevel is the global log level setting
	CurrentLogLevel LogLevel = LevelNormal

	logMu  sync.RWMutex
	logger = newLogger(os.Stderr, LevelNormal)
)

func newLogger(w io.Writer, level LogLevel) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	if f, ok := w.(*os.File); !ok || f != os.Stderr {
		out.NoColor = true
	}
	return zerolog.New(out).With().Timestamp().Logger().Level(zerologLevel(level))
}

// zerologLevel maps the CLI verbosity onto zerolog levels.
// Verbose messages are emitted at debug, debug messages at trace.
func zerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LevelQuiet:
		return zerolog.ErrorLevel
	case LevelVerbose:
		return zerolog.DebugLevel
	case LevelDebug:
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetLogLevel sets the global logging level
func SetLogLevel(level LogLevel) {
	logMu.Lock()
	defer logMu.Unlock()
	CurrentLogLevel = level
	logger = logger.Level(zerologLevel(level))
}

// SetLogOutput redirects log output, mostly useful in tests
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	defer logMu.Unlock()
	logger = newLogger(w, CurrentLogLevel)
}

// Logger returns the structured logger behind the Log* helpers
func Logger() *zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	l := logger
	return &l
}

// LogLevelFromString converts a string level name to LogLevel
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(level) {
	case "quiet", "q":
		return LevelQuiet
	case "normal", "n":
		return LevelNormal
	case "verbose", "v":
		return LevelVerbose
	case "debug", "d":
		return LevelDebug
	default:
		return LevelNormal
	}
}

// LogError logs an error message (always shown)
func LogError(format string, args ...interface{}) {
	Logger().Error().Msg(fmt.Sprintf(format, args...))
}

// LogInfo logs an informational message at Normal+ level
func LogInfo(format string, args ...interface{}) {
	Logger().Info().Msg(fmt.Sprintf(format, args...))
}

// LogSuccess logs a success message at Normal+ level
func LogSuccess(format string, args ...interface{}) {
	Logger().Info().Bool("ok", true).Msg(fmt.Sprintf(format, args...))
}

// LogVerbose logs a message at Verbose+ level
func LogVerbose(format string, args ...interface{}) {
	Logger().Debug().Msg(fmt.Sprintf(format, args...))
}

// LogDebug logs a debug message at Debug level
func LogDebug(format string, args ...interface{}) {
	Logger().Trace().Msg(fmt.Sprintf(format, args...))
}

// LogWarning logs a warning message at Normal+ level
func LogWarning(format string, args ...interface{}) {
	Logger().Warn().Msg(fmt.Sprintf(format, args...))
}
