package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileName is the log file path relative to the XDG state directory.
const LogFileName = "colorans/colorans.log"

// logHandle is the file the global logger writes to; replaced and closed on
// every setup.
var logHandle *os.File

// SetupLogger configures the global logger for a verbosity level: 0 warn,
// 1 info, 2 debug, 3 and above trace. Logs go to stderr and to an append-mode
// file in the XDG state directory.
func SetupLogger(verbosity int) {
	SetupLoggerTo(os.Stderr, verbosity)
}

// SetupLoggerTo is SetupLogger with the console output replaced by console.
func SetupLoggerTo(console io.Writer, verbosity int) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !isTerminal(console),
	}}

	var handle *os.File
	logFile, err := getLogFilePath()
	if err == nil {
		if handle, err = openLogFile(logFile); err == nil {
			writers = append(writers, handle)
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()

	if logHandle != nil {
		_ = logHandle.Close()
	}
	logHandle = handle

	if err != nil {
		log.Warn().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func levelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// getLogFilePath resolves the log file in XDG_STATE_HOME, creating its
// directory.
func getLogFilePath() (string, error) {
	xdg.Reload()
	path, err := xdg.StateFile(LogFileName)
	if err != nil {
		return "", fmt.Errorf("failed to resolve log file: %w", err)
	}
	return path, nil
}

func openLogFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

// LogOperationStart logs the start of an operation and returns a function to log its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}
