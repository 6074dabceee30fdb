// Package log is a thin zerolog wrapper, adapted from the same shape a
// logging package in this stack typically takes: a package-level Logger, a
// Config describing level/output, and With* helpers for attaching the
// fields this domain's log lines actually carry — rank, document, token —
// instead of node/service/task IDs.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance, configured by Init.
var Logger zerolog.Logger

// Level is a logging verbosity level.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config holds logging configuration.
type Config struct {
	Level  Level
	JSON   bool
	Output io.Writer
}

// Init initializes the global logger from cfg.
func Init(cfg Config) {
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSON {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}
}

// Entry is a child logger carrying the structured fields a task handler
// attaches once (rank, document, or token) and then logs through repeatedly.
// It wraps zerolog.Logger with the same single-call Info/Warn/Error shape
// the package-level helpers below expose, so callers never have to
// remember whether they are holding the global logger or a derived one.
type Entry struct {
	z zerolog.Logger
}

func (e Entry) Info(msg string)  { e.z.Info().Msg(msg) }
func (e Entry) Debug(msg string) { e.z.Debug().Msg(msg) }
func (e Entry) Warn(msg string)  { e.z.Warn().Msg(msg) }
func (e Entry) Error(msg string) { e.z.Error().Msg(msg) }

func (e Entry) Errorf(msg string, err error) { e.z.Error().Err(err).Msg(msg) }

// WithRank returns a child logger tagged with the transport rank handling
// the current unit of work.
func WithRank(rank int) Entry {
	return Entry{z: Logger.With().Int("rank", rank).Logger()}
}

// WithDocument returns a child logger tagged with the document being
// processed.
func WithDocument(name string) Entry {
	return Entry{z: Logger.With().Str("document", name).Logger()}
}

// WithToken returns a child logger tagged with the token being processed.
func WithToken(token string) Entry {
	return Entry{z: Logger.With().Str("token", token).Logger()}
}

func Info(msg string)  { Logger.Info().Msg(msg) }
func Debug(msg string) { Logger.Debug().Msg(msg) }
func Warn(msg string)  { Logger.Warn().Msg(msg) }
func Error(msg string) { Logger.Error().Msg(msg) }

func Errorf(msg string, err error) { Logger.Error().Err(err).Msg(msg) }
