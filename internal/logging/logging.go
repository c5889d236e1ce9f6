// Package logging builds the zap logger used by the scholarform CLI.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/scholarform/pkg/types"
)

// Console levels.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// Logger is a configured logger and the file it may hold open.
type Logger struct {
	*zap.Logger
	file *os.File
}

// Close flushes the logger and closes the log file, if any.
func (l *Logger) Close() error {
	err := l.Sync()
	if l.file != nil {
		err = multierr.Append(err, l.file.Close())
	}
	return err
}

// New returns a logger writing info and debug entries to out and errors to
// errOut, filtered by cfg.Level. When cfg.Destination is set every entry,
// including debug, is also appended to that file.
func New(cfg types.LoggingConfig, out, errOut io.Writer) (*Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	high := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	var lowCore, highCore zapcore.Core
	switch cfg.Level {
	case LevelNormal, "":
		lowCore = zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(out),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return zapcore.InfoLevel <= lvl && lvl < zapcore.ErrorLevel
			}))
		highCore = zapcore.NewCore(newConsoleEncoder(ec), zapcore.AddSync(errOut), high)
	case LevelDebug:
		lowCore = zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(out),
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl < zapcore.ErrorLevel
			}))
		highCore = zapcore.NewCore(newConsoleEncoder(ec), zapcore.AddSync(errOut), high)
	case LevelNone:
		lowCore = zapcore.NewNopCore()
		highCore = zapcore.NewNopCore()
	default:
		return nil, fmt.Errorf("unknown log level %q (want none, normal, or debug)", cfg.Level)
	}

	l := &Logger{}
	fileCore := zapcore.NewNopCore()
	if cfg.Destination != "" {
		f, err := os.OpenFile(cfg.Destination, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("opening log destination %s: %w", cfg.Destination, err)
		}
		l.file = f
		fileCore = zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(f), zap.NewAtomicLevelAt(zap.DebugLevel))
	}

	l.Logger = zap.New(zapcore.NewTee(highCore, lowCore, fileCore)).Named("scholarform")
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// consoleEncoder prints errors by message only. Wrapped errors otherwise
// add an errorVerbose field to every console line.
type consoleEncoder struct {
	zapcore.Encoder
}

func newConsoleEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEncoder{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEncoder) Clone() zapcore.Encoder {
	return consoleEncoder{c.Encoder.Clone()}
}

func (c consoleEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	out := make([]zapcore.Field, len(fields))
	for i, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		out[i] = f
	}
	return c.Encoder.EncodeEntry(ent, out)
}
