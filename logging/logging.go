// Package logging builds the zap logger used across the editor.
//
// The terminal belongs to the UI while the editor runs, so interactive
// sessions only log when a file is configured. The one-shot commands log to
// stderr.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stderr, stdout, or a file path; empty disables logging
}

// Logger pairs a zap logger with its adjustable level.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
}

func parseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func New(cfg Config) (*Logger, error) {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	if cfg.OutputPath == "" {
		return &Logger{Logger: zap.NewNop(), level: level}, nil
	}

	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{cfg.OutputPath}
	zc.ErrorOutputPaths = []string{cfg.OutputPath}

	log, err := zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{Logger: log, level: level}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), level: zap.NewAtomicLevel()}
}

// SetLevel changes the level at runtime. Unknown names are ignored.
func (l *Logger) SetLevel(name string) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return
	}
	l.level.SetLevel(level)
}

func (l *Logger) Level() zapcore.Level { return l.level.Level() }
