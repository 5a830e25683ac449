// Package logging provides the zap-backed structured logging used across
// cria: namespaced loggers with console or JSON encoding selected by
// configuration, and a small field vocabulary (fields.go) tying every log
// line back to the render and fit-loop iteration that produced it.
package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the encoder and minimum level for the process-wide
// logger. Writer defaults to stderr when nil.
type Config struct {
	// Type is "console", "file", "json", or "none". "file" and "json" both
	// use the JSON encoder; "file" expects Writer to be the opened file.
	Type string
	// Level is the minimum level to emit: debug, info, warning, or error.
	Level string
	// Writer receives encoded log output.
	Writer zapcore.WriteSyncer
}

var (
	mu   sync.RWMutex
	root *zap.Logger
)

// Initialize replaces the process-wide logger according to cfg. Loggers
// handed out by GetLogger before Initialize keep their old backend; call
// Initialize before GetLogger during startup.
func Initialize(cfg Config) error {
	core, err := buildCore(cfg)
	if err != nil {
		return err
	}
	mu.Lock()
	root = zap.New(core)
	mu.Unlock()
	return nil
}

func buildCore(cfg Config) (zapcore.Core, error) {
	if cfg.Type == "none" {
		return zapcore.NewNopCore(), nil
	}

	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Type {
	case "console":
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "file", "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unsupported logger type: %s", cfg.Type)
	}

	w := cfg.Writer
	if w == nil {
		w = zapcore.Lock(os.Stderr)
	}
	return zapcore.NewCore(enc, w, level), nil
}

// parseLevel accepts the level names config validation allows; "warning"
// is the config-file spelling of zap's "warn".
func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	if level == "warning" {
		level = "warn"
	}
	return zapcore.ParseLevel(level)
}

// Logger is a namespaced structured logger. Obtain one with GetLogger;
// pass correlation data as fields (see fields.go) rather than formatting
// it into the message.
type Logger struct {
	zl *zap.Logger
}

// GetLogger returns a Logger namespaced under the given dot-separated
// name, e.g. "fit" or "cli.render". Before Initialize runs, loggers write
// console output to stderr at info level.
func GetLogger(namespace string) *Logger {
	mu.RLock()
	zl := root
	mu.RUnlock()

	if zl == nil {
		core, _ := buildCore(Config{Type: "console", Level: "info"})
		mu.Lock()
		if root == nil {
			root = zap.New(core)
		}
		zl = root
		mu.Unlock()
	}
	return &Logger{zl: zl.Named(namespace)}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zl.Debug(msg, fields...) }

// Info logs at info level.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.zl.Info(msg, fields...) }

// Warn logs at warning level.
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.zl.Warn(msg, fields...) }

// Error logs at error level.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zl.Error(msg, fields...) }
