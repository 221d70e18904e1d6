// Package logging provides component-scoped structured logging for the
// probekit engines. Because probekit is an embedded library, all loggers are
// silent until the host process calls Init; nothing is ever written to the
// host's streams without opt-in.
//
// Basic usage from a host:
//
//	if err := logging.Init(logging.Config{Level: "info", Output: os.Stderr}); err != nil {
//	    ...
//	}
//	logger := logging.Get("dupes")
//	logger.Info("scan started", "root", root)
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// toCharmLevel converts our Level to charmbracelet/log level.
func (l Level) toCharmLevel() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelInfo:
		return log.InfoLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the default log level (debug, info, warn, error).
	Level string

	// Output receives all log lines. Defaults to io.Discard, keeping the
	// library silent inside host processes that never configure logging.
	Output io.Writer

	// Components maps component names to their log levels, overriding the
	// default level per component.
	Components map[string]string
}

// Logger wraps charmbracelet/log with component identification.
type Logger struct {
	inner     *log.Logger
	component string
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// With returns a new logger with additional context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...), component: l.component}
}

// state holds the global logging state.
type state struct {
	mu         sync.RWMutex
	output     io.Writer
	level      Level
	components map[string]Level
	loggers    map[string]*Logger
}

var globalState = &state{
	output:     io.Discard,
	level:      LevelInfo,
	components: make(map[string]Level),
	loggers:    make(map[string]*Logger),
}

// Init configures the logging system. It may be called again to reconfigure;
// loggers handed out earlier are rebuilt with the new settings on next Get.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	components := make(map[string]Level, len(cfg.Components))
	for comp, lvl := range cfg.Components {
		parsed, err := ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("parsing level for component %s: %w", comp, err)
		}
		components[comp] = parsed
	}

	output := cfg.Output
	if output == nil {
		output = io.Discard
	}

	globalState.mu.Lock()
	defer globalState.mu.Unlock()
	globalState.output = output
	globalState.level = level
	globalState.components = components
	globalState.loggers = make(map[string]*Logger)
	return nil
}

// Get returns a logger for the given component. Component-level overrides
// from the config take precedence over the default level.
func Get(component string) *Logger {
	globalState.mu.RLock()
	if logger, ok := globalState.loggers[component]; ok {
		globalState.mu.RUnlock()
		return logger
	}
	globalState.mu.RUnlock()

	globalState.mu.Lock()
	defer globalState.mu.Unlock()
	if logger, ok := globalState.loggers[component]; ok {
		return logger
	}
	logger := createLogger(component)
	globalState.loggers[component] = logger
	return logger
}

// createLogger builds a component logger. Caller holds the write lock.
func createLogger(component string) *Logger {
	level := globalState.level
	if override, ok := globalState.components[component]; ok {
		level = override
	}

	inner := log.NewWithOptions(globalState.output, log.Options{
		ReportTimestamp: true,
		Prefix:          component,
		Level:           level.toCharmLevel(),
	})
	return &Logger{inner: inner, component: component}
}
