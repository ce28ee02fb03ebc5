package logger

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps one or two independently-configured logrus loggers:
// one for the console, one for a log file, either of which may be disabled.
type Logger struct {
	fileLogger     *logrus.Logger
	consoleLogger  *logrus.Logger
	fileEnabled    bool
	consoleEnabled bool
}

// FileConfig configures the file logging destination.
type FileConfig struct {
	Enabled bool
	Level   string
	Format  string
	Path    string
}

// ConsoleConfig configures the console logging destination.
type ConsoleConfig struct {
	Enabled bool
	Level   string
	Format  string
}

// Config contains logger configuration.
type Config struct {
	File    FileConfig
	Console ConsoleConfig
}

// NewLogger creates a new application logger with multiple outputs.
func NewLogger(cfg *Config) (*Logger, error) {
	l := &Logger{}

	if cfg.Console.Enabled {
		l.consoleLogger = buildLogger(cfg.Console.Level, cfg.Console.Format, os.Stdout)
		l.consoleEnabled = true
	}

	if cfg.File.Enabled {
		if cfg.File.Path == "" {
			return nil, fmt.Errorf("file logging enabled but no path configured")
		}
		f, err := os.OpenFile(cfg.File.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.fileLogger = buildLogger(cfg.File.Level, cfg.File.Format, f)
		l.fileEnabled = true
	}

	if !l.fileEnabled && !l.consoleEnabled {
		l.consoleLogger = buildLogger("info", "text", os.Stdout)
		l.consoleEnabled = true
	}

	return l, nil
}

func buildLogger(level, format string, out *os.File) *logrus.Logger {
	lg := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	lg.SetLevel(lvl)

	if format == "json" {
		lg.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		lg.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	lg.SetOutput(out)
	return lg
}

// Info logs an info message to both outputs.
func (l *Logger) Info(msg string, fields ...interface{}) {
	logFields := l.parseFields(fields...)

	if l.fileEnabled {
		if len(fields) > 0 {
			l.fileLogger.WithFields(logFields).Info(msg)
		} else {
			l.fileLogger.Info(msg)
		}
	}

	if l.consoleEnabled {
		if len(fields) > 0 {
			l.consoleLogger.WithFields(logFields).Info(msg)
		} else {
			l.consoleLogger.Info(msg)
		}
	}
}

// Warn logs a warning message to both outputs.
func (l *Logger) Warn(msg string, fields ...interface{}) {
	logFields := l.parseFields(fields...)

	if l.fileEnabled {
		if len(fields) > 0 {
			l.fileLogger.WithFields(logFields).Warn(msg)
		} else {
			l.fileLogger.Warn(msg)
		}
	}

	if l.consoleEnabled {
		if len(fields) > 0 {
			l.consoleLogger.WithFields(logFields).Warn(msg)
		} else {
			l.consoleLogger.Warn(msg)
		}
	}
}

// Error logs an error message to both outputs.
func (l *Logger) Error(msg string, fields ...interface{}) {
	logFields := l.parseFields(fields...)

	if l.fileEnabled {
		if len(fields) > 0 {
			l.fileLogger.WithFields(logFields).Error(msg)
		} else {
			l.fileLogger.Error(msg)
		}
	}

	if l.consoleEnabled {
		if len(fields) > 0 {
			l.consoleLogger.WithFields(logFields).Error(msg)
		} else {
			l.consoleLogger.Error(msg)
		}
	}
}

// Debug logs a debug message to both outputs.
func (l *Logger) Debug(msg string, fields ...interface{}) {
	logFields := l.parseFields(fields...)

	if l.fileEnabled {
		if len(fields) > 0 {
			l.fileLogger.WithFields(logFields).Debug(msg)
		} else {
			l.fileLogger.Debug(msg)
		}
	}

	if l.consoleEnabled {
		if len(fields) > 0 {
			l.consoleLogger.WithFields(logFields).Debug(msg)
		} else {
			l.consoleLogger.Debug(msg)
		}
	}
}

// parseFields converts variadic key/value arguments to logrus.Fields.
func (l *Logger) parseFields(fields ...interface{}) logrus.Fields {
	result := make(logrus.Fields)
	for i := 0; i < len(fields)-1; i += 2 {
		if key, ok := fields[i].(string); ok {
			result[key] = fields[i+1]
		}
	}
	return result
}
