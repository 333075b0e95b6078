package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"

	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
	defaultMaxAgeDays = 14
)

type Config struct {
	Level  string
	Format string
	// File, when set, receives a JSON copy of every entry with size-based rotation.
	File string
}

// Logger owns the root zerolog logger and the rotating file behind it, if any.
type Logger struct {
	zerolog.Logger
	file *lumberjack.Logger
}

func New(cfg Config, stderr io.Writer) (*Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	var console io.Writer
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", FormatConsole:
		console = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}
	case FormatJSON:
		console = stderr
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	out := &Logger{}
	writer := console
	if path := strings.TrimSpace(cfg.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		out.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAge:     defaultMaxAgeDays,
			Compress:   true,
		}
		writer = zerolog.MultiLevelWriter(console, out.file)
	}

	out.Logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()

	return out, nil
}

func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(raw string) (zerolog.Level, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}

	return level, nil
}
