// Package logging sets up the operation log: a slog text log written to a
// size-rotated file inside the repository directory.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file inside the log directory.
const FileName = "pclubgit.log"

// Rotation overrides.
const (
	EnvMaxSize    = "PCLUBGIT_LOG_MAX_SIZE"
	EnvMaxBackups = "PCLUBGIT_LOG_MAX_BACKUPS"
	EnvMaxAge     = "PCLUBGIT_LOG_MAX_AGE"
)

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Rotator creates the rotating writer for logDir with configuration from
// environment variables.
func Rotator(logDir string) *lumberjack.Logger {
	rot := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, FileName),
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
		Compress:   false,
	}

	if n, ok := envInt(EnvMaxSize); ok && n > 0 {
		rot.MaxSize = n
	}
	if n, ok := envInt(EnvMaxBackups); ok && n >= 0 {
		rot.MaxBackups = n
	}
	if n, ok := envInt(EnvMaxAge); ok && n > 0 {
		rot.MaxAge = n
	}
	return rot
}

// Open returns a logger writing to a rotating file in logDir and a function
// that closes the file. The directory is created on first write.
func Open(logDir string, level slog.Level) (*slog.Logger, func() error) {
	rot := Rotator(logDir)
	return New(rot, level), rot.Close
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
