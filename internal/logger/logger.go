// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu            sync.Mutex
	defaultLogger *slog.Logger
	logFile       *os.File
)

// Options controls where InitLogger sends records.
type Options struct {
	// ToFile appends records to LogFilePath().
	ToFile bool

	// Stderr mirrors records to stderr.
	Stderr io.Writer

	// Verbose lowers the level to Debug.
	Verbose bool
}

// LogFilePath determines the path for the application log file based on XDG spec.
func LogFilePath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateDir, "wpe", "wpe.log"), nil
}

func openLogFile() (*os.File, error) {
	path, err := LogFilePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
}

// InitLogger configures the default logger. File logging failures are
// reported on stderr and otherwise ignored; the CLI keeps working without logs.
func InitLogger(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	var writers []io.Writer
	if opts.ToFile {
		f, err := openLogFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
		} else {
			if logFile != nil {
				logFile.Close()
			}
			logFile = f
			writers = append(writers, f)
		}
	}
	if opts.Stderr != nil {
		writers = append(writers, opts.Stderr)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	defaultLogger = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close releases the log file, if one is open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// SetLogger replaces the default logger instance.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

func current() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if defaultLogger == nil {
		// Nothing configured yet: drop records rather than guess a destination.
		defaultLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return defaultLogger
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	current().Info(msg, args...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	current().Error(msg, args...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	current().Debug(msg, args...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	current().Warn(msg, args...)
}
