// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/macroimport

// Package observability builds the CLI logger and exports run counters to Prometheus.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
)

const (
	attrRunID   = "run_id"
	attrService = "service"

	serviceName = "macroimport"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	// LogFormatAuto picks text on a terminal and JSON otherwise.
	LogFormatAuto LogFormat = "auto"
	// LogFormatText selects slog.TextHandler.
	LogFormatText LogFormat = "text"
	// LogFormatJSON selects slog.JSONHandler.
	LogFormatJSON LogFormat = "json"
)

// LoggerConfig configures NewLogger.
type LoggerConfig struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// Format is auto, text or json.
	Format LogFormat
	// Writer receives records. Nil means os.Stderr.
	Writer io.Writer
}

// NewLogger builds a logger tagged with the service name and a fresh run id.
func NewLogger(cfg LoggerConfig) (*slog.Logger, string) {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if useJSON(cfg.Format, w) {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	runID := uuid.NewString()
	logger := slog.New(handler).With(
		slog.String(attrService, serviceName),
		slog.String(attrRunID, runID),
	)

	return logger, runID
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// useJSON resolves the auto format against the writer.
func useJSON(format LogFormat, w io.Writer) bool {
	switch format {
	case LogFormatJSON:
		return true
	case LogFormatText:
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return true
	}

	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}
