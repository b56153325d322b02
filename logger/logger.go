/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides leveled logging for the pipeline. The default
// implementation writes through rs/zerolog; embedders may install their own
// backend with SetDefault. The chain itself never logs on the hot path,
// only the builder emits construction traces.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Level defines log levels
type Level int

const (
	// DEBUG displays detailed construction traces
	DEBUG Level = iota
	// INFO displays general information
	INFO
	// WARN displays warning information
	WARN
	// ERROR only displays error information
	ERROR
	// OFF disables logging
	OFF
)

// Logger interface defines basic methods for logging
type Logger interface {
	// Debug records debug level logs
	Debug(format string, args ...interface{})
	// Info records info level logs
	Info(format string, args ...interface{})
	// Warn records warning level logs
	Warn(format string, args ...interface{})
	// Error records error level logs
	Error(format string, args ...interface{})
	// SetLevel sets the log level
	SetLevel(level Level)
}

func zerologLevel(l Level) zerolog.Level {
	switch l {
	case DEBUG:
		return zerolog.DebugLevel
	case INFO:
		return zerolog.InfoLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// zerologLogger is the default backend.
type zerologLogger struct {
	zl zerolog.Logger
}

// NewLogger creates a logger writing to output at the given level.
//
// Example:
//
//	logger := NewLogger(INFO, os.Stdout)
//	logger.Info("query chain built")
func NewLogger(level Level, output io.Writer) Logger {
	zl := zerolog.New(output).With().Timestamp().Logger().Level(zerologLevel(level))
	return &zerologLogger{zl: zl}
}

func (l *zerologLogger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *zerologLogger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *zerologLogger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *zerologLogger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func (l *zerologLogger) SetLevel(level Level) {
	l.zl = l.zl.Level(zerologLevel(level))
}

// discardLogger discards all log output
type discardLogger struct{}

// NewDiscardLogger creates a logger that discards all logs
func NewDiscardLogger() Logger {
	return &discardLogger{}
}

func (d *discardLogger) Debug(format string, args ...interface{}) {}
func (d *discardLogger) Info(format string, args ...interface{})  {}
func (d *discardLogger) Warn(format string, args ...interface{})  {}
func (d *discardLogger) Error(format string, args ...interface{}) {}
func (d *discardLogger) SetLevel(level Level)                     {}

// Global default logger
var defaultInstance Logger = NewLogger(INFO, os.Stderr)

// SetDefault sets the global default logger
func SetDefault(logger Logger) {
	defaultInstance = logger
}

// GetDefault gets the global default logger
func GetDefault() Logger {
	return defaultInstance
}
