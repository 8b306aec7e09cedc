// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

var traceEnabled bool

// InitLogger sets up Apex with a compact handler writing to stderr and a log
// level from the TTP_LOG env variable. stdout is reserved for command output
// so that `ttp compile` and `ttp diff -o json` stay pipeable.
func InitLogger() {
	InitLoggerTo(os.Stderr, os.Getenv("TTP_LOG"))
}

// InitLoggerTo is InitLogger with an explicit writer and level spec.
func InitLoggerTo(w io.Writer, spec string) {
	envLevel := strings.ToLower(strings.TrimSpace(spec))
	traceEnabled = envLevel == "trace"
	log.SetHandler(&CompactHandler{Writer: w})
	log.SetLevel(ParseLevel(envLevel))
}

// ParseLevel maps a TTP_LOG value onto an apex level. Unknown and empty
// values fall back to error.
func ParseLevel(s string) log.Level {
	switch s {
	case "trace", "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.ErrorLevel
	}
}

// CompactHandler formats log messages as "timestamp level message".
type CompactHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CompactHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	if err, ok := e.Fields["error"]; ok {
		message = fmt.Sprintf("%s: error=%v", message, err)
	}

	_, err := fmt.Fprintf(w, "%s %s %s\n", timestamp, level, message)
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Error logs at Error level.
func Error(msg string) {
	log.Error(msg)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
