// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

var traceEnabled bool

// levelLetters abbreviates apex levels in the handler output.
var levelLetters = map[log.Level]string{
	log.DebugLevel: "D",
	log.InfoLevel:  "I",
	log.WarnLevel:  "W",
	log.ErrorLevel: "E",
	log.FatalLevel: "F",
}

// InitLogger sets up Apex with a custom handler and a log level from the
// COLFILTER_LOG env variable. The interactive view owns stdout, so entries go
// to stderr unless COLFILTER_LOG_FILE names a file to append to.
func InitLogger() {
	envLevel := strings.ToLower(os.Getenv("COLFILTER_LOG"))
	traceEnabled = envLevel == "trace"

	level := log.ErrorLevel
	switch {
	case traceEnabled:
		level = log.DebugLevel // trace entries are debug entries with a prefix
	case envLevel != "":
		if l, err := log.ParseLevel(envLevel); err == nil {
			level = l
		}
	}

	var w io.Writer = os.Stderr
	if path := os.Getenv("COLFILTER_LOG_FILE"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil { //nolint:mnd
			w = f
		}
	}

	log.SetHandler(NewHandler(w))
	log.SetLevel(level)
}

// Handler writes "<timestamp> <level> <message> [key=value ...]" lines.
type Handler struct {
	mu sync.Mutex
	w  io.Writer
}

// NewHandler returns a Handler writing to w.
func NewHandler(w io.Writer) *Handler {
	return &Handler{w: w}
}

// HandleLog implements the log.Handler interface
func (h *Handler) HandleLog(e *log.Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	message, trace := strings.CutPrefix(e.Message, tracePrefix)
	level, ok := levelLetters[e.Level]
	switch {
	case trace:
		level = "T"
	case !ok:
		level = "?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", ts.Format("2006-01-02 15:04:05"), level, message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

const tracePrefix = "TRACE: "

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
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

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Debug logs at Debug level.
func Debug(msg string) {
	log.Debug(msg)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
