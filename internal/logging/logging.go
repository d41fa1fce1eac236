// Package logging provides the leveled logger used by the get-testdata CLI.
//
// Output goes to stdout as single lines prefixed with the tool name and a
// bracketed level tag, matching the log format the stress-test harness
// expects to scrape:
//
//	get-testdata: [ INFO ] git clone https://github.com/opencv/open_model_zoo /tmp/_open_model_zoo
//
// The logger is a standard log/slog.Logger with a custom handler, so
// callers use the usual Info/Debug/Error methods and key-value attributes.
// Attributes are appended as key=value pairs after the message.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// prefix is the tool name written at the start of every log line.
// It mirrors the binary name in cmd/get-testdata.
const prefix = "get-testdata"

// New creates a Logger writing to w at the given minimum level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(newLineHandler(w, level))
}

// lineHandler formats slog records as single prefixed lines.
type lineHandler struct {
	writer io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	mu     *sync.Mutex
}

func newLineHandler(w io.Writer, level slog.Leveler) *lineHandler {
	return &lineHandler{
		writer: w,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats a log record as "get-testdata: [ LEVEL ] message" and
// writes it as one line.
func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	buf.Grow(128)

	buf.WriteString(prefix)
	buf.WriteString(": [ ")
	buf.WriteString(levelLabel(r.Level))
	buf.WriteString(" ] ")
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		appendAttr(&buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&buf, a)
		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

// WithAttrs returns a new handler whose attributes consist of both the
// existing attributes and attrs.
func (h *lineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(merged, h.attrs)
	merged = append(merged, attrs...)
	return &lineHandler{
		writer: h.writer,
		level:  h.level,
		attrs:  merged,
		mu:     h.mu,
	}
}

// WithGroup returns the handler unchanged. Grouped attributes are not used
// anywhere in this tool, and flattening them keeps the line format stable.
func (h *lineHandler) WithGroup(string) slog.Handler {
	return h
}

func appendAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(buf, " %s=%v", a.Key, a.Value.Any())
}

// levelLabel maps slog levels to the uppercase tags used in the line prefix.
func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
