package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/torosent/apiprobe/internal/probe"
)

// LineWriter prints one line per completed attempt as the run progresses.
type LineWriter struct {
	mu           sync.Mutex
	writer       io.Writer
	extractLabel string
}

// NewLineWriter creates a live per-request line writer. extractLabel names
// the configured extraction path and is prefixed to extracted values; pass
// an empty string when extraction is not configured.
func NewLineWriter(writer io.Writer, extractLabel string) *LineWriter {
	if writer == nil {
		writer = io.Discard
	}
	return &LineWriter{writer: writer, extractLabel: extractLabel}
}

// Print renders one record. Failed attempts show the sentinel as ERROR with
// their reason; the measured time is still shown since the original attempt
// consumed it, even though it is not a latency.
func (l *LineWriter) Print(rec probe.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec.Failed() {
		fmt.Fprintf(l.writer, "Request %d: %d ms, status ERROR (%s)\n", rec.Sequence, rec.Latency.Milliseconds(), rec.Reason)
		if rec.Detail != "" {
			fmt.Fprintf(l.writer, "  %s\n", rec.Detail)
		}
		return
	}

	line := fmt.Sprintf("Request %d: %d ms, status %d", rec.Sequence, rec.Latency.Milliseconds(), rec.Status)
	if rec.Extract != "" && l.extractLabel != "" {
		line += fmt.Sprintf(" | %s=%s", l.extractLabel, rec.Extract)
	}
	fmt.Fprintln(l.writer, line)
}
