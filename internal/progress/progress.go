package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Event types that the scanner and reporter emit
type EventType int

const (
	EventScanStart EventType = iota
	EventScanComplete
	EventEnterDirectory
	EventLeaveDirectory
	EventSkipped
	EventFileWriting
	EventFileWritten
	EventInfo
)

// Event represents something that happened during a scan
type Event struct {
	Type      EventType
	Path      string
	Info      string
	Reason    string
	FileCount int
	DirCount  int
	Duration  time.Duration
}

// Handler processes events and produces output
type Handler interface {
	Handle(event Event)
}

// Progress is the centralized verbose system
type Progress struct {
	enabled     bool
	handler     Handler
	withTimings bool
	dirTimings  map[string]time.Time // Track directory entry times
}

// New creates a new progress reporter
func New(enabled bool, handler Handler) *Progress {
	if handler == nil {
		handler = NewSimpleHandler(os.Stderr)
	}
	return &Progress{
		enabled:    enabled,
		handler:    handler,
		dirTimings: make(map[string]time.Time),
	}
}

// Discard returns a disabled progress reporter that drops every event.
func Discard() *Progress {
	return New(false, NewNullHandler())
}

// EnableTimings enables per-directory timing information
func (p *Progress) EnableTimings() {
	p.withTimings = true
}

// Report sends an event to the handler (only if enabled)
func (p *Progress) Report(event Event) {
	if !p.enabled {
		return
	}
	p.handler.Handle(event)
}

// Convenience methods for the scanner and reporter to report events

func (p *Progress) ScanStart(path string, includePatterns, excludeDirs []string) {
	var parts []string
	if len(includePatterns) > 0 {
		parts = append(parts, "include: "+strings.Join(includePatterns, ", "))
	}
	if len(excludeDirs) > 0 {
		parts = append(parts, "exclude dirs: "+strings.Join(excludeDirs, ", "))
	}
	p.Report(Event{
		Type: EventScanStart,
		Path: path,
		Info: strings.Join(parts, "; "),
	})
}

func (p *Progress) ScanComplete(files, dirs int, duration time.Duration) {
	p.Report(Event{
		Type:      EventScanComplete,
		FileCount: files,
		DirCount:  dirs,
		Duration:  duration,
	})
}

func (p *Progress) EnterDirectory(path string) {
	if p.withTimings {
		p.dirTimings[path] = time.Now()
	}
	p.Report(Event{
		Type: EventEnterDirectory,
		Path: path,
	})
}

func (p *Progress) LeaveDirectory(path string) {
	var duration time.Duration
	if p.withTimings {
		if startTime, ok := p.dirTimings[path]; ok {
			duration = time.Since(startTime)
			delete(p.dirTimings, path)
		}
	}
	p.Report(Event{
		Type:     EventLeaveDirectory,
		Path:     path,
		Duration: duration,
	})
}

func (p *Progress) Skipped(path, reason string) {
	p.Report(Event{
		Type:   EventSkipped,
		Path:   path,
		Reason: reason,
	})
}

func (p *Progress) FileWriting(path string) {
	p.Report(Event{
		Type: EventFileWriting,
		Path: path,
	})
}

func (p *Progress) FileWritten(path string) {
	p.Report(Event{
		Type: EventFileWritten,
		Path: path,
	})
}

func (p *Progress) Info(message string) {
	p.Report(Event{
		Type: EventInfo,
		Info: message,
	})
}

// SimpleHandler outputs events as simple lines (no tree)
type SimpleHandler struct {
	writer io.Writer
}

func NewSimpleHandler(writer io.Writer) *SimpleHandler {
	return &SimpleHandler{writer: writer}
}

func (h *SimpleHandler) Handle(event Event) {
	switch event.Type {
	case EventScanStart:
		fmt.Fprintf(h.writer, "[SCAN] Starting: %s\n", event.Path)
		if event.Info != "" {
			fmt.Fprintf(h.writer, "[SCAN] Filtering: %s\n", event.Info)
		}

	case EventScanComplete:
		fmt.Fprintf(h.writer, "[SCAN] Completed: %d files, %d directories in %.1fs\n",
			event.FileCount, event.DirCount, event.Duration.Seconds())

	case EventEnterDirectory:
		fmt.Fprintf(h.writer, "[DIR]  Entering: %s\n", event.Path)

	case EventLeaveDirectory:
		// Show timing if duration is set
		if event.Duration > 0 {
			fmt.Fprintf(h.writer, "[TIME] %s: %.2fs\n", event.Path, event.Duration.Seconds())
		}

	case EventSkipped:
		fmt.Fprintf(h.writer, "[SKIP] Excluding: %s (%s)\n", event.Path, event.Reason)

	case EventFileWriting:
		fmt.Fprintf(h.writer, "[OUT]  Writing results to: %s\n", event.Path)

	case EventFileWritten:
		fmt.Fprintf(h.writer, "[OUT]  Results written: %s\n", event.Path)

	case EventInfo:
		fmt.Fprintf(h.writer, "[INFO] %s\n", event.Info)
	}
}

// TreeHandler outputs events with tree-like visualization
type TreeHandler struct {
	writer io.Writer
	depth  int
}

func NewTreeHandler(writer io.Writer) *TreeHandler {
	return &TreeHandler{
		writer: writer,
		depth:  0,
	}
}

func (h *TreeHandler) Handle(event Event) {
	indent := strings.Repeat("│  ", h.depth)
	prefix := "├─ "

	switch event.Type {
	case EventScanStart:
		fmt.Fprintf(h.writer, "Scanning %s...\n", event.Path)
		if event.Info != "" {
			fmt.Fprintf(h.writer, "Filtering: %s\n", event.Info)
		}
		fmt.Fprintln(h.writer)

	case EventScanComplete:
		fmt.Fprintf(h.writer, "└─ Completed: %d files, %d directories in %.1fs\n",
			event.FileCount, event.DirCount, event.Duration.Seconds())

	case EventEnterDirectory:
		fmt.Fprintf(h.writer, "%s%s%s\n", indent, prefix, event.Path)
		h.depth++

	case EventLeaveDirectory:
		h.depth--
		if h.depth < 0 {
			h.depth = 0
		}
		// Show timing if duration is set
		if event.Duration > 0 {
			indent := strings.Repeat("│  ", h.depth)
			fmt.Fprintf(h.writer, "%s└─ ⏱  %.2fs\n", indent, event.Duration.Seconds())
		}

	case EventSkipped:
		fmt.Fprintf(h.writer, "%s%sSkipping: %s (%s)\n",
			indent, prefix, event.Path, event.Reason)

	case EventFileWriting:
		fmt.Fprintf(h.writer, "%s%sWriting results to: %s\n", indent, prefix, event.Path)

	case EventFileWritten:
		fmt.Fprintf(h.writer, "%s%sResults written: %s\n", indent, prefix, event.Path)

	case EventInfo:
		fmt.Fprintf(h.writer, "%s%s%s\n", indent, prefix, event.Info)
	}
}

// NullHandler discards all events (for disabled verbose mode)
type NullHandler struct{}

func NewNullHandler() *NullHandler {
	return &NullHandler{}
}

func (h *NullHandler) Handle(event Event) {
	// Do nothing
}
