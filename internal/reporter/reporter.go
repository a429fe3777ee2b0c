// Package reporter prints pipeline progress for humans.
package reporter

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Reporter receives every user-facing message of a run.
type Reporter interface {
	PhaseStart(message string)
	PhaseSuccess(message string)
	PhaseFail(message string)
	Info(message string)
	Warn(message string)
	Heading(message string)
	Println(message string)
}

// Terminal writes styled output. Colors are dropped automatically when the
// writer is not a terminal.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer

	start   lipgloss.Style
	success lipgloss.Style
	fail    lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	heading lipgloss.Style
}

func NewTerminal(out io.Writer, plain bool) *Terminal {
	r := lipgloss.NewRenderer(out)
	t := &Terminal{
		out:     out,
		start:   r.NewStyle(),
		success: r.NewStyle(),
		fail:    r.NewStyle(),
		info:    r.NewStyle(),
		warn:    r.NewStyle(),
		heading: r.NewStyle(),
	}
	if plain {
		return t
	}

	t.start = t.start.Foreground(lipgloss.Color("6"))
	t.success = t.success.Foreground(lipgloss.Color("2"))
	t.fail = t.fail.Foreground(lipgloss.Color("1")).Bold(true)
	t.info = t.info.Foreground(lipgloss.Color("4"))
	t.warn = t.warn.Foreground(lipgloss.Color("3"))
	t.heading = t.heading.Bold(true).Foreground(lipgloss.Color("4"))
	return t
}

// PhaseStart prints message as given; callers supply any trailing ellipsis.
func (t *Terminal) PhaseStart(message string) {
	t.write(t.start.Render("• " + message))
}

func (t *Terminal) PhaseSuccess(message string) {
	t.write(t.success.Render("✔ " + message))
}

func (t *Terminal) PhaseFail(message string) {
	t.write(t.fail.Render("✖ " + message))
}

func (t *Terminal) Info(message string) {
	t.write(t.info.Render(message))
}

func (t *Terminal) Warn(message string) {
	t.write(t.warn.Render("⚠️  " + message))
}

func (t *Terminal) Heading(message string) {
	t.write("\n" + t.heading.Render(message))
}

func (t *Terminal) Println(message string) {
	t.write(message)
}

func (t *Terminal) write(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, s)
}

// EventKind identifies a recorded call.
type EventKind string

const (
	EventPhaseStart   EventKind = "phase_start"
	EventPhaseSuccess EventKind = "phase_success"
	EventPhaseFail    EventKind = "phase_fail"
	EventInfo         EventKind = "info"
	EventWarn         EventKind = "warn"
	EventHeading      EventKind = "heading"
	EventPrintln      EventKind = "println"
)

type Event struct {
	Kind    EventKind
	Message string
}

// Recorder keeps every call in memory. Used in tests and for dry output.
type Recorder struct {
	mu     sync.Mutex
	Events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) PhaseStart(message string)   { r.add(EventPhaseStart, message) }
func (r *Recorder) PhaseSuccess(message string) { r.add(EventPhaseSuccess, message) }
func (r *Recorder) PhaseFail(message string)    { r.add(EventPhaseFail, message) }
func (r *Recorder) Info(message string)         { r.add(EventInfo, message) }
func (r *Recorder) Warn(message string)         { r.add(EventWarn, message) }
func (r *Recorder) Heading(message string)      { r.add(EventHeading, message) }
func (r *Recorder) Println(message string)      { r.add(EventPrintln, message) }

func (r *Recorder) add(kind EventKind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, Event{Kind: kind, Message: message})
}

// Messages returns the messages recorded for kind, in order.
func (r *Recorder) Messages(kind EventKind) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e.Message)
		}
	}
	return out
}

// Text joins every recorded message with newlines.
func (r *Recorder) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		lines = append(lines, e.Message)
	}
	return strings.Join(lines, "\n")
}
