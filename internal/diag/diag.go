// Package diag adapts logging and tracing backends to orbital.DiagnosticSink.
package diag

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/san-kum/orbsim/internal/orbital"
)

type Logger struct {
	l *log.Logger
}

func NewLogger(l *log.Logger) *Logger {
	if l == nil {
		l = log.Default()
	}
	return &Logger{l: l}
}

func (d *Logger) Print(payload any) {
	if t, ok := payload.(orbital.Trace); ok {
		d.l.Printf("%s body[%d] id=%s ref=%#x", t.Stage, t.Index, t.ID, t.Ref)
		return
	}
	d.l.Print(payload)
}

// Span records each payload as an event on a span.
type Span struct {
	span trace.Span
}

func NewSpan(span trace.Span) *Span {
	return &Span{span: span}
}

func (d *Span) Print(payload any) {
	if t, ok := payload.(orbital.Trace); ok {
		d.span.AddEvent("orbital.trace", trace.WithAttributes(
			attribute.String("stage", string(t.Stage)),
			attribute.Int("index", t.Index),
			attribute.String("body.id", string(t.ID)),
			attribute.String("body.ref", fmt.Sprintf("%#x", t.Ref)),
		))
		return
	}
	d.span.AddEvent("diagnostic", trace.WithAttributes(
		attribute.String("payload", fmt.Sprint(payload)),
	))
}

// Multi fans a payload out to every sink.
type Multi []orbital.DiagnosticSink

func (m Multi) Print(payload any) {
	for _, s := range m {
		s.Print(payload)
	}
}

// Locked serializes Print calls to a sink that is not safe for concurrent use.
type Locked struct {
	mu   sync.Mutex
	sink orbital.DiagnosticSink
}

func NewLocked(sink orbital.DiagnosticSink) *Locked {
	if sink == nil {
		sink = orbital.NopSink{}
	}
	return &Locked{sink: sink}
}

func (l *Locked) Print(payload any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink.Print(payload)
}
