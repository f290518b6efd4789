package orbital

import "reflect"

// DiagnosticSink receives identity traces from speculative runs. Print is
// called on the goroutine that starts the run; a sink shared by simulations
// previewed from several goroutines must synchronize itself (see diag.Locked).
type DiagnosticSink interface {
	Print(payload any)
}

type NopSink struct{}

func (NopSink) Print(any) {}

type TraceStage string

const (
	TraceOriginal TraceStage = "original"
	TraceSnapshot TraceStage = "snapshot"
)

// Trace is the payload sent once per body before a snapshot is taken and once
// per cloned body after. Ref is the body's address when it is a pointer, so a
// sink can confirm the clones are distinct objects.
type Trace struct {
	Stage TraceStage
	Index int
	ID    ID
	Ref   uintptr
}

func traceOf(stage TraceStage, i int, b Body) Trace {
	t := Trace{Stage: stage, Index: i, ID: b.ID()}
	if v := reflect.ValueOf(b); v.Kind() == reflect.Pointer {
		t.Ref = v.Pointer()
	}
	return t
}
