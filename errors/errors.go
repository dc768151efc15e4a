package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the transform the error occurred
type Phase string

const (
	PhaseCollect Phase = "collect" // directive classification
	PhaseInline  Phase = "inline"  // step inlining
	PhaseRewrite Phase = "rewrite" // special-call rewriting
	PhaseWrap    Phase = "wrap"    // workflow wrapping
	PhaseEmit    Phase = "emit"    // metadata emission
	PhaseClient  Phase = "client"  // client descriptor rewriting
	PhaseParse   Phase = "parse"   // ESTree decoding
	PhaseConfig  Phase = "config"  // configuration
)

// Kind categorizes the error
type Kind string

const (
	KindDuplicateStep      Kind = "duplicate_step"
	KindDanglingStepRef    Kind = "dangling_step_reference"
	KindUnreachableStepRef Kind = "unreachable_step_reference"
	KindInvalidConfig      Kind = "invalid_config"
	KindInvalidInput       Kind = "invalid_input"
	KindUnsupported        Kind = "unsupported"
)

// Error is the structured error type used throughout the transform.
// A fatal Error aborts the whole compilation unit; no partial output is
// ever produced alongside one.
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	File    string
	Subject string // workflow/step/import name involved
	Detail  string
	Line    int
	Col     int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.File != "" || e.Line > 0 {
		b.WriteString(" at ")
		if e.File != "" {
			b.WriteString(e.File)
		}
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d:%d", e.Line, e.Col)
		}
	}

	if e.Subject != "" {
		b.WriteString(": ")
		fmt.Fprintf(&b, "%q", e.Subject)
	}

	if e.Detail != "" {
		if e.Subject != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// File sets the source file path
func (b *Builder) File(file string) *Builder {
	b.err.File = file
	return b
}

// At sets the source location
func (b *Builder) At(line, col int) *Builder {
	b.err.Line = line
	b.err.Col = col
	return b
}

// Subject sets the workflow/step/import name involved
func (b *Builder) Subject(name string) *Builder {
	b.err.Subject = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// DuplicateStep reports two step-directive functions sharing a name in one
// unit.
func DuplicateStep(file, name string, line, col int) *Error {
	return &Error{
		Phase:   PhaseCollect,
		Kind:    KindDuplicateStep,
		File:    file,
		Subject: name,
		Line:    line,
		Col:     col,
		Detail:  "step name already declared in this module",
	}
}

// DanglingStepRef reports a cataloged step referenced as a value instead of
// being invoked directly.
func DanglingStepRef(file, name string, line, col int) *Error {
	return &Error{
		Phase:   PhaseInline,
		Kind:    KindDanglingStepRef,
		File:    file,
		Subject: name,
		Line:    line,
		Col:     col,
		Detail:  "step function used as a value; steps are erased after inlining",
	}
}

// UnreachableStepRef reports a step invoked outside any workflow body after
// step declarations were erased.
func UnreachableStepRef(file, name string, line, col int) *Error {
	return &Error{
		Phase:   PhaseInline,
		Kind:    KindUnreachableStepRef,
		File:    file,
		Subject: name,
		Line:    line,
		Col:     col,
		Detail:  "step invoked outside any workflow body",
	}
}

// InvalidConfig reports a bad compiler configuration value.
func InvalidConfig(detail string) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidConfig,
		Detail: detail,
	}
}

// InvalidInput reports malformed input handed across the host boundary.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported reports a construct the decoder or transform cannot handle.
func Unsupported(phase Phase, what string, line, col int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
		Line:   line,
		Col:    col,
	}
}

// ParseFailed wraps a decoding failure.
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
