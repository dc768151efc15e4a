// Package errors provides structured error types for the transform.
//
// Every fatal condition carries a Phase (which pipeline stage detected it),
// a Kind (the taxonomy entry), the source file path, and the offending
// location, so the host build pipeline can report failures against the
// original source. Fatal errors are all-or-nothing per compilation unit:
// callers receiving one must discard any in-progress output.
//
// Errors compare by Phase and Kind through errors.Is, letting callers match
// a category without constructing identical messages:
//
//	if errors.Is(err, &Error{Phase: PhaseCollect, Kind: KindDuplicateStep}) {
//	    ...
//	}
package errors
