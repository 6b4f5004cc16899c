// Package generrors provides the typed errors returned by the generator.
//
// Every failure inside the core (normalizing, resolving, assembling,
// emitting) aborts the current spec or operation and surfaces as one of the
// types below. Callers classify them with errors.Is against the sentinels
// and extract details with errors.As:
//
//	var verr *generrors.ValidationError
//	if errors.As(err, &verr) {
//	    fmt.Println(verr.Path)
//	}
package generrors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrValidation matches any schema or model validation failure.
	ErrValidation = errors.New("validation error")

	// ErrReference matches any reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrCircularReference matches a reference that points back into itself.
	ErrCircularReference = errors.New("circular reference")

	// ErrFormat matches documents that are neither JSON nor YAML.
	ErrFormat = errors.New("format error")

	// ErrIO matches file system and network failures.
	ErrIO = errors.New("io error")
)

// maxNodeLen bounds how much of an offending node is rendered into a message.
const maxNodeLen = 512

// ValidationError reports a document shape the generator cannot accept.
type ValidationError struct {
	// Path locates the failure inside the document, e.g. "#/paths/~1pets/get/responses/200"
	Path string
	// Message describes the failure
	Message string
	// Node is the offending raw node, if any
	Node any
}

// Validationf builds a ValidationError with a formatted message.
func Validationf(path string, node any, format string, args ...any) *ValidationError {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...), Node: node}
}

func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Node != nil {
		msg += " (node: " + renderNode(e.Node) + ")"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ReferenceError reports a $ref pointer that is malformed, broken or circular.
type ReferenceError struct {
	// Ref is the pointer as written in the document
	Ref string
	// Segment is the pointer segment that could not be followed
	Segment string
	// IsCircular is set when the pointer is already being resolved higher up
	IsCircular bool
	// Message provides additional context
	Message string
}

func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += " " + e.Ref
	}
	if e.Segment != "" {
		msg += fmt.Sprintf(", segment %q", e.Segment)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type. A broken reference is
// also a validation failure of the document.
func (e *ReferenceError) Is(target error) bool {
	switch target {
	case ErrReference, ErrValidation:
		return true
	case ErrCircularReference:
		return e.IsCircular
	}
	return false
}

// FormatError reports a document that could not be decoded.
type FormatError struct {
	// Source is the file path or URL the data came from
	Source string
	// Cause is the last decoder error
	Cause error
}

func (e *FormatError) Error() string {
	msg := "format error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	msg += ": document is neither JSON nor YAML"
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Cause }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// IOError reports a file system or network failure.
type IOError struct {
	// Op is the attempted operation ("read", "fetch", "write", "remove", ...)
	Op string
	// Target is the path or URL
	Target string
	// Cause is the underlying error
	Cause error
}

func (e *IOError) Error() string {
	msg := "io error"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Target != "" {
		msg += " " + e.Target
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *IOError) Unwrap() error { return e.Cause }

func (e *IOError) Is(target error) bool { return target == ErrIO }

func renderNode(node any) string {
	data, err := json.Marshal(node)
	if err != nil {
		return fmt.Sprintf("%v", node)
	}
	if len(data) > maxNodeLen {
		return string(data[:maxNodeLen]) + "..."
	}
	return string(data)
}
