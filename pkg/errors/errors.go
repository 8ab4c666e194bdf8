// Package errors provides structured error handling for boxkit.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid layout or box definition.
	KindConfig
	// KindFont indicates a glyph engine failure.
	KindFont
	// KindRender indicates a failure while drawing a box.
	KindRender
	// KindBackend indicates a drawing backend failure.
	KindBackend
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindFont:
		return "font"
	case KindRender:
		return "render"
	case KindBackend:
		return "backend"
	default:
		return "unknown"
	}
}

// BoxError represents a structured error raised while building or drawing
// boxes.
type BoxError struct {
	// Op is the operation that failed (e.g., "text.NewEngine").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// BoxID is the id of the box involved, if HasBox is set.
	BoxID  uint16
	HasBox bool
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BoxError) Error() string {
	if e.HasBox {
		return fmt.Sprintf("%s [%s] box=%d: %v", e.Op, e.Kind, e.BoxID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BoxError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "render.Box").
	Op string
	// Value is the value passed to panic().
	Value any
	// BoxID is the box being drawn, valid when HasBox is set.
	BoxID  uint16
	HasBox bool
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.HasBox {
		return fmt.Sprintf("panic in %s box=%d: %v", e.Op, e.BoxID, e.Value)
	}
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ConfigError represents a failure to load a layout file.
type ConfigError struct {
	// Path is the file being loaded.
	Path string
	// Line is the 1-based line reported by the parser, or 0.
	Line int
	// Field is the offending field path, if known.
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %v", loc, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by boxkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BoxError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
