// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// IOError reports a missing, unreadable, or unwritable resource.
type IOError struct {
	// Op is the operation that failed (e.g. "open", "write").
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports INI text that could not be parsed.
type ParseError struct {
	Path string
	// Line is the 1-based line of the offending text, or 0 when unknown.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	where := "configuration"
	if e.Path != "" {
		where = e.Path
	}
	if e.Line > 0 {
		return fmt.Sprintf("parsing %s: line %d: %v", where, e.Line, e.Err)
	}
	return fmt.Sprintf("parsing %s: %v", where, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SerializationError reports a document that could not be encoded. With
// string-only values it indicates a broken invariant rather than bad input.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serializing configuration: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
