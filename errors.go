package htmlparser

import (
	"fmt"
)

// ParseError is reported through the compatibility adapter when parsing is aborted by a
// panic. The parser itself recovers from malformed markup and never produces it.
type ParseError struct {
	// Offset is the cursor position in the markup when the parser stopped.
	Offset int
	err    error
}

func newParseError(offset int, v any) *ParseError {
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("%v", v)
	}
	return &ParseError{Offset: offset, err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("htmlparser: offset %d: %s", e.Offset, e.err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.err
}
