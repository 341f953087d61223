package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two recoverable failure kinds and for coordinate
// construction. All of them leave the board untouched; callers reprompt.
var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrParse             = errors.New("unparseable move")
)

// ParseError reports malformed or unresolvable notation text. It unwraps
// to ErrParse so callers can branch with errors.Is.
type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Text, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func parseErrorf(text, format string, args ...interface{}) *ParseError {
	return &ParseError{Text: text, Reason: fmt.Sprintf(format, args...)}
}
