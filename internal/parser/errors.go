package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedInput matches every MalformedInputError
var ErrMalformedInput = errors.New("malformed transcript")

// MalformedInputError reports a transcript that does not start with a section marker
type MalformedInputError struct {
	Line   int // 0 when the error is not tied to a line
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", ErrMalformedInput, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedInput, e.Reason)
}

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
