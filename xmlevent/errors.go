package xmlevent

import (
	"errors"
	"fmt"
)

var (
	// ErrAttrSyntax reports malformed attribute syntax inside a tag.
	ErrAttrSyntax = errors.New("malformed attribute syntax")
	// ErrInvalidEntity reports an unknown or unterminated entity reference.
	ErrInvalidEntity = errors.New("invalid entity reference")
	// ErrInvalidCharRef reports a malformed numeric character reference.
	ErrInvalidCharRef = errors.New("invalid character reference")

	errInvalidName     = errors.New("invalid tag name")
	errUnexpectedByte  = errors.New("unexpected byte")
	errUnclosedTag     = errors.New("unclosed tag")
	errUnclosedComment = errors.New("unclosed comment")
	errUnclosedCDATA   = errors.New("unclosed CDATA section")
	errUnclosedPI      = errors.New("unclosed processing instruction")
)

// SyntaxError reports malformed markup together with the byte offset at
// which the offending token started.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("xml syntax error at offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
