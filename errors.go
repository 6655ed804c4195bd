package treexml

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnexpectedEOF reports an event stream that ended before the document
// root was closed. A truncated document never yields a partial tree.
var ErrUnexpectedEOF = errors.New("unexpected end of document")

// ErrInvalidUTF8 reports bytes that do not decode as UTF-8 text.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// MissingAttributeError is returned by Node.Attribute for an absent key.
type MissingAttributeError struct {
	Key  string
	Node string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("no attribute with key %q found in <%s>", e.Key, e.Node)
}

// MissingChildError is returned by Node.ChildByName when no child carries
// the requested name.
type MissingChildError struct {
	Name string
	Node string
}

func (e *MissingChildError) Error() string {
	return fmt.Sprintf("no child <%s> found in parent <%s>", e.Name, e.Node)
}

// WrongNameError is returned by Node.ExpectName when the node name differs
// from the expected one.
type WrongNameError struct {
	Want string
	Got  string
}

func (e *WrongNameError) Error() string {
	return fmt.Sprintf("expected <%s> but found <%s>", e.Want, e.Got)
}

// UnexpectedEndError reports a closing tag with no matching opening tag. It
// fails the parse only under WithStrictNesting.
type UnexpectedEndError struct {
	Name string
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("closing tag </%s> without a matching opening tag", e.Name)
}
