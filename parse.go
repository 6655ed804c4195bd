package treexml

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/baumbus/tree-xml/xmlevent"
)

// EventSource yields parse events in document order and io.EOF once the
// input is exhausted. *xmlevent.Reader satisfies it; tests and adapters for
// other tokenizers can supply their own.
type EventSource interface {
	Next() (xmlevent.Event, error)
}

// Parse reads a single XML document from r and returns its root node.
func Parse(r io.Reader, opts ...Option) (*Node, error) {
	return ReadFrom(xmlevent.NewReader(r), opts...)
}

// ParseString parses a document held in a string.
func ParseString(document string, opts ...Option) (*Node, error) {
	return Parse(strings.NewReader(document), opts...)
}

// ReadFrom folds the flat event sequence from src into a tree. It walks the
// events exactly once, keeping the chain of open elements on an explicit
// stack, and returns as soon as the outermost element closes. Events past
// that point are left unread.
//
// A stream that ends while elements are still open, or before any element
// was seen, fails with ErrUnexpectedEOF. A closing tag that matches no
// opening tag is skipped with a warning unless WithStrictNesting is set.
func ReadFrom(src EventSource, opts ...Option) (*Node, error) {
	cfg := buildConfig(opts)
	var stack []*Node
	for {
		event, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.WithStack(ErrUnexpectedEOF)
			}
			return nil, errors.WithStack(err)
		}
		switch event.Kind {
		case xmlevent.KindStart:
			node, err := nodeFromEvent(event)
			if err != nil {
				return nil, err
			}
			stack = append(stack, node)
		case xmlevent.KindEmpty:
			node, err := nodeFromEvent(event)
			if err != nil {
				return nil, err
			}
			if len(stack) == 0 {
				return node, nil
			}
			top := stack[len(stack)-1]
			top.children = append(top.children, node)
		case xmlevent.KindEnd:
			if len(stack) == 0 {
				name := string(event.Name)
				if cfg.strict {
					return nil, errors.WithStack(&UnexpectedEndError{Name: name})
				}
				cfg.logger.Warn("skipping closing tag without an opening tag", "name", name)
				continue
			}
			node := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return node, nil
			}
			top := stack[len(stack)-1]
			top.children = append(top.children, node)
		case xmlevent.KindText:
			text, err := decode(event.Text, "text")
			if err != nil {
				return nil, err
			}
			fragment := strings.TrimSpace(text)
			if fragment == "" {
				continue
			}
			if len(stack) == 0 {
				cfg.logger.Warn("skipping character data outside of any element", "text", fragment)
				continue
			}
			top := stack[len(stack)-1]
			top.content += fragment
		default:
			cfg.logger.Debug("ignoring event", "kind", event.Kind.String())
		}
	}
}

// nodeFromEvent builds a childless node from a start or empty element
// event, decoding the raw name and attribute bytes.
func nodeFromEvent(event xmlevent.Event) (*Node, error) {
	name, err := decode(event.Name, "name")
	if err != nil {
		return nil, err
	}
	attrs := make(map[string]string, len(event.Attrs))
	for _, attr := range event.Attrs {
		key, err := decode(attr.Key, "attribute key")
		if err != nil {
			return nil, err
		}
		value, err := decode(attr.Value, "attribute value")
		if err != nil {
			return nil, err
		}
		// Duplicate keys collapse, the last occurrence wins.
		attrs[key] = value
	}
	return &Node{name: name, attrs: attrs}, nil
}

func decode(raw []byte, what string) (string, error) {
	if !utf8.Valid(raw) {
		return "", errors.Wrapf(ErrInvalidUTF8, "decoding %s %q", what, raw)
	}
	return string(raw), nil
}
