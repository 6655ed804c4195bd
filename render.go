package treexml

import (
	"bytes"
	"io"
	"maps"
	"slices"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/baumbus/tree-xml/xmlevent"
)

// WriteEvents emits the subtree rooted at this node onto w in document
// order. An element without children and without content becomes a single
// self-closing tag; everything else becomes an opening tag, the content,
// the children and a closing tag. The sink is not flushed, so several
// subtrees can be written back to back before one final Flush.
func (node *Node) WriteEvents(w *xmlevent.Writer) error {
	if len(node.children) == 0 && node.content == "" {
		return errors.WithStack(w.Empty(node.name, node.attrList()))
	}
	if err := w.Open(node.name, node.attrList()); err != nil {
		return errors.WithStack(err)
	}
	if node.content != "" {
		if err := w.Text(node.content); err != nil {
			return errors.WithStack(err)
		}
	}
	for _, child := range node.children {
		if err := child.WriteEvents(w); err != nil {
			return err
		}
	}
	return errors.WithStack(w.Close(node.name))
}

// attrList flattens the attribute mapping in sorted key order, so the same
// tree always serializes to the same bytes.
func (node *Node) attrList() []xmlevent.Attr {
	if len(node.attrs) == 0 {
		return nil
	}
	attrs := make([]xmlevent.Attr, 0, len(node.attrs))
	for _, key := range slices.Sorted(maps.Keys(node.attrs)) {
		attrs = append(attrs, xmlevent.NewAttr(key, node.attrs[key]))
	}
	return attrs
}

// WriteTo serializes the subtree to w and flushes, implementing
// io.WriterTo. The returned count covers the bytes that reached w.
func (node *Node) WriteTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	sink := xmlevent.NewWriter(counter)
	if err := node.WriteEvents(sink); err != nil {
		return counter.written, err
	}
	if err := sink.Flush(); err != nil {
		return counter.written, errors.WithStack(err)
	}
	return counter.written, nil
}

type countingWriter struct {
	w       io.Writer
	written int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.written += int64(n)
	return n, err
}

// Render serializes the subtree into a string. Nodes assembled through a
// builder can carry text that is not valid UTF-8; that surfaces here as
// ErrInvalidUTF8 instead of leaking into the output.
func (node *Node) Render() (string, error) {
	var buf bytes.Buffer
	if _, err := node.WriteTo(&buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf.Bytes()) {
		return "", errors.Wrap(ErrInvalidUTF8, "rendering node")
	}
	return buf.String(), nil
}

// String implements fmt.Stringer. Serialization failures collapse to an
// empty string; use Render when the error matters.
func (node *Node) String() string {
	rendered, err := node.Render()
	if err != nil {
		return ""
	}
	return rendered
}
