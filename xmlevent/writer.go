package xmlevent

import (
	"bufio"
	"io"
)

// Writer emits structured write calls as markup on an io.Writer. Output is
// buffered; the stream is not complete until Flush succeeds. The first write
// failure sticks and every later call returns it.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// Open writes an opening tag with its attributes.
func (w *Writer) Open(name string, attrs []Attr) error {
	return w.tag(name, attrs, false)
}

// Empty writes a self-closing tag with its attributes.
func (w *Writer) Empty(name string, attrs []Attr) error {
	return w.tag(name, attrs, true)
}

// Text writes escaped character data.
func (w *Writer) Text(s string) error {
	return escapeTo(w.bw, s, false)
}

// Close writes a closing tag.
func (w *Writer) Close(name string) error {
	_, _ = w.bw.WriteString("</")
	_, _ = w.bw.WriteString(name)
	return w.bw.WriteByte('>')
}

// Flush forces buffered output onto the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

func (w *Writer) tag(name string, attrs []Attr, selfClosing bool) error {
	_ = w.bw.WriteByte('<')
	_, _ = w.bw.WriteString(name)
	for _, attr := range attrs {
		_ = w.bw.WriteByte(' ')
		_, _ = w.bw.Write(attr.Key)
		_, _ = w.bw.WriteString(`="`)
		if err := escapeTo(w.bw, string(attr.Value), true); err != nil {
			return err
		}
		_ = w.bw.WriteByte('"')
	}
	if selfClosing {
		_, err := w.bw.WriteString("/>")
		return err
	}
	return w.bw.WriteByte('>')
}
