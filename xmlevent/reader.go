package xmlevent

import (
	"bufio"
	"errors"
	"io"
)

const readerBufferSize = 4096

// Reader tokenizes XML bytes into a flat sequence of events. It performs no
// nesting checks; balancing start and end tags is the tree builder's job.
// After a syntax error the reader is poisoned and keeps returning it.
type Reader struct {
	br     *bufio.Reader
	offset int64 // bytes consumed so far
	start  int64 // offset at which the current token started
	err    error
}

// NewReader returns a Reader scanning r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, readerBufferSize)}
}

// Next returns the next event, or io.EOF once the input is exhausted. All
// byte slices in the returned event are copies owned by the caller.
func (r *Reader) Next() (Event, error) {
	if r.err != nil {
		return Event{}, r.err
	}
	ev, err := r.next()
	if err != nil && err != io.EOF {
		r.err = err
	}
	return ev, err
}

func (r *Reader) next() (Event, error) {
	r.start = r.offset
	b, err := r.readByte()
	if err != nil {
		return Event{}, err
	}
	if b != '<' {
		r.unreadByte()
		return r.readText()
	}
	return r.readMarkup()
}

func (r *Reader) readText() (Event, error) {
	var raw []byte
	for {
		b, err := r.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Event{}, err
		}
		if b == '<' {
			r.unreadByte()
			break
		}
		raw = append(raw, b)
	}
	text, err := unescape(raw)
	if err != nil {
		return Event{}, r.syntaxErr(err)
	}
	return Event{Kind: KindText, Text: text}, nil
}

func (r *Reader) readMarkup() (Event, error) {
	b, err := r.readByte()
	if err != nil {
		return Event{}, r.truncated(errUnclosedTag, err)
	}
	switch b {
	case '/':
		return r.readEndTag()
	case '!':
		return r.readBang()
	case '?':
		return r.readPI()
	default:
		r.unreadByte()
		return r.readStartTag()
	}
}

func (r *Reader) readStartTag() (Event, error) {
	name, err := r.readName()
	if err != nil {
		return Event{}, err
	}
	var attrs []Attr
	for {
		if err := r.skipSpace(); err != nil {
			return Event{}, r.truncated(errUnclosedTag, err)
		}
		b, err := r.readByte()
		if err != nil {
			return Event{}, r.truncated(errUnclosedTag, err)
		}
		switch b {
		case '>':
			return Event{Kind: KindStart, Name: name, Attrs: attrs}, nil
		case '/':
			b, err = r.readByte()
			if err != nil {
				return Event{}, r.truncated(errUnclosedTag, err)
			}
			if b != '>' {
				return Event{}, r.syntaxErr(errUnexpectedByte)
			}
			return Event{Kind: KindEmpty, Name: name, Attrs: attrs}, nil
		default:
			r.unreadByte()
			attr, err := r.readAttr()
			if err != nil {
				return Event{}, err
			}
			attrs = append(attrs, attr)
		}
	}
}

func (r *Reader) readEndTag() (Event, error) {
	name, err := r.readName()
	if err != nil {
		return Event{}, err
	}
	if err := r.skipSpace(); err != nil {
		return Event{}, r.truncated(errUnclosedTag, err)
	}
	b, err := r.readByte()
	if err != nil {
		return Event{}, r.truncated(errUnclosedTag, err)
	}
	if b != '>' {
		return Event{}, r.syntaxErr(errUnexpectedByte)
	}
	return Event{Kind: KindEnd, Name: name}, nil
}

func (r *Reader) readAttr() (Attr, error) {
	key, err := r.readName()
	if err != nil {
		return Attr{}, r.attrErr(err)
	}
	if err := r.skipSpace(); err != nil {
		return Attr{}, r.truncated(ErrAttrSyntax, err)
	}
	b, err := r.readByte()
	if err != nil {
		return Attr{}, r.truncated(ErrAttrSyntax, err)
	}
	if b != '=' {
		return Attr{}, r.syntaxErr(ErrAttrSyntax)
	}
	if err := r.skipSpace(); err != nil {
		return Attr{}, r.truncated(ErrAttrSyntax, err)
	}
	quote, err := r.readByte()
	if err != nil {
		return Attr{}, r.truncated(ErrAttrSyntax, err)
	}
	if quote != '"' && quote != '\'' {
		return Attr{}, r.syntaxErr(ErrAttrSyntax)
	}
	var raw []byte
	for {
		b, err := r.readByte()
		if err != nil {
			return Attr{}, r.truncated(ErrAttrSyntax, err)
		}
		if b == quote {
			break
		}
		raw = append(raw, b)
	}
	value, err := unescape(raw)
	if err != nil {
		return Attr{}, r.syntaxErr(err)
	}
	return Attr{Key: key, Value: value}, nil
}

func (r *Reader) readBang() (Event, error) {
	ok, err := r.tryConsume("--")
	if err != nil {
		return Event{}, r.truncated(errUnclosedComment, err)
	}
	if ok {
		text, err := r.readUntil("-->")
		if err != nil {
			return Event{}, r.truncated(errUnclosedComment, err)
		}
		return Event{Kind: KindComment, Text: text}, nil
	}
	ok, err = r.tryConsume("[CDATA[")
	if err != nil {
		return Event{}, r.truncated(errUnclosedCDATA, err)
	}
	if ok {
		text, err := r.readUntil("]]>")
		if err != nil {
			return Event{}, r.truncated(errUnclosedCDATA, err)
		}
		return Event{Kind: KindText, Text: text}, nil
	}
	return r.readDirective()
}

func (r *Reader) readPI() (Event, error) {
	text, err := r.readUntil("?>")
	if err != nil {
		return Event{}, r.truncated(errUnclosedPI, err)
	}
	return Event{Kind: KindPI, Text: text}, nil
}

// readDirective consumes a <!DOCTYPE ...> style directive. Angle brackets
// nest inside internal subsets and quoted strings may contain '>'.
func (r *Reader) readDirective() (Event, error) {
	var out []byte
	depth := 0
	var quote byte
	for {
		b, err := r.readByte()
		if err != nil {
			return Event{}, r.truncated(errUnclosedTag, err)
		}
		if quote != 0 {
			if b == quote {
				quote = 0
			}
			out = append(out, b)
			continue
		}
		switch b {
		case '"', '\'':
			quote = b
		case '<':
			depth++
		case '>':
			if depth == 0 {
				return Event{Kind: KindDirective, Text: out}, nil
			}
			depth--
		}
		out = append(out, b)
	}
}

func (r *Reader) readName() ([]byte, error) {
	b, err := r.readByte()
	if err != nil {
		return nil, r.truncated(errInvalidName, err)
	}
	if !isNameStart(b) {
		return nil, r.syntaxErr(errInvalidName)
	}
	name := []byte{b}
	for {
		b, err := r.readByte()
		if err == io.EOF {
			return name, nil
		}
		if err != nil {
			return nil, err
		}
		if !isNameByte(b) {
			r.unreadByte()
			return name, nil
		}
		name = append(name, b)
	}
}

func (r *Reader) skipSpace() error {
	for {
		b, err := r.readByte()
		if err != nil {
			return err
		}
		if !isSpace(b) {
			r.unreadByte()
			return nil
		}
	}
}

// tryConsume consumes s when it is the next input, without consuming
// anything on a mismatch or a short read.
func (r *Reader) tryConsume(s string) (bool, error) {
	peek, err := r.br.Peek(len(s))
	if len(peek) < len(s) {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	if string(peek) != s {
		return false, nil
	}
	if _, err := r.br.Discard(len(s)); err != nil {
		return false, err
	}
	r.offset += int64(len(s))
	return true, nil
}

// readUntil consumes input through term and returns everything before it.
func (r *Reader) readUntil(term string) ([]byte, error) {
	var out []byte
	for {
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
		if len(out) >= len(term) && string(out[len(out)-len(term):]) == term {
			return out[:len(out)-len(term)], nil
		}
	}
}

func (r *Reader) readByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err == nil {
		r.offset++
	}
	return b, err
}

func (r *Reader) unreadByte() {
	if r.br.UnreadByte() == nil {
		r.offset--
	}
}

func (r *Reader) syntaxErr(cause error) error {
	return &SyntaxError{Offset: r.start, Err: cause}
}

// truncated maps a mid-token EOF to a syntax error; other read failures pass
// through untouched.
func (r *Reader) truncated(cause error, err error) error {
	if err == io.EOF {
		return r.syntaxErr(cause)
	}
	return err
}

// attrErr reclassifies a name syntax failure as an attribute syntax error so
// callers can tell tag problems and attribute problems apart.
func (r *Reader) attrErr(err error) error {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		return r.syntaxErr(ErrAttrSyntax)
	}
	return err
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isNameStart(b byte) bool {
	return b == '_' || b == ':' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b >= 0x80
}

func isNameByte(b byte) bool {
	return isNameStart(b) || b == '-' || b == '.' || (b >= '0' && b <= '9')
}
