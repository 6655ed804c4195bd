package xmlevent

// Kind identifies the kind of a parse event.
type Kind byte

const (
	KindNone Kind = iota
	// KindStart is an opening tag, <name k="v">.
	KindStart
	// KindEmpty is a self-closing tag, <name k="v"/>.
	KindEmpty
	// KindEnd is a closing tag, </name>.
	KindEnd
	// KindText is a run of character data, including CDATA sections.
	KindText
	// KindComment is a <!-- --> comment.
	KindComment
	// KindPI is a processing instruction, including the XML declaration.
	KindPI
	// KindDirective is a <!DOCTYPE> or similar directive.
	KindDirective
)

// String returns a stable name for the kind, suitable for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindStart:
		return "Start"
	case KindEmpty:
		return "Empty"
	case KindEnd:
		return "End"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindPI:
		return "PI"
	case KindDirective:
		return "Directive"
	default:
		return "Unknown"
	}
}

// Attr is one raw attribute key/value pair. Both slices are owned by the
// receiver of the event; values are already unescaped but not validated as
// UTF-8.
type Attr struct {
	Key   []byte
	Value []byte
}

// NewAttr builds an attribute pair from strings.
func NewAttr(key, value string) Attr {
	return Attr{Key: []byte(key), Value: []byte(value)}
}

// Event is one parse notification. Name and Attrs are set for Start, Empty
// and End (End carries no attributes); Text is set for Text, Comment, PI and
// Directive. All byte slices are copies owned by the caller.
type Event struct {
	Kind  Kind
	Name  []byte
	Attrs []Attr
	Text  []byte
}

// Start builds a start-tag event, mainly for tests and programmatic sources.
func Start(name string, attrs ...Attr) Event {
	return Event{Kind: KindStart, Name: []byte(name), Attrs: attrs}
}

// Empty builds a self-closing-tag event.
func Empty(name string, attrs ...Attr) Event {
	return Event{Kind: KindEmpty, Name: []byte(name), Attrs: attrs}
}

// End builds a closing-tag event.
func End(name string) Event {
	return Event{Kind: KindEnd, Name: []byte(name)}
}

// Text builds a character-data event.
func Text(s string) Event {
	return Event{Kind: KindText, Text: []byte(s)}
}
