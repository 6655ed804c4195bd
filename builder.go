package treexml

import "maps"

// Marshaler is implemented by values that can convert themselves into a
// node. NodeBuilder.TryChild uses it to attach arbitrary values as child
// elements without tying them to this package's types.
type Marshaler interface {
	MarshalNode() (*Node, error)
}

// NodeBuilder assembles a node field by field. Every method returns the
// builder so calls chain; Build produces the finished node. The zero value
// is not usable, start with NewNode.
type NodeBuilder struct {
	name     string
	content  string
	attrs    map[string]string
	children []*Node
}

// NewNode starts a builder for an element with the given tag name.
func NewNode(name string) *NodeBuilder {
	return &NodeBuilder{
		name:  name,
		attrs: make(map[string]string),
	}
}

// Name replaces the tag name.
func (b *NodeBuilder) Name(name string) *NodeBuilder {
	b.name = name
	return b
}

// Content replaces the element content.
func (b *NodeBuilder) Content(content string) *NodeBuilder {
	b.content = content
	return b
}

// Attribute sets a single attribute, overwriting any previous value stored
// under key.
func (b *NodeBuilder) Attribute(key, value string) *NodeBuilder {
	b.attrs[key] = value
	return b
}

// Attributes merges all pairs from attrs into the builder, overwriting on
// duplicate keys.
func (b *NodeBuilder) Attributes(attrs map[string]string) *NodeBuilder {
	maps.Copy(b.attrs, attrs)
	return b
}

// Child appends a single child element.
func (b *NodeBuilder) Child(child *Node) *NodeBuilder {
	b.children = append(b.children, child)
	return b
}

// Children appends several child elements in order.
func (b *NodeBuilder) Children(children ...*Node) *NodeBuilder {
	b.children = append(b.children, children...)
	return b
}

// OptionChild appends child when it is non-nil and does nothing otherwise.
// It keeps call chains straight when a child is only sometimes present.
func (b *NodeBuilder) OptionChild(child *Node) *NodeBuilder {
	if child != nil {
		b.children = append(b.children, child)
	}
	return b
}

// TryChild converts m into a node and appends it. When the conversion fails
// the builder is returned unchanged alongside the error, so a chain can be
// resumed after handling it.
func (b *NodeBuilder) TryChild(m Marshaler) (*NodeBuilder, error) {
	child, err := m.MarshalNode()
	if err != nil {
		return b, err
	}
	b.children = append(b.children, child)
	return b, nil
}

// Build copies the current state into an immutable node. The builder stays
// usable afterwards; later changes do not show up in nodes built earlier.
func (b *NodeBuilder) Build() *Node {
	node := &Node{
		name:    b.name,
		content: b.content,
		attrs:   maps.Clone(b.attrs),
	}
	if len(b.children) > 0 {
		node.children = make([]*Node, len(b.children))
		copy(node.children, b.children)
	}
	return node
}
