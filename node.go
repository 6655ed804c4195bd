package treexml

import (
	"iter"
	"maps"

	"github.com/pkg/errors"
)

// Node is one XML element: a tag name, the text directly inside the
// element, an attribute mapping and the child elements in document order.
// Nodes are immutable once obtained from Parse, ReadFrom or a NodeBuilder;
// every accessor that hands out internal state hands out a copy.
type Node struct {
	name     string
	content  string
	attrs    map[string]string
	children []*Node
}

// Name returns the tag name.
func (node *Node) Name() string {
	return node.name
}

// Content returns the text directly inside this element. Each text fragment
// was trimmed of surrounding whitespace before concatenation, so indentation
// between child elements never shows up here.
func (node *Node) Content() string {
	return node.content
}

// Attribute returns the value stored under key. An absent key yields a
// *MissingAttributeError naming both the key and this node.
func (node *Node) Attribute(key string) (string, error) {
	value, ok := node.attrs[key]
	if !ok {
		return "", errors.WithStack(&MissingAttributeError{Key: key, Node: node.name})
	}
	return value, nil
}

// HasAttribute reports whether key is present.
func (node *Node) HasAttribute(key string) bool {
	_, ok := node.attrs[key]
	return ok
}

// Attributes returns a copy of the attribute mapping.
func (node *Node) Attributes() map[string]string {
	return maps.Clone(node.attrs)
}

// Children yields the child elements in document order. The sequence is
// restartable, so it can be ranged over more than once.
func (node *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, child := range node.children {
			if !yield(child) {
				return
			}
		}
	}
}

// HasChildren reports whether the node has any child elements.
func (node *Node) HasChildren() bool {
	return len(node.children) > 0
}

// ChildCount returns the number of direct child elements.
func (node *Node) ChildCount() int {
	return len(node.children)
}

// ChildByName returns the first child carrying name. When no child matches
// it yields a *MissingChildError naming both the child and this node.
func (node *Node) ChildByName(name string) (*Node, error) {
	for _, child := range node.children {
		if child.name == name {
			return child, nil
		}
	}
	return nil, errors.WithStack(&MissingChildError{Name: name, Node: node.name})
}

// ChildrenByName yields the children carrying name in document order. An
// absent name yields an empty sequence rather than an error.
func (node *Node) ChildrenByName(name string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, child := range node.children {
			if child.name != name {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// ExpectName returns a *WrongNameError unless the node carries name. Code
// mapping nodes onto typed structures uses it as an entry guard.
func (node *Node) ExpectName(name string) error {
	if node.name != name {
		return errors.WithStack(&WrongNameError{Want: name, Got: node.name})
	}
	return nil
}

// Equal reports structural equality: same name, same content, same
// attribute pairs and pairwise equal children in the same order.
func (node *Node) Equal(other *Node) bool {
	if node == nil || other == nil {
		return node == other
	}
	if node.name != other.name || node.content != other.content {
		return false
	}
	if !maps.Equal(node.attrs, other.attrs) {
		return false
	}
	if len(node.children) != len(other.children) {
		return false
	}
	for idx, child := range node.children {
		if !child.Equal(other.children[idx]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the subtree rooted at this node.
func (node *Node) Clone() *Node {
	copyNode := &Node{
		name:    node.name,
		content: node.content,
		attrs:   maps.Clone(node.attrs),
	}
	if len(node.children) > 0 {
		copyNode.children = make([]*Node, len(node.children))
		for idx, child := range node.children {
			copyNode.children[idx] = child.Clone()
		}
	}
	return copyNode
}
