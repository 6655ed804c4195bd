// Package xmlevent is the low-level event layer underneath the tree-xml
// node type: a streaming tokenizer that turns raw bytes into a flat sequence
// of parse events, and a sink writer that turns structured write calls back
// into markup.
//
// The Reader reports start tags, self-closing tags, end tags and character
// data without checking that they nest; folding the flat sequence into a
// tree is the treexml package's job. Comments, processing instructions and
// directives are reported as their own kinds so consumers can skip them.
// The five predefined entities and numeric character references are resolved
// in text and attribute values; anything beyond that, including character
// set conversion, is out of scope.
package xmlevent
