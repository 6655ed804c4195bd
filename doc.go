// Package treexml turns a stream of XML parse events into an owned tree of
// nodes and turns trees back into XML text.
//
// Parse and ParseString cover the common case of reading a whole document:
//
//	node, err := treexml.ParseString(`<player name="ada" score="3"/>`)
//
// ReadFrom accepts any EventSource, so the tree builder is not tied to one
// tokenizer. On the way out, WriteTo and Render flatten a tree back into
// markup, collapsing childless, contentless elements into self-closing
// tags. Programmatic construction goes through NodeBuilder:
//
//	node := treexml.NewNode("join").
//		Attribute("gameType", "default").
//		Build()
//
// Nodes are immutable once built. The package keeps whole documents in
// memory; it is meant for small protocol payloads and configuration
// snippets, not for streaming gigabyte feeds.
package treexml
