package xmlevent

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, r *Reader) Event {
	t.Helper()
	ev, err := r.Next()
	require.NoError(t, err)
	return ev
}

func TestReader(t *testing.T) {
	t.Run("document walk", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<root a="1"><child/>text</root>`))

		ev := nextEvent(t, r)
		require.Equal(t, KindStart, ev.Kind)
		require.Equal(t, "root", string(ev.Name))
		require.Len(t, ev.Attrs, 1)
		require.Equal(t, "a", string(ev.Attrs[0].Key))
		require.Equal(t, "1", string(ev.Attrs[0].Value))

		ev = nextEvent(t, r)
		require.Equal(t, KindEmpty, ev.Kind)
		require.Equal(t, "child", string(ev.Name))
		require.Empty(t, ev.Attrs)

		ev = nextEvent(t, r)
		require.Equal(t, KindText, ev.Kind)
		require.Equal(t, "text", string(ev.Text))

		ev = nextEvent(t, r)
		require.Equal(t, KindEnd, ev.Kind)
		require.Equal(t, "root", string(ev.Name))

		_, err := r.Next()
		require.ErrorIs(t, err, io.EOF)
		_, err = r.Next()
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("self closing with spacing", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<join gameType="default" />`))
		ev := nextEvent(t, r)
		require.Equal(t, KindEmpty, ev.Kind)
		require.Equal(t, "join", string(ev.Name))
		require.Len(t, ev.Attrs, 1)
		require.Equal(t, "gameType", string(ev.Attrs[0].Key))
		require.Equal(t, "default", string(ev.Attrs[0].Value))
	})

	t.Run("multiple attributes", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<player name='ada' score="3">`))
		ev := nextEvent(t, r)
		require.Equal(t, KindStart, ev.Kind)
		require.Len(t, ev.Attrs, 2)
		require.Equal(t, "name", string(ev.Attrs[0].Key))
		require.Equal(t, "ada", string(ev.Attrs[0].Value))
		require.Equal(t, "score", string(ev.Attrs[1].Key))
		require.Equal(t, "3", string(ev.Attrs[1].Value))
	})

	t.Run("entities in text and attributes", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<a v="&lt;&quot;&gt;">x &amp; y &#65;&#x42;</a>`))
		ev := nextEvent(t, r)
		require.Equal(t, `<">`, string(ev.Attrs[0].Value))
		ev = nextEvent(t, r)
		require.Equal(t, "x & y AB", string(ev.Text))
	})

	t.Run("cdata is raw text", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<a><![CDATA[1 < 2 && 3 > 2]]></a>`))
		nextEvent(t, r)
		ev := nextEvent(t, r)
		require.Equal(t, KindText, ev.Kind)
		require.Equal(t, "1 < 2 && 3 > 2", string(ev.Text))
	})

	t.Run("comment", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<!-- note -->`))
		ev := nextEvent(t, r)
		require.Equal(t, KindComment, ev.Kind)
		require.Equal(t, " note ", string(ev.Text))
	})

	t.Run("declaration and doctype", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<?xml version="1.0"?><!DOCTYPE html><html></html>`))
		ev := nextEvent(t, r)
		require.Equal(t, KindPI, ev.Kind)
		require.Equal(t, `xml version="1.0"`, string(ev.Text))
		ev = nextEvent(t, r)
		require.Equal(t, KindDirective, ev.Kind)
		require.Equal(t, "DOCTYPE html", string(ev.Text))
		ev = nextEvent(t, r)
		require.Equal(t, KindStart, ev.Kind)
	})

	t.Run("whitespace text is reported", func(t *testing.T) {
		r := NewReader(strings.NewReader("<a>\n  <b/>\n</a>"))
		nextEvent(t, r)
		ev := nextEvent(t, r)
		require.Equal(t, KindText, ev.Kind)
		require.Equal(t, "\n  ", string(ev.Text))
	})

	t.Run("unbalanced tags pass through", func(t *testing.T) {
		// Nesting is the tree builder's concern, not the tokenizer's.
		r := NewReader(strings.NewReader(`</stray><a>`))
		ev := nextEvent(t, r)
		require.Equal(t, KindEnd, ev.Kind)
		require.Equal(t, "stray", string(ev.Name))
		ev = nextEvent(t, r)
		require.Equal(t, KindStart, ev.Kind)
	})

	t.Run("truncated tag", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<root a="1`))
		_, err := r.Next()
		var syn *SyntaxError
		require.ErrorAs(t, err, &syn)
	})

	t.Run("attribute without value", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<ok/><a checked>`))
		nextEvent(t, r)
		_, err := r.Next()
		require.ErrorIs(t, err, ErrAttrSyntax)
		var syn *SyntaxError
		require.ErrorAs(t, err, &syn)
		require.Equal(t, int64(5), syn.Offset)
	})

	t.Run("unquoted attribute value", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<a b=1>`))
		_, err := r.Next()
		require.ErrorIs(t, err, ErrAttrSyntax)
	})

	t.Run("unknown entity", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<a>&bogus;</a>`))
		nextEvent(t, r)
		_, err := r.Next()
		require.ErrorIs(t, err, ErrInvalidEntity)
	})

	t.Run("surrogate character reference", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<a>&#xD800;</a>`))
		nextEvent(t, r)
		_, err := r.Next()
		require.ErrorIs(t, err, ErrInvalidCharRef)
	})

	t.Run("errors are sticky", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<a b=bad><ok/>`))
		_, err := r.Next()
		require.ErrorIs(t, err, ErrAttrSyntax)
		_, again := r.Next()
		require.Equal(t, err, again)
	})

	t.Run("events own their bytes", func(t *testing.T) {
		r := NewReader(strings.NewReader(`<first/><second/>`))
		first := nextEvent(t, r)
		second := nextEvent(t, r)
		require.Equal(t, "first", string(first.Name))
		require.Equal(t, "second", string(second.Name))
	})
}
