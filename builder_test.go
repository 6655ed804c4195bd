package treexml

import (
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// player marshals itself into a node, the way protocol types do.
type player struct {
	name  string
	score int
}

func (p player) MarshalNode() (*Node, error) {
	if p.name == "" {
		return nil, errors.New("player without a name")
	}
	return NewNode("player").
		Attribute("name", p.name).
		Attribute("score", strconv.Itoa(p.score)).
		Build(), nil
}

func TestNodeBuilder(t *testing.T) {
	t.Run("chained construction", func(t *testing.T) {
		node := NewNode("entry").
			Content("done").
			Attribute("round", "3").
			Attributes(map[string]string{"stage": "final", "round": "4"}).
			Child(NewNode("first").Build()).
			Children(NewNode("second").Build(), NewNode("third").Build()).
			Build()

		assert.Equal(t, "entry", node.Name())
		assert.Equal(t, "done", node.Content())
		round, err := node.Attribute("round")
		require.NoError(t, err)
		assert.Equal(t, "4", round)
		stage, err := node.Attribute("stage")
		require.NoError(t, err)
		assert.Equal(t, "final", stage)
		var names []string
		for child := range node.Children() {
			names = append(names, child.Name())
		}
		assert.Equal(t, []string{"first", "second", "third"}, names)
	})

	t.Run("name can be replaced", func(t *testing.T) {
		node := NewNode("draft").Name("final").Build()
		assert.Equal(t, "final", node.Name())
	})

	t.Run("option child", func(t *testing.T) {
		node := NewNode("a").
			OptionChild(nil).
			OptionChild(NewNode("b").Build()).
			OptionChild(nil).
			Build()
		assert.Equal(t, 1, node.ChildCount())
	})

	t.Run("try child attaches a converted value", func(t *testing.T) {
		b, err := NewNode("scores").TryChild(player{name: "ada", score: 17})
		require.NoError(t, err)
		node := b.Build()
		child, err := node.ChildByName("player")
		require.NoError(t, err)
		name, err := child.Attribute("name")
		require.NoError(t, err)
		assert.Equal(t, "ada", name)
	})

	t.Run("try child failure leaves the builder unchanged", func(t *testing.T) {
		b := NewNode("scores")
		_, err := b.TryChild(player{})
		require.EqualError(t, errors.Cause(err), "player without a name")
		b, err = b.TryChild(player{name: "bob", score: 9})
		require.NoError(t, err)
		node := b.Build()
		assert.Equal(t, 1, node.ChildCount())
	})

	t.Run("built nodes are detached from the builder", func(t *testing.T) {
		b := NewNode("a").Attribute("k", "1")
		first := b.Build()
		b.Attribute("k", "2").Child(NewNode("late").Build())
		second := b.Build()

		value, err := first.Attribute("k")
		require.NoError(t, err)
		assert.Equal(t, "1", value)
		assert.False(t, first.HasChildren())

		value, err = second.Attribute("k")
		require.NoError(t, err)
		assert.Equal(t, "2", value)
		assert.Equal(t, 1, second.ChildCount())
	})
}
