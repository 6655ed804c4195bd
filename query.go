package treexml

import (
	"strconv"

	"github.com/casbin/govaluate"
	"github.com/pkg/errors"
)

// Match evaluates a predicate expression against this node. Attribute keys
// resolve as string parameters, so `kind == 'error'` matches a node whose
// kind attribute holds "error". Absent attributes read as the empty string.
//
// Expressions also see four helper functions:
//
//	name()     tag name of the node under test
//	text()     content of the node under test
//	has(key)   whether the attribute key is present
//	num(value) value converted to a number
func (node *Node) Match(predicate string) (bool, error) {
	eval, err := compilePredicate(predicate)
	if err != nil {
		return false, err
	}
	return eval(node)
}

// Select walks the subtree in document order, this node included, and
// collects every node satisfying the predicate. The predicate is compiled
// once; the walk is iterative so deeply nested documents cannot exhaust the
// call stack.
func (node *Node) Select(predicate string) ([]*Node, error) {
	eval, err := compilePredicate(predicate)
	if err != nil {
		return nil, err
	}
	var matches []*Node
	stack := []*Node{node}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ok, err := eval(current)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, current)
		}
		// Children go on in reverse so they pop in document order.
		for idx := len(current.children) - 1; idx >= 0; idx-- {
			stack = append(stack, current.children[idx])
		}
	}
	return matches, nil
}

// compilePredicate parses the expression once and returns an evaluator that
// can be applied to any number of nodes. The helper functions close over a
// shared slot holding the node currently under test.
func compilePredicate(predicate string) (func(*Node) (bool, error), error) {
	var current *Node
	functions := map[string]govaluate.ExpressionFunction{
		"name": func(arguments ...interface{}) (interface{}, error) {
			return current.name, nil
		},
		"text": func(arguments ...interface{}) (interface{}, error) {
			return current.content, nil
		},
		"has": func(arguments ...interface{}) (interface{}, error) {
			if len(arguments) != 1 {
				return nil, errors.New("has expects exactly one attribute key")
			}
			key, ok := arguments[0].(string)
			if !ok {
				return nil, errors.Errorf("has expects a string key, got %v", arguments[0])
			}
			return current.HasAttribute(key), nil
		},
		"num": func(arguments ...interface{}) (interface{}, error) {
			if len(arguments) != 1 {
				return nil, errors.New("num expects exactly one value")
			}
			switch value := arguments[0].(type) {
			case float64:
				return value, nil
			case string:
				parsed, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, errors.Wrapf(err, "num(%q)", value)
				}
				return parsed, nil
			default:
				return nil, errors.Errorf("num expects a string or number, got %v", value)
			}
		},
	}
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(predicate, functions)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling predicate %q", predicate)
	}
	return func(node *Node) (bool, error) {
		current = node
		result, err := expr.Eval(attributeParameters{node})
		if err != nil {
			return false, errors.Wrapf(err, "evaluating predicate %q on <%s>", predicate, node.name)
		}
		verdict, ok := result.(bool)
		if !ok {
			return false, errors.Errorf("predicate %q evaluated to %v, want a boolean", predicate, result)
		}
		return verdict, nil
	}, nil
}

// attributeParameters adapts a node's attributes to the expression
// parameter interface. Absent keys read as "" so predicates stay total.
type attributeParameters struct {
	node *Node
}

func (p attributeParameters) Get(name string) (interface{}, error) {
	return p.node.attrs[name], nil
}
