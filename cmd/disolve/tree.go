package main

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/disolve"
)

// evaluable is an expression or an assignment.
type evaluable interface {
	Eval(*disolve.Context) (*disolve.Node, error)
	Unknowns(*disolve.Context) []string
	String() string
}

var (
	_ evaluable = (*disolve.Node)(nil)
	_ evaluable = (*disolve.Assignment)(nil)
)

// document is a decoded input document.
type document struct {
	knowns map[string]float64
	exprs  []evaluable
}

// decodeDocument decodes a YAML document of expression trees.
func decodeDocument(data []byte) (*document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("document must be a mapping with knowns and exprs")
	}
	var doc document
	for i := 0; i < len(node.Content)-1; i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "knowns":
			if err := val.Decode(&doc.knowns); err != nil {
				return nil, fmt.Errorf("line %d: knowns: %w", val.Line, err)
			}
		case "exprs":
			if val.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: exprs must be a list", val.Line)
			}
			for _, c := range val.Content {
				e, err := decodeItem(c)
				if err != nil {
					return nil, err
				}
				doc.exprs = append(doc.exprs, e)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	return &doc, nil
}

// decodeItem decodes an entry of exprs, which may be an assignment.
func decodeItem(n *yaml.Node) (evaluable, error) {
	n = resolveAlias(n)
	if n.Kind == yaml.MappingNode {
		m := mapping(n)
		if v, ok := m["for"]; ok {
			e, ok := m["expr"]
			if !ok || len(m) != 2 {
				return nil, fmt.Errorf("line %d: assignment needs exactly for and expr", n.Line)
			}
			if v.Kind != yaml.ScalarNode || v.Value == "" {
				return nil, fmt.Errorf("line %d: assigned variable must be a name", v.Line)
			}
			x, err := decodeTerm(e)
			if err != nil {
				return nil, err
			}
			return disolve.For(v.Value, x), nil
		}
	}
	return decodeTerm(n)
}

// decodeTerm decodes an expression node.
func decodeTerm(n *yaml.Node) (*disolve.Node, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float":
			var v float64
			if err := n.Decode(&v); err != nil {
				return nil, fmt.Errorf("line %d: %w", n.Line, err)
			}
			return disolve.Num(v), nil
		case "!!str":
			if n.Value == "" {
				return nil, fmt.Errorf("line %d: empty variable name", n.Line)
			}
			if _, err := disolve.ParseOperator(n.Value); err == nil {
				return nil, fmt.Errorf("line %d: operator %q where an expression belongs", n.Line, n.Value)
			}
			return disolve.Var(n.Value), nil
		}
		return nil, fmt.Errorf("line %d: %s is not a number or name", n.Line, n.ShortTag())
	case yaml.SequenceNode:
		terms, err := decodeTerms(n)
		if err != nil {
			return nil, err
		}
		e, err := disolve.New(terms...)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return e, nil
	case yaml.MappingNode:
		m := mapping(n)
		if g, ok := m["group"]; ok {
			if len(m) != 1 || g.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: group must be a single list", n.Line)
			}
			terms, err := decodeTerms(g)
			if err != nil {
				return nil, err
			}
			e, err := disolve.Group(terms...)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", g.Line, err)
			}
			return e, nil
		}
		name, ok := m["call"]
		arg, hasArg := m["arg"]
		if !ok || !hasArg || len(m) != 2 {
			return nil, fmt.Errorf("line %d: mapping must be a group or a call with arg", n.Line)
		}
		a, err := decodeTerm(arg)
		if err != nil {
			return nil, err
		}
		e, err := disolve.Call(name.Value, a)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", name.Line, err)
		}
		return e, nil
	}
	return nil, fmt.Errorf("line %d: cannot decode expression", n.Line)
}

// decodeTerms decodes the alternating operands and operators of a list.
// String scalars are passed through as strings so that the constructor checks
// the alternation and reports bad symbols.
func decodeTerms(n *yaml.Node) ([]any, error) {
	terms := make([]any, 0, len(n.Content))
	for _, c := range n.Content {
		c = resolveAlias(c)
		if c.Kind == yaml.ScalarNode && c.ShortTag() == "!!str" {
			terms = append(terms, c.Value)
			continue
		}
		e, err := decodeTerm(c)
		if err != nil {
			return nil, err
		}
		terms = append(terms, e)
	}
	return terms, nil
}

// mapping returns the key-value pairs of a mapping node.
func mapping(n *yaml.Node) map[string]*yaml.Node {
	m := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i < len(n.Content)-1; i += 2 {
		m[n.Content[i].Value] = n.Content[i+1]
	}
	return m
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
