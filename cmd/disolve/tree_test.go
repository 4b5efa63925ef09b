package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/disolve"
)

func TestDecodeDocument(t *testing.T) {
	src := `
knowns: {m: 2, b: 1, big: .inf}
exprs:
  - [m, "*", x, "+", b]
  - {group: [3, "+", y]}
  - {call: sqrt, arg: [x, "^", 2]}
  - {for: y, expr: [[m, "*", x], "+", b]}
  - x
  - 4.5
  - [[2, "*", x], "/", {group: [3, "+", y]}]
`
	doc, err := decodeDocument([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"m": 2, "b": 1, "big": doc.knowns["big"]}, doc.knowns)
	assert.True(t, doc.knowns["big"] > 1e308)

	want := []string{
		"m * x + b",
		"(3 + y)",
		"sqrt(x^2)",
		"y = mx + b",
		"x",
		"4.5",
		"2x / (3 + y)",
	}
	require.Len(t, doc.exprs, len(want))
	for i, e := range doc.exprs {
		assert.Equal(t, want[i], e.String(), "expression %d", i)
	}
	_, ok := doc.exprs[3].(*disolve.Assignment)
	assert.True(t, ok, "for entry did not decode as an assignment")
}

func TestDecodeDocumentAlias(t *testing.T) {
	src := `
exprs:
  - &sq [x, "^", 2]
  - [*sq, "+", *sq]
`
	doc, err := decodeDocument([]byte(src))
	require.NoError(t, err)
	require.Len(t, doc.exprs, 2)
	assert.Equal(t, "x^2 + x^2", doc.exprs[1].String())
}

func TestDecodeDocumentErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		// target, if not nil, is an error type the failure must unwrap to.
		target any
	}{
		{"not-yaml", "exprs: [", nil},
		{"not-mapping", "- 1", nil},
		{"unknown-key", "foo: 1", nil},
		{"exprs-not-list", "exprs: 1", nil},
		{"knowns-not-numbers", "knowns: {x: hello}", nil},
		{"bad-operator", `exprs: [[1, "&", 2]]`, new(*disolve.OperatorError)},
		{"trailing-operator", `exprs: [[1, "+"]]`, new(*disolve.SequenceError)},
		{"operator-first", `exprs: [["+", 1]]`, new(*disolve.SequenceError)},
		{"bare-operator", `exprs: ["+"]`, nil},
		{"bool", `exprs: [true]`, nil},
		{"null", `exprs: [~]`, nil},
		{"bad-mapping", `exprs: [{foo: 1}]`, nil},
		{"call-without-arg", `exprs: [{call: sqrt}]`, nil},
		{"group-not-list", `exprs: [{group: 1}]`, nil},
		{"empty-call", `exprs: [{call: "", arg: 1}]`, new(*disolve.FuncError)},
		{"for-without-expr", `exprs: [{for: y}]`, nil},
		{"for-list", `exprs: [{for: [y], expr: 1}]`, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc, err := decodeDocument([]byte(c.src))
			require.Error(t, err, "decoded %+v", doc)
			if c.target != nil {
				assert.True(t, errors.As(err, c.target), "%v does not unwrap to %T", err, c.target)
			}
		})
	}
}
