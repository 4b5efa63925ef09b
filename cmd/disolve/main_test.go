package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineDoc = `
knowns: {m: 2, b: 1}
exprs:
  - [m, "*", x, "+", b]
  - {for: y, expr: [[m, "*", x], "+", b]}
  - [y, "-", 1]
  - {call: sqrt, arg: x}
  - {call: nope, arg: 1}
`

// execute runs the command with args and stdin, returning its output.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errout bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errout.String(), err
}

func TestRunReduces(t *testing.T) {
	out, _, err := execute(t, lineDoc)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "2 * x + 1", lines[0])
	assert.Equal(t, "2x + 1", lines[1])
	// y was not assigned, so it stays unknown.
	assert.Equal(t, "y - 1", lines[2])
	assert.Contains(t, lines[3], "unresolved argument to sqrt")
	assert.Contains(t, lines[4], `undefined function: "nope"`)
}

func TestRunGiven(t *testing.T) {
	out, _, err := execute(t, lineDoc, "--given", "x=3", "--given", "b = 0")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "6", lines[0])
	assert.Equal(t, "6", lines[1])
	// The assignment made y known to later expressions.
	assert.Equal(t, "5", lines[2])
	assert.Equal(t, "1.7320508075688772", lines[3])
}

func TestRunEchoUnknowns(t *testing.T) {
	doc := "exprs:\n  - [a, \"+\", b, \"*\", a]\n"
	out, _, err := execute(t, doc, "--echo", "--unknowns", "--given", "b=2")
	require.NoError(t, err)
	assert.Equal(t, "a + b * a : [a, a] a + 2 * a\n", out)
}

func TestRunFormat(t *testing.T) {
	out, _, err := execute(t, "exprs: [[1, \"/\", 3]]", "--fmt", "%.3f")
	require.NoError(t, err)
	assert.Equal(t, "0.333\n", out)
}

func TestRunFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(name, []byte("knowns: {x: 10}\nexprs: [[x, \"+\", 10], [x, \"/\", 2]]\n"), 0o644))
	out, _, err := execute(t, "", name)
	require.NoError(t, err)
	assert.Equal(t, "20\n5\n", out)
}

func TestRunVerbose(t *testing.T) {
	_, errout, err := execute(t, "exprs: [[x, \"+\", 1]]", "-v")
	require.NoError(t, err)
	assert.Contains(t, errout, "loaded document")
	assert.Contains(t, errout, "reduced")
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
	}{
		{"bad-given", "exprs: [1]", []string{"--given", "x"}},
		{"bad-given-value", "exprs: [1]", []string{"--given", "x=one"}},
		{"empty-given-name", "exprs: [1]", []string{"--given", "=1"}},
		{"bad-document", "exprs: 1", nil},
		{"missing-file", "", []string{filepath.Join(t.TempDir(), "missing.yaml")}},
		{"too-many-args", "", []string{"a", "b"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := execute(t, c.stdin, c.args...)
			assert.Error(t, err)
		})
	}
}

func TestParseGiven(t *testing.T) {
	nm, v, err := parseGiven(" rate = 2.5e3 ")
	require.NoError(t, err)
	assert.Equal(t, "rate", nm)
	assert.Equal(t, 2500.0, v)
}
