package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/disolve"
)

// options are the command's flags.
type options struct {
	given    []string
	verb     string
	echo     bool
	unknowns bool
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "disolve [file]",
		Short: "Evaluate and reduce expression trees",
		Long: `disolve evaluates the expression trees in a YAML document against the
variables it knows, printing a number for each fully known expression and the
reduced expression otherwise. With no file, the document is read from stdin.

A document has a knowns mapping and an exprs list:

  knowns: {m: 2, b: 1}
  exprs:
    - [m, "*", x, "+", b]          # combination
    - {group: [3, "+", y]}         # (3 + y)
    - {call: sqrt, arg: [x, "^", 2]}
    - {for: y, expr: [[m, "*", x], "+", b]}

Quote operators, since * and % are special in YAML.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &opts)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&opts.given, "given", nil, "name=value variable definition (any number of times)")
	f.StringVar(&opts.verb, "fmt", "%g", "result formatting string")
	f.BoolVar(&opts.echo, "echo", false, "print each expression before its result")
	f.BoolVar(&opts.unknowns, "unknowns", false, "print the unknown variables of each expression")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log debugging information")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	in := cmd.InOrStdin()
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in, name = f, args[0]
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	logger.Debug("loaded document", slog.String("input", name), slog.Int("exprs", len(doc.exprs)), slog.Int("knowns", len(doc.knowns)))

	ctx := disolve.NewContext(disolve.SetVars(doc.knowns))
	for _, d := range opts.given {
		nm, v, err := parseGiven(d)
		if err != nil {
			return err
		}
		ctx.Set(nm, v)
	}

	out := cmd.OutOrStdout()
	verb := opts.verb + "\n"
	for _, e := range doc.exprs {
		if opts.echo {
			fmt.Fprintf(out, "%v : ", e)
		}
		if opts.unknowns {
			u := e.Unknowns(ctx)
			logger.Debug("unknowns", slog.String("expr", e.String()), slog.Any("names", u))
			fmt.Fprintf(out, "[%s] ", strings.Join(u, ", "))
		}
		r, err := e.Eval(ctx)
		if err != nil {
			logger.Debug("evaluation failed", slog.String("expr", e.String()), slog.String("error", err.Error()))
			fmt.Fprintln(out, err)
			continue
		}
		if v, ok := r.Value(); ok {
			fmt.Fprintf(out, verb, v)
			continue
		}
		logger.Debug("reduced", slog.String("expr", e.String()), slog.String("result", r.String()))
		fmt.Fprintln(out, r)
	}
	return nil
}

// parseGiven parses a name=value variable definition.
func parseGiven(s string) (string, float64, error) {
	d := strings.SplitN(s, "=", 2)
	if len(d) != 2 {
		return "", 0, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	nm := strings.TrimSpace(d[0])
	if nm == "" {
		return "", 0, fmt.Errorf("empty variable name in %q", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(d[1]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("setting %s: %w", nm, err)
	}
	return nm, v, nil
}
