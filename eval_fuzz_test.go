//go:build go1.18
// +build go1.18

package disolve_test

import (
	"testing"

	"github.com/zephyrtronium/disolve"
)

var fuzzops = [...]disolve.Operator{disolve.Add, disolve.Sub, disolve.Mul, disolve.Div, disolve.Mod, disolve.Pow}

// FuzzEval checks that reducing with some variables and then evaluating with
// the rest matches evaluating with all of them at once.
func FuzzEval(f *testing.F) {
	f.Add(1.0, 2.0, 3.0, 4.0, uint16(0), uint8(0))
	f.Add(2.0, 0.0, 5.0, -1.0, uint16(27), uint8(5))
	f.Add(0.1, 0.2, 0.3, 7.0, uint16(1295), uint8(10))
	f.Fuzz(func(t *testing.T, w, x, y, z float64, sel uint16, known uint8) {
		o := func(i int) disolve.Operator {
			s := int(sel)
			for ; i > 0; i-- {
				s /= len(fuzzops)
			}
			return fuzzops[s%len(fuzzops)]
		}
		e := disolve.MustNew("w", o(0), "x", o(1), disolve.MustNew("y", o(2), "z"), o(3), "x")
		vals := map[string]float64{"w": w, "x": x, "y": y, "z": z}
		var k1, k2 []disolve.ContextOption
		for i, name := range []string{"w", "x", "y", "z"} {
			if known&(1<<i) != 0 {
				k1 = append(k1, disolve.SetVar(name, vals[name]))
			} else {
				k2 = append(k2, disolve.SetVar(name, vals[name]))
			}
		}
		all, err := e.Float(disolve.NewContext(disolve.SetVars(vals)))
		if err != nil {
			t.Fatal(err)
		}
		r, err := e.Eval(disolve.NewContext(k1...))
		if err != nil {
			t.Fatal(err)
		}
		got, err := r.Float(disolve.NewContext(k2...))
		if err != nil {
			t.Fatalf("%v reduced to %v, which gave %v", e, r, err)
		}
		if !same(got, all) {
			t.Errorf("%v reduced to %v: got %g, want %g", e, r, got, all)
		}
		if c := e.Clone(); c.String() != e.String() {
			t.Errorf("clone %v differs from %v", c, e)
		}
	})
}
