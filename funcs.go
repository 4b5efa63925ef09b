package disolve

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. It should follow IEEE-754
// conventions for arguments outside its domain, e.g. returning NaN, rather
// than panicking.
type Func func(float64) float64

// mathfuncs is the default function namespace.
var mathfuncs = map[string]Func{
	"abs":   math.Abs,
	"acos":  math.Acos,
	"acosh": math.Acosh,
	"asin":  math.Asin,
	"asinh": math.Asinh,
	"atan":  math.Atan,
	"atanh": math.Atanh,
	"cbrt":  math.Cbrt,
	"ceil":  math.Ceil,
	"cos":   math.Cos,
	"cosh":  math.Cosh,
	"exp":   math.Exp,
	"exp2":  math.Exp2,
	"expm1": math.Expm1,
	"floor": math.Floor,
	"log":   math.Log,
	"log10": math.Log10,
	"log1p": math.Log1p,
	"log2":  math.Log2,
	"round": math.Round,
	"sin":   math.Sin,
	"sinh":  math.Sinh,
	"sqrt":  math.Sqrt,
	"tan":   math.Tan,
	"tanh":  math.Tanh,
	"trunc": math.Trunc,
}

// enginefuncs are consulted when a name is in neither the context nor the
// default namespace.
var enginefuncs = map[string]Func{
	"ln":  ln,
	"lg":  lg,
	"sec": func(x float64) float64 { return 1 / math.Cos(x) },
	"csc": func(x float64) float64 { return 1 / math.Sin(x) },
	"cot": func(x float64) float64 { return 1 / math.Tan(x) },
	"sgn": sgn,
}

// DefaultFuncs returns a copy of the default function namespace. It does not
// include the engine-defined fallbacks.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(mathfuncs))
	for k, v := range mathfuncs {
		m[k] = v
	}
	return m
}

// bigprec is the precision of the intermediate results of ln and lg. It leaves
// enough guard bits that the results round correctly to float64.
const bigprec = 96

func bignum(x float64) *big.Float {
	return new(big.Float).SetPrec(bigprec).SetFloat64(x)
}

// logspecial handles the arguments for which big.Float cannot represent the
// logarithm. ok is false for finite positive x.
func logspecial(x float64) (r float64, ok bool) {
	switch {
	case math.IsNaN(x), x < 0:
		return math.NaN(), true
	case x == 0:
		return math.Inf(-1), true
	case math.IsInf(x, 1):
		return x, true
	}
	return 0, false
}

// ln is the natural logarithm.
func ln(x float64) float64 {
	if r, ok := logspecial(x); ok {
		return r
	}
	out := new(big.Float).SetPrec(bigprec)
	bigfloat.Log(out, bignum(x))
	r, _ := out.Float64()
	return r
}

// lg is the base-10 logarithm.
func lg(x float64) float64 {
	if r, ok := logspecial(x); ok {
		return r
	}
	out := new(big.Float).SetPrec(bigprec)
	bigfloat.Log(out, bignum(x))
	ten := new(big.Float).SetPrec(bigprec)
	bigfloat.Log(ten, bignum(10))
	r, _ := out.Quo(out, ten).Float64()
	return r
}

func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	// Zeros and NaN are their own signs.
	return x
}
