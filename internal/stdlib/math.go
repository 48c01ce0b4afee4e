package stdlib

import (
	"math"
	"math/bits"
	"math/rand"
	"time"

	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/rng"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

var mathRandSrc = rand.New(rand.NewSource(time.Now().UnixNano()))

func mathRand() float64 { return mathRandSrc.Float64() }

func invalidSeedErr() error { return aerrors.NewInvalidSeed() }

// MathNamespace builds the Math: bindings (spec §4.6): JS Math-style
// constants, a one-to-one IEEE-754 function table, rnd, and gen_rng
// (seeded via internal/rng).
func MathNamespace() map[string]runtime.Value {
	m := map[string]runtime.Value{
		"E":        runtime.Num(math.E),
		"LN2":      runtime.Num(math.Ln2),
		"LN10":     runtime.Num(math.Log(10)),
		"LOG2E":    runtime.Num(1 / math.Ln2),
		"LOG10E":   runtime.Num(1 / math.Log(10)),
		"PI":       runtime.Num(math.Pi),
		"SQRT1_2":  runtime.Num(math.Sqrt(0.5)),
		"SQRT2":    runtime.Num(math.Sqrt2),
		"Infinity": runtime.Num(math.Inf(1)),
	}

	unary := map[string]func(float64) float64{
		"abs": math.Abs, "acos": math.Acos, "acosh": math.Acosh,
		"asin": math.Asin, "asinh": math.Asinh, "atan": math.Atan, "atanh": math.Atanh,
		"cbrt": math.Cbrt, "ceil": math.Ceil, "cos": math.Cos, "cosh": math.Cosh,
		"exp": math.Exp, "expm1": math.Expm1, "floor": math.Floor,
		"fround": func(x float64) float64 { return float64(float32(x)) },
		"log":    math.Log, "log1p": math.Log1p, "log2": math.Log2, "log10": math.Log10,
		"round": mathRound, "sign": mathSign, "sin": math.Sin, "sinh": math.Sinh,
		"sqrt": math.Sqrt, "tan": math.Tan, "tanh": math.Tanh, "trunc": math.Trunc,
		"clz32": func(x float64) float64 { return float64(bits.LeadingZeros32(uint32(int64(x)))) },
	}
	for name, f := range unary {
		f := f
		m[name] = numOp1("Math:"+name, func(a float64) (float64, error) { return f(a), nil })
	}

	m["atan2"] = numOp2("Math:atan2", func(a, b float64) (float64, error) { return math.Atan2(a, b), nil })
	m["hypot"] = runtime.NewNativeSync("Math:hypot", func(args []runtime.Value) (runtime.Value, error) {
		var vs []float64
		for _, a := range args {
			n, err := expectNum(a)
			if err != nil {
				return nil, err
			}
			vs = append(vs, n)
		}
		sum := 0.0
		for _, v := range vs {
			sum += v * v
		}
		return runtime.Num(math.Sqrt(sum)), nil
	})
	m["imul"] = numOp2("Math:imul", func(a, b float64) (float64, error) {
		return float64(int32(int64(a)) * int32(int64(b))), nil
	})
	m["max"] = runtime.NewNativeSync("Math:max", func(args []runtime.Value) (runtime.Value, error) {
		return reduceNums(args, math.Inf(-1), math.Max)
	})
	m["min"] = runtime.NewNativeSync("Math:min", func(args []runtime.Value) (runtime.Value, error) {
		return reduceNums(args, math.Inf(1), math.Min)
	})
	m["pow"] = numOp2("Math:pow", func(a, b float64) (float64, error) { return math.Pow(a, b), nil })

	m["rnd"] = runtime.NewNativeSync("Math:rnd", func(args []runtime.Value) (runtime.Value, error) {
		if len(args) == 0 {
			return runtime.Num(mathRand()), nil
		}
		min, err := expectNum(arg(args, 0))
		if err != nil {
			return nil, err
		}
		max, err := expectNum(arg(args, 1))
		if err != nil {
			return nil, err
		}
		lo, hi := math.Ceil(min), math.Floor(max)
		if hi < lo {
			return runtime.Num(lo), nil
		}
		return runtime.Num(lo + math.Floor(mathRand()*(hi-lo+1))), nil
	})

	m["gen_rng"] = runtime.NewNativeSync("Math:gen_rng", func(args []runtime.Value) (runtime.Value, error) {
		seed := ""
		switch s := arg(args, 0).(type) {
		case *runtime.StrValue:
			seed = s.S
		case *runtime.NumValue:
			seed = formatSeed(s.N)
		default:
			return nil, invalidSeedErr()
		}
		src := rng.New(seed)
		return runtime.NewNativeSync("<gen_rng>", func(args []runtime.Value) (runtime.Value, error) {
			if len(args) == 0 {
				return runtime.Num(src.Next()), nil
			}
			min, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			max, err := expectNum(arg(args, 1))
			if err != nil {
				return nil, err
			}
			lo, hi := math.Ceil(min), math.Floor(max)
			if hi < lo {
				return runtime.Num(lo), nil
			}
			return runtime.Num(lo + math.Floor(src.Next()*(hi-lo+1))), nil
		}), nil
	})

	return m
}

func mathRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

func mathSign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

func reduceNums(args []runtime.Value, init float64, f func(a, b float64) float64) (runtime.Value, error) {
	acc := init
	for _, a := range args {
		n, err := expectNum(a)
		if err != nil {
			return nil, err
		}
		acc = f(acc, n)
	}
	return runtime.Num(acc), nil
}

func formatSeed(n float64) string {
	return runtime.Num(n).Repr()
}
