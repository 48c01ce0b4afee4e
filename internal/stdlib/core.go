package stdlib

import (
	"math"
	"time"

	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// Version is the interpreter version string exposed as Core:v.
const Version = "0.1.0"

func numOp1(name string, f func(a float64) (float64, error)) runtime.Value {
	return runtime.NewNativeSync(name, func(args []runtime.Value) (runtime.Value, error) {
		a, err := expectNum(arg(args, 0))
		if err != nil {
			return nil, err
		}
		r, err := f(a)
		if err != nil {
			return nil, err
		}
		return runtime.Num(r), nil
	})
}

func numOp2(name string, f func(a, b float64) (float64, error)) runtime.Value {
	return runtime.NewNativeSync(name, func(args []runtime.Value) (runtime.Value, error) {
		a, err := expectNum(arg(args, 0))
		if err != nil {
			return nil, err
		}
		b, err := expectNum(arg(args, 1))
		if err != nil {
			return nil, err
		}
		r, err := f(a, b)
		if err != nil {
			return nil, err
		}
		return runtime.Num(r), nil
	})
}

func cmpOp(name string, f func(a, b float64) bool) runtime.Value {
	return runtime.NewNativeSync(name, func(args []runtime.Value) (runtime.Value, error) {
		a, err := expectNum(arg(args, 0))
		if err != nil {
			return nil, err
		}
		b, err := expectNum(arg(args, 1))
		if err != nil {
			return nil, err
		}
		return runtime.Bool(f(a, b)), nil
	})
}

// CoreNamespace builds the Core: bindings (spec §4.6): arithmetic and
// comparison primitives routed to by BinaryExpr (Core:<op> lookup),
// plus version/identity/introspection/timing helpers.
func CoreNamespace(abortCh <-chan struct{}) map[string]runtime.Value {
	m := map[string]runtime.Value{
		"v":  runtime.Str(Version),
		"ai": runtime.Str("kawaii"),

		"not": runtime.NewNativeSync("Core:not", func(args []runtime.Value) (runtime.Value, error) {
			b, ok := asBool(arg(args, 0))
			if !ok {
				return nil, aerrors.NewTypeMismatch("bool", arg(args, 0).Type())
			}
			return runtime.Bool(!b), nil
		}),
		"eq": runtime.NewNativeSync("Core:eq", func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Bool(runtime.Equal(arg(args, 0), arg(args, 1))), nil
		}),
		"neq": runtime.NewNativeSync("Core:neq", func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Bool(!runtime.Equal(arg(args, 0), arg(args, 1))), nil
		}),
		"and": runtime.NewNativeSync("Core:and", func(args []runtime.Value) (runtime.Value, error) {
			a, ok := asBool(arg(args, 0))
			if !ok {
				return nil, aerrors.NewTypeMismatch("bool", arg(args, 0).Type())
			}
			b, ok := asBool(arg(args, 1))
			if !ok {
				return nil, aerrors.NewTypeMismatch("bool", arg(args, 1).Type())
			}
			return runtime.Bool(a && b), nil
		}),
		"or": runtime.NewNativeSync("Core:or", func(args []runtime.Value) (runtime.Value, error) {
			a, ok := asBool(arg(args, 0))
			if !ok {
				return nil, aerrors.NewTypeMismatch("bool", arg(args, 0).Type())
			}
			b, ok := asBool(arg(args, 1))
			if !ok {
				return nil, aerrors.NewTypeMismatch("bool", arg(args, 1).Type())
			}
			return runtime.Bool(a || b), nil
		}),

		"add": numOp2("Core:add", func(a, b float64) (float64, error) { return a + b, nil }),
		"sub": numOp2("Core:sub", func(a, b float64) (float64, error) { return a - b, nil }),
		"mul": numOp2("Core:mul", func(a, b float64) (float64, error) { return a * b, nil }),
		"mod": numOp2("Core:mod", func(a, b float64) (float64, error) { return math.Mod(a, b), nil }),
		"pow": numOp2("Core:pow", func(a, b float64) (float64, error) {
			r := math.Pow(a, b)
			if math.IsNaN(r) {
				return 0, aerrors.NewRuntime(aerrors.RuntimeGeneric, "Invalid operation.")
			}
			return r, nil
		}),
		"div": numOp2("Core:div", func(a, b float64) (float64, error) {
			r := a / b
			if math.IsNaN(r) {
				return 0, aerrors.NewRuntime(aerrors.RuntimeGeneric, "Invalid operation.")
			}
			return r, nil
		}),
		"gt":   cmpOp("Core:gt", func(a, b float64) bool { return a > b }),
		"lt":   cmpOp("Core:lt", func(a, b float64) bool { return a < b }),
		"gteq": cmpOp("Core:gteq", func(a, b float64) bool { return a >= b }),
		"lteq": cmpOp("Core:lteq", func(a, b float64) bool { return a <= b }),

		"type": runtime.NewNativeSync("Core:type", func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Str(arg(args, 0).Type()), nil
		}),
		"to_str": runtime.NewNativeSync("Core:to_str", func(args []runtime.Value) (runtime.Value, error) {
			v := arg(args, 0)
			if s, ok := asStr(v); ok {
				return runtime.Str(s), nil
			}
			return runtime.Str(v.Repr()), nil
		}),
		"range": runtime.NewNativeSync("Core:range", func(args []runtime.Value) (runtime.Value, error) {
			a, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			b, err := expectNum(arg(args, 1))
			if err != nil {
				return nil, err
			}
			from, to := int(math.Floor(a)), int(math.Floor(b))
			var elems []runtime.Value
			if from <= to {
				for i := from; i <= to; i++ {
					elems = append(elems, runtime.Num(float64(i)))
				}
			} else {
				for i := from; i >= to; i-- {
					elems = append(elems, runtime.Num(float64(i)))
				}
			}
			return runtime.Arr(elems...), nil
		}),
		"sleep": runtime.NewNativeSync("Core:sleep", func(args []runtime.Value) (runtime.Value, error) {
			ms, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			select {
			case <-time.After(time.Duration(ms * float64(time.Millisecond))):
			case <-abortCh:
			}
			return runtime.Null(), nil
		}),
		"abort": runtime.NewNativeSync("Core:abort", func(args []runtime.Value) (runtime.Value, error) {
			msg := ""
			if s, ok := asStr(arg(args, 0)); ok {
				msg = s
			}
			return nil, aerrors.NewUser(msg)
		}),
	}
	return m
}

func asBool(v runtime.Value) (bool, bool) {
	b, ok := v.(*runtime.BoolValue)
	if !ok {
		return false, false
	}
	return b.B, true
}
