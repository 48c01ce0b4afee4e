package stdlib

import (
	"math"

	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

func arg(args []runtime.Value, i int) runtime.Value {
	if i < 0 || i >= len(args) {
		return runtime.Null()
	}
	return args[i]
}

func asNum(v runtime.Value) (float64, bool) {
	n, ok := v.(*runtime.NumValue)
	if !ok {
		return 0, false
	}
	return n.N, true
}

func asStr(v runtime.Value) (string, bool) {
	s, ok := v.(*runtime.StrValue)
	if !ok {
		return "", false
	}
	return s.S, true
}

func asArr(v runtime.Value) (*runtime.ArrValue, bool) {
	a, ok := v.(*runtime.ArrValue)
	return a, ok
}

func asObj(v runtime.Value) (*runtime.ObjValue, bool) {
	o, ok := v.(*runtime.ObjValue)
	return o, ok
}

func asFn(v runtime.Value) (*runtime.FnValue, bool) {
	f, ok := v.(*runtime.FnValue)
	return f, ok
}

func expectNum(v runtime.Value) (float64, error) {
	n, ok := asNum(v)
	if !ok {
		return 0, aerrors.NewTypeMismatch("num", v.Type())
	}
	return n, nil
}

func expectStr(v runtime.Value) (string, error) {
	s, ok := asStr(v)
	if !ok {
		return "", aerrors.NewTypeMismatch("str", v.Type())
	}
	return s, nil
}

func expectArr(v runtime.Value) (*runtime.ArrValue, error) {
	a, ok := asArr(v)
	if !ok {
		return nil, aerrors.NewTypeMismatch("arr", v.Type())
	}
	return a, nil
}

func expectObj(v runtime.Value) (*runtime.ObjValue, error) {
	o, ok := asObj(v)
	if !ok {
		return nil, aerrors.NewTypeMismatch("obj", v.Type())
	}
	return o, nil
}

func expectFn(v runtime.Value) (*runtime.FnValue, error) {
	f, ok := asFn(v)
	if !ok {
		return nil, aerrors.NewTypeMismatch("fn", v.Type())
	}
	return f, nil
}

func truthy(v runtime.Value) bool {
	b, ok := v.(*runtime.BoolValue)
	return ok && b.B
}

// isInt reports whether n has no fractional part.
func isInt(n float64) bool {
	return n == math.Trunc(n) && !math.IsInf(n, 0) && !math.IsNaN(n)
}

func expectInt(v runtime.Value, op string) (int, error) {
	n, err := expectNum(v)
	if err != nil {
		return 0, err
	}
	if !isInt(n) {
		return 0, aerrors.NewUnexpectedNonInteger(op)
	}
	return int(n), nil
}

func expectNonNegInt(v runtime.Value, op string) (int, error) {
	n, err := expectInt(v, op)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, aerrors.NewUnexpectedNegative(op)
	}
	return n, nil
}

// clampIndex clamps a possibly-negative begin/end slice index (JS-style,
// negative counts from the end) into [0, length].
func clampIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func call(caller runtime.Caller, fn *runtime.FnValue, args ...runtime.Value) (runtime.Value, error) {
	return caller.Call(fn, args)
}
