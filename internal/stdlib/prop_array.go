package stdlib

import (
	"strings"

	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// arrayProp implements the Array primitive-property table (spec §4.5).
// Higher-order methods (map/filter/reduce/find/every/some/flat_map/sort)
// call back into user closures through caller, so they can suspend on
// native-async callbacks the same as any other call.
func arrayProp(target *runtime.ArrValue, name string, caller runtime.Caller) (runtime.Value, bool) {
	native := func(fn func(args []runtime.Value) (runtime.Value, error)) runtime.Value {
		return runtime.NewNativeSync("arr."+name, fn)
	}

	switch name {
	case "len":
		return runtime.Num(float64(len(target.Elements))), true

	case "push":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			target.Elements = append(target.Elements, arg(args, 0))
			return target, nil
		}), true

	case "unshift":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			target.Elements = append([]runtime.Value{arg(args, 0)}, target.Elements...)
			return target, nil
		}), true

	case "pop":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			n := len(target.Elements)
			if n == 0 {
				return runtime.Null(), nil
			}
			last := target.Elements[n-1]
			target.Elements = target.Elements[:n-1]
			return last, nil
		}), true

	case "shift":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			if len(target.Elements) == 0 {
				return runtime.Null(), nil
			}
			first := target.Elements[0]
			target.Elements = target.Elements[1:]
			return first, nil
		}), true

	case "reverse":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			for i, j := 0, len(target.Elements)-1; i < j; i, j = i+1, j-1 {
				target.Elements[i], target.Elements[j] = target.Elements[j], target.Elements[i]
			}
			return target, nil
		}), true

	case "copy":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			cp := make([]runtime.Value, len(target.Elements))
			copy(cp, target.Elements)
			return runtime.Arr(cp...), nil
		}), true

	case "concat":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			out := make([]runtime.Value, len(target.Elements))
			copy(out, target.Elements)
			for _, a := range args {
				other, err := expectArr(a)
				if err != nil {
					return nil, err
				}
				out = append(out, other.Elements...)
			}
			return runtime.Arr(out...), nil
		}), true

	case "slice":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			length := len(target.Elements)
			begin, end := 0, length
			if len(args) > 0 {
				n, err := expectNum(args[0])
				if err != nil {
					return nil, err
				}
				begin = clampIndex(int(n), length)
			}
			if len(args) > 1 && args[1].Type() != "null" {
				n, err := expectNum(args[1])
				if err != nil {
					return nil, err
				}
				end = clampIndex(int(n), length)
			}
			if begin > end {
				begin = end
			}
			cp := make([]runtime.Value, end-begin)
			copy(cp, target.Elements[begin:end])
			return runtime.Arr(cp...), nil
		}), true

	case "join":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			sep := ""
			if len(args) > 0 && args[0].Type() != "null" {
				s, err := expectStr(args[0])
				if err != nil {
					return nil, err
				}
				sep = s
			}
			parts := make([]string, len(target.Elements))
			for i, e := range target.Elements {
				if sv, ok := asStr(e); ok {
					parts[i] = sv
				} else {
					parts[i] = e.Repr()
				}
			}
			return runtime.Str(strings.Join(parts, sep)), nil
		}), true

	case "fill":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			v := arg(args, 0)
			length := len(target.Elements)
			begin, end := 0, length
			if len(args) > 1 {
				n, err := expectNum(args[1])
				if err != nil {
					return nil, err
				}
				begin = clampIndex(int(n), length)
			}
			if len(args) > 2 {
				n, err := expectNum(args[2])
				if err != nil {
					return nil, err
				}
				end = clampIndex(int(n), length)
			}
			for i := begin; i < end; i++ {
				target.Elements[i] = v
			}
			return target, nil
		}), true

	case "repeat":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			times, err := expectNonNegInt(arg(args, 0), "repeat")
			if err != nil {
				return nil, err
			}
			out := make([]runtime.Value, 0, len(target.Elements)*times)
			for i := 0; i < times; i++ {
				out = append(out, target.Elements...)
			}
			return runtime.Arr(out...), nil
		}), true

	case "splice":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			length := len(target.Elements)
			idx, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			start := clampIndex(int(idx), length)
			count := length - start
			if len(args) > 1 {
				c, err := expectNum(args[1])
				if err != nil {
					return nil, err
				}
				count = int(c)
				if count < 0 {
					count = 0
				}
				if start+count > length {
					count = length - start
				}
			}
			var items []runtime.Value
			if len(args) > 2 {
				itemsArr, err := expectArr(args[2])
				if err != nil {
					return nil, err
				}
				items = itemsArr.Elements
			}
			removed := make([]runtime.Value, count)
			copy(removed, target.Elements[start:start+count])

			rest := make([]runtime.Value, 0, length-count+len(items))
			rest = append(rest, target.Elements[:start]...)
			rest = append(rest, items...)
			rest = append(rest, target.Elements[start+count:]...)
			target.Elements = rest

			return runtime.Arr(removed...), nil
		}), true

	case "map":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			fn, err := expectFn(arg(args, 0))
			if err != nil {
				return nil, err
			}
			out := make([]runtime.Value, len(target.Elements))
			for i, e := range target.Elements {
				r, err := call(caller, fn, e, runtime.Num(float64(i)))
				if err != nil {
					return nil, err
				}
				out[i] = r
			}
			return runtime.Arr(out...), nil
		}), true

	case "flat_map":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			fn, err := expectFn(arg(args, 0))
			if err != nil {
				return nil, err
			}
			var out []runtime.Value
			for i, e := range target.Elements {
				r, err := call(caller, fn, e, runtime.Num(float64(i)))
				if err != nil {
					return nil, err
				}
				if a, ok := asArr(r); ok {
					out = append(out, a.Elements...)
				} else {
					out = append(out, r)
				}
			}
			return runtime.Arr(out...), nil
		}), true

	case "filter":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			fn, err := expectFn(arg(args, 0))
			if err != nil {
				return nil, err
			}
			var out []runtime.Value
			for i, e := range target.Elements {
				r, err := call(caller, fn, e, runtime.Num(float64(i)))
				if err != nil {
					return nil, err
				}
				if truthy(r) {
					out = append(out, e)
				}
			}
			return runtime.Arr(out...), nil
		}), true

	case "reduce":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			fn, err := expectFn(arg(args, 0))
			if err != nil {
				return nil, err
			}
			var acc runtime.Value
			start := 0
			if len(args) > 1 {
				acc = args[1]
			} else {
				if len(target.Elements) == 0 {
					return nil, aerrors.NewReduceWithoutInitial()
				}
				acc = target.Elements[0]
				start = 1
			}
			for i := start; i < len(target.Elements); i++ {
				r, err := call(caller, fn, acc, target.Elements[i], runtime.Num(float64(i)))
				if err != nil {
					return nil, err
				}
				acc = r
			}
			return acc, nil
		}), true

	case "find":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			fn, err := expectFn(arg(args, 0))
			if err != nil {
				return nil, err
			}
			for i, e := range target.Elements {
				r, err := call(caller, fn, e, runtime.Num(float64(i)))
				if err != nil {
					return nil, err
				}
				if truthy(r) {
					return e, nil
				}
			}
			return runtime.Null(), nil
		}), true

	case "every":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			fn, err := expectFn(arg(args, 0))
			if err != nil {
				return nil, err
			}
			for i, e := range target.Elements {
				r, err := call(caller, fn, e, runtime.Num(float64(i)))
				if err != nil {
					return nil, err
				}
				if !truthy(r) {
					return runtime.Bool(false), nil
				}
			}
			return runtime.Bool(true), nil
		}), true

	case "some":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			fn, err := expectFn(arg(args, 0))
			if err != nil {
				return nil, err
			}
			for i, e := range target.Elements {
				r, err := call(caller, fn, e, runtime.Num(float64(i)))
				if err != nil {
					return nil, err
				}
				if truthy(r) {
					return runtime.Bool(true), nil
				}
			}
			return runtime.Bool(false), nil
		}), true

	case "sort":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			fn, err := expectFn(arg(args, 0))
			if err != nil {
				return nil, err
			}
			var sortErr error
			// Stable merge sort so every comparison can await a
			// native-async comparator via caller.Call.
			mergeSort(target.Elements, func(a, b runtime.Value) bool {
				if sortErr != nil {
					return false
				}
				r, err := call(caller, fn, a, b)
				if err != nil {
					sortErr = err
					return false
				}
				n, ok := asNum(r)
				if !ok {
					sortErr = aerrors.NewTypeMismatch("num", r.Type())
					return false
				}
				return n < 0
			})
			if sortErr != nil {
				return nil, sortErr
			}
			return target, nil
		}), true

	case "incl":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			v := arg(args, 0)
			for _, e := range target.Elements {
				if runtime.Equal(e, v) {
					return runtime.Bool(true), nil
				}
			}
			return runtime.Bool(false), nil
		}), true

	case "index_of":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			v := arg(args, 0)
			from := 0
			if len(args) > 1 {
				n, err := expectInt(args[1], "index_of")
				if err != nil {
					return nil, err
				}
				from = clampIndex(n, len(target.Elements))
			}
			for i := from; i < len(target.Elements); i++ {
				if runtime.Equal(target.Elements[i], v) {
					return runtime.Num(float64(i)), nil
				}
			}
			return runtime.Num(-1), nil
		}), true

	case "flat":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			depth := 1
			if len(args) > 0 {
				n, err := expectInt(args[0], "flat")
				if err != nil {
					return nil, err
				}
				depth = n
			}
			return runtime.Arr(flatten(target.Elements, depth)...), nil
		}), true

	case "insert":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			idx, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			i := clampIndex(int(idx), len(target.Elements))
			v := arg(args, 1)
			target.Elements = append(target.Elements[:i], append([]runtime.Value{v}, target.Elements[i:]...)...)
			return target, nil
		}), true

	case "remove":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			idx, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			length := len(target.Elements)
			i := int(idx)
			if i < 0 {
				i += length
			}
			if i < 0 || i >= length {
				return runtime.Null(), nil
			}
			removed := target.Elements[i]
			target.Elements = append(target.Elements[:i], target.Elements[i+1:]...)
			return removed, nil
		}), true

	case "at":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			idx, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			length := len(target.Elements)
			i := int(idx)
			if i < 0 {
				i += length
			}
			if i < 0 || i >= length {
				if len(args) > 1 {
					return args[1], nil
				}
				return runtime.Null(), nil
			}
			return target.Elements[i], nil
		}), true

	default:
		return nil, false
	}
}

func flatten(elems []runtime.Value, depth int) []runtime.Value {
	if depth <= 0 {
		out := make([]runtime.Value, len(elems))
		copy(out, elems)
		return out
	}
	var out []runtime.Value
	for _, e := range elems {
		if a, ok := asArr(e); ok {
			out = append(out, flatten(a.Elements, depth-1)...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

// mergeSort sorts elems in place using less, a stable bottom-up merge
// sort — chosen over sort.SliceStable so the comparator can return an
// error by closing over sortErr and short-circuiting.
func mergeSort(elems []runtime.Value, less func(a, b runtime.Value) bool) {
	n := len(elems)
	if n < 2 {
		return
	}
	buf := make([]runtime.Value, n)
	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			mid := i + width
			if mid > n {
				mid = n
			}
			end := i + 2*width
			if end > n {
				end = n
			}
			merge(elems[i:end], elems[i:mid], elems[mid:end], buf[i:end], less)
		}
	}
}

func merge(dst, left, right, buf []runtime.Value, less func(a, b runtime.Value) bool) {
	li, ri, di := 0, 0, 0
	for li < len(left) && ri < len(right) {
		if less(right[ri], left[li]) {
			buf[di] = right[ri]
			ri++
		} else {
			buf[di] = left[li]
			li++
		}
		di++
	}
	for li < len(left) {
		buf[di] = left[li]
		li++
		di++
	}
	for ri < len(right) {
		buf[di] = right[ri]
		ri++
		di++
	}
	copy(dst, buf[:di])
}
