package stdlib

import (
	"strconv"
	"strings"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// JsonNamespace builds the Json: bindings (spec §4.6): stringify, parse,
// parsable. Encoding is hand-rolled (AiScript values aren't a 1:1 match
// for any Go JSON type) then canonicalized with tidwall/pretty.Ugly;
// decoding is delegated to tidwall/gjson, which tolerates being handed
// arbitrary top-level JSON (not just objects/arrays).
func JsonNamespace() map[string]runtime.Value {
	return map[string]runtime.Value{
		"stringify": runtime.NewNativeSync("Json:stringify", func(args []runtime.Value) (runtime.Value, error) {
			var sb strings.Builder
			if err := marshalJSON(arg(args, 0), &sb, newCycleSet()); err != nil {
				return runtime.Error("not_json", runtime.Null()), nil
			}
			return runtime.Str(string(pretty.Ugly([]byte(sb.String())))), nil
		}),
		"parse": runtime.NewNativeSync("Json:parse", func(args []runtime.Value) (runtime.Value, error) {
			s, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			if !gjson.Valid(s) {
				return runtime.Error("not_json", runtime.Null()), nil
			}
			return gjsonToValue(gjson.Parse(s)), nil
		}),
		"parsable": runtime.NewNativeSync("Json:parsable", func(args []runtime.Value) (runtime.Value, error) {
			s, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			return runtime.Bool(gjson.Valid(s)), nil
		}),
	}
}

type cycleSet struct {
	seen map[any]bool
}

func newCycleSet() *cycleSet { return &cycleSet{seen: map[any]bool{}} }

func marshalJSON(v runtime.Value, sb *strings.Builder, seen *cycleSet) error {
	switch t := v.(type) {
	case *runtime.NullValue:
		sb.WriteString("null")
	case *runtime.BoolValue:
		if t.B {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case *runtime.NumValue:
		if t.N != t.N { // NaN
			sb.WriteString("null")
		} else {
			sb.WriteString(strconv.FormatFloat(t.N, 'g', -1, 64))
		}
	case *runtime.StrValue:
		sb.WriteString(strconv.Quote(t.S))
	case *runtime.FnValue:
		sb.WriteString(`"<function>"`)
	case *runtime.ArrValue:
		if seen.seen[t] {
			return errCycle
		}
		seen.seen[t] = true
		defer delete(seen.seen, t)
		sb.WriteByte('[')
		for i, e := range t.Elements {
			if i > 0 {
				sb.WriteByte(',')
			}
			if err := marshalJSON(e, sb, seen); err != nil {
				return err
			}
		}
		sb.WriteByte(']')
	case *runtime.ObjValue:
		if seen.seen[t] {
			return errCycle
		}
		seen.seen[t] = true
		defer delete(seen.seen, t)
		sb.WriteByte('{')
		for i, k := range t.Keys() {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteByte(':')
			val, _ := t.Get(k)
			if err := marshalJSON(val, sb, seen); err != nil {
				return err
			}
		}
		sb.WriteByte('}')
	default:
		sb.WriteString("null")
	}
	return nil
}

var errCycle = &jsonCycleError{}

type jsonCycleError struct{}

func (*jsonCycleError) Error() string { return "cycle detected" }

func gjsonToValue(r gjson.Result) runtime.Value {
	switch r.Type {
	case gjson.Null:
		return runtime.Null()
	case gjson.True:
		return runtime.Bool(true)
	case gjson.False:
		return runtime.Bool(false)
	case gjson.Number:
		return runtime.Num(r.Num)
	case gjson.String:
		return runtime.Str(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []runtime.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, gjsonToValue(v))
				return true
			})
			return runtime.Arr(elems...)
		}
		o := runtime.Obj()
		r.ForEach(func(k, v gjson.Result) bool {
			o.Set(k.Str, gjsonToValue(v))
			return true
		})
		return o
	default:
		return runtime.Null()
	}
}
