package stdlib

import "github.com/aiscript-dev/aiscript-go/internal/runtime"

// ObjNamespace builds the Obj: bindings (spec §4.6): keys, vals, kvs,
// get, set, has, copy, merge, and the v1 additions pick/from_kvs.
func ObjNamespace() map[string]runtime.Value {
	return map[string]runtime.Value{
		"keys": runtime.NewNativeSync("Obj:keys", func(args []runtime.Value) (runtime.Value, error) {
			o, err := expectObj(arg(args, 0))
			if err != nil {
				return nil, err
			}
			keys := o.Keys()
			elems := make([]runtime.Value, len(keys))
			for i, k := range keys {
				elems[i] = runtime.Str(k)
			}
			return runtime.Arr(elems...), nil
		}),
		"vals": runtime.NewNativeSync("Obj:vals", func(args []runtime.Value) (runtime.Value, error) {
			o, err := expectObj(arg(args, 0))
			if err != nil {
				return nil, err
			}
			keys := o.Keys()
			elems := make([]runtime.Value, len(keys))
			for i, k := range keys {
				v, _ := o.Get(k)
				elems[i] = v
			}
			return runtime.Arr(elems...), nil
		}),
		"kvs": runtime.NewNativeSync("Obj:kvs", func(args []runtime.Value) (runtime.Value, error) {
			o, err := expectObj(arg(args, 0))
			if err != nil {
				return nil, err
			}
			keys := o.Keys()
			elems := make([]runtime.Value, len(keys))
			for i, k := range keys {
				v, _ := o.Get(k)
				elems[i] = runtime.Arr(runtime.Str(k), v)
			}
			return runtime.Arr(elems...), nil
		}),
		"get": runtime.NewNativeSync("Obj:get", func(args []runtime.Value) (runtime.Value, error) {
			o, err := expectObj(arg(args, 0))
			if err != nil {
				return nil, err
			}
			k, err := expectStr(arg(args, 1))
			if err != nil {
				return nil, err
			}
			v, ok := o.Get(k)
			if !ok {
				return runtime.Null(), nil
			}
			return v, nil
		}),
		"set": runtime.NewNativeSync("Obj:set", func(args []runtime.Value) (runtime.Value, error) {
			o, err := expectObj(arg(args, 0))
			if err != nil {
				return nil, err
			}
			k, err := expectStr(arg(args, 1))
			if err != nil {
				return nil, err
			}
			o.Set(k, arg(args, 2))
			return runtime.Null(), nil
		}),
		"has": runtime.NewNativeSync("Obj:has", func(args []runtime.Value) (runtime.Value, error) {
			o, err := expectObj(arg(args, 0))
			if err != nil {
				return nil, err
			}
			k, err := expectStr(arg(args, 1))
			if err != nil {
				return nil, err
			}
			return runtime.Bool(o.Has(k)), nil
		}),
		"copy": runtime.NewNativeSync("Obj:copy", func(args []runtime.Value) (runtime.Value, error) {
			o, err := expectObj(arg(args, 0))
			if err != nil {
				return nil, err
			}
			out := runtime.Obj()
			for _, k := range o.Keys() {
				v, _ := o.Get(k)
				out.Set(k, v)
			}
			return out, nil
		}),
		"merge": runtime.NewNativeSync("Obj:merge", func(args []runtime.Value) (runtime.Value, error) {
			a, err := expectObj(arg(args, 0))
			if err != nil {
				return nil, err
			}
			b, err := expectObj(arg(args, 1))
			if err != nil {
				return nil, err
			}
			out := runtime.Obj()
			for _, k := range a.Keys() {
				v, _ := a.Get(k)
				out.Set(k, v)
			}
			for _, k := range b.Keys() {
				v, _ := b.Get(k)
				out.Set(k, v)
			}
			return out, nil
		}),
		"pick": runtime.NewNativeSync("Obj:pick", func(args []runtime.Value) (runtime.Value, error) {
			o, err := expectObj(arg(args, 0))
			if err != nil {
				return nil, err
			}
			keysArr, err := expectArr(arg(args, 1))
			if err != nil {
				return nil, err
			}
			out := runtime.Obj()
			for _, ke := range keysArr.Elements {
				k, err := expectStr(ke)
				if err != nil {
					return nil, err
				}
				if v, ok := o.Get(k); ok {
					out.Set(k, v)
				}
			}
			return out, nil
		}),
		"from_kvs": runtime.NewNativeSync("Obj:from_kvs", func(args []runtime.Value) (runtime.Value, error) {
			kvs, err := expectArr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			out := runtime.Obj()
			for _, pair := range kvs.Elements {
				p, err := expectArr(pair)
				if err != nil {
					return nil, err
				}
				k, err := expectStr(arg(p.Elements, 0))
				if err != nil {
					return nil, err
				}
				out.Set(k, arg(p.Elements, 1))
			}
			return out, nil
		}),
	}
}
