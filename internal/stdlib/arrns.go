package stdlib

import "github.com/aiscript-dev/aiscript-go/internal/runtime"

// ArrNamespace builds the Arr: bindings (spec §4.6): create.
func ArrNamespace() map[string]runtime.Value {
	return map[string]runtime.Value{
		"create": runtime.NewNativeSync("Arr:create", func(args []runtime.Value) (runtime.Value, error) {
			n, err := expectNonNegInt(arg(args, 0), "create")
			if err != nil {
				return nil, err
			}
			initial := runtime.Value(runtime.Null())
			if len(args) > 1 {
				initial = args[1]
			}
			elems := make([]runtime.Value, n)
			for i := range elems {
				elems[i] = initial
			}
			return runtime.Arr(elems...), nil
		}),
	}
}
