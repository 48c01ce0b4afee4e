package stdlib

import "github.com/aiscript-dev/aiscript-go/internal/runtime"

// ErrorNamespace builds the Error: bindings (spec §4.6): create.
func ErrorNamespace() map[string]runtime.Value {
	return map[string]runtime.Value{
		"create": runtime.NewNativeSync("Error:create", func(args []runtime.Value) (runtime.Value, error) {
			name, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			var info runtime.Value
			if len(args) > 1 {
				info = args[1]
			}
			return runtime.Error(name, info), nil
		}),
	}
}
