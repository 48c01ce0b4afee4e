package stdlib

import "github.com/aiscript-dev/aiscript-go/internal/runtime"

// errorProp implements the Error primitive-property table (spec §4.5):
// name and info.
func errorProp(target *runtime.ErrorValue, name string) (runtime.Value, bool) {
	switch name {
	case "name":
		return runtime.NewNativeSync("error.name", func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Str(target.Name), nil
		}), true
	case "info":
		return runtime.NewNativeSync("error.info", func(args []runtime.Value) (runtime.Value, error) {
			if target.Info == nil {
				return runtime.Null(), nil
			}
			return target.Info, nil
		}), true
	default:
		return nil, false
	}
}
