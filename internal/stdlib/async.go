package stdlib

import (
	"time"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// AsyncNamespace builds the Async: bindings (spec §4.6/§4.10):
// interval and timeout, registering cancellable background tasks
// through the interpreter-supplied registrar.
func AsyncNamespace(tasks runtime.TaskRegistrar) map[string]runtime.Value {
	return map[string]runtime.Value{
		"interval": runtime.NewNativeSync("Async:interval", func(args []runtime.Value) (runtime.Value, error) {
			ms, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			fn, err := expectFn(arg(args, 1))
			if err != nil {
				return nil, err
			}
			immediate := false
			if len(args) > 2 {
				immediate = truthy(args[2])
			}
			abort := tasks.RegisterInterval(time.Duration(ms*float64(time.Millisecond)), fn, immediate)
			return abort, nil
		}),
		"timeout": runtime.NewNativeSync("Async:timeout", func(args []runtime.Value) (runtime.Value, error) {
			ms, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			fn, err := expectFn(arg(args, 1))
			if err != nil {
				return nil, err
			}
			abort := tasks.RegisterTimeout(time.Duration(ms*float64(time.Millisecond)), fn)
			return abort, nil
		}),
	}
}
