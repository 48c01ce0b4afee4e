// Package stdlib implements the standard library (spec §4.6, C6) and
// primitive-property dispatch (spec §4.5, C5) components: the preloaded
// Core/Math/Str/Arr/Obj/Json/Date/Uri/Async/Util/Num/Error namespace
// bindings, and per-type method tables for number/string/array/error
// values that obj.prop access falls through to when the target isn't a
// user Obj or Fn.
package stdlib

import "github.com/aiscript-dev/aiscript-go/internal/runtime"

// Globals builds the full set of root-scope bindings the interpreter
// preloads before executing a program: every standard-library function
// under its "Namespace:member" key (AiScript identifiers may contain
// ':', so these are ordinary flat bindings, not nested scopes).
func Globals(tasks runtime.TaskRegistrar, abortCh <-chan struct{}) map[string]runtime.Value {
	out := map[string]runtime.Value{}
	add := func(ns string, members map[string]runtime.Value) {
		for name, v := range members {
			out[ns+":"+name] = v
		}
	}
	add("Core", CoreNamespace(abortCh))
	add("Util", UtilNamespace())
	add("Json", JsonNamespace())
	add("Date", DateNamespace())
	add("Math", MathNamespace())
	add("Num", NumNamespace())
	add("Str", StrNamespace())
	add("Uri", UriNamespace())
	add("Arr", ArrNamespace())
	add("Obj", ObjNamespace())
	add("Error", ErrorNamespace())
	add("Async", AsyncNamespace(tasks))
	return out
}
