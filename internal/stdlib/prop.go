package stdlib

import (
	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// PrimitiveProp looks up a property access on a non-Obj/Fn primitive
// value (spec §4.5 and §4.4). obj.Prop routes here whenever the target
// isn't an ObjValue (which has real member storage) or an already
// resolved built-in namespace member. caller lets array higher-order
// methods invoke user closures.
func PrimitiveProp(target runtime.Value, name string, caller runtime.Caller) (runtime.Value, error) {
	var v runtime.Value
	var ok bool

	switch t := target.(type) {
	case *runtime.NumValue:
		v, ok = numberProp(t, name)
	case *runtime.StrValue:
		v, ok = stringProp(t, name)
	case *runtime.ArrValue:
		v, ok = arrayProp(t, name, caller)
	case *runtime.ErrorValue:
		v, ok = errorProp(t, name)
	default:
		return nil, aerrors.NewInvalidPrimitiveProperty(name, target.Type())
	}

	if !ok {
		return nil, aerrors.NewNoSuchProperty(name, target.Type())
	}
	return v, nil
}
