package stdlib

import (
	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"github.com/aiscript-dev/aiscript-go/internal/uricodec"
)

// UriNamespace builds the Uri: bindings (spec §4.6/§4.9): encode_full,
// encode_component, decode_full, decode_component.
func UriNamespace() map[string]runtime.Value {
	enc := func(name string, f func(string) string) runtime.Value {
		return runtime.NewNativeSync("Uri:"+name, func(args []runtime.Value) (runtime.Value, error) {
			s, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			return runtime.Str(f(s)), nil
		})
	}
	dec := func(name string, f func(string) (string, error)) runtime.Value {
		return runtime.NewNativeSync("Uri:"+name, func(args []runtime.Value) (runtime.Value, error) {
			s, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			out, derr := f(s)
			if derr != nil {
				return nil, aerrors.NewUser(derr.Error())
			}
			return runtime.Str(out), nil
		})
	}
	return map[string]runtime.Value{
		"encode_full":      enc("encode_full", uricodec.EncodeFull),
		"encode_component": enc("encode_component", uricodec.EncodeComponent),
		"decode_full":      dec("decode_full", uricodec.DecodeFull),
		"decode_component": dec("decode_component", uricodec.DecodeComponent),
	}
}
