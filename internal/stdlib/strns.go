package stdlib

import (
	"strings"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// StrNamespace builds the Str: bindings (spec §4.6): lf, lt/gt,
// from_codepoint, from_unicode_codepoints, from_utf8_bytes.
func StrNamespace() map[string]runtime.Value {
	return map[string]runtime.Value{
		"lf": runtime.Str("\n"),

		"lt": runtime.NewNativeSync("Str:lt", func(args []runtime.Value) (runtime.Value, error) {
			return strCompare(args)
		}),
		"gt": runtime.NewNativeSync("Str:gt", func(args []runtime.Value) (runtime.Value, error) {
			r, err := strCompare(args)
			if err != nil {
				return nil, err
			}
			n, _ := asNum(r)
			return runtime.Num(-n), nil
		}),

		"from_codepoint": runtime.NewNativeSync("Str:from_codepoint", func(args []runtime.Value) (runtime.Value, error) {
			n, err := expectNonNegInt(arg(args, 0), "from_codepoint")
			if err != nil {
				return nil, err
			}
			return runtime.Str(string(rune(n))), nil
		}),

		"from_unicode_codepoints": runtime.NewNativeSync("Str:from_unicode_codepoints", func(args []runtime.Value) (runtime.Value, error) {
			a, err := expectArr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			var sb strings.Builder
			for _, e := range a.Elements {
				n, err := expectNonNegInt(e, "from_unicode_codepoints")
				if err != nil {
					return nil, err
				}
				sb.WriteRune(rune(n))
			}
			return runtime.Str(sb.String()), nil
		}),

		"from_utf8_bytes": runtime.NewNativeSync("Str:from_utf8_bytes", func(args []runtime.Value) (runtime.Value, error) {
			a, err := expectArr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			b := make([]byte, len(a.Elements))
			for i, e := range a.Elements {
				n, err := expectNonNegInt(e, "from_utf8_bytes")
				if err != nil {
					return nil, err
				}
				b[i] = byte(n)
			}
			return runtime.Str(string(b)), nil
		}),
	}
}

func strCompare(args []runtime.Value) (runtime.Value, error) {
	a, err := expectStr(arg(args, 0))
	if err != nil {
		return nil, err
	}
	b, err := expectStr(arg(args, 1))
	if err != nil {
		return nil, err
	}
	return runtime.Num(float64(strings.Compare(a, b))), nil
}
