package stdlib

import (
	"math"
	"strconv"
	"strings"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// numberProp implements the Number primitive-property table (spec §4.5):
// to_str and to_hex.
func numberProp(target *runtime.NumValue, name string) (runtime.Value, bool) {
	switch name {
	case "to_str":
		return runtime.NewNativeSync("num.to_str", func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Str(target.Repr()), nil
		}), true
	case "to_hex":
		return runtime.NewNativeSync("num.to_hex", func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Str(numToHex(target.N)), nil
		}), true
	default:
		return nil, false
	}
}

// numToHex renders n as a custom hex string: a sign, the integer part in
// hex, and up to 14 hex fraction digits. Negative numbers render as
// "-XX" (not two's-complement) — a documented source quirk preserved
// verbatim (spec §9).
func numToHex(n float64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	intPart := math.Trunc(n)
	frac := n - intPart

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(strconv.FormatInt(int64(intPart), 16))

	if frac > 0 {
		sb.WriteByte('.')
		for i := 0; i < 14 && frac > 0; i++ {
			frac *= 16
			digit := int(math.Trunc(frac))
			sb.WriteString(strconv.FormatInt(int64(digit), 16))
			frac -= math.Trunc(frac)
		}
	}
	return sb.String()
}
