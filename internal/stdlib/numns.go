package stdlib

import (
	"math"
	"strconv"
	"strings"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// NumNamespace builds the Num: bindings (spec §4.6): to_hex, from_hex.
func NumNamespace() map[string]runtime.Value {
	return map[string]runtime.Value{
		"to_hex": runtime.NewNativeSync("Num:to_hex", func(args []runtime.Value) (runtime.Value, error) {
			n, err := expectNum(arg(args, 0))
			if err != nil {
				return nil, err
			}
			return runtime.Str(numToHex(n)), nil
		}),
		"from_hex": runtime.NewNativeSync("Num:from_hex", func(args []runtime.Value) (runtime.Value, error) {
			s, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			n, ok := hexToNum(s)
			if !ok {
				return runtime.Num(math.NaN()), nil
			}
			return runtime.Num(n), nil
		}),
	}
}

func hexToNum(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	intPart, fracPart, hasFrac := s, "", false
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx+1:]
		hasFrac = true
	}
	var n float64
	if intPart != "" {
		v, err := strconv.ParseInt(intPart, 16, 64)
		if err != nil {
			return 0, false
		}
		n = float64(v)
	}
	if hasFrac {
		if fracPart == "" {
			return 0, false
		}
		frac := 0.0
		scale := 1.0 / 16
		for i := 0; i < len(fracPart); i++ {
			d, err := strconv.ParseInt(string(fracPart[i]), 16, 64)
			if err != nil {
				return 0, false
			}
			frac += float64(d) * scale
			scale /= 16
		}
		n += frac
	}
	if neg {
		n = -n
	}
	return n, true
}
