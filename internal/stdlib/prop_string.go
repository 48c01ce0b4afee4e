package stdlib

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// stringProp implements the String primitive-property table (spec §4.5).
// All indexing is grapheme-cluster-aware unless the method name says
// otherwise (unicode/codepoint/char/charcode/utf8_byte variants).
func stringProp(target *runtime.StrValue, name string) (runtime.Value, bool) {
	s := target.S
	native := func(fn func(args []runtime.Value) (runtime.Value, error)) runtime.Value {
		return runtime.NewNativeSync("str."+name, fn)
	}

	switch name {
	case "len":
		return runtime.Num(float64(GraphemeLen(s))), true

	case "pick":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			i, err := expectInt(arg(args, 0), "pick")
			if err != nil {
				return nil, err
			}
			g := Graphemes(s)
			if i < 0 || i >= len(g) {
				return runtime.Null(), nil
			}
			return runtime.Str(g[i]), nil
		}), true

	case "slice":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			g := Graphemes(s)
			begin, end := 0, len(g)
			if len(args) > 0 {
				n, err := expectNum(args[0])
				if err != nil {
					return nil, err
				}
				begin = clampIndex(int(n), len(g))
			}
			if len(args) > 1 && args[1].Type() != "null" {
				n, err := expectNum(args[1])
				if err != nil {
					return nil, err
				}
				end = clampIndex(int(n), len(g))
			}
			if begin > end {
				begin = end
			}
			return runtime.Str(strings.Join(g[begin:end], "")), nil
		}), true

	case "to_num":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return runtime.Null(), nil
			}
			return runtime.Num(n), nil
		}), true

	case "to_arr":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			g := Graphemes(s)
			elems := make([]runtime.Value, len(g))
			for i, c := range g {
				elems[i] = runtime.Str(c)
			}
			return runtime.Arr(elems...), nil
		}), true

	case "to_unicode_arr":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			runes := []rune(s)
			elems := make([]runtime.Value, len(runes))
			for i, r := range runes {
				elems[i] = runtime.Str(string(r))
			}
			return runtime.Arr(elems...), nil
		}), true

	case "to_unicode_codepoint_arr":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			runes := []rune(s)
			elems := make([]runtime.Value, len(runes))
			for i, r := range runes {
				elems[i] = runtime.Num(float64(r))
			}
			return runtime.Arr(elems...), nil
		}), true

	case "to_char_arr":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			units := utf16.Encode([]rune(s))
			elems := make([]runtime.Value, len(units))
			for i, u := range units {
				elems[i] = runtime.Str(string(utf16.Decode([]uint16{u})))
			}
			return runtime.Arr(elems...), nil
		}), true

	case "to_charcode_arr":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			units := utf16.Encode([]rune(s))
			elems := make([]runtime.Value, len(units))
			for i, u := range units {
				elems[i] = runtime.Num(float64(u))
			}
			return runtime.Arr(elems...), nil
		}), true

	case "to_utf8_byte_arr":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			b := []byte(s)
			elems := make([]runtime.Value, len(b))
			for i, c := range b {
				elems[i] = runtime.Num(float64(c))
			}
			return runtime.Arr(elems...), nil
		}), true

	case "codepoint_at":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			i, err := expectInt(arg(args, 0), "codepoint_at")
			if err != nil {
				return nil, err
			}
			units := utf16.Encode([]rune(s))
			if i < 0 || i >= len(units) {
				return runtime.Null(), nil
			}
			decoded := utf16.Decode(units[i:])
			if len(decoded) == 0 {
				return runtime.Null(), nil
			}
			return runtime.Num(float64(decoded[0])), nil
		}), true

	case "charcode_at":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			i, err := expectInt(arg(args, 0), "charcode_at")
			if err != nil {
				return nil, err
			}
			units := utf16.Encode([]rune(s))
			if i < 0 || i >= len(units) {
				return runtime.Null(), nil
			}
			return runtime.Num(float64(units[i])), nil
		}), true

	case "incl":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			sub, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			return runtime.Bool(strings.Contains(s, sub)), nil
		}), true

	case "index_of":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			needle, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			g := Graphemes(s)
			from := 0
			if len(args) > 1 {
				n, err := expectInt(args[1], "index_of")
				if err != nil {
					return nil, err
				}
				if n < 0 {
					n += len(g)
				}
				from = clampIndex(n, len(g))
			}
			joined := strings.Join(g[from:], "")
			idx := strings.Index(joined, needle)
			if idx < 0 {
				return runtime.Num(-1), nil
			}
			return runtime.Num(float64(from + GraphemeLen(joined[:idx]))), nil
		}), true

	case "starts_with":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			prefix, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			g := Graphemes(s)
			from := 0
			if len(args) > 1 {
				n, err := expectInt(args[1], "starts_with")
				if err != nil {
					return nil, err
				}
				from = clampIndex(n, len(g))
			}
			return runtime.Bool(strings.HasPrefix(strings.Join(g[from:], ""), prefix)), nil
		}), true

	case "ends_with":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			suffix, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			g := Graphemes(s)
			upto := len(g)
			if len(args) > 1 {
				n, err := expectInt(args[1], "ends_with")
				if err != nil {
					return nil, err
				}
				upto = clampIndex(n, len(g))
			}
			return runtime.Bool(strings.HasSuffix(strings.Join(g[:upto], ""), suffix)), nil
		}), true

	case "upper":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Str(cases.Upper(language.Und).String(s)), nil
		}), true

	case "lower":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Str(cases.Lower(language.Und).String(s)), nil
		}), true

	case "trim":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Str(strings.TrimSpace(s)), nil
		}), true

	case "replace":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			a, err := expectStr(arg(args, 0))
			if err != nil {
				return nil, err
			}
			b, err := expectStr(arg(args, 1))
			if err != nil {
				return nil, err
			}
			return runtime.Str(strings.ReplaceAll(s, a, b)), nil
		}), true

	case "split":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			if len(args) == 0 || args[0].Type() == "null" {
				g := Graphemes(s)
				elems := make([]runtime.Value, len(g))
				for i, c := range g {
					elems[i] = runtime.Str(c)
				}
				return runtime.Arr(elems...), nil
			}
			sep, err := expectStr(args[0])
			if err != nil {
				return nil, err
			}
			if sep == "" {
				g := Graphemes(s)
				elems := make([]runtime.Value, len(g))
				for i, c := range g {
					elems[i] = runtime.Str(c)
				}
				return runtime.Arr(elems...), nil
			}
			parts := strings.Split(s, sep)
			elems := make([]runtime.Value, len(parts))
			for i, p := range parts {
				elems[i] = runtime.Str(p)
			}
			return runtime.Arr(elems...), nil
		}), true

	case "pad_start":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			return pad(s, args, true)
		}), true

	case "pad_end":
		return native(func(args []runtime.Value) (runtime.Value, error) {
			return pad(s, args, false)
		}), true

	default:
		return nil, false
	}
}

func pad(s string, args []runtime.Value, start bool) (runtime.Value, error) {
	width, err := expectInt(arg(args, 0), "pad")
	if err != nil {
		return nil, err
	}
	padStr := " "
	if len(args) > 1 {
		p, err := expectStr(args[1])
		if err != nil {
			return nil, err
		}
		padStr = p
	}
	cur := GraphemeLen(s)
	if cur >= width || padStr == "" {
		return runtime.Str(s), nil
	}
	need := width - cur
	padGraphemes := Graphemes(padStr)
	var sb strings.Builder
	for sb.Len() == 0 || GraphemeLen(sb.String()) < need {
		for _, g := range padGraphemes {
			sb.WriteString(g)
			if GraphemeLen(sb.String()) >= need {
				break
			}
		}
	}
	fill := strings.Join(Graphemes(sb.String())[:need], "")
	if start {
		return runtime.Str(fill + s), nil
	}
	return runtime.Str(s + fill), nil
}

