// Package uricodec implements AiScript's Uri: percent-encoding family
// (spec §4.9). net/url encodes a different reserved-character set (and
// escapes space as '+' in query mode), so it does not match the
// JavaScript-style split AiScript requires; this is hand-rolled per spec.
package uricodec

import (
	"fmt"
	"strconv"
	"strings"
)

const unreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~*'()"
const reservedExtra = ";/?:@&=+$,#"

func isInSet(b byte, set string) bool {
	return strings.IndexByte(set, b) >= 0
}

func encode(s string, preserve string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isInSet(b, unreserved) || isInSet(b, preserve) {
			sb.WriteByte(b)
		} else {
			fmt.Fprintf(&sb, "%%%02X", b)
		}
	}
	return sb.String()
}

// EncodeComponent percent-encodes every byte except the unreserved set.
func EncodeComponent(s string) string {
	return encode(s, "")
}

// EncodeFull additionally preserves the classic JS "reserved" punctuation.
func EncodeFull(s string) string {
	return encode(s, reservedExtra)
}

func decode(s string, preserveSet string) (string, error) {
	var sb strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '%' {
			if i+2 >= len(s) {
				return "", fmt.Errorf("malformed percent-escape at offset %d", i)
			}
			n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("malformed percent-escape at offset %d", i)
			}
			b := byte(n)
			if preserveSet != "" && (isInSet(b, preserveSet) || b == '#') {
				// Leave the escape untouched.
				sb.WriteString(s[i : i+3])
			} else {
				sb.WriteByte(b)
			}
			i += 3
		} else {
			sb.WriteByte(s[i])
			i++
		}
	}
	return sb.String(), nil
}

// DecodeComponent reverses EncodeComponent, failing on malformed escapes.
func DecodeComponent(s string) (string, error) {
	return decode(s, "")
}

// DecodeFull decodes every escape that does not produce a character in
// the reserved-plus-'#' set, leaving those escapes untouched.
func DecodeFull(s string) (string, error) {
	return decode(s, reservedExtra)
}
