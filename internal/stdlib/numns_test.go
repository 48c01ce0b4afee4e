package stdlib

import (
	"math"
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

func TestNumToHex(t *testing.T) {
	num := NumNamespace()
	tests := []struct {
		n    float64
		want string
	}{
		{255, "ff"},
		{0, "0"},
		{16, "10"},
	}
	for _, tt := range tests {
		got := callFn(t, num, "to_hex", runtime.Num(tt.n)).(*runtime.StrValue).S
		if got != tt.want {
			t.Errorf("to_hex(%v) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestNumFromHexRoundTrip(t *testing.T) {
	num := NumNamespace()
	hex := callFn(t, num, "to_hex", runtime.Num(255)).(*runtime.StrValue).S
	got := callFn(t, num, "from_hex", runtime.Str(hex)).(*runtime.NumValue).N
	if got != 255 {
		t.Errorf("from_hex(to_hex(255)) = %v, want 255", got)
	}
}

func TestNumFromHexInvalidReturnsNaN(t *testing.T) {
	num := NumNamespace()
	got := callFn(t, num, "from_hex", runtime.Str("not-hex")).(*runtime.NumValue).N
	if !math.IsNaN(got) {
		t.Errorf("from_hex(invalid) = %v, want NaN", got)
	}
}

func TestNumFromHexNegativeAndFractional(t *testing.T) {
	num := NumNamespace()
	got := callFn(t, num, "from_hex", runtime.Str("-1")).(*runtime.NumValue).N
	if got != -1 {
		t.Errorf("from_hex(-1) = %v, want -1", got)
	}
	got = callFn(t, num, "from_hex", runtime.Str("1.8")).(*runtime.NumValue).N
	if got != 1.5 {
		t.Errorf("from_hex(1.8) = %v, want 1.5", got)
	}
}
