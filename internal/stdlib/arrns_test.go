package stdlib

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

func TestArrCreate(t *testing.T) {
	arr := ArrNamespace()
	got := callFn(t, arr, "create", runtime.Num(3)).(*runtime.ArrValue)
	if len(got.Elements) != 3 {
		t.Fatalf("create(3) len = %d, want 3", len(got.Elements))
	}
	for _, e := range got.Elements {
		if _, ok := e.(*runtime.NullValue); !ok {
			t.Errorf("create(3) element = %v, want null (no initial given)", e.Repr())
		}
	}
}

func TestArrCreateWithInitial(t *testing.T) {
	arr := ArrNamespace()
	got := callFn(t, arr, "create", runtime.Num(2), runtime.Str("x")).(*runtime.ArrValue)
	for _, e := range got.Elements {
		if e.(*runtime.StrValue).S != "x" {
			t.Errorf("create(2, x) element = %v, want x", e.Repr())
		}
	}
}

func TestArrCreateNegativeRejected(t *testing.T) {
	arr := ArrNamespace()
	fn := arr["create"].(*runtime.FnValue)
	if _, err := fn.NativeSync([]runtime.Value{runtime.Num(-1)}); err == nil {
		t.Fatal("create(-1) should error")
	}
}
