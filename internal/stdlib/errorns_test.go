package stdlib

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

func TestErrorCreate(t *testing.T) {
	ns := ErrorNamespace()
	e := callFn(t, ns, "create", runtime.Str("failed"), runtime.Str("details")).(*runtime.ErrorValue)
	if e.Name != "failed" {
		t.Errorf("create name = %v, want failed", e.Name)
	}
	if e.Info.(*runtime.StrValue).S != "details" {
		t.Errorf("create info = %v, want details", e.Info.Repr())
	}
}

func TestErrorCreateWithoutInfo(t *testing.T) {
	ns := ErrorNamespace()
	e := callFn(t, ns, "create", runtime.Str("failed")).(*runtime.ErrorValue)
	if e.Info != nil {
		t.Errorf("create without info should leave Info nil, got %v", e.Info.Repr())
	}
}
