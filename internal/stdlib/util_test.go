package stdlib

import (
	"regexp"
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestUtilUUIDFormat(t *testing.T) {
	ns := UtilNamespace()
	got := callFn(t, ns, "uuid").(*runtime.StrValue).S
	if !uuidV4Pattern.MatchString(got) {
		t.Errorf("uuid() = %q, want a version-4 UUID", got)
	}
}

func TestUtilUUIDUnique(t *testing.T) {
	ns := UtilNamespace()
	a := callFn(t, ns, "uuid").(*runtime.StrValue).S
	b := callFn(t, ns, "uuid").(*runtime.StrValue).S
	if a == b {
		t.Error("two uuid() calls produced the same value")
	}
}
