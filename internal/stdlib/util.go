package stdlib

import (
	"crypto/rand"
	"fmt"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// UtilNamespace builds the Util: bindings (spec §4.6): uuid.
func UtilNamespace() map[string]runtime.Value {
	return map[string]runtime.Value{
		"uuid": runtime.NewNativeSync("Util:uuid", func(args []runtime.Value) (runtime.Value, error) {
			return runtime.Str(newUUIDv4()), nil
		}),
	}
}

// newUUIDv4 generates a random RFC 4122 version-4 UUID.
func newUUIDv4() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
