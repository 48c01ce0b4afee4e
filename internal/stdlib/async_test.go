package stdlib

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

type fakeRegistrar struct {
	lastIntervalDelay time.Duration
	lastImmediate     bool
	lastTimeoutDelay  time.Duration
}

func (r *fakeRegistrar) RegisterInterval(delay time.Duration, fn *runtime.FnValue, immediate bool) *runtime.FnValue {
	r.lastIntervalDelay = delay
	r.lastImmediate = immediate
	var stopped atomic.Bool
	return runtime.NewNativeSync("<abort interval>", func(args []runtime.Value) (runtime.Value, error) {
		stopped.Store(true)
		return runtime.Null(), nil
	})
}

func (r *fakeRegistrar) RegisterTimeout(delay time.Duration, fn *runtime.FnValue) *runtime.FnValue {
	r.lastTimeoutDelay = delay
	return runtime.NewNativeSync("<abort timeout>", func(args []runtime.Value) (runtime.Value, error) {
		return runtime.Null(), nil
	})
}

func TestAsyncIntervalRegistersWithConvertedDelay(t *testing.T) {
	reg := &fakeRegistrar{}
	ns := AsyncNamespace(reg)
	cb := nativeFn(func(args []runtime.Value) (runtime.Value, error) { return runtime.Null(), nil })
	abort := callFn(t, ns, "interval", runtime.Num(100), cb, runtime.Bool(true))
	if reg.lastIntervalDelay != 100*time.Millisecond {
		t.Errorf("RegisterInterval delay = %v, want 100ms", reg.lastIntervalDelay)
	}
	if !reg.lastImmediate {
		t.Error("immediate flag should have been forwarded as true")
	}
	if _, ok := abort.(*runtime.FnValue); !ok {
		t.Fatal("Async:interval should return a native abort function")
	}
}

func TestAsyncTimeoutRegistersWithConvertedDelay(t *testing.T) {
	reg := &fakeRegistrar{}
	ns := AsyncNamespace(reg)
	cb := nativeFn(func(args []runtime.Value) (runtime.Value, error) { return runtime.Null(), nil })
	callFn(t, ns, "timeout", runtime.Num(250), cb)
	if reg.lastTimeoutDelay != 250*time.Millisecond {
		t.Errorf("RegisterTimeout delay = %v, want 250ms", reg.lastTimeoutDelay)
	}
}
