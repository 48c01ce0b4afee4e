package interp

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

func TestRegisterIntervalTicksAndCanBeAborted(t *testing.T) {
	in := newTestInterp(0)
	var ticks atomic.Int32
	fn := runtime.NewNativeSync("cb", func(args []runtime.Value) (runtime.Value, error) {
		ticks.Add(1)
		return runtime.Null(), nil
	})
	abort := in.RegisterInterval(5*time.Millisecond, fn, false)

	deadline := time.After(500 * time.Millisecond)
	for ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("interval only ticked %d times in 500ms, want at least 3", ticks.Load())
		case <-time.After(time.Millisecond):
		}
	}

	if _, err := in.Call(abort, nil); err != nil {
		t.Fatalf("abort call error: %v", err)
	}
	stoppedAt := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if ticks.Load() != stoppedAt {
		t.Errorf("interval kept ticking after abort: %d -> %d", stoppedAt, ticks.Load())
	}
}

func TestRegisterTimeoutFiresOnceAfterDelay(t *testing.T) {
	in := newTestInterp(0)
	fired := make(chan struct{}, 1)
	fn := runtime.NewNativeSync("cb", func(args []runtime.Value) (runtime.Value, error) {
		fired <- struct{}{}
		return runtime.Null(), nil
	})
	in.RegisterTimeout(5*time.Millisecond, fn)

	select {
	case <-fired:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout callback never fired")
	}
}

func TestRegisterTimeoutAbortedBeforeDelayNeverFires(t *testing.T) {
	in := newTestInterp(0)
	fired := make(chan struct{}, 1)
	fn := runtime.NewNativeSync("cb", func(args []runtime.Value) (runtime.Value, error) {
		fired <- struct{}{}
		return runtime.Null(), nil
	})
	abort := in.RegisterTimeout(50*time.Millisecond, fn)
	if _, err := in.Call(abort, nil); err != nil {
		t.Fatalf("abort call error: %v", err)
	}

	select {
	case <-fired:
		t.Fatal("timeout fired despite being aborted first")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestInterpreterAbortStopsAllBackgroundTasks(t *testing.T) {
	in := newTestInterp(0)
	var ticks atomic.Int32
	fn := runtime.NewNativeSync("cb", func(args []runtime.Value) (runtime.Value, error) {
		ticks.Add(1)
		return runtime.Null(), nil
	})
	in.RegisterInterval(5*time.Millisecond, fn, true)
	time.Sleep(20 * time.Millisecond)

	in.Abort()
	stoppedAt := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if ticks.Load() != stoppedAt {
		t.Errorf("interval kept ticking after Interpreter.Abort: %d -> %d", stoppedAt, ticks.Load())
	}
}

func TestMetricsTrackActiveBackgroundTasks(t *testing.T) {
	m := NewMetrics(nil)
	in := New(Options{Metrics: m})
	fn := runtime.NewNativeSync("cb", func(args []runtime.Value) (runtime.Value, error) {
		return runtime.Null(), nil
	})
	abort := in.RegisterTimeout(200*time.Millisecond, fn)
	time.Sleep(10 * time.Millisecond)
	if got := testutil.ToFloat64(m.TasksActive); got != 1 {
		t.Errorf("TasksActive = %v, want 1 while timeout is pending", got)
	}
	if _, err := in.Call(abort, nil); err != nil {
		t.Fatalf("abort call error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if got := testutil.ToFloat64(m.TasksActive); got != 0 {
		t.Errorf("TasksActive = %v, want 0 after abort", got)
	}
}
