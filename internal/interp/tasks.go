package interp

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"

	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
)

// taskSet tracks the background goroutines spawned by Async:interval and
// Async:timeout. Each registered task gets its own cancellation context
// so the abort closure Async: returns to the script can stop just that
// one task; Interpreter.Abort stops them all at once.
type taskSet struct {
	mu    sync.Mutex
	tasks map[int]context.CancelFunc
	done  map[int]context.Context
	next  int
}

func newTaskSet(in *Interpreter) *taskSet {
	return &taskSet{tasks: make(map[int]context.CancelFunc), done: make(map[int]context.Context)}
}

// register opens a new cancellable task slot and returns its id, the
// context whose Done() channel fires on cancel or Abort, and the cancel
// function itself.
func (ts *taskSet) register() (id int, ctx context.Context, cancel context.CancelFunc) {
	ctx, cancel = context.WithCancel(context.Background())
	ts.mu.Lock()
	id = ts.next
	ts.next++
	ts.tasks[id] = cancel
	ts.done[id] = ctx
	ts.mu.Unlock()
	return id, ctx, cancel
}

func (ts *taskSet) unregister(id int) {
	ts.mu.Lock()
	delete(ts.tasks, id)
	delete(ts.done, id)
	ts.mu.Unlock()
}

func (ts *taskSet) stopAll() {
	ts.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(ts.tasks))
	for _, c := range ts.tasks {
		cancels = append(cancels, c)
	}
	ts.mu.Unlock()
	for _, c := range cancels {
		c()
	}
}

func (ts *taskSet) count() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.tasks)
}

// RegisterInterval implements runtime.TaskRegistrar (spec §4.10): the
// callback runs every delay, measured from the end of the previous
// tick's scheduled time rather than from when the callback itself
// finished, so a slow callback doesn't accumulate drift. Returns a
// native function that, when called, cancels just this interval.
func (in *Interpreter) RegisterInterval(delay time.Duration, fn *runtime.FnValue, immediate bool) *runtime.FnValue {
	id, ctx, cancel := in.tasks.register()
	if in.metrics != nil {
		in.metrics.TasksActive.Inc()
	}

	go func() {
		defer func() {
			in.tasks.unregister(id)
			if in.metrics != nil {
				in.metrics.TasksActive.Dec()
			}
		}()

		next := time.Now()
		if !immediate {
			next = next.Add(delay)
		}
		for {
			wait := time.Until(next)
			if wait < 0 {
				wait = 0
			}
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-in.abortCh:
				timer.Stop()
				return
			case <-timer.C:
			}
			if _, err := in.Call(fn, nil); err != nil {
				in.reportTaskError(err)
			}
			next = next.Add(delay)
		}
	}()

	return runtime.NewNativeSync("<abort interval>", func(args []runtime.Value) (runtime.Value, error) {
		cancel()
		return runtime.Null(), nil
	})
}

// RegisterTimeout implements runtime.TaskRegistrar: runs fn once after
// delay, unless the returned abort function is called first.
func (in *Interpreter) RegisterTimeout(delay time.Duration, fn *runtime.FnValue) *runtime.FnValue {
	id, ctx, cancel := in.tasks.register()
	if in.metrics != nil {
		in.metrics.TasksActive.Inc()
	}

	go func() {
		defer func() {
			in.tasks.unregister(id)
			if in.metrics != nil {
				in.metrics.TasksActive.Dec()
			}
		}()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-in.abortCh:
			timer.Stop()
			return
		case <-timer.C:
		}
		if _, err := in.Call(fn, nil); err != nil {
			in.reportTaskError(err)
		}
	}()

	return runtime.NewNativeSync("<abort timeout>", func(args []runtime.Value) (runtime.Value, error) {
		cancel()
		return runtime.Null(), nil
	})
}

// reportTaskError routes a background task's error the same way a normal
// runtime error aborts Exec (spec §7): logged and counted as before, and
// if an error callback is configured, abort() fires (stopping every other
// background task too) and the callback runs asynchronously with the
// error, so the host still learns about a failure the script itself can
// never observe or recover from.
func (in *Interpreter) reportTaskError(err error) {
	if in.metrics != nil {
		in.metrics.TaskErrors.Inc()
	}
	in.logger().Error(err, "background task failed")
	if in.errCallback == nil {
		return
	}
	ae, ok := err.(*aerrors.AiScriptError)
	if !ok {
		ae = aerrors.NewInternal(err.Error())
	}
	in.Abort()
	go in.errCallback(ae)
}

func (in *Interpreter) logger() logr.Logger {
	return in.log
}
