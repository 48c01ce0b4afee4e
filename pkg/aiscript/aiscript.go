// Package aiscript is the public facade over the interpreter's internal
// packages: an embedding host constructs an Interpreter here and never
// needs to import internal/interp, internal/runtime, or internal/stdlib
// directly, so those packages can be refactored freely (go-dws's
// pkg/dwscript plays the same role for its own embedders).
package aiscript

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/interp"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"github.com/aiscript-dev/aiscript-go/pkg/ast"
)

// Re-exported value constructors and types, so a host can build argument
// values and read results without an internal/runtime import.
type (
	Value = runtime.Value
	Fn    = runtime.FnValue
)

var (
	Null = runtime.Null
	Bool = runtime.Bool
	Num  = runtime.Num
	Str  = runtime.Str
	Arr  = runtime.Arr
	Obj  = runtime.Obj
)

// Error is the single error type every exported operation fails with.
type Error = aerrors.AiScriptError

// Options configures a new Interpreter.
type Options struct {
	// Consts are extra root-scope bindings layered on top of the
	// standard library, e.g. a host-specific "Mk:api" namespace.
	Consts map[string]Value
	// MaxStep bounds the number of evaluator steps before execution
	// fails with a MaxStepExceeded error. Zero means unbounded.
	MaxStep int
	Out     io.Writer
	ErrOut  io.Writer
	Log     logr.Logger
	// Registerer receives the ambient step/task/error metrics, if set.
	Registerer prometheus.Registerer

	// Print backs the script-visible print(value) binding. A nil Print
	// makes print(value) a no-op.
	Print func(Value)
	// Readline backs the script-visible readline(prompt) binding. A nil
	// Readline makes readline(prompt) return Null.
	Readline func(prompt string) (string, error)
	// ErrCallback is invoked whenever an unhandled runtime error would
	// otherwise abort Exec/ExecFn, or a background task raises one; it is
	// never itself bound into script scope.
	ErrCallback func(*Error)
}

// Interpreter runs AiScript programs against a single preloaded root
// scope, shared across every Exec/ExecFn call made on it.
type Interpreter struct {
	in *interp.Interpreter
}

// New constructs an Interpreter with the standard library preloaded.
func New(opts Options) *Interpreter {
	var metrics *interp.Metrics
	if opts.Registerer != nil {
		metrics = interp.NewMetrics(opts.Registerer)
	}
	return &Interpreter{in: interp.New(interp.Options{
		Consts:      opts.Consts,
		MaxStep:     opts.MaxStep,
		Out:         opts.Out,
		ErrOut:      opts.ErrOut,
		Log:         opts.Log,
		Metrics:     metrics,
		Print:       opts.Print,
		Readline:    opts.Readline,
		ErrCallback: opts.ErrCallback,
	})}
}

// Exec runs a parsed program to completion.
func (i *Interpreter) Exec(program ast.Program) error {
	return i.in.Exec(program)
}

// ExecFn invokes a function value directly, e.g. a callback previously
// extracted from a definition via CollectMetadata or a prior Exec.
func (i *Interpreter) ExecFn(fn *Fn, args []Value) (Value, error) {
	return i.in.ExecFn(fn, args)
}

// ExecFnSimple runs fn for its side effects only, discarding its result.
func (i *Interpreter) ExecFnSimple(fn *Fn, args []Value) error {
	return i.in.ExecFnSimple(fn, args)
}

// CollectMetadata extracts the program's top-level `###` metadata block.
func (i *Interpreter) CollectMetadata(program ast.Program) map[string]Value {
	return i.in.CollectMetadata(program)
}

// Abort requests cooperative cancellation of the current and any future
// execution on this Interpreter, and stops all background Async tasks.
func (i *Interpreter) Abort() {
	i.in.Abort()
}

// RootScope exposes the preloaded root scope for advanced embedding
// scenarios (e.g. a REPL that evaluates successive top-level nodes
// against the same bindings).
func (i *Interpreter) RootScope() *runtime.Scope {
	return i.in.RootScope()
}
