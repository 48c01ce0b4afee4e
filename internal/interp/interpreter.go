package interp

import (
	"io"
	"sync/atomic"

	"github.com/go-logr/logr"

	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"github.com/aiscript-dev/aiscript-go/internal/stdlib"
	"github.com/aiscript-dev/aiscript-go/pkg/ast"
)

// Interpreter is the driver (C7): it owns the root Scope, the step
// budget/abort signal the evaluator consults, and the background task
// set Async:interval/timeout register against. It implements both
// runtime.Caller (so stdlib code can invoke user closures) and
// runtime.TaskRegistrar (so Async: can register background work)
// without internal/stdlib or internal/runtime importing this package.
type Interpreter struct {
	root    *runtime.Scope
	maxStep int

	stepCount atomic.Int64
	abortCh   chan struct{}
	aborted   atomic.Bool

	tasks *taskSet

	out    io.Writer
	errOut io.Writer
	log    logr.Logger

	metrics *Metrics

	print       func(runtime.Value)
	readline    func(prompt string) (string, error)
	errCallback func(*aerrors.AiScriptError)
}

// Options configures a new Interpreter. MaxStep <= 0 means unbounded.
type Options struct {
	Consts  map[string]runtime.Value
	MaxStep int
	Out     io.Writer
	ErrOut  io.Writer
	Log     logr.Logger
	Metrics *Metrics

	// Print backs the script-visible print(value) binding (spec §4.7/§6).
	// A nil Print makes print(value) a no-op.
	Print func(runtime.Value)
	// Readline backs the script-visible readline(prompt) binding. A nil
	// Readline makes readline(prompt) return Null.
	Readline func(prompt string) (string, error)
	// ErrCallback is the host-level err_callback from spec §4.7: it is
	// never bound into script scope, only invoked by the driver whenever
	// an unhandled runtime error would otherwise abort Exec/ExecFn, or a
	// background task raises (spec §4.4/§7).
	ErrCallback func(*aerrors.AiScriptError)
}

// New constructs an Interpreter with stdlib preloaded into the root
// scope alongside any host-supplied constants.
func New(opts Options) *Interpreter {
	in := &Interpreter{
		maxStep:     opts.MaxStep,
		abortCh:     make(chan struct{}),
		out:         opts.Out,
		errOut:      opts.ErrOut,
		log:         opts.Log,
		metrics:     opts.Metrics,
		print:       opts.Print,
		readline:    opts.Readline,
		errCallback: opts.ErrCallback,
	}
	in.tasks = newTaskSet(in)

	seed := stdlib.Globals(in, in.abortCh)
	seed["print"] = runtime.NewNativeSync("print", func(args []runtime.Value) (runtime.Value, error) {
		var v runtime.Value = runtime.Null()
		if len(args) > 0 {
			v = args[0]
		}
		if in.print != nil {
			in.print(v)
		}
		return runtime.Null(), nil
	})
	seed["readline"] = runtime.NewNativeSync("readline", func(args []runtime.Value) (runtime.Value, error) {
		if in.readline == nil {
			return runtime.Null(), nil
		}
		prompt := ""
		if len(args) > 0 {
			if s, ok := args[0].(*runtime.StrValue); ok {
				prompt = s.S
			}
		}
		line, err := in.readline(prompt)
		if err != nil {
			return nil, aerrors.NewInternal(err.Error())
		}
		return runtime.Str(line), nil
	})
	for k, v := range opts.Consts {
		seed[k] = v
	}
	in.root = runtime.NewRootScope(seed)
	return in
}

// RootScope exposes the preloaded root scope, e.g. for a REPL host that
// wants to keep evaluating against the same bindings across calls.
func (in *Interpreter) RootScope() *runtime.Scope { return in.root }

// Abort requests cooperative cancellation: the next step() check (by the
// main execution or any in-flight Core:sleep) makes evaluation return
// Null immediately without further side effects (spec §4.4), rather than
// failing with an error.
func (in *Interpreter) Abort() {
	if in.aborted.CompareAndSwap(false, true) {
		close(in.abortCh)
	}
	in.tasks.stopAll()
}

// Exec runs a full program: a namespace pre-pass over every top-level
// ast.Namespace (spec §4.2 two-phase registration), then executes the
// remaining top-level nodes in source order against the root scope.
func (in *Interpreter) Exec(program ast.Program) error {
	if err := in.registerNamespaces(program, in.root); err != nil {
		return in.routeExecErr(err)
	}
	for _, node := range program {
		switch node.(type) {
		case *ast.Namespace, *ast.Meta:
			continue
		}
		v, err := in.Eval(node, in.root)
		if err != nil {
			return in.routeExecErr(err)
		}
		if rv, ok := v.(*runtime.ReturnValue); ok {
			_ = rv
			return nil
		}
	}
	return nil
}

// routeExecErr implements spec §4.4's error-callback routing: any error
// raised during Exec aborts the current call; if an error callback is
// configured, abort() fires (stopping background tasks too), the
// callback runs asynchronously with the error, and Exec itself yields
// nil rather than propagating. Without a callback the error propagates.
func (in *Interpreter) routeExecErr(err error) error {
	ae, ok := err.(*aerrors.AiScriptError)
	if !ok {
		ae = aerrors.NewInternal(err.Error())
	}
	if in.errCallback == nil {
		return ae
	}
	in.Abort()
	go in.errCallback(ae)
	return nil
}

// CollectMetadata scans every top-level ast.Meta node, evaluating only
// literal Value expressions (anything else is silently dropped, per
// ast.Meta's contract) into a name -> Value map; an unnamed `###`
// metadata entry is keyed "".
func (in *Interpreter) CollectMetadata(program ast.Program) map[string]runtime.Value {
	out := map[string]runtime.Value{}
	for _, node := range program {
		meta, ok := node.(*ast.Meta)
		if !ok {
			continue
		}
		v, isLiteral := evalLiteral(meta.Value)
		if !isLiteral {
			continue
		}
		key := ""
		if meta.Name != nil {
			key = *meta.Name
		}
		out[key] = v
	}
	return out
}

// evalLiteral evaluates only the literal-expression subset of ast
// (no scope needed, no side effects) for metadata collection.
func evalLiteral(e ast.Expression) (runtime.Value, bool) {
	switch n := e.(type) {
	case *ast.StrLiteral:
		return runtime.Str(n.Value), true
	case *ast.NumLiteral:
		return runtime.Num(n.Value), true
	case *ast.BoolLiteral:
		return runtime.Bool(n.Value), true
	case *ast.NullLiteral:
		return runtime.Null(), true
	case *ast.ArrLiteral:
		elems := make([]runtime.Value, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, ok := evalLiteral(el)
			if !ok {
				return nil, false
			}
			elems = append(elems, v)
		}
		return runtime.Arr(elems...), true
	case *ast.ObjLiteral:
		o := runtime.Obj()
		for _, entry := range n.Entries {
			v, ok := evalLiteral(entry.Value)
			if !ok {
				return nil, false
			}
			o.Set(entry.Key, v)
		}
		return o, true
	default:
		return nil, false
	}
}

// registerNamespaces implements the two-phase pre-pass from spec §4.2:
// nested namespaces are registered (recursively) before any sibling
// Definition in the same namespace block is evaluated, so a Definition can
// use members of a namespace nested in the same block regardless of source
// order. Sibling Definitions, and sibling namespaces, are processed in
// source order. Every Definition inside a namespace must be immutable and bind
// a plain identifier; anything else is a NamespaceError.
func (in *Interpreter) registerNamespaces(nodes []ast.Node, scope *runtime.Scope) error {
	for _, node := range nodes {
		ns, ok := node.(*ast.Namespace)
		if !ok {
			continue
		}
		if err := in.registerNamespace(ns, scope); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) registerNamespace(ns *ast.Namespace, parent *runtime.Scope) error {
	child := parent.CreateChildNamespaceScope(ns.Name, nil)
	if err := in.registerNamespaces(ns.Members, child); err != nil {
		return err
	}
	for _, member := range ns.Members {
		def, ok := member.(*ast.Definition)
		if !ok {
			continue
		}
		if def.Mut {
			return aerrors.NewNamespace(aerrors.NamespaceMutable, ns.Name, posPtr(def.Pos()))
		}
		ident, ok := def.Dest.(*ast.IdentifierPattern)
		if !ok {
			return aerrors.NewNamespace(aerrors.NamespaceDestructuring, ns.Name, posPtr(def.Pos()))
		}
		v, err := in.Eval(def.Expr, child)
		if err != nil {
			return err
		}
		if err := child.Add(ident.Name, runtime.ConstVar(v)); err != nil {
			return scopeErrToAiScript(err, ident.Name)
		}
	}
	return nil
}

func posPtr(l ast.Loc) *aerrors.Position {
	return &aerrors.Position{Line: l.Start.Line, Column: l.Start.Column, Offset: l.Start.Offset}
}

// Call implements runtime.Caller: invoking a Closure binds args against
// its parameter patterns in a fresh child scope of the closure's
// defining scope and runs its body; invoking a native dispatches to the
// native's own Go function.
func (in *Interpreter) Call(fn runtime.Value, args []runtime.Value) (runtime.Value, error) {
	fv, ok := fn.(*runtime.FnValue)
	if !ok {
		return nil, aerrors.NewTypeMismatch("fn", fn.Type())
	}
	switch fv.Kind {
	case runtime.FnNativeSync:
		return fv.NativeSync(args)
	case runtime.FnNativeAsync:
		return fv.NativeAsync(args, in)
	default:
		return in.callClosure(fv, args)
	}
}

func (in *Interpreter) callClosure(fv *runtime.FnValue, args []runtime.Value) (runtime.Value, error) {
	if err := in.step(); err != nil {
		if err == errStopped {
			return runtime.Null(), nil
		}
		return nil, err
	}
	scope := fv.Closure.CreateChildScope()
	for i, p := range fv.Params {
		var v runtime.Value
		if i < len(args) {
			v = args[i]
		} else if p.Default != nil {
			v = p.Default
		} else {
			v = runtime.Null()
		}
		if err := in.bindPattern(p.Dest, v, scope, false); err != nil {
			return nil, err
		}
	}
	var last runtime.Value = runtime.Null()
	for _, node := range fv.Body {
		astNode, ok := node.(ast.Node)
		if !ok {
			return nil, aerrors.NewInternal("closure body element is not an ast.Node")
		}
		v, err := in.Eval(astNode, scope)
		if err != nil {
			return nil, err
		}
		if IsReturn(v) {
			return runtime.UnwrapReturn(v), nil
		}
		if runtime.IsControl(v) {
			// A Break/Continue escaping a function body with no
			// enclosing loop/block to catch it has nothing left to
			// mean; treat its payload (or Null) as the call's result,
			// matching the reference interpreter's permissive handling
			// of a bare top-level break inside a function.
			if bv, ok := v.(*runtime.BreakValue); ok {
				return bv.Payload, nil
			}
			return runtime.Null(), nil
		}
		last = v
	}
	return last, nil
}

// ExecFn invokes a top-level function value with args, as a host embedding
// AiScript would to call back into a script-defined callback. Per spec
// §4.7, a failure never surfaces as a Go error here: the error callback
// (if configured) is invoked first, then ExecFn returns the AiScript
// value error("func_failed", null) as its result, with a nil Go error.
func (in *Interpreter) ExecFn(fn *runtime.FnValue, args []runtime.Value) (runtime.Value, error) {
	v, err := in.Call(fn, args)
	if err != nil {
		ae, ok := err.(*aerrors.AiScriptError)
		if !ok {
			ae = aerrors.NewInternal(err.Error())
		}
		if in.errCallback != nil {
			in.errCallback(ae)
		}
		return runtime.Error("func_failed", runtime.Null()), nil
	}
	return v, nil
}

// ExecFnSimple bypasses the error callback entirely (spec §4.7's
// exec_fn_simple), calling the closure directly and propagating any
// failure as a raw *aerrors.AiScriptError rather than wrapping it into a
// func_failed value.
func (in *Interpreter) ExecFnSimple(fn *runtime.FnValue, args []runtime.Value) error {
	_, err := in.Call(fn, args)
	if err != nil {
		if ae, ok := err.(*aerrors.AiScriptError); ok {
			return ae
		}
		return aerrors.NewInternal(err.Error())
	}
	return nil
}

// IsReturn reports whether v is a Return control value.
func IsReturn(v runtime.Value) bool {
	_, ok := v.(*runtime.ReturnValue)
	return ok
}

