// Package interp implements the evaluator loop (C3/C4) and interpreter
// driver (C7): a recursive tree-walker over pkg/ast, closing over
// internal/runtime Scopes and internal/stdlib primitives. Spec §9
// explicitly licenses a plain recursive evaluator in place of a reified
// frame stack ("the observable contract is identical"); Go goroutines
// already give every exec() call its own suspension point, which is what
// the reified-frame design exists to provide in a single-threaded host.
package interp

import (
	"errors"
	"math"

	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"github.com/aiscript-dev/aiscript-go/internal/stdlib"
	"github.com/aiscript-dev/aiscript-go/pkg/ast"
)

// errStopped is the sentinel step() returns once Abort's stop flag has
// fired. It never crosses Eval/callClosure's own return: both translate
// it into a clean (Null, nil) result per spec §4.4's "returns Null
// immediately without further side effects" — the stop flag is not an
// error condition, unlike MaxStepExceeded.
var errStopped = errors.New("aiscript: stopped")

// step checks the stop flag and the cooperative step budget before an
// evaluator dispatch proceeds; every Eval call goes through it first. The
// stop flag is sampled before the step count is incremented, so aborting
// never itself trips MaxStepExceeded.
func (in *Interpreter) step() error {
	select {
	case <-in.abortCh:
		return errStopped
	default:
	}
	n := in.stepCount.Add(1)
	if in.metrics != nil {
		in.metrics.StepsTotal.Inc()
	}
	if in.maxStep > 0 && n > int64(in.maxStep) {
		return aerrors.NewMaxStepExceeded()
	}
	return nil
}

// Eval dispatches a single AST node against scope, returning its value
// (Null for pure-statement nodes) or an *aerrors.AiScriptError.
func (in *Interpreter) Eval(node ast.Node, scope *runtime.Scope) (runtime.Value, error) {
	if err := in.step(); err != nil {
		if err == errStopped {
			return runtime.Null(), nil
		}
		return nil, err
	}

	switch n := node.(type) {

	// --- literals ---
	case *ast.StrLiteral:
		return runtime.Str(n.Value), nil
	case *ast.NumLiteral:
		return runtime.Num(n.Value), nil
	case *ast.BoolLiteral:
		return runtime.Bool(n.Value), nil
	case *ast.NullLiteral:
		return runtime.Null(), nil

	case *ast.Tmpl:
		return in.evalTmpl(n, scope)

	case *ast.ObjLiteral:
		o := runtime.Obj()
		for _, e := range n.Entries {
			v, err := in.Eval(e.Value, scope)
			if err != nil {
				return nil, err
			}
			if runtime.IsControl(v) {
				return v, nil
			}
			o.Set(e.Key, v)
		}
		return o, nil

	case *ast.ArrLiteral:
		elems := make([]runtime.Value, len(n.Elements))
		for i, e := range n.Elements {
			v, err := in.Eval(e, scope)
			if err != nil {
				return nil, err
			}
			if runtime.IsControl(v) {
				return v, nil
			}
			elems[i] = v
		}
		return runtime.Arr(elems...), nil

	case *ast.Plus:
		v, err := in.Eval(n.Expr, scope)
		if err != nil {
			return nil, err
		}
		num, ok := v.(*runtime.NumValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("num", v.Type())
		}
		return runtime.Num(+num.N), nil

	case *ast.Minus:
		v, err := in.Eval(n.Expr, scope)
		if err != nil {
			return nil, err
		}
		num, ok := v.(*runtime.NumValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("num", v.Type())
		}
		return runtime.Num(-num.N), nil

	case *ast.Not:
		v, err := in.Eval(n.Expr, scope)
		if err != nil {
			return nil, err
		}
		b, ok := v.(*runtime.BoolValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("bool", v.Type())
		}
		return runtime.Bool(!b.B), nil

	case *ast.BinaryExpr:
		return in.evalBinary(n, scope)

	case *ast.And:
		l, err := in.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		lb, ok := l.(*runtime.BoolValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("bool", l.Type())
		}
		if !lb.B {
			return runtime.Bool(false), nil
		}
		r, err := in.Eval(n.Right, scope)
		if err != nil {
			return nil, err
		}
		rb, ok := r.(*runtime.BoolValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("bool", r.Type())
		}
		return runtime.Bool(rb.B), nil

	case *ast.Or:
		l, err := in.Eval(n.Left, scope)
		if err != nil {
			return nil, err
		}
		lb, ok := l.(*runtime.BoolValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("bool", l.Type())
		}
		if lb.B {
			return runtime.Bool(true), nil
		}
		r, err := in.Eval(n.Right, scope)
		if err != nil {
			return nil, err
		}
		rb, ok := r.(*runtime.BoolValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("bool", r.Type())
		}
		return runtime.Bool(rb.B), nil

	case *ast.If:
		return in.evalIf(n, scope)

	case *ast.Match:
		return in.evalMatch(n, scope)

	case *ast.Block:
		child := scope.CreateChildScope()
		return in.evalBody(n.Statements, child, n.Label)

	case *ast.Exists:
		return runtime.Bool(scope.Exists(n.Name)), nil

	case *ast.Fn:
		fv, err := in.evalFn(n, scope)
		if err != nil {
			return nil, err
		}
		return fv, nil

	case *ast.Call:
		return in.evalCall(n, scope)

	case *ast.Index:
		return in.evalIndex(n, scope)

	case *ast.Prop:
		return in.evalProp(n, scope)

	case *ast.Identifier:
		v, err := scope.Get(n.Name)
		if err != nil {
			return nil, aerrors.NewNoSuchVariable(n.Name, nil)
		}
		return v, nil

	// --- statements ---
	case *ast.Definition:
		return in.evalDefinition(n, scope)
	case *ast.Return:
		v := runtime.Value(runtime.Null())
		if n.Expr != nil {
			var err error
			v, err = in.Eval(n.Expr, scope)
			if err != nil {
				return nil, err
			}
		}
		return runtime.Return(v), nil
	case *ast.Break:
		v := runtime.Value(runtime.Null())
		if n.Expr != nil {
			var err error
			v, err = in.Eval(n.Expr, scope)
			if err != nil {
				return nil, err
			}
		}
		return runtime.Break(n.Label, v), nil
	case *ast.Continue:
		return runtime.Continue(n.Label), nil
	case *ast.Assign:
		return in.evalAssign(n, scope)
	case *ast.AddAssign:
		return in.evalCompoundAssign(n.Dest, n.Expr, scope, func(a, b float64) float64 { return a + b })
	case *ast.SubAssign:
		return in.evalCompoundAssign(n.Dest, n.Expr, scope, func(a, b float64) float64 { return a - b })

	case *ast.Each:
		return in.evalEach(n, scope)
	case *ast.For:
		return in.evalFor(n, scope)
	case *ast.ForLet:
		return in.evalForLet(n, scope)
	case *ast.Loop:
		return in.evalLoop(n, scope)
	case *ast.While:
		return in.evalWhile(n, scope)
	case *ast.DoWhile:
		return in.evalDoWhile(n, scope)

	default:
		return nil, aerrors.NewInternal("unhandled AST node")
	}
}

func (in *Interpreter) evalTmpl(n *ast.Tmpl, scope *runtime.Scope) (runtime.Value, error) {
	var sb []byte
	for _, seg := range n.Segments {
		if seg.Str != nil {
			sb = append(sb, *seg.Str...)
			continue
		}
		v, err := in.Eval(seg.Expr, scope)
		if err != nil {
			return nil, err
		}
		if s, ok := v.(*runtime.StrValue); ok {
			sb = append(sb, s.S...)
		} else {
			sb = append(sb, v.Repr()...)
		}
	}
	return runtime.Str(string(sb)), nil
}

func (in *Interpreter) evalBinary(n *ast.BinaryExpr, scope *runtime.Scope) (runtime.Value, error) {
	l, err := in.Eval(n.Left, scope)
	if err != nil {
		return nil, err
	}
	r, err := in.Eval(n.Right, scope)
	if err != nil {
		return nil, err
	}
	callee, gerr := scope.Get("Core:" + string(n.Op))
	if gerr != nil {
		return nil, aerrors.NewInternal("missing Core:" + string(n.Op))
	}
	fn, ok := callee.(*runtime.FnValue)
	if !ok {
		return nil, aerrors.NewInternal("Core:" + string(n.Op) + " is not callable")
	}
	return in.Call(fn, []runtime.Value{l, r})
}

// catchOwnLabel converts a Break whose label matches label — the #name:
// prefix an if/match expression itself carries — into that break's
// payload, mirroring how the loop evaluators catch a break labeled for
// themselves. Any other value (Return, Continue, an unlabeled break, or a
// break labeled for some other enclosing construct) passes through
// untouched and keeps propagating.
func catchOwnLabel(v runtime.Value, label string) runtime.Value {
	if label == "" {
		return v
	}
	if bv, ok := v.(*runtime.BreakValue); ok && bv.Label == label {
		return bv.Payload
	}
	return v
}

func (in *Interpreter) evalIf(n *ast.If, scope *runtime.Scope) (runtime.Value, error) {
	cond, err := in.Eval(n.Cond, scope)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(*runtime.BoolValue)
	if !ok {
		return nil, aerrors.NewTypeMismatch("bool", cond.Type())
	}
	if b.B {
		v, err := in.Eval(n.Then, scope)
		if err != nil {
			return nil, err
		}
		return catchOwnLabel(v, n.Label), nil
	}
	for _, ei := range n.ElseIf {
		c, err := in.Eval(ei.Cond, scope)
		if err != nil {
			return nil, err
		}
		cb, ok := c.(*runtime.BoolValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("bool", c.Type())
		}
		if cb.B {
			v, err := in.Eval(ei.Then, scope)
			if err != nil {
				return nil, err
			}
			return catchOwnLabel(v, n.Label), nil
		}
	}
	if n.Else != nil {
		v, err := in.Eval(n.Else, scope)
		if err != nil {
			return nil, err
		}
		return catchOwnLabel(v, n.Label), nil
	}
	return runtime.Null(), nil
}

func (in *Interpreter) evalMatch(n *ast.Match, scope *runtime.Scope) (runtime.Value, error) {
	about, err := in.Eval(n.About, scope)
	if err != nil {
		return nil, err
	}
	eqFn, gerr := scope.Get("Core:eq")
	if gerr != nil {
		return nil, aerrors.NewInternal("missing Core:eq")
	}
	eq, ok := eqFn.(*runtime.FnValue)
	if !ok {
		return nil, aerrors.NewInternal("Core:eq is not callable")
	}
	for _, c := range n.Cases {
		pv, err := in.Eval(c.Pattern, scope)
		if err != nil {
			return nil, err
		}
		res, err := in.Call(eq, []runtime.Value{about, pv})
		if err != nil {
			return nil, err
		}
		b, ok := res.(*runtime.BoolValue)
		if ok && b.B {
			v, err := in.Eval(c.Body, scope)
			if err != nil {
				return nil, err
			}
			return catchOwnLabel(v, n.Label), nil
		}
	}
	if n.Default != nil {
		v, err := in.Eval(n.Default, scope)
		if err != nil {
			return nil, err
		}
		return catchOwnLabel(v, n.Label), nil
	}
	return runtime.Null(), nil
}

// evalBody executes a statement/expression sequence in scope, yielding
// the last evaluated value (Null if empty). Return/Continue always
// propagate raw. A Break is caught here only when label is non-empty and
// matches it exactly — an *ast.Block only short-circuits a break
// explicitly labeled for it (spec's Block doc: "a matching labeled
// break"); an unlabeled break is never a Block's to catch; it belongs to
// the nearest enclosing loop, so it propagates untouched. Loop
// constructs therefore must NOT route their bodies through this
// function (they'd swallow their own unlabeled breaks before their
// post-body break check ever ran) — they use runBody instead.
func (in *Interpreter) evalBody(nodes []ast.Node, scope *runtime.Scope, label string) (runtime.Value, error) {
	var last runtime.Value = runtime.Null()
	for _, node := range nodes {
		v, err := in.Eval(node, scope)
		if err != nil {
			return nil, err
		}
		if bv, ok := v.(*runtime.BreakValue); ok {
			if label != "" && bv.Label == label {
				return bv.Payload, nil
			}
			return v, nil
		}
		if runtime.IsControl(v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

// runBody executes a loop construct's statement sequence with no
// break-catching of its own: Return/Break/Continue all propagate raw to
// the caller, which is always one of the loop evaluators below — each
// inspects the returned BreakValue/ContinueValue itself (matching its
// own label or an unlabeled break) to decide whether to stop, skip to
// the next iteration, or keep propagating further up.
func (in *Interpreter) runBody(nodes []ast.Node, scope *runtime.Scope) (runtime.Value, error) {
	var last runtime.Value = runtime.Null()
	for _, node := range nodes {
		v, err := in.Eval(node, scope)
		if err != nil {
			return nil, err
		}
		if runtime.IsControl(v) {
			return v, nil
		}
		last = v
	}
	return last, nil
}

// evalFn builds a closure value. Per-parameter default expressions are
// evaluated once here, against the defining scope, not re-evaluated on
// each call (spec §4.3).
func (in *Interpreter) evalFn(n *ast.Fn, scope *runtime.Scope) (*runtime.FnValue, error) {
	params := make([]runtime.Param, len(n.Params))
	for i, p := range n.Params {
		var def runtime.Value
		switch {
		case p.Default != nil:
			v, err := in.Eval(p.Default, scope)
			if err != nil {
				return nil, err
			}
			def = v
		case p.Optional:
			def = runtime.Null()
		}
		params[i] = runtime.Param{Dest: convertPattern(p.Dest), Default: def}
	}
	return runtime.NewClosure(params, toAnySlice(n.Children), scope), nil
}

func toAnySlice(nodes []ast.Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

func convertPattern(p ast.Pattern) runtime.Pattern {
	switch pt := p.(type) {
	case *ast.IdentifierPattern:
		return runtime.IdentPattern{Name: pt.Name}
	case *ast.ArrayPattern:
		elems := make([]runtime.Pattern, len(pt.Elements))
		for i, e := range pt.Elements {
			if e == nil {
				elems[i] = nil
				continue
			}
			elems[i] = convertPattern(e)
		}
		return runtime.ArrPattern{Elements: elems}
	case *ast.ObjectPattern:
		fields := make([]runtime.ObjPatternField, len(pt.Fields))
		for i, f := range pt.Fields {
			fields[i] = runtime.ObjPatternField{Key: f.Key, Value: convertPattern(f.Value)}
		}
		return runtime.ObjPattern{Fields: fields}
	default:
		return runtime.IdentPattern{Name: "_"}
	}
}

// bindPattern destructures v into pat's names within scope, defining
// each as Const or Mut per mut.
func (in *Interpreter) bindPattern(pat runtime.Pattern, v runtime.Value, scope *runtime.Scope, mut bool) error {
	switch p := pat.(type) {
	case runtime.IdentPattern:
		if p.Name == "_" {
			return nil
		}
		variable := runtime.ConstVar(v)
		if mut {
			variable = runtime.MutVar(v)
		}
		if err := scope.Add(p.Name, variable); err != nil {
			return scopeErrToAiScript(err, p.Name)
		}
		return nil
	case runtime.ArrPattern:
		a, ok := v.(*runtime.ArrValue)
		if !ok {
			return aerrors.NewTypeMismatch("arr", v.Type())
		}
		for i, sub := range p.Elements {
			if sub == nil {
				continue
			}
			var elem runtime.Value = runtime.Null()
			if i < len(a.Elements) {
				elem = a.Elements[i]
			}
			if err := in.bindPattern(sub, elem, scope, mut); err != nil {
				return err
			}
		}
		return nil
	case runtime.ObjPattern:
		o, ok := v.(*runtime.ObjValue)
		if !ok {
			return aerrors.NewTypeMismatch("obj", v.Type())
		}
		for _, f := range p.Fields {
			elem := runtime.Value(runtime.Null())
			if ev, ok := o.Get(f.Key); ok {
				elem = ev
			}
			if err := in.bindPattern(f.Value, elem, scope, mut); err != nil {
				return err
			}
		}
		return nil
	default:
		return aerrors.NewInternal("unknown pattern kind")
	}
}

// assignPattern destructures v into pat's names, overwriting each
// already-bound variable via Scope.Assign rather than defining a new one
// — the counterpart to bindPattern used by plain `let`/`var` Definitions.
// This is what a destructuring Assign (e.g. a swap `[a, b] = [b, a]`)
// needs: every name in the pattern must already exist.
func (in *Interpreter) assignPattern(pat runtime.Pattern, v runtime.Value, scope *runtime.Scope) error {
	switch p := pat.(type) {
	case runtime.IdentPattern:
		if p.Name == "_" {
			return nil
		}
		if err := scope.Assign(p.Name, v); err != nil {
			return scopeErrToAiScript(err, p.Name)
		}
		return nil
	case runtime.ArrPattern:
		a, ok := v.(*runtime.ArrValue)
		if !ok {
			return aerrors.NewTypeMismatch("arr", v.Type())
		}
		for i, sub := range p.Elements {
			if sub == nil {
				continue
			}
			var elem runtime.Value = runtime.Null()
			if i < len(a.Elements) {
				elem = a.Elements[i]
			}
			if err := in.assignPattern(sub, elem, scope); err != nil {
				return err
			}
		}
		return nil
	case runtime.ObjPattern:
		o, ok := v.(*runtime.ObjValue)
		if !ok {
			return aerrors.NewTypeMismatch("obj", v.Type())
		}
		for _, f := range p.Fields {
			elem := runtime.Value(runtime.Null())
			if ev, ok := o.Get(f.Key); ok {
				elem = ev
			}
			if err := in.assignPattern(f.Value, elem, scope); err != nil {
				return err
			}
		}
		return nil
	default:
		return aerrors.NewInternal("unknown pattern kind")
	}
}

func scopeErrToAiScript(err error, name string) error {
	se, ok := err.(*runtime.ScopeError)
	if !ok {
		return aerrors.NewInternal(err.Error())
	}
	switch se.Kind {
	case "AlreadyDefined":
		return aerrors.NewAlreadyDefined(name)
	case "AssignmentToImmutable":
		return aerrors.NewAssignmentToImmutable(name)
	case "NoSuchVariable":
		return aerrors.NewNoSuchVariable(name, nil)
	default:
		return aerrors.NewInternal(err.Error())
	}
}

func (in *Interpreter) evalDefinition(n *ast.Definition, scope *runtime.Scope) (runtime.Value, error) {
	v, err := in.Eval(n.Expr, scope)
	if err != nil {
		return nil, err
	}
	pat := convertPattern(n.Dest)
	if attrs, ok := v.(runtime.Attributed); ok && len(n.Attr) > 0 {
		list := make([]runtime.Attribute, len(n.Attr))
		for i, a := range n.Attr {
			av, err := in.Eval(a.Value, scope)
			if err != nil {
				return nil, err
			}
			list[i] = runtime.Attribute{Name: a.Name, Value: av}
		}
		attrs.SetAttributes(list)
	}
	if err := in.bindPattern(pat, v, scope, n.Mut); err != nil {
		return nil, err
	}
	return runtime.Null(), nil
}

func (in *Interpreter) lvalueAssign(dest ast.Expression, v runtime.Value, scope *runtime.Scope) error {
	switch d := dest.(type) {
	case *ast.Identifier:
		if err := scope.Assign(d.Name, v); err != nil {
			return scopeErrToAiScript(err, d.Name)
		}
		return nil
	case *ast.Index:
		target, err := in.Eval(d.Target, scope)
		if err != nil {
			return err
		}
		idx, err := in.Eval(d.Index, scope)
		if err != nil {
			return err
		}
		a, ok := target.(*runtime.ArrValue)
		if !ok {
			return aerrors.NewTypeMismatch("arr", target.Type())
		}
		i, err := expectArrIndex(idx, len(a.Elements))
		if err != nil {
			return err
		}
		if i < 0 || i >= len(a.Elements) {
			return aerrors.NewIndexOutOfRange(i, len(a.Elements)-1)
		}
		a.Elements[i] = v
		return nil
	case *ast.Prop:
		target, err := in.Eval(d.Target, scope)
		if err != nil {
			return err
		}
		o, ok := target.(*runtime.ObjValue)
		if !ok {
			return aerrors.NewInvalidProperty(d.Name, target.Type())
		}
		o.Set(d.Name, v)
		return nil
	default:
		return aerrors.NewInvalidAssignment("assignment target must be an identifier, index, or property")
	}
}

func (in *Interpreter) evalAssign(n *ast.Assign, scope *runtime.Scope) (runtime.Value, error) {
	v, err := in.Eval(n.Expr, scope)
	if err != nil {
		return nil, err
	}
	switch pat := n.Dest.(type) {
	case *ast.IdentifierPattern:
		if err := scope.Assign(pat.Name, v); err != nil {
			return nil, scopeErrToAiScript(err, pat.Name)
		}
	default:
		if err := in.assignPattern(convertPattern(n.Dest), v, scope); err != nil {
			return nil, err
		}
	}
	return runtime.Null(), nil
}

func (in *Interpreter) evalCompoundAssign(dest, expr ast.Expression, scope *runtime.Scope, combine func(a, b float64) float64) (runtime.Value, error) {
	cur, err := in.Eval(dest, scope)
	if err != nil {
		return nil, err
	}
	curNum, ok := cur.(*runtime.NumValue)
	if !ok {
		return nil, aerrors.NewTypeMismatch("num", cur.Type())
	}
	delta, err := in.Eval(expr, scope)
	if err != nil {
		return nil, err
	}
	deltaNum, ok := delta.(*runtime.NumValue)
	if !ok {
		return nil, aerrors.NewTypeMismatch("num", delta.Type())
	}
	result := runtime.Num(combine(curNum.N, deltaNum.N))
	if err := in.lvalueAssign(dest, result, scope); err != nil {
		return nil, err
	}
	return runtime.Null(), nil
}

func (in *Interpreter) evalEach(n *ast.Each, scope *runtime.Scope) (runtime.Value, error) {
	items, err := in.Eval(n.Items, scope)
	if err != nil {
		return nil, err
	}
	a, ok := items.(*runtime.ArrValue)
	if !ok {
		return nil, aerrors.NewTypeMismatch("arr", items.Type())
	}
	snapshot := make([]runtime.Value, len(a.Elements))
	copy(snapshot, a.Elements)
	for _, elem := range snapshot {
		child := scope.CreateChildScope()
		if err := child.Add(n.Var, runtime.ConstVar(elem)); err != nil {
			return nil, scopeErrToAiScript(err, n.Var)
		}
		v, err := in.runBody(n.For.Statements, child)
		if err != nil {
			return nil, err
		}
		if bv, ok := v.(*runtime.BreakValue); ok {
			if bv.Label == "" || bv.Label == n.Label {
				return bv.Payload, nil
			}
			return v, nil
		}
		if cv, ok := v.(*runtime.ContinueValue); ok {
			if cv.Label != "" && cv.Label != n.Label {
				return v, nil
			}
			continue
		}
	}
	return runtime.Null(), nil
}

func (in *Interpreter) evalFor(n *ast.For, scope *runtime.Scope) (runtime.Value, error) {
	timesV, err := in.Eval(n.Times, scope)
	if err != nil {
		return nil, err
	}
	num, ok := timesV.(*runtime.NumValue)
	if !ok {
		return nil, aerrors.NewTypeMismatch("num", timesV.Type())
	}
	times := int(math.Floor(num.N))
	for i := 0; i < times; i++ {
		child := scope.CreateChildScope()
		v, err := in.runBody(n.For.Statements, child)
		if err != nil {
			return nil, err
		}
		if bv, ok := v.(*runtime.BreakValue); ok {
			if bv.Label == "" || bv.Label == n.Label {
				return bv.Payload, nil
			}
			return v, nil
		}
		if cv, ok := v.(*runtime.ContinueValue); ok {
			if cv.Label != "" && cv.Label != n.Label {
				return v, nil
			}
			continue
		}
	}
	return runtime.Null(), nil
}

// evalForLet implements `for (let i = from, to)`: i ranges across a span
// of length `to` starting at `from` (floored), NOT up to an endpoint —
// `to` is a count, not a bound (spec §9 flags this as counterintuitive
// but load-bearing: do not "fix" it to be endpoint-style).
func (in *Interpreter) evalForLet(n *ast.ForLet, scope *runtime.Scope) (runtime.Value, error) {
	from := 0.0
	if n.From != nil {
		fv, err := in.Eval(n.From, scope)
		if err != nil {
			return nil, err
		}
		num, ok := fv.(*runtime.NumValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("num", fv.Type())
		}
		from = num.N
	}
	toV, err := in.Eval(n.To, scope)
	if err != nil {
		return nil, err
	}
	toNum, ok := toV.(*runtime.NumValue)
	if !ok {
		return nil, aerrors.NewTypeMismatch("num", toV.Type())
	}
	span := int(math.Floor(toNum.N))
	start := int(math.Floor(from))
	for i := start; i < start+span; i++ {
		child := scope.CreateChildScope()
		if err := child.Add(n.Var, runtime.ConstVar(runtime.Num(float64(i)))); err != nil {
			return nil, scopeErrToAiScript(err, n.Var)
		}
		v, err := in.runBody(n.For.Statements, child)
		if err != nil {
			return nil, err
		}
		if bv, ok := v.(*runtime.BreakValue); ok {
			if bv.Label == "" || bv.Label == n.Label {
				return bv.Payload, nil
			}
			return v, nil
		}
		if cv, ok := v.(*runtime.ContinueValue); ok {
			if cv.Label != "" && cv.Label != n.Label {
				return v, nil
			}
			continue
		}
	}
	return runtime.Null(), nil
}

func (in *Interpreter) evalLoop(n *ast.Loop, scope *runtime.Scope) (runtime.Value, error) {
	for {
		child := scope.CreateChildScope()
		v, err := in.runBody(n.Statements, child)
		if err != nil {
			return nil, err
		}
		if bv, ok := v.(*runtime.BreakValue); ok {
			if bv.Label == "" || bv.Label == n.Label {
				return bv.Payload, nil
			}
			return v, nil
		}
		if cv, ok := v.(*runtime.ContinueValue); ok {
			if cv.Label != "" && cv.Label != n.Label {
				return v, nil
			}
			continue
		}
	}
}

func (in *Interpreter) evalWhile(n *ast.While, scope *runtime.Scope) (runtime.Value, error) {
	for {
		cond, err := in.Eval(n.Cond, scope)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(*runtime.BoolValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("bool", cond.Type())
		}
		if !b.B {
			return runtime.Null(), nil
		}
		child := scope.CreateChildScope()
		v, err := in.runBody(n.Body.Statements, child)
		if err != nil {
			return nil, err
		}
		if bv, ok := v.(*runtime.BreakValue); ok {
			if bv.Label == "" || bv.Label == n.Label {
				return bv.Payload, nil
			}
			return v, nil
		}
		if cv, ok := v.(*runtime.ContinueValue); ok {
			if cv.Label != "" && cv.Label != n.Label {
				return v, nil
			}
			continue
		}
	}
}

func (in *Interpreter) evalDoWhile(n *ast.DoWhile, scope *runtime.Scope) (runtime.Value, error) {
	for {
		child := scope.CreateChildScope()
		v, err := in.runBody(n.Body.Statements, child)
		if err != nil {
			return nil, err
		}
		if bv, ok := v.(*runtime.BreakValue); ok {
			if bv.Label == "" || bv.Label == n.Label {
				return bv.Payload, nil
			}
			return v, nil
		}
		if cv, ok := v.(*runtime.ContinueValue); ok {
			if cv.Label != "" && cv.Label != n.Label {
				return v, nil
			}
		}
		cond, err := in.Eval(n.Cond, scope)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(*runtime.BoolValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("bool", cond.Type())
		}
		if !b.B {
			return runtime.Null(), nil
		}
	}
}

func (in *Interpreter) evalCall(n *ast.Call, scope *runtime.Scope) (runtime.Value, error) {
	target, err := in.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}
	fn, ok := target.(*runtime.FnValue)
	if !ok {
		return nil, aerrors.NewTypeMismatch("fn", target.Type())
	}
	args := make([]runtime.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.Eval(a, scope)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return in.Call(fn, args)
}

// expectArrIndex rejects a non-integer num (e.g. arr[1.5]) before it is
// used to address an array element, per the reference interpreter's
// i.trunc() == i check: "Arr indexing requires an integer in range or
// fails with IndexOutOfRange."
func expectArrIndex(idx runtime.Value, length int) (int, error) {
	num, ok := idx.(*runtime.NumValue)
	if !ok {
		return 0, aerrors.NewTypeMismatch("num", idx.Type())
	}
	if num.N != math.Trunc(num.N) || math.IsInf(num.N, 0) || math.IsNaN(num.N) {
		return 0, aerrors.NewIndexOutOfRange(int(num.N), length-1)
	}
	return int(num.N), nil
}

func (in *Interpreter) evalIndex(n *ast.Index, scope *runtime.Scope) (runtime.Value, error) {
	target, err := in.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}
	idx, err := in.Eval(n.Index, scope)
	if err != nil {
		return nil, err
	}
	switch t := target.(type) {
	case *runtime.ArrValue:
		i, err := expectArrIndex(idx, len(t.Elements))
		if err != nil {
			return nil, err
		}
		if i < 0 || i >= len(t.Elements) {
			return nil, aerrors.NewIndexOutOfRange(i, len(t.Elements)-1)
		}
		return t.Elements[i], nil
	case *runtime.ObjValue:
		key, ok := idx.(*runtime.StrValue)
		if !ok {
			return nil, aerrors.NewTypeMismatch("str", idx.Type())
		}
		v, ok := t.Get(key.S)
		if !ok {
			return runtime.Null(), nil
		}
		return v, nil
	default:
		return nil, aerrors.NewTypeMismatch("arr or obj", target.Type())
	}
}

func (in *Interpreter) evalProp(n *ast.Prop, scope *runtime.Scope) (runtime.Value, error) {
	target, err := in.Eval(n.Target, scope)
	if err != nil {
		return nil, err
	}
	if o, ok := target.(*runtime.ObjValue); ok {
		v, ok := o.Get(n.Name)
		if !ok {
			return runtime.Null(), nil
		}
		return v, nil
	}
	return stdlib.PrimitiveProp(target, n.Name, in)
}
