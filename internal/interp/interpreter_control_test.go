package interp

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"github.com/aiscript-dev/aiscript-go/pkg/ast"
)

func TestEvalLoopBreaksWithPayload(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("i"), Expr: num(0), Mut: true})
	loop := &ast.Loop{Statements: []ast.Node{
		&ast.AddAssign{Dest: ident("i"), Expr: num(1)},
		&ast.If{
			Cond: &ast.BinaryExpr{Op: ast.OpGteq, Left: ident("i"), Right: num(3)},
			Then: block(&ast.Break{Expr: ident("i")}),
		},
	}}
	got := evalTop(t, in, loop).(*runtime.NumValue).N
	if got != 3 {
		t.Errorf("loop break payload = %v, want 3", got)
	}
}

func TestEvalWhile(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("i"), Expr: num(0), Mut: true})
	evalTop(t, in, &ast.Definition{Dest: idPat("sum"), Expr: num(0), Mut: true})
	w := &ast.While{
		Cond: &ast.BinaryExpr{Op: ast.OpLt, Left: ident("i"), Right: num(5)},
		Body: block(
			&ast.AddAssign{Dest: ident("sum"), Expr: ident("i")},
			&ast.AddAssign{Dest: ident("i"), Expr: num(1)},
		),
	}
	evalTop(t, in, w)
	got := evalTop(t, in, ident("sum")).(*runtime.NumValue).N
	if got != 10 {
		t.Errorf("while sum 0..4 = %v, want 10", got)
	}
}

func TestEvalDoWhileRunsBodyAtLeastOnce(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("i"), Expr: num(0), Mut: true})
	dw := &ast.DoWhile{
		Cond: boolean(false),
		Body: block(&ast.AddAssign{Dest: ident("i"), Expr: num(1)}),
	}
	evalTop(t, in, dw)
	got := evalTop(t, in, ident("i")).(*runtime.NumValue).N
	if got != 1 {
		t.Errorf("do-while body ran %v times, want 1", got)
	}
}

func TestEvalForRunsTimesIterations(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("n"), Expr: num(0), Mut: true})
	f := &ast.For{
		Times: num(4),
		For:   block(&ast.AddAssign{Dest: ident("n"), Expr: num(1)}),
	}
	evalTop(t, in, f)
	got := evalTop(t, in, ident("n")).(*runtime.NumValue).N
	if got != 4 {
		t.Errorf("for(4) ran %v times, want 4", got)
	}
}

func TestEvalForLetSpanIsCountNotBound(t *testing.T) {
	in := newTestInterp(0)
	// for (let i = 2, 3) ranges over i = 2, 3, 4 (3 iterations starting
	// at 2, since `to` is a span length, not an end bound) — sum the
	// loop variable itself to check both the iteration count and the
	// actual values bound each pass.
	evalTop(t, in, &ast.Definition{Dest: idPat("sum"), Expr: num(0), Mut: true})
	fl := &ast.ForLet{
		Var:  "i",
		From: num(2),
		To:   num(3),
		For:  block(&ast.AddAssign{Dest: ident("sum"), Expr: ident("i")}),
	}
	evalTop(t, in, fl)
	got := evalTop(t, in, ident("sum")).(*runtime.NumValue).N
	if got != 9 { // 2 + 3 + 4
		t.Errorf("for(let i=2,3) sum = %v, want 9", got)
	}
}

func TestEvalEachSnapshotsArrayAndBindsVar(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("sum"), Expr: num(0), Mut: true})
	each := &ast.Each{
		Var:   "x",
		Items: &ast.ArrLiteral{Elements: []ast.Expression{num(1), num(2), num(3)}},
		For:   block(&ast.AddAssign{Dest: ident("sum"), Expr: ident("x")}),
	}
	evalTop(t, in, each)
	got := evalTop(t, in, ident("sum")).(*runtime.NumValue).N
	if got != 6 {
		t.Errorf("each sum = %v, want 6", got)
	}
}

func TestEvalLabeledBreakEscapesOuterLoopOnly(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("hits"), Expr: num(0), Mut: true})
	// outer@for(3) { for(3) { hits += 1; if (hits == 2) { break outer } } }
	inner := &ast.For{
		Times: num(3),
		For: block(
			&ast.AddAssign{Dest: ident("hits"), Expr: num(1)},
			&ast.If{
				Cond: &ast.BinaryExpr{Op: ast.OpEq, Left: ident("hits"), Right: num(2)},
				Then: block(&ast.Break{Label: "outer"}),
			},
		),
	}
	outer := &ast.For{
		Label: "outer",
		Times: num(3),
		For:   block(inner),
	}
	evalTop(t, in, outer)
	got := evalTop(t, in, ident("hits")).(*runtime.NumValue).N
	if got != 2 {
		t.Errorf("labeled break left hits = %v, want 2", got)
	}
}

func TestEvalContinueSkipsRestOfIteration(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("sum"), Expr: num(0), Mut: true})
	evalTop(t, in, &ast.Definition{Dest: idPat("skipped"), Expr: num(0), Mut: true})
	each := &ast.Each{
		Var:   "x",
		Items: &ast.ArrLiteral{Elements: []ast.Expression{num(1), num(2), num(3), num(4)}},
		For: block(
			&ast.If{
				Cond: &ast.BinaryExpr{Op: ast.OpEq, Left: &ast.BinaryExpr{Op: ast.OpRem, Left: ident("x"), Right: num(2)}, Right: num(0)},
				Then: block(&ast.Continue{}),
			},
			&ast.AddAssign{Dest: ident("skipped"), Expr: num(1)},
		),
	}
	evalTop(t, in, each)
	got := evalTop(t, in, ident("skipped")).(*runtime.NumValue).N
	if got != 2 {
		t.Errorf("odd-count after continuing on evens = %v, want 2", got)
	}
}

func TestEvalMaxStepExceeded(t *testing.T) {
	in := newTestInterp(3)
	loop := &ast.Loop{Statements: []ast.Node{num(1)}}
	_, err := in.Eval(loop, in.root)
	if err == nil {
		t.Fatal("an unbounded Loop should fail once the step budget is exhausted")
	}
}

func TestEvalAbortStopsExecution(t *testing.T) {
	in := newTestInterp(0)
	in.Abort()
	loop := &ast.Loop{Statements: []ast.Node{num(1)}}
	v, err := in.Eval(loop, in.root)
	if err != nil {
		t.Fatalf("evaluating after Abort should not fail, got: %v", err)
	}
	if _, ok := v.(*runtime.NullValue); !ok {
		t.Errorf("evaluating after Abort = %v, want Null", v.Repr())
	}
}
