package interp

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"github.com/aiscript-dev/aiscript-go/pkg/ast"
)

func TestEvalLiterals(t *testing.T) {
	in := newTestInterp(0)
	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{"num", num(42), "42"},
		{"str", str("hi"), `"hi"`},
		{"bool", boolean(true), "true"},
		{"null", &ast.NullLiteral{}, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evalTop(t, in, tt.node)
			if got.Repr() != tt.want {
				t.Errorf("Repr() = %v, want %v", got.Repr(), tt.want)
			}
		})
	}
}

func TestEvalArrAndObjLiterals(t *testing.T) {
	in := newTestInterp(0)
	arr := evalTop(t, in, &ast.ArrLiteral{Elements: []ast.Expression{num(1), num(2), num(3)}}).(*runtime.ArrValue)
	if len(arr.Elements) != 3 {
		t.Fatalf("len = %d, want 3", len(arr.Elements))
	}
	obj := evalTop(t, in, &ast.ObjLiteral{Entries: []ast.ObjEntry{
		{Key: "a", Value: num(1)},
		{Key: "b", Value: str("x")},
	}}).(*runtime.ObjValue)
	v, ok := obj.Get("a")
	if !ok || v.(*runtime.NumValue).N != 1 {
		t.Errorf("obj.a = %v", v)
	}
}

func TestEvalUnaryOps(t *testing.T) {
	in := newTestInterp(0)
	if got := evalTop(t, in, &ast.Minus{Expr: num(5)}).(*runtime.NumValue).N; got != -5 {
		t.Errorf("-5 = %v, want -5", got)
	}
	if got := evalTop(t, in, &ast.Plus{Expr: num(5)}).(*runtime.NumValue).N; got != 5 {
		t.Errorf("+5 = %v, want 5", got)
	}
	if got := evalTop(t, in, &ast.Not{Expr: boolean(false)}).(*runtime.BoolValue).B; !got {
		t.Error("!false should be true")
	}
}

func TestEvalBinaryArithmeticRoutesThroughCore(t *testing.T) {
	in := newTestInterp(0)
	got := evalTop(t, in, &ast.BinaryExpr{Op: ast.OpAdd, Left: num(2), Right: num(3)}).(*runtime.NumValue).N
	if got != 5 {
		t.Errorf("2+3 = %v, want 5", got)
	}
	got = evalTop(t, in, &ast.BinaryExpr{Op: ast.OpMul, Left: num(4), Right: num(5)}).(*runtime.NumValue).N
	if got != 20 {
		t.Errorf("4*5 = %v, want 20", got)
	}
	eq := evalTop(t, in, &ast.BinaryExpr{Op: ast.OpEq, Left: num(3), Right: num(3)}).(*runtime.BoolValue).B
	if !eq {
		t.Error("3 == 3 should be true")
	}
}

func TestEvalAndOrShortCircuit(t *testing.T) {
	in := newTestInterp(0)
	got := evalTop(t, in, &ast.And{Left: boolean(false), Right: &ast.Identifier{Name: "does_not_exist"}}).(*runtime.BoolValue).B
	if got {
		t.Error("false && X should short-circuit to false without evaluating X")
	}
	got = evalTop(t, in, &ast.Or{Left: boolean(true), Right: &ast.Identifier{Name: "does_not_exist"}}).(*runtime.BoolValue).B
	if !got {
		t.Error("true || X should short-circuit to true")
	}
}

func TestEvalDefinitionAndIdentifier(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("x"), Expr: num(10), Mut: false})
	got := evalTop(t, in, ident("x")).(*runtime.NumValue).N
	if got != 10 {
		t.Errorf("x = %v, want 10", got)
	}
}

func TestEvalAssignToConstFails(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("x"), Expr: num(1), Mut: false})
	_, err := in.Eval(&ast.Assign{Dest: idPat("x"), Expr: num(2)}, in.root)
	if err == nil {
		t.Fatal("assigning to a let binding should fail")
	}
}

func TestEvalAssignToMutSucceeds(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("x"), Expr: num(1), Mut: true})
	evalTop(t, in, &ast.Assign{Dest: idPat("x"), Expr: num(2)})
	got := evalTop(t, in, ident("x")).(*runtime.NumValue).N
	if got != 2 {
		t.Errorf("x after assign = %v, want 2", got)
	}
}

func TestEvalExistsExpr(t *testing.T) {
	in := newTestInterp(0)
	if evalTop(t, in, &ast.Exists{Name: "nope"}).(*runtime.BoolValue).B {
		t.Error("exists(undefined) should be false")
	}
	evalTop(t, in, &ast.Definition{Dest: idPat("y"), Expr: num(1)})
	if !evalTop(t, in, &ast.Exists{Name: "y"}).(*runtime.BoolValue).B {
		t.Error("exists(y) should be true")
	}
}

func TestEvalDestructuringArrayPattern(t *testing.T) {
	in := newTestInterp(0)
	arrLit := &ast.ArrLiteral{Elements: []ast.Expression{num(1), num(2)}}
	pat := &ast.ArrayPattern{Elements: []ast.Pattern{idPat("a"), idPat("b")}}
	evalTop(t, in, &ast.Definition{Dest: pat, Expr: arrLit})
	if got := evalTop(t, in, ident("a")).(*runtime.NumValue).N; got != 1 {
		t.Errorf("a = %v, want 1", got)
	}
	if got := evalTop(t, in, ident("b")).(*runtime.NumValue).N; got != 2 {
		t.Errorf("b = %v, want 2", got)
	}
}

func TestEvalDestructuringSwap(t *testing.T) {
	in := newTestInterp(0)
	evalTop(t, in, &ast.Definition{Dest: idPat("a"), Expr: num(1), Mut: true})
	evalTop(t, in, &ast.Definition{Dest: idPat("b"), Expr: num(2), Mut: true})
	pat := &ast.ArrayPattern{Elements: []ast.Pattern{idPat("a"), idPat("b")}}
	swapVal := &ast.ArrLiteral{Elements: []ast.Expression{ident("b"), ident("a")}}
	if _, err := in.Eval(&ast.Assign{Dest: pat, Expr: swapVal}, in.root); err != nil {
		t.Fatalf("destructuring assign error: %v", err)
	}
	if got := evalTop(t, in, ident("a")).(*runtime.NumValue).N; got != 2 {
		t.Errorf("a after swap = %v, want 2", got)
	}
	if got := evalTop(t, in, ident("b")).(*runtime.NumValue).N; got != 1 {
		t.Errorf("b after swap = %v, want 1", got)
	}
}
