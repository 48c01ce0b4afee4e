package interp

import (
	"testing"

	aerrors "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"github.com/aiscript-dev/aiscript-go/pkg/ast"
)

func TestExecNamespaceExportsQualifiedName(t *testing.T) {
	in := newTestInterp(0)
	prog := ast.Program{
		&ast.Namespace{Name: "Ns", Members: []ast.Node{
			&ast.Definition{Dest: idPat("answer"), Expr: num(42)},
		}},
	}
	if err := in.Exec(prog); err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	got, err := in.root.Get("Ns:answer")
	if err != nil {
		t.Fatalf("Ns:answer not resolved: %v", err)
	}
	if got.(*runtime.NumValue).N != 42 {
		t.Errorf("Ns:answer = %v, want 42", got)
	}
}

func TestExecNamespaceForwardReference(t *testing.T) {
	in := newTestInterp(0)
	// The nested Inner namespace is listed after viaInner's Definition,
	// but registerNamespaces registers every nested namespace (fully,
	// including its own members) before any sibling Definition in the
	// same block evaluates, so Outer's own member can reference Inner's
	// export regardless of source order.
	prog := ast.Program{
		&ast.Namespace{Name: "Outer", Members: []ast.Node{
			&ast.Definition{Dest: idPat("viaInner"), Expr: ident("Outer:Inner:value")},
			&ast.Namespace{Name: "Inner", Members: []ast.Node{
				&ast.Definition{Dest: idPat("value"), Expr: num(7)},
			}},
		}},
	}
	if err := in.Exec(prog); err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	got, err := in.root.Get("Outer:viaInner")
	if err != nil {
		t.Fatalf("Outer:viaInner not resolved: %v", err)
	}
	if got.(*runtime.NumValue).N != 7 {
		t.Errorf("Outer:viaInner = %v, want 7", got)
	}
}

func TestExecNamespaceRejectsMutableMember(t *testing.T) {
	in := newTestInterp(0)
	prog := ast.Program{
		&ast.Namespace{Name: "Ns", Members: []ast.Node{
			&ast.Definition{Dest: idPat("x"), Expr: num(1), Mut: true},
		}},
	}
	err := in.Exec(prog)
	if err == nil {
		t.Fatal("a var inside a namespace should be rejected")
	}
	ae, ok := err.(*aerrors.AiScriptError)
	if !ok {
		t.Fatalf("error is not an AiScriptError: %v (%T)", err, err)
	}
	if ae.Kind != aerrors.KindNamespace {
		t.Errorf("error kind = %v, want Namespace", ae.Kind)
	}
}

func TestExecNamespaceRejectsDestructuringMember(t *testing.T) {
	in := newTestInterp(0)
	prog := ast.Program{
		&ast.Namespace{Name: "Ns", Members: []ast.Node{
			&ast.Definition{
				Dest: &ast.ArrayPattern{Elements: []ast.Pattern{idPat("a"), idPat("b")}},
				Expr: &ast.ArrLiteral{Elements: []ast.Expression{num(1), num(2)}},
			},
		}},
	}
	err := in.Exec(prog)
	if err == nil {
		t.Fatal("a destructuring definition inside a namespace should be rejected")
	}
	ae, ok := err.(*aerrors.AiScriptError)
	if !ok {
		t.Fatalf("error is not an AiScriptError: %v (%T)", err, err)
	}
	if ae.Kind != aerrors.KindNamespace {
		t.Errorf("error kind = %v, want Namespace", ae.Kind)
	}
}

func TestExecNamespaceNestedDottedPrefix(t *testing.T) {
	in := newTestInterp(0)
	prog := ast.Program{
		&ast.Namespace{Name: "Outer", Members: []ast.Node{
			&ast.Namespace{Name: "Inner", Members: []ast.Node{
				&ast.Definition{Dest: idPat("value"), Expr: num(9)},
			}},
		}},
	}
	if err := in.Exec(prog); err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	got, err := in.root.Get("Outer:Inner:value")
	if err != nil {
		t.Fatalf("Outer:Inner:value not resolved: %v", err)
	}
	if got.(*runtime.NumValue).N != 9 {
		t.Errorf("Outer:Inner:value = %v, want 9", got)
	}
}

func TestExecTopLevelNodesRunAfterNamespacePrePass(t *testing.T) {
	in := newTestInterp(0)
	prog := ast.Program{
		&ast.Definition{Dest: idPat("x"), Expr: ident("Ns:base")},
		&ast.Namespace{Name: "Ns", Members: []ast.Node{
			&ast.Definition{Dest: idPat("base"), Expr: num(5)},
		}},
	}
	if err := in.Exec(prog); err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	got, err := in.root.Get("x")
	if err != nil {
		t.Fatalf("x not resolved: %v", err)
	}
	if got.(*runtime.NumValue).N != 5 {
		t.Errorf("x = %v, want 5 (namespace registered before top-level x Definition ran)", got)
	}
}
