package interp

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/aiscript-dev/aiscript-go/internal/runtime"
	"github.com/aiscript-dev/aiscript-go/pkg/ast"
)

func newTestInterp(maxStep int) *Interpreter {
	return New(Options{MaxStep: maxStep, Log: logr.Discard()})
}

func evalTop(t *testing.T, in *Interpreter, node ast.Node) runtime.Value {
	t.Helper()
	v, err := in.Eval(node, in.root)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	return v
}

func num(n float64) *ast.NumLiteral   { return &ast.NumLiteral{Value: n} }
func str(s string) *ast.StrLiteral    { return &ast.StrLiteral{Value: s} }
func boolean(b bool) *ast.BoolLiteral { return &ast.BoolLiteral{Value: b} }
func ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: name}
}
func block(nodes ...ast.Node) *ast.Block {
	return &ast.Block{Statements: nodes}
}
func idPat(name string) *ast.IdentifierPattern {
	return &ast.IdentifierPattern{Name: name}
}
