package runtime

import "testing"

func TestRootScopeGet(t *testing.T) {
	root := NewRootScope(map[string]Value{"x": Num(1)})
	v, err := root.Get("x")
	if err != nil {
		t.Fatalf("Get(x) error = %v", err)
	}
	if v.(*NumValue).N != 1 {
		t.Fatalf("Get(x) = %v, want 1", v.Repr())
	}
}

func TestGetNoSuchVariable(t *testing.T) {
	root := NewRootScope(nil)
	_, err := root.Get("missing")
	if err == nil {
		t.Fatal("expected an error for an unbound identifier")
	}
	se, ok := err.(*ScopeError)
	if !ok || se.Kind != "NoSuchVariable" {
		t.Fatalf("err = %v, want ScopeError{Kind: NoSuchVariable}", err)
	}
}

func TestChildScopeShadowing(t *testing.T) {
	root := NewRootScope(map[string]Value{"x": Num(1)})
	child := root.CreateChildScope()
	if err := child.Add("x", ConstVar(Num(2))); err != nil {
		t.Fatalf("Add in child scope failed: %v", err)
	}
	v, _ := child.Get("x")
	if v.(*NumValue).N != 2 {
		t.Fatalf("child Get(x) = %v, want 2 (shadowing outer)", v.Repr())
	}
	v, _ = root.Get("x")
	if v.(*NumValue).N != 1 {
		t.Fatalf("outer scope binding must be unaffected by shadowing, got %v", v.Repr())
	}
}

func TestAddAlreadyDefined(t *testing.T) {
	s := NewRootScope(nil)
	if err := s.Add("x", ConstVar(Num(1))); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}
	err := s.Add("x", ConstVar(Num(2)))
	se, ok := err.(*ScopeError)
	if !ok || se.Kind != "AlreadyDefined" {
		t.Fatalf("err = %v, want ScopeError{Kind: AlreadyDefined}", err)
	}
}

func TestAssignMutable(t *testing.T) {
	s := NewRootScope(nil)
	_ = s.Add("x", MutVar(Num(1)))
	if err := s.Assign("x", Num(2)); err != nil {
		t.Fatalf("Assign to mutable var failed: %v", err)
	}
	v, _ := s.Get("x")
	if v.(*NumValue).N != 2 {
		t.Fatalf("Get(x) after Assign = %v, want 2", v.Repr())
	}
}

func TestAssignToConstFails(t *testing.T) {
	s := NewRootScope(nil)
	_ = s.Add("x", ConstVar(Num(1)))
	err := s.Assign("x", Num(2))
	se, ok := err.(*ScopeError)
	if !ok || se.Kind != "AssignmentToImmutable" {
		t.Fatalf("err = %v, want ScopeError{Kind: AssignmentToImmutable}", err)
	}
}

func TestAssignWalksOuterScopes(t *testing.T) {
	root := NewRootScope(nil)
	_ = root.Add("x", MutVar(Num(1)))
	child := root.CreateChildScope()
	if err := child.Assign("x", Num(99)); err != nil {
		t.Fatalf("Assign from child scope failed: %v", err)
	}
	v, _ := root.Get("x")
	if v.(*NumValue).N != 99 {
		t.Fatalf("root Get(x) = %v, want 99 after child Assign", v.Repr())
	}
}

func TestExists(t *testing.T) {
	root := NewRootScope(map[string]Value{"x": Num(1)})
	if !root.Exists("x") {
		t.Fatal("Exists(x) should be true")
	}
	if root.Exists("y") {
		t.Fatal("Exists(y) should be false")
	}
}

func TestNamespaceScopeExportsQualifiedName(t *testing.T) {
	root := NewRootScope(nil)
	ns := root.CreateChildNamespaceScope("Foo", nil)
	if err := ns.Add("bar", ConstVar(Num(42))); err != nil {
		t.Fatalf("Add in namespace scope failed: %v", err)
	}
	v, err := root.Get("Foo:bar")
	if err != nil {
		t.Fatalf("root.Get(Foo:bar) error = %v", err)
	}
	if v.(*NumValue).N != 42 {
		t.Fatalf("root.Get(Foo:bar) = %v, want 42", v.Repr())
	}
	v2, err := ns.Get("bar")
	if err != nil || v2.(*NumValue).N != 42 {
		t.Fatalf("namespace scope should resolve its own unqualified name too")
	}
}

func TestNestedNamespaceScopeAccumulatesDottedPrefix(t *testing.T) {
	root := NewRootScope(nil)
	outer := root.CreateChildNamespaceScope("Outer", nil)
	inner := outer.CreateChildNamespaceScope("Inner", nil)
	if err := inner.Add("leaf", ConstVar(Num(7))); err != nil {
		t.Fatalf("Add in nested namespace scope failed: %v", err)
	}
	v, err := root.Get("Outer:Inner:leaf")
	if err != nil {
		t.Fatalf("root.Get(Outer:Inner:leaf) error = %v", err)
	}
	if v.(*NumValue).N != 7 {
		t.Fatalf("root.Get(Outer:Inner:leaf) = %v, want 7", v.Repr())
	}
	if _, ok := outer.vars["Outer:Inner:leaf"]; ok {
		t.Fatal("the intermediate namespace scope must not itself receive the qualified binding")
	}
}

func TestParent(t *testing.T) {
	root := NewRootScope(nil)
	child := root.CreateChildScope()
	if child.Parent() != root {
		t.Fatal("Parent() should return the enclosing scope")
	}
	if root.Parent() != nil {
		t.Fatal("root scope Parent() should be nil")
	}
}
