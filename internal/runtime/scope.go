package runtime

import "fmt"

// Variable is a single binding: either an immutable Const (a `let`
// binding, or any namespace-exported binding) or a mutable Mut (a `var`
// binding). Assigning to a Const raises AssignmentToImmutable.
type Variable struct {
	Value   Value
	Mutable bool
}

func ConstVar(v Value) Variable { return Variable{Value: v, Mutable: false} }
func MutVar(v Value) Variable   { return Variable{Value: v, Mutable: true} }

// ScopeError is returned by Scope methods for the handful of failures
// that are Scope's own responsibility (spec §4.2); the evaluator wraps
// these into the public AiScriptError taxonomy.
type ScopeError struct {
	Kind string // "NoSuchVariable" | "AlreadyDefined" | "AssignmentToImmutable"
	Name string
}

func (e *ScopeError) Error() string {
	switch e.Kind {
	case "AlreadyDefined":
		return fmt.Sprintf("identifier %q is already defined", e.Name)
	case "AssignmentToImmutable":
		return fmt.Sprintf("assignment to immutable variable %q", e.Name)
	default:
		return fmt.Sprintf("no such variable: %q", e.Name)
	}
}

// Scope is a lexical frame: a parent pointer plus a mapping from
// unqualified name to Variable. Namespace scopes additionally carry a
// prefix that is prepended when a binding is exported to the parent.
type Scope struct {
	parent *Scope
	prefix string // "" for ordinary (non-namespace) scopes
	vars   map[string]Variable
}

// NewRootScope creates the top-level scope, pre-seeded with the given
// bindings (typically stdlib + host-injected consts), all bound as Const.
func NewRootScope(seed map[string]Value) *Scope {
	s := &Scope{vars: make(map[string]Variable, len(seed))}
	for name, v := range seed {
		s.vars[name] = ConstVar(v)
	}
	return s
}

// CreateChildScope opens a new block/function/loop-iteration frame.
func (s *Scope) CreateChildScope() *Scope {
	return &Scope{parent: s, vars: make(map[string]Variable)}
}

// CreateChildNamespaceScope opens a namespace frame: bindings added here
// via Add are also exported to the nearest enclosing non-namespace scope
// under "prefix:name", or "outerPrefix:prefix:name" when this namespace
// itself nests inside another.
func (s *Scope) CreateChildNamespaceScope(name string, seed map[string]Value) *Scope {
	full := name
	if s.prefix != "" {
		full = s.prefix + ":" + name
	}
	child := &Scope{parent: s, prefix: full, vars: make(map[string]Variable, len(seed))}
	for k, v := range seed {
		child.vars[k] = ConstVar(v)
	}
	return child
}

// Get resolves name by walking from this scope outward.
func (s *Scope) Get(name string) (Value, error) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v.Value, nil
		}
	}
	return nil, &ScopeError{Kind: "NoSuchVariable", Name: name}
}

// Exists reports whether name is bound anywhere in the scope chain,
// without raising an error — backs the `exists` expression.
func (s *Scope) Exists(name string) bool {
	_, err := s.Get(name)
	return err == nil
}

// Add defines a new binding in this frame. If this is a namespace scope,
// the binding is additionally exported to the nearest enclosing
// non-namespace scope under the qualified name so that "Ns:name" resolves
// from outside.
func (s *Scope) Add(name string, v Variable) error {
	if _, exists := s.vars[name]; exists {
		return &ScopeError{Kind: "AlreadyDefined", Name: name}
	}
	s.vars[name] = v
	if s.prefix != "" {
		qualified := s.prefix + ":" + name
		// Nested namespaces accumulate a dotted prefix ("outer:inner"),
		// but only the first non-namespace ancestor (ordinarily the
		// root scope the program actually executes in) needs the fully
		// qualified binding — skip past any chain of namespace frames.
		target := s.parent
		for target != nil && target.prefix != "" {
			target = target.parent
		}
		if target != nil {
			target.vars[qualified] = v
		}
	}
	return nil
}

// Assign walks outward from this scope to find name and overwrite its
// value, failing if the binding is Const or unresolved.
func (s *Scope) Assign(name string, v Value) error {
	for cur := s; cur != nil; cur = cur.parent {
		if existing, ok := cur.vars[name]; ok {
			if !existing.Mutable {
				return &ScopeError{Kind: "AssignmentToImmutable", Name: name}
			}
			cur.vars[name] = Variable{Value: v, Mutable: true}
			return nil
		}
	}
	return &ScopeError{Kind: "NoSuchVariable", Name: name}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }
