package ast

// Namespace is a named lexical scope whose member Definitions are
// exported to the enclosing scope under "name:member". Members may
// themselves be nested Namespace nodes (registered before sibling
// Definitions are evaluated, so forward references resolve) or
// Definitions (which must be immutable, non-destructuring bindings).
type Namespace struct {
	base
	Name    string
	Members []Node // *Namespace or *Definition
}

// Meta is a top-level `### name value` (or unnamed `###` value)
// metadata node. Only literal Value expressions survive
// Interpreter.CollectMetadata; everything else is dropped.
type Meta struct {
	base
	Name  *string // nil for unnamed metadata
	Value Expression
}

// Program is the parser's output: the top-level sequence of nodes handed
// to Interpreter.Exec. Each element is one of Statement, Expression,
// *Namespace, or *Meta.
type Program []Node
