// Package ast defines the Abstract Syntax Tree node types consumed by the
// AiScript evaluator. These types are produced by an external parser/lexer
// (out of scope for this module) and are pure data: no behavior beyond
// position reporting lives here.
package ast

// Position marks an offset into the source text the node was parsed from.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Loc is the (start, end) source span every node optionally carries.
type Loc struct {
	Start Position
	End   Position
}

// Node is the root interface implemented by every statement, expression,
// namespace and metadata node.
type Node interface {
	// Pos returns the node's source span. The zero Loc is valid: it means
	// the producing parser did not attach location information.
	Pos() Loc
	node()
}

// Statement is a node executed for effect; it never yields a value on the
// evaluator's value stack except via its contained expressions.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that evaluates to a Value.
type Expression interface {
	Node
	expressionNode()
}

// base embeds the common Loc bookkeeping for every concrete node.
type base struct {
	Loc Loc
}

func (b base) Pos() Loc { return b.Loc }
func (base) node()      {}
