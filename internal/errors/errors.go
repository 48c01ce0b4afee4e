// Package errors implements the AiScript error taxonomy from spec §6/§7:
// a single tagged AiScriptError with Syntax/Runtime/Namespace/Internal
// kinds, following go-dws's internal/interp/errors package shape
// (InterpreterError + Category + constructor-function pairs) rather than
// a forest of unrelated Go error types.
package errors

import "fmt"

// Kind is the top-level error category surfaced through the public API.
type Kind string

const (
	KindSyntax    Kind = "Syntax"
	KindRuntime   Kind = "Runtime"
	KindNamespace Kind = "Namespace"
	KindInternal  Kind = "Internal"
)

// Position mirrors ast.Position without importing pkg/ast, to keep this
// package dependency-free.
type Position struct {
	Line   int
	Column int
	Offset int
}

// RuntimeKind enumerates the Runtime sub-kinds from spec §7.
type RuntimeKind string

const (
	RuntimeTypeMismatch            RuntimeKind = "TypeMismatch"
	RuntimeIndexOutOfRange         RuntimeKind = "IndexOutOfRange"
	RuntimeNoSuchVariable          RuntimeKind = "NoSuchVariable"
	RuntimeNoSuchProperty          RuntimeKind = "NoSuchProperty"
	RuntimeInvalidProperty         RuntimeKind = "InvalidProperty"
	RuntimeInvalidPrimitiveProperty RuntimeKind = "InvalidPrimitiveProperty"
	RuntimeAssignmentToImmutable   RuntimeKind = "AssignmentToImmutable"
	RuntimeAlreadyDefined          RuntimeKind = "AlreadyDefined"
	RuntimeInvalidAssignment       RuntimeKind = "InvalidAssignment"
	RuntimeInvalidDefinition       RuntimeKind = "InvalidDefinition"
	RuntimeInvalidSeed             RuntimeKind = "InvalidSeed"
	RuntimeUnexpectedNegative      RuntimeKind = "UnexpectedNegative"
	RuntimeUnexpectedNonInteger    RuntimeKind = "UnexpectedNonInteger"
	RuntimeReduceWithoutInitial    RuntimeKind = "ReduceWithoutInitialValue"
	RuntimeMaxStepExceeded         RuntimeKind = "MaxStepExceeded"
	RuntimeUser                    RuntimeKind = "User"
	RuntimeGeneric                 RuntimeKind = "Runtime"
)

// NamespaceKind enumerates the Namespace sub-kinds from spec §4.2.
type NamespaceKind string

const (
	NamespaceMutable        NamespaceKind = "Mutable"
	NamespaceDestructuring  NamespaceKind = "DestructuringAssignment"
)

// AiScriptError is the single error type that crosses the public API
// boundary (spec §6): exec/exec_fn/run all fail with this type.
type AiScriptError struct {
	Kind Kind

	// Syntax
	SyntaxDetail string
	Pos          *Position

	// Runtime
	RuntimeKind RuntimeKind
	Message     string
	Name        string // variable/property/identifier name, when relevant
	TargetType  string // type name a property/index error occurred on
	Index       int
	Max         int
	Expected    string
	Actual      string
	Op          string

	// Namespace
	NamespaceKind NamespaceKind

	// Internal
	InternalMessage string
}

func (e *AiScriptError) Error() string {
	switch e.Kind {
	case KindSyntax:
		return fmt.Sprintf("SyntaxError: %s", e.SyntaxDetail)
	case KindNamespace:
		return fmt.Sprintf("NamespaceError(%s): %s", e.NamespaceKind, e.Name)
	case KindInternal:
		return fmt.Sprintf("InternalError: %s", e.InternalMessage)
	default:
		return fmt.Sprintf("RuntimeError(%s): %s", e.RuntimeKind, e.runtimeMessage())
	}
}

func (e *AiScriptError) runtimeMessage() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.RuntimeKind {
	case RuntimeTypeMismatch:
		return fmt.Sprintf("expected %s, got %s", e.Expected, e.Actual)
	case RuntimeIndexOutOfRange:
		return fmt.Sprintf("index %d out of range (max %d)", e.Index, e.Max)
	case RuntimeNoSuchVariable:
		return fmt.Sprintf("no such variable: %s", e.Name)
	case RuntimeNoSuchProperty:
		return fmt.Sprintf("no such property %q on %s", e.Name, e.TargetType)
	case RuntimeInvalidProperty:
		return fmt.Sprintf("invalid property key for %s", e.TargetType)
	case RuntimeInvalidPrimitiveProperty:
		return fmt.Sprintf("invalid property %q on %s", e.Name, e.TargetType)
	case RuntimeAssignmentToImmutable:
		return fmt.Sprintf("cannot assign to immutable variable %q", e.Name)
	case RuntimeAlreadyDefined:
		return fmt.Sprintf("%q is already defined", e.Name)
	case RuntimeUnexpectedNegative:
		return fmt.Sprintf("%s: expected a non-negative value", e.Op)
	case RuntimeUnexpectedNonInteger:
		return fmt.Sprintf("%s: expected an integer value", e.Op)
	case RuntimeReduceWithoutInitial:
		return "reduce of empty array with no initial value"
	case RuntimeMaxStepExceeded:
		return "max step exceeded"
	default:
		return string(e.RuntimeKind)
	}
}

// --- constructors ---

func NewRuntime(kind RuntimeKind, message string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: kind, Message: message}
}

func NewTypeMismatch(expected, actual string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeTypeMismatch, Expected: expected, Actual: actual}
}

func NewIndexOutOfRange(index, max int) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeIndexOutOfRange, Index: index, Max: max}
}

func NewNoSuchVariable(name string, pos *Position) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeNoSuchVariable, Name: name, Pos: pos}
}

func NewNoSuchProperty(name, targetType string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeNoSuchProperty, Name: name, TargetType: targetType}
}

func NewInvalidProperty(name, targetType string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeInvalidProperty, Name: name, TargetType: targetType}
}

func NewInvalidPrimitiveProperty(name, targetType string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeInvalidPrimitiveProperty, Name: name, TargetType: targetType}
}

func NewAssignmentToImmutable(name string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeAssignmentToImmutable, Name: name}
}

func NewAlreadyDefined(name string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeAlreadyDefined, Name: name}
}

func NewInvalidAssignment(message string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeInvalidAssignment, Message: message}
}

func NewInvalidDefinition(message string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeInvalidDefinition, Message: message}
}

func NewInvalidSeed() *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeInvalidSeed, Message: "invalid seed for Math:gen_rng"}
}

func NewUnexpectedNegative(op string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeUnexpectedNegative, Op: op}
}

func NewUnexpectedNonInteger(op string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeUnexpectedNonInteger, Op: op}
}

func NewReduceWithoutInitial() *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeReduceWithoutInitial}
}

func NewMaxStepExceeded() *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeMaxStepExceeded}
}

func NewUser(message string) *AiScriptError {
	return &AiScriptError{Kind: KindRuntime, RuntimeKind: RuntimeUser, Message: message}
}

func NewNamespace(kind NamespaceKind, name string, pos *Position) *AiScriptError {
	return &AiScriptError{Kind: KindNamespace, NamespaceKind: kind, Name: name, Pos: pos}
}

func NewInternal(message string) *AiScriptError {
	return &AiScriptError{Kind: KindInternal, InternalMessage: message}
}

func NewSyntax(detail string, pos *Position) *AiScriptError {
	return &AiScriptError{Kind: KindSyntax, SyntaxDetail: detail, Pos: pos}
}
