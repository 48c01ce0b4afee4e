// Package runtime implements the AiScript runtime value model (arrays,
// objects, functions, errors, and the control-flow values that travel on
// the evaluator's stack) together with the lexical Scope bindings close
// over. Value and Scope are kept in one package, mirroring go-dws's
// internal/interp/runtime package, so that function closures can hold a
// *Scope without an import cycle between "the value of a function" and
// "the scope a function closes over".
package runtime

import "fmt"

// Value is the runtime representation of every AiScript value, including
// the control-flow values (Return/Break/Continue) that are legal only on
// the evaluator's value stack and never as stored data.
type Value interface {
	// Type returns the AiScript type name: "num", "str", "bool", "null",
	// "arr", "obj", "fn", "error", or (control-only) "return"/"break"/
	// "continue".
	Type() string
	// Repr returns the canonical display form used by Core:to_str,
	// template interpolation, and the Json:stringify fallback.
	Repr() string
	value()
}

// Attribute decorates a Value with one `#[name value]` annotation. The
// evaluator preserves attributes; it never interprets them.
type Attribute struct {
	Name  string
	Value Value
}

// attrs is embedded by every non-control Value to carry its attribute
// list without repeating accessor boilerplate per type.
type attrs struct {
	list []Attribute
}

func (a *attrs) Attributes() []Attribute { return a.list }
func (a *attrs) SetAttributes(list []Attribute) { a.list = list }

// Attributed is implemented by every storage Value (not the control
// values, which never carry attributes).
type Attributed interface {
	Attributes() []Attribute
	SetAttributes(list []Attribute)
}

// --- Null ---

type NullValue struct{ attrs }

func Null() *NullValue          { return &NullValue{} }
func (*NullValue) Type() string { return "null" }
func (*NullValue) Repr() string { return "null" }
func (*NullValue) value()       {}

// --- Bool ---

type BoolValue struct {
	attrs
	B bool
}

func Bool(b bool) *BoolValue    { return &BoolValue{B: b} }
func (*BoolValue) Type() string { return "bool" }
func (v *BoolValue) Repr() string {
	if v.B {
		return "true"
	}
	return "false"
}
func (*BoolValue) value() {}

// --- Num ---

// NumValue is an IEEE-754 double. NaN compares equal to itself under
// Core:eq, deliberately diverging from IEEE semantics (spec §3/§9).
type NumValue struct {
	attrs
	N float64
}

func Num(n float64) *NumValue  { return &NumValue{N: n} }
func (*NumValue) Type() string { return "num" }
func (v *NumValue) Repr() string {
	return formatNum(v.N)
}
func (*NumValue) value() {}

// --- Str ---

type StrValue struct {
	attrs
	S string
}

func Str(s string) *StrValue   { return &StrValue{S: s} }
func (*StrValue) Type() string { return "str" }
func (v *StrValue) Repr() string {
	return fmt.Sprintf("%q", v.S)
}
func (*StrValue) value() {}

// --- Arr ---

// ArrValue is a shared-mutable ordered sequence: assigning an ArrValue
// pointer shares storage with every other holder of that same pointer,
// so mutation through one binding is visible through all of them.
type ArrValue struct {
	attrs
	Elements []Value
}

func Arr(elements ...Value) *ArrValue {
	return &ArrValue{Elements: elements}
}
func (*ArrValue) Type() string { return "arr" }
func (v *ArrValue) Repr() string {
	return reprArr(v, newCycleGuard())
}
func (*ArrValue) value() {}

// --- Obj ---

// ObjValue is a shared-mutable insertion-ordered string-keyed mapping,
// with the same pointer-sharing semantics as ArrValue.
type ObjValue struct {
	attrs
	om *OrderedMap
}

func Obj() *ObjValue { return &ObjValue{om: newOrderedMap()} }

func (o *ObjValue) Get(key string) (Value, bool) { return o.om.Get(key) }
func (o *ObjValue) Set(key string, v Value)       { o.om.Set(key, v) }
func (o *ObjValue) Delete(key string)              { o.om.Delete(key) }
func (o *ObjValue) Has(key string) bool            { return o.om.Has(key) }
func (o *ObjValue) Keys() []string                 { return o.om.Keys() }
func (o *ObjValue) Len() int                        { return o.om.Len() }

func (*ObjValue) Type() string { return "obj" }
func (v *ObjValue) Repr() string {
	return reprObj(v, newCycleGuard())
}
func (*ObjValue) value() {}

// --- Error ---

type ErrorValue struct {
	attrs
	Name string
	Info Value // may be nil, meaning "no info"
}

func Error(name string, info Value) *ErrorValue {
	return &ErrorValue{Name: name, Info: info}
}
func (*ErrorValue) Type() string { return "error" }
func (v *ErrorValue) Repr() string {
	if v.Info == nil {
		return fmt.Sprintf("Error: %s", v.Name)
	}
	return fmt.Sprintf("Error: %s (%s)", v.Name, v.Info.Repr())
}
func (*ErrorValue) value() {}
