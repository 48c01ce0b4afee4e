package runtime

import "math"

// Equal implements Core:eq's structural equality, including the
// deliberate divergence from IEEE 754 that makes NaN equal to itself
// (spec §3/§9). Mixed types are always unequal. Arr compares
// element-wise; Obj compares as an order-insensitive key/value set;
// Fn compares only by identity; Error compares by (name, info).
func Equal(a, b Value) bool {
	return equal(a, b, newEqualGuard())
}

// equalGuard prevents infinite recursion comparing cyclic Arr/Obj
// structures: a pair already being compared is provisionally equal.
type equalGuard struct {
	seen map[[2]any]bool
}

func newEqualGuard() *equalGuard { return &equalGuard{seen: make(map[[2]any]bool)} }

func (g *equalGuard) enter(a, b any) bool {
	key := [2]any{a, b}
	if g.seen[key] {
		return false
	}
	g.seen[key] = true
	return true
}

func (g *equalGuard) leave(a, b any) {
	delete(g.seen, [2]any{a, b})
}

func equal(a, b Value, guard *equalGuard) bool {
	switch av := a.(type) {
	case *NullValue:
		_, ok := b.(*NullValue)
		return ok
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.B == bv.B
	case *NumValue:
		bv, ok := b.(*NumValue)
		if !ok {
			return false
		}
		if math.IsNaN(av.N) && math.IsNaN(bv.N) {
			return true
		}
		return av.N == bv.N
	case *StrValue:
		bv, ok := b.(*StrValue)
		return ok && av.S == bv.S
	case *ErrorValue:
		bv, ok := b.(*ErrorValue)
		if !ok || av.Name != bv.Name {
			return false
		}
		if av.Info == nil || bv.Info == nil {
			return av.Info == nil && bv.Info == nil
		}
		return equal(av.Info, bv.Info, guard)
	case *FnValue:
		bv, ok := b.(*FnValue)
		return ok && av == bv
	case *ArrValue:
		bv, ok := b.(*ArrValue)
		if !ok {
			return false
		}
		if av == bv {
			return true
		}
		if len(av.Elements) != len(bv.Elements) {
			return false
		}
		if !guard.enter(av, bv) {
			return true
		}
		defer guard.leave(av, bv)
		for i := range av.Elements {
			if !equal(av.Elements[i], bv.Elements[i], guard) {
				return false
			}
		}
		return true
	case *ObjValue:
		bv, ok := b.(*ObjValue)
		if !ok {
			return false
		}
		if av == bv {
			return true
		}
		if av.Len() != bv.Len() {
			return false
		}
		if !guard.enter(av, bv) {
			return true
		}
		defer guard.leave(av, bv)
		for _, k := range av.Keys() {
			v1, _ := av.Get(k)
			v2, ok := bv.Get(k)
			if !ok || !equal(v1, v2, guard) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
