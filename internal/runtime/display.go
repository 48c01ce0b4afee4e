package runtime

import (
	"strconv"
	"strings"
)

// cycleGuard tracks the Arr/Obj pointers currently being rendered so that
// a self-referential structure prints "..." at the offending position
// instead of recursing forever (spec §3/§9).
type cycleGuard struct {
	seen map[any]bool
}

func newCycleGuard() *cycleGuard {
	return &cycleGuard{seen: make(map[any]bool)}
}

func (g *cycleGuard) enter(ptr any) bool {
	if g.seen[ptr] {
		return false
	}
	g.seen[ptr] = true
	return true
}

func (g *cycleGuard) leave(ptr any) {
	delete(g.seen, ptr)
}

func reprArr(a *ArrValue, guard *cycleGuard) string {
	if !guard.enter(a) {
		return "..."
	}
	defer guard.leave(a)

	if len(a.Elements) == 0 {
		return "[]"
	}
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = reprValue(e, guard)
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}

func reprObj(o *ObjValue, guard *cycleGuard) string {
	if !guard.enter(o) {
		return "..."
	}
	defer guard.leave(o)

	keys := o.Keys()
	if len(keys) == 0 {
		return "{}"
	}
	parts := make([]string, len(keys))
	for i, k := range keys {
		v, _ := o.Get(k)
		parts[i] = k + ": " + reprValue(v, guard)
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// reprValue is the cycle-guard-threaded counterpart of Value.Repr, used
// when rendering array elements / object fields so that a guard started
// at the top of a structure is shared by every nested Arr/Obj.
func reprValue(v Value, guard *cycleGuard) string {
	switch t := v.(type) {
	case *ArrValue:
		return reprArr(t, guard)
	case *ObjValue:
		return reprObj(t, guard)
	default:
		return v.Repr()
	}
}

// formatNum renders a float64 the way AiScript's to_str/repr does:
// integral values print without a trailing ".0", others use the
// shortest round-tripping decimal form.
func formatNum(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
