package cfg

import (
	"sort"

	"github.com/xtgo/set"

	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/tac"
)

// intersectSorted returns the sorted intersection of two already-sorted,
// duplicate-free slices, using xtgo/set's in-place merge over a single
// concatenated sort.Interface rather than a hand-rolled two-pointer
// walk.
func intersectSorted(a, b []string) []string {
	combined := make([]string, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	n := set.Inter(sort.StringSlice(combined), len(a))
	return combined[:n]
}

func sortedUniq(fields []string) []string {
	cp := append([]string(nil), fields...)
	sort.Strings(cp)
	n := set.Uniq(sort.StringSlice(cp))
	return cp[:n]
}

// escapesThis reports whether n is a point where the receiver could
// leak to a caller before construction finishes: a method call whose
// receiver is `this`, or a store of `this` into a field or array
// element.
func escapesThis(n *tac.Node) bool {
	if n.Op != tac.OpCall && n.Op != tac.OpStore {
		return false
	}
	for _, op := range n.Operands {
		if op.Value != nil && op.Value.Op == tac.OpVariableRef {
			if slot, ok := op.Value.Payload.(int); ok && slot == 0 {
				return true
			}
		}
	}
	return false
}

// assignedField returns the field name n definitely assigns, or "" if n
// is not a field store on `this`.
func assignedField(n *tac.Node) string {
	if n.Op != tac.OpStore {
		return ""
	}
	fp, ok := n.Payload.(tac.FieldPayload)
	if !ok {
		return ""
	}
	if len(n.Operands) == 0 || n.Operands[0].Value == nil {
		return ""
	}
	receiver := n.Operands[0].Value
	if receiver.Op != tac.OpVariableRef {
		return ""
	}
	if slot, ok := receiver.Payload.(int); !ok || slot != 0 {
		return ""
	}
	return fp.FieldName
}

// FieldInitialization runs the forward must-initialize dataflow over a
// constructor's CFG: at every point `this` could escape (a call on this,
// or storing this into the heap) or the method returns, every field in
// required must already be definitely assigned on every path reaching
// that point. Join at a merge point is set intersection, so a field
// assigned on only one incoming path is not considered assigned after
// the merge.
func FieldInitialization(g *Graph, required []string) *ilerr.Errors {
	req := sortedUniq(required)
	if len(req) == 0 || g.Entry == nil {
		return nil
	}

	in := make(map[*Block][]string, len(g.Blocks))
	out := make(map[*Block][]string, len(g.Blocks))
	for _, b := range g.Blocks {
		out[b] = nil
	}

	changed := true
	for changed {
		changed = false
		for _, b := range g.Blocks {
			var newIn []string
			if b == g.Entry {
				newIn = nil
			} else if len(b.Pred) > 0 {
				newIn = out[b.Pred[0]]
				for _, p := range b.Pred[1:] {
					newIn = intersectSorted(newIn, out[p])
				}
			}
			gen := newIn
			for _, n := range b.Nodes {
				if field := assignedField(n); field != "" {
					gen = sortedUniq(append(append([]string(nil), gen...), field))
				}
			}
			if !equalSorted(gen, out[b]) {
				out[b] = gen
				changed = true
			}
			in[b] = newIn
		}
	}

	var errs *ilerr.Errors
	reported := make(map[string]bool)
	for _, b := range g.Blocks {
		assignedSoFar := in[b]
		for _, n := range b.Nodes {
			if escapesThis(n) {
				for _, f := range req {
					if !contains(assignedSoFar, f) && !reported[f] {
						reported[f] = true
						errs = errs.With(ilerr.New(ilerr.FieldUninitialized{Positioner: n.Loc, FieldName: f}))
					}
				}
			}
			if field := assignedField(n); field != "" {
				assignedSoFar = sortedUniq(append(append([]string(nil), assignedSoFar...), field))
			}
			if n.Op == tac.OpReturn {
				for _, f := range req {
					if !contains(assignedSoFar, f) && !reported[f] {
						reported[f] = true
						errs = errs.With(ilerr.New(ilerr.FieldUninitialized{Positioner: n.Loc, FieldName: f}))
					}
				}
			}
		}
	}
	return errs
}

func equalSorted(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func contains(sorted []string, v string) bool {
	i := sort.SearchStrings(sorted, v)
	return i < len(sorted) && sorted[i] == v
}
