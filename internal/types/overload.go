package types

import "fmt"

// NoMatchingMethodError is returned by GetMatchingMethod when no
// candidate accepts the given arguments.
type NoMatchingMethodError struct {
	On   Type
	Name string
	Args *SequenceType
}

func (e *NoMatchingMethodError) Error() string {
	return fmt.Sprintf("no method %s%s found on %s", e.Name, e.Args, e.On)
}

// AmbiguousMethodError is returned when more than one candidate is
// equally applicable and none is strictly more specific than the rest.
type AmbiguousMethodError struct {
	On         Type
	Name       string
	Candidates []*MethodType
}

func (e *AmbiguousMethodError) Error() string {
	return fmt.Sprintf("ambiguous call to %s on %s: %d equally applicable overloads", e.Name, e.On, len(e.Candidates))
}

type candidate struct {
	method       *MethodType
	declaredHere bool
	order        int
}

// GetMatchingMethod performs overload resolution: filter by
// name and arity, filter by type-argument compatibility, score by the
// "most-specific applicable" relation, tie-break by declared-here over
// inherited then by first declaration order.
func GetMatchingMethod(on declaredMember, name string, args *SequenceType, typeArgs []Type) (*MethodType, error) {
	candidates := collectCandidates(on, name, nil, 0)

	var applicable []candidate
	for _, c := range candidates {
		method := c.method
		if len(method.TypeParams) != len(typeArgs) {
			continue
		}
		if len(typeArgs) > 0 {
			replaced := method.Replace(method.TypeParams, typeArgs).(*MethodType)
			method = replaced
		}
		if method.Arity() != args.Len() {
			continue
		}
		if !isApplicable(args, method.Params) {
			continue
		}
		applicable = append(applicable, candidate{method: method, declaredHere: c.declaredHere, order: c.order})
	}

	if len(applicable) == 0 {
		return nil, &NoMatchingMethodError{On: on, Name: name, Args: args}
	}
	if len(applicable) == 1 {
		return applicable[0].method, nil
	}

	mostSpecific := mostSpecificCandidates(applicable)
	if len(mostSpecific) == 1 {
		return mostSpecific[0].method, nil
	}

	// tie-break: declared-here beats inherited.
	var declaredHereOnly []candidate
	for _, c := range mostSpecific {
		if c.declaredHere {
			declaredHereOnly = append(declaredHereOnly, c)
		}
	}
	if len(declaredHereOnly) == 1 {
		return declaredHereOnly[0].method, nil
	}
	if len(declaredHereOnly) > 1 {
		mostSpecific = declaredHereOnly
	}

	// tie-break: first declaration order.
	best := mostSpecific[0]
	for _, c := range mostSpecific[1:] {
		if c.order < best.order {
			best = c
		}
	}
	// confirm the chosen one really is unique after both tie-breaks;
	// otherwise report ambiguity honestly rather than picking arbitrarily.
	ties := 0
	for _, c := range mostSpecific {
		if c.order == best.order {
			ties++
		}
	}
	if ties > 1 {
		methods := make([]*MethodType, len(mostSpecific))
		for i, c := range mostSpecific {
			methods[i] = c.method
		}
		return nil, &AmbiguousMethodError{On: on, Name: name, Candidates: methods}
	}
	return best.method, nil
}

func isApplicable(args *SequenceType, params *SequenceType) bool {
	if args.Len() != params.Len() {
		return false
	}
	for i, a := range args.Elements {
		if !a.Type.IsSubtype(params.Elements[i].Type) {
			return false
		}
	}
	return true
}

// moreSpecific reports whether a's parameters are all subtypes of b's —
// the "most-specific applicable" relation.
func moreSpecific(a, b *MethodType) bool {
	for i := range a.Params.Elements {
		if !a.Params.Elements[i].Type.IsSubtype(b.Params.Elements[i].Type) {
			return false
		}
	}
	return true
}

func mostSpecificCandidates(applicable []candidate) []candidate {
	var winners []candidate
	for _, c := range applicable {
		beatsAllOthers := true
		for _, other := range applicable {
			if c.method == other.method {
				continue
			}
			if !moreSpecific(c.method, other.method) {
				beatsAllOthers = false
				break
			}
		}
		if beatsAllOthers {
			winners = append(winners, c)
		}
	}
	if len(winners) > 0 {
		return winners
	}
	return applicable
}

func collectCandidates(on declaredMember, name string, seen map[string]bool, depth int) []candidate {
	if seen == nil {
		seen = make(map[string]bool)
	}
	if seen[on.QualifiedName()] {
		return nil
	}
	seen[on.QualifiedName()] = true

	var out []candidate
	for i, m := range on.MethodsMap().Overloads(name) {
		out = append(out, candidate{method: m, declaredHere: depth == 0, order: i})
	}
	for _, super := range on.SuperTypes() {
		if dm, ok := super.(declaredMember); ok {
			inherited := collectCandidates(dm, name, seen, depth+1)
			out = append(out, inherited...)
		}
	}
	return out
}
