package cfg

import (
	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// ReturnCoverage verifies that every path from entry to method exit of a
// non-void method passes through a Return carrying a value. A block with
// no successors that does not end in a value-carrying Return, Throw, or
// Resume is a coverage gap.
func ReturnCoverage(g *Graph, returns *types.SequenceType) *ilerr.Errors {
	if returns.Len() == 0 || g.Entry == nil {
		return nil
	}
	var errs *ilerr.Errors
	for _, b := range g.Blocks {
		if len(b.Succ) > 0 || len(b.Nodes) == 0 {
			continue
		}
		last := b.Nodes[len(b.Nodes)-1]
		switch last.Op {
		case tac.OpThrow, tac.OpResume:
			continue
		case tac.OpReturn:
			if len(last.Operands) == 0 {
				errs = errs.With(ilerr.New(missingReturnValue(last)))
			}
		default:
			errs = errs.With(ilerr.New(missingReturnValue(last)))
		}
	}
	return errs
}

func missingReturnValue(n *tac.Node) ilerr.IleError {
	return ilerr.TypeMismatch{Positioner: n.Loc, Expected: types.Unknown, Actual: types.Void}
}
