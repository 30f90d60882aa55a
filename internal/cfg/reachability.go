package cfg

import "github.com/shadow-lang/shadowc/internal/ilerr"

// Reachability walks g from Entry and reports every Block not reachable
// as a DeadCode warning, unless that block's owning tac.Block is inside
// a cleanup region (a finally body can be entered only via unwinding, so
// it is legitimately unreachable from the normal control-flow entry).
func Reachability(g *Graph) *ilerr.Errors {
	reachable := make(map[*Block]bool, len(g.Blocks))
	if g.Entry != nil {
		var walk func(*Block)
		walk = func(b *Block) {
			if reachable[b] {
				return
			}
			reachable[b] = true
			for _, s := range b.Succ {
				walk(s)
			}
		}
		walk(g.Entry)
	}

	var errs *ilerr.Errors
	for _, b := range g.Blocks {
		if reachable[b] || len(b.Nodes) == 0 {
			continue
		}
		if b.Nodes[0].Owner != nil && b.Nodes[0].Owner.IsInsideCleanup() {
			continue
		}
		errs = errs.With(ilerr.New(ilerr.UnreachableCode{Positioner: b.Nodes[0].Loc}))
	}
	return errs
}
