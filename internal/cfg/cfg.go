// Package cfg builds a control-flow graph over a tac.TACMethod and runs
// the dataflow analyses the checker needs before a module can be handed
// to the emitter: reachability/dead-code, field-initialization,
// used-fields/used-methods, and return coverage.
package cfg

import "github.com/shadow-lang/shadowc/internal/tac"

// Block is one maximal straight-line run between labels/terminators —
// distinct from tac.Block (a lexical nesting scope); this Block is a
// graph node.
type Block struct {
	Nodes []*tac.Node
	Succ  []*Block
	Pred  []*Block
	// id is used only for deterministic iteration order in tests and
	// diagnostics; it has no semantic meaning.
	id int
}

// Graph is the CFG of one method: Entry is always Blocks[0].
type Graph struct {
	Blocks []*Block
	Entry  *Block
}

func isTerminator(op tac.Opcode) bool {
	switch op {
	case tac.OpBranch, tac.OpReturn, tac.OpThrow, tac.OpResume, tac.OpCatchSwitch:
		return true
	default:
		return false
	}
}

// Build partitions m's instruction list into maximal straight-line runs
// and wires successor/predecessor edges from each run's terminator (or
// fall-through, if a run ends without one immediately preceding the next
// Label).
func Build(m *tac.TACMethod) *Graph {
	g := &Graph{}
	labelToBlock := make(map[*tac.Node]*Block)

	var cur *Block
	nextID := 0
	newBlock := func() *Block {
		b := &Block{id: nextID}
		nextID++
		g.Blocks = append(g.Blocks, b)
		return b
	}

	m.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpLabel {
			cur = newBlock()
			labelToBlock[n] = cur
		}
		if cur == nil {
			cur = newBlock()
		}
		cur.Nodes = append(cur.Nodes, n)
		if isTerminator(n.Op) {
			cur = nil
		}
		return true
	})

	if len(g.Blocks) == 0 {
		return g
	}
	g.Entry = g.Blocks[0]

	link := func(from, to *Block) {
		from.Succ = append(from.Succ, to)
		to.Pred = append(to.Pred, from)
	}

	for i, b := range g.Blocks {
		if len(b.Nodes) == 0 {
			continue
		}
		last := b.Nodes[len(b.Nodes)-1]
		switch last.Op {
		case tac.OpBranch:
			payload, _ := last.Payload.(tac.BranchPayload)
			if target, ok := labelToBlock[payload.Then]; ok {
				link(b, target)
			}
			if payload.Else != nil {
				if target, ok := labelToBlock[payload.Else]; ok {
					link(b, target)
				}
			}
		case tac.OpReturn, tac.OpThrow, tac.OpResume:
			// terminal: no fall-through successor.
		case tac.OpCatchSwitch:
			// successors are the catch pads that follow textually; a
			// full personality-aware edge set is the emitter's concern,
			// the CFG only needs "reachable", so fall through to the
			// next block conservatively.
			if i+1 < len(g.Blocks) {
				link(b, g.Blocks[i+1])
			}
		default:
			if i+1 < len(g.Blocks) {
				link(b, g.Blocks[i+1])
			}
		}
	}
	return g
}
