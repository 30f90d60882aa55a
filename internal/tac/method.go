package tac

import "github.com/shadow-lang/shadowc/internal/types"

// Local is one entry of a TACMethod's ordered locals list; parameters
// are the locals prefix of length len(Signature.Params.Elements).
type Local struct {
	Name string
	Type types.ModifiedType
	// IsTemporary marks a builder-synthesized local (an intermediate
	// value materialized to satisfy the three-address-code shape) rather
	// than one that traces back to a source-level variable or parameter.
	IsTemporary bool
}

// TACMethod is one compiled method: an ordered locals list (parameters
// as its prefix), the entry Label, and the block tree the builder pushed
// while lowering the body. It owns its Nodes and Blocks; there is no
// individual node/block destruction, only whole-method discard at end of
// compilation.
type TACMethod struct {
	Signature *types.MethodType
	Locals    []Local
	NumParams int
	Entry     *Node
	Root      *Block
}

// NewMethod returns an empty TACMethod with a fresh entry Label and root
// Block, ready for the builder to append parameters and lower the body
// into.
func NewMethod(sig *types.MethodType) *TACMethod {
	root := NewBlock(nil)
	entry := &Node{Op: OpLabel, Owner: root}
	return &TACMethod{Signature: sig, Entry: entry, Root: root}
}

// Append links n immediately after after in the instruction list,
// stamping n.Owner from after's owner unless n already has one, and
// returns n for chaining.
func (m *TACMethod) Append(after, n *Node) *Node {
	if n.Owner == nil {
		n.Owner = after.Owner
	}
	next := after.next
	after.next = n
	n.prev = after
	n.next = next
	if next != nil {
		next.prev = n
	}
	return n
}

// AddParam records a parameter local; parameters must be added before
// any temporary or source local so Locals[:NumParams] is exactly the
// parameter prefix the ABI requires.
func (m *TACMethod) AddParam(name string, t types.ModifiedType) {
	m.Locals = append(m.Locals, Local{Name: name, Type: t})
	m.NumParams++
}

// AddLocal records a source-level or temporary local.
func (m *TACMethod) AddLocal(name string, t types.ModifiedType, temporary bool) {
	m.Locals = append(m.Locals, Local{Name: name, Type: t, IsTemporary: temporary})
}

// Nodes walks the instruction list from Entry in order, calling visit on
// each node until visit returns false or the list ends.
func (m *TACMethod) Nodes(visit func(*Node) bool) {
	for n := m.Entry; n != nil; n = n.next {
		if !visit(n) {
			return
		}
	}
}
