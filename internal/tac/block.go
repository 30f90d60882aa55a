package tac

import "fmt"

// LabelRole names the roles a Block may own a label for. Lookup walks
// the parent chain to find the nearest enclosing owner of a role;
// addition at a given Block is one-shot.
type LabelRole int

const (
	RoleBreak LabelRole = iota
	RoleContinue
	RoleRecover
	RoleDone
	RoleCatch
	RoleCatchSwitch
	RoleCleanup
	RoleCleanupUnwind
)

// Block is a lexical nesting level of the TAC builder's block stack. It
// is not retained past TAC building except via the Owner back-reference
// each Node carries, which the emitter and analyses use to answer "is
// this node inside a cleanup region" without re-walking the AST.
type Block struct {
	Parent *Block

	labels map[LabelRole]*Node
	// CleanupPhi records, for a cleanup region, the phi node that decides
	// where control resumes after the finally body runs to completion on
	// the normal-exit path.
	CleanupPhi *Node

	// UnwindTarget is true once addUnwindSource has proven this block's
	// finally is reachable by an in-flight unwind.
	UnwindTarget bool
	// CleanupTarget is true if this block is itself a cleanup region,
	// used to suppress dead-code warnings for code that only runs during
	// unwinding.
	CleanupTarget bool

	// ScopeDepth is the builder's name-resolution scope depth at the
	// moment this Block was pushed, letting a break/continue that jumps
	// to a label owned by this Block know which scopes lie strictly
	// inside the loop or switch and so must release their owned locals
	// before the jump.
	ScopeDepth int
}

// NewBlock returns a Block nested under parent (nil for a method's
// top-level block).
func NewBlock(parent *Block) *Block {
	return &Block{Parent: parent, labels: make(map[LabelRole]*Node)}
}

// SetLabel adds a one-shot label of the given role to b. It panics if
// the role is already set on this exact block — the builder pushes a
// fresh Block for every construct that introduces a role, so a second
// call at the same Block is a builder bug, not a legal reassignment.
func (b *Block) SetLabel(role LabelRole, label *Node) {
	if _, ok := b.labels[role]; ok {
		panic(fmt.Sprintf("tac: label role %d already set on this block", role))
	}
	b.labels[role] = label
}

// Label finds the nearest enclosing owner of role, walking Parent
// pointers, and reports whether one was found.
func (b *Block) Label(role LabelRole) (*Node, bool) {
	_, label, ok := b.LabelOwner(role)
	return label, ok
}

// LabelOwner behaves like Label but also returns the Block that owns the
// label, letting a caller bound a walk (such as an enclosing-finally
// search) to stop at that block rather than continuing past it into
// scopes the role's owner has no business reaching.
func (b *Block) LabelOwner(role LabelRole) (owner *Block, label *Node, ok bool) {
	for cur := b; cur != nil; cur = cur.Parent {
		if l, has := cur.labels[role]; has {
			return cur, l, true
		}
	}
	return nil, nil, false
}

// OwnLabel reports the role label set directly on b, without walking to
// any enclosing block.
func (b *Block) OwnLabel(role LabelRole) (*Node, bool) {
	label, ok := b.labels[role]
	return label, ok
}

// IsInsideCleanup reports whether b or any enclosing block is a cleanup
// region.
func (b *Block) IsInsideCleanup() bool {
	for cur := b; cur != nil; cur = cur.Parent {
		if cur.CleanupTarget {
			return true
		}
	}
	return false
}

// AddUnwindSource walks up from b marking every enclosing finally as
// reachable by an unwind, called when the builder lowers a call or throw
// that can propagate an exception past a protected region.
func AddUnwindSource(b *Block) {
	for cur := b; cur != nil; cur = cur.Parent {
		if _, ok := cur.labels[RoleCleanupUnwind]; ok {
			cur.UnwindTarget = true
		}
	}
}
