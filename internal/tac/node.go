// Package tac implements the three-address-code intermediate
// representation: the doubly-linked node lists nested inside labeled
// blocks that the builder produces, the CFG/analyses pass over, and the
// LLVM emitter walks to text.
package tac

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/types"
)

// Opcode is the closed set of TAC node kinds.
type Opcode int

const (
	OpLabel Opcode = iota
	OpBranch
	OpPhi
	OpLiteral
	OpVariableRef
	OpFieldRef
	OpMethodRef
	OpLoad
	OpStore
	OpCall
	OpReturn
	OpCast
	OpNewObject
	OpNewArray
	OpBinary
	OpUnary
	OpThrow
	OpCatchSwitch
	OpCatchPad
	OpCleanupPad
	OpResume
	OpLandingPad
	OpNoOp
)

func (op Opcode) String() string {
	names := [...]string{
		"Label", "Branch", "Phi", "Literal", "VariableRef", "FieldRef",
		"MethodRef", "Load", "Store", "Call", "Return", "Cast", "NewObject",
		"NewArray", "Binary", "Unary", "Throw", "CatchSwitch", "CatchPad",
		"CleanupPad", "Resume", "LandingPad", "NoOp",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return "Unknown"
}

// Operand is a use of another node's result, ordered within a Node's
// operand list.
type Operand struct {
	Value *Node
	// data is the emitter-owned SSA name of Value's result, filled in
	// during emission, not during building.
	data string
}

// Node is one instruction in the doubly-linked instruction list of a
// TACMethod. prev/next link it within its owning Block; Owner points
// back to that Block so the builder and analyses can walk outward to
// enclosing label roles without a separate symbol table.
type Node struct {
	prev, next *Node
	Owner      *Block

	Op       Opcode
	Loc      ast.SourceLocation
	Operands []Operand
	Result   types.ModifiedType

	// Payload carries the opcode-specific data too irregular to model as
	// operands: a Literal's Go value, a FieldRef's field name, a
	// MethodRef's resolved *types.MethodType, a Branch's condition
	// polarity and targets, a CatchPad's filter type.
	Payload any

	// data is the emitter-owned SSA name for this node's own result.
	data string
}

// Prev and Next expose the instruction list without letting callers
// outside this package splice it, which would break Owner invariants.
func (n *Node) Prev() *Node { return n.prev }
func (n *Node) Next() *Node { return n.next }

// SetData records the SSA name the emitter assigned to this node's
// result; GetData retrieves it for operand substitution at a later use
// site.
func (n *Node) SetData(name string) { n.data = name }
func (n *Node) GetData() string     { return n.data }

func (o *Operand) SetData(name string) { o.data = name }
func (o *Operand) GetData() string {
	if o.data != "" {
		return o.data
	}
	if o.Value != nil {
		return o.Value.data
	}
	return ""
}

// BranchPayload is the Payload of an OpBranch node.
type BranchPayload struct {
	// Cond is nil for an unconditional branch.
	Cond *Node
	Then *Node // target Label node
	Else *Node // nil for an unconditional branch
}

// PhiPayload is the Payload of an OpPhi node: incoming (value,
// predecessor-label) pairs, in the order predecessors were added.
type PhiPayload struct {
	Incoming []PhiEdge
}

// PhiEdge is one incoming edge of a Phi.
type PhiEdge struct {
	Value       *Node
	Predecessor *Node // the predecessor's Label node
}

// LiteralPayload is the Payload of an OpLiteral node.
type LiteralPayload struct {
	Value any
}

// FieldPayload is the Payload of an OpFieldRef/OpLoad/OpStore-on-field
// node.
type FieldPayload struct {
	On        types.Type
	FieldName string
}

// MethodPayload is the Payload of an OpMethodRef/OpCall node.
type MethodPayload struct {
	Method   *types.MethodType
	TypeArgs []types.Type
}

// CatchPadPayload is the Payload of an OpCatchPad node.
type CatchPadPayload struct {
	Filter types.Type
	Bound  string // local name the caught value is bound to
	// Next is where control goes if the thrown value is not an instance
	// of Filter: the next catch's pad Label, or the enclosing finally's
	// cleanupUnwind Label for the last catch of a try that has one. Nil
	// means there is nowhere else to go (a try's only catch, or its last
	// one with no finally), so the pad binds unconditionally.
	Next *Node
}

// NewArrayPayload is the Payload of an OpNewArray node.
type NewArrayPayload struct {
	ArrayType *types.ArrayType
}

// BinaryPayload is the Payload of an OpBinary node.
type BinaryPayload struct {
	Op ast.BinaryOp
}

// UnaryPayload is the Payload of an OpUnary node.
type UnaryPayload struct {
	Op ast.UnaryOp
}
