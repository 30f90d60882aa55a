package ast

import "github.com/shadow-lang/shadowc/internal/types"

// Expr is the closed set of checked expression kinds; every Expr already
// carries its resolved ResultType, since type checking runs before this
// package's values exist.
type Expr interface {
	Node
	ResultType() types.Type
	exprNode()
}

type exprBase struct {
	Loc  SourceLocation
	Type types.Type
}

func (e exprBase) Pos() SourceLocation   { return e.Loc }
func (e exprBase) Hash() uint64          { return e.Loc.Hash() }
func (e exprBase) ResultType() types.Type { return e.Type }

// LiteralKind distinguishes the primitive literal forms; a nil literal
// is represented by Kind == NullLiteral with Value == nil.
type LiteralKind uint8

const (
	BoolLiteral LiteralKind = iota
	IntLiteral
	LongLiteral
	FloatLiteral
	DoubleLiteral
	CodeLiteral
	StringLiteral
	NullLiteral
)

// Literal is a constant value of a primitive or string type.
type Literal struct {
	exprBase
	Kind  LiteralKind
	Value any
}

func (*Literal) exprNode() {}

// VariableRef reads a local or parameter by name; Slot is filled in by
// the builder's symbol table during lowering, not by the checker.
type VariableRef struct {
	exprBase
	Name string
}

func (*VariableRef) exprNode() {}

// This refers to the receiver of an instance method.
type This struct {
	exprBase
}

func (*This) exprNode() {}

// Super refers to the receiver viewed as its immediate base class, used
// to dispatch a base-class method non-virtually.
type Super struct {
	exprBase
}

func (*Super) exprNode() {}

// FieldAccess reads Name off Receiver.
type FieldAccess struct {
	exprBase
	Receiver Expr
	Name     string
}

func (*FieldAccess) exprNode() {}

// MethodCall invokes Method (already resolved by overload resolution) on
// Receiver, which is nil for a static call.
type MethodCall struct {
	exprBase
	Receiver Expr
	Method   *types.MethodType
	TypeArgs []types.Type
	Args     []Expr
}

func (*MethodCall) exprNode() {}

// BinaryOp enumerates the checked binary operators; string concatenation
// and numeric arithmetic are both Add, disambiguated by ResultType.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	BitAnd
	BitOr
	BitXor
	Shl
	Shr
)

// BinaryExpr applies Op to Left and Right, both already checked for
// operand compatibility.
type BinaryExpr struct {
	exprBase
	Op          BinaryOp
	Left, Right Expr
}

func (*BinaryExpr) exprNode() {}

// UnaryOp enumerates the checked unary operators.
type UnaryOp uint8

const (
	Neg UnaryOp = iota
	Not
	BitNot
)

// UnaryExpr applies Op to Operand.
type UnaryExpr struct {
	exprBase
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// CastExpr is an explicit narrowing or numeric conversion; the checker
// has already verified the cast is legal (a narrowing reference cast is
// checked at runtime by the emitted code, not here).
type CastExpr struct {
	exprBase
	Operand Expr
}

func (*CastExpr) exprNode() {}

// NewObject constructs an instance of Type via Ctor, passing Args.
type NewObject struct {
	exprBase
	Ctor *types.MethodType
	Args []Expr
}

func (*NewObject) exprNode() {}

// NewArray allocates an array of ResultType (an *types.ArrayType) with
// Lengths, one Expr per dimension.
type NewArray struct {
	exprBase
	Lengths []Expr
}

func (*NewArray) exprNode() {}

// ArrayAccess indexes Array at Index.
type ArrayAccess struct {
	exprBase
	Array Expr
	Index Expr
}

func (*ArrayAccess) exprNode() {}

// AssignTarget is the closed set of expressions a value may be assigned
// to: a local, a field, or an array element.
type AssignTarget interface {
	Expr
	assignTargetNode()
}

func (*VariableRef) assignTargetNode() {}
func (*FieldAccess) assignTargetNode() {}
func (*ArrayAccess) assignTargetNode() {}

// AssignExpr stores Value into Target and evaluates to Value.
type AssignExpr struct {
	exprBase
	Target AssignTarget
	Value  Expr
}

func (*AssignExpr) exprNode() {}
