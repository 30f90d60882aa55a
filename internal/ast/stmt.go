package ast

import "github.com/shadow-lang/shadowc/internal/types"

// Stmt is the closed set of checked statement kinds a method body is
// built from.
type Stmt interface {
	Node
	stmtNode()
}

// BlockStmt is a sequence of statements sharing one lexical scope.
type BlockStmt struct {
	Loc   SourceLocation
	Stmts []Stmt
}

func (s *BlockStmt) Pos() SourceLocation { return s.Loc }
func (s *BlockStmt) Hash() uint64        { return s.Loc.Hash() }
func (*BlockStmt) stmtNode()             {}

// VarDeclStmt declares and optionally initializes a local.
type VarDeclStmt struct {
	Loc         SourceLocation
	Name        string
	Type        types.ModifiedType
	Initializer Expr
}

func (s *VarDeclStmt) Pos() SourceLocation { return s.Loc }
func (s *VarDeclStmt) Hash() uint64        { return s.Loc.Hash() }
func (*VarDeclStmt) stmtNode()             {}

// ExprStmt evaluates an expression for its side effects, discarding the
// result.
type ExprStmt struct {
	Loc  SourceLocation
	Expr Expr
}

func (s *ExprStmt) Pos() SourceLocation { return s.Loc }
func (s *ExprStmt) Hash() uint64        { return s.Loc.Hash() }
func (*ExprStmt) stmtNode()             {}

// IfStmt is a two-armed conditional; Else is nil when there is no else
// branch.
type IfStmt struct {
	Loc  SourceLocation
	Cond Expr
	Then Stmt
	Else Stmt
}

func (s *IfStmt) Pos() SourceLocation { return s.Loc }
func (s *IfStmt) Hash() uint64        { return s.Loc.Hash() }
func (*IfStmt) stmtNode()             {}

// WhileStmt is a pre-tested loop; the builder pushes a block with
// break/continue labels while lowering Body.
type WhileStmt struct {
	Loc  SourceLocation
	Cond Expr
	Body Stmt
}

func (s *WhileStmt) Pos() SourceLocation { return s.Loc }
func (s *WhileStmt) Hash() uint64        { return s.Loc.Hash() }
func (*WhileStmt) stmtNode()             {}

// ForStmt is a C-style counted loop; any of Init/Cond/Post may be nil.
type ForStmt struct {
	Loc  SourceLocation
	Init Stmt
	Cond Expr
	Post Stmt
	Body Stmt
}

func (s *ForStmt) Pos() SourceLocation { return s.Loc }
func (s *ForStmt) Hash() uint64        { return s.Loc.Hash() }
func (*ForStmt) stmtNode()             {}

// BreakStmt exits the nearest enclosing loop or switch.
type BreakStmt struct {
	Loc SourceLocation
}

func (s *BreakStmt) Pos() SourceLocation { return s.Loc }
func (s *BreakStmt) Hash() uint64        { return s.Loc.Hash() }
func (*BreakStmt) stmtNode()             {}

// ContinueStmt jumps to the nearest enclosing loop's post/condition
// check.
type ContinueStmt struct {
	Loc SourceLocation
}

func (s *ContinueStmt) Pos() SourceLocation { return s.Loc }
func (s *ContinueStmt) Hash() uint64        { return s.Loc.Hash() }
func (*ContinueStmt) stmtNode()             {}

// ReturnStmt returns from the enclosing method; Value is nil for a
// void-returning method.
type ReturnStmt struct {
	Loc   SourceLocation
	Value Expr
}

func (s *ReturnStmt) Pos() SourceLocation { return s.Loc }
func (s *ReturnStmt) Hash() uint64        { return s.Loc.Hash() }
func (*ReturnStmt) stmtNode()             {}

// ThrowStmt raises Value, which must be a subtype of Exception.
type ThrowStmt struct {
	Loc   SourceLocation
	Value Expr
}

func (s *ThrowStmt) Pos() SourceLocation { return s.Loc }
func (s *ThrowStmt) Hash() uint64        { return s.Loc.Hash() }
func (*ThrowStmt) stmtNode()             {}

// CatchClause binds an exception value of type Type to Name within Body.
type CatchClause struct {
	Loc  SourceLocation
	Name string
	Type types.Type
	Body Stmt
}

// TryStmt is a protected region with zero or more typed catch clauses
// and an optional finally block. The builder lowers this to a
// CatchSwitch/CatchPad chain and, if Finally is non-nil, a
// cleanup/cleanupUnwind/cleanupPhi triple.
type TryStmt struct {
	Loc     SourceLocation
	Body    Stmt
	Catches []*CatchClause
	Finally Stmt // nil if there is no finally clause
}

func (s *TryStmt) Pos() SourceLocation { return s.Loc }
func (s *TryStmt) Hash() uint64        { return s.Loc.Hash() }
func (*TryStmt) stmtNode()             {}
