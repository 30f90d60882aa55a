package ast

import "github.com/shadow-lang/shadowc/internal/types"

// ModuleDecl is the checked top-level unit the TAC builder consumes to
// produce one TACModule: a class or interface declaration together with
// the resolved Type the checker already built for it.
type ModuleDecl struct {
	Loc     SourceLocation
	Type    types.Type
	Fields  []*FieldDecl
	Methods []*MethodDecl
	// Inner holds nested class/interface declarations; the checker has
	// already registered their types as Type.Modifiers()'s InnerTypes,
	// this only carries their bodies for building.
	Inner []*ModuleDecl
}

func (d *ModuleDecl) Pos() SourceLocation { return d.Loc }
func (d *ModuleDecl) Hash() uint64        { return d.Loc.Hash() ^ d.Type.Hash() }

// FieldDecl is a checked field declaration: name, resolved type, and an
// optional initializer expression evaluated in the constructor.
type FieldDecl struct {
	Loc         SourceLocation
	Name        string
	Type        types.ModifiedType
	Initializer Expr // nil if uninitialized at declaration
}

func (d *FieldDecl) Pos() SourceLocation { return d.Loc }
func (d *FieldDecl) Hash() uint64        { return d.Loc.Hash() }

// ParamDecl is a checked formal parameter.
type ParamDecl struct {
	Loc  SourceLocation
	Name string
	Type types.ModifiedType
}

func (d *ParamDecl) Pos() SourceLocation { return d.Loc }
func (d *ParamDecl) Hash() uint64        { return d.Loc.Hash() }

// MethodDecl is a checked method: its already-resolved MethodType plus
// the statement body the builder lowers to TAC. Body is nil for a
// runtime-provided or otherwise bodiless declaration (an interface
// method signature, an extern).
type MethodDecl struct {
	Loc        SourceLocation
	Signature  *types.MethodType
	Params     []*ParamDecl
	Body       []Stmt
	IsAbstract bool
	// IsSynthetic marks a compiler-generated copy/destroy/init method,
	// excluded from used-field/used-method accounting.
	IsSynthetic bool
}

func (d *MethodDecl) Pos() SourceLocation { return d.Loc }
func (d *MethodDecl) Hash() uint64        { return d.Loc.Hash() ^ d.Signature.Hash() }
