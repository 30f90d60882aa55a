package driver

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/types"
)

// Frontend is the named interface the lexer/parser and type checker are
// reached through: both are external collaborators, so the driver only
// depends on their contract, never their implementation. A production
// binary supplies a Frontend that actually parses and checks Shadow
// source; tests supply one that returns pre-built ast.ModuleDecl trees.
type Frontend interface {
	// Parse turns source into an unchecked syntax tree. A syntax error is
	// returned via errs, not err; err is reserved for I/O failures
	// reading source itself.
	Parse(path string, source []byte) (tree any, errs *ilerr.Errors, err error)
	// TypeCheck resolves tree (as returned by Parse) against ctx into a
	// checked ModuleDecl the TAC builder can consume, registering the
	// module's own type into ctx as a side effect.
	TypeCheck(ctx *types.TypeCtx, tree any) (*ast.ModuleDecl, *ilerr.Errors)
}
