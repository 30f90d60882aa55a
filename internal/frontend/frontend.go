// Package frontend supplies the driver.Frontend implementation the CLI
// links against. The lexer/parser and type checker themselves are named
// but explicitly out of scope here (an external collaborator with a
// contract only); NotImplemented is a placeholder that satisfies the
// contract so the CLI binary and the driver package's orchestration can
// be exercised end to end without one.
package frontend

import (
	"fmt"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/ilerr"
	"github.com/shadow-lang/shadowc/internal/types"
)

// NotImplemented reports a command-line error on every call, so a build
// that has not yet been wired to a real lexer/parser fails loudly with
// exit code -5 instead of silently producing an empty program.
type NotImplemented struct{}

func (NotImplemented) Parse(path string, source []byte) (any, *ilerr.Errors, error) {
	err := ilerr.New(ilerr.CommandLineErr{Message: fmt.Sprintf("frontend: no lexer/parser wired into this build (%s)", path)})
	return nil, (*ilerr.Errors)(nil).With(err), nil
}

func (NotImplemented) TypeCheck(ctx *types.TypeCtx, tree any) (*ast.ModuleDecl, *ilerr.Errors) {
	err := ilerr.New(ilerr.CommandLineErr{Message: "frontend: no type checker wired into this build"})
	return nil, (*ilerr.Errors)(nil).With(err)
}
