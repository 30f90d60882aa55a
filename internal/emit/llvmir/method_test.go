package llvmir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/build"
	"github.com/shadow-lang/shadowc/internal/types"
)

// buildTryModule builds a checked class with a single instance method
// whose body is a try guarding two differently-typed catch clauses, so
// the emitted IR exercises CatchSwitch's terminator and CatchPad's type
// dispatch end to end rather than at the TAC level alone.
func buildTryModule(t *testing.T, finally bool) (*types.ClassType, *ast.ModuleDecl) {
	class := types.NewClass("Program", "app", types.Public)
	ioError := types.NewClass("IOError", "app", types.Public)
	valueError := types.NewClass("ValueError", "app", types.Public)

	run := &types.MethodType{
		Outer:      class,
		MethodName: "run",
		Mods:       types.Public,
		Params:     &types.SequenceType{},
		Returns:    &types.SequenceType{},
	}
	class.Methods.Add(run)

	var finallyStmt ast.Stmt
	if finally {
		finallyStmt = &ast.BlockStmt{}
	}

	body := []ast.Stmt{
		&ast.TryStmt{
			Body: &ast.BlockStmt{},
			Catches: []*ast.CatchClause{
				{Name: "io", Type: ioError, Body: &ast.BlockStmt{}},
				{Name: "v", Type: valueError, Body: &ast.BlockStmt{}},
			},
			Finally: finallyStmt,
		},
		&ast.ReturnStmt{},
	}

	decl := &ast.ModuleDecl{
		Type: class,
		Methods: []*ast.MethodDecl{
			{Signature: run, Body: body},
		},
	}
	return class, decl
}

func TestEmitClassTerminatesCatchSwitchBlock(t *testing.T) {
	_, decl := buildTryModule(t, false)
	b := build.New(types.NewTypeCtx())
	mod, errs := b.BuildModule(decl)
	require.False(t, errs.HasError())

	ir, err := EmitClass(mod)
	require.NoError(t, err)

	// every block textually ends with a terminator; a catchswitch block
	// left without one would print with no branch/ret/unreachable line
	// before the next label. This is a coarse but effective proxy: the
	// runtime helper the catch pads call for dispatch must show up, which
	// only happens if the pads themselves were reached, which only
	// happens if the block before them actually branched into them.
	assert.Contains(t, ir, "__shadow_catch")
	assert.Contains(t, ir, "br label")
}

func TestEmitClassDispatchesCatchPadsByType(t *testing.T) {
	_, decl := buildTryModule(t, false)
	b := build.New(types.NewTypeCtx())
	mod, errs := b.BuildModule(decl)
	require.False(t, errs.HasError())

	ir, err := EmitClass(mod)
	require.NoError(t, err)

	// two distinct catch clauses of different types means two distinct
	// class descriptors get referenced for the instanceof-style check,
	// and the runtime dispatch helper is actually called rather than the
	// first pad running unconditionally.
	assert.Contains(t, ir, "__shadow_isInstance")
	assert.True(t, strings.Contains(ir, "IOError.class") || strings.Contains(ir, "IOError\\00"))
	assert.True(t, strings.Contains(ir, "ValueError.class") || strings.Contains(ir, "ValueError\\00"))
}

func TestEmitClassWithFinallyStillTerminatesCatchSwitch(t *testing.T) {
	_, decl := buildTryModule(t, true)
	b := build.New(types.NewTypeCtx())
	mod, errs := b.BuildModule(decl)
	require.False(t, errs.HasError())

	ir, err := EmitClass(mod)
	require.NoError(t, err)

	assert.Contains(t, ir, "__shadow_isInstance")
	assert.Contains(t, ir, "unreachable")
}
