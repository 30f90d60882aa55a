package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

func opSequence(m *tac.TACMethod) []tac.Opcode {
	var ops []tac.Opcode
	m.Nodes(func(n *tac.Node) bool {
		ops = append(ops, n.Op)
		return true
	})
	return ops
}

func TestLowerStmtVarDeclWithInitializerStoresValue(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	decl := &ast.VarDeclStmt{
		Name:        "x",
		Type:        types.ModifiedType{Type: types.Primitive(types.Int)},
		Initializer: &ast.Literal{Kind: ast.IntLiteral, Value: int64(1)},
	}
	b.lowerStmt(decl)

	slot, ok := b.resolve("x")
	require.True(t, ok)
	assert.Equal(t, 0, slot)
	assert.Contains(t, opSequence(b.method), tac.OpStore)
}

func TestLowerStmtVarDeclWithoutInitializerDeclaresOnly(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	decl := &ast.VarDeclStmt{Name: "x", Type: types.ModifiedType{Type: types.Primitive(types.Int)}}
	b.lowerStmt(decl)

	_, ok := b.resolve("x")
	assert.True(t, ok)
	assert.NotContains(t, opSequence(b.method), tac.OpStore)
}

func TestLowerStmtBlockScopesLocalsToItself(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root
	b.pushScope()

	block := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.VarDeclStmt{Name: "inner", Type: types.ModifiedType{Type: types.Primitive(types.Int)}},
	}}
	b.lowerStmt(block)

	_, ok := b.resolve("inner")
	assert.False(t, ok)
}

func TestLowerStmtBlockDecrementsOwnedReferenceLocalOnNormalExit(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	widget := types.NewClass("Widget", "app", types.Public)
	block := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.VarDeclStmt{Name: "w", Type: types.ModifiedType{Type: widget}},
	}}
	b.lowerStmt(block)

	var decrements int
	b.method.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpCall && n.Payload == decrementRefName {
			decrements++
		}
		return true
	})
	assert.Equal(t, 1, decrements)
}

func TestLowerStmtUnhandledKindPanics(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	assert.Panics(t, func() {
		b.lowerStmt(nil)
	})
}

func TestLowerStmtBreakJumpsToEnclosingBreakLabel(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	root := tac.NewBlock(nil)
	breakLabel := &tac.Node{Op: tac.OpLabel}
	root.SetLabel(tac.RoleBreak, breakLabel)
	b.block = root

	b.lowerStmt(&ast.BreakStmt{})

	ops := opSequence(b.method)
	assert.Contains(t, ops, tac.OpBranch)
}

func TestLowerStmtBreakOutsideLoopEmitsNothing(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	b.lowerStmt(&ast.BreakStmt{})

	assert.NotContains(t, opSequence(b.method), tac.OpBranch)
}

func TestLowerStmtBreakInsideTryWithFinallyRoutesThroughCleanup(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry

	loopBlock := tac.NewBlock(nil)
	breakLabel := &tac.Node{Op: tac.OpLabel}
	loopBlock.SetLabel(tac.RoleBreak, breakLabel)

	tryBlock := tac.NewBlock(loopBlock)
	cleanupLabel := &tac.Node{Op: tac.OpLabel}
	cleanupPhi := &tac.Node{Op: tac.OpPhi}
	tryBlock.SetLabel(tac.RoleCleanup, cleanupLabel)
	tryBlock.CleanupPhi = cleanupPhi

	b.block = tryBlock
	b.lowerStmt(&ast.BreakStmt{})

	payload, ok := cleanupPhi.Payload.(tac.PhiPayload)
	require.True(t, ok)
	require.Len(t, payload.Incoming, 1)

	var branch *tac.Node
	b.method.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpBranch {
			branch = n
		}
		return true
	})
	require.NotNil(t, branch)
	assert.Same(t, cleanupLabel, branch.Payload.(tac.BranchPayload).Then)
}

func TestLowerIfWithoutElseSharesDoneLabel(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	stmt := &ast.IfStmt{
		Cond: &ast.Literal{Kind: ast.BoolLiteral, Value: true},
		Then: &ast.BlockStmt{},
	}
	b.lowerIf(stmt)

	ops := opSequence(b.method)
	require.Contains(t, ops, tac.OpBranch)
	require.Contains(t, ops, tac.OpLabel)
}

func TestLowerReturnVoidEmitsBareReturn(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	b.lowerReturn(&ast.ReturnStmt{})

	var ret *tac.Node
	b.method.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpReturn {
			ret = n
		}
		return true
	})
	require.NotNil(t, ret)
	assert.Empty(t, ret.Operands)
}

func TestLowerReturnRoutesThroughEnclosingCleanup(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	root := tac.NewBlock(nil)
	cleanupLabel := &tac.Node{Op: tac.OpLabel}
	cleanupPhi := &tac.Node{Op: tac.OpPhi}
	root.SetLabel(tac.RoleCleanup, cleanupLabel)
	root.CleanupPhi = cleanupPhi
	b.block = root

	b.lowerReturn(&ast.ReturnStmt{})

	payload, ok := cleanupPhi.Payload.(tac.PhiPayload)
	require.True(t, ok)
	require.Len(t, payload.Incoming, 1)

	// no OpReturn should be emitted at all here: the emitter treats
	// OpReturn as a terminator and would never reach a node emitted
	// after it in the same straight-line run, silently dropping the
	// Jump that actually routes through cleanup.
	ops := opSequence(b.method)
	assert.NotContains(t, ops, tac.OpReturn)
	assert.Contains(t, ops, tac.OpBranch)
}

func TestLowerReturnDecrementsOwnedLocalsButNotReceiver(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	widget := types.NewClass("Widget", "app", types.Public)
	b.method.AddLocal("this", types.ModifiedType{Type: widget}, false)
	b.declare("this", 0) // scope 0: borrowed, never decremented

	b.pushScope()
	b.method.AddLocal("w", types.ModifiedType{Type: widget}, false)
	b.declare("w", 1)
	b.markOwned(1)

	b.lowerReturn(&ast.ReturnStmt{})

	var decrements int
	b.method.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpCall && n.Payload == decrementRefName {
			decrements++
			require.Equal(t, 1, n.Operands[0].Value.Payload)
		}
		return true
	})
	assert.Equal(t, 1, decrements)
}

func TestLowerTryWithoutFinallyEmitsCatchSwitchAndPads(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	exceptionType := types.NewClass("Exception", "app", types.Public)
	stmt := &ast.TryStmt{
		Body: &ast.BlockStmt{},
		Catches: []*ast.CatchClause{
			{Name: "e", Type: exceptionType, Body: &ast.BlockStmt{}},
		},
	}
	b.lowerTry(stmt)

	ops := opSequence(b.method)
	assert.Contains(t, ops, tac.OpCatchSwitch)
	assert.Contains(t, ops, tac.OpCatchPad)
	assert.NotContains(t, ops, tac.OpCleanupPad)
}

func TestLowerTryWithFinallyEmitsCleanupPadAndResume(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	stmt := &ast.TryStmt{
		Body:    &ast.BlockStmt{},
		Finally: &ast.BlockStmt{},
	}
	b.lowerTry(stmt)

	ops := opSequence(b.method)
	assert.Contains(t, ops, tac.OpCleanupPad)
	assert.Contains(t, ops, tac.OpResume)
}

func TestLowerCatchBindsExceptionNameInScope(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root
	b.pushScope()

	exceptionType := types.NewClass("Exception", "app", types.Public)
	catch := &ast.CatchClause{
		Name: "e",
		Type: exceptionType,
		Body: &ast.ExprStmt{Expr: &ast.VariableRef{Name: "e"}},
	}
	padLabel := b.newLabel()
	doneLabel := b.newLabel()
	b.lowerCatch(catch, padLabel, nil, doneLabel, nil, nil)

	// the body's reference to e resolved to a load, not an unresolved no-op
	assert.NotContains(t, opSequence(b.method), tac.OpNoOp)

	_, sawSlot := b.resolve("e")
	assert.False(t, sawSlot) // scope popped after the catch body lowers
}
