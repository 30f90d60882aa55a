package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

func TestLowerWhileWiresBreakAndContinueLabels(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	stmt := &ast.WhileStmt{
		Cond: &ast.Literal{Kind: ast.BoolLiteral, Value: true},
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.BreakStmt{}, &ast.ContinueStmt{}}},
	}
	b.lowerWhile(stmt)

	count := 0
	b.method.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpBranch {
			count++
		}
		return true
	})
	// condition check + break jump + continue jump + body fallthrough jump
	assert.Equal(t, 4, count)
}

func TestLowerForDesugarsInitCondPostBody(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	stmt := &ast.ForStmt{
		Init: &ast.VarDeclStmt{Name: "i", Type: types.ModifiedType{Type: types.Primitive(types.Int)},
			Initializer: &ast.Literal{Kind: ast.IntLiteral, Value: int64(0)}},
		Cond: &ast.Literal{Kind: ast.BoolLiteral, Value: true},
		Post: &ast.ExprStmt{Expr: &ast.Literal{Kind: ast.IntLiteral, Value: int64(1)}},
		Body: &ast.BlockStmt{},
	}
	b.lowerFor(stmt)

	_, ok := b.resolve("i")
	assert.False(t, ok, "for's init scope should not leak past the loop")

	var labels int
	b.method.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpLabel {
			labels++
		}
		return true
	})
	// method entry label, plus cond, body, post, done
	assert.Equal(t, 5, labels)
}

func TestLowerForWithoutConditionJumpsStraightToBody(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	stmt := &ast.ForStmt{Body: &ast.BlockStmt{}}
	b.lowerFor(stmt)

	var branches []tac.BranchPayload
	b.method.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpBranch {
			branches = append(branches, n.Payload.(tac.BranchPayload))
		}
		return true
	})
	require.NotEmpty(t, branches)
	assert.Nil(t, branches[0].Cond)
}

func TestLinkLabelAppendsAtCursorAndAdvancesIt(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry

	label := b.newLabel()
	b.linkLabel(label)

	assert.Same(t, label, b.current)
	assert.Same(t, label, b.method.Entry.Next())
}

func TestEmitJumpProducesUnconditionalBranchPayload(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	target := b.newLabel()
	n := b.emitJump(ast.SourceLocation{}, target)

	payload := n.Payload.(tac.BranchPayload)
	assert.Nil(t, payload.Cond)
	assert.Same(t, target, payload.Then)
}

func TestEmitBranchProducesConditionalBranchPayload(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	cond := b.emit(tac.OpLiteral, ast.SourceLocation{}, types.ModifiedType{Type: types.Primitive(types.Boolean)})
	thenLabel := b.newLabel()
	elseLabel := b.newLabel()
	n := b.emitBranch(ast.SourceLocation{}, cond, thenLabel, elseLabel)

	payload := n.Payload.(tac.BranchPayload)
	assert.Same(t, cond, payload.Cond)
	assert.Same(t, thenLabel, payload.Then)
	assert.Same(t, elseLabel, payload.Else)
	require.Len(t, n.Operands, 1)
	assert.Same(t, cond, n.Operands[0].Value)
}
