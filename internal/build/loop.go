package build

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/tac"
)

// lowerWhile pushes a block owning break/continue labels and lowers the
// pre-tested loop purely to Label+Branch — there is no dedicated loop
// TAC node; a while loop is just a condition check that branches either
// into the body or past it, with the body's fall-through returning to
// the check.
func (b *Builder) lowerWhile(stmt *ast.WhileStmt) {
	condLabel := b.newLabel()
	bodyLabel := b.newLabel()
	doneLabel := b.newLabel()

	b.linkLabel(condLabel)
	cond := b.lowerExpr(stmt.Cond)
	b.emitBranch(stmt.Loc, cond, bodyLabel, doneLabel)

	b.pushBlock(func(child *tac.Block) {
		child.SetLabel(tac.RoleBreak, doneLabel)
		child.SetLabel(tac.RoleContinue, condLabel)
		b.linkLabel(bodyLabel)
		b.lowerStmt(stmt.Body)
		b.emitJump(stmt.Loc, condLabel)
	})

	b.linkLabel(doneLabel)
}

// lowerFor desugars the C-style loop into the same Label+Branch shape as
// lowerWhile, with continue targeting the post-statement rather than the
// condition check directly.
func (b *Builder) lowerFor(stmt *ast.ForStmt) {
	b.pushScope()
	defer b.popScope()

	if stmt.Init != nil {
		b.lowerStmt(stmt.Init)
	}

	condLabel := b.newLabel()
	bodyLabel := b.newLabel()
	postLabel := b.newLabel()
	doneLabel := b.newLabel()

	b.linkLabel(condLabel)
	if stmt.Cond != nil {
		cond := b.lowerExpr(stmt.Cond)
		b.emitBranch(stmt.Loc, cond, bodyLabel, doneLabel)
	} else {
		b.emitJump(stmt.Loc, bodyLabel)
	}

	b.pushBlock(func(child *tac.Block) {
		child.SetLabel(tac.RoleBreak, doneLabel)
		child.SetLabel(tac.RoleContinue, postLabel)
		b.linkLabel(bodyLabel)
		b.lowerStmt(stmt.Body)
		b.emitJump(stmt.Loc, postLabel)
	})

	b.linkLabel(postLabel)
	if stmt.Post != nil {
		b.lowerStmt(stmt.Post)
	}
	b.emitJump(stmt.Loc, condLabel)

	b.linkLabel(doneLabel)
}

// linkLabel appends label into the instruction stream at the current
// cursor position.
func (b *Builder) linkLabel(label *tac.Node) {
	b.method.Append(b.current, label)
	b.current = label
}

func (b *Builder) emitJump(loc ast.SourceLocation, target *tac.Node) *tac.Node {
	n := b.emit(tac.OpBranch, loc, noResult())
	n.Payload = tac.BranchPayload{Then: target}
	return n
}

func (b *Builder) emitBranch(loc ast.SourceLocation, cond *tac.Node, then, els *tac.Node) *tac.Node {
	n := b.emit(tac.OpBranch, loc, noResult())
	n.Payload = tac.BranchPayload{Cond: cond, Then: then, Else: els}
	n.Operands = []tac.Operand{{Value: cond}}
	return n
}
