package build

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

func noResult() types.ModifiedType { return types.ModifiedType{Type: types.Void} }

// lowerStmt dispatches on the concrete Stmt kind. The AST's statement
// set is closed, so this switch has no default case that would silently
// swallow a future variant — an unhandled kind panics instead of
// compiling wrong code.
func (b *Builder) lowerStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		b.pushScope()
		for _, inner := range s.Stmts {
			b.lowerStmt(inner)
		}
		b.popScope()

	case *ast.VarDeclStmt:
		b.method.AddLocal(s.Name, s.Type, false)
		slot := len(b.method.Locals) - 1
		b.declare(s.Name, slot)
		if isReferenceType(s.Type.Type) {
			b.markOwned(slot)
		}
		if s.Initializer != nil {
			val := b.lowerExpr(s.Initializer)
			b.emitStoreLocal(s.Loc, slot, val)
		}

	case *ast.ExprStmt:
		b.lowerExpr(s.Expr)

	case *ast.IfStmt:
		b.lowerIf(s)

	case *ast.WhileStmt:
		b.lowerWhile(s)

	case *ast.ForStmt:
		b.lowerFor(s)

	case *ast.BreakStmt:
		b.lowerExit(s.Loc, tac.RoleBreak)

	case *ast.ContinueStmt:
		b.lowerExit(s.Loc, tac.RoleContinue)

	case *ast.ReturnStmt:
		b.lowerReturn(s)

	case *ast.ThrowStmt:
		val := b.lowerExpr(s.Value)
		n := b.emit(tac.OpThrow, s.Loc, noResult())
		n.Operands = []tac.Operand{{Value: val}}
		tac.AddUnwindSource(b.block)

	case *ast.TryStmt:
		b.lowerTry(s)

	default:
		panic("build: unhandled statement kind")
	}
}

func (b *Builder) lowerIf(s *ast.IfStmt) {
	cond := b.lowerExpr(s.Cond)
	thenLabel := b.newLabel()
	doneLabel := b.newLabel()
	elseLabel := doneLabel
	if s.Else != nil {
		elseLabel = b.newLabel()
	}
	b.emitBranch(s.Loc, cond, thenLabel, elseLabel)

	b.linkLabel(thenLabel)
	b.lowerStmt(s.Then)
	b.emitJump(s.Loc, doneLabel)

	if s.Else != nil {
		b.linkLabel(elseLabel)
		b.lowerStmt(s.Else)
		b.emitJump(s.Loc, doneLabel)
	}

	b.linkLabel(doneLabel)
}

// lowerReturn routes the return through every enclosing finally,
// innermost first: rather than branching straight to the method exit, it
// pushes its own return label into each enclosing cleanup's phi and
// branches to that cleanup, so the finally body always runs before
// control actually leaves.
func (b *Builder) lowerReturn(s *ast.ReturnStmt) {
	var val *tac.Node
	if s.Value != nil {
		val = b.lowerExpr(s.Value)
	}
	// a return leaves every scope the method body pushed, not just the
	// innermost one, so it releases them all down to (but not including)
	// the receiver/parameter scope those are borrowed from the caller.
	b.decrementOwnedScopes(s.Loc, 1)
	returnLabel := b.newLabel()

	target := returnLabel
	for cur := b.block; cur != nil; cur = cur.Parent {
		if cleanup, ok := cur.OwnLabel(tac.RoleCleanup); ok {
			cur.CleanupPhi.Payload = appendPhiEdge(cur.CleanupPhi.Payload, val, target)
			target = cleanup
			break
		}
	}

	if target == returnLabel {
		n := b.emit(tac.OpReturn, s.Loc, noResult())
		if val != nil {
			n.Operands = []tac.Operand{{Value: val}}
		}
	} else {
		// a finally intercepts this return: jump into the cleanup chain
		// instead of returning directly. Emitting an OpReturn here too
		// would terminate the straight-line run right there, and the
		// emitter never reaches a terminator's own successor node, so the
		// Jump that actually routes through the finally would never be
		// emitted at all.
		b.emitJump(s.Loc, target)
	}
	b.linkLabel(returnLabel)
}

// lowerExit implements break/continue: jump to the nearest enclosing
// label of role, routing through an intervening finally first, exactly
// like lowerReturn. The walk stops at the block that owns the
// break/continue label itself — the loop or switch never lies inside
// its own finally — so a cleanup outside that loop is never picked up
// by mistake.
func (b *Builder) lowerExit(loc ast.SourceLocation, role tac.LabelRole) {
	owner, label, ok := b.block.LabelOwner(role)
	if !ok {
		return
	}
	b.decrementOwnedScopes(loc, owner.ScopeDepth)
	exitLabel := b.newLabel()

	target := label
	for cur := b.block; cur != owner; cur = cur.Parent {
		if cleanup, ok := cur.OwnLabel(tac.RoleCleanup); ok {
			cur.CleanupPhi.Payload = appendPhiEdge(cur.CleanupPhi.Payload, nil, exitLabel)
			target = cleanup
			break
		}
	}
	b.emitJump(loc, target)
	b.linkLabel(exitLabel)
}

func appendPhiEdge(payload any, val *tac.Node, predecessor *tac.Node) tac.PhiPayload {
	p, _ := payload.(tac.PhiPayload)
	p.Incoming = append(p.Incoming, tac.PhiEdge{Value: val, Predecessor: predecessor})
	return p
}

func (b *Builder) emitStoreLocal(loc ast.SourceLocation, slot int, val *tac.Node) *tac.Node {
	n := b.emit(tac.OpStore, loc, b.method.Locals[slot].Type)
	n.Operands = []tac.Operand{{Value: val}}
	n.Payload = slot
	return n
}

// lowerTry emits a CatchSwitch label on unwind, one CatchPad per catch
// clause filtering by declared exception type, and, if there is a
// finally clause, a cleanup/cleanupUnwind/cleanupPhi triple. Every
// normal exit from the body or a catch pushes its return address into
// the cleanupPhi and branches to cleanup; the tail of cleanup reads the
// phi and dispatches to the real destination.
func (b *Builder) lowerTry(s *ast.TryStmt) {
	catchSwitchLabel := b.newLabel()
	doneLabel := b.newLabel()

	var cleanupLabel, cleanupUnwindLabel, cleanupPhi *tac.Node
	if s.Finally != nil {
		cleanupLabel = b.newLabel()
		cleanupUnwindLabel = b.newLabel()
		cleanupPhi = &tac.Node{Op: tac.OpPhi, Owner: b.block}
	}

	// every catch's pad label is allocated up front so an earlier catch's
	// CatchPadPayload.Next can point at the one after it before that one
	// has been lowered.
	padLabels := make([]*tac.Node, len(s.Catches))
	for i := range s.Catches {
		padLabels[i] = b.newLabel()
	}

	b.pushBlock(func(child *tac.Block) {
		child.SetLabel(tac.RoleCatchSwitch, catchSwitchLabel)
		if s.Finally != nil {
			child.SetLabel(tac.RoleCleanup, cleanupLabel)
			child.SetLabel(tac.RoleCleanupUnwind, cleanupUnwindLabel)
			child.CleanupPhi = cleanupPhi
		}
		b.lowerStmt(s.Body)
		if s.Finally != nil {
			normalReturn := b.newLabel()
			cleanupPhi.Payload = appendPhiEdge(cleanupPhi.Payload, nil, normalReturn)
			b.emitJump(s.Loc, cleanupLabel)
			b.linkLabel(normalReturn)
		}
		b.emitJump(s.Loc, doneLabel)
	})

	b.linkLabel(catchSwitchLabel)
	catchSwitch := &tac.Node{Op: tac.OpCatchSwitch, Owner: b.block}
	b.method.Append(b.current, catchSwitch)
	b.current = catchSwitch

	for i, c := range s.Catches {
		var next *tac.Node
		if i+1 < len(s.Catches) {
			next = padLabels[i+1]
		} else if cleanupUnwindLabel != nil {
			next = cleanupUnwindLabel
		}
		b.lowerCatch(c, padLabels[i], next, doneLabel, cleanupLabel, cleanupPhi)
	}

	if s.Finally != nil {
		b.linkLabel(cleanupUnwindLabel)
		cleanupPad := &tac.Node{Op: tac.OpCleanupPad, Owner: b.block, Payload: tac.CatchPadPayload{}}
		b.method.Append(b.current, cleanupPad)
		b.current = cleanupPad
		b.lowerStmt(s.Finally)
		b.emit(tac.OpResume, s.Loc, noResult())

		b.linkLabel(cleanupLabel)
		b.lowerStmt(s.Finally)
		// the phi read at the tail of cleanup dispatches to whichever
		// exit target was pushed on the way in.
		dispatch := b.emit(tac.OpPhi, s.Loc, noResult())
		dispatch.Payload = cleanupPhi.Payload
	}

	b.linkLabel(doneLabel)
}

func (b *Builder) lowerCatch(c *ast.CatchClause, padLabel, next, doneLabel, cleanupLabel, cleanupPhi *tac.Node) {
	b.linkLabel(padLabel)
	pad := b.emit(tac.OpCatchPad, c.Loc, types.ModifiedType{Type: c.Type})
	pad.Payload = tac.CatchPadPayload{Filter: c.Type, Bound: c.Name, Next: next}

	b.pushScope()
	b.method.AddLocal(c.Name, types.ModifiedType{Type: c.Type}, false)
	slot := len(b.method.Locals) - 1
	b.declare(c.Name, slot)
	if isReferenceType(c.Type) {
		b.markOwned(slot)
	}
	b.lowerStmt(c.Body)
	b.popScope()

	if cleanupLabel != nil {
		exit := b.newLabel()
		cleanupPhi.Payload = appendPhiEdge(cleanupPhi.Payload, nil, exit)
		b.emitJump(c.Loc, cleanupLabel)
		b.linkLabel(exit)
	}
	b.emitJump(c.Loc, doneLabel)
}
