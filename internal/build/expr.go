package build

import (
	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// isReferenceType reports whether t is counted by the reference-counted
// object model: class, interface and array types. Every other type,
// type parameters included, reports false.
func isReferenceType(t types.Type) bool {
	switch t.(type) {
	case *types.ClassType, *types.InterfaceType, *types.ArrayType:
		return true
	default:
		return false
	}
}

// incrementRef and decrementRef are external runtime helpers the emitter
// declares; the builder only records the call site, exactly like any
// other Call node — no dedicated TAC opcode exists for refcounting.
const incrementRefName = "__incrementRef"
const decrementRefName = "__decrementRef"

func (b *Builder) emitRefCountCall(loc ast.SourceLocation, helper string, arg *tac.Node) {
	n := b.emit(tac.OpCall, loc, noResult())
	n.Operands = []tac.Operand{{Value: arg}}
	n.Payload = helper
}

// lowerExpr dispatches on the concrete Expr kind and returns the Node
// whose Result carries the expression's value. Loading a reference-typed
// local pairs the load with an __incrementRef call, since the loaded
// value is now a second live reference alongside the local's own; the
// local's own reference is released later, when popScope or an early
// exit (break/continue/return) determines its owning scope is done, via
// markOwned/decrementOwnedScopes in builder.go.
func (b *Builder) lowerExpr(expr ast.Expr) *tac.Node {
	switch e := expr.(type) {
	case *ast.Literal:
		n := b.emit(tac.OpLiteral, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Payload = tac.LiteralPayload{Value: e.Value}
		return n

	case *ast.VariableRef:
		slot, ok := b.resolve(e.Name)
		if !ok {
			return b.emit(tac.OpNoOp, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		}
		n := b.emit(tac.OpLoad, e.Pos(), b.method.Locals[slot].Type)
		n.Payload = slot
		if isReferenceType(e.ResultType()) {
			b.emitRefCountCall(e.Pos(), incrementRefName, n)
		}
		return n

	case *ast.This:
		n := b.emit(tac.OpVariableRef, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Payload = 0
		return n

	case *ast.Super:
		n := b.emit(tac.OpVariableRef, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Payload = 0
		return n

	case *ast.FieldAccess:
		receiver := b.lowerExpr(e.Receiver)
		n := b.emit(tac.OpLoad, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = []tac.Operand{{Value: receiver}}
		n.Payload = tac.FieldPayload{On: e.Receiver.ResultType(), FieldName: e.Name}
		if isReferenceType(e.ResultType()) {
			b.emitRefCountCall(e.Pos(), incrementRefName, n)
		}
		return n

	case *ast.MethodCall:
		var operands []tac.Operand
		if e.Receiver != nil {
			operands = append(operands, tac.Operand{Value: b.lowerExpr(e.Receiver)})
		}
		for _, arg := range e.Args {
			operands = append(operands, tac.Operand{Value: b.lowerExpr(arg)})
		}
		n := b.emit(tac.OpCall, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = operands
		n.Payload = tac.MethodPayload{Method: e.Method, TypeArgs: e.TypeArgs}
		tac.AddUnwindSource(b.block)
		return n

	case *ast.BinaryExpr:
		left := b.lowerExpr(e.Left)
		right := b.lowerExpr(e.Right)
		n := b.emit(tac.OpBinary, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = []tac.Operand{{Value: left}, {Value: right}}
		n.Payload = tac.BinaryPayload{Op: e.Op}
		return n

	case *ast.UnaryExpr:
		operand := b.lowerExpr(e.Operand)
		n := b.emit(tac.OpUnary, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = []tac.Operand{{Value: operand}}
		n.Payload = tac.UnaryPayload{Op: e.Op}
		return n

	case *ast.CastExpr:
		operand := b.lowerExpr(e.Operand)
		n := b.emit(tac.OpCast, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = []tac.Operand{{Value: operand}}
		return n

	case *ast.NewObject:
		if ct, ok := e.ResultType().(*types.ClassType); ok {
			b.ctx.RecordInstantiation(ct)
		}
		var operands []tac.Operand
		for _, arg := range e.Args {
			operands = append(operands, tac.Operand{Value: b.lowerExpr(arg)})
		}
		n := b.emit(tac.OpNewObject, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = operands
		n.Payload = tac.MethodPayload{Method: e.Ctor}
		return n

	case *ast.NewArray:
		arr, _ := e.ResultType().(*types.ArrayType)
		b.ctx.RecordInstantiation(arr)
		var operands []tac.Operand
		for _, l := range e.Lengths {
			operands = append(operands, tac.Operand{Value: b.lowerExpr(l)})
		}
		n := b.emit(tac.OpNewArray, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = operands
		n.Payload = tac.NewArrayPayload{ArrayType: arr}
		return n

	case *ast.ArrayAccess:
		array := b.lowerExpr(e.Array)
		index := b.lowerExpr(e.Index)
		n := b.emit(tac.OpLoad, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = []tac.Operand{{Value: array}, {Value: index}}
		if isReferenceType(e.ResultType()) {
			b.emitRefCountCall(e.Pos(), incrementRefName, n)
		}
		return n

	case *ast.AssignExpr:
		return b.lowerAssign(e)

	default:
		panic("build: unhandled expression kind")
	}
}

// lowerAssign lowers an assignment to a store. For a reference-typed
// local target it first loads the local's old value and releases it with
// __decrementRef, whether or not the local was assigned before. The store
// itself adds no __incrementRef: the new value carries one only when
// lowerExpr loaded it from a local, field or array element, and a new
// object or literal gets none. Field and array-element stores adjust no
// reference counts.
func (b *Builder) lowerAssign(e *ast.AssignExpr) *tac.Node {
	value := b.lowerExpr(e.Value)

	switch target := e.Target.(type) {
	case *ast.VariableRef:
		slot, ok := b.resolve(target.Name)
		if !ok {
			return value
		}
		if isReferenceType(target.ResultType()) {
			old := b.emit(tac.OpLoad, e.Pos(), b.method.Locals[slot].Type)
			old.Payload = slot
			b.emitRefCountCall(e.Pos(), decrementRefName, old)
		}
		return b.emitStoreLocal(e.Pos(), slot, value)

	case *ast.FieldAccess:
		receiver := b.lowerExpr(target.Receiver)
		n := b.emit(tac.OpStore, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = []tac.Operand{{Value: receiver}, {Value: value}}
		n.Payload = tac.FieldPayload{On: target.Receiver.ResultType(), FieldName: target.Name}
		return n

	case *ast.ArrayAccess:
		array := b.lowerExpr(target.Array)
		index := b.lowerExpr(target.Index)
		n := b.emit(tac.OpStore, e.Pos(), types.ModifiedType{Type: e.ResultType()})
		n.Operands = []tac.Operand{{Value: array}, {Value: index}, {Value: value}}
		return n

	default:
		panic("build: unhandled assignment target kind")
	}
}
