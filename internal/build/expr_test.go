package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

func newBuilder() *Builder {
	return &Builder{
		ctx:    types.NewTypeCtx(),
		method: tac.NewMethod(nil),
		scopes: []*scope{{vars: make(map[string]int)}},
	}
}

func TestLowerExprLiteralEmitsLiteralPayload(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	lit := &ast.Literal{Kind: ast.IntLiteral, Value: int64(3)}
	n := b.lowerExpr(lit)

	assert.Equal(t, tac.OpLiteral, n.Op)
	assert.Equal(t, tac.LiteralPayload{Value: int64(3)}, n.Payload)
}

func TestLowerExprVariableRefLoadsResolvedSlotAndIncrementsRefCount(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root
	owner := types.NewClass("Widget", "app", types.Public)
	b.method.AddLocal("w", types.ModifiedType{Type: owner}, false)
	b.declare("w", 0)

	ref := &ast.VariableRef{Name: "w"}
	ref.Type = owner
	load := b.lowerExpr(ref)

	require.Equal(t, tac.OpLoad, load.Op)
	assert.Equal(t, 0, load.Payload)

	// the increment call should be the very next node in the stream
	assert.Equal(t, tac.OpCall, load.Next().Op)
	assert.Equal(t, incrementRefName, load.Next().Payload)
}

func TestLowerExprVariableRefUnresolvedEmitsNoOp(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	n := b.lowerExpr(&ast.VariableRef{Name: "missing"})
	assert.Equal(t, tac.OpNoOp, n.Op)
}

func TestLowerExprThisEmitsVariableRefAtSlotZero(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	n := b.lowerExpr(&ast.This{})
	assert.Equal(t, tac.OpVariableRef, n.Op)
	assert.Equal(t, 0, n.Payload)
}

func TestLowerExprMethodCallRecordsMethodPayloadAndMarksUnwindSource(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	root := tac.NewBlock(nil)
	root.SetLabel(tac.RoleCleanupUnwind, b.method.Entry)
	b.block = tac.NewBlock(root)

	sig := &types.MethodType{MethodName: "add", Params: &types.SequenceType{}, Returns: &types.SequenceType{}}
	call := &ast.MethodCall{Method: sig}
	n := b.lowerExpr(call)

	assert.Equal(t, tac.OpCall, n.Op)
	assert.Equal(t, tac.MethodPayload{Method: sig}, n.Payload)
	assert.True(t, root.UnwindTarget)
}

func TestLowerExprBinaryLowersOperandsInOrder(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	left := &ast.Literal{Kind: ast.IntLiteral, Value: int64(1)}
	right := &ast.Literal{Kind: ast.IntLiteral, Value: int64(2)}
	bin := &ast.BinaryExpr{Op: ast.Add, Left: left, Right: right}

	n := b.lowerExpr(bin)
	require.Len(t, n.Operands, 2)
	assert.Equal(t, tac.LiteralPayload{Value: int64(1)}, n.Operands[0].Value.Payload)
	assert.Equal(t, tac.LiteralPayload{Value: int64(2)}, n.Operands[1].Value.Payload)
	assert.Equal(t, tac.BinaryPayload{Op: ast.Add}, n.Payload)
}

func TestLowerExprNewObjectRecordsInstantiationAndCtorPayload(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root

	class := types.NewClass("Widget", "app", types.Public)
	ctor := &types.MethodType{MethodName: "init"}
	newObj := &ast.NewObject{Ctor: ctor}
	newObj.Type = class

	n := b.lowerExpr(newObj)
	assert.Equal(t, tac.OpNewObject, n.Op)
	assert.Equal(t, tac.MethodPayload{Method: ctor}, n.Payload)

	found := false
	for _, inst := range b.ctx.Instantiations() {
		if inst == types.Type(class) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestLowerAssignVariableRefDecrementsOldValueForReferenceType(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root
	class := types.NewClass("Widget", "app", types.Public)
	b.method.AddLocal("w", types.ModifiedType{Type: class}, false)
	b.declare("w", 0)

	target := &ast.VariableRef{Name: "w"}
	target.Type = class
	value := &ast.Literal{Kind: ast.NullLiteral}

	assign := &ast.AssignExpr{Target: target, Value: value}
	b.lowerExpr(assign)

	var sawDecrement, sawStore bool
	b.method.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpCall && n.Payload == decrementRefName {
			sawDecrement = true
		}
		if n.Op == tac.OpStore {
			sawStore = true
		}
		return true
	})
	assert.True(t, sawDecrement)
	assert.True(t, sawStore)
}

func TestLowerAssignFieldAccessEmitsStoreWithFieldPayload(t *testing.T) {
	b := newBuilder()
	b.current = b.method.Entry
	b.block = b.method.Root
	class := types.NewClass("Widget", "app", types.Public)

	receiver := &ast.This{}
	receiver.Type = class
	target := &ast.FieldAccess{Receiver: receiver, Name: "count"}
	value := &ast.Literal{Kind: ast.IntLiteral, Value: int64(1)}

	assign := &ast.AssignExpr{Target: target, Value: value}
	n := b.lowerExpr(assign)

	require.Equal(t, tac.OpStore, n.Op)
	assert.Equal(t, tac.FieldPayload{On: class, FieldName: "count"}, n.Payload)
}
