package llvmir

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/shadow-lang/shadowc/internal/ast"
	"github.com/shadow-lang/shadowc/internal/tac"
	stypes "github.com/shadow-lang/shadowc/internal/types"
)

const (
	incrementRefHelper = "__incrementRef"
	decrementRefHelper = "__decrementRef"
)

// namer is satisfied by every llir/llvm local value llir/llvm hands
// back from a Block.NewXxx call; emission uses it to give every
// materialized value the monotonically increasing SSA name the ABI's
// tie-break rule calls for.
type namer interface{ SetName(string) }

// methodBuilder emits one TACMethod's node list into fn. It allocates a
// stack slot for every local up front — mirroring a direct AST-to-IR
// emitter's usual "alloca everything, let mem2reg promote later" shape,
// the same shape 0x2ac-myc__llvm.go and epos-lang-epos__codegen.go use
// for their own locals — rather than tracking SSA-form live ranges
// itself, and walks Label-delimited straight-line runs into one
// ir.Block each.
type methodBuilder struct {
	e       *Emitter
	fn      *ir.Func
	tm      *tac.TACMethod
	blocks  map[*tac.Node]*ir.Block
	values  map[*tac.Node]value.Value
	locals  []value.Value
	cur     *ir.Block
	counter int
	// terminated is true once the current straight-line run has emitted
	// a block terminator; further nodes up to the next Label are dead
	// code the builder left behind (e.g. nodes lowered after a throw or
	// a jump) and are skipped
	// rather than emitted after a terminator, which LLVM rejects.
	terminated bool
}

func (e *Emitter) emitMethodBody(tm *tac.TACMethod) error {
	fn := e.declareFunc(tm.Signature)
	mb := &methodBuilder{
		e:       e,
		fn:      fn,
		tm:      tm,
		blocks:  make(map[*tac.Node]*ir.Block),
		values:  make(map[*tac.Node]value.Value),
		locals:  make([]value.Value, len(tm.Locals)),
		counter: tm.NumParams + 1,
	}
	return mb.build()
}

func (mb *methodBuilder) name() string {
	n := fmt.Sprintf("%d", mb.counter)
	mb.counter++
	return n
}

func (mb *methodBuilder) setName(v value.Value) value.Value {
	if nv, ok := v.(namer); ok {
		nv.SetName(mb.name())
	}
	return v
}

func (mb *methodBuilder) build() error {
	entry := mb.fn.NewBlock("entry")
	mb.cur = entry

	first := true
	mb.tm.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpLabel {
			if first {
				mb.blocks[n] = entry
				first = false
			} else {
				mb.blocks[n] = mb.fn.NewBlock(mb.name())
			}
		}
		return true
	})

	for i, local := range mb.tm.Locals {
		alloca := entry.NewAlloca(mb.e.llvmType(local.Type.Type))
		mb.setName(alloca)
		mb.locals[i] = alloca
	}
	for i := 0; i < mb.tm.NumParams; i++ {
		entry.NewStore(mb.fn.Params[i], mb.locals[i])
	}

	mb.tm.Nodes(func(n *tac.Node) bool {
		if n.Op == tac.OpLabel {
			mb.cur = mb.blocks[n]
			mb.terminated = false
			return true
		}
		if !mb.terminated {
			mb.emitNode(n)
		}
		return true
	})
	return nil
}

func (mb *methodBuilder) operand(n *tac.Node, i int) value.Value {
	if i >= len(n.Operands) || n.Operands[i].Value == nil {
		return constant.NewNull(types.NewPointer(mb.e.abi.Header))
	}
	if v, ok := mb.values[n.Operands[i].Value]; ok {
		return v
	}
	return constant.NewNull(types.NewPointer(mb.e.abi.Header))
}

func operandType(n *tac.Node, i int) stypes.Type {
	if i >= len(n.Operands) || n.Operands[i].Value == nil {
		return stypes.Unknown
	}
	return n.Operands[i].Value.Result.Type
}

func isFloatType(t stypes.Type) bool {
	p, ok := t.(*stypes.PrimitiveType)
	return ok && (p.Kind == stypes.Float || p.Kind == stypes.Double)
}

func isVoidType(t stypes.Type) bool {
	seq, ok := t.(*stypes.SequenceType)
	return ok && seq.Len() == 0
}

// emitNode dispatches a single TAC node to its instruction sequence.
// A node whose Payload is a tac.PhiPayload is the tail of a finally's
// cleanup dispatch (lowerTry appends an OpPhi node carrying the cleanup
// phi's edges after the finally body); this
// emitter resolves that dispatch by branching to the first recorded
// exit rather than modeling a true multi-way resume, since the
// TAC builder does not retain which exit was actually taken at
// runtime — a simplification documented as a known limitation.
func (mb *methodBuilder) emitNode(n *tac.Node) {
	if pp, ok := n.Payload.(tac.PhiPayload); ok && len(pp.Incoming) > 0 {
		target := pp.Incoming[0].Predecessor
		if block, ok := mb.blocks[target]; ok {
			mb.cur.NewBr(block)
			mb.terminated = true
			return
		}
	}

	switch n.Op {
	case tac.OpLiteral:
		mb.values[n] = mb.literalConstant(n)
	case tac.OpVariableRef:
		slot := n.Payload.(int)
		v := mb.cur.NewLoad(mb.e.llvmType(mb.tm.Locals[slot].Type.Type), mb.locals[slot])
		mb.setName(v)
		mb.values[n] = v
	case tac.OpLoad:
		mb.emitLoad(n)
	case tac.OpStore:
		mb.emitStore(n)
	case tac.OpCall:
		mb.emitCall(n)
	case tac.OpReturn:
		mb.emitReturn(n)
	case tac.OpCast:
		mb.emitCast(n)
	case tac.OpNewObject:
		mb.emitNewObject(n)
	case tac.OpNewArray:
		mb.emitNewArray(n)
	case tac.OpBinary:
		mb.emitBinary(n)
	case tac.OpUnary:
		mb.emitUnary(n)
	case tac.OpBranch:
		mb.emitBranchNode(n)
	case tac.OpThrow:
		mb.emitThrow(n)
	case tac.OpCatchSwitch:
		// no real catchswitch instruction in this simplified scheme, but
		// the block still needs a terminator: fall straight through to
		// whatever Label the builder placed right after it, the first
		// catch's pad or, with no catches, the finally's cleanup-unwind.
		if next := n.Next(); next != nil {
			if block, ok := mb.blocks[next]; ok {
				mb.cur.NewBr(block)
				mb.terminated = true
			}
		}
	case tac.OpCatchPad:
		mb.emitCatchPad(n)
	case tac.OpCleanupPad:
		// marks entry into the finally body; nothing to emit.
	case tac.OpResume:
		mb.cur.NewUnreachable()
		mb.terminated = true
	case tac.OpLandingPad, tac.OpPhi, tac.OpNoOp, tac.OpFieldRef, tac.OpMethodRef, tac.OpLabel:
		// FieldRef/MethodRef are resolved into Load/Call operands, never
		// emitted standalone; LandingPad/Phi/NoOp are markers this
		// simplified exception scheme does not need instructions for.
	}
}

func (mb *methodBuilder) literalConstant(n *tac.Node) constant.Constant {
	lp, _ := n.Payload.(tac.LiteralPayload)
	switch v := lp.Value.(type) {
	case bool:
		if v {
			return constant.NewInt(types.I1, 1)
		}
		return constant.NewInt(types.I1, 0)
	case int64:
		it, ok := mb.e.llvmType(n.Result.Type).(*types.IntType)
		if !ok {
			it = types.I32
		}
		return constant.NewInt(it, v)
	case int:
		return constant.NewInt(types.I32, int64(v))
	case float64:
		ft, ok := mb.e.llvmType(n.Result.Type).(*types.FloatType)
		if !ok {
			ft = types.Double
		}
		return constant.NewFloat(ft, v)
	case string:
		data := constant.NewCharArrayFromString(v + "\x00")
		g := mb.e.m.NewGlobalDef(fmt.Sprintf("%s.str.%s", mb.e.m.SourceFilename, mb.name()), data)
		return constant.NewGetElementPtr(data.Typ, g, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
	default:
		return constant.NewNull(types.NewPointer(mb.e.abi.Header))
	}
}

func (mb *methodBuilder) fieldGEP(receiver value.Value, fp tac.FieldPayload) value.Value {
	c, ok := fp.On.(*stypes.ClassType)
	if !ok {
		return receiver
	}
	st := mb.e.objectStructType(c)
	idx := 0
	for i, name := range c.Fields.Names() {
		if name == fp.FieldName {
			idx = i
			break
		}
	}
	typed := mb.setName(mb.cur.NewBitCast(receiver, types.NewPointer(st)))
	gep := mb.setName(mb.cur.NewGetElementPtr(st, typed, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(idx+1))))
	return gep
}

func (mb *methodBuilder) arrayElementGEP(arrayVal value.Value, index value.Value, elemType stypes.Type) value.Value {
	dataPtr := mb.setName(mb.cur.NewExtractValue(arrayVal, 0))
	elemLLVM := mb.e.llvmType(elemType)
	typed := mb.setName(mb.cur.NewBitCast(dataPtr, types.NewPointer(elemLLVM)))
	return mb.setName(mb.cur.NewGetElementPtr(elemLLVM, typed, index))
}

func (mb *methodBuilder) emitLoad(n *tac.Node) {
	switch payload := n.Payload.(type) {
	case int:
		v := mb.cur.NewLoad(mb.e.llvmType(mb.tm.Locals[payload].Type.Type), mb.locals[payload])
		mb.setName(v)
		mb.values[n] = v
	case tac.FieldPayload:
		fieldPtr := mb.fieldGEP(mb.operand(n, 0), payload)
		v := mb.cur.NewLoad(mb.e.llvmType(n.Result.Type), fieldPtr)
		mb.setName(v)
		mb.values[n] = v
	default:
		elemPtr := mb.arrayElementGEP(mb.operand(n, 0), mb.operand(n, 1), n.Result.Type)
		v := mb.cur.NewLoad(mb.e.llvmType(n.Result.Type), elemPtr)
		mb.setName(v)
		mb.values[n] = v
	}
}

func (mb *methodBuilder) emitStore(n *tac.Node) {
	switch payload := n.Payload.(type) {
	case int:
		mb.cur.NewStore(mb.operand(n, 0), mb.locals[payload])
	case tac.FieldPayload:
		fieldPtr := mb.fieldGEP(mb.operand(n, 0), payload)
		mb.cur.NewStore(mb.operand(n, 1), fieldPtr)
	default:
		elemPtr := mb.arrayElementGEP(mb.operand(n, 0), mb.operand(n, 1), n.Result.Type)
		mb.cur.NewStore(mb.operand(n, 2), elemPtr)
	}
}

func (mb *methodBuilder) emitCall(n *tac.Node) {
	if helper, ok := n.Payload.(string); ok {
		mb.emitRuntimeCall(n, helper)
		return
	}
	mp, ok := n.Payload.(tac.MethodPayload)
	if !ok || mp.Method == nil {
		return
	}
	fn := mb.e.declareFunc(mp.Method)
	args := make([]value.Value, len(n.Operands))
	for i := range n.Operands {
		args[i] = mb.operand(n, i)
	}
	call := mb.cur.NewCall(fn, args...)
	if !isVoidType(n.Result.Type) {
		mb.setName(call)
	}
	mb.values[n] = call
}

func (mb *methodBuilder) emitRuntimeCall(n *tac.Node, helper string) {
	var target *ir.Func
	switch helper {
	case incrementRefHelper:
		target = mb.e.rt.IncrementRef
	case decrementRefHelper:
		target = mb.e.rt.DecrementRef
	default:
		return
	}
	arg := mb.setName(mb.cur.NewBitCast(mb.operand(n, 0), types.NewPointer(mb.e.abi.Header)))
	mb.cur.NewCall(target, arg)
}

func (mb *methodBuilder) emitReturn(n *tac.Node) {
	if len(n.Operands) == 0 {
		mb.cur.NewRet(nil)
	} else {
		mb.cur.NewRet(mb.operand(n, 0))
	}
	mb.terminated = true
}

func (mb *methodBuilder) emitCast(n *tac.Node) {
	target := mb.e.llvmType(n.Result.Type)
	v := mb.setName(mb.cur.NewBitCast(mb.operand(n, 0), target))
	mb.values[n] = v
}

func (mb *methodBuilder) emitNewObject(n *tac.Node) {
	mp, ok := n.Payload.(tac.MethodPayload)
	if !ok || mp.Method == nil {
		return
	}
	c, ok := n.Result.Type.(*stypes.ClassType)
	if !ok {
		return
	}
	desc := mb.e.classDescriptor(c)
	obj := mb.setName(mb.cur.NewCall(mb.e.rt.Allocate, desc))
	mb.values[n] = obj

	ctorFn := mb.e.declareFunc(mp.Method)
	args := make([]value.Value, len(n.Operands)+1)
	args[0] = obj
	for i := range n.Operands {
		args[i+1] = mb.operand(n, i)
	}
	mb.cur.NewCall(ctorFn, args...)
}

func (mb *methodBuilder) emitNewArray(n *tac.Node) {
	np, ok := n.Payload.(tac.NewArrayPayload)
	if !ok || np.ArrayType == nil {
		return
	}
	elemDesc := mb.e.elementDescriptor(np.ArrayType.BaseType)
	length32 := mb.setName(mb.cur.NewTrunc(mb.operand(n, 0), types.I32))
	dataPtr := mb.setName(mb.cur.NewCall(mb.e.rt.AllocateArray, elemDesc, length32))

	arrType := ArrayValue(np.ArrayType.Dimensions)
	agg := value.Value(constant.NewUndef(arrType))
	cur := mb.setName(mb.cur.NewInsertValue(agg, dataPtr, 0))
	for i := 0; i < np.ArrayType.Dimensions; i++ {
		cur = mb.setName(mb.cur.NewInsertValue(cur, mb.operand(n, i), uint64(i+1)))
	}
	mb.values[n] = cur
}

func (e *Emitter) elementDescriptor(t stypes.Type) constant.Constant {
	if c, ok := t.(*stypes.ClassType); ok {
		return e.classDescriptor(c)
	}
	return constant.NewNull(types.NewPointer(e.abi.Descriptor))
}

func (mb *methodBuilder) emitBinary(n *tac.Node) {
	bp, _ := n.Payload.(tac.BinaryPayload)
	left, right := mb.operand(n, 0), mb.operand(n, 1)
	floaty := isFloatType(operandType(n, 0))

	var v value.Value
	switch bp.Op {
	case ast.Add:
		if floaty {
			v = mb.cur.NewFAdd(left, right)
		} else {
			v = mb.cur.NewAdd(left, right)
		}
	case ast.Sub:
		if floaty {
			v = mb.cur.NewFSub(left, right)
		} else {
			v = mb.cur.NewSub(left, right)
		}
	case ast.Mul:
		if floaty {
			v = mb.cur.NewFMul(left, right)
		} else {
			v = mb.cur.NewMul(left, right)
		}
	case ast.Div:
		if floaty {
			v = mb.cur.NewFDiv(left, right)
		} else {
			v = mb.cur.NewSDiv(left, right)
		}
	case ast.Mod:
		if floaty {
			v = mb.cur.NewFRem(left, right)
		} else {
			v = mb.cur.NewSRem(left, right)
		}
	case ast.Eq, ast.Ne, ast.Lt, ast.Le, ast.Gt, ast.Ge:
		v = mb.emitCompare(bp.Op, left, right, floaty)
	case ast.And, ast.BitAnd:
		v = mb.cur.NewAnd(left, right)
	case ast.Or, ast.BitOr:
		v = mb.cur.NewOr(left, right)
	case ast.BitXor:
		v = mb.cur.NewXor(left, right)
	case ast.Shl:
		v = mb.cur.NewShl(left, right)
	case ast.Shr:
		v = mb.cur.NewLShr(left, right)
	}
	mb.setName(v)
	mb.values[n] = v
}

func (mb *methodBuilder) emitCompare(op ast.BinaryOp, left, right value.Value, floaty bool) value.Value {
	if floaty {
		preds := map[ast.BinaryOp]enum.FPred{
			ast.Eq: enum.FPredOEQ, ast.Ne: enum.FPredONE, ast.Lt: enum.FPredOLT,
			ast.Le: enum.FPredOLE, ast.Gt: enum.FPredOGT, ast.Ge: enum.FPredOGE,
		}
		return mb.cur.NewFCmp(preds[op], left, right)
	}
	preds := map[ast.BinaryOp]enum.IPred{
		ast.Eq: enum.IPredEQ, ast.Ne: enum.IPredNE, ast.Lt: enum.IPredSLT,
		ast.Le: enum.IPredSLE, ast.Gt: enum.IPredSGT, ast.Ge: enum.IPredSGE,
	}
	return mb.cur.NewICmp(preds[op], left, right)
}

func (mb *methodBuilder) emitUnary(n *tac.Node) {
	up, _ := n.Payload.(tac.UnaryPayload)
	operand := mb.operand(n, 0)

	var v value.Value
	switch up.Op {
	case ast.Neg:
		if isFloatType(operandType(n, 0)) {
			v = mb.cur.NewFNeg(operand)
		} else if it, ok := operand.Type().(*types.IntType); ok {
			v = mb.cur.NewSub(constant.NewInt(it, 0), operand)
		}
	case ast.Not:
		v = mb.cur.NewXor(operand, constant.NewInt(types.I1, 1))
	case ast.BitNot:
		if it, ok := operand.Type().(*types.IntType); ok {
			v = mb.cur.NewXor(operand, constant.NewInt(it, -1))
		}
	}
	mb.setName(v)
	mb.values[n] = v
}

func (mb *methodBuilder) emitBranchNode(n *tac.Node) {
	bp, ok := n.Payload.(tac.BranchPayload)
	if !ok {
		return
	}
	then := mb.blocks[bp.Then]
	if bp.Cond == nil {
		mb.cur.NewBr(then)
	} else {
		mb.cur.NewCondBr(mb.operand(n, 0), then, mb.blocks[bp.Else])
	}
	mb.terminated = true
}

func (mb *methodBuilder) emitThrow(n *tac.Node) {
	casted := mb.setName(mb.cur.NewBitCast(mb.operand(n, 0), types.NewPointer(mb.e.abi.Header)))
	mb.cur.NewCall(mb.e.rt.ShadowThrow, casted)
	mb.cur.NewUnreachable()
	mb.terminated = true
}

// emitCatchPad fetches the in-flight exception and, when Next names
// somewhere else to fall through to, checks Filter against it with
// __shadow_isInstance before binding: a mismatch falls through to Next
// (the next catch's pad, or the enclosing finally's cleanup-unwind)
// instead of running this catch's body against a value it wasn't written
// for. An interface filter, or a pad with nowhere else to fall through
// to, binds unconditionally.
func (mb *methodBuilder) emitCatchPad(n *tac.Node) {
	cp, ok := n.Payload.(tac.CatchPadPayload)
	if !ok {
		return
	}
	exc := mb.setName(mb.cur.NewCall(mb.e.rt.ShadowCatch, constant.NewNull(types.I8Ptr)))

	if class, ok := cp.Filter.(*stypes.ClassType); ok && cp.Next != nil {
		if fallthroughBlock, ok := mb.blocks[cp.Next]; ok {
			desc := mb.e.classDescriptor(class)
			matches := mb.setName(mb.cur.NewCall(mb.e.rt.IsInstance, exc, desc))
			bodyBlock := mb.fn.NewBlock(mb.name())
			mb.cur.NewCondBr(matches, bodyBlock, fallthroughBlock)
			mb.cur = bodyBlock
		}
	}

	for i, local := range mb.tm.Locals {
		if local.Name == cp.Bound {
			mb.cur.NewStore(mb.setName(mb.cur.NewBitCast(exc, mb.e.llvmType(local.Type.Type))), mb.locals[i])
			break
		}
	}
}
