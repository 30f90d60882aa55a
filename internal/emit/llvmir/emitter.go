package llvmir

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/shadow-lang/shadowc/internal/tac"
	stypes "github.com/shadow-lang/shadowc/internal/types"
)

// Emitter accumulates the LLVM IR for one compilation unit: the class
// whose methods are being defined here, plus every type it referenced
// while being built, declared just far enough (struct layout, method
// signatures) to link against.
type Emitter struct {
	m   *ir.Module
	abi *ABI
	rt  *runtime
	own *stypes.ClassType

	classBody   map[string]*types.StructType
	descriptors map[string]*ir.Global
	names       map[string]constant.Constant
	funcs       map[string]*ir.Func

	genericSet []constant.Constant
	arraySet   []constant.Constant
}

func newEmitter(sourceName string) *Emitter {
	m := ir.NewModule()
	m.SourceFilename = sourceName
	abi := newABI(m)
	return &Emitter{
		m:           m,
		abi:         abi,
		rt:          declareRuntime(m, abi),
		classBody:   make(map[string]*types.StructType),
		descriptors: make(map[string]*ir.Global),
		names:       make(map[string]constant.Constant),
		funcs:       make(map[string]*ir.Func),
	}
}

// EmitClass lowers one compiled class's TAC module to LLVM IR text: its
// object layout, class descriptor, one ir.Func per declared method, and
// an empty module-init thunk ($classInit). Nothing in the emitted program
// calls the thunk.
func EmitClass(mod *tac.Module) (string, error) {
	c, ok := mod.Type.(*stypes.ClassType)
	if !ok {
		return "", fmt.Errorf("llvmir: %s is not a class type", mod.Type.Name())
	}

	e := newEmitter(c.QualifiedName())
	e.own = c
	e.objectStructType(c)

	for _, method := range c.Methods.All() {
		e.declareFunc(method)
	}
	for _, tm := range mod.Methods {
		if err := e.emitMethodBody(tm); err != nil {
			return "", err
		}
	}
	e.classDescriptor(c)
	e.emitClassInit(c)

	return e.m.String(), nil
}

// declareFunc registers method's ir.Func signature without a body,
// memoized by mangled name so both this class's own method bodies and
// any external caller that resolved a call to method share one
// declaration.
func (e *Emitter) declareFunc(method *stypes.MethodType) *ir.Func {
	name := Mangle(method)
	if fn, ok := e.funcs[name]; ok {
		return fn
	}

	var params []*ir.Param
	if !method.Mods.IsStatic() {
		params = append(params, ir.NewParam("this", types.NewPointer(e.abi.Header)))
	}
	for i, p := range method.Params.Elements {
		params = append(params, ir.NewParam(fmt.Sprintf("p%d", i), e.llvmType(p.Type)))
	}

	retType := types.Type(types.Void)
	if method.Returns.Len() > 0 {
		retType = e.llvmType(method.Returns.Elements[0].Type)
	}

	fn := e.m.NewFunc(name, retType, params...)
	e.funcs[name] = fn
	return fn
}

// emitClassInit emits a no-op "<class>.$classInit" function with an empty
// body. It does not reference the class descriptor, and the synthesized
// main (EmitMain) does not call it.
func (e *Emitter) emitClassInit(c *stypes.ClassType) {
	fn := e.m.NewFunc(safeTypeName(c.QualifiedName())+".$classInit", types.Void)
	block := fn.NewBlock("entry")
	block.NewRet(nil)
}
