package llvmir

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	stypes "github.com/shadow-lang/shadowc/internal/types"
)

// EmitMain builds the process entry point's translation unit: the C
// main(argc, argv) thunk that lifts argv into a Shadow String[],
// allocates mainClass, invokes its declared main method, and prints an
// uncaught exception before returning the process exit status. userMain
// is the user's own declared main method, resolved by the driver during
// main-class selection; it may take zero or one (String[]) parameter,
// matching the two forms Shadow programs are allowed to declare.
//
// instantiations is ctx.Instantiations() from every TypeCtx used to
// check the compiled program: it fills the _genericSet/_arraySet
// globals with one descriptor pointer per recorded instantiation.
func EmitMain(mainClass *stypes.ClassType, userMain *stypes.MethodType, instantiations []stypes.Type) (string, error) {
	e := newEmitter("$main")
	e.classDescriptor(mainClass)

	// userMain is declared, not defined, here: its body lives in
	// mainClass's own translation unit and this thunk only calls it.
	mainFunc := e.declareFunc(userMain)

	e.emitGenericSet(instantiations)
	e.emitEntryPoint(mainClass, userMain, mainFunc)

	return e.m.String(), nil
}

// emitGenericSet back-patches the two runtime-visible arrays every
// generic/array descriptor is registered into: _genericSet holds one
// descriptor pointer per distinct generic instantiation seen while
// checking the program, _arraySet one per distinct array element type
// instantiated with `new T[]`. An empty set is emitted as a null
// pointer. No separate element-count global is emitted for either
// array.
func (e *Emitter) emitGenericSet(instantiations []stypes.Type) {
	var genericEntries, arrayEntries []constant.Constant
	for _, t := range instantiations {
		switch v := t.(type) {
		case *stypes.ClassType:
			genericEntries = append(genericEntries, e.classDescriptor(v))
		case *stypes.InterfaceType:
			genericEntries = append(genericEntries, e.interfaceDescriptor(v))
		case *stypes.ArrayType:
			arrayEntries = append(arrayEntries, e.elementDescriptor(v.BaseType))
		}
	}

	descPtr := types.NewPointer(e.abi.Descriptor)
	e.defineDescriptorSet("_genericSet", genericEntries, descPtr)
	e.defineDescriptorSet("_arraySet", arrayEntries, descPtr)
}

func (e *Emitter) defineDescriptorSet(name string, entries []constant.Constant, elemType types.Type) {
	if len(entries) == 0 {
		e.m.NewGlobalDef(name, constant.NewNull(types.NewPointer(elemType)))
		return
	}
	arrType := types.NewArray(uint64(len(entries)), elemType)
	e.m.NewGlobalDef(name, constant.NewArray(arrType, entries...))
}

// emitEntryPoint writes the C-callable `main` function LLVM's linker
// expects: construct the console singleton, lift argv, allocate the
// user's main type, invoke its main method, and report an uncaught
// exception.
func (e *Emitter) emitEntryPoint(mainClass *stypes.ClassType, userMain *stypes.MethodType, mainFunc *ir.Func) {
	argc := ir.NewParam("argc", types.I32)
	argv := ir.NewParam("argv", types.NewPointer(types.I8Ptr))
	fn := e.m.NewFunc("main", types.I32, argc, argv)

	entry := fn.NewBlock("entry")
	entry.NewCall(e.rt.ConsoleInit)

	descriptor := e.classDescriptor(mainClass)
	instance := entry.NewCall(e.rt.Allocate, descriptor)

	var callArgs []value.Value
	callArgs = append(callArgs, instance)
	if userMain.Arity() == 1 {
		strings := entry.NewCall(e.rt.ArgvToStrings, argc, argv)
		callArgs = append(callArgs, strings)
	}
	entry.NewCall(mainFunc, callArgs...)

	pending := entry.NewCall(e.rt.ShadowCatch, constant.NewNull(types.I8Ptr))
	isNull := entry.NewICmp(enum.IPredEQ, pending, constant.NewNull(types.NewPointer(e.abi.Header)))

	cleanBlock := fn.NewBlock(fmt.Sprintf("%s.clean", safeTypeName(mainClass.QualifiedName())))
	uncaughtBlock := fn.NewBlock(fmt.Sprintf("%s.uncaught", safeTypeName(mainClass.QualifiedName())))
	entry.NewCondBr(isNull, cleanBlock, uncaughtBlock)

	cleanBlock.NewRet(constant.NewInt(types.I32, 0))

	uncaughtBlock.NewCall(e.rt.PrintException, pending)
	uncaughtBlock.NewRet(constant.NewInt(types.I32, 1))
}
