package llvmir

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// runtime holds the external declarations every emitted translation
// unit needs but never defines: their bodies live in the hand-written
// native runtime (Name.native.o) the driver links in as-is.
type runtime struct {
	Allocate       *ir.Func
	AllocateArray  *ir.Func
	IncrementRef   *ir.Func
	DecrementRef   *ir.Func
	ShadowCatch    *ir.Func
	ShadowThrow    *ir.Func
	IsInstance     *ir.Func
	Personality    *ir.Func
	PrintException *ir.Func
	ArgvToStrings  *ir.Func
	ConsoleInit    *ir.Func
}

func declareRuntime(m *ir.Module, abi *ABI) *runtime {
	objPtr := types.NewPointer(abi.Header)
	descPtr := types.NewPointer(abi.Descriptor)

	allocate := m.NewFunc("__allocate", objPtr, ir.NewParam("descriptor", descPtr))
	// __allocateArray returns the raw data pointer an array value's
	// first field holds; the dimension words are filled in by the
	// caller once allocation succeeds, since only the caller's TAC knows
	// how many dimensions were requested.
	allocateArray := m.NewFunc("__allocateArray", types.I8Ptr,
		ir.NewParam("elementDescriptor", descPtr),
		ir.NewParam("length", types.I32),
	)
	incrementRef := m.NewFunc("__incrementRef", types.Void, ir.NewParam("object", objPtr))
	decrementRef := m.NewFunc("__decrementRef", types.Void, ir.NewParam("object", objPtr))
	shadowCatch := m.NewFunc("__shadow_catch", objPtr, ir.NewParam("exceptionInfo", types.I8Ptr))
	shadowThrow := m.NewFunc("__shadow_throw", types.Void, ir.NewParam("exception", objPtr))
	// isInstance walks the object's descriptor parent chain and interface
	// array, the same descriptor shape classDescriptor/interfaceDescriptor
	// build, so a CatchPad's declared filter type can be checked against
	// the actual thrown value without the emitter itself knowing how to
	// walk that graph.
	isInstance := m.NewFunc("__shadow_isInstance", types.I1,
		ir.NewParam("object", objPtr),
		ir.NewParam("descriptor", descPtr),
	)
	personality := m.NewFunc("__shadow_personality_v0", types.I32)
	personality.Sig.Variadic = true

	// printException writes an uncaught exception's string representation
	// to the error console; the native runtime owns the formatting logic
	// since it already links against libc's stdio.
	printException := m.NewFunc("__shadow_printException", types.Void, ir.NewParam("exception", objPtr))
	// argvToStrings lifts the process's argc/argv into a Shadow String[]
	// value, returned as the raw array-value struct's data pointer the
	// same way __allocateArray does.
	argvToStrings := m.NewFunc("__shadow_argvToStrings", types.I8Ptr,
		ir.NewParam("argc", types.I32),
		ir.NewParam("argv", types.NewPointer(types.I8Ptr)),
	)
	consoleInit := m.NewFunc("__shadow_consoleInit", types.Void)

	return &runtime{
		Allocate:       allocate,
		AllocateArray:  allocateArray,
		IncrementRef:   incrementRef,
		DecrementRef:   decrementRef,
		ShadowCatch:    shadowCatch,
		ShadowThrow:    shadowThrow,
		IsInstance:     isInstance,
		Personality:    personality,
		PrintException: printException,
		ArgvToStrings:  argvToStrings,
		ConsoleInit:    consoleInit,
	}
}
