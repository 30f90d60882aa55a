package llvmir

import (
	"github.com/llir/llvm/ir/types"

	stypes "github.com/shadow-lang/shadowc/internal/types"
)

// llvmType maps a Shadow type to its LLVM representation: primitives
// to their matching integer/float width, class and interface types to a
// pointer to the shared object header since the header is what
// refcounting and dynamic dispatch operate on, and array types, in every
// position, to their by-value ArrayValue struct.
func (e *Emitter) llvmType(t stypes.Type) types.Type {
	switch v := t.(type) {
	case *stypes.PrimitiveType:
		return primitiveLLVMType(v.Kind)
	case *stypes.ClassType, *stypes.InterfaceType:
		return types.NewPointer(e.abi.Header)
	case *stypes.ArrayType:
		return ArrayValue(v.Dimensions)
	default:
		// Unknown, Null, and sequence/method meta-types never reach the
		// emitter: type checking resolves or rejects them first.
		return types.NewPointer(types.I8)
	}
}

func primitiveLLVMType(kind stypes.PrimitiveKind) types.Type {
	switch kind {
	case stypes.Boolean:
		return types.I1
	case stypes.Byte, stypes.UByte:
		return types.I8
	case stypes.Short, stypes.UShort:
		return types.I16
	case stypes.Int, stypes.UInt, stypes.Code:
		return types.I32
	case stypes.Long, stypes.ULong:
		return types.I64
	case stypes.Float:
		return types.Float
	case stypes.Double:
		return types.Double
	default:
		return types.I32
	}
}
