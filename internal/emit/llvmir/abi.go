// Package llvmir lowers a built TAC module to LLVM IR text using
// github.com/llir/llvm's typed instruction builders rather than
// hand-templated strings, one ir.Func per TACMethod.
package llvmir

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// ABI is the set of shared LLVM struct layouts every emitted
// translation unit agrees on: the three-word object header every
// instance starts with, the class descriptor layout objects point to,
// and the by-value array representation. Header and Descriptor are
// mutually recursive (a header carries a descriptor pointer, a
// descriptor embeds a header) so both are declared as named types
// before their Fields are populated.
type ABI struct {
	Header     *types.StructType
	Descriptor *types.StructType
}

// newABI declares the header/descriptor named types on m and wires
// their mutually recursive fields.
func newABI(m *ir.Module) *ABI {
	header := types.NewStruct()
	descriptor := types.NewStruct()
	m.NewTypeDef("object.header", header)
	m.NewTypeDef("class.descriptor", descriptor)

	// { reference-count:ulong, class-ptr, methods-table-ptr }
	header.Fields = []types.Type{
		types.I64,
		types.NewPointer(descriptor),
		types.NewPointer(types.I8Ptr),
	}
	// { header, name:String*, parent:Class*, method-table-array,
	//   interface-array, flags:int, size:int }
	descriptor.Fields = []types.Type{
		header,
		types.NewPointer(types.I8),
		types.NewPointer(descriptor),
		types.NewPointer(types.I8Ptr),
		types.NewPointer(types.NewPointer(descriptor)),
		types.I32,
		types.I32,
	}
	return &ABI{Header: header, Descriptor: descriptor}
}

// GenericDescriptor is the descriptor layout for a generic class
// instantiation: the plain Descriptor fields followed by the
// type-parameter class array and type-parameter method-table array the
// ABI adds for generics.
func (a *ABI) GenericDescriptor(m *ir.Module, name string) *types.StructType {
	st := types.NewStruct()
	m.NewTypeDef(name, st)
	st.Fields = append(append([]types.Type{}, a.Descriptor.Fields...),
		types.NewPointer(types.NewPointer(a.Descriptor)),
		types.NewPointer(types.I8Ptr),
	)
	return st
}

// ArrayValue is the by-value struct an array of the given rank is
// passed as: a data pointer followed by one int per dimension.
func ArrayValue(rank int) *types.StructType {
	fields := make([]types.Type, rank+1)
	fields[0] = types.I8Ptr
	for i := 1; i <= rank; i++ {
		fields[i] = types.I32
	}
	return types.NewStruct(fields...)
}
