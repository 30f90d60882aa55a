package llvmir

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	stypes "github.com/shadow-lang/shadowc/internal/types"
)

// classFlags mirror the descriptor's flags:int word: bit 0 marks an
// interface, bit 1 marks a generic instantiation, bit 2 marks an
// abstract class.
const (
	flagInterface = 1 << 0
	flagGeneric   = 1 << 1
	flagAbstract  = 1 << 2
)

// objectStructType returns c's by-value instance layout: the object
// header followed by fields in declaration order, memoizing the named
// type so repeated field-access emission reuses one LLVM type.
func (e *Emitter) objectStructType(c *stypes.ClassType) *types.StructType {
	if st, ok := e.classBody[c.QualifiedName()]; ok {
		return st
	}
	st := types.NewStruct()
	e.m.NewTypeDef(safeTypeName(c.QualifiedName()), st)
	e.classBody[c.QualifiedName()] = st

	fields := []types.Type{e.abi.Header}
	for _, name := range c.Fields.Names() {
		f, _ := c.Fields.Get(name)
		fields = append(fields, e.llvmType(f.Type))
	}
	st.Fields = fields
	return st
}

// methodTable builds the { i8*... } function-pointer array a class
// descriptor points to, one slot per method in c.Methods: a method whose
// function is declared in this module is bitcast to a uniform i8* slot
// so the array element type does not vary with each method's own
// signature, and any other method gets a null slot.
func (e *Emitter) methodTable(c *stypes.ClassType) constant.Constant {
	var entries []constant.Constant
	for _, method := range c.Methods.All() {
		fn, ok := e.funcs[Mangle(method)]
		if !ok {
			entries = append(entries, constant.NewNull(types.I8Ptr))
			continue
		}
		entries = append(entries, constant.NewBitCast(fn, types.I8Ptr))
	}
	if len(entries) == 0 {
		return constant.NewNull(types.NewPointer(types.I8Ptr))
	}
	arrType := types.NewArray(uint64(len(entries)), types.I8Ptr)
	g := e.m.NewGlobalDef(safeTypeName(c.QualifiedName())+".methods", constant.NewArray(arrType, entries...))
	return constant.NewGetElementPtr(arrType, g, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
}

// classNameConstant interns qualifiedName's simple name as a global byte
// array and returns a pointer to its first byte, the descriptor's
// name:String* slot. It is shared between classes and interfaces since
// both key their globals by qualified name.
func (e *Emitter) classNameConstant(qualifiedName, simpleName string) constant.Constant {
	if g, ok := e.names[qualifiedName]; ok {
		return g
	}
	name := simpleName + "\x00"
	data := constant.NewCharArrayFromString(name)
	g := e.m.NewGlobalDef(safeTypeName(qualifiedName)+".name", data)
	nameType := types.NewArray(uint64(len(name)), types.I8)
	ptr := constant.NewGetElementPtr(nameType, g, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
	e.names[qualifiedName] = ptr
	return ptr
}

// interfaceMethodTable is methodTable specialized to InterfaceType: an
// interface's methods carry no bodies of their own, so every slot is
// null and the table exists only so implementers' descriptors can be
// checked against a stable arity.
func (e *Emitter) interfaceMethodTable(i *stypes.InterfaceType) constant.Constant {
	n := len(i.Methods.Names())
	if n == 0 {
		return constant.NewNull(types.NewPointer(types.I8Ptr))
	}
	entries := make([]constant.Constant, n)
	for idx := range entries {
		entries[idx] = constant.NewNull(types.I8Ptr)
	}
	arrType := types.NewArray(uint64(n), types.I8Ptr)
	g := e.m.NewGlobalDef(safeTypeName(i.QualifiedName())+".methods", constant.NewArray(arrType, entries...))
	return constant.NewGetElementPtr(arrType, g, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
}

// interfaceDescriptor emits a minimal descriptor for an interface type
// so a class's interface array can point at something with the same
// header/name/method-table shape as a class descriptor, flagged with
// flagInterface so runtime type checks (instanceof against an
// interface) can tell the two apart.
func (e *Emitter) interfaceDescriptor(i *stypes.InterfaceType) *ir.Global {
	key := i.QualifiedName()
	if g, ok := e.descriptors[key]; ok {
		return g
	}
	g := e.m.NewGlobalDef(safeTypeName(key)+".class", constant.NewZeroInitializer(e.abi.Descriptor))
	e.descriptors[key] = g

	headerVal := constant.NewStruct(e.abi.Header,
		constant.NewInt(types.I64, 0),
		constant.NewNull(types.NewPointer(e.abi.Descriptor)),
		constant.NewNull(types.NewPointer(types.I8Ptr)),
	)
	descVal := constant.NewStruct(e.abi.Descriptor,
		headerVal,
		e.classNameConstant(key, i.Name()),
		constant.NewNull(types.NewPointer(e.abi.Descriptor)),
		e.interfaceMethodTable(i),
		e.interfaceArray(key, i.Interfaces),
		constant.NewInt(types.I32, flagInterface),
		constant.NewInt(types.I32, 0),
	)
	g.Init = descVal
	return g
}

// interfaceArray builds the descriptor pointer array a class or
// interface's interface-array slot points to, resolving each
// implemented/extended interface type to its own descriptor. ownerKey
// names the global purely for readability of the emitted IR.
func (e *Emitter) interfaceArray(ownerKey string, ifaces []stypes.Type) constant.Constant {
	var entries []constant.Constant
	for _, iface := range ifaces {
		it, ok := iface.(*stypes.InterfaceType)
		if !ok {
			continue
		}
		entries = append(entries, e.interfaceDescriptor(it))
	}
	if len(entries) == 0 {
		return constant.NewNull(types.NewPointer(types.NewPointer(e.abi.Descriptor)))
	}
	arrType := types.NewArray(uint64(len(entries)), types.NewPointer(e.abi.Descriptor))
	g := e.m.NewGlobalDef(safeTypeName(ownerKey)+".ifaces", constant.NewArray(arrType, entries...))
	return constant.NewGetElementPtr(arrType, g, constant.NewInt(types.I32, 0), constant.NewInt(types.I32, 0))
}

// classDescriptor emits c's class-descriptor global: header, name,
// parent pointer, method table, interface array, flags, and field
// count. It is idempotent per Emitter: repeated references within one
// translation unit share one definition. Every Emitter that references
// c defines the descriptor itself; no external declaration is emitted.
func (e *Emitter) classDescriptor(c *stypes.ClassType) *ir.Global {
	key := c.QualifiedName()
	if g, ok := e.descriptors[key]; ok {
		return g
	}

	// Reserve the slot before recursing into fields so a self- or
	// mutually-referential class graph (every class ultimately extends
	// Object, interfaces reference the classes that implement them)
	// terminates.
	g := e.m.NewGlobalDef(safeTypeName(key)+".class", constant.NewZeroInitializer(e.abi.Descriptor))
	e.descriptors[key] = g

	var parent constant.Constant = constant.NewNull(types.NewPointer(e.abi.Descriptor))
	if extend, ok := c.Extend.(*stypes.ClassType); ok {
		parent = e.classDescriptor(extend)
	}

	flags := int64(0)
	if c.Mods.IsAbstract() {
		flags |= flagAbstract
	}
	if len(c.TypeArgs) > 0 {
		flags |= flagGeneric
	}

	headerVal := constant.NewStruct(e.abi.Header,
		constant.NewInt(types.I64, 0),
		constant.NewNull(types.NewPointer(e.abi.Descriptor)),
		constant.NewNull(types.NewPointer(types.I8Ptr)),
	)
	descVal := constant.NewStruct(e.abi.Descriptor,
		headerVal,
		e.classNameConstant(key, c.Name()),
		parent,
		e.methodTable(c),
		e.interfaceArray(key, c.Interfaces),
		constant.NewInt(types.I32, flags),
		constant.NewInt(types.I32, int64(len(c.Fields.Names()))),
	)
	g.Init = descVal
	if len(c.TypeArgs) > 0 {
		e.genericSet = append(e.genericSet, g)
	}
	return g
}

// safeTypeName replaces the qualified-name separator '@' and the
// package-path separator ':' with an LLVM identifier-safe '.'.
func safeTypeName(qualified string) string {
	out := make([]byte, 0, len(qualified))
	for i := 0; i < len(qualified); i++ {
		if qualified[i] == '@' || qualified[i] == ':' {
			out = append(out, '.')
			continue
		}
		out = append(out, qualified[i])
	}
	return string(out)
}
