package types

import "sync"

// Wire field sizes shared with the runtime.
const (
	PointerSize = 8 // mage.Pointer, relative offset
	SlotSize    = 4 // mage.DescriptorSlot
)

func scalar(name string, kind Kind, width Width, accessor string) TypeInfo {
	size := uint32(width) / 8
	if kind == KindBool {
		size = 1
	}
	native := name
	return TypeInfo{
		Name:     name,
		Kind:     kind,
		Width:    width,
		Native:   native,
		Wire:     native,
		Strategy: InlineCopy,
		Size:     size,
		Align:    size,
		Accessor: accessor,
	}
}

// Builtins returns a fresh copy of the built-in entries in a stable order.
func Builtins() []TypeInfo {
	return []TypeInfo{
		scalar("bool", KindBool, Width8, "Bool"),
		scalar("int8", KindInt, Width8, "Int8"),
		scalar("uint8", KindUint, Width8, "Uint8"),
		scalar("byte", KindUint, Width8, "Uint8"),
		scalar("int16", KindInt, Width16, "Int16"),
		scalar("uint16", KindUint, Width16, "Uint16"),
		scalar("int32", KindInt, Width32, "Int32"),
		scalar("uint32", KindUint, Width32, "Uint32"),
		scalar("float32", KindFloat, Width32, "Float32"),
		scalar("int64", KindInt, Width64, "Int64"),
		scalar("uint64", KindUint, Width64, "Uint64"),
		scalar("float64", KindFloat, Width64, "Float64"),
		{
			Name:     "string",
			Kind:     KindString,
			Native:   "string",
			Wire:     "mage.Pointer",
			Strategy: LengthPrefixedBlob,
			Size:     PointerSize,
			Align:    PointerSize,
			Accessor: "Pointer",
		},
		{
			Name:     "bytes",
			Kind:     KindBytes,
			Native:   "[]byte",
			Wire:     "mage.Pointer",
			Strategy: LengthPrefixedBlob,
			Size:     PointerSize,
			Align:    PointerSize,
			Accessor: "Pointer",
		},
		{
			Name:     "MageHandle",
			Kind:     KindHandle,
			Native:   "mage.Handle",
			Wire:     "mage.DescriptorSlot",
			Strategy: HandleTransfer,
			Size:     SlotSize,
			Align:    SlotSize,
			Accessor: "DescriptorSlot",
		},
	}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry. It is built once and never
// mutated afterwards, so concurrent compilations may share it.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := NewRegistry(Builtins()...)
		if err != nil {
			panic(err)
		}
		defaultReg = reg
	})
	return defaultReg
}
