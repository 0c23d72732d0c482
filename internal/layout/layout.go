package layout

import (
	"magen/internal/source"
	"magen/internal/types"
)

// Wire layout constants shared with the runtime.
const (
	// SizeFieldSize is the leading uint32 "Bytes" field of every parameter struct.
	SizeFieldSize = 4
	// StructAlign is the alignment (and size granularity) of parameter structs
	// and of every sub-allocation in a message.
	StructAlign = 8
)

// Interface is a fully resolved interface ready for emission.
type Interface struct {
	Name    string
	GoName  string
	Span    source.Span
	Methods []Method
}

// Method carries its wire id and the layout of its parameter struct.
type Method struct {
	ID     uint32
	Name   string
	GoName string
	Span   source.Span
	Params []Field
	// HandleCount is the number of HandleTransfer params.
	HandleCount int
	// Blobs are indices into Params of LengthPrefixedBlob params, in
	// declaration order.
	Blobs []int
	// Size is the parameter struct size, rounded up to StructAlign.
	Size uint32
}

// Field is one parameter: its names and its slot in the parameter struct.
type Field struct {
	Name   string // as written in the IDL
	Local  string // Go identifier for the parameter variable
	GoName string // exported struct field
	Type   types.TypeInfo
	Offset uint32
	Span   source.Span
}

// HasBlobs reports whether the method needs any trailing blob region.
func (m *Method) HasBlobs() bool { return len(m.Blobs) > 0 }

// HasHandles reports whether the method writes a descriptor array.
func (m *Method) HasHandles() bool { return m.HandleCount > 0 }

func roundUp(n, align uint32) uint32 {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}
