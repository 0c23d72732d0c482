package types

import "fmt"

// Kind enumerates wire type families.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindHandle
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindHandle:
		return "handle"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Width captures the precision of integers/floats.
type Width uint8

const (
	WidthAny Width = 0
	Width8   Width = 8
	Width16  Width = 16
	Width32  Width = 32
	Width64  Width = 64
)

// Strategy says how a parameter travels inside a message.
type Strategy uint8

const (
	// InlineCopy: fixed-width value stored directly in the parameter struct.
	InlineCopy Strategy = iota + 1
	// LengthPrefixedBlob: payload in a trailing sub-allocation, the struct
	// holds a relative pointer to it.
	LengthPrefixedBlob
	// HandleTransfer: handle moved into the trailing descriptor array, the
	// struct holds its slot index.
	HandleTransfer
)

func (s Strategy) String() string {
	switch s {
	case InlineCopy:
		return "InlineCopy"
	case LengthPrefixedBlob:
		return "LengthPrefixedBlob"
	case HandleTransfer:
		return "HandleTransfer"
	default:
		return fmt.Sprintf("Strategy(%d)", s)
	}
}

// TypeInfo is one registry entry.
//
// Native and Wire are Go type expressions as they appear in generated code
// (runtime types are qualified with "mage."). Accessor is the suffix of the
// mage.Message method pair used for the wire field: Accessor "Int32" means
// msg.PutInt32(at, v) / msg.Int32(at).
type TypeInfo struct {
	Name     string
	Kind     Kind
	Width    Width
	Native   string
	Wire     string
	Strategy Strategy
	Size     uint32
	Align    uint32
	Accessor string
}

// IsBlob reports whether the value lives in a trailing blob region.
func (t TypeInfo) IsBlob() bool { return t.Strategy == LengthPrefixedBlob }

// IsHandle reports whether the value is moved through the descriptor array.
func (t TypeInfo) IsHandle() bool { return t.Strategy == HandleTransfer }
