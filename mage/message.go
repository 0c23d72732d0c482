package mage

import (
	"encoding/binary"
	"fmt"
	"math"

	"fortio.org/safecast"
)

// MessageType is the first header field.
type MessageType uint32

const (
	SendInvitation MessageType = iota
	AcceptInvitation
	UserMessage
)

func (t MessageType) String() string {
	switch t {
	case SendInvitation:
		return "SendInvitation"
	case AcceptInvitation:
		return "AcceptInvitation"
	case UserMessage:
		return "UserMessage"
	}
	return fmt.Sprintf("MessageType(%d)", uint32(t))
}

// Header layout.
const (
	HeaderSize = 24

	offType      = 0
	offMethodID  = 4
	offSize      = 8
	offEndpoints = 16
)

// Alignment of every sub-allocation.
const Alignment = 8

// Message is one wire message backed by a single growable buffer. Offsets
// handed out by Allocate stay valid while the buffer grows.
//
// A Message is built by one goroutine and then handed to a transport; it is
// not safe for concurrent use.
type Message struct {
	buf []byte

	// proxy side: descriptors attached so far, written by WriteEndpointDescriptors
	pending []EndpointDescriptor
	// stub side: handles resolved by the transport, in message order
	incoming []Handle
	next     int
}

// NewMessage returns a message holding only a header of type t.
func NewMessage(t MessageType) *Message {
	m := &Message{buf: make([]byte, HeaderSize, 128)}
	m.PutUint32(offType, uint32(t))
	return m
}

// NewUserMessage returns a UserMessage carrying method id.
func NewUserMessage(id uint32) *Message {
	m := NewMessage(UserMessage)
	m.PutUint32(offMethodID, id)
	return m
}

// Type returns the message type.
func (m *Message) Type() MessageType { return MessageType(m.Uint32(offType)) }

// MethodID returns the user message id.
func (m *Message) MethodID() uint32 { return m.Uint32(offMethodID) }

// Size returns the size declared in the header (0 until FinalizeSize).
func (m *Message) Size() uint32 { return m.Uint32(offSize) }

// Len returns the current buffer length.
func (m *Message) Len() uint32 {
	n, err := safecast.Conv[uint32](len(m.buf))
	if err != nil {
		panic(fmt.Errorf("message length overflow: %w", err))
	}
	return n
}

// Allocate appends n zeroed bytes, padded to Alignment, and returns their
// offset.
func (m *Message) Allocate(n uint32) uint32 {
	at := m.Len()
	size := n
	if r := size % Alignment; r != 0 {
		size += Alignment - r
	}
	m.buf = append(m.buf, make([]byte, size)...)
	return at
}

// FinalizeSize writes the total size into the header. Call it last.
func (m *Message) FinalizeSize() {
	m.PutUint32(offSize, m.Len())
}

// Bytes returns the encoded message. The slice aliases the buffer.
func (m *Message) Bytes() []byte { return m.buf }

func (m *Message) span(at, n uint32) []byte {
	end := uint64(at) + uint64(n)
	Check(end <= uint64(len(m.buf)), "message access [%d, %d) out of bounds (len %d)", at, end, len(m.buf))
	return m.buf[at : at+n]
}

func (m *Message) PutBool(at uint32, v bool) {
	var b uint8
	if v {
		b = 1
	}
	m.span(at, 1)[0] = b
}

func (m *Message) Bool(at uint32) bool { return m.span(at, 1)[0] != 0 }

func (m *Message) PutUint8(at uint32, v uint8) { m.span(at, 1)[0] = v }

func (m *Message) Uint8(at uint32) uint8 { return m.span(at, 1)[0] }

func (m *Message) PutInt8(at uint32, v int8) { m.PutUint8(at, uint8(v)) }

func (m *Message) Int8(at uint32) int8 { return int8(m.Uint8(at)) }

func (m *Message) PutUint16(at uint32, v uint16) {
	binary.LittleEndian.PutUint16(m.span(at, 2), v)
}

func (m *Message) Uint16(at uint32) uint16 { return binary.LittleEndian.Uint16(m.span(at, 2)) }

func (m *Message) PutInt16(at uint32, v int16) { m.PutUint16(at, uint16(v)) }

func (m *Message) Int16(at uint32) int16 { return int16(m.Uint16(at)) }

func (m *Message) PutUint32(at uint32, v uint32) {
	binary.LittleEndian.PutUint32(m.span(at, 4), v)
}

func (m *Message) Uint32(at uint32) uint32 { return binary.LittleEndian.Uint32(m.span(at, 4)) }

func (m *Message) PutInt32(at uint32, v int32) { m.PutUint32(at, uint32(v)) }

func (m *Message) Int32(at uint32) int32 { return int32(m.Uint32(at)) }

func (m *Message) PutFloat32(at uint32, v float32) { m.PutUint32(at, math.Float32bits(v)) }

func (m *Message) Float32(at uint32) float32 { return math.Float32frombits(m.Uint32(at)) }

func (m *Message) PutUint64(at uint32, v uint64) {
	binary.LittleEndian.PutUint64(m.span(at, 8), v)
}

func (m *Message) Uint64(at uint32) uint64 { return binary.LittleEndian.Uint64(m.span(at, 8)) }

func (m *Message) PutInt64(at uint32, v int64) { m.PutUint64(at, uint64(v)) }

func (m *Message) Int64(at uint32) int64 { return int64(m.Uint64(at)) }

func (m *Message) PutFloat64(at uint32, v float64) { m.PutUint64(at, math.Float64bits(v)) }

func (m *Message) Float64(at uint32) float64 { return math.Float64frombits(m.Uint64(at)) }

func (m *Message) PutPointer(at uint32, p Pointer) { m.PutUint64(at, uint64(p)) }

func (m *Message) Pointer(at uint32) Pointer { return Pointer(m.Uint64(at)) }

func (m *Message) PutDescriptorSlot(at uint32, s DescriptorSlot) { m.PutUint32(at, uint32(s)) }

func (m *Message) DescriptorSlot(at uint32) DescriptorSlot { return DescriptorSlot(m.Uint32(at)) }
