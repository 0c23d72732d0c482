package mage

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserMessageHeader(t *testing.T) {
	m := NewUserMessage(7)
	m.FinalizeSize()

	require.Len(t, m.Bytes(), HeaderSize)
	assert.Equal(t, UserMessage, m.Type())
	assert.Equal(t, uint32(7), m.MethodID())
	assert.Equal(t, uint32(HeaderSize), m.Size())
	assert.Equal(t, []byte{2, 0, 0, 0, 7, 0, 0, 0, 24, 0, 0, 0}, m.Bytes()[:12])
}

func TestAllocateIsAligned(t *testing.T) {
	m := NewMessage(UserMessage)
	a := m.Allocate(5)
	b := m.Allocate(1)
	assert.Equal(t, uint32(24), a)
	assert.Equal(t, uint32(32), b)
	assert.Equal(t, uint32(40), m.Len())
}

func TestScalarAccessorsRoundTrip(t *testing.T) {
	m := NewMessage(UserMessage)
	at := m.Allocate(48)

	m.PutBool(at, true)
	m.PutInt8(at+1, -5)
	m.PutInt16(at+2, math.MinInt16)
	m.PutInt32(at+4, -123456)
	m.PutUint64(at+8, math.MaxUint64)
	m.PutFloat64(at+16, math.Pi)
	m.PutFloat32(at+24, -1.5)
	m.PutInt64(at+32, math.MinInt64)
	m.PutDescriptorSlot(at+40, 3)

	assert.True(t, m.Bool(at))
	assert.Equal(t, int8(-5), m.Int8(at+1))
	assert.Equal(t, int16(math.MinInt16), m.Int16(at+2))
	assert.Equal(t, int32(-123456), m.Int32(at+4))
	assert.Equal(t, uint64(math.MaxUint64), m.Uint64(at+8))
	assert.Equal(t, math.Pi, m.Float64(at+16))
	assert.Equal(t, float32(-1.5), m.Float32(at+24))
	assert.Equal(t, int64(math.MinInt64), m.Int64(at+32))
	assert.Equal(t, DescriptorSlot(3), m.DescriptorSlot(at+40))
}

func TestBlobRoundTrip(t *testing.T) {
	for _, payload := range [][]byte{[]byte("hello"), {}, make([]byte, 17)} {
		m := NewMessage(UserMessage)
		at := m.Allocate(8)
		p := m.AppendBlob(at, payload)
		m.PutPointer(at, p)
		m.FinalizeSize()

		parsed, err := ParseMessage(m.Bytes())
		require.NoError(t, err)
		got := parsed.Blob(at, parsed.Pointer(at))
		require.NotNil(t, got)
		assert.Equal(t, payload, got)
	}
}

func TestBlobLayout(t *testing.T) {
	m := NewMessage(UserMessage)
	at := m.Allocate(16)
	p := m.AppendBlob(at+8, []byte("hello"))

	// blob starts right after the 16-byte struct: 24+16 = 40, field at 32
	assert.Equal(t, Pointer(8), p)
	raw := m.Bytes()[40:]
	assert.Equal(t, []byte{13, 0, 0, 0, 5, 0, 0, 0, 'h', 'e', 'l', 'l', 'o', 0, 0, 0}, raw)
}

func TestNullBlob(t *testing.T) {
	m := NewMessage(UserMessage)
	at := m.Allocate(8)
	assert.Nil(t, m.Blob(at, 0))
}

func TestEndpointDescriptorsAreLast(t *testing.T) {
	m := NewUserMessage(0)
	at := m.Allocate(8)
	d1 := EndpointDescriptor{EndpointName: EndpointName{1}, CrossNodeEndpointName: EndpointName{2}}
	d2 := EndpointDescriptor{EndpointName: EndpointName{3}}
	assert.Equal(t, DescriptorSlot(0), m.AttachEndpoint(d1))
	assert.Equal(t, DescriptorSlot(1), m.AttachEndpoint(d2))
	m.PutPointer(at, m.AppendBlob(at, []byte("x")))
	m.WriteEndpointDescriptors()
	m.FinalizeSize()

	parsed, err := ParseMessage(m.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []EndpointDescriptor{d1, d2}, parsed.EndpointDescriptors())
	assert.Equal(t, uint32(len(m.Bytes())), parsed.Size())
}

func TestTakeHandle(t *testing.T) {
	m := NewUserMessage(0)
	m.SetIncomingHandles([]Handle{5, 9})
	assert.Equal(t, Handle(5), m.TakeHandle())
	assert.Equal(t, 1, m.IncomingHandles())
	assert.Equal(t, Handle(9), m.TakeHandle())

	var ie *InvariantError
	assert.PanicsWithError(t, "mage: invariant violated: message has no incoming handle left (2 taken)", func() {
		m.TakeHandle()
	})
	func() {
		defer func() {
			err, _ := recover().(error)
			assert.True(t, errors.As(err, &ie))
		}()
		m.TakeHandle()
	}()
}

func TestParseMessageRejectsMalformed(t *testing.T) {
	good := NewUserMessage(1)
	good.Allocate(8)
	good.FinalizeSize()

	tests := map[string][]byte{
		"short":      make([]byte, 10),
		"bad size":   append(append([]byte(nil), good.Bytes()...), make([]byte, 8)...),
		"bad type":   func() []byte { b := append([]byte(nil), good.Bytes()...); b[0] = 9; return b }(),
		"bad endpts": func() []byte { b := append([]byte(nil), good.Bytes()...); b[16] = 200; return b }(),
	}
	for name, b := range tests {
		_, err := ParseMessage(b)
		assert.ErrorIs(t, err, ErrMalformed, name)
	}
}

func TestProtocolMismatchPanics(t *testing.T) {
	assert.PanicsWithError(t, "mage: protocol mismatch: Foo has no method with id 2", func() {
		ProtocolMismatch("Foo", 2)
	})
}
