package mage

import (
	"fmt"

	"fortio.org/safecast"
)

// Pointer is a relative offset from the field holding it to its target.
// Zero is null.
type Pointer uint64

// ArrayHeaderSize is the size of ArrayHeader{NumBytes, NumElements}.
// NumBytes counts the header itself.
const ArrayHeaderSize = 8

// Target resolves p stored at field into an absolute offset.
func (p Pointer) Target(field uint32) (uint32, bool) {
	if p == 0 {
		return 0, false
	}
	abs := uint64(field) + uint64(p)
	if abs > uint64(^uint32(0)) {
		return 0, false
	}
	return uint32(abs), true
}

func pointerTo(field, target uint32) Pointer {
	Check(target > field, "pointer target %d must follow field %d", target, field)
	return Pointer(target - field)
}

// AppendBlob copies b into a new trailing region and returns the pointer to
// store at field. An empty b still gets a region so it round-trips as empty
// rather than null.
func (m *Message) AppendBlob(field uint32, b []byte) Pointer {
	n, err := safecast.Conv[uint32](len(b))
	if err != nil {
		panic(fmt.Errorf("blob length overflow: %w", err))
	}
	at := m.Allocate(ArrayHeaderSize + n)
	m.PutUint32(at, ArrayHeaderSize+n)
	m.PutUint32(at+4, n)
	copy(m.buf[at+ArrayHeaderSize:], b)
	return pointerTo(field, at)
}

// Blob returns a copy of the payload p (stored at field) points to, or nil
// for a null pointer. A malformed header fails Check.
func (m *Message) Blob(field uint32, p Pointer) []byte {
	at, ok := p.Target(field)
	if !ok {
		return nil
	}
	numBytes := m.Uint32(at)
	n := m.Uint32(at + 4)
	Check(numBytes == ArrayHeaderSize+n, "blob at %d: header says %d bytes for %d elements", at, numBytes, n)
	out := make([]byte, n)
	copy(out, m.span(at+ArrayHeaderSize, n))
	return out
}
