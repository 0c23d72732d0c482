package mage

import (
	"errors"
	"fmt"
)

// ErrMalformed is wrapped by every ParseMessage failure.
var ErrMalformed = errors.New("mage: malformed message")

// ParseMessage validates a received buffer and returns a Message owning a
// copy of it.
func ParseMessage(b []byte) (*Message, error) {
	if len(b) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrMalformed, len(b))
	}
	m := &Message{buf: append([]byte(nil), b...)}
	if t := m.Type(); t > UserMessage {
		return nil, fmt.Errorf("%w: unknown type %d", ErrMalformed, uint32(t))
	}
	if size := m.Size(); uint64(size) != uint64(len(b)) {
		return nil, fmt.Errorf("%w: header size %d, buffer %d", ErrMalformed, size, len(b))
	}
	if len(b)%Alignment != 0 {
		return nil, fmt.Errorf("%w: length %d is not %d-aligned", ErrMalformed, len(b), Alignment)
	}
	if p := m.Pointer(offEndpoints); p != 0 {
		at, ok := p.Target(offEndpoints)
		if !ok || uint64(at)+ArrayHeaderSize > uint64(len(b)) {
			return nil, fmt.Errorf("%w: endpoint array pointer out of range", ErrMalformed)
		}
		size := m.Uint32(at)
		count := m.Uint32(at + 4)
		if uint64(size) != ArrayHeaderSize+uint64(count)*EndpointDescriptorSize {
			return nil, fmt.Errorf("%w: endpoint array header %d/%d", ErrMalformed, size, count)
		}
		// массив дескрипторов всегда последний
		if uint64(at)+uint64(size) != uint64(len(b)) {
			return nil, fmt.Errorf("%w: endpoint array is not the trailing region", ErrMalformed)
		}
	}
	return m, nil
}
