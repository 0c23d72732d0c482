package mage

import (
	"fmt"

	"fortio.org/safecast"
)

// AttachEndpoint queues d for the descriptor array and returns its slot.
func (m *Message) AttachEndpoint(d EndpointDescriptor) DescriptorSlot {
	slot := DescriptorSlot(len(m.pending))
	m.pending = append(m.pending, d)
	return slot
}

// WriteEndpointDescriptors appends the descriptor array and links it from
// the header. It must be the last allocation of the message; with no
// attached descriptors it does nothing.
func (m *Message) WriteEndpointDescriptors() {
	if len(m.pending) == 0 {
		return
	}
	Check(m.Pointer(offEndpoints) == 0, "endpoint descriptors already written")
	count, err := safecast.Conv[uint32](len(m.pending))
	if err != nil {
		panic(fmt.Errorf("descriptor count overflow: %w", err))
	}
	size := ArrayHeaderSize + count*EndpointDescriptorSize
	at := m.Allocate(size)
	m.PutUint32(at, size)
	m.PutUint32(at+4, count)
	off := at + ArrayHeaderSize
	for _, d := range m.pending {
		copy(m.buf[off:], d.EndpointName[:])
		copy(m.buf[off+16:], d.CrossNodeEndpointName[:])
		off += EndpointDescriptorSize
	}
	m.PutPointer(offEndpoints, pointerTo(offEndpoints, at))
	m.pending = nil
}

// EndpointDescriptors decodes the trailing descriptor array.
func (m *Message) EndpointDescriptors() []EndpointDescriptor {
	at, ok := m.Pointer(offEndpoints).Target(offEndpoints)
	if !ok {
		return nil
	}
	size := m.Uint32(at)
	count := m.Uint32(at + 4)
	Check(uint64(size) == ArrayHeaderSize+uint64(count)*EndpointDescriptorSize,
		"descriptor array at %d: header says %d bytes for %d descriptors", at, size, count)
	raw := m.span(at+ArrayHeaderSize, size-ArrayHeaderSize)
	out := make([]EndpointDescriptor, count)
	for i := range out {
		rec := raw[i*EndpointDescriptorSize:]
		copy(out[i].EndpointName[:], rec[:16])
		copy(out[i].CrossNodeEndpointName[:], rec[16:32])
	}
	return out
}

// SetIncomingHandles is called by the transport with the local handles the
// descriptors resolved to, in message order.
func (m *Message) SetIncomingHandles(hs []Handle) {
	m.incoming = hs
	m.next = 0
}

// TakeHandle moves the next incoming handle to the caller. Each handle is
// handed out once.
func (m *Message) TakeHandle() Handle {
	Check(m.next < len(m.incoming), "message has no incoming handle left (%d taken)", m.next)
	h := m.incoming[m.next]
	m.incoming[m.next] = InvalidHandle
	m.next++
	return h
}

// IncomingHandles reports how many handles are still untaken.
func (m *Message) IncomingHandles() int {
	return len(m.incoming) - m.next
}
