package mage

// Handle is a local reference to one end of a message pipe. It is only
// meaningful to the Transport that issued it.
type Handle uint32

// InvalidHandle is never issued by a transport.
const InvalidHandle Handle = 0

// IsValid reports whether h may refer to an endpoint.
func (h Handle) IsValid() bool { return h != InvalidHandle }

// DescriptorSlot indexes the trailing descriptor array of a message.
type DescriptorSlot uint32

// EndpointName identifies an endpoint across processes.
type EndpointName [16]byte

// EndpointDescriptor is the transferable form of a handle.
type EndpointDescriptor struct {
	EndpointName          EndpointName
	CrossNodeEndpointName EndpointName
}

// EndpointDescriptorSize is the encoded size of EndpointDescriptor.
const EndpointDescriptorSize = 32
