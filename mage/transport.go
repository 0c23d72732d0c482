package mage

// Transport is what generated proxies and stubs need from the runtime.
type Transport interface {
	// SendMessage hands a finalised message to the endpoint behind local.
	// The transport owns msg afterwards.
	SendMessage(local Handle, msg *Message)
	// PopulateEndpointDescriptor turns toSend into a descriptor travelling
	// over connection. toSend is moved: the caller must not use it again.
	PopulateEndpointDescriptor(toSend, connection Handle) EndpointDescriptor
	// BindReceiverDelegate routes messages arriving at local to d.
	BindReceiverDelegate(local Handle, d ReceiverDelegate)
}

// ReceiverDelegate receives messages for one bound endpoint. The transport
// calls it synchronously, once per message, with handles already resolved.
type ReceiverDelegate interface {
	OnReceivedMessage(msg *Message)
}
