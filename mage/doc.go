// Package mage is the runtime ABI that code generated by magen links
// against: the single-buffer Message with its wire accessors, handles and
// endpoint descriptors, and the Transport/ReceiverDelegate contracts.
//
// Wire format (little-endian, every sub-allocation 8-byte aligned):
//
//	MessageHeader   24 bytes: Type, UserMessageID, Size, reserved, Endpoints
//	params struct   at HeaderSize, leading uint32 size field
//	blobs           ArrayHeader{NumBytes, NumElements} + payload
//	descriptors     ArrayHeader + N × EndpointDescriptor, always last
//
// Pointers are relative: the value is the distance from the pointer field
// to its target, zero means null.
//
// The package does not implement a transport; mage/magetest provides an
// in-process one for tests.
package mage
