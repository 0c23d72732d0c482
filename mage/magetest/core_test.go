package magetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magen/mage"
)

type recorder struct {
	msgs    []*mage.Message
	handles []mage.Handle
}

func (r *recorder) OnReceivedMessage(msg *mage.Message) {
	r.msgs = append(r.msgs, msg)
	for msg.IncomingHandles() > 0 {
		r.handles = append(r.handles, msg.TakeHandle())
	}
}

func userMessage(id uint32) *mage.Message {
	m := mage.NewUserMessage(id)
	m.Allocate(8)
	m.FinalizeSize()
	return m
}

func TestQueuedUntilBound(t *testing.T) {
	core := NewCore()
	a, b := core.CreateMessagePipes()

	core.SendMessage(a, userMessage(0))
	core.SendMessage(a, userMessage(1))
	assert.Equal(t, 2, core.Pending(b))

	rec := &recorder{}
	core.BindReceiverDelegate(b, rec)
	require.Len(t, rec.msgs, 2)
	assert.Equal(t, uint32(0), rec.msgs[0].MethodID())
	assert.Equal(t, uint32(1), rec.msgs[1].MethodID())

	core.SendMessage(a, userMessage(2))
	require.Len(t, rec.msgs, 3)
	assert.Equal(t, 0, core.Pending(b))
}

func TestHandleTransferMovesEndpoint(t *testing.T) {
	core := NewCore()
	conn, remote := core.CreateMessagePipes()
	x1, x2 := core.CreateMessagePipes()
	name, ok := core.EndpointName(x1)
	require.True(t, ok)

	msg := mage.NewUserMessage(0)
	msg.Allocate(8)
	msg.AttachEndpoint(core.PopulateEndpointDescriptor(x1, conn))
	msg.WriteEndpointDescriptors()
	msg.FinalizeSize()

	assert.False(t, core.IsValid(x1), "sender's handle must be invalid after transfer")

	rec := &recorder{}
	core.BindReceiverDelegate(remote, rec)
	core.SendMessage(conn, msg)
	require.Len(t, rec.handles, 1)
	got := rec.handles[0]
	assert.True(t, core.IsValid(got))
	assert.NotEqual(t, x1, got)
	gotName, _ := core.EndpointName(got)
	assert.Equal(t, name, gotName)

	// the moved endpoint is still entangled with x2
	inner := &recorder{}
	core.BindReceiverDelegate(got, inner)
	core.SendMessage(x2, userMessage(9))
	require.Len(t, inner.msgs, 1)
	assert.Equal(t, uint32(9), inner.msgs[0].MethodID())
}

func TestInvalidUse(t *testing.T) {
	core := NewCore()
	a, b := core.CreateMessagePipes()

	assert.Panics(t, func() { core.SendMessage(mage.Handle(99), userMessage(0)) })
	assert.Panics(t, func() { core.PopulateEndpointDescriptor(a, a) })
	assert.Panics(t, func() { core.PopulateEndpointDescriptor(b, a) })

	core.BindReceiverDelegate(b, &recorder{})
	assert.Panics(t, func() { core.BindReceiverDelegate(b, &recorder{}) })

	// core is still usable after recovered panics
	c, _ := core.CreateMessagePipes()
	assert.True(t, core.IsValid(c))
}

func TestUnfinalizedMessageIsRejected(t *testing.T) {
	core := NewCore()
	a, _ := core.CreateMessagePipes()
	m := mage.NewUserMessage(0)
	assert.Panics(t, func() { core.SendMessage(a, m) })
}
