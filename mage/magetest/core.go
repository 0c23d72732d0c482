// Package magetest is an in-process mage transport for tests. Every message
// goes through Bytes/ParseMessage, so what a stub sees is exactly what the
// wire would carry.
package magetest

import (
	"sync"

	"github.com/google/uuid"

	"magen/mage"
)

type endpoint struct {
	name     uuid.UUID
	peer     *endpoint
	handle   mage.Handle // InvalidHandle while in transit
	delegate mage.ReceiverDelegate
	queue    []*mage.Message
}

// Core owns a handle table of entangled endpoint pairs.
type Core struct {
	mu        sync.Mutex
	next      mage.Handle
	handles   map[mage.Handle]*endpoint
	inTransit map[uuid.UUID]*endpoint
}

var _ mage.Transport = (*Core)(nil)

func NewCore() *Core {
	return &Core{
		handles:   make(map[mage.Handle]*endpoint),
		inTransit: make(map[uuid.UUID]*endpoint),
	}
}

// CreateMessagePipes returns local handles to two entangled endpoints.
func (c *Core) CreateMessagePipes() (mage.Handle, mage.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a := &endpoint{name: uuid.New()}
	b := &endpoint{name: uuid.New(), peer: a}
	a.peer = b
	return c.register(a), c.register(b)
}

func (c *Core) register(ep *endpoint) mage.Handle {
	c.next++
	ep.handle = c.next
	c.handles[ep.handle] = ep
	return ep.handle
}

func (c *Core) lookup(h mage.Handle) *endpoint {
	ep, ok := c.handles[h]
	mage.Check(ok, "handle %d is not valid", h)
	return ep
}

// IsValid reports whether h currently refers to an endpoint.
func (c *Core) IsValid(h mage.Handle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.handles[h]
	return ok
}

// EndpointName returns the stable name behind h.
func (c *Core) EndpointName(h mage.Handle) (uuid.UUID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ep, ok := c.handles[h]
	if !ok {
		return uuid.Nil, false
	}
	return ep.name, true
}

// Pending returns the number of messages queued on h waiting for a delegate.
func (c *Core) Pending(h mage.Handle) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lookup(h).queue)
}

// PopulateEndpointDescriptor moves toSend out of the handle table; it comes
// back under a new handle when the message carrying it is delivered.
func (c *Core) PopulateEndpointDescriptor(toSend, connection mage.Handle) mage.EndpointDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	mage.Check(toSend != connection, "cannot send handle %d over itself", toSend)
	ep := c.lookup(toSend)
	conn := c.lookup(connection)
	mage.Check(ep != conn.peer, "cannot send handle %d over its own pipe", toSend)
	mage.Check(ep.delegate == nil, "cannot send handle %d: it has a bound receiver", toSend)

	delete(c.handles, toSend)
	ep.handle = mage.InvalidHandle
	c.inTransit[ep.name] = ep

	return mage.EndpointDescriptor{
		EndpointName:          mage.EndpointName(ep.name),
		CrossNodeEndpointName: mage.EndpointName(ep.peer.name),
	}
}

// SendMessage serialises msg and delivers it to the peer of local, or
// queues it until the peer has a delegate.
func (c *Core) SendMessage(local mage.Handle, msg *mage.Message) {
	parsed, err := mage.ParseMessage(msg.Bytes())
	if err != nil {
		panic(&mage.InvariantError{Msg: err.Error()})
	}

	// доставляем вне мьютекса: делегат может сам отправлять сообщения
	if d := c.route(local, parsed); d != nil {
		d.OnReceivedMessage(parsed)
	}
}

func (c *Core) route(local mage.Handle, msg *mage.Message) mage.ReceiverDelegate {
	c.mu.Lock()
	defer c.mu.Unlock()
	dst := c.lookup(local).peer
	if dst.delegate == nil {
		dst.queue = append(dst.queue, msg)
		return nil
	}
	c.resolveLocked(msg)
	return dst.delegate
}

// BindReceiverDelegate routes messages of local to d and flushes its queue.
func (c *Core) BindReceiverDelegate(local mage.Handle, d mage.ReceiverDelegate) {
	for _, m := range c.bind(local, d) {
		d.OnReceivedMessage(m)
	}
}

func (c *Core) bind(local mage.Handle, d mage.ReceiverDelegate) []*mage.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	ep := c.lookup(local)
	mage.Check(ep.delegate == nil, "handle %d already has a receiver", local)
	ep.delegate = d
	queued := ep.queue
	ep.queue = nil
	for _, m := range queued {
		c.resolveLocked(m)
	}
	return queued
}

// resolveLocked turns descriptors into fresh local handles, in message order.
func (c *Core) resolveLocked(msg *mage.Message) {
	descs := msg.EndpointDescriptors()
	if len(descs) == 0 {
		return
	}
	hs := make([]mage.Handle, 0, len(descs))
	for _, d := range descs {
		name := uuid.UUID(d.EndpointName)
		ep, ok := c.inTransit[name]
		mage.Check(ok, "descriptor %s does not name an endpoint in transit", name)
		delete(c.inTransit, name)
		hs = append(hs, c.register(ep))
	}
	msg.SetIncomingHandles(hs)
}
