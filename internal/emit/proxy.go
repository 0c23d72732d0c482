package emit

import (
	"magen/internal/layout"
	"magen/internal/types"
)

// proxy renders the caller side. Every method builds the whole message
// before the single SendMessage call.
func (g *generator) proxy(p printFn) {
	n := g.names
	p(``)
	p(`// %s serializes %s calls into messages.`, n.proxy, n.iface)
	p(`type %s struct {`, n.proxy)
	p(`	transport mage.Transport`)
	p(`	handle mage.Handle`)
	p(`}`)
	p(``)
	p(`func %s(t mage.Transport) *%s {`, n.newProxy, n.proxy)
	p(`	return &%s{transport: t}`, n.proxy)
	p(`}`)
	p(``)
	p(`// BindToHandle attaches the proxy to the local end of a pipe.`)
	p(`// Binding twice is a fatal error.`)
	p(`func (p *%s) BindToHandle(h mage.Handle) {`, n.proxy)
	p(`	mage.Check(!p.IsBound(), "%s is already bound")`, n.proxy)
	p(`	mage.Check(h.IsValid(), "%s bound to an invalid handle")`, n.proxy)
	p(`	p.handle = h`)
	p(`}`)
	p(``)
	p(`func (p *%s) IsBound() bool {`, n.proxy)
	p(`	return p.handle.IsValid()`)
	p(`}`)

	for i := range g.iface.Methods {
		g.proxyMethod(p, &g.iface.Methods[i])
	}

	p(``)
	p(`var _ %s = (*%s)(nil)`, n.iface, n.proxy)
}

func (g *generator) proxyMethod(p printFn, m *layout.Method) {
	n := g.names
	p(``)
	p(`func (p *%s) %s(%s) {`, n.proxy, m.GoName, signature(m))
	p(`	mage.Check(p.IsBound(), "%s.%s called on an unbound proxy")`, n.proxy, m.GoName)
	p(`	msg := mage.NewUserMessage(%s)`, g.idConst(m))
	p(`	at := msg.Allocate(%s)`, g.sizeConst(m))
	p(`	params := %s{`, g.paramsType(m))
	p(`		Bytes: %s,`, g.sizeConst(m))
	for _, f := range m.Params {
		if f.Type.Strategy == types.InlineCopy {
			p(`		%s: %s,`, f.GoName, f.Local)
		}
	}
	p(`	}`)
	for _, f := range m.Params {
		switch f.Type.Strategy {
		case types.LengthPrefixedBlob:
			p(`	params.%s = msg.AppendBlob(%s, %s)`, f.GoName, fieldAt(f.Offset), blobBytes(f))
		case types.HandleTransfer:
			p(`	params.%s = msg.AttachEndpoint(p.transport.PopulateEndpointDescriptor(%s, p.handle))`, f.GoName, f.Local)
		}
	}
	p(`	params.encode(msg, at)`)
	if m.HasHandles() {
		p(`	msg.WriteEndpointDescriptors()`)
	}
	p(`	msg.FinalizeSize()`)
	p(`	p.transport.SendMessage(p.handle, msg)`)
	p(`}`)
}

func blobBytes(f layout.Field) string {
	if f.Type.Native == "[]byte" {
		return f.Local
	}
	return "[]byte(" + f.Local + ")"
}
