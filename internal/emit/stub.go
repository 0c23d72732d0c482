package emit

import (
	"fmt"
	"strings"

	"magen/internal/layout"
	"magen/internal/types"
)

// stub renders the callee side: decode, then one synchronous call into the
// bound implementation. Non-user messages and unknown method ids abort.
func (g *generator) stub(p printFn) {
	n := g.names
	p(``)
	p(`// %s decodes messages and dispatches them to a %s.`, n.stub, n.iface)
	p(`type %s struct {`, n.stub)
	p(`	transport mage.Transport`)
	p(`	impl %s`, n.iface)
	p(`}`)
	p(``)
	p(`func %s(t mage.Transport) *%s {`, n.newStub, n.stub)
	p(`	return &%s{transport: t}`, n.stub)
	p(`}`)
	p(``)
	p(`// BindToHandle routes messages arriving at h to impl.`)
	p(`// Binding twice is a fatal error.`)
	p(`func (s *%s) BindToHandle(h mage.Handle, impl %s) {`, n.stub, n.iface)
	p(`	mage.Check(s.impl == nil, "%s is already bound")`, n.stub)
	p(`	mage.Check(impl != nil, "%s bound to a nil implementation")`, n.stub)
	p(`	s.impl = impl`)
	p(`	s.transport.BindReceiverDelegate(h, s)`)
	p(`}`)
	p(``)
	p(`func (s *%s) OnReceivedMessage(msg *mage.Message) {`, n.stub)
	p(`	mage.Check(msg.Type() == mage.UserMessage, "%s received a %%s message", msg.Type())`, n.stub)
	p(`	const at = mage.HeaderSize`)
	p(`	switch msg.MethodID() {`)
	for i := range g.iface.Methods {
		m := &g.iface.Methods[i]
		p(`	case %s:`, g.idConst(m))
		p(`		var params %s`, g.paramsType(m))
		p(`		params.decode(msg, at)`)
		p(`		s.impl.%s(%s)`, m.GoName, stubArgs(m))
	}
	p(`	default:`)
	p(`		mage.ProtocolMismatch(%q, msg.MethodID())`, g.iface.Name)
	p(`	}`)
	p(`}`)
	p(``)
	p(`var _ mage.ReceiverDelegate = (*%s)(nil)`, n.stub)
}

// stubArgs rebuilds native values. Handles are taken from the message in
// declaration order, which is also their descriptor slot order.
func stubArgs(m *layout.Method) string {
	args := make([]string, 0, len(m.Params))
	for _, f := range m.Params {
		switch f.Type.Strategy {
		case types.LengthPrefixedBlob:
			blob := fmt.Sprintf("msg.Blob(%s, params.%s)", fieldAt(f.Offset), f.GoName)
			if f.Type.Native != "[]byte" {
				blob = f.Type.Native + "(" + blob + ")"
			}
			args = append(args, blob)
		case types.HandleTransfer:
			args = append(args, "msg.TakeHandle()")
		default:
			args = append(args, "params."+f.GoName)
		}
	}
	return strings.Join(args, ", ")
}
