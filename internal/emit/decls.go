package emit

import (
	"strings"

	"magen/internal/layout"
)

func (g *generator) constants(p printFn) {
	p(``)
	p(`// Method ids of %s, in declaration order.`, g.names.iface)
	p(`const (`)
	for i := range g.iface.Methods {
		m := &g.iface.Methods[i]
		p(`	%s = %d`, g.idConst(m), m.ID)
	}
	p(`)`)
}

func (g *generator) abstract(p printFn) {
	p(``)
	p(`// %s is implemented by the receiving side.`, g.names.iface)
	if len(g.iface.Methods) == 0 {
		p(`type %s interface{}`, g.names.iface)
		return
	}
	p(`type %s interface {`, g.names.iface)
	for i := range g.iface.Methods {
		m := &g.iface.Methods[i]
		p(`	%s(%s)`, m.GoName, signature(m))
	}
	p(`}`)
}

// signature renders "a int32, b string".
func signature(m *layout.Method) string {
	parts := make([]string, 0, len(m.Params))
	for _, f := range m.Params {
		parts = append(parts, f.Local+" "+f.Type.Native)
	}
	return strings.Join(parts, ", ")
}

func (g *generator) params(p printFn, m *layout.Method) {
	typ := g.paramsType(m)
	p(``)
	p(`// %s is the wire layout of %s.%s arguments.`, typ, g.names.iface, m.GoName)
	p(`type %s struct {`, typ)
	p(`	Bytes uint32`)
	for _, f := range m.Params {
		p(`	%s %s`, f.GoName, f.Type.Wire)
	}
	p(`}`)
	p(``)
	p(`const %s = %d`, g.sizeConst(m), m.Size)

	p(``)
	p(`func (p *%s) encode(msg *mage.Message, at uint32) {`, typ)
	p(`	msg.PutUint32(at, p.Bytes)`)
	for _, f := range m.Params {
		p(`	msg.Put%s(%s, p.%s)`, f.Type.Accessor, fieldAt(f.Offset), f.GoName)
	}
	p(`}`)

	p(``)
	p(`func (p *%s) decode(msg *mage.Message, at uint32) {`, typ)
	p(`	p.Bytes = msg.Uint32(at)`)
	for _, f := range m.Params {
		p(`	p.%s = msg.%s(%s)`, f.GoName, f.Type.Accessor, fieldAt(f.Offset))
	}
	p(`}`)
}
