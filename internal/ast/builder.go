package ast

import (
	"magen/internal/source"
)

type Hints struct{ Files, Interfaces, Methods, Params uint }

// Builder owns every arena of one compilation. It is not shared between
// compilations and is not safe for concurrent use.
type Builder struct {
	Files      *Table[FileID, File]
	Interfaces *Table[InterfaceID, Interface]
	Methods    *Table[MethodID, Method]
	Params     *Table[ParamID, Param]
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1
	}
	if hints.Interfaces == 0 {
		hints.Interfaces = 1
	}
	if hints.Methods == 0 {
		hints.Methods = 1 << 4
	}
	if hints.Params == 0 {
		hints.Params = 1 << 5
	}
	return &Builder{
		Files:      newTable[FileID, File](hints.Files),
		Interfaces: newTable[InterfaceID, Interface](hints.Interfaces),
		Methods:    newTable[MethodID, Method](hints.Methods),
		Params:     newTable[ParamID, Param](hints.Params),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(File{Span: sp, Interfaces: make([]InterfaceID, 0, 1)})
}

func (b *Builder) NewInterface(name string, nameSpan, sp source.Span) InterfaceID {
	return b.Interfaces.New(Interface{Name: name, NameSpan: nameSpan, Span: sp})
}

func (b *Builder) NewMethod(name string, nameSpan, sp source.Span) MethodID {
	return b.Methods.New(Method{Name: name, NameSpan: nameSpan, Span: sp})
}

func (b *Builder) NewParam(p Param) ParamID {
	return b.Params.New(p)
}

func (b *Builder) PushInterface(file FileID, iface InterfaceID) {
	f := b.Files.Get(file)
	f.Interfaces = append(f.Interfaces, iface)
}

func (b *Builder) PushMethod(iface InterfaceID, m MethodID) {
	i := b.Interfaces.Get(iface)
	i.Methods = append(i.Methods, m)
}

func (b *Builder) PushParam(m MethodID, p ParamID) {
	mm := b.Methods.Get(m)
	mm.Params = append(mm.Params, p)
}

// Interface returns the single interface of file, or nil when the file has
// none.
func (b *Builder) Interface(file FileID) *Interface {
	f := b.Files.Get(file)
	if f == nil || len(f.Interfaces) == 0 {
		return nil
	}
	return b.Interfaces.Get(f.Interfaces[0])
}
