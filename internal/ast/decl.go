package ast

import "magen/internal/source"

// File is one parsed source unit. A well-formed file has exactly one
// interface; the parser keeps extra ones so later phases can still report.
type File struct {
	Span       source.Span
	Interfaces []InterfaceID
}

// Interface: interface Name { methods }
type Interface struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Methods  []MethodID
}

// Method: Name(params);
type Method struct {
	Name     string
	NameSpan source.Span
	Span     source.Span
	Params   []ParamID
}

// Param: Type Name
type Param struct {
	Name     string
	NameSpan source.Span
	Type     string
	TypeSpan source.Span
	Span     source.Span
}
