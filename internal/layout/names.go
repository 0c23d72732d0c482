package layout

import (
	"go/token"
	"unicode"
	"unicode/utf8"
)

// reservedLocals are identifiers the generated proxy/stub bodies rely on.
var reservedLocals = map[string]struct{}{
	"msg": {}, "params": {}, "at": {}, "p": {}, "s": {}, "mage": {}, "impl": {}, "t": {}, "h": {},
}

// predeclared Go identifiers; shadowing them breaks conversions in bodies.
var predeclared = map[string]struct{}{
	"any": {}, "bool": {}, "byte": {}, "comparable": {}, "complex64": {}, "complex128": {},
	"error": {}, "float32": {}, "float64": {}, "int": {}, "int8": {}, "int16": {},
	"int32": {}, "int64": {}, "rune": {}, "string": {}, "uint": {}, "uint8": {},
	"uint16": {}, "uint32": {}, "uint64": {}, "uintptr": {},
	"true": {}, "false": {}, "iota": {}, "nil": {},
	"append": {}, "cap": {}, "clear": {}, "close": {}, "complex": {}, "copy": {},
	"delete": {}, "imag": {}, "len": {}, "make": {}, "max": {}, "min": {}, "new": {},
	"panic": {}, "print": {}, "println": {}, "real": {}, "recover": {},
}

// proxyMethods are generated on every proxy next to the interface methods.
var proxyMethods = map[string]struct{}{
	"BindToHandle": {}, "IsBound": {},
}

// sizeField is the Go name of the leading size field.
const sizeField = "Bytes"

// ExportName turns an IDL identifier into an exported Go identifier.
// Names whose first rune has no upper case form get an "X" prefix.
func ExportName(name string) string {
	r, sz := utf8.DecodeRuneInString(name)
	if sz == 0 {
		return name
	}
	up := unicode.ToUpper(r)
	if !unicode.IsUpper(up) {
		return "X" + name
	}
	return string(up) + name[sz:]
}

// Package-level identifiers generated for an interface and its methods.
func ProxyType(iface string) string { return iface + "Proxy" }

func StubType(iface string) string { return iface + "ReceiverStub" }

func IDConst(iface, method string) string { return iface + "_" + method + "_ID" }

func ParamsType(iface, method string) string { return iface + "_" + method + "_Params" }

func ParamsSizeConst(iface, method string) string { return ParamsType(iface, method) + "Size" }

// topLevelNames collects every package-level identifier the emitter
// declares for iface. A parameter local with one of these names would
// shadow it inside the proxy body.
func topLevelNames(iface string, methods []string) map[string]struct{} {
	out := map[string]struct{}{
		iface:                    {},
		ProxyType(iface):         {},
		"New" + ProxyType(iface): {},
		StubType(iface):          {},
		"New" + StubType(iface):  {},
	}
	for _, m := range methods {
		out[IDConst(iface, m)] = struct{}{}
		out[ParamsType(iface, m)] = struct{}{}
		out[ParamsSizeConst(iface, m)] = struct{}{}
	}
	return out
}

// LocalName returns the Go variable name for a parameter. taken holds
// generated package-level names that must stay visible; it may be nil.
func LocalName(name string, taken map[string]struct{}) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	if _, ok := reservedLocals[name]; ok {
		return name + "_"
	}
	if _, ok := predeclared[name]; ok {
		return name + "_"
	}
	if _, ok := taken[name]; ok {
		return name + "_"
	}
	return name
}

// fieldName returns the struct field for a parameter; "Bytes" belongs to
// the size field.
func fieldName(name string) string {
	n := ExportName(name)
	if n == sizeField {
		return n + "_"
	}
	return n
}
