// Package emit renders a resolved interface into Go source: the interface
// itself, one parameter struct per method, the proxy and the receiver stub.
// Output depends only on its inputs, so the same interface always yields
// byte-identical text.
package emit

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"path"
	"strconv"

	"magen/internal/layout"
)

// DefaultRuntime is the import path of the mage runtime package.
const DefaultRuntime = "magen/mage"

// ErrFormat wraps go/format failures; it indicates a generator bug.
var ErrFormat = errors.New("generated code does not format")

// Options control the file-level parts of the output.
type Options struct {
	Package string // Go package clause
	Runtime string // import path of the runtime; DefaultRuntime if empty
	Source  string // path printed in the header
}

type printFn func(format string, args ...any)

// Generate renders iface as a gofmt-formatted Go file.
func Generate(iface *layout.Interface, opts Options) ([]byte, error) {
	if iface == nil {
		return nil, errors.New("emit: nil interface")
	}
	if !token.IsIdentifier(opts.Package) || opts.Package == "_" {
		return nil, fmt.Errorf("emit: invalid package name %q", opts.Package)
	}
	if opts.Runtime == "" {
		opts.Runtime = DefaultRuntime
	}

	var buf bytes.Buffer
	p := func(format string, args ...any) {
		fmt.Fprintf(&buf, format, args...)
		buf.WriteByte('\n')
	}
	g := &generator{iface: iface, names: newNames(iface)}

	g.header(p, opts)
	g.constants(p)
	g.abstract(p)
	for i := range iface.Methods {
		g.params(p, &iface.Methods[i])
	}
	g.proxy(p)
	g.stub(p)

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return out, nil
}

type generator struct {
	iface *layout.Interface
	names names
}

func (g *generator) header(p printFn, opts Options) {
	p(`// Code generated by magen. DO NOT EDIT.`)
	if opts.Source != "" {
		p(`// source: %s`, opts.Source)
	}
	p(``)
	p(`package %s`, opts.Package)
	p(``)
	if path.Base(opts.Runtime) == "mage" {
		p(`import %s`, strconv.Quote(opts.Runtime))
	} else {
		p(`import mage %s`, strconv.Quote(opts.Runtime))
	}
}

// names are the generated top-level identifiers of one interface.
type names struct {
	iface, proxy, newProxy, stub, newStub string
}

func newNames(iface *layout.Interface) names {
	n := iface.GoName
	return names{
		iface:    n,
		proxy:    layout.ProxyType(n),
		newProxy: "New" + layout.ProxyType(n),
		stub:     layout.StubType(n),
		newStub:  "New" + layout.StubType(n),
	}
}

func (g *generator) idConst(m *layout.Method) string {
	return layout.IDConst(g.iface.GoName, m.GoName)
}

func (g *generator) paramsType(m *layout.Method) string {
	return layout.ParamsType(g.iface.GoName, m.GoName)
}

func (g *generator) sizeConst(m *layout.Method) string {
	return layout.ParamsSizeConst(g.iface.GoName, m.GoName)
}

// fieldAt renders "at+off" for a field offset; the size field sits at "at".
func fieldAt(off uint32) string {
	if off == 0 {
		return "at"
	}
	return fmt.Sprintf("at+%d", off)
}
