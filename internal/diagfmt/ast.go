package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"magen/internal/ast"
	"magen/internal/source"
)

var errNoFile = errors.New("file not found")

// PosOutput is a span with its resolved start position.
type PosOutput struct {
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
	Line  uint32 `json:"line" yaml:"line"`
	Col   uint32 `json:"col" yaml:"col"`
}

type ParamOutput struct {
	Name string    `json:"name" yaml:"name"`
	Type string    `json:"type" yaml:"type"`
	Span PosOutput `json:"span" yaml:"span"`
}

type MethodOutput struct {
	Name   string        `json:"name" yaml:"name"`
	Span   PosOutput     `json:"span" yaml:"span"`
	Params []ParamOutput `json:"params,omitempty" yaml:"params,omitempty"`
}

type InterfaceOutput struct {
	Name    string         `json:"name" yaml:"name"`
	Span    PosOutput      `json:"span" yaml:"span"`
	Methods []MethodOutput `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// FileOutput is the serialisable AST of one file.
type FileOutput struct {
	Path       string            `json:"path" yaml:"path"`
	Span       PosOutput         `json:"span" yaml:"span"`
	Interfaces []InterfaceOutput `json:"interfaces" yaml:"interfaces"`
}

func pos(span source.Span, fs *source.FileSet) PosOutput {
	start, _ := fs.Resolve(span)
	return PosOutput{Start: span.Start, End: span.End, Line: start.Line, Col: start.Col}
}

// BuildAST converts the arenas of one file into plain nested structs.
func BuildAST(builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) (FileOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return FileOutput{}, errNoFile
	}
	out := FileOutput{
		Path:       fs.Get(file.Span.File).Path,
		Span:       pos(file.Span, fs),
		Interfaces: make([]InterfaceOutput, 0, len(file.Interfaces)),
	}
	for _, iid := range file.Interfaces {
		iface := builder.Interfaces.Get(iid)
		ifo := InterfaceOutput{Name: iface.Name, Span: pos(iface.Span, fs)}
		for _, mid := range iface.Methods {
			m := builder.Methods.Get(mid)
			mo := MethodOutput{Name: m.Name, Span: pos(m.Span, fs)}
			for _, pid := range m.Params {
				p := builder.Params.Get(pid)
				mo.Params = append(mo.Params, ParamOutput{Name: p.Name, Type: p.Type, Span: pos(p.Span, fs)})
			}
			ifo.Methods = append(ifo.Methods, mo)
		}
		out.Interfaces = append(out.Interfaces, ifo)
	}
	return out, nil
}

// FormatASTPretty prints the AST as a tree.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	out, err := BuildAST(builder, fileID, fs)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "File %s (%d:%d)\n", out.Path, out.Span.Line, out.Span.Col)
	for i, iface := range out.Interfaces {
		last := i == len(out.Interfaces)-1
		fmt.Fprintf(w, "%sInterface %s (%d:%d)\n", branch(last), iface.Name, iface.Span.Line, iface.Span.Col)
		prefix := indentFor(last)
		for j, m := range iface.Methods {
			mlast := j == len(iface.Methods)-1
			fmt.Fprintf(w, "%s%sMethod[%d] %s (%d:%d)\n", prefix, branch(mlast), j, m.Name, m.Span.Line, m.Span.Col)
			mprefix := prefix + indentFor(mlast)
			for k, p := range m.Params {
				fmt.Fprintf(w, "%s%sParam %s: %s (%d:%d)\n", mprefix, branch(k == len(m.Params)-1), p.Name, p.Type, p.Span.Line, p.Span.Col)
			}
		}
	}
	return nil
}

func branch(last bool) string {
	if last {
		return "└─ "
	}
	return "├─ "
}

func indentFor(last bool) string {
	if last {
		return "   "
	}
	return "│  "
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	out, err := BuildAST(builder, fileID, fs)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func FormatASTYAML(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	out, err := BuildAST(builder, fileID, fs)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
