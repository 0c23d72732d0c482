package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"magen/internal/ast"
	"magen/internal/diag"
	"magen/internal/layout"
	"magen/internal/lexer"
	"magen/internal/parser"
	"magen/internal/source"
	"magen/internal/types"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	bag, fs := unknownType(t)

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		IncludeFixes:     true,
		IncludePreviews:  true,
	})
	if err != nil {
		t.Fatal(err)
	}

	var out Report
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SEM3002" || d.Kind != "UnknownTypeError" {
		t.Errorf("header fields: %+v", d)
	}
	if d.Location.File != "calc.magen" || d.Location.StartLine != 2 || d.Location.StartCol != 6 {
		t.Errorf("location: %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != `did you mean "int32"?` {
		t.Errorf("notes: %+v", d.Notes)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes: %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.OldText != "int3" || edit.NewText != "int32" {
		t.Errorf("edit: %+v", edit)
	}
	if len(edit.AfterLines) != 1 || edit.AfterLines[0] != "\tAdd(int32 a);" {
		t.Errorf("preview: %+v", edit.AfterLines)
	}
}

func TestJSONMaxAndOmissions(t *testing.T) {
	bag, fs := unknownType(t)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{Start: 1, End: 2}, "second"))

	out := BuildReport(bag, fs, JSONOpts{Max: 1})
	if out.Count != 1 || out.Omitted != 1 {
		t.Fatalf("count = %d, omitted = %d", out.Count, out.Omitted)
	}
	d := out.Diagnostics[0]
	if d.Notes != nil || d.Fixes != nil || d.Location.StartLine != 0 {
		t.Errorf("optional parts must be omitted: %+v", d)
	}
}

func parseString(t *testing.T, input string) (*ast.Builder, ast.FileID, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("x.magen", []byte(input)))
	bag := diag.NewBag(0)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse: %v", bag.Items())
	}
	return b, res.File, fs
}

func TestASTPretty(t *testing.T) {
	b, file, fs := parseString(t, "interface Calculator {\n  Add(int32 a, int32 b);\n  Reset();\n}\n")
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, b, file, fs); err != nil {
		t.Fatal(err)
	}
	want := "File x.magen (1:1)\n" +
		"└─ Interface Calculator (1:1)\n" +
		"   ├─ Method[0] Add (2:3)\n" +
		"   │  ├─ Param a: int32 (2:7)\n" +
		"   │  └─ Param b: int32 (2:16)\n" +
		"   └─ Method[1] Reset (3:3)\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestASTJSONAndYAMLAgree(t *testing.T) {
	b, file, fs := parseString(t, "interface G { Greet(string name); }")

	var js, ys bytes.Buffer
	if err := FormatASTJSON(&js, b, file, fs); err != nil {
		t.Fatal(err)
	}
	if err := FormatASTYAML(&ys, b, file, fs); err != nil {
		t.Fatal(err)
	}
	var fromJSON, fromYAML FileOutput
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if err := yaml.Unmarshal(ys.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if len(fromYAML.Interfaces) != 1 || fromYAML.Interfaces[0].Methods[0].Params[0].Type != "string" {
		t.Fatalf("yaml: %+v", fromYAML)
	}
	if fromJSON.Interfaces[0].Methods[0].Name != fromYAML.Interfaces[0].Methods[0].Name {
		t.Fatal("json and yaml dumps differ")
	}
}

func TestTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.magen", []byte("// c\nFoo();")))
	lx := lexer.New(file, lexer.Options{})
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, lx.All(), fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `Ident        "Foo" at 2:1-2:4 (leading: LineComment, Newline)`) {
		t.Errorf("first token: %q", lines[0])
	}
	if !strings.Contains(lines[4], "EOF") {
		t.Errorf("last token: %q", lines[4])
	}
}

func TestLayoutDump(t *testing.T) {
	b, file, fs := parseString(t, "interface R { Forward(MageHandle pipe, string note); }")
	_ = fs
	iface, ok := (&layout.Resolver{Registry: types.Default()}).Resolve(b, file)
	if !ok {
		t.Fatal("resolve failed")
	}
	var buf bytes.Buffer
	if err := FormatLayoutPretty(&buf, iface); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"interface R (Go R)",
		"method 0 Forward: size 16, handles 1, blobs 1",
		"+4  Pipe   MageHandle  mage.DescriptorSlot  HandleTransfer",
		"+8  Note   string      mage.Pointer         LengthPrefixedBlob",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}

	var js bytes.Buffer
	if err := FormatLayoutJSON(&js, iface); err != nil {
		t.Fatal(err)
	}
	var l InterfaceLayout
	if err := json.Unmarshal(js.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if l.Methods[0].Fields[1].Offset != 8 || l.Methods[0].Blobs[0] != 1 {
		t.Fatalf("json layout: %+v", l)
	}
}
