package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("calc.magen", []byte("interface A {}"), 0)
	id2 := fs.Add("calc.magen", []byte("interface B {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("calc.magen")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "interface A {}" {
		t.Fatalf("old version lost: %q", got)
	}
}

func TestAddVirtualLines(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.magen", []byte("a\nb\n")))

	if file.LineCount() != 3 {
		t.Fatalf("LineCount = %d, want 3", file.LineCount())
	}
	if file.LineStart(2) != 2 || file.LineEnd(2) != 3 {
		t.Fatalf("line 2 = [%d,%d), want [2,3)", file.LineStart(2), file.LineEnd(2))
	}
	if file.LineStart(9) != 4 || file.LineEnd(3) != 4 {
		t.Fatal("out of range lines must clamp to the content length")
	}
	if file.Flags&FileVirtual == 0 {
		t.Fatal("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.magen", []byte("interface X {\n  Foo();\n}\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{13, LineCol{Line: 1, Col: 14}}, // the '\n' itself
		{14, LineCol{Line: 2, Col: 1}},
		{16, LineCol{Line: 2, Col: 3}},
		{23, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("u.magen", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) || end != (LineCol{Line: 1, Col: 2}) {
		t.Fatalf("got %+v..%+v", start, end)
	}
}

func TestLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.magen", []byte("one\ntwo\nthree")))

	cases := map[uint32]string{0: "", 1: "one", 2: "two", 3: "three", 4: ""}
	for n, want := range cases {
		if got := f.Line(n); got != want {
			t.Errorf("Line(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.magen")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("interface A {\r\n}\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "interface A {\n}\n" {
		t.Fatalf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b", f.Flags)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.magen")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFormatPathRelative(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileSet()
	id := fs.Add(filepath.Join(dir, "nested", "a.magen"), nil, 0)

	if got := fs.Get(id).FormatPath("relative", dir); got != "nested/a.magen" {
		t.Fatalf("relative = %q", got)
	}
	if got := fs.Get(id).FormatPath("basename", ""); got != "a.magen" {
		t.Fatalf("basename = %q", got)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("cross-file Cover changed span: %v", got)
	}
	if !a.Cover(b).Contains(b) {
		t.Fatal("cover must contain its operands")
	}
}
