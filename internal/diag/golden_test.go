package diag

import (
	"testing"

	"magen/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/golden/sample.magen", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SemaError,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	expected := "error SYN2001 testdata/golden/sample.magen:1:1 first line second\n" +
		"note SYN2001 testdata/golden/sample.magen:2:1 note line\n" +
		"warning SEM3001 testdata/golden/sample.magen:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	short := FormatShortDiagnostics(diags[:1], fs, false)
	if short != "warning SEM3001 /workspace/testdata/golden/sample.magen:2:1 another" {
		t.Fatalf("unexpected short diagnostics: %q", short)
	}
}

func TestCodeKinds(t *testing.T) {
	tests := []struct {
		code Code
		id   string
		kind ErrorKind
	}{
		{LexUnknownChar, "LEX1001", KindSyntax},
		{LexUnterminatedBlockComment, "LEX1003", KindSyntax},
		{SynTrailingComma, "SYN2007", KindSyntax},
		{SemaUnknownType, "SEM3002", KindUnknownType},
		{SemaDuplicateMethod, "SEM3003", KindDuplicateName},
		{SemaDuplicateParam, "SEM3004", KindDuplicateName},
		{SemaGoNameCollision, "SEM3005", KindDuplicateName},
		{IOFormatError, "IO4003", KindIO},
		{ObsTimings, "OBS6001", KindNone},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.Kind(); got != tt.kind {
			t.Errorf("%s.Kind() = %v, want %v", tt.id, got, tt.kind)
		}
	}
	if KindUnknownType.String() != "UnknownTypeError" {
		t.Fatalf("kind string = %q", KindUnknownType.String())
	}
}

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	b.Add(NewError(SemaUnknownType, source.Span{Start: 5, End: 6}, "b"))
	b.Add(New(SevWarning, IOCacheError, source.Span{Start: 1, End: 2}, "a"))
	if b.Add(NewError(SynUnexpectedToken, source.Span{}, "dropped")) {
		t.Fatal("bag must honour its limit")
	}
	b.Sort()
	if b.Items()[0].Code != IOCacheError {
		t.Fatalf("sort by position failed: %v", b.Items())
	}
	first, ok := b.FirstError()
	if !ok || first.Code != SemaUnknownType {
		t.Fatalf("FirstError = %v, %v", first, ok)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexUnknownChar, SevError, sp, "x", nil, nil)
	r.Report(LexUnknownChar, SevError, sp, "x", nil, nil)
	ReportError(r, LexUnknownChar, sp, "y").WithNote(sp, "n").Emit()
	if bag.Len() != 2 {
		t.Fatalf("got %d diagnostics, want 2", bag.Len())
	}
	if len(bag.Items()[1].Notes) != 1 {
		t.Fatal("builder lost its note")
	}
}

func TestBagAppendIgnoresLimit(t *testing.T) {
	b := NewBag(1)
	b.Add(NewError(SemaUnknownType, source.Span{}, "first"))
	b.Append(New(SevInfo, ObsTimings, source.Span{}, "timings"))
	if b.Len() != 2 || b.HasWarnings() {
		t.Fatalf("got %d diagnostics, warnings=%v", b.Len(), b.HasWarnings())
	}
}
