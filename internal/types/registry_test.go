package types

import (
	"errors"
	"sync"
	"testing"
)

func TestDefaultBuiltins(t *testing.T) {
	reg := Default()
	tests := []struct {
		name     string
		native   string
		wire     string
		strategy Strategy
		size     uint32
	}{
		{"bool", "bool", "bool", InlineCopy, 1},
		{"byte", "byte", "byte", InlineCopy, 1},
		{"int16", "int16", "int16", InlineCopy, 2},
		{"int32", "int32", "int32", InlineCopy, 4},
		{"float32", "float32", "float32", InlineCopy, 4},
		{"uint64", "uint64", "uint64", InlineCopy, 8},
		{"float64", "float64", "float64", InlineCopy, 8},
		{"string", "string", "mage.Pointer", LengthPrefixedBlob, 8},
		{"bytes", "[]byte", "mage.Pointer", LengthPrefixedBlob, 8},
		{"MageHandle", "mage.Handle", "mage.DescriptorSlot", HandleTransfer, 4},
	}
	for _, tt := range tests {
		ti, err := reg.Resolve(tt.name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", tt.name, err)
		}
		if ti.Native != tt.native || ti.Wire != tt.wire || ti.Strategy != tt.strategy || ti.Size != tt.size || ti.Align != tt.size {
			t.Errorf("Resolve(%q) = %+v", tt.name, ti)
		}
	}
	if reg.Len() != 15 {
		t.Fatalf("registry has %d entries", reg.Len())
	}
}

func TestResolveUnknown(t *testing.T) {
	reg := Default()
	_, err := reg.Resolve("int128")
	var ute *UnknownTypeError
	if !errors.As(err, &ute) || ute.Name != "int128" || ute.Suggestion != "" {
		t.Fatalf("err = %v", err)
	}

	_, err = reg.Resolve("Int32")
	if !errors.As(err, &ute) || ute.Suggestion != "int32" {
		t.Fatalf("err = %v", err)
	}
	if err.Error() != `unknown type "Int32" (did you mean "int32"?)` {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestNewRegistryExtension(t *testing.T) {
	entries := append(Builtins(), TypeInfo{
		Name: "rune", Kind: KindInt, Width: Width32, Native: "rune", Wire: "int32",
		Strategy: InlineCopy, Size: 4, Align: 4, Accessor: "Int32",
	})
	reg, err := NewRegistry(entries...)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reg.Lookup("rune"); !ok {
		t.Fatal("extension entry missing")
	}
	if _, ok := Default().Lookup("rune"); ok {
		t.Fatal("extension leaked into the default registry")
	}
}

func TestNewRegistryRejectsBadEntries(t *testing.T) {
	good := Builtins()[0]
	tests := []struct {
		name    string
		entries []TypeInfo
	}{
		{"duplicate", []TypeInfo{good, good}},
		{"empty name", []TypeInfo{{Native: "x", Wire: "x", Accessor: "X", Size: 1, Align: 1, Strategy: InlineCopy}}},
		{"bad align", []TypeInfo{{Name: "x", Native: "x", Wire: "x", Accessor: "X", Size: 3, Align: 3, Strategy: InlineCopy}}},
		{"blob not pointer sized", []TypeInfo{{Name: "x", Native: "x", Wire: "x", Accessor: "X", Size: 4, Align: 4, Strategy: LengthPrefixedBlob}}},
		{"no strategy", []TypeInfo{{Name: "x", Native: "x", Wire: "x", Accessor: "X", Size: 4, Align: 4}}},
	}
	for _, tt := range tests {
		if _, err := NewRegistry(tt.entries...); !errors.Is(err, errBadEntry) {
			t.Errorf("%s: err = %v", tt.name, err)
		}
	}
}

func TestDefaultConcurrentResolve(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, n := range Default().Names() {
				if _, err := Default().Resolve(n); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
}
