package token_test

import (
	"testing"

	"magen/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("interface"); !ok || k != token.KwInterface {
		t.Fatalf("LookupKeyword(interface) = %v,%v", k, ok)
	}
	for _, s := range []string{"Interface", "INTERFACE", "int32", "string", "MageHandle"} {
		if _, ok := token.LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestLookupPunct(t *testing.T) {
	for b, want := range map[byte]token.Kind{'(': token.LParen, ')': token.RParen, '{': token.LBrace, '}': token.RBrace, ',': token.Comma, ';': token.Semicolon} {
		if k, ok := token.LookupPunct(b); !ok || k != want {
			t.Fatalf("LookupPunct(%q) = %v,%v", b, k, ok)
		}
	}
	for _, b := range []byte{'-', '/', '<', 'a', 0, 0xC3} {
		if _, ok := token.LookupPunct(b); ok {
			t.Fatalf("%q must NOT be punct", b)
		}
	}
}

func TestKindStrings(t *testing.T) {
	if token.Semicolon.String() != "Semicolon" {
		t.Fatalf("String() = %q", token.Semicolon.String())
	}
	if token.LBrace.Describe() != "'{'" {
		t.Fatalf("Describe() = %q", token.LBrace.Describe())
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Fatal("out of range kind must not panic")
	}
}
