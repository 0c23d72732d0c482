package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"magen/internal/driver"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// clampInput copies at most maxFuzzInput bytes of input.
func clampInput(input []byte) []byte {
	return append([]byte(nil), input[:min(len(input), maxFuzzInput)]...)
}

// seedRoots hold the committed .magen sources: the examples and the
// rejected-source fixtures.
var seedRoots = []string{
	filepath.Join("..", "..", "examples"),
	filepath.Join("..", "driver", "testdata"),
}

var literalSeeds = []string{
	"",
	"interface A { F(); }\n",
	"interface A { F(int32 a, string b, bytes c, MageHandle h); G(bool x); }\n",
	"interface A { F(int32 a,); }",
	"interface A { /* open",
	"interface A { F(int32 a) } interface B {}",
	"interface Ünï { Grüß(string nämé); }",
	"interface A { F(int32 3d, uint8-x y); }",
}

func addCorpusSeeds(f *testing.F) {
	for _, root := range seedRoots {
		paths, err := driver.ListSources(root)
		if err != nil {
			continue
		}
		for _, p := range paths {
			// #nosec G304 -- path comes from a repository walk
			if src, err := os.ReadFile(p); err == nil {
				f.Add(clampInput(src))
			}
		}
	}
	for _, s := range literalSeeds {
		f.Add([]byte(s))
	}
}
