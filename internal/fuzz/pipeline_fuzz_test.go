package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"magen/internal/ast"
	"magen/internal/diag"
	"magen/internal/emit"
	"magen/internal/layout"
	"magen/internal/lexer"
	"magen/internal/parser"
	"magen/internal/source"
	"magen/internal/testkit"
	"magen/internal/token"
	"magen/internal/types"
)

// pipelineTimeout bounds one input; longer means a resync loop.
const pipelineTimeout = 5 * time.Second

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.magen", input))
		end := uint32(len(file.Content)) // #nosec G115 -- clamped above

		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: diag.NewBag(64)}})
		var prevEnd uint32
		// каждый токен съедает хотя бы байт
		for i := 0; i <= len(file.Content)+1; i++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				return
			}
			if tok.Span.Start < prevEnd || tok.Span.End <= tok.Span.Start || tok.Span.End > end {
				t.Fatalf("bad span %v after %d (len %d) for %q", tok.Span, prevEnd, end, input)
			}
			prevEnd = tok.Span.End
		}
		t.Fatalf("lexer did not reach EOF for %q", input)
	})
}

func FuzzPipeline(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()

		failure := make(chan string, 1)
		go func() {
			defer close(failure)
			if msg := runPipeline(input); msg != "" {
				failure <- msg
			}
		}()

		select {
		case msg, ok := <-failure:
			if ok {
				t.Fatalf("%s\ninput: %q", msg, truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("pipeline hang detected after %v\ninput (%d bytes): %q",
				pipelineTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// runPipeline returns a non-empty message when an invariant breaks.
func runPipeline(input []byte) string {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.magen", input))
	bag := diag.NewBag(128)
	rep := &diag.BagReporter{Bag: bag}

	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), builder, parser.Options{
		Reporter:  rep,
		MaxErrors: 128,
	})
	if bag.HasErrors() {
		return ""
	}
	if err := testkit.CheckSpanInvariants(builder, res.File, file); err != nil {
		return "span invariants: " + err.Error()
	}

	iface, ok := (&layout.Resolver{Registry: types.Default(), Reporter: rep}).Resolve(builder, res.File)
	if !ok {
		if !bag.HasErrors() {
			return "layout failed without a diagnostic"
		}
		return ""
	}
	if _, err := emit.Generate(iface, emit.Options{Package: "fuzz"}); err != nil && !errors.Is(err, emit.ErrFormat) {
		return "emit: " + err.Error()
	}
	return ""
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
