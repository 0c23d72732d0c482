package driver

import (
	"fortio.org/safecast"

	"magen/internal/ast"
	"magen/internal/diag"
	"magen/internal/layout"
	"magen/internal/lexer"
	"magen/internal/parser"
	"magen/internal/source"
	"magen/internal/token"
	"magen/internal/types"
)

// Inspection is what the tokenize, parse and layout subcommands print. Each
// stops after its own phase and never touches the cache or a destination.
type Inspection struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag

	Tokens []token.Token // Tokenize only

	Builder *ast.Builder // Parse and Layout
	FileID  ast.FileID

	Interface *layout.Interface // Layout; nil when an earlier phase failed
}

// OK reports whether the inspected phases produced no errors.
func (in *Inspection) OK() bool { return !in.Bag.HasErrors() }

func inspect(path string, maxDiagnostics int) (*Inspection, diag.Reporter, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, nil, err
	}
	in := &Inspection{FileSet: fs, File: fs.Get(id), Bag: diag.NewBag(maxDiagnostics)}
	return in, diag.NewDedupReporter(diag.BagReporter{Bag: in.Bag}), nil
}

func Tokenize(path string, maxDiagnostics int) (*Inspection, error) {
	in, rep, err := inspect(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	in.Tokens = lexer.New(in.File, lexer.Options{Reporter: rep}).All()
	return in, nil
}

func Parse(path string, maxDiagnostics int) (*Inspection, error) {
	in, rep, err := inspect(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return in, in.parse(rep, maxDiagnostics)
}

func (in *Inspection) parse(rep diag.Reporter, maxDiagnostics int) error {
	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return err
	}
	in.Builder = ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(lexer.New(in.File, lexer.Options{Reporter: rep}), in.Builder, parser.Options{
		Reporter:  rep,
		MaxErrors: maxErrors,
	})
	in.FileID = res.File
	return nil
}

func Layout(path string, maxDiagnostics int) (*Inspection, error) {
	in, rep, err := inspect(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	if err := in.parse(rep, maxDiagnostics); err != nil || !in.OK() {
		return in, err
	}
	iface, ok := (&layout.Resolver{Registry: types.Default(), Reporter: rep}).Resolve(in.Builder, in.FileID)
	if ok {
		in.Interface = iface
	}
	return in, nil
}
