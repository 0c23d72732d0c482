package parser

import (
	"slices"

	"magen/internal/ast"
	"magen/internal/diag"
	"magen/internal/lexer"
	"magen/internal/source"
	"magen/internal/token"
)

type Options struct {
	MaxErrors uint // 0 - без лимита
	Reporter  diag.Reporter
}

type Result struct {
	File ast.FileID
	// Errors counts error-level diagnostics raised by the parser itself.
	// Lexical errors go straight to the reporter and are not counted here.
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	arenas   *ast.Builder // построитель аренных узлов
	file     ast.FileID   // текущий FileID (в AST)
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	errors   uint
}

// ParseFile - входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseFile()
	return Result{
		File:   p.file,
		Errors: p.errors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseFile - верхний уровень: ровно одна декларация interface.
func (p *Parser) parseFile() {
	startSpan := p.lx.Peek().Span
	var first ast.InterfaceID
	stray := false

	for !p.at(token.EOF) {
		if !p.at(token.KwInterface) {
			if !stray {
				p.errorAt(diag.SynExpectInterface, p.errSpan(), "expected 'interface', got "+describe(p.lx.Peek())).Emit()
				stray = true
			}
			p.advance()
			p.resyncUntil(token.KwInterface)
			continue
		}

		kw := p.lx.Peek().Span
		id := p.parseInterface()
		if !first.IsValid() {
			first = id
		} else {
			prev := p.arenas.Interfaces.Get(first)
			p.errorAt(diag.SynMultipleInterfaces, kw, "only one interface declaration is allowed per source file").
				WithNote(prev.NameSpan, "first interface declared here").
				Emit()
		}
		p.arenas.PushInterface(p.file, id)
	}

	if !first.IsValid() && !stray {
		p.errorAt(diag.SynExpectInterface, p.errSpan(), "source contains no interface declaration").Emit()
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// resyncUntil прокручивает токены до одного из stop (или EOF), не съедая его.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident, token.Invalid:
		return "\"" + tok.Text + "\""
	}
	return tok.Kind.Describe()
}
