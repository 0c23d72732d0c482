package parser

import (
	"magen/internal/diag"
	"magen/internal/source"
	"magen/internal/token"
)

// advance съедает токен; lastSpan помнит последний не-EOF токен.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// errSpan is where a diagnostic about the lookahead points: the lookahead
// itself, or just past the last consumed token at end of file.
func (p *Parser) errSpan() source.Span {
	next := p.lx.Peek()
	if next.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return next.Span
}

// expect consumes a token of kind k or reports msg with what was found.
// An Invalid lookahead was already reported by the lexer and only counts.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.errSpan()
	next := p.lx.Peek()
	if next.Kind == token.Invalid {
		p.errors++
	} else {
		p.errorAt(code, sp, msg+", got "+describe(next)).Emit()
	}
	return token.Token{Kind: token.Invalid, Span: sp, Text: next.Text}, false
}

// errorAt counts an error and returns its builder, or nil once MaxErrors is
// exceeded; a nil builder swallows the chained calls.
func (p *Parser) errorAt(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	p.errors++
	if p.opts.Reporter == nil || p.opts.MaxErrors != 0 && p.errors > p.opts.MaxErrors {
		return nil
	}
	return diag.ReportError(p.opts.Reporter, code, sp, msg)
}
