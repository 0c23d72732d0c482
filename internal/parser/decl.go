package parser

import (
	"magen/internal/ast"
	"magen/internal/diag"
	"magen/internal/token"
)

// parseInterface разбирает: interface IDENT "{" method* "}"
// Всегда возвращает валидный InterfaceID, даже при ошибках, чтобы
// следующие фазы могли продолжить работу.
func (p *Parser) parseInterface() ast.InterfaceID {
	kw := p.advance() // 'interface'

	nameTok, _ := p.expect(token.Ident, diag.SynExpectIdentifier, "expected interface name")
	name := ""
	if nameTok.Kind == token.Ident {
		name = nameTok.Text
	}
	id := p.arenas.NewInterface(name, nameTok.Span, kw.Span.Cover(nameTok.Span))

	lbrace, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after interface name")
	if !ok {
		// без тела: пропускаем до следующего interface
		p.resyncUntil(token.KwInterface)
		return id
	}

	for !p.atOr(token.RBrace, token.EOF, token.KwInterface) {
		mid, ok := p.parseMethod()
		if mid.IsValid() {
			p.arenas.PushMethod(id, mid)
		}
		if !ok {
			p.resyncUntil(token.Semicolon, token.RBrace, token.KwInterface)
			if p.at(token.Semicolon) {
				p.advance()
			}
		}
	}

	iface := p.arenas.Interfaces.Get(id)
	if p.at(token.RBrace) {
		rbrace := p.advance()
		iface.Span = kw.Span.Cover(rbrace.Span)
		return id
	}

	p.errorAt(diag.SynUnclosedBrace, p.errSpan(), "expected '}' to close interface "+quoteName(name)+", got "+describe(p.lx.Peek())).
		WithNote(lbrace.Span, "opening brace is here").
		Emit()
	iface.Span = kw.Span.Cover(p.lastSpan)
	return id
}

// parseMethod разбирает: IDENT "(" paramlist? ")" ";"
// ok=false означает, что вызывающий должен выполнить resync.
func (p *Parser) parseMethod() (ast.MethodID, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected method name")
	if !ok {
		return ast.NoMethodID, false
	}
	lparen, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after method name")
	if !ok {
		return ast.NoMethodID, false
	}
	mid := p.arenas.NewMethod(nameTok.Text, nameTok.Span, nameTok.Span.Cover(lparen.Span))

	if !p.at(token.RParen) {
		for {
			pid, ok := p.parseParam()
			if !ok {
				return mid, false
			}
			p.arenas.PushParam(mid, pid)
			if !p.at(token.Comma) {
				break
			}
			comma := p.advance()
			if p.at(token.RParen) {
				p.errorAt(diag.SynTrailingComma, comma.Span, "trailing comma is not allowed in a parameter list").Emit()
				break
			}
		}
	}

	if !p.at(token.RParen) {
		if p.at(token.Invalid) {
			p.errors++
			return mid, false
		}
		p.errorAt(diag.SynUnclosedParen, p.errSpan(), "expected ')' to close the parameter list, got "+describe(p.lx.Peek())).
			WithNote(lparen.Span, "opening parenthesis is here").
			Emit()
		return mid, false
	}
	rparen := p.advance()
	m := p.arenas.Methods.Get(mid)
	m.Span = m.Span.Cover(rparen.Span)

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after method declaration")
	if !ok {
		return mid, false
	}
	m.Span = m.Span.Cover(semi.Span)
	return mid, true
}

// parseParam разбирает: TYPE IDENT
func (p *Parser) parseParam() (ast.ParamID, bool) {
	typeTok, ok := p.expect(token.Ident, diag.SynExpectType, "expected parameter type")
	if !ok {
		return ast.NoParamID, false
	}
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name after type "+quoteName(typeTok.Text))
	if !ok {
		return ast.NoParamID, false
	}
	return p.arenas.NewParam(ast.Param{
		Name:     nameTok.Text,
		NameSpan: nameTok.Span,
		Type:     typeTok.Text,
		TypeSpan: typeTok.Span,
		Span:     typeTok.Span.Cover(nameTok.Span),
	}), true
}

func quoteName(name string) string {
	if name == "" {
		return "<missing>"
	}
	return "\"" + name + "\""
}
