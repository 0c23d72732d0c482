package lexer

import (
	"unicode"
	"unicode/utf8"

	"magen/internal/diag"
	"magen/internal/source"
	"magen/internal/token"
)

type Options struct {
	Reporter diag.Reporter // может быть nil: ошибки теряются, лексинг продолжается
}

// Lexer turns one file into tokens with one token of lookahead.
type Lexer struct {
	cur  cursor
	opts Options
	look *token.Token
	hold []token.Trivia // leading trivia of the token being scanned
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		cur:  cursor{src: file.Content, file: file.ID},
		opts: opts,
	}
}

// Next returns the next significant token with its Leading trivia attached.
// After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()
	if lx.cur.eof() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	var tok token.Token
	switch b := lx.cur.peek(); {
	case isASCIILetter(b):
		tok = lx.scanName()
	case isDigit(b):
		tok = lx.scanDigitName()
	case b >= utf8.RuneSelf:
		if r, _ := lx.cur.peekRune(); unicode.IsLetter(r) {
			tok = lx.scanName()
		} else {
			tok = lx.scanUnknown()
		}
	default:
		tok = lx.scanPunct()
	}
	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.Next()
		lx.look = &tok
	}
	return *lx.look
}

// EmptySpan is a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.cur.from(lx.cur.off)
}

// All drains the lexer, final EOF included.
func (lx *Lexer) All() []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
