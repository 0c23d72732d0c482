package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"magen/internal/diag"
	"magen/internal/token"
)

func isASCIILetter(b byte) bool { return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z') }
func isDigit(b byte) bool       { return b >= '0' && b <= '9' }
func isASCIIWord(b byte) bool   { return isASCIILetter(b) || isDigit(b) }

// Combining marks may continue a name so that decomposed input such as
// "café" lexes as one identifier before NFC folds it.
func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// scanName reads an identifier or keyword. The text is NFC-normalised so
// that visually identical names compare equal in duplicate checks; the span
// still covers the original bytes.
func (lx *Lexer) scanName() token.Token {
	start := lx.cur.off
	for {
		r, n := lx.cur.peekRune()
		if n == 0 || !(r < utf8.RuneSelf && isASCIIWord(byte(r)) || r >= utf8.RuneSelf && isNameRune(r)) {
			break
		}
		lx.cur.skip(n)
	}
	sp := lx.cur.from(start)
	text := norm.NFC.String(lx.cur.text(sp))
	kind := token.Ident
	if k, ok := token.LookupKeyword(text); ok {
		kind = k
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// scanDigitName swallows a name that starts with a digit ("3d", "42") as a
// single Invalid token so the parser does not see fragments.
func (lx *Lexer) scanDigitName() token.Token {
	start := lx.cur.off
	lx.cur.skipWhile(isASCIIWord)
	sp := lx.cur.from(start)
	text := lx.cur.text(sp)
	lx.errLex(diag.LexBadIdentifier, sp, "identifier cannot start with a digit: "+strconv.Quote(text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

func (lx *Lexer) scanPunct() token.Token {
	kind, ok := token.LookupPunct(lx.cur.peek())
	if !ok {
		return lx.scanUnknown()
	}
	start := lx.cur.off
	lx.cur.skip(1)
	sp := lx.cur.from(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.cur.text(sp)}
}

// scanUnknown consumes one rune, reports it and returns it as Invalid.
func (lx *Lexer) scanUnknown() token.Token {
	start := lx.cur.off
	_, n := lx.cur.peekRune()
	lx.cur.skip(n)
	sp := lx.cur.from(start)
	text := lx.cur.text(sp)
	lx.errLex(diag.LexUnknownChar, sp, "unexpected character "+strconv.Quote(text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
