package lexer

import (
	"magen/internal/diag"
	"magen/internal/token"
)

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}

func isNewline(b byte) bool { return b == '\n' }

// collectLeadingTrivia собирает trivia перед значимым токеном:
// runs of blanks, runs of newlines, line comments and nested block comments.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cur.eof() {
		start := lx.cur.off
		var kind token.TriviaKind
		switch b0, b1 := lx.cur.peek(), lx.cur.peekAt(1); {
		case isBlank(b0):
			lx.cur.skipWhile(isBlank)
			kind = token.TriviaSpace
		case isNewline(b0):
			lx.cur.skipWhile(isNewline)
			kind = token.TriviaNewline
		case b0 == '/' && b1 == '/':
			lx.cur.skipWhile(func(b byte) bool { return b != '\n' })
			kind = token.TriviaLineComment
		case b0 == '/' && b1 == '*':
			lx.skipBlockComment()
			kind = token.TriviaBlockComment
		default:
			return
		}
		sp := lx.cur.from(start)
		lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.cur.text(sp)})
	}
}

// skipBlockComment consumes "/* ... */" with nesting; an unterminated
// comment runs to the end of the file and is reported.
func (lx *Lexer) skipBlockComment() {
	start := lx.cur.off
	lx.cur.skip(2)
	for depth := 1; depth > 0; {
		if lx.cur.eof() {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cur.from(start), "unterminated block comment")
			return
		}
		switch b0, b1 := lx.cur.peek(), lx.cur.peekAt(1); {
		case b0 == '/' && b1 == '*':
			lx.cur.skip(2)
			depth++
		case b0 == '*' && b1 == '/':
			lx.cur.skip(2)
			depth--
		default:
			lx.cur.skip(1)
		}
	}
}
