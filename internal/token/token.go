package token

import "magen/internal/source"

// Token is one significant lexeme with the trivia that precedes it.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

var puncts = [128]Kind{
	'(': LParen,
	')': RParen,
	'{': LBrace,
	'}': RBrace,
	',': Comma,
	';': Semicolon,
}

// LookupPunct maps a byte to its punctuator kind.
func LookupPunct(b byte) (Kind, bool) {
	if int(b) >= len(puncts) || puncts[b] == Invalid {
		return Invalid, false
	}
	return puncts[b], true
}
