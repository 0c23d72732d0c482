package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token (unknown character).
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (names and type names).
	Ident
	// KwInterface represents the 'interface' keyword.
	KwInterface // interface

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Semicolon // ;
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	KwInterface: "KwInterface",
	LParen:      "LParen",
	RParen:      "RParen",
	LBrace:      "LBrace",
	RBrace:      "RBrace",
	Comma:       "Comma",
	Semicolon:   "Semicolon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Describe returns the human form used in diagnostics ("'{'", "identifier").
func (k Kind) Describe() string {
	switch k {
	case EOF:
		return "end of file"
	case Ident:
		return "identifier"
	case KwInterface:
		return "'interface'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Comma:
		return "','"
	case Semicolon:
		return "';'"
	default:
		return "invalid token"
	}
}
