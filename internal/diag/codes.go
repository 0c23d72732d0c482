package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexBadIdentifier            Code = 1002
	LexUnterminatedBlockComment Code = 1003

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedParen      Code = 2002
	SynUnclosedBrace      Code = 2003
	SynExpectSemicolon    Code = 2004
	SynExpectIdentifier   Code = 2005
	SynExpectType         Code = 2006
	SynTrailingComma      Code = 2007
	SynExpectInterface    Code = 2008
	SynMultipleInterfaces Code = 2009

	// Семантические: разрешение типов и имён
	SemaInfo            Code = 3000
	SemaError           Code = 3001
	SemaUnknownType     Code = 3002
	SemaDuplicateMethod Code = 3003
	SemaDuplicateParam  Code = 3004
	SemaGoNameCollision Code = 3005

	// I/O
	IOInfo           Code = 4000
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOFormatError    Code = 4003
	IOCacheError     Code = 4004

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexBadIdentifier:            "Malformed identifier",
		LexUnterminatedBlockComment: "Unterminated block comment",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynExpectSemicolon:          "Expected semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type name",
		SynTrailingComma:            "Trailing comma in parameter list",
		SynExpectInterface:          "Expected interface declaration",
		SynMultipleInterfaces:       "More than one interface declaration",
		SemaInfo:                    "Semantic information",
		SemaError:                   "Semantic error",
		SemaUnknownType:             "Unknown type",
		SemaDuplicateMethod:         "Duplicate method name",
		SemaDuplicateParam:          "Duplicate parameter name",
		SemaGoNameCollision:         "Generated Go names collide",
		IOInfo:                      "I/O information",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		IOFormatError:               "Generated code failed to format",
		IOCacheError:                "Artifact cache error",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ErrorKind is the compile-time error taxonomy surfaced to the invoker.
type ErrorKind uint8

const (
	KindNone ErrorKind = iota
	KindSyntax
	KindUnknownType
	KindDuplicateName
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindUnknownType:
		return "UnknownTypeError"
	case KindDuplicateName:
		return "DuplicateNameError"
	case KindIO:
		return "IOError"
	}
	return "None"
}

// Kind maps a code onto the error taxonomy. Lexical problems are syntax
// errors: the parser would reject the offending token anyway.
func (c Code) Kind() ErrorKind {
	switch {
	case c >= 1000 && c < 3000:
		return KindSyntax
	case c == SemaUnknownType:
		return KindUnknownType
	case c == SemaDuplicateMethod, c == SemaDuplicateParam, c == SemaGoNameCollision:
		return KindDuplicateName
	case c >= 4000 && c < 5000:
		return KindIO
	}
	return KindNone
}
