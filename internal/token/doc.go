// Package token defines lexical token kinds and trivia for the magen IDL.
// Invariants:
//   - Token.Text is the exact source slice for punctuation; for identifiers it
//     is the NFC-normalised form of that slice.
//   - Token.Span covers the original bytes (Start..End).
//   - Comments and whitespace are leading Trivia and never appear in the
//     main token stream.
//   - Type names (int32, string, MageHandle, ...) are identifiers. They are
//     resolved by the type registry, not the lexer.
package token
