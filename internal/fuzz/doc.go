// Package fuzztests holds fuzz harnesses for the front end and the emitter:
// arbitrary bytes go through the lexer, the parser and, when they parse, the
// layout resolver and code generation.
//
// Назначение: ловить паники, зависания и невалидный Go на выходе.
//
// Не делает: запись файлов, работу с кешем, запуск CLI.
package fuzztests
