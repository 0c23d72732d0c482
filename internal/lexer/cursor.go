package lexer

import (
	"unicode/utf8"

	"magen/internal/source"
)

// cursor walks the bytes of one file. Past the end every peek yields 0.
type cursor struct {
	src  []byte
	file source.FileID
	off  uint32
}

func (c *cursor) eof() bool { return int(c.off) >= len(c.src) }

func (c *cursor) peekAt(n uint32) byte {
	if i := int(c.off + n); i < len(c.src) {
		return c.src[i]
	}
	return 0
}

func (c *cursor) peek() byte { return c.peekAt(0) }

// skip advances n bytes, stopping at the end.
func (c *cursor) skip(n uint32) {
	c.off = min(c.off+n, uint32(len(c.src))) // #nosec G115 -- FileSet caps content at uint32
}

// skipWhile advances over bytes matching pred.
func (c *cursor) skipWhile(pred func(byte) bool) {
	for !c.eof() && pred(c.src[c.off]) {
		c.off++
	}
}

// peekRune decodes the rune at the cursor; size is 0 at the end.
func (c *cursor) peekRune() (rune, uint32) {
	if c.eof() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, n := utf8.DecodeRune(c.src[c.off:])
	return r, uint32(n) // #nosec G115 -- at most utf8.UTFMax
}

// from returns the span [start, off).
func (c *cursor) from(start uint32) source.Span {
	return source.Span{File: c.file, Start: start, End: c.off}
}

func (c *cursor) text(sp source.Span) string {
	return string(c.src[sp.Start:sp.End])
}
