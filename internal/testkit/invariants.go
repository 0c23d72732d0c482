// Package testkit holds structural checks shared by parser and driver tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"magen/internal/ast"
	"magen/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every interface, method and param span is non-empty and nested in its parent
// 3) siblings appear in source order and do not overlap
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	var prev source.Span
	for i, iid := range f.Interfaces {
		iface := b.Interfaces.Get(iid)
		if iface == nil {
			return fmt.Errorf("nil interface for id=%d", iid)
		}
		if err := nested("interface "+iface.Name, iface.Span, f.Span, prev, i > 0); err != nil {
			return err
		}
		if !iface.Span.Contains(iface.NameSpan) {
			return fmt.Errorf("interface %s: name span %v outside %v", iface.Name, iface.NameSpan, iface.Span)
		}
		prev = iface.Span

		var prevMethod source.Span
		for j, mid := range iface.Methods {
			m := b.Methods.Get(mid)
			if m == nil {
				return fmt.Errorf("nil method for id=%d", mid)
			}
			if err := nested("method "+m.Name, m.Span, iface.Span, prevMethod, j > 0); err != nil {
				return err
			}
			prevMethod = m.Span

			var prevParam source.Span
			for k, pid := range m.Params {
				p := b.Params.Get(pid)
				if p == nil {
					return fmt.Errorf("nil param for id=%d", pid)
				}
				if err := nested("param "+p.Name, p.Span, m.Span, prevParam, k > 0); err != nil {
					return err
				}
				if !p.Span.Contains(p.TypeSpan) || !p.Span.Contains(p.NameSpan) || p.TypeSpan.End > p.NameSpan.Start {
					return fmt.Errorf("param %s: type %v and name %v out of order in %v", p.Name, p.TypeSpan, p.NameSpan, p.Span)
				}
				prevParam = p.Span
			}
		}
	}
	return nil
}

func nested(what string, sp, parent, prev source.Span, havePrev bool) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("%s: empty span %v", what, sp)
	}
	if sp.File != parent.File {
		return fmt.Errorf("%s: span file mismatch: got=%d want=%d", what, sp.File, parent.File)
	}
	if !parent.Contains(sp) {
		return fmt.Errorf("%s: span %v is outside parent %v", what, sp, parent)
	}
	if havePrev && sp.Start < prev.End {
		return fmt.Errorf("%s: span %v overlaps previous sibling %v", what, sp, prev)
	}
	return nil
}
