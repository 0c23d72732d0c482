package layout

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"magen/internal/ast"
	"magen/internal/diag"
	"magen/internal/source"
	"magen/internal/types"
)

// Resolver assigns method ids, resolves parameter types and computes
// parameter struct layouts. It reports every problem it finds before
// giving up, so one run surfaces all unknown types and duplicates.
type Resolver struct {
	Registry *types.Registry
	Reporter diag.Reporter
}

// Resolve lays out the single interface of file. ok is false when any
// error was reported; the returned Interface is then partial.
func (r *Resolver) Resolve(b *ast.Builder, file ast.FileID) (iface *Interface, ok bool) {
	node := b.Interface(file)
	if node == nil {
		return nil, false
	}
	reg := r.Registry
	if reg == nil {
		reg = types.Default()
	}

	st := &resolveState{r: r, ok: true}
	iface = &Interface{
		Name:    node.Name,
		GoName:  ExportName(node.Name),
		Span:    node.Span,
		Methods: make([]Method, 0, len(node.Methods)),
	}

	goNames := make([]string, 0, len(node.Methods))
	for _, mid := range node.Methods {
		goNames = append(goNames, ExportName(b.Methods.Get(mid).Name))
	}
	st.taken = topLevelNames(iface.GoName, goNames)

	byName := make(map[string]source.Span, len(node.Methods))
	byGo := make(map[string]source.Span, len(node.Methods))
	for i, mid := range node.Methods {
		m := b.Methods.Get(mid)
		id, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("method id overflow: %w", err))
		}
		goName := ExportName(m.Name)

		if first, dup := byName[m.Name]; dup {
			st.duplicate(diag.SemaDuplicateMethod, m.NameSpan, first,
				fmt.Sprintf("duplicate method %q in interface %q", m.Name, node.Name))
		} else if first, dup := byGo[goName]; dup {
			st.duplicate(diag.SemaGoNameCollision, m.NameSpan, first,
				fmt.Sprintf("method %q maps to Go name %q, which is already used", m.Name, goName))
		} else if _, reserved := proxyMethods[goName]; reserved {
			st.errorf(diag.SemaGoNameCollision, m.NameSpan,
				"method %q collides with the generated proxy method %s", m.Name, goName)
		}
		if _, dup := byName[m.Name]; !dup {
			byName[m.Name] = m.NameSpan
		}
		if _, dup := byGo[goName]; !dup {
			byGo[goName] = m.NameSpan
		}

		method := Method{
			ID:     id,
			Name:   m.Name,
			GoName: goName,
			Span:   m.Span,
			Params: make([]Field, 0, len(m.Params)),
		}
		st.layoutParams(b, reg, m, &method)
		iface.Methods = append(iface.Methods, method)
	}
	return iface, st.ok
}

type resolveState struct {
	r     *Resolver
	ok    bool
	taken map[string]struct{}
}

func (st *resolveState) layoutParams(b *ast.Builder, reg *types.Registry, m *ast.Method, method *Method) {
	offset := uint32(SizeFieldSize)
	names := make(map[string]source.Span, len(m.Params))
	fields := make(map[string]source.Span, len(m.Params))
	locals := make(map[string]source.Span, len(m.Params))

	for _, pid := range m.Params {
		prm := b.Params.Get(pid)
		f := Field{
			Name:   prm.Name,
			Local:  LocalName(prm.Name, st.taken),
			GoName: fieldName(prm.Name),
			Span:   prm.NameSpan,
		}

		switch first, dup := names[prm.Name]; {
		case dup:
			st.duplicate(diag.SemaDuplicateParam, prm.NameSpan, first,
				fmt.Sprintf("duplicate parameter %q in method %q", prm.Name, m.Name))
		case hasKey(fields, f.GoName):
			st.duplicate(diag.SemaGoNameCollision, prm.NameSpan, fields[f.GoName],
				fmt.Sprintf("parameter %q maps to field %q, which is already used", prm.Name, f.GoName))
		case hasKey(locals, f.Local):
			st.duplicate(diag.SemaGoNameCollision, prm.NameSpan, locals[f.Local],
				fmt.Sprintf("parameter %q maps to Go name %q, which is already used", prm.Name, f.Local))
		default:
			names[prm.Name] = prm.NameSpan
			fields[f.GoName] = prm.NameSpan
			locals[f.Local] = prm.NameSpan
		}

		ti, err := reg.Resolve(prm.Type)
		if err != nil {
			st.unknownType(prm, err)
			method.Params = append(method.Params, f)
			continue
		}
		f.Type = ti
		offset = roundUp(offset, ti.Align)
		f.Offset = offset
		offset += ti.Size

		idx := len(method.Params)
		switch ti.Strategy {
		case types.LengthPrefixedBlob:
			method.Blobs = append(method.Blobs, idx)
		case types.HandleTransfer:
			method.HandleCount++
		}
		method.Params = append(method.Params, f)
	}
	method.Size = roundUp(offset, StructAlign)
}

func hasKey(m map[string]source.Span, k string) bool {
	_, ok := m[k]
	return ok
}

func (st *resolveState) duplicate(code diag.Code, at, first source.Span, msg string) {
	st.ok = false
	if st.r.Reporter == nil {
		return
	}
	diag.ReportError(st.r.Reporter, code, at, msg).
		WithNote(first, "first declared here").
		Emit()
}

func (st *resolveState) errorf(code diag.Code, at source.Span, format string, args ...any) {
	st.ok = false
	if st.r.Reporter == nil {
		return
	}
	diag.ReportError(st.r.Reporter, code, at, fmt.Sprintf(format, args...)).Emit()
}

func (st *resolveState) unknownType(prm *ast.Param, err error) {
	st.ok = false
	if st.r.Reporter == nil {
		return
	}
	b := diag.ReportError(st.r.Reporter, diag.SemaUnknownType, prm.TypeSpan,
		fmt.Sprintf("unknown type %q for parameter %q", prm.Type, prm.Name))
	var ute *types.UnknownTypeError
	if errors.As(err, &ute) && ute.Suggestion != "" {
		b.WithNote(prm.TypeSpan, fmt.Sprintf("did you mean %q?", ute.Suggestion)).
			WithFix("replace with "+ute.Suggestion, diag.FixEdit{Span: prm.TypeSpan, NewText: ute.Suggestion})
	}
	b.Emit()
}
