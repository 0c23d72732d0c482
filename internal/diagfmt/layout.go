package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"magen/internal/layout"
)

type FieldLayout struct {
	Name     string `json:"name"`
	GoName   string `json:"go_name"`
	Type     string `json:"type"`
	Wire     string `json:"wire"`
	Strategy string `json:"strategy"`
	Offset   uint32 `json:"offset"`
	Size     uint32 `json:"size"`
}

type MethodLayout struct {
	ID      uint32        `json:"id"`
	Name    string        `json:"name"`
	GoName  string        `json:"go_name"`
	Size    uint32        `json:"size"`
	Handles int           `json:"handles"`
	Blobs   []int         `json:"blobs,omitempty"`
	Fields  []FieldLayout `json:"fields"`
}

type InterfaceLayout struct {
	Name    string         `json:"name"`
	GoName  string         `json:"go_name"`
	Methods []MethodLayout `json:"methods"`
}

// BuildLayout flattens a resolved interface for dumping.
func BuildLayout(iface *layout.Interface) InterfaceLayout {
	out := InterfaceLayout{Name: iface.Name, GoName: iface.GoName, Methods: make([]MethodLayout, 0, len(iface.Methods))}
	for _, m := range iface.Methods {
		ml := MethodLayout{
			ID:      m.ID,
			Name:    m.Name,
			GoName:  m.GoName,
			Size:    m.Size,
			Handles: m.HandleCount,
			Blobs:   m.Blobs,
			Fields:  make([]FieldLayout, 0, len(m.Params)),
		}
		for _, f := range m.Params {
			ml.Fields = append(ml.Fields, FieldLayout{
				Name:     f.Name,
				GoName:   f.GoName,
				Type:     f.Type.Name,
				Wire:     f.Type.Wire,
				Strategy: f.Type.Strategy.String(),
				Offset:   f.Offset,
				Size:     f.Type.Size,
			})
		}
		out.Methods = append(out.Methods, ml)
	}
	return out
}

// FormatLayoutPretty prints method ids and the parameter struct of each
// method, one field per row.
func FormatLayoutPretty(w io.Writer, iface *layout.Interface) error {
	l := BuildLayout(iface)
	fmt.Fprintf(w, "interface %s (Go %s)\n", l.Name, l.GoName)
	for _, m := range l.Methods {
		fmt.Fprintf(w, "\nmethod %d %s: size %d, handles %d, blobs %d\n", m.ID, m.Name, m.Size, m.Handles, len(m.Blobs))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "  +0\tBytes\tuint32\tuint32\t%s\n", "size")
		for _, f := range m.Fields {
			fmt.Fprintf(tw, "  +%d\t%s\t%s\t%s\t%s\n", f.Offset, f.GoName, f.Type, f.Wire, f.Strategy)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func FormatLayoutJSON(w io.Writer, iface *layout.Interface) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildLayout(iface))
}
