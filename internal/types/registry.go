package types

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// Registry maps IDL type names to TypeInfo. It has no mutating methods;
// extend it by building a new one with NewRegistry.
type Registry struct {
	byName map[string]TypeInfo
	names  []string
}

// UnknownTypeError is returned by Resolve for names absent from the registry.
type UnknownTypeError struct {
	Name       string
	Suggestion string // registered name equal up to case, if any
}

func (e *UnknownTypeError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown type %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown type %q", e.Name)
}

var errBadEntry = errors.New("invalid registry entry")

// NewRegistry validates entries and builds a registry. Duplicate names,
// non power-of-two alignment and strategy/size mismatches are rejected.
func NewRegistry(entries ...TypeInfo) (*Registry, error) {
	r := &Registry{
		byName: make(map[string]TypeInfo, len(entries)),
		names:  make([]string, 0, len(entries)),
	}
	for _, e := range entries {
		if err := validate(e); err != nil {
			return nil, err
		}
		if _, dup := r.byName[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate type %q", errBadEntry, e.Name)
		}
		r.byName[e.Name] = e
		r.names = append(r.names, e.Name)
	}
	slices.Sort(r.names)
	return r, nil
}

func validate(e TypeInfo) error {
	switch {
	case e.Name == "":
		return fmt.Errorf("%w: empty name", errBadEntry)
	case e.Native == "" || e.Wire == "" || e.Accessor == "":
		return fmt.Errorf("%w: %q lacks native/wire/accessor", errBadEntry, e.Name)
	case e.Size == 0 || e.Align == 0 || bits.OnesCount32(e.Align) != 1:
		return fmt.Errorf("%w: %q has bad size/align %d/%d", errBadEntry, e.Name, e.Size, e.Align)
	case e.Size%e.Align != 0:
		return fmt.Errorf("%w: %q size %d is not a multiple of align %d", errBadEntry, e.Name, e.Size, e.Align)
	}
	switch e.Strategy {
	case InlineCopy:
	case LengthPrefixedBlob:
		if e.Size != PointerSize {
			return fmt.Errorf("%w: blob %q must be pointer sized", errBadEntry, e.Name)
		}
	case HandleTransfer:
		if e.Size != SlotSize {
			return fmt.Errorf("%w: handle %q must be slot sized", errBadEntry, e.Name)
		}
	default:
		return fmt.Errorf("%w: %q has unknown strategy %v", errBadEntry, e.Name, e.Strategy)
	}
	return nil
}

// Resolve returns the entry for name or *UnknownTypeError.
func (r *Registry) Resolve(name string) (TypeInfo, error) {
	if ti, ok := r.byName[name]; ok {
		return ti, nil
	}
	return TypeInfo{}, &UnknownTypeError{Name: name, Suggestion: r.suggest(name)}
}

// Lookup is Resolve without the error value.
func (r *Registry) Lookup(name string) (TypeInfo, bool) {
	ti, ok := r.byName[name]
	return ti, ok
}

// Names returns registered names in sorted order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.names)
}

func (r *Registry) suggest(name string) string {
	for _, n := range r.names {
		if strings.EqualFold(n, name) {
			return n
		}
	}
	return ""
}
