package diag

import (
	"cmp"
	"slices"
)

// Bag collects the diagnostics of one source, up to an optional limit.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag создаёт Bag с лимитом limit; limit <= 0 означает "без лимита".
func NewBag(limit int) *Bag {
	capHint := 16
	if limit > 0 && limit < capHint {
		capHint = limit
	}
	return &Bag{items: make([]Diagnostic, 0, capHint), max: limit}
}

// Add stores d unless the limit is reached; it reports whether d was kept.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Append stores d past the limit. Used for reports that must survive a
// full bag, such as the timings summary.
func (b *Bag) Append(d Diagnostic) {
	b.items = append(b.items, d)
	if b.max > 0 && len(b.items) > b.max {
		b.max = len(b.items)
	}
}

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) HasWarnings() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity == SevWarning })
}

func (b *Bag) Len() int { return len(b.items) }

// Items returns the backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// FirstError returns the first error in the current order.
func (b *Bag) FirstError() (Diagnostic, bool) {
	i := slices.IndexFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
	if i < 0 {
		return Diagnostic{}, false
	}
	return b.items[i], true
}

// Sort orders by file, start, end, then errors before warnings, then code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}
