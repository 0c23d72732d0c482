package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores nodes of one kind; indices are 1-based so zero stays "absent".
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return a.Len()
}

func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena length overflow: %w", err))
	}
	return n
}

// Table is an Arena addressed by its own ID type.
type Table[ID ~uint32, T any] struct {
	arena *Arena[T]
}

func newTable[ID ~uint32, T any](capHint uint) *Table[ID, T] {
	return &Table[ID, T]{arena: NewArena[T](capHint)}
}

func (t *Table[ID, T]) New(node T) ID { return ID(t.arena.Allocate(node)) }

// Get returns nil for NoXxxID and for ids of another builder's range.
func (t *Table[ID, T]) Get(id ID) *T { return t.arena.Get(uint32(id)) }
