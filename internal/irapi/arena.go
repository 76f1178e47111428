package irapi

import "iter"

const arenaPageSize = 128

// Arena is an append-only sequence of T stored in fixed size pages. Items
// are addressed by their append index; pointers stay valid until Reset,
// which zeroes the used items and keeps the pages for the next block.
type Arena[T any] struct {
	pages []*[arenaPageSize]T
	n     int
}

// Len returns the number of items appended since the last Reset.
func (a *Arena[T]) Len() int { return a.n }

// Append adds a zeroed T and returns its index with a pointer to it.
func (a *Arena[T]) Append() (int, *T) {
	page, slot := a.n/arenaPageSize, a.n%arenaPageSize
	if page == len(a.pages) {
		a.pages = append(a.pages, new([arenaPageSize]T))
	}
	i := a.n
	a.n++
	return i, &a.pages[page][slot]
}

// At returns the i-th appended item.
func (a *Arena[T]) At(i int) *T {
	if i < 0 || i >= a.n {
		panic("BUG: arena index out of range")
	}
	return &a.pages[i/arenaPageSize][i%arenaPageSize]
}

// All yields the items in append order.
func (a *Arena[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < a.n; i++ {
			if !yield(i, &a.pages[i/arenaPageSize][i%arenaPageSize]) {
				return
			}
		}
	}
}

// Reset empties the arena.
func (a *Arena[T]) Reset() {
	var zero T
	for i := 0; i < a.n; i++ {
		a.pages[i/arenaPageSize][i%arenaPageSize] = zero
	}
	a.n = 0
}
