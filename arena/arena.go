package arena

import (
	"fmt"

	"github.com/google/uuid"
)

// Arena is an append-only object pool. Values pushed into an arena stay at
// the index they were assigned for the lifetime of the arena, so the IDs it
// issues are stable.
type Arena[T any] struct {
	tag  uuid.UUID
	data []T
}

// ID is an opaque handle to a value stored in an arena. An ID is only valid
// against the arena that issued it: every ID carries the instance tag of its
// arena and lookups against another instance panic.
//
// The zero ID is not issued by any arena.
type ID[T any] struct {
	ix  int
	tag uuid.UUID
}

func New[T any]() *Arena[T] {
	return &Arena[T]{tag: uuid.New()}
}

// Push appends v and returns its never-reused ID.
func (a *Arena[T]) Push(v T) ID[T] {
	a.data = append(a.data, v)
	return ID[T]{ix: len(a.data) - 1, tag: a.tag}
}

// Get returns a pointer to the value id refers to.
//
// Passing an ID issued by a different arena, or the zero ID, is a programming
// error and panics.
func (a *Arena[T]) Get(id ID[T]) *T {
	v, ok := a.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("arena: id %d with tag %s used against arena %s", id.ix, id.tag, a.tag))
	}
	return v
}

// Lookup is the non-panicking variant of Get.
func (a *Arena[T]) Lookup(id ID[T]) (*T, bool) {
	if id.tag != a.tag || id.ix < 0 || id.ix >= len(a.data) {
		return nil, false
	}
	return &a.data[id.ix], true
}

// Replace swaps in v without changing the ID and returns the previous value.
func (a *Arena[T]) Replace(id ID[T], v T) T {
	p := a.Get(id)
	prev := *p
	*p = v
	return prev
}

func (a *Arena[T]) Len() int {
	return len(a.data)
}

// All calls f for every stored value in insertion order until f returns
// false.
func (a *Arena[T]) All(f func(ID[T], *T) bool) {
	for i := range a.data {
		if !f(ID[T]{ix: i, tag: a.tag}, &a.data[i]) {
			return
		}
	}
}
