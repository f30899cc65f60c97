package utility

import (
	"cmp"
	"fmt"
	"iter"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Set[T cmp.Ordered] struct {
	set map[T]struct{}
}

func NewSet[T cmp.Ordered](keys ...T) Set[T] {
	set := Set[T]{make(map[T]struct{}, len(keys))}
	for _, k := range keys {
		set.Add(k)
	}
	return set
}

func (set Set[T]) Add(key T) {
	set.set[key] = struct{}{}
}
func (set Set[T]) Has(key T) bool {
	_, found := set.set[key]
	return found
}
func (set Set[T]) Remove(key T) {
	delete(set.set, key)
}
func (set Set[T]) Iter() iter.Seq[T] {
	return maps.Keys(set.set)
}
func (set Set[T]) Len() int {
	return len(set.set)
}

// Sorted returns the members in ascending order.
func (set Set[T]) Sorted() []T {
	out := make([]T, 0, len(set.set))
	for k := range set.set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Clone returns a set that shares no storage with set.
func (set Set[T]) Clone() Set[T] {
	if set.set == nil {
		return NewSet[T]()
	}
	return Set[T]{maps.Clone(set.set)}
}

func (set Set[T]) Equal(other Set[T]) bool {
	return maps.Equal(set.set, other.set)
}

func (set Set[T]) String() string {
	return fmt.Sprintf("%v", set.Sorted())
}
