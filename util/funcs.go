package util

import (
	"cmp"
	"iter"
	"slices"
)

// Hashable is implemented by values with a content-derived, non-cryptographic
// hash — the type model's Type variants implement it so equality that must
// consider type arguments can be compared cheaply before falling
// back to Equals.
type Hashable interface {
	Hash() uint64
}

// SlicesEquivalent reports whether two slices of Hashable elements have the
// same hashes pairwise, in order.
func SlicesEquivalent[A Hashable](fst, snd []A) bool {
	return slices.EqualFunc(fst, snd, func(e1, e2 A) bool {
		return e1.Hash() == e2.Hash()
	})
}

func ConcatIter[A any](iter ...iter.Seq[A]) iter.Seq[A] {
	return func(yield func(A) bool) {
		for _, thisIter := range iter {
			for v := range thisIter {
				if !yield(v) {
					return
				}
			}
		}
	}
}

func SingleIter[A any](elem A) iter.Seq[A] {
	return func(yield func(A) bool) {
		yield(elem)
	}
}

func ConcatIter2[A, B any](iter ...iter.Seq2[A, B]) iter.Seq2[A, B] {
	return func(yield func(A, B) bool) {
		for _, thisIter := range iter {
			for v, w := range thisIter {
				if !yield(v, w) {
					return
				}
			}
		}
	}
}

func IterFirstOrPanic[A any](iter iter.Seq[A]) A {
	for elem := range iter {
		return elem
	}
	panic("empty iterator")
}

func MapIter[A, B any](iter iter.Seq[A], f func(A) B) iter.Seq[B] {
	return func(yield func(B) bool) {
		for v := range iter {
			if !yield(f(v)) {
				return
			}
		}
	}
}

func Reverse[A any](slice []A) iter.Seq[A] {
	return func(yield func(A) bool) {
		for i := len(slice) - 1; i >= 0; i-- {
			if !yield(slice[i]) {
				return
			}
		}
	}
}

// SetFromSeq drains s into a plain MSet, sized as a hint for the backing map.
func SetFromSeq[V comparable](s iter.Seq[V], size int) MSet[V] {
	newSet := MSet[V]{underlying: make(map[V]struct{}, size)}
	for item := range s {
		newSet.Add(item)
	}
	return newSet
}

func ComparingHashable[A Hashable](a, b A) int {
	return cmp.Compare(a.Hash(), b.Hash())
}
