package treap

import (
	"cmp"
	"fmt"
	"sync/atomic"
)

// node is the immutable building block treaps are made of. Nodes are shared
// freely between tree incarnations and are never modified after construction;
// "changing" a node always means cloning it. Reclamation of unreachable nodes
// is left to the garbage collector (no cycles can occur in a strict tree
// shape).
type node[K cmp.Ordered, V any] struct {
	key   K
	value V
	pri   uint64
	seq   uint64
	left  *node[K, V]
	right *node[K, V]
}

// seqs numbers nodes in construction order. The sequence number breaks
// priority ties, making the heap order total. Atomic, as handles may cross
// goroutine boundaries.
var seqs atomic.Uint64

func newNode[K cmp.Ordered, V any](key K, value V, pri uint64) *node[K, V] {
	return &node[K, V]{
		key:   key,
		value: value,
		pri:   pri,
		seq:   seqs.Add(1),
	}
}

// wins decides which of two root candidates takes the root slot of a combined
// tree: the one with the lower priority value. Children must never win
// against their parent under this ordering.
func (v *node[K, V]) wins(w *node[K, V]) bool {
	if v.pri != w.pri {
		return v.pri < w.pri
	}
	return v.seq < w.seq
}

// cow clones v with both child links replaced. The original is left alone.
func (v *node[K, V]) cow(left, right *node[K, V]) *node[K, V] {
	return &node[K, V]{
		key:   v.key,
		value: v.value,
		pri:   v.pri,
		seq:   v.seq,
		left:  left,
		right: right,
	}
}

// cowValue clones v with the value and both child links replaced. Used by the
// combine engine when a pivot from the right operand survives with the left
// operand's value.
func (v *node[K, V]) cowValue(value V, left, right *node[K, V]) *node[K, V] {
	w := v.cow(left, right)
	w.value = value
	return w
}

func (v *node[K, V]) String() string {
	if v == nil {
		return "⟨⟩"
	}
	return fmt.Sprintf("⟨%v:%v⟩", v.key, v.value)
}

// each walks the subtree under v in key order, calling yield for every entry.
// Returns false as soon as yield does.
func (v *node[K, V]) each(yield func(K, V) bool) bool {
	if v == nil {
		return true
	}
	if !v.left.each(yield) {
		return false
	}
	if !yield(v.key, v.value) {
		return false
	}
	return v.right.each(yield)
}
