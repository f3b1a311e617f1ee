/*
Package treap implements a persistent (immutable) in-memory treap with
set-algebraic operations.

A treap is a binary search tree which is balanced in expectation by assigning
each node an independently drawn random priority and maintaining heap order on
the priorities alongside key order. A good introduction may be found in
Aragon & Seidel, “Randomized Search Trees”.

Treaps in this package are persistent: every operation returns a new tree,
leaving all inputs untouched. Under the hood only the ancestors along a
modified path are cloned (path copying); untouched subtrees are shared between
the old and the new incarnation. Handles are cheap value types, and since
nodes are never mutated after construction, any number of goroutines may read
any previously obtained tree without synchronization.

On top of the structural primitives split and join, the package provides a
set-algebra engine for Union, Intersection and Difference of whole trees,
with expected cost proportional to the smaller operand times a logarithmic
factor of the size ratio.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package treap

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pds.treap'.
func tracer() tracing.Trace {
	return tracing.Select("pds.treap")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("treap: "+msg, msgargs...)
		panic(msg)
	}
}
