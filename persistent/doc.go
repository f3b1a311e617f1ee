/*
Immutable persistent data structures are data structures which can be copied and modified
efficiently, leaving the original unchanged. Functional programming languages like Lisp have long
relied on using them.
Sub-packages offer search trees with these properties; currently this is a
treap (sub-package treap), a randomized balanced search tree supporting
whole-tree set algebra (union, intersection, difference) with structural
sharing between operands and results.

Persistent immutable data-structures offer structural sharing, which means
that if two data structures are mostly copies of each other, most of the
memory they take up will be shared between them. This implies that making
copies of an immutable data structure is relatively cheap in terms of space-
and time-complexity, and that previously obtained incarnations stay valid
indefinitely and may be read concurrently without synchronization.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package persistent
