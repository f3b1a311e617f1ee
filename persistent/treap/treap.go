package treap

import (
	"cmp"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/npillmayer/pds/maybe"
)

/*
Remarks:
--------

- 'cow' stands for copy-on-write and is used throughout the code for variables
  holding clones of nodes.

- A new modified incarnation of a tree always is reflected by a new tree.root.
  Handles are value types; copying one is O(1) and the copy may alias shared
  substructure of the original, which is safe since nodes never change.

*/

// Tree is a persistent in-memory treap, mapping keys with a strict total
// order to opaque values. An empty instance is usable as an empty tree, i.e.
// this is legal:
//
//	t := treap.Tree[int, string]{}.With(1, "Galaxy")
//
// returning a tree containing the single entry ⟨1⟩ → "Galaxy".
type Tree[K cmp.Ordered, V any] struct {
	root *node[K, V]
	props
}

type props struct {
	prios     Source
	depthSafe bool
}

func (p props) init() props {
	if p.prios == nil {
		p.prios = defaultSource
	}
	return p
}

// Immutable constructs an empty treap with options, if you need any.
// Use it like this:
//
//	t := treap.Immutable[int, string](treap.DepthSafe())
//	t = t.With(42, "Galaxy")
//	value, found := t.Find(42)   // returns "Galaxy"
func Immutable[K cmp.Ordered, V any](opts ...Option) Tree[K, V] {
	t := Tree[K, V]{}
	for _, option := range opts {
		t.props = option.config(t.props)
	}
	return t
}

// Option is a type to help initializing treaps at creation time.
type Option struct {
	config func(props) props
}

// Priorities is an option to inject a custom priority source, e.g. a seeded
// deterministic one for reproducible tree shapes in tests. The default source
// draws from the shared math/rand generator.
func Priorities(src Source) Option {
	conf := func(p props) props {
		assertThat(src != nil, "priority source must not be nil")
		p.prios = src
		return p
	}
	return Option{config: conf}
}

// DepthSafe is an option to switch all operations of a tree (and of trees
// derived from it) to iterative, explicit-stack formulations. Recursion depth
// of the default formulations equals tree height, which is logarithmic only
// in expectation; adversarial priority sequences can degenerate a treap into
// a list.
func DepthSafe() Option {
	conf := func(p props) props {
		p.depthSafe = true
		return p
	}
	return Option{config: conf}
}

// --- API -------------------------------------------------------------------

// Find locates a key in a tree, if present, and returns the value associated
// with the key. If key is not found, the zero value for type V will be
// returned, together with found=false. A miss is a normal outcome, not an
// error.
func (t Tree[K, V]) Find(key K) (V, bool) {
	v := t.root
	for v != nil {
		switch {
		case key == v.key:
			return v.value, true
		case key < v.key:
			v = v.left
		default:
			v = v.right
		}
	}
	var none V
	return none, false
}

// Value is Find with an optional-typed result.
func (t Tree[K, V]) Value(key K) maybe.Maybe[V] {
	if value, found := t.Find(key); found {
		return maybe.Just(value)
	}
	return maybe.Nothing[V]()
}

// With returns a copy of a tree with a new entry inserted. If an entry for
// key is already present, the associated value will be replaced (in a new
// incarnation of the tree, nevertheless): insertion is the union of a fresh
// singleton with t, and union is left-biased. A new priority is drawn for
// every call.
func (t Tree[K, V]) With(key K, value V) Tree[K, V] {
	t.props = t.props.init()
	leaf := newNode(key, value, t.prios.Draw())
	tracer().Debugf("with: singleton %s, priority %d", leaf, leaf.pri)
	return t.withRoot(t.combine(leaf, t.root, policyUnion))
}

// WithDeleted returns a copy of a tree with key removed, if present:
// the difference of t and a key-only singleton. If key is not found, the
// result carries the same entries as t and shares nearly all of its
// structure. The singleton's value never participates, only its key.
func (t Tree[K, V]) WithDeleted(key K) Tree[K, V] {
	t.props = t.props.init()
	var none V // placeholder, never observed
	leaf := newNode(key, none, t.prios.Draw())
	tracer().Debugf("without: key %v", key)
	return t.withRoot(t.combine(t.root, leaf, policyDifference))
}

// All returns the entries of t in ascending key order. The sequence is
// finite and restartable: every iteration starts a fresh walk over the same
// immutable incarnation.
func (t Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.root.each(yield)
	}
}

// Len counts the entries of t. Treaps carry no size header, so this walks
// the tree in O(n).
func (t Tree[K, V]) Len() int {
	n := 0
	for range t.All() {
		n++
	}
	return n
}

// --- Set algebra -----------------------------------------------------------

// Union returns a tree holding the entries of t1 and t2. Union is
// left-biased: on key collision the value from t1 survives. Neither input is
// modified; the result shares structure with both. The expected cost is
// sub-linear in the larger operand when operand sizes are skewed.
func Union[K cmp.Ordered, V any](t1, t2 Tree[K, V]) Tree[K, V] {
	t1.props = t1.props.init()
	tracer().Debugf("union of %s-rooted and %s-rooted tree", t1.root, t2.root)
	return t1.withRoot(t1.combine(t1.root, t2.root, policyUnion))
}

// Intersection returns a tree holding the entries of t1 whose keys also
// appear in t2, with t1's values. Neither input is modified.
func Intersection[K cmp.Ordered, V any](t1, t2 Tree[K, V]) Tree[K, V] {
	t1.props = t1.props.init()
	tracer().Debugf("intersection of %s-rooted and %s-rooted tree", t1.root, t2.root)
	return t1.withRoot(t1.combine(t1.root, t2.root, policyIntersect))
}

// Difference returns a tree holding the entries of t1 whose keys do not
// appear in t2 (t1 minus t2, asymmetric). Neither input is modified.
func Difference[K cmp.Ordered, V any](t1, t2 Tree[K, V]) Tree[K, V] {
	t1.props = t1.props.init()
	tracer().Debugf("difference of %s-rooted and %s-rooted tree", t1.root, t2.root)
	return t1.withRoot(t1.combine(t1.root, t2.root, policyDifference))
}

// --- Debugging -------------------------------------------------------------

// Dump writes a pre-order trace of t to w, one "key:priority:value" line per
// node, each child indented four columns deeper than its parent.
// Informational only; the exact shape of a treap depends on the drawn
// priorities.
func (t Tree[K, V]) Dump(w io.Writer) {
	dump(w, t.root, 0)
}

func dump[K cmp.Ordered, V any](w io.Writer, v *node[K, V], indent int) {
	if v == nil {
		return
	}
	fmt.Fprintf(w, "%s%v:%d:%v\n", strings.Repeat(" ", indent), v.key, v.pri, v.value)
	dump(w, v.left, indent+4)
	dump(w, v.right, indent+4)
}

// --- Internal helpers ------------------------------------------------------

func (t Tree[K, V]) withRoot(root *node[K, V]) Tree[K, V] {
	return Tree[K, V]{root: root, props: t.props}
}

// combine dispatches to the recursive or the explicit-stack engine,
// depending on tree options.
func (t Tree[K, V]) combine(v1, v2 *node[K, V], pol policy) *node[K, V] {
	if t.depthSafe {
		return combineLoop(v1, v2, pol)
	}
	return combineRec(v1, v2, pol)
}
