package treap

import "cmp"

// Splitting decomposes one treap into the entries below a key, the entries
// above it, and the exact-match node if the key is present. No input node is
// ever altered; only ancestors along the search path are cloned, with one
// child link redirected to the partial result from the deeper level.
//
// Two interchangeable formulations exist: splitRec is a direct transcription
// of the recurrence, splitLoop threads "fill-in" slots through the ongoing
// clone chain and gets by without recursion, making it safe for degenerate
// trees where recursion depth would equal the node count. Both produce
// identical output.

// splitRec splits the subtree under v around key. Returns lo = entries with
// keys < key, hi = entries with keys > key, and the matching node, if any.
func splitRec[K cmp.Ordered, V any](v *node[K, V], key K) (lo, hi, match *node[K, V]) {
	if v == nil {
		return nil, nil, nil
	}
	if key == v.key { // v is the node to split around
		return v.left, v.right, v
	}
	if key < v.key { // key is somewhere in the left subtree
		l, h, m := splitRec(v.left, key)
		cow := v.cow(h, v.right) // v and everything right of it lands in hi
		return l, cow, m
	}
	// key is somewhere in the right subtree
	l, h, m := splitRec(v.right, key)
	cow := v.cow(v.left, l) // v and everything left of it lands in lo
	return cow, h, m
}

// splitLoop is the iterative twin of splitRec. While descending it clones the
// current node with the child link towards the search path left open, and
// remembers that open slot; the next level down fills it in. lo and hi grow
// top-down along their respective seams.
func splitLoop[K cmp.Ordered, V any](v *node[K, V], key K) (lo, hi, match *node[K, V]) {
	t1, t2 := &lo, &hi // open slots awaiting the next partial result
	for v != nil {
		switch {
		case key == v.key:
			*t1 = v.left
			*t2 = v.right
			return lo, hi, v
		case key < v.key:
			cow := v.cow(nil, v.right)
			*t2 = cow
			t2 = &cow.left // deeper hi-results hook in as left child of cow
			v = v.left
		default:
			cow := v.cow(v.left, nil)
			*t1 = cow
			t1 = &cow.right // deeper lo-results hook in as right child of cow
			v = v.right
		}
	}
	return lo, hi, nil
}
