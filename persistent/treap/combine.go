package treap

import "cmp"

// The combine engine implements Union, Intersection and Difference as one
// recursive scheme on top of split and join, parameterized by an emission
// policy. For non-empty operands, the side winning root selection becomes the
// pivot, the other side is split around the pivot key, both flanks are
// combined recursively, and the policy decides whether the pivot survives
// into the output. Every surviving node is a fresh clone; the inputs stay
// untouched and share structure with the result.
//
// As with split, a depth-safe formulation (combineLoop) driven by an explicit
// stack of fill-in slots is provided alongside the recursive one.

type policy int8

const (
	policyUnion policy = iota
	policyIntersect
	policyDifference
)

func (pol policy) String() string {
	switch pol {
	case policyUnion:
		return "union"
	case policyIntersect:
		return "intersect"
	}
	return "difference"
}

// --- Join ------------------------------------------------------------------

// joinRec recombines two treaps into one. Precondition, the caller's
// responsibility and unchecked: every key in v1 is less than every key in v2.
// An empty side makes the other the result as-is; aliasing is safe since
// nodes are never mutated.
func joinRec[K cmp.Ordered, V any](v1, v2 *node[K, V]) *node[K, V] {
	if v1 == nil {
		return v2
	}
	if v2 == nil {
		return v1
	}
	if v1.wins(v2) { // v1's root becomes the combined root
		return v1.cow(v1.left, joinRec(v1.right, v2))
	}
	return v2.cow(joinRec(v1, v2.left), v2.right)
}

// joinLoop is the iterative twin of joinRec, threading a single fill-in slot
// down the seam between the two trees.
func joinLoop[K cmp.Ordered, V any](v1, v2 *node[K, V]) (result *node[K, V]) {
	out := &result
	for {
		if v1 == nil {
			*out = v2
			return
		}
		if v2 == nil {
			*out = v1
			return
		}
		if v1.wins(v2) {
			cow := v1.cow(v1.left, nil)
			*out = cow
			out = &cow.right // joining v1.right with v2 fills this in
			v1 = v1.right
		} else {
			cow := v2.cow(nil, v2.right)
			*out = cow
			out = &cow.left
			v2 = v2.left
		}
	}
}

// --- Recursive engine ------------------------------------------------------

// combineRec merges v1 and v2 under the given policy. v1 is the dominating
// side: on key collision its values survive.
func combineRec[K cmp.Ordered, V any](v1, v2 *node[K, V], pol policy) *node[K, V] {
	if v1 == nil || v2 == nil {
		return combineEmpty(v1, v2, pol)
	}
	// Difference is asymmetric: only v1-entries may survive, so the pivot
	// always comes from v1 regardless of priorities.
	if pol == policyDifference || v1.wins(v2) {
		lo, hi, match := splitRec(v2, v1.key)
		left := combineRec(v1.left, lo, pol)
		right := combineRec(v1.right, hi, pol)
		if emitFirst(pol, match != nil) {
			return v1.cow(left, right)
		}
		return joinRec(left, right)
	}
	// pivot from v2; on a match the v1-side value dominates
	lo, hi, match := splitRec(v1, v2.key)
	left := combineRec(lo, v2.left, pol)
	right := combineRec(hi, v2.right, pol)
	if match != nil {
		return v2.cowValue(match.value, left, right)
	}
	if pol == policyUnion {
		return v2.cow(left, right)
	}
	return joinRec(left, right) // intersect: unmatched pivot is discarded
}

// combineEmpty covers the base cases of the engine, at least one side empty.
func combineEmpty[K cmp.Ordered, V any](v1, v2 *node[K, V], pol policy) *node[K, V] {
	switch pol {
	case policyUnion:
		if v1 == nil {
			return v2
		}
		return v1
	case policyIntersect:
		return nil
	default: // difference: ∅−x = ∅, x−∅ = x
		if v1 == nil {
			return nil
		}
		return v1
	}
}

// emitFirst decides whether a pivot drawn from v1 survives into the output.
func emitFirst(pol policy, matched bool) bool {
	switch pol {
	case policyUnion:
		return true
	case policyIntersect:
		return matched
	default: // difference
		return !matched
	}
}

// --- Iterative engine ------------------------------------------------------

// A combineTask either merges two subtrees into the slot out, or — once both
// flank results of a discarded pivot are in — joins them into out. Join tasks
// are pushed below the flank tasks they depend on, so stack discipline
// guarantees that flankL and flankR are final by the time the join runs.
type combineTask[K cmp.Ordered, V any] struct {
	v1, v2         *node[K, V]
	out            **node[K, V]
	pending        bool
	flankL, flankR *node[K, V]
}

// combineLoop is the depth-safe equivalent of combineRec: the recursion is
// replaced by an explicit task stack, and results are written through
// threaded fill-in slots. The emission decision depends only on the split
// match and is therefore made before descending; a surviving pivot is cloned
// up front and its child links serve as the slots for the flank results.
func combineLoop[K cmp.Ordered, V any](r1, r2 *node[K, V], pol policy) (result *node[K, V]) {
	stack := []*combineTask[K, V]{{v1: r1, v2: r2, out: &result}}
	for len(stack) > 0 {
		task := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if task.pending { // both flanks done, join replaces the dropped pivot
			*task.out = joinLoop(task.flankL, task.flankR)
			continue
		}
		v1, v2 := task.v1, task.v2
		if v1 == nil || v2 == nil {
			*task.out = combineEmpty(v1, v2, pol)
			continue
		}
		if pol == policyDifference || v1.wins(v2) {
			lo, hi, match := splitLoop(v2, v1.key)
			if emitFirst(pol, match != nil) {
				cow := v1.cow(nil, nil)
				*task.out = cow
				stack = append(stack,
					&combineTask[K, V]{v1: v1.right, v2: hi, out: &cow.right},
					&combineTask[K, V]{v1: v1.left, v2: lo, out: &cow.left},
				)
				continue
			}
			join := &combineTask[K, V]{out: task.out, pending: true}
			stack = append(stack, join,
				&combineTask[K, V]{v1: v1.right, v2: hi, out: &join.flankR},
				&combineTask[K, V]{v1: v1.left, v2: lo, out: &join.flankL},
			)
			continue
		}
		lo, hi, match := splitLoop(v1, v2.key)
		if match != nil || pol == policyUnion {
			cow := v2.cow(nil, nil)
			if match != nil {
				cow.value = match.value // left-biased: v1's value dominates
			}
			*task.out = cow
			stack = append(stack,
				&combineTask[K, V]{v1: hi, v2: v2.right, out: &cow.right},
				&combineTask[K, V]{v1: lo, v2: v2.left, out: &cow.left},
			)
			continue
		}
		join := &combineTask[K, V]{out: task.out, pending: true}
		stack = append(stack, join,
			&combineTask[K, V]{v1: hi, v2: v2.right, out: &join.flankR},
			&combineTask[K, V]{v1: lo, v2: v2.left, out: &join.flankL},
		)
	}
	return
}
