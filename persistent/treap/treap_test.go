package treap

import (
	"cmp"
	"fmt"
	"maps"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	tp "github.com/xlab/treeprint"
)

func TestTreapCreateEmpty(t *testing.T) {
	tr := Immutable[int, string]()
	if tr.root != nil {
		t.Error("expected fresh treap to be empty, isn't")
	}
	if tr.Len() != 0 {
		t.Errorf("expected empty treap to have length 0, has %d", tr.Len())
	}
	v, found := tr.Find(7)
	if found || v != "" {
		t.Errorf("did not expect to find 7 in empty treap, got %q", v)
	}
}

func TestTreapZeroValueUsable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.treap")
	defer teardown()
	//
	tr := Tree[int, string]{}.With(1, "Galaxy")
	v, found := tr.Find(1)
	if !found || v != "Galaxy" {
		t.Errorf("expected zero-value tree to accept an insert, got (%q,%v)", v, found)
	}
}

func TestTreapWithFind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.treap")
	defer teardown()
	//
	tr := buildRandom(t, 11, 100)
	checkValid(t, tr)
	tr = tr.With(1000, 42)
	if v, found := tr.Find(1000); !found || v != 42 {
		t.Errorf("expected to find 1000 → 42 after insert, got (%v,%v)", v, found)
	}
	if _, found := tr.Find(-5); found {
		t.Error("did not expect to find -5, did")
	}
	checkValid(t, tr)
}

func TestTreapWithReplacesValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.treap")
	defer teardown()
	//
	tr := Immutable[int, int]().With(7, 70).With(7, 77)
	if tr.Len() != 1 {
		t.Logf("tree = %s", printTree(tr))
		t.Fatalf("expected re-insert of key 7 to keep length 1, have %d", tr.Len())
	}
	if v, _ := tr.Find(7); v != 77 {
		t.Errorf("expected fresh insert to win with value 77, is %d", v)
	}
}

func TestTreapValueMaybe(t *testing.T) {
	tr := Immutable[int, string]().With(1, "one")
	if v, ok := tr.Value(1).Unwrap(); !ok || v != "one" {
		t.Errorf("expected Value(1) to be Just(one), is (%q,%v)", v, ok)
	}
	if tr.Value(2).IsJust() {
		t.Error("expected Value(2) to be Nothing, isn't")
	}
	if tr.Value(2).WithDefault("dflt") != "dflt" {
		t.Error("expected Value(2) to default, didn't")
	}
}

func TestTreapWithDeleted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.treap")
	defer teardown()
	//
	tr := buildRandom(t, 23, 100)
	keys := sortedKeys(t, tr)
	key := keys[len(keys)/2]
	del := tr.WithDeleted(key)
	if _, found := del.Find(key); found {
		t.Errorf("expected key %d to be gone after WithDeleted, isn't", key)
	}
	if del.Len() != tr.Len()-1 {
		t.Errorf("expected length to drop by one, %d → %d", tr.Len(), del.Len())
	}
	if _, found := tr.Find(key); !found {
		t.Error("expected original tree to still hold the deleted key, doesn't")
	}
	checkValid(t, del)
}

func TestTreapInsertRemoveRestores(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.treap")
	defer teardown()
	//
	tr := buildRandom(t, 31, 80)
	const absent = -99
	if _, found := tr.Find(absent); found {
		t.Fatal("test setup broken: key expected to be absent")
	}
	before := maps.Collect(tr.All())
	after := maps.Collect(tr.With(absent, 1).WithDeleted(absent).All())
	require.Equal(t, before, after, "insert+remove of absent key must restore the entry set")
}

func TestTreapAllSortedAndRestartable(t *testing.T) {
	tr := buildRandom(t, 47, 150)
	first := sortedKeys(t, tr)
	second := sortedKeys(t, tr) // a fresh walk, not a cursor
	require.Equal(t, first, second, "All() must be restartable")

	n := 0 // early break must not fall over
	for range tr.All() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("expected early break after 3 entries, got %d", n)
	}
}

func TestTreapPersistence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.treap")
	defer teardown()
	//
	tr := buildRandom(t, 59, 120)
	snapshot := maps.Collect(tr.All())
	_ = tr.With(5000, 1)
	_ = tr.WithDeleted(sortedKeys(t, tr)[0])
	_ = Union(tr, tr)
	_ = Intersection(tr, buildRandom(t, 60, 40))
	_ = Difference(tr, buildRandom(t, 61, 40))
	require.Equal(t, snapshot, maps.Collect(tr.All()),
		"no operation may mutate reachable state of its input")
}

func TestTreapStructuralSharing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.treap")
	defer teardown()
	//
	tr := buildRandom(t, 67, 128)
	del := tr.WithDeleted(-1) // absent key
	old := map[*node[int, int]]bool{}
	collectNodes(tr.root, old)
	total, shared := 0, 0
	collectShared(del.root, old, &total, &shared)
	t.Logf("%d of %d nodes shared with the original", shared, total)
	if shared < total/2 {
		t.Errorf("expected removal of an absent key to share nearly all structure, shares %d/%d", shared, total)
	}
}

func TestTreapDumpFormat(t *testing.T) {
	pris := scripted(10, 20, 30)
	tr := Immutable[int, int](Priorities(pris)).With(2, 20).With(1, 10).With(3, 30)
	sb := &strings.Builder{}
	tr.Dump(sb)
	want := "2:10:20\n" +
		"    1:20:10\n" +
		"    3:30:30\n"
	if sb.String() != want {
		t.Errorf("unexpected dump:\n%s", sb.String())
	}
}

func TestTreapDepthSafeDegenerate(t *testing.T) {
	var c uint64
	worstCase := SourceFunc(func() uint64 { c++; return c })
	// monotone priorities + ascending keys degenerate the treap into a
	// right spine; the iterative engine must cope with depth = n
	tr := Immutable[int, int](Priorities(worstCase), DepthSafe())
	const n = 20000
	for i := 0; i < n; i++ {
		tr = tr.With(i, i)
	}
	if tr.Len() != n {
		t.Fatalf("expected degenerate tree to hold %d entries, has %d", n, tr.Len())
	}
	if v, found := tr.Find(n - 1); !found || v != n-1 {
		t.Errorf("expected to find %d, got (%v,%v)", n-1, v, found)
	}
	tr = tr.WithDeleted(n / 2)
	if _, found := tr.Find(n / 2); found {
		t.Error("expected deletion to work on degenerate tree, didn't")
	}
	checkValid(t, tr)
}

func TestTreapRandomizedAgainstMap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pds.treap")
	defer teardown()
	//
	r := rand.New(rand.NewPCG(71, 72))
	tr := Immutable[int, int](Priorities(SourceFunc(r.Uint64)))
	ref := map[int]int{}
	for i := 0; i < 1000; i++ {
		k := r.IntN(300)
		if r.IntN(4) == 0 {
			tr = tr.WithDeleted(k)
			delete(ref, k)
		} else {
			tr = tr.With(k, i)
			ref[k] = i
		}
	}
	checkValid(t, tr)
	require.Equal(t, ref, maps.Collect(tr.All()), "treap must agree with reference map")
}

// ---------------------------------------------------------------------------

func buildRandom(t *testing.T, seed uint64, n int) Tree[int, int] {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	tr := Immutable[int, int](Priorities(SourceFunc(r.Uint64)))
	for i := 0; i < n; i++ {
		k := r.IntN(n * 3)
		tr = tr.With(k, k*10)
	}
	return tr
}

// scripted replays a fixed list of priorities, cycling.
func scripted(pris ...uint64) Source {
	i := 0
	return SourceFunc(func() uint64 {
		p := pris[i%len(pris)]
		i++
		return p
	})
}

func sortedKeys[K cmp.Ordered, V any](t *testing.T, tr Tree[K, V]) []K {
	t.Helper()
	var keys []K
	for k := range tr.All() {
		keys = append(keys, k)
	}
	return keys
}

// checkValid asserts the two treap invariants: strictly increasing keys in
// traversal order, and every node winning against both of its children.
func checkValid[K cmp.Ordered, V any](t *testing.T, tr Tree[K, V]) {
	t.Helper()
	keys := sortedKeys(t, tr)
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Errorf("key order violated: %v before %v", keys[i-1], keys[i])
		}
	}
	var heap func(v *node[K, V])
	heap = func(v *node[K, V]) {
		if v == nil {
			return
		}
		if v.left != nil && !v.wins(v.left) {
			t.Errorf("heap order violated: child %s wins against parent %s", v.left, v)
		}
		if v.right != nil && !v.wins(v.right) {
			t.Errorf("heap order violated: child %s wins against parent %s", v.right, v)
		}
		heap(v.left)
		heap(v.right)
	}
	heap(tr.root)
}

func collectNodes[K cmp.Ordered, V any](v *node[K, V], set map[*node[K, V]]bool) {
	if v == nil {
		return
	}
	set[v] = true
	collectNodes(v.left, set)
	collectNodes(v.right, set)
}

func collectShared[K cmp.Ordered, V any](v *node[K, V], old map[*node[K, V]]bool, total, shared *int) {
	if v == nil {
		return
	}
	*total++
	if old[v] {
		*shared++
	}
	collectShared(v.left, old, total, shared)
	collectShared(v.right, old, total, shared)
}

// sameShape compares two trees structurally, including priorities and
// tie-break sequence numbers.
func sameShape[K cmp.Ordered, V any](a, b *node[K, V]) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.key == b.key && a.pri == b.pri && a.seq == b.seq &&
		sameShape(a.left, b.left) && sameShape(a.right, b.right)
}

// --- Print tree ------------------------------------------------------------

func printTree[K cmp.Ordered, V any](tr Tree[K, V]) string {
	header := fmt.Sprintf("\nTree(n=%d)\n", tr.Len())
	printer := tp.New()
	ppt(printer, tr.root)
	return header + printer.String() + "\n"
}

func ppt[K cmp.Ordered, V any](printer tp.Tree, v *node[K, V]) {
	if v == nil {
		return
	}
	if v.left == nil && v.right == nil {
		printer.AddNode(v.String())
		return
	}
	branch := printer.AddBranch(v.String())
	ppt(branch, v.left)
	ppt(branch, v.right)
}
