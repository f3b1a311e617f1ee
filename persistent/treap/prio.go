package treap

import "math/rand/v2"

// Source supplies node priorities, one independent sample per singleton
// construction. The only contract is that samples are sufficiently random to
// keep the expected tree height logarithmic; no cross-run determinism is
// promised or required.
type Source interface {
	Draw() uint64
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() uint64

// Draw calls f.
func (f SourceFunc) Draw() uint64 {
	return f()
}

// defaultSource draws from the shared process-wide generator, which is safe
// for concurrent use.
var defaultSource Source = SourceFunc(rand.Uint64)
