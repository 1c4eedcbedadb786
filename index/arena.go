package index

// Arena is a bump allocator: it hands out growable typed slabs and frees
// them all at once when the arena goes out of scope, in place of the
// reference's per-node C++ allocator. Go has no manual free, so "freeing"
// here just means dropping the last reference to the Arena; the point
// preserved from the reference is that LinkedSizedList blocks are appended
// without a per-node heap allocation call.
type Arena[T any] struct {
	blockSize int
	blocks    [][]T
}

func NewArena[T any](blockSize int) *Arena[T] {
	if blockSize <= 0 {
		blockSize = 256
	}
	return &Arena[T]{blockSize: blockSize}
}

// NewBlock returns a fresh zero-length, blockSize-capacity slice owned by
// the arena.
func (a *Arena[T]) NewBlock() []T {
	block := make([]T, 0, a.blockSize)
	a.blocks = append(a.blocks, block)
	return block
}
