package chashtest

// SumMerger merges uint32 digests by addition.
// The commutativity makes tree states easy to read in assertions.
type SumMerger struct{}

func (SumMerger) Merge(left, right uint32) uint32 {
	return left + right
}

// OrderMerger merges uint32 digests as 2*left + right,
// so any merge invoked with swapped operands produces a different
// parent and fails to reproduce the root.
type OrderMerger struct{}

func (OrderMerger) Merge(left, right uint32) uint32 {
	return 2*left + right
}
