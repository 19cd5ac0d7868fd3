// Package chashtest provides reusable test helpers for
// [chash.Scheme] implementations, plus deliberately simple
// integer mergers for asserting tree and proof behavior
// without involving a real hash function.
package chashtest

import (
	"testing"

	"github.com/arbor-engine/canopy/chash"
	"github.com/stretchr/testify/require"
)

// SchemeFactory returns a fresh scheme instance for compliance tests.
type SchemeFactory[H comparable] func() chash.Scheme[H]

// TestSchemeCompliance asserts the properties every scheme must hold:
// deterministic hashing and merging, and merges that respect
// operand order.
func TestSchemeCompliance[H comparable](t *testing.T, f SchemeFactory[H]) {
	t.Run("hash is deterministic", func(t *testing.T) {
		t.Parallel()

		s := f()

		d1 := s.Hash([]byte("deterministic_data"))
		d2 := s.Hash([]byte("deterministic_data"))

		require.Equal(t, d1, d2)
	})

	t.Run("hash respects input", func(t *testing.T) {
		t.Parallel()

		s := f()

		d1 := s.Hash([]byte("input_1"))
		d2 := s.Hash([]byte("input_2"))

		require.NotEqual(t, d1, d2)
	})

	t.Run("merge is deterministic", func(t *testing.T) {
		t.Parallel()

		s := f()

		l := s.Hash([]byte("left"))
		r := s.Hash([]byte("right"))

		require.Equal(t, s.Merge(l, r), s.Merge(l, r))
	})

	t.Run("merge respects operand order", func(t *testing.T) {
		t.Parallel()

		s := f()

		l := s.Hash([]byte("left"))
		r := s.Hash([]byte("right"))

		require.NotEqual(t, s.Merge(l, r), s.Merge(r, l))
	})
}
