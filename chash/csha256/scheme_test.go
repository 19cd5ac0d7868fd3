package csha256_test

import (
	"testing"

	"github.com/arbor-engine/canopy/chash"
	"github.com/arbor-engine/canopy/chash/chashtest"
	"github.com/arbor-engine/canopy/chash/csha256"
	"github.com/stretchr/testify/require"
)

func TestCompliance(t *testing.T) {
	t.Parallel()

	chashtest.TestSchemeCompliance(t, func() chash.Scheme[[32]byte] {
		return csha256.Scheme{}
	})
}

func TestMerge_is_concat_then_hash(t *testing.T) {
	t.Parallel()

	s := csha256.Scheme{}

	l := s.Hash([]byte("left"))
	r := s.Hash([]byte("right"))

	var m [64]byte
	copy(m[:32], l[:])
	copy(m[32:], r[:])

	require.Equal(t, s.Hash(m[:]), s.Merge(l, r))
}
