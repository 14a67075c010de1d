// Package bloom provides an approximate, fixed-memory content-hash set
// backed by a Bloom filter.
package bloom

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/wetclean"
)

var _ wetclean.HashSet = (*Set)(nil)

// Set is a wetclean.HashSet backed by a Bloom filter. A false positive makes
// Add report a new hash as already present, so a unique document may be
// dropped; a hash that was added is never reported as new again.
type Set struct {
	f *bloom.BloomFilter
	n int
}

// NewSet creates a Set sized for n expected hashes with the given false
// positive rate.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add inserts h and reports whether it was (probably) absent.
func (s *Set) Add(h uint64) bool {
	if s.f.TestAndAdd(key(h)) {
		return false
	}
	s.n++
	return true
}

func key(h uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], h)
	return b[:]
}

// Len returns the number of hashes Add reported as new.
func (s *Set) Len() int {
	return s.n
}

// Cap returns the size of the filter in bits.
func (s *Set) Cap() uint {
	return s.f.Cap()
}
