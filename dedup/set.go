package dedup

import "github.com/fwojciec/wetclean"

var _ wetclean.HashSet = (*ExactSet)(nil)

// ExactSet is an in-memory set of every hash added to it.
type ExactSet struct {
	m map[uint64]struct{}
}

// NewExactSet returns an empty set with room for sizeHint hashes.
func NewExactSet(sizeHint int) *ExactSet {
	return &ExactSet{m: make(map[uint64]struct{}, max(0, sizeHint))}
}

// Add inserts h and reports whether it was absent.
func (s *ExactSet) Add(h uint64) bool {
	if _, ok := s.m[h]; ok {
		return false
	}
	s.m[h] = struct{}{}
	return true
}

// Len returns the number of distinct hashes.
func (s *ExactSet) Len() int {
	return len(s.m)
}
