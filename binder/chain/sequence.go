package chain

// Sequence hands out mapping identities. The zero value starts at 1. A
// Sequence is owned by one resolution run at a time and is not safe for
// concurrent use.
type Sequence struct {
	last int
}

// Next returns the next identity
func (s *Sequence) Next() int {
	s.last++
	return s.last
}

// Reset restarts the sequence so a repeated run yields the same identities
func (s *Sequence) Reset() {
	s.last = 0
}
