package ir

import "strconv"

// ID identifies an argument, a call node or a literal value.
type ID uint32

// NoID is the invalid identifier.
const NoID ID = 0

// IsValid returns true if the ID is valid (non-zero).
func (id ID) IsValid() bool { return id != NoID }

// String returns the decimal form of the identifier.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// sequence hands out identifiers in strictly increasing order.
//
// Unlike a wall-clock or random source, the sequence makes identifier
// assignment a pure function of statement order: parsing the same trace
// twice yields the same identifiers.
type sequence struct {
	last ID
}

// next returns the next identifier. The first call returns 1.
func (s *sequence) next() ID {
	s.last++
	return s.last
}

// current returns the last identifier handed out, or NoID.
func (s *sequence) current() ID {
	return s.last
}
