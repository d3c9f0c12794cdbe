// Package id defines node identities and the generators that allocate them.
package id

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// ID is an opaque node identity. IDs are totally ordered by plain string
// comparison and can be used as map keys.
type ID string

// Zero is the empty ID. Generators never return it.
const Zero ID = ""

// Compare returns -1, 0 or +1 depending on whether i sorts before, equal to
// or after o.
func (i ID) Compare(o ID) int {
	switch {
	case i < o:
		return -1
	case i > o:
		return 1
	default:
		return 0
	}
}

// IsZero returns true if i is the zero ID.
func (i ID) IsZero() bool {
	return i == Zero
}

func (i ID) String() string {
	return string(i)
}

// Generator allocates unique identities. Every ID returned by a generator
// sorts after the IDs it returned before.
type Generator interface {
	Generate() ID
}

// Sequence is a Generator backed by a monotonic counter. The zero value is
// ready to use and it is safe for concurrent use.
type Sequence struct {
	next atomic.Uint64
}

// NewSequence returns a Sequence starting at zero.
func NewSequence() *Sequence {
	return &Sequence{}
}

// NewSequenceAfter returns a Sequence whose IDs all sort after last. It
// returns false if last was not generated by a Sequence, or if the sequence
// is exhausted.
func NewSequenceAfter(last ID) (*Sequence, bool) {
	if last.IsZero() {
		return NewSequence(), true
	}

	v, err := strconv.ParseUint(string(last), 16, 64)
	if err != nil || v == math.MaxUint64 || sequenceID(v) != last {
		return nil, false
	}

	s := NewSequence()
	s.next.Store(v + 1)
	return s, true
}

func sequenceID(v uint64) ID {
	return ID(fmt.Sprintf("%016x", v))
}

// Generate returns the next ID of the sequence. IDs are fixed width hex
// numbers so that their string order matches their numeric order.
func (s *Sequence) Generate() ID {
	return sequenceID(s.next.Add(1) - 1)
}

// UUID is a Generator returning UUIDv7 values, which sort by creation time.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() UUID {
	return UUID{}
}

// Generate returns a new UUIDv7 based ID.
func (UUID) Generate() ID {
	return ID(uuid.Must(uuid.NewV7()).String())
}
