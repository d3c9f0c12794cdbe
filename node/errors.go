package node

import (
	"errors"
	"fmt"

	"github.com/go-git/go-arbor/id"
)

var (
	// ErrBorrowed is matched by every BorrowError.
	ErrBorrowed = errors.New("node already borrowed")
	// ErrIndexOutOfRange is returned when a child index is past the end of
	// the child list.
	ErrIndexOutOfRange = errors.New("child index out of range")
	// ErrZeroHandle is returned (or raised, by the Handle accessors) when
	// the zero Handle is used to reach a node.
	ErrZeroHandle = errors.New("zero handle references no node")
)

// BorrowError is returned (or raised, by the Handle accessors) when a node is
// accessed while a conflicting borrow is outstanding.
type BorrowError struct {
	// ID of the node being borrowed.
	ID id.ID
	// Mutable is true if the failed borrow asked for exclusive access.
	Mutable bool
}

func (e *BorrowError) Error() string {
	if e.Mutable {
		return fmt.Sprintf("node %s: cannot borrow mutably: %s", e.ID, ErrBorrowed)
	}

	return fmt.Sprintf("node %s: cannot borrow: %s mutably", e.ID, ErrBorrowed)
}

// Is makes errors.Is(err, ErrBorrowed) hold for every BorrowError.
func (e *BorrowError) Is(target error) bool {
	return target == ErrBorrowed
}
