package node

import (
	"sync"

	"github.com/go-git/go-arbor/id"
)

// Handle is a shared reference to a Node. Copies of a Handle alias the same
// node and compare equal; the zero Handle references no node.
//
// Access is checked at run time: any number of readers or a single writer.
// Borrow and BorrowMut report a conflicting access as a *BorrowError. The
// accessor methods (Data, Children, PushChild...) hold the node only for the
// duration of the call and panic with a *BorrowError on conflict, which can
// only happen when they are called on a node from inside its own BorrowMut
// (or, for mutators, Borrow) callback.
//
// On the zero Handle, ID, IsZero and String are safe. Borrow and BorrowMut
// return ErrZeroHandle and every other accessor panics with it.
type Handle struct {
	c *cell
}

type cell struct {
	id id.ID
	mu sync.RWMutex
	n  Node
}

// NewHandle moves n into a new shared cell and returns its handle. n must not
// be used afterwards.
func NewHandle(n *Node) Handle {
	return Handle{c: &cell{id: n.id, n: *n}}
}

// IsZero returns true if h references no node.
func (h Handle) IsZero() bool {
	return h.c == nil
}

// ID returns the identity of the node. It never conflicts with a borrow.
func (h Handle) ID() id.ID {
	if h.c == nil {
		return id.Zero
	}

	return h.c.id
}

// Borrow calls f with shared access to the node.
func (h Handle) Borrow(f func(*Node) error) error {
	if h.c == nil {
		return ErrZeroHandle
	}

	if !h.c.mu.TryRLock() {
		return &BorrowError{ID: h.c.id}
	}
	defer h.c.mu.RUnlock()

	return f(&h.c.n)
}

// BorrowMut calls f with exclusive access to the node.
func (h Handle) BorrowMut(f func(*Node) error) error {
	if h.c == nil {
		return ErrZeroHandle
	}

	if !h.c.mu.TryLock() {
		return &BorrowError{ID: h.c.id, Mutable: true}
	}
	defer h.c.mu.Unlock()

	return f(&h.c.n)
}

func (h Handle) rlock() func() {
	if h.c == nil {
		panic(ErrZeroHandle)
	}

	if !h.c.mu.TryRLock() {
		panic(&BorrowError{ID: h.c.id})
	}

	return h.c.mu.RUnlock
}

func (h Handle) lock() func() {
	if h.c == nil {
		panic(ErrZeroHandle)
	}

	if !h.c.mu.TryLock() {
		panic(&BorrowError{ID: h.c.id, Mutable: true})
	}

	return h.c.mu.Unlock
}

// Data returns the payload of the node.
func (h Handle) Data() Payload {
	defer h.rlock()()
	return h.c.n.Data()
}

// SetData replaces the payload of the node.
func (h Handle) SetData(data Payload) {
	defer h.lock()()
	h.c.n.SetData(data)
}

// DataHash returns the hash of the node payload.
func (h Handle) DataHash() uint64 {
	defer h.rlock()()
	return h.c.n.DataHash()
}

// Parent returns the parent of the node, if any.
func (h Handle) Parent() (Handle, bool) {
	defer h.rlock()()
	return h.c.n.Parent()
}

// SetParent sets the parent of the node. The zero Handle clears it.
func (h Handle) SetParent(parent Handle) {
	defer h.lock()()
	h.c.n.SetParent(parent)
}

// Position returns the position of the node, if it was ever positioned.
func (h Handle) Position() (Position, bool) {
	defer h.rlock()()
	return h.c.n.Position()
}

// SetPosition sets the position of the node.
func (h Handle) SetPosition(p Position) {
	defer h.lock()()
	h.c.n.SetPosition(p)
}

// SubtreeHash returns the cached subtree hash.
func (h Handle) SubtreeHash() uint64 {
	defer h.rlock()()
	return h.c.n.SubtreeHash()
}

// SetSubtreeHash sets the cached subtree hash.
func (h Handle) SetSubtreeHash(sum uint64) {
	defer h.lock()()
	h.c.n.SetSubtreeHash(sum)
}

// Children returns a copy of the child list.
func (h Handle) Children() []Handle {
	defer h.rlock()()
	return h.c.n.Children()
}

// Child returns the child at index i.
func (h Handle) Child(i int) (Handle, bool) {
	defer h.rlock()()
	return h.c.n.Child(i)
}

// NumChildren returns the number of children.
func (h Handle) NumChildren() int {
	defer h.rlock()()
	return h.c.n.NumChildren()
}

// HasChildren returns true if the node has at least one child.
func (h Handle) HasChildren() bool {
	defer h.rlock()()
	return h.c.n.HasChildren()
}

// IndexOf returns the offset of child in the child list, or -1.
func (h Handle) IndexOf(child Handle) int {
	defer h.rlock()()
	return h.c.n.IndexOf(child)
}

// PushChild appends a child.
func (h Handle) PushChild(child Handle) {
	defer h.lock()()
	h.c.n.PushChild(child)
}

// InsertChild inserts child at offset i.
func (h Handle) InsertChild(child Handle, i int) error {
	defer h.lock()()
	return h.c.n.InsertChild(child, i)
}

// RemoveChildIndex removes and returns the child at offset i.
func (h Handle) RemoveChildIndex(i int) (Handle, error) {
	defer h.lock()()
	return h.c.n.RemoveChildIndex(i)
}

// ReplaceChild puts child at offset i and returns the child it replaced.
func (h Handle) ReplaceChild(child Handle, i int) (Handle, error) {
	defer h.lock()()
	return h.c.n.ReplaceChild(child, i)
}

// SetChildren replaces the whole child list.
func (h Handle) SetChildren(children []Handle) {
	defer h.lock()()
	h.c.n.SetChildren(children)
}

// TakeChildren removes the child list and hands it over to the caller.
func (h Handle) TakeChildren() []Handle {
	defer h.lock()()
	return h.c.n.TakeChildren()
}

func (h Handle) String() string {
	if h.c == nil {
		return "<nil>"
	}

	defer h.rlock()()
	return h.c.n.String()
}
