// Package node implements the nodes of an arbor tree and the handles used to
// share them.
//
// A Node owns its payload and its ordered list of children. Children are held
// through Handles, and every Handle copy aliases the same node, so a change
// made through one handle is visible through all of them. The parent link of
// a node is a plain relation: parents own their children, never the other
// way around.
//
// Mutating the payload or the children of a node does not refresh its cached
// subtree hash. Callers batch their edits and then call PropagateHash (or
// Rehash) once, before anything reads the hash again.
package node

import (
	"fmt"

	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/utils/trace"
)

// Position locates a node inside a tree.
type Position struct {
	// Depth is the distance to the root, the root being at depth 0.
	Depth int
	// Index is the horizontal index of the node among all the nodes at the
	// same depth, in pre-order.
	Index int
	// ChildIndex is the offset of the node in its parent's child list.
	ChildIndex int
}

func (p Position) String() string {
	return fmt.Sprintf("depth:%d index:%d child_index:%d", p.Depth, p.Index, p.ChildIndex)
}

// Node is a tree node. A Node is usually accessed through a Handle.
type Node struct {
	id          id.ID
	data        Payload
	parent      Handle
	children    []Handle
	position    Position
	positioned  bool
	subtreeHash uint64
}

// New returns a node with the given identity, payload and children. The
// subtree hash is left at zero until the node is rehashed.
func New(nid id.ID, data Payload, children []Handle) *Node {
	trace.General.Printf("created node %s", nid)

	return &Node{
		id:       nid,
		data:     data,
		children: children,
	}
}

// WithParent sets the parent of the node and returns it.
func (n *Node) WithParent(parent Handle) *Node {
	n.parent = parent
	return n
}

// WithPosition sets the position of the node and returns it.
func (n *Node) WithPosition(p Position) *Node {
	n.SetPosition(p)
	return n
}

// ID returns the identity of the node.
func (n *Node) ID() id.ID {
	return n.id
}

// Data returns the payload of the node.
func (n *Node) Data() Payload {
	return n.data
}

// SetData replaces the payload of the node.
func (n *Node) SetData(data Payload) {
	n.data = data
}

// DataHash returns the hash of the node payload.
func (n *Node) DataHash() uint64 {
	return PayloadHash(n.data)
}

// Parent returns the parent of the node, if any.
func (n *Node) Parent() (Handle, bool) {
	return n.parent, !n.parent.IsZero()
}

// SetParent sets the parent of the node. The zero Handle clears it.
func (n *Node) SetParent(parent Handle) {
	n.parent = parent
}

// Position returns the position of the node, if it was ever positioned.
func (n *Node) Position() (Position, bool) {
	return n.position, n.positioned
}

// SetPosition sets the position of the node.
func (n *Node) SetPosition(p Position) {
	n.position = p
	n.positioned = true
}

// SubtreeHash returns the cached subtree hash.
func (n *Node) SubtreeHash() uint64 {
	return n.subtreeHash
}

// SetSubtreeHash sets the cached subtree hash.
func (n *Node) SetSubtreeHash(h uint64) {
	n.subtreeHash = h
}

// Children returns a copy of the child list.
func (n *Node) Children() []Handle {
	if len(n.children) == 0 {
		return nil
	}

	ret := make([]Handle, len(n.children))
	copy(ret, n.children)
	return ret
}

// Child returns the child at index i.
func (n *Node) Child(i int) (Handle, bool) {
	if i < 0 || i >= len(n.children) {
		return Handle{}, false
	}

	return n.children[i], true
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// HasChildren returns true if the node has at least one child.
func (n *Node) HasChildren() bool {
	return len(n.children) != 0
}

// IndexOf returns the offset of child in the child list, or -1.
func (n *Node) IndexOf(child Handle) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}

	return -1
}

// PushChild appends a child.
func (n *Node) PushChild(child Handle) {
	n.children = append(n.children, child)
}

// InsertChild inserts child so that it ends at offset i. i may be equal to the
// number of children, which appends.
func (n *Node) InsertChild(child Handle, i int) error {
	if i < 0 || i > len(n.children) {
		trace.General.Printf("node %s: insert at %d with %d children", n.id, i, len(n.children))
		return fmt.Errorf("%w: insert at %d, %d children", ErrIndexOutOfRange, i, len(n.children))
	}

	n.children = append(n.children, Handle{})
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	return nil
}

// RemoveChildIndex removes and returns the child at offset i.
func (n *Node) RemoveChildIndex(i int) (Handle, error) {
	if i < 0 || i >= len(n.children) {
		trace.General.Printf("node %s: remove at %d with %d children", n.id, i, len(n.children))
		return Handle{}, fmt.Errorf("%w: remove at %d, %d children", ErrIndexOutOfRange, i, len(n.children))
	}

	removed := n.children[i]
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = Handle{}
	n.children = n.children[:len(n.children)-1]
	return removed, nil
}

// ReplaceChild puts child at offset i and returns the child it replaced.
func (n *Node) ReplaceChild(child Handle, i int) (Handle, error) {
	if i < 0 || i >= len(n.children) {
		trace.General.Printf("node %s: replace at %d with %d children", n.id, i, len(n.children))
		return Handle{}, fmt.Errorf("%w: replace at %d, %d children", ErrIndexOutOfRange, i, len(n.children))
	}

	old := n.children[i]
	n.children[i] = child
	return old, nil
}

// SetChildren replaces the whole child list. A nil or empty list turns the
// node into a leaf.
func (n *Node) SetChildren(children []Handle) {
	if len(children) == 0 {
		n.children = nil
		return
	}

	n.children = children
}

// TakeChildren removes the child list and hands it over to the caller.
func (n *Node) TakeChildren() []Handle {
	children := n.children
	n.children = nil
	return children
}

func (n *Node) String() string {
	return fmt.Sprintf("%s: %v", n.id, n.data)
}
