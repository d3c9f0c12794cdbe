// Package walker provides the traversals of an arbor tree: a positioned
// pre-order iterator and a bottom-up walker driven from the leaves.
package walker

import (
	"errors"
	"io"

	"github.com/go-git/go-arbor/node"
)

// ErrStop is used to stop a ForEach iteration early. It is never returned by
// ForEach itself.
var ErrStop = errors.New("stop iter")

// Item is a node visited by a PositionedIter, along with its position.
type Item struct {
	Node     node.Handle
	Position node.Position
}

type entry struct {
	childIndex int
	index      int
	depth      int
	node       node.Handle
}

// PositionedIter walks a tree in pre-order and assigns every node a position:
// its depth, its horizontal index among all nodes at that depth, and its
// offset in the child list of its parent.
//
// Horizontal indexes grow across the whole traversal, so two siblings under
// different parents never share one.
type PositionedIter struct {
	root  node.Handle
	stack []entry
	next  map[int]int
}

// NewPositionedIter returns an iterator over the tree rooted at root.
func NewPositionedIter(root node.Handle) *PositionedIter {
	iter := &PositionedIter{root: root}
	iter.Reset()
	return iter
}

// Reset restarts the iteration from the root.
func (iter *PositionedIter) Reset() {
	iter.stack = iter.stack[:0]
	iter.next = make(map[int]int)
	if !iter.root.IsZero() {
		iter.stack = append(iter.stack, entry{node: iter.root})
	}
}

// Next returns the next node of the tree. It returns io.EOF once every node
// was returned.
func (iter *PositionedIter) Next() (Item, error) {
	if len(iter.stack) == 0 {
		return Item{}, io.EOF
	}

	top := len(iter.stack) - 1
	e := iter.stack[top]
	iter.stack[top] = entry{}
	iter.stack = iter.stack[:top]

	children := e.node.Children()
	if len(children) != 0 {
		depth := e.depth + 1
		first := iter.next[depth]
		iter.next[depth] = first + len(children)

		for i := len(children) - 1; i >= 0; i-- {
			iter.stack = append(iter.stack, entry{
				childIndex: i,
				index:      first + i,
				depth:      depth,
				node:       children[i],
			})
		}
	}

	return Item{
		Node: e.node,
		Position: node.Position{
			Depth:      e.depth,
			Index:      e.index,
			ChildIndex: e.childIndex,
		},
	}, nil
}

// ForEach calls cb for every remaining node. Returning ErrStop from cb ends
// the iteration without error.
func (iter *PositionedIter) ForEach(cb func(Item) error) error {
	for {
		item, err := iter.Next()
		if err == io.EOF {
			return nil
		}

		if err := cb(item); err != nil {
			if err == ErrStop {
				return nil
			}

			return err
		}
	}
}

// Positions walks the tree rooted at root and stores in every node the
// position the walk assigns to it.
func Positions(root node.Handle) {
	_ = NewPositionedIter(root).ForEach(func(item Item) error {
		item.Node.SetPosition(item.Position)
		return nil
	})
}
