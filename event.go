package arbor

import (
	"fmt"

	"github.com/go-git/go-arbor/node"
)

// EventKind is the kind of a structural change.
type EventKind int

const (
	// NodeRemoved is emitted when a node is detached from its tree.
	NodeRemoved EventKind = iota
	// NodeReplaced is emitted when the payload of a node was replaced. The
	// node keeps its identity and children.
	NodeReplaced
	// SubtreeInserted is emitted for the root of every subtree copied into
	// the tree.
	SubtreeInserted
	// ChildRemoved is emitted when a single child was removed from a parent.
	ChildRemoved
	// ChildrenRemoved is emitted when all the children of a parent were
	// removed. Event.Children holds the removed list.
	ChildrenRemoved
	// ChildrenAdded is emitted when a parent got a whole new child list.
	ChildrenAdded
	// ChildReplaced is emitted when a child of a parent was replaced.
	ChildReplaced
	// ChildInserted is emitted when a child was inserted into a parent.
	ChildInserted
)

func (k EventKind) String() string {
	switch k {
	case NodeRemoved:
		return "NodeRemoved"
	case NodeReplaced:
		return "NodeReplaced"
	case SubtreeInserted:
		return "SubtreeInserted"
	case ChildRemoved:
		return "ChildRemoved"
	case ChildrenRemoved:
		return "ChildrenRemoved"
	case ChildrenAdded:
		return "ChildrenAdded"
	case ChildReplaced:
		return "ChildReplaced"
	case ChildInserted:
		return "ChildInserted"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event describes a structural change of an IndexedTree.
type Event struct {
	Kind EventKind
	// Node is the subject of the change: the parent for the Child* kinds,
	// the node itself otherwise.
	Node node.Handle
	// Index is the child offset, for ChildRemoved, ChildReplaced and
	// ChildInserted.
	Index int
	// Children is the child list removed or added, for ChildrenRemoved and
	// ChildrenAdded.
	Children []node.Handle
}

func (e Event) String() string {
	switch e.Kind {
	case ChildRemoved, ChildReplaced, ChildInserted:
		return fmt.Sprintf("%s %s [%d]", e.Kind, e.Node.ID(), e.Index)
	case ChildrenRemoved, ChildrenAdded:
		return fmt.Sprintf("%s %s (%d children)", e.Kind, e.Node.ID(), len(e.Children))
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Node.ID())
	}
}
