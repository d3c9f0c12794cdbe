package walker

import (
	"errors"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/emirpasic/gods/sets/hashset"

	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/utils/trace"
)

// ErrIncompleteLeaves is returned by LeafWalker.ForEach when the remaining
// nodes can never be visited because some of their descendants were not
// reachable from the seeded leaves.
var ErrIncompleteLeaves = errors.New("leaf set does not cover the tree")

// LeafWalker visits a tree bottom-up, starting from a set of leaves. Every
// node is visited once, and only after all of its children were visited.
//
// Nodes are processed in waves: the parents reached from one wave are only
// considered once the current wave is drained. A node whose children are not
// all visited yet is deferred to the next wave.
type LeafWalker struct {
	visited         *hashset.Set
	childrenVisited map[id.ID]*hashset.Set
	queue           *linkedlistqueue.Queue
	next            *linkedlistqueue.Queue
}

// NewLeafWalker returns a walker seeded with the given leaves.
func NewLeafWalker(leaves []node.Handle) *LeafWalker {
	w := &LeafWalker{
		visited:         hashset.New(),
		childrenVisited: make(map[id.ID]*hashset.Set),
		queue:           linkedlistqueue.New(),
		next:            linkedlistqueue.New(),
	}

	for _, l := range leaves {
		if w.visited.Contains(l.ID()) {
			continue
		}

		w.visited.Add(l.ID())
		w.queue.Enqueue(l)
	}

	return w
}

func (w *LeafWalker) childrenOf(parent id.ID) *hashset.Set {
	set, ok := w.childrenVisited[parent]
	if !ok {
		set = hashset.New()
		w.childrenVisited[parent] = set
	}

	return set
}

// ForEach calls cb for every node, children before parents. It stops after
// the root was visited. Returning ErrStop from cb ends the walk without
// error.
func (w *LeafWalker) ForEach(cb func(node.Handle) error) error {
	progressed := true
	for {
		if w.queue.Empty() {
			if w.next.Empty() {
				return nil
			}

			if !progressed {
				trace.General.Printf("leaf walk stalled with %d pending nodes", w.next.Size())
				return ErrIncompleteLeaves
			}

			w.queue, w.next = w.next, w.queue
			progressed = false
		}

		v, _ := w.queue.Dequeue()
		n := v.(node.Handle)

		if n.NumChildren() != w.childrenOf(n.ID()).Size() {
			w.next.Enqueue(n)
			continue
		}

		progressed = true
		if err := cb(n); err != nil {
			if err == ErrStop {
				return nil
			}

			return err
		}

		parent, ok := n.Parent()
		if !ok {
			return nil
		}

		w.childrenOf(parent.ID()).Add(n.ID())
		if !w.visited.Contains(parent.ID()) {
			w.visited.Add(parent.ID())
			w.next.Enqueue(parent)
		}
	}
}
