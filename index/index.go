// Package index maps node identities to handles.
package index

import (
	"github.com/emirpasic/gods/maps/treemap"

	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/utils/trace"
	"github.com/go-git/go-arbor/walker"
)

func compareIDs(a, b interface{}) int {
	return a.(id.ID).Compare(b.(id.ID))
}

// Index is an ordered map from identity to node handle. It also tracks which
// of the indexed nodes are leaves.
//
// The index does not watch the tree: after a structural change the caller
// updates it, either incrementally (InsertSubtree, RemoveSubtree,
// UpdateLeaf) or with a full Reindex.
type Index struct {
	nodes  *treemap.Map
	leaves *treemap.Map
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		nodes:  treemap.NewWith(compareIDs),
		leaves: treemap.NewWith(compareIDs),
	}
}

// FromTree returns an Index of every node of the tree rooted at root.
func FromTree(root node.Handle) *Index {
	ix := New()
	ix.InsertSubtree(root)
	return ix
}

// FromNode returns an Index of the subtree rooted at h, typically used to
// reindex only the part of a tree that changed.
func FromNode(h node.Handle) *Index {
	return FromTree(h)
}

// Insert adds a single node.
func (ix *Index) Insert(h node.Handle) {
	ix.nodes.Put(h.ID(), h)
	ix.UpdateLeaf(h)
}

// InsertSubtree adds h and all its descendants.
func (ix *Index) InsertSubtree(h node.Handle) {
	if h.IsZero() {
		return
	}

	n := 0
	_ = walker.NewPositionedIter(h).ForEach(func(item walker.Item) error {
		ix.Insert(item.Node)
		n++
		return nil
	})

	trace.Index.Printf("indexed %d nodes under %s", n, h.ID())
}

// Get returns the node with the given identity.
func (ix *Index) Get(nid id.ID) (node.Handle, bool) {
	v, ok := ix.nodes.Get(nid)
	if !ok {
		return node.Handle{}, false
	}

	return v.(node.Handle), true
}

// Contains returns true if the identity is indexed.
func (ix *Index) Contains(nid id.ID) bool {
	_, ok := ix.nodes.Get(nid)
	return ok
}

// Remove removes a single node and returns it.
func (ix *Index) Remove(nid id.ID) (node.Handle, bool) {
	h, ok := ix.Get(nid)
	if !ok {
		return node.Handle{}, false
	}

	ix.nodes.Remove(nid)
	ix.leaves.Remove(nid)
	return h, true
}

// RemoveSubtree removes h and all its descendants.
func (ix *Index) RemoveSubtree(h node.Handle) {
	if h.IsZero() {
		return
	}

	n := 0
	_ = walker.NewPositionedIter(h).ForEach(func(item walker.Item) error {
		if _, ok := ix.Remove(item.Node.ID()); ok {
			n++
		}
		return nil
	})

	trace.Index.Printf("unindexed %d nodes under %s", n, h.ID())
}

// UpdateLeaf refreshes the leaf status of an indexed node after its children
// changed. Nodes that are not indexed are ignored.
func (ix *Index) UpdateLeaf(h node.Handle) {
	if !ix.Contains(h.ID()) {
		return
	}

	if h.HasChildren() {
		ix.leaves.Remove(h.ID())
		return
	}

	ix.leaves.Put(h.ID(), h)
}

// Reindex drops everything and indexes the tree rooted at root.
func (ix *Index) Reindex(root node.Handle) {
	ix.nodes.Clear()
	ix.leaves.Clear()
	ix.InsertSubtree(root)
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int {
	return ix.nodes.Size()
}

// IDs returns all the indexed identities, in order.
func (ix *Index) IDs() []id.ID {
	keys := ix.nodes.Keys()
	ret := make([]id.ID, len(keys))
	for i, k := range keys {
		ret[i] = k.(id.ID)
	}

	return ret
}

// Leaves returns the indexed nodes without children, ordered by identity.
func (ix *Index) Leaves() []node.Handle {
	values := ix.leaves.Values()
	ret := make([]node.Handle, len(values))
	for i, v := range values {
		ret[i] = v.(node.Handle)
	}

	return ret
}
