package arbor

import (
	"fmt"

	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/index"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/utils/trace"
	"github.com/go-git/go-arbor/walker"
)

// IndexedTree is a Tree with an identity index kept in sync with the
// structural mutations made through it.
//
// Nodes copied from another tree (InsertChild, ReplaceChild, SetChildren)
// are materialized as new nodes: fresh identities from the tree generator,
// cloned payloads and recomputed subtree hashes. The mutators never refresh
// the hashes of the nodes they change; call node.PropagateHash afterwards.
type IndexedTree struct {
	tree    *Tree
	index   *index.Index
	gen     id.Generator
	onEvent func(Event)
}

// NewIndexedTree indexes t. o may be nil and is never modified.
func NewIndexedTree(t *Tree, o *Options) (*IndexedTree, error) {
	if t == nil || t.root.IsZero() {
		return nil, ErrEmptyTree
	}

	var opts Options
	if o != nil {
		opts = *o
	}

	ix := index.FromTree(t.root)
	if opts.Generator == nil {
		opts.Generator = t.gen
	}

	if opts.Generator == nil {
		opts.Generator = generatorAfter(ix)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &IndexedTree{
		tree:    t,
		index:   ix,
		gen:     opts.Generator,
		onEvent: opts.OnEvent,
	}, nil
}

// generatorAfter returns a generator whose IDs cannot collide with the ones
// in ix: a Sequence past the greatest of them when they come from a
// Sequence, UUIDs otherwise.
func generatorAfter(ix *index.Index) id.Generator {
	var last id.ID
	if ids := ix.IDs(); len(ids) != 0 {
		last = ids[len(ids)-1]
	}

	if seq, ok := id.NewSequenceAfter(last); ok {
		return seq
	}

	trace.General.Printf("identity %s is not sequential, using UUIDs", last)
	return id.NewUUID()
}

// Tree returns the indexed tree.
func (t *IndexedTree) Tree() *Tree {
	return t.tree
}

// Root returns the root node.
func (t *IndexedTree) Root() node.Handle {
	return t.tree.root
}

// Index returns the identity index.
func (t *IndexedTree) Index() *index.Index {
	return t.index
}

// Leaves returns the leaves of the tree, ordered by identity.
func (t *IndexedTree) Leaves() []node.Handle {
	return t.index.Leaves()
}

// GetNode returns the node with the given identity.
func (t *IndexedTree) GetNode(nid id.ID) (node.Handle, bool) {
	return t.index.Get(nid)
}

// InsertChild copies the subtree rooted at source and inserts the copy as
// the child i of dest.
func (t *IndexedTree) InsertChild(dest node.Handle, i int, source node.Handle) error {
	if err := t.check(dest); err != nil {
		return err
	}

	child := t.materialize(source, dest)
	if err := dest.InsertChild(child, i); err != nil {
		return fmt.Errorf("insert child of %s: %w", dest.ID(), err)
	}

	t.index.InsertSubtree(child)
	t.index.UpdateLeaf(dest)

	t.emit(Event{Kind: ChildInserted, Node: dest, Index: i})
	t.emit(Event{Kind: SubtreeInserted, Node: child})
	return nil
}

// RemoveChild removes the child i of dest and its whole subtree.
func (t *IndexedTree) RemoveChild(dest node.Handle, i int) error {
	if err := t.check(dest); err != nil {
		return err
	}

	removed, err := dest.RemoveChildIndex(i)
	if err != nil {
		return fmt.Errorf("remove child of %s: %w", dest.ID(), err)
	}

	t.detach(removed)
	t.index.UpdateLeaf(dest)

	t.emit(Event{Kind: ChildRemoved, Node: dest, Index: i})
	return nil
}

// ReplaceChild replaces the child i of dest with a copy of the subtree
// rooted at source.
func (t *IndexedTree) ReplaceChild(dest node.Handle, i int, source node.Handle) error {
	if err := t.check(dest); err != nil {
		return err
	}

	if i < 0 || i >= dest.NumChildren() {
		trace.Patch.Printf("replace child %d of %s with %d children", i, dest.ID(), dest.NumChildren())
		return fmt.Errorf("replace child of %s: %w", dest.ID(), node.ErrIndexOutOfRange)
	}

	child := t.materialize(source, dest)
	old, err := dest.ReplaceChild(child, i)
	if err != nil {
		return fmt.Errorf("replace child of %s: %w", dest.ID(), err)
	}

	t.detach(old)
	t.index.InsertSubtree(child)

	t.emit(Event{Kind: ChildReplaced, Node: dest, Index: i})
	t.emit(Event{Kind: SubtreeInserted, Node: child})
	return nil
}

// SetChildren replaces all the children of dest with copies of nodes.
func (t *IndexedTree) SetChildren(dest node.Handle, nodes []node.Handle) error {
	if err := t.check(dest); err != nil {
		return err
	}

	for _, old := range dest.TakeChildren() {
		t.detach(old)
	}

	children := make([]node.Handle, len(nodes))
	for i, n := range nodes {
		children[i] = t.materialize(n, dest)
	}

	dest.SetChildren(children)
	for _, c := range children {
		t.index.InsertSubtree(c)
	}

	t.index.UpdateLeaf(dest)
	t.emit(Event{Kind: ChildrenAdded, Node: dest, Children: children})
	return nil
}

// RemoveChildren removes all the children of dest, turning it into a leaf.
func (t *IndexedTree) RemoveChildren(dest node.Handle) error {
	if err := t.check(dest); err != nil {
		return err
	}

	children := dest.TakeChildren()
	for _, c := range children {
		t.detach(c)
	}

	t.index.UpdateLeaf(dest)
	t.emit(Event{Kind: ChildrenRemoved, Node: dest, Children: children})
	return nil
}

// RemoveNode detaches the node nid and its subtree from the tree. It
// returns false if the node is not indexed or is the root.
func (t *IndexedTree) RemoveNode(nid id.ID) (node.Handle, bool) {
	h, ok := t.index.Get(nid)
	if !ok {
		return node.Handle{}, false
	}

	parent, ok := h.Parent()
	if !ok {
		trace.General.Printf("refusing to remove root %s", nid)
		return node.Handle{}, false
	}

	if i := parent.IndexOf(h); i >= 0 {
		if _, err := parent.RemoveChildIndex(i); err != nil {
			return node.Handle{}, false
		}
	}

	t.detach(h)
	t.index.UpdateLeaf(parent)

	t.emit(Event{Kind: NodeRemoved, Node: h})
	return h, true
}

// ReplaceNode replaces the payload of dest with a copy of the payload of
// source. Identity and children of dest are kept.
func (t *IndexedTree) ReplaceNode(dest, source node.Handle) error {
	if err := t.check(dest); err != nil {
		return err
	}

	dest.SetData(node.ClonePayload(source.Data()))
	t.emit(Event{Kind: NodeReplaced, Node: dest})
	return nil
}

// Reindex rebuilds the index from scratch and refreshes the position of
// every node.
func (t *IndexedTree) Reindex() {
	walker.Positions(t.tree.root)
	t.index.Reindex(t.tree.root)
}

// LeafWalker returns a bottom-up walker seeded with the current leaves.
func (t *IndexedTree) LeafWalker() *walker.LeafWalker {
	return walker.NewLeafWalker(t.Leaves())
}

// HashIndex returns a positional hash index of the tree as it is now.
func (t *IndexedTree) HashIndex() *index.HashIndex {
	return index.HashIndexFromTree(t.tree.root)
}

func (t *IndexedTree) check(dest node.Handle) error {
	if dest.IsZero() || !t.index.Contains(dest.ID()) {
		trace.Patch.Printf("node %s is not in the tree", dest.ID())
		return fmt.Errorf("%w: %s", ErrNotInTree, dest.ID())
	}

	return nil
}

// materialize copies the subtree rooted at source under parent. The copies
// are not positioned until the next Reindex.
func (t *IndexedTree) materialize(source, parent node.Handle) node.Handle {
	h := t.copyNode(source, parent)
	node.RehashSubtree(h)
	return h
}

func (t *IndexedTree) copyNode(source, parent node.Handle) node.Handle {
	h := node.NewHandle(node.New(t.gen.Generate(), node.ClonePayload(source.Data()), nil).WithParent(parent))
	for _, c := range source.Children() {
		h.PushChild(t.copyNode(c, h))
	}

	return h
}

// detach clears the parent link of h and drops its subtree from the index.
func (t *IndexedTree) detach(h node.Handle) {
	h.SetParent(node.Handle{})
	t.index.RemoveSubtree(h)
}

func (t *IndexedTree) emit(e Event) {
	trace.General.Printf("event: %s", e)
	if t.onEvent != nil {
		t.onEvent(e)
	}
}
