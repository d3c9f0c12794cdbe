package arbor

import (
	"github.com/go-git/go-arbor/hash"
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/walker"
)

// Tree is a rooted tree of nodes together with the generator that allocated
// their identities.
type Tree struct {
	root node.Handle
	gen  id.Generator
}

// NewTree returns a Tree rooted at root. gen may be nil, see
// Options.Generator for the generator an IndexedTree then uses.
func NewTree(root node.Handle, gen id.Generator) *Tree {
	return &Tree{root: root, gen: gen}
}

// Root returns the root node.
func (t *Tree) Root() node.Handle {
	return t.root
}

// Generator returns the generator the tree was built with.
func (t *Tree) Generator() id.Generator {
	return t.gen
}

// Hash returns the subtree hash of the root.
func (t *Tree) Hash() uint64 {
	if t.root.IsZero() {
		return 0
	}

	return t.root.SubtreeHash()
}

// Equal returns true if both trees have the same shape and payloads, as
// told by their root hashes. Identities are ignored.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}

	return t.Hash() == other.Hash()
}

// Walk returns a positioned pre-order iterator over the tree.
func (t *Tree) Walk() *walker.PositionedIter {
	return walker.NewPositionedIter(t.root)
}

// Index returns an IndexedTree over t.
func (t *Tree) Index(o *Options) (*IndexedTree, error) {
	return NewIndexedTree(t, o)
}

func (t *Tree) String() string {
	return hash.Format(t.Hash())
}
