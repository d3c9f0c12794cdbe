package arbor

import (
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/utils/trace"
)

// TreeBuilder builds a tree top-down. The structure is described by nested
// closures: Root receives a NodeBuilder for the root, and every
// NodeBuilder.Child call receives a NodeBuilder for the new child.
//
//	t, err := arbor.NewTreeBuilder(gen).Root(node.Text("root"), func(b *arbor.NodeBuilder) error {
//		return b.Child(node.Text("leaf"), nil)
//	})
//
// The subtree hash of a node is computed when its closure returns, after all
// of its children were completed.
type TreeBuilder struct {
	gen    id.Generator
	root   node.Handle
	rooted bool
	err    error
	// counts holds the next horizontal index for every depth.
	counts map[int]int
}

// NewTreeBuilder returns a builder allocating identities from gen.
func NewTreeBuilder(gen id.Generator) *TreeBuilder {
	if gen == nil {
		gen = id.NewSequence()
	}

	return &TreeBuilder{gen: gen, counts: make(map[int]int)}
}

// Root creates the root node with the given payload and calls fn to populate
// it. Any error returned by fn is returned untouched, and again by Done.
// Calling Root twice on the same builder panics.
func (b *TreeBuilder) Root(data node.Payload, fn func(*NodeBuilder) error) (*TreeBuilder, error) {
	if b.rooted {
		panic("arbor: tree builder already has a root")
	}

	b.rooted = true
	b.counts[0] = 1

	h := node.NewHandle(node.New(b.gen.Generate(), data, nil).WithPosition(node.Position{}))
	if fn != nil {
		if err := fn(&NodeBuilder{tree: b, node: h}); err != nil {
			trace.Build.Printf("root %s: %s", h.ID(), err)
			b.err = err
			return b, err
		}
	}

	node.Rehash(h)
	b.root = h
	return b, nil
}

// Done returns the built tree, or nil if Root was never called.
func (b *TreeBuilder) Done() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.root.IsZero() {
		return nil, nil
	}

	return NewTree(b.root, b.gen), nil
}

// NodeBuilder adds children to a node under construction.
type NodeBuilder struct {
	tree  *TreeBuilder
	node  node.Handle
	depth int
}

// Child adds a child with the given payload and calls fn to populate it.
// When fn fails the child is not attached and the error is returned
// untouched; siblings already added stay in place.
func (b *NodeBuilder) Child(data node.Payload, fn func(*NodeBuilder) error) error {
	depth := b.depth + 1
	pos := node.Position{
		Depth:      depth,
		Index:      b.tree.counts[depth],
		ChildIndex: b.node.NumChildren(),
	}

	b.tree.counts[depth]++

	h := node.NewHandle(node.New(b.tree.gen.Generate(), data, nil).
		WithParent(b.node).
		WithPosition(pos))

	if fn != nil {
		if err := fn(&NodeBuilder{tree: b.tree, node: h, depth: depth}); err != nil {
			trace.Build.Printf("child %s at %s: %s", h.ID(), pos, err)
			return err
		}
	}

	node.Rehash(h)
	b.node.PushChild(h)
	return nil
}

// Node returns the node being built.
func (b *NodeBuilder) Node() node.Handle {
	return b.node
}

// SetData replaces the payload of the node being built.
func (b *NodeBuilder) SetData(data node.Payload) {
	b.node.SetData(data)
}
