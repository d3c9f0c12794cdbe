package arbor

import (
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/walker"
)

// shape describes a test tree: a label and its children.
type shape struct {
	label    string
	children []shape
}

func leaf(label string) shape { return shape{label: label} }

func tree(label string, children ...shape) shape {
	return shape{label: label, children: children}
}

func addChildren(b *NodeBuilder, s shape) error {
	for _, c := range s.children {
		c := c
		if err := b.Child(node.Text(c.label), func(b *NodeBuilder) error {
			return addChildren(b, c)
		}); err != nil {
			return err
		}
	}

	return nil
}

func buildTree(gen id.Generator, s shape) *Tree {
	b, err := NewTreeBuilder(gen).Root(node.Text(s.label), func(b *NodeBuilder) error {
		return addChildren(b, s)
	})
	if err != nil {
		panic(err)
	}

	t, err := b.Done()
	if err != nil {
		panic(err)
	}

	return t
}

func label(h node.Handle) string {
	return h.Data().(node.Text).String()
}

func labels(hs []node.Handle) []string {
	ret := make([]string, len(hs))
	for i, h := range hs {
		ret[i] = label(h)
	}

	return ret
}

func find(root node.Handle, l string) node.Handle {
	var found node.Handle
	_ = walker.NewPositionedIter(root).ForEach(func(item walker.Item) error {
		if label(item.Node) == l {
			found = item.Node
			return walker.ErrStop
		}
		return nil
	})

	return found
}
