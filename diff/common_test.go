package diff

import (
	"github.com/go-git/go-arbor"
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

func leaves(labels ...string) []shape {
	ret := make([]shape, len(labels))
	for i, l := range labels {
		ret[i] = leaf(l)
	}

	return ret
}

func root(children ...shape) shape {
	return tree("root", children...)
}

func addChildren(b *arbor.NodeBuilder, s shape) error {
	for _, c := range s.children {
		c := c
		if err := b.Child(node.Text(c.label), func(b *arbor.NodeBuilder) error {
			return addChildren(b, c)
		}); err != nil {
			return err
		}
	}

	return nil
}

func build(s shape) *arbor.IndexedTree {
	b, err := arbor.NewTreeBuilder(id.NewSequence()).Root(node.Text(s.label), func(b *arbor.NodeBuilder) error {
		return addChildren(b, s)
	})
	if err != nil {
		panic(err)
	}

	t, err := b.Done()
	if err != nil {
		panic(err)
	}

	it, err := t.Index(nil)
	if err != nil {
		panic(err)
	}

	return it
}

func label(h node.Handle) string {
	return h.Data().(node.Text).String()
}

// render returns the labels of the tree in pre-order, with the children of
// every inner node between parenthesis.
func render(h node.Handle) string {
	ret := label(h)
	children := h.Children()
	if len(children) == 0 {
		return ret
	}

	ret += "("
	for i, c := range children {
		if i > 0 {
			ret += " "
		}

		ret += render(c)
	}

	return ret + ")"
}

func find(r node.Handle, l string) node.Handle {
	var found node.Handle
	_ = walker.NewPositionedIter(r).ForEach(func(item walker.Item) error {
		if label(item.Node) == l {
			found = item.Node
			return walker.ErrStop
		}
		return nil
	})

	return found
}
