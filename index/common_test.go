package index

import (
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/walker"
)

type shape struct {
	label    string
	children []shape
}

func leaf(label string) shape { return shape{label: label} }

func tree(label string, children ...shape) shape {
	return shape{label: label, children: children}
}

func build(gen id.Generator, s shape, parent node.Handle) node.Handle {
	h := node.NewHandle(node.New(gen.Generate(), node.Text(s.label), nil).WithParent(parent))
	for _, c := range s.children {
		h.PushChild(build(gen, c, h))
	}

	node.Rehash(h)
	return h
}

func labels(hs []node.Handle) []string {
	ret := make([]string, len(hs))
	for i, h := range hs {
		ret[i] = h.Data().(node.Text).String()
	}

	return ret
}

func find(root node.Handle, label string) node.Handle {
	var found node.Handle
	_ = walker.NewPositionedIter(root).ForEach(func(item walker.Item) error {
		if item.Node.Data().(node.Text).String() == label {
			found = item.Node
			return walker.ErrStop
		}
		return nil
	})

	return found
}
