package walker

import (
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
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

func build(gen id.Generator, s shape, parent node.Handle) node.Handle {
	h := node.NewHandle(node.New(gen.Generate(), node.Text(s.label), nil).WithParent(parent))
	for _, c := range s.children {
		h.PushChild(build(gen, c, h))
	}

	node.Rehash(h)
	return h
}

func label(h node.Handle) string {
	return h.Data().(node.Text).String()
}

// leaves returns the leaves of the tree rooted at root, in pre-order.
func leaves(root node.Handle) []node.Handle {
	var ret []node.Handle
	_ = NewPositionedIter(root).ForEach(func(item Item) error {
		if !item.Node.HasChildren() {
			ret = append(ret, item.Node)
		}
		return nil
	})
	return ret
}
