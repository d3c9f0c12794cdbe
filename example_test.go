package arbor_test

import (
	"fmt"
	"log"

	"github.com/go-git/go-arbor"
	"github.com/go-git/go-arbor/diff"
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/walker"
)

func build(gen id.Generator, root string, children ...string) *arbor.Tree {
	b, err := arbor.NewTreeBuilder(gen).Root(node.Text(root), func(n *arbor.NodeBuilder) error {
		for _, c := range children {
			if err := n.Child(node.Text(c), nil); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	t, err := b.Done()
	if err != nil {
		log.Fatal(err)
	}

	return t
}

func ExampleTreeBuilder() {
	b, err := arbor.NewTreeBuilder(id.NewSequence()).Root(node.Text("root"), func(n *arbor.NodeBuilder) error {
		if err := n.Child(node.Text("a"), nil); err != nil {
			return err
		}

		return n.Child(node.Text("b"), func(n *arbor.NodeBuilder) error {
			return n.Child(node.Text("c"), nil)
		})
	})
	if err != nil {
		log.Fatal(err)
	}

	t, err := b.Done()
	if err != nil {
		log.Fatal(err)
	}

	_ = t.Walk().ForEach(func(item walker.Item) error {
		fmt.Println(item.Node.ID(), item.Position, item.Node.Data())
		return nil
	})

	// Output:
	// 0000000000000000 depth:0 index:0 child_index:0 root
	// 0000000000000001 depth:1 index:0 child_index:0 a
	// 0000000000000002 depth:1 index:1 child_index:1 b
	// 0000000000000003 depth:2 index:0 child_index:0 c
}

func Example_patch() {
	gen := id.NewSequence()
	dest := build(gen, "root", "a", "b")
	source := build(gen, "root", "a", "c")

	p := diff.New(dest.Root(), source.Root()).Diff()
	fmt.Println(p.Len())

	t, err := dest.Index(nil)
	if err != nil {
		log.Fatal(err)
	}

	if err := p.PatchTree(t); err != nil {
		log.Fatal(err)
	}

	_ = t.Tree().Walk().ForEach(func(item walker.Item) error {
		fmt.Println(item.Node.Data())
		return nil
	})

	fmt.Println(t.Tree().Equal(source))

	// Output:
	// 1
	// root
	// a
	// c
	// true
}
