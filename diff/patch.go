package diff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-arbor"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/utils/trace"
)

// Operation is a single step of a Patch. Operations reference nodes by
// handle: Dest is always a node of the tree being patched, Source a node of
// the tree it is patched towards.
type Operation interface {
	// Target returns the node of the patched tree changed by the operation.
	Target() node.Handle
	String() string
	apply(t *arbor.IndexedTree) error
}

// InsertChild inserts a copy of Source as the child Index of Dest.
type InsertChild struct {
	Dest   node.Handle
	Index  int
	Source node.Handle
}

func (op InsertChild) Target() node.Handle { return op.Dest }

func (op InsertChild) String() string {
	return fmt.Sprintf("<InsertChild %s[%d] %s>", op.Dest.ID(), op.Index, op.Source.ID())
}

func (op InsertChild) apply(t *arbor.IndexedTree) error {
	return t.InsertChild(op.Dest, op.Index, op.Source)
}

// DeleteChild removes the child Index of Dest.
type DeleteChild struct {
	Dest  node.Handle
	Index int
}

func (op DeleteChild) Target() node.Handle { return op.Dest }

func (op DeleteChild) String() string {
	return fmt.Sprintf("<DeleteChild %s[%d]>", op.Dest.ID(), op.Index)
}

func (op DeleteChild) apply(t *arbor.IndexedTree) error {
	return t.RemoveChild(op.Dest, op.Index)
}

// ReplaceChild replaces the child Index of Dest with a copy of Source.
type ReplaceChild struct {
	Dest   node.Handle
	Index  int
	Source node.Handle
}

func (op ReplaceChild) Target() node.Handle { return op.Dest }

func (op ReplaceChild) String() string {
	return fmt.Sprintf("<ReplaceChild %s[%d] %s>", op.Dest.ID(), op.Index, op.Source.ID())
}

func (op ReplaceChild) apply(t *arbor.IndexedTree) error {
	return t.ReplaceChild(op.Dest, op.Index, op.Source)
}

// RemoveChildren removes all the children of Dest.
type RemoveChildren struct {
	Dest node.Handle
}

func (op RemoveChildren) Target() node.Handle { return op.Dest }

func (op RemoveChildren) String() string {
	return fmt.Sprintf("<RemoveChildren %s>", op.Dest.ID())
}

func (op RemoveChildren) apply(t *arbor.IndexedTree) error {
	return t.RemoveChildren(op.Dest)
}

// SetChildren replaces the children of Dest with copies of Nodes.
type SetChildren struct {
	Dest  node.Handle
	Nodes []node.Handle
}

func (op SetChildren) Target() node.Handle { return op.Dest }

func (op SetChildren) String() string {
	ids := make([]string, len(op.Nodes))
	for i, n := range op.Nodes {
		ids[i] = n.ID().String()
	}

	return fmt.Sprintf("<SetChildren %s [%s]>", op.Dest.ID(), strings.Join(ids, " "))
}

func (op SetChildren) apply(t *arbor.IndexedTree) error {
	return t.SetChildren(op.Dest, op.Nodes)
}

// ReplaceNode replaces the payload of Dest with the payload of Source.
type ReplaceNode struct {
	Dest   node.Handle
	Source node.Handle
}

func (op ReplaceNode) Target() node.Handle { return op.Dest }

func (op ReplaceNode) String() string {
	return fmt.Sprintf("<ReplaceNode %s %s>", op.Dest.ID(), op.Source.ID())
}

func (op ReplaceNode) apply(t *arbor.IndexedTree) error {
	return t.ReplaceNode(op.Dest, op.Source)
}

// Patch is an ordered list of operations turning a tree into a structural
// copy of another.
type Patch struct {
	ops []Operation
}

// NewPatch returns a Patch made of the given operations.
func NewPatch(ops ...Operation) *Patch {
	return &Patch{ops: ops}
}

// Len returns the number of operations.
func (p *Patch) Len() int {
	return len(p.ops)
}

// Operations returns the operations, in application order.
func (p *Patch) Operations() []Operation {
	return p.ops
}

// PatchTree applies the operations in order to t. After every operation the
// hash of the changed node is propagated up to the root.
//
// Operations addressing a child index out of range, or a node no longer in
// the tree, are skipped. Other errors stop the patch and are returned.
func (p *Patch) PatchTree(t *arbor.IndexedTree) error {
	for _, op := range p.ops {
		trace.Patch.Printf("patching %s", op)

		if err := op.apply(t); err != nil {
			if errors.Is(err, node.ErrIndexOutOfRange) || errors.Is(err, arbor.ErrNotInTree) {
				trace.Patch.Printf("skipping %s: %s", op, err)
				continue
			}

			return fmt.Errorf("patch %s: %w", op, err)
		}

		node.PropagateHash(op.Target())
	}

	return nil
}

func (p *Patch) String() string {
	var b strings.Builder
	for _, op := range p.ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}

	return b.String()
}
