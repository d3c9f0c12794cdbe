// Package diff computes and applies patches between arbor trees.
//
// The Engine compares two trees top-down and prunes every pair of subtrees
// with equal subtree hashes, so its cost depends on the size of the change
// rather than on the size of the trees. It assumes both trees are versions
// of the same logical tree: it does not look for subtrees moved across
// parents, except for the case of a node wrapped by a new parent.
package diff

import (
	"github.com/go-git/go-arbor/hash"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/utils/trace"
)

// Engine computes the patch turning the tree rooted at dest into a copy of
// the tree rooted at source.
type Engine struct {
	dest   node.Handle
	source node.Handle
}

// New returns an Engine diffing dest against source.
func New(dest, source node.Handle) *Engine {
	return &Engine{dest: dest, source: source}
}

type pair struct {
	dest   node.Handle
	source node.Handle
}

type state struct {
	ops      []Operation
	replaced map[node.Handle]struct{}
	siblings map[node.Handle]struct{}
	stack    []pair
}

// Diff returns the patch. Diffing a tree against a tree with the same root
// hash returns an empty patch.
func (e *Engine) Diff() *Patch {
	s := &state{
		replaced: make(map[node.Handle]struct{}),
		siblings: make(map[node.Handle]struct{}),
		stack:    []pair{{dest: e.dest, source: e.source}},
	}

	for len(s.stack) > 0 {
		top := len(s.stack) - 1
		p := s.stack[top]
		s.stack = s.stack[:top]

		s.compare(p.dest, p.source)
	}

	trace.Diff.Printf("diff %s %s: %d operations", e.dest.ID(), e.source.ID(), len(s.ops))
	return NewPatch(s.ops...)
}

func (s *state) compare(dest, source node.Handle) {
	dhash, shash := dest.SubtreeHash(), source.SubtreeHash()
	if dhash == shash {
		return
	}

	trace.Diff.Printf("mismatch %s %s: %s %s", dest.ID(), source.ID(), hash.Format(dhash), hash.Format(shash))

	dc, sc := dest.Children(), source.Children()
	if len(dc) == 0 && len(sc) == 0 {
		s.compareLeaves(dest, source)
		return
	}

	if dest.DataHash() != source.DataHash() {
		s.replaceNode(dest, source)
	}

	switch {
	case len(dc) == 0:
		s.ops = append(s.ops, SetChildren{Dest: dest, Nodes: sc})
		s.replaceNode(dest, source)
	case len(sc) == 0:
		s.ops = append(s.ops, RemoveChildren{Dest: dest})
	case equalHashes(dc, sc):
		// only the node itself differs
	case len(dc) != len(sc):
		trace.Diff.Printf("child count mismatch %s: %d %d", dest.ID(), len(dc), len(sc))
		s.diffSiblings(dest, source)
	default:
		s.compareChildren(dest, source, dc, sc)
	}
}

// compareLeaves handles two mismatching leaves. The difference is explained
// at the level of their parents, whose child lists get a sibling diff. Two
// roots have no parents: only their payload can differ.
func (s *state) compareLeaves(dest, source node.Handle) {
	dp, dok := dest.Parent()
	sp, sok := source.Parent()
	if !dok || !sok {
		trace.Diff.Printf("leaf %s has no parent to diff", dest.ID())
		s.replaceNode(dest, source)
		return
	}

	s.diffSiblingsOnce(dp, sp)
}

func (s *state) compareChildren(dest, source node.Handle, dc, sc []node.Handle) {
	dhash := dest.SubtreeHash()

	for i := range dc {
		if dc[i].SubtreeHash() == sc[i].SubtreeHash() {
			continue
		}

		if sc[i].SubtreeHash() == dhash {
			trace.Diff.Printf("%s wrapped by %s", dest.ID(), sc[i].ID())
			s.ops = append(s.ops, SetChildren{Dest: dest, Nodes: sc})
			s.replaceNode(dest, source)
			return
		}
	}

	for i := range dc {
		if dc[i].SubtreeHash() != sc[i].SubtreeHash() && !dc[i].HasChildren() && !sc[i].HasChildren() {
			s.diffSiblingsOnce(dest, source)
			return
		}
	}

	for i := len(dc) - 1; i >= 0; i-- {
		if dc[i].SubtreeHash() != sc[i].SubtreeHash() {
			s.stack = append(s.stack, pair{dest: dc[i], source: sc[i]})
		}
	}
}

func (s *state) diffSiblingsOnce(dest, source node.Handle) {
	if _, ok := s.siblings[dest]; ok {
		return
	}

	s.diffSiblings(dest, source)
}

func (s *state) diffSiblings(dest, source node.Handle) {
	s.siblings[dest] = struct{}{}

	dc, sc := dest.Children(), source.Children()
	for _, e := range Edits(subtreeHashes(dc), subtreeHashes(sc)) {
		switch e.Action {
		case Delete:
			s.ops = append(s.ops, DeleteChild{Dest: dest, Index: e.DestIndex})
		case Replace:
			s.ops = append(s.ops, ReplaceChild{Dest: dest, Index: e.DestIndex, Source: sc[e.SourceIndex]})
		case Insert:
			s.ops = append(s.ops, InsertChild{Dest: dest, Index: e.DestIndex, Source: sc[e.SourceIndex]})
		}
	}
}

func (s *state) replaceNode(dest, source node.Handle) {
	if _, ok := s.replaced[dest]; ok {
		return
	}

	s.replaced[dest] = struct{}{}
	s.ops = append(s.ops, ReplaceNode{Dest: dest, Source: source})
}

func subtreeHashes(hs []node.Handle) []uint64 {
	ret := make([]uint64, len(hs))
	for i, h := range hs {
		ret[i] = h.SubtreeHash()
	}

	return ret
}

func equalHashes(a, b []node.Handle) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].SubtreeHash() != b[i].SubtreeHash() {
			return false
		}
	}

	return true
}
