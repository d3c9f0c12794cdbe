package node

import "github.com/go-git/go-arbor/hash"

// Rehash recomputes the subtree hash of h from its payload and the cached
// subtree hashes of its current children, stores it and returns it.
func Rehash(h Handle) uint64 {
	children := h.Children()
	sums := make([]uint64, len(children))
	for i, c := range children {
		sums[i] = c.SubtreeHash()
	}

	sum := hash.Subtree(h.DataHash(), sums)
	h.SetSubtreeHash(sum)
	return sum
}

// PropagateHash rehashes h and then every ancestor of h, up to the root.
func PropagateHash(h Handle) {
	for cur, ok := h, true; ok; cur, ok = cur.Parent() {
		Rehash(cur)
	}
}

// RehashSubtree recomputes, bottom-up, the subtree hash of every node under
// h, h included, and returns the hash of h.
func RehashSubtree(h Handle) uint64 {
	children := h.Children()
	sums := make([]uint64, len(children))
	for i, c := range children {
		sums[i] = RehashSubtree(c)
	}

	sum := hash.Subtree(h.DataHash(), sums)
	h.SetSubtreeHash(sum)
	return sum
}

// ComputeHash computes the subtree hash of h from scratch, without reading
// or updating any cached hash.
func ComputeHash(h Handle) uint64 {
	children := h.Children()
	sums := make([]uint64, len(children))
	for i, c := range children {
		sums[i] = ComputeHash(c)
	}

	return hash.Subtree(h.DataHash(), sums)
}
