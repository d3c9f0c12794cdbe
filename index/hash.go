package index

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/go-git/go-arbor/hash"
	"github.com/go-git/go-arbor/id"
	"github.com/go-git/go-arbor/node"
	"github.com/go-git/go-arbor/walker"
)

// NodeHash is the hash of a node as seen by a HashIndex. A positional
// NodeHash only matches a node with the same subtree at the same position.
type NodeHash struct {
	Positional bool
	Position   node.Position
	Hash       uint64
}

// Positional returns a NodeHash tied to a position.
func Positional(p node.Position, h uint64) NodeHash {
	return NodeHash{Positional: true, Position: p, Hash: h}
}

// Independent returns a NodeHash valid at any position.
func Independent(h uint64) NodeHash {
	return NodeHash{Hash: h}
}

func (h NodeHash) String() string {
	if h.Positional {
		return fmt.Sprintf("%s @ %s", hash.Format(h.Hash), h.Position)
	}

	return hash.Format(h.Hash)
}

// HashIndex indexes the nodes of a tree by positional subtree hash. Comparing
// the hash indexes of two trees tells which nodes of one have no identical
// counterpart, at the same position, in the other.
type HashIndex struct {
	forward  map[id.ID]NodeHash
	inverted map[NodeHash]id.ID
	unique   *hashset.Set
}

// NewHashIndex returns an empty HashIndex.
func NewHashIndex() *HashIndex {
	return &HashIndex{
		forward:  make(map[id.ID]NodeHash),
		inverted: make(map[NodeHash]id.ID),
		unique:   hashset.New(),
	}
}

// HashIndexFromTree indexes every node of the tree rooted at root, using the
// cached subtree hashes and the positions assigned by a positioned walk.
func HashIndexFromTree(root node.Handle) *HashIndex {
	x := NewHashIndex()
	_ = walker.NewPositionedIter(root).ForEach(func(item walker.Item) error {
		x.Insert(Positional(item.Position, item.Node.SubtreeHash()), item.Node.ID())
		return nil
	})

	return x
}

// Insert records that the node nid has hash h.
func (x *HashIndex) Insert(h NodeHash, nid id.ID) {
	x.inverted[h] = nid
	x.forward[nid] = h
	x.unique.Add(h)
}

// Remove forgets the hash h.
func (x *HashIndex) Remove(h NodeHash) (id.ID, bool) {
	nid, ok := x.inverted[h]
	if !ok {
		return id.Zero, false
	}

	delete(x.inverted, h)
	delete(x.forward, nid)
	x.unique.Remove(h)
	return nid, true
}

// ID returns the node with hash h.
func (x *HashIndex) ID(h NodeHash) (id.ID, bool) {
	nid, ok := x.inverted[h]
	return nid, ok
}

// Hash returns the hash of the node nid.
func (x *HashIndex) Hash(nid id.ID) (NodeHash, bool) {
	h, ok := x.forward[nid]
	return h, ok
}

// Contains returns true if some node has hash h.
func (x *HashIndex) Contains(h NodeHash) bool {
	return x.unique.Contains(h)
}

// Len returns the number of distinct hashes.
func (x *HashIndex) Len() int {
	return x.unique.Size()
}

// Unique returns the distinct hashes of the index, sorted by depth,
// horizontal index and hash.
func (x *HashIndex) Unique() []NodeHash {
	values := x.unique.Values()
	ret := make([]NodeHash, len(values))
	for i, v := range values {
		ret[i] = v.(NodeHash)
	}

	sortHashes(ret)
	return ret
}

// DiffHashes returns the hashes of x missing from other.
func (x *HashIndex) DiffHashes(other *HashIndex) []NodeHash {
	diff := x.unique.Difference(other.unique)
	values := diff.Values()
	ret := make([]NodeHash, len(values))
	for i, v := range values {
		ret[i] = v.(NodeHash)
	}

	sortHashes(ret)
	return ret
}

// DiffIDs returns, ordered by identity, the nodes of x whose hash is missing
// from other.
func (x *HashIndex) DiffIDs(other *HashIndex) []id.ID {
	hashes := x.DiffHashes(other)
	ret := make([]id.ID, 0, len(hashes))
	for _, h := range hashes {
		ret = append(ret, x.inverted[h])
	}

	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

func sortHashes(hashes []NodeHash) {
	sort.Slice(hashes, func(i, j int) bool {
		a, b := hashes[i], hashes[j]
		if a.Position.Depth != b.Position.Depth {
			return a.Position.Depth < b.Position.Depth
		}

		if a.Position.Index != b.Position.Index {
			return a.Position.Index < b.Position.Index
		}

		return a.Hash < b.Hash
	})
}
