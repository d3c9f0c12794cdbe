// Package hash provides the 64-bit hashes used to address node payloads and
// subtrees.
//
// All hashes are xxh64 digests. A subtree hash is Merkle-style: it depends on
// the node's own payload hash and, in order, on the subtree hashes of its
// children, so two subtrees with the same shape and payloads always share the
// same hash regardless of node identities.
package hash

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Size is the size of a hash in bytes.
const Size = 8

// Sum64 returns the hash of b.
func Sum64(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// String returns the hash of s.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Hasher folds a sequence of hashes into a single one.
type Hasher struct {
	d   *xxhash.Digest
	buf [Size]byte
}

// New returns a new empty Hasher.
func New() *Hasher {
	return &Hasher{d: xxhash.New()}
}

// WriteUint64 folds v into the hasher.
func (h *Hasher) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

// Sum64 returns the hash of everything written so far.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}

// Reset discards everything written so far.
func (h *Hasher) Reset() {
	h.d.Reset()
}

// Subtree returns the subtree hash of a node with the given payload hash and
// child subtree hashes. The subtree hash of a leaf is its payload hash.
func Subtree(data uint64, children []uint64) uint64 {
	if len(children) == 0 {
		return data
	}

	h := New()
	for _, c := range children {
		h.WriteUint64(c)
	}

	h.WriteUint64(data)
	return h.Sum64()
}

// Format returns the conventional textual form of a hash.
func Format(h uint64) string {
	return fmt.Sprintf("0x%016X", h)
}
