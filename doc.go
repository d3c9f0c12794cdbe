// Package arbor is an in-memory tree engine with identity-stable nodes,
// Merkle-style subtree hashes and a diff/patch engine.
//
// Trees are built top-down with a TreeBuilder. Every node gets an identity
// from an injected id.Generator and, once its subtree is complete, a subtree
// hash folded from the hashes of its children and its own payload. Two trees
// with the same shape and payloads have the same root hash.
//
// An IndexedTree wraps a Tree with an identity index and exposes the
// structural mutations used by the diff package to patch one tree into a
// copy of another.
package arbor
