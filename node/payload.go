package node

import "github.com/go-git/go-arbor/hash"

// Payload is the data carried by a node.
type Payload interface {
	// Hash returns the hash of the payload alone, ignoring any children.
	Hash() uint64
}

// Cloner is implemented by payloads that must be deep copied when they are
// copied from one tree into another. Payloads not implementing it are copied
// by value.
type Cloner interface {
	Clone() Payload
}

// ClonePayload returns a copy of p suitable to be stored in another node.
func ClonePayload(p Payload) Payload {
	if c, ok := p.(Cloner); ok {
		return c.Clone()
	}

	return p
}

// PayloadHash returns the hash of p, or zero if p is nil.
func PayloadHash(p Payload) uint64 {
	if p == nil {
		return 0
	}

	return p.Hash()
}

// Text is a string payload.
type Text string

// Hash returns the hash of the text.
func (t Text) Hash() uint64 {
	return hash.String(string(t))
}

func (t Text) String() string {
	return string(t)
}
